package scenes

import (
	"fmt"
	"image/color"
	"time"

	"github.com/cbodonnell/isozombie/client/fonts"
	"github.com/cbodonnell/isozombie/client/objects"
	"github.com/cbodonnell/isozombie/pkg/game"
	"github.com/cbodonnell/isozombie/pkg/repositories/models"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
)

type GameOverScene struct {
	*BaseScene

	lines []string
}

type GameOverSceneOptions struct {
	Name   string
	Result game.Result
	// Best is the player's best recorded score, nil when unknown
	Best *models.Score
}

var _ Scene = &GameOverScene{}

func NewGameOverScene(opts GameOverSceneOptions) (Scene, error) {
	root := objects.NewBaseObject("gameover-root", nil)
	if err := root.AddChild("overlay-gameover", objects.NewTextOverlayObject("overlay-gameover", "Game Over")); err != nil {
		return nil, err
	}
	return &GameOverScene{
		BaseScene: NewBaseScene(root),
		lines:     ResultLines(opts.Name, opts.Result, opts.Best),
	}, nil
}

// ResultLines describes a finished session.
func ResultLines(name string, result game.Result, best *models.Score) []string {
	lines := []string{
		fmt.Sprintf("%s scored %d", name, result.Score),
		fmt.Sprintf("Wave %d, %d kills in %s", result.Wave, result.Kills, result.Duration.Round(time.Second)),
		fmt.Sprintf("Accuracy %.0f%%", result.Accuracy()*100),
	}
	switch {
	case best == nil:
	case result.Score >= best.Points:
		lines = append(lines, "New personal best!")
	default:
		lines = append(lines, fmt.Sprintf("Personal best %d (wave %d)", best.Points, best.Wave))
	}
	return append(lines, "", "Click or press Enter to continue")
}

func (s *GameOverScene) Draw(screen *ebiten.Image) {
	s.BaseScene.Draw(screen)
	f := fonts.TTFNormalFont
	y := screen.Bounds().Dy()/2 + 20
	for _, line := range s.lines {
		w, _ := fonts.TextSize(f, line)
		text.Draw(screen, line, f, screen.Bounds().Dx()/2-w/2, y, color.White)
		y += 36
	}
}
