package scenes

import (
	"image/color"

	"github.com/cbodonnell/isozombie/client/fonts"
	"github.com/cbodonnell/isozombie/client/objects"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
)

const errorHint = "Click or press Enter to return to the menu"

type ErrorScene struct {
	*BaseScene
}

var _ Scene = &ErrorScene{}

// NewErrorScene shows msg until the player dismisses it.
func NewErrorScene(msg string) (Scene, error) {
	root := objects.NewBaseObject("error-root", nil)
	if err := root.AddChild("overlay-error", objects.NewTextOverlayObject("overlay-error", msg)); err != nil {
		return nil, err
	}
	return &ErrorScene{
		BaseScene: NewBaseScene(root),
	}, nil
}

func (s *ErrorScene) Draw(screen *ebiten.Image) {
	s.BaseScene.Draw(screen)
	f := fonts.TTFSmallFont
	w, _ := fonts.TextSize(f, errorHint)
	text.Draw(screen, errorHint, f, screen.Bounds().Dx()/2-w/2, screen.Bounds().Dy()*2/3, color.NRGBA{R: 200, G: 200, B: 200, A: 255})
}
