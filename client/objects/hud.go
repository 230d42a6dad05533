package objects

import (
	"fmt"
	"image/color"

	"github.com/cbodonnell/isozombie/client/fonts"
	gametypes "github.com/cbodonnell/isozombie/pkg/game/types"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	hudPadding   = 16
	hudBarWidth  = 220
	hudBarHeight = 16
)

// HUD draws the player's hitpoints, ammunition, wave and score.
type HUD struct {
	*BaseObject

	state func() *gametypes.GameState
	name  string
}

func NewHUD(id string, name string, state func() *gametypes.GameState) *HUD {
	return &HUD{
		BaseObject: NewBaseObject(id, &NewBaseObjectOpts{ZIndex: 90}),
		state:      state,
		name:       name,
	}
}

// AmmoText describes the magazine, or the reload in progress.
func AmmoText(p *gametypes.PlayerState) string {
	if p.IsReloading() {
		return fmt.Sprintf("RELOADING %.1fs", p.ReloadTimer)
	}
	return fmt.Sprintf("AMMO %d/%d", p.Ammo, p.Magazine)
}

// WaveText describes the current wave and the zombies still to come.
func WaveText(gs *gametypes.GameState) string {
	if gs.Wave.Number == 0 {
		return fmt.Sprintf("FIRST WAVE IN %.0fs", gs.Wave.Cooldown)
	}
	return fmt.Sprintf("WAVE %d  ZOMBIES %d", gs.Wave.Number, gs.LiveZombies()+gs.Wave.Pending)
}

func (o *HUD) Draw(screen *ebiten.Image) {
	gs := o.state()
	p := gs.Player
	f := fonts.TTFSmallFont

	x, y := float32(hudPadding), float32(hudPadding)
	vector.DrawFilledRect(screen, x, y, hudBarWidth, hudBarHeight, color.RGBA{120, 0, 0, 255}, false)
	if p.MaxHitpoints > 0 {
		w := hudBarWidth * float32(p.Hitpoints) / float32(p.MaxHitpoints)
		vector.DrawFilledRect(screen, x, y, w, hudBarHeight, color.RGBA{0, 200, 0, 255}, false)
	}
	vector.StrokeRect(screen, x, y, hudBarWidth, hudBarHeight, 1, color.White, false)
	text.Draw(screen, fmt.Sprintf("HP %d/%d", p.Hitpoints, p.MaxHitpoints), f, hudPadding+4, hudPadding+hudBarHeight-3, color.White)

	text.Draw(screen, AmmoText(p), f, hudPadding, hudPadding+hudBarHeight+22, color.White)
	text.Draw(screen, WaveText(gs), f, hudPadding, hudPadding+hudBarHeight+42, color.White)

	score := fmt.Sprintf("%s  SCORE %d  KILLS %d", o.name, gs.Score, gs.Kills)
	w, _ := fonts.TextSize(f, score)
	text.Draw(screen, score, f, screen.Bounds().Dx()-hudPadding-w, hudPadding+hudBarHeight-3, color.White)
}
