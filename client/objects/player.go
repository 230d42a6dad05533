package objects

import (
	"image/color"

	"github.com/cbodonnell/isozombie/client/animations"
	"github.com/cbodonnell/isozombie/client/camera"
	"github.com/cbodonnell/isozombie/client/spritesheets"
	gametypes "github.com/cbodonnell/isozombie/pkg/game/types"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Player draws the player character. The state is looked up on every update
// since loading a save replaces it.
type Player struct {
	*BaseObject

	state      func() *gametypes.PlayerState
	camera     *camera.Camera
	animations *animations.CharacterAnimations
	reloadTime float64
	debug      bool
}

var _ Depther = &Player{}

type NewPlayerOptions struct {
	State   func() *gametypes.PlayerState
	Camera  *camera.Camera
	Sprites *Sprites
	// ReloadTime is the full reload duration in seconds, for the progress bar
	ReloadTime float64
	Debug      bool
}

func NewPlayer(id string, opts NewPlayerOptions) *Player {
	return &Player{
		BaseObject: NewBaseObject(id, nil),
		state:      opts.State,
		camera:     opts.Camera,
		animations: animations.NewCharacterAnimations(opts.Sprites.Player, opts.Sprites.Layout),
		reloadTime: opts.ReloadTime,
		debug:      opts.Debug,
	}
}

func (o *Player) Depth() float64 {
	p := o.state().Position
	return p.X + p.Y
}

func (o *Player) Update() error {
	p := o.state()
	orientation := p.Orientation
	if p.Stance == gametypes.StanceFiring {
		orientation = p.AimOrientation
	}
	o.animations.Set(p.Stance, orientation)
	o.animations.Update()
	return nil
}

func (o *Player) Draw(screen *ebiten.Image) {
	p := o.state()
	sx, sy := o.camera.WorldToScreen(p.Position)
	zoom := o.camera.Zoom()
	o.animations.Current().Draw(screen, sx, sy, spritesheets.CharacterFrameWidth/2, spritesheets.CharacterFootY, zoom)

	if p.IsReloading() && !p.IsDead() {
		// reload progress above the head
		w := float32(24 * zoom)
		x := float32(sx) - w/2
		y := float32(sy - 52*zoom)
		vector.DrawFilledRect(screen, x, y, w, 3, color.RGBA{40, 40, 40, 200}, false)
		done := 1.0
		if o.reloadTime > 0 {
			done = 1 - p.ReloadTimer/o.reloadTime
		}
		vector.DrawFilledRect(screen, x, y, w*float32(done), 3, color.RGBA{240, 220, 90, 255}, false)
	}

	if o.debug {
		s := float32(p.Size / 2)
		vector.StrokeRect(screen, float32(sx)-s, float32(sy)-s/2, 2*s, s, 1, color.RGBA{0, 0, 255, 255}, false)
	}
}
