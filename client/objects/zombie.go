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

const corpseDepthBias = 1e6

type Zombie struct {
	*BaseObject

	state        *gametypes.ZombieState
	maxHitpoints int
	camera       *camera.Camera
	animations   *animations.CharacterAnimations
	debug        bool
}

var _ Depther = &Zombie{}

type NewZombieOptions struct {
	State        *gametypes.ZombieState
	MaxHitpoints int
	Camera       *camera.Camera
	Sprites      *Sprites
	Debug        bool
}

func NewZombie(id string, opts NewZombieOptions) *Zombie {
	return &Zombie{
		BaseObject:   NewBaseObject(id, nil),
		state:        opts.State,
		maxHitpoints: opts.MaxHitpoints,
		camera:       opts.Camera,
		animations:   animations.NewCharacterAnimations(opts.Sprites.Zombie(opts.State.Variant), opts.Sprites.Layout),
		debug:        opts.Debug,
	}
}

// SetState points the zombie at a new state, after a save was loaded.
func (o *Zombie) SetState(state *gametypes.ZombieState) {
	o.state = state
}

func (o *Zombie) Depth() float64 {
	// corpses lie flat under everything standing
	if o.state.IsDead() {
		return o.state.Position.X + o.state.Position.Y - corpseDepthBias
	}
	return o.state.Position.X + o.state.Position.Y
}

func (o *Zombie) Update() error {
	o.animations.Set(o.state.Stance, o.state.Orientation)
	o.animations.Update()
	return nil
}

func (o *Zombie) Draw(screen *ebiten.Image) {
	if !o.camera.IsVisible(o.state.Position, spritesheets.CharacterFrameHeight*o.camera.Zoom()) {
		return
	}
	sx, sy := o.camera.WorldToScreen(o.state.Position)
	zoom := o.camera.Zoom()
	o.animations.Current().Draw(screen, sx, sy, spritesheets.CharacterFrameWidth/2, spritesheets.CharacterFootY, zoom)

	if !o.state.IsDead() && o.maxHitpoints > 0 && o.state.Hitpoints < o.maxHitpoints {
		w := float32(24 * zoom)
		x := float32(sx) - w/2
		y := float32(sy - 50*zoom)
		vector.DrawFilledRect(screen, x, y, w, 3, color.RGBA{255, 0, 0, 255}, false)
		hp := w * float32(o.state.Hitpoints) / float32(o.maxHitpoints)
		vector.DrawFilledRect(screen, x, y, hp, 3, color.RGBA{0, 255, 0, 255}, false)
	}

	if o.debug {
		s := float32(o.state.Size / 2)
		vector.StrokeRect(screen, float32(sx)-s, float32(sy)-s/2, 2*s, s, 1, color.RGBA{0, 255, 60, 255}, false)
	}
}
