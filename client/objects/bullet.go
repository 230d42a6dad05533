package objects

import (
	"image/color"

	"github.com/cbodonnell/isozombie/client/camera"
	gametypes "github.com/cbodonnell/isozombie/pkg/game/types"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// bulletTrail is the length of the streak drawn behind a bullet, in world units
const bulletTrail = 10

// bulletHeight lifts bullets to the height of the gun
const bulletHeight = 22

var bulletColor = color.RGBA{255, 230, 140, 255}

type Bullet struct {
	*BaseObject

	state  *gametypes.BulletState
	camera *camera.Camera
}

var _ Depther = &Bullet{}

func NewBullet(id string, state *gametypes.BulletState, cam *camera.Camera) *Bullet {
	return &Bullet{
		BaseObject: NewBaseObject(id, nil),
		state:      state,
		camera:     cam,
	}
}

func (o *Bullet) SetState(state *gametypes.BulletState) {
	o.state = state
}

func (o *Bullet) Depth() float64 {
	return o.state.Position.X + o.state.Position.Y
}

func (o *Bullet) Draw(screen *ebiten.Image) {
	zoom := o.camera.Zoom()
	if !o.camera.IsVisible(o.state.Position, bulletTrail*zoom) {
		return
	}
	tail := o.state.Position.Sub(o.state.Direction.Scale(bulletTrail))
	x0, y0 := o.camera.WorldToScreen(tail)
	x1, y1 := o.camera.WorldToScreen(o.state.Position)
	lift := bulletHeight * zoom
	vector.StrokeLine(screen, float32(x0), float32(y0-lift), float32(x1), float32(y1-lift), float32(2*zoom), bulletColor, true)
}
