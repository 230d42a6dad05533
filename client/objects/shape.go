package objects

import (
	"fmt"

	"github.com/cbodonnell/isozombie/client/camera"
	"github.com/cbodonnell/isozombie/client/spritesheets"
	"github.com/cbodonnell/isozombie/pkg/terrain"
	"github.com/hajimehoshi/ebiten/v2"
)

// Shape draws a static obstacle. It is depth sorted with the characters so
// they can walk behind trees.
type Shape struct {
	*BaseObject

	shape  terrain.Shape
	image  *ebiten.Image
	camera *camera.Camera
}

var _ Depther = &Shape{}

func NewShape(shape terrain.Shape, sprites *Sprites, cam *camera.Camera) *Shape {
	id := fmt.Sprintf("shape-%d-%d", shape.Tile.X, shape.Tile.Y)
	return &Shape{
		BaseObject: NewBaseObject(id, nil),
		shape:      shape,
		image:      sprites.Shape(shape.Kind),
		camera:     cam,
	}
}

func (o *Shape) Depth() float64 {
	return o.shape.Position.X + o.shape.Position.Y
}

func (o *Shape) Draw(screen *ebiten.Image) {
	zoom := o.camera.Zoom()
	if !o.camera.IsVisible(o.shape.Position, spritesheets.ShapeFrameHeight*zoom) {
		return
	}
	sx, sy := o.camera.WorldToScreen(o.shape.Position)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-spritesheets.ShapeFrameWidth/2, -spritesheets.ShapeGroundY)
	op.GeoM.Scale(zoom, zoom)
	op.GeoM.Translate(sx, sy)
	screen.DrawImage(o.image, op)
}
