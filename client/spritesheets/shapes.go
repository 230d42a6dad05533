package spritesheets

import (
	"image"
	"image/color"

	"github.com/cbodonnell/isozombie/pkg/terrain"
)

const (
	ShapeFrameWidth  = 64
	ShapeFrameHeight = 96
	// ShapeGroundY is the row the center of a shape's footprint is drawn at
	ShapeGroundY = ShapeFrameHeight - 10
)

// ShapeRect returns the frame of a shape kind on the shape sheet. The
// shape's footprint is centered at the bottom of the frame.
func ShapeRect(k terrain.ShapeKind) image.Rectangle {
	x := int(k) * ShapeFrameWidth
	return image.Rect(x, 0, x+ShapeFrameWidth, ShapeFrameHeight)
}

var (
	rockColor   = color.RGBA{R: 128, G: 124, B: 120, A: 255}
	crateColor  = color.RGBA{R: 160, G: 112, B: 60, A: 255}
	trunkColor  = color.RGBA{R: 96, G: 64, B: 36, A: 255}
	canopyColor = color.RGBA{R: 44, G: 110, B: 48, A: 255}
)

func NewShapeSheet() *image.RGBA {
	sheet := image.NewRGBA(image.Rect(0, 0, terrain.ShapeKindCount*ShapeFrameWidth, ShapeFrameHeight))
	c := newCanvas(sheet)
	for k := terrain.ShapeKind(0); k < terrain.ShapeKindCount; k++ {
		drawShape(c.at(ShapeRect(k)), k)
	}
	return sheet
}

func drawShape(c *canvas, k terrain.ShapeKind) {
	const (
		cx     = ShapeFrameWidth / 2
		ground = ShapeGroundY
	)
	c.ellipse(cx, ground, 22, 9, shadowColor)

	switch k {
	case terrain.Rock:
		c.polygon([]point{
			{cx - 20, ground},
			{cx - 16, ground - 14},
			{cx - 4, ground - 22},
			{cx + 12, ground - 18},
			{cx + 20, ground - 4},
			{cx + 8, ground + 4},
		}, rockColor)
		c.polygon([]point{
			{cx - 4, ground - 22},
			{cx + 12, ground - 18},
			{cx + 4, ground - 10},
		}, shade(rockColor, 1.2))
	case terrain.Crate:
		const s, h = 18.0, 26.0
		top := ground - h - s/2
		c.polygon([]point{{cx - s, top + s/2}, {cx, top + s}, {cx, top + s + h}, {cx - s, top + s/2 + h}}, shade(crateColor, 0.75))
		c.polygon([]point{{cx, top + s}, {cx + s, top + s/2}, {cx + s, top + s/2 + h}, {cx, top + s + h}}, shade(crateColor, 0.9))
		c.polygon(diamond(cx, top, 2*s, s), crateColor)
		c.line(point{cx - s, top + s/2 + h/2}, point{cx, top + s + h/2}, 2, shade(crateColor, 0.5))
		c.line(point{cx, top + s + h/2}, point{cx + s, top + s/2 + h/2}, 2, shade(crateColor, 0.6))
	case terrain.Tree:
		c.line(point{cx, ground}, point{cx, ground - 40}, 8, trunkColor)
		c.circle(cx, ground-52, 22, canopyColor)
		c.circle(cx-10, ground-60, 12, shade(canopyColor, 1.2))
	}
}
