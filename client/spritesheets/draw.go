// Package spritesheets generates the game's sprite sheets in code. Sheets
// are plain RGBA images so they can be built and inspected without a
// running game.
package spritesheets

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/vector"
)

type point struct {
	X, Y float64
}

// canvas draws filled shapes onto one frame of an RGBA image with
// anti-aliasing. Coordinates are relative to the frame.
type canvas struct {
	sheet *image.RGBA
	frame *image.RGBA
	r     *vector.Rasterizer
}

func newCanvas(sheet *image.RGBA) *canvas {
	return &canvas{sheet: sheet, frame: sheet}
}

// at targets the frame covering r.
func (c *canvas) at(r image.Rectangle) *canvas {
	c.frame = c.sheet.SubImage(r).(*image.RGBA)
	if c.r == nil || c.r.Size() != r.Size() {
		c.r = vector.NewRasterizer(r.Dx(), r.Dy())
	}
	return c
}

func (c *canvas) polygon(pts []point, clr color.Color) {
	if len(pts) < 3 {
		return
	}
	b := c.frame.Bounds()
	c.r.Reset(b.Dx(), b.Dy())
	c.r.MoveTo(float32(pts[0].X), float32(pts[0].Y))
	for _, p := range pts[1:] {
		c.r.LineTo(float32(p.X), float32(p.Y))
	}
	c.r.ClosePath()
	c.r.Draw(c.frame, b, image.NewUniform(clr), image.Point{})
}

func (c *canvas) ellipse(cx, cy, rx, ry float64, clr color.Color) {
	const segments = 24
	pts := make([]point, segments)
	for i := range pts {
		a := 2 * math.Pi * float64(i) / segments
		pts[i] = point{X: cx + rx*math.Cos(a), Y: cy + ry*math.Sin(a)}
	}
	c.polygon(pts, clr)
}

func (c *canvas) circle(cx, cy, r float64, clr color.Color) {
	c.ellipse(cx, cy, r, r, clr)
}

func (c *canvas) rect(x, y, w, h float64, clr color.Color) {
	c.polygon([]point{{x, y}, {x + w, y}, {x + w, y + h}, {x, y + h}}, clr)
}

// line draws a segment of the given width as a quad.
func (c *canvas) line(from, to point, width float64, clr color.Color) {
	dx, dy := to.X-from.X, to.Y-from.Y
	l := math.Hypot(dx, dy)
	if l == 0 {
		return
	}
	nx, ny := -dy/l*width/2, dx/l*width/2
	c.polygon([]point{
		{from.X + nx, from.Y + ny},
		{to.X + nx, to.Y + ny},
		{to.X - nx, to.Y - ny},
		{from.X - nx, from.Y - ny},
	}, clr)
}

// shade scales the rgb channels of a color, keeping alpha.
func shade(clr color.RGBA, f float64) color.RGBA {
	s := func(v uint8) uint8 {
		return uint8(math.Max(0, math.Min(255, float64(v)*f)))
	}
	return color.RGBA{R: s(clr.R), G: s(clr.G), B: s(clr.B), A: clr.A}
}
