package spritesheets

import (
	"image"
	"image/color"
	"math"

	"github.com/cbodonnell/isozombie/pkg/iso"
	"github.com/cbodonnell/isozombie/pkg/terrain"
)

// TileKinds is the number of columns on a tile sheet, one per terrain kind.
const TileKinds = int(terrain.Wall) + 1

// WallHeight is how far above its diamond a wall tile is drawn, as a
// fraction of the diamond height.
const WallHeight = 0.6

var tileColors = map[terrain.Kind]color.RGBA{
	terrain.Grass: {R: 86, G: 140, B: 62, A: 255},
	terrain.Dirt:  {R: 128, G: 96, B: 62, A: 255},
	terrain.Sand:  {R: 214, G: 196, B: 140, A: 255},
	terrain.Water: {R: 52, G: 98, B: 170, A: 255},
	terrain.Wall:  {R: 110, G: 110, B: 116, A: 255},
}

// TileSize returns the size of a tile frame for a world tile size: the
// projected diamond plus headroom for raised walls.
func TileSize(worldTileSize float64) (int, int, int) {
	w := ceil(2 * worldTileSize)
	diamond := ceil(2 * worldTileSize / iso.AspectRatio)
	raise := ceil(float64(diamond) * WallHeight)
	return w, diamond, raise
}

// ceil rounds up, ignoring float noise in the projection
func ceil(v float64) int {
	return int(math.Ceil(v - 1e-9))
}

// TileRect returns the frame of a terrain kind on the tile sheet.
func TileRect(k terrain.Kind, worldTileSize float64) image.Rectangle {
	w, h, raise := TileSize(worldTileSize)
	x := int(k) * w
	return image.Rect(x, 0, x+w, h+raise)
}

// NewTileSheet draws one frame per terrain kind. The diamond of every frame
// sits at its bottom, walls rise above it.
func NewTileSheet(worldTileSize float64) *image.RGBA {
	w, h, raise := TileSize(worldTileSize)
	sheet := image.NewRGBA(image.Rect(0, 0, TileKinds*w, h+raise))
	c := newCanvas(sheet)
	for k := terrain.Grass; int(k) < TileKinds; k++ {
		drawTile(c.at(TileRect(k, worldTileSize)), k, float64(w), float64(h), float64(raise))
	}
	return sheet
}

func diamond(cx, top, w, h float64) []point {
	return []point{
		{cx, top},
		{cx + w/2, top + h/2},
		{cx, top + h},
		{cx - w/2, top + h/2},
	}
}

func drawTile(c *canvas, k terrain.Kind, w, h, raise float64) {
	clr := tileColors[k]
	cx := w / 2

	if k != terrain.Wall {
		c.polygon(diamond(cx, raise, w, h), clr)
		switch k {
		case terrain.Water:
			// a couple of ripples
			light := shade(clr, 1.3)
			c.line(point{cx - w/5, raise + h*0.45}, point{cx - w/20, raise + h*0.45}, 2, light)
			c.line(point{cx + w/20, raise + h*0.6}, point{cx + w/5, raise + h*0.6}, 2, light)
		case terrain.Grass:
			dark := shade(clr, 0.8)
			c.circle(cx-w/6, raise+h/2, 2, dark)
			c.circle(cx+w/8, raise+h*0.35, 2, dark)
		}
		return
	}

	// left and right faces, then the top
	c.polygon([]point{
		{0, h / 2},
		{cx, h},
		{cx, h + raise},
		{0, h/2 + raise},
	}, shade(clr, 0.7))
	c.polygon([]point{
		{cx, h},
		{w, h / 2},
		{w, h/2 + raise},
		{cx, h + raise},
	}, shade(clr, 0.85))
	c.polygon(diamond(cx, 0, w, h), clr)
}
