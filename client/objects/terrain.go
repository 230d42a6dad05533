package objects

import (
	"math"

	"github.com/cbodonnell/isozombie/client/camera"
	"github.com/cbodonnell/isozombie/client/spritesheets"
	"github.com/cbodonnell/isozombie/pkg/iso"
	"github.com/cbodonnell/isozombie/pkg/kinematic"
	"github.com/cbodonnell/isozombie/pkg/terrain"
	"github.com/hajimehoshi/ebiten/v2"
)

// Terrain draws the tiles under the camera.
type Terrain struct {
	*BaseObject

	terrain *terrain.Map
	sprites *Sprites
	camera  *camera.Camera
	tiles   [spritesheets.TileKinds]*ebiten.Image

	// drawn is the number of tiles drawn by the last frame
	drawn int
}

func NewTerrain(id string, m *terrain.Map, sprites *Sprites, cam *camera.Camera) *Terrain {
	o := &Terrain{
		BaseObject: NewBaseObject(id, &NewBaseObjectOpts{ZIndex: -100}),
		terrain:    m,
		sprites:    sprites,
		camera:     cam,
	}
	for k := range o.tiles {
		o.tiles[k] = sprites.Tile(terrain.Kind(k))
	}
	return o
}

// SetTerrain swaps the map being drawn.
func (o *Terrain) SetTerrain(m *terrain.Map) {
	o.terrain = m
}

func (o *Terrain) Drawn() int {
	return o.drawn
}

// VisibleTiles returns the tile range, inclusive, covering the screen plus
// a margin in pixels, clamped to the map.
func VisibleTiles(cam *camera.Camera, m *terrain.Map, margin float64) (iso.Tile, iso.Tile) {
	ts := m.TileSize()
	corners := []kinematic.Vector{
		cam.ScreenToWorld(-margin, -margin),
		cam.ScreenToWorld(cam.ViewportW+margin, -margin),
		cam.ScreenToWorld(-margin, cam.ViewportH+margin),
		cam.ScreenToWorld(cam.ViewportW+margin, cam.ViewportH+margin),
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, c := range corners {
		minX, maxX = math.Min(minX, c.X), math.Max(maxX, c.X)
		minY, maxY = math.Min(minY, c.Y), math.Max(maxY, c.Y)
	}

	w, h := m.Size()
	clampTile := func(v float64, n int) int {
		t := int(math.Floor(v / ts))
		if t < 0 {
			return 0
		}
		if t > n-1 {
			return n - 1
		}
		return t
	}
	return iso.Tile{X: clampTile(minX, w), Y: clampTile(minY, h)},
		iso.Tile{X: clampTile(maxX, w), Y: clampTile(maxY, h)}
}

func (o *Terrain) Draw(screen *ebiten.Image) {
	zoom := o.camera.Zoom()
	tw, _, raise := spritesheets.TileSize(o.terrain.TileSize())
	margin := float64(tw) * zoom
	from, to := VisibleTiles(o.camera, o.terrain, margin)
	ts := o.terrain.TileSize()

	o.drawn = 0
	for ty := from.Y; ty <= to.Y; ty++ {
		for tx := from.X; tx <= to.X; tx++ {
			t := iso.Tile{X: tx, Y: ty}
			// the bounding box of the visible range still has corners off screen
			if !o.camera.IsVisible(iso.TileToCoords(t, ts), margin) {
				continue
			}
			sx, sy := o.camera.WorldToScreen(kinematic.Vector{X: float64(tx) * ts, Y: float64(ty) * ts})
			op := &ebiten.DrawImageOptions{}
			op.GeoM.Translate(-float64(tw)/2, -float64(raise))
			op.GeoM.Scale(zoom, zoom)
			op.GeoM.Translate(sx, sy)
			screen.DrawImage(o.tiles[o.terrain.Tile(tx, ty)], op)
			o.drawn++
		}
	}
}
