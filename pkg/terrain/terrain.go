// Package terrain holds the tile map the game is played on.
package terrain

import (
	"math/rand"

	"github.com/cbodonnell/isozombie/pkg/iso"
	"github.com/cbodonnell/isozombie/pkg/kinematic"
)

type Kind uint8

const (
	Grass Kind = iota
	Dirt
	Sand
	Water
	Wall
)

func (k Kind) String() string {
	switch k {
	case Grass:
		return "grass"
	case Dirt:
		return "dirt"
	case Sand:
		return "sand"
	case Water:
		return "water"
	case Wall:
		return "wall"
	}
	return "unknown"
}

// Walkable reports whether characters can stand on a tile of this kind.
func (k Kind) Walkable() bool {
	return k != Water && k != Wall
}

// Map is a fixed size grid of tiles. Tile (0, 0) covers the world square
// [0, tileSize) x [0, tileSize).
type Map struct {
	width    int
	height   int
	tileSize float64
	tiles    []Kind
	blocked  []bool
	shapes   []Shape
}

// New returns a map of grass surrounded by a ring of walls.
func New(width, height int, tileSize float64) *Map {
	m := &Map{
		width:    width,
		height:   height,
		tileSize: tileSize,
		tiles:    make([]Kind, width*height),
		blocked:  make([]bool, width*height),
	}
	for x := 0; x < width; x++ {
		m.tiles[m.index(iso.Tile{X: x, Y: 0})] = Wall
		m.tiles[m.index(iso.Tile{X: x, Y: height - 1})] = Wall
	}
	for y := 0; y < height; y++ {
		m.tiles[m.index(iso.Tile{X: 0, Y: y})] = Wall
		m.tiles[m.index(iso.Tile{X: width - 1, Y: y})] = Wall
	}
	return m
}

func (m *Map) index(t iso.Tile) int {
	return t.Y*m.width + t.X
}

// Size returns the map size in tiles.
func (m *Map) Size() (int, int) {
	return m.width, m.height
}

func (m *Map) TileSize() float64 {
	return m.tileSize
}

// In reports whether the tile lies on the map.
func (m *Map) In(t iso.Tile) bool {
	return t.X >= 0 && t.Y >= 0 && t.X < m.width && t.Y < m.height
}

// Tile returns the kind of the tile at (tx, ty). Tiles off the map are walls.
func (m *Map) Tile(tx, ty int) Kind {
	t := iso.Tile{X: tx, Y: ty}
	if !m.In(t) {
		return Wall
	}
	return m.tiles[m.index(t)]
}

func (m *Map) SetTile(t iso.Tile, k Kind) {
	if m.In(t) {
		m.tiles[m.index(t)] = k
	}
}

// Walkable reports whether a character may occupy the tile.
func (m *Map) Walkable(t iso.Tile) bool {
	if !m.In(t) {
		return false
	}
	i := m.index(t)
	return m.tiles[i].Walkable() && !m.blocked[i]
}

// BlocksBullets reports whether a bullet stops on the tile.
// Bullets fly over water but not through walls or shapes.
func (m *Map) BlocksBullets(t iso.Tile) bool {
	if !m.In(t) {
		return true
	}
	i := m.index(t)
	return m.tiles[i] == Wall || m.blocked[i]
}

// CanMoveTo reports whether a world position lies on a walkable tile.
func (m *Map) CanMoveTo(p kinematic.Vector) bool {
	return m.Walkable(iso.CoordsToTile(p, m.tileSize))
}

// Center returns the tile in the middle of the map.
func (m *Map) Center() iso.Tile {
	return iso.Tile{X: m.width / 2, Y: m.height / 2}
}

// CenterPosition returns the world position of the center tile.
func (m *Map) CenterPosition() kinematic.Vector {
	return iso.TileToCoords(m.Center(), m.tileSize)
}

// Shapes returns the static shapes placed on the map.
func (m *Map) Shapes() []Shape {
	return m.shapes
}

// AddShape places a shape on a tile and blocks it.
// It returns false when the tile is off the map or not walkable.
func (m *Map) AddShape(kind ShapeKind, t iso.Tile) bool {
	if !m.Walkable(t) {
		return false
	}
	m.blocked[m.index(t)] = true
	m.shapes = append(m.shapes, Shape{
		Kind:     kind,
		Tile:     t,
		Position: iso.TileToCoords(t, m.tileSize),
	})
	return true
}

// RandomWalkable picks a random walkable tile at least minDist world units
// from avoid. It gives up after a bounded number of attempts.
func (m *Map) RandomWalkable(rng *rand.Rand, avoid kinematic.Vector, minDist float64) (iso.Tile, bool) {
	const attempts = 256
	for i := 0; i < attempts; i++ {
		t := iso.Tile{X: rng.Intn(m.width), Y: rng.Intn(m.height)}
		if !m.Walkable(t) {
			continue
		}
		if iso.TileToCoords(t, m.tileSize).Distance(avoid) < minDist {
			continue
		}
		return t, true
	}
	return iso.Tile{}, false
}
