// Package iso converts between the cartesian world plane and the
// isometric screen plane, and provides the direction helpers used for
// facing and aiming.
package iso

import (
	"math"

	"github.com/cbodonnell/isozombie/pkg/kinematic"
)

const (
	// AspectRatio squashes the vertical isometric axis.
	AspectRatio = 16.0 / 9.0
)

// Tile is an integer tile coordinate on the terrain grid.
type Tile struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (t Tile) Add(o Tile) Tile {
	return Tile{X: t.X + o.X, Y: t.Y + o.Y}
}

// CartesianToIsometric projects a world point onto the isometric plane.
// The result is in screen orientation (y grows downwards).
func CartesianToIsometric(x, y float64) (float64, float64) {
	return x - y, (x + y) / AspectRatio
}

// IsometricToCartesian is the inverse of CartesianToIsometric.
func IsometricToCartesian(ix, iy float64) (float64, float64) {
	sum := iy * AspectRatio
	return (sum + ix) / 2, (sum - ix) / 2
}

// Direction returns the angle from one point to another in whole degrees,
// counter-clockwise from the positive x axis, in the range [0, 360).
func Direction(from, to kinematic.Vector) int {
	theta := math.Atan2(to.Y-from.Y, to.X-from.X) * 180 / math.Pi
	if theta < 0 {
		theta += 360
	}
	deg := int(math.Floor(theta + 1e-9))
	if deg >= 360 {
		deg -= 360
	}
	return deg
}

// DirectionMovement returns the unit vector pointing at deg degrees with
// each component rounded to two decimals.
func DirectionMovement(deg int) kinematic.Vector {
	rad := float64(deg) * math.Pi / 180
	return kinematic.Vector{
		X: round2(math.Cos(rad)),
		Y: round2(math.Sin(rad)),
	}
}

func round2(v float64) float64 {
	r := math.Round(v*100) / 100
	if r == 0 {
		return 0 // drop negative zero
	}
	return r
}

// ScreenDirection returns the on-screen angle, y up, of a world space
// direction. It is what sprite orientation is picked from.
func ScreenDirection(worldDir kinematic.Vector) int {
	ix, iy := CartesianToIsometric(worldDir.X, worldDir.Y)
	return Direction(kinematic.Vector{}, kinematic.Vector{X: ix, Y: -iy})
}

// ScreenToWorldDirection converts a screen space input direction (y down)
// into a normalized world space direction.
func ScreenToWorldDirection(sx, sy float64) kinematic.Vector {
	if sx == 0 && sy == 0 {
		return kinematic.Vector{}
	}
	x, y := IsometricToCartesian(sx, sy)
	return kinematic.Vector{X: x, Y: y}.Normalize()
}

// Overlaps reports whether two boxes of size w by h centered on a and b
// intersect.
func Overlaps(a, b kinematic.Vector, w, h float64) bool {
	return math.Abs(a.X-b.X) < w && math.Abs(a.Y-b.Y) < h
}

// TileToCoords returns the world position of the center of a tile.
func TileToCoords(t Tile, tileSize float64) kinematic.Vector {
	return kinematic.Vector{
		X: (float64(t.X) + 0.5) * tileSize,
		Y: (float64(t.Y) + 0.5) * tileSize,
	}
}

// CoordsToTile returns the tile containing a world position.
func CoordsToTile(p kinematic.Vector, tileSize float64) Tile {
	return Tile{
		X: int(math.Floor(p.X / tileSize)),
		Y: int(math.Floor(p.Y / tileSize)),
	}
}
