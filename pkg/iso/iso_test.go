package iso

import (
	"testing"

	"github.com/cbodonnell/isozombie/pkg/kinematic"
	"github.com/stretchr/testify/assert"
)

func v(x, y float64) kinematic.Vector {
	return kinematic.Vector{X: x, Y: y}
}

func TestDirection(t *testing.T) {
	tests := []struct {
		name     string
		from, to kinematic.Vector
		want     int
	}{
		{name: "(1,0) to (2,0) should be 0deg", from: v(1, 0), to: v(2, 0), want: 0},
		{name: "(0,1) to (0,2) should be 90deg", from: v(0, 1), to: v(0, 2), want: 90},
		{name: "(-2,1) to (2,3) should be 26deg", from: v(-2, 1), to: v(2, 3), want: 26},
		{name: "(-2,-2) to (-1,-1) should be 45deg", from: v(-2, -2), to: v(-1, -1), want: 45},
		{name: "(-1,-2) to (-3,-4) should be 225deg", from: v(-1, -2), to: v(-3, -4), want: 225},
		{name: "(-1,-2) to (1,-4) should be 315deg", from: v(-1, -2), to: v(1, -4), want: 315},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Direction(tt.from, tt.to))
		})
	}
}

func TestDirectionMovement(t *testing.T) {
	tests := []struct {
		name     string
		from, to kinematic.Vector
		want     kinematic.Vector
	}{
		{name: "(1,0) to (2,0)", from: v(1, 0), to: v(2, 0), want: v(1, 0)},
		{name: "(0,1) to (0,2)", from: v(0, 1), to: v(0, 2), want: v(0, 1)},
		{name: "(-2,-2) to (-1,-1)", from: v(-2, -2), to: v(-1, -1), want: v(0.71, 0.71)},
		{name: "(-1,-1) to (-2,-2)", from: v(-1, -1), to: v(-2, -2), want: v(-0.71, -0.71)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DirectionMovement(Direction(tt.from, tt.to)))
		})
	}
}

func TestIsometricRoundTrip(t *testing.T) {
	points := []kinematic.Vector{v(0, 0), v(10, 0), v(0, 10), v(-35.5, 812.25), v(1234, -56)}
	for _, p := range points {
		ix, iy := CartesianToIsometric(p.X, p.Y)
		x, y := IsometricToCartesian(ix, iy)
		assert.InDelta(t, p.X, x, 1e-9)
		assert.InDelta(t, p.Y, y, 1e-9)
	}
}

func TestScreenToWorldDirection(t *testing.T) {
	up := ScreenToWorldDirection(0, -1)
	assert.InDelta(t, -0.7071, up.X, 1e-3)
	assert.InDelta(t, -0.7071, up.Y, 1e-3)

	// moving in the converted direction must look like moving up on screen
	assert.Equal(t, OrientationUp, OrientationFromDegrees(ScreenDirection(up)))
	assert.Equal(t, OrientationRight, OrientationFromDegrees(ScreenDirection(ScreenToWorldDirection(1, 0))))
	assert.Equal(t, kinematic.Vector{}, ScreenToWorldDirection(0, 0))
}

func TestOrientationFromDegrees(t *testing.T) {
	tests := []struct {
		deg  int
		want Orientation
	}{
		{deg: 0, want: OrientationRight},
		{deg: 21, want: OrientationRight},
		{deg: 23, want: OrientationUpRight},
		{deg: 90, want: OrientationUp},
		{deg: 180, want: OrientationLeft},
		{deg: 225, want: OrientationDownLeft},
		{deg: 270, want: OrientationDown},
		{deg: 350, want: OrientationRight},
		{deg: -90, want: OrientationDown},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, OrientationFromDegrees(tt.deg), "deg %d", tt.deg)
	}
}

func TestOverlaps(t *testing.T) {
	assert.True(t, Overlaps(v(0, 0), v(10, 10), 20, 20))
	assert.False(t, Overlaps(v(0, 0), v(30, 0), 20, 20))
	assert.False(t, Overlaps(v(0, 0), v(0, 20), 20, 20))
}

func TestTileCoords(t *testing.T) {
	assert.Equal(t, v(16, 16), TileToCoords(Tile{X: 0, Y: 0}, 32))
	assert.Equal(t, Tile{X: 2, Y: 3}, CoordsToTile(v(64, 127.9), 32))
	assert.Equal(t, Tile{X: -1, Y: 0}, CoordsToTile(v(-0.5, 5), 32))
	assert.Equal(t, Tile{X: 5, Y: 7}, CoordsToTile(TileToCoords(Tile{X: 5, Y: 7}, 48), 48))
}
