package camera

import (
	"testing"

	"github.com/cbodonnell/isozombie/pkg/kinematic"
	"github.com/stretchr/testify/assert"
)

func newTestCamera() *Camera {
	return NewCamera(NewCameraOptions{
		ViewportW: 1280,
		ViewportH: 720,
		Zoom:      1,
		MinZoom:   0.5,
		MaxZoom:   2,
		ZoomStep:  1.25,
		Follow:    8,
	})
}

func TestWorldToScreenCentered(t *testing.T) {
	c := newTestCamera()
	target := kinematic.Vector{X: 400, Y: 250}
	c.SnapTo(target)

	sx, sy := c.WorldToScreen(target)
	assert.InDelta(t, 640, sx, 1e-9)
	assert.InDelta(t, 360, sy, 1e-9)
}

func TestScreenToWorldRoundTrip(t *testing.T) {
	c := newTestCamera()
	c.SnapTo(kinematic.Vector{X: 1000, Y: 700})

	tests := []struct {
		name string
		zoom float64
		p    kinematic.Vector
	}{
		{"center", 1, kinematic.Vector{X: 1000, Y: 700}},
		{"origin", 1, kinematic.Vector{}},
		{"zoomed in", 2, kinematic.Vector{X: 1234.5, Y: 99.25}},
		{"zoomed out", 0.5, kinematic.Vector{X: -50, Y: 3000}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c.SetZoom(tt.zoom)
			sx, sy := c.WorldToScreen(tt.p)
			got := c.ScreenToWorld(sx, sy)
			assert.InDelta(t, tt.p.X, got.X, 1e-6)
			assert.InDelta(t, tt.p.Y, got.Y, 1e-6)
		})
	}
}

func TestZoomClamp(t *testing.T) {
	c := newTestCamera()

	for i := 0; i < 20; i++ {
		c.ZoomIn()
	}
	assert.Equal(t, 2.0, c.Zoom())

	for i := 0; i < 20; i++ {
		c.ZoomOut()
	}
	assert.Equal(t, 0.5, c.Zoom())

	c.SetZoom(1.25)
	c.ZoomIn()
	assert.InDelta(t, 1.5625, c.Zoom(), 1e-9)

	c.SetZoom(100)
	assert.Equal(t, 2.0, c.Zoom())
}

func TestNewCameraDefaults(t *testing.T) {
	c := NewCamera(NewCameraOptions{ViewportW: 100, ViewportH: 100, Zoom: 3})
	// no bounds given, zoom is pinned to 1
	assert.Equal(t, 1.0, c.Zoom())
	c.ZoomIn()
	assert.Equal(t, 1.0, c.Zoom())
}

func TestFollow(t *testing.T) {
	c := newTestCamera()
	c.SnapTo(kinematic.Vector{})
	target := kinematic.Vector{X: 300, Y: 100}

	c.Follow(target, 1.0/60)
	sx, _ := c.WorldToScreen(target)
	// moved toward the target without reaching it
	assert.Greater(t, sx, 640.0)
	assert.Less(t, sx, 640.0+200)

	for i := 0; i < 600; i++ {
		c.Follow(target, 1.0/60)
	}
	sx, sy := c.WorldToScreen(target)
	assert.InDelta(t, 640, sx, 1e-3)
	assert.InDelta(t, 360, sy, 1e-3)
}

func TestFollowSnapsWithoutSmoothing(t *testing.T) {
	c := NewCamera(NewCameraOptions{ViewportW: 200, ViewportH: 100, Zoom: 1, MinZoom: 1, MaxZoom: 1})
	target := kinematic.Vector{X: 50, Y: 20}
	c.Follow(target, 1.0/60)

	sx, sy := c.WorldToScreen(target)
	assert.InDelta(t, 100, sx, 1e-9)
	assert.InDelta(t, 50, sy, 1e-9)
}

func TestIsVisible(t *testing.T) {
	c := newTestCamera()
	c.SnapTo(kinematic.Vector{X: 500, Y: 500})

	assert.True(t, c.IsVisible(kinematic.Vector{X: 500, Y: 500}, 0))
	// far off along the screen's horizontal axis
	assert.False(t, c.IsVisible(kinematic.Vector{X: 1500, Y: -500}, 0))
	// just off the right edge, pulled back in by the margin
	edge := c.ScreenToWorld(1290, 360)
	assert.False(t, c.IsVisible(edge, 0))
	assert.True(t, c.IsVisible(edge, 20))
}
