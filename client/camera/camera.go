// Package camera maps world positions onto the screen through the
// isometric projection, following a target with zoom.
package camera

import (
	"math"

	"github.com/cbodonnell/isozombie/pkg/iso"
	"github.com/cbodonnell/isozombie/pkg/kinematic"
)

// Camera looks at a point on the isometric plane. X and Y are the center of
// the view in isometric units, before zoom.
type Camera struct {
	X, Y float64

	ViewportW, ViewportH float64

	zoom     float64
	minZoom  float64
	maxZoom  float64
	zoomStep float64
	// follow is the smoothing rate in 1/s; zero or less snaps
	follow float64
}

type NewCameraOptions struct {
	ViewportW float64
	ViewportH float64
	Zoom      float64
	MinZoom   float64
	MaxZoom   float64
	ZoomStep  float64
	Follow    float64
}

func NewCamera(opts NewCameraOptions) *Camera {
	c := &Camera{
		ViewportW: opts.ViewportW,
		ViewportH: opts.ViewportH,
		minZoom:   opts.MinZoom,
		maxZoom:   opts.MaxZoom,
		zoomStep:  opts.ZoomStep,
		follow:    opts.Follow,
	}
	if c.minZoom <= 0 {
		c.minZoom = 1
	}
	if c.maxZoom < c.minZoom {
		c.maxZoom = c.minZoom
	}
	if c.zoomStep <= 1 {
		c.zoomStep = 1.1
	}
	c.SetZoom(opts.Zoom)
	return c
}

func (c *Camera) Zoom() float64 {
	return c.zoom
}

// SetZoom sets the zoom level, clamped to the configured bounds.
func (c *Camera) SetZoom(zoom float64) {
	c.zoom = clamp(zoom, c.minZoom, c.maxZoom)
}

func (c *Camera) ZoomIn() {
	c.SetZoom(c.zoom * c.zoomStep)
}

func (c *Camera) ZoomOut() {
	c.SetZoom(c.zoom / c.zoomStep)
}

func (c *Camera) SetViewport(w, h float64) {
	c.ViewportW = w
	c.ViewportH = h
}

// SnapTo centers the camera on a world position.
func (c *Camera) SnapTo(world kinematic.Vector) {
	c.X, c.Y = iso.CartesianToIsometric(world.X, world.Y)
}

// Follow moves the camera toward a world position. The step is frame rate
// independent: the remaining distance decays by exp(-follow*dt).
func (c *Camera) Follow(world kinematic.Vector, dt float64) {
	tx, ty := iso.CartesianToIsometric(world.X, world.Y)
	if c.follow <= 0 || dt <= 0 {
		c.X, c.Y = tx, ty
		return
	}
	alpha := 1 - math.Exp(-c.follow*dt)
	c.X += (tx - c.X) * alpha
	c.Y += (ty - c.Y) * alpha
}

// WorldToScreen returns the screen pixel a world position is drawn at.
func (c *Camera) WorldToScreen(world kinematic.Vector) (float64, float64) {
	ix, iy := iso.CartesianToIsometric(world.X, world.Y)
	return c.ViewportW/2 + (ix-c.X)*c.zoom, c.ViewportH/2 + (iy-c.Y)*c.zoom
}

// ScreenToWorld is the inverse of WorldToScreen.
func (c *Camera) ScreenToWorld(sx, sy float64) kinematic.Vector {
	ix := (sx-c.ViewportW/2)/c.zoom + c.X
	iy := (sy-c.ViewportH/2)/c.zoom + c.Y
	x, y := iso.IsometricToCartesian(ix, iy)
	return kinematic.Vector{X: x, Y: y}
}

// IsVisible reports whether a world position, padded by margin screen
// pixels on every side, could be on screen.
func (c *Camera) IsVisible(world kinematic.Vector, margin float64) bool {
	sx, sy := c.WorldToScreen(world)
	return sx >= -margin && sx <= c.ViewportW+margin &&
		sy >= -margin && sy <= c.ViewportH+margin
}

func clamp(x, min, max float64) float64 {
	if x < min {
		return min
	}
	if x > max {
		return max
	}
	return x
}
