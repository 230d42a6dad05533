package game

import (
	"math"

	"github.com/cbodonnell/isozombie/pkg/game/constants"
	"github.com/cbodonnell/isozombie/pkg/game/types"
	"github.com/cbodonnell/isozombie/pkg/iso"
	"github.com/cbodonnell/isozombie/pkg/kinematic"
	"github.com/cbodonnell/isozombie/pkg/terrain"
	"github.com/solarlune/resolv"
)

// NewCollisionSpace builds a collision space covering the map, with one
// obstacle object per horizontal run of tiles characters cannot enter.
func NewCollisionSpace(m *terrain.Map) *resolv.Space {
	w, h := m.Size()
	ts := m.TileSize()
	cell := int(math.Max(1, math.Round(ts)))
	space := resolv.NewSpace(int(math.Ceil(float64(w)*ts)), int(math.Ceil(float64(h)*ts)), cell, cell)

	for y := 0; y < h; y++ {
		start := -1
		for x := 0; x <= w; x++ {
			blocked := x < w && !m.Walkable(iso.Tile{X: x, Y: y})
			if blocked && start < 0 {
				start = x
			}
			if !blocked && start >= 0 {
				obstacle := resolv.NewObject(float64(start)*ts, float64(y)*ts, float64(x-start)*ts, ts, types.CollisionSpaceTagObstacle)
				space.Add(obstacle)
				start = -1
			}
		}
	}

	return space
}

// moveObject moves obj by delta one axis at a time, stopping each axis at
// the first obstacle in the way. It returns the distance travelled.
func moveObject(obj *resolv.Object, delta kinematic.Vector) kinematic.Vector {
	dx := sweep(obj, delta.X, 0)
	obj.Position.X += dx
	obj.Update()

	dy := sweep(obj, 0, delta.Y)
	obj.Position.Y += dy
	obj.Update()

	return kinematic.Vector{X: dx, Y: dy}
}

// sweep clamps a single axis movement against obstacles. Exactly one of dx
// and dy is expected to be non-zero.
func sweep(obj *resolv.Object, dx, dy float64) float64 {
	d := dx + dy
	if d == 0 {
		return 0
	}

	collision := obj.Check(dx, dy, types.CollisionSpaceTagObstacle)
	if collision == nil {
		return d
	}

	// the space only reports shared cells, so confirm each overlap
	for _, o := range collision.Objects {
		if !intersects(obj, o, dx, dy) {
			continue
		}
		var contact float64
		switch {
		case dx > 0:
			contact = o.Position.X - (obj.Position.X + obj.Size.X) - constants.CollisionEpsilon
		case dx < 0:
			contact = o.Position.X + o.Size.X - obj.Position.X + constants.CollisionEpsilon
		case dy > 0:
			contact = o.Position.Y - (obj.Position.Y + obj.Size.Y) - constants.CollisionEpsilon
		default:
			contact = o.Position.Y + o.Size.Y - obj.Position.Y + constants.CollisionEpsilon
		}
		if d > 0 {
			d = math.Max(0, math.Min(d, contact))
		} else {
			d = math.Min(0, math.Max(d, contact))
		}
	}
	return d
}

func intersects(a, b *resolv.Object, dx, dy float64) bool {
	ax, ay := a.Position.X+dx, a.Position.Y+dy
	return ax < b.Position.X+b.Size.X && ax+a.Size.X > b.Position.X &&
		ay < b.Position.Y+b.Size.Y && ay+a.Size.Y > b.Position.Y
}

// overlapsObstacle reports whether obj currently intersects any obstacle.
func overlapsObstacle(obj *resolv.Object) bool {
	collision := obj.Check(0, 0, types.CollisionSpaceTagObstacle)
	if collision == nil {
		return false
	}
	for _, o := range collision.Objects {
		if intersects(obj, o, 0, 0) {
			return true
		}
	}
	return false
}

// centerOf returns the center of a collision object.
func centerOf(obj *resolv.Object) kinematic.Vector {
	return kinematic.Vector{
		X: obj.Position.X + obj.Size.X/2,
		Y: obj.Position.Y + obj.Size.Y/2,
	}
}

// placeObject centers obj on position.
func placeObject(obj *resolv.Object, position kinematic.Vector) {
	obj.Position.X = position.X - obj.Size.X/2
	obj.Position.Y = position.Y - obj.Size.Y/2
	obj.Update()
}
