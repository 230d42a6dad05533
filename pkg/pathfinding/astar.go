// Package pathfinding finds tile paths across the terrain with A*.
package pathfinding

import (
	"container/heap"
	"math"

	"github.com/cbodonnell/isozombie/pkg/iso"
	"github.com/kamstrup/intmap"
)

const (
	// MaxExpansions bounds the nodes a single search may expand.
	MaxExpansions = 4096
	// GoalSnapRings is how far a blocked goal is moved to find open ground.
	GoalSnapRings = 3

	diagonalCost = math.Sqrt2
)

// Grid is the walkability information the planner searches.
type Grid interface {
	Size() (int, int)
	Walkable(t iso.Tile) bool
}

type node struct {
	id    int
	f     float64
	index int
}

type nodeHeap []*node

func (h nodeHeap) Len() int           { return len(h) }
func (h nodeHeap) Less(i, j int) bool { return h[i].f < h[j].f }
func (h nodeHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *nodeHeap) Push(x any) {
	n := x.(*node)
	n.index = len(*h)
	*h = append(*h, n)
}

func (h *nodeHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	item.index = -1
	*h = old[:n-1]
	return item
}

var neighbours = [8]iso.Tile{
	{X: -1, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: -1}, {X: 0, Y: 1},
	{X: -1, Y: -1}, {X: 1, Y: -1}, {X: -1, Y: 1}, {X: 1, Y: 1},
}

// Planner runs A* searches over a grid. Its bookkeeping is reused between
// searches, so a Planner must not be shared between goroutines.
type Planner struct {
	grid   Grid
	width  int
	open   nodeHeap
	closed *intmap.Map[int, struct{}]
	from   *intmap.Map[int, int]
	g      *intmap.Map[int, float64]

	// maxExpansions is the search budget, MaxExpansions unless changed
	maxExpansions int
	// expanded is how many nodes the last search expanded
	expanded int
}

func NewPlanner(grid Grid) *Planner {
	w, _ := grid.Size()
	return &Planner{
		grid:   grid,
		width:  w,
		closed: intmap.New[int, struct{}](256),
		from:   intmap.New[int, int](256),
		g:      intmap.New[int, float64](256),

		maxExpansions: MaxExpansions,
	}
}

func (p *Planner) id(t iso.Tile) int {
	return t.Y*p.width + t.X
}

func (p *Planner) tile(id int) iso.Tile {
	return iso.Tile{X: id % p.width, Y: id / p.width}
}

// FindPath returns the tiles leading from start to goal, excluding start.
// The result is nil when no path exists or the search budget runs out.
// A goal that is not walkable is moved to the nearest walkable tile.
func (p *Planner) FindPath(start, goal iso.Tile) []iso.Tile {
	if !p.grid.Walkable(start) {
		return nil
	}
	if !p.grid.Walkable(goal) {
		var ok bool
		if goal, ok = p.nearestWalkable(goal); !ok {
			return nil
		}
	}
	if start == goal {
		return []iso.Tile{}
	}

	p.open = p.open[:0]
	p.closed.Clear()
	p.from.Clear()
	p.g.Clear()

	startID, goalID := p.id(start), p.id(goal)
	p.g.Put(startID, 0)
	heap.Push(&p.open, &node{id: startID, f: octile(start, goal)})

	p.expanded = 0
	for p.open.Len() > 0 && p.expanded < p.maxExpansions {
		current := heap.Pop(&p.open).(*node)
		if current.id == goalID {
			return p.reconstruct(startID, goalID)
		}
		// stale entries left behind by a cheaper push
		if _, done := p.closed.Get(current.id); done {
			continue
		}
		p.closed.Put(current.id, struct{}{})
		p.expanded++

		ct := p.tile(current.id)
		cg, _ := p.g.Get(current.id)
		for i, d := range neighbours {
			nt := ct.Add(d)
			if !p.grid.Walkable(nt) {
				continue
			}
			cost := 1.0
			if i >= 4 {
				// no squeezing between two blocked tiles
				if !p.grid.Walkable(iso.Tile{X: ct.X + d.X, Y: ct.Y}) || !p.grid.Walkable(iso.Tile{X: ct.X, Y: ct.Y + d.Y}) {
					continue
				}
				cost = diagonalCost
			}

			nid := p.id(nt)
			if _, done := p.closed.Get(nid); done {
				continue
			}
			tentative := cg + cost
			if existing, ok := p.g.Get(nid); ok && tentative >= existing {
				continue
			}
			p.g.Put(nid, tentative)
			p.from.Put(nid, current.id)
			heap.Push(&p.open, &node{id: nid, f: tentative + octile(nt, goal)})
		}
	}

	return nil
}

func (p *Planner) reconstruct(startID, goalID int) []iso.Tile {
	var path []iso.Tile
	for id := goalID; id != startID; {
		path = append(path, p.tile(id))
		prev, ok := p.from.Get(id)
		if !ok {
			return nil
		}
		id = prev
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

func (p *Planner) nearestWalkable(t iso.Tile) (iso.Tile, bool) {
	for r := 1; r <= GoalSnapRings; r++ {
		best, found := iso.Tile{}, false
		bestDist := math.MaxFloat64
		for dy := -r; dy <= r; dy++ {
			for dx := -r; dx <= r; dx++ {
				if max(abs(dx), abs(dy)) != r {
					continue
				}
				c := iso.Tile{X: t.X + dx, Y: t.Y + dy}
				if !p.grid.Walkable(c) {
					continue
				}
				if d := math.Hypot(float64(dx), float64(dy)); d < bestDist {
					best, bestDist, found = c, d, true
				}
			}
		}
		if found {
			return best, true
		}
	}
	return iso.Tile{}, false
}

func octile(a, b iso.Tile) float64 {
	dx := float64(abs(a.X - b.X))
	dy := float64(abs(a.Y - b.Y))
	return math.Max(dx, dy) + (diagonalCost-1)*math.Min(dx, dy)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
