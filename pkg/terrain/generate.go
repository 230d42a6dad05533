package terrain

import (
	"math/rand"

	"github.com/cbodonnell/isozombie/pkg/iso"
	"github.com/ojrac/opensimplex-go"
)

const (
	waterThreshold = -0.45
	sandThreshold  = -0.3
	dirtThreshold  = 0.45
)

type GenerateOptions struct {
	Width        int
	Height       int
	TileSize     float64
	Seed         int64
	NoiseScale   float64
	ShapeDensity float64
	SpawnRadius  int
}

// Generate builds a map from seeded 2D noise and scatters shapes over it.
// The same options always produce the same map.
func Generate(opts *GenerateOptions) *Map {
	m := New(opts.Width, opts.Height, opts.TileSize)
	noise := opensimplex.New(opts.Seed)
	center := m.Center()

	inSpawn := func(t iso.Tile) bool {
		dx, dy := t.X-center.X, t.Y-center.Y
		return dx*dx+dy*dy <= opts.SpawnRadius*opts.SpawnRadius
	}

	for y := 1; y < opts.Height-1; y++ {
		for x := 1; x < opts.Width-1; x++ {
			t := iso.Tile{X: x, Y: y}
			n := noise.Eval2(float64(x)*opts.NoiseScale, float64(y)*opts.NoiseScale)
			k := kindFromNoise(n)
			if inSpawn(t) && !k.Walkable() {
				k = Grass
			}
			m.SetTile(t, k)
		}
	}

	rng := rand.New(rand.NewSource(opts.Seed))
	for y := 1; y < opts.Height-1; y++ {
		for x := 1; x < opts.Width-1; x++ {
			t := iso.Tile{X: x, Y: y}
			// draw for every tile so placement does not depend on kinds
			roll := rng.Float64()
			kind := ShapeKind(rng.Intn(ShapeKindCount))
			if roll >= opts.ShapeDensity || inSpawn(t) {
				continue
			}
			m.AddShape(kind, t)
		}
	}

	return m
}

func kindFromNoise(n float64) Kind {
	switch {
	case n < waterThreshold:
		return Water
	case n < sandThreshold:
		return Sand
	case n > dirtThreshold:
		return Dirt
	default:
		return Grass
	}
}
