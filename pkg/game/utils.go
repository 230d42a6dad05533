package game

import (
	"time"

	"github.com/cbodonnell/isozombie/pkg/config"
	"github.com/cbodonnell/isozombie/pkg/game/types"
	"github.com/cbodonnell/isozombie/pkg/terrain"
)

// Result summarises a finished or abandoned session.
type Result struct {
	Score      int
	Kills      int
	Wave       int
	ShotsFired int
	Duration   time.Duration
}

func ResultFromState(state *types.GameState) Result {
	return Result{
		Score:      state.Score,
		Kills:      state.Kills,
		Wave:       state.Wave.Number,
		ShotsFired: state.ShotsFired,
		Duration:   time.Duration(state.Elapsed * float64(time.Second)),
	}
}

// Accuracy is the share of shots that killed a zombie.
func (r Result) Accuracy() float64 {
	if r.ShotsFired == 0 {
		return 0
	}
	return float64(r.Kills) / float64(r.ShotsFired)
}

// GenerateTerrain builds the map the world config describes for a seed.
func GenerateTerrain(cfg *config.Config, seed int64) *terrain.Map {
	w := cfg.World
	return terrain.Generate(&terrain.GenerateOptions{
		Width:        w.TilesW,
		Height:       w.TilesH,
		TileSize:     w.TileSize,
		Seed:         seed,
		NoiseScale:   w.NoiseScale,
		ShapeDensity: w.ShapeDensity,
		SpawnRadius:  w.SpawnRadius,
	})
}

// PickSeed returns the configured seed, or one from the clock when it is zero.
func PickSeed(cfg *config.Config, now time.Time) int64 {
	if cfg.World.Seed != 0 {
		return cfg.World.Seed
	}
	return now.UnixNano()
}
