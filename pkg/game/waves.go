package game

import (
	"github.com/cbodonnell/isozombie/pkg/game/types"
	"github.com/cbodonnell/isozombie/pkg/iso"
	"github.com/cbodonnell/isozombie/pkg/log"
)

// WaveSize returns how many zombies wave n brings in total.
func WaveSize(base, perWave, n int) int {
	size := base + n*perWave
	if size < 1 {
		size = 1
	}
	return size
}

// updateWaves spawns the pending zombies of the current wave and starts the
// next wave once the current one is cleared and the cooldown has passed.
func (s *Simulation) updateWaves(dt float64) {
	wave := &s.gameState.Wave
	live := s.gameState.LiveZombies()

	if wave.Pending > 0 {
		s.spawnPending(live)
		return
	}
	if live > 0 {
		return
	}

	wave.Cooldown -= dt
	if wave.Cooldown > 0 {
		return
	}

	wave.Number++
	wave.Pending = WaveSize(s.cfg.Waves.Base, s.cfg.Waves.PerWave, wave.Number)
	wave.Cooldown = s.cfg.Waves.Cooldown
	log.Info("Wave %d started with %d zombies", wave.Number, wave.Pending)
	s.publish(&types.WaveStartedEvent{
		Wave:  wave.Number,
		Count: wave.Pending,
	})
	s.spawnPending(live)
}

// spawnPending spawns as many pending zombies as the alive cap allows.
func (s *Simulation) spawnPending(live int) {
	wave := &s.gameState.Wave
	ts := s.terrain.TileSize()
	for wave.Pending > 0 && live < s.cfg.Waves.MaxAlive {
		tile, ok := s.terrain.RandomWalkable(s.rng, s.gameState.Player.Position, s.cfg.Waves.MinSpawnDistance)
		if !ok {
			// try again on the next tick
			return
		}
		z := types.NewZombieState(
			s.gameState.NewID(),
			iso.TileToCoords(tile, ts),
			s.cfg.Zombie.Size,
			s.cfg.Zombie.HitPoints,
			s.rng.Intn(s.cfg.Zombie.Variants),
		)
		s.gameState.AddZombie(z)
		wave.Pending--
		live++
	}
}
