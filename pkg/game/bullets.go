package game

import (
	"github.com/cbodonnell/isozombie/pkg/game/constants"
	"github.com/cbodonnell/isozombie/pkg/game/types"
	"github.com/cbodonnell/isozombie/pkg/iso"
	"github.com/cbodonnell/isozombie/pkg/log"
)

// updateBullets moves every bullet and resolves what it runs into.
// A bullet hits at most one zombie.
func (s *Simulation) updateBullets(dt float64) {
	zombieIDs := s.gameState.ZombieIDs()

	for _, id := range s.gameState.BulletIDs() {
		b := s.gameState.Bullets[id]
		b.TTL -= dt
		if b.TTL <= 0 {
			delete(s.gameState.Bullets, id)
			continue
		}

		b.Position = b.Position.Add(b.Direction.Scale(s.cfg.Bullet.Speed * dt))
		if s.terrain.BlocksBullets(iso.CoordsToTile(b.Position, s.terrain.TileSize())) {
			delete(s.gameState.Bullets, id)
			continue
		}

		for _, zid := range zombieIDs {
			z := s.gameState.Zombies[zid]
			if z.IsDead() || !iso.Overlaps(b.Position, z.Position, s.cfg.Zombie.Hitbox, s.cfg.Zombie.Hitbox) {
				continue
			}
			s.hitZombie(z)
			delete(s.gameState.Bullets, id)
			break
		}
	}
}

func (s *Simulation) hitZombie(z *types.ZombieState) {
	damage := s.cfg.Bullet.Damage
	critical := s.rng.Float64() < constants.CriticalDeathChance
	killed := z.TakeDamage(damage, critical)

	s.publish(&types.ZombieHitEvent{
		ZombieID:  z.ID,
		Position:  z.Position,
		Damage:    damage,
		Hitpoints: z.Hitpoints,
	})

	if !killed {
		return
	}

	points := s.cfg.Zombie.Score
	s.gameState.Score += points
	s.gameState.Kills++
	z.CorpseTimer = s.cfg.Zombie.CorpseTTL
	log.Debug("Zombie %d killed (critical: %t)", z.ID, critical)

	s.publish(&types.ZombieKilledEvent{
		ZombieID: z.ID,
		Position: z.Position,
		Critical: critical,
		Points:   points,
	})
}
