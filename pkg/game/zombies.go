package game

import (
	"github.com/cbodonnell/isozombie/pkg/game/constants"
	"github.com/cbodonnell/isozombie/pkg/game/types"
	"github.com/cbodonnell/isozombie/pkg/iso"
	"github.com/cbodonnell/isozombie/pkg/kinematic"
	"github.com/cbodonnell/isozombie/pkg/log"
)

func (s *Simulation) updateZombies(dt float64) {
	p := s.gameState.Player
	playerTile := iso.CoordsToTile(p.Position, s.terrain.TileSize())

	for _, id := range s.gameState.ZombieIDs() {
		z := s.gameState.Zombies[id]
		z.StanceTime += dt

		if z.IsDead() {
			z.CorpseTimer -= dt
			if z.CorpseTimer <= 0 {
				s.gameState.RemoveZombie(id)
			}
			continue
		}

		if z.AttackCooldown > 0 {
			z.AttackCooldown -= dt
		}

		distance := z.Position.Distance(p.Position)
		switch {
		case p.IsDead():
			s.wander(z, dt)
		case distance <= s.cfg.Zombie.AttackRange:
			s.attack(z)
		case distance <= s.cfg.Zombie.AggroRadius:
			s.chase(z, playerTile, dt)
		default:
			s.wander(z, dt)
		}

		if s.gameState.Over {
			return
		}
	}
}

func (s *Simulation) attack(z *types.ZombieState) {
	p := s.gameState.Player
	z.Velocity = kinematic.Vector{}
	z.Path = nil
	z.SetStance(types.StanceAttacking)
	z.Orientation = iso.OrientationFromDegrees(iso.ScreenDirection(p.Position.Sub(z.Position)))

	if z.AttackCooldown > 0 {
		return
	}
	z.AttackCooldown = s.cfg.Zombie.AttackCooldown

	p.TakeDamage(s.cfg.Zombie.Damage)
	s.publish(&types.PlayerHitEvent{
		ZombieID:  z.ID,
		Position:  p.Position,
		Damage:    s.cfg.Zombie.Damage,
		Hitpoints: p.Hitpoints,
	})

	if p.IsDead() {
		s.killPlayer(z)
	}
}

func (s *Simulation) killPlayer(by *types.ZombieState) {
	p := s.gameState.Player
	p.Velocity = kinematic.Vector{}
	p.SetStance(types.StanceNormalDeath)
	s.gameState.Over = true
	log.Info("Player killed by zombie %d after %.1fs with score %d", by.ID, s.gameState.Elapsed, s.gameState.Score)

	s.publish(&types.PlayerKilledEvent{
		ZombieID: by.ID,
		Position: p.Position,
		Elapsed:  s.gameState.Elapsed,
	})
}

// chase walks the zombie toward the player along an A* path, refreshed
// on an interval or whenever the player changes tile.
func (s *Simulation) chase(z *types.ZombieState, playerTile iso.Tile, dt float64) {
	ts := s.terrain.TileSize()
	z.RepathTimer -= dt
	if z.RepathTimer <= 0 || z.PathGoal != playerTile {
		z.Path = s.planner.FindPath(iso.CoordsToTile(z.Position, ts), playerTile)
		z.PathGoal = playerTile
		z.RepathTimer = s.cfg.Zombie.RepathInterval
	}

	target := s.gameState.Player.Position
	for len(z.Path) > 0 {
		waypoint := iso.TileToCoords(z.Path[0], ts)
		if z.Position.Distance(waypoint) <= ts*constants.ZombieWaypointReach {
			z.Path = z.Path[1:]
			continue
		}
		// the last waypoint is the player's tile, go straight for the player there
		if len(z.Path) > 1 {
			target = waypoint
		}
		break
	}

	direction := target.Sub(z.Position).Normalize()
	s.moveZombie(z, direction.Scale(s.cfg.Zombie.Speed), dt)
	z.SetStance(types.StanceWalking)
	// pick a fresh direction as soon as the zombie loses interest
	z.WanderTimer = 0
}

func (s *Simulation) wander(z *types.ZombieState, dt float64) {
	z.Path = nil
	z.WanderTimer -= dt
	if z.WanderTimer <= 0 {
		z.WanderTimer = s.cfg.Zombie.WanderInterval
		if s.rng.Float64() < constants.ZombieIdleChance {
			z.Velocity = kinematic.Vector{}
		} else {
			direction := kinematic.Vector{X: s.rng.Float64()*2 - 1, Y: s.rng.Float64()*2 - 1}.Normalize()
			z.Velocity = direction.Scale(s.cfg.Zombie.Speed * constants.ZombieWanderSpeedFactor)
		}
	}

	if z.Velocity.IsZero() {
		z.SetStance(types.StanceStill)
		return
	}

	if moved := s.moveZombie(z, z.Velocity, dt); moved.IsZero() {
		// blocked, turn around on the next tick
		z.WanderTimer = 0
	}
	z.SetStance(types.StanceWalking)
}

func (s *Simulation) moveZombie(z *types.ZombieState, velocity kinematic.Vector, dt float64) kinematic.Vector {
	moved := moveObject(z.Object, velocity.Scale(dt))
	z.Position = centerOf(z.Object)
	z.Velocity = velocity
	if !velocity.IsZero() {
		z.Orientation = iso.OrientationFromDegrees(iso.ScreenDirection(velocity))
	}
	return moved
}
