package game

import (
	"github.com/cbodonnell/isozombie/pkg/game/constants"
	"github.com/cbodonnell/isozombie/pkg/game/types"
	"github.com/cbodonnell/isozombie/pkg/iso"
	"github.com/cbodonnell/isozombie/pkg/kinematic"
)

func clampUnit(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}

func (s *Simulation) updatePlayer(input Input, dt float64) {
	p := s.gameState.Player
	p.StanceTime += dt
	if p.FireCooldown > 0 {
		p.FireCooldown -= dt
	}

	// Movement
	direction := iso.ScreenToWorldDirection(clampUnit(input.MoveX), clampUnit(input.MoveY))
	moving := !direction.IsZero()
	if moving {
		moved := moveObject(p.Object, direction.Scale(s.cfg.Player.Speed*dt))
		p.Position = centerOf(p.Object)
		p.Velocity = moved.Scale(1 / dt)
		p.Facing = direction
		p.Orientation = iso.OrientationFromDegrees(iso.ScreenDirection(direction))
	} else {
		p.Velocity = kinematic.Vector{}
	}

	// Reloading
	if p.IsReloading() {
		p.ReloadTimer -= dt
		if p.ReloadTimer <= 0 {
			p.ReloadTimer = 0
			p.Ammo = p.Magazine
		}
	} else if input.Reload && p.Ammo < p.Magazine {
		s.startReload()
	}

	// Firing
	aim := p.Facing
	if input.HasAim {
		if d := input.Aim.Sub(p.Position); !d.IsZero() {
			aim = d.Normalize()
		}
	}
	p.AimOrientation = iso.OrientationFromDegrees(iso.ScreenDirection(aim))

	if input.Fire && p.FireCooldown <= 0 && p.Ammo > 0 && !p.IsReloading() {
		s.fire(aim)
	}

	// Stance
	switch {
	case p.Stance == types.StanceFiring && p.StanceTime < constants.FiringStanceDuration:
		// hold the firing stance for a moment after a shot
	case moving:
		p.SetStance(types.StanceWalking)
	default:
		p.SetStance(types.StanceStill)
	}
}

func (s *Simulation) fire(direction kinematic.Vector) {
	p := s.gameState.Player
	b := &types.BulletState{
		ID:        s.gameState.NewID(),
		Position:  p.Position.Add(direction.Scale(constants.BulletSpawnOffset)),
		Direction: direction,
		TTL:       s.cfg.Bullet.TTL,
	}
	s.gameState.Bullets[b.ID] = b
	s.gameState.ShotsFired++

	p.Ammo--
	p.FireCooldown = s.cfg.Player.FireCooldown
	p.Stance = types.StanceFiring
	p.StanceTime = 0

	s.publish(&types.ShotFiredEvent{
		BulletID:  b.ID,
		Position:  b.Position,
		Direction: direction,
		Ammo:      p.Ammo,
	})

	if p.Ammo == 0 {
		s.startReload()
	}
}

func (s *Simulation) startReload() {
	p := s.gameState.Player
	p.ReloadTimer = s.cfg.Player.ReloadTime
	if p.ReloadTimer <= 0 {
		p.Ammo = p.Magazine
	}
	s.publish(&types.ReloadEvent{Duration: s.cfg.Player.ReloadTime})
}
