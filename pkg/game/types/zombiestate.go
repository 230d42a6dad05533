package types

import (
	"github.com/cbodonnell/isozombie/pkg/iso"
	"github.com/cbodonnell/isozombie/pkg/kinematic"
	"github.com/solarlune/resolv"
)

type ZombieState struct {
	ID       uint32           `json:"id"`
	Position kinematic.Vector `json:"position"`
	// Velocity is the current movement direction scaled by speed
	Velocity       kinematic.Vector `json:"velocity"`
	Orientation    iso.Orientation  `json:"orientation"`
	Stance         Stance           `json:"stance"`
	StanceTime     float64          `json:"stanceTime"`
	Hitpoints      int              `json:"hitpoints"`
	AttackCooldown float64          `json:"attackCooldown"`
	Path           []iso.Tile       `json:"path,omitempty"`
	PathGoal       iso.Tile         `json:"pathGoal"`
	RepathTimer    float64          `json:"repathTimer"`
	WanderTimer    float64          `json:"wanderTimer"`
	CorpseTimer    float64          `json:"corpseTimer"`
	// Variant selects the zombie's sprite shade
	Variant int            `json:"variant"`
	Size    float64        `json:"size"`
	Object  *resolv.Object `json:"-"`
}

func NewZombieState(id uint32, position kinematic.Vector, size float64, hitpoints int, variant int) *ZombieState {
	z := &ZombieState{
		ID:          id,
		Position:    position,
		Orientation: iso.OrientationDown,
		Stance:      StanceStill,
		Hitpoints:   hitpoints,
		Variant:     variant,
		Size:        size,
	}
	z.Object = NewCollisionObject(position, size, CollisionSpaceTagZombie)
	z.Object.Data = z.ID
	return z
}

func (z *ZombieState) SetStance(s Stance) {
	if z.Stance != s {
		z.Stance = s
		z.StanceTime = 0
	}
}

func (z *ZombieState) IsDead() bool {
	return z.Stance.IsDead()
}

// TakeDamage applies damage to a live zombie and returns true if the hit
// killed it. A killing hit puts the zombie in the critical death stance
// when critical is set, the normal one otherwise. Dead zombies ignore hits.
func (z *ZombieState) TakeDamage(damage int, critical bool) bool {
	if z.IsDead() {
		return false
	}
	z.Hitpoints -= damage
	if z.Hitpoints > 0 {
		return false
	}
	z.Hitpoints = 0
	z.Velocity = kinematic.Vector{}
	z.Path = nil
	if critical {
		z.SetStance(StanceCriticalDeath)
	} else {
		z.SetStance(StanceNormalDeath)
	}
	return true
}

// Copy returns a deep copy of the zombie state with an empty object reference
func (z *ZombieState) Copy() *ZombieState {
	c := *z
	c.Object = nil
	if z.Path != nil {
		c.Path = make([]iso.Tile, len(z.Path))
		copy(c.Path, z.Path)
	}
	return &c
}
