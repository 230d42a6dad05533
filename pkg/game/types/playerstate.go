package types

import (
	"github.com/cbodonnell/isozombie/pkg/iso"
	"github.com/cbodonnell/isozombie/pkg/kinematic"
	"github.com/solarlune/resolv"
)

type PlayerState struct {
	Position kinematic.Vector `json:"position"`
	Velocity kinematic.Vector `json:"velocity"`
	// Facing is the last non-zero movement direction in world space
	Facing         kinematic.Vector `json:"facing"`
	Orientation    iso.Orientation  `json:"orientation"`
	AimOrientation iso.Orientation  `json:"aimOrientation"`
	Stance         Stance           `json:"stance"`
	StanceTime     float64          `json:"stanceTime"`
	Hitpoints      int              `json:"hitpoints"`
	MaxHitpoints   int              `json:"maxHitpoints"`
	Ammo           int              `json:"ammo"`
	Magazine       int              `json:"magazine"`
	ReloadTimer    float64          `json:"reloadTimer"`
	FireCooldown   float64          `json:"fireCooldown"`
	Size           float64          `json:"size"`
	// TODO: there's some redundancy here with the object reference
	Object *resolv.Object `json:"-"`
}

// NewPlayerState creates a player centered on position with a full magazine.
func NewPlayerState(position kinematic.Vector, size float64, hitpoints int, magazine int) *PlayerState {
	p := &PlayerState{
		Position:     position,
		Facing:       kinematic.Vector{X: 1, Y: 1}.Normalize(),
		Orientation:  iso.OrientationDown,
		Stance:       StanceStill,
		Hitpoints:    hitpoints,
		MaxHitpoints: hitpoints,
		Ammo:         magazine,
		Magazine:     magazine,
		Size:         size,
	}
	p.Object = NewCollisionObject(position, size, CollisionSpaceTagPlayer)
	return p
}

// NewCollisionObject creates a square collision object centered on position.
func NewCollisionObject(position kinematic.Vector, size float64, tags ...string) *resolv.Object {
	return resolv.NewObject(position.X-size/2, position.Y-size/2, size, size, tags...)
}

// SetStance changes the stance, restarting the stance clock if it differs.
func (p *PlayerState) SetStance(s Stance) {
	if p.Stance != s {
		p.Stance = s
		p.StanceTime = 0
	}
}

// TakeDamage reduces the player's hitpoints, never below zero.
func (p *PlayerState) TakeDamage(damage int) {
	p.Hitpoints -= damage
	if p.Hitpoints < 0 {
		p.Hitpoints = 0
	}
}

func (p *PlayerState) IsDead() bool {
	return p.Hitpoints <= 0
}

func (p *PlayerState) IsReloading() bool {
	return p.ReloadTimer > 0
}

// Copy returns a copy of the player state with an empty object reference
func (p *PlayerState) Copy() *PlayerState {
	c := *p
	c.Object = nil
	return &c
}
