package types

import "github.com/cbodonnell/isozombie/pkg/kinematic"

type ShotFiredEvent struct {
	BulletID  uint32
	Position  kinematic.Vector
	Direction kinematic.Vector
	Ammo      int
}

type ReloadEvent struct {
	Duration float64
}

type ZombieHitEvent struct {
	ZombieID  uint32
	Position  kinematic.Vector
	Damage    int
	Hitpoints int
}

type ZombieKilledEvent struct {
	ZombieID uint32
	Position kinematic.Vector
	Critical bool
	Points   int
}

type PlayerHitEvent struct {
	ZombieID  uint32
	Position  kinematic.Vector
	Damage    int
	Hitpoints int
}

type PlayerKilledEvent struct {
	ZombieID uint32
	Position kinematic.Vector
	Elapsed  float64
}

type WaveStartedEvent struct {
	Wave  int
	Count int
}
