package types

import "github.com/cbodonnell/isozombie/pkg/kinematic"

type BulletState struct {
	ID       uint32           `json:"id"`
	Position kinematic.Vector `json:"position"`
	// Direction is a unit vector in world space
	Direction kinematic.Vector `json:"direction"`
	TTL       float64          `json:"ttl"`
}

func (b *BulletState) Copy() *BulletState {
	c := *b
	return &c
}
