package types

const (
	CollisionSpaceTagPlayer   string = "player"
	CollisionSpaceTagZombie   string = "zombie"
	CollisionSpaceTagObstacle string = "obstacle"
)

// Stance is what a character is doing. It selects the animation played.
type Stance uint8

const (
	StanceStill Stance = iota
	StanceWalking
	StanceFiring
	StanceAttacking
	StanceNormalDeath
	StanceCriticalDeath
)

// IsDead returns true for both death stances
func (s Stance) IsDead() bool {
	return s == StanceNormalDeath || s == StanceCriticalDeath
}

func (s Stance) String() string {
	switch s {
	case StanceStill:
		return "still"
	case StanceWalking:
		return "walking"
	case StanceFiring:
		return "firing"
	case StanceAttacking:
		return "attacking"
	case StanceNormalDeath:
		return "normal-death"
	case StanceCriticalDeath:
		return "critical-death"
	}
	return "unknown"
}
