package constants

const (
	// BulletSpawnOffset is how far in front of the player bullets appear
	BulletSpawnOffset float64 = 16.0
	// FiringStanceDuration is how long the player holds the firing stance after a shot
	FiringStanceDuration float64 = 0.2 // seconds

	// ZombieWanderSpeedFactor scales the zombie speed while wandering
	ZombieWanderSpeedFactor float64 = 0.4
	// ZombieIdleChance is the chance a wandering zombie stands still for an interval
	ZombieIdleChance float64 = 0.35
	// ZombieWaypointReach is the fraction of a tile at which a path waypoint counts as reached
	ZombieWaypointReach float64 = 0.25
	// CriticalDeathChance is the chance a killing hit is a critical one
	CriticalDeathChance float64 = 0.5

	// CollisionEpsilon keeps moved objects from resting exactly on an obstacle edge
	CollisionEpsilon float64 = 0.001

	// EventQueueSize is the capacity of the simulation event queue
	EventQueueSize int = 256
)
