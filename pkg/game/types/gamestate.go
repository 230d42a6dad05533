package types

import (
	"sort"

	"github.com/solarlune/resolv"
)

// WaveState tracks the current wave of zombies.
type WaveState struct {
	Number int `json:"number"`
	// Pending zombies of the current wave still waiting to spawn
	Pending int `json:"pending"`
	// Cooldown is the time left before the next wave starts
	Cooldown float64 `json:"cooldown"`
}

type GameState struct {
	// Seed is the terrain seed the state was played on
	Seed int64 `json:"seed"`
	// PlayerName is who the session's score is recorded for
	PlayerName string `json:"playerName"`
	// Elapsed is the simulated time in seconds
	Elapsed    float64                 `json:"elapsed"`
	Player     *PlayerState            `json:"player"`
	Zombies    map[uint32]*ZombieState `json:"zombies"`
	Bullets    map[uint32]*BulletState `json:"bullets"`
	Wave       WaveState               `json:"wave"`
	Score      int                     `json:"score"`
	Kills      int                     `json:"kills"`
	ShotsFired int                     `json:"shotsFired"`
	Over       bool                    `json:"over"`
	NextID     uint32                  `json:"nextId"`
	// CollisionSpace is a resolv.Space used for collision detection
	CollisionSpace *resolv.Space `json:"-"`
}

func NewGameState(seed int64, collisionSpace *resolv.Space) *GameState {
	return &GameState{
		Seed:           seed,
		Zombies:        make(map[uint32]*ZombieState),
		Bullets:        make(map[uint32]*BulletState),
		CollisionSpace: collisionSpace,
	}
}

// Copy returns a deep copy of the game state without collision objects.
func (g *GameState) Copy() *GameState {
	c := &GameState{
		Seed:       g.Seed,
		PlayerName: g.PlayerName,
		Elapsed:    g.Elapsed,
		Zombies:    make(map[uint32]*ZombieState, len(g.Zombies)),
		Bullets:    make(map[uint32]*BulletState, len(g.Bullets)),
		Wave:       g.Wave,
		Score:      g.Score,
		Kills:      g.Kills,
		ShotsFired: g.ShotsFired,
		Over:       g.Over,
		NextID:     g.NextID,
	}
	if g.Player != nil {
		c.Player = g.Player.Copy()
	}
	for id, z := range g.Zombies {
		c.Zombies[id] = z.Copy()
	}
	for id, b := range g.Bullets {
		c.Bullets[id] = b.Copy()
	}
	return c
}

// NewID returns the next free entity ID.
func (g *GameState) NewID() uint32 {
	g.NextID++
	return g.NextID
}

// ZombieIDs returns the zombie IDs in ascending order.
func (g *GameState) ZombieIDs() []uint32 {
	ids := make([]uint32, 0, len(g.Zombies))
	for id := range g.Zombies {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// BulletIDs returns the bullet IDs in ascending order.
func (g *GameState) BulletIDs() []uint32 {
	ids := make([]uint32, 0, len(g.Bullets))
	for id := range g.Bullets {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// LiveZombies counts the zombies that are not dead.
func (g *GameState) LiveZombies() int {
	n := 0
	for _, z := range g.Zombies {
		if !z.IsDead() {
			n++
		}
	}
	return n
}

func (g *GameState) AddZombie(z *ZombieState) {
	g.Zombies[z.ID] = z
	if g.CollisionSpace != nil && z.Object != nil {
		g.CollisionSpace.Add(z.Object)
	}
}

func (g *GameState) RemoveZombie(id uint32) {
	z, ok := g.Zombies[id]
	if !ok {
		return
	}
	if g.CollisionSpace != nil && z.Object != nil {
		g.CollisionSpace.Remove(z.Object)
	}
	delete(g.Zombies, id)
}
