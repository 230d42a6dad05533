// Package game runs the authoritative zombie survival simulation.
package game

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/cbodonnell/isozombie/pkg/config"
	"github.com/cbodonnell/isozombie/pkg/game/types"
	"github.com/cbodonnell/isozombie/pkg/kinematic"
	"github.com/cbodonnell/isozombie/pkg/log"
	"github.com/cbodonnell/isozombie/pkg/pathfinding"
	"github.com/cbodonnell/isozombie/pkg/queue"
	"github.com/cbodonnell/isozombie/pkg/terrain"
)

// ErrSeedMismatch is returned by Restore when a snapshot was taken on
// different terrain.
var ErrSeedMismatch = errors.New("snapshot was taken on a different map")

// Input is the player's intent for a single tick.
type Input struct {
	// MoveX and MoveY are screen relative, each in {-1, 0, 1}; y is down.
	MoveX float64
	MoveY float64
	Fire  bool
	// Aim is the world position aimed at, used when HasAim is set
	Aim    kinematic.Vector
	HasAim bool
	Reload bool
}

type Simulation struct {
	cfg        *config.Config
	terrain    *terrain.Map
	planner    *pathfinding.Planner
	gameState  *types.GameState
	eventQueue queue.Queue
	rng        *rand.Rand
	deltaTime  float64
}

// NewSimulationOptions contains options for creating a new Simulation.
type NewSimulationOptions struct {
	Config  *config.Config
	Terrain *terrain.Map
	// Seed is recorded in the game state; it should be the terrain seed
	Seed int64
	// Rand drives spawns, wandering and death rolls. Defaults to one seeded with Seed.
	Rand *rand.Rand
	// EventQueue receives the events produced by each tick. Optional.
	EventQueue queue.Queue
}

func NewSimulation(opts NewSimulationOptions) *Simulation {
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(opts.Seed))
	}

	s := &Simulation{
		cfg:        opts.Config,
		terrain:    opts.Terrain,
		planner:    pathfinding.NewPlanner(opts.Terrain),
		eventQueue: opts.EventQueue,
		rng:        rng,
		deltaTime:  opts.Config.TickSeconds(),
	}

	s.gameState = types.NewGameState(opts.Seed, NewCollisionSpace(opts.Terrain))
	player := types.NewPlayerState(opts.Terrain.CenterPosition(), s.cfg.Player.Size, s.cfg.Player.HitPoints, s.cfg.Player.Magazine)
	s.gameState.Player = player
	s.gameState.CollisionSpace.Add(player.Object)
	s.gameState.Wave.Cooldown = s.cfg.Waves.Cooldown

	return s
}

// State returns the live game state. Callers must not modify it.
func (s *Simulation) State() *types.GameState {
	return s.gameState
}

func (s *Simulation) Terrain() *terrain.Map {
	return s.terrain
}

func (s *Simulation) Config() *config.Config {
	return s.cfg
}

// Snapshot returns a deep copy of the game state without collision objects.
func (s *Simulation) Snapshot() *types.GameState {
	return s.gameState.Copy()
}

// Restore replaces the game state with a copy of snapshot and rebuilds
// the collision objects.
func (s *Simulation) Restore(snapshot *types.GameState) error {
	if snapshot == nil {
		return fmt.Errorf("snapshot is nil")
	}
	if snapshot.Seed != s.gameState.Seed {
		return ErrSeedMismatch
	}
	if snapshot.Player == nil {
		return fmt.Errorf("snapshot has no player")
	}

	restored := snapshot.Copy()
	restored.CollisionSpace = NewCollisionSpace(s.terrain)

	p := restored.Player
	p.Object = types.NewCollisionObject(p.Position, p.Size, types.CollisionSpaceTagPlayer)
	restored.CollisionSpace.Add(p.Object)

	zombies := restored.Zombies
	restored.Zombies = make(map[uint32]*types.ZombieState, len(zombies))
	for _, z := range zombies {
		z.Object = types.NewCollisionObject(z.Position, z.Size, types.CollisionSpaceTagZombie)
		z.Object.Data = z.ID
		restored.AddZombie(z)
	}

	s.gameState = restored
	log.Debug("Restored game state at %.1fs with %d zombies", restored.Elapsed, len(restored.Zombies))
	return nil
}

// Tick advances the simulation by one fixed step.
func (s *Simulation) Tick(input Input) {
	if s.gameState.Over {
		return
	}
	dt := s.deltaTime
	s.gameState.Elapsed += dt

	s.updatePlayer(input, dt)
	s.updateBullets(dt)
	s.updateZombies(dt)
	s.updateWaves(dt)
}

// publish hands an event to the queue without ever blocking the tick.
func (s *Simulation) publish(event interface{}) {
	if s.eventQueue == nil {
		return
	}
	if err := s.eventQueue.Enqueue(event); err != nil {
		log.Trace("Dropped %T: %v", event, err)
	}
}
