package game

import (
	"math"
	"math/rand"
	"testing"
	"time"

	mocks "github.com/cbodonnell/isozombie/mocks/github.com/cbodonnell/isozombie/pkg/queue"
	"github.com/cbodonnell/isozombie/pkg/config"
	"github.com/cbodonnell/isozombie/pkg/game/types"
	"github.com/cbodonnell/isozombie/pkg/iso"
	"github.com/cbodonnell/isozombie/pkg/kinematic"
	"github.com/cbodonnell/isozombie/pkg/queue"
	"github.com/cbodonnell/isozombie/pkg/terrain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testTileSize = 48.0

func testConfig(mutate func(c *config.Config)) *config.Config {
	cfg := config.Default()
	cfg.Waves.Cooldown = math.Inf(1)
	if mutate != nil {
		mutate(cfg)
	}
	return cfg
}

func newTestSimulation(t *testing.T, m *terrain.Map, mutate func(c *config.Config)) (*Simulation, *queue.InMemoryQueue) {
	t.Helper()
	if m == nil {
		m = terrain.New(20, 20, testTileSize)
	}
	q := queue.NewInMemoryQueue(1024)
	s := NewSimulation(NewSimulationOptions{
		Config:     testConfig(mutate),
		Terrain:    m,
		Seed:       1,
		Rand:       rand.New(rand.NewSource(1)),
		EventQueue: q,
	})
	return s, q
}

func addZombie(s *Simulation, position kinematic.Vector) *types.ZombieState {
	z := types.NewZombieState(s.gameState.NewID(), position, s.cfg.Zombie.Size, s.cfg.Zombie.HitPoints, 0)
	s.gameState.AddZombie(z)
	return z
}

func drainEvents(t *testing.T, q queue.Queue) []interface{} {
	t.Helper()
	events, err := q.ReadAllMessages()
	require.NoError(t, err)
	return events
}

func countEvents[T any](events []interface{}) int {
	n := 0
	for _, e := range events {
		if _, ok := e.(T); ok {
			n++
		}
	}
	return n
}

func TestSimulation_playerMovement(t *testing.T) {
	tests := []struct {
		name        string
		input       Input
		orientation iso.Orientation
	}{
		{name: "up", input: Input{MoveY: -1}, orientation: iso.OrientationUp},
		{name: "down", input: Input{MoveY: 1}, orientation: iso.OrientationDown},
		{name: "left", input: Input{MoveX: -1}, orientation: iso.OrientationLeft},
		{name: "right", input: Input{MoveX: 1}, orientation: iso.OrientationRight},
		{name: "up right", input: Input{MoveX: 1, MoveY: -1}, orientation: iso.OrientationUpRight},
		{name: "down left", input: Input{MoveX: -1, MoveY: 1}, orientation: iso.OrientationDownLeft},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newTestSimulation(t, nil, nil)
			start := s.State().Player.Position

			s.Tick(tt.input)

			p := s.State().Player
			moved := p.Position.Sub(start)
			// diagonals are no faster than straight lines
			assert.InDelta(t, s.cfg.Player.Speed*s.cfg.TickSeconds(), moved.Length(), 1e-9)
			assert.Equal(t, tt.orientation, p.Orientation)
			assert.Equal(t, types.StanceWalking, p.Stance)

			// the on-screen direction of travel matches the input
			sx, sy := iso.CartesianToIsometric(moved.X, moved.Y)
			if tt.input.MoveX != 0 {
				assert.Equal(t, math.Signbit(tt.input.MoveX), math.Signbit(sx))
			} else {
				assert.InDelta(t, 0, sx, 1e-9)
			}
			if tt.input.MoveY != 0 {
				assert.Equal(t, math.Signbit(tt.input.MoveY), math.Signbit(sy))
			} else {
				assert.InDelta(t, 0, sy, 1e-9)
			}
		})
	}
}

func TestSimulation_playerStill(t *testing.T) {
	s, _ := newTestSimulation(t, nil, nil)
	start := s.State().Player.Position
	s.Tick(Input{})
	assert.Equal(t, start, s.State().Player.Position)
	assert.Equal(t, types.StanceStill, s.State().Player.Stance)
	assert.True(t, s.State().Player.Velocity.IsZero())
}

func TestSimulation_playerBlockedByObstacles(t *testing.T) {
	s, _ := newTestSimulation(t, nil, nil)

	for i := 0; i < 600; i++ {
		s.Tick(Input{MoveX: -1})
		require.False(t, overlapsObstacle(s.State().Player.Object), "tick %d", i)
	}

	p := s.State().Player
	half := s.cfg.Player.Size / 2
	// pinned into the corner formed by the left and bottom walls
	assert.InDelta(t, testTileSize+half, p.Position.X, 0.01)
	assert.InDelta(t, 19*testTileSize-half, p.Position.Y, 0.01)
	assert.Equal(t, p.Position, centerOf(p.Object))
}

func TestSimulation_firing(t *testing.T) {
	s, q := newTestSimulation(t, nil, nil)
	p := s.State().Player
	aim := p.Position.Add(kinematic.Vector{X: 100})

	s.Tick(Input{Fire: true, Aim: aim, HasAim: true})

	require.Len(t, s.State().Bullets, 1)
	for _, b := range s.State().Bullets {
		assert.Equal(t, kinematic.Vector{X: 1, Y: 0}, b.Direction)
	}
	assert.Equal(t, s.cfg.Player.Magazine-1, p.Ammo)
	assert.Equal(t, 1, s.State().ShotsFired)
	assert.Equal(t, types.StanceFiring, p.Stance)
	assert.Equal(t, iso.OrientationFromDegrees(iso.ScreenDirection(kinematic.Vector{X: 1})), p.AimOrientation)
	assert.Equal(t, 1, countEvents[*types.ShotFiredEvent](drainEvents(t, q)))

	// still cooling down
	s.Tick(Input{Fire: true, Aim: aim, HasAim: true})
	assert.Equal(t, 1, s.State().ShotsFired)

	for i := 0; i < 12; i++ {
		s.Tick(Input{Fire: true, Aim: aim, HasAim: true})
	}
	assert.Equal(t, 2, s.State().ShotsFired)
}

func TestSimulation_firingWithoutAim(t *testing.T) {
	s, _ := newTestSimulation(t, nil, nil)
	s.Tick(Input{MoveX: 1})
	s.Tick(Input{Fire: true})

	require.Len(t, s.State().Bullets, 1)
	for _, b := range s.State().Bullets {
		assert.InDelta(t, s.State().Player.Facing.X, b.Direction.X, 1e-9)
		assert.InDelta(t, s.State().Player.Facing.Y, b.Direction.Y, 1e-9)
	}
}

func TestSimulation_reload(t *testing.T) {
	s, q := newTestSimulation(t, nil, func(c *config.Config) {
		c.Player.Magazine = 2
		c.Player.FireCooldown = 0
		c.Player.ReloadTime = 0.5
	})
	p := s.State().Player
	fire := Input{Fire: true}

	s.Tick(fire)
	s.Tick(fire)
	assert.Equal(t, 0, p.Ammo)
	assert.True(t, p.IsReloading())
	assert.Equal(t, 1, countEvents[*types.ReloadEvent](drainEvents(t, q)))

	s.Tick(fire)
	assert.Equal(t, 2, s.State().ShotsFired, "no shots while reloading")

	for i := 0; i < 40; i++ {
		s.Tick(Input{})
	}
	assert.False(t, p.IsReloading())
	assert.Equal(t, 2, p.Ammo)

	// manual reload only when the magazine is not full
	s.Tick(Input{Reload: true})
	assert.False(t, p.IsReloading())
	s.Tick(fire)
	s.Tick(Input{Reload: true})
	assert.True(t, p.IsReloading())
}

func TestSimulation_bulletKillsZombie(t *testing.T) {
	s, q := newTestSimulation(t, nil, func(c *config.Config) {
		c.Zombie.Speed = 0
		c.Zombie.AggroRadius = 0
		c.Zombie.AttackRange = 0
		c.Zombie.CorpseTTL = 0.5
	})
	p := s.State().Player
	z := addZombie(s, p.Position.Add(kinematic.Vector{X: 150}))
	shoot := Input{Fire: true, Aim: z.Position, HasAim: true}

	settle := func() {
		for i := 0; i < 20; i++ {
			s.Tick(Input{})
		}
	}

	s.Tick(shoot)
	settle()
	assert.Equal(t, s.cfg.Zombie.HitPoints-s.cfg.Bullet.Damage, z.Hitpoints)
	assert.Empty(t, s.State().Bullets, "the bullet is spent on the zombie")
	events := drainEvents(t, q)
	assert.Equal(t, 1, countEvents[*types.ZombieHitEvent](events))
	assert.Equal(t, 0, countEvents[*types.ZombieKilledEvent](events))

	s.Tick(shoot)
	settle()
	assert.True(t, z.IsDead())
	assert.Equal(t, 1, s.State().Kills)
	assert.Equal(t, s.cfg.Zombie.Score, s.State().Score)
	events = drainEvents(t, q)
	assert.Equal(t, 1, countEvents[*types.ZombieKilledEvent](events))

	// a corpse takes no more hits
	s.Tick(shoot)
	settle()
	assert.Equal(t, 1, s.State().Kills)
	assert.Equal(t, 0, countEvents[*types.ZombieHitEvent](drainEvents(t, q)))

	// and is cleared once its timer runs out
	for i := 0; i < 40; i++ {
		s.Tick(Input{})
	}
	assert.Empty(t, s.State().Zombies)
	assert.NotContains(t, s.State().CollisionSpace.Objects(), z.Object)
}

func TestSimulation_bulletStoppedByShape(t *testing.T) {
	m := terrain.New(20, 20, testTileSize)
	center := m.Center()
	require.True(t, m.AddShape(terrain.Rock, center.Add(iso.Tile{X: 3})))

	s, _ := newTestSimulation(t, m, nil)
	p := s.State().Player
	s.Tick(Input{Fire: true, Aim: p.Position.Add(kinematic.Vector{X: 1}), HasAim: true})
	for i := 0; i < 10; i++ {
		s.Tick(Input{})
	}
	assert.Empty(t, s.State().Bullets)
}

func TestSimulation_zombieKillsPlayer(t *testing.T) {
	s, q := newTestSimulation(t, nil, func(c *config.Config) {
		c.Player.HitPoints = 20
		c.Zombie.Damage = 10
		c.Zombie.AttackCooldown = 0.5
	})
	p := s.State().Player
	z := addZombie(s, p.Position.Add(kinematic.Vector{X: 20}))

	s.Tick(Input{})
	assert.Equal(t, 10, p.Hitpoints)
	assert.Equal(t, types.StanceAttacking, z.Stance)
	assert.False(t, s.State().Over)

	for i := 0; i < 60 && !s.State().Over; i++ {
		s.Tick(Input{})
	}
	require.True(t, s.State().Over)
	assert.True(t, p.IsDead())
	assert.Equal(t, types.StanceNormalDeath, p.Stance)

	events := drainEvents(t, q)
	assert.Equal(t, 2, countEvents[*types.PlayerHitEvent](events))
	assert.Equal(t, 1, countEvents[*types.PlayerKilledEvent](events))

	// nothing happens once the game is over
	elapsed := s.State().Elapsed
	s.Tick(Input{MoveX: 1, Fire: true})
	assert.Equal(t, elapsed, s.State().Elapsed)
	assert.Empty(t, s.State().Bullets)
}

func TestSimulation_zombieChasesAroundWater(t *testing.T) {
	m := terrain.New(20, 20, testTileSize)
	for y := 1; y < 16; y++ {
		m.SetTile(iso.Tile{X: 7, Y: y}, terrain.Water)
	}
	s, _ := newTestSimulation(t, m, func(c *config.Config) {
		c.Player.HitPoints = 100000
	})
	p := s.State().Player
	z := addZombie(s, iso.TileToCoords(iso.Tile{X: 4, Y: 10}, testTileSize))

	for i := 0; i < 1500 && p.Hitpoints == p.MaxHitpoints; i++ {
		s.Tick(Input{})
		require.False(t, overlapsObstacle(z.Object), "tick %d", i)
	}
	assert.Less(t, p.Hitpoints, p.MaxHitpoints, "zombie reached the player")
}

func TestSimulation_waves(t *testing.T) {
	s, q := newTestSimulation(t, nil, func(c *config.Config) {
		c.Waves.Cooldown = 0.05
		c.Waves.Base = 4
		c.Waves.PerWave = 3
		c.Waves.MaxAlive = 5
		c.Waves.MinSpawnDistance = 300
		c.Zombie.AggroRadius = 0
	})
	state := s.State()

	for i := 0; i < 5; i++ {
		s.Tick(Input{})
	}
	assert.Equal(t, 1, state.Wave.Number)
	assert.Equal(t, 5, state.LiveZombies())
	assert.Equal(t, 2, state.Wave.Pending)
	for _, z := range state.Zombies {
		// spawned at least 300 away, give or take a few ticks of wandering
		assert.Greater(t, z.Position.Distance(state.Player.Position), 290.0)
		assert.True(t, s.terrain.CanMoveTo(z.Position))
	}
	assert.Equal(t, 1, countEvents[*types.WaveStartedEvent](drainEvents(t, q)))

	killAll := func() {
		for _, z := range state.Zombies {
			z.TakeDamage(1000, false)
		}
	}

	killAll()
	s.Tick(Input{})
	assert.Equal(t, 0, state.Wave.Pending)
	assert.Equal(t, 2, state.LiveZombies())

	killAll()
	for i := 0; i < 5; i++ {
		s.Tick(Input{})
	}
	assert.Equal(t, 2, state.Wave.Number)
	assert.Equal(t, 5, state.LiveZombies())
	assert.Equal(t, WaveSize(4, 3, 2)-5, state.Wave.Pending)
}

func TestWaveSize(t *testing.T) {
	assert.Equal(t, 7, WaveSize(4, 3, 1))
	assert.Equal(t, 10, WaveSize(4, 3, 2))
	assert.Equal(t, 1, WaveSize(0, 0, 5))
}

func TestSimulation_snapshotRestore(t *testing.T) {
	s, _ := newTestSimulation(t, nil, func(c *config.Config) {
		c.Zombie.AggroRadius = 0
	})
	addZombie(s, s.State().Player.Position.Add(kinematic.Vector{X: 200}))
	for i := 0; i < 10; i++ {
		s.Tick(Input{MoveX: 1, Fire: true})
	}

	snapshot := s.Snapshot()
	assert.Nil(t, snapshot.CollisionSpace)
	assert.Nil(t, snapshot.Player.Object)

	for i := 0; i < 10; i++ {
		s.Tick(Input{MoveY: 1})
	}
	assert.NotEqual(t, snapshot.Player.Position, s.State().Player.Position)

	require.NoError(t, s.Restore(snapshot))
	assert.Equal(t, snapshot, s.Snapshot())

	state := s.State()
	require.NotNil(t, state.Player.Object)
	assert.Equal(t, state.Player.Position, centerOf(state.Player.Object))
	assert.Contains(t, state.CollisionSpace.Objects(), state.Player.Object)
	for _, z := range state.Zombies {
		require.NotNil(t, z.Object)
		assert.Contains(t, state.CollisionSpace.Objects(), z.Object)
	}

	// restoring does not alias the snapshot
	s.Tick(Input{MoveX: -1})
	assert.NotEqual(t, snapshot.Player.Position, s.State().Player.Position)

	other := snapshot.Copy()
	other.Seed = 99
	assert.ErrorIs(t, s.Restore(other), ErrSeedMismatch)
	assert.Error(t, s.Restore(nil))
}

func TestSimulation_publishWithMockQueue(t *testing.T) {
	mockQueue := mocks.NewQueue(t)
	s := NewSimulation(NewSimulationOptions{
		Config:     testConfig(nil),
		Terrain:    terrain.New(20, 20, testTileSize),
		Seed:       1,
		EventQueue: mockQueue,
	})

	mockQueue.EXPECT().Enqueue(mock.AnythingOfType("*types.ShotFiredEvent")).Return(queue.ErrQueueFull).Once()

	// a full queue drops the event and the tick carries on
	s.Tick(Input{Fire: true})
	assert.Equal(t, 1, s.State().ShotsFired)
}

func TestResultFromState(t *testing.T) {
	state := types.NewGameState(1, nil)
	state.Score = 40
	state.Kills = 4
	state.ShotsFired = 8
	state.Wave.Number = 2
	state.Elapsed = 12.5

	r := ResultFromState(state)
	assert.Equal(t, 40, r.Score)
	assert.Equal(t, 2, r.Wave)
	assert.Equal(t, int64(12500), r.Duration.Milliseconds())
	assert.InDelta(t, 0.5, r.Accuracy(), 1e-9)
	assert.Equal(t, 0.0, Result{}.Accuracy())
}

func TestNewCollisionSpace(t *testing.T) {
	m := terrain.New(4, 3, 10)
	space := NewCollisionSpace(m)
	// one run for the top and bottom rows, two single tiles for the middle row
	assert.Len(t, space.Objects(), 4)
	for _, o := range space.Objects() {
		assert.True(t, o.HasTags(types.CollisionSpaceTagObstacle))
	}
}

func TestGenerateTerrain(t *testing.T) {
	cfg := testConfig(nil)
	a := GenerateTerrain(cfg, 42)
	b := GenerateTerrain(cfg, 42)

	w, h := a.Size()
	assert.Equal(t, cfg.World.TilesW, w)
	assert.Equal(t, cfg.World.TilesH, h)
	assert.Equal(t, cfg.World.TileSize, a.TileSize())
	assert.Equal(t, a.Shapes(), b.Shapes())
	assert.True(t, a.Walkable(a.Center()))
}

func TestPickSeed(t *testing.T) {
	now := time.UnixMilli(1700000000000)
	cfg := testConfig(nil)

	cfg.World.Seed = 7
	assert.Equal(t, int64(7), PickSeed(cfg, now))

	cfg.World.Seed = 0
	assert.Equal(t, now.UnixNano(), PickSeed(cfg, now))
}
