package types

import (
	"testing"

	"github.com/cbodonnell/isozombie/pkg/iso"
	"github.com/cbodonnell/isozombie/pkg/kinematic"
	"github.com/solarlune/resolv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStanceIsDead(t *testing.T) {
	tests := []struct {
		stance Stance
		want   bool
	}{
		{stance: StanceStill, want: false},
		{stance: StanceWalking, want: false},
		{stance: StanceFiring, want: false},
		{stance: StanceAttacking, want: false},
		{stance: StanceNormalDeath, want: true},
		{stance: StanceCriticalDeath, want: true},
	}
	for _, tt := range tests {
		t.Run(tt.stance.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.stance.IsDead())
		})
	}
}

func TestZombieTakeDamage(t *testing.T) {
	tests := []struct {
		name     string
		critical bool
		want     Stance
	}{
		{name: "normal death", critical: false, want: StanceNormalDeath},
		{name: "critical death", critical: true, want: StanceCriticalDeath},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			z := NewZombieState(1, kinematic.Vector{X: 10, Y: 10}, 20, 50, 0)
			z.Path = []iso.Tile{{X: 1, Y: 1}}

			assert.False(t, z.TakeDamage(25, tt.critical))
			assert.Equal(t, 25, z.Hitpoints)
			assert.False(t, z.IsDead())

			assert.True(t, z.TakeDamage(30, tt.critical))
			assert.Equal(t, 0, z.Hitpoints)
			assert.Equal(t, tt.want, z.Stance)
			assert.Nil(t, z.Path)

			// a dead zombie never dies twice
			assert.False(t, z.TakeDamage(100, !tt.critical))
			assert.Equal(t, tt.want, z.Stance)
		})
	}
}

func TestPlayerTakeDamage(t *testing.T) {
	p := NewPlayerState(kinematic.Vector{X: 50, Y: 50}, 20, 30, 12)
	p.TakeDamage(20)
	assert.False(t, p.IsDead())
	p.TakeDamage(20)
	assert.True(t, p.IsDead())
	assert.Equal(t, 0, p.Hitpoints)
}

func TestCollisionObjectCentered(t *testing.T) {
	o := NewCollisionObject(kinematic.Vector{X: 50, Y: 40}, 20, CollisionSpaceTagPlayer)
	assert.Equal(t, 40.0, o.Position.X)
	assert.Equal(t, 30.0, o.Position.Y)
	assert.Equal(t, 20.0, o.Size.X)
	assert.True(t, o.HasTags(CollisionSpaceTagPlayer))
}

func TestGameStateCopy(t *testing.T) {
	space := resolv.NewSpace(100, 100, 10, 10)
	g := NewGameState(7, space)
	g.Player = NewPlayerState(kinematic.Vector{X: 50, Y: 50}, 20, 100, 12)
	z := NewZombieState(g.NewID(), kinematic.Vector{X: 20, Y: 20}, 20, 50, 2)
	z.Path = []iso.Tile{{X: 2, Y: 2}}
	g.AddZombie(z)
	g.Bullets[g.NewID()] = &BulletState{ID: 2, TTL: 1}
	g.Score = 10
	g.PlayerName = "ash"

	c := g.Copy()
	require.NotNil(t, c.Player)
	assert.Nil(t, c.Player.Object)
	assert.Nil(t, c.CollisionSpace)
	assert.Nil(t, c.Zombies[1].Object)
	assert.Equal(t, g.Player.Position, c.Player.Position)
	assert.Equal(t, int64(7), c.Seed)
	assert.Equal(t, "ash", c.PlayerName)
	assert.Equal(t, uint32(2), c.NextID)

	// mutating the copy leaves the source state alone
	c.Zombies[1].Path[0] = iso.Tile{X: 9, Y: 9}
	c.Player.Hitpoints = 1
	c.Bullets[2].TTL = 0
	assert.Equal(t, iso.Tile{X: 2, Y: 2}, g.Zombies[1].Path[0])
	assert.Equal(t, 100, g.Player.Hitpoints)
	assert.Equal(t, 1.0, g.Bullets[2].TTL)
}

func TestGameStateZombies(t *testing.T) {
	space := resolv.NewSpace(100, 100, 10, 10)
	g := NewGameState(1, space)
	for i := 0; i < 3; i++ {
		g.AddZombie(NewZombieState(g.NewID(), kinematic.Vector{X: 20, Y: 20}, 10, 50, 0))
	}
	assert.Equal(t, []uint32{1, 2, 3}, g.ZombieIDs())
	assert.Len(t, space.Objects(), 3)

	g.Zombies[2].TakeDamage(100, false)
	assert.Equal(t, 2, g.LiveZombies())

	g.RemoveZombie(2)
	g.RemoveZombie(42)
	assert.Equal(t, []uint32{1, 3}, g.ZombieIDs())
	assert.Len(t, space.Objects(), 2)
}
