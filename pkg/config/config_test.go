package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 1280, cfg.Screen.Width)
	assert.Equal(t, 60, cfg.Screen.TPS)
	assert.InDelta(t, 1.0/60, cfg.TickSeconds(), 1e-12)
	assert.Equal(t, float64(cfg.World.TilesW)*cfg.World.TileSize, cfg.WorldWidth())
	assert.False(t, cfg.Windowed)
}

func TestLoadOverlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("player:\n  speed: 300\ncamera:\n  max_zoom: 4\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 300.0, cfg.Player.Speed)
	assert.Equal(t, 4.0, cfg.Camera.MaxZoom)
	// untouched fields keep their defaults
	assert.Equal(t, Default().Player.HitPoints, cfg.Player.HitPoints)
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("player: [1, 2"), 0o644))
	_, err = Load(bad)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{name: "zero tile size", mutate: func(c *Config) { c.World.TileSize = 0 }},
		{name: "negative player speed", mutate: func(c *Config) { c.Player.Speed = -1 }},
		{name: "inverted zoom", mutate: func(c *Config) { c.Camera.MinZoom, c.Camera.MaxZoom = 3, 1 }},
		{name: "zoom step not growing", mutate: func(c *Config) { c.Camera.ZoomStep = 1 }},
		{name: "tiny world", mutate: func(c *Config) { c.World.TilesW = 4 }},
		{name: "shape density too high", mutate: func(c *Config) { c.World.ShapeDensity = 1 }},
		{name: "player wider than a tile", mutate: func(c *Config) { c.Player.Size = c.World.TileSize + 1 }},
		{name: "zombie wider than a tile", mutate: func(c *Config) { c.Zombie.Size = c.World.TileSize + 1 }},
		{name: "bullet skips hitbox", mutate: func(c *Config) { c.Bullet.Speed = 2*c.Zombie.Hitbox*float64(c.Screen.TPS) + 1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestValidateLimitsInclusive(t *testing.T) {
	cfg := Default()
	cfg.Player.Size = cfg.World.TileSize
	cfg.Zombie.Size = cfg.World.TileSize
	cfg.Bullet.Speed = 2 * cfg.Zombie.Hitbox * float64(cfg.Screen.TPS)
	assert.NoError(t, cfg.Validate())
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.yaml")
	cfg := Default()
	cfg.Zombie.Speed = 123
	require.NoError(t, cfg.WriteYAML(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 123.0, loaded.Zombie.Speed)
}
