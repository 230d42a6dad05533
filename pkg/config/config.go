// Package config loads the game configuration from embedded defaults,
// optionally overlaid by a user supplied YAML file.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

type Config struct {
	Screen ScreenConfig `yaml:"screen"`
	World  WorldConfig  `yaml:"world"`
	Player PlayerConfig `yaml:"player"`
	Zombie ZombieConfig `yaml:"zombie"`
	Bullet BulletConfig `yaml:"bullet"`
	Waves  WavesConfig  `yaml:"waves"`
	Camera CameraConfig `yaml:"camera"`
	Scores ScoresConfig `yaml:"scores"`
	Dev    DevConfig    `yaml:"dev"`

	// Windowed is only ever set from the command line.
	Windowed bool `yaml:"-"`
}

type ScreenConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	TPS    int    `yaml:"tps"`
	Title  string `yaml:"title"`
}

// WorldConfig describes the terrain grid. Sizes are in world units.
type WorldConfig struct {
	TilesW       int     `yaml:"tiles_w"`
	TilesH       int     `yaml:"tiles_h"`
	TileSize     float64 `yaml:"tile_size"`
	Seed         int64   `yaml:"seed"` // 0 picks a seed from the clock
	NoiseScale   float64 `yaml:"noise_scale"`
	ShapeDensity float64 `yaml:"shape_density"` // chance of a shape per walkable tile
	SpawnRadius  int     `yaml:"spawn_radius"`  // in tiles
}

type PlayerConfig struct {
	Speed        float64 `yaml:"speed"`
	Size         float64 `yaml:"size"`
	HitPoints    int     `yaml:"hitpoints"`
	Magazine     int     `yaml:"magazine"`
	FireCooldown float64 `yaml:"fire_cooldown"`
	ReloadTime   float64 `yaml:"reload_time"`
}

type ZombieConfig struct {
	Speed          float64 `yaml:"speed"`
	Size           float64 `yaml:"size"`
	HitPoints      int     `yaml:"hitpoints"`
	Damage         int     `yaml:"damage"`
	AttackRange    float64 `yaml:"attack_range"`
	AttackCooldown float64 `yaml:"attack_cooldown"`
	AggroRadius    float64 `yaml:"aggro_radius"`
	RepathInterval float64 `yaml:"repath_interval"`
	WanderInterval float64 `yaml:"wander_interval"`
	CorpseTTL      float64 `yaml:"corpse_ttl"`
	Hitbox         float64 `yaml:"hitbox"`
	Score          int     `yaml:"score"`
	Variants       int     `yaml:"variants"`
}

type BulletConfig struct {
	Speed  float64 `yaml:"speed"`
	Size   float64 `yaml:"size"`
	Damage int     `yaml:"damage"`
	TTL    float64 `yaml:"ttl"`
}

type WavesConfig struct {
	Base             int     `yaml:"base"`
	PerWave          int     `yaml:"per_wave"`
	MaxAlive         int     `yaml:"max_alive"`
	Cooldown         float64 `yaml:"cooldown"`
	MinSpawnDistance float64 `yaml:"min_spawn_distance"`
}

type CameraConfig struct {
	Follow   float64 `yaml:"follow"`
	Zoom     float64 `yaml:"zoom"`
	MinZoom  float64 `yaml:"min_zoom"`
	MaxZoom  float64 `yaml:"max_zoom"`
	ZoomStep float64 `yaml:"zoom_step"`
}

type ScoresConfig struct {
	DatabaseURL      string  `yaml:"database_url"`
	ScoreboardURL    string  `yaml:"scoreboard_url"`
	AutosaveInterval float64 `yaml:"autosave_interval"` // seconds
	Top              int     `yaml:"top"`
}

type DevConfig struct {
	Enabled        bool    `yaml:"enabled"`
	Window         int     `yaml:"window"`
	ReportInterval float64 `yaml:"report_interval"` // seconds
	CSVDir         string  `yaml:"csv_dir"`
}

// Default returns the embedded default configuration.
func Default() *Config {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		panic(fmt.Sprintf("failed to parse embedded defaults: %v", err))
	}
	return cfg
}

// Load reads the embedded defaults and overlays the file at path, if any.
// Only the fields present in the file are overwritten.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the configuration for values the game cannot run with.
func (c *Config) Validate() error {
	var errs []error
	positive := func(name string, v float64) {
		if v <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %v", name, v))
		}
	}

	positive("screen.width", float64(c.Screen.Width))
	positive("screen.height", float64(c.Screen.Height))
	positive("screen.tps", float64(c.Screen.TPS))
	positive("world.tiles_w", float64(c.World.TilesW))
	positive("world.tiles_h", float64(c.World.TilesH))
	positive("world.tile_size", c.World.TileSize)
	positive("world.noise_scale", c.World.NoiseScale)
	positive("player.speed", c.Player.Speed)
	positive("player.size", c.Player.Size)
	positive("player.hitpoints", float64(c.Player.HitPoints))
	positive("player.magazine", float64(c.Player.Magazine))
	positive("zombie.speed", c.Zombie.Speed)
	positive("zombie.size", c.Zombie.Size)
	positive("zombie.hitpoints", float64(c.Zombie.HitPoints))
	positive("zombie.hitbox", c.Zombie.Hitbox)
	positive("zombie.variants", float64(c.Zombie.Variants))
	positive("bullet.speed", c.Bullet.Speed)
	positive("bullet.damage", float64(c.Bullet.Damage))
	positive("bullet.ttl", c.Bullet.TTL)
	positive("waves.max_alive", float64(c.Waves.MaxAlive))
	positive("camera.min_zoom", c.Camera.MinZoom)
	positive("camera.max_zoom", c.Camera.MaxZoom)
	positive("dev.window", float64(c.Dev.Window))

	if c.World.TilesW < 2*c.World.SpawnRadius+3 || c.World.TilesH < 2*c.World.SpawnRadius+3 {
		errs = append(errs, fmt.Errorf("world of %dx%d tiles is too small for spawn radius %d", c.World.TilesW, c.World.TilesH, c.World.SpawnRadius))
	}
	if c.Camera.MinZoom > c.Camera.MaxZoom {
		errs = append(errs, fmt.Errorf("camera.min_zoom %v is greater than camera.max_zoom %v", c.Camera.MinZoom, c.Camera.MaxZoom))
	}
	if c.Camera.ZoomStep <= 1 {
		errs = append(errs, fmt.Errorf("camera.zoom_step must be greater than 1, got %v", c.Camera.ZoomStep))
	}
	// characters spawn on tile centers and must fit between two walls
	if c.Player.Size > c.World.TileSize {
		errs = append(errs, fmt.Errorf("player.size %v is larger than world.tile_size %v", c.Player.Size, c.World.TileSize))
	}
	if c.Zombie.Size > c.World.TileSize {
		errs = append(errs, fmt.Errorf("zombie.size %v is larger than world.tile_size %v", c.Zombie.Size, c.World.TileSize))
	}
	// a bullet must not step over a zombie's hitbox in one tick
	if c.Screen.TPS > 0 {
		if step := c.Bullet.Speed / float64(c.Screen.TPS); step > 2*c.Zombie.Hitbox {
			errs = append(errs, fmt.Errorf("bullet.speed %v moves %v per tick, more than twice zombie.hitbox %v", c.Bullet.Speed, step, c.Zombie.Hitbox))
		}
	}
	if c.World.ShapeDensity < 0 || c.World.ShapeDensity >= 1 {
		errs = append(errs, fmt.Errorf("world.shape_density must be in [0, 1), got %v", c.World.ShapeDensity))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// TickSeconds is the simulated time covered by one update.
func (c *Config) TickSeconds() float64 {
	return 1 / float64(c.Screen.TPS)
}

// WorldWidth returns the world width in world units.
func (c *Config) WorldWidth() float64 {
	return float64(c.World.TilesW) * c.World.TileSize
}

// WorldHeight returns the world height in world units.
func (c *Config) WorldHeight() float64 {
	return float64(c.World.TilesH) * c.World.TileSize
}

// WriteYAML writes the configuration to path.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %v", err)
	}
	return nil
}
