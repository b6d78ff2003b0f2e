package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/lasercut/planetoids/internal/geom"
)

type Config struct {
	Simulation SimulationConfig `toml:"simulation"`
	Arena      ArenaConfig      `toml:"arena"`
	Slicing    SlicingConfig    `toml:"slicing"`
	Spawn      SpawnConfig      `toml:"spawn"`
	Laser      LaserConfig      `toml:"laser"`
	Physics    PhysicsConfig    `toml:"physics"`
	Scripting  ScriptingConfig  `toml:"scripting"`
	Record     RecordConfig     `toml:"record"`
	Logging    LoggingConfig    `toml:"logging"`
}

type SimulationConfig struct {
	TickRate time.Duration `toml:"tick_rate"`
	MaxTicks uint64        `toml:"max_ticks"` // 0 = run until signal
	Seed     int64         `toml:"seed"`      // 0 = seed from clock
}

// ArenaConfig is the visible world rectangle plus the spawn dead-zone.
type ArenaConfig struct {
	MinX           float64 `toml:"min_x"`
	MinY           float64 `toml:"min_y"`
	MaxX           float64 `toml:"max_x"`
	MaxY           float64 `toml:"max_y"`
	DeadZoneRadius float64 `toml:"dead_zone_radius"`
	SpawnAttempts  int     `toml:"spawn_attempts"` // rejection sampling cap
}

// Rect returns the arena as a geometry rectangle.
func (a ArenaConfig) Rect() geom.Rect {
	return geom.Rect{
		Min: mgl64.Vec2{a.MinX, a.MinY},
		Max: mgl64.Vec2{a.MaxX, a.MaxY},
	}
}

type SlicingConfig struct {
	MinFragmentArea float64       `toml:"min_fragment_area"` // either chain below this rejects the cut
	DeathArea       float64       `toml:"death_area"`        // area at or below this starts the fade
	FadeDuration    time.Duration `toml:"fade_duration"`
	LaserRange      float64       `toml:"laser_range"`
	RayMask         uint          `toml:"ray_mask"`
}

type SpawnConfig struct {
	TableFile    string  `toml:"table_file"`
	SpeedMax     float64 `toml:"speed_max"`
	SpinMax      float64 `toml:"spin_max"`
	TargetActive int     `toml:"target_active"`
	Jitter       float64 `toml:"jitter"`        // 0-1, vertex angle jitter inside each sector
	WaveInterval int     `toml:"wave_interval"` // ticks between spawn waves
}

type LaserConfig struct {
	Power           float64 `toml:"power"`
	Interval        int     `toml:"interval"` // ticks between automatic shots
	ReverseControls bool    `toml:"reverse_controls"`
}

type PhysicsConfig struct {
	Damping    float64 `toml:"damping"`
	Iterations uint    `toml:"iterations"`
	Elasticity float64 `toml:"elasticity"`
	Friction   float64 `toml:"friction"`
}

type ScriptingConfig struct {
	Dir string `toml:"dir"`
}

type RecordConfig struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
	Every   int    `toml:"every"` // record one frame every N ticks
}

type LoggingConfig struct {
	Level      string `toml:"level"`
	Format     string `toml:"format"`      // "json" or "console"
	StatsEvery int    `toml:"stats_every"` // ticks between stats lines, 0 = off
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := Defaults()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects settings the simulation cannot run with.
func (c *Config) Validate() error {
	if c.Arena.MaxX <= c.Arena.MinX || c.Arena.MaxY <= c.Arena.MinY {
		return fmt.Errorf("arena: empty rectangle [%v,%v]x[%v,%v]",
			c.Arena.MinX, c.Arena.MaxX, c.Arena.MinY, c.Arena.MaxY)
	}
	if c.Arena.DeadZoneRadius < 0 {
		return fmt.Errorf("arena: negative dead_zone_radius %v", c.Arena.DeadZoneRadius)
	}
	if c.Simulation.TickRate <= 0 {
		return fmt.Errorf("simulation: tick_rate must be positive")
	}
	if c.Slicing.FadeDuration <= 0 {
		return fmt.Errorf("slicing: fade_duration must be positive")
	}
	if c.Slicing.MinFragmentArea < 0 || c.Slicing.DeathArea < 0 {
		return fmt.Errorf("slicing: areas must not be negative")
	}
	return nil
}

func Defaults() *Config {
	return &Config{
		Simulation: SimulationConfig{
			TickRate: time.Second / 60,
		},
		Arena: ArenaConfig{
			MinX:           -10,
			MinY:           -10,
			MaxX:           10,
			MaxY:           10,
			DeadZoneRadius: 3,
			SpawnAttempts:  1000,
		},
		Slicing: SlicingConfig{
			MinFragmentArea: 0.05,
			DeathArea:       0.6,
			FadeDuration:    1500 * time.Millisecond,
			LaserRange:      40,
			RayMask:         ^uint(0),
		},
		Spawn: SpawnConfig{
			TableFile:    "data/yaml/planetoid_list.yaml",
			SpeedMax:     1.5,
			SpinMax:      0.8,
			TargetActive: 6,
			Jitter:       0.6,
			WaveInterval: 30,
		},
		Laser: LaserConfig{
			Power:    4,
			Interval: 45,
		},
		Physics: PhysicsConfig{
			Damping:    1,
			Iterations: 10,
			Elasticity: 0.4,
			Friction:   0.2,
		},
		Scripting: ScriptingConfig{
			Dir: "scripts",
		},
		Record: RecordConfig{
			Path:  "planetoids.rec",
			Every: 1,
		},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "console",
			StatsEvery: 600,
		},
	}
}
