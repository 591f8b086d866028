// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Physics   PhysicsConfig   `yaml:"physics"`
	World     WorldConfig     `yaml:"world"`
	Noise     NoiseConfig     `yaml:"noise"`
	Lidar     LidarConfig     `yaml:"lidar"`
	Player    PlayerConfig    `yaml:"player"`
	Spawn     SpawnConfig     `yaml:"spawn"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int     `yaml:"width"`
	Height    int     `yaml:"height"`
	TargetFPS int     `yaml:"target_fps"`
	FOV       float64 `yaml:"fov"` // vertical field of view in degrees
}

// PhysicsConfig holds simulation stepping parameters.
type PhysicsConfig struct {
	DT float64 `yaml:"dt"` // seconds per tick
}

// WorldConfig holds the cave volume dimensions.
// The lattice is the cubic sample grid the cave is compiled from; the walls
// and ceiling close it off a couple of cells beyond the lattice edge.
type WorldConfig struct {
	HalfExtent        float64 `yaml:"half_extent"`         // floor plane half size; hard clamp for movement
	LatticeHalfExtent float64 `yaml:"lattice_half_extent"` // interior lattice spans [-this, this] on X/Z
	LatticeHeight     float64 `yaml:"lattice_height"`      // interior lattice spans [0, this] on Y
	CellSize          float64 `yaml:"cell_size"`           // lattice step and base obstacle size
	WallThickness     float64 `yaml:"wall_thickness"`      // boundary sheet thickness
}

// NoiseConfig holds the cave density field parameters.
type NoiseConfig struct {
	ScaleLow   float64 `yaml:"scale_low"`   // low-frequency octave coordinate scale
	ScaleHigh  float64 `yaml:"scale_high"`  // high-frequency octave coordinate scale
	HighWeight float64 `yaml:"high_weight"` // amplitude of the high octave relative to the low one
	Threshold  float64 `yaml:"threshold"`   // combined noise above this becomes solid; higher = sparser cave
	Jitter     float64 `yaml:"jitter"`      // per-cell size variation fraction
}

// LidarConfig holds sensor parameters.
type LidarConfig struct {
	FireRate       float64 `yaml:"fire_rate"`        // shots per second while firing
	MaxDistance    float64 `yaml:"max_distance"`     // ray range
	SpreadDeg      float64 `yaml:"spread_deg"`       // half-angle of the random cone, degrees
	MarkerLifetime float64 `yaml:"marker_lifetime"`  // seconds before a hit marker expires
	MarkerSizeNear float64 `yaml:"marker_size_near"` // marker radius at distance 0
	MarkerSizeFar  float64 `yaml:"marker_size_far"`  // marker radius at max distance
}

// PlayerConfig holds agent movement and collision parameters.
type PlayerConfig struct {
	MoveSpeed    float64 `yaml:"move_speed"`
	Gravity      float64 `yaml:"gravity"` // negative, units per second squared
	JumpVelocity float64 `yaml:"jump_velocity"`
	Radius       float64 `yaml:"radius"`
	EyeHeight    float64 `yaml:"eye_height"`  // camera height above the supporting surface
	HeadMargin   float64 `yaml:"head_margin"` // body extends this far above eye level for 3D collision

	// Vertical contact bands, tuned empirically. The landing band accepts a
	// descending eye between band_below under and band_above over the box
	// top; the ceiling band mirrors this below the box bottom.
	LandBandBelow    float64 `yaml:"land_band_below"`
	LandBandAbove    float64 `yaml:"land_band_above"`
	CeilingBandAbove float64 `yaml:"ceiling_band_above"`
	CeilingBandBelow float64 `yaml:"ceiling_band_below"`
	CeilingGap       float64 `yaml:"ceiling_gap"` // clamp distance below a hit ceiling

	MouseSensitivity float64 `yaml:"mouse_sensitivity"` // degrees per pixel
	PitchClampDeg    float64 `yaml:"pitch_clamp_deg"`
}

// SpawnConfig holds spawn point search parameters.
type SpawnConfig struct {
	Attempts         int     `yaml:"attempts"`
	RegionHalfExtent float64 `yaml:"region_half_extent"` // uniform draw region on X/Z
	Height           float64 `yaml:"height"`             // fixed sample height
	FallbackHeight   float64 `yaml:"fallback_height"`    // used when all attempts fail, at X=Z=0
}

// TelemetryConfig holds stats collection settings.
type TelemetryConfig struct {
	StatsWindow float64 `yaml:"stats_window"` // window size in simulation seconds
}

// DerivedConfig holds values computed from the raw fields after loading.
type DerivedConfig struct {
	SpreadRad     float64 // lidar spread in radians
	PitchClampRad float64
	WallExtent    float64 // boundary wall distance from origin on X/Z
	CeilingHeight float64 // ceiling sheet center height
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	// Start with embedded defaults
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	// Load user config if provided
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	cfg.computeDerived()

	return cfg, nil
}

// validate rejects configurations the simulation cannot run with.
func (c *Config) validate() error {
	if c.Physics.DT <= 0 {
		return fmt.Errorf("config: physics.dt must be positive, got %v", c.Physics.DT)
	}
	if c.World.CellSize <= 0 {
		return fmt.Errorf("config: world.cell_size must be positive, got %v", c.World.CellSize)
	}
	if c.World.LatticeHalfExtent <= 0 || c.World.LatticeHeight <= 0 {
		return fmt.Errorf("config: world lattice extents must be positive, got %v x %v",
			c.World.LatticeHalfExtent, c.World.LatticeHeight)
	}
	if c.World.HalfExtent < c.World.LatticeHalfExtent {
		return fmt.Errorf("config: world.half_extent %v smaller than lattice half extent %v",
			c.World.HalfExtent, c.World.LatticeHalfExtent)
	}
	if c.Lidar.FireRate <= 0 {
		return fmt.Errorf("config: lidar.fire_rate must be positive, got %v", c.Lidar.FireRate)
	}
	if c.Lidar.MaxDistance <= 0 {
		return fmt.Errorf("config: lidar.max_distance must be positive, got %v", c.Lidar.MaxDistance)
	}
	if c.Player.Radius <= 0 || c.Player.EyeHeight <= 0 {
		return fmt.Errorf("config: player radius and eye height must be positive, got %v / %v",
			c.Player.Radius, c.Player.EyeHeight)
	}
	if c.Spawn.Attempts < 0 {
		return fmt.Errorf("config: spawn.attempts must be non-negative, got %d", c.Spawn.Attempts)
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.SpreadRad = c.Lidar.SpreadDeg * math.Pi / 180
	c.Derived.PitchClampRad = c.Player.PitchClampDeg * math.Pi / 180

	// The shell sits two cells beyond the interior lattice so jittered edge
	// cells never poke through it.
	c.Derived.WallExtent = c.World.LatticeHalfExtent + 2*c.World.CellSize
	c.Derived.CeilingHeight = c.World.LatticeHeight + 2*c.World.CellSize
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
