// Package game wires the cave, agent, sensor and telemetry together into a
// tick-driven simulation, and adapts it to raylib input and rendering in
// graphical mode.
package game

import (
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/lidargame/cavern/config"
	"github.com/lidargame/cavern/systems"
	"github.com/lidargame/cavern/telemetry"
	"github.com/lidargame/cavern/world"
)

// Options configures a game instance.
type Options struct {
	Seed           int64
	LogStats       bool
	StatsWindowSec float64
	OutputDir      string
	Headless       bool
}

// Game holds the complete simulation state.
type Game struct {
	cfg  *config.Config
	opts Options
	rng  *rand.Rand

	registry *world.Registry
	caster   *world.Caster
	agent    systems.Agent
	kin      *systems.Kinematics
	lidar    *systems.Lidar
	hits     *systems.HitLog

	collector *telemetry.Collector
	perf      *telemetry.PerfCollector
	output    *telemetry.OutputManager

	tick int64

	// Graphical-mode state
	reveal         bool // draw geometry, not only markers
	cursorCaptured bool
}

// NewGameWithOptions compiles the cave, finds a spawn point and builds the
// simulation. Generation runs once here; the registry never changes after.
func NewGameWithOptions(opts Options) (*Game, error) {
	cfg := config.Cfg()
	rng := rand.New(rand.NewSource(opts.Seed))

	registry := world.Compile(cfg, rng)
	spawn := world.FindSpawn(registry, cfg, rng)

	statsWindow := opts.StatsWindowSec
	if statsWindow <= 0 {
		statsWindow = cfg.Telemetry.StatsWindow
	}

	output, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("initializing output: %w", err)
	}
	if err := output.WriteConfig(cfg); err != nil {
		return nil, fmt.Errorf("snapshotting config: %w", err)
	}

	g := &Game{
		cfg:      cfg,
		opts:     opts,
		rng:      rng,
		registry: registry,
		caster:   world.NewCaster(registry, cfg.World.HalfExtent),
		agent:    systems.Agent{Position: spawn},
		hits:     systems.NewHitLog(cfg),
		perf:     telemetry.NewPerfCollector(cfg.Screen.TargetFPS),
		output:   output,

		cursorCaptured: true,
	}
	g.kin = systems.NewKinematics(registry, cfg)
	g.lidar = systems.NewLidar(g.caster, cfg, rng)
	g.collector = telemetry.NewCollector(statsWindow, cfg.Physics.DT)

	slog.Info("cave compiled",
		"seed", opts.Seed,
		"obstacles", registry.Len(),
		"interior", registry.InteriorCount(),
		"spawn_x", spawn.X,
		"spawn_y", spawn.Y,
		"spawn_z", spawn.Z,
	)

	return g, nil
}

// Tick returns the current simulation tick.
func (g *Game) Tick() int64 {
	return g.tick
}

// Agent returns the current agent state.
func (g *Game) Agent() systems.Agent {
	return g.agent
}

// Unload releases output resources.
func (g *Game) Unload() {
	if err := g.output.Close(); err != nil {
		slog.Warn("closing output", "error", err)
	}
}
