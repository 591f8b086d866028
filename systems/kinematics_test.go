package systems

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/lidargame/cavern/config"
	"github.com/lidargame/cavern/world"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("loading default config: %v", err)
	}
	return cfg
}

func testRegistry(cfg *config.Config) *world.Registry {
	return world.NewRegistry(world.ContactBands{
		LandBelow:    cfg.Player.LandBandBelow,
		LandAbove:    cfg.Player.LandBandAbove,
		CeilingAbove: cfg.Player.CeilingBandAbove,
		CeilingBelow: cfg.Player.CeilingBandBelow,
		HeadMargin:   cfg.Player.HeadMargin,
	})
}

// TestFloorSnap drops an airborne agent onto a platform and expects the eye
// to settle at the platform top plus eye height, grounded.
func TestFloorSnap(t *testing.T) {
	cfg := testConfig(t)
	reg := testRegistry(cfg)
	// Platform top at Y=4.
	reg.Add(world.NewObstacle(r3.Vec{Y: 3}, r3.Vec{X: 8, Y: 2, Z: 8}, false))

	k := NewKinematics(reg, cfg)
	a := &Agent{Position: r3.Vec{Y: 10}}

	for i := 0; i < 300; i++ {
		k.Step(a, Intent{}, cfg.Physics.DT)
	}

	want := 4 + cfg.Player.EyeHeight
	if math.Abs(a.Position.Y-want) > 1e-9 {
		t.Errorf("settled eye height = %v, want %v", a.Position.Y, want)
	}
	if !a.Grounded {
		t.Error("agent must be grounded after landing")
	}
	if a.VelY != 0 {
		t.Errorf("vertical velocity = %v, want 0", a.VelY)
	}
}

// TestWorldFloorFallback verifies the agent settles on the eye-height plane
// when no obstacle is below.
func TestWorldFloorFallback(t *testing.T) {
	cfg := testConfig(t)
	k := NewKinematics(testRegistry(cfg), cfg)
	a := &Agent{Position: r3.Vec{Y: 8}}

	for i := 0; i < 300; i++ {
		k.Step(a, Intent{}, cfg.Physics.DT)
	}

	if a.Position.Y != cfg.Player.EyeHeight {
		t.Errorf("settled eye height = %v, want %v", a.Position.Y, cfg.Player.EyeHeight)
	}
	if !a.Grounded {
		t.Error("agent must be grounded on the world floor")
	}
}

// TestJumpGating verifies jumping is only possible while grounded.
func TestJumpGating(t *testing.T) {
	cfg := testConfig(t)
	k := NewKinematics(testRegistry(cfg), cfg)
	a := &Agent{Position: r3.Vec{Y: cfg.Player.EyeHeight}, Grounded: true}

	k.Step(a, Intent{Jump: true}, cfg.Physics.DT)
	if a.Grounded {
		t.Fatal("agent must leave the ground on jump")
	}
	afterFirst := a.VelY
	if afterFirst <= 0 {
		t.Fatalf("vertical velocity after jump = %v, want positive", afterFirst)
	}

	// A second jump command mid-air must not reset the velocity.
	k.Step(a, Intent{Jump: true}, cfg.Physics.DT)
	if a.VelY >= afterFirst {
		t.Errorf("airborne jump changed velocity: %v -> %v", afterFirst, a.VelY)
	}
}

// TestCeilingClamp verifies an ascending agent stops just below an obstacle
// bottom without becoming grounded.
func TestCeilingClamp(t *testing.T) {
	cfg := testConfig(t)
	reg := testRegistry(cfg)
	// Ceiling box bottom at Y=8.
	reg.Add(world.NewObstacle(r3.Vec{Y: 9}, r3.Vec{X: 8, Y: 2, Z: 8}, false))

	k := NewKinematics(reg, cfg)
	a := &Agent{Position: r3.Vec{Y: 7.4}, VelY: 12}

	k.Step(a, Intent{}, cfg.Physics.DT)

	want := 8 - cfg.Player.CeilingGap
	if math.Abs(a.Position.Y-want) > 1e-9 {
		t.Errorf("clamped eye height = %v, want %v", a.Position.Y, want)
	}
	if a.VelY != 0 {
		t.Errorf("vertical velocity = %v, want 0 after ceiling contact", a.VelY)
	}
	if a.Grounded {
		t.Error("ceiling contact must not set grounded")
	}
}

// TestHorizontalRejection verifies a move into an obstacle is rejected
// wholesale, with no sliding.
func TestHorizontalRejection(t *testing.T) {
	cfg := testConfig(t)
	reg := testRegistry(cfg)
	// Wall spanning X [2, 6] ahead of the agent.
	reg.Add(world.NewObstacle(r3.Vec{X: 4, Y: 2}, r3.Vec{X: 4, Y: 4, Z: 4}, false))

	k := NewKinematics(reg, cfg)
	a := &Agent{
		Position: r3.Vec{X: 0.5, Y: cfg.Player.EyeHeight},
		Yaw:      math.Pi / 2, // facing +X
		Grounded: true,
	}

	k.Step(a, Intent{Forward: true}, cfg.Physics.DT)

	if a.Position.X != 0.5 || a.Position.Z != 0 {
		t.Errorf("rejected move changed position to (%v, %v)", a.Position.X, a.Position.Z)
	}
}

// TestHorizontalMove verifies unobstructed movement follows the facing
// direction at the configured speed.
func TestHorizontalMove(t *testing.T) {
	cfg := testConfig(t)
	k := NewKinematics(testRegistry(cfg), cfg)
	a := &Agent{Position: r3.Vec{Y: cfg.Player.EyeHeight}, Grounded: true}

	k.Step(a, Intent{Forward: true}, cfg.Physics.DT) // yaw 0 faces +Z

	want := cfg.Player.MoveSpeed * cfg.Physics.DT
	if math.Abs(a.Position.Z-want) > 1e-9 {
		t.Errorf("moved %v on Z, want %v", a.Position.Z, want)
	}
	if math.Abs(a.Position.X) > 1e-9 {
		t.Errorf("moved %v on X, want 0", a.Position.X)
	}
}

// TestZeroIntentNoMove verifies a degenerate movement vector performs no
// move and no normalization.
func TestZeroIntentNoMove(t *testing.T) {
	cfg := testConfig(t)
	k := NewKinematics(testRegistry(cfg), cfg)
	a := &Agent{Position: r3.Vec{X: 3, Y: cfg.Player.EyeHeight, Z: 3}, Grounded: true}

	// Opposing keys cancel out.
	k.Step(a, Intent{Forward: true, Back: true}, cfg.Physics.DT)

	if a.Position.X != 3 || a.Position.Z != 3 {
		t.Errorf("zero intent moved agent to (%v, %v)", a.Position.X, a.Position.Z)
	}
}

// TestWorldBoundsClamp verifies the candidate position is clamped to the
// world extent before collision resolution.
func TestWorldBoundsClamp(t *testing.T) {
	cfg := testConfig(t)
	k := NewKinematics(testRegistry(cfg), cfg)

	limit := cfg.World.HalfExtent - cfg.Player.Radius
	a := &Agent{Position: r3.Vec{Z: limit, Y: cfg.Player.EyeHeight}, Grounded: true}

	k.Step(a, Intent{Forward: true}, cfg.Physics.DT) // pushing past the edge

	if a.Position.Z > limit {
		t.Errorf("agent escaped world bounds: Z = %v, limit %v", a.Position.Z, limit)
	}
}
