package world

import (
	"math/rand"
	"testing"

	"github.com/lidargame/cavern/config"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("loading default config: %v", err)
	}
	return cfg
}

// TestCompileDeterministic verifies a fixed seed reproduces the cave
// exactly.
func TestCompileDeterministic(t *testing.T) {
	cfg := testConfig(t)

	a := Compile(cfg, rand.New(rand.NewSource(42)))
	b := Compile(cfg, rand.New(rand.NewSource(42)))

	if a.Len() != b.Len() {
		t.Fatalf("obstacle counts differ: %d vs %d", a.Len(), b.Len())
	}
	for i := range a.Obstacles() {
		oa, ob := a.Obstacles()[i], b.Obstacles()[i]
		if oa.Center != ob.Center || oa.Half != ob.Half || oa.Boundary != ob.Boundary {
			t.Fatalf("obstacle %d differs: %+v vs %+v", i, oa, ob)
		}
	}
}

// TestCompileSeedChangesJitter verifies different seeds change obstacle
// sizes but not the solid cell selection, which depends only on the noise
// field.
func TestCompileSeedChangesJitter(t *testing.T) {
	cfg := testConfig(t)

	a := Compile(cfg, rand.New(rand.NewSource(1)))
	b := Compile(cfg, rand.New(rand.NewSource(2)))

	if a.Len() != b.Len() {
		t.Fatalf("cell selection changed with seed: %d vs %d obstacles", a.Len(), b.Len())
	}
	if a.InteriorCount() == 0 {
		t.Skip("default config produced no interior cells")
	}
	sizesDiffer := false
	for i := range a.Obstacles() {
		if a.Obstacles()[i].Boundary {
			continue
		}
		if a.Obstacles()[i].Half != b.Obstacles()[i].Half {
			sizesDiffer = true
			break
		}
	}
	if !sizesDiffer {
		t.Error("expected jittered sizes to differ across seeds")
	}
}

// TestCompileShellAlwaysPresent verifies an over-tight threshold still
// yields the closed boundary shell.
func TestCompileShellAlwaysPresent(t *testing.T) {
	cfg := testConfig(t)
	cfg.Noise.Threshold = 10 // combined noise can never exceed this

	reg := Compile(cfg, rand.New(rand.NewSource(7)))

	if reg.InteriorCount() != 0 {
		t.Fatalf("expected no interior obstacles, got %d", reg.InteriorCount())
	}
	if reg.Len() == 0 {
		t.Fatal("boundary shell must always be present")
	}
	for i, o := range reg.Obstacles() {
		if !o.Boundary {
			t.Fatalf("obstacle %d not flagged boundary in shell-only cave", i)
		}
	}
}

// TestCompileInteriorBeforeShell verifies the insertion order contract:
// interior cells first, boundary shell last.
func TestCompileInteriorBeforeShell(t *testing.T) {
	cfg := testConfig(t)
	reg := Compile(cfg, rand.New(rand.NewSource(42)))

	seenBoundary := false
	for i, o := range reg.Obstacles() {
		if o.Boundary {
			seenBoundary = true
		} else if seenBoundary {
			t.Fatalf("interior obstacle %d inserted after boundary shell", i)
		}
	}
	if !seenBoundary {
		t.Fatal("no boundary obstacles compiled")
	}
}

// TestCompileJitterWithinBounds verifies interior extents stay within the
// configured jitter band.
func TestCompileJitterWithinBounds(t *testing.T) {
	cfg := testConfig(t)
	reg := Compile(cfg, rand.New(rand.NewSource(42)))

	lo := cfg.World.CellSize * (1 - cfg.Noise.Jitter) / 2
	hi := cfg.World.CellSize * (1 + cfg.Noise.Jitter) / 2
	for i, o := range reg.Obstacles() {
		if o.Boundary {
			continue
		}
		for _, half := range []float64{o.Half.X, o.Half.Y, o.Half.Z} {
			if half < lo || half > hi {
				t.Fatalf("obstacle %d half extent %v outside jitter band [%v, %v]", i, half, lo, hi)
			}
		}
	}
}
