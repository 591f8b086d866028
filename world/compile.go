package world

import (
	"math/rand"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/lidargame/cavern/config"
	"github.com/lidargame/cavern/noise"
)

// Compile walks the interior lattice, thresholds the combined noise field
// into jittered solid cells, then closes the volume with four boundary wall
// sheets and a ceiling. Interior obstacles are inserted before the shell;
// that order is observable through nearest-hit tie-breaking, so it is fixed.
//
// All randomness comes from rng, so a fixed seed reproduces the cave
// exactly.
func Compile(cfg *config.Config, rng *rand.Rand) *Registry {
	reg := NewRegistry(ContactBands{
		LandBelow:    cfg.Player.LandBandBelow,
		LandAbove:    cfg.Player.LandBandAbove,
		CeilingAbove: cfg.Player.CeilingBandAbove,
		CeilingBelow: cfg.Player.CeilingBandBelow,
		HeadMargin:   cfg.Player.HeadMargin,
	})

	cell := cfg.World.CellSize
	field := noise.Field{
		ScaleLow:   cfg.Noise.ScaleLow,
		ScaleHigh:  cfg.Noise.ScaleHigh,
		HighWeight: cfg.Noise.HighWeight,
	}

	// Interior pass: one candidate solid per lattice point.
	nxz := int(cfg.World.LatticeHalfExtent / cell)
	ny := int(cfg.World.LatticeHeight / cell)
	for ix := -nxz; ix <= nxz; ix++ {
		for iy := 0; iy <= ny; iy++ {
			for iz := -nxz; iz <= nxz; iz++ {
				x := float64(ix) * cell
				y := float64(iy) * cell
				z := float64(iz) * cell
				if field.SampleCombined(x, y, z) <= cfg.Noise.Threshold {
					continue
				}
				// Independent per-axis jitter keeps the silhouette organic
				// while the boxes stay axis-aligned.
				size := r3.Vec{
					X: cell * jitterScale(rng, cfg.Noise.Jitter),
					Y: cell * jitterScale(rng, cfg.Noise.Jitter),
					Z: cell * jitterScale(rng, cfg.Noise.Jitter),
				}
				reg.Add(NewObstacle(r3.Vec{X: x, Y: y, Z: z}, size, false))
			}
		}
	}

	addShell(reg, cfg)

	return reg
}

// jitterScale draws a uniform size multiplier in [1-jitter, 1+jitter].
func jitterScale(rng *rand.Rand, jitter float64) float64 {
	return 1 + (rng.Float64()*2-1)*jitter
}

// addShell appends the boundary walls and ceiling that keep the agent inside
// the compiled volume. The shell is rows of cell-sized boxes rather than
// single large slabs so its silhouette matches the interior granularity.
func addShell(reg *Registry, cfg *config.Config) {
	cell := cfg.World.CellSize
	thick := cfg.World.WallThickness
	wall := cfg.Derived.WallExtent
	ceiling := cfg.Derived.CeilingHeight

	n := int(wall / cell)
	ny := int(cfg.World.LatticeHeight / cell)

	// Front and back walls.
	for ix := -n; ix <= n; ix++ {
		for iy := 0; iy <= ny; iy++ {
			x := float64(ix) * cell
			y := float64(iy) * cell
			reg.Add(NewObstacle(r3.Vec{X: x, Y: y, Z: -wall}, r3.Vec{X: cell, Y: cell, Z: thick}, true))
			reg.Add(NewObstacle(r3.Vec{X: x, Y: y, Z: wall}, r3.Vec{X: cell, Y: cell, Z: thick}, true))
		}
	}

	// Left and right walls.
	for iz := -n; iz <= n; iz++ {
		for iy := 0; iy <= ny; iy++ {
			z := float64(iz) * cell
			y := float64(iy) * cell
			reg.Add(NewObstacle(r3.Vec{X: -wall, Y: y, Z: z}, r3.Vec{X: thick, Y: cell, Z: cell}, true))
			reg.Add(NewObstacle(r3.Vec{X: wall, Y: y, Z: z}, r3.Vec{X: thick, Y: cell, Z: cell}, true))
		}
	}

	// Ceiling.
	for ix := -n; ix <= n; ix++ {
		for iz := -n; iz <= n; iz++ {
			x := float64(ix) * cell
			z := float64(iz) * cell
			reg.Add(NewObstacle(r3.Vec{X: x, Y: ceiling, Z: z}, r3.Vec{X: cell, Y: thick, Z: cell}, true))
		}
	}
}
