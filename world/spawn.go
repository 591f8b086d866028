package world

import (
	"math/rand"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/lidargame/cavern/config"
)

// FindSpawn rejection-samples a point inside the spawn region that lies in
// no obstacle's box. The attempt budget bounds startup cost; on exhaustion
// it falls back to a fixed elevated point above the cave center, so the
// search always terminates with a usable position.
func FindSpawn(reg *Registry, cfg *config.Config, rng *rand.Rand) r3.Vec {
	half := cfg.Spawn.RegionHalfExtent
	for i := 0; i < cfg.Spawn.Attempts; i++ {
		p := r3.Vec{
			X: (rng.Float64()*2 - 1) * half,
			Y: cfg.Spawn.Height,
			Z: (rng.Float64()*2 - 1) * half,
		}
		if !reg.ContainsAny(p) {
			return p
		}
	}
	return r3.Vec{X: 0, Y: cfg.Spawn.FallbackHeight, Z: 0}
}
