package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/lidargame/cavern/components"
	"github.com/lidargame/cavern/config"
)

// HitLog is the time-ordered, decaying collection of lidar hit markers.
// Markers live as ECS entities; the aging pass decrements lifetimes and
// evicts expired markers. Eviction is purely time-driven — there is no
// capacity bound.
type HitLog struct {
	w      *ecs.World
	mapper *ecs.Map3[components.Position, components.Thermal, components.Decay]
	filter *ecs.Filter3[components.Position, components.Thermal, components.Decay]

	lifetime float64
	sizeNear float64
	sizeFar  float64
	count    int
}

// NewHitLog creates an empty hit log.
func NewHitLog(cfg *config.Config) *HitLog {
	w := ecs.NewWorld()
	return &HitLog{
		w:        w,
		mapper:   ecs.NewMap3[components.Position, components.Thermal, components.Decay](w),
		filter:   ecs.NewFilter3[components.Position, components.Thermal, components.Decay](w),
		lifetime: cfg.Lidar.MarkerLifetime,
		sizeNear: cfg.Lidar.MarkerSizeNear,
		sizeFar:  cfg.Lidar.MarkerSizeFar,
	}
}

// Append adds a marker for a successful shot with the fixed lifetime.
func (h *HitLog) Append(shot Shot) {
	r, g, b := ThermalColor(shot.Fraction)
	pos := components.Position{X: shot.Point.X, Y: shot.Point.Y, Z: shot.Point.Z}
	thermal := components.Thermal{
		R:        r,
		G:        g,
		B:        b,
		Size:     MarkerSize(shot.Fraction, h.sizeNear, h.sizeFar),
		Fraction: shot.Fraction,
	}
	decay := components.Decay{Remaining: h.lifetime}
	h.mapper.NewEntity(&pos, &thermal, &decay)
	h.count++
}

// Age decrements every marker's remaining lifetime by dt and removes the
// expired ones. Removal happens after the query completes; the world cannot
// be modified while an iteration is open.
func (h *HitLog) Age(dt float64) {
	var expired []ecs.Entity

	query := h.filter.Query()
	for query.Next() {
		_, _, decay := query.Get()
		decay.Remaining -= dt
		if decay.Remaining <= 0 {
			expired = append(expired, query.Entity())
		}
	}

	for _, e := range expired {
		h.mapper.Remove(e)
		h.count--
	}
}

// Count returns the number of live markers.
func (h *HitLog) Count() int {
	return h.count
}

// Each calls fn for every live marker. The renderer reads markers through
// this; fn must not mutate the log.
func (h *HitLog) Each(fn func(pos components.Position, thermal components.Thermal)) {
	query := h.filter.Query()
	for query.Next() {
		pos, thermal, _ := query.Get()
		fn(*pos, *thermal)
	}
}
