package telemetry

import "gonum.org/v1/gonum/spatial/r3"

// HitClass tags what a recorded hit terminated on.
type HitClass int

const (
	ClassFloor HitClass = iota
	ClassObstacle
	ClassBoundary
)

// Collector accumulates lidar and agent events within fixed time windows
// and produces WindowStats.
type Collector struct {
	windowDurationSec   float64
	windowDurationTicks int64
	dt                  float64

	windowStartTick int64

	// Event counters for the current window
	shots        int
	hits         int
	misses       int
	floorHits    int
	obstacleHits int
	boundaryHits int
	distances    []float64
	groundedTicks int64
	windowTicks   int64
}

// NewCollector creates a stats collector.
// windowDurationSec: how long each stats window lasts in simulation seconds.
// dt: seconds per tick.
func NewCollector(windowDurationSec, dt float64) *Collector {
	ticksPerWindow := int64(windowDurationSec / dt)
	if ticksPerWindow < 1 {
		ticksPerWindow = 1
	}
	return &Collector{
		windowDurationSec:   windowDurationSec,
		windowDurationTicks: ticksPerWindow,
		dt:                  dt,
	}
}

// RecordMiss records an emitted pulse that hit nothing.
func (c *Collector) RecordMiss() {
	c.shots++
	c.misses++
}

// RecordHit records an emitted pulse that hit at the given distance.
func (c *Collector) RecordHit(class HitClass, distance float64) {
	c.shots++
	c.hits++
	c.distances = append(c.distances, distance)
	switch class {
	case ClassFloor:
		c.floorHits++
	case ClassObstacle:
		c.obstacleHits++
	case ClassBoundary:
		c.boundaryHits++
	}
}

// RecordTick records per-tick agent state.
func (c *Collector) RecordTick(grounded bool) {
	c.windowTicks++
	if grounded {
		c.groundedTicks++
	}
}

// ShouldFlush reports whether the current window ends at the given tick.
func (c *Collector) ShouldFlush(tick int64) bool {
	return tick-c.windowStartTick >= c.windowDurationTicks
}

// Flush closes the current window, returning its stats and starting the
// next one. markers and agentPos are sampled at the window boundary.
func (c *Collector) Flush(tick int64, markers int, agentPos r3.Vec) WindowStats {
	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   tick,
		SimTimeSec:      float64(tick) * c.dt,
		Shots:           c.shots,
		Hits:            c.hits,
		Misses:          c.misses,
		FloorHits:       c.floorHits,
		ObstacleHits:    c.obstacleHits,
		BoundaryHits:    c.boundaryHits,
		Markers:         markers,
		AgentX:          agentPos.X,
		AgentY:          agentPos.Y,
		AgentZ:          agentPos.Z,
	}
	if c.shots > 0 {
		stats.HitRate = float64(c.hits) / float64(c.shots)
	}
	if c.windowTicks > 0 {
		stats.GroundedFrac = float64(c.groundedTicks) / float64(c.windowTicks)
	}
	stats.DistMean, stats.DistP10, stats.DistP50, stats.DistP90 = distanceStats(c.distances)

	c.windowStartTick = tick
	c.shots = 0
	c.hits = 0
	c.misses = 0
	c.floorHits = 0
	c.obstacleHits = 0
	c.boundaryHits = 0
	c.distances = c.distances[:0]
	c.groundedTicks = 0
	c.windowTicks = 0

	return stats
}
