package telemetry

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

// TestFlushCadence verifies a window closes exactly every windowSec/dt ticks.
func TestFlushCadence(t *testing.T) {
	c := NewCollector(1.0, 0.25) // 4 ticks per window

	for tick := int64(1); tick <= 3; tick++ {
		if c.ShouldFlush(tick) {
			t.Fatalf("window flushed early at tick %d", tick)
		}
	}
	if !c.ShouldFlush(4) {
		t.Fatal("window must flush at tick 4")
	}

	c.Flush(4, 0, r3.Vec{})
	if c.ShouldFlush(7) {
		t.Error("window flushed early after reset")
	}
	if !c.ShouldFlush(8) {
		t.Error("second window must flush at tick 8")
	}
}

// TestCollectorCounts verifies shot classification and the hit rate.
func TestCollectorCounts(t *testing.T) {
	c := NewCollector(1.0, 0.25)

	c.RecordHit(ClassFloor, 5)
	c.RecordHit(ClassObstacle, 10)
	c.RecordHit(ClassBoundary, 20)
	c.RecordMiss()

	stats := c.Flush(4, 7, r3.Vec{X: 1, Y: 2, Z: 3})

	if stats.Shots != 4 || stats.Hits != 3 || stats.Misses != 1 {
		t.Errorf("shots/hits/misses = %d/%d/%d, want 4/3/1", stats.Shots, stats.Hits, stats.Misses)
	}
	if stats.FloorHits != 1 || stats.ObstacleHits != 1 || stats.BoundaryHits != 1 {
		t.Errorf("class counts = %d/%d/%d, want 1/1/1",
			stats.FloorHits, stats.ObstacleHits, stats.BoundaryHits)
	}
	if stats.HitRate != 0.75 {
		t.Errorf("hit rate = %v, want 0.75", stats.HitRate)
	}
	if stats.Markers != 7 {
		t.Errorf("markers = %d, want 7", stats.Markers)
	}
	if stats.AgentX != 1 || stats.AgentY != 2 || stats.AgentZ != 3 {
		t.Errorf("agent position = (%v, %v, %v)", stats.AgentX, stats.AgentY, stats.AgentZ)
	}
	if stats.SimTimeSec != 1.0 {
		t.Errorf("sim time = %v, want 1.0", stats.SimTimeSec)
	}
}

// TestFlushResets verifies the counters start from zero in the next window.
func TestFlushResets(t *testing.T) {
	c := NewCollector(1.0, 0.25)
	c.RecordHit(ClassObstacle, 10)
	c.RecordTick(true)
	c.Flush(4, 0, r3.Vec{})

	stats := c.Flush(8, 0, r3.Vec{})
	if stats.Shots != 0 || stats.Hits != 0 || stats.GroundedFrac != 0 {
		t.Errorf("stale counters after flush: %+v", stats)
	}
	if stats.WindowStartTick != 4 || stats.WindowEndTick != 8 {
		t.Errorf("window ticks = [%d, %d], want [4, 8]", stats.WindowStartTick, stats.WindowEndTick)
	}
}

// TestDistanceStats verifies empirical quantiles over a small sample.
func TestDistanceStats(t *testing.T) {
	c := NewCollector(1.0, 0.25)
	for _, d := range []float64{3, 1, 4, 2} {
		c.RecordHit(ClassObstacle, d)
	}

	stats := c.Flush(4, 0, r3.Vec{})

	if math.Abs(stats.DistMean-2.5) > 1e-12 {
		t.Errorf("mean = %v, want 2.5", stats.DistMean)
	}
	if stats.DistP10 != 1 {
		t.Errorf("p10 = %v, want 1", stats.DistP10)
	}
	if stats.DistP50 != 2 {
		t.Errorf("p50 = %v, want 2", stats.DistP50)
	}
	if stats.DistP90 != 4 {
		t.Errorf("p90 = %v, want 4", stats.DistP90)
	}
}

// TestEmptyWindowStats verifies a window with no shots yields zeroed rates
// and distances rather than NaNs.
func TestEmptyWindowStats(t *testing.T) {
	c := NewCollector(1.0, 0.25)
	stats := c.Flush(4, 0, r3.Vec{})

	if stats.HitRate != 0 || stats.DistMean != 0 || stats.DistP50 != 0 {
		t.Errorf("empty window produced nonzero stats: %+v", stats)
	}
}

// TestGroundedFraction verifies the per-tick grounded ratio.
func TestGroundedFraction(t *testing.T) {
	c := NewCollector(1.0, 0.25)
	c.RecordTick(true)
	c.RecordTick(true)
	c.RecordTick(true)
	c.RecordTick(false)

	stats := c.Flush(4, 0, r3.Vec{})
	if stats.GroundedFrac != 0.75 {
		t.Errorf("grounded fraction = %v, want 0.75", stats.GroundedFrac)
	}
}
