// Package telemetry aggregates per-window simulation statistics and writes
// them to CSV and structured logs.
package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated lidar and agent statistics for one time
// window.
type WindowStats struct {
	WindowStartTick int64   `csv:"-"`
	WindowEndTick   int64   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	// Sensor activity during the window
	Shots        int     `csv:"shots"`
	Hits         int     `csv:"hits"`
	Misses       int     `csv:"misses"`
	FloorHits    int     `csv:"floor_hits"`
	ObstacleHits int     `csv:"obstacle_hits"`
	BoundaryHits int     `csv:"boundary_hits"`
	HitRate      float64 `csv:"hit_rate"`

	// Hit distance distribution
	DistMean float64 `csv:"dist_mean"`
	DistP10  float64 `csv:"dist_p10"`
	DistP50  float64 `csv:"dist_p50"`
	DistP90  float64 `csv:"dist_p90"`

	// State sampled at window end
	Markers int     `csv:"markers"`
	AgentX  float64 `csv:"agent_x"`
	AgentY  float64 `csv:"agent_y"`
	AgentZ  float64 `csv:"agent_z"`

	// Fraction of window ticks spent grounded
	GroundedFrac float64 `csv:"grounded_frac"`
}

// Log emits the window stats as a structured log record.
func (s WindowStats) Log() {
	slog.Info("window stats",
		"tick", s.WindowEndTick,
		"sim_time", s.SimTimeSec,
		"shots", s.Shots,
		"hits", s.Hits,
		"hit_rate", s.HitRate,
		"dist_mean", s.DistMean,
		"dist_p50", s.DistP50,
		"markers", s.Markers,
		"grounded_frac", s.GroundedFrac,
	)
}

// distanceStats computes mean and empirical quantiles of the hit distances.
// Returns zeros for an empty window.
func distanceStats(dists []float64) (mean, p10, p50, p90 float64) {
	if len(dists) == 0 {
		return 0, 0, 0, 0
	}
	sorted := make([]float64, len(dists))
	copy(sorted, dists)
	sort.Float64s(sorted)

	mean = stat.Mean(sorted, nil)
	p10 = stat.Quantile(0.1, stat.Empirical, sorted, nil)
	p50 = stat.Quantile(0.5, stat.Empirical, sorted, nil)
	p90 = stat.Quantile(0.9, stat.Empirical, sorted, nil)
	return mean, p10, p50, p90
}
