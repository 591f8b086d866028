package telemetry

import (
	"log/slog"
	"time"
)

// Phase names for the simulation step.
const (
	PhaseKinematics = "kinematics"
	PhaseLidar      = "lidar"
	PhaseDecay      = "decay"
	PhaseTelemetry  = "telemetry"
)

// PerfSample holds timing data for a single tick.
type PerfSample struct {
	TickDuration time.Duration
	Phases       map[string]time.Duration
}

// PerfCollector tracks per-phase tick timings over a rolling window.
type PerfCollector struct {
	windowSize    int
	samples       []PerfSample
	writeIndex    int
	sampleCount   int
	currentPhases map[string]time.Duration
	tickStart     time.Time
	phaseStart    time.Time
	lastPhase     string
}

// NewPerfCollector creates a performance collector.
// windowSize: number of ticks to average over (e.g. 60 for 1 second at 60fps).
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 60
	}
	return &PerfCollector{
		windowSize:    windowSize,
		samples:       make([]PerfSample, windowSize),
		currentPhases: make(map[string]time.Duration),
	}
}

// StartTick begins timing a new simulation tick.
func (p *PerfCollector) StartTick() {
	p.tickStart = time.Now()
	p.currentPhases = make(map[string]time.Duration)
	p.lastPhase = ""
}

// StartPhase begins timing a named phase, closing the previous one.
func (p *PerfCollector) StartPhase(phase string) {
	now := time.Now()
	if p.lastPhase != "" {
		p.currentPhases[p.lastPhase] += now.Sub(p.phaseStart)
	}
	p.phaseStart = now
	p.lastPhase = phase
}

// EndTick closes the open phase and stores the tick sample.
func (p *PerfCollector) EndTick() {
	now := time.Now()
	if p.lastPhase != "" {
		p.currentPhases[p.lastPhase] += now.Sub(p.phaseStart)
		p.lastPhase = ""
	}

	p.samples[p.writeIndex] = PerfSample{
		TickDuration: now.Sub(p.tickStart),
		Phases:       p.currentPhases,
	}
	p.writeIndex = (p.writeIndex + 1) % p.windowSize
	if p.sampleCount < p.windowSize {
		p.sampleCount++
	}
}

// AvgTick returns the mean tick duration over the window.
func (p *PerfCollector) AvgTick() time.Duration {
	if p.sampleCount == 0 {
		return 0
	}
	var total time.Duration
	for i := 0; i < p.sampleCount; i++ {
		total += p.samples[i].TickDuration
	}
	return total / time.Duration(p.sampleCount)
}

// AvgPhase returns the mean duration of one phase over the window.
func (p *PerfCollector) AvgPhase(phase string) time.Duration {
	if p.sampleCount == 0 {
		return 0
	}
	var total time.Duration
	for i := 0; i < p.sampleCount; i++ {
		total += p.samples[i].Phases[phase]
	}
	return total / time.Duration(p.sampleCount)
}

// PerfRecord is one CSV row of rolling phase averages.
type PerfRecord struct {
	Tick         int64   `csv:"tick"`
	TickMicros   float64 `csv:"tick_us"`
	KinMicros    float64 `csv:"kinematics_us"`
	LidarMicros  float64 `csv:"lidar_us"`
	DecayMicros  float64 `csv:"decay_us"`
	TelemMicros  float64 `csv:"telemetry_us"`
}

// Snapshot returns the current rolling averages as a CSV record.
func (p *PerfCollector) Snapshot(tick int64) PerfRecord {
	return PerfRecord{
		Tick:        tick,
		TickMicros:  micros(p.AvgTick()),
		KinMicros:   micros(p.AvgPhase(PhaseKinematics)),
		LidarMicros: micros(p.AvgPhase(PhaseLidar)),
		DecayMicros: micros(p.AvgPhase(PhaseDecay)),
		TelemMicros: micros(p.AvgPhase(PhaseTelemetry)),
	}
}

// Log emits the rolling averages as a structured log record.
func (p *PerfCollector) Log(tick int64) {
	slog.Info("perf",
		"tick", tick,
		"tick_avg", p.AvgTick().Round(time.Microsecond).String(),
		"kinematics", p.AvgPhase(PhaseKinematics).Round(time.Microsecond).String(),
		"lidar", p.AvgPhase(PhaseLidar).Round(time.Microsecond).String(),
		"decay", p.AvgPhase(PhaseDecay).Round(time.Microsecond).String(),
		"telemetry", p.AvgPhase(PhaseTelemetry).Round(time.Microsecond).String(),
	)
}

func micros(d time.Duration) float64 {
	return float64(d.Nanoseconds()) / 1e3
}
