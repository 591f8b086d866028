package telemetry

import (
	"testing"
	"time"
)

func TestPerfCollectorBasicTiming(t *testing.T) {
	pc := NewPerfCollector(10)

	for i := 0; i < 5; i++ {
		pc.StartTick()
		pc.StartPhase(PhaseKinematics)
		time.Sleep(100 * time.Microsecond)
		pc.StartPhase(PhaseLidar)
		time.Sleep(200 * time.Microsecond)
		pc.EndTick()
	}

	if pc.AvgTick() <= 0 {
		t.Error("expected positive average tick duration")
	}
	if pc.AvgPhase(PhaseKinematics) <= 0 {
		t.Error("expected kinematics phase to be tracked")
	}
	if pc.AvgPhase(PhaseLidar) <= pc.AvgPhase(PhaseKinematics) {
		t.Errorf("expected lidar phase (%v) > kinematics phase (%v)",
			pc.AvgPhase(PhaseLidar), pc.AvgPhase(PhaseKinematics))
	}
}

func TestPerfCollectorRollingWindow(t *testing.T) {
	pc := NewPerfCollector(5)

	// Overfill the window; averages must come from stored samples only.
	for i := 0; i < 10; i++ {
		pc.StartTick()
		pc.StartPhase(PhaseKinematics)
		pc.EndTick()
	}

	if pc.AvgTick() <= 0 {
		t.Error("expected positive average tick duration after window filled")
	}
}

func TestPerfCollectorEmpty(t *testing.T) {
	pc := NewPerfCollector(10)

	if pc.AvgTick() != 0 {
		t.Error("expected zero avg tick duration for empty collector")
	}
	if pc.AvgPhase(PhaseDecay) != 0 {
		t.Error("expected zero phase average for empty collector")
	}
}

func TestPerfSnapshot(t *testing.T) {
	pc := NewPerfCollector(10)
	pc.StartTick()
	pc.StartPhase(PhaseTelemetry)
	time.Sleep(50 * time.Microsecond)
	pc.EndTick()

	rec := pc.Snapshot(300)
	if rec.Tick != 300 {
		t.Errorf("snapshot tick = %d, want 300", rec.Tick)
	}
	if rec.TickMicros <= 0 {
		t.Error("expected positive tick micros")
	}
	if rec.TelemMicros <= 0 {
		t.Error("expected positive telemetry micros")
	}
}
