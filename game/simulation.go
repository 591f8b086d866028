package game

import (
	"log/slog"

	"github.com/lidargame/cavern/systems"
	"github.com/lidargame/cavern/telemetry"
	"github.com/lidargame/cavern/world"
)

// Step advances the simulation by one fixed tick: movement intent resolves
// against the obstacle registry, the lidar fires if requested and ready,
// markers age out, and the window stats roll forward.
func (g *Game) Step(in systems.Intent) {
	dt := g.cfg.Physics.DT
	g.perf.StartTick()

	g.perf.StartPhase(telemetry.PhaseKinematics)
	g.kin.Step(&g.agent, in, dt)

	g.perf.StartPhase(telemetry.PhaseLidar)
	g.lidar.Tick(dt)
	if in.Fire {
		if shot, ok := g.lidar.TryFire(g.agent.Position, g.agent.Direction()); ok {
			if shot.Hit {
				g.hits.Append(shot)
				g.collector.RecordHit(hitClass(shot.Kind), shot.Distance)
			} else {
				g.collector.RecordMiss()
			}
		}
	}

	g.perf.StartPhase(telemetry.PhaseDecay)
	g.hits.Age(dt)

	g.perf.StartPhase(telemetry.PhaseTelemetry)
	g.collector.RecordTick(g.agent.Grounded)
	g.tick++
	if g.collector.ShouldFlush(g.tick) {
		stats := g.collector.Flush(g.tick, g.hits.Count(), g.agent.Position)
		if g.opts.LogStats {
			stats.Log()
			g.perf.Log(g.tick)
		}
		if err := g.output.WriteTelemetry(stats); err != nil {
			slog.Warn("writing telemetry", "error", err)
		}
		if err := g.output.WritePerf(g.perf.Snapshot(g.tick)); err != nil {
			slog.Warn("writing perf", "error", err)
		}
	}

	g.perf.EndTick()
}

// UpdateHeadless runs one tick with a scripted survey intent: a slow yaw
// sweep with the sensor held on, walking in bursts and hopping now and then
// so the kinematic paths get exercised too.
func (g *Game) UpdateHeadless() {
	g.agent.Look(0.4*g.cfg.Physics.DT, 0, g.cfg.Derived.PitchClampRad)
	in := systems.Intent{
		Forward: g.tick%240 < 120,
		Jump:    g.tick%600 == 0,
		Fire:    true,
	}
	g.Step(in)
}

// hitClass maps a ray hit kind to its telemetry class.
func hitClass(kind world.HitKind) telemetry.HitClass {
	switch kind {
	case world.HitFloor:
		return telemetry.ClassFloor
	case world.HitBoundary:
		return telemetry.ClassBoundary
	default:
		return telemetry.ClassObstacle
	}
}
