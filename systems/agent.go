// Package systems holds the per-tick simulation logic: agent kinematics,
// the lidar emitter and the decaying hit log. Systems are pure over their
// inputs; all state they mutate is passed in explicitly.
package systems

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// up is the world up axis.
var up = r3.Vec{Y: 1}

// Agent is the first-person agent state. Position, VelY and Grounded are
// mutated by Kinematics once per tick; Yaw and Pitch by the look input.
// The two paths touch disjoint fields, so their order within a tick does
// not matter.
type Agent struct {
	Position r3.Vec // eye position
	VelY     float64
	Yaw      float64 // radians, 0 = +Z
	Pitch    float64 // radians, positive = up
	Grounded bool
}

// Direction returns the unit look direction from yaw and pitch.
func (a *Agent) Direction() r3.Vec {
	cp := math.Cos(a.Pitch)
	return r3.Vec{
		X: cp * math.Sin(a.Yaw),
		Y: math.Sin(a.Pitch),
		Z: cp * math.Cos(a.Yaw),
	}
}

// Forward returns the horizontal projection of the look direction, unit
// length.
func (a *Agent) Forward() r3.Vec {
	return r3.Vec{X: math.Sin(a.Yaw), Z: math.Cos(a.Yaw)}
}

// Look applies yaw/pitch deltas in radians, clamping pitch to ±pitchClamp.
func (a *Agent) Look(dYaw, dPitch, pitchClamp float64) {
	a.Yaw = math.Mod(a.Yaw+dYaw, 2*math.Pi)
	a.Pitch = a.Pitch + dPitch
	if a.Pitch > pitchClamp {
		a.Pitch = pitchClamp
	}
	if a.Pitch < -pitchClamp {
		a.Pitch = -pitchClamp
	}
}

// Intent is the per-tick movement input supplied by the input collaborator.
type Intent struct {
	Forward bool
	Back    bool
	Left    bool
	Right   bool
	Jump    bool
	Fire    bool
}
