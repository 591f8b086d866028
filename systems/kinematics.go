package systems

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/lidargame/cavern/config"
	"github.com/lidargame/cavern/world"
)

// Kinematics integrates the agent against the obstacle registry: horizontal
// intent with all-or-nothing collision rejection, then gravity with landing
// and ceiling resolution.
type Kinematics struct {
	reg *world.Registry

	moveSpeed    float64
	gravity      float64
	jumpVelocity float64
	radius       float64
	eyeHeight    float64
	ceilingGap   float64
	worldClamp   float64 // movement clamp on X/Z
}

// NewKinematics creates a kinematics integrator over the registry.
func NewKinematics(reg *world.Registry, cfg *config.Config) *Kinematics {
	return &Kinematics{
		reg:          reg,
		moveSpeed:    cfg.Player.MoveSpeed,
		gravity:      cfg.Player.Gravity,
		jumpVelocity: cfg.Player.JumpVelocity,
		radius:       cfg.Player.Radius,
		eyeHeight:    cfg.Player.EyeHeight,
		ceilingGap:   cfg.Player.CeilingGap,
		worldClamp:   cfg.World.HalfExtent,
	}
}

// Step advances the agent by one tick.
func (k *Kinematics) Step(a *Agent, in Intent, dt float64) {
	k.moveHorizontal(a, in, dt)

	// Jump is gated on the grounded flag as it stands at the start of the
	// vertical pass; there is no double jump.
	if in.Jump && a.Grounded {
		a.VelY = k.jumpVelocity
		a.Grounded = false
	}

	k.integrateVertical(a, dt)
}

// moveHorizontal applies movement intent on the XZ plane. The whole move is
// rejected if the candidate position overlaps any obstacle; there is no
// per-axis sliding.
func (k *Kinematics) moveHorizontal(a *Agent, in Intent, dt float64) {
	forward := a.Forward()
	right := r3.Unit(r3.Cross(forward, up))

	var move r3.Vec
	if in.Forward {
		move = r3.Add(move, forward)
	}
	if in.Back {
		move = r3.Sub(move, forward)
	}
	if in.Left {
		move = r3.Sub(move, right)
	}
	if in.Right {
		move = r3.Add(move, right)
	}

	// Zero intent: nothing to normalize, nothing to resolve.
	if move.X == 0 && move.Z == 0 {
		return
	}

	move = r3.Scale(k.moveSpeed*dt, r3.Unit(move))
	candidate := r3.Add(a.Position, move)
	candidate.X = clamp(candidate.X, -k.worldClamp+k.radius, k.worldClamp-k.radius)
	candidate.Z = clamp(candidate.Z, -k.worldClamp+k.radius, k.worldClamp-k.radius)

	if !k.reg.Collides3D(candidate, k.radius, k.eyeHeight) {
		a.Position.X = candidate.X
		a.Position.Z = candidate.Z
	}
}

// integrateVertical applies gravity and resolves landing, ceiling contact
// and the world-floor fallback.
func (k *Kinematics) integrateVertical(a *Agent, dt float64) {
	a.VelY += k.gravity * dt
	newY := a.Position.Y + a.VelY*dt

	test := a.Position
	test.Y = newY

	if ob := k.reg.VerticalOverlap(test, k.radius, a.VelY < 0); ob != nil {
		if a.VelY < 0 {
			// Landing: snap the eye to the box top plus eye height.
			a.Position.Y = ob.Max.Y + k.eyeHeight
			a.VelY = 0
			a.Grounded = true
		} else {
			// Ceiling: clamp just below the box bottom; grounded state is
			// unchanged so the fall resumes next tick.
			a.Position.Y = ob.Min.Y - k.ceilingGap
			a.VelY = 0
		}
		return
	}

	a.Position.Y = newY
	if a.Position.Y <= k.eyeHeight {
		a.Position.Y = k.eyeHeight
		a.VelY = 0
		a.Grounded = true
	} else {
		a.Grounded = false
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
