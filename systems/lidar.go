package systems

import (
	"math/rand"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/lidargame/cavern/config"
	"github.com/lidargame/cavern/world"
)

// degenerateEps is the squared-norm floor below which a cross product is
// treated as zero.
const degenerateEps = 1e-12

// Shot is the outcome of a single lidar pulse.
type Shot struct {
	Point    r3.Vec
	Distance float64
	Fraction float64 // Distance / max range
	Kind     world.HitKind
	Hit      bool
}

// Lidar fires cone-perturbed rays at a fixed cadence and maps hits through
// the thermal gradient.
type Lidar struct {
	caster *world.Caster
	rng    *rand.Rand

	cooldown     float64
	fireInterval float64
	maxDistance  float64
	spread       float64 // radians
}

// NewLidar creates a lidar emitter over the given ray caster.
func NewLidar(caster *world.Caster, cfg *config.Config, rng *rand.Rand) *Lidar {
	return &Lidar{
		caster:       caster,
		rng:          rng,
		fireInterval: 1 / cfg.Lidar.FireRate,
		maxDistance:  cfg.Lidar.MaxDistance,
		spread:       cfg.Derived.SpreadRad,
	}
}

// Tick advances the cooldown timer.
func (l *Lidar) Tick(dt float64) {
	l.cooldown -= dt
}

// Ready reports whether the cooldown has elapsed.
func (l *Lidar) Ready() bool {
	return l.cooldown <= 0
}

// TryFire emits one pulse from origin around aim if the cooldown allows it.
// The second return is false when the emitter is still cooling down; a
// cooled-down miss returns a Shot with Hit=false.
func (l *Lidar) TryFire(origin, aim r3.Vec) (Shot, bool) {
	if !l.Ready() {
		return Shot{}, false
	}
	l.cooldown = l.fireInterval

	dir := l.perturb(aim)
	hit, ok := l.caster.Cast(origin, dir, l.maxDistance)
	if !ok {
		return Shot{}, true
	}
	return Shot{
		Point:    hit.Point,
		Distance: hit.Distance,
		Fraction: hit.Distance / l.maxDistance,
		Kind:     hit.Kind,
		Hit:      true,
	}, true
}

// perturb rotates aim by independent random yaw and pitch offsets within the
// spread cone: yaw about world up, then pitch about the instantaneous right
// axis, then renormalize.
func (l *Lidar) perturb(aim r3.Vec) r3.Vec {
	yawOff := (l.rng.Float64()*2 - 1) * l.spread
	pitchOff := (l.rng.Float64()*2 - 1) * l.spread

	dir := r3.Unit(aim)
	dir = r3.NewRotation(yawOff, up).Rotate(dir)
	right := r3.Cross(aim, up)
	if r3.Norm2(right) < degenerateEps {
		// Aim is vertical; any horizontal axis serves as "right".
		right = r3.Vec{X: 1}
	}
	dir = r3.NewRotation(pitchOff, r3.Unit(right)).Rotate(dir)
	return r3.Unit(dir)
}

// ThermalColor maps a distance fraction t in [0, 1] through the two-segment
// thermal gradient: red at contact, yellow at half range, blue at the limit.
func ThermalColor(t float64) (r, g, b float64) {
	if t < 0.5 {
		return 1, t * 2, 0
	}
	blend := (t - 0.5) * 2
	return 1 - blend, 1 - blend, blend
}

// MarkerSize maps a distance fraction to a rendered marker radius; closer
// hits render larger.
func MarkerSize(t, near, far float64) float64 {
	return near + (far-near)*t
}
