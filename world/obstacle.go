// Package world compiles the procedural cave volume and answers collision
// and ray queries against it. Everything here is immutable after Compile;
// the registry is shared read-only by kinematics, the ray caster and spawn
// search.
package world

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Obstacle is an axis-aligned solid box. Min and Max are derived from the
// center and half extents at construction and never change.
type Obstacle struct {
	Center   r3.Vec
	Half     r3.Vec
	Boundary bool

	Min r3.Vec
	Max r3.Vec
}

// NewObstacle builds an obstacle from a center and full size extents.
func NewObstacle(center, size r3.Vec, boundary bool) Obstacle {
	half := r3.Scale(0.5, size)
	return Obstacle{
		Center:   center,
		Half:     half,
		Boundary: boundary,
		Min:      r3.Sub(center, half),
		Max:      r3.Add(center, half),
	}
}

// Contains reports whether p lies inside the obstacle's box.
func (o *Obstacle) Contains(p r3.Vec) bool {
	return p.X >= o.Min.X && p.X <= o.Max.X &&
		p.Y >= o.Min.Y && p.Y <= o.Max.Y &&
		p.Z >= o.Min.Z && p.Z <= o.Max.Z
}

// overlapsXZ reports whether p's horizontal projection falls inside the box
// expanded by radius on X and Z.
func (o *Obstacle) overlapsXZ(p r3.Vec, radius float64) bool {
	dx := math.Abs(p.X - o.Center.X)
	dz := math.Abs(p.Z - o.Center.Z)
	return dx <= o.Half.X+radius && dz <= o.Half.Z+radius
}

// ContactBands holds the vertical tolerance bands for landing and ceiling
// contact, plus the margin the agent body extends above eye level. Tuned
// values, not derived; see config.
type ContactBands struct {
	LandBelow    float64 // landing accepted from this far below the box top
	LandAbove    float64 // ...to this far above it
	CeilingAbove float64 // ceiling contact from this far above the box bottom
	CeilingBelow float64 // ...to this far below it
	HeadMargin   float64 // body extends this far above the eye for 3D overlap
}

// Registry owns the obstacle set. Obstacles are appended during compilation
// in a fixed order (interior cells first, boundary shell last) and the set
// never changes afterwards; nearest-hit ties resolve to the earliest insert.
type Registry struct {
	obstacles []Obstacle
	bands     ContactBands
}

// NewRegistry creates an empty registry with the given contact bands.
func NewRegistry(bands ContactBands) *Registry {
	return &Registry{bands: bands}
}

// Add appends an obstacle. Only the compiler and tests call this; the set is
// frozen once the simulation starts.
func (r *Registry) Add(o Obstacle) {
	r.obstacles = append(r.obstacles, o)
}

// Obstacles returns the obstacle slice in insertion order. Callers must not
// modify it.
func (r *Registry) Obstacles() []Obstacle {
	return r.obstacles
}

// Len returns the number of obstacles.
func (r *Registry) Len() int {
	return len(r.obstacles)
}

// InteriorCount returns the number of non-boundary obstacles.
func (r *Registry) InteriorCount() int {
	n := 0
	for i := range r.obstacles {
		if !r.obstacles[i].Boundary {
			n++
		}
	}
	return n
}

// HorizontalOverlap returns the first obstacle whose box, expanded by radius
// on X and Z, contains p's horizontal projection, or nil.
func (r *Registry) HorizontalOverlap(p r3.Vec, radius float64) *Obstacle {
	for i := range r.obstacles {
		if r.obstacles[i].overlapsXZ(p, radius) {
			return &r.obstacles[i]
		}
	}
	return nil
}

// VerticalOverlap returns the first obstacle p is in vertical contact with.
// With below=true it tests the landing band just above the box top (the
// descending case); otherwise the ceiling band just below the box bottom.
func (r *Registry) VerticalOverlap(p r3.Vec, radius float64, below bool) *Obstacle {
	for i := range r.obstacles {
		o := &r.obstacles[i]
		if !o.overlapsXZ(p, radius) {
			continue
		}
		if below {
			if p.Y >= o.Max.Y-r.bands.LandBelow && p.Y <= o.Max.Y+r.bands.LandAbove {
				return o
			}
		} else {
			if p.Y <= o.Min.Y+r.bands.CeilingAbove && p.Y >= o.Min.Y-r.bands.CeilingBelow {
				return o
			}
		}
	}
	return nil
}

// Collides3D reports whether an agent cylinder at p (eye position) with the
// given radius and height below the eye intersects any obstacle body.
func (r *Registry) Collides3D(p r3.Vec, radius, height float64) bool {
	bottom := p.Y - height
	top := p.Y + r.bands.HeadMargin
	for i := range r.obstacles {
		o := &r.obstacles[i]
		if !o.overlapsXZ(p, radius) {
			continue
		}
		if top < o.Min.Y || bottom > o.Max.Y {
			continue
		}
		return true
	}
	return false
}

// ContainsAny reports whether p lies inside any obstacle's box.
func (r *Registry) ContainsAny(p r3.Vec) bool {
	for i := range r.obstacles {
		if r.obstacles[i].Contains(p) {
			return true
		}
	}
	return false
}

// IntersectRay returns the nearest obstacle hit along the ray, or ok=false.
// The scan is a strict minimum over insertion order, so the first-inserted
// obstacle wins exact distance ties.
func (r *Registry) IntersectRay(origin, dir r3.Vec, maxDist float64) (*Obstacle, float64, bool) {
	var nearest *Obstacle
	closest := maxDist
	for i := range r.obstacles {
		o := &r.obstacles[i]
		if dist, ok := intersectRayBox(origin, dir, o.Min, o.Max, maxDist); ok && dist < closest {
			closest = dist
			nearest = o
		}
	}
	return nearest, closest, nearest != nil
}
