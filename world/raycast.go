package world

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// parallelEps is the direction-component magnitude below which a ray is
// treated as parallel to a slab axis.
const parallelEps = 1e-9

// HitKind classifies what a ray terminated on.
type HitKind int

const (
	HitFloor HitKind = iota
	HitObstacle
	HitBoundary
)

// Hit is the result of a successful cast.
type Hit struct {
	Point    r3.Vec
	Distance float64
	Kind     HitKind
}

// Caster answers nearest-hit ray queries against the floor plane and every
// registered obstacle.
type Caster struct {
	reg         *Registry
	floorExtent float64 // floor plane spans [-floorExtent, floorExtent] on X/Z
}

// NewCaster creates a ray caster over the given registry.
func NewCaster(reg *Registry, floorExtent float64) *Caster {
	return &Caster{reg: reg, floorExtent: floorExtent}
}

// Cast fires a ray and returns the nearest hit among the bounded y=0 floor
// plane and all obstacles, or ok=false if nothing lies within maxDist.
// dir must be unit length.
func (c *Caster) Cast(origin, dir r3.Vec, maxDist float64) (Hit, bool) {
	var hit Hit
	closest := maxDist
	found := false

	// Floor plane at y=0, bounded by the world extent.
	if dir.Y != 0 {
		t := -origin.Y / dir.Y
		if t > 0 && t < closest {
			p := r3.Add(origin, r3.Scale(t, dir))
			if math.Abs(p.X) <= c.floorExtent && math.Abs(p.Z) <= c.floorExtent {
				closest = t
				hit = Hit{Point: p, Distance: t, Kind: HitFloor}
				found = true
			}
		}
	}

	if o, dist, ok := c.reg.IntersectRay(origin, dir, maxDist); ok && dist < closest {
		kind := HitObstacle
		if o.Boundary {
			kind = HitBoundary
		}
		hit = Hit{
			Point:    r3.Add(origin, r3.Scale(dist, dir)),
			Distance: dist,
			Kind:     kind,
		}
		found = true
	}

	return hit, found
}

// intersectRayBox runs the slab test against one AABB. The returned distance
// is the entry point tMin when the origin is outside the box, or the exit
// point tMax when the origin is inside it; that policy decides whether hits
// register for a sensor embedded in geometry, so keep it.
func intersectRayBox(origin, dir, boxMin, boxMax r3.Vec, maxDist float64) (float64, bool) {
	// tMin starts unbounded below so an origin inside the box yields a
	// negative entry and the exit-distance branch below can fire.
	tMin := math.Inf(-1)
	tMax := maxDist

	var ok bool
	if tMin, tMax, ok = narrowSlab(origin.X, dir.X, boxMin.X, boxMax.X, tMin, tMax); !ok {
		return 0, false
	}
	if tMin, tMax, ok = narrowSlab(origin.Y, dir.Y, boxMin.Y, boxMax.Y, tMin, tMax); !ok {
		return 0, false
	}
	if tMin, tMax, ok = narrowSlab(origin.Z, dir.Z, boxMin.Z, boxMax.Z, tMin, tMax); !ok {
		return 0, false
	}

	if tMax < 0 {
		return 0, false
	}
	hit := tMax
	if tMin >= 0 {
		hit = tMin
	}
	if hit > maxDist {
		return 0, false
	}
	return hit, true
}

// narrowSlab intersects the running [tMin, tMax] interval with one axis
// slab. A ray parallel to the slab is rejected unless its origin already
// lies between the slab planes.
func narrowSlab(origin, dir, slabMin, slabMax, tMin, tMax float64) (float64, float64, bool) {
	if math.Abs(dir) < parallelEps {
		if origin < slabMin || origin > slabMax {
			return 0, 0, false
		}
		return tMin, tMax, true
	}
	invD := 1 / dir
	t1 := (slabMin - origin) * invD
	t2 := (slabMax - origin) * invD
	if t1 > t2 {
		t1, t2 = t2, t1
	}
	if t1 > tMin {
		tMin = t1
	}
	if t2 < tMax {
		tMax = t2
	}
	if tMax < tMin {
		return 0, 0, false
	}
	return tMin, tMax, true
}
