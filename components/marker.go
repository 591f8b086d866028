// Package components defines the ECS components for lidar hit markers.
package components

// Position is a marker's world-space hit point.
type Position struct {
	X, Y, Z float64
}

// Thermal is a marker's distance-derived appearance: the thermal gradient
// color, the rendered radius and the raw distance fraction it was mapped
// from.
type Thermal struct {
	R, G, B  float64
	Size     float64
	Fraction float64 // hit distance / max range, in [0, 1]
}

// Decay is a marker's remaining lifetime in seconds. Aged every tick;
// the marker is removed when it reaches zero.
type Decay struct {
	Remaining float64
}
