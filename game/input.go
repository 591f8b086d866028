package game

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/lidargame/cavern/systems"
)

// Update polls input and advances one simulation tick (graphical mode).
func (g *Game) Update() {
	g.Step(g.handleInput())
}

// handleInput reads raylib state into a movement intent and applies look
// deltas. Look and kinematics touch disjoint agent fields, so applying the
// look here before Step is equivalent to applying it after.
func (g *Game) handleInput() systems.Intent {
	if rl.IsKeyPressed(rl.KeyEscape) {
		g.cursorCaptured = !g.cursorCaptured
		if g.cursorCaptured {
			rl.DisableCursor()
		} else {
			rl.EnableCursor()
		}
	}

	// Reveal mode draws the geometry the lidar is discovering.
	if rl.IsKeyPressed(rl.KeyT) {
		g.reveal = !g.reveal
	}

	if g.cursorCaptured {
		delta := rl.GetMouseDelta()
		sens := g.cfg.Player.MouseSensitivity * math.Pi / 180
		g.agent.Look(-float64(delta.X)*sens, -float64(delta.Y)*sens, g.cfg.Derived.PitchClampRad)
	}

	return systems.Intent{
		Forward: rl.IsKeyDown(rl.KeyW),
		Back:    rl.IsKeyDown(rl.KeyS),
		Left:    rl.IsKeyDown(rl.KeyA),
		Right:   rl.IsKeyDown(rl.KeyD),
		Jump:    rl.IsKeyPressed(rl.KeySpace),
		Fire:    rl.IsMouseButtonDown(rl.MouseButtonLeft) && g.cursorCaptured,
	}
}
