package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/lidargame/cavern/components"
)

var (
	floorColor    = rl.NewColor(20, 26, 31, 255)
	solidColor    = rl.NewColor(64, 71, 82, 255)
	boundaryColor = rl.NewColor(42, 47, 54, 255)
)

// Draw renders one frame from the agent's eye. Markers are always drawn;
// the world geometry only in reveal mode — in normal play the cave is known
// only through what the lidar has painted.
func (g *Game) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)

	camera := rl.Camera3D{
		Position:   toVector3(g.agent.Position),
		Target:     toVector3(r3.Add(g.agent.Position, g.agent.Direction())),
		Up:         rl.NewVector3(0, 1, 0),
		Fovy:       float32(g.cfg.Screen.FOV),
		Projection: rl.CameraPerspective,
	}
	rl.BeginMode3D(camera)

	if g.reveal {
		extent := float32(2 * g.cfg.World.HalfExtent)
		rl.DrawPlane(rl.NewVector3(0, 0, 0), rl.NewVector2(extent, extent), floorColor)
		for _, o := range g.registry.Obstacles() {
			color := solidColor
			if o.Boundary {
				color = boundaryColor
			}
			rl.DrawCubeV(toVector3(o.Center), toVector3(r3.Scale(2, o.Half)), color)
		}
	}

	g.hits.Each(func(pos components.Position, thermal components.Thermal) {
		color := rl.NewColor(
			uint8(thermal.R*255),
			uint8(thermal.G*255),
			uint8(thermal.B*255),
			255,
		)
		rl.DrawSphere(rl.NewVector3(float32(pos.X), float32(pos.Y), float32(pos.Z)), float32(thermal.Size), color)
	})

	rl.EndMode3D()
	rl.EndDrawing()
}

func toVector3(v r3.Vec) rl.Vector3 {
	return rl.NewVector3(float32(v.X), float32(v.Y), float32(v.Z))
}
