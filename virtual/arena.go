package virtual

import (
	"fmt"

	"github.com/cargorun/playmode/entity"
	"github.com/cargorun/playmode/game"
	"github.com/cargorun/playmode/walkmesh"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/sirupsen/logrus"
)

const (
	arenaSize  = 40
	arenaCells = 21

	rampStart  = 6
	rampSlope  = 0.5
	rampHeight = 3
)

// Level is a walkmesh along with the scene placed on top of it.
type Level struct {
	Mesh  *walkmesh.Mesh
	Scene *Scene
}

// ArenaHeight returns the ground height of the arena at x, y: flat ground with a ramp up to a plateau along
// the east side.
func ArenaHeight(x, _ float32) float32 {
	return game.Clamp32((x-rampStart)*rampSlope, 0, rampHeight)
}

// cargoSpots are the ground positions of the cargo crates, in the order of game.CargoPrototypes.
var cargoSpots = [][2]float32{{-5, 4}, {5, 4}, {-7, -3}, {7, -3}, {-3, -7}, {3, -7}}

// Arena builds the default level: a square walkmesh with a ramp, six cargo crates around the player's
// starting point, the enemy spawn point to the north and the robot behind it.
func Arena(log *logrus.Logger) (*Level, error) {
	mesh, err := walkmesh.Grid(arenaSize, arenaSize, arenaCells, arenaCells, ArenaHeight)
	if err != nil {
		return nil, fmt.Errorf("failed building arena walkmesh: %w", err)
	}

	scene := NewScene(log)
	scene.Add(game.EnemyPrototype, entity.Shape{Mesh: game.EnemyPrototype, Colour: [4]uint8{0xe0, 0x40, 0x40, 0xff}, Radius: game.EnemyExtent},
		entity.NewTransform(mgl32.Vec3{0, 14, 2.5}))

	// The bullet prototype only provides the look and scale of bullets, so it is parked below the level.
	bullet := entity.NewTransform(mgl32.Vec3{0, 0, -50})
	bullet.Scale = mgl32.Vec3{0.25, 0.25, 0.25}
	scene.Add(game.BulletPrototype, entity.Shape{Mesh: game.BulletPrototype, Colour: [4]uint8{0xff, 0xee, 0x60, 0xff}, Radius: 0.2}, bullet)

	for i, name := range game.CargoPrototypes {
		x, y := cargoSpots[i][0], cargoSpots[i][1]
		t := entity.NewTransform(mgl32.Vec3{x, y, ArenaHeight(x, y) + 0.5})
		t.Rotation = mgl32.QuatRotate(float32(i)*math32.Pi/7, mgl32.Vec3{0, 0, 1})
		scene.Add(name, entity.Shape{Mesh: "Cube", Colour: [4]uint8{0xb0, 0x80, 0x40, 0xff}, Radius: game.CargoExtent}, t)
	}

	scene.Add(game.RobotPrototype, entity.Shape{Mesh: game.RobotPrototype, Colour: [4]uint8{0x70, 0x70, 0x80, 0xff}, Radius: 10},
		entity.NewTransform(mgl32.Vec3{0, 30, 8}))

	log.WithFields(logrus.Fields{
		"vertices":  len(mesh.Vertices()),
		"triangles": len(mesh.Triangles()),
		"instances": scene.Len(),
	}).Debug("arena built")
	return &Level{Mesh: mesh, Scene: scene}, nil
}

// Outlined returns true if an instance is drawn as an outline rather than filled. Only spawned enemies are
// outlined, so they stand out from the crates they chase.
func Outlined(inst entity.Instance) bool {
	return inst.Name == game.EnemyName
}
