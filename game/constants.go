package game

import "github.com/go-gl/mathgl/mgl32"

const (
	PlayerSpeed      = float32(3)
	PlayerWalkScale  = float32(2)
	PlayerEyeHeight  = float32(1.8)
	CameraFovyDeg    = float32(60)
	CameraNear       = float32(0.01)
	CameraPitchDeg   = float32(90)
	CameraMinPitch   = float32(0.05)
	CameraMaxPitch   = float32(0.95)
	ListenerRampTime = float32(1.0 / 60.0)

	BulletLift     = float32(3)
	BulletForward  = float32(1.5)
	BulletLifetime = float32(3)
	BulletExtent   = float32(0.1)
	MaxBullets     = 64

	EnemyStep          = float32(0.05)
	EnemyArrivalFactor = float32(0.1)
	EnemyExtent        = float32(0.8)
	CargoExtent        = float32(0.8)

	SpawnInterval = float32(4)
	SpawnCap      = 10

	RobotHealth        = 10
	RobotInvincibility = float32(2)
)

// RobotExtent is the half-extent of the robot used when testing it against bullets.
var RobotExtent = mgl32.Vec3{10, 10, 8}

// HiddenPosition is where retired actors are parked, out of view below the level.
var HiddenPosition = mgl32.Vec3{0, 0, -100}

// Names of the prototype instances looked up in the scene.
const (
	EnemyPrototype  = "Torus"
	BulletPrototype = "Icosphere"
	RobotPrototype  = "Robot"

	EnemyName  = "enemy"
	BulletName = "bullet"
)

// CargoPrototypes are the names of the cargo crates placed in the scene.
var CargoPrototypes = []string{"Cube.001", "Cube.002", "Cube.003", "Cube.004", "Cube.005", "Cube.006"}

// Names of the samples played by the mode.
const (
	SoundShoot    = "shoot"
	SoundEnemyHit = "enemy_hit"
	SoundCargo    = "cargo"
	SoundRobotHit = "big_robot_hit"
)

const (
	MessageWon  = "You beat the robots!"
	MessageLost = "You lost all your cargo. Game Over!"
)
