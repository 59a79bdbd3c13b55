package playmode

import (
	"fmt"
	"math/rand"

	"github.com/cargorun/playmode/entity"
	"github.com/cargorun/playmode/event"
	"github.com/cargorun/playmode/game"
	"github.com/cargorun/playmode/locomotion"
	"github.com/cargorun/playmode/oerror"
	"github.com/cargorun/playmode/settings"
	"github.com/cargorun/playmode/walkmesh"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/sirupsen/logrus"
)

// Scene is the scene graph the mode places its actors in.
type Scene interface {
	// Find returns the first instance with the name passed.
	Find(name string) (entity.Instance, bool)
	// Instantiate creates a new instance drawn like the prototype passed, placed at t.
	Instantiate(proto entity.Instance, t entity.Transform, name string) entity.Instance
	// Place moves an instance to t.
	Place(id entity.InstanceID, t entity.Transform)
	// Hide moves an instance out of view.
	Hide(id entity.InstanceID)
}

// Audio plays samples and positions the listener. Playing a sample is fire and forget.
type Audio interface {
	Play(sample string, gain, pan float32)
	SetListener(position, right mgl32.Vec3, ramp float32)
}

// Deps are the collaborators of a Mode.
type Deps struct {
	Mesh  walkmesh.Provider
	Scene Scene
	Audio Audio

	// Log defaults to the standard logger.
	Log *logrus.Logger
	// Rand picks the cargo crates enemies head for. It defaults to a source seeded with 1.
	Rand *rand.Rand
	// Events defaults to a handler that ignores all events.
	Events event.Handler
}

// Status is the state of the game played in a Mode.
type Status uint8

const (
	StatusPlaying Status = iota
	StatusWon
	StatusLost
)

func (s Status) String() string {
	switch s {
	case StatusPlaying:
		return "playing"
	case StatusWon:
		return "won"
	case StatusLost:
		return "lost"
	default:
		return "unknown"
	}
}

// Player is the actor walking the walkmesh.
type Player struct {
	Transform entity.Transform
	Camera    Camera
	// At is where the player stands on the walkmesh.
	At walkmesh.WalkPoint
}

// Camera is attached to the player, and its transform is relative to the player's.
type Camera struct {
	Transform entity.Transform
	Fovy      float32
	Near      float32
	// Pitch is the rotation of the camera about its x axis. At zero the camera looks down at the player's
	// feet.
	Pitch float32
}

// Enemy is an actor crawling toward a cargo crate.
type Enemy struct {
	Instance entity.Instance
	Target   mgl32.Vec3
}

// Bullet is a projectile fired by the player.
type Bullet struct {
	Instance entity.Instance
	Age      float32
}

// Mode is a single game of walking the level, shooting enemies before they capture all the cargo and
// destroying the robot. It is not safe for concurrent use; a host calls the input methods and Update from a
// single goroutine.
type Mode struct {
	log      *logrus.Logger
	mesh     walkmesh.Provider
	scene    Scene
	audio    Audio
	rand     *rand.Rand
	events   event.Handler
	settings settings.Settings
	resolver *locomotion.Resolver

	player                Player
	left, right, up, down Button
	shot                  bool
	captured              bool

	enemyProto  entity.Instance
	bulletProto entity.Instance
	robot       entity.Instance

	cargo   *entity.Arena[entity.Instance]
	enemies *entity.Arena[Enemy]
	bullets *entity.RingBuffer[Bullet]
	spawner *Spawner

	health   int
	hitClock float32
	hitTime  float32

	status   Status
	frame    int64
	lastWalk locomotion.Result
}

// New creates a Mode for the level described by deps. The scene must contain the enemy, bullet and robot
// prototypes and at least one cargo crate.
func New(deps Deps, s settings.Settings) (*Mode, error) {
	switch {
	case deps.Mesh == nil:
		return nil, oerror.New(game.ErrorNoWalkmesh)
	case deps.Scene == nil:
		return nil, oerror.New(game.ErrorNoScene)
	case deps.Audio == nil:
		return nil, oerror.New(game.ErrorNoAudio)
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("playmode: %w", err)
	}
	if deps.Log == nil {
		deps.Log = logrus.StandardLogger()
	}
	if deps.Rand == nil {
		deps.Rand = rand.New(rand.NewSource(1))
	}
	if deps.Events == nil {
		deps.Events = event.NopHandler{}
	}

	m := &Mode{
		log:      deps.Log,
		mesh:     deps.Mesh,
		scene:    deps.Scene,
		audio:    deps.Audio,
		rand:     deps.Rand,
		events:   deps.Events,
		settings: s,

		cargo:   entity.NewArena[entity.Instance](),
		enemies: entity.NewArena[Enemy](),
		bullets: entity.NewRingBuffer[Bullet](s.Bullets.Capacity),
		spawner: NewSpawner(s.Enemies.SpawnInterval, s.Enemies.Cap),
		health:  s.Robot.Health,
	}

	opts := s.LocomotionOptions()
	walkLog := m.log.WithField("component", "locomotion")
	opts.Log = walkLog
	if m.log.IsLevelEnabled(logrus.TraceLevel) {
		opts.Debugf = walkLog.Tracef
	}
	m.resolver = locomotion.New(m.mesh, opts)

	var ok bool
	for _, p := range []struct {
		name string
		dst  *entity.Instance
	}{
		{game.EnemyPrototype, &m.enemyProto},
		{game.BulletPrototype, &m.bulletProto},
		{game.RobotPrototype, &m.robot},
	} {
		if *p.dst, ok = m.scene.Find(p.name); !ok {
			return nil, oerror.New(game.ErrorMissingPrototype, p.name)
		}
	}
	for _, name := range game.CargoPrototypes {
		if crate, ok := m.scene.Find(name); ok {
			m.cargo.Insert(crate)
		}
	}
	if m.cargo.Len() == 0 {
		return nil, oerror.New(game.ErrorNoCargo)
	}

	pitch := mgl32.DegToRad(game.CameraPitchDeg)
	m.player = Player{
		Transform: entity.NewTransform(mgl32.Vec3{}),
		Camera: Camera{
			Transform: entity.Transform{
				Position: mgl32.Vec3{0, 0, s.Player.EyeHeight},
				Rotation: mgl32.QuatRotate(pitch, mgl32.Vec3{1, 0, 0}),
				Scale:    mgl32.Vec3{1, 1, 1},
			},
			Fovy:  mgl32.DegToRad(s.Player.FovyDeg),
			Near:  s.Player.Near,
			Pitch: pitch,
		},
	}
	m.player.At = m.mesh.NearestWalkPoint(m.player.Transform.Position)

	m.log.WithFields(logrus.Fields{
		"cargo":  m.cargo.Len(),
		"health": m.health,
	}).Debug("play mode ready")
	return m, nil
}

// Status returns whether the game is still being played, won or lost.
func (m *Mode) Status() Status {
	return m.status
}

// Message returns the text shown over the game once it has ended, or an empty string while playing.
func (m *Mode) Message() string {
	switch m.status {
	case StatusWon:
		return game.MessageWon
	case StatusLost:
		return game.MessageLost
	default:
		return ""
	}
}

// Player returns the player actor.
func (m *Mode) Player() Player {
	return m.player
}

// Health returns the remaining health of the robot.
func (m *Mode) Health() int {
	return m.health
}

// Frame returns the amount of frames simulated so far.
func (m *Mode) Frame() int64 {
	return m.frame
}

// LastWalk returns the locomotion result of the most recent frame.
func (m *Mode) LastWalk() locomotion.Result {
	return m.lastWalk
}

// Enemies returns the enemies alive, oldest first.
func (m *Mode) Enemies() []Enemy {
	enemies := make([]Enemy, 0, m.enemies.Len())
	for _, e := range m.enemies.All() {
		enemies = append(enemies, e)
	}
	return enemies
}

// Bullets returns the bullets in flight, oldest first.
func (m *Mode) Bullets() []Bullet {
	bullets := make([]Bullet, 0, m.bullets.Len())
	for _, b := range m.bullets.All() {
		bullets = append(bullets, b)
	}
	return bullets
}

// Cargo returns the cargo crates left.
func (m *Mode) Cargo() []entity.Instance {
	cargo := make([]entity.Instance, 0, m.cargo.Len())
	for _, c := range m.cargo.All() {
		cargo = append(cargo, c)
	}
	return cargo
}

// Robot returns the robot instance.
func (m *Mode) Robot() entity.Instance {
	return m.robot
}

// end moves the game into a terminal status. Only the first call has an effect.
func (m *Mode) end(status Status) {
	if m.status != StatusPlaying {
		return
	}
	m.status = status
	if status == StatusWon {
		m.events.Handle(event.WonEvent{NopEvent: m.now()})
	} else {
		m.events.Handle(event.LostEvent{NopEvent: m.now()})
	}
	m.log.WithFields(logrus.Fields{"frame": m.frame, "status": status}).Info(m.Message())
}

func (m *Mode) now() event.NopEvent {
	return event.NopEvent{EvTime: m.frame}
}

// randomCargo returns a random cargo crate, or false if none are left.
func (m *Mode) randomCargo() (entity.Instance, bool) {
	handles := m.cargo.Handles()
	if len(handles) == 0 {
		return entity.Instance{}, false
	}
	return m.cargo.Get(handles[m.rand.Intn(len(handles))])
}

// clampPitch keeps the camera between looking almost straight down and almost straight up.
func clampPitch(pitch float32) float32 {
	return game.Clamp32(pitch, game.CameraMinPitch*math32.Pi, game.CameraMaxPitch*math32.Pi)
}
