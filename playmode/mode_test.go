package playmode

import (
	"math/rand"
	"testing"

	"github.com/cargorun/playmode/entity"
	"github.com/cargorun/playmode/event"
	"github.com/cargorun/playmode/game"
	"github.com/cargorun/playmode/settings"
	"github.com/cargorun/playmode/virtual"
	"github.com/cargorun/playmode/walkmesh"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/sirupsen/logrus/hooks/test"
)

// layout places the prototypes of a test level on a flat 41x41 grid. The player starts at the origin.
type layout struct {
	spawn mgl32.Vec3
	robot mgl32.Vec3
	cargo []mgl32.Vec3
}

// defaultLayout keeps enemies, cargo and the robot out of the way of the player.
func defaultLayout() layout {
	return layout{
		spawn: mgl32.Vec3{-15, 15, 0.5},
		robot: mgl32.Vec3{0, 100, 0},
		cargo: []mgl32.Vec3{{15, -15, 0.5}},
	}
}

// collector records every event handled.
type collector struct {
	events []event.Event
}

func (c *collector) Handle(ev event.Event) {
	c.events = append(c.events, ev)
}

func (c *collector) count(id byte) int {
	n := 0
	for _, ev := range c.events {
		if ev.ID() == id {
			n++
		}
	}
	return n
}

type fixture struct {
	mode   *Mode
	scene  *virtual.Scene
	mixer  *virtual.Mixer
	events *collector
}

func newFixture(t *testing.T, s settings.Settings, l layout) fixture {
	t.Helper()
	mesh, err := walkmesh.Grid(41, 41, 41, 41, nil)
	if err != nil {
		t.Fatalf("failed to create walkmesh: %v", err)
	}
	logger, _ := test.NewNullLogger()

	scene := virtual.NewScene(logger)
	scene.Add(game.EnemyPrototype, entity.Shape{}, entity.NewTransform(l.spawn))
	bullet := entity.NewTransform(mgl32.Vec3{0, 0, -50})
	bullet.Scale = mgl32.Vec3{0.25, 0.25, 0.25}
	scene.Add(game.BulletPrototype, entity.Shape{}, bullet)
	for i, pos := range l.cargo {
		scene.Add(game.CargoPrototypes[i], entity.Shape{}, entity.NewTransform(pos))
	}
	scene.Add(game.RobotPrototype, entity.Shape{}, entity.NewTransform(l.robot))

	f := fixture{scene: scene, mixer: virtual.NewMixer(logger), events: &collector{}}
	f.mode, err = New(Deps{
		Mesh:   mesh,
		Scene:  scene,
		Audio:  f.mixer,
		Log:    logger,
		Rand:   rand.New(rand.NewSource(3)),
		Events: f.events,
	}, s)
	if err != nil {
		t.Fatalf("failed to create mode: %v", err)
	}
	return f
}

func TestNewRequiresPrototypes(t *testing.T) {
	mesh, err := walkmesh.Grid(4, 4, 2, 2, nil)
	if err != nil {
		t.Fatalf("failed to create walkmesh: %v", err)
	}
	logger, _ := test.NewNullLogger()
	mixer := virtual.NewMixer(logger)

	scene := virtual.NewScene(logger)
	scene.Add(game.BulletPrototype, entity.Shape{}, entity.NewTransform(mgl32.Vec3{}))
	scene.Add(game.RobotPrototype, entity.Shape{}, entity.NewTransform(mgl32.Vec3{}))
	scene.Add(game.CargoPrototypes[0], entity.Shape{}, entity.NewTransform(mgl32.Vec3{}))
	if _, err := New(Deps{Mesh: mesh, Scene: scene, Audio: mixer, Log: logger}, settings.DefaultSettings()); err == nil {
		t.Fatalf("expected error for missing enemy prototype")
	}

	scene = virtual.NewScene(logger)
	for _, name := range []string{game.EnemyPrototype, game.BulletPrototype, game.RobotPrototype} {
		scene.Add(name, entity.Shape{}, entity.NewTransform(mgl32.Vec3{}))
	}
	if _, err := New(Deps{Mesh: mesh, Scene: scene, Audio: mixer, Log: logger}, settings.DefaultSettings()); err == nil {
		t.Fatalf("expected error for a scene without cargo")
	}

	if _, err := New(Deps{Scene: scene, Audio: mixer, Log: logger}, settings.DefaultSettings()); err == nil {
		t.Fatalf("expected error without a walkmesh")
	}
}

func TestSpawningIsCapped(t *testing.T) {
	s := settings.DefaultSettings()
	s.Enemies.SpawnInterval = 0.5
	s.Enemies.Step = 0
	f := newFixture(t, s, defaultLayout())

	for range 100 {
		f.mode.Update(1)
	}
	if n := len(f.mode.Enemies()); n != 10 {
		t.Fatalf("expected 10 enemies at the cap, got %d", n)
	}
	if n := f.events.count(event.EventIDSpawned); n != 10 {
		t.Fatalf("expected 10 spawn events, got %d", n)
	}
}

func TestLosingLastCargoFreezesState(t *testing.T) {
	s := settings.DefaultSettings()
	s.Enemies.SpawnInterval = 0
	s.Enemies.Step = 0
	spot := mgl32.Vec3{5, 5, 0.5}
	f := newFixture(t, s, layout{spawn: spot, robot: mgl32.Vec3{0, 100, 0}, cargo: []mgl32.Vec3{spot, spot}})
	first, _ := f.scene.Find(game.CargoPrototypes[0])
	second, _ := f.scene.Find(game.CargoPrototypes[1])

	// The first enemy spawns on top of both crates, but only captures the first of them.
	f.mode.Update(0.01)
	if f.mode.Status() != StatusPlaying {
		t.Fatalf("expected game to continue with one crate left, got %v", f.mode.Status())
	}
	if cargo := f.mode.Cargo(); len(cargo) != 1 || cargo[0].ID != second.ID {
		t.Fatalf("expected only the second crate to remain, got %v", cargo)
	}
	if ev, ok := f.events.events[len(f.events.events)-1].(event.CapturedEvent); !ok || ev.Cargo != first.ID || ev.Remaining != 1 {
		t.Fatalf("expected capture of the first crate, got %#v", f.events.events[len(f.events.events)-1])
	}

	f.mode.Update(0.01)
	if f.mode.Status() != StatusLost {
		t.Fatalf("expected game to be lost, got %v", f.mode.Status())
	}
	if f.mode.Message() != game.MessageLost {
		t.Fatalf("unexpected message %q", f.mode.Message())
	}
	if f.events.count(event.EventIDLost) != 1 {
		t.Fatalf("expected a single lost event")
	}
	for _, id := range []entity.InstanceID{first.ID, second.ID} {
		if inst, _ := f.scene.Instance(id); !virtual.IsHidden(inst) {
			t.Fatalf("expected captured crate %d to be hidden", id)
		}
	}

	fingerprint, frame, events := f.mode.Fingerprint(), f.mode.Frame(), len(f.events.events)
	if f.mode.HandleKey(KeyW, true) || f.mode.HandleMouseButton() || f.mode.HandleMouseMotion(10, 10, 100) {
		t.Fatalf("expected input to be ignored once the game is lost")
	}
	for range 5 {
		f.mode.Update(1)
	}
	if f.mode.Fingerprint() != fingerprint || f.mode.Frame() != frame || len(f.events.events) != events {
		t.Fatalf("expected no state changes after losing")
	}
	if n := f.mixer.Count(game.SoundCargo); n != 2 {
		t.Fatalf("expected the cargo sample twice, got %d", n)
	}
}

func TestEnemiesRetargetAfterCapture(t *testing.T) {
	s := settings.DefaultSettings()
	s.Enemies.SpawnInterval = 0
	f := newFixture(t, s, layout{
		spawn: mgl32.Vec3{0, 10, 0.5},
		robot: mgl32.Vec3{0, 100, 0},
		cargo: []mgl32.Vec3{{0, 12, 0.5}, {-8, -8, 0.5}, {8, -8, 0.5}},
	})

	for range 1000 {
		f.mode.Update(0.01)
		if f.events.count(event.EventIDCaptured) > 0 {
			break
		}
	}
	if f.events.count(event.EventIDCaptured) != 1 {
		t.Fatalf("expected exactly one capture")
	}

	remaining := map[mgl32.Vec3]bool{}
	for _, c := range f.mode.Cargo() {
		remaining[c.Transform.Position] = true
	}
	enemies := f.mode.Enemies()
	if len(enemies) == 0 {
		t.Fatalf("expected enemies to remain after the capture")
	}
	for _, e := range enemies {
		if !remaining[e.Target] {
			t.Fatalf("enemy %d still heads for %v, which is not a remaining crate", e.Instance.ID, e.Target)
		}
	}
}

func TestBulletKillsOneEnemyPerFrame(t *testing.T) {
	s := settings.DefaultSettings()
	s.Bullets.Lift, s.Bullets.Forward = 0, 0
	s.Enemies.SpawnInterval = 0
	s.Enemies.Step = 0
	l := defaultLayout()
	l.spawn = mgl32.Vec3{}
	f := newFixture(t, s, l)

	// No time passes while shooting, so nothing spawns yet.
	for range 2 {
		f.mode.HandleMouseButton()
		f.mode.Update(0)
	}
	bullets := f.mode.Bullets()
	if len(bullets) != 2 || len(f.mode.Enemies()) != 0 {
		t.Fatalf("expected two bullets and no enemies, got %d and %d", len(bullets), len(f.mode.Enemies()))
	}

	f.mode.Update(0.01)
	if len(f.mode.Enemies()) != 0 {
		t.Fatalf("expected the spawned enemy to be killed")
	}
	if left := f.mode.Bullets(); len(left) != 1 || left[0].Instance.ID != bullets[1].Instance.ID {
		t.Fatalf("expected only the oldest bullet to be used, left %v", left)
	}
	if ev, ok := f.events.events[len(f.events.events)-1].(event.KilledEvent); !ok || ev.Bullet != bullets[0].Instance.ID {
		t.Fatalf("expected a kill by the oldest bullet, got %#v", f.events.events[len(f.events.events)-1])
	}

	f.mode.Update(0.01)
	if len(f.mode.Enemies()) != 0 || len(f.mode.Bullets()) != 0 {
		t.Fatalf("expected the second enemy to be killed by the second bullet")
	}
	if n := f.mixer.Count(game.SoundEnemyHit); n != 2 {
		t.Fatalf("expected two enemy hits, got %d", n)
	}
}

func TestRobotInvincibilityAndWin(t *testing.T) {
	s := settings.DefaultSettings()
	s.Robot.Health = 2
	s.Robot.Invincibility = 0.5
	l := defaultLayout()
	l.robot = mgl32.Vec3{}
	f := newFixture(t, s, l)

	f.mode.HandleMouseButton()
	f.mode.Update(0.1)
	if f.mode.Health() != 1 {
		t.Fatalf("expected the first hit to cost one health, got %d", f.mode.Health())
	}

	// The second hit lands within the invincibility window.
	f.mode.HandleMouseButton()
	f.mode.Update(0.1)
	if f.mode.Health() != 1 {
		t.Fatalf("expected the robot to be invincible, got health %d", f.mode.Health())
	}
	if len(f.mode.Bullets()) != 0 {
		t.Fatalf("expected bullets hitting the robot to be retired")
	}
	if ev, ok := f.events.events[len(f.events.events)-1].(event.RobotHitEvent); !ok || ev.Damaged {
		t.Fatalf("expected an absorbed hit, got %#v", f.events.events[len(f.events.events)-1])
	}

	f.mode.Update(0.5)
	f.mode.HandleMouseButton()
	f.mode.Update(0.1)
	if f.mode.Status() != StatusWon || f.mode.Message() != game.MessageWon {
		t.Fatalf("expected the game to be won, got %v", f.mode.Status())
	}
	if n := f.mixer.Count(game.SoundRobotHit); n != 2 {
		t.Fatalf("expected two robot hit samples, got %d", n)
	}
	if n := f.mixer.Count(game.SoundShoot); n != 3 {
		t.Fatalf("expected three shots, got %d", n)
	}

	frame := f.mode.Frame()
	f.mode.Update(1)
	if f.mode.Frame() != frame {
		t.Fatalf("expected no updates after winning")
	}
}

func TestBulletsExpire(t *testing.T) {
	f := newFixture(t, settings.DefaultSettings(), defaultLayout())

	f.mode.HandleMouseButton()
	f.mode.Update(1)
	bullets := f.mode.Bullets()
	if len(bullets) != 1 {
		t.Fatalf("expected one bullet, got %d", len(bullets))
	}
	// Bullets fly along the player's forward (y) and up (z) axes, scaled by the prototype's scale.
	if pos := bullets[0].Instance.Transform.Position; !vecNear(pos, mgl32.Vec3{0, 0.75, 0.375}, 1e-4) {
		t.Fatalf("unexpected bullet position %v", pos)
	}

	f.mode.Update(1)
	f.mode.Update(1)
	if len(f.mode.Bullets()) != 1 {
		t.Fatalf("expected the bullet to live for its full lifetime")
	}
	f.mode.Update(1)
	if len(f.mode.Bullets()) != 0 {
		t.Fatalf("expected the bullet to expire")
	}
	if inst, _ := f.scene.Instance(bullets[0].Instance.ID); !virtual.IsHidden(inst) {
		t.Fatalf("expected expired bullet to be hidden")
	}
	if f.events.count(event.EventIDBulletExpired) != 1 {
		t.Fatalf("expected a bullet expired event")
	}
}

func TestBulletCapacityRetiresOldest(t *testing.T) {
	s := settings.DefaultSettings()
	s.Bullets.Capacity = 2
	f := newFixture(t, s, defaultLayout())

	for range 3 {
		f.mode.HandleMouseButton()
		f.mode.Update(0)
	}
	if len(f.mode.Bullets()) != 2 {
		t.Fatalf("expected two bullets, got %d", len(f.mode.Bullets()))
	}

	var shots []event.ShotEvent
	for _, ev := range f.events.events {
		if shot, ok := ev.(event.ShotEvent); ok {
			shots = append(shots, shot)
		}
	}
	if len(shots) != 3 || shots[2].Retired != shots[0].Bullet {
		t.Fatalf("expected the third shot to retire the first bullet, got %+v", shots)
	}
	if inst, _ := f.scene.Instance(shots[0].Bullet); !virtual.IsHidden(inst) {
		t.Fatalf("expected retired bullet to be hidden")
	}
}

func TestWalking(t *testing.T) {
	f := newFixture(t, settings.DefaultSettings(), defaultLayout())

	f.mode.HandleKey(KeyW, true)
	f.mode.Update(0.1)
	if pos := f.mode.Player().Transform.Position; !vecNear(pos, mgl32.Vec3{0, 0.6, 0}, 1e-4) {
		t.Fatalf("expected player to walk to (0, 0.6, 0), got %v", pos)
	}

	// Walking diagonally is not faster.
	f.mode.HandleKey(KeyD, true)
	f.mode.Update(0.1)
	if d := f.mode.Player().Transform.Position.Sub(mgl32.Vec3{0, 0.6, 0}).Len(); mgl32.Abs(d-0.6) > 1e-4 {
		t.Fatalf("expected diagonal step of 0.6, got %f", d)
	}

	// Opposite keys cancel out.
	f.mode.HandleKey(KeyA, true)
	f.mode.HandleKey(KeyW, false)
	before := f.mode.Player().Transform.Position
	f.mode.Update(0.1)
	if !vecNear(f.mode.Player().Transform.Position, before, 1e-5) {
		t.Fatalf("expected no movement with opposite keys held")
	}

	listener := f.mixer.Listener()
	if listener.Position != f.mode.Player().Transform.Position {
		t.Fatalf("expected listener at the player, got %v", listener.Position)
	}
	if !vecNear(listener.Right, mgl32.Vec3{1, 0, 0}, 1e-5) || listener.Ramp != game.ListenerRampTime {
		t.Fatalf("unexpected listener %+v", listener)
	}
}

func TestDeterministicFingerprint(t *testing.T) {
	run := func(seed int64) (uint64, int) {
		logger, _ := test.NewNullLogger()
		level, err := virtual.Arena(logger)
		if err != nil {
			t.Fatalf("failed to build arena: %v", err)
		}
		var rec event.Recorder
		m, err := New(Deps{
			Mesh:   level.Mesh,
			Scene:  level.Scene,
			Audio:  virtual.NewMixer(logger),
			Log:    logger,
			Rand:   rand.New(rand.NewSource(seed)),
			Events: &rec,
		}, settings.DefaultSettings())
		if err != nil {
			t.Fatalf("failed to create mode: %v", err)
		}

		for frame := range 900 {
			switch {
			case frame == 10:
				m.HandleKey(KeyW, true)
			case frame == 300:
				m.HandleKey(KeyW, false)
				m.HandleKey(KeyD, true)
			case frame%45 == 0:
				m.HandleMouseButton()
			}
			m.HandleMouseMotion(3, 1, 720)
			m.Update(1.0 / 60.0)
		}
		return m.Fingerprint(), rec.Len()
	}

	a, eventsA := run(42)
	b, eventsB := run(42)
	if a != b || eventsA != eventsB {
		t.Fatalf("expected identical runs, got fingerprints %x/%x and %d/%d events", a, b, eventsA, eventsB)
	}
	if c, _ := run(7); c == a {
		t.Fatalf("expected a different random source to change the game")
	}
}

// vecNear compares vectors by absolute distance, so that components expected to be zero tolerate rounding noise.
func vecNear(got, want mgl32.Vec3, eps float32) bool {
	return got.Sub(want).Len() <= eps
}
