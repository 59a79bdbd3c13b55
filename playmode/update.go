package playmode

import (
	"github.com/cargorun/playmode/entity"
	"github.com/cargorun/playmode/event"
	"github.com/cargorun/playmode/game"
	"github.com/cargorun/playmode/locomotion"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/sirupsen/logrus"
)

// Update advances the game by elapsed seconds. Once the game has been won or lost, Update does nothing.
func (m *Mode) Update(elapsed float32) {
	if m.status != StatusPlaying {
		return
	}
	m.frame++

	move := m.move()
	if m.shot {
		m.shot = false
		m.shoot()
	}

	m.moveBullets(elapsed)
	m.spawnEnemy(elapsed)
	m.moveEnemies()
	m.killEnemy()
	m.captureCargo()
	m.damageRobot(elapsed)
	m.walk(move, elapsed)

	right, _, _ := m.player.Camera.Transform.Frame()
	m.audio.SetListener(m.player.Transform.Position, right, game.ListenerRampTime)
	m.resetButtons()
}

// walk moves the player across the walkmesh.
func (m *Mode) walk(move mgl32.Vec2, elapsed float32) {
	// Moving diagonally must not be faster.
	if move != (mgl32.Vec2{}) {
		move = move.Normalize().Mul(m.settings.Player.Speed * elapsed)
	}
	move = move.Mul(m.settings.Player.WalkScale)
	remain := m.player.Transform.ToWorldDir(mgl32.Vec3{move[0], move[1], 0})

	m.lastWalk = m.resolver.Walk(m.player.At, remain, m.player.Transform.Rotation)
	m.player.At = m.lastWalk.At
	m.player.Transform.Position = m.lastWalk.Position
	m.player.Transform.Rotation = m.lastWalk.Rotation
	if m.lastWalk.Outcome == locomotion.OutcomeBudgetExhausted {
		m.log.WithField("frame", m.frame).Debug("player walk truncated")
	}
}

// shoot fires a bullet from the player's position in the direction the player faces.
func (m *Mode) shoot() {
	t := entity.Transform{
		Position: m.player.Transform.Position,
		Rotation: m.player.Transform.Rotation,
		Scale:    m.bulletProto.Transform.Scale,
	}
	bullet := m.scene.Instantiate(m.bulletProto, t, game.BulletName)

	ev := event.ShotEvent{NopEvent: m.now(), Bullet: bullet.ID, Position: t.Position}
	if retired, full := m.bullets.Push(Bullet{Instance: bullet}); full {
		m.scene.Hide(retired.Instance.ID)
		ev.Retired = retired.Instance.ID
	}
	m.audio.Play(game.SoundShoot, 1, 0)
	m.events.Handle(ev)
}

// moveBullets ages and advances every bullet, retiring the oldest one once it has outlived its lifetime.
func (m *Mode) moveBullets(elapsed float32) {
	s := m.settings.Bullets
	for i := range m.bullets.Len() {
		b, _ := m.bullets.At(i)
		b.Age += elapsed

		_, y, z := b.Instance.Transform.Frame()
		b.Instance.Transform.Position = b.Instance.Transform.Position.Add(y.Mul(s.Lift)).Add(z.Mul(s.Forward))
		m.scene.Place(b.Instance.ID, b.Instance.Transform)
		_ = m.bullets.Set(i, b)
	}

	if front, ok := m.bullets.Front(); ok && front.Age > s.Lifetime {
		m.bullets.PopFront()
		m.scene.Hide(front.Instance.ID)
		m.events.Handle(event.BulletExpiredEvent{NopEvent: m.now(), Bullet: front.Instance.ID})
	}
}

// spawnEnemy spawns an enemy at the enemy prototype when the spawner says one is due, and sends it toward a
// random cargo crate.
func (m *Mode) spawnEnemy(elapsed float32) {
	if !m.spawner.Tick(elapsed, m.enemies.Len()) {
		return
	}
	target, ok := m.randomCargo()
	if !ok {
		return
	}

	enemy := m.scene.Instantiate(m.enemyProto, m.enemyProto.Transform, game.EnemyName)
	m.enemies.Insert(Enemy{Instance: enemy, Target: target.Transform.Position})
	m.events.Handle(event.SpawnedEvent{
		NopEvent: m.now(),
		Enemy:    enemy.ID,
		Position: enemy.Transform.Position,
		Target:   target.Transform.Position,
	})
	m.log.WithFields(logrus.Fields{
		"enemy":  enemy.ID,
		"target": target.Name,
		"alive":  m.enemies.Len(),
	}).Debug("enemy spawned")
}

// moveEnemies steps every enemy toward its target across the ground, then down onto it once above it.
func (m *Mode) moveEnemies() {
	s := m.settings.Enemies
	m.enemies.Update(func(_ entity.Handle, e *Enemy) {
		pos := &e.Instance.Transform.Position
		pos[0] = game.StepToward(pos[0], e.Target[0], s.Step)
		pos[1] = game.StepToward(pos[1], e.Target[1], s.Step)

		if game.ApproxEqualRel(pos[1], e.Target[1], s.ArrivalFactor) &&
			game.ApproxEqualRel(pos[0], e.Target[0], s.ArrivalFactor) && pos[2] > e.Target[2] {
			pos[2] -= s.Step
		}
		m.scene.Place(e.Instance.ID, e.Instance.Transform)
	})
}

// killEnemy removes the first enemy hit by a bullet, along with the bullet. At most one enemy dies per frame.
func (m *Mode) killEnemy() {
	bulletExtent := game.UniformExtent(m.settings.Bullets.Extent)
	enemyExtent := game.UniformExtent(m.settings.Enemies.Extent)

	for h, e := range m.enemies.All() {
		for j, b := range m.bullets.All() {
			if !game.ActorsOverlap(b.Instance.Transform.Position, bulletExtent, e.Instance.Transform.Position, enemyExtent) {
				continue
			}
			m.scene.Hide(e.Instance.ID)
			m.scene.Hide(b.Instance.ID)
			_, _ = m.bullets.RemoveAt(j)
			m.enemies.Remove(h)
			m.audio.Play(game.SoundEnemyHit, 1, 0)
			m.events.Handle(event.KilledEvent{
				NopEvent: m.now(),
				Enemy:    e.Instance.ID,
				Bullet:   b.Instance.ID,
				Position: e.Instance.Transform.Position,
			})
			return
		}
	}
}

// captureCargo removes the first cargo crate reached by an enemy, along with the enemy. Losing the last crate
// loses the game; otherwise every enemy picks a new crate to head for. At most one crate is lost per frame.
func (m *Mode) captureCargo() {
	extent := game.UniformExtent(m.settings.Cargo.Extent)
	enemyExtent := game.UniformExtent(m.settings.Enemies.Extent)

	for ch, c := range m.cargo.All() {
		for eh, e := range m.enemies.All() {
			if !game.ActorsOverlap(e.Instance.Transform.Position, enemyExtent, c.Transform.Position, extent) {
				continue
			}
			m.scene.Hide(c.ID)
			m.scene.Hide(e.Instance.ID)
			m.enemies.Remove(eh)
			m.cargo.Remove(ch)
			m.audio.Play(game.SoundCargo, 1, 0)
			m.events.Handle(event.CapturedEvent{
				NopEvent:  m.now(),
				Cargo:     c.ID,
				Enemy:     e.Instance.ID,
				Remaining: int32(m.cargo.Len()),
			})
			m.log.WithFields(logrus.Fields{"cargo": c.Name, "remaining": m.cargo.Len()}).Debug("cargo captured")

			if m.cargo.Len() == 0 {
				m.end(StatusLost)
				return
			}
			m.enemies.Update(func(_ entity.Handle, other *Enemy) {
				target, _ := m.randomCargo()
				other.Target = target.Transform.Position
			})
			return
		}
	}
}

// damageRobot retires the first bullet hitting the robot. The robot loses health for the hit unless it is
// still invincible from the previous one. At most one bullet hits the robot per frame.
func (m *Mode) damageRobot(elapsed float32) {
	m.hitClock += elapsed
	bulletExtent := game.UniformExtent(m.settings.Bullets.Extent)
	robotExtent := mgl32.Vec3{m.settings.Robot.Extent.X, m.settings.Robot.Extent.Y, m.settings.Robot.Extent.Z}

	for j, b := range m.bullets.All() {
		if !game.ActorsOverlap(b.Instance.Transform.Position, bulletExtent, m.robot.Transform.Position, robotExtent) {
			continue
		}
		m.scene.Hide(b.Instance.ID)
		_, _ = m.bullets.RemoveAt(j)

		damaged := m.hitClock > m.hitTime
		if damaged {
			m.health--
			m.audio.Play(game.SoundRobotHit, 1, 0)
			m.hitTime = m.hitClock + m.settings.Robot.Invincibility
		}
		m.events.Handle(event.RobotHitEvent{
			NopEvent: m.now(),
			Bullet:   b.Instance.ID,
			Health:   int32(m.health),
			Damaged:  damaged,
		})
		if damaged && m.health <= 0 {
			m.end(StatusWon)
		}
		return
	}
}
