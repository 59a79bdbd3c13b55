package event

import (
	"bytes"

	"github.com/cargorun/playmode/entity"
	"github.com/go-gl/mathgl/mgl32"
)

// SpawnedEvent is emitted when an enemy spawns and starts heading for a cargo crate at Target.
type SpawnedEvent struct {
	NopEvent

	Enemy    entity.InstanceID
	Position mgl32.Vec3
	Target   mgl32.Vec3
}

func (SpawnedEvent) ID() byte {
	return EventIDSpawned
}

func (ev SpawnedEvent) Encode() []byte {
	return encode(ev, func(buf *bytes.Buffer) {
		writeInstance(buf, ev.Enemy)
		writeVec3(buf, ev.Position)
		writeVec3(buf, ev.Target)
	})
}

// ShotEvent is emitted when the player fires a bullet. Retired is the bullet removed to make room for it, or
// zero if there was room left.
type ShotEvent struct {
	NopEvent

	Bullet   entity.InstanceID
	Position mgl32.Vec3
	Retired  entity.InstanceID
}

func (ShotEvent) ID() byte {
	return EventIDShot
}

func (ev ShotEvent) Encode() []byte {
	return encode(ev, func(buf *bytes.Buffer) {
		writeInstance(buf, ev.Bullet)
		writeVec3(buf, ev.Position)
		writeInstance(buf, ev.Retired)
	})
}

// BulletExpiredEvent is emitted when the oldest bullet outlives its lifetime.
type BulletExpiredEvent struct {
	NopEvent

	Bullet entity.InstanceID
}

func (BulletExpiredEvent) ID() byte {
	return EventIDBulletExpired
}

func (ev BulletExpiredEvent) Encode() []byte {
	return encode(ev, func(buf *bytes.Buffer) {
		writeInstance(buf, ev.Bullet)
	})
}

// KilledEvent is emitted when a bullet kills an enemy.
type KilledEvent struct {
	NopEvent

	Enemy    entity.InstanceID
	Bullet   entity.InstanceID
	Position mgl32.Vec3
}

func (KilledEvent) ID() byte {
	return EventIDKilled
}

func (ev KilledEvent) Encode() []byte {
	return encode(ev, func(buf *bytes.Buffer) {
		writeInstance(buf, ev.Enemy)
		writeInstance(buf, ev.Bullet)
		writeVec3(buf, ev.Position)
	})
}

// CapturedEvent is emitted when an enemy reaches a cargo crate and both are lost.
type CapturedEvent struct {
	NopEvent

	Cargo     entity.InstanceID
	Enemy     entity.InstanceID
	Remaining int32
}

func (CapturedEvent) ID() byte {
	return EventIDCaptured
}

func (ev CapturedEvent) Encode() []byte {
	return encode(ev, func(buf *bytes.Buffer) {
		writeInstance(buf, ev.Cargo)
		writeInstance(buf, ev.Enemy)
		writeInt32(buf, ev.Remaining)
	})
}

// RobotHitEvent is emitted when a bullet hits the robot. Damaged is false if the robot was still invincible
// from a previous hit, in which case Health is unchanged.
type RobotHitEvent struct {
	NopEvent

	Bullet  entity.InstanceID
	Health  int32
	Damaged bool
}

func (RobotHitEvent) ID() byte {
	return EventIDRobotHit
}

func (ev RobotHitEvent) Encode() []byte {
	return encode(ev, func(buf *bytes.Buffer) {
		writeInstance(buf, ev.Bullet)
		writeInt32(buf, ev.Health)
		writeBool(buf, ev.Damaged)
	})
}

// WonEvent is emitted once the robot's health reaches zero.
type WonEvent struct {
	NopEvent
}

func (WonEvent) ID() byte {
	return EventIDWon
}

func (ev WonEvent) Encode() []byte {
	return encode(ev, nil)
}

// LostEvent is emitted once the last cargo crate is captured.
type LostEvent struct {
	NopEvent
}

func (LostEvent) ID() byte {
	return EventIDLost
}

func (ev LostEvent) Encode() []byte {
	return encode(ev, nil)
}
