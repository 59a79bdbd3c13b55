package playmode

import (
	"encoding/binary"
	"math"

	"github.com/cargorun/playmode/walkmesh"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/zeebo/xxh3"
)

// Fingerprint returns a digest of the complete simulation state. Two modes that were created from the same
// level and settings, and were fed the same input and random source, have equal fingerprints.
func (m *Mode) Fingerprint() uint64 {
	var d digest
	d.u64(uint64(m.frame))
	d.u64(uint64(m.status))
	d.u64(uint64(m.health))
	d.f32(m.hitClock, m.hitTime, m.spawner.Elapsed(), m.spawner.Next())

	d.vec3(m.player.Transform.Position)
	d.quat(m.player.Transform.Rotation)
	d.walkPoint(m.player.At)
	d.f32(m.player.Camera.Pitch)

	d.u64(uint64(m.bullets.Len()))
	for _, b := range m.bullets.All() {
		d.u64(uint64(b.Instance.ID))
		d.vec3(b.Instance.Transform.Position)
		d.f32(b.Age)
	}
	d.u64(uint64(m.enemies.Len()))
	for h, e := range m.enemies.All() {
		d.u64(uint64(h), uint64(e.Instance.ID))
		d.vec3(e.Instance.Transform.Position)
		d.vec3(e.Target)
	}
	d.u64(uint64(m.cargo.Len()))
	for h, c := range m.cargo.All() {
		d.u64(uint64(h), uint64(c.ID))
	}
	return xxh3.Hash(d.buf)
}

type digest struct {
	buf []byte
}

func (d *digest) u64(values ...uint64) {
	for _, v := range values {
		d.buf = binary.LittleEndian.AppendUint64(d.buf, v)
	}
}

func (d *digest) f32(values ...float32) {
	for _, v := range values {
		d.buf = binary.LittleEndian.AppendUint32(d.buf, math.Float32bits(v))
	}
}

func (d *digest) vec3(v mgl32.Vec3) {
	d.f32(v[0], v[1], v[2])
}

func (d *digest) quat(q mgl32.Quat) {
	d.f32(q.W, q.V[0], q.V[1], q.V[2])
}

func (d *digest) walkPoint(wp walkmesh.WalkPoint) {
	d.u64(uint64(wp.Indices[0]), uint64(wp.Indices[1]), uint64(wp.Indices[2]))
	d.vec3(wp.Weights)
}
