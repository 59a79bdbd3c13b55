package event

import (
	"bytes"
	"encoding/binary"
	"math"

	"github.com/cargorun/playmode/entity"
	"github.com/cargorun/playmode/internal"
	"github.com/cargorun/playmode/oerror"
	"github.com/go-gl/mathgl/mgl32"
)

// EventsVersion is the version of the event encoding. Every recording starts with recordingMagic followed by
// this version, and DecodeRecording refuses recordings of any other version.
const EventsVersion byte = 1

var recordingMagic = []byte("PMEV")

// Event is something notable that happened during a frame of the play mode. Events can be encoded into a
// compact binary recording and decoded back with DecodeRecording.
type Event interface {
	ID() byte
	Encode() []byte

	// Time returns the frame the event happened in.
	Time() int64
}

type NopEvent struct {
	EvTime int64
}

func (n NopEvent) Time() int64 {
	return n.EvTime
}

func WriteEventHeader(ev Event, buf *bytes.Buffer) {
	buf.WriteByte(ev.ID())
	writeInt64(buf, ev.Time())
}

// encode runs f on a pooled buffer after writing the event header, and returns a copy of the result.
func encode(ev Event, f func(buf *bytes.Buffer)) []byte {
	buf := internal.BufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	defer internal.BufferPool.Put(buf)

	WriteEventHeader(ev, buf)
	if f != nil {
		f(buf)
	}
	return bytes.Clone(buf.Bytes())
}

// WriteRecordingHeader writes the header every recording starts with.
func WriteRecordingHeader(buf *bytes.Buffer) {
	buf.Write(recordingMagic)
	buf.WriteByte(EventsVersion)
}

// DecodeRecording checks the header of a recording produced by a Recorder and decodes the events following it.
func DecodeRecording(dat []byte) ([]Event, error) {
	if len(dat) < len(recordingMagic)+1 || !bytes.Equal(dat[:len(recordingMagic)], recordingMagic) {
		return nil, oerror.New("not an event recording")
	}
	if v := dat[len(recordingMagic)]; v != EventsVersion {
		return nil, oerror.New("unsupported recording version %d, expected %d", v, EventsVersion)
	}
	return DecodeEvents(dat[len(recordingMagic)+1:])
}

// DecodeEvents decodes a headerless sequence of encoded events.
func DecodeEvents(dat []byte) ([]Event, error) {
	buf := bytes.NewBuffer(dat)
	events := []Event{}
	for buf.Len() > 0 {
		ev, err := DecodeEvent(buf)
		if err != nil {
			return events, oerror.New("error decoding event %d: %v", len(events), err)
		}
		events = append(events, ev)
	}
	return events, nil
}

func DecodeEvent(buf *bytes.Buffer) (Event, error) {
	r := reader{buf: buf}
	id := r.u8()
	t := r.i64()
	if r.err != nil {
		return nil, oerror.New("error reading event header: %v", r.err)
	}
	header := NopEvent{EvTime: t}

	var ev Event
	switch id {
	case EventIDSpawned:
		ev = SpawnedEvent{NopEvent: header, Enemy: r.instance(), Position: r.vec3(), Target: r.vec3()}
	case EventIDShot:
		ev = ShotEvent{NopEvent: header, Bullet: r.instance(), Position: r.vec3(), Retired: r.instance()}
	case EventIDBulletExpired:
		ev = BulletExpiredEvent{NopEvent: header, Bullet: r.instance()}
	case EventIDKilled:
		ev = KilledEvent{NopEvent: header, Enemy: r.instance(), Bullet: r.instance(), Position: r.vec3()}
	case EventIDCaptured:
		ev = CapturedEvent{NopEvent: header, Cargo: r.instance(), Enemy: r.instance(), Remaining: r.i32()}
	case EventIDRobotHit:
		ev = RobotHitEvent{NopEvent: header, Bullet: r.instance(), Health: r.i32(), Damaged: r.u8() == 1}
	case EventIDWon:
		ev = WonEvent{NopEvent: header}
	case EventIDLost:
		ev = LostEvent{NopEvent: header}
	default:
		return nil, oerror.New("unknown event: %d", id)
	}
	if r.err != nil {
		return nil, oerror.New("error decoding event %d: %v", id, r.err)
	}
	return ev, nil
}

const (
	_ = iota
	EventIDSpawned
	EventIDShot
	EventIDBulletExpired
	EventIDKilled
	EventIDCaptured
	EventIDRobotHit
	EventIDWon
	EventIDLost
)

func writeInt64(buf *bytes.Buffer, v int64) {
	buf.Write(binary.LittleEndian.AppendUint64(nil, uint64(v)))
}

func writeInt32(buf *bytes.Buffer, v int32) {
	buf.Write(binary.LittleEndian.AppendUint32(nil, uint32(v)))
}

func writeInstance(buf *bytes.Buffer, id entity.InstanceID) {
	writeInt32(buf, int32(id))
}

func writeVec3(buf *bytes.Buffer, v mgl32.Vec3) {
	for _, f := range v {
		buf.Write(binary.LittleEndian.AppendUint32(nil, math.Float32bits(f)))
	}
}

func writeBool(buf *bytes.Buffer, b bool) {
	if b {
		buf.WriteByte(1)
		return
	}
	buf.WriteByte(0)
}

// reader decodes little endian values from a buffer, remembering the first read past its end.
type reader struct {
	buf *bytes.Buffer
	err error
}

func (r *reader) next(n int) []byte {
	if r.err != nil {
		return make([]byte, n)
	}
	if r.buf.Len() < n {
		r.err = oerror.New("unexpected end of data: need %d bytes, have %d", n, r.buf.Len())
		return make([]byte, n)
	}
	return r.buf.Next(n)
}

func (r *reader) u8() byte {
	return r.next(1)[0]
}

func (r *reader) i64() int64 {
	return int64(binary.LittleEndian.Uint64(r.next(8)))
}

func (r *reader) i32() int32 {
	return int32(binary.LittleEndian.Uint32(r.next(4)))
}

func (r *reader) instance() entity.InstanceID {
	return entity.InstanceID(r.i32())
}

func (r *reader) vec3() (v mgl32.Vec3) {
	for i := range v {
		v[i] = math.Float32frombits(binary.LittleEndian.Uint32(r.next(4)))
	}
	return v
}
