package virtual

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/sirupsen/logrus"
	"golang.org/x/exp/slices"
)

// Play is a sample played through a Mixer.
type Play struct {
	Sample string
	Gain   float32
	Pan    float32
}

// Listener is the position and orientation samples are heard from.
type Listener struct {
	Position mgl32.Vec3
	Right    mgl32.Vec3
	Ramp     float32
}

// Mixer records the samples played instead of playing them.
type Mixer struct {
	log logrus.FieldLogger

	plays    []Play
	pending  int
	listener Listener
}

// NewMixer ...
func NewMixer(log logrus.FieldLogger) *Mixer {
	return &Mixer{log: log}
}

// Play records a sample being played.
func (m *Mixer) Play(sample string, gain, pan float32) {
	m.plays = append(m.plays, Play{Sample: sample, Gain: gain, Pan: pan})
	m.log.WithFields(logrus.Fields{"sample": sample, "gain": gain, "pan": pan}).Debug("play sample")
}

// SetListener moves the listener.
func (m *Mixer) SetListener(position, right mgl32.Vec3, ramp float32) {
	m.listener = Listener{Position: position, Right: right, Ramp: ramp}
}

// Listener returns the last listener set.
func (m *Mixer) Listener() Listener {
	return m.listener
}

// Plays returns all samples played so far.
func (m *Mixer) Plays() []Play {
	return slices.Clone(m.plays)
}

// Count returns how many times a sample was played.
func (m *Mixer) Count(sample string) int {
	n := 0
	for _, p := range m.plays {
		if p.Sample == sample {
			n++
		}
	}
	return n
}

// Drain returns the samples played since the last call to Drain.
func (m *Mixer) Drain() []Play {
	drained := slices.Clone(m.plays[m.pending:])
	m.pending = len(m.plays)
	return drained
}
