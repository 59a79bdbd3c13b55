// Package sim plays the default arena headless, with a scripted player at the controls.
package sim

import (
	"math/rand"

	"github.com/cargorun/playmode/event"
	"github.com/cargorun/playmode/game"
	"github.com/cargorun/playmode/locomotion"
	"github.com/cargorun/playmode/playmode"
	"github.com/cargorun/playmode/settings"
	"github.com/cargorun/playmode/virtual"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/sirupsen/logrus"
)

// FrameTime is the time simulated by a single frame of a headless run.
const FrameTime = 1.0 / 60.0

// Result is the outcome of a single headless run.
type Result struct {
	Seed        int64
	Frames      int64
	Status      playmode.Status
	Health      int
	Cargo       int
	Fingerprint uint64
	Events      int
	Recording   []byte

	// Iterations are the walk iterations used by each frame.
	Iterations []float32
	Truncated  int
	// ClosestToRobot is the smallest distance between the player and the robot's bounding box.
	ClosestToRobot float32
}

// Run plays the default arena for up to frames frames, or until the game ends, with the Autopilot at the
// controls.
func Run(log *logrus.Logger, s settings.Settings, seed int64, frames int) (*Result, error) {
	level, err := virtual.Arena(log)
	if err != nil {
		return nil, err
	}

	var rec event.Recorder
	runLog := log.WithField("seed", seed)
	m, err := playmode.New(playmode.Deps{
		Mesh:  level.Mesh,
		Scene: level.Scene,
		Audio: virtual.NewMixer(runLog),
		Log:   log,
		Rand:  rand.New(rand.NewSource(seed)),
		Events: event.Multi(&rec, event.HandlerFunc(func(ev event.Event) {
			runLog.WithField("frame", ev.Time()).Debugf("%T", ev)
		})),
	}, s)
	if err != nil {
		return nil, err
	}

	res := &Result{Seed: seed, Iterations: make([]float32, 0, frames), ClosestToRobot: math32.MaxFloat32}
	robot := game.ActorBox(m.Robot().Transform.Position, mgl32.Vec3{s.Robot.Extent.X, s.Robot.Extent.Y, s.Robot.Extent.Z})
	var pilot Autopilot
	for frame := 0; frame < frames && m.Status() == playmode.StatusPlaying; frame++ {
		pilot.Drive(m, frame)
		m.Update(FrameTime)

		walk := m.LastWalk()
		res.Iterations = append(res.Iterations, float32(walk.Iterations))
		if walk.Outcome == locomotion.OutcomeBudgetExhausted {
			res.Truncated++
		}
		res.ClosestToRobot = math32.Min(res.ClosestToRobot, game.AABBVectorDistance(robot, m.Player().Transform.Position))
	}

	res.Frames = m.Frame()
	res.Status = m.Status()
	res.Health = m.Health()
	res.Cargo = len(m.Cargo())
	res.Fingerprint = m.Fingerprint()
	res.Events = rec.Len()
	res.Recording = append([]byte(nil), rec.Bytes()...)
	return res, nil
}
