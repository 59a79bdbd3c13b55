package sim

import "github.com/cargorun/playmode/playmode"

// Autopilot walks a square around the arena while sweeping its view and shooting twice a second.
type Autopilot struct {
	held playmode.Key
}

// legs are the keys held along each side of the square walked.
var legs = [...]playmode.Key{playmode.KeyW, playmode.KeyD, playmode.KeyS, playmode.KeyA}

const (
	legFrames   = 120
	shootFrames = 30
)

// Drive feeds the input for a frame to the mode. It must be called once per frame, before Update.
func (a *Autopilot) Drive(m *playmode.Mode, frame int) {
	if frame%shootFrames == 0 {
		m.HandleMouseButton()
	}
	if key := legs[(frame/legFrames)%len(legs)]; key != a.held {
		if a.held != playmode.KeyUnknown {
			m.HandleKey(a.held, false)
		}
		m.HandleKey(key, true)
		a.held = key
	}

	// Sweep left and right once every four legs.
	dx := float32(2)
	if (frame/(legFrames*len(legs)))%2 == 1 {
		dx = -dx
	}
	m.HandleMouseMotion(dx, 0, 720)
}
