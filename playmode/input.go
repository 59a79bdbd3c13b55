package playmode

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Key is a keyboard key the mode responds to.
type Key uint8

const (
	KeyUnknown Key = iota
	KeyA
	KeyD
	KeyW
	KeyS
	KeyEscape
)

// Button tracks the state of a movement key.
type Button struct {
	// Downs is the amount of times the key was pressed since the last update.
	Downs uint8
	// Pressed is true while the key is held.
	Pressed bool
}

// HandleKey handles a key being pressed or released. It returns true if the mode used the key. Input is
// ignored once the game has ended.
func (m *Mode) HandleKey(k Key, down bool) bool {
	if m.status != StatusPlaying {
		return false
	}
	if k == KeyEscape {
		if !down {
			return false
		}
		m.captured = false
		return true
	}

	b := m.button(k)
	if b == nil {
		return false
	}
	if down {
		b.Downs++
	}
	b.Pressed = down
	return true
}

// HandleMouseButton handles any mouse button being pressed: a shot is fired on the next update, and the mouse
// is captured for looking around.
func (m *Mode) HandleMouseButton() bool {
	if m.status != StatusPlaying {
		return false
	}
	m.shot = true
	m.captured = true
	return true
}

// HandleMouseMotion turns the player and pitches the camera by a mouse movement of dx, dy pixels in a window
// windowHeight pixels tall. Motion is only used while the mouse is captured.
func (m *Mode) HandleMouseMotion(dx, dy, windowHeight float32) bool {
	if m.status != StatusPlaying || !m.captured || windowHeight <= 0 {
		return false
	}
	motion := mgl32.Vec2{dx / windowHeight, -dy / windowHeight}
	fovy := m.player.Camera.Fovy

	up := m.mesh.SmoothNormal(m.player.At)
	m.player.Transform.Rotation = mgl32.QuatRotate(-motion.X()*fovy, up).Mul(m.player.Transform.Rotation)

	m.player.Camera.Pitch = clampPitch(m.player.Camera.Pitch + motion.Y()*fovy)
	m.player.Camera.Transform.Rotation = mgl32.QuatRotate(m.player.Camera.Pitch, mgl32.Vec3{1, 0, 0})
	return true
}

// MouseCaptured returns true if mouse motion is currently used to look around.
func (m *Mode) MouseCaptured() bool {
	return m.captured
}

func (m *Mode) button(k Key) *Button {
	switch k {
	case KeyA:
		return &m.left
	case KeyD:
		return &m.right
	case KeyW:
		return &m.up
	case KeyS:
		return &m.down
	default:
		return nil
	}
}

// move combines the held keys into a planar movement direction.
func (m *Mode) move() mgl32.Vec2 {
	var move mgl32.Vec2
	if m.left.Pressed && !m.right.Pressed {
		move[0] = -1
	}
	if !m.left.Pressed && m.right.Pressed {
		move[0] = 1
	}
	if m.down.Pressed && !m.up.Pressed {
		move[1] = -1
	}
	if !m.down.Pressed && m.up.Pressed {
		move[1] = 1
	}
	return move
}

func (m *Mode) resetButtons() {
	m.left.Downs = 0
	m.right.Downs = 0
	m.up.Downs = 0
	m.down.Downs = 0
}
