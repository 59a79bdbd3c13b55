package main

import (
	"fmt"
	"image/color"
	"math/rand"
	"strconv"

	"github.com/cargorun/playmode/entity"
	"github.com/cargorun/playmode/game"
	"github.com/cargorun/playmode/playmode"
	"github.com/cargorun/playmode/virtual"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/spf13/cobra"
)

const (
	screenWidth  = 640
	screenHeight = 760
	// pixelsPerUnit is the scale of the top-down view.
	pixelsPerUnit = 10
	// originY is the screen row of the world origin. The view extends further north to show the robot.
	originY = 500
)

var keys = map[ebiten.Key]playmode.Key{
	ebiten.KeyA:      playmode.KeyA,
	ebiten.KeyD:      playmode.KeyD,
	ebiten.KeyW:      playmode.KeyW,
	ebiten.KeyS:      playmode.KeyS,
	ebiten.KeyEscape: playmode.KeyEscape,
}

func RunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "play the arena in a window",
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			h, err := newHost()
			if err != nil {
				return err
			}
			defer h.close()

			level, err := virtual.Arena(h.log)
			if err != nil {
				return err
			}
			mixer := virtual.NewMixer(h.log)
			m, err := playmode.New(playmode.Deps{
				Mesh:  level.Mesh,
				Scene: level.Scene,
				Audio: mixer,
				Log:   h.log,
				Rand:  rand.New(rand.NewSource(h.seed)),
			}, h.settings)
			if err != nil {
				return err
			}

			v := &window{mode: m, level: level, mixer: mixer}
			defer func() {
				if r := recover(); r != nil {
					err = h.report(r, map[string]string{
						"seed":  strconv.FormatInt(h.seed, 10),
						"frame": strconv.FormatInt(m.Frame(), 10),
					})
				}
			}()
			ebiten.SetWindowSize(screenWidth, screenHeight)
			ebiten.SetWindowTitle("playmode")
			return ebiten.RunGame(v)
		},
	}
}

// window hosts a Mode in an ebiten game loop, drawing the level from above.
type window struct {
	mode  *playmode.Mode
	level *virtual.Level
	mixer *virtual.Mixer

	cursorX, cursorY int
	tracking         bool
	lastSample       string
}

func (w *window) Update() error {
	if w.mode.Status() != playmode.StatusPlaying && inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	for k, key := range keys {
		if inpututil.IsKeyJustPressed(k) {
			w.mode.HandleKey(key, true)
		} else if inpututil.IsKeyJustReleased(k) {
			w.mode.HandleKey(key, false)
		}
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) || inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) {
		w.mode.HandleMouseButton()
	}

	if w.mode.MouseCaptured() {
		ebiten.SetCursorMode(ebiten.CursorModeCaptured)
	} else {
		ebiten.SetCursorMode(ebiten.CursorModeVisible)
	}
	x, y := ebiten.CursorPosition()
	if w.tracking {
		w.mode.HandleMouseMotion(float32(x-w.cursorX), float32(y-w.cursorY), screenHeight)
	}
	w.cursorX, w.cursorY, w.tracking = x, y, true

	w.mode.Update(1 / float32(ebiten.TPS()))
	for _, p := range w.mixer.Drain() {
		w.lastSample = p.Sample
	}
	return nil
}

func (w *window) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 24, G: 26, B: 30, A: 255})
	w.drawMesh(screen)

	for inst := range w.level.Scene.Visible() {
		if inst.Name == game.BulletPrototype {
			continue
		}
		w.drawInstance(screen, inst)
	}

	p := w.mode.Player()
	px, py := toScreen(p.Transform.Position)
	_, forward, _ := p.Transform.Frame()
	fx, fy := toScreen(p.Transform.Position.Add(forward.Normalize().Mul(2)))
	vector.DrawFilledCircle(screen, px, py, 5, color.RGBA{R: 90, G: 200, B: 255, A: 255}, true)
	vector.StrokeLine(screen, px, py, fx, fy, 2, color.RGBA{R: 90, G: 200, B: 255, A: 255}, true)

	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("robot %d  cargo %d  enemies %d  bullets %d  walk %s",
		w.mode.Health(), len(w.mode.Cargo()), len(w.mode.Enemies()), len(w.mode.Bullets()), w.mode.LastWalk().Outcome), 8, 8)
	if w.lastSample != "" {
		ebitenutil.DebugPrintAt(screen, "sound: "+w.lastSample, 8, 24)
	}
	if !w.mode.MouseCaptured() && w.mode.Status() == playmode.StatusPlaying {
		ebitenutil.DebugPrintAt(screen, "click to capture the mouse and shoot, escape to release", 8, screenHeight-20)
	}
	if msg := w.mode.Message(); msg != "" {
		ebitenutil.DebugPrintAt(screen, msg, screenWidth/2-len(msg)*3, screenHeight/2)
		ebitenutil.DebugPrintAt(screen, "press escape to quit", screenWidth/2-60, screenHeight/2+16)
	}
}

func (w *window) Layout(int, int) (int, int) {
	return screenWidth, screenHeight
}

// drawMesh draws the edges of the walkmesh, brighter the higher they are.
func (w *window) drawMesh(screen *ebiten.Image) {
	mesh := w.level.Mesh
	for _, tri := range mesh.Triangles() {
		for i := range tri {
			a, b := mesh.Vertex(tri[i]), mesh.Vertex(tri[(i+1)%3])
			shade := uint8(50 + 20*game.Clamp32((a.Z()+b.Z())/2, 0, 5))
			ax, ay := toScreen(a)
			bx, by := toScreen(b)
			vector.StrokeLine(screen, ax, ay, bx, by, 1, color.RGBA{R: shade, G: shade, B: shade + 10, A: 255}, false)
		}
	}
}

// drawInstance draws an instance as a circle of its radius, scaled by its transform.
func (w *window) drawInstance(screen *ebiten.Image, inst entity.Instance) {
	x, y := toScreen(inst.Transform.Position)
	r := max(inst.Shape.Radius*inst.Transform.Scale.X()*pixelsPerUnit, 2)
	c := inst.Shape.Colour
	clr := color.RGBA{R: c[0], G: c[1], B: c[2], A: c[3]}
	if virtual.Outlined(inst) {
		vector.StrokeCircle(screen, x, y, r, 1, clr, true)
		return
	}
	vector.DrawFilledCircle(screen, x, y, r, clr, true)
}

// toScreen projects a world position onto the top-down view, with north up.
func toScreen(pos mgl32.Vec3) (float32, float32) {
	return screenWidth/2 + pos.X()*pixelsPerUnit, originY - pos.Y()*pixelsPerUnit
}
