package gui

import (
	"fmt"
	"io"
	"log"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/mitosis/internal/sim"
)

var (
	ColText    = rl.NewColor(200, 200, 210, 255)
	ColTextDim = rl.NewColor(90, 90, 110, 255)
	ColEvent   = rl.NewColor(255, 200, 110, 255)
	ColWarn    = rl.NewColor(255, 90, 90, 255)
)

const (
	dragSpeed = 0.005
	wheelZoom = 0.9
)

type Options struct {
	Logger        *log.Logger
	Width, Height int
	FPS           int
}

// App is the raylib window front-end. It polls input, then runs one
// simulator frame per window frame with the real frame time.
type App struct {
	Sim     *sim.Simulator
	Running bool

	logger  *log.Logger
	camera  rl.Camera3D
	event   string
	refused bool
}

func NewApp(s *sim.Simulator, logger *log.Logger) *App {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	a := &App{
		Sim:     s,
		Running: true,
		logger:  logger,
	}
	s.SetRenderer(a)
	return a
}

func initWindow(opts Options) {
	w, h := opts.Width, opts.Height
	if w <= 0 || h <= 0 {
		w, h = 1280, 720
	}
	fps := opts.FPS
	if fps <= 0 {
		fps = 60
	}
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(w), int32(h), "mitosis")
	rl.SetTargetFPS(int32(fps))
	rl.SetExitKey(0)
}

// Run opens the window and blocks until it is closed.
func Run(s *sim.Simulator, opts Options) error {
	initWindow(opts)
	defer rl.CloseWindow()
	if !rl.IsWindowReady() {
		return fmt.Errorf("gui: window could not be created")
	}

	a := NewApp(s, opts.Logger)
	s.Resize(rl.GetScreenWidth(), rl.GetScreenHeight())
	a.RunLoop()
	return nil
}

func (a *App) RunLoop() {
	for !rl.WindowShouldClose() {
		if quit := a.Update(); quit {
			return
		}
		a.Draw()
	}
}

// Update handles input. It reports whether the user asked to quit.
func (a *App) Update() bool {
	if rl.IsKeyPressed(rl.KeyQ) || rl.IsKeyPressed(rl.KeyEscape) {
		return true
	}
	if rl.IsKeyPressed(rl.KeySpace) {
		a.Running = !a.Running
	}
	if rl.IsKeyPressed(rl.KeyR) {
		a.Sim.Reset()
		a.setEvent("reset", false)
	}

	if rl.IsWindowResized() {
		w, h := rl.GetScreenWidth(), rl.GetScreenHeight()
		a.Sim.Resize(w, h)
		a.logger.Printf("resize: %dx%d", w, h)
	}

	oc := a.Sim.Controls()
	if rl.IsMouseButtonDown(rl.MouseRightButton) {
		delta := rl.GetMouseDelta()
		oc.Rotate(-float64(delta.X)*dragSpeed, -float64(delta.Y)*dragSpeed)
	}
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		oc.Zoom(math.Pow(wheelZoom, float64(wheel)))
	}

	if rl.IsMouseButtonPressed(rl.MouseLeftButton) {
		a.click(rl.GetMousePosition())
	}
	return false
}

// click converts a window position to NDC and splits whatever is under it.
func (a *App) click(pos rl.Vector2) {
	w, h := float64(rl.GetScreenWidth()), float64(rl.GetScreenHeight())
	if w <= 0 || h <= 0 {
		return
	}
	x := 2*float64(pos.X)/w - 1
	y := 1 - 2*float64(pos.Y)/h

	res, err := a.Sim.Click(x, y)
	switch {
	case err != nil:
		a.setEvent("refused: "+err.Error(), true)
		a.logger.Printf("click (%.0f,%.0f) refused: %v", pos.X, pos.Y, err)
	case res != nil:
		a.setEvent(fmt.Sprintf("split #%d -> #%d #%d", res.Parent, res.Children[0], res.Children[1]), false)
		a.logger.Printf("split object %d into %d and %d (population %d)",
			res.Parent, res.Children[0], res.Children[1], a.Sim.Len())
	}
}

func (a *App) setEvent(msg string, refused bool) {
	a.event, a.refused = msg, refused
}

func (a *App) Draw() {
	rl.BeginDrawing()
	bg := a.Sim.Scene().Background
	rl.ClearBackground(rl.NewColor(bg[0], bg[1], bg[2], 255))

	if a.Running {
		a.Sim.Frame(float64(rl.GetFrameTime()))
	} else {
		a.Sim.Controls().Update()
		a.Render(a.Sim.Scene(), a.Sim.Camera())
	}

	a.DrawHUD()
	rl.EndDrawing()
}

func (a *App) DrawHUD() {
	st := a.Sim.Stats()
	rl.DrawText("MITOSIS", 20, 20, 20, ColText)
	status := "RUNNING"
	if !a.Running {
		status = "PAUSED"
	}
	rl.DrawText(status, 20, 46, 14, ColTextDim)
	rl.DrawText(fmt.Sprintf("spheres %d   splits %d", st.Population, st.Splits), 20, 70, 16, ColText)
	rl.DrawText(fmt.Sprintf("t %.1fs   energy %.4f", st.Time, st.KineticEnergy), 20, 92, 16, ColText)

	if a.event != "" {
		col := ColEvent
		if a.refused {
			col = ColWarn
		}
		rl.DrawText(a.event, 20, 118, 14, col)
	}

	h := int32(rl.GetScreenHeight())
	rl.DrawText(fmt.Sprintf("%d FPS", rl.GetFPS()), 20, h-50, 14, ColTextDim)
	rl.DrawText("left click: split   right drag: orbit   wheel: zoom   space: pause   r: reset", 20, h-28, 14, ColTextDim)
}
