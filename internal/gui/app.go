package gui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	cp "github.com/jakecoffman/cp/v2"

	"github.com/san-kum/pendula/internal/chain"
	"github.com/san-kum/pendula/internal/config"
	"github.com/san-kum/pendula/internal/session"
	"github.com/san-kum/pendula/internal/trace"
	"github.com/san-kum/pendula/internal/world"
)

// Theme Colors
var (
	ColBg      = rl.NewColor(16, 16, 24, 255)    // Near Black
	ColChain   = rl.NewColor(245, 245, 245, 255) // White chain segments
	ColAnchor  = rl.NewColor(0, 0, 0, 255)       // Black pin
	ColText    = rl.NewColor(230, 230, 230, 255)
	ColTextDim = rl.NewColor(120, 120, 120, 255)
	ColPreview = rl.NewColor(230, 41, 55, 255) // Red mass preview
)

type App struct {
	Cfg *config.Config
	Sim *session.Session

	// per-frame scratch buffers, reused to keep the draw loop allocation-free
	tracePts []trace.Point
	linePts  []rl.Vector2
}

func initWindow(cfg *config.Config) {
	rl.InitWindow(int32(cfg.Window.Width), int32(cfg.Window.Height), cfg.Window.Title)
	rl.SetTargetFPS(int32(cfg.Window.FPS))
	rl.SetExitKey(0)
}

func NewApp(cfg *config.Config) *App {
	return &App{
		Cfg:      cfg,
		Sim:      session.New(cfg),
		tracePts: make([]trace.Point, 0, cfg.TraceLength),
		linePts:  make([]rl.Vector2, 0, cfg.TraceLength),
	}
}

// Run opens the window and blocks in the update/draw loop until the window
// closes or the user quits.
func Run(cfg *config.Config) {
	initWindow(cfg)
	defer rl.CloseWindow()
	app := NewApp(cfg)
	app.RunLoop()
}

func (a *App) RunLoop() {
	for !rl.WindowShouldClose() {
		if a.Update() {
			return
		}
		a.Draw()
	}
}

// cursor maps the mouse position from screen space (y down) into world
// space (y up).
func (a *App) cursor() cp.Vector {
	m := rl.GetMousePosition()
	return cp.Vector{X: float64(m.X), Y: float64(a.Cfg.Window.Height) - float64(m.Y)}
}

func (a *App) toScreen(p trace.Point) rl.Vector2 {
	return rl.NewVector2(float32(p.X), float32(a.Cfg.Window.Height)-float32(p.Y))
}

// Update dispatches one frame of input to the session and advances it.
// It returns true when the user quit.
func (a *App) Update() bool {
	if rl.IsKeyPressed(rl.KeyQ) {
		return true
	}
	if rl.IsKeyPressed(rl.KeySpace) {
		a.Sim.TogglePause()
	}

	cur := a.cursor()
	switch {
	case rl.IsMouseButtonPressed(rl.MouseLeftButton):
		a.Sim.GrabAt(cur)
	case rl.IsMouseButtonReleased(rl.MouseLeftButton):
		a.Sim.Release()
	case rl.IsMouseButtonPressed(rl.MouseRightButton):
		a.Sim.SpawnAt(cur)
	case rl.IsMouseButtonPressed(rl.MouseMiddleButton):
		a.Sim.DeleteAt(cur)
	}
	a.Sim.DragTo(cur)

	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		a.Sim.AdjustMass(int(wheel))
	}

	a.Sim.Update(1.0 / float64(a.Cfg.Window.FPS))
	return false
}

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(ColBg)

	a.drawTraces()
	a.drawChain()
	a.DrawHUD()

	rl.EndDrawing()
}

func (a *App) drawTraces() {
	for _, n := range a.Sim.Chain.Nodes() {
		if n.Kind != chain.Ball {
			continue
		}
		a.tracePts = n.Trace.Points(a.tracePts[:0])
		a.linePts = a.linePts[:0]
		for _, p := range a.tracePts {
			a.linePts = append(a.linePts, a.toScreen(p))
		}
		rl.DrawLineStrip(a.linePts, rl.NewColor(n.Color.R, n.Color.G, n.Color.B, 255))
	}
}

func (a *App) drawChain() {
	nodes := a.Sim.Chain.Nodes()
	for i, n := range nodes {
		pos := n.Position()
		at := a.toScreen(trace.Point{X: pos.X, Y: pos.Y})
		if i > 0 {
			prev := nodes[i-1].Position()
			rl.DrawLineV(a.toScreen(trace.Point{X: prev.X, Y: prev.Y}), at, ColChain)
		}

		col := ColAnchor
		if n.Kind == chain.Ball {
			col = rl.NewColor(n.Color.R, n.Color.G, n.Color.B, 255)
		}
		rl.DrawCircleV(at, float32(n.Radius), col)
	}
}

func (a *App) DrawHUD() {
	h := int32(a.Cfg.Window.Height)
	w := int32(a.Cfg.Window.Width)

	rl.DrawText(fmt.Sprintf("%d FPS", rl.GetFPS()), 10, h-24, 14, ColTextDim)
	rl.DrawText(fmt.Sprintf("mass %d  energy %.0f", a.Sim.Mass(), a.Sim.KineticEnergy()),
		w-200, h-24, 14, ColTextDim)

	if a.Sim.Running {
		return
	}

	msg := "Press [Space] to continue simulation"
	width := rl.MeasureText(msg, 20)
	rl.DrawText(msg, w/2-width/2, h/2-10, 20, ColText)

	rl.DrawText("Left-click to move balls", 10, 10, 14, ColText)
	rl.DrawText("Right-click to place balls", 10, 28, 14, ColText)
	rl.DrawText("Middle-click to remove balls", 10, 46, 14, ColText)
	rl.DrawText("Scroll to adjust mass of new balls", 10, 64, 14, ColText)

	// preview the next ball's size at the cursor
	m := rl.GetMousePosition()
	radius := float32(world.BallRadius(float64(a.Sim.Mass())))
	rl.DrawCircleLines(int32(m.X), int32(m.Y), radius, ColPreview)
}
