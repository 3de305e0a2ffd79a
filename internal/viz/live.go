// Package viz is the terminal live view: the chain rendered on a braille
// canvas next to a lipgloss stats panel, driven by bubbletea at a fixed
// tick. It exposes the same gestures as the GUI, bound to keys instead of
// mouse buttons.
package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	cp "github.com/jakecoffman/cp/v2"

	"github.com/san-kum/pendula/internal/chain"
	"github.com/san-kum/pendula/internal/config"
	"github.com/san-kum/pendula/internal/session"
	"github.com/san-kum/pendula/internal/trace"
)

const (
	canvasWidth     = 80
	canvasHeight    = 24
	tickRate        = time.Second / 30
	historyCapacity = 240
	traceTailDots   = 160
)

type TickMsg time.Time

type Model struct {
	sim *session.Session
	cfg *config.Config

	canvas     *Canvas
	heightHist []float64
	showHelp   bool
}

func NewModel(cfg *config.Config) Model {
	return Model{
		sim:        session.New(cfg),
		cfg:        cfg,
		canvas:     NewCanvas(canvasWidth, canvasHeight),
		heightHist: make([]float64, 0, historyCapacity),
	}
}

// Run blocks in the bubbletea program until the user quits.
func Run(cfg *config.Config) error {
	p := tea.NewProgram(NewModel(cfg))
	_, err := p.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return tea.Tick(tickRate, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.sim.TogglePause()
		case "a":
			// place the new ball a short arm right of the tail
			tail := m.sim.Chain.Tail().Position()
			m.sim.SpawnAt(cp.Vector{X: tail.X + 40, Y: tail.Y})
		case "d":
			if m.sim.Chain.Len() > 1 {
				m.sim.Chain.Remove(m.sim.Chain.Tail())
			}
		case "D":
			// remove the first ball, exercising the neighbor bridge
			if m.sim.Chain.Len() > 1 {
				m.sim.Chain.Remove(m.sim.Chain.Nodes()[1])
			}
		case "+", "=":
			m.sim.AdjustMass(1)
		case "-", "_":
			m.sim.AdjustMass(-1)
		case "?":
			m.showHelp = !m.showHelp
		}
		return m, nil

	case TickMsg:
		m.sim.Update(tickRate.Seconds())
		if m.sim.Running {
			m.heightHist = append(m.heightHist, m.sim.Chain.Tail().Position().Y)
			if len(m.heightHist) > historyCapacity {
				m.heightHist = m.heightHist[1:]
			}
		}
		return m, tea.Tick(tickRate, func(t time.Time) tea.Msg { return TickMsg(t) })
	}

	return m, nil
}

// project maps a world position onto canvas sub-pixels, flipping y.
func (m Model) project(p cp.Vector) (int, int) {
	sx := p.X / float64(m.cfg.Window.Width) * float64(canvasWidth*2)
	sy := (1 - p.Y/float64(m.cfg.Window.Height)) * float64(canvasHeight*4)
	return int(sx), int(sy)
}

func (m Model) draw() {
	m.canvas.Clear()

	nodes := m.sim.Chain.Nodes()
	for i, n := range nodes {
		x, y := m.project(n.Position())
		if i > 0 {
			px, py := m.project(nodes[i-1].Position())
			m.canvas.DrawLine(px, py, x, y)
		}

		if n.Kind == chain.Ball {
			for _, p := range tailPoints(n, traceTailDots) {
				tx, ty := m.project(cp.Vector{X: p.X, Y: p.Y})
				m.canvas.Set(tx, ty)
			}
		}

		r := int(n.Radius / float64(m.cfg.Window.Width) * float64(canvasWidth*2))
		m.canvas.DrawDisc(x, y, r)
	}
}

func (m Model) View() string {
	m.draw()
	canvasView := canvasStyle.Render(m.canvas.String())

	var s strings.Builder
	s.WriteString(headerStyle.Render("PENDULA") + "\n")

	status := "RUNNING"
	if !m.sim.Running {
		status = "PAUSED"
	}
	s.WriteString(status + "\n\n")

	if len(m.heightHist) > 1 {
		chart := asciigraph.Plot(m.heightHist,
			asciigraph.Height(4),
			asciigraph.Width(30),
			asciigraph.Caption("tail height"))
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}

	s.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.2fs", m.sim.Elapsed())) + "\n")
	s.WriteString(labelStyle.Render("Balls") + valueStyle.Render(fmt.Sprintf("%d", m.sim.Chain.Len()-1)) + "\n")
	s.WriteString(labelStyle.Render("Mass") + valueStyle.Render(fmt.Sprintf("%d", m.sim.Mass())) + "\n")
	s.WriteString(labelStyle.Render("Energy") + valueStyle.Render(fmt.Sprintf("%.1f", m.sim.KineticEnergy())) + "\n")

	s.WriteString(helpStyle.Render("\n─────────────────────\nSP:Pause A:Add D:Drop Tail\n+/-:Mass ?:Help Q:Quit"))

	statsView := statsStyle.Render(s.String())
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)

	if m.showHelp {
		return helpOverlay + "\n\n" + mainView
	}
	return mainView
}

const helpOverlay = `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Space    - Pause/Resume simulation  ║
║  A        - Append ball at the tail  ║
║  D        - Remove the tail ball     ║
║  Shift+D  - Remove the first ball    ║
║  + / -    - Adjust next ball's mass  ║
║  ?        - Toggle this help         ║
║  Q        - Quit                     ║
╚══════════════════════════════════════╝`

// tailPoints returns up to n of the node's most recent trace samples.
func tailPoints(node *chain.Node, n int) []trace.Point {
	pts := node.Trace.Points(nil)
	if len(pts) > n {
		pts = pts[len(pts)-n:]
	}
	return pts
}
