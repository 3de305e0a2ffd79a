// Package session owns one world and one chain and exposes the gesture
// operations the input layers (GUI and TUI) call. It checks gesture
// applicability — is there a ball under the cursor, is it the anchor, is a
// drag already in flight — so the chain's preconditions always hold.
package session

import (
	cp "github.com/jakecoffman/cp/v2"

	"github.com/san-kum/pendula/internal/chain"
	"github.com/san-kum/pendula/internal/config"
	"github.com/san-kum/pendula/internal/world"
)

// MinMass is the lower clamp for the scroll-adjusted spawn mass.
const MinMass = 1

type Session struct {
	World *world.World
	Chain *chain.Manager

	Running bool

	mass    int
	dragged *chain.Node
	cursor  cp.Vector
	elapsed float64
}

// New builds a session from config: gravity, the centered anchor, and the
// initial chain of balls appended in order.
func New(cfg *config.Config) *Session {
	w := world.New(cp.Vector{Y: cfg.GravityY})
	m := chain.New(w, cp.Vector{X: cfg.AnchorX(), Y: cfg.AnchorY()}, cfg.TraceLength)
	for _, b := range cfg.Balls {
		m.Append(b.Mass, cp.Vector{X: b.X, Y: b.Y})
	}

	mass := cfg.DefaultMass
	if mass < MinMass {
		mass = MinMass
	}
	return &Session{
		World:   w,
		Chain:   m,
		Running: cfg.StartRunning,
		mass:    mass,
	}
}

// Mass returns the mass used for the next spawned ball.
func (s *Session) Mass() int { return s.mass }

// AdjustMass shifts the spawn mass by delta, clamped to MinMass.
func (s *Session) AdjustMass(delta int) {
	s.mass += delta
	if s.mass < MinMass {
		s.mass = MinMass
	}
}

// TogglePause flips whether Update advances the physics world.
func (s *Session) TogglePause() { s.Running = !s.Running }

// Elapsed returns the simulated time so far.
func (s *Session) Elapsed() float64 { return s.elapsed }

// Dragging returns the ball currently held by the cursor, or nil.
func (s *Session) Dragging() *chain.Node { return s.dragged }

// GrabAt starts dragging the ball under p. It reports false when nothing
// grabbable is there, the ball is the anchor, or a drag is already active.
func (s *Session) GrabAt(p cp.Vector) bool {
	if s.dragged != nil {
		return false
	}
	body := s.World.NearestBody(p)
	if body == nil {
		return false
	}
	n := s.Chain.NodeForBody(body)
	if n == nil || n.Kind == chain.Anchor {
		return false
	}

	s.Chain.DetachForDrag(n)
	s.dragged = n
	s.cursor = p
	return true
}

// DragTo moves the held ball to p. The ball follows the cursor even while
// the simulation is paused.
func (s *Session) DragTo(p cp.Vector) {
	s.cursor = p
	if s.dragged == nil {
		return
	}
	s.dragged.Body().SetPosition(p)
	s.dragged.Body().SetVelocity(0, 0)
}

// Release reattaches the held ball to the chain. No-op when nothing is held.
func (s *Session) Release() {
	if s.dragged == nil {
		return
	}
	s.Chain.ReattachAfterDrag(s.dragged)
	s.dragged = nil
}

// SpawnAt appends a new tail ball at p with the current spawn mass.
func (s *Session) SpawnAt(p cp.Vector) *chain.Node {
	return s.Chain.Append(float64(s.mass), p)
}

// DeleteAt removes the ball under p, bridging its neighbors. It reports
// false when nothing removable is there; the anchor and a ball mid-drag are
// never removable.
func (s *Session) DeleteAt(p cp.Vector) bool {
	body := s.World.NearestBody(p)
	if body == nil {
		return false
	}
	n := s.Chain.NodeForBody(body)
	if n == nil || n.Kind == chain.Anchor || n == s.dragged {
		return false
	}

	s.Chain.Remove(n)
	return true
}

// Update advances one frame: the held ball keeps tracking the cursor, and
// when running the world steps and traces are recorded.
func (s *Session) Update(dt float64) {
	if s.dragged != nil {
		s.dragged.Body().SetPosition(s.cursor)
		s.dragged.Body().SetVelocity(0, 0)
	}
	if !s.Running {
		return
	}
	s.World.Step(dt)
	s.Chain.RecordTraces()
	s.elapsed += dt
}

// KineticEnergy sums the kinetic energy of every ball, for the HUD.
func (s *Session) KineticEnergy() float64 {
	total := 0.0
	for _, n := range s.Chain.Nodes() {
		if n.Kind != chain.Ball {
			continue
		}
		total += n.Body().KineticEnergy()
	}
	return total
}
