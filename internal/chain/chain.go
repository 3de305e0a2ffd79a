// Package chain maintains the ordered node sequence of the pendulum toy and
// the pin joints between adjacent nodes. The anchor is always index 0; every
// later node owns the link to its predecessor. Topology edits (append,
// insert, remove, detach/reattach during drag) keep that invariant, bridging
// neighbors when a node leaves the middle of the sequence.
//
// Preconditions are the caller's job: the input layer checks "is there a
// ball under the cursor", "is it the anchor", before invoking an operation.
// A violated precondition here is a bug, so operations panic rather than
// return errors.
package chain

import (
	"fmt"
	"math/rand"

	cp "github.com/jakecoffman/cp/v2"

	"github.com/san-kum/pendula/internal/trace"
	"github.com/san-kum/pendula/internal/world"
)

// Kind tags a node as the immovable anchor or a dynamic ball.
type Kind int

const (
	Anchor Kind = iota
	Ball
)

// RGB is a render color carried per node so traces keep a stable hue.
type RGB struct {
	R, G, B uint8
}

// Link is a pin joint between two adjacent nodes. It is owned by the later
// node in traversal order and destroyed whenever that adjacency breaks.
type Link struct {
	joint *cp.Constraint
	a, b  *Node // a precedes b in the chain
}

// Endpoints returns the linked nodes in chain order.
func (l *Link) Endpoints() (*Node, *Node) { return l.a, l.b }

// Node is one element of the chain: a physics body plus its circle shape,
// the link to its predecessor (nil for the anchor, or while detached for a
// drag), and a fixed-length motion trace.
type Node struct {
	Kind   Kind
	Mass   float64
	Radius float64
	Color  RGB
	Trace  *trace.Ring

	body  *cp.Body
	shape *cp.Shape
	link  *Link

	detached bool
}

// Body returns the node's physics body.
func (n *Node) Body() *cp.Body { return n.body }

// Position returns the node's current position.
func (n *Node) Position() cp.Vector { return n.body.Position() }

// Link returns the node's predecessor link, or nil for the anchor and for
// a node that is detached mid-drag.
func (n *Node) Link() *Link { return n.link }

// Detached reports whether the node is mid-drag with its predecessor link
// removed.
func (n *Node) Detached() bool { return n.detached }

// Manager owns the node sequence and performs all joint rewiring through
// the world. It is not safe for concurrent use; the toy is single threaded.
type Manager struct {
	w        *world.World
	nodes    []*Node
	traceLen int
	rng      *rand.Rand
}

// New creates a chain containing only the anchor at anchorPos. traceLen is
// the per-node motion history capacity.
func New(w *world.World, anchorPos cp.Vector, traceLen int) *Manager {
	m := &Manager{
		w:        w,
		traceLen: traceLen,
		rng:      rand.New(rand.NewSource(rand.Int63())),
	}
	body, shape := w.AddPin(anchorPos)
	m.nodes = append(m.nodes, &Node{
		Kind:   Anchor,
		Mass:   1,
		Radius: world.BallRadius(1),
		Trace:  trace.NewRing(traceLen, trace.Point{X: anchorPos.X, Y: anchorPos.Y}),
		body:   body,
		shape:  shape,
	})
	return m
}

// Len returns the number of nodes including the anchor.
func (m *Manager) Len() int { return len(m.nodes) }

// Nodes returns the sequence in order, anchor first. The slice is shared;
// callers must not mutate it.
func (m *Manager) Nodes() []*Node { return m.nodes }

// Anchor returns the immovable root node.
func (m *Manager) Anchor() *Node { return m.nodes[0] }

// Tail returns the last node in the sequence.
func (m *Manager) Tail() *Node { return m.nodes[len(m.nodes)-1] }

// Index returns the node's position in the sequence, or -1 if absent.
func (m *Manager) Index(n *Node) int {
	for i, node := range m.nodes {
		if node == n {
			return i
		}
	}
	return -1
}

// NodeForBody maps a physics body back to its node, or nil.
func (m *Manager) NodeForBody(b *cp.Body) *Node {
	for _, node := range m.nodes {
		if node.body == b {
			return node
		}
	}
	return nil
}

// Append creates a ball at pos and links the current tail to it. With only
// the anchor present, the new link attaches to the anchor.
func (m *Manager) Append(mass float64, pos cp.Vector) *Node {
	n := m.newBall(mass, pos)
	n.link = m.join(m.Tail(), n)
	m.nodes = append(m.nodes, n)
	return n
}

// InsertAfter splices a new ball immediately after at: the at→successor
// link (if any) is destroyed and replaced with at↔new and new↔successor.
func (m *Manager) InsertAfter(at *Node, mass float64, pos cp.Vector) *Node {
	i := m.Index(at)
	if i < 0 {
		panic("chain: insert after a node that is not in the chain")
	}
	if i == len(m.nodes)-1 {
		return m.Append(mass, pos)
	}

	succ := m.nodes[i+1]
	m.unlink(succ)

	n := m.newBall(mass, pos)
	n.link = m.join(at, n)
	succ.link = m.join(n, succ)

	m.nodes = append(m.nodes, nil)
	copy(m.nodes[i+2:], m.nodes[i+1:])
	m.nodes[i+1] = n
	return n
}

// Remove deletes a ball from the chain and the world. An interior removal
// bridges the former neighbors with a fresh link; removing the tail just
// drops its predecessor link. The anchor cannot be removed.
func (m *Manager) Remove(n *Node) {
	i := m.Index(n)
	if i < 0 {
		panic("chain: remove of a node that is not in the chain")
	}
	if i == 0 {
		panic("chain: the anchor cannot be removed")
	}

	if i < len(m.nodes)-1 {
		// A detached successor has no predecessor link to replace; it picks
		// up its new index-1 neighbor when it reattaches.
		succ := m.nodes[i+1]
		if !succ.detached {
			m.unlink(succ)
			succ.link = m.join(m.nodes[i-1], succ)
		}
	}
	m.unlink(n)

	m.nodes = append(m.nodes[:i], m.nodes[i+1:]...)
	m.w.RemoveBody(n.body, n.shape)
}

// DetachForDrag severs the node's predecessor link so it becomes a free
// body following the cursor. The successor link, if any, stays live.
func (m *Manager) DetachForDrag(n *Node) {
	if n.Kind == Anchor {
		panic("chain: the anchor cannot be dragged")
	}
	if n.detached {
		panic(fmt.Sprintf("chain: node at index %d is already detached", m.Index(n)))
	}
	if m.Index(n) < 0 {
		panic("chain: detach of a node that is not in the chain")
	}

	m.unlink(n)
	n.detached = true
}

// ReattachAfterDrag restores the chain invariant after a drag: the
// predecessor link is recreated against the node's current index-1
// neighbor, and the successor link (if any) is rebuilt so its rest length
// reflects the drop position. The predecessor is chosen by sequence index,
// not spatial proximity, even when the node was dragged across others.
func (m *Manager) ReattachAfterDrag(n *Node) {
	if !n.detached {
		panic("chain: reattach of a node that is not detached")
	}
	i := m.Index(n)
	if i < 1 {
		panic("chain: reattach of a node that is not in the chain")
	}

	n.link = m.join(m.nodes[i-1], n)
	if i < len(m.nodes)-1 {
		succ := m.nodes[i+1]
		m.unlink(succ)
		succ.link = m.join(n, succ)
	}
	n.detached = false
}

// RecordTraces pushes every node's current position into its trace ring.
// Called once per simulation step.
func (m *Manager) RecordTraces() {
	for _, n := range m.nodes {
		p := n.body.Position()
		n.Trace.Push(trace.Point{X: p.X, Y: p.Y})
	}
}

func (m *Manager) join(a, b *Node) *Link {
	return &Link{joint: m.w.Link(a.body, b.body), a: a, b: b}
}

func (m *Manager) unlink(n *Node) {
	if n.link == nil {
		return
	}
	m.w.Unlink(n.link.joint)
	n.link = nil
}

func (m *Manager) newBall(mass float64, pos cp.Vector) *Node {
	body, shape := m.w.AddBall(mass, pos)
	return &Node{
		Kind:   Ball,
		Mass:   mass,
		Radius: world.BallRadius(mass),
		Color: RGB{
			R: uint8(m.rng.Intn(256)),
			G: uint8(m.rng.Intn(256)),
			B: uint8(m.rng.Intn(256)),
		},
		Trace: trace.NewRing(m.traceLen, trace.Point{X: pos.X, Y: pos.Y}),
		body:  body,
		shape: shape,
	}
}
