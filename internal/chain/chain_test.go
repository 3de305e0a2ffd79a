package chain_test

import (
	cp "github.com/jakecoffman/cp/v2"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/pendula/internal/chain"
	"github.com/san-kum/pendula/internal/world"
)

const traceLen = 64

var anchorPos = cp.Vector{X: 400, Y: 300}

// expectLink asserts that the node's predecessor link joins a to b.
func expectLink(n *chain.Node, a, b *chain.Node) {
	GinkgoHelper()
	Expect(n.Link()).NotTo(BeNil())
	la, lb := n.Link().Endpoints()
	Expect(la).To(BeIdenticalTo(a))
	Expect(lb).To(BeIdenticalTo(b))
}

// expectSequence asserts the chain holds exactly these nodes in order.
func expectSequence(m *chain.Manager, nodes ...*chain.Node) {
	GinkgoHelper()
	Expect(m.Len()).To(Equal(len(nodes)))
	for i, n := range m.Nodes() {
		Expect(n).To(BeIdenticalTo(nodes[i]), "sequence mismatch at index %d", i)
	}
}

var _ = Describe("Manager", func() {
	var (
		w *world.World
		m *chain.Manager
	)

	BeforeEach(func() {
		w = world.New(cp.Vector{Y: world.DefaultGravityY})
		m = chain.New(w, anchorPos, traceLen)
	})

	Describe("construction", func() {
		It("starts with only the anchor and no links", func() {
			Expect(m.Len()).To(Equal(1))
			Expect(m.Anchor().Kind).To(Equal(chain.Anchor))
			Expect(m.Anchor().Link()).To(BeNil())
			Expect(m.Anchor().Position()).To(Equal(anchorPos))
		})
	})

	Describe("Append", func() {
		It("links N appended balls consecutively", func() {
			const n = 5
			for i := 0; i < n; i++ {
				m.Append(10, cp.Vector{X: float64(450 + 50*i), Y: 300})
			}

			Expect(m.Len()).To(Equal(n + 1))
			nodes := m.Nodes()
			for i := 1; i <= n; i++ {
				expectLink(nodes[i], nodes[i-1], nodes[i])
			}
		})

		It("attaches the first ball to the anchor", func() {
			b := m.Append(10, cp.Vector{X: 500, Y: 300})
			expectLink(b, m.Anchor(), b)
		})
	})

	Describe("Remove", func() {
		var b1, b2, b3 *chain.Node

		BeforeEach(func() {
			b1 = m.Append(10, cp.Vector{X: 500, Y: 300})
			b2 = m.Append(15, cp.Vector{X: 600, Y: 300})
			b3 = m.Append(20, cp.Vector{X: 650, Y: 300})
		})

		It("bridges the neighbors of an interior node", func() {
			m.Remove(b2)

			Expect(m.Len()).To(Equal(3))
			expectSequence(m, m.Anchor(), b1, b3)
			expectLink(b1, m.Anchor(), b1)
			expectLink(b3, b1, b3)
		})

		It("bridges across the anchor when the first ball goes", func() {
			m.Remove(b1)

			expectLink(b2, m.Anchor(), b2)
			expectLink(b3, b2, b3)
		})

		It("does not bridge when removing the tail", func() {
			m.Remove(b3)

			Expect(m.Len()).To(Equal(3))
			Expect(m.Tail()).To(BeIdenticalTo(b2))
			expectLink(b2, b1, b2)
		})

		It("leaves every remaining ball with exactly one predecessor link", func() {
			m.Remove(b2)

			for i, n := range m.Nodes() {
				if i == 0 {
					Expect(n.Link()).To(BeNil())
					continue
				}
				expectLink(n, m.Nodes()[i-1], n)
			}
		})

		It("can empty the chain back to the anchor", func() {
			m.Remove(b2)
			m.Remove(b3)
			m.Remove(b1)

			Expect(m.Len()).To(Equal(1))
			Expect(m.Anchor().Link()).To(BeNil())
		})

		It("panics on the anchor", func() {
			Expect(func() { m.Remove(m.Anchor()) }).To(Panic())
		})

		It("panics on a node that was already removed", func() {
			m.Remove(b2)
			Expect(func() { m.Remove(b2) }).To(Panic())
		})
	})

	Describe("InsertAfter", func() {
		It("splices between a node and its successor", func() {
			a := m.Append(10, cp.Vector{X: 500, Y: 300})
			c := m.Append(20, cp.Vector{X: 650, Y: 300})

			b := m.InsertAfter(a, 15, cp.Vector{X: 575, Y: 300})

			expectSequence(m, m.Anchor(), a, b, c)
			expectLink(b, a, b)
			expectLink(c, b, c)
		})

		It("appends when the target is the tail", func() {
			a := m.Append(10, cp.Vector{X: 500, Y: 300})

			b := m.InsertAfter(a, 15, cp.Vector{X: 575, Y: 300})

			Expect(m.Tail()).To(BeIdenticalTo(b))
			expectLink(b, a, b)
		})

		It("splices directly after the anchor", func() {
			a := m.Append(10, cp.Vector{X: 500, Y: 300})

			b := m.InsertAfter(m.Anchor(), 5, cp.Vector{X: 450, Y: 300})

			expectSequence(m, m.Anchor(), b, a)
			expectLink(b, m.Anchor(), b)
			expectLink(a, b, a)
		})

		It("panics on a node that is not in the chain", func() {
			a := m.Append(10, cp.Vector{X: 500, Y: 300})
			m.Remove(a)
			Expect(func() { m.InsertAfter(a, 5, cp.Vector{}) }).To(Panic())
		})
	})

	Describe("drag detach and reattach", func() {
		var b1, b2, b3 *chain.Node

		BeforeEach(func() {
			b1 = m.Append(10, cp.Vector{X: 500, Y: 300})
			b2 = m.Append(15, cp.Vector{X: 600, Y: 300})
			b3 = m.Append(20, cp.Vector{X: 650, Y: 300})
		})

		It("removes only the predecessor link while detached", func() {
			m.DetachForDrag(b2)

			Expect(b2.Detached()).To(BeTrue())
			Expect(b2.Link()).To(BeNil())
			expectLink(b3, b2, b3) // successor link survives the drag
		})

		It("restores an identical chain when nothing moved", func() {
			m.DetachForDrag(b2)
			m.ReattachAfterDrag(b2)

			Expect(b2.Detached()).To(BeFalse())
			expectSequence(m, m.Anchor(), b1, b2, b3)
			expectLink(b1, m.Anchor(), b1)
			expectLink(b2, b1, b2)
			expectLink(b3, b2, b3)
		})

		It("reattaches the tail without touching a successor", func() {
			m.DetachForDrag(b3)
			m.ReattachAfterDrag(b3)

			expectLink(b3, b2, b3)
		})

		It("reattaches by sequence index after the neighbor changed", func() {
			m.DetachForDrag(b3)
			m.Remove(b2)
			m.ReattachAfterDrag(b3)

			// index-based policy: the new predecessor is whatever now sits
			// at index i-1, not the spatially nearest ball
			expectLink(b3, b1, b3)
		})

		It("allows removing a detached node", func() {
			m.DetachForDrag(b2)
			m.Remove(b2)

			Expect(m.Len()).To(Equal(3))
			expectLink(b3, b1, b3)
		})

		It("panics when detaching the anchor", func() {
			Expect(func() { m.DetachForDrag(m.Anchor()) }).To(Panic())
		})

		It("panics when detaching twice", func() {
			m.DetachForDrag(b2)
			Expect(func() { m.DetachForDrag(b2) }).To(Panic())
		})

		It("panics when reattaching an attached node", func() {
			Expect(func() { m.ReattachAfterDrag(b2) }).To(Panic())
		})
	})

	Describe("the three-ball scenario", func() {
		It("matches the documented topology before and after removal", func() {
			masses := []float64{10, 15, 20}
			positions := []cp.Vector{{X: 500, Y: 300}, {X: 600, Y: 300}, {X: 650, Y: 300}}
			for i := range masses {
				m.Append(masses[i], positions[i])
			}

			Expect(m.Len()).To(Equal(4))
			nodes := m.Nodes()
			expectLink(nodes[1], nodes[0], nodes[1])
			expectLink(nodes[2], nodes[1], nodes[2])
			expectLink(nodes[3], nodes[2], nodes[3])

			ball2 := nodes[2]
			m.Remove(ball2)

			Expect(m.Len()).To(Equal(3))
			nodes = m.Nodes()
			expectLink(nodes[1], nodes[0], nodes[1])
			expectLink(nodes[2], nodes[1], nodes[2])
			Expect(nodes[2].Mass).To(Equal(20.0))
		})
	})

	Describe("bookkeeping", func() {
		It("maps bodies back to nodes", func() {
			b := m.Append(10, cp.Vector{X: 500, Y: 300})

			Expect(m.NodeForBody(b.Body())).To(BeIdenticalTo(b))
			Expect(m.NodeForBody(nil)).To(BeNil())
		})

		It("records traces for every node", func() {
			b := m.Append(10, cp.Vector{X: 500, Y: 300})

			w.Step(1.0 / 60.0)
			m.RecordTraces()

			last := b.Trace.Latest()
			Expect(last.X).To(BeNumerically("~", b.Position().X, 1e-9))
			Expect(last.Y).To(BeNumerically("~", b.Position().Y, 1e-9))
		})

		It("sizes balls by the square root of mass", func() {
			b := m.Append(16, cp.Vector{X: 500, Y: 300})
			Expect(b.Radius).To(Equal(8.0))
		})
	})
})
