package world

import (
	"math"

	cp "github.com/jakecoffman/cp/v2"
)

// Tuning carried over from the toy this started as: gravity pulls straight
// down, ball radius grows with the square root of mass so area tracks mass,
// and friction scales quadratically so heavy balls drag hard.
const (
	DefaultGravityY = -250.0
	pickSlop        = 4.0
)

// BallRadius returns the render/collision radius for a ball of the given mass.
func BallRadius(mass float64) float64 {
	return 2 * math.Floor(math.Sqrt(mass))
}

func ballFriction(mass float64) float64 {
	return 0.2 * mass * mass
}

// World owns the cp.Space. All body, shape, and joint mutation goes through
// it; nothing else touches the space.
type World struct {
	space *cp.Space
}

// New creates a space with the given gravity vector.
func New(gravity cp.Vector) *World {
	space := cp.NewSpace()
	space.Iterations = 20
	space.SetGravity(gravity)
	return &World{space: space}
}

// AddBall creates a dynamic circle body at pos and adds it to the space.
func (w *World) AddBall(mass float64, pos cp.Vector) (*cp.Body, *cp.Shape) {
	radius := BallRadius(mass)
	body := cp.NewBody(mass, cp.MomentForCircle(mass, 0, radius, cp.Vector{}))
	body.SetPosition(pos)
	w.space.AddBody(body)

	shape := w.space.AddShape(cp.NewCircle(body, radius, cp.Vector{}))
	shape.SetFriction(ballFriction(mass))
	return body, shape
}

// AddPin creates an immovable body at pos. It still carries a small circle
// shape so cursor picking can find it.
func (w *World) AddPin(pos cp.Vector) (*cp.Body, *cp.Shape) {
	body := cp.NewStaticBody()
	body.SetPosition(pos)
	w.space.AddBody(body)

	shape := w.space.AddShape(cp.NewCircle(body, BallRadius(1), cp.Vector{}))
	return body, shape
}

// RemoveBody drops a body and its shape from the space. Any joints on the
// body must already be removed.
func (w *World) RemoveBody(body *cp.Body, shape *cp.Shape) {
	w.space.RemoveShape(shape)
	w.space.RemoveBody(body)
}

// Link joins two bodies with a pin joint. With zero anchors the joint's
// rest length is the bodies' current center distance.
func (w *World) Link(a, b *cp.Body) *cp.Constraint {
	return w.space.AddConstraint(cp.NewPinJoint(a, b, cp.Vector{}, cp.Vector{}))
}

// Unlink removes a joint from the space.
func (w *World) Unlink(c *cp.Constraint) {
	w.space.RemoveConstraint(c)
}

// Step advances the simulation.
func (w *World) Step(dt float64) {
	w.space.Step(dt)
}

// NearestBody returns the body whose shape is under (or within a few pixels
// of) p, or nil when nothing is there.
func (w *World) NearestBody(p cp.Vector) *cp.Body {
	info := w.space.PointQueryNearest(p, pickSlop, cp.SHAPE_FILTER_ALL)
	if info == nil || info.Shape == nil {
		return nil
	}
	return info.Shape.Body()
}

// Gravity reports the space's gravity vector.
func (w *World) Gravity() cp.Vector {
	return w.space.Gravity()
}
