package trace

// Point is a 2D position sample.
type Point struct {
	X, Y float64
}

// Ring is a fixed-capacity position history. It is pre-filled with the
// spawn position so a polyline drawn from it always has full length, and
// each Push overwrites the oldest sample.
type Ring struct {
	pts  []Point
	head int
}

// NewRing returns a ring of the given capacity with every slot set to seed.
// Capacity must be at least 1.
func NewRing(capacity int, seed Point) *Ring {
	if capacity < 1 {
		capacity = 1
	}
	pts := make([]Point, capacity)
	for i := range pts {
		pts[i] = seed
	}
	return &Ring{pts: pts}
}

// Cap returns the fixed capacity of the ring.
func (r *Ring) Cap() int {
	return len(r.pts)
}

// Push records p, evicting the oldest sample.
func (r *Ring) Push(p Point) {
	r.pts[r.head] = p
	r.head = (r.head + 1) % len(r.pts)
}

// Latest returns the most recently pushed sample.
func (r *Ring) Latest() Point {
	idx := r.head - 1
	if idx < 0 {
		idx = len(r.pts) - 1
	}
	return r.pts[idx]
}

// Points appends the samples in chronological order (oldest first) to dst
// and returns the result. Pass a reused slice to avoid per-frame allocation.
func (r *Ring) Points(dst []Point) []Point {
	dst = append(dst, r.pts[r.head:]...)
	dst = append(dst, r.pts[:r.head]...)
	return dst
}
