package trace

import (
	"testing"
)

func TestNewRingSeedsAllSlots(t *testing.T) {
	seed := Point{X: 3, Y: 4}
	r := NewRing(5, seed)

	if r.Cap() != 5 {
		t.Fatalf("expected capacity 5, got %d", r.Cap())
	}
	for i, p := range r.Points(nil) {
		if p != seed {
			t.Errorf("slot %d: expected seed %v, got %v", i, seed, p)
		}
	}
}

func TestPushEvictsOldest(t *testing.T) {
	r := NewRing(3, Point{})

	r.Push(Point{X: 1})
	r.Push(Point{X: 2})
	r.Push(Point{X: 3})
	r.Push(Point{X: 4})

	pts := r.Points(nil)
	want := []float64{2, 3, 4}
	if len(pts) != 3 {
		t.Fatalf("expected 3 points, got %d", len(pts))
	}
	for i, p := range pts {
		if p.X != want[i] {
			t.Errorf("point %d: expected x=%v, got %v", i, want[i], p.X)
		}
	}
}

func TestLatest(t *testing.T) {
	r := NewRing(4, Point{})
	if r.Latest() != (Point{}) {
		t.Error("latest of fresh ring should be the seed")
	}

	r.Push(Point{X: 7, Y: 8})
	if got := r.Latest(); got != (Point{X: 7, Y: 8}) {
		t.Errorf("expected latest (7,8), got %v", got)
	}
}

func TestPointsChronologicalAcrossWrap(t *testing.T) {
	r := NewRing(4, Point{})
	for i := 1; i <= 9; i++ {
		r.Push(Point{X: float64(i)})
	}

	pts := r.Points(nil)
	for i := 1; i < len(pts); i++ {
		if pts[i].X <= pts[i-1].X {
			t.Fatalf("points out of order at %d: %v", i, pts)
		}
	}
}

func TestMinimumCapacity(t *testing.T) {
	r := NewRing(0, Point{X: 1})
	if r.Cap() != 1 {
		t.Errorf("expected capacity clamped to 1, got %d", r.Cap())
	}
}
