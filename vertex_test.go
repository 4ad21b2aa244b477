package sculpt

import (
	"math"
	"math/rand"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

func TestMakeEdge(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	seen := make(map[Edge]int)
	for i := 0; i < 1000; i++ {
		a, b := VertexID(rng.Intn(50)), VertexID(rng.Intn(50))
		e1, e2 := MakeEdge(a, b), MakeEdge(b, a)
		if e1 != e2 {
			t.Fatalf("MakeEdge(%d,%d)=%v != MakeEdge(%d,%d)=%v", a, b, e1, b, a, e2)
		}
		if e1.A > e1.B {
			t.Fatalf("edge %v not canonical", e1)
		}
		if !e1.Has(a) || !e1.Has(b) {
			t.Fatalf("edge %v missing endpoint", e1)
		}
		seen[e1]++
		if seen[e1] != seen[e2] {
			t.Fatal("edges hash differently")
		}
	}
}

func TestSegment(t *testing.T) {
	const tol = 1e-12
	seg := Segment{P0: r3.Vec{}, P1: r3.Vec{X: 2}}
	for _, tc := range []struct {
		p       r3.Vec
		proj    r3.Vec
		within  bool
		closest r3.Vec
	}{
		{p: r3.Vec{X: 1, Y: 1}, proj: r3.Vec{X: 1}, within: true, closest: r3.Vec{X: 1}},
		{p: r3.Vec{X: 0.5, Y: -3, Z: 4}, proj: r3.Vec{X: 0.5}, within: true, closest: r3.Vec{X: 0.5}},
		{p: r3.Vec{X: 3, Y: 1}, proj: r3.Vec{X: 3}, within: false, closest: r3.Vec{X: 2}},
		{p: r3.Vec{X: -1, Y: 1}, proj: r3.Vec{X: -1}, within: false, closest: r3.Vec{}},
		{p: r3.Vec{X: 2, Y: 1}, proj: r3.Vec{X: 2}, within: false, closest: r3.Vec{X: 2}},
	} {
		if got := seg.Project(tc.p); r3.Norm(r3.Sub(got, tc.proj)) > tol {
			t.Errorf("Project(%v) = %v, want %v", tc.p, got, tc.proj)
		}
		if got := seg.WithinBounds(tc.p); got != tc.within {
			t.Errorf("WithinBounds(%v) = %v, want %v", tc.p, got, tc.within)
		}
		if got := seg.Closest(tc.p); r3.Norm(r3.Sub(got, tc.closest)) > tol {
			t.Errorf("Closest(%v) = %v, want %v", tc.p, got, tc.closest)
		}
		if got, want := seg.Distance(tc.p), r3.Norm(r3.Sub(tc.p, tc.closest)); math.Abs(got-want) > tol {
			t.Errorf("Distance(%v) = %g, want %g", tc.p, got, want)
		}
	}
	if seg.Length() != 2 {
		t.Errorf("want length 2, got %g", seg.Length())
	}
}

func TestSegmentDegenerate(t *testing.T) {
	p := r3.Vec{X: 1, Y: 2, Z: 3}
	seg := Segment{P0: p, P1: p}
	q := r3.Vec{X: 4, Y: 6, Z: 3}
	if got := seg.Project(q); got != p {
		t.Errorf("degenerate segment projects to %v", got)
	}
	if seg.WithinBounds(q) {
		t.Error("nothing is within the bounds of a degenerate segment")
	}
	if got := seg.Distance(q); math.Abs(got-5) > 1e-12 {
		t.Errorf("want distance 5 to degenerate segment, got %g", got)
	}
}

func TestSegmentEndpointOrder(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	rnd := func() r3.Vec {
		return r3.Vec{X: rng.NormFloat64(), Y: rng.NormFloat64(), Z: rng.NormFloat64()}
	}
	for i := 0; i < 10000; i++ {
		a, b, p := rnd(), rnd(), rnd()
		fwd, rev := Segment{P0: a, P1: b}, Segment{P0: b, P1: a}
		if fwd.Distance(p) != rev.Distance(p) {
			t.Fatalf("distance from %v to %v depends on endpoint order", p, fwd)
		}
		if fwd.Project(p) != rev.Project(p) || fwd.WithinBounds(p) != rev.WithinBounds(p) {
			t.Fatalf("projection of %v onto %v depends on endpoint order", p, fwd)
		}
	}
}
