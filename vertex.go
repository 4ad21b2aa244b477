package sculpt

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"
)

// VertexID is the stable identity of a registered vertex. IDs are dense
// and assigned in registration order starting at zero.
type VertexID int32

// Vertex is an immutable position with a stable identity.
type Vertex struct {
	ID  VertexID
	Pos r3.Vec
}

// Edge is an undirected pair of vertices. Edges built with MakeEdge
// are canonical (A < B) so they may be compared and used as map keys
// regardless of the order the vertices were given in.
type Edge struct {
	A, B VertexID
}

// MakeEdge returns the canonical edge joining a and b.
func MakeEdge(a, b VertexID) Edge {
	if a > b {
		a, b = b, a
	}
	return Edge{A: a, B: b}
}

// Has reports whether v is one of the edge's endpoints.
func (e Edge) Has(v VertexID) bool { return e.A == v || e.B == v }

func (e Edge) String() string {
	return fmt.Sprintf("%d-%d", e.A, e.B)
}

// Segment is the straight line segment between two positions. It carries
// the position queries of an edge and is computed per query, never cached.
type Segment struct {
	P0, P1 r3.Vec
}

// Length returns the Euclidean length of the segment.
func (s Segment) Length() float64 {
	return r3.Norm(r3.Sub(s.P1, s.P0))
}

// canonical returns s with its endpoints in lexicographic order so queries
// give bit-identical results whichever winding the segment came from.
func (s Segment) canonical() Segment {
	a, b := s.P0, s.P1
	if b.X < a.X || (b.X == a.X && (b.Y < a.Y || (b.Y == a.Y && b.Z < a.Z))) {
		return Segment{P0: b, P1: a}
	}
	return s
}

// Project returns the orthogonal projection of p onto the infinite
// line through the segment. Degenerate segments project onto their
// lexicographically smaller endpoint.
func (s Segment) Project(p r3.Vec) r3.Vec {
	s = s.canonical()
	dir := r3.Sub(s.P1, s.P0)
	l2 := r3.Norm2(dir)
	if l2 <= epsilon*epsilon {
		return s.P0
	}
	t := r3.Dot(r3.Sub(p, s.P0), dir) / l2
	return r3.Add(s.P0, r3.Scale(t, dir))
}

// WithinBounds reports whether the projection of p onto the segment's line
// is strictly closer than the segment length to both endpoints, that is,
// whether it lands between them.
func (s Segment) WithinBounds(p r3.Vec) bool {
	s = s.canonical()
	proj := s.Project(p)
	length := s.Length()
	return r3.Norm(r3.Sub(s.P0, proj)) < length && r3.Norm(r3.Sub(s.P1, proj)) < length
}

// Closest returns the point of the segment closest to p. The projection is
// clamped to the nearer endpoint when it lands farther than the segment
// length from either endpoint.
func (s Segment) Closest(p r3.Vec) r3.Vec {
	s = s.canonical()
	length := s.Length()
	proj := s.Project(p)
	d0 := r3.Norm(r3.Sub(s.P0, proj))
	d1 := r3.Norm(r3.Sub(s.P1, proj))
	if d0 <= length && d1 <= length {
		return proj
	}
	if d0 < d1 {
		return s.P0
	}
	return s.P1
}

// Distance returns the unsigned distance from p to the clamped projection
// returned by Closest.
func (s Segment) Distance(p r3.Vec) float64 {
	return r3.Norm(r3.Sub(p, s.Closest(p)))
}
