package sculpt

import (
	"github.com/soypat/sculpt/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

// Plane is the set of points x where N·x + D = 0.
type Plane struct {
	N r3.Vec
	D float64
}

// PlaneFromNormal returns the plane with normal n passing through p.
func PlaneFromNormal(n, p r3.Vec) Plane {
	return Plane{N: n, D: -r3.Dot(n, p)}
}

// SignedDistance returns the distance from the plane to p, positive on the
// side the normal points to. The result is only a true distance for unit normals.
func (pl Plane) SignedDistance(p r3.Vec) float64 {
	return r3.Dot(pl.N, p) + pl.D
}

// Guide disambiguates the winding of a triangle at construction time.
// The stored normal of a triangle always points away from its guide.
type Guide struct {
	v     r3.Vec
	point bool
}

// TowardPoint returns a guide that compares the raw normal against the
// vector from the triangle's first vertex toward p. Used when a point known
// to be on the inner side (a centroid, a loop average) is available.
func TowardPoint(p r3.Vec) Guide { return Guide{v: p, point: true} }

// Direction returns a guide that compares the raw normal directly against d.
func Direction(d r3.Vec) Guide { return Guide{v: d} }

func (g Guide) vector(origin r3.Vec) r3.Vec {
	if g.point {
		return r3.Sub(g.v, origin)
	}
	return g.v
}

// Triangle is an oriented triangle with a unit normal pointing away from the
// guide it was built with. Triangles are values and never mutated.
type Triangle struct {
	V [3]VertexID
	P [3]r3.Vec
	// N is the outward unit normal. Zero for degenerate triangles.
	N     r3.Vec
	Plane Plane
}

// NewTriangle builds the triangle a, b, c. The winding is kept if the raw
// normal (a-b)×(a-c) points away from the guide, otherwise b and c are
// swapped. Collinear or coincident input yields a zero normal, see Degenerate.
func NewTriangle(a, b, c Vertex, g Guide) Triangle {
	raw := r3.Cross(r3.Sub(a.Pos, b.Pos), r3.Sub(a.Pos, c.Pos))
	n := d3.Unit(raw, epsilon)
	if r3.Dot(g.vector(a.Pos), n) >= 0 {
		b, c = c, b
		n = r3.Scale(-1, n)
	}
	return Triangle{
		V:     [3]VertexID{a.ID, b.ID, c.ID},
		P:     [3]r3.Vec{a.Pos, b.Pos, c.Pos},
		N:     n,
		Plane: PlaneFromNormal(n, a.Pos),
	}
}

// Degenerate reports whether the triangle has no well defined normal.
func (t Triangle) Degenerate() bool {
	return d3.IsZero(t.N, epsilon)
}

// Vertex returns the i'th corner of the triangle.
func (t Triangle) Vertex(i int) Vertex {
	return Vertex{ID: t.V[i], Pos: t.P[i]}
}

// Edge returns the i'th edge of the triangle: (v0,v1), (v1,v2) and (v0,v2)
// for i = 0, 1, 2. The i'th edge lies opposite of corner (i+2)%3.
func (t Triangle) Edge(i int) Edge {
	a, b := edgeCorners(i)
	return MakeEdge(t.V[a], t.V[b])
}

// Segment returns the positions of the i'th edge in the triangle's winding.
func (t Triangle) Segment(i int) Segment {
	a, b := edgeCorners(i)
	return Segment{P0: t.P[a], P1: t.P[b]}
}

// Edges returns the three edges of the triangle in order.
func (t Triangle) Edges() [3]Edge {
	return [3]Edge{t.Edge(0), t.Edge(1), t.Edge(2)}
}

// Has reports whether v is a corner of t.
func (t Triangle) Has(v VertexID) bool {
	return t.V[0] == v || t.V[1] == v || t.V[2] == v
}

// Centroid returns the mean of the triangle's corners.
func (t Triangle) Centroid() r3.Vec {
	return r3.Scale(1./3., r3.Add(r3.Add(t.P[0], t.P[1]), t.P[2]))
}

// ContainsProjection reports whether p lies strictly inside the infinite
// prism swept by the triangle along its normal. Each edge acts as a
// half-plane whose inner side is the one holding the opposite corner.
func (t Triangle) ContainsProjection(p r3.Vec) bool {
	for i := 0; i < 3; i++ {
		seg := t.Segment(i)
		opposite := t.P[(i+2)%3]
		inward := d3.Unit(r3.Sub(opposite, seg.Project(opposite)), epsilon)
		if PlaneFromNormal(inward, seg.P0).SignedDistance(p) <= 0 {
			return false
		}
	}
	return true
}

// WithinEdgeExtents reports whether the projection of p onto every edge's
// line lands between that edge's endpoints. It is looser than
// ContainsProjection near the corners of the triangle.
func (t Triangle) WithinEdgeExtents(p r3.Vec) bool {
	return t.Segment(0).WithinBounds(p) && t.Segment(1).WithinBounds(p) && t.Segment(2).WithinBounds(p)
}

// radius returns the distance from the centroid to the farthest corner.
func (t Triangle) radius() float64 {
	c := t.Centroid()
	r := 0.0
	for _, p := range t.P {
		if d := r3.Norm(r3.Sub(p, c)); d > r {
			r = d
		}
	}
	return r
}

func edgeCorners(i int) (a, b int) {
	switch i {
	case 0:
		return 0, 1
	case 1:
		return 1, 2
	case 2:
		return 0, 2
	}
	panic("edge index out of range")
}
