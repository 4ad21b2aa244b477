package sculpt

import (
	"github.com/soypat/sculpt/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

// Strategy folds a registered vertex into a surface. Apply edits s in place,
// callers wanting to keep the original should pass a clone.
type Strategy interface {
	Apply(s *Surface, v Vertex) (Patch, error)
}

// Patch records the edit made to a surface by a single strategy run.
type Patch struct {
	// Added are the ids of the new triangles, in creation order.
	Added []TriangleID
	// Removed are the triangles taken out of the surface.
	Removed []Triangle
}

func (p *Patch) merge(q Patch) {
	p.Added = append(p.Added, q.Added...)
	p.Removed = append(p.Removed, q.Removed...)
}

var (
	_ Strategy = HullBuilder{}
	_ Strategy = Remesher{}
)

// boundaryEdge is an edge of a removed triangle together with its corners
// in the source triangle's winding.
type boundaryEdge struct {
	edge   Edge
	a, b   Vertex
	source Triangle
}

func boundaryEdges(t Triangle, dst []boundaryEdge) []boundaryEdge {
	for i := 0; i < 3; i++ {
		a, b := edgeCorners(i)
		dst = append(dst, boundaryEdge{
			edge:   t.Edge(i),
			a:      t.Vertex(a),
			b:      t.Vertex(b),
			source: t,
		})
	}
	return dst
}

// singleEdges returns the edges that occur exactly once in candidates,
// preserving the order they were first seen in.
func singleEdges(candidates []boundaryEdge) []boundaryEdge {
	count := make(map[Edge]int, len(candidates))
	for _, c := range candidates {
		count[c.edge]++
	}
	var open []boundaryEdge
	for _, c := range candidates {
		if count[c.edge] == 1 {
			open = append(open, c)
		}
	}
	return open
}

// facing reports whether p is strictly in front of t.
func facing(t Triangle, p r3.Vec) bool {
	return r3.Dot(d3.Unit(r3.Sub(p, t.P[0]), epsilon), t.N) > 0
}
