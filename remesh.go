package sculpt

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Remesher replaces only the triangles a new point lands close to. A
// triangle within Margin of the point's plane is culled when one of its
// edges passes within Margin of the point or when the point projects inside
// it. Edges of culled triangles that are not themselves within margin, and
// that no two culled triangles share, are joined to the point.
type Remesher struct {
	Margin float64
	Bounds Bounds
}

// Apply inserts v into s.
func (r Remesher) Apply(s *Surface, v Vertex) (Patch, error) {
	var (
		patch     Patch
		culled    []TriangleID
		candidate []boundaryEdge
	)
	for _, id := range s.IDs() {
		t := s.Triangle(id)
		if math.Abs(t.Plane.SignedDistance(v.Pos)) >= r.Margin {
			continue
		}
		var near [3]bool
		anyNear := false
		for i := range near {
			near[i] = t.Segment(i).Distance(v.Pos) < r.Margin
			anyNear = anyNear || near[i]
		}
		if !anyNear && !r.Bounds.within(t, v.Pos) {
			continue
		}
		culled = append(culled, id)
		for i, e := range boundaryEdges(t, nil) {
			if !near[i] {
				candidate = append(candidate, e)
			}
		}
	}
	for _, id := range culled {
		patch.Removed = append(patch.Removed, s.Triangle(id))
		s.Remove(id)
	}
	for _, e := range singleEdges(candidate) {
		// Bulge toward the sample: new faces keep the source face's outward side.
		nt := NewTriangle(e.a, e.b, v, Direction(r3.Scale(-1, e.source.N)))
		patch.Added = append(patch.Added, s.Add(nt))
	}
	return patch, nil
}
