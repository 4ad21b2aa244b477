package sculpt

import (
	"fmt"

	"github.com/soypat/sculpt/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

// HullBuilder grows a convex hull one point at a time. Every triangle facing
// the new point is removed and the hole is closed with a fan of triangles
// joining the point to the hole's boundary. Points already inside the hull
// leave the surface untouched.
type HullBuilder struct{}

// Apply inserts v into the hull s.
func (HullBuilder) Apply(s *Surface, v Vertex) (Patch, error) {
	var (
		patch     Patch
		removed   []TriangleID
		candidate []boundaryEdge
	)
	for _, id := range s.IDs() {
		t := s.Triangle(id)
		if !facing(t, v.Pos) {
			continue
		}
		removed = append(removed, id)
		candidate = boundaryEdges(t, candidate)
	}
	if len(removed) == 0 {
		return patch, nil
	}
	open := singleEdges(candidate)
	if len(open) < 3 {
		return patch, fmt.Errorf("%w: hull insertion of %v removes %d faces but opens %d edges",
			ErrDegenerate, v.Pos, len(removed), len(open))
	}
	mids := make(d3.Set, len(open))
	for i, e := range open {
		mids[i] = d3.Midpoint(e.a.Pos, e.b.Pos)
	}
	guide := TowardPoint(mids.Centroid())
	for _, id := range removed {
		patch.Removed = append(patch.Removed, s.Triangle(id))
		s.Remove(id)
	}
	for _, e := range open {
		patch.Added = append(patch.Added, s.Add(NewTriangle(v, e.a, e.b, guide)))
	}
	return patch, nil
}

// Contains reports whether p is on or inside every face of the closed
// convex surface s, allowing a slack of tol.
func Contains(s *Surface, p r3.Vec, tol float64) bool {
	for _, t := range s.Triangles() {
		if t.Plane.SignedDistance(p) > tol {
			return false
		}
	}
	return true
}
