package sculpt

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/spatial/kdtree"
	"gonum.org/v1/gonum/spatial/r3"
)

// Refiner fills the gaps a coarse insertion leaves behind. Free points, that
// is registered vertices no triangle uses, lying closer than FlexDist to a
// triangle's plane and within its bounds are pulled into the surface by
// splitting that triangle into three. The closest point is always consumed
// first.
type Refiner struct {
	FlexDist float64
	Bounds   Bounds
}

// fill is a pending split of a triangle at a free point.
type fill struct {
	v    Vertex
	t    TriangleID
	dist float64 // signed distance from the triangle's plane
}

// Refine splits triangles of s at eligible free points until none remain.
func (r Refiner) Refine(s *Surface) Patch {
	var patch Patch
	var free kdPoints
	for _, v := range s.Vertices() {
		if !s.Used(v.ID) {
			free = append(free, kdPoint(v))
		}
	}
	if len(free) == 0 || s.Len() == 0 {
		return patch
	}
	tree := newPointTree(free)

	var work []fill
	for _, id := range s.IDs() {
		work = r.scan(work, s, tree, id)
	}
	// Ties resolve to the first entry in point then triangle order.
	sort.SliceStable(work, func(i, j int) bool {
		if work[i].v.ID != work[j].v.ID {
			return work[i].v.ID < work[j].v.ID
		}
		return work[i].t < work[j].t
	})
	for len(work) > 0 {
		best := 0
		for i := range work {
			if math.Abs(work[i].dist) < math.Abs(work[best].dist) {
				best = i
			}
		}
		f := work[best]
		t := s.Triangle(f.t)
		patch.Removed = append(patch.Removed, t)
		s.Remove(f.t)
		guide := Direction(r3.Scale(-1, t.N))
		var added [3]TriangleID
		for i := range added {
			a, b := edgeCorners(i)
			added[i] = s.Add(NewTriangle(f.v, t.Vertex(a), t.Vertex(b), guide))
		}
		patch.Added = append(patch.Added, added[:]...)

		n := 0
		for _, w := range work {
			if w.t != f.t && w.v.ID != f.v.ID {
				work[n] = w
				n++
			}
		}
		work = work[:n]
		for _, id := range added {
			work = r.scan(work, s, tree, id)
		}
	}
	return patch
}

// scan appends the fills of triangle id with the free points of tree.
func (r Refiner) scan(dst []fill, s *Surface, tree *kdtree.Tree, id TriangleID) []fill {
	t := s.Triangle(id)
	if t.Degenerate() {
		return dst
	}
	for _, v := range within(tree, t.Centroid(), r.reach(t)) {
		if s.Used(v.ID) {
			continue
		}
		if f, ok := r.eligible(t, v); ok {
			f.t = id
			dst = append(dst, f)
		}
	}
	return dst
}

func (r Refiner) eligible(t Triangle, v Vertex) (fill, bool) {
	d := t.Plane.SignedDistance(v.Pos)
	if math.Abs(d) >= r.FlexDist || !r.Bounds.within(t, v.Pos) {
		return fill{}, false
	}
	return fill{v: v, dist: d}, true
}

// reach returns a distance from the centroid of t beyond which no point is
// eligible for filling t.
func (r Refiner) reach(t Triangle) float64 {
	if r.Bounds == BoundsEdgeExtents {
		return extentsRadius(t) + r.FlexDist
	}
	return t.radius() + r.FlexDist
}

// extentsRadius bounds the in-plane region whose projections land within
// every edge of t. The region is the intersection of the three slabs swept
// perpendicular to each edge and it may reach well past the corners of
// obtuse triangles. Its corners are among the intersections of the slab
// boundaries, so the farthest of those bounds the region.
func extentsRadius(t Triangle) float64 {
	c := t.Centroid()
	r := t.radius()
	for i := 0; i < 3; i++ {
		si := t.Segment(i)
		di := r3.Sub(si.P1, si.P0)
		for j := i + 1; j < 3; j++ {
			sj := t.Segment(j)
			dj := r3.Sub(sj.P1, sj.P0)
			dii, djj, dij := r3.Dot(di, di), r3.Dot(dj, dj), r3.Dot(di, dj)
			det := dii*djj - dij*dij
			if math.Abs(det) <= epsilon*dii*djj {
				continue
			}
			for _, x := range [2]r3.Vec{si.P0, si.P1} {
				for _, y := range [2]r3.Vec{sj.P0, sj.P1} {
					// Solve q = c + a*di + b*dj with (q-x)·di = 0 and (q-y)·dj = 0.
					bi := r3.Dot(r3.Sub(x, c), di)
					bj := r3.Dot(r3.Sub(y, c), dj)
					a := (bi*djj - bj*dij) / det
					b := (bj*dii - bi*dij) / det
					if d := r3.Norm(r3.Add(r3.Scale(a, di), r3.Scale(b, dj))); d > r {
						r = d
					}
				}
			}
		}
	}
	return r
}
