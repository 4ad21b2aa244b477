package sculpt

import (
	"sort"

	"gonum.org/v1/gonum/spatial/kdtree"
	"gonum.org/v1/gonum/spatial/r3"
)

var (
	_ kdtree.Interface  = kdPoints{}
	_ kdtree.Comparable = kdPoint{}
)

// kdPoint is a registered vertex as stored in a kd-tree.
type kdPoint Vertex

type kdPoints []kdPoint

// newPointTree indexes pts. The tree owns pts after the call.
func newPointTree(pts kdPoints) *kdtree.Tree {
	return kdtree.New(pts, false)
}

// within returns the points of tree within distance r of p sorted by
// vertex id.
func within(tree *kdtree.Tree, p r3.Vec, r float64) []Vertex {
	keep := kdtree.NewDistKeeper(r * r)
	tree.NearestSet(keep, kdPoint{Pos: p})
	var found []Vertex
	for _, c := range keep.Heap {
		// The keeper is seeded with a sentinel holding no point.
		if c.Comparable == nil {
			continue
		}
		found = append(found, Vertex(c.Comparable.(kdPoint)))
	}
	sort.Slice(found, func(i, j int) bool { return found[i].ID < found[j].ID })
	return found
}

func (k kdPoints) Index(i int) kdtree.Comparable { return k[i] }

// Len returns the length of the list.
func (k kdPoints) Len() int { return len(k) }

// Pivot partitions the list based on the dimension specified.
func (k kdPoints) Pivot(d kdtree.Dim) int {
	p := kdPlane{dim: d, points: k}
	return kdtree.Partition(p, kdtree.MedianOfMedians(p))
}

// Slice returns a slice of the list using zero-based half
// open indexing equivalent to built-in slice indexing.
func (k kdPoints) Slice(start, end int) kdtree.Interface { return k[start:end] }

// Compare returns the signed distance of a from the plane passing through
// b and perpendicular to the dimension d.
func (a kdPoint) Compare(b kdtree.Comparable, d kdtree.Dim) float64 {
	return kdComp(a, b.(kdPoint), d)
}

// Dims returns the number of dimensions described in the Comparable.
func (a kdPoint) Dims() int { return 3 }

// Distance returns the squared Euclidean distance between the receiver and
// the parameter.
func (a kdPoint) Distance(b kdtree.Comparable) float64 {
	return r3.Norm2(r3.Sub(a.Pos, b.(kdPoint).Pos))
}

// c = a.dim - b.dim
func kdComp(a, b kdPoint, dim kdtree.Dim) float64 {
	switch dim {
	case 0:
		return a.Pos.X - b.Pos.X
	case 1:
		return a.Pos.Y - b.Pos.Y
	case 2:
		return a.Pos.Z - b.Pos.Z
	}
	panic("bad dimension")
}

type kdPlane struct {
	dim    kdtree.Dim
	points kdPoints
}

func (p kdPlane) Less(i, j int) bool {
	return kdComp(p.points[i], p.points[j], p.dim) < 0
}

func (p kdPlane) Swap(i, j int) {
	p.points[i], p.points[j] = p.points[j], p.points[i]
}

func (p kdPlane) Len() int { return len(p.points) }

func (p kdPlane) Slice(start, end int) kdtree.SortSlicer {
	p.points = p.points[start:end]
	return p
}
