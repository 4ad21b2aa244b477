package sculpt

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/soypat/sculpt/internal/d3"
	"github.com/soypat/sculpt/render"
	"gonum.org/v1/gonum/spatial/r3"
)

// Seed is the initial shape of a session: a set of points and the
// triangles joining them given as index triples into Points. Face winding
// is irrelevant, faces are oriented away from the centroid of Points when
// the seed is built.
type Seed struct {
	Points []r3.Vec
	Faces  [][3]int
}

// Validate checks face indices are in range and not repeated within a face.
func (sd Seed) Validate() error {
	if len(sd.Points) < 4 {
		return fmt.Errorf("seed needs at least 4 points, got %d", len(sd.Points))
	}
	if len(sd.Faces) < 4 {
		return fmt.Errorf("seed needs at least 4 faces, got %d", len(sd.Faces))
	}
	for i, f := range sd.Faces {
		for _, idx := range f {
			if idx < 0 || idx >= len(sd.Points) {
				return fmt.Errorf("seed face %d index %d out of range", i, idx)
			}
		}
		if f[0] == f[1] || f[1] == f[2] || f[0] == f[2] {
			return fmt.Errorf("seed face %d repeats a vertex", i)
		}
	}
	return nil
}

// Build registers the seed's points and faces in a new surface. All points
// are registered, in order, so VertexID(i) corresponds to Points[i].
func (sd Seed) Build() (*Surface, error) {
	if err := sd.Validate(); err != nil {
		return nil, err
	}
	s := NewSurface()
	verts := make([]Vertex, len(sd.Points))
	for i, p := range sd.Points {
		if !d3.Finite(p) {
			return nil, fmt.Errorf("seed point %d is not finite: %v", i, p)
		}
		verts[i] = s.AddVertex(p)
	}
	guide := TowardPoint(d3.Set(sd.Points).Centroid())
	for _, f := range sd.Faces {
		s.Add(NewTriangle(verts[f[0]], verts[f[1]], verts[f[2]], guide))
	}
	return s, nil
}

// Place returns the seed scaled by scale, rotated by rot and moved to
// position, in that order. The zero Rotation leaves the orientation unchanged.
func (sd Seed) Place(position, scale r3.Vec, rot r3.Rotation) (Seed, error) {
	t := d3.ComposeTransform(position, scale, rot)
	if math.Abs(t.Det()) <= epsilon {
		return Seed{}, errors.New("placement flattens the seed")
	}
	placed := Seed{
		Points: make([]r3.Vec, len(sd.Points)),
		Faces:  append([][3]int(nil), sd.Faces...),
	}
	for i, p := range sd.Points {
		placed.Points[i] = t.Transform(p)
	}
	return placed, nil
}

// Cube returns the unit cube with corners at the origin and (1,1,1), each
// square side split into two triangles.
func Cube() Seed {
	return Seed{
		Points: []r3.Vec{
			{X: 1, Y: 1, Z: 1},
			{X: 1, Y: 0, Z: 1},
			{X: 1, Y: 1, Z: 0},
			{X: 1, Y: 0, Z: 0},
			{X: 0, Y: 1, Z: 1},
			{X: 0, Y: 0, Z: 1},
			{X: 0, Y: 1, Z: 0},
			{X: 0, Y: 0, Z: 0},
		},
		Faces: [][3]int{
			{0, 1, 2}, {1, 2, 3}, // x=1
			{2, 3, 6}, {3, 6, 7}, // z=0
			{6, 7, 4}, {7, 4, 5}, // x=0
			{0, 1, 4}, {1, 4, 5}, // z=1
			{4, 0, 6}, {0, 6, 2}, // y=1
			{1, 3, 5}, {3, 5, 7}, // y=0
		},
	}
}

// errFlat is returned for tetrahedra without volume.
var errFlat = errors.New("tetrahedron points are coplanar")

// Tetrahedron returns the tetrahedron with corners a, b, c and d. The
// corners must not be coplanar.
func Tetrahedron(a, b, c, d r3.Vec) (Seed, error) {
	vol := r3.Dot(r3.Sub(b, a), r3.Cross(r3.Sub(c, a), r3.Sub(d, a))) / 6
	scale := math.Max(math.Max(r3.Norm(r3.Sub(b, a)), r3.Norm(r3.Sub(c, a))), r3.Norm(r3.Sub(d, a)))
	if math.Abs(vol) <= 1e-9*scale*scale*scale || scale == 0 {
		return Seed{}, errFlat
	}
	return Seed{
		Points: []r3.Vec{a, b, c, d},
		Faces:  [][3]int{{0, 1, 2}, {1, 2, 3}, {0, 2, 3}, {0, 1, 3}},
	}, nil
}

// RandomTetrahedron returns a tetrahedron with corners drawn uniformly
// from the unit cube. Coplanar draws are retried.
func RandomTetrahedron(rng *rand.Rand) Seed {
	box := d3.Box{Max: d3.Elem(1)}
	for {
		pts := box.RandomSet(rng, 4)
		sd, err := Tetrahedron(pts[0], pts[1], pts[2], pts[3])
		if err == nil {
			return sd
		}
	}
}

// FromTriangles welds a triangle soup into a seed. Vertices closer than tol
// along every axis are merged into the first one seen. Triangles that
// collapse after welding are dropped. The tolerance must be smaller than
// half the model's bounding box diagonal.
func FromTriangles(model []render.Triangle3, tol float64) (Seed, error) {
	if len(model) == 0 {
		return Seed{}, errors.New("no triangles to weld")
	}
	bb := d3.Set(model[0][:]).Bounds()
	for _, t := range model[1:] {
		bb = bb.Include(t[0]).Include(t[1]).Include(t[2])
	}
	if diag := r3.Norm(bb.Size()); tol >= diag/2 {
		return Seed{}, fmt.Errorf("weld tolerance %g too large for model of size %g", tol, diag)
	}
	type cell [3]int64
	quant := func(v r3.Vec) cell {
		if tol <= 0 {
			return cell{int64(math.Float64bits(v.X)), int64(math.Float64bits(v.Y)), int64(math.Float64bits(v.Z))}
		}
		return cell{int64(math.Floor(v.X / tol)), int64(math.Floor(v.Y / tol)), int64(math.Floor(v.Z / tol))}
	}
	var sd Seed
	index := make(map[cell]int)
	weld := func(v r3.Vec) int {
		c := quant(v)
		if tol > 0 {
			// Check the neighbouring cells so points straddling a cell border still merge.
			for dx := int64(-1); dx <= 1; dx++ {
				for dy := int64(-1); dy <= 1; dy++ {
					for dz := int64(-1); dz <= 1; dz++ {
						idx, ok := index[cell{c[0] + dx, c[1] + dy, c[2] + dz}]
						if ok && d3.EqualWithin(sd.Points[idx], v, tol) {
							return idx
						}
					}
				}
			}
		} else if idx, ok := index[c]; ok {
			return idx
		}
		idx := len(sd.Points)
		sd.Points = append(sd.Points, v)
		if _, ok := index[c]; !ok {
			index[c] = idx
		}
		return idx
	}
	for _, t := range model {
		if t.Degenerate(tol) {
			continue
		}
		f := [3]int{weld(t[0]), weld(t[1]), weld(t[2])}
		if f[0] == f[1] || f[1] == f[2] || f[0] == f[2] {
			continue
		}
		sd.Faces = append(sd.Faces, f)
	}
	return sd, sd.Validate()
}
