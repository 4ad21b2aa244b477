package sculpt

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

// assertOutward checks every live triangle of s has the surface centroid
// strictly on its negative side.
func assertOutward(t *testing.T, s *Surface) {
	t.Helper()
	c := s.Centroid()
	for _, id := range s.IDs() {
		tri := s.Triangle(id)
		if d := tri.Plane.SignedDistance(c); d >= 0 {
			t.Errorf("triangle %d %v faces inward: centroid distance %g", id, tri.V, d)
		}
	}
}

func TestCubeSeed(t *testing.T) {
	s := cubeSurface(t)
	assertOutward(t, s)
	for _, tri := range s.Triangles() {
		if tri.Degenerate() {
			t.Errorf("degenerate cube triangle %v", tri.V)
		}
		// Every normal is axis aligned.
		if r3.Norm(r3.Vec{X: tri.N.X * tri.N.Y, Y: tri.N.Y * tri.N.Z, Z: tri.N.X * tri.N.Z}) > 1e-12 {
			t.Errorf("cube triangle normal %v not axis aligned", tri.N)
		}
	}
}

func TestTetrahedronSeed(t *testing.T) {
	sd, err := Tetrahedron(r3.Vec{}, r3.Vec{X: 1}, r3.Vec{Y: 1}, r3.Vec{Z: 1})
	if err != nil {
		t.Fatal(err)
	}
	s, err := sd.Build()
	if err != nil {
		t.Fatal(err)
	}
	if s.Len() != 4 || !s.Closed() {
		t.Fatalf("want closed tetrahedron, got %d triangles closed=%v", s.Len(), s.Closed())
	}
	assertOutward(t, s)

	_, err = Tetrahedron(r3.Vec{}, r3.Vec{X: 1}, r3.Vec{Y: 1}, r3.Vec{X: 1, Y: 1})
	if !errors.Is(err, errFlat) {
		t.Errorf("want errFlat for coplanar corners, got %v", err)
	}
	rng := rand.New(rand.NewSource(2))
	for i := 0; i < 20; i++ {
		s, err := RandomTetrahedron(rng).Build()
		if err != nil {
			t.Fatal(err)
		}
		if !s.Closed() {
			t.Fatal("random tetrahedron not closed")
		}
		assertOutward(t, s)
	}
}

func TestSeedValidate(t *testing.T) {
	cube := Cube()
	for _, tc := range []struct {
		name string
		sd   Seed
	}{
		{"few points", Seed{Points: cube.Points[:3], Faces: cube.Faces}},
		{"few faces", Seed{Points: cube.Points, Faces: cube.Faces[:3]}},
		{"out of range", Seed{Points: cube.Points, Faces: append([][3]int{{0, 1, 8}}, cube.Faces...)}},
		{"repeated corner", Seed{Points: cube.Points, Faces: append([][3]int{{0, 1, 1}}, cube.Faces...)}},
	} {
		if err := tc.sd.Validate(); err == nil {
			t.Errorf("%s: expected validation error", tc.name)
		}
		if _, err := tc.sd.Build(); err == nil {
			t.Errorf("%s: expected build error", tc.name)
		}
	}
}

func TestFromTriangles(t *testing.T) {
	model := cubeSurface(t).Export().Triangles()
	sd, err := FromTriangles(model, 1e-9)
	if err != nil {
		t.Fatal(err)
	}
	if len(sd.Points) != 8 || len(sd.Faces) != 12 {
		t.Fatalf("want 8 welded points and 12 faces, got %d and %d", len(sd.Points), len(sd.Faces))
	}
	s, err := sd.Build()
	if err != nil {
		t.Fatal(err)
	}
	if !s.Closed() {
		t.Fatal("welded cube not closed")
	}
	assertOutward(t, s)

	// Nudged corners still weld, collapsed triangles are dropped.
	model[0][1] = r3.Add(model[0][0], r3.Vec{X: 1e-12})
	sd, err = FromTriangles(model, 1e-9)
	if err != nil {
		t.Fatal(err)
	}
	if len(sd.Faces) != 11 {
		t.Errorf("want collapsed triangle dropped, got %d faces", len(sd.Faces))
	}
	if _, err := FromTriangles(nil, 0); err == nil {
		t.Error("expected error for empty model")
	}
	// Half the unit cube diagonal is about 0.87.
	if _, err := FromTriangles(model, 1); err == nil {
		t.Error("expected error for weld tolerance spanning the model")
	}
}

func TestSeedPlace(t *testing.T) {
	rot := r3.NewRotation(math.Pi/2, r3.Vec{Z: 1})
	sd, err := Cube().Place(r3.Vec{X: 5}, r3.Vec{X: 2, Y: 2, Z: 2}, rot)
	if err != nil {
		t.Fatal(err)
	}
	// Corner (1,0,0) is scaled to (2,0,0), turned to (0,2,0) then moved.
	want := r3.Vec{X: 5, Y: 2}
	if got := sd.Points[3]; r3.Norm(r3.Sub(got, want)) > 1e-12 {
		t.Errorf("want corner at %v, got %v", want, got)
	}
	s, err := sd.Build()
	if err != nil {
		t.Fatal(err)
	}
	if !s.Closed() {
		t.Fatal("placed cube not closed")
	}
	assertOutward(t, s)

	moved, err := Cube().Place(r3.Vec{Y: 1}, r3.Vec{X: 1, Y: 1, Z: 1}, r3.Rotation{})
	if err != nil {
		t.Fatal(err)
	}
	if moved.Points[7] != (r3.Vec{Y: 1}) {
		t.Errorf("zero rotation should only translate, got %v", moved.Points[7])
	}
	if _, err := Cube().Place(r3.Vec{}, r3.Vec{X: 1, Y: 0, Z: 1}, r3.Rotation{}); err == nil {
		t.Error("expected error for flattening placement")
	}
}
