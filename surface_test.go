package sculpt

import (
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

func cubeSurface(t *testing.T) *Surface {
	t.Helper()
	s, err := Cube().Build()
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestSurfaceCube(t *testing.T) {
	s := cubeSurface(t)
	if s.Len() != 12 || s.NumVertices() != 8 {
		t.Fatalf("want 12 triangles on 8 vertices, got %d on %d", s.Len(), s.NumVertices())
	}
	// 12 cube edges and one diagonal per side.
	if s.NumEdges() != 18 {
		t.Errorf("want 18 edges, got %d", s.NumEdges())
	}
	if !s.Closed() || !s.Manifold() {
		t.Fatalf("cube not closed: open edges %v", s.OpenEdges())
	}
	for _, v := range s.Vertices() {
		if !s.Used(v.ID) {
			t.Errorf("cube corner %d unused", v.ID)
		}
	}
	if c := s.Centroid(); r3.Norm(r3.Sub(c, r3.Vec{X: 0.5, Y: 0.5, Z: 0.5})) > 1e-12 {
		t.Errorf("want centroid at cube centre, got %v", c)
	}
}

func TestSurfaceAddRemove(t *testing.T) {
	s := cubeSurface(t)
	ids := s.IDs()
	victim := ids[4]
	tri := s.Triangle(victim)
	s.Remove(victim)
	if s.Alive(victim) || s.Len() != 11 {
		t.Fatal("triangle still alive after removal")
	}
	if s.Closed() {
		t.Fatal("surface with a hole reported closed")
	}
	open := s.OpenEdges()
	if len(open) != 3 {
		t.Fatalf("want 3 open edges, got %v", open)
	}
	for _, e := range open {
		if len(s.Incident(e)) != 1 {
			t.Errorf("open edge %v has %d incident triangles", e, len(s.Incident(e)))
		}
	}
	id := s.Add(tri)
	if id != victim {
		t.Errorf("freed slot %d not reused, got %d", victim, id)
	}
	if !s.Closed() || s.Len() != 12 {
		t.Fatal("surface not closed after restoring triangle")
	}

	// A duplicate face overfills all three of its edges.
	dup := s.Add(tri)
	if s.Manifold() || s.Closed() {
		t.Fatal("duplicate triangle not detected")
	}
	s.Remove(dup)
	if !s.Manifold() || !s.Closed() {
		t.Fatal("removing duplicate did not restore the surface")
	}
}

func TestSurfaceRemoveDeadPanics(t *testing.T) {
	s := cubeSurface(t)
	s.Remove(0)
	defer func() {
		if recover() == nil {
			t.Error("expected panic removing a dead triangle")
		}
	}()
	s.Remove(0)
}

func TestSurfaceUsage(t *testing.T) {
	s := cubeSurface(t)
	free := s.AddVertex(r3.Vec{X: 2})
	if s.Used(free.ID) || free.ID != 8 {
		t.Fatalf("new vertex %v should be free with id 8", free)
	}
	if c := s.Centroid(); c != (r3.Vec{X: 0.5, Y: 0.5, Z: 0.5}) {
		t.Errorf("free vertices must not move the centroid, got %v", c)
	}
	for _, id := range s.IDs() {
		if s.Triangle(id).Has(0) {
			s.Remove(id)
		}
	}
	if s.Used(0) {
		t.Error("vertex 0 used after removing all its triangles")
	}
}

func TestSurfaceClone(t *testing.T) {
	s := cubeSurface(t)
	want := s.Export()
	c := s.Clone()
	c.AddVertex(r3.Vec{X: 3})
	for _, id := range c.IDs()[:3] {
		c.Remove(id)
	}
	if s.Len() != 12 || s.NumVertices() != 8 || !s.Closed() {
		t.Fatal("edits to the clone leaked into the original")
	}
	if !meshEqual(want, s.Export()) {
		t.Fatal("original export changed after editing clone")
	}
	if c.Len() != 9 || c.Closed() {
		t.Fatal("clone not edited")
	}
}
