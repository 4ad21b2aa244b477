package sculpt

import (
	"io"
	"reflect"
	"testing"

	"github.com/soypat/sculpt/render"
	"gonum.org/v1/gonum/spatial/r3"
)

func meshEqual(a, b Mesh) bool {
	return reflect.DeepEqual(a, b)
}

func TestExportCube(t *testing.T) {
	s := cubeSurface(t)
	m := s.Export()
	if m.NumTriangles() != 12 {
		t.Fatalf("want 12 triangles, got %d", m.NumTriangles())
	}
	// Coplanar triangles share corners, the 6 sides do not.
	if len(m.Positions) != 24 || len(m.Normals) != len(m.Positions) {
		t.Fatalf("want 24 positions with aligned normals, got %d positions %d normals",
			len(m.Positions), len(m.Normals))
	}
	for i, tri := range m.Triangles() {
		n := m.Normals[m.Indices[3*i]]
		if r3.Norm(r3.Sub(tri.Normal(), n)) > 1e-12 {
			t.Errorf("triangle %d winding normal %v disagrees with exported %v", i, tri.Normal(), n)
		}
		for j := 1; j < 3; j++ {
			if m.Normals[m.Indices[3*i+j]] != n {
				t.Errorf("triangle %d corners disagree on normal", i)
			}
		}
	}
	if !meshEqual(m, s.Export()) {
		t.Fatal("exporting twice yielded different buffers")
	}
	pos, nrm, idx := m.Float32()
	if len(pos) != 3*len(m.Positions) || len(nrm) != len(pos) || len(idx) != len(m.Indices) {
		t.Fatal("flat buffer length mismatch")
	}
	for i, v := range idx {
		if int(v) != m.Indices[i] {
			t.Fatalf("index %d mismatch", i)
		}
	}
}

func TestExportSplitsByNormal(t *testing.T) {
	s := NewSurface()
	v := []Vertex{
		s.AddVertex(r3.Vec{}),
		s.AddVertex(r3.Vec{X: 1}),
		s.AddVertex(r3.Vec{Y: 1}),
		s.AddVertex(r3.Vec{Z: 1}),
	}
	inner := TowardPoint(r3.Vec{X: 0.1, Y: 0.1, Z: 0.1})
	a := s.Add(NewTriangle(v[0], v[1], v[2], inner))
	b := s.Add(NewTriangle(v[0], v[1], v[3], inner))
	m := s.ExportTriangles([]TriangleID{a, b})
	// Shared edge corners are split since the faces are not coplanar.
	if len(m.Positions) != 6 {
		t.Errorf("want 6 export entries, got %d", len(m.Positions))
	}
	s.Remove(b)
	if got := s.ExportTriangles([]TriangleID{a, b}); got.NumTriangles() != 1 {
		t.Errorf("dead triangles must be skipped, got %d triangles", got.NumTriangles())
	}
	var empty Surface
	if !empty.Export().Empty() {
		t.Error("zero surface export not empty")
	}
}

func TestMeshClone(t *testing.T) {
	m := cubeSurface(t).Export()
	c := m.Clone()
	c.Positions[0] = r3.Vec{X: 42}
	c.Indices[0] = 7
	if m.Positions[0] == c.Positions[0] || m.Indices[0] == 7 {
		t.Fatal("clone shares buffers with original")
	}
}

func TestMeshRenderer(t *testing.T) {
	m := cubeSurface(t).Export()
	r := m.Renderer()
	buf := make([]render.Triangle3, 5)
	var got []render.Triangle3
	for {
		n, err := r.ReadTriangles(buf)
		got = append(got, buf[:n]...)
		if err == io.EOF {
			break
		} else if err != nil {
			t.Fatal(err)
		}
		if n != len(buf) {
			t.Fatalf("short read of %d triangles before end of mesh", n)
		}
	}
	if len(got) != m.NumTriangles() {
		t.Fatalf("want %d triangles, read %d", m.NumTriangles(), len(got))
	}
	for i, tri := range got {
		for j := range tri {
			if tri[j] != m.Positions[m.Indices[3*i+j]] {
				t.Fatalf("triangle %d corner %d mismatch", i, j)
			}
		}
	}
	if n, err := r.ReadTriangles(buf); n != 0 || err != io.EOF {
		t.Errorf("drained renderer returned %d, %v", n, err)
	}
}
