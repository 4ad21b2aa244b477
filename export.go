package sculpt

import (
	"io"

	"github.com/soypat/sculpt/render"
	"gonum.org/v1/gonum/spatial/r3"
)

// Mesh is a renderable snapshot of a set of triangles. Normals are aligned
// 1:1 with Positions. Indices has stride 3, one outward facing winding per triple.
type Mesh struct {
	Positions []r3.Vec
	Normals   []r3.Vec
	Indices   []int
}

// exportKey identifies an export entry. Corners of the same vertex are only
// shared when their triangles agree on the normal.
type exportKey struct {
	v VertexID
	n r3.Vec
}

// Export converts the live triangles into a deduplicated mesh. Triangles are
// visited in ascending id order so the result is a pure function of the
// surface's contents.
func (s *Surface) Export() Mesh {
	return s.ExportTriangles(s.IDs())
}

// ExportTriangles exports the live triangles among ids, in the order given.
func (s *Surface) ExportTriangles(ids []TriangleID) Mesh {
	tris := make([]Triangle, 0, len(ids))
	for _, id := range ids {
		if s.Alive(id) {
			tris = append(tris, s.tris[id])
		}
	}
	return exportMesh(tris)
}

func exportMesh(tris []Triangle) Mesh {
	m := Mesh{
		Indices: make([]int, 0, 3*len(tris)),
	}
	index := make(map[exportKey]int, 3*len(tris))
	for _, t := range tris {
		for i, v := range t.V {
			key := exportKey{v: v, n: t.N}
			idx, ok := index[key]
			if !ok {
				idx = len(m.Positions)
				index[key] = idx
				m.Positions = append(m.Positions, t.P[i])
				m.Normals = append(m.Normals, t.N)
			}
			m.Indices = append(m.Indices, idx)
		}
	}
	return m
}

// NumTriangles returns the number of triangles in the mesh.
func (m Mesh) NumTriangles() int { return len(m.Indices) / 3 }

// Empty reports whether the mesh holds no triangles.
func (m Mesh) Empty() bool { return len(m.Indices) == 0 }

// Triangles returns the mesh triangles as render.Triangle3 values, in
// index buffer order.
func (m Mesh) Triangles() []render.Triangle3 {
	tris, _ := render.RenderAll(m.Renderer())
	return tris
}

// Renderer returns a render.Renderer yielding the mesh triangles in index
// buffer order.
func (m Mesh) Renderer() render.Renderer {
	return &meshRenderer{mesh: m}
}

type meshRenderer struct {
	mesh Mesh
	next int
}

func (r *meshRenderer) ReadTriangles(t []render.Triangle3) (int, error) {
	total := r.mesh.NumTriangles()
	n := 0
	for ; n < len(t) && r.next < total; n++ {
		idx := r.mesh.Indices[3*r.next : 3*r.next+3]
		t[n] = render.Triangle3{
			r.mesh.Positions[idx[0]],
			r.mesh.Positions[idx[1]],
			r.mesh.Positions[idx[2]],
		}
		r.next++
	}
	if r.next == total {
		return n, io.EOF
	}
	return n, nil
}

// Float32 returns the mesh as flat buffers as consumed by GPU vertex arrays:
// 3 floats per position, 3 floats per normal and 3 indices per triangle.
func (m Mesh) Float32() (positions, normals []float32, indices []uint32) {
	positions = make([]float32, 0, 3*len(m.Positions))
	normals = make([]float32, 0, 3*len(m.Normals))
	indices = make([]uint32, len(m.Indices))
	for i := range m.Positions {
		p, n := m.Positions[i], m.Normals[i]
		positions = append(positions, float32(p.X), float32(p.Y), float32(p.Z))
		normals = append(normals, float32(n.X), float32(n.Y), float32(n.Z))
	}
	for i, idx := range m.Indices {
		indices[i] = uint32(idx)
	}
	return positions, normals, indices
}

// Clone returns a deep copy of m.
func (m Mesh) Clone() Mesh {
	return Mesh{
		Positions: append([]r3.Vec(nil), m.Positions...),
		Normals:   append([]r3.Vec(nil), m.Normals...),
		Indices:   append([]int(nil), m.Indices...),
	}
}
