package sculpt

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/spatial/r3"
)

// TriangleID addresses a slot in a Surface's triangle arena. IDs of removed
// triangles may be handed out again to triangles added later.
type TriangleID int32

// Surface is the live set of triangles together with the append-only vertex
// registry they reference. It maintains an edge to incident triangle multimap
// incrementally so closure can be checked without rescanning the surface.
//
// A Surface is not safe for concurrent use.
type Surface struct {
	verts []Vertex
	// uses counts live triangle corners referencing each vertex.
	uses []int32

	tris  []Triangle
	alive []bool
	free  []TriangleID
	live  int

	incident map[Edge][]TriangleID
	// open counts edges with incidence other than two.
	open int
	// overfull counts edges with more than two incident triangles.
	overfull int
}

// NewSurface returns an empty surface.
func NewSurface() *Surface {
	return &Surface{incident: make(map[Edge][]TriangleID)}
}

// AddVertex registers a new vertex at pos and returns it.
func (s *Surface) AddVertex(pos r3.Vec) Vertex {
	v := Vertex{ID: VertexID(len(s.verts)), Pos: pos}
	s.verts = append(s.verts, v)
	s.uses = append(s.uses, 0)
	return v
}

// Vertex returns the registered vertex with the given id.
func (s *Surface) Vertex(id VertexID) Vertex { return s.verts[id] }

// NumVertices returns the number of registered vertices, used or not.
func (s *Surface) NumVertices() int { return len(s.verts) }

// Vertices returns the vertex registry. The returned slice must not be modified.
func (s *Surface) Vertices() []Vertex { return s.verts }

// Used reports whether a live triangle references vertex id.
func (s *Surface) Used(id VertexID) bool { return s.uses[id] > 0 }

// Add inserts t into the surface and returns its id. The corners of t
// must be registered vertices.
func (s *Surface) Add(t Triangle) TriangleID {
	var id TriangleID
	if n := len(s.free); n > 0 {
		id = s.free[n-1]
		s.free = s.free[:n-1]
		s.tris[id] = t
		s.alive[id] = true
	} else {
		id = TriangleID(len(s.tris))
		s.tris = append(s.tris, t)
		s.alive = append(s.alive, true)
	}
	s.live++
	for _, v := range t.V {
		s.uses[v]++
	}
	for _, e := range t.Edges() {
		list := s.incident[e]
		s.trackIncidence(len(list), len(list)+1)
		s.incident[e] = append(list, id)
	}
	return id
}

// Remove deletes the triangle with the given id. It panics if the
// triangle is not live.
func (s *Surface) Remove(id TriangleID) {
	if !s.Alive(id) {
		panic(fmt.Sprintf("remove of dead triangle %d", id))
	}
	t := s.tris[id]
	for _, v := range t.V {
		s.uses[v]--
	}
	for _, e := range t.Edges() {
		list := s.incident[e]
		for i, tid := range list {
			if tid == id {
				list = append(list[:i], list[i+1:]...)
				break
			}
		}
		s.trackIncidence(len(list)+1, len(list))
		if len(list) == 0 {
			delete(s.incident, e)
		} else {
			s.incident[e] = list
		}
	}
	s.alive[id] = false
	s.tris[id] = Triangle{}
	s.free = append(s.free, id)
	s.live--
}

func (s *Surface) trackIncidence(before, after int) {
	if before != 0 && before != 2 {
		s.open--
	}
	if after != 0 && after != 2 {
		s.open++
	}
	if before > 2 {
		s.overfull--
	}
	if after > 2 {
		s.overfull++
	}
}

// Alive reports whether id addresses a live triangle.
func (s *Surface) Alive(id TriangleID) bool {
	return id >= 0 && int(id) < len(s.alive) && s.alive[id]
}

// Triangle returns the triangle with the given id. The result is the zero
// Triangle if id is not live.
func (s *Surface) Triangle(id TriangleID) Triangle { return s.tris[id] }

// Len returns the number of live triangles.
func (s *Surface) Len() int { return s.live }

// IDs returns the ids of all live triangles in ascending order.
func (s *Surface) IDs() []TriangleID {
	ids := make([]TriangleID, 0, s.live)
	for i, ok := range s.alive {
		if ok {
			ids = append(ids, TriangleID(i))
		}
	}
	return ids
}

// Triangles returns all live triangles in ascending id order.
func (s *Surface) Triangles() []Triangle {
	tris := make([]Triangle, 0, s.live)
	for i, ok := range s.alive {
		if ok {
			tris = append(tris, s.tris[i])
		}
	}
	return tris
}

// Incident returns the ids of the live triangles sharing edge e.
func (s *Surface) Incident(e Edge) []TriangleID {
	return s.incident[e]
}

// NumEdges returns the number of distinct edges of the live triangles.
func (s *Surface) NumEdges() int { return len(s.incident) }

// Closed reports whether every edge is shared by exactly two triangles.
// An empty surface is closed.
func (s *Surface) Closed() bool { return s.open == 0 }

// Manifold reports whether no edge is shared by more than two triangles.
func (s *Surface) Manifold() bool { return s.overfull == 0 }

// OpenEdges returns the edges whose incidence is not two, sorted by vertex ids.
func (s *Surface) OpenEdges() []Edge {
	var edges []Edge
	for e, list := range s.incident {
		if len(list) != 2 {
			edges = append(edges, e)
		}
	}
	sortEdges(edges)
	return edges
}

// Centroid returns the mean position of the vertices in use. It is the
// origin for an empty surface.
func (s *Surface) Centroid() r3.Vec {
	var sum r3.Vec
	n := 0
	for i, v := range s.verts {
		if s.uses[i] > 0 {
			sum = r3.Add(sum, v.Pos)
			n++
		}
	}
	if n == 0 {
		return r3.Vec{}
	}
	return r3.Scale(1/float64(n), sum)
}

// Clone returns a deep copy of the surface. Edits to the copy are not
// observable through s.
func (s *Surface) Clone() *Surface {
	c := &Surface{
		verts:    append([]Vertex(nil), s.verts...),
		uses:     append([]int32(nil), s.uses...),
		tris:     append([]Triangle(nil), s.tris...),
		alive:    append([]bool(nil), s.alive...),
		free:     append([]TriangleID(nil), s.free...),
		live:     s.live,
		incident: make(map[Edge][]TriangleID, len(s.incident)),
		open:     s.open,
		overfull: s.overfull,
	}
	for e, list := range s.incident {
		c.incident[e] = append([]TriangleID(nil), list...)
	}
	return c
}

func sortEdges(edges []Edge) {
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].A != edges[j].A {
			return edges[i].A < edges[j].A
		}
		return edges[i].B < edges[j].B
	})
}
