// Package sculpt grows and repairs closed triangle meshes one sample point
// at a time.
package sculpt

import (
	"fmt"
	"io"
	"log"

	"github.com/google/uuid"
	"github.com/soypat/sculpt/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

// Inserter is an editing session folding sample points into a surface.
type Inserter interface {
	// Insert folds p into the surface. In preview mode the would-be patch is
	// returned and nothing is committed.
	Insert(p r3.Vec, preview bool) (*Update, error)
	// Mesh returns the export of the committed surface.
	Mesh() Mesh
	// Surface returns the committed surface. It must not be modified.
	Surface() *Surface
}

var _ Inserter = (*Session)(nil)

// Update describes the outcome of an insertion.
type Update struct {
	// Vertex is the id the point was registered with. In preview mode the
	// registration is discarded along with the rest of the patch.
	Vertex VertexID
	// Added are the new triangles present after the insertion.
	Added []Triangle
	// Removed is the number of previously committed triangles the insertion
	// took out.
	Removed int
	// Preview is the export of Added.
	Preview Mesh
	// Committed is false for previews.
	Committed bool
}

// Session is the Inserter built by New. The Strategy and gap filling are
// selected by the session's Config.
type Session struct {
	id       uuid.UUID
	cfg      Config
	strategy Strategy
	refiner  *Refiner
	log      *log.Logger

	surface *Surface
	mesh    Mesh
}

// New validates cfg and starts a session on the configured seed.
func New(cfg Config) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Bounds == "" {
		cfg.Bounds = BoundsHalfPlane
	}
	if len(cfg.Seed.Points) == 0 && len(cfg.Seed.Faces) == 0 {
		cfg.Seed = Cube()
	}
	sess := &Session{
		id:  uuid.New(),
		cfg: cfg,
	}
	dst, prefix, flags := io.Discard, "", 0
	if cfg.Log != nil {
		dst, prefix, flags = cfg.Log.Writer(), cfg.Log.Prefix(), cfg.Log.Flags()
	}
	sess.log = log.New(dst, fmt.Sprintf("%ssculpt %s ", prefix, sess.id.String()[:8]), flags)

	switch cfg.Mode {
	case ModeHull:
		sess.strategy = HullBuilder{}
	case ModeRemesh:
		sess.strategy = Remesher{Margin: cfg.Margin, Bounds: cfg.Bounds}
	}
	if cfg.Refine {
		sess.refiner = &Refiner{FlexDist: cfg.FlexDist, Bounds: cfg.Bounds}
	}
	if err := sess.Reset(); err != nil {
		return nil, err
	}
	return sess, nil
}

// Reset discards every insertion and restarts from the seed.
func (sess *Session) Reset() error {
	s, err := sess.cfg.Seed.Build()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrConfig, err)
	}
	if !s.Closed() {
		sess.log.Printf("seed has %d open edges", len(s.OpenEdges()))
	}
	sess.surface = s
	sess.mesh = s.Export()
	sess.log.Printf("%s session on %d triangles", sess.cfg.Mode, s.Len())
	return nil
}

// ID returns the session identifier prefixed to log messages.
func (sess *Session) ID() uuid.UUID { return sess.id }

// Config returns the configuration the session was built with.
func (sess *Session) Config() Config { return sess.cfg }

// Mesh returns the export of the committed surface. The returned buffers
// are shared and must not be modified.
func (sess *Session) Mesh() Mesh { return sess.mesh }

// Surface returns the committed surface. It must not be modified.
func (sess *Session) Surface() *Surface { return sess.surface }

// Insert registers p and folds it into a copy of the committed surface. The
// copy replaces the committed surface unless preview is set or the result
// fails validation, in which case the committed surface is left untouched.
func (sess *Session) Insert(p r3.Vec, preview bool) (*Update, error) {
	if !d3.Finite(p) {
		return nil, fmt.Errorf("%w: point %v is not finite", ErrDegenerate, p)
	}
	work := sess.surface.Clone()
	v := work.AddVertex(p)
	patch, err := sess.strategy.Apply(work, v)
	if err != nil {
		sess.log.Printf("insert %v: %v", p, err)
		return nil, err
	}
	if sess.refiner != nil {
		patch.merge(sess.refiner.Refine(work))
	}
	if err := validate(sess.surface, work); err != nil {
		sess.log.Printf("insert %v: %v", p, err)
		return nil, errMsg(err, "insertion rejected")
	}

	added := liveUnique(work, patch.Added)
	upd := &Update{
		Vertex:    v.ID,
		Added:     make([]Triangle, len(added)),
		Removed:   sess.surface.Len() + len(added) - work.Len(),
		Preview:   work.ExportTriangles(added),
		Committed: !preview,
	}
	for i, id := range added {
		upd.Added[i] = work.Triangle(id)
		if upd.Added[i].Degenerate() {
			sess.log.Printf("insert %v: degenerate triangle %v", p, upd.Added[i].V)
		}
	}
	if preview {
		return upd, nil
	}
	sess.surface = work
	sess.mesh = work.Export()
	return upd, nil
}

// validate checks the edited surface after against the committed surface
// before. A closed surface must stay closed and no edge may be shared by
// more than two triangles.
func validate(before, after *Surface) error {
	if !after.Manifold() {
		return fmt.Errorf("%w: %d edges shared by more than two triangles", ErrTopology, after.overfull)
	}
	if before.Closed() && !after.Closed() {
		return fmt.Errorf("%w: %d open edges left behind", ErrTopology, after.open)
	}
	return nil
}

// liveUnique returns the ids still alive in s, dropping repeats.
func liveUnique(s *Surface, ids []TriangleID) []TriangleID {
	seen := make(map[TriangleID]bool, len(ids))
	var live []TriangleID
	for _, id := range ids {
		if seen[id] || !s.Alive(id) {
			continue
		}
		seen[id] = true
		live = append(live, id)
	}
	return live
}
