package sculpt

import (
	"fmt"
	"log"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Mode selects the Strategy a Session folds new points in with.
type Mode string

const (
	// ModeHull grows a convex hull: every face visible from the new
	// point is replaced by a fan joining the point to the visible region's
	// boundary.
	ModeHull Mode = "hull"
	// ModeRemesh replaces only the faces within Margin of the new point.
	ModeRemesh Mode = "remesh"
)

// Bounds selects the predicate deciding whether a point's in-plane
// projection falls within a triangle.
type Bounds string

const (
	// BoundsHalfPlane tests the point against each edge's half-plane, using
	// the opposite corner to pick the inner side. It is the exact
	// point-in-triangle test.
	BoundsHalfPlane Bounds = "halfplane"
	// BoundsEdgeExtents requires the projection of the point onto each
	// edge's line to land between that edge's endpoints.
	BoundsEdgeExtents Bounds = "extents"
)

// Config configures an editing session. It is treated as immutable for
// the lifetime of the Inserter built from it.
type Config struct {
	Mode Mode `yaml:"mode"`
	// Margin is the plane and edge proximity below which a triangle is
	// affected by a new point. Used by ModeRemesh.
	Margin float64 `yaml:"margin"`
	// Refine enables the gap-fill pass after every insertion.
	Refine bool `yaml:"refine"`
	// FlexDist is the plane proximity below which a free point is pulled
	// into a triangle during gap filling.
	FlexDist float64 `yaml:"flex_dist"`
	// Bounds is the in-triangle predicate used by remeshing and gap filling.
	Bounds Bounds `yaml:"bounds"`
	// Seed is the initial shape. A zero Seed selects Cube.
	Seed Seed `yaml:"-"`
	// Log receives diagnostics. A nil Log discards them.
	Log *log.Logger `yaml:"-"`
}

// DefaultConfig returns the configuration of a margin remesh session on the
// unit cube with gap filling enabled. Insertions whose affected faces do not
// form a single patch are rejected with ErrTopology; with these defaults
// that is about one in eight samples taken close to the surface, and about
// half of them with BoundsEdgeExtents.
func DefaultConfig() Config {
	return Config{
		Mode:     ModeRemesh,
		Margin:   0.05,
		Refine:   true,
		FlexDist: 0.02,
		Bounds:   BoundsHalfPlane,
	}
}

// Validate checks the configuration values are usable.
func (cfg Config) Validate() error {
	switch cfg.Mode {
	case ModeHull:
	case ModeRemesh:
		if !(cfg.Margin > 0) || math.IsInf(cfg.Margin, 0) {
			return fmt.Errorf("%w: remesh margin must be positive and finite, got %g", ErrConfig, cfg.Margin)
		}
	default:
		return fmt.Errorf("%w: unknown mode %q", ErrConfig, cfg.Mode)
	}
	switch cfg.Bounds {
	case BoundsHalfPlane, BoundsEdgeExtents, "":
	default:
		return fmt.Errorf("%w: unknown bounds predicate %q", ErrConfig, cfg.Bounds)
	}
	if cfg.Refine && (!(cfg.FlexDist > 0) || math.IsInf(cfg.FlexDist, 0)) {
		return fmt.Errorf("%w: flex distance must be positive and finite when refining, got %g", ErrConfig, cfg.FlexDist)
	}
	return nil
}

// within returns the in-triangle predicate selected by b.
func (b Bounds) within(t Triangle, p r3.Vec) bool {
	if b == BoundsEdgeExtents {
		return t.WithinEdgeExtents(p)
	}
	return t.ContainsProjection(p)
}
