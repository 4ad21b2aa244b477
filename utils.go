package sculpt

import (
	"errors"
	"fmt"
	"runtime"
)

const (
	// epsilon guards normalisation and near-zero cross products.
	epsilon = 1e-12
)

var (
	// ErrDegenerate is returned when an insertion would build its patch
	// from a boundary that cannot enclose the new point, such as a hull
	// insertion that removes faces but opens fewer than three edges.
	ErrDegenerate = errors.New("degenerate insertion")
	// ErrTopology is returned when an insertion would leave the surface with
	// open or non-manifold edges where it previously had none.
	ErrTopology = errors.New("topological inconsistency")
	// ErrConfig is returned for invalid session configuration.
	ErrConfig = errors.New("invalid config")
)

// errMsg returns an error wrapping err annotated with the caller's function
// name and line number.
func errMsg(err error, msg string) error {
	pc, _, line, ok := runtime.Caller(1)
	if !ok {
		return fmt.Errorf("?: %s: %w", msg, err)
	}
	fn := runtime.FuncForPC(pc)
	return fmt.Errorf("%s line %d: %s: %w", fn.Name(), line, msg, err)
}
