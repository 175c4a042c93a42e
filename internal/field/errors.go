package field

import (
	"errors"
	"fmt"
)

// Domain errors for force field runs.
var (
	// ErrInvalidConfiguration indicates a bad electron count or option value.
	ErrInvalidConfiguration = errors.New("field: invalid configuration")

	// ErrDegenerateConfiguration indicates two electrons share a position, so
	// the force between them is undefined.
	ErrDegenerateConfiguration = errors.New("field: degenerate configuration (coincident electrons)")
)

// DegenerateError wraps ErrDegenerateConfiguration with the offending pair.
type DegenerateError struct {
	I, J int
	X, Y float64
}

func (e *DegenerateError) Error() string {
	return fmt.Sprintf("electrons %d and %d coincide at (%.4f, %.4f)", e.I, e.J, e.X, e.Y)
}

func (e *DegenerateError) Unwrap() error {
	return ErrDegenerateConfiguration
}

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfiguration, fmt.Sprintf(format, args...))
}
