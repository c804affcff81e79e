package sim

import (
	"errors"
	"fmt"
)

var (
	// ErrObjectNotFound indicates an index or id that is not in the registry.
	ErrObjectNotFound = errors.New("sim: object not found")

	// ErrBelowMinScale indicates a split whose children would be smaller
	// than the configured floor.
	ErrBelowMinScale = errors.New("sim: split below minimum scale")

	// ErrPopulationCap indicates a split that would exceed max objects.
	ErrPopulationCap = errors.New("sim: population cap reached")

	// ErrDuplicateID indicates an explicit id that is already live.
	ErrDuplicateID = errors.New("sim: duplicate object id")

	ErrInvalidRun = errors.New("sim: invalid run configuration")
)

// SplitError wraps a refused split with the object it was aimed at.
type SplitError struct {
	ObjectID int
	Scale    float64
	Wrapped  error
}

func (e *SplitError) Error() string {
	return fmt.Sprintf("split object %d (scale %.4f): %v", e.ObjectID, e.Scale, e.Wrapped)
}

func (e *SplitError) Unwrap() error {
	return e.Wrapped
}
