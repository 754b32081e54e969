package circuit

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownOperation is returned for names that do not resolve to a Kind.
	ErrUnknownOperation = errors.New("unknown operation")

	// ErrInvalidTarget is returned for negative or out-of-range qubit indices.
	ErrInvalidTarget = errors.New("invalid target")

	// ErrOddTargets is returned when a two-qubit operation has an odd target count.
	ErrOddTargets = errors.New("two-qubit operation needs an even number of targets")

	// ErrDuplicateTarget is returned when a two-qubit pair names one qubit twice.
	ErrDuplicateTarget = errors.New("two-qubit pair targets the same qubit")

	// ErrInvalidProbability is returned for probabilities outside [0, 1].
	ErrInvalidProbability = errors.New("probability outside [0, 1]")

	// ErrUnexpectedProbability is returned when a non-noise operation carries a probability.
	ErrUnexpectedProbability = errors.New("operation does not take a probability")

	// ErrMeasurementCount is returned when NumMeasurements disagrees with the operations.
	ErrMeasurementCount = errors.New("measurement count mismatch")

	// ErrSyntax is returned for malformed circuit text.
	ErrSyntax = errors.New("syntax error")
)

// ValidationError locates a failure inside a circuit.
//
// The underlying sentinel can be matched with errors.Is.
type ValidationError struct {
	// Index is the operation index, or -1 when parsing failed before an
	// operation was formed.
	Index int
	// Line is the 1-based source line for parsed circuits, 0 otherwise.
	Line int
	// Op is the operation name as written.
	Op    string
	cause error
}

func (e *ValidationError) Error() string {
	switch {
	case e.Line > 0:
		return fmt.Sprintf("circuit: line %d (%s): %v", e.Line, e.Op, e.cause)
	case e.Index >= 0:
		return fmt.Sprintf("circuit: operation %d (%s): %v", e.Index, e.Op, e.cause)
	default:
		return fmt.Sprintf("circuit: %v", e.cause)
	}
}

func (e *ValidationError) Unwrap() error { return e.cause }
