package framesim

import (
	"context"
	"errors"
	"fmt"

	"github.com/hupe1980/framesim/circuit"
)

var (
	// ErrInvalidSamples is returned when the sample count is negative.
	ErrInvalidSamples = errors.New("number of samples must not be negative")

	// ErrInvalidCircuit is returned when a circuit is nil or fails validation.
	ErrInvalidCircuit = errors.New("invalid circuit")

	// ErrReferenceLength is the cause of every ErrReferenceMismatch.
	ErrReferenceLength = errors.New("reference vector length does not match measurement count")

	// ErrInvalidOption is returned for out-of-range option values.
	ErrInvalidOption = errors.New("invalid option")

	// ErrCanceled is returned when a run is interrupted by its context.
	ErrCanceled = errors.New("sampling canceled")
)

// ErrReferenceMismatch indicates a reference vector whose length differs
// from the circuit's measurement count.
//
// errors.Is(err, ErrReferenceLength) reports true for it.
type ErrReferenceMismatch struct {
	Expected int
	Actual   int
	cause    error
}

func (e *ErrReferenceMismatch) Error() string {
	return fmt.Sprintf("reference mismatch: circuit measures %d, reference has %d", e.Expected, e.Actual)
}

func (e *ErrReferenceMismatch) Unwrap() error { return e.cause }

func translateError(err error) error {
	if err == nil {
		return nil
	}

	var ve *circuit.ValidationError
	if errors.As(err, &ve) {
		return fmt.Errorf("%w: %w", ErrInvalidCircuit, err)
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", ErrCanceled, err)
	}

	return err
}
