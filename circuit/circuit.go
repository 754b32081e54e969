package circuit

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Operation is one instruction: a kind applied to its targets.
type Operation struct {
	Kind    Kind
	Targets []int
	// Probability parameterizes noise channels and is zero otherwise.
	Probability float64
}

// String renders the operation in circuit text format.
func (op Operation) String() string {
	var sb strings.Builder
	sb.WriteString(op.Kind.String())
	if op.Kind.TakesProbability() {
		sb.WriteByte('(')
		sb.WriteString(strconv.FormatFloat(op.Probability, 'g', -1, 64))
		sb.WriteByte(')')
	}
	for _, t := range op.Targets {
		sb.WriteByte(' ')
		sb.WriteString(strconv.Itoa(t))
	}
	return sb.String()
}

// Circuit is an ordered operation list plus the sizes a simulator needs.
type Circuit struct {
	// NumQubits is one more than the largest target index seen.
	NumQubits int
	// NumMeasurements is the total number of measured targets.
	NumMeasurements int
	Ops             []Operation
}

// New returns an empty circuit.
func New() *Circuit {
	return &Circuit{}
}

// Append adds a gate, measurement or reset. It returns c for chaining.
// Noise channels go through AppendNoise.
func (c *Circuit) Append(kind Kind, targets ...int) *Circuit {
	return c.add(Operation{Kind: kind, Targets: slices.Clone(targets)})
}

// AppendNoise adds a noise channel with probability p.
func (c *Circuit) AppendNoise(kind Kind, p float64, targets ...int) *Circuit {
	return c.add(Operation{Kind: kind, Targets: slices.Clone(targets), Probability: p})
}

func (c *Circuit) add(op Operation) *Circuit {
	if len(op.Targets) == 0 {
		return c
	}
	for _, t := range op.Targets {
		if t+1 > c.NumQubits {
			c.NumQubits = t + 1
		}
	}
	if op.Kind.Class() == ClassMeasure {
		c.NumMeasurements += len(op.Targets)
	}
	c.Ops = append(c.Ops, op)
	return c
}

// Validate checks every operation against the circuit's qubit count.
// It returns a *ValidationError for the first offending operation.
func (c *Circuit) Validate() error {
	measurements := 0
	for i, op := range c.Ops {
		if err := op.validate(c.NumQubits); err != nil {
			return &ValidationError{Index: i, Op: op.Kind.String(), cause: err}
		}
		if op.Kind.Class() == ClassMeasure {
			measurements += len(op.Targets)
		}
	}
	if measurements != c.NumMeasurements {
		return &ValidationError{Index: -1, cause: fmt.Errorf("%w: counted %d, declared %d",
			ErrMeasurementCount, measurements, c.NumMeasurements)}
	}
	return nil
}

func (op Operation) validate(numQubits int) error {
	if !op.Kind.Valid() {
		return fmt.Errorf("%w: kind %d", ErrUnknownOperation, op.Kind)
	}
	for _, t := range op.Targets {
		if t < 0 || t >= numQubits {
			return fmt.Errorf("%w: qubit %d not in [0, %d)", ErrInvalidTarget, t, numQubits)
		}
	}
	if op.Kind.Arity() == 2 {
		if len(op.Targets)%2 != 0 {
			return fmt.Errorf("%w: got %d", ErrOddTargets, len(op.Targets))
		}
		for k := 0; k < len(op.Targets); k += 2 {
			if op.Targets[k] == op.Targets[k+1] {
				return fmt.Errorf("%w: qubit %d", ErrDuplicateTarget, op.Targets[k])
			}
		}
	}
	if op.Kind.TakesProbability() {
		if !(op.Probability >= 0 && op.Probability <= 1) {
			return fmt.Errorf("%w: %v", ErrInvalidProbability, op.Probability)
		}
	} else if op.Probability != 0 {
		return ErrUnexpectedProbability
	}
	return nil
}

// Stats counts operation applications by class.
type Stats struct {
	Gates        int
	Noise        int
	Measurements int
	Resets       int
}

// Stats returns per-class target counts (two-qubit pairs count once).
func (c *Circuit) Stats() Stats {
	var s Stats
	for _, op := range c.Ops {
		n := len(op.Targets)
		if op.Kind.Arity() == 2 {
			n /= 2
		}
		switch op.Kind.Class() {
		case ClassGate:
			s.Gates += n
		case ClassNoise:
			s.Noise += n
		case ClassMeasure:
			s.Measurements += n
		case ClassReset:
			s.Resets += n
		}
	}
	return s
}

// String renders the circuit in text format, one operation per line.
func (c *Circuit) String() string {
	var sb strings.Builder
	for _, op := range c.Ops {
		sb.WriteString(op.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}
