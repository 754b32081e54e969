package frame

import (
	"github.com/hupe1980/framesim/bitmatrix"
	"github.com/hupe1980/framesim/internal/mem"
	"github.com/hupe1980/framesim/rng"
)

type config struct {
	gauge bool
}

// Option configures a Simulator.
type Option func(*config)

// WithGaugeRandomization makes measurements and resets multiply the frame by
// a random element of the post-measurement stabilizer (for example a random
// Z after a Z-basis measurement) and start every qubit with a random Z
// gauge. This models collapse, so outcomes that are
// random in the ideal circuit come out random, provided the reference vector
// is itself a valid noiseless sample. Off by default; without it a noiseless
// run reproduces the reference exactly.
func WithGaugeRandomization() Option {
	return func(c *config) {
		c.gauge = true
	}
}

// Simulator owns the X and Z frame matrices and the measurement record.
type Simulator struct {
	numQubits  int
	numSamples int

	xs     *bitmatrix.Matrix
	zs     *bitmatrix.Matrix
	record *bitmatrix.Matrix

	recorded int
	rng      rng.Source
	gauge    bool

	// scratch rows, one frame row wide
	mask []uint64
	tmp  []uint64
}

// New creates a simulator with all-identity frames.
//
// numQubits and numSamples fix the frame shape for the simulator's life;
// measurementCapacity bounds the number of measurement results it can
// record. r is used for all noise and is never shared implicitly.
func New(numQubits, numSamples, measurementCapacity int, r rng.Source, opts ...Option) *Simulator {
	if numQubits < 0 || numSamples < 0 || measurementCapacity < 0 {
		violate("New", "negative size (qubits=%d samples=%d measurements=%d)",
			numQubits, numSamples, measurementCapacity)
	}
	if r == nil {
		violate("New", "nil random source")
	}

	var cfg config
	for _, fn := range opts {
		if fn != nil {
			fn(&cfg)
		}
	}

	xs := bitmatrix.New(numQubits, numSamples)
	s := &Simulator{
		numQubits:  numQubits,
		numSamples: numSamples,
		xs:         xs,
		zs:         bitmatrix.New(numQubits, numSamples),
		record:     bitmatrix.New(measurementCapacity, numSamples),
		rng:        r,
		gauge:      cfg.gauge,
		mask:       mem.AllocAlignedUint64(xs.Stride()),
		tmp:        mem.AllocAlignedUint64(xs.Stride()),
	}
	if s.gauge {
		s.randomizeZ()
	}
	return s
}

// randomizeZ puts every qubit into a random element of the |0> stabilizer
// group, which is the gauge freedom of a fresh simulator.
func (s *Simulator) randomizeZ() {
	for q := 0; q < s.numQubits; q++ {
		s.zs.Randomize(q, 0.5, s.rng)
	}
}

// NumQubits returns the number of frame rows.
func (s *Simulator) NumQubits() int { return s.numQubits }

// NumSamples returns the number of frame columns.
func (s *Simulator) NumSamples() int { return s.numSamples }

// NumRecorded returns how many measurement rows have been written.
func (s *Simulator) NumRecorded() int { return s.recorded }

// XS returns the X frame matrix. Callers must not retain it past the
// simulator's life or mutate it concurrently with operations.
func (s *Simulator) XS() *bitmatrix.Matrix { return s.xs }

// ZS returns the Z frame matrix.
func (s *Simulator) ZS() *bitmatrix.Matrix { return s.zs }

// Record returns the measurement record, [capacity × samples].
func (s *Simulator) Record() *bitmatrix.Matrix { return s.record }

// Bytes returns the memory held by the frame and record matrices.
func (s *Simulator) Bytes() int64 {
	return s.xs.Bytes() + s.zs.Bytes() + s.record.Bytes()
}

// Clear returns the simulator to identity frames and an empty record,
// keeping its allocations and random source.
func (s *Simulator) Clear() {
	for q := 0; q < s.numQubits; q++ {
		s.xs.ClearRow(q)
		s.zs.ClearRow(q)
	}
	if s.gauge {
		s.randomizeZ()
	}
	for m := 0; m < s.recorded; m++ {
		s.record.ClearRow(m)
	}
	s.recorded = 0
}

func (s *Simulator) checkTargets(op string, targets []int, arity int) {
	if arity == 2 && len(targets)%2 != 0 {
		violate(op, "odd target count %d for a two-qubit operation", len(targets))
	}
	for _, q := range targets {
		if uint(q) >= uint(s.numQubits) {
			violate(op, "qubit %d out of range [0, %d)", q, s.numQubits)
		}
	}
}

func checkProbability(op string, p float64) {
	if !(p >= 0 && p <= 1) {
		violate(op, "probability %v outside [0, 1]", p)
	}
}
