package circuit

import "fmt"

// Code is a generated error-correction experiment.
type Code struct {
	Circuit *Circuit
	// Observable lists the measurement record rows whose parity is the
	// logical observable at the end of the experiment.
	Observable []int
	Distance   int
	Rounds     int
}

// RepetitionCode builds a bit-flip repetition code memory experiment.
//
// Data qubits sit at even indices and parity ancillas at odd indices of a
// line of 2d-1 qubits. Every round applies DEPOLARIZE1(p) to the data,
// extracts neighbour parities with CX (followed by DEPOLARIZE2(p)), measures
// and resets the ancillas. The data is measured at the end; the observable
// is data qubit 0.
func RepetitionCode(distance, rounds int, p float64) (*Code, error) {
	if distance < 2 {
		return nil, fmt.Errorf("%w: distance %d < 2", ErrInvalidTarget, distance)
	}
	if rounds < 1 {
		return nil, fmt.Errorf("%w: rounds %d < 1", ErrInvalidTarget, rounds)
	}

	n := 2*distance - 1
	data := make([]int, 0, distance)
	anc := make([]int, 0, distance-1)
	for q := 0; q < n; q++ {
		if q%2 == 0 {
			data = append(data, q)
		} else {
			anc = append(anc, q)
		}
	}

	left := make([]int, 0, 2*len(anc))
	right := make([]int, 0, 2*len(anc))
	for _, a := range anc {
		left = append(left, a-1, a)
		right = append(right, a+1, a)
	}

	c := New()
	c.Append(R, seq(n)...)
	for r := 0; r < rounds; r++ {
		c.appendNoise(Depolarize1, p, data)
		c.Append(CX, left...)
		c.appendNoise(Depolarize2, p, left)
		c.Append(CX, right...)
		c.appendNoise(Depolarize2, p, right)
		c.Append(M, anc...)
		c.Append(R, anc...)
	}
	first := c.NumMeasurements
	c.Append(M, data...)

	return &Code{Circuit: c, Observable: []int{first}, Distance: distance, Rounds: rounds}, nil
}

// UnrotatedSurfaceCode builds a distance-d unrotated surface code memory
// experiment with d rounds of stabilizer measurement.
//
// Qubits live on a (2d-1)×(2d-1) grid, index row*(2d-1)+col. Sites with
// even row+col hold data; odd rows with even cols hold X ancillas and even
// rows with odd cols hold Z ancillas. Noise follows the same pattern as
// RepetitionCode. The observable is the Z string on the data of column 0.
func UnrotatedSurfaceCode(distance int, p float64) (*Code, error) {
	if distance < 2 {
		return nil, fmt.Errorf("%w: distance %d < 2", ErrInvalidTarget, distance)
	}

	side := 2*distance - 1
	idx := func(r, c int) int { return r*side + c }

	var data, xAnc, zAnc, anc []int
	for r := 0; r < side; r++ {
		for c := 0; c < side; c++ {
			switch {
			case (r+c)%2 == 0:
				data = append(data, idx(r, c))
			case r%2 == 1:
				xAnc = append(xAnc, idx(r, c))
				anc = append(anc, idx(r, c))
			default:
				zAnc = append(zAnc, idx(r, c))
				anc = append(anc, idx(r, c))
			}
		}
	}

	// Interaction order per layer: X ancillas N,W,E,S and Z ancillas N,E,W,S.
	xDirs := [4][2]int{{-1, 0}, {0, -1}, {0, 1}, {1, 0}}
	zDirs := [4][2]int{{-1, 0}, {0, 1}, {0, -1}, {1, 0}}
	var layers [4][]int
	for l := 0; l < 4; l++ {
		for r := 0; r < side; r++ {
			for c := 0; c < side; c++ {
				if (r+c)%2 == 0 {
					continue
				}
				dirs := zDirs
				if r%2 == 1 {
					dirs = xDirs
				}
				nr, nc := r+dirs[l][0], c+dirs[l][1]
				if nr < 0 || nr >= side || nc < 0 || nc >= side {
					continue
				}
				if r%2 == 1 {
					layers[l] = append(layers[l], idx(r, c), idx(nr, nc))
				} else {
					layers[l] = append(layers[l], idx(nr, nc), idx(r, c))
				}
			}
		}
	}

	c := New()
	c.Append(R, seq(side*side)...)
	for round := 0; round < distance; round++ {
		c.appendNoise(Depolarize1, p, data)
		c.Append(H, xAnc...)
		for _, layer := range layers {
			c.Append(CX, layer...)
			c.appendNoise(Depolarize2, p, layer)
		}
		c.Append(H, xAnc...)
		c.Append(M, anc...)
		c.Append(R, anc...)
	}

	first := c.NumMeasurements
	c.Append(M, data...)

	var observable []int
	for i, q := range data {
		if q%side == 0 {
			observable = append(observable, first+i)
		}
	}

	return &Code{Circuit: c, Observable: observable, Distance: distance, Rounds: distance}, nil
}

func (c *Circuit) appendNoise(kind Kind, p float64, targets []int) {
	if p > 0 {
		c.AppendNoise(kind, p, targets...)
	}
}

func seq(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}
