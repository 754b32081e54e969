package recordio

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math/bits"
	"strconv"

	"github.com/hupe1980/framesim/bitmatrix"
)

// Write encodes m ([measurements × samples]) one sample at a time.
// FormatB8 rejects a record with zero measurements, since its samples would
// occupy no bytes and the sample count could not be read back.
func Write(w io.Writer, m *bitmatrix.Matrix, f Format, c Compression) (err error) {
	if int(f) >= len(formatNames) {
		return fmt.Errorf("%w: %s", ErrUnknownFormat, f)
	}
	if f == FormatB8 && m.Rows() == 0 {
		return ErrNoMeasurements
	}
	cw, err := NewWriter(w, c)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, cw.Close())
	}()

	bw := bufio.NewWriter(cw)
	samples := m.Transposed()
	numMeasurements := m.Rows()
	var line []byte

	for k := 0; k < samples.Rows(); k++ {
		row := samples.Row(k)
		line = line[:0]
		switch f {
		case Format01:
			for i := 0; i < numMeasurements; i++ {
				line = append(line, '0'+byte(row[i>>6]>>(uint(i)&63)&1))
			}
			line = append(line, '\n')
		case FormatB8:
			for i := 0; i < (numMeasurements+7)/8; i++ {
				line = append(line, byte(row[i>>3]>>(8*(uint(i)&7))))
			}
		case FormatHits:
			it := samples.RowBitmap(k).Iterator()
			for first := true; it.HasNext(); first = false {
				if !first {
					line = append(line, ',')
				}
				line = strconv.AppendUint(line, uint64(it.Next()), 10)
			}
			line = append(line, '\n')
		}
		if _, err := bw.Write(line); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Read decodes a record written by Write. numMeasurements must match the
// writer's matrix, since none of the formats store it.
func Read(r io.Reader, f Format, c Compression, numMeasurements int) (*bitmatrix.Matrix, error) {
	if numMeasurements < 0 {
		return nil, fmt.Errorf("%w: negative measurement count %d", ErrMalformed, numMeasurements)
	}
	cr, err := NewReader(r, c)
	if err != nil {
		return nil, err
	}
	defer cr.Close()

	var samples [][]uint64
	switch f {
	case Format01, FormatHits:
		samples, err = readLines(cr, f, numMeasurements)
	case FormatB8:
		if numMeasurements == 0 {
			return nil, ErrNoMeasurements
		}
		samples, err = readB8(cr, numMeasurements)
	default:
		err = fmt.Errorf("%w: %s", ErrUnknownFormat, f)
	}
	if err != nil {
		return nil, err
	}

	out := bitmatrix.New(numMeasurements, len(samples))
	for k, words := range samples {
		for w, word := range words {
			for ; word != 0; word &= word - 1 {
				out.Set(w*64+bits.TrailingZeros64(word), k, true)
			}
		}
	}
	return out, nil
}

func readLines(r io.Reader, f Format, numMeasurements int) ([][]uint64, error) {
	var samples [][]uint64
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), max(numMeasurements+2, 64*1024))
	for sc.Scan() {
		line := sc.Bytes()
		words := make([]uint64, (numMeasurements+63)/64)
		lineNo := len(samples) + 1

		if f == Format01 {
			if len(line) != numMeasurements {
				return nil, fmt.Errorf("%w: line %d has %d outcomes, want %d", ErrMalformed, lineNo, len(line), numMeasurements)
			}
			for i, ch := range line {
				switch ch {
				case '0':
				case '1':
					words[i>>6] |= 1 << (uint(i) & 63)
				default:
					return nil, fmt.Errorf("%w: line %d: unexpected %q", ErrMalformed, lineNo, ch)
				}
			}
		} else if len(line) > 0 {
			for _, field := range bytes.Split(line, []byte{','}) {
				i, err := strconv.Atoi(string(field))
				if err != nil || i < 0 || i >= numMeasurements {
					return nil, fmt.Errorf("%w: line %d: bad index %q", ErrMalformed, lineNo, field)
				}
				words[i>>6] |= 1 << (uint(i) & 63)
			}
		}
		samples = append(samples, words)
	}
	return samples, sc.Err()
}

func readB8(r io.Reader, numMeasurements int) ([][]uint64, error) {
	n := (numMeasurements + 7) / 8
	br := bufio.NewReader(r)
	buf := make([]byte, ((n+7)/8)*8)
	var samples [][]uint64
	for {
		clear(buf)
		_, err := io.ReadFull(br, buf[:n])
		if errors.Is(err, io.EOF) {
			return samples, nil
		}
		if err != nil {
			return nil, fmt.Errorf("%w: truncated sample %d: %w", ErrMalformed, len(samples), err)
		}
		if rem := numMeasurements & 7; rem != 0 && buf[n-1]>>rem != 0 {
			return nil, fmt.Errorf("%w: sample %d sets bits past measurement %d", ErrMalformed, len(samples), numMeasurements)
		}
		words := make([]uint64, len(buf)/8)
		for w := range words {
			words[w] = binary.LittleEndian.Uint64(buf[8*w:])
		}
		samples = append(samples, words)
	}
}
