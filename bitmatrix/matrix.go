package bitmatrix

import (
	"fmt"
	"math/bits"
	"strings"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/hupe1980/framesim/internal/mem"
	"github.com/hupe1980/framesim/internal/simd"
	"github.com/hupe1980/framesim/rng"
)

// BlockWords is the number of uint64 words per row block (512 bits).
const BlockWords = mem.WordsPerLine

// BlockBits is the number of bits per row block.
const BlockBits = BlockWords * 64

// Matrix is a dense rows × cols bit matrix with block-padded rows.
type Matrix struct {
	rows   int
	cols   int
	stride int // words per row, a multiple of BlockWords
	words  []uint64
}

// New creates an all-false matrix.
func New(rows, cols int) *Matrix {
	if rows < 0 || cols < 0 {
		panic(fmt.Sprintf("bitmatrix: invalid shape %d×%d", rows, cols))
	}
	stride := ((cols + BlockBits - 1) / BlockBits) * BlockWords
	return &Matrix{
		rows:   rows,
		cols:   cols,
		stride: stride,
		words:  mem.AllocAlignedUint64(rows * stride),
	}
}

// Rows returns the number of rows.
func (m *Matrix) Rows() int { return m.rows }

// Cols returns the number of columns.
func (m *Matrix) Cols() int { return m.cols }

// Stride returns the number of words backing each row.
func (m *Matrix) Stride() int { return m.stride }

// Bytes returns the size of the backing storage in bytes.
func (m *Matrix) Bytes() int64 { return int64(len(m.words)) * 8 }

// Row returns the backing words of a row. Writes through the slice must
// keep padding bits (columns >= Cols) zero.
func (m *Matrix) Row(r int) []uint64 {
	m.checkRow(r)
	off := r * m.stride
	return m.words[off : off+m.stride : off+m.stride]
}

// Get returns the cell at (r, c).
func (m *Matrix) Get(r, c int) bool {
	m.checkCol(c)
	return m.Row(r)[c>>6]>>(uint(c)&63)&1 == 1
}

// Set assigns the cell at (r, c).
func (m *Matrix) Set(r, c int, v bool) {
	m.checkCol(c)
	row := m.Row(r)
	bit := uint64(1) << (uint(c) & 63)
	if v {
		row[c>>6] |= bit
	} else {
		row[c>>6] &^= bit
	}
}

// XorRowInto performs row[dst] ^= row[src].
func (m *Matrix) XorRowInto(dst, src int) {
	simd.XorWords(m.Row(dst), m.Row(src))
}

// OrRowInto performs row[dst] |= row[src].
func (m *Matrix) OrRowInto(dst, src int) {
	simd.OrWords(m.Row(dst), m.Row(src))
}

// AndRow performs row[r] &= row[mask].
func (m *Matrix) AndRow(r, mask int) {
	simd.AndWords(m.Row(r), m.Row(mask))
}

// AndNotRow performs row[r] &= ^row[mask].
func (m *Matrix) AndNotRow(r, mask int) {
	simd.AndNotWords(m.Row(r), m.Row(mask))
}

// NotRow inverts every cell of a row.
func (m *Matrix) NotRow(r int) {
	row := m.Row(r)
	simd.NotWords(row)
	m.clearPadding(row)
}

// SwapRows exchanges two rows.
func (m *Matrix) SwapRows(a, b int) {
	if a == b {
		m.checkRow(a)
		return
	}
	simd.SwapWords(m.Row(a), m.Row(b))
}

// CopyRow overwrites row[dst] with row[src].
func (m *Matrix) CopyRow(dst, src int) {
	copy(m.Row(dst), m.Row(src))
}

// ClearRow sets every cell of a row to false.
func (m *Matrix) ClearRow(r int) {
	clear(m.Row(r))
}

// Randomize sets each cell of a row independently true with probability p.
func (m *Matrix) Randomize(r int, p float64, src rng.Source) {
	src.FillBernoulli(m.Row(r), m.cols, p)
}

// RowPopcount returns the number of true cells in a row.
func (m *Matrix) RowPopcount(r int) int {
	return simd.PopcountWords(m.Row(r))
}

// Popcount returns the number of true cells in the matrix.
func (m *Matrix) Popcount() int {
	return simd.PopcountWords(m.words)
}

// RowBitmap returns the set of columns that are true in a row.
func (m *Matrix) RowBitmap(r int) *roaring.Bitmap {
	row := m.Row(r)
	cols := make([]uint32, 0, simd.PopcountWords(row))
	for w, word := range row {
		for word != 0 {
			cols = append(cols, uint32(w*64+bits.TrailingZeros64(word)))
			word &= word - 1
		}
	}
	rb := roaring.New()
	rb.AddMany(cols)
	return rb
}

// Equal reports whether both matrices have the same shape and cells.
func (m *Matrix) Equal(other *Matrix) bool {
	if other == nil || m.rows != other.rows || m.cols != other.cols {
		return false
	}
	for i := range m.words {
		if m.words[i] != other.words[i] {
			return false
		}
	}
	return true
}

// Clone returns a deep copy.
func (m *Matrix) Clone() *Matrix {
	out := New(m.rows, m.cols)
	copy(out.words, m.words)
	return out
}

// Transposed returns a new cols × rows matrix with cell (c, r) = m(r, c).
func (m *Matrix) Transposed() *Matrix {
	out := New(m.cols, m.rows)
	for r := 0; r < m.rows; r++ {
		row := m.Row(r)
		bit := uint64(1) << (uint(r) & 63)
		for w, word := range row {
			for word != 0 {
				c := w*64 + bits.TrailingZeros64(word)
				out.words[c*out.stride+r>>6] |= bit
				word &= word - 1
			}
		}
	}
	return out
}

// SetColumns copies all columns of src into m starting at column offset.
// Both matrices must have the same number of rows.
func (m *Matrix) SetColumns(offset int, src *Matrix) {
	if src.rows != m.rows || offset < 0 || offset+src.cols > m.cols {
		panic(fmt.Sprintf("bitmatrix: cannot place %d×%d at column %d of %d×%d",
			src.rows, src.cols, offset, m.rows, m.cols))
	}
	if offset&63 == 0 {
		full := src.cols >> 6
		rem := uint(src.cols & 63)
		for r := 0; r < m.rows; r++ {
			dst := m.Row(r)[offset>>6:]
			s := src.Row(r)
			copy(dst[:full], s[:full])
			if rem != 0 {
				mask := uint64(1)<<rem - 1
				dst[full] = dst[full]&^mask | s[full]&mask
			}
		}
		return
	}
	for r := 0; r < m.rows; r++ {
		srow := src.Row(r)
		for w, word := range srow {
			for word != 0 {
				m.Set(r, offset+w*64+bits.TrailingZeros64(word), true)
				word &= word - 1
			}
		}
	}
}

// RowString renders a row as '0'/'1' characters, one per column.
func (m *Matrix) RowString(r int) string {
	var sb strings.Builder
	sb.Grow(m.cols)
	for c := 0; c < m.cols; c++ {
		if m.Get(r, c) {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}

// String renders the matrix one row per line.
func (m *Matrix) String() string {
	var sb strings.Builder
	for r := 0; r < m.rows; r++ {
		sb.WriteString(m.RowString(r))
		sb.WriteByte('\n')
	}
	return sb.String()
}

func (m *Matrix) clearPadding(row []uint64) {
	full := m.cols >> 6
	if rem := m.cols & 63; rem != 0 {
		row[full] &= (1 << uint(rem)) - 1
		full++
	}
	clear(row[full:])
}

func (m *Matrix) checkRow(r int) {
	if uint(r) >= uint(m.rows) {
		panic(fmt.Sprintf("bitmatrix: row %d out of range [0, %d)", r, m.rows))
	}
}

func (m *Matrix) checkCol(c int) {
	if uint(c) >= uint(m.cols) {
		panic(fmt.Sprintf("bitmatrix: column %d out of range [0, %d)", c, m.cols))
	}
}
