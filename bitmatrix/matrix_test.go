package bitmatrix

import (
	"math"
	"testing"
	"unsafe"

	"github.com/hupe1980/framesim/internal/mem"
	"github.com/hupe1980/framesim/rng"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	m := New(3, 1000)
	assert.Equal(t, 3, m.Rows())
	assert.Equal(t, 1000, m.Cols())
	assert.Equal(t, 16, m.Stride(), "1000 columns pad to two 512-bit blocks")
	assert.Equal(t, 0, m.Popcount())
	assert.Zero(t, uintptr(unsafe.Pointer(&m.Row(1)[0]))%mem.Alignment, "rows start on a cache line")

	empty := New(4, 0)
	assert.Equal(t, 0, empty.Stride())
	assert.Equal(t, 0, empty.RowPopcount(3))
}

func TestGetSet(t *testing.T) {
	m := New(2, 130)
	m.Set(1, 129, true)
	m.Set(0, 64, true)

	assert.True(t, m.Get(1, 129))
	assert.True(t, m.Get(0, 64))
	assert.False(t, m.Get(0, 129))

	m.Set(1, 129, false)
	assert.False(t, m.Get(1, 129))
	assert.Equal(t, 1, m.Popcount())
}

func TestContractViolations(t *testing.T) {
	m := New(2, 10)
	assert.Panics(t, func() { m.Row(2) })
	assert.Panics(t, func() { m.Row(-1) })
	assert.Panics(t, func() { m.Get(0, 10) })
	assert.Panics(t, func() { m.XorRowInto(0, 5) })
	assert.Panics(t, func() { New(-1, 3) })
}

func TestRowOps(t *testing.T) {
	m := New(3, 70)
	for _, c := range []int{0, 5, 69} {
		m.Set(0, c, true)
	}
	for _, c := range []int{5, 6} {
		m.Set(1, c, true)
	}

	t.Run("xor", func(t *testing.T) {
		x := m.Clone()
		x.XorRowInto(1, 0)
		assert.Equal(t, "1000001"+repeat('0', 62)+"1", x.RowString(1))
		x.XorRowInto(1, 0)
		assert.True(t, x.Equal(m), "xor is an involution")
	})

	t.Run("and", func(t *testing.T) {
		x := m.Clone()
		x.AndRow(1, 0)
		assert.Equal(t, 1, x.RowPopcount(1))
		assert.True(t, x.Get(1, 5))
	})

	t.Run("and not", func(t *testing.T) {
		x := m.Clone()
		x.AndNotRow(1, 0)
		assert.Equal(t, 1, x.RowPopcount(1))
		assert.True(t, x.Get(1, 6))
	})

	t.Run("or", func(t *testing.T) {
		x := m.Clone()
		x.OrRowInto(2, 0)
		x.OrRowInto(2, 1)
		assert.Equal(t, 4, x.RowPopcount(2))
	})

	t.Run("not keeps padding clear", func(t *testing.T) {
		x := m.Clone()
		x.NotRow(2)
		assert.Equal(t, 70, x.RowPopcount(2))
		x.NotRow(2)
		assert.Equal(t, 0, x.RowPopcount(2))
	})

	t.Run("swap", func(t *testing.T) {
		x := m.Clone()
		x.SwapRows(0, 1)
		assert.Equal(t, m.RowString(0), x.RowString(1))
		assert.Equal(t, m.RowString(1), x.RowString(0))
		x.SwapRows(2, 2)
		assert.Equal(t, 0, x.RowPopcount(2))
	})

	t.Run("copy and clear", func(t *testing.T) {
		x := m.Clone()
		x.CopyRow(2, 0)
		assert.Equal(t, x.RowString(0), x.RowString(2))
		x.ClearRow(0)
		assert.Equal(t, 0, x.RowPopcount(0))
	})
}

func TestRandomize(t *testing.T) {
	const cols = 100000
	m := New(2, cols)
	r := rng.New(1)

	m.Randomize(0, 0.25, r)
	got := float64(m.RowPopcount(0)) / cols
	assert.InDelta(t, 0.25, got, 6*math.Sqrt(0.25*0.75/cols))
	assert.Equal(t, 0, m.RowPopcount(1), "other rows untouched")

	m.Randomize(1, 1, r)
	assert.Equal(t, cols, m.RowPopcount(1), "padding stays clear")
}

func TestRowBitmap(t *testing.T) {
	m := New(1, 600)
	for _, c := range []int{3, 64, 511, 599} {
		m.Set(0, c, true)
	}
	rb := m.RowBitmap(0)
	assert.Equal(t, uint64(4), rb.GetCardinality())
	assert.Equal(t, []uint32{3, 64, 511, 599}, rb.ToArray())
}

func TestTransposed(t *testing.T) {
	m := New(3, 130)
	m.Set(0, 0, true)
	m.Set(2, 129, true)
	m.Set(1, 64, true)

	tr := m.Transposed()
	require.Equal(t, 130, tr.Rows())
	require.Equal(t, 3, tr.Cols())
	assert.True(t, tr.Get(0, 0))
	assert.True(t, tr.Get(129, 2))
	assert.True(t, tr.Get(64, 1))
	assert.Equal(t, 3, tr.Popcount())
	assert.True(t, tr.Transposed().Equal(m))
}

func TestSetColumns(t *testing.T) {
	for _, offset := range []int{0, 64, 3} {
		dst := New(2, 200)
		dst.Set(0, 199, true)

		src := New(2, 70)
		src.Set(0, 0, true)
		src.Set(1, 69, true)

		dst.SetColumns(offset, src)
		assert.True(t, dst.Get(0, offset), "offset %d", offset)
		assert.True(t, dst.Get(1, offset+69), "offset %d", offset)
		assert.True(t, dst.Get(0, 199), "offset %d must not clobber later columns", offset)
		assert.Equal(t, 3, dst.Popcount(), "offset %d", offset)
	}

	assert.Panics(t, func() { New(2, 10).SetColumns(5, New(2, 6)) })
}

func TestVector(t *testing.T) {
	v := VectorFromBools([]bool{true, false, true})
	assert.Equal(t, 3, v.Len())
	assert.True(t, v.Get(0))
	assert.False(t, v.Get(1))
	assert.Equal(t, 2, v.Popcount())

	v.Set(0, false)
	assert.Equal(t, 1, v.Popcount())
	assert.Panics(t, func() { v.Get(3) })
}

func repeat(b byte, n int) string {
	out := make([]byte, n)
	for i := range out {
		out[i] = b
	}
	return string(out)
}

func BenchmarkXorRowInto(b *testing.B) {
	m := New(2, 1<<16)
	b.SetBytes(int64(m.Stride() * 8 * 2))
	for i := 0; i < b.N; i++ {
		m.XorRowInto(0, 1)
	}
}
