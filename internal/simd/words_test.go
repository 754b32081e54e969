package simd

import (
	"math/bits"
	"math/rand"
	"strconv"
	"testing"
)

func TestXorWords(t *testing.T) {
	tests := []struct {
		name string
		dst  []uint64
		src  []uint64
		want []uint64
	}{
		{
			name: "Empty",
			dst:  []uint64{},
			src:  []uint64{},
			want: []uint64{},
		},
		{
			name: "Single word",
			dst:  []uint64{0xFF00FF00FF00FF00},
			src:  []uint64{0x0F0F0F0F0F0F0F0F},
			want: []uint64{0xF00FF00FF00FF00F},
		},
		{
			name: "XOR with self (all zeros)",
			dst:  []uint64{0x123456789ABCDEF0, 0xFEDCBA9876543210},
			src:  []uint64{0x123456789ABCDEF0, 0xFEDCBA9876543210},
			want: []uint64{0, 0},
		},
		{
			name: "9 words (cache line + tail)",
			dst:  []uint64{1, 2, 3, 4, 5, 6, 7, 8, 9},
			src:  []uint64{1, 1, 1, 1, 1, 1, 1, 1, 1},
			want: []uint64{0, 3, 2, 5, 4, 7, 6, 9, 8},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dst := make([]uint64, len(tt.dst))
			copy(dst, tt.dst)
			XorWords(dst, tt.src)
			for i := range dst {
				if dst[i] != tt.want[i] {
					t.Errorf("index %d: got 0x%X, want 0x%X", i, dst[i], tt.want[i])
				}
			}
		})
	}
}

func TestSwapWords(t *testing.T) {
	a := []uint64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	b := []uint64{11, 12, 13, 14, 15, 16, 17, 18, 19, 20}
	SwapWords(a, b)
	for i := range a {
		if a[i] != uint64(i+11) || b[i] != uint64(i+1) {
			t.Fatalf("index %d: got a=%d b=%d", i, a[i], b[i])
		}
	}
}

func TestNotWords(t *testing.T) {
	w := []uint64{0, ^uint64(0), 0x0F}
	NotWords(w)
	if w[0] != ^uint64(0) || w[1] != 0 || w[2] != ^uint64(0x0F) {
		t.Errorf("unexpected result %X", w)
	}
}

func TestPopcountWords(t *testing.T) {
	tests := []struct {
		name  string
		words []uint64
		want  int
	}{
		{"Empty", []uint64{}, 0},
		{"All zeros", []uint64{0, 0, 0, 0}, 0},
		{"All ones single word", []uint64{^uint64(0)}, 64},
		{"Alternating bits", []uint64{0x5555555555555555}, 32},
		{"Mixed", []uint64{0xFF, 0x00, 0x0F, 0xF0, 0x1}, 8 + 0 + 4 + 4 + 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PopcountWords(tt.words); got != tt.want {
				t.Errorf("got %d, want %d", got, tt.want)
			}
		})
	}
}

// Both kernel families must agree with the scalar definition at every
// length around the unroll boundaries.
func TestKernelFamilies_EquivalenceBoundaries(t *testing.T) {
	sizes := []int{0, 1, 3, 4, 5, 7, 8, 9, 15, 16, 17, 63, 64, 65, 128}
	rng := rand.New(rand.NewSource(42))

	type binary struct {
		name string
		fn   func(dst, src []uint64)
		want func(d, s uint64) uint64
	}
	ops := []binary{
		{"andGeneric", andWordsGeneric, func(d, s uint64) uint64 { return d & s }},
		{"andWide", andWordsWide, func(d, s uint64) uint64 { return d & s }},
		{"andNot", andNotWordsGeneric, func(d, s uint64) uint64 { return d &^ s }},
		{"or", orWordsGeneric, func(d, s uint64) uint64 { return d | s }},
		{"xorGeneric", xorWordsGeneric, func(d, s uint64) uint64 { return d ^ s }},
		{"xorWide", xorWordsWide, func(d, s uint64) uint64 { return d ^ s }},
	}

	for _, size := range sizes {
		dst := make([]uint64, size)
		src := make([]uint64, size)
		extra := make([]uint64, size)
		for i := range dst {
			dst[i] = rng.Uint64()
			src[i] = rng.Uint64()
			extra[i] = rng.Uint64()
		}

		for _, op := range ops {
			got := append([]uint64(nil), dst...)
			op.fn(got, src)
			for i := range got {
				if want := op.want(dst[i], src[i]); got[i] != want {
					t.Errorf("%s size=%d index=%d: got 0x%X, want 0x%X", op.name, size, i, got[i], want)
				}
			}
		}

		for name, fn := range map[string]func(dst, a, b []uint64){"xor2Generic": xor2WordsGeneric, "xor2Wide": xor2WordsWide} {
			got := append([]uint64(nil), dst...)
			fn(got, src, extra)
			for i := range got {
				if want := dst[i] ^ src[i] ^ extra[i]; got[i] != want {
					t.Errorf("%s size=%d index=%d: got 0x%X, want 0x%X", name, size, i, got[i], want)
				}
			}
		}

		for name, fn := range map[string]func(a, b []uint64){"swapGeneric": swapWordsGeneric, "swapWide": swapWordsWide} {
			a := append([]uint64(nil), dst...)
			b := append([]uint64(nil), src...)
			fn(a, b)
			for i := range a {
				if a[i] != src[i] || b[i] != dst[i] {
					t.Errorf("%s size=%d index=%d: swap mismatch", name, size, i)
				}
			}
		}

		want := 0
		for _, w := range dst {
			want += bits.OnesCount64(w)
		}
		if got := popcountWordsGeneric(dst); got != want {
			t.Errorf("popcount size=%d: got %d, want %d", size, got, want)
		}
	}
}

func BenchmarkXorWords(b *testing.B) {
	for _, size := range []int{16, 256, 4096} {
		dst := make([]uint64, size)
		src := make([]uint64, size)
		for i := range dst {
			dst[i] = uint64(i)
			src[i] = uint64(i * 2)
		}
		b.Run("words="+strconv.Itoa(size), func(b *testing.B) {
			b.SetBytes(int64(size * 8 * 2))
			for i := 0; i < b.N; i++ {
				XorWords(dst, src)
			}
		})
	}
}

func BenchmarkSwapWords(b *testing.B) {
	for _, size := range []int{16, 256, 4096} {
		x := make([]uint64, size)
		y := make([]uint64, size)
		b.Run("words="+strconv.Itoa(size), func(b *testing.B) {
			b.SetBytes(int64(size * 8 * 2))
			for i := 0; i < b.N; i++ {
				SwapWords(x, y)
			}
		})
	}
}
