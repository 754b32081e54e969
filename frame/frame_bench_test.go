package frame

import (
	"strconv"
	"testing"

	"github.com/hupe1980/framesim/circuit"
	"github.com/hupe1980/framesim/rng"
)

const (
	benchQubits  = 100000
	benchSamples = 1000
)

func benchTargets(n int) []int {
	ts := make([]int, n)
	for i := range ts {
		ts[i] = i
	}
	return ts
}

func BenchmarkDepolarize1(b *testing.B) {
	s := New(benchQubits, benchSamples, 0, rng.New(0))
	targets := benchTargets(benchQubits)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.Depolarize1(targets, 0.001)
	}
	b.ReportMetric(float64(benchQubits*benchSamples)*float64(b.N)/b.Elapsed().Seconds(), "cells/s")
}

func BenchmarkDepolarize2(b *testing.B) {
	s := New(benchQubits, benchSamples, 0, rng.New(0))
	targets := benchTargets(benchQubits)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.Depolarize2(targets, 0.001)
	}
	b.ReportMetric(float64(benchQubits*benchSamples)*float64(b.N)/b.Elapsed().Seconds(), "cells/s")
}

func BenchmarkHadamard(b *testing.B) {
	s := New(benchQubits, benchSamples, 0, rng.New(0))
	targets := benchTargets(benchQubits)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.H(targets)
	}
	b.ReportMetric(float64(benchQubits*benchSamples)*float64(b.N)/b.Elapsed().Seconds(), "cells/s")
}

func BenchmarkCX(b *testing.B) {
	s := New(benchQubits, benchSamples, 0, rng.New(0))
	targets := benchTargets(benchQubits)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.CX(targets)
	}
	b.ReportMetric(float64(benchQubits*benchSamples)*float64(b.N)/b.Elapsed().Seconds(), "cells/s")
}

func BenchmarkSampleSurfaceCode(b *testing.B) {
	for _, d := range []int{5, 41} {
		code, err := circuit.UnrotatedSurfaceCode(d, 0.001)
		if err != nil {
			b.Fatal(err)
		}
		b.Run("d="+strconv.Itoa(d), func(b *testing.B) {
			r := rng.New(0)
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				_ = Sample(code.Circuit, nil, 1024, r)
			}
			b.ReportMetric(1024*float64(b.N)/b.Elapsed().Seconds(), "samples/s")
		})
	}
}
