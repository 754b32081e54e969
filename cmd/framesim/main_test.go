package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/framesim/recordio"
)

// run executes the CLI with args and returns its stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(t.Context())
	return out.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "framesim version "+version)

	out, err = run(t, "version", "--json")
	require.NoError(t, err)
	var v versionInfo
	require.NoError(t, json.Unmarshal([]byte(out), &v))
	assert.Equal(t, version, v.Version)
	assert.NotEmpty(t, v.SIMD)
	assert.Contains(t, out, `"cpu":`)
	assert.Contains(t, out, `"avx2":`)
}

func TestSample_CircuitFileToStdout(t *testing.T) {
	path := writeFile(t, "bell.txt", "H 0\nCX 0 1\nM 0 1\n")

	out, err := run(t, "sample", "--circuit", path, "--shots", "5")
	require.NoError(t, err)

	assert.Equal(t, strings.Repeat("00\n", 5), out)
}

func TestSample_Reference(t *testing.T) {
	path := writeFile(t, "x.txt", "X 0\nM 0 1\n")

	out, err := run(t, "sample", "--circuit", path, "--shots", "3", "--ref", "10", "--format", "hits")
	require.NoError(t, err)

	assert.Equal(t, "0\n0\n0\n", out)
}

func TestSample_GeneratedToFile(t *testing.T) {
	outPath := filepath.Join(t.TempDir(), "run.b8.zst")

	_, err := run(t, "sample",
		"--generate", "repetition:d=3:r=2:p=0.05",
		"--shots", "300",
		"--seed", "9",
		"--format", "b8",
		"--compress", "zstd",
		"--shard-size", "64",
		"--workers", "3",
		"--out", outPath,
	)
	require.NoError(t, err)

	f, err := os.Open(outPath)
	require.NoError(t, err)
	defer f.Close()

	// 2 rounds of 2 ancillas plus 3 data measurements
	record, err := recordio.Read(f, recordio.FormatB8, recordio.CompressionZstd, 7)
	require.NoError(t, err)
	assert.Equal(t, 300, record.Cols())
}

func TestSample_ConfigFileWithOverride(t *testing.T) {
	cfgPath := writeFile(t, "run.yaml", `
generate: surface:d=3:p=0
shots: 10
output:
  format: "01"
`)

	out, err := run(t, "sample", "--config", cfgPath, "--shots", "4")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Len(t, lines, 4)
	assert.NotContains(t, out, "1")
}

func TestSample_Deterministic(t *testing.T) {
	args := []string{"sample", "--generate", "surface:d=3:p=0.01", "--shots", "200", "--seed", "5", "--workers", "1"}
	a, err := run(t, args...)
	require.NoError(t, err)

	args[len(args)-1] = "4"
	b, err := run(t, args...)
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestSample_Errors(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.txt")
	bad := writeFile(t, "bad.txt", "FOO 0\n")

	tests := []struct {
		name string
		args []string
	}{
		{"no circuit", []string{"sample"}},
		{"missing file", []string{"sample", "--circuit", missing}},
		{"unparsable circuit", []string{"sample", "--circuit", bad}},
		{"bad format", []string{"sample", "--generate", "surface", "--format", "ptb64"}},
		{"bad compression", []string{"sample", "--generate", "surface", "--compress", "gzip"}},
		{"bad generator", []string{"sample", "--generate", "toric"}},
		{"reference length", []string{"sample", "--generate", "surface", "--ref", "101"}},
		{"bad log level", []string{"sample", "--generate", "surface", "--log-level", "loud"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.args...)
			assert.Error(t, err)
		})
	}
}

func TestStats(t *testing.T) {
	out, err := run(t, "stats", "--generate", "surface:d=3:p=0.01", "--shots", "512")
	require.NoError(t, err)

	assert.Contains(t, out, "measurements:")
	assert.Contains(t, out, "shots:          512")
	assert.Contains(t, out, "logical error:")
	assert.Contains(t, out, "operations:")
	assert.Contains(t, out, "peak memory:")
}

func TestStats_JSON(t *testing.T) {
	out, err := run(t, "stats", "--generate", "repetition:d=3:p=0", "--shots", "128", "--json")
	require.NoError(t, err)

	var report statsReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, 128, report.Shots)
	assert.Equal(t, 5, report.Qubits)
	assert.Len(t, report.FlipRates, report.Measurements)
	assert.Zero(t, report.MaxFlipRate)
	require.NotNil(t, report.LogicalErrorRate)
	assert.Zero(t, *report.LogicalErrorRate)
	assert.Positive(t, report.Operations.Gates)
	assert.Zero(t, report.Operations.Noise)
	assert.Equal(t, report.Measurements, report.Operations.Measurements)
	assert.Positive(t, report.PeakMemoryBytes)
}
