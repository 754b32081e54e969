package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	data := `
generate: surface:d=5:p=0.001
shots: 20000
seed: 7
output:
  format: b8
  compression: zstd
parallel:
  shard_size: 1024
  workers: 4
logging:
  level: info
  json: true
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "surface:d=5:p=0.001", cfg.Generate)
	assert.Equal(t, 20000, cfg.Shots)
	assert.Equal(t, uint64(7), cfg.Seed)
	assert.Equal(t, "b8", cfg.Output.Format)
	assert.Equal(t, "zstd", cfg.Output.Compression)
	assert.Equal(t, 1024, cfg.Parallel.ShardSize)
	assert.Equal(t, 4, cfg.Parallel.Workers)
	assert.True(t, cfg.Logging.JSON)
}

func TestLoadFromFile_KeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	require.NoError(t, os.WriteFile(path, []byte("circuit: bell.txt\n"), 0o600))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, Default().Shots, cfg.Shots)
	assert.Equal(t, "01", cfg.Output.Format)
	assert.Equal(t, 4096, cfg.Parallel.ShardSize)
}

func TestLoadFromFile_Errors(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("shots: [1, 2"), 0o600))
	_, err = LoadFromFile(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *RunConfig)
		wantErr bool
	}{
		{"generated", func(c *RunConfig) { c.Generate = "surface:d=3:p=0.01" }, false},
		{"file", func(c *RunConfig) { c.Circuit = "c.txt" }, false},
		{"neither", func(c *RunConfig) {}, true},
		{"both", func(c *RunConfig) { c.Circuit = "c.txt"; c.Generate = "surface" }, true},
		{"negative shots", func(c *RunConfig) { c.Circuit = "c.txt"; c.Shots = -1 }, true},
		{"zero shard size", func(c *RunConfig) { c.Circuit = "c.txt"; c.Parallel.ShardSize = 0 }, true},
		{"bad reference", func(c *RunConfig) { c.Circuit = "c.txt"; c.Reference = "01x" }, true},
		{"bad level", func(c *RunConfig) { c.Circuit = "c.txt"; c.Logging.Level = "trace" }, true},
		{"bad generator", func(c *RunConfig) { c.Generate = "toric:d=3" }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if tt.wantErr {
				assert.Error(t, cfg.Validate())
			} else {
				assert.NoError(t, cfg.Validate())
			}
		})
	}
}

func TestParseGenerator(t *testing.T) {
	tests := []struct {
		in      string
		want    Generator
		wantErr bool
	}{
		{"surface:d=5:p=0.001", Generator{Kind: "surface", Distance: 5, Rounds: 5, P: 0.001}, false},
		{"repetition:d=7:r=3:p=0.1", Generator{Kind: "repetition", Distance: 7, Rounds: 3, P: 0.1}, false},
		{"surface", Generator{Kind: "surface", Distance: 3, Rounds: 3}, false},
		{"surface:d=x", Generator{}, true},
		{"surface:q=1", Generator{}, true},
		{"surface:d", Generator{}, true},
		{"surface:p=2", Generator{}, true},
		{"surface:d=5:r=2", Generator{}, true},
		{"repetition:d=5", Generator{Kind: "repetition", Distance: 5, Rounds: 5}, false},
		{"color:d=3", Generator{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseGenerator(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGenerator_Build(t *testing.T) {
	code, err := Generator{Kind: "repetition", Distance: 3, Rounds: 2, P: 0.01}.Build()
	require.NoError(t, err)
	assert.Equal(t, 3, code.Distance)
	assert.Equal(t, 2, code.Rounds)

	code, err = Generator{Kind: "surface", Distance: 3, P: 0.01}.Build()
	require.NoError(t, err)
	assert.NotEmpty(t, code.Observable)
}
