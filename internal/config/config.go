// Package config loads framesim run configuration from YAML files.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/hupe1980/framesim/circuit"
)

// RunConfig describes one sampling run of the CLI.
type RunConfig struct {
	// Circuit is the path of a circuit text file.
	Circuit string `json:"circuit,omitempty" yaml:"circuit,omitempty"`

	// Generate names a generated circuit instead, e.g. "surface:d=5:p=0.001"
	// or "repetition:d=7:r=7:p=0.01".
	Generate string `json:"generate,omitempty" yaml:"generate,omitempty"`

	// Reference is the noiseless outcome vector as '0'/'1' characters.
	// Empty means all zero.
	Reference string `json:"reference,omitempty" yaml:"reference,omitempty"`

	Shots int    `json:"shots" yaml:"shots"`
	Seed  uint64 `json:"seed" yaml:"seed"`

	// Output contains settings for writing the record.
	Output OutputConfig `json:"output" yaml:"output"`

	// Parallel contains settings for sharded sampling.
	Parallel ParallelConfig `json:"parallel" yaml:"parallel"`

	// Gauge enables frame gauge randomization.
	Gauge bool `json:"gauge" yaml:"gauge"`

	// Logging contains settings for operational logging.
	Logging LoggingConfig `json:"logging" yaml:"logging"`
}

// OutputConfig configures record encoding.
type OutputConfig struct {
	// Path is the output file; empty or "-" writes to stdout.
	Path string `json:"path,omitempty" yaml:"path,omitempty"`
	// Format is one of 01, b8, hits.
	Format string `json:"format" yaml:"format"`
	// Compression is one of none, zstd, lz4.
	Compression string `json:"compression" yaml:"compression"`
	// RateLimit caps output bytes per second (0 = unlimited).
	RateLimit int64 `json:"rate_limit,omitempty" yaml:"rate_limit,omitempty"`
}

// ParallelConfig configures SampleParallel.
type ParallelConfig struct {
	ShardSize   int   `json:"shard_size" yaml:"shard_size"`
	Workers     int   `json:"workers" yaml:"workers"`
	MemoryLimit int64 `json:"memory_limit,omitempty" yaml:"memory_limit,omitempty"`
}

// LoggingConfig configures log output.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `json:"level" yaml:"level"`
	// JSON switches to JSON log lines.
	JSON bool `json:"json" yaml:"json"`
}

// Default returns the default run configuration.
func Default() *RunConfig {
	return &RunConfig{
		Shots: 1000,
		Output: OutputConfig{
			Format:      "01",
			Compression: "none",
		},
		Parallel: ParallelConfig{
			ShardSize: 4096,
			Workers:   0,
		},
		Logging: LoggingConfig{
			Level: "warn",
		},
	}
}

// LoadFromFile loads configuration from a YAML file on top of the defaults.
func LoadFromFile(path string) (*RunConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	return cfg, nil
}

// Validate checks that the configuration is usable.
func (c *RunConfig) Validate() error {
	if (c.Circuit == "") == (c.Generate == "") {
		return fmt.Errorf("exactly one of circuit or generate must be set")
	}
	if c.Shots < 0 {
		return fmt.Errorf("shots must be non-negative, got %d", c.Shots)
	}
	if c.Parallel.ShardSize <= 0 {
		return fmt.Errorf("shard_size must be positive, got %d", c.Parallel.ShardSize)
	}
	if c.Parallel.Workers < 0 {
		return fmt.Errorf("workers must be non-negative, got %d", c.Parallel.Workers)
	}
	if c.Parallel.MemoryLimit < 0 || c.Output.RateLimit < 0 {
		return fmt.Errorf("limits must be non-negative")
	}
	if strings.Trim(c.Reference, "01") != "" {
		return fmt.Errorf("reference must contain only 0 and 1")
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return fmt.Errorf("invalid log level: %s (valid: debug, info, warn, error)", c.Logging.Level)
	}
	if c.Generate != "" {
		if _, err := ParseGenerator(c.Generate); err != nil {
			return err
		}
	}

	return nil
}

// Generator is a parsed generated-circuit description.
type Generator struct {
	Kind     string
	Distance int
	Rounds   int
	P        float64
}

// ParseGenerator parses "kind:key=value:..." with kind surface or
// repetition and keys d (distance), r (rounds, repetition only) and p.
func ParseGenerator(s string) (Generator, error) {
	parts := strings.Split(s, ":")
	g := Generator{Kind: parts[0], Distance: 3, Rounds: 0}
	if g.Kind != "surface" && g.Kind != "repetition" {
		return g, fmt.Errorf("unknown generator %q (valid: surface, repetition)", g.Kind)
	}
	for _, kv := range parts[1:] {
		key, value, ok := strings.Cut(kv, "=")
		if !ok {
			return g, fmt.Errorf("generator parameter %q is not key=value", kv)
		}
		var err error
		switch key {
		case "d":
			g.Distance, err = strconv.Atoi(value)
		case "r":
			if g.Kind == "surface" {
				return g, fmt.Errorf("generator parameter r: surface codes always run d rounds")
			}
			g.Rounds, err = strconv.Atoi(value)
		case "p":
			g.P, err = strconv.ParseFloat(value, 64)
		default:
			return g, fmt.Errorf("unknown generator parameter %q", key)
		}
		if err != nil {
			return g, fmt.Errorf("generator parameter %s: %w", key, err)
		}
	}
	if g.Rounds == 0 {
		g.Rounds = g.Distance
	}
	if !(g.P >= 0 && g.P <= 1) {
		return g, fmt.Errorf("generator probability %v outside [0, 1]", g.P)
	}
	return g, nil
}

// Build generates the circuit.
func (g Generator) Build() (*circuit.Code, error) {
	if g.Kind == "repetition" {
		return circuit.RepetitionCode(g.Distance, g.Rounds, g.P)
	}
	return circuit.UnrotatedSurfaceCode(g.Distance, g.P)
}
