package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/hupe1980/framesim"
	"github.com/hupe1980/framesim/bitmatrix"
	"github.com/hupe1980/framesim/circuit"
	"github.com/hupe1980/framesim/internal/config"
	"github.com/hupe1980/framesim/internal/simd"
)

var version = "0.1.0-dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "framesim",
		Short: "Pauli frame sampler for noisy stabilizer circuits",
		Long: `framesim samples measurement outcomes of noisy Clifford circuits.

It propagates Pauli errors through the circuit for many samples at once
and writes the resulting measurement record.`,
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().Bool("json", false, "Output as JSON")
	rootCmd.PersistentFlags().Bool("json-logs", false, "Write logs as JSON")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(
		newVersionCmd(),
		newSampleCmd(),
		newStatsCmd(),
	)

	return rootCmd
}

type cpuFeatures struct {
	ASIMD      bool `json:"asimd"`
	SVE2       bool `json:"sve2"`
	AVX2       bool `json:"avx2"`
	AVX512     bool `json:"avx512"`
	Overridden bool `json:"overridden"`
}

type versionInfo struct {
	Version string      `json:"version"`
	SIMD    string      `json:"simd"`
	CPU     cpuFeatures `json:"cpu"`
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			jsonOut, _ := cmd.Flags().GetBool("json")
			out := cmd.OutOrStdout()
			if jsonOut {
				features := cpuFeatures{
					ASIMD:      simd.HasASIMD(),
					SVE2:       simd.HasSVE2(),
					AVX2:       simd.HasAVX2(),
					AVX512:     simd.HasAVX512(),
					Overridden: simd.IsOverridden(),
				}
				json.NewEncoder(out).Encode(versionInfo{
					Version: version,
					SIMD:    simd.ActiveISA().String(),
					CPU:     features,
				})
			} else {
				fmt.Fprintf(out, "framesim version %s (%s kernels)\n", version, simd.ActiveISA())
			}
		},
	}
}

// addRunFlags registers the flags shared by sample and stats.
func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().String("config", "", "YAML run configuration file")
	cmd.Flags().String("circuit", "", "Circuit text file")
	cmd.Flags().String("generate", "", "Generated circuit, e.g. surface:d=5:p=0.001")
	cmd.Flags().String("ref", "", "Reference outcomes as 0/1 characters (default all zero)")
	cmd.Flags().Int("shots", 0, "Number of samples")
	cmd.Flags().Uint64("seed", 0, "Random seed")
	cmd.Flags().Int("shard-size", 0, "Samples per parallel shard")
	cmd.Flags().Int("workers", 0, "Concurrent shards (default GOMAXPROCS)")
	cmd.Flags().Int64("memory-limit", 0, "Frame memory limit in bytes (0 = unlimited)")
	cmd.Flags().Bool("gauge", false, "Randomize frame gauge on measurement and reset")
}

// loadRunConfig merges defaults, the optional config file and explicitly
// set flags, in that order.
func loadRunConfig(cmd *cobra.Command) (*config.RunConfig, error) {
	cfg := config.Default()
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		var err error
		if cfg, err = config.LoadFromFile(path); err != nil {
			return nil, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("circuit") {
		cfg.Circuit, _ = flags.GetString("circuit")
	}
	if flags.Changed("generate") {
		cfg.Generate, _ = flags.GetString("generate")
	}
	if flags.Changed("ref") {
		cfg.Reference, _ = flags.GetString("ref")
	}
	if flags.Changed("shots") {
		cfg.Shots, _ = flags.GetInt("shots")
	}
	if flags.Changed("seed") {
		cfg.Seed, _ = flags.GetUint64("seed")
	}
	if flags.Changed("shard-size") {
		cfg.Parallel.ShardSize, _ = flags.GetInt("shard-size")
	}
	if flags.Changed("workers") {
		cfg.Parallel.Workers, _ = flags.GetInt("workers")
	}
	if flags.Changed("memory-limit") {
		cfg.Parallel.MemoryLimit, _ = flags.GetInt64("memory-limit")
	}
	if flags.Changed("gauge") {
		cfg.Gauge, _ = flags.GetBool("gauge")
	}
	if flags.Changed("format") {
		cfg.Output.Format, _ = flags.GetString("format")
	}
	if flags.Changed("compress") {
		cfg.Output.Compression, _ = flags.GetString("compress")
	}
	if flags.Changed("out") {
		cfg.Output.Path, _ = flags.GetString("out")
	}
	if flags.Changed("rate-limit") {
		cfg.Output.RateLimit, _ = flags.GetInt64("rate-limit")
	}
	if flags.Changed("json-logs") {
		cfg.Logging.JSON, _ = flags.GetBool("json-logs")
	}
	if flags.Changed("log-level") {
		cfg.Logging.Level, _ = flags.GetString("log-level")
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid run configuration: %w", err)
	}
	return cfg, nil
}

// loadCircuit returns the run's circuit and, for generated codes, the
// observable's record rows.
func loadCircuit(cfg *config.RunConfig) (*circuit.Circuit, []int, error) {
	if cfg.Generate != "" {
		g, err := config.ParseGenerator(cfg.Generate)
		if err != nil {
			return nil, nil, err
		}
		code, err := g.Build()
		if err != nil {
			return nil, nil, err
		}
		return code.Circuit, code.Observable, nil
	}

	f, err := os.Open(cfg.Circuit)
	if err != nil {
		return nil, nil, fmt.Errorf("opening circuit: %w", err)
	}
	defer f.Close()

	c, err := circuit.Parse(f)
	if err != nil {
		return nil, nil, fmt.Errorf("parsing %s: %w", cfg.Circuit, err)
	}
	return c, nil, nil
}

func referenceVector(cfg *config.RunConfig) *bitmatrix.Vector {
	if cfg.Reference == "" {
		return nil
	}
	bs := make([]bool, len(cfg.Reference))
	for i, ch := range cfg.Reference {
		bs[i] = ch == '1'
	}
	return bitmatrix.VectorFromBools(bs)
}

func newLogger(cfg *config.RunConfig) *framesim.Logger {
	var level slog.Level
	_ = level.UnmarshalText([]byte(strings.ToUpper(cfg.Logging.Level)))
	if cfg.Logging.JSON {
		return framesim.NewJSONLogger(level)
	}
	return framesim.NewTextLogger(level)
}

func sampleOptions(cfg *config.RunConfig, extra ...framesim.Option) []framesim.Option {
	opts := []framesim.Option{
		framesim.WithLogger(newLogger(cfg)),
		framesim.WithShardSize(cfg.Parallel.ShardSize),
		framesim.WithMemoryLimit(cfg.Parallel.MemoryLimit),
	}
	if cfg.Parallel.Workers > 0 {
		opts = append(opts, framesim.WithWorkers(cfg.Parallel.Workers))
	}
	if cfg.Gauge {
		opts = append(opts, framesim.WithGaugeRandomization())
	}
	return append(opts, extra...)
}
