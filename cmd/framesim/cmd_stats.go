package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hupe1980/framesim"
	"github.com/hupe1980/framesim/circuit"
)

type statsReport struct {
	Qubits           int       `json:"qubits"`
	Measurements     int       `json:"measurements"`
	Shots            int       `json:"shots"`
	Seed             uint64    `json:"seed"`
	Operations       opCounts  `json:"operations"`
	MeanFlipRate     float64   `json:"mean_flip_rate"`
	MaxFlipRate      float64   `json:"max_flip_rate"`
	FlipRates        []float64 `json:"flip_rates"`
	Observable       []int     `json:"observable,omitempty"`
	LogicalErrorRate *float64  `json:"logical_error_rate,omitempty"`
	Seconds          float64   `json:"seconds"`
	Shards           int64     `json:"shards"`
	PeakMemoryBytes  int64     `json:"peak_memory_bytes"`
}

type opCounts struct {
	Gates        int `json:"gates"`
	Noise        int `json:"noise"`
	Measurements int `json:"measurements"`
	Resets       int `json:"resets"`
}

func newOpCounts(s circuit.Stats) opCounts {
	return opCounts{Gates: s.Gates, Noise: s.Noise, Measurements: s.Measurements, Resets: s.Resets}
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print per-measurement flip rates and the logical error rate",
		Long: `Sample a circuit and summarize the record instead of writing it.

For generated codes the raw logical observable error rate is reported too.

Examples:
  framesim stats --generate surface:d=5:p=0.001 --shots 100000
  framesim stats --generate repetition:d=9:p=0.01 --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadRunConfig(cmd)
			if err != nil {
				return err
			}
			c, observable, err := loadCircuit(cfg)
			if err != nil {
				return err
			}

			metrics := &framesim.BasicMetricsCollector{}
			res, err := framesim.SampleParallel(cmd.Context(), c, referenceVector(cfg), cfg.Shots, cfg.Seed,
				sampleOptions(cfg, framesim.WithMetricsCollector(metrics))...)
			if err != nil {
				return err
			}

			report := statsReport{
				Qubits:       c.NumQubits,
				Measurements: c.NumMeasurements,
				Shots:        res.NumSamples(),
				Seed:         cfg.Seed,
				Operations:   newOpCounts(c.Stats()),
				FlipRates:    res.FlipRates(),
				Observable:   observable,
				Seconds:      res.Duration().Seconds(),
			}
			ms := metrics.GetStats()
			report.Shards = ms.ShardCount
			report.PeakMemoryBytes = ms.PeakMemoryBytes
			for _, r := range report.FlipRates {
				report.MeanFlipRate += r
				report.MaxFlipRate = max(report.MaxFlipRate, r)
			}
			if len(report.FlipRates) > 0 {
				report.MeanFlipRate /= float64(len(report.FlipRates))
			}
			if len(observable) > 0 {
				rate := res.LogicalErrorRate(observable...)
				report.LogicalErrorRate = &rate
			}

			out := cmd.OutOrStdout()
			if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(report)
			}

			fmt.Fprintf(out, "qubits:         %d\n", report.Qubits)
			fmt.Fprintf(out, "measurements:   %d\n", report.Measurements)
			fmt.Fprintf(out, "operations:     %d gates, %d noise, %d resets\n",
				report.Operations.Gates, report.Operations.Noise, report.Operations.Resets)
			fmt.Fprintf(out, "shots:          %d\n", report.Shots)
			fmt.Fprintf(out, "shards:         %d\n", report.Shards)
			fmt.Fprintf(out, "peak memory:    %d bytes\n", report.PeakMemoryBytes)
			fmt.Fprintf(out, "mean flip rate: %.6f\n", report.MeanFlipRate)
			fmt.Fprintf(out, "max flip rate:  %.6f\n", report.MaxFlipRate)
			if report.LogicalErrorRate != nil {
				fmt.Fprintf(out, "logical error:  %.6f\n", *report.LogicalErrorRate)
			}
			fmt.Fprintf(out, "elapsed:        %.3fs\n", report.Seconds)
			return nil
		},
	}

	addRunFlags(cmd)

	return cmd
}
