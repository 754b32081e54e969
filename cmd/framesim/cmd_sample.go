package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/hupe1980/framesim"
	"github.com/hupe1980/framesim/internal/resource"
	"github.com/hupe1980/framesim/recordio"
)

func newSampleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Sample a circuit and write the measurement record",
		Long: `Sample a circuit and write one record entry per sample.

Examples:
  framesim sample --generate surface:d=5:p=0.001 --shots 10000 --format b8 --out run.b8
  framesim sample --circuit bell.txt --shots 100
  framesim sample --config run.yaml --compress zstd --out run.01.zst`,
		RunE: func(cmd *cobra.Command, args []string) (retErr error) {
			cfg, err := loadRunConfig(cmd)
			if err != nil {
				return err
			}
			format, err := recordio.ParseFormat(cfg.Output.Format)
			if err != nil {
				return err
			}
			compression, err := recordio.ParseCompression(cfg.Output.Compression)
			if err != nil {
				return err
			}
			c, _, err := loadCircuit(cfg)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			res, err := framesim.SampleParallel(ctx, c, referenceVector(cfg), cfg.Shots, cfg.Seed, sampleOptions(cfg)...)
			if err != nil {
				return err
			}

			var out io.Writer = cmd.OutOrStdout()
			if cfg.Output.Path != "" && cfg.Output.Path != "-" {
				f, err := os.Create(cfg.Output.Path)
				if err != nil {
					return fmt.Errorf("creating output: %w", err)
				}
				defer func() {
					if cerr := f.Close(); cerr != nil && retErr == nil {
						retErr = fmt.Errorf("closing output: %w", cerr)
					}
				}()
				out = f
			}
			if cfg.Output.RateLimit > 0 {
				rc := resource.NewController(resource.Config{IOLimitBytesPerSec: cfg.Output.RateLimit})
				out = resource.NewRateLimitedWriter(ctx, out, rc)
			}

			if err := recordio.Write(out, res.Record(), format, compression); err != nil {
				return fmt.Errorf("writing record: %w", err)
			}
			return nil
		},
	}

	addRunFlags(cmd)
	cmd.Flags().String("format", "", "Record format: 01, b8, hits")
	cmd.Flags().String("compress", "", "Compression: none, zstd, lz4")
	cmd.Flags().String("out", "", "Output file (default stdout)")
	cmd.Flags().Int64("rate-limit", 0, "Output bytes per second (0 = unlimited)")

	return cmd
}
