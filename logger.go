package framesim

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/hupe1980/framesim/circuit"
)

// Logger wraps slog.Logger with framesim-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return &Logger{
		Logger: slog.New(slog.DiscardHandler),
	}
}

// WithCircuit adds the circuit's shape to the logger.
func (l *Logger) WithCircuit(c *circuit.Circuit) *Logger {
	return &Logger{
		Logger: l.Logger.With(
			"qubits", c.NumQubits,
			"measurements", c.NumMeasurements,
			"ops", len(c.Ops),
		),
	}
}

// WithSeed adds the seed field to the logger.
func (l *Logger) WithSeed(seed uint64) *Logger {
	return &Logger{
		Logger: l.Logger.With("seed", seed),
	}
}

// LogSample logs a completed sampling run.
func (l *Logger) LogSample(ctx context.Context, samples int, duration time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "sample failed",
			"samples", samples,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "sample completed",
			"samples", samples,
			"duration", duration,
		)
	}
}

// LogShard logs one finished shard of a parallel run.
func (l *Logger) LogShard(ctx context.Context, shard, samples int, duration time.Duration) {
	l.DebugContext(ctx, "shard completed",
		"shard", shard,
		"samples", samples,
		"duration", duration,
	)
}

// LogParallel logs the resource summary of a finished parallel run.
func (l *Logger) LogParallel(ctx context.Context, shards, workers int, peakMemory, memoryLimit int64) {
	l.DebugContext(ctx, "parallel sampling finished",
		"shards", shards,
		"workers", workers,
		"peak_memory_bytes", peakMemory,
		"memory_limit_bytes", memoryLimit,
	)
}

// LogProgress logs parallel sampling progress.
func (l *Logger) LogProgress(ctx context.Context, doneShards, totalShards int) {
	l.InfoContext(ctx, "sampling progress",
		"shards_done", doneShards,
		"shards_total", totalShards,
	)
}
