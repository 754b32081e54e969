// Package resource implements the Controller that bounds concurrent sampling.
//
// The Controller manages three resource types:
//
//   - Memory: frame and record bytes held by in-flight shards (blocking)
//   - Workers: the number of shards simulated at once
//   - IO: token-bucket throughput limit for writing records
//
// # Memory
//
// A shard reserves its frame and record memory before it allocates, and
// waits when the limit is reached until an earlier shard finishes:
//
//	rc := resource.NewController(resource.Config{
//	    MemoryLimitBytes: 1 << 30,
//	    MaxWorkers:       8,
//	})
//
//	if err := rc.AcquireMemory(ctx, shardBytes); err != nil {
//	    return err
//	}
//	defer rc.ReleaseMemory(shardBytes)
//
// # Workers
//
//	if err := rc.AcquireWorker(ctx); err != nil {
//	    return err
//	}
//	defer rc.ReleaseWorker()
//
// # IO Rate Limiting
//
//	w := resource.NewRateLimitedWriter(ctx, file, rc)
//
// # Nil Safety
//
// All methods handle a nil Controller gracefully; they become no-ops.
package resource
