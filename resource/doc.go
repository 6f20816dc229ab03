// Package resource implements the Controller for shared limits.
//
// The Controller manages three resource types:
//
//   - Memory: track and limit bytes held by caches (non-blocking, fail-fast)
//   - Workers: bound the goroutines of parallel unions and the dataset loader
//   - IO: rate-limit snapshot and dataset IO with a token bucket
//
// # Memory
//
//	rc := resource.NewController(resource.Config{
//	    MemoryLimitBytes: 256 << 20,
//	})
//
//	if err := rc.AcquireMemory(n); err != nil {
//	    // ErrMemoryLimitExceeded - caller decides whether to skip or retry
//	}
//	defer rc.ReleaseMemory(n)
//
// # Workers
//
//	if err := rc.AcquireWorker(ctx); err != nil {
//	    return err
//	}
//	defer rc.ReleaseWorker()
//
// # IO
//
//	w := resource.NewRateLimitedWriter(ctx, file, rc)
//	r := resource.NewRateLimitedReader(ctx, file, rc)
//
// # Nil Safety
//
// All methods handle a nil Controller gracefully: limits vanish and
// tracking reports zero. This allows optional limiting without nil checks.
package resource
