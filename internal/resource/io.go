package resource

import (
	"context"
	"io"
)

// RateLimitedWriter wraps an io.Writer with the controller's IO limit.
type RateLimitedWriter struct {
	ctx context.Context
	w   io.Writer
	rc  *Controller
}

// NewRateLimitedWriter creates a new RateLimitedWriter.
func NewRateLimitedWriter(ctx context.Context, w io.Writer, rc *Controller) *RateLimitedWriter {
	return &RateLimitedWriter{ctx: ctx, w: w, rc: rc}
}

// Write waits for IO budget for all of p, then writes it through. Writes
// that fit the limiter's current tokens skip the wait.
func (w *RateLimitedWriter) Write(p []byte) (int, error) {
	if err := w.ctx.Err(); err != nil {
		return 0, err
	}
	if !w.rc.TryAcquireIO(len(p)) {
		if err := w.rc.AcquireIO(w.ctx, len(p)); err != nil {
			return 0, err
		}
	}
	return w.w.Write(p)
}
