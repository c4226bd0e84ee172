package commands

import (
	"context"
	"time"
)

// DefaultTimeout bounds handlers that keep the default deadline, such as
// clean. Site builds opt out and only honour a per-message timeout.
const DefaultTimeout = 5 * time.Minute

// WithDeadline bounds ctx by timeout. A zero or negative timeout leaves ctx
// unbounded; a nil ctx becomes context.Background.
func WithDeadline(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if ctx == nil {
		ctx = context.Background()
	}
	if timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}
