package cache

import (
	"context"
	"time"
)

// Counter is a fixed-window counter store. Incr bumps key and returns the new
// count; the first increment in a window starts the window's expiry.
type Counter interface {
	Incr(ctx context.Context, key string, window time.Duration) (int64, error)
	Ping(ctx context.Context) error
	Close() error
}
