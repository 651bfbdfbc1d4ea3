package news

import (
	"context"
	"time"
)

// WithTimeout races op against a deadline and returns fallback if the
// deadline wins. Every external call (feed fetch, Claude request) goes
// through this so a hung upstream degrades to an empty contribution instead
// of stalling the pass. The derived context also cancels the abandoned
// request so it does not linger past the deadline.
func WithTimeout[T any](ctx context.Context, d time.Duration, fallback T, op func(context.Context) (T, error)) T {
	ctx, cancel := context.WithTimeout(ctx, d)
	defer cancel()

	type result struct {
		val T
		err error
	}
	ch := make(chan result, 1)
	go func() {
		v, err := op(ctx)
		ch <- result{v, err}
	}()

	select {
	case r := <-ch:
		if r.err != nil {
			return fallback
		}
		return r.val
	case <-ctx.Done():
		return fallback
	}
}
