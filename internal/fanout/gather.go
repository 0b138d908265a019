// Package fanout implements the bounded "gather" pattern: spawn N tasks
// bounded by a worker-pool limit, wait for all, isolate per-task failures as
// warnings rather than aborting the whole gather. Shared by internal/fetcher
// and internal/enrich so the same concurrency shape isn't duplicated per
// caller.
package fanout

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Gather runs one task per item in items, bounded to at most maxConcurrent
// in flight at once via errgroup.Group.SetLimit. onErr is invoked
// synchronously from the failing item's own goroutine, one call at a time
// (Gather holds a mutex around it), for any item whose task fails for an
// ordinary reason;
// that failure never aborts sibling tasks. The one failure mode that does
// abort the whole gather is cancellation of ctx — observed either before a
// task starts (the gctx.Err() pre-check) or during one (a task returning an
// error while gctx.Err() is non-nil is assumed to be reporting that same
// cancellation, not an ordinary per-item failure, and is propagated instead
// of handed to onErr). Per spec.md §5/§7, callers must treat a non-nil
// return from Gather as a CancelledError and stop — not persist whatever
// partial results were gathered before the cancellation landed.
//
// errgroup's SetLimit wait does not watch ctx: a queued item still starts
// once a slot frees up, and after cancellation it returns at once through
// the gctx.Err() pre-check. Every task receives gctx directly for its own
// blocking calls.
func Gather[T any](ctx context.Context, items []T, maxConcurrent int, task func(ctx context.Context, item T) error, onErr func(item T, err error)) error {
	if len(items) == 0 {
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrent)

	var onErrMu sync.Mutex
	for _, item := range items {
		item := item
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			err := task(gctx, item)
			if err == nil {
				return nil
			}
			if gctx.Err() != nil {
				// ctx was cancelled during this task: treat it as the
				// gather-aborting condition, not a per-item warning.
				return err
			}
			onErrMu.Lock()
			if onErr != nil {
				onErr(item, err)
			}
			onErrMu.Unlock()
			return nil
		})
	}

	return g.Wait()
}
