package feed

import (
	"context"
	"time"

	"github.com/sourcegraph/conc/pool"
)

// Run drives the two background timers: the queue-drain loop and the expiry
// sweep. It blocks until ctx is cancelled and stops at the next tick
// boundary; in-flight rebuilds are left to finish.
//
// Run only schedules work. Request handlers call the read and mutation APIs
// concurrently with it; the store and queue locks make that safe.
func (c *Cache) Run(ctx context.Context) {
	refresh := time.NewTicker(c.refreshInterval)
	defer refresh.Stop()
	sweep := time.NewTicker(c.sweepInterval)
	defer sweep.Stop()

	c.log.Info("feed: background worker started",
		"refresh_interval", c.refreshInterval, "sweep_interval", c.sweepInterval)

	for {
		select {
		case <-ctx.Done():
			c.log.Info("feed: background worker stopped")
			return
		case <-refresh.C:
			// Detached so a shutdown during a drain pass lets the
			// in-flight rebuilds finish instead of aborting them.
			c.DrainOnce(context.WithoutCancel(ctx))
		case <-sweep.C:
			c.Sweep(c.now())
		}
	}
}

// DrainOnce empties the refresh queue and rebuilds every queued location,
// up to RebuildConcurrency locations in parallel. Rebuild failures are
// logged per location and never stop the rest of the pass. Draining a
// location with no pending structural change just republishes an equivalent
// snapshot, so the pass is idempotent.
func (c *Cache) DrainOnce(ctx context.Context) {
	locations := c.queue.drain()
	if len(locations) == 0 {
		return
	}

	start := c.now()
	p := pool.New().WithContext(ctx).WithMaxGoroutines(c.rebuildConcurrency)
	for _, location := range locations {
		p.Go(func(ctx context.Context) error {
			// Errors are handled here so one bad location cannot
			// cancel or fail the others.
			c.rebuildLogged(ctx, location)
			return nil
		})
	}
	_ = p.Wait()

	c.log.Debug("feed: drain pass complete",
		"locations", len(locations), "duration_ms", time.Since(start).Milliseconds())
}
