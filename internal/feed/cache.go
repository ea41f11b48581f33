// Package feed implements the per-location, in-memory matching cache: a
// materialized view that flattens relational trip/membership/like state into
// ranked, filterable profile snapshots, kept fresh by a debounced background
// rebuild pipeline with an incremental fast path for like toggles.
//
// The cache is eventually consistent with the durable store by design.
// Structural writes (trip created/joined/left) enqueue their location for
// rebuild; like toggles edit the cached entry directly and are persisted
// durably elsewhere. Readers always see a complete, previously published
// snapshot, never a partially built one.
package feed

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/tripmatch/backend/internal/domain"
)

// Source is the bulk read interface the cache rebuilds from. Implementations
// own all durable state; the cache never writes through it.
type Source interface {
	// ActiveGroups returns the trip groups for location whose candidate
	// dates are not entirely in the past.
	ActiveGroups(ctx context.Context, location string) ([]domain.TripGroup, error)

	// Identities batch-loads profile data for the given usernames.
	// Unknown usernames are simply absent from the result map.
	Identities(ctx context.Context, usernames []string) (map[string]domain.Identity, error)

	// SubEvents batch-loads sub-event metadata for the given ids.
	// Unknown ids are simply absent from the result map.
	SubEvents(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]domain.SubEvent, error)
}

// Options tunes a Cache. The zero value gets sensible defaults from New.
type Options struct {
	// WarmThreshold is the cached-profile count below which an Enqueue
	// additionally triggers an immediate out-of-band rebuild, so a first
	// request for a location is never served from an empty cache for
	// long. Set to a negative value to disable the fast path.
	WarmThreshold int

	// RebuildConcurrency bounds how many locations one drain pass
	// rebuilds in parallel.
	RebuildConcurrency int

	// RefreshInterval is the drain-timer period for Run.
	RefreshInterval time.Duration

	// SweepInterval is the expiry-sweep period for Run.
	SweepInterval time.Duration

	// Now is the clock; injectable for deterministic tests.
	Now func() time.Time
}

// Cache owns the snapshot store and the refresh queue for every location.
// Construct one per process and share it; all methods are safe for
// concurrent use.
type Cache struct {
	source Source
	log    *slog.Logger
	now    func() time.Time

	warmThreshold      int
	rebuildConcurrency int
	refreshInterval    time.Duration
	sweepInterval      time.Duration

	store *snapshotStore
	queue *refreshQueue
}

// New constructs a Cache around the given source. Pass the process logger;
// the cache logs rebuild problems and worker lifecycle events through it.
func New(source Source, log *slog.Logger, opts Options) *Cache {
	if opts.WarmThreshold == 0 {
		opts.WarmThreshold = 2
	}
	if opts.RebuildConcurrency <= 0 {
		opts.RebuildConcurrency = 4
	}
	if opts.RefreshInterval <= 0 {
		opts.RefreshInterval = 30 * time.Second
	}
	if opts.SweepInterval <= 0 {
		opts.SweepInterval = time.Hour
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Cache{
		source:             source,
		log:                log,
		now:                opts.Now,
		warmThreshold:      opts.WarmThreshold,
		rebuildConcurrency: opts.RebuildConcurrency,
		refreshInterval:    opts.RefreshInterval,
		sweepInterval:      opts.SweepInterval,
		store:              newSnapshotStore(),
		queue:              newRefreshQueue(),
	}
}

// Enqueue schedules location for rebuild on the next drain pass. Repeated
// calls before a drain coalesce into one rebuild. When the location's cache
// is cold (below the warm threshold), an immediate rebuild is started in the
// background as well, so the upcoming drain is not the first chance to
// populate it. The background rebuild is detached from ctx's cancellation:
// the caller is typically a request handler whose context dies as soon as
// the response is written, and the rebuild must outlive it.
func (c *Cache) Enqueue(ctx context.Context, location string) {
	c.queue.add(location)
	if c.warmThreshold >= 0 && c.store.size(location) < c.warmThreshold {
		go c.rebuildLogged(context.WithoutCancel(ctx), location)
	}
}

// AddOrRemoveLike applies a like toggle to the cached entry for
// (username, tripID) in location, if one is cached. A missing entry is a
// silent no-op: the caller's durable write is the system of record and the
// next rebuild reconciles the cache.
func (c *Cache) AddOrRemoveLike(location, username string, tripID uuid.UUID, liker string, add bool) {
	c.store.mutateLike(location, username, tripID, liker, add)
}

// Sweep removes every cached profile whose entire date set falls before the
// current day: a trip keeps its profiles through the end of its last
// candidate date and disappears the day after. This mirrors the rebuild's
// active-group filter, so a sweep never removes what the next rebuild would
// re-add. Pure in-memory filter; the durable store is untouched.
func (c *Cache) Sweep(now time.Time) {
	cutoff := day(now)
	if n := c.store.sweep(cutoff); n > 0 {
		c.log.Debug("feed: swept expired profiles", "count", n)
	}
}
