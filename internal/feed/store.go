package feed

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/tripmatch/backend/internal/domain"
)

// snapshotStore is the thread-safe map from location key to the published
// profile snapshot for that location. Snapshots are replaced wholesale by
// rebuilds; the only in-place edit ever made to a published snapshot is the
// like fast path in mutateLike, which runs under the write lock.
//
// The store lock is never held across I/O: rebuild reads happen unlocked and
// only the final replace acquires it. Read-side callers run their filter
// passes under the read lock via read/readAll so profile data never escapes
// the lock by reference.
type snapshotStore struct {
	mu   sync.RWMutex
	data map[string][]*domain.MatchProfile
}

func newSnapshotStore() *snapshotStore {
	return &snapshotStore{data: make(map[string][]*domain.MatchProfile)}
}

// replace atomically publishes snap as the new snapshot for location.
// Full overwrite, no merge. Callers must not retain or modify snap after.
func (s *snapshotStore) replace(location string, snap []*domain.MatchProfile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[location] = snap
}

// size returns the number of cached profiles for location, zero when the
// location is unknown.
func (s *snapshotStore) size(location string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data[location])
}

// read invokes fn with the current snapshot for location (possibly nil)
// while holding the read lock. fn must not retain the slice or the profiles.
func (s *snapshotStore) read(location string, fn func(snap []*domain.MatchProfile)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(s.data[location])
}

// readAll invokes fn with every location's snapshot under the read lock.
func (s *snapshotStore) readAll(fn func(location string, snap []*domain.MatchProfile)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for location, snap := range s.data {
		fn(location, snap)
	}
}

// mutateLike locates the single entry matching (username, tripID) in the
// location's snapshot and adds or removes liker from its like set in place.
// Returns false when no such entry is cached; that is a supported race with
// in-flight rebuilds, not an error, and the next rebuild reconciles it.
func (s *snapshotStore) mutateLike(location, username string, tripID uuid.UUID, liker string, add bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.data[location] {
		if p.Username != username || p.TripID != tripID {
			continue
		}
		if add {
			if p.Likes == nil {
				p.Likes = make(map[string]struct{})
			}
			p.Likes[liker] = struct{}{}
		} else {
			delete(p.Likes, liker)
		}
		return true
	}
	return false
}

// sweep drops every cached profile whose entire date set is strictly before
// cutoff, across all locations. Locations left empty stay in the map as
// empty snapshots. Returns the number of profiles removed.
func (s *snapshotStore) sweep(cutoff time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for location, snap := range s.data {
		kept := snap[:0]
		for _, p := range snap {
			if allBefore(p.Dates, cutoff) {
				removed++
				continue
			}
			kept = append(kept, p)
		}
		s.data[location] = kept
	}
	return removed
}
