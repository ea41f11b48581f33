package feed_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/tripmatch/backend/internal/domain"
	"github.com/pkordes/tripmatch/backend/internal/feed"
)

// TestSweep_removesFullyPastProfiles verifies that a profile whose every
// candidate date is past is removed, while profiles with any remaining date
// survive.
func TestSweep_removesFullyPastProfiles(t *testing.T) {
	past := domain.TripGroup{ID: uuid.New(), Location: "salou", Leader: "old", Dates: []time.Time{dayN(-5), dayN(-3)}}
	mixed := domain.TripGroup{ID: uuid.New(), Location: "salou", Leader: "mixed", Dates: []time.Time{dayN(-3), dayN(4)}}
	future := domain.TripGroup{ID: uuid.New(), Location: "salou", Leader: "new", Dates: []time.Time{dayN(2)}}

	src := &mockSource{
		activeGroups: func(_ context.Context, _ string) ([]domain.TripGroup, error) {
			return []domain.TripGroup{past, mixed, future}, nil
		},
		identities: identitiesByUsername(
			identityFixture("old", "f", 30),
			identityFixture("mixed", "f", 30),
			identityFixture("new", "f", 30),
		),
	}
	c := newTestCache(src, feed.Options{})
	mustRebuild(t, c, "salou")
	require.Len(t, c.GetFriendStatuses([]string{"old", "mixed", "new"}), 3)

	c.Sweep(testNow)

	statuses := c.GetFriendStatuses([]string{"old", "mixed", "new"})
	names := make([]string, len(statuses))
	for i, s := range statuses {
		names[i] = s.Username
	}
	assert.ElementsMatch(t, []string{"mixed", "new"}, names)
}

// TestSweep_keepsTodaysTrips verifies the grace boundary: a trip whose only
// date is today survives a sweep run later the same day and disappears the
// next day.
func TestSweep_keepsTodaysTrips(t *testing.T) {
	today := domain.TripGroup{ID: uuid.New(), Location: "salou", Leader: "alice", Dates: []time.Time{dayN(0)}}
	src := &mockSource{
		activeGroups: func(_ context.Context, _ string) ([]domain.TripGroup, error) {
			return []domain.TripGroup{today}, nil
		},
		identities: identitiesByUsername(identityFixture("alice", "f", 30)),
	}
	c := newTestCache(src, feed.Options{})
	mustRebuild(t, c, "salou")

	c.Sweep(testNow) // later the same day
	require.Len(t, c.GetFriendStatuses([]string{"alice"}), 1)

	c.Sweep(testNow.AddDate(0, 0, 1))
	assert.Empty(t, c.GetFriendStatuses([]string{"alice"}))
}

// TestAddOrRemoveLike_missingEntryIsNoop verifies a like toggle against an
// uncached entry neither errors nor creates state.
func TestAddOrRemoveLike_missingEntryIsNoop(t *testing.T) {
	c := newTestCache(&mockSource{}, feed.Options{})

	c.AddOrRemoveLike("salou", "alice", uuid.New(), "carol", true)
	c.AddOrRemoveLike("nowhere", "bob", uuid.New(), "carol", false)

	results, err := c.GetFeed("salou", feedQuery("carol", dayN(0)))
	require.NoError(t, err)
	assert.Empty(t, results)
}

// TestAddOrRemoveLike_removeUndoesAdd verifies the remove path clears both
// the count and the requester flag.
func TestAddOrRemoveLike_removeUndoesAdd(t *testing.T) {
	tripID := uuid.New()
	src := &mockSource{
		activeGroups: func(_ context.Context, _ string) ([]domain.TripGroup, error) {
			return []domain.TripGroup{{
				ID: tripID, Location: "salou", Leader: "alice", Dates: []time.Time{dayN(1)},
			}}, nil
		},
		identities: identitiesByUsername(identityFixture("alice", "f", 30)),
	}
	c := newTestCache(src, feed.Options{})
	mustRebuild(t, c, "salou")

	c.AddOrRemoveLike("salou", "alice", tripID, "carol", true)
	c.AddOrRemoveLike("salou", "alice", tripID, "carol", true) // idempotent add

	results, err := c.GetFeed("salou", feedQuery("carol", dayN(1)))
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, 1, results[0].LikeCount)
	assert.True(t, results[0].LikedByRequester)

	c.AddOrRemoveLike("salou", "alice", tripID, "carol", false)

	results, err = c.GetFeed("salou", feedQuery("carol", dayN(1)))
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Zero(t, results[0].LikeCount)
	assert.False(t, results[0].LikedByRequester)
}

// TestAddOrRemoveLike_seedsFromRebuiltLikeSets verifies likes loaded during
// a rebuild and likes applied through the fast path share one set.
func TestAddOrRemoveLike_seedsFromRebuiltLikeSets(t *testing.T) {
	tripID := uuid.New()
	src := &mockSource{
		activeGroups: func(_ context.Context, _ string) ([]domain.TripGroup, error) {
			return []domain.TripGroup{{
				ID: tripID, Location: "salou", Leader: "alice", Dates: []time.Time{dayN(1)},
				Likes: map[string][]string{"alice": {"dave"}},
			}}, nil
		},
		identities: identitiesByUsername(identityFixture("alice", "f", 30)),
	}
	c := newTestCache(src, feed.Options{})
	mustRebuild(t, c, "salou")

	c.AddOrRemoveLike("salou", "alice", tripID, "carol", true)

	results, err := c.GetFeed("salou", feedQuery("carol", dayN(1)))
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, 2, results[0].LikeCount)
	assert.True(t, results[0].LikedByRequester)
}
