package feed_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/tripmatch/backend/internal/domain"
	"github.com/pkordes/tripmatch/backend/internal/feed"
)

// testNow is the frozen clock every cache in this package runs on.
var testNow = time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

// dayN returns testNow's day shifted by n days, at midnight UTC.
func dayN(n int) time.Time {
	return time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, n)
}

// mockSource implements feed.Source with overridable functions, following
// the func-field mock convention used across this repo's tests. Unset
// fields return empty results.
type mockSource struct {
	activeGroups func(ctx context.Context, location string) ([]domain.TripGroup, error)
	identities   func(ctx context.Context, usernames []string) (map[string]domain.Identity, error)
	subEvents    func(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]domain.SubEvent, error)
}

func (m *mockSource) ActiveGroups(ctx context.Context, location string) ([]domain.TripGroup, error) {
	if m.activeGroups == nil {
		return nil, nil
	}
	return m.activeGroups(ctx, location)
}

func (m *mockSource) Identities(ctx context.Context, usernames []string) (map[string]domain.Identity, error) {
	if m.identities == nil {
		return map[string]domain.Identity{}, nil
	}
	return m.identities(ctx, usernames)
}

func (m *mockSource) SubEvents(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]domain.SubEvent, error) {
	if m.subEvents == nil {
		return map[uuid.UUID]domain.SubEvent{}, nil
	}
	return m.subEvents(ctx, ids)
}

// identitiesByUsername is a ready-made Identities implementation serving a
// fixed identity set.
func identitiesByUsername(ids ...domain.Identity) func(context.Context, []string) (map[string]domain.Identity, error) {
	byName := make(map[string]domain.Identity, len(ids))
	for _, id := range ids {
		byName[id.Username] = id
	}
	return func(_ context.Context, usernames []string) (map[string]domain.Identity, error) {
		out := make(map[string]domain.Identity)
		for _, u := range usernames {
			if id, ok := byName[u]; ok {
				out[u] = id
			}
		}
		return out, nil
	}
}

// identityFixture builds an identity with a picture whose age at testNow is
// exactly age (birthday on January 1st, long past by September).
func identityFixture(username, gender string, age int) domain.Identity {
	return domain.Identity{
		Username:    username,
		DisplayName: "User " + username,
		Handle:      "@" + username,
		Gender:      gender,
		BirthDate:   time.Date(testNow.Year()-age, 1, 1, 0, 0, 0, 0, time.UTC),
		HasPicture:  true,
		PictureURL:  "https://pictures.test/profiles/" + username + ".jpg?v=1",
	}
}

// newTestCache builds a cache on the frozen clock with the cold-start fast
// path disabled, so rebuilds only happen when a test asks for them.
func newTestCache(src feed.Source, opts feed.Options) *feed.Cache {
	if opts.Now == nil {
		opts.Now = func() time.Time { return testNow }
	}
	if opts.WarmThreshold == 0 {
		opts.WarmThreshold = -1
	}
	return feed.New(src, slog.New(slog.NewTextHandler(io.Discard, nil)), opts)
}

// mustRebuild rebuilds location and fails the test on error.
func mustRebuild(t *testing.T, c *feed.Cache, location string) {
	t.Helper()
	if err := c.Rebuild(context.Background(), location); err != nil {
		t.Fatalf("rebuild %q: %v", location, err)
	}
}

// feedQuery returns a baseline discovery query for the given target dates.
func feedQuery(requester string, targets ...time.Time) domain.FeedQuery {
	return domain.FeedQuery{
		TargetDates: targets,
		Requester:   requester,
		Page:        0,
		PageSize:    50,
	}
}
