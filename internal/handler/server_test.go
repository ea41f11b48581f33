package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/tripmatch/backend/internal/domain"
	"github.com/pkordes/tripmatch/backend/internal/handler"
)

// mockFeedProvider is a test double for handler.FeedProvider.
// Set only the method fields your test needs; unset ones return empty results.
type mockFeedProvider struct {
	getFeed             func(location string, q domain.FeedQuery) ([]domain.MatchResult, error)
	getFriendStatuses   func(friendUsernames []string) []domain.FriendStatus
	getAttendanceCounts func(location string) map[uuid.UUID]int
	getEventAttendees   func(location string, subEventID uuid.UUID, requester string) []domain.MatchResult
}

func (m *mockFeedProvider) GetFeed(location string, q domain.FeedQuery) ([]domain.MatchResult, error) {
	if m.getFeed == nil {
		return nil, nil
	}
	return m.getFeed(location, q)
}

func (m *mockFeedProvider) GetFriendStatuses(friendUsernames []string) []domain.FriendStatus {
	if m.getFriendStatuses == nil {
		return nil
	}
	return m.getFriendStatuses(friendUsernames)
}

func (m *mockFeedProvider) GetAttendanceCounts(location string) map[uuid.UUID]int {
	if m.getAttendanceCounts == nil {
		return nil
	}
	return m.getAttendanceCounts(location)
}

func (m *mockFeedProvider) GetEventAttendees(location string, subEventID uuid.UUID, requester string) []domain.MatchResult {
	if m.getEventAttendees == nil {
		return nil
	}
	return m.getEventAttendees(location, subEventID, requester)
}

var _ handler.FeedProvider = (*mockFeedProvider)(nil)

// mockLikeServicer is a test double for handler.LikeServicer.
type mockLikeServicer struct {
	toggle func(ctx context.Context, location, target string, tripID uuid.UUID, liker string, add bool) error
}

func (m *mockLikeServicer) Toggle(ctx context.Context, location, target string, tripID uuid.UUID, liker string, add bool) error {
	return m.toggle(ctx, location, target, tripID, liker, add)
}

var _ handler.LikeServicer = (*mockLikeServicer)(nil)

// mockMembershipServicer is a test double for handler.MembershipServicer.
type mockMembershipServicer struct {
	join  func(ctx context.Context, location string, tripID uuid.UUID, username string) error
	leave func(ctx context.Context, location string, tripID uuid.UUID, username string) error
}

func (m *mockMembershipServicer) Join(ctx context.Context, location string, tripID uuid.UUID, username string) error {
	return m.join(ctx, location, tripID, username)
}

func (m *mockMembershipServicer) Leave(ctx context.Context, location string, tripID uuid.UUID, username string) error {
	return m.leave(ctx, location, tripID, username)
}

var _ handler.MembershipServicer = (*mockMembershipServicer)(nil)

// ---- helpers ---------------------------------------------------------------

// newHTTPHandler wires a Server with the given mocks into a chi router.
// This mirrors exactly how main.go wires it in production.
func newHTTPHandler(feed handler.FeedProvider, likes handler.LikeServicer, members handler.MembershipServicer) http.Handler {
	r := chi.NewRouter()
	handler.NewServer(feed, likes, members).Routes(r)
	return r
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}
