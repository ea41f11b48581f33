// Package handler implements the HTTP handlers for the tripmatch API.
// All handlers are methods on Server. Methods are split into domain-specific
// files (feed.go, likes.go, etc.) but all share the same Server struct so
// they can access its dependencies.
//
// Authentication is out of scope: the requesting username and the
// requester's block list arrive in headers set by the fronting auth proxy.
package handler

import (
	"context"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pkordes/tripmatch/backend/internal/domain"
)

// FeedProvider defines the feed-cache reads the handlers depend on.
// Defining the interface here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without a populated cache.
type FeedProvider interface {
	GetFeed(location string, q domain.FeedQuery) ([]domain.MatchResult, error)
	GetFriendStatuses(friendUsernames []string) []domain.FriendStatus
	GetAttendanceCounts(location string) map[uuid.UUID]int
	GetEventAttendees(location string, subEventID uuid.UUID, requester string) []domain.MatchResult
}

// LikeServicer defines the like operations the handlers depend on.
type LikeServicer interface {
	Toggle(ctx context.Context, location, target string, tripID uuid.UUID, liker string, add bool) error
}

// MembershipServicer defines the membership operations the handlers depend on.
type MembershipServicer interface {
	Join(ctx context.Context, location string, tripID uuid.UUID, username string) error
	Leave(ctx context.Context, location string, tripID uuid.UUID, username string) error
}

// Server implements all API endpoints. Wire it in main.go via Routes.
// Methods are in domain-specific files but all operate on this struct.
type Server struct {
	feed    FeedProvider
	likes   LikeServicer
	members MembershipServicer
}

// NewServer constructs the Server with all its dependencies.
func NewServer(feed FeedProvider, likes LikeServicer, members MembershipServicer) *Server {
	return &Server{feed: feed, likes: likes, members: members}
}

// Routes registers every endpoint on r.
func (s *Server) Routes(r chi.Router) {
	r.Get("/healthz", s.GetHealth)

	r.Route("/locations/{location}", func(r chi.Router) {
		r.Get("/feed", s.GetFeed)
		r.Get("/events/counts", s.GetAttendanceCounts)
		r.Get("/events/{eventID}/attendees", s.GetEventAttendees)

		r.Route("/trips/{tripID}", func(r chi.Router) {
			r.Post("/likes", s.ToggleLike)
			r.Post("/members", s.JoinTrip)
			r.Delete("/members/{username}", s.LeaveTrip)
		})
	})

	r.Get("/friends/statuses", s.GetFriendStatuses)
}
