package repo

import (
	"context"

	"github.com/google/uuid"

	"github.com/pkordes/tripmatch/backend/internal/domain"
)

// FeedSource bundles the three bulk-read repos into the single source
// interface the feed cache consumes. It exists so cmd/api can hand the cache
// one dependency instead of three.
type FeedSource struct {
	groups     GroupRepo
	identities IdentityRepo
	events     SubEventRepo
}

// NewFeedSource constructs a FeedSource from the individual repos.
func NewFeedSource(groups GroupRepo, identities IdentityRepo, events SubEventRepo) *FeedSource {
	return &FeedSource{groups: groups, identities: identities, events: events}
}

// ActiveGroups implements feed.Source.
func (s *FeedSource) ActiveGroups(ctx context.Context, location string) ([]domain.TripGroup, error) {
	return s.groups.ActiveGroups(ctx, location)
}

// Identities implements feed.Source.
func (s *FeedSource) Identities(ctx context.Context, usernames []string) (map[string]domain.Identity, error) {
	return s.identities.Identities(ctx, usernames)
}

// SubEvents implements feed.Source.
func (s *FeedSource) SubEvents(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]domain.SubEvent, error) {
	return s.events.SubEvents(ctx, ids)
}
