package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/pkordes/tripmatch/backend/internal/domain"
	"github.com/pkordes/tripmatch/backend/internal/repo"
)

// RefreshEnqueuer is the slice of the feed cache the membership service
// needs: scheduling a location rebuild after a structural write.
type RefreshEnqueuer interface {
	Enqueue(ctx context.Context, location string)
}

// MembershipService handles joining and leaving trips. Every successful
// write enqueues the location for a feed rebuild; the cache is never edited
// directly for structural changes.
type MembershipService struct {
	members repo.MembershipRepo
	cache   RefreshEnqueuer
}

// NewMembershipService constructs a MembershipService backed by the provided
// repo and cache.
func NewMembershipService(members repo.MembershipRepo, cache RefreshEnqueuer) *MembershipService {
	return &MembershipService{members: members, cache: cache}
}

// Join adds username to the trip and invalidates the location's feed.
func (s *MembershipService) Join(ctx context.Context, location string, tripID uuid.UUID, username string) error {
	if username == "" {
		return fmt.Errorf("service.MembershipService.Join: %w: username is required", domain.ErrValidation)
	}
	if err := s.members.Join(ctx, tripID, username); err != nil {
		return fmt.Errorf("service.MembershipService.Join: %w", err)
	}
	s.cache.Enqueue(ctx, location)
	return nil
}

// Leave removes username from the trip and invalidates the location's feed.
func (s *MembershipService) Leave(ctx context.Context, location string, tripID uuid.UUID, username string) error {
	if username == "" {
		return fmt.Errorf("service.MembershipService.Leave: %w: username is required", domain.ErrValidation)
	}
	if err := s.members.Leave(ctx, tripID, username); err != nil {
		return fmt.Errorf("service.MembershipService.Leave: %w", err)
	}
	s.cache.Enqueue(ctx, location)
	return nil
}
