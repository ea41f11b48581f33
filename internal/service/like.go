// Package service contains the business logic for the tripmatch API.
// Services validate inputs, enforce the write-then-invalidate ordering
// against the feed cache, and orchestrate repo calls. No SQL lives here —
// services depend on repo interfaces, not implementations.
package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/pkordes/tripmatch/backend/internal/domain"
	"github.com/pkordes/tripmatch/backend/internal/repo"
)

// LikeCache is the slice of the feed cache the like service needs: the
// in-place fast path that makes a like visible without waiting for a rebuild.
type LikeCache interface {
	AddOrRemoveLike(location, username string, tripID uuid.UUID, liker string, add bool)
}

// LikeService toggles likes. The database write is the system of record and
// happens first; the cache edit afterwards is best effort and silently does
// nothing when the target entry is not cached (the next rebuild reconciles).
type LikeService struct {
	likes repo.LikeRepo
	cache LikeCache
}

// NewLikeService constructs a LikeService backed by the provided repo and cache.
func NewLikeService(likes repo.LikeRepo, cache LikeCache) *LikeService {
	return &LikeService{likes: likes, cache: cache}
}

// Toggle adds or removes liker's like of target within the trip.
func (s *LikeService) Toggle(ctx context.Context, location, target string, tripID uuid.UUID, liker string, add bool) error {
	if target == "" || liker == "" {
		return fmt.Errorf("service.LikeService.Toggle: %w: target and liker are required", domain.ErrValidation)
	}
	if target == liker {
		return fmt.Errorf("service.LikeService.Toggle: %w: cannot like yourself", domain.ErrValidation)
	}

	var err error
	if add {
		err = s.likes.Add(ctx, tripID, target, liker)
	} else {
		err = s.likes.Remove(ctx, tripID, target, liker)
	}
	if err != nil {
		return fmt.Errorf("service.LikeService.Toggle: %w", err)
	}

	s.cache.AddOrRemoveLike(location, target, tripID, liker, add)
	return nil
}
