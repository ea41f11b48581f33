package feed

import (
	"fmt"
	"slices"

	"github.com/pkordes/tripmatch/backend/internal/domain"
)

// proximityWindowDays is the day-distance below which a profile's candidate
// date counts as matching a requester's target date.
const proximityWindowDays = 14

// GetFeed runs the discovery query against location's current snapshot and
// returns one page of projected results. An unknown location yields an empty
// page, never an error.
//
// Pipeline, in order: profiles must have a picture; must have at least one
// candidate date within the proximity window of any target date; ranked
// ascending by nearest distance to the first target date; blocked usernames
// removed; then the optional gender and age filters. AgeMin is inclusive,
// AgeMax exclusive; clients rely on that asymmetry.
func (c *Cache) GetFeed(location string, q domain.FeedQuery) ([]domain.MatchResult, error) {
	if len(q.TargetDates) == 0 {
		return nil, fmt.Errorf("feed.Cache.GetFeed: %w: at least one target date is required", domain.ErrValidation)
	}
	if q.PageSize <= 0 {
		return nil, fmt.Errorf("feed.Cache.GetFeed: %w: page size must be positive", domain.ErrValidation)
	}

	var results []domain.MatchResult
	c.store.read(location, func(snap []*domain.MatchProfile) {
		matches := make([]*domain.MatchProfile, 0, len(snap))
		for _, p := range snap {
			if !p.HasPicture {
				continue
			}
			if nearestDistanceAny(p.Dates, q.TargetDates) >= proximityWindowDays {
				continue
			}
			matches = append(matches, p)
		}

		// Rank by proximity to the first target date only; the full
		// target list widens the filter but the first date is what the
		// requester is primarily planning around.
		first := q.TargetDates[0]
		slices.SortStableFunc(matches, func(a, b *domain.MatchProfile) int {
			return nearestDistance(a.Dates, first) - nearestDistance(b.Dates, first)
		})

		kept := matches[:0]
		for _, p := range matches {
			if _, blocked := q.Blocked[p.Username]; blocked {
				continue
			}
			if q.Gender != "" && p.Gender != q.Gender {
				continue
			}
			if q.AgeMin != nil && p.Age < *q.AgeMin {
				continue
			}
			if q.AgeMax != nil && p.Age >= *q.AgeMax {
				continue
			}
			kept = append(kept, p)
		}

		results = projectPage(kept, q.Page, q.PageSize, q.Requester)
	})
	return results, nil
}

// projectPage paginates profiles (skip page*pageSize, take pageSize) and
// copies each survivor into a MatchResult. Everything is deep-copied so
// results stay valid after the store lock is released.
func projectPage(profiles []*domain.MatchProfile, page, pageSize int, requester string) []domain.MatchResult {
	start := page * pageSize
	if start >= len(profiles) {
		return nil
	}
	end := min(start+pageSize, len(profiles))

	out := make([]domain.MatchResult, 0, end-start)
	for _, p := range profiles[start:end] {
		out = append(out, projectProfile(p, requester))
	}
	return out
}

// projectProfile copies one cached profile into its caller-facing shape.
func projectProfile(p *domain.MatchProfile, requester string) domain.MatchResult {
	return domain.MatchResult{
		Username:         p.Username,
		TripID:           p.TripID,
		DisplayName:      p.DisplayName,
		Handle:           p.Handle,
		Bio:              p.Bio,
		Note:             p.Note,
		Gender:           p.Gender,
		Age:              p.Age,
		Verified:         p.Verified,
		PictureURL:       p.PictureURL,
		Dates:            slices.Clone(p.Dates),
		Companions:       slices.Clone(p.Companions),
		Attending:        slices.Clone(p.Attending),
		LikeCount:        len(p.Likes),
		LikedByRequester: p.LikedBy(requester),
	}
}
