package feed

import (
	"slices"

	"github.com/google/uuid"

	"github.com/pkordes/tripmatch/backend/internal/domain"
)

// Cross-location and per-event projections. Unlike GetFeed, none of these
// apply the profile-picture filter: they are explicit lookups over people the
// caller already knows about, not a discovery surface. That asymmetry is
// intentional and preserved.

// GetFriendStatuses scans every cached location for entries belonging to the
// given usernames and returns them tagged with their owning location. Cost is
// linear in the total number of cached profiles, which is bounded by the
// number of users with an active trip.
func (c *Cache) GetFriendStatuses(friendUsernames []string) []domain.FriendStatus {
	if len(friendUsernames) == 0 {
		return nil
	}
	friends := make(map[string]struct{}, len(friendUsernames))
	for _, u := range friendUsernames {
		friends[u] = struct{}{}
	}

	var out []domain.FriendStatus
	c.store.readAll(func(location string, snap []*domain.MatchProfile) {
		for _, p := range snap {
			if _, ok := friends[p.Username]; !ok {
				continue
			}
			out = append(out, domain.FriendStatus{
				Location:    location,
				Username:    p.Username,
				TripID:      p.TripID,
				DisplayName: p.DisplayName,
				PictureURL:  p.PictureURL,
				Dates:       slices.Clone(p.Dates),
				Attending:   slices.Clone(p.Attending),
			})
		}
	})
	return out
}

// GetAttendanceCounts tallies, per sub-event id, how many cached profiles in
// location list it as attended.
func (c *Cache) GetAttendanceCounts(location string) map[uuid.UUID]int {
	counts := make(map[uuid.UUID]int)
	c.store.read(location, func(snap []*domain.MatchProfile) {
		for _, p := range snap {
			for _, ev := range p.Attending {
				counts[ev.ID]++
			}
		}
	})
	return counts
}

// GetEventAttendees returns the cached profiles in location attending the
// given sub-event, in snapshot order, projected the same way as GetFeed
// results. No date-proximity, age, or gender filters apply: this is an
// explicit attendee listing, not a feed.
func (c *Cache) GetEventAttendees(location string, subEventID uuid.UUID, requester string) []domain.MatchResult {
	var out []domain.MatchResult
	c.store.read(location, func(snap []*domain.MatchProfile) {
		for _, p := range snap {
			if !slices.ContainsFunc(p.Attending, func(ev domain.EventRef) bool { return ev.ID == subEventID }) {
				continue
			}
			out = append(out, projectProfile(p, requester))
		}
	})
	return out
}
