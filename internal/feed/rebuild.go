package feed

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/tripmatch/backend/internal/domain"
)

// Rebuild regenerates location's snapshot from the source of truth and
// publishes it, replacing whatever was cached. All source reads happen
// before the store lock is taken. A source failure aborts this location's
// rebuild only; the previously published snapshot stays in place.
//
// No generation check guards overlapping rebuilds of the same location:
// whichever finishes last wins, and the next drain converges the snapshot.
func (c *Cache) Rebuild(ctx context.Context, location string) error {
	groups, err := c.source.ActiveGroups(ctx, location)
	if err != nil {
		return fmt.Errorf("feed.Cache.Rebuild: load groups for %q: %w", location, err)
	}

	identities, err := c.source.Identities(ctx, participantSet(groups))
	if err != nil {
		return fmt.Errorf("feed.Cache.Rebuild: load identities for %q: %w", location, err)
	}

	events, err := c.source.SubEvents(ctx, subEventSet(groups))
	if err != nil {
		return fmt.Errorf("feed.Cache.Rebuild: load sub-events for %q: %w", location, err)
	}

	snap := buildSnapshot(groups, identities, events, c.now(), c.log.With("location", location))
	c.store.replace(location, snap)
	return nil
}

// rebuildLogged is Rebuild for callers with nowhere to return an error
// (background drains, cold-start fast path). Failures are logged and the
// location is left as it was.
func (c *Cache) rebuildLogged(ctx context.Context, location string) {
	if err := c.Rebuild(ctx, location); err != nil {
		c.log.Error("feed: rebuild failed", "location", location, "error", err)
	}
}

// participantSet returns the distinct leaders and members across groups,
// in first-seen order.
func participantSet(groups []domain.TripGroup) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, g := range groups {
		for _, username := range g.Participants() {
			if _, ok := seen[username]; ok {
				continue
			}
			seen[username] = struct{}{}
			out = append(out, username)
		}
	}
	return out
}

// subEventSet returns the distinct sub-event ids referenced by any group's
// attendance mapping, in first-seen order.
func subEventSet(groups []domain.TripGroup) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{})
	var out []uuid.UUID
	for _, g := range groups {
		for _, ids := range g.Attending {
			for _, id := range ids {
				if _, ok := seen[id]; ok {
					continue
				}
				seen[id] = struct{}{}
				out = append(out, id)
			}
		}
	}
	return out
}

// buildSnapshot is the pure rebuild algorithm: one MatchProfile per
// (group, participant) pair, ordered by day-distance from now to the
// profile's nearest candidate date, closest first.
//
// Participants whose identity did not load are logged and dropped;
// shadow-banned participants are dropped silently and also never listed as
// companions.
func buildSnapshot(
	groups []domain.TripGroup,
	identities map[string]domain.Identity,
	events map[uuid.UUID]domain.SubEvent,
	now time.Time,
	log *slog.Logger,
) []*domain.MatchProfile {
	snap := make([]*domain.MatchProfile, 0, len(groups)*2)

	for _, g := range groups {
		dates := dedupeDays(g.Dates)

		for _, username := range g.Participants() {
			id, ok := identities[username]
			if !ok {
				log.Warn("feed: dropping participant with unresolved identity",
					"username", username, "trip_id", g.ID)
				continue
			}
			if id.ShadowBanned {
				continue
			}

			p := &domain.MatchProfile{
				Username:    username,
				TripID:      g.ID,
				DisplayName: id.DisplayName,
				Handle:      id.Handle,
				Bio:         id.Bio,
				Note:        id.Note,
				Gender:      id.Gender,
				Age:         id.AgeAt(now),
				Verified:    id.Verified,
				HasPicture:  id.HasPicture,
				PictureURL:  id.PictureURL,
				Dates:       slices.Clone(dates),
				Companions:  companionsFor(g, username, identities),
				Likes:       likeSet(g.Likes[username]),
				Attending:   resolveAttendance(g.Attending[username], events),
			}
			snap = append(snap, p)
		}
	}

	// Default presentation order before per-request filtering: closest
	// upcoming date first. Ties break on (username, trip) so repeated
	// rebuilds of unchanged data publish identical order.
	slices.SortStableFunc(snap, func(a, b *domain.MatchProfile) int {
		da, db := nearestDistance(a.Dates, now), nearestDistance(b.Dates, now)
		if da != db {
			return da - db
		}
		if c := strings.Compare(a.Username, b.Username); c != 0 {
			return c
		}
		return strings.Compare(a.TripID.String(), b.TripID.String())
	})

	return snap
}

// companionsFor lists the other participants of g whose identities loaded
// and are not shadow-banned.
func companionsFor(g domain.TripGroup, username string, identities map[string]domain.Identity) []domain.Companion {
	var out []domain.Companion
	for _, other := range g.Participants() {
		if other == username {
			continue
		}
		id, ok := identities[other]
		if !ok || id.ShadowBanned {
			continue
		}
		out = append(out, domain.Companion{
			Username:    other,
			DisplayName: id.DisplayName,
			PictureURL:  id.PictureURL,
		})
	}
	return out
}

// likeSet copies a liker list into a set. The copy matters: the cached set
// is edited in place by the like fast path and must not alias source data.
func likeSet(likers []string) map[string]struct{} {
	set := make(map[string]struct{}, len(likers))
	for _, l := range likers {
		set[l] = struct{}{}
	}
	return set
}

// resolveAttendance maps attendance ids to display metadata, dropping ids
// that did not resolve.
func resolveAttendance(ids []uuid.UUID, events map[uuid.UUID]domain.SubEvent) []domain.EventRef {
	var out []domain.EventRef
	for _, id := range ids {
		ev, ok := events[id]
		if !ok {
			continue
		}
		out = append(out, domain.EventRef{ID: ev.ID, Name: ev.Name, PictureURL: ev.PictureURL})
	}
	return out
}
