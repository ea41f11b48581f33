// Package domain contains the core data types for the tripmatch application.
// This package has no dependencies beyond uuid and time and is imported by
// every other internal package (repo, feed, service, handler).
package domain

import (
	"time"

	"github.com/google/uuid"
)

// TripGroup is a planned outing anchored to one location: a leader, the
// members who joined, the users invited but not yet joined, and the candidate
// dates the group is considering. It is the source entity the feed cache is
// rebuilt from; the cache never mutates it.
type TripGroup struct {
	ID       uuid.UUID
	Location string
	Leader   string
	Members  []string
	Invited  []string

	// Dates are the candidate outing dates. Precision is whatever the
	// booking flow stored; the cache reduces them to whole days.
	Dates []time.Time

	// Likes maps a participant's username to the usernames that liked
	// that participant within this group.
	Likes map[string][]string

	// Attending maps a participant's username to the ordered sub-event ids
	// that participant signed up for.
	Attending map[string][]uuid.UUID
}

// Participants returns the leader followed by all members.
// Invited users are not participants until they join.
func (g TripGroup) Participants() []string {
	out := make([]string, 0, len(g.Members)+1)
	out = append(out, g.Leader)
	out = append(out, g.Members...)
	return out
}
