package domain

import (
	"time"

	"github.com/google/uuid"
)

// MatchProfile is one cached, pre-joined record: a user's participation in
// one trip group, flattened for read-heavy filtering. There is one profile
// per (username, trip) pair. Profiles live only inside feed snapshots; the
// feed store owns their lifetime.
type MatchProfile struct {
	Username string
	TripID   uuid.UUID

	DisplayName string
	Handle      string
	Bio         string
	Note        string
	Gender      string
	Age         int
	Verified    bool
	HasPicture  bool
	PictureURL  string

	// Dates are the trip's candidate dates reduced to UTC midnight,
	// deduplicated and sorted ascending.
	Dates []time.Time

	// Companions are the other participants of the same trip whose
	// identities resolved during the rebuild.
	Companions []Companion

	// Likes is the set of usernames that liked this profile. It is the
	// only part of a published snapshot that is ever edited in place
	// (by the like fast path, under the store lock).
	Likes map[string]struct{}

	// Attending lists the sub-events this participant signed up for,
	// resolved to display metadata.
	Attending []EventRef
}

// LikedBy reports whether the given username liked this profile.
func (p *MatchProfile) LikedBy(username string) bool {
	_, ok := p.Likes[username]
	return ok
}

// Companion is a fellow trip participant shown alongside a profile.
type Companion struct {
	Username    string
	DisplayName string
	PictureURL  string
}

// EventRef is a sub-event reference resolved to display metadata.
type EventRef struct {
	ID         uuid.UUID
	Name       string
	PictureURL string
}
