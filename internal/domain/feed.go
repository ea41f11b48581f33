package domain

import (
	"time"

	"github.com/google/uuid"
)

// FeedQuery carries one requester's discovery-feed parameters.
type FeedQuery struct {
	// TargetDates are the dates the requester wants to match around.
	// Must be non-empty; results are ranked by proximity to the first one.
	TargetDates []time.Time

	// Gender, when non-empty, keeps only exact matches.
	Gender string

	// AgeMin is inclusive: profiles with Age >= *AgeMin pass.
	AgeMin *int

	// AgeMax is exclusive: profiles with Age < *AgeMax pass. The
	// asymmetry with AgeMin is deliberate and relied upon by clients.
	AgeMax *int

	// Blocked are usernames the requester blocked; never shown.
	Blocked map[string]struct{}

	// Requester is the calling user, used for the LikedByRequester flag.
	Requester string

	// Page is zero-based; PageSize has no enforced ceiling.
	Page     int
	PageSize int
}

// MatchResult is the projection of a MatchProfile returned to callers.
// It is a value copy: mutating a result never touches the cache.
type MatchResult struct {
	Username    string     `json:"username"`
	TripID      uuid.UUID  `json:"trip_id"`
	DisplayName string     `json:"display_name"`
	Handle      string     `json:"handle"`
	Bio         string     `json:"bio,omitempty"`
	Note        string     `json:"note,omitempty"`
	Gender      string     `json:"gender"`
	Age         int        `json:"age"`
	Verified    bool       `json:"verified"`
	PictureURL  string     `json:"picture_url,omitempty"`
	Dates       []time.Time `json:"dates"`
	Companions  []Companion `json:"companions"`
	Attending   []EventRef  `json:"attending"`

	LikeCount        int  `json:"like_count"`
	LikedByRequester bool `json:"liked_by_requester"`
}

// FriendStatus is a cross-location projection: one friend's cached trip
// participation tagged with the location that owns it.
type FriendStatus struct {
	Location    string      `json:"location"`
	Username    string      `json:"username"`
	TripID      uuid.UUID   `json:"trip_id"`
	DisplayName string      `json:"display_name"`
	PictureURL  string      `json:"picture_url,omitempty"`
	Dates       []time.Time `json:"dates"`
	Attending   []EventRef  `json:"attending"`
}
