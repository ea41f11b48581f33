package domain

import "github.com/google/uuid"

// SubEvent is a bookable activity inside a location (a party, a tour, a
// dinner) that trip participants can mark themselves as attending.
type SubEvent struct {
	ID         uuid.UUID
	Name       string
	PictureURL string
}
