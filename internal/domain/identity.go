package domain

import "time"

// Identity carries the profile fields of one user as loaded from the
// identity store. The feed cache copies what it needs into MatchProfile
// at rebuild time and never writes back.
type Identity struct {
	Username    string
	DisplayName string
	Handle      string
	Bio         string
	Note        string
	Gender      string
	BirthDate   time.Time
	Verified    bool

	// ShadowBanned users are silently invisible: they are never cached
	// and never appear in any feed output.
	ShadowBanned bool

	// HasPicture reports whether the user uploaded a profile picture.
	// The discovery feed only shows profiles with a picture.
	HasPicture bool

	// PictureURL is the resolved display URL, opaque to the cache.
	// Empty when HasPicture is false.
	PictureURL string
}

// AgeAt returns the identity's age in whole years at the given instant.
// Returns 0 when the birth date is unset.
func (i Identity) AgeAt(now time.Time) int {
	if i.BirthDate.IsZero() {
		return 0
	}
	age := now.Year() - i.BirthDate.Year()
	// Subtract one if the birthday has not happened yet this year.
	anniversary := time.Date(now.Year(), i.BirthDate.Month(), i.BirthDate.Day(), 0, 0, 0, 0, time.UTC)
	if now.Before(anniversary) {
		age--
	}
	if age < 0 {
		return 0
	}
	return age
}
