package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pkordes/tripmatch/backend/internal/domain"
)

// GetAttendanceCounts handles GET /locations/{location}/events/counts.
// Returns a map of sub-event id to attendee count over the cached feed.
func (s *Server) GetAttendanceCounts(w http.ResponseWriter, r *http.Request) {
	location := chi.URLParam(r, "location")
	writeJSON(w, http.StatusOK, countsResponse{Counts: s.feed.GetAttendanceCounts(location)})
}

type countsResponse struct {
	Counts map[uuid.UUID]int `json:"counts"`
}

// GetEventAttendees handles GET /locations/{location}/events/{eventID}/attendees.
func (s *Server) GetEventAttendees(w http.ResponseWriter, r *http.Request) {
	location := chi.URLParam(r, "location")

	eventID, err := uuid.Parse(chi.URLParam(r, "eventID"))
	if err != nil {
		writeNotFound(w, "event not found")
		return
	}

	requester := r.Header.Get(requesterHeader)
	attendees := s.feed.GetEventAttendees(location, eventID, requester)
	writeJSON(w, http.StatusOK, attendeesResponse{Data: emptyIfNil(attendees)})
}

type attendeesResponse struct {
	Data []domain.MatchResult `json:"data"`
}
