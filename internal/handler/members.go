package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pkordes/tripmatch/backend/internal/domain"
)

// joinTripRequest is the body of POST .../members.
type joinTripRequest struct {
	Username string `json:"username"`
}

// JoinTrip handles POST /locations/{location}/trips/{tripID}/members.
func (s *Server) JoinTrip(w http.ResponseWriter, r *http.Request) {
	location := chi.URLParam(r, "location")

	tripID, err := uuid.Parse(chi.URLParam(r, "tripID"))
	if err != nil {
		writeNotFound(w, "trip not found")
		return
	}

	var body joinTripRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeValidation(w, fmt.Errorf("%w: invalid request body", domain.ErrValidation))
		return
	}

	if err := s.members.Join(r.Context(), location, tripID, body.Username); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// LeaveTrip handles DELETE /locations/{location}/trips/{tripID}/members/{username}.
func (s *Server) LeaveTrip(w http.ResponseWriter, r *http.Request) {
	location := chi.URLParam(r, "location")
	username := chi.URLParam(r, "username")

	tripID, err := uuid.Parse(chi.URLParam(r, "tripID"))
	if err != nil {
		writeNotFound(w, "trip not found")
		return
	}

	if err := s.members.Leave(r.Context(), location, tripID, username); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// writeServiceError maps the service sentinels onto HTTP statuses.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeNotFound(w, "membership not found")
	case errors.Is(err, domain.ErrValidation):
		writeValidation(w, err)
	default:
		writeInternal(w, err)
	}
}
