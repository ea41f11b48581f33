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

// toggleLikeRequest is the body of POST .../likes.
type toggleLikeRequest struct {
	Target string `json:"target"`
	Add    bool   `json:"add"`
}

// ToggleLike handles POST /locations/{location}/trips/{tripID}/likes.
// The liker is the authenticated requester.
func (s *Server) ToggleLike(w http.ResponseWriter, r *http.Request) {
	location := chi.URLParam(r, "location")

	tripID, err := uuid.Parse(chi.URLParam(r, "tripID"))
	if err != nil {
		writeNotFound(w, "trip not found")
		return
	}

	var body toggleLikeRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeValidation(w, fmt.Errorf("%w: invalid request body", domain.ErrValidation))
		return
	}

	liker := r.Header.Get(requesterHeader)
	if err := s.likes.Toggle(r.Context(), location, body.Target, tripID, liker, body.Add); err != nil {
		if errors.Is(err, domain.ErrValidation) {
			writeValidation(w, err)
			return
		}
		writeInternal(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
