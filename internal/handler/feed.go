package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/pkordes/tripmatch/backend/internal/domain"
)

// requesterHeader and blockedHeader are set by the fronting auth proxy.
const (
	requesterHeader = "X-Username"
	blockedHeader   = "X-Blocked-Users"
)

// GetFeed handles GET /locations/{location}/feed.
// Query parameters: dates (comma-separated YYYY-MM-DD, required), gender,
// age_min, age_max, page (0-based, default 0), limit (default 20, no cap —
// the cache bounds the result by what is cached).
func (s *Server) GetFeed(w http.ResponseWriter, r *http.Request) {
	location := chi.URLParam(r, "location")

	dates, err := parseDates(r.URL.Query().Get("dates"))
	if err != nil {
		writeValidation(w, err)
		return
	}

	q := domain.FeedQuery{
		TargetDates: dates,
		Gender:      r.URL.Query().Get("gender"),
		Requester:   r.Header.Get(requesterHeader),
		Blocked:     parseBlocked(r.Header.Get(blockedHeader)),
		Page:        0,
		PageSize:    20,
	}
	if q.AgeMin, err = parseOptionalInt(r.URL.Query().Get("age_min"), "age_min"); err != nil {
		writeValidation(w, err)
		return
	}
	if q.AgeMax, err = parseOptionalInt(r.URL.Query().Get("age_max"), "age_max"); err != nil {
		writeValidation(w, err)
		return
	}
	if page, err := parseOptionalInt(r.URL.Query().Get("page"), "page"); err != nil {
		writeValidation(w, err)
		return
	} else if page != nil {
		q.Page = *page
	}
	if limit, err := parseOptionalInt(r.URL.Query().Get("limit"), "limit"); err != nil {
		writeValidation(w, err)
		return
	} else if limit != nil {
		q.PageSize = *limit
	}

	results, err := s.feed.GetFeed(location, q)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			writeValidation(w, err)
			return
		}
		writeInternal(w, err)
		return
	}

	writeJSON(w, http.StatusOK, feedResponse{Data: emptyIfNil(results)})
}

// feedResponse wraps match results so the payload can grow fields without
// breaking clients.
type feedResponse struct {
	Data []domain.MatchResult `json:"data"`
}

// --- parsing helpers --------------------------------------------------------

// parseDates parses a comma-separated list of YYYY-MM-DD values.
func parseDates(raw string) ([]time.Time, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, fmt.Errorf("%w: dates is required", domain.ErrValidation)
	}
	var out []time.Time
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		d, err := time.Parse("2006-01-02", part)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid date %q", domain.ErrValidation, part)
		}
		out = append(out, d)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: dates is required", domain.ErrValidation)
	}
	return out, nil
}

// parseBlocked splits the comma-separated blocked-users header into a set.
func parseBlocked(raw string) map[string]struct{} {
	out := make(map[string]struct{})
	for _, part := range strings.Split(raw, ",") {
		if u := strings.TrimSpace(part); u != "" {
			out[u] = struct{}{}
		}
	}
	return out
}

// parseOptionalInt parses a non-negative integer query parameter, returning
// nil when the parameter is absent.
func parseOptionalInt(raw, name string) (*int, error) {
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return nil, fmt.Errorf("%w: %s must be a non-negative integer", domain.ErrValidation, name)
	}
	return &n, nil
}

// emptyIfNil keeps JSON arrays as [] instead of null.
func emptyIfNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
