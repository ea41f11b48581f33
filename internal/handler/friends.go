package handler

import (
	"net/http"
	"strings"

	"github.com/pkordes/tripmatch/backend/internal/domain"
)

// GetFriendStatuses handles GET /friends/statuses?usernames=a,b.
// Returns the cached trip participation of each named friend, tagged with
// the owning location. An empty username list yields an empty result.
func (s *Server) GetFriendStatuses(w http.ResponseWriter, r *http.Request) {
	var usernames []string
	for _, part := range strings.Split(r.URL.Query().Get("usernames"), ",") {
		if u := strings.TrimSpace(part); u != "" {
			usernames = append(usernames, u)
		}
	}

	statuses := s.feed.GetFriendStatuses(usernames)
	writeJSON(w, http.StatusOK, statusesResponse{Data: emptyIfNil(statuses)})
}

type statusesResponse struct {
	Data []domain.FriendStatus `json:"data"`
}
