package handler

import (
	"encoding/json"
	"net/http"
)

type getStatsResponse struct {
	URLs  int `json:"urls"`  // number of all shortened urls
	Users int `json:"users"` // number of all users
}

// GetStats reveals the total number of users and shortened URLs.
//
//	GET /api/internal/stats
//
//	HTTP/1.1 200 OK
//	{"urls": 10, "users": 2}
func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	var response getStatsResponse

	count, err := h.store.CountURLs(r.Context())
	if err != nil {
		h.textError(w, r, "count urls", err, http.StatusInternalServerError)
		return
	}
	response.URLs = count

	count, err = h.store.CountUsers(r.Context())
	if err != nil {
		h.textError(w, r, "count users", err, http.StatusInternalServerError)
		return
	}
	response.Users = count

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	if err := json.NewEncoder(w).Encode(response); err != nil {
		h.logger.With(r.Context()).Errorf("failed to encode response: %v", err)
	}
}
