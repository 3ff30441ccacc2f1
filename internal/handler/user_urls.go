package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/TigerNinja22/Mini-URL/internal/errs"
	"github.com/TigerNinja22/Mini-URL/internal/session"
)

type userURLResponsePayload struct {
	ShortURL    string `json:"short_url"`
	OriginalURL string `json:"original_url"`
}

// GetUserURLs returns the short and original URLs created by the
// authenticated user. This is the data behind the dashboard page.
//
// Request:
//
//	GET /api/user/urls
//
// Response:
//
//	HTTP/1.1 200 OK
//	Content-Type: application/json
//
//	[
//	    {
//	        "short_url": "http://<return address>/<short code>",
//	        "original_url": "http://..."
//	    },
//	    ...
//	]
//
// 204 No Content is returned when the user has no URLs yet.
func (h *Handler) GetUserURLs(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	user, ok := session.FromContext(r.Context())
	if !ok {
		h.textError(w, r, "no user found",
			errs.ErrUnauthorized, http.StatusUnauthorized)
		return
	}

	urls, err := h.store.GetAllByUserID(r.Context(), user.ID)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		h.textError(w, r, "failed to get urls", err, http.StatusInternalServerError)
		return
	}

	response := make([]userURLResponsePayload, len(urls))
	for i, u := range urls {
		response[i].ShortURL = h.shortURL(u.ShortCode)
		response[i].OriginalURL = string(u.OriginalURL)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	if err := json.NewEncoder(w).Encode(response); err != nil {
		h.logger.With(r.Context()).Errorf("failed to encode response: %v", err)
	}
}
