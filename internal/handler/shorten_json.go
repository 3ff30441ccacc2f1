package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/TigerNinja22/Mini-URL/internal/errs"
	"github.com/TigerNinja22/Mini-URL/internal/models"
	"github.com/TigerNinja22/Mini-URL/internal/session"
	"github.com/asaskevich/govalidator"
)

type (
	shortenJSONRequestPayload struct {
		URL string `json:"url"`
	}

	shortenJSONResponsePayload struct {
		Result  string `json:"result"`
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
)

// ShortenJSON handles the shortening of a long URL.
//
// Request:
//
//	POST /api/shorten
//	Content-Type: application/json
//	{
//	    "url": "https://example.com"
//	}
//
// Response:
//
//	HTTP/1.1 201 Created
//	Content-Type: application/json
//	{
//	    "result": "http://<return address>/<short code>",
//	    "success": true,
//	    "message": "OK"
//	}
func (h *Handler) ShortenJSON(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	contentType := r.Header.Get("Content-Type")
	if strings.ToLower(strings.TrimSpace(contentType)) != "application/json" {
		h.shortenJSONError(w, r, "bad content-type: "+contentType,
			errs.ErrInvalidRequest, http.StatusBadRequest)
		return
	}

	var payload shortenJSONRequestPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.shortenJSONError(w, r, "failed to decode request",
			err, http.StatusBadRequest)
		return
	}

	if len(payload.URL) == 0 {
		h.shortenJSONError(w, r, "url field is empty",
			errs.ErrInvalidRequest, http.StatusBadRequest)
		return
	}

	if !govalidator.IsURL(payload.URL) {
		h.shortenJSONError(w, r, "provided url isn't valid: "+payload.URL,
			errs.ErrInvalidRequest, http.StatusBadRequest)
		return
	}

	var userID string
	if u, ok := session.FromContext(r.Context()); ok {
		userID = u.ID
	}

	code, err := h.shortener.Allocate(
		r.Context(), models.OriginalURL(payload.URL), userID)
	if err != nil && !errors.Is(err, errs.ErrConflict) {
		h.shortenJSONError(w, r, "failed to shorten url",
			err, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	switch {
	case errors.Is(err, errs.ErrConflict):
		w.WriteHeader(http.StatusConflict)
	default:
		w.WriteHeader(http.StatusCreated)
	}

	result := shortenJSONResponsePayload{
		Result:  h.shortURL(code),
		Success: true,
		Message: "OK",
	}
	if err := json.NewEncoder(w).Encode(result); err != nil {
		h.logger.With(r.Context()).Errorf("failed to encode response: %v", err)
	}
}

// shortenJSONError encodes an error as JSON and writes it to the response.
// Server-side errors are logged.
func (h *Handler) shortenJSONError(
	w http.ResponseWriter, r *http.Request, message string, err error, code int,
) {
	if code >= 500 {
		h.logger.With(r.Context()).Errorf("%s: %v", message, err)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	err = json.NewEncoder(w).Encode(shortenJSONResponsePayload{
		Success: false,
		Message: fmt.Sprintf("%s: %s", message, err),
	})
	if err != nil {
		h.logger.With(r.Context()).Errorf("failed to encode response: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
