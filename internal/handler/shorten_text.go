package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/TigerNinja22/Mini-URL/internal/errs"
	"github.com/TigerNinja22/Mini-URL/internal/models"
	"github.com/TigerNinja22/Mini-URL/internal/session"
	"github.com/asaskevich/govalidator"
)

// ShortenText handles the shortening of a long URL sent as plain text.
//
// Request:
//
//	POST /
//	Content-Type: text/plain
//
//	https://example.com
//
// Response:
//
//	HTTP/1.1 201 Created
//	Content-Type: text/plain; charset=utf-8
//
//	http://<return address>/<short code>
//
// When the URL has been shortened before, 409 Conflict is returned
// with the previously allocated short URL in the body.
func (h *Handler) ShortenText(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	contentType := r.Header.Get("Content-Type")
	if r.Header.Get("Content-Encoding") == "" && !isTextPlainContentType(contentType) {
		h.textError(w, r, "bad content-type: "+contentType,
			errs.ErrInvalidRequest, http.StatusBadRequest)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		h.textError(w, r, "failed to read request body",
			err, http.StatusInternalServerError)
		return
	}

	if len(body) == 0 {
		h.textError(w, r, "body is empty",
			errs.ErrInvalidRequest, http.StatusBadRequest)
		return
	}

	originalURL := strings.TrimSpace(string(body))
	if !govalidator.IsURL(originalURL) {
		h.textError(w, r, "invalid url: "+originalURL,
			errs.ErrInvalidRequest, http.StatusBadRequest)
		return
	}

	var userID string
	if u, ok := session.FromContext(r.Context()); ok {
		userID = u.ID
	}

	code, err := h.shortener.Allocate(
		r.Context(), models.OriginalURL(originalURL), userID)
	if err != nil && !errors.Is(err, errs.ErrConflict) {
		h.textError(w, r, "failed to shorten url: "+originalURL,
			err, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	switch {
	case errors.Is(err, errs.ErrConflict):
		w.WriteHeader(http.StatusConflict)
	default:
		w.WriteHeader(http.StatusCreated)
	}

	if _, err = fmt.Fprint(w, h.shortURL(code)); err != nil {
		h.logger.With(r.Context()).Errorf("failed to write response: %v", err)
	}
}

// isTextPlainContentType returns true if the content type is text/plain.
func isTextPlainContentType(contentType string) bool {
	contentType = strings.ToLower(strings.TrimSpace(contentType))
	if i := strings.Index(contentType, ";"); i > -1 {
		contentType = contentType[0:i]
	}
	return contentType == "text/plain"
}
