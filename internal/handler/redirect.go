package handler

import (
	"errors"
	"net/http"
	"regexp"

	"github.com/TigerNinja22/Mini-URL/internal/errs"
	"github.com/TigerNinja22/Mini-URL/internal/models"
	"github.com/go-chi/chi/v5"
)

// base58Regexp matches a valid base 58 encoded short code.
var base58Regexp = regexp.MustCompile(`^[A-HJ-NP-Za-km-z1-9]{1,11}$`)

// Redirect serves a redirect to the original URL based on the short code.
//
//	GET /{shortCode}
//
//	HTTP/1.1 307 Temporary Redirect
//	Location: <original URL>
//
// An unknown code yields 404 Not Found; it is an expected outcome
// and is not logged as a fault.
func (h *Handler) Redirect(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	code := chi.URLParam(r, "shortCode")

	if !base58Regexp.MatchString(code) {
		h.textError(w, r, "redirect with code: "+code,
			errs.ErrInvalidRequest, http.StatusBadRequest)
		return
	}

	originalURL, err := h.shortener.Resolve(r.Context(), models.ShortCode(code))
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			h.textError(w, r, "redirect with code: "+code,
				errs.ErrNotFound, http.StatusNotFound)
			return
		}
		h.textError(w, r, "failed to resolve code: "+code,
			err, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Location", string(originalURL))
	w.WriteHeader(http.StatusTemporaryRedirect)
}
