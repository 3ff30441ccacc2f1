package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/TigerNinja22/Mini-URL/internal/errs"
)

type loginRequestPayload struct {
	// Login is the username or the email of the account.
	Login    string `json:"login"`
	Password string `json:"password"`
}

// Login authenticates a user by username or email and issues
// a session cookie.
//
// Request:
//
//	POST /api/user/login
//	Content-Type: application/json
//	{
//	    "login": "alice",
//	    "password": "pw12345678"
//	}
//
// Response:
//
//	HTTP/1.1 200 OK
//	Set-Cookie: Authorization=<session token>
//
// Failed authentication yields 401 Unauthorized without distinguishing
// an unknown login from a wrong password.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var payload loginRequestPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.authError(w, r, "failed to decode request", err, http.StatusBadRequest)
		return
	}

	userID, err := h.accounts.Authenticate(r.Context(), payload.Login, payload.Password)
	if err != nil {
		if errors.Is(err, errs.ErrInvalidCredentials) {
			h.authError(w, r, "login", err, http.StatusUnauthorized)
			return
		}
		h.authError(w, r, "failed to authenticate user",
			err, http.StatusInternalServerError)
		return
	}

	if err = h.setSessionCookie(w, userID); err != nil {
		h.authError(w, r, "failed to build session token",
			err, http.StatusInternalServerError)
		return
	}

	h.writeAuthResponse(w, r, userID)
}

// Logout expires the session cookie.
//
//	POST /api/user/logout
//
//	HTTP/1.1 200 OK
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.config.Session.CookieName,
		Value:    "",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Path:     "/",
	})

	w.WriteHeader(http.StatusOK)
}
