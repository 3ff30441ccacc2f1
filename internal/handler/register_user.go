package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/TigerNinja22/Mini-URL/internal/errs"
)

type (
	registerRequestPayload struct {
		Username string `json:"username"`
		Password string `json:"password"`
		Email    string `json:"email"`
	}

	authResponsePayload struct {
		UserID  string `json:"user_id,omitempty"`
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
)

// RegisterUser creates a new account and logs the caller in.
//
// Request:
//
//	POST /api/user/register
//	Content-Type: application/json
//	{
//	    "username": "alice",
//	    "password": "pw12345678",
//	    "email": "a@x.com"
//	}
//
// Response:
//
//	HTTP/1.1 200 OK
//	Set-Cookie: Authorization=<session token>
//	{
//	    "user_id": "...",
//	    "success": true,
//	    "message": "OK"
//	}
//
// An occupied username or email yields 409 Conflict with a message
// naming the offending field.
func (h *Handler) RegisterUser(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var payload registerRequestPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.authError(w, r, "failed to decode request", err, http.StatusBadRequest)
		return
	}

	userID, err := h.accounts.Register(
		r.Context(), payload.Username, payload.Password, payload.Email)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrUsernameTaken):
			h.authError(w, r, "register", err, http.StatusConflict)
		case errors.Is(err, errs.ErrEmailTaken):
			h.authError(w, r, "register", err, http.StatusConflict)
		case errors.Is(err, errs.ErrInvalidRequest):
			h.authError(w, r, "register", err, http.StatusBadRequest)
		default:
			h.authError(w, r, "failed to register user",
				err, http.StatusInternalServerError)
		}
		return
	}

	if err = h.setSessionCookie(w, userID); err != nil {
		h.authError(w, r, "failed to build session token",
			err, http.StatusInternalServerError)
		return
	}

	h.writeAuthResponse(w, r, userID)
}

// authError encodes an authentication flow error as JSON.
// Server-side errors are logged.
func (h *Handler) authError(
	w http.ResponseWriter, r *http.Request, message string, err error, code int,
) {
	if code >= 500 {
		h.logger.With(r.Context()).Errorf("%s: %v", message, err)
		// Do not leak internals to the client.
		err = errors.New("internal error")
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	encErr := json.NewEncoder(w).Encode(authResponsePayload{
		Success: false,
		Message: err.Error(),
	})
	if encErr != nil {
		h.logger.With(r.Context()).Errorf("failed to encode response: %v", encErr)
	}
}

func (h *Handler) writeAuthResponse(w http.ResponseWriter, r *http.Request, userID string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	err := json.NewEncoder(w).Encode(authResponsePayload{
		UserID:  userID,
		Success: true,
		Message: "OK",
	})
	if err != nil {
		h.logger.With(r.Context()).Errorf("failed to encode response: %v", err)
	}
}
