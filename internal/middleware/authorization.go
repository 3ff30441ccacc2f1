// Package middleware contains the HTTP middleware of the application.
package middleware

import (
	"errors"
	"net/http"

	"github.com/TigerNinja22/Mini-URL/internal/config"
	"github.com/TigerNinja22/Mini-URL/internal/logger"
	"github.com/TigerNinja22/Mini-URL/internal/session"
)

// Authorization checks for a session cookie and, when a valid token is
// present, attaches the authenticated user to the request context.
// Requests without a token pass through anonymously.
func Authorization(cfg *config.Config, log logger.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		f := func(w http.ResponseWriter, r *http.Request) {
			authCookie, err := r.Cookie(cfg.Session.CookieName)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			id, err := session.GetUserID(authCookie.Value, cfg.Session.SigningKey)
			if err != nil {
				log.With(r.Context()).Debugf("invalid session token: %v", err)
				next.ServeHTTP(w, r)
				return
			}

			log.With(r.Context(), "id", id).Debug("session token contains user ID")
			ctx := session.NewContext(r.Context(), &session.User{ID: id})

			next.ServeHTTP(w, r.WithContext(ctx))
		}

		return http.HandlerFunc(f)
	}
}

// OnlyWithToken rejects requests that carry no valid session token.
func OnlyWithToken(cfg *config.Config, log logger.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		f := func(w http.ResponseWriter, r *http.Request) {
			authCookie, err := r.Cookie(cfg.Session.CookieName)
			if err != nil {
				if errors.Is(err, http.ErrNoCookie) {
					http.Error(w, "authorization cookie not found",
						http.StatusUnauthorized)
					log.With(r.Context()).Debug("authorization cookie not found")
					return
				}
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}

			id, err := session.GetUserID(authCookie.Value, cfg.Session.SigningKey)
			if err != nil {
				http.Error(w, "invalid session token", http.StatusUnauthorized)
				log.With(r.Context()).Debugf("invalid session token: %v", err)
				return
			}

			ctx := session.NewContext(r.Context(), &session.User{ID: id})

			next.ServeHTTP(w, r.WithContext(ctx))
		}

		return http.HandlerFunc(f)
	}
}
