// Package handler implements the HTTP boundary of the service. Expected
// outcomes of the core operations (not found, conflicts, invalid
// credentials) are rendered as dedicated responses; storage faults are
// logged and rendered as a generic failure.
package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/TigerNinja22/Mini-URL/internal/accounts"
	"github.com/TigerNinja22/Mini-URL/internal/config"
	"github.com/TigerNinja22/Mini-URL/internal/errs"
	"github.com/TigerNinja22/Mini-URL/internal/logger"
	"github.com/TigerNinja22/Mini-URL/internal/middleware"
	"github.com/TigerNinja22/Mini-URL/internal/models"
	"github.com/TigerNinja22/Mini-URL/internal/repository"
	"github.com/TigerNinja22/Mini-URL/internal/session"
	"github.com/TigerNinja22/Mini-URL/internal/shortener"
	"github.com/TigerNinja22/Mini-URL/pkg/accesslog"
	"github.com/go-chi/chi/v5"
	"github.com/nanmu42/gzip"
)

// Handler handles the HTTP requests of the service.
type Handler struct {
	store     repository.Storage
	shortener *shortener.Service
	accounts  *accounts.Service
	logger    logger.Logger
	config    *config.Config
}

// New constructs a new Handler, ensuring that the dependencies are valid.
func New(
	store repository.Storage,
	cfg *config.Config,
	l logger.Logger,
) (*Handler, error) {
	if store == nil {
		return nil, fmt.Errorf("%w: store", errs.ErrNilDependency)
	}
	if cfg == nil {
		return nil, fmt.Errorf("%w: config", errs.ErrNilDependency)
	}
	if l == nil {
		return nil, fmt.Errorf("%w: logger", errs.ErrNilDependency)
	}

	urls, err := shortener.New(store, l)
	if err != nil {
		return nil, fmt.Errorf("new shortener service: %w", err)
	}

	users, err := accounts.New(store, cfg.BcryptCost, l)
	if err != nil {
		return nil, fmt.Errorf("new accounts service: %w", err)
	}

	return &Handler{
		store:     store,
		shortener: urls,
		accounts:  users,
		logger:    l,
		config:    cfg,
	}, nil
}

// Register sets up the routes and middleware of the service
// and returns the resulting http.Handler.
func (h *Handler) Register(r chi.Router) http.Handler {
	r.Use(accesslog.Handler(h.logger))
	r.Use(gzip.DefaultHandler().WrapHandler)
	r.Use(middleware.Decompress(h.logger))
	r.Use(middleware.Authorization(h.config, h.logger))

	r.Post("/", h.ShortenText)
	r.Get("/ping", h.Ping)
	r.Get("/{shortCode}", h.Redirect)

	r.Route("/api", func(r chi.Router) {
		r.Post("/shorten", h.ShortenJSON)
		r.Get("/internal/stats", h.GetStats)

		r.Route("/user", func(r chi.Router) {
			r.Post("/register", h.RegisterUser)
			r.Post("/login", h.Login)
			r.Post("/logout", h.Logout)

			r.With(middleware.OnlyWithToken(h.config, h.logger)).
				Get("/urls", h.GetUserURLs)
		})
	})

	return r
}

// textError writes an error message to the response in plain text.
// Server-side errors are logged, expected outcomes are not.
func (h *Handler) textError(w http.ResponseWriter, r *http.Request, msg string, err error, code int) {
	if code >= 500 {
		h.logger.With(r.Context()).Errorf("%s: %v", msg, err)
	}
	http.Error(w, fmt.Sprintf("%s: %s", err, msg), code)
}

// shortURL renders the user-facing short URL for a code.
func (h *Handler) shortURL(code models.ShortCode) string {
	scheme := "http"
	if h.config.TLSEnabled {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s", scheme, h.config.Server.ReturnAddress, code)
}

// setSessionCookie issues a session token for the user and attaches it
// to the response as an HttpOnly cookie.
func (h *Handler) setSessionCookie(w http.ResponseWriter, userID string) error {
	token, err := session.BuildToken(
		userID, h.config.Session.SigningKey, h.config.Session.Expiration)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     h.config.Session.CookieName,
		Value:    token,
		Expires:  time.Now().Add(h.config.Session.Expiration),
		HttpOnly: true,
		Path:     "/",
	})

	return nil
}
