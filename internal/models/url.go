// Package models contains the data models of the application.
package models

import (
	"time"

	"github.com/google/uuid"
)

// ShortCode is the compact token appended to the service's base URL
// that identifies a stored original URL.
type ShortCode string

// OriginalURL is the destination URL a short code redirects to.
type OriginalURL string

// URL is a single (short code, original URL) mapping record.
// UserID is empty for anonymously shortened URLs.
type URL struct {
	ID          string      `json:"id,omitempty" db:"id"`
	ShortCode   ShortCode   `json:"short_code" db:"short_code"`
	OriginalURL OriginalURL `json:"original_url" db:"original_url"`
	UserID      string      `json:"user_id,omitempty" db:"user_id"`
	CreatedAt   time.Time   `json:"-" db:"created_at"`
}

// NewURL creates a new URL record with a fresh identifier.
func NewURL(code ShortCode, original OriginalURL, userID string) *URL {
	return &URL{
		ID:          uuid.NewString(),
		ShortCode:   code,
		OriginalURL: original,
		UserID:      userID,
		CreatedAt:   time.Now(),
	}
}
