// Package memstore implements the storage interfaces in process memory.
// It backs DSN-less runs and tests. Safe for concurrent use.
package memstore

import (
	"context"
	"sort"
	"sync"

	"github.com/TigerNinja22/Mini-URL/internal/errs"
	"github.com/TigerNinja22/Mini-URL/internal/models"
)

// Store is an in-memory implementation of repository.Storage.
type Store struct {
	// mu protects all maps below.
	mu sync.RWMutex

	urls       map[models.ShortCode]models.URL
	byOriginal map[models.OriginalURL]models.ShortCode
	byUsername map[string]models.User
	byEmail    map[string]string // email -> username
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{
		urls:       make(map[models.ShortCode]models.URL),
		byOriginal: make(map[models.OriginalURL]models.ShortCode),
		byUsername: make(map[string]models.User),
		byEmail:    make(map[string]string),
	}
}

// SaveURL saves a URL record.
// If the short code is already occupied, errs.ErrConflict is returned.
func (s *Store) SaveURL(_ context.Context, u *models.URL) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.urls[u.ShortCode]; ok {
		return errs.ErrConflict
	}
	s.urls[u.ShortCode] = *u
	s.byOriginal[u.OriginalURL] = u.ShortCode

	return nil
}

// GetURL retrieves a URL record by its short code.
// If the record is not found, errs.ErrNotFound is returned.
func (s *Store) GetURL(_ context.Context, code models.ShortCode) (*models.URL, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, found := s.urls[code]
	if !found {
		return nil, errs.ErrNotFound
	}

	return &record, nil
}

// GetURLByOriginal retrieves a URL record by its original URL.
// If no record exists, errs.ErrNotFound is returned.
func (s *Store) GetURLByOriginal(
	_ context.Context, original models.OriginalURL,
) (*models.URL, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	code, found := s.byOriginal[original]
	if !found {
		return nil, errs.ErrNotFound
	}
	record := s.urls[code]

	return &record, nil
}

// GetAllByUserID retrieves all URL records created by a specific user.
// If no records are found, errs.ErrNotFound is returned.
func (s *Store) GetAllByUserID(_ context.Context, userID string) ([]*models.URL, error) {
	s.mu.RLock()

	all := make([]*models.URL, 0)
	for _, record := range s.urls {
		if record.UserID == userID {
			record := record
			all = append(all, &record)
		}
	}

	s.mu.RUnlock()

	if len(all) == 0 {
		return nil, errs.ErrNotFound
	}

	// Same order as the database query: oldest first.
	sort.Slice(all, func(i, j int) bool {
		return all[i].CreatedAt.Before(all[j].CreatedAt)
	})

	return all, nil
}

// CountURLs returns the total number of stored URL records.
func (s *Store) CountURLs(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.urls), nil
}

// SaveUser saves a new user record. Returns errs.ErrUsernameTaken or
// errs.ErrEmailTaken when the corresponding key is already occupied.
func (s *Store) SaveUser(_ context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byUsername[u.Username]; ok {
		return errs.ErrUsernameTaken
	}
	if _, ok := s.byEmail[u.Email]; ok {
		return errs.ErrEmailTaken
	}
	s.byUsername[u.Username] = *u
	s.byEmail[u.Email] = u.Username

	return nil
}

// GetUserByUsername retrieves a user record by username.
// If the user is not found, errs.ErrNotFound is returned.
func (s *Store) GetUserByUsername(_ context.Context, username string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, found := s.byUsername[username]
	if !found {
		return nil, errs.ErrNotFound
	}

	return &record, nil
}

// GetUserByEmail retrieves a user record by email.
// If the user is not found, errs.ErrNotFound is returned.
func (s *Store) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	username, found := s.byEmail[email]
	if !found {
		return nil, errs.ErrNotFound
	}
	record := s.byUsername[username]

	return &record, nil
}

// CountUsers returns the total number of registered users.
func (s *Store) CountUsers(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.byUsername), nil
}

// Ping reports that no database stands behind this storage.
func (s *Store) Ping(_ context.Context) error {
	return errs.ErrDBNotConnected
}

// Close is a no-op for the in-memory store.
func (s *Store) Close() error {
	return nil
}
