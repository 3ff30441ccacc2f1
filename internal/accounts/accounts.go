// Package accounts registers and authenticates users. Passwords are stored
// only as bcrypt hashes; the salt and work factor live inside the hash, so
// verification is self-contained.
package accounts

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/TigerNinja22/Mini-URL/internal/errs"
	"github.com/TigerNinja22/Mini-URL/internal/logger"
	"github.com/TigerNinja22/Mini-URL/internal/models"
	"github.com/TigerNinja22/Mini-URL/internal/repository"
	"github.com/asaskevich/govalidator"
	"golang.org/x/crypto/bcrypt"
)

// Credential limits. Username bounds follow the registration form of the
// web layer; the password upper bound is what bcrypt can digest.
const (
	MinUsernameLen = 4
	MaxUsernameLen = 36
	MinPasswordLen = 8
	MaxPasswordLen = 72
)

// Service implements the credential store operations.
type Service struct {
	store  repository.UserStorage
	cost   int
	logger logger.Logger
}

// New creates a new credential store service. cost is the bcrypt work
// factor; values outside the supported range fall back to the default.
func New(store repository.UserStorage, cost int, l logger.Logger) (*Service, error) {
	if store == nil {
		return nil, fmt.Errorf("%w: store", errs.ErrNilDependency)
	}
	if l == nil {
		return nil, fmt.Errorf("%w: logger", errs.ErrNilDependency)
	}
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Service{store: store, cost: cost, logger: l}, nil
}

// Register creates a new user and returns its ID. The username and email
// pre-checks are a fast path; the storage-level unique constraints remain
// the authoritative guard and report the same taken errors when two
// registrations race.
func (s *Service) Register(ctx context.Context, username, password, email string) (string, error) {
	if err := validateCredentials(username, password, email); err != nil {
		return "", err
	}

	if _, err := s.store.GetUserByUsername(ctx, username); err == nil {
		return "", errs.ErrUsernameTaken
	} else if !errors.Is(err, errs.ErrNotFound) {
		return "", fmt.Errorf("check username: %w", err)
	}

	if _, err := s.store.GetUserByEmail(ctx, email); err == nil {
		return "", errs.ErrEmailTaken
	} else if !errors.Is(err, errs.ErrNotFound) {
		return "", fmt.Errorf("check email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	user := models.NewUser(username, string(hash), email)
	if err = s.store.SaveUser(ctx, user); err != nil {
		if errors.Is(err, errs.ErrUsernameTaken) || errors.Is(err, errs.ErrEmailTaken) {
			return "", err
		}
		return "", fmt.Errorf("save user: %w", err)
	}

	return user.ID, nil
}

// Authenticate verifies the identifier/password pair and returns the user
// ID. The identifier is matched against usernames first, then emails.
// An unknown identifier and a wrong password are indistinguishable:
// both yield errs.ErrInvalidCredentials.
func (s *Service) Authenticate(ctx context.Context, identifier, password string) (string, error) {
	user, err := s.store.GetUserByUsername(ctx, identifier)
	if errors.Is(err, errs.ErrNotFound) {
		user, err = s.store.GetUserByEmail(ctx, identifier)
	}
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return "", errs.ErrInvalidCredentials
		}
		return "", fmt.Errorf("look up user: %w", err)
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return "", errs.ErrInvalidCredentials
		}
		return "", fmt.Errorf("compare password: %w", err)
	}

	return user.ID, nil
}

func validateCredentials(username, password, email string) error {
	if l := utf8.RuneCountInString(username); l < MinUsernameLen || l > MaxUsernameLen {
		return fmt.Errorf("%w: username must be %d-%d characters",
			errs.ErrInvalidRequest, MinUsernameLen, MaxUsernameLen)
	}
	if l := len(password); l < MinPasswordLen || l > MaxPasswordLen {
		return fmt.Errorf("%w: password must be %d-%d characters",
			errs.ErrInvalidRequest, MinPasswordLen, MaxPasswordLen)
	}
	if !govalidator.IsEmail(email) {
		return fmt.Errorf("%w: invalid email", errs.ErrInvalidRequest)
	}
	return nil
}
