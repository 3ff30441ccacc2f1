// Package shortener maps original URLs to short, unique codes and resolves
// codes back to URLs. Codes are random 64-bit tokens in base 58 encoding
// to reduce confusion in character output (0OIl+/ are not used); the unique
// index of the storage layer is the authoritative collision guard and a
// violation triggers regeneration.
package shortener

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/TigerNinja22/Mini-URL/internal/errs"
	"github.com/TigerNinja22/Mini-URL/internal/logger"
	"github.com/TigerNinja22/Mini-URL/internal/models"
	"github.com/TigerNinja22/Mini-URL/internal/repository"
	"github.com/itchyny/base58-go"
)

// maxAllocateAttempts bounds collision retries before the allocation
// is reported as failed.
const maxAllocateAttempts = 5

// ErrAllocationFailed is returned when no free short code was found
// within the allowed number of attempts.
var ErrAllocationFailed = errors.New("failed to allocate a unique short code")

// Service implements the URL registry operations.
type Service struct {
	store  repository.URLStorage
	logger logger.Logger
}

// New creates a new URL registry service.
func New(store repository.URLStorage, l logger.Logger) (*Service, error) {
	if store == nil {
		return nil, fmt.Errorf("%w: store", errs.ErrNilDependency)
	}
	if l == nil {
		return nil, fmt.Errorf("%w: logger", errs.ErrNilDependency)
	}
	return &Service{store: store, logger: l}, nil
}

// Resolve looks up a short code and returns the stored original URL.
// Returns errs.ErrNotFound on a miss. Side-effect free.
func (s *Service) Resolve(ctx context.Context, code models.ShortCode) (models.OriginalURL, error) {
	record, err := s.store.GetURL(ctx, code)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return "", errs.ErrNotFound
		}
		return "", fmt.Errorf("resolve %q: %w", code, err)
	}

	return record.OriginalURL, nil
}

// Allocate produces a short code for the given original URL, persists the
// mapping and returns the code. When the URL has been shortened before, the
// existing code is returned together with errs.ErrConflict so that the
// boundary layer can report the duplicate.
func (s *Service) Allocate(
	ctx context.Context,
	original models.OriginalURL,
	userID string,
) (models.ShortCode, error) {
	if original == "" {
		return "", fmt.Errorf("%w: empty url", errs.ErrInvalidRequest)
	}

	// Fast path: the URL has already been shortened.
	if record, err := s.store.GetURLByOriginal(ctx, original); err == nil {
		return record.ShortCode, errs.ErrConflict
	} else if !errors.Is(err, errs.ErrNotFound) {
		return "", fmt.Errorf("allocate: %w", err)
	}

	for attempt := 0; attempt < maxAllocateAttempts; attempt++ {
		code, err := generateCode()
		if err != nil {
			return "", fmt.Errorf("generate short code: %w", err)
		}

		err = s.store.SaveURL(ctx, models.NewURL(code, original, userID))
		if err == nil {
			return code, nil
		}
		if errors.Is(err, errs.ErrConflict) {
			// Either the code collided or another request stored the same
			// URL first. Resolve the latter to the canonical code.
			if record, lookupErr := s.store.GetURLByOriginal(ctx, original); lookupErr == nil {
				return record.ShortCode, errs.ErrConflict
			}
			s.logger.With(ctx).Debugf("short code collision, retrying: %s", code)
			continue
		}
		return "", fmt.Errorf("allocate: %w", err)
	}

	return "", ErrAllocationFailed
}

// generateCode produces a random short code: 8 random bytes interpreted
// as an unsigned integer and encoded with the Bitcoin base 58 alphabet.
func generateCode() (models.ShortCode, error) {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}

	number := binary.BigEndian.Uint64(buf)
	encoded := base58.BitcoinEncoding.EncodeUint64(number)

	return models.ShortCode(encoded), nil
}
