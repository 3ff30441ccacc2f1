package shortener

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/TigerNinja22/Mini-URL/internal/errs"
	"github.com/TigerNinja22/Mini-URL/internal/logger"
	"github.com/TigerNinja22/Mini-URL/internal/models"
	"github.com/TigerNinja22/Mini-URL/internal/repository"
	"github.com/TigerNinja22/Mini-URL/internal/repository/memstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T, store repository.URLStorage) *Service {
	t.Helper()
	s, err := New(store, logger.NewForTest())
	require.NoError(t, err)
	return s
}

func TestNew(t *testing.T) {
	_, err := New(nil, logger.NewForTest())
	assert.Error(t, err)

	_, err = New(memstore.New(), nil)
	assert.Error(t, err)

	_, err = New(memstore.New(), logger.NewForTest())
	assert.NoError(t, err)
}

func TestAllocateResolveRoundTrip(t *testing.T) {
	s := newTestService(t, memstore.New())
	ctx := context.Background()

	const original = models.OriginalURL("https://example.com/a")

	code, err := s.Allocate(ctx, original, "")
	require.NoError(t, err)
	require.NotEmpty(t, code)

	resolved, err := s.Resolve(ctx, code)
	require.NoError(t, err)
	assert.Equal(t, original, resolved)
}

func TestResolve_NotFound(t *testing.T) {
	s := newTestService(t, memstore.New())

	_, err := s.Resolve(context.Background(), "zzzz")
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestAllocate_EmptyURL(t *testing.T) {
	s := newTestService(t, memstore.New())

	_, err := s.Allocate(context.Background(), "", "")
	assert.ErrorIs(t, err, errs.ErrInvalidRequest)
}

func TestAllocate_SameURLReturnsExistingCode(t *testing.T) {
	s := newTestService(t, memstore.New())
	ctx := context.Background()

	const original = models.OriginalURL("https://go.dev/")

	first, err := s.Allocate(ctx, original, "")
	require.NoError(t, err)

	second, err := s.Allocate(ctx, original, "")
	assert.ErrorIs(t, err, errs.ErrConflict)
	assert.Equal(t, first, second)
}

func TestAllocate_DistinctCodes(t *testing.T) {
	s := newTestService(t, memstore.New())
	ctx := context.Background()

	seen := make(map[models.ShortCode]bool)
	for i := 0; i < 100; i++ {
		original := models.OriginalURL(fmt.Sprintf("https://example.com/%d", i))
		code, err := s.Allocate(ctx, original, "")
		require.NoError(t, err)
		require.False(t, seen[code], "duplicate short code: %s", code)
		seen[code] = true
	}
}

func TestAllocate_Parallel(t *testing.T) {
	s := newTestService(t, memstore.New())
	ctx := context.Background()

	const n = 50

	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		codes = make(map[models.ShortCode]bool)
	)

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			original := models.OriginalURL(fmt.Sprintf("https://example.com/p/%d", i))
			code, err := s.Allocate(ctx, original, "")
			assert.NoError(t, err)

			mu.Lock()
			codes[code] = true
			mu.Unlock()
		}(i)
	}
	wg.Wait()

	assert.Len(t, codes, n, "parallel allocations produced duplicate codes")
}

// collidingStore reports a conflict for the first few saves to exercise
// the collision retry loop.
type collidingStore struct {
	*memstore.Store
	mu        sync.Mutex
	conflicts int
}

func (s *collidingStore) SaveURL(ctx context.Context, u *models.URL) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.conflicts > 0 {
		s.conflicts--
		return errs.ErrConflict
	}
	return s.Store.SaveURL(ctx, u)
}

func TestAllocate_RetriesOnCollision(t *testing.T) {
	store := &collidingStore{Store: memstore.New(), conflicts: 2}
	s := newTestService(t, store)

	code, err := s.Allocate(context.Background(), "https://example.com/retry", "")
	require.NoError(t, err)
	assert.NotEmpty(t, code)
}

func TestAllocate_GivesUpAfterMaxAttempts(t *testing.T) {
	store := &collidingStore{Store: memstore.New(), conflicts: maxAllocateAttempts}
	s := newTestService(t, store)

	_, err := s.Allocate(context.Background(), "https://example.com/saturated", "")
	assert.ErrorIs(t, err, ErrAllocationFailed)
}

// brokenStore simulates storage faults.
type brokenStore struct {
	*memstore.Store
}

var errIntentionallyBroken = errors.New("intentionally broken store")

func (s *brokenStore) SaveURL(context.Context, *models.URL) error {
	return errIntentionallyBroken
}

func (s *brokenStore) GetURL(context.Context, models.ShortCode) (*models.URL, error) {
	return nil, errIntentionallyBroken
}

func TestStorageFaultIsSurfaced(t *testing.T) {
	s := newTestService(t, &brokenStore{Store: memstore.New()})
	ctx := context.Background()

	_, err := s.Allocate(ctx, "https://example.com/broken", "")
	assert.ErrorIs(t, err, errIntentionallyBroken)

	_, err = s.Resolve(ctx, "AnyCode1")
	assert.ErrorIs(t, err, errIntentionallyBroken)
}

func TestGenerateCode_Base58Alphabet(t *testing.T) {
	for i := 0; i < 100; i++ {
		code, err := generateCode()
		require.NoError(t, err)
		for _, r := range string(code) {
			assert.NotContains(t, "0OIl+/", string(r),
				"code %q contains a confusing character", code)
		}
	}
}
