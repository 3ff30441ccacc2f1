// Package repository provides the interfaces of storage.
package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/TigerNinja22/Mini-URL/internal/config"
	"github.com/TigerNinja22/Mini-URL/internal/errs"
	"github.com/TigerNinja22/Mini-URL/internal/logger"
	"github.com/TigerNinja22/Mini-URL/internal/models"
	"github.com/TigerNinja22/Mini-URL/internal/repository/memstore"
	"github.com/TigerNinja22/Mini-URL/internal/repository/postgres"
	"github.com/TigerNinja22/Mini-URL/migrations"
	_ "github.com/jackc/pgx/v5/stdlib"
	sqldblogger "github.com/simukti/sqldb-logger"
)

// URLStorage is the interface of the URL mapping store.
type URLStorage interface {
	// SaveURL saves a single URL record.
	// Returns errs.ErrConflict if the short code is already occupied.
	SaveURL(ctx context.Context, url *models.URL) error

	// GetURL retrieves a URL record by its short code.
	// Returns errs.ErrNotFound on a miss.
	GetURL(ctx context.Context, code models.ShortCode) (*models.URL, error)

	// GetURLByOriginal retrieves a URL record by its original URL.
	// Returns errs.ErrNotFound on a miss.
	GetURLByOriginal(ctx context.Context, original models.OriginalURL) (*models.URL, error)

	// GetAllByUserID retrieves all URL records created by a specific user.
	// Returns errs.ErrNotFound when the user has none.
	GetAllByUserID(ctx context.Context, userID string) ([]*models.URL, error)

	// CountURLs returns the total number of stored URL records.
	CountURLs(ctx context.Context) (int, error)
}

// UserStorage is the interface of the account store.
type UserStorage interface {
	// SaveUser saves a new user record. Returns errs.ErrUsernameTaken or
	// errs.ErrEmailTaken when the corresponding unique constraint fires.
	SaveUser(ctx context.Context, user *models.User) error

	// GetUserByUsername retrieves a user record by username.
	// Returns errs.ErrNotFound on a miss.
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)

	// GetUserByEmail retrieves a user record by email.
	// Returns errs.ErrNotFound on a miss.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// CountUsers returns the total number of registered users.
	CountUsers(ctx context.Context) (int, error)
}

// Storage combines the URL and account stores with health checking.
type Storage interface {
	URLStorage
	UserStorage

	// Ping checks the health of the storage.
	Ping(ctx context.Context) error

	// Close closes the underlying connections.
	Close() error
}

// Interface implementation guards.
var (
	_ Storage = (*postgres.Store)(nil)
	_ Storage = (*memstore.Store)(nil)
)

// NewStorage returns a Storage implementation based on the configuration:
// postgres when a DSN is provided, in-memory otherwise.
func NewStorage(ctx context.Context, cfg *config.Config, l logger.Logger) (Storage, error) {
	if cfg == nil {
		return nil, fmt.Errorf("%w: config", errs.ErrNilDependency)
	}
	if l == nil {
		return nil, fmt.Errorf("%w: logger", errs.ErrNilDependency)
	}

	if cfg.DSN == "" {
		l.Info("DSN is not provided, using in-memory storage")
		return memstore.New(), nil
	}

	db, err := sql.Open("pgx", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open the database: %w", err)
	}

	// Log every query to the database. The wrapping driver opens its own
	// connections, so the plain handle is released.
	if ql, ok := l.(sqldblogger.Logger); ok {
		plain := db
		db = sqldblogger.OpenDriver(cfg.DSN, plain.Driver(), ql)
		if err = plain.Close(); err != nil {
			l.Errorf("close plain database handle: %v", err)
		}
	}

	// Check connectivity and DSN correctness.
	if err = db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to the database: %w", err)
	}

	if err = migrations.Up(db); err != nil {
		return nil, fmt.Errorf("failed to migrate DB: %w", err)
	}

	return postgres.New(db, l)
}
