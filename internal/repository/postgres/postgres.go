// Package postgres implements the storage interfaces on top of PostgreSQL.
// Unique-constraint violations are the authoritative uniqueness guard and
// get mapped to the application's conflict errors.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/TigerNinja22/Mini-URL/internal/errs"
	"github.com/TigerNinja22/Mini-URL/internal/logger"
	"github.com/TigerNinja22/Mini-URL/internal/models"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// Unique constraint names created by the migrations. The constraint that
// fired decides which conflict error the caller gets.
const (
	shortCodeConstraint = "url_short_code_key"
	usernameConstraint  = "users_username_key"
	emailConstraint     = "users_email_key"
)

// Store is a PostgreSQL-backed implementation of repository.Storage.
type Store struct {
	db     *sql.DB
	logger logger.Logger
}

// New creates a new Store over an established database connection.
func New(db *sql.DB, l logger.Logger) (*Store, error) {
	if db == nil {
		return nil, fmt.Errorf("%w: *sql.DB", errs.ErrNilDependency)
	}
	if l == nil {
		return nil, fmt.Errorf("%w: logger", errs.ErrNilDependency)
	}
	return &Store{db: db, logger: l}, nil
}

// SaveURL saves a new URL record to the database.
// If the short code is already occupied, errs.ErrConflict is returned.
func (s *Store) SaveURL(ctx context.Context, u *models.URL) error {
	const q = `
		INSERT INTO url
			(id, short_code, original_url, user_id)
		VALUES
			($1, $2, $3, NULLIF($4, ''))
	`

	_, err := s.db.ExecContext(ctx, q, u.ID, u.ShortCode, u.OriginalURL, u.UserID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == pgerrcode.UniqueViolation {
				return errs.ErrConflict
			}
			return fmt.Errorf("save url with query (%s): %w",
				formatQuery(q), formatPgError(pgErr),
			)
		}

		return fmt.Errorf("save url with query (%s): %w", formatQuery(q), err)
	}

	return nil
}

// GetURL retrieves a URL record from the database by its short code.
// If the record does not exist, errs.ErrNotFound is returned.
func (s *Store) GetURL(ctx context.Context, code models.ShortCode) (*models.URL, error) {
	const q = `
		SELECT
			id, short_code, original_url, COALESCE(user_id::text, '')
		FROM
			url
		WHERE
			short_code = $1
	`

	u := new(models.URL)
	err := s.db.QueryRowContext(ctx, q, code).Scan(
		&u.ID,
		&u.ShortCode,
		&u.OriginalURL,
		&u.UserID,
	)
	if err != nil {
		return nil, s.retrieveError(q, err)
	}

	return u, nil
}

// GetURLByOriginal retrieves a URL record from the database
// by its original URL. If no record exists, errs.ErrNotFound is returned.
func (s *Store) GetURLByOriginal(
	ctx context.Context, original models.OriginalURL,
) (*models.URL, error) {
	const q = `
		SELECT
			id, short_code, original_url, COALESCE(user_id::text, '')
		FROM
			url
		WHERE
			original_url = $1
	`

	u := new(models.URL)
	err := s.db.QueryRowContext(ctx, q, original).Scan(
		&u.ID,
		&u.ShortCode,
		&u.OriginalURL,
		&u.UserID,
	)
	if err != nil {
		return nil, s.retrieveError(q, err)
	}

	return u, nil
}

// GetAllByUserID retrieves all URL records created by a specific user.
// If no records are found, errs.ErrNotFound is returned.
func (s *Store) GetAllByUserID(ctx context.Context, userID string) ([]*models.URL, error) {
	const q = `
		SELECT
			short_code, original_url
		FROM
			url
		WHERE
			user_id = $1
		ORDER BY
			created_at
	`

	rows, err := s.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, s.retrieveError(q, err)
	}
	defer func() {
		if err = rows.Close(); err != nil {
			s.logger.Errorf("close rows: %v", err)
		}
	}()

	all := make([]*models.URL, 0)
	for rows.Next() {
		u := new(models.URL)
		if err = rows.Scan(&u.ShortCode, &u.OriginalURL); err != nil {
			return nil, fmt.Errorf(
				"retrieve urls with query (%s): %w", formatQuery(q), err,
			)
		}
		all = append(all, u)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("retrieve urls with query (%s): %w", formatQuery(q), err)
	}

	if len(all) == 0 {
		return nil, errs.ErrNotFound
	}

	return all, nil
}

// CountURLs returns the total number of stored URL records.
func (s *Store) CountURLs(ctx context.Context) (int, error) {
	const q = `SELECT COUNT(*) FROM url`

	var count int
	if err := s.db.QueryRowContext(ctx, q).Scan(&count); err != nil {
		return 0, fmt.Errorf("count urls: %w", err)
	}

	return count, nil
}

// SaveUser saves a new user record to the database. The unique constraints
// on username and email decide the outcome of concurrent registrations:
// errs.ErrUsernameTaken or errs.ErrEmailTaken is returned accordingly.
func (s *Store) SaveUser(ctx context.Context, u *models.User) error {
	const q = `
		INSERT INTO users
			(id, username, password_hash, email)
		VALUES
			($1, $2, $3, $4)
	`

	_, err := s.db.ExecContext(ctx, q, u.ID, u.Username, u.PasswordHash, u.Email)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == pgerrcode.UniqueViolation {
				switch pgErr.ConstraintName {
				case usernameConstraint:
					return errs.ErrUsernameTaken
				case emailConstraint:
					return errs.ErrEmailTaken
				}
				return errs.ErrConflict
			}
			return fmt.Errorf("save user with query (%s): %w",
				formatQuery(q), formatPgError(pgErr),
			)
		}

		return fmt.Errorf("save user with query (%s): %w", formatQuery(q), err)
	}

	return nil
}

// GetUserByUsername retrieves a user record from the database by username.
// If the user does not exist, errs.ErrNotFound is returned.
func (s *Store) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	const q = `
		SELECT
			id, username, password_hash, email
		FROM
			users
		WHERE
			username = $1
	`

	return s.getUser(ctx, q, username)
}

// GetUserByEmail retrieves a user record from the database by email.
// If the user does not exist, errs.ErrNotFound is returned.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	const q = `
		SELECT
			id, username, password_hash, email
		FROM
			users
		WHERE
			email = $1
	`

	return s.getUser(ctx, q, email)
}

func (s *Store) getUser(ctx context.Context, q, arg string) (*models.User, error) {
	u := new(models.User)
	err := s.db.QueryRowContext(ctx, q, arg).Scan(
		&u.ID,
		&u.Username,
		&u.PasswordHash,
		&u.Email,
	)
	if err != nil {
		return nil, s.retrieveError(q, err)
	}

	return u, nil
}

// CountUsers returns the total number of registered users.
func (s *Store) CountUsers(ctx context.Context) (int, error) {
	const q = `SELECT COUNT(*) FROM users`

	var count int
	if err := s.db.QueryRowContext(ctx, q).Scan(&count); err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}

	return count, nil
}

// Ping verifies the connection to the database is alive.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) retrieveError(q string, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return errs.ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return fmt.Errorf("retrieve with query (%s): %w",
			formatQuery(q), formatPgError(pgErr),
		)
	}

	return fmt.Errorf("retrieve with query (%s): %w", formatQuery(q), err)
}

// formatQuery removes tabs and replaces newlines with spaces
// in the given query string.
func formatQuery(q string) string {
	return strings.ReplaceAll(strings.ReplaceAll(q, "\t", ""), "\n", " ")
}

// formatPgError formats a PgError into a human-friendly error message.
func formatPgError(err *pgconn.PgError) error {
	return fmt.Errorf("SQL Error: %s, Detail: %s, Where: %s, Code: %s, SQLState: %s",
		err.Message,
		err.Detail,
		err.Where,
		err.Code,
		err.SQLState(),
	)
}
