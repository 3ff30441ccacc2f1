// Package errs defines the sentinel errors shared across the application.
//
// NotFound, Conflict and InvalidCredentials are expected outcomes and are
// returned as ordinary values; anything else coming out of the storage layer
// is a fault and gets wrapped with context.
package errs

import "errors"

var (
	// ErrNotFound is returned on a lookup miss.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when a record with the same unique key
	// already exists.
	ErrConflict = errors.New("data conflict")
	// ErrUsernameTaken is returned on registration with an occupied username.
	ErrUsernameTaken = errors.New("username already taken")
	// ErrEmailTaken is returned on registration with an occupied email.
	ErrEmailTaken = errors.New("email already taken")
	// ErrInvalidCredentials is returned when authentication fails.
	// It deliberately does not distinguish an unknown user
	// from a wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUnauthorized is returned when no authenticated user is present.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrInvalidRequest is returned on malformed client input.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrNilDependency is returned by constructors on nil arguments.
	ErrNilDependency = errors.New("nil dependency")
	// ErrDBNotConnected is returned by health checks of storages
	// that have no database behind them.
	ErrDBNotConnected = errors.New("database not connected")
)
