// Package common defines shared constants and sentinel errors used across
// the portal layers. Callers should use errors.Is to match these values.
package common

import (
	"errors"
	"fmt"
)

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// ErrStorage marks an I/O fault on the credential table or the file
	// repository. Use StorageError to wrap the underlying cause.
	ErrStorage = errors.New("storage error")

	// Auth errors.
	ErrInvalidDomain      = errors.New("invalid email domain")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNoRegisteredUsers  = errors.New("no registered users")

	// Session gate.
	ErrUnauthorized = errors.New("unauthorized")

	// Token errors.
	ErrInvalidToken = errors.New("invalid token")

	// File repository errors.
	ErrInvalidFileName = errors.New("invalid file name")

	// Knowledge base errors.
	ErrUnknownTopic = errors.New("unknown topic")
)

// StorageError wraps err so that it matches both ErrStorage and err itself.
// op names the failed operation, e.g. "write credentials".
func StorageError(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrStorage, op, err)
}
