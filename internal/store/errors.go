package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is the generic form of the entity-specific not found errors.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate is returned when an operation would violate a uniqueness rule.
	ErrDuplicate = errors.New("entity already exists")

	// ErrInvalidEntity is returned when an entity violates a store-level
	// constraint (NOT NULL, CHECK) that domain validation did not catch.
	ErrInvalidEntity = errors.New("invalid entity")

	// ErrAcquireFailed is returned when no session handle could be leased,
	// e.g. the pool is exhausted past the request deadline or the database is down.
	ErrAcquireFailed = errors.New("failed to acquire session handle")

	ErrUserNotFound = fmt.Errorf("%w: user", ErrNotFound)
	ErrItemNotFound = fmt.Errorf("%w: item", ErrNotFound)

	// ErrEmailExists is returned when registering an email that is already taken.
	ErrEmailExists = fmt.Errorf("%w: email", ErrDuplicate)
)

// IsNotFoundError reports whether err is any kind of "not found" error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDuplicateError reports whether err is any kind of "duplicate" error.
func IsDuplicateError(err error) bool {
	return errors.Is(err, ErrDuplicate)
}
