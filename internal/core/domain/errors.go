package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotInitialized indicates a store operation was attempted before
	// the schema was set up or after the store was closed. Fatal to startup.
	ErrNotInitialized = errors.New("store not initialized")

	// ErrNotFound indicates a requested slip or category does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConstraint indicates a mutation referenced a nonexistent target,
	// e.g. moving a slip to a category that does not exist.
	ErrConstraint = errors.New("constraint violation")

	// ErrInvalidInput indicates malformed or invalid input,
	// e.g. inserting a slip with empty content.
	ErrInvalidInput = errors.New("invalid input")

	// ErrMigration indicates the schema could not be created or upgraded.
	// Fatal to startup; never swallowed.
	ErrMigration = errors.New("schema migration failed")
)
