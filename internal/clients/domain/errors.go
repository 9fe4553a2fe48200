package domain

import (
	"github.com/allisson/keywhiz-core/internal/errors"
)

// Client-specific error definitions.
var (
	// ErrNotFound indicates no client exists with the requested id or name.
	ErrNotFound = errors.Wrap(errors.ErrNotFound, "client not found")

	// ErrNameConflict indicates a client with this name already exists.
	ErrNameConflict = errors.Wrap(errors.ErrConflict, "client name already exists")

	// ErrInvalidName indicates an empty client name.
	ErrInvalidName = errors.Wrap(errors.ErrInvalidInput, "invalid client name")
)
