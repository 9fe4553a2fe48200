package domain

import (
	"github.com/allisson/keywhiz-core/internal/errors"
)

// Group-specific error definitions.
var (
	// ErrNotFound indicates no group exists with the requested id or name.
	ErrNotFound = errors.Wrap(errors.ErrNotFound, "group not found")

	// ErrNameConflict indicates a group with this name already exists.
	ErrNameConflict = errors.Wrap(errors.ErrConflict, "group name already exists")

	// ErrInvalidName indicates an empty group name.
	ErrInvalidName = errors.Wrap(errors.ErrInvalidInput, "invalid group name")
)
