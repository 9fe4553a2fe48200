package domain

import (
	"github.com/allisson/keywhiz-core/internal/errors"
)

// Secret-specific error definitions.
var (
	// ErrSeriesNotFound indicates no series exists with the requested name or id.
	ErrSeriesNotFound = errors.Wrap(errors.ErrNotFound, "secret series not found")

	// ErrContentNotFound indicates no content row exists for the requested id or (series, version).
	ErrContentNotFound = errors.Wrap(errors.ErrNotFound, "secret content not found")

	// ErrSeriesNameConflict indicates a series with this name already exists.
	ErrSeriesNameConflict = errors.Wrap(errors.ErrConflict, "secret series name already exists")

	// ErrContentVersionConflict indicates a content row already exists for this (series, version).
	ErrContentVersionConflict = errors.Wrap(errors.ErrConflict, "secret content version already exists")

	// ErrInvalidName indicates an empty name or a name containing "..".
	ErrInvalidName = errors.Wrap(errors.ErrInvalidInput, "invalid secret name")

	// ErrInvalidMetadata indicates a metadata map with non-string values or non-printable keys.
	ErrInvalidMetadata = errors.Wrap(errors.ErrInvalidInput, "invalid secret metadata")
)
