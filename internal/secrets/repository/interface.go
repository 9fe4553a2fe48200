// Package repository implements data persistence for secret series and
// content revisions.
//
// Each store has a PostgreSQL implementation (native types: BIGSERIAL,
// JSONB, TIMESTAMPTZ) and a MySQL implementation (BIGINT AUTO_INCREMENT,
// JSON, DATETIME(6)) behind the same Go interface, selected by
// Config.DBDriver at wiring time. Both support transaction-aware operations
// via database.GetTx(), so multi-row operations (series create + content
// insert, cascade delete) can be composed inside a single
// database.TxManager.WithTx call.
package repository

import (
	"context"

	secretsDomain "github.com/allisson/keywhiz-core/internal/secrets/domain"
)

// SecretSeriesRepository persists SecretSeries rows (C3).
type SecretSeriesRepository interface {
	// Create inserts a new series, returning its assigned id.
	// Returns secretsDomain.ErrSeriesNameConflict if the name already exists.
	Create(ctx context.Context, series *secretsDomain.SecretSeries) (int64, error)

	// GetByID returns the series with the given id, or
	// secretsDomain.ErrSeriesNotFound.
	GetByID(ctx context.Context, id int64) (*secretsDomain.SecretSeries, error)

	// GetByName returns the series with the given name, or
	// secretsDomain.ErrSeriesNotFound.
	GetByName(ctx context.Context, name string) (*secretsDomain.SecretSeries, error)

	// ListAll returns every series, ordered by id ascending.
	ListAll(ctx context.Context) ([]secretsDomain.SecretSeries, error)

	// DeleteByName removes the series with the given name along with every
	// content row it owns. Idempotent: succeeds even if name is absent.
	DeleteByName(ctx context.Context, name string) error
}

// SecretContentRepository persists SecretContent rows (C4).
type SecretContentRepository interface {
	// Create inserts a new content row, returning its assigned id.
	// Returns secretsDomain.ErrContentVersionConflict if (seriesID, version)
	// already exists.
	Create(ctx context.Context, content *secretsDomain.SecretContent) (int64, error)

	// GetByID returns the content row with the given id, or
	// secretsDomain.ErrContentNotFound.
	GetByID(ctx context.Context, id int64) (*secretsDomain.SecretContent, error)

	// GetBySeriesAndVersion returns the content row for (seriesID, version),
	// or secretsDomain.ErrContentNotFound.
	GetBySeriesAndVersion(ctx context.Context, seriesID int64, version string) (*secretsDomain.SecretContent, error)

	// ListBySeries returns every content row for seriesID, ordered by id ascending.
	ListBySeries(ctx context.Context, seriesID int64) ([]secretsDomain.SecretContent, error)

	// VersionsOf returns every distinct version string for seriesID,
	// including "" if present.
	VersionsOf(ctx context.Context, seriesID int64) ([]string, error)

	// DeleteBySeries removes every content row owned by seriesID.
	DeleteBySeries(ctx context.Context, seriesID int64) error

	// DeleteBySeriesAndVersion removes the single content row for
	// (seriesID, version). Idempotent: succeeds even if absent.
	DeleteBySeriesAndVersion(ctx context.Context, seriesID int64, version string) error
}
