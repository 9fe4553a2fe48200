package repository

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/lib/pq"

	"github.com/allisson/keywhiz-core/internal/database"
	apperrors "github.com/allisson/keywhiz-core/internal/errors"
	secretsDomain "github.com/allisson/keywhiz-core/internal/secrets/domain"
)

// PostgreSQLSecretSeriesRepository implements SecretSeriesRepository for PostgreSQL.
//
// Schema: secrets(id BIGSERIAL PK, name TEXT UNIQUE, description TEXT,
// createdAt TIMESTAMPTZ, createdBy TEXT, updatedAt TIMESTAMPTZ, updatedBy
// TEXT, type TEXT, options JSONB, metadata JSONB).
type PostgreSQLSecretSeriesRepository struct {
	db *sql.DB
}

// NewPostgreSQLSecretSeriesRepository creates a PostgreSQL-backed SecretSeriesRepository.
func NewPostgreSQLSecretSeriesRepository(db *sql.DB) *PostgreSQLSecretSeriesRepository {
	return &PostgreSQLSecretSeriesRepository{db: db}
}

func (p *PostgreSQLSecretSeriesRepository) Create(ctx context.Context, series *secretsDomain.SecretSeries) (int64, error) {
	querier := database.GetTx(ctx, p.db)

	options, err := json.Marshal(series.GenerationOptions)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to marshal generation options")
	}
	metadata, err := json.Marshal(series.Metadata)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to marshal metadata")
	}

	query := `INSERT INTO secrets (name, description, "createdAt", "createdBy", "updatedAt", "updatedBy", type, options, metadata)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			  RETURNING id`

	var id int64
	err = querier.QueryRowContext(
		ctx, query,
		series.Name, series.Description,
		series.CreatedAt, series.CreatedBy, series.UpdatedAt, series.UpdatedBy,
		series.Type, options, metadata,
	).Scan(&id)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return 0, secretsDomain.ErrSeriesNameConflict
		}
		return 0, apperrors.Wrap(err, "failed to create secret series")
	}
	return id, nil
}

func (p *PostgreSQLSecretSeriesRepository) GetByID(ctx context.Context, id int64) (*secretsDomain.SecretSeries, error) {
	querier := database.GetTx(ctx, p.db)
	query := `SELECT id, name, description, "createdAt", "createdBy", "updatedAt", "updatedBy", type, options, metadata
			  FROM secrets WHERE id = $1`
	return scanSeriesRow(querier.QueryRowContext(ctx, query, id))
}

func (p *PostgreSQLSecretSeriesRepository) GetByName(ctx context.Context, name string) (*secretsDomain.SecretSeries, error) {
	querier := database.GetTx(ctx, p.db)
	query := `SELECT id, name, description, "createdAt", "createdBy", "updatedAt", "updatedBy", type, options, metadata
			  FROM secrets WHERE name = $1`
	return scanSeriesRow(querier.QueryRowContext(ctx, query, name))
}

func (p *PostgreSQLSecretSeriesRepository) ListAll(ctx context.Context) ([]secretsDomain.SecretSeries, error) {
	querier := database.GetTx(ctx, p.db)
	query := `SELECT id, name, description, "createdAt", "createdBy", "updatedAt", "updatedBy", type, options, metadata
			  FROM secrets ORDER BY id ASC`

	rows, err := querier.QueryContext(ctx, query)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list secret series")
	}
	defer rows.Close()

	var result []secretsDomain.SecretSeries
	for rows.Next() {
		series, err := scanSeriesRowCursor(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *series)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate secret series rows")
	}
	return result, nil
}

func (p *PostgreSQLSecretSeriesRepository) DeleteByName(ctx context.Context, name string) error {
	querier := database.GetTx(ctx, p.db)
	_, err := querier.ExecContext(ctx, `DELETE FROM secrets WHERE name = $1`, name)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete secret series")
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSeriesRow(row rowScanner) (*secretsDomain.SecretSeries, error) {
	series, err := scanSeriesRowCursor(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, secretsDomain.ErrSeriesNotFound
		}
		return nil, err
	}
	return series, nil
}

func scanSeriesRowCursor(row rowScanner) (*secretsDomain.SecretSeries, error) {
	var series secretsDomain.SecretSeries
	var options, metadata []byte
	err := row.Scan(
		&series.ID, &series.Name, &series.Description,
		&series.CreatedAt, &series.CreatedBy, &series.UpdatedAt, &series.UpdatedBy,
		&series.Type, &options, &metadata,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, sql.ErrNoRows
		}
		return nil, apperrors.Wrap(err, "failed to scan secret series")
	}

	if err := json.Unmarshal(options, &series.GenerationOptions); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal generation options")
	}
	if err := json.Unmarshal(metadata, &series.Metadata); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal metadata")
	}
	return &series, nil
}
