package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"

	"github.com/allisson/keywhiz-core/internal/database"
	apperrors "github.com/allisson/keywhiz-core/internal/errors"
	secretsDomain "github.com/allisson/keywhiz-core/internal/secrets/domain"
)

// MySQLSecretSeriesRepository implements SecretSeriesRepository for MySQL.
type MySQLSecretSeriesRepository struct {
	db *sql.DB
}

// NewMySQLSecretSeriesRepository creates a MySQL-backed SecretSeriesRepository.
func NewMySQLSecretSeriesRepository(db *sql.DB) *MySQLSecretSeriesRepository {
	return &MySQLSecretSeriesRepository{db: db}
}

func (m *MySQLSecretSeriesRepository) Create(ctx context.Context, series *secretsDomain.SecretSeries) (int64, error) {
	querier := database.GetTx(ctx, m.db)

	options, err := json.Marshal(series.GenerationOptions)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to marshal generation options")
	}
	metadata, err := json.Marshal(series.Metadata)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to marshal metadata")
	}

	query := `INSERT INTO secrets (name, description, createdAt, createdBy, updatedAt, updatedBy, type, options, metadata)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	result, err := querier.ExecContext(
		ctx, query,
		series.Name, series.Description,
		series.CreatedAt, series.CreatedBy, series.UpdatedAt, series.UpdatedBy,
		series.Type, options, metadata,
	)
	if err != nil {
		if isMySQLUniqueViolation(err) {
			return 0, secretsDomain.ErrSeriesNameConflict
		}
		return 0, apperrors.Wrap(err, "failed to create secret series")
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to read inserted secret series id")
	}
	return id, nil
}

func (m *MySQLSecretSeriesRepository) GetByID(ctx context.Context, id int64) (*secretsDomain.SecretSeries, error) {
	querier := database.GetTx(ctx, m.db)
	query := `SELECT id, name, description, createdAt, createdBy, updatedAt, updatedBy, type, options, metadata
			  FROM secrets WHERE id = ?`
	return scanSeriesRow(querier.QueryRowContext(ctx, query, id))
}

func (m *MySQLSecretSeriesRepository) GetByName(ctx context.Context, name string) (*secretsDomain.SecretSeries, error) {
	querier := database.GetTx(ctx, m.db)
	query := `SELECT id, name, description, createdAt, createdBy, updatedAt, updatedBy, type, options, metadata
			  FROM secrets WHERE name = ?`
	return scanSeriesRow(querier.QueryRowContext(ctx, query, name))
}

func (m *MySQLSecretSeriesRepository) ListAll(ctx context.Context) ([]secretsDomain.SecretSeries, error) {
	querier := database.GetTx(ctx, m.db)
	query := `SELECT id, name, description, createdAt, createdBy, updatedAt, updatedBy, type, options, metadata
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
	return result, rows.Err()
}

func (m *MySQLSecretSeriesRepository) DeleteByName(ctx context.Context, name string) error {
	querier := database.GetTx(ctx, m.db)
	_, err := querier.ExecContext(ctx, `DELETE FROM secrets WHERE name = ?`, name)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete secret series")
	}
	return nil
}

// isMySQLUniqueViolation reports whether err is a MySQL duplicate-key error
// (error 1062).
func isMySQLUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	errMsg := strings.ToLower(err.Error())
	return strings.Contains(errMsg, "duplicate entry") || strings.Contains(errMsg, "1062")
}
