package repository

import (
	"context"
	"database/sql"

	"github.com/allisson/keywhiz-core/internal/database"
	apperrors "github.com/allisson/keywhiz-core/internal/errors"
	secretsDomain "github.com/allisson/keywhiz-core/internal/secrets/domain"
)

// MySQLSecretContentRepository implements SecretContentRepository for MySQL.
type MySQLSecretContentRepository struct {
	db *sql.DB
}

// NewMySQLSecretContentRepository creates a MySQL-backed SecretContentRepository.
func NewMySQLSecretContentRepository(db *sql.DB) *MySQLSecretContentRepository {
	return &MySQLSecretContentRepository{db: db}
}

func (m *MySQLSecretContentRepository) Create(ctx context.Context, content *secretsDomain.SecretContent) (int64, error) {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO secrets_content (secretId, encrypted_content, version, createdAt, createdBy, updatedAt, updatedBy)
			  VALUES (?, ?, ?, ?, ?, ?, ?)`

	result, err := querier.ExecContext(
		ctx, query,
		content.SecretSeriesID, content.EncryptedContent, content.Version,
		content.CreatedAt, content.CreatedBy, content.UpdatedAt, content.UpdatedBy,
	)
	if err != nil {
		if isMySQLUniqueViolation(err) {
			return 0, secretsDomain.ErrContentVersionConflict
		}
		return 0, apperrors.Wrap(err, "failed to create secret content")
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to read inserted secret content id")
	}
	return id, nil
}

func (m *MySQLSecretContentRepository) GetByID(ctx context.Context, id int64) (*secretsDomain.SecretContent, error) {
	querier := database.GetTx(ctx, m.db)
	query := `SELECT id, secretId, encrypted_content, version, createdAt, createdBy, updatedAt, updatedBy
			  FROM secrets_content WHERE id = ?`
	return scanContentRow(querier.QueryRowContext(ctx, query, id))
}

func (m *MySQLSecretContentRepository) GetBySeriesAndVersion(
	ctx context.Context, seriesID int64, version string,
) (*secretsDomain.SecretContent, error) {
	querier := database.GetTx(ctx, m.db)
	query := `SELECT id, secretId, encrypted_content, version, createdAt, createdBy, updatedAt, updatedBy
			  FROM secrets_content WHERE secretId = ? AND version = ?`
	return scanContentRow(querier.QueryRowContext(ctx, query, seriesID, version))
}

func (m *MySQLSecretContentRepository) ListBySeries(ctx context.Context, seriesID int64) ([]secretsDomain.SecretContent, error) {
	querier := database.GetTx(ctx, m.db)
	query := `SELECT id, secretId, encrypted_content, version, createdAt, createdBy, updatedAt, updatedBy
			  FROM secrets_content WHERE secretId = ? ORDER BY id ASC`

	rows, err := querier.QueryContext(ctx, query, seriesID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list secret content")
	}
	defer rows.Close()

	var result []secretsDomain.SecretContent
	for rows.Next() {
		content, err := scanContentRowCursor(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *content)
	}
	return result, rows.Err()
}

func (m *MySQLSecretContentRepository) VersionsOf(ctx context.Context, seriesID int64) ([]string, error) {
	querier := database.GetTx(ctx, m.db)
	query := `SELECT DISTINCT version FROM secrets_content WHERE secretId = ?`

	rows, err := querier.QueryContext(ctx, query, seriesID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list secret content versions")
	}
	defer rows.Close()

	var versions []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan version")
		}
		versions = append(versions, v)
	}
	return versions, rows.Err()
}

func (m *MySQLSecretContentRepository) DeleteBySeries(ctx context.Context, seriesID int64) error {
	querier := database.GetTx(ctx, m.db)
	_, err := querier.ExecContext(ctx, `DELETE FROM secrets_content WHERE secretId = ?`, seriesID)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete secret content by series")
	}
	return nil
}

func (m *MySQLSecretContentRepository) DeleteBySeriesAndVersion(ctx context.Context, seriesID int64, version string) error {
	querier := database.GetTx(ctx, m.db)
	_, err := querier.ExecContext(ctx, `DELETE FROM secrets_content WHERE secretId = ? AND version = ?`, seriesID, version)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete secret content by series and version")
	}
	return nil
}
