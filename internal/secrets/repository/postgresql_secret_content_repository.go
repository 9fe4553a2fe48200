package repository

import (
	"context"
	"database/sql"

	"github.com/lib/pq"

	"github.com/allisson/keywhiz-core/internal/database"
	apperrors "github.com/allisson/keywhiz-core/internal/errors"
	secretsDomain "github.com/allisson/keywhiz-core/internal/secrets/domain"
)

// PostgreSQLSecretContentRepository implements SecretContentRepository for PostgreSQL.
//
// Schema: secrets_content(id BIGSERIAL PK, secretId BIGINT REFERENCES
// secrets(id) ON DELETE CASCADE, encrypted_content TEXT, version TEXT
// DEFAULT '', createdAt, createdBy, updatedAt, updatedBy,
// UNIQUE(secretId, version)).
type PostgreSQLSecretContentRepository struct {
	db *sql.DB
}

// NewPostgreSQLSecretContentRepository creates a PostgreSQL-backed SecretContentRepository.
func NewPostgreSQLSecretContentRepository(db *sql.DB) *PostgreSQLSecretContentRepository {
	return &PostgreSQLSecretContentRepository{db: db}
}

func (p *PostgreSQLSecretContentRepository) Create(ctx context.Context, content *secretsDomain.SecretContent) (int64, error) {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO secrets_content ("secretId", encrypted_content, version, "createdAt", "createdBy", "updatedAt", "updatedBy")
			  VALUES ($1, $2, $3, $4, $5, $6, $7)
			  RETURNING id`

	var id int64
	err := querier.QueryRowContext(
		ctx, query,
		content.SecretSeriesID, content.EncryptedContent, content.Version,
		content.CreatedAt, content.CreatedBy, content.UpdatedAt, content.UpdatedBy,
	).Scan(&id)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return 0, secretsDomain.ErrContentVersionConflict
		}
		return 0, apperrors.Wrap(err, "failed to create secret content")
	}
	return id, nil
}

func (p *PostgreSQLSecretContentRepository) GetByID(ctx context.Context, id int64) (*secretsDomain.SecretContent, error) {
	querier := database.GetTx(ctx, p.db)
	query := `SELECT id, "secretId", encrypted_content, version, "createdAt", "createdBy", "updatedAt", "updatedBy"
			  FROM secrets_content WHERE id = $1`
	return scanContentRow(querier.QueryRowContext(ctx, query, id))
}

func (p *PostgreSQLSecretContentRepository) GetBySeriesAndVersion(
	ctx context.Context, seriesID int64, version string,
) (*secretsDomain.SecretContent, error) {
	querier := database.GetTx(ctx, p.db)
	query := `SELECT id, "secretId", encrypted_content, version, "createdAt", "createdBy", "updatedAt", "updatedBy"
			  FROM secrets_content WHERE "secretId" = $1 AND version = $2`
	return scanContentRow(querier.QueryRowContext(ctx, query, seriesID, version))
}

func (p *PostgreSQLSecretContentRepository) ListBySeries(ctx context.Context, seriesID int64) ([]secretsDomain.SecretContent, error) {
	querier := database.GetTx(ctx, p.db)
	query := `SELECT id, "secretId", encrypted_content, version, "createdAt", "createdBy", "updatedAt", "updatedBy"
			  FROM secrets_content WHERE "secretId" = $1 ORDER BY id ASC`

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

func (p *PostgreSQLSecretContentRepository) VersionsOf(ctx context.Context, seriesID int64) ([]string, error) {
	querier := database.GetTx(ctx, p.db)
	query := `SELECT DISTINCT version FROM secrets_content WHERE "secretId" = $1`

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

func (p *PostgreSQLSecretContentRepository) DeleteBySeries(ctx context.Context, seriesID int64) error {
	querier := database.GetTx(ctx, p.db)
	_, err := querier.ExecContext(ctx, `DELETE FROM secrets_content WHERE "secretId" = $1`, seriesID)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete secret content by series")
	}
	return nil
}

func (p *PostgreSQLSecretContentRepository) DeleteBySeriesAndVersion(ctx context.Context, seriesID int64, version string) error {
	querier := database.GetTx(ctx, p.db)
	_, err := querier.ExecContext(ctx, `DELETE FROM secrets_content WHERE "secretId" = $1 AND version = $2`, seriesID, version)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete secret content by series and version")
	}
	return nil
}

func scanContentRow(row rowScanner) (*secretsDomain.SecretContent, error) {
	content, err := scanContentRowCursor(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, secretsDomain.ErrContentNotFound
		}
		return nil, err
	}
	return content, nil
}

func scanContentRowCursor(row rowScanner) (*secretsDomain.SecretContent, error) {
	var content secretsDomain.SecretContent
	err := row.Scan(
		&content.ID, &content.SecretSeriesID, &content.EncryptedContent, &content.Version,
		&content.CreatedAt, &content.CreatedBy, &content.UpdatedAt, &content.UpdatedBy,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, sql.ErrNoRows
		}
		return nil, apperrors.Wrap(err, "failed to scan secret content")
	}
	return &content, nil
}
