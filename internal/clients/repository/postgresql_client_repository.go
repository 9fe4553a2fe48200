package repository

import (
	"context"
	"database/sql"

	"github.com/lib/pq"

	clientsDomain "github.com/allisson/keywhiz-core/internal/clients/domain"
	"github.com/allisson/keywhiz-core/internal/database"
	apperrors "github.com/allisson/keywhiz-core/internal/errors"
)

// PostgreSQLClientRepository implements ClientRepository for PostgreSQL.
//
// Schema: clients(id BIGSERIAL PK, name TEXT UNIQUE, description TEXT,
// createdAt TIMESTAMPTZ, createdBy TEXT, updatedAt TIMESTAMPTZ, updatedBy
// TEXT, automation BOOLEAN).
type PostgreSQLClientRepository struct {
	db *sql.DB
}

// NewPostgreSQLClientRepository creates a PostgreSQL-backed ClientRepository.
func NewPostgreSQLClientRepository(db *sql.DB) *PostgreSQLClientRepository {
	return &PostgreSQLClientRepository{db: db}
}

func (p *PostgreSQLClientRepository) Create(ctx context.Context, client *clientsDomain.Client) (int64, error) {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO clients (name, description, "createdAt", "createdBy", "updatedAt", "updatedBy", automation)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)
			  RETURNING id`

	var id int64
	err := querier.QueryRowContext(
		ctx, query,
		client.Name, client.Description,
		client.CreatedAt, client.CreatedBy, client.UpdatedAt, client.UpdatedBy,
		client.Automation,
	).Scan(&id)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return 0, clientsDomain.ErrNameConflict
		}
		return 0, apperrors.Wrap(err, "failed to create client")
	}
	return id, nil
}

func (p *PostgreSQLClientRepository) GetByID(ctx context.Context, id int64) (*clientsDomain.Client, error) {
	querier := database.GetTx(ctx, p.db)
	query := `SELECT id, name, description, "createdAt", "createdBy", "updatedAt", "updatedBy", automation
			  FROM clients WHERE id = $1`
	return scanClientRow(querier.QueryRowContext(ctx, query, id))
}

func (p *PostgreSQLClientRepository) GetByName(ctx context.Context, name string) (*clientsDomain.Client, error) {
	querier := database.GetTx(ctx, p.db)
	query := `SELECT id, name, description, "createdAt", "createdBy", "updatedAt", "updatedBy", automation
			  FROM clients WHERE name = $1`
	return scanClientRow(querier.QueryRowContext(ctx, query, name))
}

func (p *PostgreSQLClientRepository) ListAll(ctx context.Context) ([]clientsDomain.Client, error) {
	querier := database.GetTx(ctx, p.db)
	query := `SELECT id, name, description, "createdAt", "createdBy", "updatedAt", "updatedBy", automation
			  FROM clients ORDER BY id ASC`

	rows, err := querier.QueryContext(ctx, query)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list clients")
	}
	defer rows.Close()

	var result []clientsDomain.Client
	for rows.Next() {
		client, err := scanClientRowCursor(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *client)
	}
	return result, rows.Err()
}

func (p *PostgreSQLClientRepository) Delete(ctx context.Context, id int64) error {
	querier := database.GetTx(ctx, p.db)
	_, err := querier.ExecContext(ctx, `DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete client")
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanClientRow(row rowScanner) (*clientsDomain.Client, error) {
	client, err := scanClientRowCursor(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, clientsDomain.ErrNotFound
		}
		return nil, err
	}
	return client, nil
}

func scanClientRowCursor(row rowScanner) (*clientsDomain.Client, error) {
	var client clientsDomain.Client
	err := row.Scan(
		&client.ID, &client.Name, &client.Description,
		&client.CreatedAt, &client.CreatedBy, &client.UpdatedAt, &client.UpdatedBy,
		&client.Automation,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, sql.ErrNoRows
		}
		return nil, apperrors.Wrap(err, "failed to scan client")
	}
	return &client, nil
}
