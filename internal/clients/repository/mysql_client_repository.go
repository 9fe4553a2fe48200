package repository

import (
	"context"
	"database/sql"
	"strings"

	clientsDomain "github.com/allisson/keywhiz-core/internal/clients/domain"
	"github.com/allisson/keywhiz-core/internal/database"
	apperrors "github.com/allisson/keywhiz-core/internal/errors"
)

// MySQLClientRepository implements ClientRepository for MySQL.
type MySQLClientRepository struct {
	db *sql.DB
}

// NewMySQLClientRepository creates a MySQL-backed ClientRepository.
func NewMySQLClientRepository(db *sql.DB) *MySQLClientRepository {
	return &MySQLClientRepository{db: db}
}

func (m *MySQLClientRepository) Create(ctx context.Context, client *clientsDomain.Client) (int64, error) {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO clients (name, description, createdAt, createdBy, updatedAt, updatedBy, automation)
			  VALUES (?, ?, ?, ?, ?, ?, ?)`

	result, err := querier.ExecContext(
		ctx, query,
		client.Name, client.Description,
		client.CreatedAt, client.CreatedBy, client.UpdatedAt, client.UpdatedBy,
		client.Automation,
	)
	if err != nil {
		if isMySQLUniqueViolation(err) {
			return 0, clientsDomain.ErrNameConflict
		}
		return 0, apperrors.Wrap(err, "failed to create client")
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to read inserted client id")
	}
	return id, nil
}

func (m *MySQLClientRepository) GetByID(ctx context.Context, id int64) (*clientsDomain.Client, error) {
	querier := database.GetTx(ctx, m.db)
	query := `SELECT id, name, description, createdAt, createdBy, updatedAt, updatedBy, automation
			  FROM clients WHERE id = ?`
	return scanClientRow(querier.QueryRowContext(ctx, query, id))
}

func (m *MySQLClientRepository) GetByName(ctx context.Context, name string) (*clientsDomain.Client, error) {
	querier := database.GetTx(ctx, m.db)
	query := `SELECT id, name, description, createdAt, createdBy, updatedAt, updatedBy, automation
			  FROM clients WHERE name = ?`
	return scanClientRow(querier.QueryRowContext(ctx, query, name))
}

func (m *MySQLClientRepository) ListAll(ctx context.Context) ([]clientsDomain.Client, error) {
	querier := database.GetTx(ctx, m.db)
	query := `SELECT id, name, description, createdAt, createdBy, updatedAt, updatedBy, automation
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

func (m *MySQLClientRepository) Delete(ctx context.Context, id int64) error {
	querier := database.GetTx(ctx, m.db)
	_, err := querier.ExecContext(ctx, `DELETE FROM clients WHERE id = ?`, id)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete client")
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
