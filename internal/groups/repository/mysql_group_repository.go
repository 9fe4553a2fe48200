package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/allisson/keywhiz-core/internal/database"
	apperrors "github.com/allisson/keywhiz-core/internal/errors"
	groupsDomain "github.com/allisson/keywhiz-core/internal/groups/domain"
)

// MySQLGroupRepository implements GroupRepository for MySQL.
type MySQLGroupRepository struct {
	db *sql.DB
}

// NewMySQLGroupRepository creates a MySQL-backed GroupRepository.
func NewMySQLGroupRepository(db *sql.DB) *MySQLGroupRepository {
	return &MySQLGroupRepository{db: db}
}

func (m *MySQLGroupRepository) Create(ctx context.Context, group *groupsDomain.Group) (int64, error) {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO groups (name, description, createdAt, createdBy, updatedAt, updatedBy)
			  VALUES (?, ?, ?, ?, ?, ?)`

	result, err := querier.ExecContext(
		ctx, query,
		group.Name, group.Description,
		group.CreatedAt, group.CreatedBy, group.UpdatedAt, group.UpdatedBy,
	)
	if err != nil {
		if isMySQLUniqueViolation(err) {
			return 0, groupsDomain.ErrNameConflict
		}
		return 0, apperrors.Wrap(err, "failed to create group")
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to read inserted group id")
	}
	return id, nil
}

func (m *MySQLGroupRepository) GetByID(ctx context.Context, id int64) (*groupsDomain.Group, error) {
	querier := database.GetTx(ctx, m.db)
	query := `SELECT id, name, description, createdAt, createdBy, updatedAt, updatedBy
			  FROM groups WHERE id = ?`
	return scanGroupRow(querier.QueryRowContext(ctx, query, id))
}

func (m *MySQLGroupRepository) GetByName(ctx context.Context, name string) (*groupsDomain.Group, error) {
	querier := database.GetTx(ctx, m.db)
	query := `SELECT id, name, description, createdAt, createdBy, updatedAt, updatedBy
			  FROM groups WHERE name = ?`
	return scanGroupRow(querier.QueryRowContext(ctx, query, name))
}

func (m *MySQLGroupRepository) ListAll(ctx context.Context) ([]groupsDomain.Group, error) {
	querier := database.GetTx(ctx, m.db)
	query := `SELECT id, name, description, createdAt, createdBy, updatedAt, updatedBy
			  FROM groups ORDER BY id ASC`

	rows, err := querier.QueryContext(ctx, query)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list groups")
	}
	defer rows.Close()

	var result []groupsDomain.Group
	for rows.Next() {
		group, err := scanGroupRowCursor(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *group)
	}
	return result, rows.Err()
}

func (m *MySQLGroupRepository) Delete(ctx context.Context, id int64) error {
	querier := database.GetTx(ctx, m.db)
	_, err := querier.ExecContext(ctx, `DELETE FROM groups WHERE id = ?`, id)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete group")
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
