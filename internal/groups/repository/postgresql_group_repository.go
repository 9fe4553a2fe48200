package repository

import (
	"context"
	"database/sql"

	"github.com/lib/pq"

	"github.com/allisson/keywhiz-core/internal/database"
	apperrors "github.com/allisson/keywhiz-core/internal/errors"
	groupsDomain "github.com/allisson/keywhiz-core/internal/groups/domain"
)

// PostgreSQLGroupRepository implements GroupRepository for PostgreSQL.
//
// Schema: groups(id BIGSERIAL PK, name TEXT UNIQUE, description TEXT,
// createdAt TIMESTAMPTZ, createdBy TEXT, updatedAt TIMESTAMPTZ, updatedBy TEXT).
type PostgreSQLGroupRepository struct {
	db *sql.DB
}

// NewPostgreSQLGroupRepository creates a PostgreSQL-backed GroupRepository.
func NewPostgreSQLGroupRepository(db *sql.DB) *PostgreSQLGroupRepository {
	return &PostgreSQLGroupRepository{db: db}
}

func (p *PostgreSQLGroupRepository) Create(ctx context.Context, group *groupsDomain.Group) (int64, error) {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO groups (name, description, "createdAt", "createdBy", "updatedAt", "updatedBy")
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING id`

	var id int64
	err := querier.QueryRowContext(
		ctx, query,
		group.Name, group.Description,
		group.CreatedAt, group.CreatedBy, group.UpdatedAt, group.UpdatedBy,
	).Scan(&id)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return 0, groupsDomain.ErrNameConflict
		}
		return 0, apperrors.Wrap(err, "failed to create group")
	}
	return id, nil
}

func (p *PostgreSQLGroupRepository) GetByID(ctx context.Context, id int64) (*groupsDomain.Group, error) {
	querier := database.GetTx(ctx, p.db)
	query := `SELECT id, name, description, "createdAt", "createdBy", "updatedAt", "updatedBy"
			  FROM groups WHERE id = $1`
	return scanGroupRow(querier.QueryRowContext(ctx, query, id))
}

func (p *PostgreSQLGroupRepository) GetByName(ctx context.Context, name string) (*groupsDomain.Group, error) {
	querier := database.GetTx(ctx, p.db)
	query := `SELECT id, name, description, "createdAt", "createdBy", "updatedAt", "updatedBy"
			  FROM groups WHERE name = $1`
	return scanGroupRow(querier.QueryRowContext(ctx, query, name))
}

func (p *PostgreSQLGroupRepository) ListAll(ctx context.Context) ([]groupsDomain.Group, error) {
	querier := database.GetTx(ctx, p.db)
	query := `SELECT id, name, description, "createdAt", "createdBy", "updatedAt", "updatedBy"
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

func (p *PostgreSQLGroupRepository) Delete(ctx context.Context, id int64) error {
	querier := database.GetTx(ctx, p.db)
	_, err := querier.ExecContext(ctx, `DELETE FROM groups WHERE id = $1`, id)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete group")
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanGroupRow(row rowScanner) (*groupsDomain.Group, error) {
	group, err := scanGroupRowCursor(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, groupsDomain.ErrNotFound
		}
		return nil, err
	}
	return group, nil
}

func scanGroupRowCursor(row rowScanner) (*groupsDomain.Group, error) {
	var group groupsDomain.Group
	err := row.Scan(
		&group.ID, &group.Name, &group.Description,
		&group.CreatedAt, &group.CreatedBy, &group.UpdatedAt, &group.UpdatedBy,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, sql.ErrNoRows
		}
		return nil, apperrors.Wrap(err, "failed to scan group")
	}
	return &group, nil
}
