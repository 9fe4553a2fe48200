package repository

import (
	"context"
	"database/sql"

	"github.com/lib/pq"

	"github.com/allisson/keywhiz-core/internal/database"
	apperrors "github.com/allisson/keywhiz-core/internal/errors"
	membershipDomain "github.com/allisson/keywhiz-core/internal/membership/domain"
)

// PostgreSQLMembershipRepository implements MembershipRepository for PostgreSQL.
type PostgreSQLMembershipRepository struct {
	db *sql.DB
}

// NewPostgreSQLMembershipRepository creates a PostgreSQL-backed MembershipRepository.
func NewPostgreSQLMembershipRepository(db *sql.DB) *PostgreSQLMembershipRepository {
	return &PostgreSQLMembershipRepository{db: db}
}

func (p *PostgreSQLMembershipRepository) Enroll(ctx context.Context, clientID, groupID int64) error {
	querier := database.GetTx(ctx, p.db)
	_, err := querier.ExecContext(
		ctx,
		`INSERT INTO memberships ("clientId", "groupId") VALUES ($1, $2)`,
		clientID, groupID,
	)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return membershipDomain.ErrMembershipExists
		}
		return apperrors.Wrap(err, "failed to enroll client in group")
	}
	return nil
}

func (p *PostgreSQLMembershipRepository) Evict(ctx context.Context, clientID, groupID int64) error {
	querier := database.GetTx(ctx, p.db)
	_, err := querier.ExecContext(
		ctx,
		`DELETE FROM memberships WHERE "clientId" = $1 AND "groupId" = $2`,
		clientID, groupID,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to evict client from group")
	}
	return nil
}

func (p *PostgreSQLMembershipRepository) Allow(ctx context.Context, groupID, seriesID int64) error {
	querier := database.GetTx(ctx, p.db)
	_, err := querier.ExecContext(
		ctx,
		`INSERT INTO accessgrants ("groupId", "secretId") VALUES ($1, $2)`,
		groupID, seriesID,
	)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return membershipDomain.ErrAccessGrantExists
		}
		return apperrors.Wrap(err, "failed to grant group access to series")
	}
	return nil
}

func (p *PostgreSQLMembershipRepository) Disallow(ctx context.Context, groupID, seriesID int64) error {
	querier := database.GetTx(ctx, p.db)
	_, err := querier.ExecContext(
		ctx,
		`DELETE FROM accessgrants WHERE "groupId" = $1 AND "secretId" = $2`,
		groupID, seriesID,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to revoke group access to series")
	}
	return nil
}

func (p *PostgreSQLMembershipRepository) GroupIDsForClient(ctx context.Context, clientID int64) ([]int64, error) {
	querier := database.GetTx(ctx, p.db)
	rows, err := querier.QueryContext(
		ctx,
		`SELECT "groupId" FROM memberships WHERE "clientId" = $1 ORDER BY "groupId" ASC`,
		clientID,
	)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list groups for client")
	}
	return scanInt64Rows(rows)
}

func (p *PostgreSQLMembershipRepository) ClientIDsForGroup(ctx context.Context, groupID int64) ([]int64, error) {
	querier := database.GetTx(ctx, p.db)
	rows, err := querier.QueryContext(
		ctx,
		`SELECT "clientId" FROM memberships WHERE "groupId" = $1 ORDER BY "clientId" ASC`,
		groupID,
	)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list clients for group")
	}
	return scanInt64Rows(rows)
}

func (p *PostgreSQLMembershipRepository) GroupIDsForSeries(ctx context.Context, seriesID int64) ([]int64, error) {
	querier := database.GetTx(ctx, p.db)
	rows, err := querier.QueryContext(
		ctx,
		`SELECT "groupId" FROM accessgrants WHERE "secretId" = $1 ORDER BY "groupId" ASC`,
		seriesID,
	)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list groups for series")
	}
	return scanInt64Rows(rows)
}

func (p *PostgreSQLMembershipRepository) SeriesIDsForGroup(ctx context.Context, groupID int64) ([]int64, error) {
	querier := database.GetTx(ctx, p.db)
	rows, err := querier.QueryContext(
		ctx,
		`SELECT "secretId" FROM accessgrants WHERE "groupId" = $1 ORDER BY "secretId" ASC`,
		groupID,
	)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list series for group")
	}
	return scanInt64Rows(rows)
}

func (p *PostgreSQLMembershipRepository) ClientHasAccessToSeries(
	ctx context.Context,
	clientID, seriesID int64,
) (bool, error) {
	querier := database.GetTx(ctx, p.db)
	query := `SELECT EXISTS (
		SELECT 1 FROM memberships m
		JOIN accessgrants a ON a."groupId" = m."groupId"
		WHERE m."clientId" = $1 AND a."secretId" = $2
	)`
	var exists bool
	if err := querier.QueryRowContext(ctx, query, clientID, seriesID).Scan(&exists); err != nil {
		return false, apperrors.Wrap(err, "failed to evaluate client access to series")
	}
	return exists, nil
}

func (p *PostgreSQLMembershipRepository) RemoveClient(ctx context.Context, clientID int64) error {
	querier := database.GetTx(ctx, p.db)
	_, err := querier.ExecContext(ctx, `DELETE FROM memberships WHERE "clientId" = $1`, clientID)
	if err != nil {
		return apperrors.Wrap(err, "failed to remove client memberships")
	}
	return nil
}

func (p *PostgreSQLMembershipRepository) RemoveGroup(ctx context.Context, groupID int64) error {
	querier := database.GetTx(ctx, p.db)
	if _, err := querier.ExecContext(ctx, `DELETE FROM memberships WHERE "groupId" = $1`, groupID); err != nil {
		return apperrors.Wrap(err, "failed to remove group memberships")
	}
	if _, err := querier.ExecContext(ctx, `DELETE FROM accessgrants WHERE "groupId" = $1`, groupID); err != nil {
		return apperrors.Wrap(err, "failed to remove group access grants")
	}
	return nil
}

func (p *PostgreSQLMembershipRepository) RemoveSeries(ctx context.Context, seriesID int64) error {
	querier := database.GetTx(ctx, p.db)
	_, err := querier.ExecContext(ctx, `DELETE FROM accessgrants WHERE "secretId" = $1`, seriesID)
	if err != nil {
		return apperrors.Wrap(err, "failed to remove series access grants")
	}
	return nil
}

func scanInt64Rows(rows *sql.Rows) ([]int64, error) {
	defer rows.Close()
	var result []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan id")
		}
		result = append(result, id)
	}
	return result, rows.Err()
}
