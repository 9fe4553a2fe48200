package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/allisson/keywhiz-core/internal/database"
	apperrors "github.com/allisson/keywhiz-core/internal/errors"
	membershipDomain "github.com/allisson/keywhiz-core/internal/membership/domain"
)

// MySQLMembershipRepository implements MembershipRepository for MySQL.
type MySQLMembershipRepository struct {
	db *sql.DB
}

// NewMySQLMembershipRepository creates a MySQL-backed MembershipRepository.
func NewMySQLMembershipRepository(db *sql.DB) *MySQLMembershipRepository {
	return &MySQLMembershipRepository{db: db}
}

func (m *MySQLMembershipRepository) Enroll(ctx context.Context, clientID, groupID int64) error {
	querier := database.GetTx(ctx, m.db)
	_, err := querier.ExecContext(
		ctx,
		`INSERT INTO memberships (clientId, groupId) VALUES (?, ?)`,
		clientID, groupID,
	)
	if err != nil {
		if isMembershipUniqueViolation(err) {
			return membershipDomain.ErrMembershipExists
		}
		return apperrors.Wrap(err, "failed to enroll client in group")
	}
	return nil
}

func (m *MySQLMembershipRepository) Evict(ctx context.Context, clientID, groupID int64) error {
	querier := database.GetTx(ctx, m.db)
	_, err := querier.ExecContext(
		ctx,
		`DELETE FROM memberships WHERE clientId = ? AND groupId = ?`,
		clientID, groupID,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to evict client from group")
	}
	return nil
}

func (m *MySQLMembershipRepository) Allow(ctx context.Context, groupID, seriesID int64) error {
	querier := database.GetTx(ctx, m.db)
	_, err := querier.ExecContext(
		ctx,
		`INSERT INTO accessgrants (groupId, secretId) VALUES (?, ?)`,
		groupID, seriesID,
	)
	if err != nil {
		if isMembershipUniqueViolation(err) {
			return membershipDomain.ErrAccessGrantExists
		}
		return apperrors.Wrap(err, "failed to grant group access to series")
	}
	return nil
}

func (m *MySQLMembershipRepository) Disallow(ctx context.Context, groupID, seriesID int64) error {
	querier := database.GetTx(ctx, m.db)
	_, err := querier.ExecContext(
		ctx,
		`DELETE FROM accessgrants WHERE groupId = ? AND secretId = ?`,
		groupID, seriesID,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to revoke group access to series")
	}
	return nil
}

func (m *MySQLMembershipRepository) GroupIDsForClient(ctx context.Context, clientID int64) ([]int64, error) {
	querier := database.GetTx(ctx, m.db)
	rows, err := querier.QueryContext(
		ctx,
		`SELECT groupId FROM memberships WHERE clientId = ? ORDER BY groupId ASC`,
		clientID,
	)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list groups for client")
	}
	return scanInt64Rows(rows)
}

func (m *MySQLMembershipRepository) ClientIDsForGroup(ctx context.Context, groupID int64) ([]int64, error) {
	querier := database.GetTx(ctx, m.db)
	rows, err := querier.QueryContext(
		ctx,
		`SELECT clientId FROM memberships WHERE groupId = ? ORDER BY clientId ASC`,
		groupID,
	)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list clients for group")
	}
	return scanInt64Rows(rows)
}

func (m *MySQLMembershipRepository) GroupIDsForSeries(ctx context.Context, seriesID int64) ([]int64, error) {
	querier := database.GetTx(ctx, m.db)
	rows, err := querier.QueryContext(
		ctx,
		`SELECT groupId FROM accessgrants WHERE secretId = ? ORDER BY groupId ASC`,
		seriesID,
	)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list groups for series")
	}
	return scanInt64Rows(rows)
}

func (m *MySQLMembershipRepository) SeriesIDsForGroup(ctx context.Context, groupID int64) ([]int64, error) {
	querier := database.GetTx(ctx, m.db)
	rows, err := querier.QueryContext(
		ctx,
		`SELECT secretId FROM accessgrants WHERE groupId = ? ORDER BY secretId ASC`,
		groupID,
	)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list series for group")
	}
	return scanInt64Rows(rows)
}

func (m *MySQLMembershipRepository) ClientHasAccessToSeries(
	ctx context.Context,
	clientID, seriesID int64,
) (bool, error) {
	querier := database.GetTx(ctx, m.db)
	query := `SELECT EXISTS (
		SELECT 1 FROM memberships m
		JOIN accessgrants a ON a.groupId = m.groupId
		WHERE m.clientId = ? AND a.secretId = ?
	)`
	var exists bool
	if err := querier.QueryRowContext(ctx, query, clientID, seriesID).Scan(&exists); err != nil {
		return false, apperrors.Wrap(err, "failed to evaluate client access to series")
	}
	return exists, nil
}

func (m *MySQLMembershipRepository) RemoveClient(ctx context.Context, clientID int64) error {
	querier := database.GetTx(ctx, m.db)
	_, err := querier.ExecContext(ctx, `DELETE FROM memberships WHERE clientId = ?`, clientID)
	if err != nil {
		return apperrors.Wrap(err, "failed to remove client memberships")
	}
	return nil
}

func (m *MySQLMembershipRepository) RemoveGroup(ctx context.Context, groupID int64) error {
	querier := database.GetTx(ctx, m.db)
	if _, err := querier.ExecContext(ctx, `DELETE FROM memberships WHERE groupId = ?`, groupID); err != nil {
		return apperrors.Wrap(err, "failed to remove group memberships")
	}
	if _, err := querier.ExecContext(ctx, `DELETE FROM accessgrants WHERE groupId = ?`, groupID); err != nil {
		return apperrors.Wrap(err, "failed to remove group access grants")
	}
	return nil
}

func (m *MySQLMembershipRepository) RemoveSeries(ctx context.Context, seriesID int64) error {
	querier := database.GetTx(ctx, m.db)
	_, err := querier.ExecContext(ctx, `DELETE FROM accessgrants WHERE secretId = ?`, seriesID)
	if err != nil {
		return apperrors.Wrap(err, "failed to remove series access grants")
	}
	return nil
}

func isMembershipUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	errMsg := strings.ToLower(err.Error())
	return strings.Contains(errMsg, "duplicate entry") || strings.Contains(errMsg, "1062")
}
