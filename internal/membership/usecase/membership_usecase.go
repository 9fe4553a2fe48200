// Package usecase implements the MembershipStore (C6): the edge operations
// of the client-group-series bipartite graph that the AclEngine (C7)
// evaluates mayAccess over (spec.md §4.6).
package usecase

import (
	"context"

	"github.com/allisson/keywhiz-core/internal/database"
	membershipRepository "github.com/allisson/keywhiz-core/internal/membership/repository"
)

// MembershipUseCase manages the client↔group and group↔secret-series edges.
type MembershipUseCase interface {
	// Enroll adds clientID as a member of groupID.
	Enroll(ctx context.Context, clientID, groupID int64) error

	// Evict removes clientID from groupID.
	Evict(ctx context.Context, clientID, groupID int64) error

	// Allow grants groupID access to secret series seriesID.
	Allow(ctx context.Context, groupID, seriesID int64) error

	// Disallow revokes groupID's access to secret series seriesID.
	Disallow(ctx context.Context, groupID, seriesID int64) error

	// GroupsOfClient returns the ids of every group clientID belongs to.
	GroupsOfClient(ctx context.Context, clientID int64) ([]int64, error)

	// ClientsOfGroup returns the ids of every client enrolled in groupID.
	ClientsOfGroup(ctx context.Context, groupID int64) ([]int64, error)

	// GroupsOfSeries returns the ids of every group granted access to seriesID.
	GroupsOfSeries(ctx context.Context, seriesID int64) ([]int64, error)

	// SeriesOfGroup returns the ids of every secret series groupID may access.
	SeriesOfGroup(ctx context.Context, groupID int64) ([]int64, error)

	// HasAccess evaluates mayAccess(client, series): true iff clientID and
	// seriesID share at least one group.
	HasAccess(ctx context.Context, clientID, seriesID int64) (bool, error)

	// RemoveClient deletes every edge naming clientID (invariant 4: a
	// deleted client leaves no dangling membership rows).
	RemoveClient(ctx context.Context, clientID int64) error

	// RemoveGroup deletes every edge naming groupID.
	RemoveGroup(ctx context.Context, groupID int64) error

	// RemoveSeries deletes every edge naming seriesID.
	RemoveSeries(ctx context.Context, seriesID int64) error
}

type membershipUseCase struct {
	repo      membershipRepository.MembershipRepository
	txManager database.TxManager
}

// NewMembershipUseCase creates a MembershipUseCase backed by repo.
func NewMembershipUseCase(
	repo membershipRepository.MembershipRepository,
	txManager database.TxManager,
) MembershipUseCase {
	return &membershipUseCase{repo: repo, txManager: txManager}
}

func (u *membershipUseCase) Enroll(ctx context.Context, clientID, groupID int64) error {
	return u.repo.Enroll(ctx, clientID, groupID)
}

func (u *membershipUseCase) Evict(ctx context.Context, clientID, groupID int64) error {
	return u.repo.Evict(ctx, clientID, groupID)
}

func (u *membershipUseCase) Allow(ctx context.Context, groupID, seriesID int64) error {
	return u.repo.Allow(ctx, groupID, seriesID)
}

func (u *membershipUseCase) Disallow(ctx context.Context, groupID, seriesID int64) error {
	return u.repo.Disallow(ctx, groupID, seriesID)
}

func (u *membershipUseCase) GroupsOfClient(ctx context.Context, clientID int64) ([]int64, error) {
	return u.repo.GroupIDsForClient(ctx, clientID)
}

func (u *membershipUseCase) ClientsOfGroup(ctx context.Context, groupID int64) ([]int64, error) {
	return u.repo.ClientIDsForGroup(ctx, groupID)
}

func (u *membershipUseCase) GroupsOfSeries(ctx context.Context, seriesID int64) ([]int64, error) {
	return u.repo.GroupIDsForSeries(ctx, seriesID)
}

func (u *membershipUseCase) SeriesOfGroup(ctx context.Context, groupID int64) ([]int64, error) {
	return u.repo.SeriesIDsForGroup(ctx, groupID)
}

func (u *membershipUseCase) HasAccess(ctx context.Context, clientID, seriesID int64) (bool, error) {
	return u.repo.ClientHasAccessToSeries(ctx, clientID, seriesID)
}

func (u *membershipUseCase) RemoveClient(ctx context.Context, clientID int64) error {
	return u.repo.RemoveClient(ctx, clientID)
}

func (u *membershipUseCase) RemoveGroup(ctx context.Context, groupID int64) error {
	return u.txManager.WithTx(ctx, func(ctx context.Context) error {
		return u.repo.RemoveGroup(ctx, groupID)
	})
}

func (u *membershipUseCase) RemoveSeries(ctx context.Context, seriesID int64) error {
	return u.repo.RemoveSeries(ctx, seriesID)
}
