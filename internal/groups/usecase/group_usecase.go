// Package usecase composes GroupRepository into group lifecycle operations.
package usecase

import (
	"context"
	"strings"
	"time"

	groupsDomain "github.com/allisson/keywhiz-core/internal/groups/domain"
	groupsRepository "github.com/allisson/keywhiz-core/internal/groups/repository"
	membershipUseCase "github.com/allisson/keywhiz-core/internal/membership/usecase"
)

// GroupUseCase defines business logic operations for managing groups.
type GroupUseCase interface {
	// Create inserts a new group. Returns groupsDomain.ErrNameConflict if
	// the name already exists, groupsDomain.ErrInvalidName if name is empty.
	Create(ctx context.Context, input groupsDomain.CreateGroupInput) (*groupsDomain.Group, error)

	// GetByID returns the group with the given id, or groupsDomain.ErrNotFound.
	GetByID(ctx context.Context, id int64) (*groupsDomain.Group, error)

	// GetByName returns the group with the given name, or groupsDomain.ErrNotFound.
	GetByName(ctx context.Context, name string) (*groupsDomain.Group, error)

	// ListAll returns every group.
	ListAll(ctx context.Context) ([]groupsDomain.Group, error)

	// Delete removes a group and its memberships/access grants.
	Delete(ctx context.Context, id int64) error
}

type groupUseCase struct {
	repo       groupsRepository.GroupRepository
	membership membershipUseCase.MembershipUseCase
}

// NewGroupUseCase creates a GroupUseCase backed by repo. membership removes
// the group's graph edges ahead of the row delete (invariant 4); the
// memberships/accessgrants ON DELETE CASCADE foreign keys remain a backstop.
func NewGroupUseCase(
	repo groupsRepository.GroupRepository,
	membership membershipUseCase.MembershipUseCase,
) GroupUseCase {
	return &groupUseCase{repo: repo, membership: membership}
}

func (u *groupUseCase) Create(
	ctx context.Context,
	input groupsDomain.CreateGroupInput,
) (*groupsDomain.Group, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, groupsDomain.ErrInvalidName
	}

	now := time.Now().UTC()
	group := &groupsDomain.Group{
		Name:        input.Name,
		Description: input.Description,
		CreatedAt:   now,
		CreatedBy:   input.Creator,
		UpdatedAt:   now,
		UpdatedBy:   input.Creator,
	}

	id, err := u.repo.Create(ctx, group)
	if err != nil {
		return nil, err
	}
	group.ID = id
	return group, nil
}

func (u *groupUseCase) GetByID(ctx context.Context, id int64) (*groupsDomain.Group, error) {
	return u.repo.GetByID(ctx, id)
}

func (u *groupUseCase) GetByName(ctx context.Context, name string) (*groupsDomain.Group, error) {
	return u.repo.GetByName(ctx, name)
}

func (u *groupUseCase) ListAll(ctx context.Context) ([]groupsDomain.Group, error) {
	return u.repo.ListAll(ctx)
}

func (u *groupUseCase) Delete(ctx context.Context, id int64) error {
	if err := u.membership.RemoveGroup(ctx, id); err != nil {
		return err
	}
	return u.repo.Delete(ctx, id)
}
