// Package usecase composes ClientRepository into client lifecycle operations.
package usecase

import (
	"context"
	"strings"
	"time"

	clientsDomain "github.com/allisson/keywhiz-core/internal/clients/domain"
	clientsRepository "github.com/allisson/keywhiz-core/internal/clients/repository"
	membershipUseCase "github.com/allisson/keywhiz-core/internal/membership/usecase"
)

// ClientUseCase defines business logic operations for managing clients.
type ClientUseCase interface {
	// Create inserts a new client. Returns clientsDomain.ErrNameConflict if
	// the name already exists, clientsDomain.ErrInvalidName if name is empty.
	Create(ctx context.Context, input clientsDomain.CreateClientInput) (*clientsDomain.Client, error)

	// GetByID returns the client with the given id, or clientsDomain.ErrNotFound.
	GetByID(ctx context.Context, id int64) (*clientsDomain.Client, error)

	// GetByName returns the client with the given name (its CN), or
	// clientsDomain.ErrNotFound.
	GetByName(ctx context.Context, name string) (*clientsDomain.Client, error)

	// ListAll returns every client.
	ListAll(ctx context.Context) ([]clientsDomain.Client, error)

	// Delete removes a client and its memberships.
	Delete(ctx context.Context, id int64) error
}

type clientUseCase struct {
	repo       clientsRepository.ClientRepository
	membership membershipUseCase.MembershipUseCase
}

// NewClientUseCase creates a ClientUseCase backed by repo. membership removes
// the client's graph edges ahead of the row delete (invariant 4); the
// memberships/accessgrants ON DELETE CASCADE foreign keys remain a backstop.
func NewClientUseCase(
	repo clientsRepository.ClientRepository,
	membership membershipUseCase.MembershipUseCase,
) ClientUseCase {
	return &clientUseCase{repo: repo, membership: membership}
}

func (u *clientUseCase) Create(
	ctx context.Context,
	input clientsDomain.CreateClientInput,
) (*clientsDomain.Client, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, clientsDomain.ErrInvalidName
	}

	now := time.Now().UTC()
	client := &clientsDomain.Client{
		Name:        input.Name,
		Description: input.Description,
		Automation:  input.Automation,
		CreatedAt:   now,
		CreatedBy:   input.Creator,
		UpdatedAt:   now,
		UpdatedBy:   input.Creator,
	}

	id, err := u.repo.Create(ctx, client)
	if err != nil {
		return nil, err
	}
	client.ID = id
	return client, nil
}

func (u *clientUseCase) GetByID(ctx context.Context, id int64) (*clientsDomain.Client, error) {
	return u.repo.GetByID(ctx, id)
}

func (u *clientUseCase) GetByName(ctx context.Context, name string) (*clientsDomain.Client, error) {
	return u.repo.GetByName(ctx, name)
}

func (u *clientUseCase) ListAll(ctx context.Context) ([]clientsDomain.Client, error) {
	return u.repo.ListAll(ctx)
}

func (u *clientUseCase) Delete(ctx context.Context, id int64) error {
	if err := u.membership.RemoveClient(ctx, id); err != nil {
		return err
	}
	return u.repo.Delete(ctx, id)
}
