// Package repository implements data persistence for groups, the named
// collections that are simultaneously sets of clients and sets of secret
// series in the ACL graph (C6/C7).
package repository

import (
	"context"

	groupsDomain "github.com/allisson/keywhiz-core/internal/groups/domain"
)

// GroupRepository persists Group rows (spec.md §3).
type GroupRepository interface {
	// Create inserts a new group, returning its assigned id.
	// Returns groupsDomain.ErrNameConflict if the name already exists.
	Create(ctx context.Context, group *groupsDomain.Group) (int64, error)

	// GetByID returns the group with the given id, or groupsDomain.ErrNotFound.
	GetByID(ctx context.Context, id int64) (*groupsDomain.Group, error)

	// GetByName returns the group with the given name, or groupsDomain.ErrNotFound.
	GetByName(ctx context.Context, name string) (*groupsDomain.Group, error)

	// ListAll returns every group, ordered by id ascending.
	ListAll(ctx context.Context) ([]groupsDomain.Group, error)

	// Delete removes the group with the given id. Cascades to its
	// memberships and access grants (invariant 4). Idempotent.
	Delete(ctx context.Context, id int64) error
}
