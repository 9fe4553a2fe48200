// Package repository implements data persistence for clients, the
// principals identified by X.509 CN that the ACL graph (C6/C7) authorizes.
//
// Each store has a PostgreSQL implementation and a MySQL implementation
// behind the same Go interface, selected by Config.DBDriver at wiring time,
// following the split used by internal/secrets/repository.
package repository

import (
	"context"

	clientsDomain "github.com/allisson/keywhiz-core/internal/clients/domain"
)

// ClientRepository persists Client rows (spec.md §3).
type ClientRepository interface {
	// Create inserts a new client, returning its assigned id.
	// Returns clientsDomain.ErrNameConflict if the name already exists.
	Create(ctx context.Context, client *clientsDomain.Client) (int64, error)

	// GetByID returns the client with the given id, or clientsDomain.ErrNotFound.
	GetByID(ctx context.Context, id int64) (*clientsDomain.Client, error)

	// GetByName returns the client with the given name (its CN), or
	// clientsDomain.ErrNotFound.
	GetByName(ctx context.Context, name string) (*clientsDomain.Client, error)

	// ListAll returns every client, ordered by id ascending.
	ListAll(ctx context.Context) ([]clientsDomain.Client, error)

	// Delete removes the client with the given id. Cascades to its
	// memberships (invariant 4). Idempotent: succeeds even if id is absent.
	Delete(ctx context.Context, id int64) error
}
