// Package repository persists the edges of the client-group-series
// bipartite graph: memberships (client↔group) and access grants
// (group↔secret series). See spec.md §4.6 (C6 MembershipStore).
package repository

import "context"

// MembershipRepository persists graph edges and answers the join queries
// the AclEngine (C7) needs to evaluate mayAccess.
type MembershipRepository interface {
	// Enroll adds clientID as a member of groupID.
	// Returns membershipDomain.ErrMembershipExists if the edge already exists.
	Enroll(ctx context.Context, clientID, groupID int64) error

	// Evict removes clientID from groupID. Idempotent.
	Evict(ctx context.Context, clientID, groupID int64) error

	// Allow grants groupID access to secret series seriesID.
	// Returns membershipDomain.ErrAccessGrantExists if the edge already exists.
	Allow(ctx context.Context, groupID, seriesID int64) error

	// Disallow revokes groupID's access to secret series seriesID. Idempotent.
	Disallow(ctx context.Context, groupID, seriesID int64) error

	// GroupIDsForClient returns the ids of every group clientID is a member of.
	GroupIDsForClient(ctx context.Context, clientID int64) ([]int64, error)

	// ClientIDsForGroup returns the ids of every client that is a member of groupID.
	ClientIDsForGroup(ctx context.Context, groupID int64) ([]int64, error)

	// GroupIDsForSeries returns the ids of every group granted access to seriesID.
	GroupIDsForSeries(ctx context.Context, seriesID int64) ([]int64, error)

	// SeriesIDsForGroup returns the ids of every secret series groupID has access to.
	SeriesIDsForGroup(ctx context.Context, groupID int64) ([]int64, error)

	// ClientHasAccessToSeries reports whether clientID may access seriesID via
	// any shared group: ∃ g: ClientInGroup(clientID, g) ∧ SeriesInGroup(seriesID, g).
	ClientHasAccessToSeries(ctx context.Context, clientID, seriesID int64) (bool, error)

	// RemoveClient deletes every membership edge for clientID.
	RemoveClient(ctx context.Context, clientID int64) error

	// RemoveGroup deletes every membership and access-grant edge for groupID.
	RemoveGroup(ctx context.Context, groupID int64) error

	// RemoveSeries deletes every access-grant edge for seriesID.
	RemoveSeries(ctx context.Context, seriesID int64) error
}
