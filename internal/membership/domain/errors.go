// Package domain defines the membership/access-grant edges of the
// client-group-series bipartite graph (spec.md §4.6, C6 MembershipStore).
package domain

import (
	"github.com/allisson/keywhiz-core/internal/errors"
)

var (
	// ErrMembershipExists indicates the clientId/groupId edge already exists.
	ErrMembershipExists = errors.Wrap(errors.ErrConflict, "client is already a member of group")

	// ErrAccessGrantExists indicates the groupId/secretId edge already exists.
	ErrAccessGrantExists = errors.Wrap(errors.ErrConflict, "group already has access to secret")
)
