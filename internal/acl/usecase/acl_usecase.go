// Package usecase implements the AclEngine (C7): the read side of the
// client-group-series bipartite graph (spec.md §4.7). mayAccess is the
// single predicate every other query is defined in terms of:
//
//	mayAccess(client, series) ⇔ ∃ g: ClientInGroup(client, g) ∧ SeriesInGroup(series, g)
package usecase

import (
	"context"

	apperrors "github.com/allisson/keywhiz-core/internal/errors"
	membershipUseCase "github.com/allisson/keywhiz-core/internal/membership/usecase"
	"github.com/allisson/keywhiz-core/internal/sanitize"
	secretsDomain "github.com/allisson/keywhiz-core/internal/secrets/domain"
	secretsUseCase "github.com/allisson/keywhiz-core/internal/secrets/usecase"
)

// AclEngine answers access-control queries over the client-group-series graph.
type AclEngine interface {
	// MayAccess reports whether clientID may access secret series seriesID
	// through any shared group.
	MayAccess(ctx context.Context, clientID, seriesID int64) (bool, error)

	// SeriesFor returns the deduplicated ids of every secret series
	// clientID may access, across all of its groups.
	SeriesFor(ctx context.Context, clientID int64) ([]int64, error)

	// GroupsFor returns the ids of every group granted access to seriesID.
	GroupsFor(ctx context.Context, seriesID int64) ([]int64, error)

	// ClientsFor returns the deduplicated ids of every client that may
	// access seriesID, across all groups granted access to it.
	ClientsFor(ctx context.Context, seriesID int64) ([]int64, error)

	// SecretsFor returns the sanitized, latest-revision projection of every
	// secret series clientID may access.
	SecretsFor(ctx context.Context, clientID int64) ([]sanitize.SanitizedSecret, error)

	// GetSecretForClient resolves name to its latest revision only if
	// clientID may access it; otherwise returns apperrors.ErrForbidden so
	// the HTTP boundary can rewrite it to a 404, preventing an
	// authorized-but-forbidden response from confirming the name exists.
	GetSecretForClient(ctx context.Context, clientID int64, name string) (*secretsDomain.Secret, error)
}

type aclEngine struct {
	membership membershipUseCase.MembershipUseCase
	secrets    secretsUseCase.SecretController
}

// NewAclEngine creates an AclEngine backed by membership and the secret controller.
func NewAclEngine(membership membershipUseCase.MembershipUseCase, secrets secretsUseCase.SecretController) AclEngine {
	return &aclEngine{membership: membership, secrets: secrets}
}

func (e *aclEngine) MayAccess(ctx context.Context, clientID, seriesID int64) (bool, error) {
	return e.membership.HasAccess(ctx, clientID, seriesID)
}

func (e *aclEngine) SeriesFor(ctx context.Context, clientID int64) ([]int64, error) {
	groupIDs, err := e.membership.GroupsOfClient(ctx, clientID)
	if err != nil {
		return nil, err
	}

	seen := make(map[int64]struct{})
	var result []int64
	for _, groupID := range groupIDs {
		seriesIDs, err := e.membership.SeriesOfGroup(ctx, groupID)
		if err != nil {
			return nil, err
		}
		for _, seriesID := range seriesIDs {
			if _, ok := seen[seriesID]; ok {
				continue
			}
			seen[seriesID] = struct{}{}
			result = append(result, seriesID)
		}
	}
	return result, nil
}

func (e *aclEngine) GroupsFor(ctx context.Context, seriesID int64) ([]int64, error) {
	return e.membership.GroupsOfSeries(ctx, seriesID)
}

func (e *aclEngine) ClientsFor(ctx context.Context, seriesID int64) ([]int64, error) {
	groupIDs, err := e.membership.GroupsOfSeries(ctx, seriesID)
	if err != nil {
		return nil, err
	}

	seen := make(map[int64]struct{})
	var result []int64
	for _, groupID := range groupIDs {
		clientIDs, err := e.membership.ClientsOfGroup(ctx, groupID)
		if err != nil {
			return nil, err
		}
		for _, clientID := range clientIDs {
			if _, ok := seen[clientID]; ok {
				continue
			}
			seen[clientID] = struct{}{}
			result = append(result, clientID)
		}
	}
	return result, nil
}

func (e *aclEngine) SecretsFor(ctx context.Context, clientID int64) ([]sanitize.SanitizedSecret, error) {
	seriesIDs, err := e.SeriesFor(ctx, clientID)
	if err != nil {
		return nil, err
	}

	result := make([]sanitize.SanitizedSecret, 0, len(seriesIDs))
	for _, seriesID := range seriesIDs {
		secret, err := e.secrets.GetLatestByID(ctx, seriesID)
		if err != nil {
			return nil, err
		}
		sanitized, err := sanitize.Sanitize(*secret)
		if err != nil {
			return nil, err
		}
		result = append(result, sanitized)
	}
	return result, nil
}

func (e *aclEngine) GetSecretForClient(ctx context.Context, clientID int64, name string) (*secretsDomain.Secret, error) {
	secret, err := e.secrets.GetLatestByName(ctx, name)
	if err != nil {
		return nil, err
	}

	allowed, err := e.membership.HasAccess(ctx, clientID, secret.Series.ID)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, apperrors.ErrForbidden
	}
	return secret, nil
}
