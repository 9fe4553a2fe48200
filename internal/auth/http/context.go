// Package http resolves the authenticated Principal (C8) from the
// transport layer and carries it through request context.
package http

import (
	"context"

	authDomain "github.com/allisson/keywhiz-core/internal/auth/domain"
)

type principalKey struct{}

// WithPrincipal stores the resolved Principal in the context.
func WithPrincipal(ctx context.Context, principal authDomain.Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, principal)
}

// GetPrincipal retrieves the Principal stored by the authentication
// middleware. Returns (zero value, false) if none was set.
func GetPrincipal(ctx context.Context) (authDomain.Principal, bool) {
	principal, ok := ctx.Value(principalKey{}).(authDomain.Principal)
	return principal, ok
}
