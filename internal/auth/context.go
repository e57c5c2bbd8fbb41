package auth

import "context"

type contextKey string

const principalKey contextKey = "principal"

// ContextWithPrincipal installs the verified principal for downstream
// handlers. Each request carries its own principal; nothing is shared
// across requests.
func ContextWithPrincipal(ctx context.Context, principal *Principal) context.Context {
	return context.WithValue(ctx, principalKey, principal)
}

// GetPrincipal returns the principal installed by the enforcement
// middleware, if any.
func GetPrincipal(ctx context.Context) (*Principal, bool) {
	principal, ok := ctx.Value(principalKey).(*Principal)
	return principal, ok
}
