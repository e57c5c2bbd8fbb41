// Package testutil provides shared fixtures for exercising the enforcement
// stack without redis or a real identity provider.
package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/eduquip/catalog-backend/internal/auth"
	"github.com/eduquip/catalog-backend/internal/rbac"
	"github.com/stretchr/testify/require"
)

// FakeRevocationStore is an in-memory auth.RevocationStore. Set Err to
// simulate an unreachable upstream.
type FakeRevocationStore struct {
	Revoked map[string]bool
	Err     error
}

func NewFakeRevocationStore() *FakeRevocationStore {
	return &FakeRevocationStore{Revoked: make(map[string]bool)}
}

func (f *FakeRevocationStore) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if f.Err != nil {
		return f.Err
	}
	f.Revoked[tokenID] = true
	return nil
}

func (f *FakeRevocationStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	if f.Err != nil {
		return false, f.Err
	}
	return f.Revoked[tokenID], nil
}

// AuthFixture bundles a signer and an enforcer sharing one signing key.
type AuthFixture struct {
	JWTService  *auth.JWTService
	Enforcer    *auth.Enforcer
	Revocations *FakeRevocationStore
}

func NewAuthFixture(t *testing.T) *AuthFixture {
	t.Helper()

	jwtService, err := auth.NewJWTService([]byte("test-secret-key"), "test-issuer", time.Hour)
	require.NoError(t, err)

	revocations := NewFakeRevocationStore()
	return &AuthFixture{
		JWTService:  jwtService,
		Enforcer:    auth.NewEnforcer(jwtService, revocations, time.Second),
		Revocations: revocations,
	}
}

// BearerForRole signs a token carrying the role and its full grant set,
// returning a ready Authorization header value.
func (f *AuthFixture) BearerForRole(t *testing.T, subject string, role rbac.Role) string {
	t.Helper()

	grants, err := rbac.PermissionsForRole(role)
	require.NoError(t, err)

	permissions := make([]string, len(grants))
	for i, p := range grants {
		permissions[i] = string(p)
	}

	return f.Bearer(t, auth.TokenParams{
		Subject:     subject,
		Role:        role,
		Permissions: permissions,
	})
}

// Bearer signs a token with the exact params given.
func (f *AuthFixture) Bearer(t *testing.T, params auth.TokenParams) string {
	t.Helper()

	token, err := f.JWTService.GenerateToken(context.Background(), params)
	require.NoError(t, err)
	return "Bearer " + token
}
