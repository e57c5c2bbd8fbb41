package auth

import (
	"errors"
	"fmt"

	"github.com/eduquip/catalog-backend/internal/rbac"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

var (
	ErrMissingRole   = errors.New("token carries no role claim")
	ErrUnknownRole   = errors.New("token role is not a recognized role")
	ErrClaimMismatch = errors.New("role and admin claims disagree")
)

// Principal is the authenticated caller for the duration of one request.
// Its permission list comes from the token as asserted by the identity
// provider; it is not recomputed from the role map at request time, so it
// can lag a role change until the token is refreshed.
type Principal struct {
	Subject     string
	Email       string
	Role        rbac.Role
	Admin       bool
	Permissions []string
	TokenID     string
}

// IsAdmin reports whether the principal clears the admin gate, via either
// the role claim or the boolean escape-hatch claim. Some identity-provider
// setups write `admin: true` instead of a role string, so both are accepted;
// decodePrincipal has already rejected tokens where the two disagree.
func (p *Principal) IsAdmin() bool {
	return p.Role == rbac.RoleAdmin || p.Admin
}

// decodePrincipal validates the claim shape of an already-verified token.
// The role must name a catalog role and must agree with the admin claim when
// both are present; anything else is rejected rather than coerced, so an
// unknown role can never default to a named role downstream.
func decodePrincipal(token jwt.Token) (*Principal, error) {
	principal := &Principal{
		Subject: token.Subject(),
		TokenID: token.JwtID(),
	}

	if v, ok := token.Get("email"); ok {
		if email, ok := v.(string); ok {
			principal.Email = email
		}
	}

	roleClaim, hasRole := token.Get("role")
	adminClaim, hasAdmin := token.Get("admin")

	if hasAdmin {
		b, ok := adminClaim.(bool)
		if !ok {
			return nil, fmt.Errorf("admin claim is not a boolean")
		}
		principal.Admin = b
	}

	switch {
	case hasRole:
		roleStr, ok := roleClaim.(string)
		if !ok {
			return nil, fmt.Errorf("role claim is not a string")
		}
		role := rbac.Role(roleStr)
		if !rbac.ValidRole(role) {
			return nil, fmt.Errorf("%w: %q", ErrUnknownRole, roleStr)
		}
		if hasAdmin && principal.Admin != (role == rbac.RoleAdmin) {
			return nil, fmt.Errorf("%w: role=%q admin=%t", ErrClaimMismatch, roleStr, principal.Admin)
		}
		principal.Role = role
	case principal.Admin:
		// Escape hatch only: a flat admin boolean with no role string.
		principal.Role = rbac.RoleAdmin
	default:
		return nil, ErrMissingRole
	}

	if v, ok := token.Get("permissions"); ok {
		perms, err := toStringSlice(v)
		if err != nil {
			return nil, fmt.Errorf("permissions claim: %w", err)
		}
		principal.Permissions = perms
	}

	return principal, nil
}

func toStringSlice(v any) ([]string, error) {
	switch vals := v.(type) {
	case []string:
		out := make([]string, len(vals))
		copy(out, vals)
		return out, nil
	case []any:
		out := make([]string, 0, len(vals))
		for _, item := range vals {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("element %v is not a string", item)
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("not a string array")
	}
}
