package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/eduquip/catalog-backend/internal/rbac"
	"github.com/google/uuid"
	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jwk"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

// JWTService signs and verifies the HS256 tokens carrying role and
// permission claims. Verification is the identity-provider boundary for the
// enforcement layer; signing exists for tests and the local token tool.
type JWTService struct {
	signingKey jwk.Key
	issuer     string
	expiry     time.Duration
}

func NewJWTService(signingKey []byte, issuer string, expiry time.Duration) (*JWTService, error) {
	key, err := jwk.FromRaw(signingKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create JWK: %w", err)
	}

	if err := key.Set(jwk.AlgorithmKey, jwa.HS256); err != nil {
		return nil, fmt.Errorf("failed to set algorithm: %w", err)
	}

	return &JWTService{
		signingKey: key,
		issuer:     issuer,
		expiry:     expiry,
	}, nil
}

// TokenParams describe the claims to place in a signed token.
type TokenParams struct {
	Subject     string
	Email       string
	Role        rbac.Role
	Admin       bool
	Permissions []string
}

func (s *JWTService) GenerateToken(ctx context.Context, params TokenParams) (string, error) {
	now := time.Now()

	builder := jwt.NewBuilder().
		Issuer(s.issuer).
		Subject(params.Subject).
		JwtID(uuid.New().String()).
		IssuedAt(now).
		Expiration(now.Add(s.expiry)).
		Claim("role", string(params.Role))

	if params.Email != "" {
		builder = builder.Claim("email", params.Email)
	}
	if params.Admin {
		builder = builder.Claim("admin", true)
	}
	if len(params.Permissions) > 0 {
		builder = builder.Claim("permissions", params.Permissions)
	}

	token, err := builder.Build()
	if err != nil {
		return "", fmt.Errorf("failed to build token: %w", err)
	}

	signed, err := jwt.Sign(token, jwt.WithKey(jwa.HS256, s.signingKey))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return string(signed), nil
}

// VerifyToken checks signature, expiry and issuer, returning the parsed
// token. Claim-shape validation happens separately in decodePrincipal.
func (s *JWTService) VerifyToken(ctx context.Context, tokenString string) (jwt.Token, error) {
	parsedToken, err := jwt.Parse([]byte(tokenString), jwt.WithKey(jwa.HS256, s.signingKey), jwt.WithIssuer(s.issuer))
	if err != nil {
		return nil, err
	}

	if err := jwt.Validate(parsedToken); err != nil {
		return nil, err
	}

	return parsedToken, nil
}

// Expiry is the configured token lifetime; the revocation store uses it to
// bound denylist entries.
func (s *JWTService) Expiry() time.Duration {
	return s.expiry
}
