package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/eduquip/catalog-backend/internal/logging"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

// Stable deny reasons, kept distinct for diagnostics. The HTTP layer maps
// all credential reasons to 401 and authorization reasons to 403; the
// response body never carries verifier internals beyond these messages.
const (
	ReasonMissingHeader      = "missing_header"
	ReasonExpiredToken       = "expired_token"
	ReasonRevokedToken       = "revoked_token"
	ReasonMalformedToken     = "malformed_token"
	ReasonInvalidClaims      = "invalid_claims"
	ReasonVerificationFailed = "verification_failed"
	ReasonAdminRequired      = "admin_required"
)

// Result is the enforcement verdict for one request. Expected denials are
// values, not errors: a deny must terminate the request before business
// logic but must never crash the handling task.
type Result struct {
	Allowed   bool
	Principal *Principal
	Reason    string
	Message   string
	// Forbidden marks a valid credential with insufficient authority
	// (403) as opposed to a credential failure (401).
	Forbidden bool
}

// Enforcer verifies bearer credentials and produces allow/deny verdicts.
// Verification runs under a timeout so a hung upstream rejects the one
// request instead of stalling it indefinitely.
type Enforcer struct {
	jwtService  *JWTService
	revocations RevocationStore
	timeout     time.Duration
}

func NewEnforcer(jwtService *JWTService, revocations RevocationStore, timeout time.Duration) *Enforcer {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Enforcer{
		jwtService:  jwtService,
		revocations: revocations,
		timeout:     timeout,
	}
}

// VerifyRequest authenticates the Authorization header value and returns a
// verdict. It never returns an error: every failure mode, including an
// unreachable revocation store, becomes a deny for this request only.
func (e *Enforcer) VerifyRequest(ctx context.Context, authHeader string) Result {
	token, result := e.verifyCredential(ctx, authHeader)
	if !result.Allowed {
		return result
	}

	principal, err := decodePrincipal(token)
	if err != nil {
		logging.Warn("rejected token with invalid claims", "error", err)
		return deny(ReasonInvalidClaims, "Invalid authentication token")
	}

	return Result{Allowed: true, Principal: principal}
}

// VerifyAdminRequest is VerifyRequest plus the admin gate: the role claim
// must be admin or the boolean escape-hatch claim must be set.
func (e *Enforcer) VerifyAdminRequest(ctx context.Context, authHeader string) Result {
	result := e.VerifyRequest(ctx, authHeader)
	if !result.Allowed {
		return result
	}

	if !result.Principal.IsAdmin() {
		denied := deny(ReasonAdminRequired, "Insufficient permissions - admin access required")
		denied.Forbidden = true
		return denied
	}

	return result
}

func (e *Enforcer) verifyCredential(ctx context.Context, authHeader string) (jwt.Token, Result) {
	if authHeader == "" {
		return nil, deny(ReasonMissingHeader, "Missing or invalid authorization header")
	}

	const bearerPrefix = "Bearer "
	if !strings.HasPrefix(authHeader, bearerPrefix) {
		return nil, deny(ReasonMissingHeader, "Missing or invalid authorization header")
	}

	tokenString := strings.TrimPrefix(authHeader, bearerPrefix)
	if tokenString == "" {
		return nil, deny(ReasonMissingHeader, "Missing authentication token")
	}

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	token, err := e.jwtService.VerifyToken(ctx, tokenString)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired()) {
			return nil, deny(ReasonExpiredToken, "Authentication token has expired")
		}
		logging.Debug("token verification failed", "error", err)
		return nil, deny(ReasonMalformedToken, "Invalid authentication token")
	}

	if tokenID := token.JwtID(); tokenID != "" {
		revoked, err := e.revocations.IsRevoked(ctx, tokenID)
		if err != nil {
			// Upstream failure: fail closed without leaking the cause.
			logging.Error("revocation lookup failed", "error", err)
			return nil, deny(ReasonVerificationFailed, "Authentication verification failed")
		}
		if revoked {
			return nil, deny(ReasonRevokedToken, "Authentication token has been revoked")
		}
	}

	return token, Result{Allowed: true}
}

func deny(reason, message string) Result {
	return Result{Allowed: false, Reason: reason, Message: message}
}
