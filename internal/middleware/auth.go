package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/eduquip/catalog-backend/internal/auth"
	"github.com/eduquip/catalog-backend/internal/logging"
	"github.com/eduquip/catalog-backend/internal/rbac"
)

// Codes carried in enforcement error bodies. 401 responses use
// CodeUnauthorized, 403 responses use CodePermissionDenied.
const (
	CodeUnauthorized     = "UNAUTHORIZED"
	CodePermissionDenied = "PERMISSION_DENIED"
)

// RequireAuth verifies the bearer credential and installs the principal in
// the request context. A deny verdict terminates the request here; the
// protected handler never runs.
func RequireAuth(enforcer *auth.Enforcer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			result := enforcer.VerifyRequest(r.Context(), r.Header.Get("Authorization"))
			if !result.Allowed {
				writeVerdict(w, r, result)
				return
			}

			ctx := auth.ContextWithPrincipal(r.Context(), result.Principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin is the coarse gate in front of the admin area: role admin or
// the boolean escape-hatch claim. Fine-grained permission gates stack on
// top inside the area.
func RequireAdmin(enforcer *auth.Enforcer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			result := enforcer.VerifyAdminRequest(r.Context(), r.Header.Get("Authorization"))
			if !result.Allowed {
				writeVerdict(w, r, result)
				return
			}

			ctx := auth.ContextWithPrincipal(r.Context(), result.Principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequirePermission checks a specific permission against the principal
// installed by RequireAuth or RequireAdmin.
func RequirePermission(permission rbac.Permission) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := auth.GetPrincipal(r.Context())
			if !ok {
				writeAuthError(w, http.StatusUnauthorized, CodeUnauthorized, "Authentication required")
				return
			}

			if !rbac.HasPermission(principal.Permissions, permission) {
				logging.FromContext(r.Context()).Warn("permission denied",
					"subject", principal.Subject,
					"role", principal.Role,
					"required", permission)
				writeAuthError(w, http.StatusForbidden, CodePermissionDenied, "Insufficient permissions")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireAnyPermission passes when the principal holds at least one of the
// listed permissions. Used where several alternative capabilities satisfy
// an operation, such as viewing a collection anyone who can edit it may see.
func RequireAnyPermission(permissions ...rbac.Permission) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := auth.GetPrincipal(r.Context())
			if !ok {
				writeAuthError(w, http.StatusUnauthorized, CodeUnauthorized, "Authentication required")
				return
			}

			if !rbac.HasAnyPermission(principal.Permissions, permissions) {
				logging.FromContext(r.Context()).Warn("permission denied",
					"subject", principal.Subject,
					"role", principal.Role,
					"required_any", permissions)
				writeAuthError(w, http.StatusForbidden, CodePermissionDenied, "Insufficient permissions")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func writeVerdict(w http.ResponseWriter, r *http.Request, result auth.Result) {
	logger := logging.FromContext(r.Context())

	if result.Forbidden {
		logger.Warn("request forbidden", "reason", result.Reason)
		writeAuthError(w, http.StatusForbidden, CodePermissionDenied, result.Message)
		return
	}

	logger.Info("request unauthorized", "reason", result.Reason)
	writeAuthError(w, http.StatusUnauthorized, CodeUnauthorized, result.Message)
}

func writeAuthError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"success": false,
		"error":   message,
		"code":    code,
	})
}
