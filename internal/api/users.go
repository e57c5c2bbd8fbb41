package api

import (
	"errors"
	"net/http"

	"github.com/eduquip/catalog-backend/internal/content"
	"github.com/eduquip/catalog-backend/internal/logging"
	"github.com/eduquip/catalog-backend/internal/rbac"
	"github.com/go-chi/chi/v5"
)

func (s *Server) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.store.ListUsers(r.Context())
	if err != nil {
		logging.FromContext(r.Context()).Error("failed to list users", "error", err)
		WriteError(w, http.StatusInternalServerError, CodeInternalError, "An unexpected error occurred")
		return
	}

	WriteSuccess(w, http.StatusOK, users)
}

type updateRoleRequest struct {
	Role string `json:"role" validate:"required"`
}

// UpdateUserRole assigns one of the catalog roles to a user. An unknown
// role name is rejected outright; there is no fallback role. The new role
// reaches the user's claims on their next token refresh.
func (s *Server) UpdateUserRole(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req updateRoleRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, CodeValidationError, err.Error())
		return
	}

	if !rbac.ValidRole(rbac.Role(req.Role)) {
		WriteError(w, http.StatusBadRequest, CodeValidationError, "Unknown role")
		return
	}

	user, err := s.store.GetUser(r.Context(), id)
	if err != nil {
		if errors.Is(err, content.ErrNotFound) {
			WriteError(w, http.StatusNotFound, CodeResourceNotFound, "User not found")
			return
		}
		logging.FromContext(r.Context()).Error("failed to load user", "error", err)
		WriteError(w, http.StatusInternalServerError, CodeInternalError, "An unexpected error occurred")
		return
	}

	user.Role = req.Role
	if err := s.store.PutUser(r.Context(), user); err != nil {
		logging.FromContext(r.Context()).Error("failed to store user", "error", err)
		WriteError(w, http.StatusInternalServerError, CodeInternalError, "An unexpected error occurred")
		return
	}

	logging.FromContext(r.Context()).Info("user role updated", "user_id", id, "role", req.Role)
	WriteSuccess(w, http.StatusOK, user)
}
