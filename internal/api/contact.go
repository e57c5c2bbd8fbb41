package api

import (
	"net/http"
	"time"

	"github.com/eduquip/catalog-backend/internal/content"
	"github.com/eduquip/catalog-backend/internal/logging"
	"github.com/google/uuid"
)

type contactRequest struct {
	Name       string   `json:"name" validate:"required,max=100"`
	Email      string   `json:"email" validate:"required,email"`
	Phone      string   `json:"phone" validate:"omitempty,max=30"`
	Company    string   `json:"company" validate:"omitempty,max=200"`
	Message    string   `json:"message" validate:"required,min=10,max=2000"`
	Locale     string   `json:"locale" validate:"omitempty,oneof=en fr"`
	ProductIDs []string `json:"productIds"`
}

// SubmitContact persists a quote/contact request. Public: no credential
// required. Reading submissions back is gated behind view:analytics.
func (s *Server) SubmitContact(w http.ResponseWriter, r *http.Request) {
	var req contactRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, CodeValidationError, err.Error())
		return
	}

	submission := &content.Submission{
		ID:         uuid.New().String(),
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		Company:    req.Company,
		Message:    req.Message,
		Locale:     req.Locale,
		ProductIDs: req.ProductIDs,
		CreatedAt:  time.Now().UTC(),
	}

	if err := s.store.AddSubmission(r.Context(), submission); err != nil {
		logging.FromContext(r.Context()).Error("failed to store submission", "error", err)
		WriteError(w, http.StatusInternalServerError, CodeInternalError, "An unexpected error occurred")
		return
	}

	logging.FromContext(r.Context()).Info("contact submission received", "submission_id", submission.ID)
	WriteMessage(w, http.StatusCreated, "Submission received")
}

func (s *Server) ListSubmissions(w http.ResponseWriter, r *http.Request) {
	submissions, err := s.store.ListSubmissions(r.Context())
	if err != nil {
		logging.FromContext(r.Context()).Error("failed to list submissions", "error", err)
		WriteError(w, http.StatusInternalServerError, CodeInternalError, "An unexpected error occurred")
		return
	}

	WriteSuccess(w, http.StatusOK, submissions)
}
