package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/eduquip/catalog-backend/internal/auth"
	"github.com/eduquip/catalog-backend/internal/content"
	"github.com/eduquip/catalog-backend/internal/logging"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type itemRequest struct {
	Name        string            `json:"name" validate:"required,max=200"`
	Description string            `json:"description" validate:"required,min=10"`
	Category    string            `json:"category" validate:"required"`
	Price       float64           `json:"price" validate:"omitempty,gt=0"`
	Currency    string            `json:"currency" validate:"omitempty,len=3"`
	Specs       map[string]string `json:"specs"`
	Images      []string          `json:"images" validate:"omitempty,dive,url"`
	Tags        []string          `json:"tags"`
	Featured    bool              `json:"featured"`
	Published   bool              `json:"published"`
	StockStatus string            `json:"stockStatus" validate:"omitempty,oneof=in-stock out-of-stock pre-order"`
}

func (req *itemRequest) apply(item *content.Item) {
	item.Name = req.Name
	item.Description = req.Description
	item.Category = req.Category
	item.Price = req.Price
	item.Currency = req.Currency
	item.Specs = req.Specs
	item.Images = req.Images
	item.Tags = req.Tags
	item.Featured = req.Featured
	item.Published = req.Published
	item.StockStatus = req.StockStatus
}

// listPublished serves the public catalog: published documents only.
func (s *Server) listPublished(collection string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := s.store.ListItems(r.Context(), collection)
		if err != nil {
			logging.FromContext(r.Context()).Error("failed to list items", "collection", collection, "error", err)
			WriteError(w, http.StatusInternalServerError, CodeInternalError, "An unexpected error occurred")
			return
		}

		published := make([]content.Item, 0, len(items))
		for _, item := range items {
			if item.Published {
				published = append(published, item)
			}
		}

		WriteSuccess(w, http.StatusOK, published)
	}
}

// listAll serves the admin view, unpublished documents included.
func (s *Server) listAll(collection string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := s.store.ListItems(r.Context(), collection)
		if err != nil {
			logging.FromContext(r.Context()).Error("failed to list items", "collection", collection, "error", err)
			WriteError(w, http.StatusInternalServerError, CodeInternalError, "An unexpected error occurred")
			return
		}

		WriteSuccess(w, http.StatusOK, items)
	}
}

func (s *Server) createItem(res contentResource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req itemRequest
		if err := s.decodeAndValidate(r, &req); err != nil {
			WriteError(w, http.StatusBadRequest, CodeValidationError, err.Error())
			return
		}

		now := time.Now().UTC()
		item := &content.Item{
			ID:        uuid.New().String(),
			CreatedAt: now,
			UpdatedAt: now,
		}
		if principal, ok := auth.GetPrincipal(r.Context()); ok {
			item.CreatedBy = principal.Subject
		}
		req.apply(item)

		if err := s.store.PutItem(r.Context(), res.collection, item); err != nil {
			logging.FromContext(r.Context()).Error("failed to store item", "collection", res.collection, "error", err)
			WriteError(w, http.StatusInternalServerError, CodeInternalError, "An unexpected error occurred")
			return
		}

		WriteSuccess(w, http.StatusCreated, item)
	}
}

func (s *Server) updateItem(res contentResource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		item, err := s.store.GetItem(r.Context(), res.collection, id)
		if err != nil {
			if errors.Is(err, content.ErrNotFound) {
				WriteError(w, http.StatusNotFound, CodeResourceNotFound, "Document not found")
				return
			}
			logging.FromContext(r.Context()).Error("failed to load item", "collection", res.collection, "error", err)
			WriteError(w, http.StatusInternalServerError, CodeInternalError, "An unexpected error occurred")
			return
		}

		var req itemRequest
		if err := s.decodeAndValidate(r, &req); err != nil {
			WriteError(w, http.StatusBadRequest, CodeValidationError, err.Error())
			return
		}

		req.apply(item)
		item.UpdatedAt = time.Now().UTC()

		if err := s.store.PutItem(r.Context(), res.collection, item); err != nil {
			logging.FromContext(r.Context()).Error("failed to store item", "collection", res.collection, "error", err)
			WriteError(w, http.StatusInternalServerError, CodeInternalError, "An unexpected error occurred")
			return
		}

		WriteSuccess(w, http.StatusOK, item)
	}
}

func (s *Server) deleteItem(res contentResource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		if err := s.store.DeleteItem(r.Context(), res.collection, id); err != nil {
			if errors.Is(err, content.ErrNotFound) {
				WriteError(w, http.StatusNotFound, CodeResourceNotFound, "Document not found")
				return
			}
			logging.FromContext(r.Context()).Error("failed to delete item", "collection", res.collection, "error", err)
			WriteError(w, http.StatusInternalServerError, CodeInternalError, "An unexpected error occurred")
			return
		}

		WriteMessage(w, http.StatusOK, "Document deleted")
	}
}

func (s *Server) publishItem(res contentResource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		item, err := s.store.GetItem(r.Context(), res.collection, id)
		if err != nil {
			if errors.Is(err, content.ErrNotFound) {
				WriteError(w, http.StatusNotFound, CodeResourceNotFound, "Document not found")
				return
			}
			logging.FromContext(r.Context()).Error("failed to load item", "collection", res.collection, "error", err)
			WriteError(w, http.StatusInternalServerError, CodeInternalError, "An unexpected error occurred")
			return
		}

		item.Published = true
		item.UpdatedAt = time.Now().UTC()

		if err := s.store.PutItem(r.Context(), res.collection, item); err != nil {
			logging.FromContext(r.Context()).Error("failed to store item", "collection", res.collection, "error", err)
			WriteError(w, http.StatusInternalServerError, CodeInternalError, "An unexpected error occurred")
			return
		}

		WriteSuccess(w, http.StatusOK, item)
	}
}
