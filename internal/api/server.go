package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/eduquip/catalog-backend/internal/auth"
	"github.com/eduquip/catalog-backend/internal/content"
	"github.com/eduquip/catalog-backend/internal/middleware"
	"github.com/eduquip/catalog-backend/internal/rbac"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

type Server struct {
	store    content.Store
	enforcer *auth.Enforcer
	validate *validator.Validate
}

func NewServer(store content.Store, enforcer *auth.Enforcer) *Server {
	return &Server{
		store:    store,
		enforcer: enforcer,
		validate: validator.New(),
	}
}

// contentResource binds one admin-managed collection to the permissions
// gating each operation on it.
type contentResource struct {
	path       string
	collection string
	create     rbac.Permission
	update     rbac.Permission
	delete     rbac.Permission
	publish    rbac.Permission
}

var contentResources = []contentResource{
	{
		path:       "products",
		collection: content.CollectionProducts,
		create:     rbac.CreateProduct,
		update:     rbac.UpdateProduct,
		delete:     rbac.DeleteProduct,
		publish:    rbac.PublishProduct,
	},
	{
		path:       "designs",
		collection: content.CollectionDesigns,
		create:     rbac.CreateDesign,
		update:     rbac.UpdateDesign,
		delete:     rbac.DeleteDesign,
		publish:    rbac.PublishDesign,
	},
	{
		path:       "programs",
		collection: content.CollectionPrograms,
		create:     rbac.CreateProgram,
		update:     rbac.UpdateProgram,
		delete:     rbac.DeleteProgram,
		publish:    rbac.PublishProgram,
	},
}

// Routes builds the full router: public catalog reads and the contact
// endpoint, then the admin area behind the coarse role gate with
// per-permission gates inside it.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/health", s.HealthCheck)

	r.Route("/api", func(r chi.Router) {
		for _, res := range contentResources {
			r.Get("/"+res.path, s.listPublished(res.collection))
		}
		r.Post("/contact", s.SubmitContact)

		r.Route("/admin", func(r chi.Router) {
			// Content management: open to any authenticated principal
			// holding the per-operation permission, so editors can work
			// here without the full admin role.
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAuth(s.enforcer))

				for _, res := range contentResources {
					res := res
					r.Route("/"+res.path, func(r chi.Router) {
						r.With(middleware.RequireAnyPermission(res.create, res.update, res.delete, res.publish)).
							Get("/", s.listAll(res.collection))
						r.With(middleware.RequirePermission(res.create)).Post("/", s.createItem(res))
						r.With(middleware.RequirePermission(res.update)).Put("/{id}", s.updateItem(res))
						r.With(middleware.RequirePermission(res.delete)).Delete("/{id}", s.deleteItem(res))
						r.With(middleware.RequirePermission(res.publish)).Post("/{id}/publish", s.publishItem(res))
					})
				}
			})

			// User management and submissions: admin-gated endpoints,
			// with the fine-grained gates stacked on top.
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAdmin(s.enforcer))

				r.With(middleware.RequirePermission(rbac.ViewUsers)).Get("/users", s.ListUsers)
				r.With(middleware.RequirePermission(rbac.ManageRoles)).Put("/users/{id}/role", s.UpdateUserRole)
				r.With(middleware.RequirePermission(rbac.ViewAnalytics)).Get("/submissions", s.ListSubmissions)
			})
		})
	})

	return r
}

// decodeAndValidate unmarshals the request body into dst and runs the
// struct validation tags. The returned error message is safe to surface.
func (s *Server) decodeAndValidate(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("invalid request body")
	}

	if err := s.validate.Struct(dst); err != nil {
		var invalid *validator.InvalidValidationError
		if errors.As(err, &invalid) {
			return fmt.Errorf("invalid request body")
		}

		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fields := make([]string, 0, len(fieldErrs))
			for _, fe := range fieldErrs {
				fields = append(fields, fe.Field())
			}
			return fmt.Errorf("validation failed for: %s", strings.Join(fields, ", "))
		}
		return fmt.Errorf("validation failed")
	}

	return nil
}
