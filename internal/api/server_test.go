package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/eduquip/catalog-backend/internal/content"
	"github.com/eduquip/catalog-backend/internal/rbac"
	"github.com/eduquip/catalog-backend/internal/testutil"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) (chi.Router, *testutil.AuthFixture, *content.MemoryStore) {
	t.Helper()

	fixture := testutil.NewAuthFixture(t)
	store := content.NewMemoryStore()
	server := NewServer(store, fixture.Enforcer)
	return server.Routes(), fixture, store
}

func doJSON(t *testing.T, router chi.Router, method, path, authHeader string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func validProductBody() map[string]any {
	return map[string]any{
		"name":        "Compound Microscope",
		"description": "1000x compound microscope for school laboratories",
		"category":    "microscopy",
		"price":       499.99,
		"currency":    "CAD",
		"images":      []string{"https://cdn.example.com/microscope.jpg"},
	}
}

func TestHealthCheck(t *testing.T) {
	router, _, _ := newTestServer(t)

	rec := doJSON(t, router, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCreateProduct_RequiresToken(t *testing.T) {
	router, _, store := newTestServer(t)

	rec := doJSON(t, router, http.MethodPost, "/api/admin/products", "", validProductBody())
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "UNAUTHORIZED", body["code"])

	items, err := store.ListItems(context.Background(), content.CollectionProducts)
	require.NoError(t, err)
	assert.Empty(t, items, "no data access on deny")
}

func TestCreateProduct_EditorAllowed(t *testing.T) {
	router, fixture, store := newTestServer(t)

	rec := doJSON(t, router, http.MethodPost, "/api/admin/products",
		fixture.BearerForRole(t, "editor-1", rbac.RoleEditor), validProductBody())
	assert.Equal(t, http.StatusCreated, rec.Code)

	items, err := store.ListItems(context.Background(), content.CollectionProducts)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Compound Microscope", items[0].Name)
	assert.Equal(t, "editor-1", items[0].CreatedBy)
}

func TestCreateProduct_ViewerForbidden(t *testing.T) {
	router, fixture, _ := newTestServer(t)

	rec := doJSON(t, router, http.MethodPost, "/api/admin/products",
		fixture.BearerForRole(t, "viewer-1", rbac.RoleViewer), validProductBody())
	assert.Equal(t, http.StatusForbidden, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, "PERMISSION_DENIED", body["code"])
}

func TestCreateProduct_ValidationError(t *testing.T) {
	router, fixture, _ := newTestServer(t)

	rec := doJSON(t, router, http.MethodPost, "/api/admin/products",
		fixture.BearerForRole(t, "editor-1", rbac.RoleEditor),
		map[string]any{"name": "X", "description": "too short"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, "VALIDATION_ERROR", body["code"])
}

func TestDeleteProduct_EditorForbidden(t *testing.T) {
	router, fixture, store := newTestServer(t)

	require.NoError(t, store.PutItem(context.Background(), content.CollectionProducts, &content.Item{ID: "p1", Name: "Beaker Set"}))

	rec := doJSON(t, router, http.MethodDelete, "/api/admin/products/p1",
		fixture.BearerForRole(t, "editor-1", rbac.RoleEditor), nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	_, err := store.GetItem(context.Background(), content.CollectionProducts, "p1")
	assert.NoError(t, err, "document must survive a denied delete")
}

func TestDeleteProduct_Admin(t *testing.T) {
	router, fixture, store := newTestServer(t)

	require.NoError(t, store.PutItem(context.Background(), content.CollectionProducts, &content.Item{ID: "p1", Name: "Beaker Set"}))

	rec := doJSON(t, router, http.MethodDelete, "/api/admin/products/p1",
		fixture.BearerForRole(t, "admin-1", rbac.RoleAdmin), nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	_, err := store.GetItem(context.Background(), content.CollectionProducts, "p1")
	assert.ErrorIs(t, err, content.ErrNotFound)
}

func TestDeleteProduct_NotFound(t *testing.T) {
	router, fixture, _ := newTestServer(t)

	rec := doJSON(t, router, http.MethodDelete, "/api/admin/products/missing",
		fixture.BearerForRole(t, "admin-1", rbac.RoleAdmin), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPublishFlow(t *testing.T) {
	router, fixture, store := newTestServer(t)
	editor := fixture.BearerForRole(t, "editor-1", rbac.RoleEditor)

	require.NoError(t, store.PutItem(context.Background(), content.CollectionDesigns, &content.Item{ID: "d1", Name: "Chemistry Lab Layout"}))

	// Unpublished designs are invisible publicly.
	rec := doJSON(t, router, http.MethodGet, "/api/designs", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "Chemistry Lab Layout")

	rec = doJSON(t, router, http.MethodPost, "/api/admin/designs/d1/publish", editor, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/designs", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Chemistry Lab Layout")
}

func TestListAll_ViewerForbidden(t *testing.T) {
	router, fixture, _ := newTestServer(t)

	rec := doJSON(t, router, http.MethodGet, "/api/admin/products",
		fixture.BearerForRole(t, "viewer-1", rbac.RoleViewer), nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestListAll_EditorSeesUnpublished(t *testing.T) {
	router, fixture, store := newTestServer(t)

	require.NoError(t, store.PutItem(context.Background(), content.CollectionProducts, &content.Item{ID: "p1", Name: "Draft Kit"}))

	rec := doJSON(t, router, http.MethodGet, "/api/admin/products",
		fixture.BearerForRole(t, "editor-1", rbac.RoleEditor), nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Draft Kit")
}

func TestUpdateUserRole_EditorForbidden(t *testing.T) {
	// The users area sits behind the strict admin gate; an editor is
	// denied before any permission check runs.
	router, fixture, _ := newTestServer(t)

	rec := doJSON(t, router, http.MethodPut, "/api/admin/users/u1/role",
		fixture.BearerForRole(t, "editor-1", rbac.RoleEditor),
		map[string]any{"role": "viewer"})
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestUpdateUserRole_Admin(t *testing.T) {
	router, fixture, store := newTestServer(t)

	require.NoError(t, store.PutUser(context.Background(), &content.User{ID: "u1", Email: "u1@example.com", Role: "viewer"}))

	rec := doJSON(t, router, http.MethodPut, "/api/admin/users/u1/role",
		fixture.BearerForRole(t, "admin-1", rbac.RoleAdmin),
		map[string]any{"role": "editor"})
	assert.Equal(t, http.StatusOK, rec.Code)

	user, err := store.GetUser(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "editor", user.Role)
}

func TestUpdateUserRole_UnknownRoleRejected(t *testing.T) {
	router, fixture, store := newTestServer(t)

	require.NoError(t, store.PutUser(context.Background(), &content.User{ID: "u1", Email: "u1@example.com", Role: "viewer"}))

	rec := doJSON(t, router, http.MethodPut, "/api/admin/users/u1/role",
		fixture.BearerForRole(t, "admin-1", rbac.RoleAdmin),
		map[string]any{"role": "superuser"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	user, err := store.GetUser(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "viewer", user.Role, "role must not change on rejection")
}

func TestContactSubmission(t *testing.T) {
	router, fixture, _ := newTestServer(t)

	rec := doJSON(t, router, http.MethodPost, "/api/contact", "", map[string]any{
		"name":    "Jordan Smith",
		"email":   "jordan@school.example",
		"message": "Requesting a quote for ten microscopes.",
		"locale":  "fr",
	})
	assert.Equal(t, http.StatusCreated, rec.Code)

	// Reading submissions back requires the admin gate plus view:analytics.
	rec = doJSON(t, router, http.MethodGet, "/api/admin/submissions", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/admin/submissions",
		fixture.BearerForRole(t, "admin-1", rbac.RoleAdmin), nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "jordan@school.example")
}

func TestContactSubmission_Invalid(t *testing.T) {
	router, _, store := newTestServer(t)

	rec := doJSON(t, router, http.MethodPost, "/api/contact", "", map[string]any{
		"name":  "Jordan Smith",
		"email": "not-an-email",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	submissions, err := store.ListSubmissions(context.Background())
	require.NoError(t, err)
	assert.Empty(t, submissions)
}
