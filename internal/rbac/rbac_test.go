package rbac

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPermissionsForRole_Admin(t *testing.T) {
	grants, err := PermissionsForRole(RoleAdmin)
	require.NoError(t, err)
	assert.ElementsMatch(t, AllPermissions, grants)
}

func TestPermissionsForRole_Editor(t *testing.T) {
	grants, err := PermissionsForRole(RoleEditor)
	require.NoError(t, err)

	assert.Contains(t, grants, CreateProduct)
	assert.Contains(t, grants, PublishDesign)
	assert.Contains(t, grants, ViewAnalytics)
	assert.NotContains(t, grants, DeleteProduct)
	assert.NotContains(t, grants, ManageRoles)
	assert.NotContains(t, grants, ManageSettings)
}

func TestPermissionsForRole_Viewer(t *testing.T) {
	grants, err := PermissionsForRole(RoleViewer)
	require.NoError(t, err)
	assert.Equal(t, []Permission{ViewAnalytics}, grants)
}

func TestPermissionsForRole_InvalidRole(t *testing.T) {
	for _, role := range []Role{"", "superuser", "Admin", "ADMIN"} {
		_, err := PermissionsForRole(role)
		assert.ErrorIs(t, err, ErrInvalidRole, "role %q", role)
	}
}

func TestPermissionsForRole_Deterministic(t *testing.T) {
	first, err := PermissionsForRole(RoleEditor)
	require.NoError(t, err)
	second, err := PermissionsForRole(RoleEditor)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestPermissionsForRole_ReturnsCopy(t *testing.T) {
	grants, err := PermissionsForRole(RoleViewer)
	require.NoError(t, err)

	grants[0] = ManageBackups

	again, err := PermissionsForRole(RoleViewer)
	require.NoError(t, err)
	assert.Equal(t, []Permission{ViewAnalytics}, again)
}

func TestValidRole(t *testing.T) {
	assert.True(t, ValidRole(RoleAdmin))
	assert.True(t, ValidRole(RoleEditor))
	assert.True(t, ValidRole(RoleViewer))
	assert.False(t, ValidRole(""))
	assert.False(t, ValidRole("owner"))
}

func TestValidateGrants(t *testing.T) {
	assert.NoError(t, ValidateGrants())
}

func TestValidateGrants_AdminHasFullCatalog(t *testing.T) {
	// Regression-proof by construction: the admin grant is the catalog
	// slice itself, so any future permission is granted automatically.
	assert.Len(t, RolePermissions[RoleAdmin], len(AllPermissions))
	for _, p := range AllPermissions {
		assert.Contains(t, RolePermissions[RoleAdmin], p)
	}
}
