package rbac

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func grantedStrings(perms ...Permission) []string {
	out := make([]string, len(perms))
	for i, p := range perms {
		out[i] = string(p)
	}
	return out
}

func TestHasPermission(t *testing.T) {
	granted := grantedStrings(CreateProduct, ViewAnalytics)

	assert.True(t, HasPermission(granted, CreateProduct))
	assert.True(t, HasPermission(granted, ViewAnalytics))
	assert.False(t, HasPermission(granted, DeleteProduct))
}

func TestHasPermission_EmptyGranted(t *testing.T) {
	for _, p := range AllPermissions {
		assert.False(t, HasPermission(nil, p))
		assert.False(t, HasPermission([]string{}, p))
	}
}

func TestHasAnyPermission(t *testing.T) {
	granted := grantedStrings(UpdateDesign)

	assert.True(t, HasAnyPermission(granted, []Permission{CreateDesign, UpdateDesign}))
	assert.False(t, HasAnyPermission(granted, []Permission{CreateProgram, DeleteProgram}))
}

func TestHasAnyPermission_EmptyRequired(t *testing.T) {
	// Vacuous disjunction is false.
	assert.False(t, HasAnyPermission(grantedStrings(AllPermissions...), nil))
	assert.False(t, HasAnyPermission(nil, nil))
}

func TestHasAllPermissions(t *testing.T) {
	granted := grantedStrings(CreateProduct, UpdateProduct, PublishProduct)

	assert.True(t, HasAllPermissions(granted, []Permission{CreateProduct, PublishProduct}))
	assert.False(t, HasAllPermissions(granted, []Permission{CreateProduct, DeleteProduct}))
}

func TestHasAllPermissions_EmptyRequired(t *testing.T) {
	// Vacuous conjunction is true.
	assert.True(t, HasAllPermissions(nil, nil))
	assert.True(t, HasAllPermissions(grantedStrings(ViewAnalytics), []Permission{}))
}

func TestCanAccessAdminArea(t *testing.T) {
	assert.True(t, CanAccessAdminArea(RoleAdmin))
	assert.True(t, CanAccessAdminArea(RoleEditor))
	assert.False(t, CanAccessAdminArea(RoleViewer))
	assert.False(t, CanAccessAdminArea(""))
	assert.False(t, CanAccessAdminArea("manager"))
}

func TestCanManageContent(t *testing.T) {
	assert.True(t, CanManageContent(grantedStrings(CreateProduct)))
	assert.True(t, CanManageContent(grantedStrings(UpdateProgram)))
	assert.False(t, CanManageContent(grantedStrings(ViewAnalytics, PublishProduct)))
	assert.False(t, CanManageContent(nil))
}

func TestCanPublishContent(t *testing.T) {
	assert.True(t, CanPublishContent(grantedStrings(PublishDesign)))
	assert.False(t, CanPublishContent(grantedStrings(CreateDesign, UpdateDesign)))
	assert.False(t, CanPublishContent(nil))
}
