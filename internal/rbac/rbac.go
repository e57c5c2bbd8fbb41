package rbac

import (
	"errors"
	"fmt"
)

// Permission is an opaque capability identifier in <action>:<resource> form.
type Permission string

// Content management
const (
	CreateProduct  Permission = "create:product"
	UpdateProduct  Permission = "update:product"
	DeleteProduct  Permission = "delete:product"
	PublishProduct Permission = "publish:product"

	CreateDesign  Permission = "create:design"
	UpdateDesign  Permission = "update:design"
	DeleteDesign  Permission = "delete:design"
	PublishDesign Permission = "publish:design"

	CreateProgram  Permission = "create:program"
	UpdateProgram  Permission = "update:program"
	DeleteProgram  Permission = "delete:program"
	PublishProgram Permission = "publish:program"
)

// User management
const (
	ViewUsers   Permission = "view:users"
	CreateUser  Permission = "create:user"
	UpdateUser  Permission = "update:user"
	DeleteUser  Permission = "delete:user"
	ManageRoles Permission = "manage:roles"
)

// Analytics and reporting
const (
	ViewAnalytics Permission = "view:analytics"
	ExportData    Permission = "export:data"
)

// System administration
const (
	ManageSettings Permission = "manage:settings"
	ViewLogs       Permission = "view:logs"
	ManageBackups  Permission = "manage:backups"
)

// Role is one of the three recognized role names. Anything else is invalid;
// callers must fail closed rather than default to a named role.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleEditor Role = "editor"
	RoleViewer Role = "viewer"
)

var ErrInvalidRole = errors.New("invalid role")

// AllPermissions is the closed permission catalog. Every grant below must be
// a subset of this slice.
var AllPermissions = []Permission{
	CreateProduct, UpdateProduct, DeleteProduct, PublishProduct,
	CreateDesign, UpdateDesign, DeleteDesign, PublishDesign,
	CreateProgram, UpdateProgram, DeleteProgram, PublishProgram,
	ViewUsers, CreateUser, UpdateUser, DeleteUser, ManageRoles,
	ViewAnalytics, ExportData,
	ManageSettings, ViewLogs, ManageBackups,
}

// RolePermissions maps each role to its grant set. The admin grant is the
// full catalog by construction so it cannot drift as permissions are added.
var RolePermissions = map[Role][]Permission{
	RoleAdmin: AllPermissions,
	RoleEditor: {
		CreateProduct, UpdateProduct, PublishProduct,
		CreateDesign, UpdateDesign, PublishDesign,
		CreateProgram, UpdateProgram, PublishProgram,
		ViewAnalytics,
	},
	RoleViewer: {
		ViewAnalytics,
	},
}

// ValidRole reports whether r names one of the recognized roles.
func ValidRole(r Role) bool {
	_, ok := RolePermissions[r]
	return ok
}

// PermissionsForRole returns a copy of the grant set for role. An
// unrecognized role is a configuration error, never a silent default.
func PermissionsForRole(role Role) ([]Permission, error) {
	grants, ok := RolePermissions[role]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidRole, role)
	}
	out := make([]Permission, len(grants))
	copy(out, grants)
	return out, nil
}

// ValidateGrants checks the role map invariants: every grant is a subset of
// the catalog, no grant contains duplicates, and the admin grant equals the
// full catalog. Called once at startup; a failure is a configuration bug.
func ValidateGrants() error {
	catalog := make(map[Permission]struct{}, len(AllPermissions))
	for _, p := range AllPermissions {
		if _, dup := catalog[p]; dup {
			return fmt.Errorf("permission catalog contains duplicate %q", p)
		}
		catalog[p] = struct{}{}
	}

	for role, grants := range RolePermissions {
		seen := make(map[Permission]struct{}, len(grants))
		for _, p := range grants {
			if _, ok := catalog[p]; !ok {
				return fmt.Errorf("role %q granted %q which is not in the catalog", role, p)
			}
			if _, dup := seen[p]; dup {
				return fmt.Errorf("role %q granted %q more than once", role, p)
			}
			seen[p] = struct{}{}
		}
	}

	if len(RolePermissions[RoleAdmin]) != len(AllPermissions) {
		return fmt.Errorf("admin grant has %d permissions, catalog has %d",
			len(RolePermissions[RoleAdmin]), len(AllPermissions))
	}

	return nil
}
