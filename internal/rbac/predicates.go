package rbac

// toSet materializes granted as a set so repeated membership tests are O(1).
func toSet(granted []string) map[string]struct{} {
	set := make(map[string]struct{}, len(granted))
	for _, p := range granted {
		set[p] = struct{}{}
	}
	return set
}

// HasPermission reports whether required is among the granted permissions.
// Total: an empty grant list always yields false.
func HasPermission(granted []string, required Permission) bool {
	for _, p := range granted {
		if p == string(required) {
			return true
		}
	}
	return false
}

// HasAnyPermission reports whether at least one of required is granted.
// An empty required set yields false.
func HasAnyPermission(granted []string, required []Permission) bool {
	set := toSet(granted)
	for _, p := range required {
		if _, ok := set[string(p)]; ok {
			return true
		}
	}
	return false
}

// HasAllPermissions reports whether every required permission is granted.
// An empty required set yields true.
func HasAllPermissions(granted []string, required []Permission) bool {
	set := toSet(granted)
	for _, p := range required {
		if _, ok := set[string(p)]; !ok {
			return false
		}
	}
	return true
}

// CanAccessAdminArea is the coarse role gate in front of the admin shell.
// Only admin and editor pass; unknown or empty roles fail closed.
func CanAccessAdminArea(role Role) bool {
	return role == RoleAdmin || role == RoleEditor
}

// CanManageContent reports whether granted allows creating or updating any
// of the three content types.
func CanManageContent(granted []string) bool {
	return HasAnyPermission(granted, []Permission{
		CreateProduct, UpdateProduct,
		CreateDesign, UpdateDesign,
		CreateProgram, UpdateProgram,
	})
}

// CanPublishContent reports whether granted allows publishing any content type.
func CanPublishContent(granted []string) bool {
	return HasAnyPermission(granted, []Permission{
		PublishProduct, PublishDesign, PublishProgram,
	})
}
