package shared

// =====================================================
// ROLES
// =====================================================

const (
	RoleSuperAdmin = "super_admin"
	RoleAdmin      = "admin"
	RoleEditor     = "editor"
	RoleSupport    = "support"
	RoleUser       = "user"
)

// Role tiers used by the admin route groups
var (
	OrderManagers   = []string{RoleSuperAdmin, RoleAdmin}
	ContentManagers = []string{RoleSuperAdmin, RoleAdmin, RoleEditor}
	MessageHandlers = []string{RoleSuperAdmin, RoleAdmin, RoleSupport}
	BackOffice      = []string{RoleSuperAdmin, RoleAdmin, RoleEditor, RoleSupport}
)

// IsValidRole reports whether role is one of the known roles
func IsValidRole(role string) bool {
	switch role {
	case RoleSuperAdmin, RoleAdmin, RoleEditor, RoleSupport, RoleUser:
		return true
	}
	return false
}

// CanManageOrders is true for roles that may read any order
func CanManageOrders(role string) bool {
	return role == RoleSuperAdmin || role == RoleAdmin
}
