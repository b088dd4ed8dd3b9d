package entity

// Role tags are an open set; these are the ones the system knows about.
const (
	RoleSuperAdmin   = "SUPER_ADMIN"
	RoleAdmin        = "ADMIN"
	RoleProfessional = "PROFESSIONAL"
	RoleClient       = "CLIENT"
)

// DefaultRole is assigned when a user is created without a role.
const DefaultRole = RoleSuperAdmin

// IsAdministrative reports whether role may manage accounts and remove records.
func IsAdministrative(role string) bool {
	return role == RoleSuperAdmin || role == RoleAdmin
}
