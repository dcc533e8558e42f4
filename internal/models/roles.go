package models

// Roles a user account can hold.
const (
	RoleEmployee = "employee"
	RoleAdmin    = "admin"
)

// ValidRole reports whether role is one the service understands.
func ValidRole(role string) bool {
	return role == RoleEmployee || role == RoleAdmin
}
