package model

// User is the logged-in actor. Roles gate mutating operations in the HTTP
// layer; the inventory store itself does not enforce authorization.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Roles.
const (
	RoleAdmin = "admin"
	RoleStaff = "staff"
)

// RoleAtLeast checks if role meets or exceeds the minimum required role.
// Unknown roles fail closed.
func RoleAtLeast(role, minimum string) bool {
	levels := map[string]int{
		RoleAdmin: 2,
		RoleStaff: 1,
	}
	return levels[role] > 0 && levels[minimum] > 0 && levels[role] >= levels[minimum]
}
