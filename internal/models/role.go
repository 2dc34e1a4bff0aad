package models

import "fmt"

// Role determines a user's access level in the system.
type Role string

const (
	// RoleAdmin can create, read, update, and delete all users and tasks.
	RoleAdmin Role = "Admin"
	// RoleUser can only view and update the status of tasks assigned to them.
	RoleUser Role = "User"
)

// ParseRole converts a role string into a Role, rejecting unknown values.
func ParseRole(s string) (Role, error) {
	switch s {
	case string(RoleAdmin):
		return RoleAdmin, nil
	case string(RoleUser):
		return RoleUser, nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

func (r Role) String() string {
	return string(r)
}
