package user

import "time"

// Role decides what a user sees and may change.
type Role string

const (
	// RoleManager sees every contributor's tasks, read-only.
	RoleManager Role = "manager"
	// RoleEmployee sees and edits only their own tasks.
	RoleEmployee Role = "employee"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleManager || r == RoleEmployee
}

// User is an account in the task log.
type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Name      string    `json:"name"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// IsManager reports whether u has the manager role.
func (u User) IsManager() bool {
	return u.Role == RoleManager
}
