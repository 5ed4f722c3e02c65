package models

// UserRole is the role name stored in the roles table
type UserRole string

const (
	RoleAdmin UserRole = "admin"
	RoleUser  UserRole = "user"
)

// User is a row of the user listing
type User struct {
	ID    int64  `json:"id" db:"id"`
	Name  string `json:"name" db:"name"`
	Email string `json:"email" db:"email"`
}

// TableName returns the table name for the User model
func (User) TableName() string {
	return "users"
}

// Principal is an authenticated identity: a user joined with its role
type Principal struct {
	ID    int64    `json:"id" db:"id"`
	Email string   `json:"email,omitempty" db:"email"`
	Role  UserRole `json:"role" db:"role"`
}

// IsAdmin returns true if the principal has the admin role
func (p *Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// HasRole reports whether the principal holds role. An empty role matches any principal.
func (p *Principal) HasRole(role UserRole) bool {
	return role == "" || p.Role == role
}
