package domain

// Role represents the user's permission level in the system.
type Role string

const (
	// RoleAdmin grants full content-management access.
	RoleAdmin Role = "admin"
	// RoleViewer grants read-only access, the default for self-registered accounts.
	RoleViewer Role = "viewer"
)

// User represents an authenticated account in the system.
type User struct {
	Entity
	Username     string `json:"username"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"` // Stored hashed, never serialized
	Role         Role   `json:"role"`
	IsActive     bool   `json:"is_active"`
	FullName     string `json:"full_name,omitempty"`
	Bio          string `json:"bio,omitempty"`
	AvatarURL    string `json:"avatar_url,omitempty"`
}

// IsAdmin returns true if the user has administrative privileges.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
