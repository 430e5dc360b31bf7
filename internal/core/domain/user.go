package domain

import "time"

// UserRole is the application-wide role of a user.
type UserRole string

const (
	RoleCraftsman UserRole = "craftsman"
	RoleAdmin     UserRole = "admin"
)

// User represents a user of the application in the domain.
type User struct {
	UserID       string   `json:"userID"` // Primary Key (e.g., UUID)
	Email        string   `json:"email"`
	Name         string   `json:"name"`
	PasswordHash string   `json:"-"`
	Role         UserRole `json:"role"`
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"` // Used for soft delete

	RefreshTokenHash       *string    `json:"-"`
	RefreshTokenExpiryTime *time.Time `json:"-"`
}

// IsAdmin reports whether the user may act on any craftsman's data.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
