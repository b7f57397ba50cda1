package domain

import "time"

// UserRole controls what a login can do.
type UserRole string

const (
	RoleAdmin    UserRole = "admin"
	RoleEmployee UserRole = "employee"
)

// User is a login identity, linked to the employee record it was onboarded
// with. PasswordHash is a bcrypt hash and never leaves the service layer.
type User struct {
	UserID       string     `json:"id"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	FirstName    string     `json:"firstName"`
	LastName     string     `json:"lastName"`
	Role         UserRole   `json:"role"`
	EmployeeID   string     `json:"employeeId"`
	IsActive     bool       `json:"isActive"`
	LastLoginAt  *time.Time `json:"lastLoginAt,omitempty"`
	AuditFields
}

// AccessToken is an opaque bearer credential stored server side. Tokens are
// issued at signup and login and checked on every authenticated request.
type AccessToken struct {
	TokenID   string    `json:"id"`
	UserID    string    `json:"userId"`
	Token     string    `json:"-"`
	ExpiresAt time.Time `json:"expiresAt"`
	CreatedAt time.Time `json:"createdAt"`
}

// Expired reports whether the token is past its expiry at the given instant.
func (t *AccessToken) Expired(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}
