package models

import "time"

// UserRole controls what a login can do.
type UserRole string

const (
	RoleAdmin    UserRole = "admin"
	RoleEmployee UserRole = "employee"
)

// User is the users row shape.
type User struct {
	UserID       string     `db:"user_id"`
	Email        string     `db:"email"`
	PasswordHash string     `db:"password_hash"`
	FirstName    string     `db:"first_name"`
	LastName     string     `db:"last_name"`
	Role         UserRole   `db:"role"`
	EmployeeID   string     `db:"employee_id"`
	IsActive     bool       `db:"is_active"`
	LastLoginAt  *time.Time `db:"last_login_at"`
	AuditFields
}

// AccessToken is the access_tokens row shape.
type AccessToken struct {
	TokenID   string    `db:"token_id"`
	UserID    string    `db:"user_id"`
	Token     string    `db:"token"`
	ExpiresAt time.Time `db:"expires_at"`
	CreatedAt time.Time `db:"created_at"`
}
