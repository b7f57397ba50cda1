package dto

import (
	"time"

	"github.com/fledgehq/fledge-backend/internal/core/domain"
)

// SignupRequest onboards a new employee: user identity plus the HR fields
// the employee record needs. The FSA account is created as part of signup.
type SignupRequest struct {
	Email          string    `json:"email" binding:"required,email"`
	Password       string    `json:"password" binding:"required,min=8"`
	FirstName      string    `json:"firstName" binding:"required"`
	LastName       string    `json:"lastName" binding:"required"`
	EmployeeNumber string    `json:"employeeNumber" binding:"required"`
	Department     string    `json:"department"`
	HireDate       time.Time `json:"hireDate"`
}

// LoginRequest authenticates an existing user.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UserResponse mirrors domain.User on the wire, without credentials.
type UserResponse struct {
	UserID      string     `json:"id"`
	Email       string     `json:"email"`
	FirstName   string     `json:"firstName"`
	LastName    string     `json:"lastName"`
	Role        string     `json:"role"`
	EmployeeID  string     `json:"employeeId"`
	IsActive    bool       `json:"isActive"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// AuthResponse is returned by signup and login.
type AuthResponse struct {
	User        UserResponse `json:"user"`
	AccessToken string       `json:"accessToken"`
	ExpiresAt   time.Time    `json:"expiresAt"`
}

// ToUserResponse converts a domain.User to its DTO.
func ToUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		UserID:      user.UserID,
		Email:       user.Email,
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		Role:        string(user.Role),
		EmployeeID:  user.EmployeeID,
		IsActive:    user.IsActive,
		LastLoginAt: user.LastLoginAt,
		CreatedAt:   user.CreatedAt,
	}
}

// ToAuthResponse bundles a user and a freshly issued token.
func ToAuthResponse(user *domain.User, token *domain.AccessToken) AuthResponse {
	return AuthResponse{
		User:        ToUserResponse(user),
		AccessToken: token.Token,
		ExpiresAt:   token.ExpiresAt,
	}
}
