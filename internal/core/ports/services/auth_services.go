package services

import (
	"context"

	"github.com/fledgehq/fledge-backend/internal/core/domain"
	"github.com/fledgehq/fledge-backend/internal/dto"
)

// AuthSvcFacade covers onboarding and session credentials. Signup is
// all-or-nothing: the user, employee record, FSA account, and first access
// token are created in one database transaction.
type AuthSvcFacade interface {
	Signup(ctx context.Context, req dto.SignupRequest) (*domain.User, *domain.AccessToken, error)
	Login(ctx context.Context, req dto.LoginRequest) (*domain.User, *domain.AccessToken, error)
	Logout(ctx context.Context, token string) error

	// ValidateToken resolves a raw bearer token to the owning user ID, or
	// ErrUnauthorized when unknown or expired.
	ValidateToken(ctx context.Context, token string) (string, error)
}
