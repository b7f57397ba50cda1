package repositories

import (
	"context"
	"time"

	"github.com/fledgehq/fledge-backend/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// UserReader defines read operations for login identities.
type UserReader interface {
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)
}

// UserWriter defines write operations for login identities.
type UserWriter interface {
	// SaveUserInTx persists a new user within an open transaction.
	SaveUserInTx(ctx context.Context, tx pgx.Tx, user domain.User) error

	// UpdateLastLogin stamps the user's last successful login.
	UpdateLastLogin(ctx context.Context, userID string, at time.Time) error
}

// UserRepositoryFacade combines the user interfaces.
type UserRepositoryFacade interface {
	UserReader
	UserWriter
}

// AccessTokenRepository stores opaque bearer tokens.
type AccessTokenRepository interface {
	// SaveTokenInTx persists a freshly issued token within an open
	// transaction (signup issues the first credential atomically with the
	// user record).
	SaveTokenInTx(ctx context.Context, tx pgx.Tx, token domain.AccessToken) error

	// SaveToken persists a token outside any larger transaction (login).
	SaveToken(ctx context.Context, token domain.AccessToken) error

	// FindToken resolves a raw token value, or ErrNotFound.
	FindToken(ctx context.Context, token string) (*domain.AccessToken, error)

	// DeleteToken revokes a token. Deleting an unknown token is not an error.
	DeleteToken(ctx context.Context, token string) error
}
