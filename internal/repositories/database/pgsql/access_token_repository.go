package pgsql

import (
	"context"
	"errors"

	"github.com/fledgehq/fledge-backend/internal/apperrors"
	"github.com/fledgehq/fledge-backend/internal/core/domain"
	portsrepo "github.com/fledgehq/fledge-backend/internal/core/ports/repositories"
	"github.com/fledgehq/fledge-backend/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const tokenColumns = `token_id, user_id, token, expires_at, created_at`

type PgxAccessTokenRepository struct {
	BaseRepository
}

// newPgxAccessTokenRepository creates a new repository for bearer tokens.
func newPgxAccessTokenRepository(pool *pgxpool.Pool) portsrepo.AccessTokenRepository {
	return &PgxAccessTokenRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.AccessTokenRepository = (*PgxAccessTokenRepository)(nil)

func toModelToken(d domain.AccessToken) models.AccessToken {
	return models.AccessToken{
		TokenID:   d.TokenID,
		UserID:    d.UserID,
		Token:     d.Token,
		ExpiresAt: d.ExpiresAt,
		CreatedAt: d.CreatedAt,
	}
}

func toDomainToken(m models.AccessToken) domain.AccessToken {
	return domain.AccessToken{
		TokenID:   m.TokenID,
		UserID:    m.UserID,
		Token:     m.Token,
		ExpiresAt: m.ExpiresAt,
		CreatedAt: m.CreatedAt,
	}
}

const insertTokenQuery = `
	INSERT INTO access_tokens (` + tokenColumns + `)
	VALUES ($1, $2, $3, $4, $5);
`

// SaveTokenInTx persists a freshly issued token within an open transaction.
func (r *PgxAccessTokenRepository) SaveTokenInTx(ctx context.Context, tx pgx.Tx, token domain.AccessToken) error {
	m := toModelToken(token)
	_, err := tx.Exec(ctx, insertTokenQuery, m.TokenID, m.UserID, m.Token, m.ExpiresAt, m.CreatedAt)
	if err != nil {
		return storageError("failed to save access token", err)
	}
	return nil
}

// SaveToken persists a token outside any larger transaction.
func (r *PgxAccessTokenRepository) SaveToken(ctx context.Context, token domain.AccessToken) error {
	m := toModelToken(token)
	_, err := r.Pool.Exec(ctx, insertTokenQuery, m.TokenID, m.UserID, m.Token, m.ExpiresAt, m.CreatedAt)
	if err != nil {
		return storageError("failed to save access token", err)
	}
	return nil
}

// FindToken resolves a raw token value, or ErrNotFound.
func (r *PgxAccessTokenRepository) FindToken(ctx context.Context, token string) (*domain.AccessToken, error) {
	query := `SELECT ` + tokenColumns + ` FROM access_tokens WHERE token = $1;`

	var m models.AccessToken
	err := r.Pool.QueryRow(ctx, query, token).Scan(
		&m.TokenID,
		&m.UserID,
		&m.Token,
		&m.ExpiresAt,
		&m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, storageError("failed to find access token", err)
	}

	t := toDomainToken(m)
	return &t, nil
}

// DeleteToken revokes a token. Deleting an unknown token is not an error, so
// logout stays idempotent.
func (r *PgxAccessTokenRepository) DeleteToken(ctx context.Context, token string) error {
	query := `DELETE FROM access_tokens WHERE token = $1;`

	_, err := r.Pool.Exec(ctx, query, token)
	if err != nil {
		return storageError("failed to delete access token", err)
	}
	return nil
}
