package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/fledgehq/fledge-backend/internal/apperrors"
	"github.com/fledgehq/fledge-backend/internal/core/domain"
	portsrepo "github.com/fledgehq/fledge-backend/internal/core/ports/repositories"
	"github.com/fledgehq/fledge-backend/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const userColumns = `user_id, email, password_hash, first_name, last_name, role, employee_id, is_active, last_login_at, created_at, updated_at`

type PgxUserRepository struct {
	BaseRepository
}

// newPgxUserRepository creates a new repository for login identities.
func newPgxUserRepository(pool *pgxpool.Pool) portsrepo.UserRepositoryFacade {
	return &PgxUserRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.UserRepositoryFacade = (*PgxUserRepository)(nil)

func toModelUser(d domain.User) models.User {
	return models.User{
		UserID:       d.UserID,
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
		FirstName:    d.FirstName,
		LastName:     d.LastName,
		Role:         models.UserRole(d.Role),
		EmployeeID:   d.EmployeeID,
		IsActive:     d.IsActive,
		LastLoginAt:  d.LastLoginAt,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			LastUpdatedAt: d.LastUpdatedAt,
		},
	}
}

func toDomainUser(m models.User) domain.User {
	return domain.User{
		UserID:       m.UserID,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		FirstName:    m.FirstName,
		LastName:     m.LastName,
		Role:         domain.UserRole(m.Role),
		EmployeeID:   m.EmployeeID,
		IsActive:     m.IsActive,
		LastLoginAt:  m.LastLoginAt,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			LastUpdatedAt: m.LastUpdatedAt,
		},
	}
}

func scanUser(r row) (models.User, error) {
	var m models.User
	err := r.Scan(
		&m.UserID,
		&m.Email,
		&m.PasswordHash,
		&m.FirstName,
		&m.LastName,
		&m.Role,
		&m.EmployeeID,
		&m.IsActive,
		&m.LastLoginAt,
		&m.CreatedAt,
		&m.LastUpdatedAt,
	)
	return m, err
}

// SaveUserInTx persists a new user within an open transaction.
func (r *PgxUserRepository) SaveUserInTx(ctx context.Context, tx pgx.Tx, user domain.User) error {
	modelUser := toModelUser(user)

	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := tx.Exec(ctx, query,
		modelUser.UserID,
		modelUser.Email,
		modelUser.PasswordHash,
		modelUser.FirstName,
		modelUser.LastName,
		modelUser.Role,
		modelUser.EmployeeID,
		modelUser.IsActive,
		modelUser.LastLoginAt,
		modelUser.CreatedAt,
		modelUser.LastUpdatedAt,
	)
	if err != nil {
		return storageError("failed to save user "+modelUser.UserID, err)
	}
	return nil
}

// FindUserByID retrieves one user by primary identifier.
func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE user_id = $1;`

	m, err := scanUser(r.Pool.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, storageError("failed to find user by ID "+userID, err)
	}

	u := toDomainUser(m)
	return &u, nil
}

// FindUserByEmail retrieves one user by login email.
func (r *PgxUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1;`

	m, err := scanUser(r.Pool.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, storageError("failed to find user by email", err)
	}

	u := toDomainUser(m)
	return &u, nil
}

// UpdateLastLogin stamps the user's last successful login.
func (r *PgxUserRepository) UpdateLastLogin(ctx context.Context, userID string, at time.Time) error {
	query := `
		UPDATE users
		SET last_login_at = $2, updated_at = $2
		WHERE user_id = $1;
	`

	cmdTag, err := r.Pool.Exec(ctx, query, userID, at)
	if err != nil {
		return storageError("failed to update last login for user "+userID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
