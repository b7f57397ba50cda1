package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/fledgehq/fledge-backend/internal/apperrors"
	"github.com/fledgehq/fledge-backend/internal/core/domain"
	portsrepo "github.com/fledgehq/fledge-backend/internal/core/ports/repositories"
	portssvc "github.com/fledgehq/fledge-backend/internal/core/ports/services"
	"github.com/fledgehq/fledge-backend/internal/dto"
	"github.com/fledgehq/fledge-backend/internal/middleware"
	"github.com/fledgehq/fledge-backend/internal/utils"
)

const accessTokenBytes = 32

// userService handles onboarding and session credentials.
type userService struct {
	txManager    portsrepo.TransactionManager
	userRepo     portsrepo.UserRepositoryFacade
	tokenRepo    portsrepo.AccessTokenRepository
	employeeRepo portsrepo.EmployeeRepositoryFacade
	accountSvc   portssvc.FSAAccountSvcFacade
	tokenTTL     time.Duration
}

// NewUserService creates the auth/onboarding service. tokenTTL bounds the
// lifetime of issued access tokens.
func NewUserService(txManager portsrepo.TransactionManager, userRepo portsrepo.UserRepositoryFacade, tokenRepo portsrepo.AccessTokenRepository, employeeRepo portsrepo.EmployeeRepositoryFacade, accountSvc portssvc.FSAAccountSvcFacade, tokenTTL time.Duration) portssvc.AuthSvcFacade {
	return &userService{
		txManager:    txManager,
		userRepo:     userRepo,
		tokenRepo:    tokenRepo,
		employeeRepo: employeeRepo,
		accountSvc:   accountSvc,
		tokenTTL:     tokenTTL,
	}
}

var _ portssvc.AuthSvcFacade = (*userService)(nil)

// Signup onboards a new employee. The user, employee record, FSA account,
// and first access token are committed as one unit; any failure rolls the
// whole onboarding back.
func (s *userService) Signup(ctx context.Context, req dto.SignupRequest) (*domain.User, *domain.AccessToken, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	existing, err := s.userRepo.FindUserByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		logger.Error("Failed to check for existing user", slog.String("error", err.Error()))
		return nil, nil, err
	}
	if existing != nil {
		return nil, nil, fmt.Errorf("%w: user with email %s already exists", apperrors.ErrDuplicate, req.Email)
	}

	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		logger.Error("Failed to hash password", slog.String("error", err.Error()))
		return nil, nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	hireDate := req.HireDate
	if hireDate.IsZero() {
		hireDate = now
	}

	employee := domain.Employee{
		EmployeeID:     uuid.NewString(),
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          req.Email,
		EmployeeNumber: req.EmployeeNumber,
		Department:     req.Department,
		HireDate:       hireDate,
		AuditFields:    domain.AuditFields{CreatedAt: now, LastUpdatedAt: now},
	}

	user := domain.User{
		UserID:       uuid.NewString(),
		Email:        req.Email,
		PasswordHash: passwordHash,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Role:         domain.RoleEmployee,
		EmployeeID:   employee.EmployeeID,
		IsActive:     true,
		AuditFields:  domain.AuditFields{CreatedAt: now, LastUpdatedAt: now},
	}

	token, err := s.newAccessToken(user.UserID, now)
	if err != nil {
		logger.Error("Failed to generate access token", slog.String("error", err.Error()))
		return nil, nil, err
	}

	tx, err := s.txManager.Begin(ctx)
	if err != nil {
		logger.Error("Failed to begin onboarding transaction", slog.String("error", err.Error()))
		return nil, nil, err
	}
	defer s.txManager.Rollback(ctx, tx)

	if err := s.employeeRepo.SaveEmployeeInTx(ctx, tx, employee); err != nil {
		logger.Error("Failed to save employee during onboarding", slog.String("error", err.Error()))
		return nil, nil, err
	}
	if err := s.userRepo.SaveUserInTx(ctx, tx, user); err != nil {
		logger.Error("Failed to save user during onboarding", slog.String("error", err.Error()))
		return nil, nil, err
	}
	if _, err := s.accountSvc.CreateAccountInTx(ctx, tx, employee.EmployeeID, now); err != nil {
		logger.Error("Failed to create FSA account during onboarding", slog.String("error", err.Error()))
		return nil, nil, err
	}
	if err := s.tokenRepo.SaveTokenInTx(ctx, tx, *token); err != nil {
		logger.Error("Failed to save access token during onboarding", slog.String("error", err.Error()))
		return nil, nil, err
	}

	if err := s.txManager.Commit(ctx, tx); err != nil {
		logger.Error("Failed to commit onboarding transaction", slog.String("error", err.Error()))
		return nil, nil, err
	}

	logger.Info("Employee onboarded",
		slog.String("user_id", user.UserID),
		slog.String("employee_id", employee.EmployeeID),
	)
	return &user, token, nil
}

// Login verifies credentials, requires an active user, stamps the login
// time, and issues a fresh access token.
func (s *userService) Login(ctx context.Context, req dto.LoginRequest) (*domain.User, *domain.AccessToken, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	user, err := s.userRepo.FindUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil, fmt.Errorf("%w: invalid email or password", apperrors.ErrUnauthorized)
		}
		logger.Error("Failed to look up user for login", slog.String("error", err.Error()))
		return nil, nil, err
	}

	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, nil, fmt.Errorf("%w: invalid email or password", apperrors.ErrUnauthorized)
	}

	if !user.IsActive {
		return nil, nil, fmt.Errorf("%w: account is deactivated, contact your administrator", apperrors.ErrUnauthorized)
	}

	now := time.Now()
	token, err := s.newAccessToken(user.UserID, now)
	if err != nil {
		logger.Error("Failed to generate access token", slog.String("error", err.Error()))
		return nil, nil, err
	}
	if err := s.tokenRepo.SaveToken(ctx, *token); err != nil {
		logger.Error("Failed to save access token", slog.String("error", err.Error()))
		return nil, nil, err
	}

	if err := s.userRepo.UpdateLastLogin(ctx, user.UserID, now); err != nil {
		// Not worth failing the login over; the token is already issued.
		logger.Warn("Failed to update last login time", slog.String("error", err.Error()), slog.String("user_id", user.UserID))
	}
	user.LastLoginAt = &now

	logger.Info("User logged in", slog.String("user_id", user.UserID))
	return user, token, nil
}

// Logout revokes the presented token.
func (s *userService) Logout(ctx context.Context, token string) error {
	logger := middleware.GetLoggerFromCtx(ctx)
	if err := s.tokenRepo.DeleteToken(ctx, token); err != nil {
		logger.Error("Failed to delete access token", slog.String("error", err.Error()))
		return err
	}
	return nil
}

// ValidateToken resolves a raw bearer token to the owning user ID.
func (s *userService) ValidateToken(ctx context.Context, token string) (string, error) {
	stored, err := s.tokenRepo.FindToken(ctx, token)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return "", fmt.Errorf("%w: unknown token", apperrors.ErrUnauthorized)
		}
		return "", err
	}
	if stored.Expired(time.Now()) {
		return "", fmt.Errorf("%w: token expired", apperrors.ErrUnauthorized)
	}
	return stored.UserID, nil
}

func (s *userService) newAccessToken(userID string, now time.Time) (*domain.AccessToken, error) {
	value, err := utils.GenerateSecureRandomString(accessTokenBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return &domain.AccessToken{
		TokenID:   uuid.NewString(),
		UserID:    userID,
		Token:     value,
		ExpiresAt: now.Add(s.tokenTTL),
		CreatedAt: now,
	}, nil
}
