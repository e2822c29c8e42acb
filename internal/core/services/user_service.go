package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/spendlens/spendlens_backend/internal/apperrors"
	"github.com/spendlens/spendlens_backend/internal/core/domain"
	portsrepo "github.com/spendlens/spendlens_backend/internal/core/ports/repositories"
	portssvc "github.com/spendlens/spendlens_backend/internal/core/ports/services"
	"github.com/spendlens/spendlens_backend/internal/dto"
	"github.com/spendlens/spendlens_backend/internal/utils"
)

// UserService implements user account management and credential checks.
type UserService struct {
	BaseService
	userRepo portsrepo.UserRepositoryFacade
}

var _ portssvc.UserSvcFacade = (*UserService)(nil)

// NewUserService creates a new user service.
func NewUserService(userRepo portsrepo.UserRepositoryFacade) *UserService {
	return &UserService{userRepo: userRepo}
}

// GetUserByID retrieves a user by ID.
func (s *UserService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return s.userRepo.FindUserByID(ctx, userID)
}

// GetUserByEmail retrieves a user by email.
func (s *UserService) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.userRepo.FindUserByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
}

// CreateUser registers a password-based account.
func (s *UserService) CreateUser(ctx context.Context, req dto.RegisterRequest) (*domain.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		s.LogError(ctx, "Failed to hash password", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := domain.User{
		UserID:       uuid.NewString(),
		DisplayName:  req.DisplayName,
		Email:        email,
		PasswordHash: hash,
		AuthProvider: "password",
	}
	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("email %s is already registered: %w", email, apperrors.ErrDuplicate)
		}
		return nil, err
	}

	s.LogInfo(ctx, "User registered", slog.String("userID", user.UserID))
	return &user, nil
}

// CreateOAuthUser finds the account matching a verified Google identity, or
// creates one when none exists.
func (s *UserService) CreateOAuthUser(ctx context.Context, info domain.GoogleUserInfo) (*domain.User, error) {
	email := strings.ToLower(strings.TrimSpace(info.Email))

	existing, err := s.userRepo.FindUserByEmail(ctx, email)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	user := domain.User{
		UserID:       uuid.NewString(),
		DisplayName:  info.Name,
		Email:        email,
		AuthProvider: "google",
	}
	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "OAuth user created", slog.String("userID", user.UserID))
	return &user, nil
}

// UpdateRefreshToken stores the hashed refresh token details for a user.
func (s *UserService) UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash string, expiry time.Time) error {
	return s.userRepo.UpdateRefreshToken(ctx, userID, refreshTokenHash, expiry)
}

// ClearRefreshToken clears the stored refresh token for a user.
func (s *UserService) ClearRefreshToken(ctx context.Context, userID string) error {
	return s.userRepo.ClearRefreshToken(ctx, userID)
}

// AuthenticateUser verifies email/password credentials. Lookup failures and
// wrong passwords return the same error so callers cannot probe for accounts.
func (s *UserService) AuthenticateUser(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("invalid credentials: %w", apperrors.ErrUnauthorized)
		}
		return nil, err
	}
	if user.AuthProvider != "password" || user.PasswordHash == "" {
		return nil, fmt.Errorf("invalid credentials: %w", apperrors.ErrUnauthorized)
	}
	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, fmt.Errorf("invalid credentials: %w", apperrors.ErrUnauthorized)
	}
	return user, nil
}
