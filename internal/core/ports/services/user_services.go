package services

import (
	"context"
	"time"

	"github.com/spendlens/spendlens_backend/internal/core/domain"
	"github.com/spendlens/spendlens_backend/internal/dto"
)

// UserReaderSvc defines read operations for user profiles.
type UserReaderSvc interface {
	// GetUserByID retrieves a user by ID.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)

	// GetUserByEmail retrieves a user by email.
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
}

// UserWriterSvc defines write operations for user profiles.
type UserWriterSvc interface {
	// CreateUser creates a password-based account.
	CreateUser(ctx context.Context, req dto.RegisterRequest) (*domain.User, error)

	// CreateOAuthUser creates (or returns) an account backed by an external
	// identity provider.
	CreateOAuthUser(ctx context.Context, info domain.GoogleUserInfo) (*domain.User, error)

	// UpdateRefreshToken stores the hashed refresh token details for a user.
	UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash string, expiry time.Time) error

	// ClearRefreshToken clears the refresh token for a user.
	ClearRefreshToken(ctx context.Context, userID string) error
}

// UserAuthSvc defines credential verification.
type UserAuthSvc interface {
	// AuthenticateUser verifies email/password credentials.
	AuthenticateUser(ctx context.Context, email, password string) (*domain.User, error)
}

// UserSvcFacade combines all user-related service interfaces.
type UserSvcFacade interface {
	UserReaderSvc
	UserWriterSvc
	UserAuthSvc
}
