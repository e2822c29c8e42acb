package services

import (
	"context"
	"time"

	"github.com/spendlens/spendlens_backend/internal/core/domain"
)

// TokenSvcFacade issues and validates session tokens.
type TokenSvcFacade interface {
	// GenerateAccessToken creates a signed JWT access token for the user.
	GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error)

	// GenerateRefreshToken creates an opaque refresh token and its expiry.
	GenerateRefreshToken(ctx context.Context, user *domain.User) (string, time.Time, error)

	// ValidateAndParseRefreshToken checks a presented refresh token against the
	// stored hash and returns the owning user.
	ValidateAndParseRefreshToken(ctx context.Context, userID string, refreshToken string) (*domain.User, error)
}

// GoogleAuthSvcFacade validates Google sign-in material.
type GoogleAuthSvcFacade interface {
	// ValidateGoogleIDToken verifies an ID token and extracts the user info.
	ValidateGoogleIDToken(ctx context.Context, idToken string) (*domain.GoogleUserInfo, error)
}
