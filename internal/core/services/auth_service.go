package services

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/api/idtoken"

	"github.com/spendlens/spendlens_backend/internal/apperrors"
	"github.com/spendlens/spendlens_backend/internal/core/domain"
	portssvc "github.com/spendlens/spendlens_backend/internal/core/ports/services"
	"github.com/spendlens/spendlens_backend/internal/platform/config"
	"github.com/spendlens/spendlens_backend/internal/utils"
)

// refreshTokenByteLength sizes the opaque refresh token before hex encoding.
const refreshTokenByteLength = 32

// TokenService issues JWT access tokens and opaque refresh tokens.
type TokenService struct {
	BaseService
	cfg      *config.Config
	users    portssvc.UserSvcFacade
}

var _ portssvc.TokenSvcFacade = (*TokenService)(nil)

// NewTokenService creates a new token service.
func NewTokenService(cfg *config.Config, userSvc portssvc.UserSvcFacade) *TokenService {
	return &TokenService{cfg: cfg, users: userSvc}
}

// GenerateAccessToken creates a signed JWT access token for the user.
func (s *TokenService) GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	expiresAt := time.Now().Add(s.cfg.JWTExpiryDuration)
	token, err := utils.GenerateJWT(user.UserID, s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign access token: %w", err)
	}
	return token, expiresAt, nil
}

// GenerateRefreshToken creates an opaque refresh token, stores its hash for
// the user and returns the raw token with its expiry.
func (s *TokenService) GenerateRefreshToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	raw, err := utils.GenerateSecureRandomString(refreshTokenByteLength)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	expiry := time.Now().Add(s.cfg.RefreshTokenExpiryDuration)
	if err := s.users.UpdateRefreshToken(ctx, user.UserID, utils.HashRefreshToken(raw), expiry); err != nil {
		return "", time.Time{}, fmt.Errorf("failed to store refresh token: %w", err)
	}
	return raw, expiry, nil
}

// ValidateAndParseRefreshToken checks a presented refresh token against the
// stored hash and returns the owning user.
func (s *TokenService) ValidateAndParseRefreshToken(ctx context.Context, userID string, refreshToken string) (*domain.User, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.RefreshTokenHash == "" || user.RefreshTokenExpiryTime == nil {
		return nil, fmt.Errorf("no refresh token on record: %w", apperrors.ErrUnauthorized)
	}
	if time.Now().After(*user.RefreshTokenExpiryTime) {
		return nil, apperrors.ErrRefreshTokenExpired
	}
	if !utils.CompareRefreshTokenHash(refreshToken, user.RefreshTokenHash) {
		return nil, fmt.Errorf("refresh token mismatch: %w", apperrors.ErrUnauthorized)
	}
	return user, nil
}

// GoogleAuthService validates Google sign-in ID tokens.
type GoogleAuthService struct {
	BaseService
	clientID string
}

var _ portssvc.GoogleAuthSvcFacade = (*GoogleAuthService)(nil)

// NewGoogleAuthService creates a new Google auth service.
func NewGoogleAuthService(cfg *config.Config) *GoogleAuthService {
	return &GoogleAuthService{clientID: cfg.GoogleClientID}
}

// ValidateGoogleIDToken verifies the ID token signature and audience and
// extracts the identity fields.
func (s *GoogleAuthService) ValidateGoogleIDToken(ctx context.Context, idToken string) (*domain.GoogleUserInfo, error) {
	if s.clientID == "" {
		return nil, fmt.Errorf("google sign-in is not configured: %w", apperrors.ErrUnauthorized)
	}

	payload, err := idtoken.Validate(ctx, idToken, s.clientID)
	if err != nil {
		return nil, fmt.Errorf("invalid google ID token: %w", apperrors.ErrUnauthorized)
	}

	info := &domain.GoogleUserInfo{ID: payload.Subject}
	if email, ok := payload.Claims["email"].(string); ok {
		info.Email = email
	}
	if name, ok := payload.Claims["name"].(string); ok {
		info.Name = name
	}
	if info.Email == "" {
		return nil, fmt.Errorf("google ID token missing email claim: %w", apperrors.ErrUnauthorized)
	}
	return info, nil
}
