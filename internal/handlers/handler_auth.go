package handlers

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/spendlens/spendlens_backend/internal/apperrors"
	"github.com/spendlens/spendlens_backend/internal/core/domain"
	portssvc "github.com/spendlens/spendlens_backend/internal/core/ports/services"
	"github.com/spendlens/spendlens_backend/internal/dto"
	"github.com/spendlens/spendlens_backend/internal/middleware"
	"github.com/spendlens/spendlens_backend/internal/platform/config"
)

// AuthHandler serves registration, sign-in and session refresh.
type AuthHandler struct {
	users      portssvc.UserSvcFacade
	tokens     portssvc.TokenSvcFacade
	googleAuth portssvc.GoogleAuthSvcFacade
	cfg        *config.Config
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(services *portssvc.ServiceContainer, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		users:      services.User,
		tokens:     services.Token,
		googleAuth: services.GoogleAuth,
		cfg:        cfg,
	}
}

// issueSession generates the access and refresh tokens for a user, sets the
// refresh cookie and returns the login response body.
func (h *AuthHandler) issueSession(c *gin.Context, user *domain.User) (*dto.LoginResponse, error) {
	ctx := c.Request.Context()

	access, expiresAt, err := h.tokens.GenerateAccessToken(ctx, user)
	if err != nil {
		return nil, err
	}
	refresh, refreshExpiry, err := h.tokens.GenerateRefreshToken(ctx, user)
	if err != nil {
		return nil, err
	}

	// The cookie carries the owning user ID so refresh does not need a
	// (possibly expired) access token.
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(
		h.cfg.RefreshTokenCookieName,
		user.UserID+":"+refresh,
		int(time.Until(refreshExpiry).Seconds()),
		h.cfg.RefreshTokenCookiePath,
		"",
		h.cfg.IsProduction,
		true,
	)

	return &dto.LoginResponse{
		Token:     access,
		ExpiresAt: expiresAt.Format(time.RFC3339),
		User:      dto.ToUserResponse(user),
	}, nil
}

func (h *AuthHandler) clearRefreshCookie(c *gin.Context) {
	c.SetCookie(h.cfg.RefreshTokenCookieName, "", -1, h.cfg.RefreshTokenCookiePath, "", h.cfg.IsProduction, true)
}

// Register godoc
// @Summary Register a password-based account
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body dto.RegisterRequest true "Account details"
// @Success 201 {object} dto.LoginResponse
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.users.CreateUser(c.Request.Context(), req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	resp, err := h.issueSession(c, user)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Login godoc
// @Summary Sign in with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 401 {object} map[string]string
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.users.AuthenticateUser(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	resp, err := h.issueSession(c, user)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GoogleSignIn godoc
// @Summary Sign in with a Google ID token
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body dto.GoogleSignInRequest true "Google ID token"
// @Success 200 {object} dto.LoginResponse
// @Failure 401 {object} map[string]string
// @Router /auth/google [post]
func (h *AuthHandler) GoogleSignIn(c *gin.Context) {
	var req dto.GoogleSignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	info, err := h.googleAuth.ValidateGoogleIDToken(c.Request.Context(), req.IDToken)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	user, err := h.users.CreateOAuthUser(c.Request.Context(), *info)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	resp, err := h.issueSession(c, user)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Refresh godoc
// @Summary Exchange the refresh cookie for a new session
// @Tags auth
// @Produce json
// @Success 200 {object} dto.LoginResponse
// @Failure 401 {object} map[string]string
// @Router /auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	userID, token, ok := h.refreshCookieParts(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": apperrors.ErrAuthenticationRequired.Error()})
		return
	}

	user, err := h.tokens.ValidateAndParseRefreshToken(c.Request.Context(), userID, token)
	if err != nil {
		h.clearRefreshCookie(c)
		handleServiceError(c, err)
		return
	}

	resp, err := h.issueSession(c, user)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Logout godoc
// @Summary Sign out and invalidate the refresh token
// @Tags auth
// @Produce json
// @Success 204 "No Content"
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	if userID, _, ok := h.refreshCookieParts(c); ok {
		if err := h.users.ClearRefreshToken(c.Request.Context(), userID); err != nil {
			logger := middleware.GetLoggerFromCtx(c.Request.Context())
			logger.Warn("Failed to clear refresh token on logout",
				slog.String("userID", userID), slog.String("error", err.Error()))
		}
	}
	h.clearRefreshCookie(c)
	c.Status(http.StatusNoContent)
}

// refreshCookieParts splits the refresh cookie into user ID and raw token.
func (h *AuthHandler) refreshCookieParts(c *gin.Context) (string, string, bool) {
	value, err := c.Cookie(h.cfg.RefreshTokenCookieName)
	if err != nil || value == "" {
		return "", "", false
	}
	userID, token, found := strings.Cut(value, ":")
	if !found || userID == "" || token == "" {
		return "", "", false
	}
	return userID, token, true
}
