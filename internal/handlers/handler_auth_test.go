package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spendlens/spendlens_backend/internal/apperrors"
	"github.com/spendlens/spendlens_backend/internal/core/domain"
	"github.com/spendlens/spendlens_backend/internal/dto"
	"github.com/spendlens/spendlens_backend/internal/platform/config"
)

type fakeUserSvc struct {
	user    *domain.User
	authErr error
	cleared []string
}

func (f *fakeUserSvc) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	if f.user == nil || f.user.UserID != userID {
		return nil, apperrors.ErrNotFound
	}
	return f.user, nil
}

func (f *fakeUserSvc) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return f.user, nil
}

func (f *fakeUserSvc) CreateUser(ctx context.Context, req dto.RegisterRequest) (*domain.User, error) {
	return f.user, nil
}

func (f *fakeUserSvc) CreateOAuthUser(ctx context.Context, info domain.GoogleUserInfo) (*domain.User, error) {
	return f.user, nil
}

func (f *fakeUserSvc) UpdateRefreshToken(ctx context.Context, userID string, hash string, expiry time.Time) error {
	return nil
}

func (f *fakeUserSvc) ClearRefreshToken(ctx context.Context, userID string) error {
	f.cleared = append(f.cleared, userID)
	return nil
}

func (f *fakeUserSvc) AuthenticateUser(ctx context.Context, email, password string) (*domain.User, error) {
	if f.authErr != nil {
		return nil, f.authErr
	}
	return f.user, nil
}

type fakeTokenSvc struct {
	refreshErr error
	user       *domain.User
}

func (f *fakeTokenSvc) GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	return "access-token", time.Now().Add(time.Hour), nil
}

func (f *fakeTokenSvc) GenerateRefreshToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	return "refresh-token", time.Now().Add(24 * time.Hour), nil
}

func (f *fakeTokenSvc) ValidateAndParseRefreshToken(ctx context.Context, userID string, refreshToken string) (*domain.User, error) {
	if f.refreshErr != nil {
		return nil, f.refreshErr
	}
	return f.user, nil
}

func newAuthTestRouter(users *fakeUserSvc, tokens *fakeTokenSvc) (*gin.Engine, *config.Config) {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{
		RefreshTokenCookieName: "rtid",
		RefreshTokenCookiePath: "/api/v1/auth",
	}
	h := &AuthHandler{users: users, tokens: tokens, cfg: cfg}

	router := gin.New()
	router.POST("/api/v1/auth/login", h.Login)
	router.POST("/api/v1/auth/refresh", h.Refresh)
	router.POST("/api/v1/auth/logout", h.Logout)
	return router, cfg
}

func TestAuthHandler_LoginSetsRefreshCookie(t *testing.T) {
	user := &domain.User{UserID: "user-1", DisplayName: "Alex", Email: "alex@example.com"}
	router, cfg := newAuthTestRouter(&fakeUserSvc{user: user}, &fakeTokenSvc{user: user})

	body := `{"email":"alex@example.com","password":"correct-horse"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "access-token", resp.Token)
	assert.Equal(t, "user-1", resp.User.UserID)

	var refreshCookie *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == cfg.RefreshTokenCookieName {
			refreshCookie = c
		}
	}
	require.NotNil(t, refreshCookie, "login must set the refresh cookie")
	assert.Equal(t, "user-1:refresh-token", refreshCookie.Value)
	assert.True(t, refreshCookie.HttpOnly)
	assert.Equal(t, cfg.RefreshTokenCookiePath, refreshCookie.Path)
}

func TestAuthHandler_LoginInvalidCredentials(t *testing.T) {
	router, _ := newAuthTestRouter(&fakeUserSvc{authErr: fmt.Errorf("invalid credentials: %w", apperrors.ErrUnauthorized)}, &fakeTokenSvc{})

	body := `{"email":"alex@example.com","password":"wrong"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_RefreshRotatesSession(t *testing.T) {
	user := &domain.User{UserID: "user-1", Email: "alex@example.com"}
	router, cfg := newAuthTestRouter(&fakeUserSvc{user: user}, &fakeTokenSvc{user: user})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/refresh", nil)
	req.AddCookie(&http.Cookie{Name: cfg.RefreshTokenCookieName, Value: "user-1:old-refresh-token"})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp dto.LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "access-token", resp.Token)
}

func TestAuthHandler_RefreshWithoutCookie(t *testing.T) {
	router, _ := newAuthTestRouter(&fakeUserSvc{}, &fakeTokenSvc{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/refresh", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_RefreshExpiredToken(t *testing.T) {
	router, cfg := newAuthTestRouter(&fakeUserSvc{}, &fakeTokenSvc{refreshErr: apperrors.ErrRefreshTokenExpired})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/refresh", nil)
	req.AddCookie(&http.Cookie{Name: cfg.RefreshTokenCookieName, Value: "user-1:stale-token"})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_LogoutClearsToken(t *testing.T) {
	users := &fakeUserSvc{user: &domain.User{UserID: "user-1"}}
	router, cfg := newAuthTestRouter(users, &fakeTokenSvc{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	req.AddCookie(&http.Cookie{Name: cfg.RefreshTokenCookieName, Value: "user-1:refresh-token"})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, []string{"user-1"}, users.cleared)
}
