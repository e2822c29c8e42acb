package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/spendlens/spendlens_backend/internal/apperrors"
	"github.com/spendlens/spendlens_backend/internal/core/domain"
	"github.com/spendlens/spendlens_backend/internal/dto"
	"github.com/spendlens/spendlens_backend/internal/utils"
)

// MockUserRepository is a mock for the user repository facade.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash string, expiry time.Time) error {
	args := m.Called(ctx, userID, refreshTokenHash, expiry)
	return args.Error(0)
}

func (m *MockUserRepository) ClearRefreshToken(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func TestUserService_CreateUser(t *testing.T) {
	repo := new(MockUserRepository)
	svc := NewUserService(repo)

	var saved domain.User
	repo.On("SaveUser", mock.Anything, mock.AnythingOfType("domain.User")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(domain.User) }).
		Return(nil).Once()

	user, err := svc.CreateUser(context.Background(), dto.RegisterRequest{
		DisplayName: "Alex",
		Email:       "  Alex@Example.COM ",
		Password:    "hunter22!",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, user.UserID)
	assert.Equal(t, "alex@example.com", user.Email, "email is normalized")
	assert.Equal(t, "password", saved.AuthProvider)
	assert.True(t, utils.CheckPasswordHash("hunter22!", saved.PasswordHash))
	assert.NotEqual(t, "hunter22!", saved.PasswordHash)
	repo.AssertExpectations(t)
}

func TestUserService_CreateUserDuplicateEmail(t *testing.T) {
	repo := new(MockUserRepository)
	svc := NewUserService(repo)

	repo.On("SaveUser", mock.Anything, mock.AnythingOfType("domain.User")).
		Return(apperrors.ErrDuplicate).Once()

	_, err := svc.CreateUser(context.Background(), dto.RegisterRequest{
		DisplayName: "Alex",
		Email:       "alex@example.com",
		Password:    "hunter22!",
	})
	require.ErrorIs(t, err, apperrors.ErrDuplicate)
}

func TestUserService_AuthenticateUser(t *testing.T) {
	hash, err := utils.HashPassword("correct-horse")
	require.NoError(t, err)

	stored := &domain.User{
		UserID:       "user-1",
		Email:        "alex@example.com",
		PasswordHash: hash,
		AuthProvider: "password",
	}

	t.Run("valid credentials", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := NewUserService(repo)
		repo.On("FindUserByEmail", mock.Anything, "alex@example.com").Return(stored, nil).Once()

		user, err := svc.AuthenticateUser(context.Background(), "alex@example.com", "correct-horse")
		require.NoError(t, err)
		assert.Equal(t, "user-1", user.UserID)
	})

	t.Run("wrong password", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := NewUserService(repo)
		repo.On("FindUserByEmail", mock.Anything, "alex@example.com").Return(stored, nil).Once()

		_, err := svc.AuthenticateUser(context.Background(), "alex@example.com", "wrong")
		require.ErrorIs(t, err, apperrors.ErrUnauthorized)
	})

	t.Run("unknown email reports the same error", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := NewUserService(repo)
		repo.On("FindUserByEmail", mock.Anything, "ghost@example.com").Return(nil, apperrors.ErrNotFound).Once()

		_, err := svc.AuthenticateUser(context.Background(), "ghost@example.com", "whatever")
		require.ErrorIs(t, err, apperrors.ErrUnauthorized)
		assert.NotErrorIs(t, err, apperrors.ErrNotFound)
	})

	t.Run("google account has no password", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := NewUserService(repo)
		googleUser := &domain.User{UserID: "user-2", Email: "g@example.com", AuthProvider: "google"}
		repo.On("FindUserByEmail", mock.Anything, "g@example.com").Return(googleUser, nil).Once()

		_, err := svc.AuthenticateUser(context.Background(), "g@example.com", "anything")
		require.ErrorIs(t, err, apperrors.ErrUnauthorized)
	})
}

func TestUserService_CreateOAuthUser(t *testing.T) {
	t.Run("existing account is returned", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := NewUserService(repo)
		existing := &domain.User{UserID: "user-1", Email: "alex@example.com", AuthProvider: "google"}
		repo.On("FindUserByEmail", mock.Anything, "alex@example.com").Return(existing, nil).Once()

		user, err := svc.CreateOAuthUser(context.Background(), domain.GoogleUserInfo{
			ID: "google-sub", Email: "alex@example.com", Name: "Alex",
		})
		require.NoError(t, err)
		assert.Equal(t, "user-1", user.UserID)
		repo.AssertNotCalled(t, "SaveUser", mock.Anything, mock.Anything)
	})

	t.Run("new account is created", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := NewUserService(repo)
		repo.On("FindUserByEmail", mock.Anything, "new@example.com").Return(nil, apperrors.ErrNotFound).Once()
		repo.On("SaveUser", mock.Anything, mock.AnythingOfType("domain.User")).Return(nil).Once()

		user, err := svc.CreateOAuthUser(context.Background(), domain.GoogleUserInfo{
			ID: "google-sub", Email: "new@example.com", Name: "New User",
		})
		require.NoError(t, err)
		assert.Equal(t, "google", user.AuthProvider)
		assert.NotEmpty(t, user.UserID)
		repo.AssertExpectations(t)
	})
}
