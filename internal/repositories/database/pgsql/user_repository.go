package pgsql

import (
	"context"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spendlens/spendlens_backend/internal/core/domain"
	portsrepo "github.com/spendlens/spendlens_backend/internal/core/ports/repositories"
	"github.com/spendlens/spendlens_backend/internal/middleware"
	"github.com/spendlens/spendlens_backend/internal/models"
)

// PgxUserRepository implements the user repository facade against
// PostgreSQL using pgx.
type PgxUserRepository struct {
	pool *pgxpool.Pool
}

var _ portsrepo.UserRepositoryFacade = (*PgxUserRepository)(nil)

// NewPgxUserRepository creates a new user repository.
func NewPgxUserRepository(pool *pgxpool.Pool) *PgxUserRepository {
	return &PgxUserRepository{pool: pool}
}

func toUserDomain(m models.User) domain.User {
	u := domain.User{
		UserID:       m.UserID,
		DisplayName:  m.DisplayName,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		AuthProvider: m.AuthProvider,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			LastUpdatedAt: m.LastUpdatedAt,
		},
		RefreshTokenExpiryTime: m.RefreshTokenExpiryTime,
		DeletedAt:              m.DeletedAt,
	}
	if m.RefreshTokenHash != nil {
		u.RefreshTokenHash = *m.RefreshTokenHash
	}
	return u
}

const userColumns = `user_id, display_name, email, password_hash, auth_provider, refresh_token_hash, refresh_token_expiry_time, created_at, last_updated_at, deleted_at`

func scanUser(row pgx.Row) (*domain.User, error) {
	var m models.User
	err := row.Scan(
		&m.UserID, &m.DisplayName, &m.Email, &m.PasswordHash, &m.AuthProvider,
		&m.RefreshTokenHash, &m.RefreshTokenExpiryTime,
		&m.CreatedAt, &m.LastUpdatedAt, &m.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	u := toUserDomain(m)
	return &u, nil
}

// FindUserByID retrieves a user by ID, excluding soft-deleted rows.
func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE user_id = $1 AND deleted_at IS NULL`
	u, err := scanUser(r.pool.QueryRow(ctx, query, userID))
	if err != nil {
		return nil, translateError(err, "failed to find user by id")
	}
	return u, nil
}

// FindUserByEmail retrieves a user by email, excluding soft-deleted rows.
func (r *PgxUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1 AND deleted_at IS NULL`
	u, err := scanUser(r.pool.QueryRow(ctx, query, email))
	if err != nil {
		return nil, translateError(err, "failed to find user by email")
	}
	return u, nil
}

// SaveUser persists a new user row.
func (r *PgxUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now()
	query := `
		INSERT INTO users (user_id, display_name, email, password_hash, auth_provider, created_at, last_updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.pool.Exec(ctx, query,
		user.UserID, user.DisplayName, user.Email, user.PasswordHash, user.AuthProvider, now, now,
	)
	if err != nil {
		logger.Error("Failed to insert user", slog.String("email", user.Email), slog.String("error", err.Error()))
		return translateWriteError(err, "failed to save user")
	}
	return nil
}

// UpdateUser updates mutable profile fields for an existing user.
func (r *PgxUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	query := `
		UPDATE users
		SET display_name = $2, email = $3, last_updated_at = $4
		WHERE user_id = $1 AND deleted_at IS NULL`

	tag, err := r.pool.Exec(ctx, query, user.UserID, user.DisplayName, user.Email, time.Now())
	if err != nil {
		return translateError(err, "failed to update user")
	}
	if tag.RowsAffected() == 0 {
		return translateError(pgx.ErrNoRows, "failed to update user")
	}
	return nil
}

// UpdateRefreshToken stores the hashed refresh token and its expiry.
func (r *PgxUserRepository) UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash string, expiry time.Time) error {
	query := `
		UPDATE users
		SET refresh_token_hash = $2, refresh_token_expiry_time = $3, last_updated_at = $4
		WHERE user_id = $1 AND deleted_at IS NULL`

	tag, err := r.pool.Exec(ctx, query, userID, refreshTokenHash, expiry, time.Now())
	if err != nil {
		return translateError(err, "failed to update refresh token")
	}
	if tag.RowsAffected() == 0 {
		return translateError(pgx.ErrNoRows, "failed to update refresh token")
	}
	return nil
}

// ClearRefreshToken removes any stored refresh token for a user.
func (r *PgxUserRepository) ClearRefreshToken(ctx context.Context, userID string) error {
	query := `
		UPDATE users
		SET refresh_token_hash = NULL, refresh_token_expiry_time = NULL, last_updated_at = $2
		WHERE user_id = $1 AND deleted_at IS NULL`

	_, err := r.pool.Exec(ctx, query, userID, time.Now())
	if err != nil {
		return translateError(err, "failed to clear refresh token")
	}
	return nil
}
