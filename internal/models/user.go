package models

import "time"

// User is the database representation of a user profile record.
type User struct {
	UserID                 string     `db:"user_id"`
	DisplayName            string     `db:"display_name"`
	Email                  string     `db:"email"`
	PasswordHash           string     `db:"password_hash"`
	AuthProvider           string     `db:"auth_provider"`
	RefreshTokenHash       *string    `db:"refresh_token_hash"`
	RefreshTokenExpiryTime *time.Time `db:"refresh_token_expiry_time"`
	CreatedAt              time.Time  `db:"created_at"`
	LastUpdatedAt          time.Time  `db:"last_updated_at"`
	DeletedAt              *time.Time `db:"deleted_at"`
}
