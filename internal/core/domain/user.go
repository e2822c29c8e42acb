package domain

import "time"

// User represents a profile record for an authenticated user.
type User struct {
	UserID       string `json:"userID"` // Primary Key (UUID); the session uid
	DisplayName  string `json:"displayName"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	AuthProvider string `json:"authProvider"` // "password" or "google"
	AuditFields
	RefreshTokenHash       string     `json:"-"`
	RefreshTokenExpiryTime *time.Time `json:"-"`
	DeletedAt              *time.Time `json:"deletedAt,omitempty"` // Used for soft delete
}

// GoogleUserInfo holds the verified fields taken from a Google ID token payload.
type GoogleUserInfo struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}
