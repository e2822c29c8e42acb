package dto

import "github.com/spendlens/spendlens_backend/internal/core/domain"

// UserResponse is the profile shape returned to clients.
type UserResponse struct {
	UserID      string `json:"uid"`
	DisplayName string `json:"displayName"`
	Email       string `json:"email"`
}

// ToUserResponse converts a domain user to its response DTO.
func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		UserID:      u.UserID,
		DisplayName: u.DisplayName,
		Email:       u.Email,
	}
}
