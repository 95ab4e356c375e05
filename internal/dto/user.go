package dto

import "github.com/crewtide/api/internal/models"

// UserDTO represents a user in API responses
type UserDTO struct {
	ID          uint64 `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	AvatarColor string `json:"avatar_color"`
	Timezone    string `json:"timezone,omitempty"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:          user.ID,
		Name:        user.Name,
		Email:       user.Email,
		AvatarColor: user.AvatarColor,
		Timezone:    user.Timezone,
	}
}
