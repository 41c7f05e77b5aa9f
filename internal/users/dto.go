package users

import (
	"time"

	"github.com/google/uuid"

	"github.com/tuananhdo/shopora-backend/pkg/db/models"
)

// UserDTO is the public representation of an account.
type UserDTO struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Username  string    `json:"username"`
	Roles     string    `json:"roles"`
	CreatedAt time.Time `json:"created_at"`
}

// ToDTO converts a user model into its API shape, omitting credentials.
func ToDTO(user *models.User) *UserDTO {
	if user == nil {
		return nil
	}
	return &UserDTO{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Phone:     user.Phone,
		Username:  user.Username,
		Roles:     user.Roles,
		CreatedAt: user.CreatedAt,
	}
}
