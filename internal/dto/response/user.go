package response

import (
	"time"

	"servicehub/internal/data/entity"
)

type UserResponse struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	Email        string            `json:"email"`
	Phone        *string           `json:"phone,omitempty"`
	Role         entity.UserRole   `json:"role"`
	Status       entity.UserStatus `json:"status"`
	BusinessName *string           `json:"business_name,omitempty"`
	Address      *string           `json:"address,omitempty"`
	CreatedAt    time.Time         `json:"created_at"`
}

func UserToResponse(u entity.User) UserResponse {
	return UserResponse{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		Phone:        u.Phone,
		Role:         u.Role,
		Status:       u.Status,
		BusinessName: u.BusinessName,
		Address:      u.Address,
		CreatedAt:    u.CreatedAt,
	}
}
