package dto

import "maintenance-system/internal/entities"

// AuthUser - личность аутентифицированного пользователя, кладётся в контекст
// запроса middleware-ом и используется фильтром видимости.
type AuthUser struct {
	ID      uint64        `json:"id"`
	Name    string        `json:"name"`
	Email   string        `json:"email"`
	Role    entities.Role `json:"role"`
	Company string        `json:"company"`
	TeamID  *uint64       `json:"team_id"`
}

type RegisterDTO struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=72"`
	Company  string `json:"company" validate:"omitempty,max=200"`
	Role     string `json:"role" validate:"omitempty"`
}

type LoginDTO struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type ForgotPasswordDTO struct {
	Email string `json:"email" validate:"required,email"`
}

// UserPublicDTO - публичная проекция пользователя, без хеша пароля.
type UserPublicDTO struct {
	ID      uint64        `json:"id"`
	Name    string        `json:"name"`
	Email   string        `json:"email"`
	Role    entities.Role `json:"role"`
	Company string        `json:"company"`
	TeamID  *uint64       `json:"team_id,omitempty"`
}

func NewUserPublicDTO(u *entities.User) *UserPublicDTO {
	return &UserPublicDTO{
		ID:      u.ID,
		Name:    u.Name,
		Email:   u.Email,
		Role:    u.Role,
		Company: u.Company,
		TeamID:  u.TeamID,
	}
}
