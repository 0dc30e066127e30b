package dto

import (
	"maintenance-system/internal/entities"

	"github.com/aarondl/null/v8"
)

type CreateUserDTO struct {
	Name     string      `json:"name" validate:"required,min=2,max=100"`
	Email    string      `json:"email" validate:"required,email"`
	Password string      `json:"password" validate:"required,min=6,max=72"`
	Role     string      `json:"role" validate:"omitempty,oneof=ADMIN MANAGER TECHNICIAN USER"`
	Company  string      `json:"company" validate:"omitempty,max=200"`
	TeamID   null.Uint64 `json:"team_id"`
}

type UpdateUserDTO struct {
	Name    string      `json:"name" validate:"omitempty,min=2,max=100"`
	Email   string      `json:"email" validate:"omitempty,email"`
	Role    string      `json:"role" validate:"omitempty,oneof=ADMIN MANAGER TECHNICIAN USER"`
	Company string      `json:"company" validate:"omitempty,max=200"`
	TeamID  null.Uint64 `json:"team_id"`
}

type UserDTO struct {
	ID      uint64        `json:"id"`
	Name    string        `json:"name"`
	Email   string        `json:"email"`
	Role    entities.Role `json:"role"`
	Company string        `json:"company"`
	TeamID  *uint64       `json:"team_id"`
	Team    *ShortTeamDTO `json:"team,omitempty"`

	CreatedAt string `json:"created_at,omitempty"`
	UpdatedAt string `json:"updated_at,omitempty"`
}

type TechnicianDTO struct {
	ID     uint64        `json:"id"`
	Name   string        `json:"name"`
	Email  string        `json:"email"`
	TeamID *uint64       `json:"team_id"`
	Team   *ShortTeamDTO `json:"team,omitempty"`
}
