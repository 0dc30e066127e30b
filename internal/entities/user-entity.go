package entities

import (
	"maintenance-system/pkg/types"
)

type User struct {
	ID      uint64 `json:"id" db:"id"`
	Name    string `json:"name" db:"name"`
	Email   string `json:"email" db:"email"`
	Role    Role   `json:"role" db:"role"`
	Company string `json:"company" db:"company"`

	Password string `json:"-" db:"password"`

	TeamID *uint64 `json:"team_id" db:"team_id"`

	types.BaseEntity
}
