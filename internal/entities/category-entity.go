package entities

import "maintenance-system/pkg/types"

type Category struct {
	ID          uint64 `json:"id" db:"id"`
	Name        string `json:"name" db:"name"`
	Responsible string `json:"responsible" db:"responsible"`
	Company     string `json:"company" db:"company"`

	types.BaseEntity
}
