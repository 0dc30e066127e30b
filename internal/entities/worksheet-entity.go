package entities

import "maintenance-system/pkg/types"

// Worksheet - текстовая запись журнала работ по заявке.
type Worksheet struct {
	ID        uint64 `json:"id" db:"id"`
	Content   string `json:"content" db:"content"`
	RequestID uint64 `json:"request_id" db:"request_id"`
	AuthorID  uint64 `json:"author_id" db:"author_id"`

	types.BaseEntity
}
