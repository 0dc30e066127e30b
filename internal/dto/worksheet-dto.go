package dto

type CreateWorksheetDTO struct {
	Content   string `json:"content" validate:"required,min=1,max=5000"`
	RequestID uint64 `json:"request_id" validate:"required"`
}

type UpdateWorksheetDTO struct {
	Content string `json:"content" validate:"required,min=1,max=5000"`
}

type WorksheetDTO struct {
	ID        uint64        `json:"id"`
	Content   string        `json:"content"`
	RequestID uint64        `json:"request_id"`
	Author    *ShortUserDTO `json:"author,omitempty"`
	CreatedAt string        `json:"created_at,omitempty"`
}
