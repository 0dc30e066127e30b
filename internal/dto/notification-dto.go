package dto

type CreateNotificationDTO struct {
	Type      string  `json:"type" validate:"required,oneof=REQUEST CRITICAL COMPLETED SCHEDULE"`
	Title     string  `json:"title" validate:"required,max=200"`
	Message   string  `json:"message" validate:"required,max=1000"`
	UserID    uint64  `json:"user_id" validate:"required"`
	RequestID *uint64 `json:"request_id"`
}

type NotificationDTO struct {
	ID        uint64  `json:"id"`
	Type      string  `json:"type"`
	Title     string  `json:"title"`
	Message   string  `json:"message"`
	RequestID *uint64 `json:"request_id"`
	Read      bool    `json:"read"`
	CreatedAt string  `json:"created_at,omitempty"`
}
