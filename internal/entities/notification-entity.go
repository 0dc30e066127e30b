package entities

import "maintenance-system/pkg/types"

type NotificationType string

const (
	NotificationRequest   NotificationType = "REQUEST"
	NotificationCritical  NotificationType = "CRITICAL"
	NotificationCompleted NotificationType = "COMPLETED"
	NotificationSchedule  NotificationType = "SCHEDULE"
)

type Notification struct {
	ID        uint64           `json:"id" db:"id"`
	Type      NotificationType `json:"type" db:"type"`
	Title     string           `json:"title" db:"title"`
	Message   string           `json:"message" db:"message"`
	UserID    uint64           `json:"user_id" db:"user_id"`
	RequestID *uint64          `json:"request_id" db:"request_id"`
	Read      bool             `json:"read" db:"read"`

	types.BaseEntity
}
