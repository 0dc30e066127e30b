package entities

import (
	"time"

	"maintenance-system/pkg/types"
)

type RequestStatus string

const (
	RequestNew        RequestStatus = "NEW"
	RequestInProgress RequestStatus = "IN_PROGRESS"
	RequestRepaired   RequestStatus = "REPAIRED"
	RequestScrap      RequestStatus = "SCRAP"
)

func (s RequestStatus) Valid() bool {
	switch s {
	case RequestNew, RequestInProgress, RequestRepaired, RequestScrap:
		return true
	}
	return false
}

// statusTransitions - таблица допустимых переходов статуса заявки.
// SCRAP терминален, из него переходов нет.
var statusTransitions = map[RequestStatus][]RequestStatus{
	RequestNew:        {RequestInProgress, RequestScrap},
	RequestInProgress: {RequestRepaired, RequestScrap},
	RequestRepaired:   {RequestScrap},
	RequestScrap:      {},
}

// CanTransition проверяет переход from -> to по таблице.
func CanTransition(from, to RequestStatus) bool {
	for _, allowed := range statusTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// KanbanStatuses - порядок колонок канбан-доски.
var KanbanStatuses = []RequestStatus{RequestNew, RequestInProgress, RequestRepaired, RequestScrap}

type MaintenanceType string

const (
	MaintenanceCorrective MaintenanceType = "CORRECTIVE"
	MaintenancePreventive MaintenanceType = "PREVENTIVE"
)

func (t MaintenanceType) Valid() bool {
	return t == MaintenanceCorrective || t == MaintenancePreventive
}

const (
	DefaultPriority = 3
	MinPriority     = 1
	MaxPriority     = 5

	// CriticalPriority - порог, с которого открытая заявка делает
	// оборудование критичным на сводке.
	CriticalPriority = 4
)

type MaintenanceRequest struct {
	ID              uint64          `json:"id" db:"id"`
	Subject         string          `json:"subject" db:"subject"`
	MaintenanceType MaintenanceType `json:"maintenance_type" db:"maintenance_type"`
	Status          RequestStatus   `json:"status" db:"status"`
	Priority        int             `json:"priority" db:"priority"`

	CreatedByID  uint64  `json:"created_by_id" db:"created_by_id"`
	EquipmentID  *uint64 `json:"equipment_id" db:"equipment_id"`
	WorkCenterID *uint64 `json:"work_center_id" db:"work_center_id"`
	CategoryID   *uint64 `json:"category_id" db:"category_id"`
	TeamID       *uint64 `json:"team_id" db:"team_id"`
	TechnicianID *uint64 `json:"technician_id" db:"technician_id"`

	RequestDate   time.Time  `json:"request_date" db:"request_date"`
	ScheduledDate *time.Time `json:"scheduled_date" db:"scheduled_date"`

	Company      string `json:"company" db:"company"`
	Notes        string `json:"notes" db:"notes"`
	Instructions string `json:"instructions" db:"instructions"`

	types.BaseEntity
}
