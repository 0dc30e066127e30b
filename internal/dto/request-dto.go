package dto

import "github.com/aarondl/null/v8"

type CreateRequestDTO struct {
	Subject         string      `json:"subject" validate:"required,min=3,max=200"`
	EquipmentID     null.Uint64 `json:"equipment_id"`
	WorkCenterID    null.Uint64 `json:"work_center_id"`
	MaintenanceType string      `json:"maintenance_type" validate:"omitempty,oneof=CORRECTIVE PREVENTIVE"`
	ScheduledDate   null.Time   `json:"scheduled_date"`
	Priority        int         `json:"priority" validate:"omitempty,min=1,max=5"`
	Company         string      `json:"company" validate:"omitempty,max=200"`
	Notes           string      `json:"notes" validate:"omitempty,max=2000"`
	Instructions    string      `json:"instructions" validate:"omitempty,max=2000"`
}

type UpdateRequestDTO struct {
	Subject         string      `json:"subject" validate:"omitempty,min=3,max=200"`
	MaintenanceType string      `json:"maintenance_type" validate:"omitempty,oneof=CORRECTIVE PREVENTIVE"`
	Priority        null.Int    `json:"priority"`
	EquipmentID     null.Uint64 `json:"equipment_id"`
	WorkCenterID    null.Uint64 `json:"work_center_id"`
	CategoryID      null.Uint64 `json:"category_id"`
	TeamID          null.Uint64 `json:"team_id"`
	ScheduledDate   null.Time   `json:"scheduled_date"`
	Notes           null.String `json:"notes"`
	Instructions    null.String `json:"instructions"`
}

type UpdateRequestStatusDTO struct {
	Status string `json:"status" validate:"required,oneof=NEW IN_PROGRESS REPAIRED SCRAP"`
}

type AssignTechnicianDTO struct {
	TechnicianID uint64 `json:"technician_id" validate:"required"`
}

type RequestDTO struct {
	ID              uint64              `json:"id"`
	Subject         string              `json:"subject"`
	MaintenanceType string              `json:"maintenance_type"`
	Status          string              `json:"status"`
	Priority        int                 `json:"priority"`
	RequestDate     string              `json:"request_date"`
	ScheduledDate   *string             `json:"scheduled_date"`
	Company         string              `json:"company"`
	Notes           string              `json:"notes"`
	Instructions    string              `json:"instructions"`
	CreatedBy       *ShortUserDTO       `json:"created_by,omitempty"`
	Equipment       *ShortEquipmentDTO  `json:"equipment,omitempty"`
	WorkCenter      *ShortWorkCenterDTO `json:"work_center,omitempty"`
	Category        *ShortCategoryDTO   `json:"category,omitempty"`
	Team            *ShortTeamDTO       `json:"team,omitempty"`
	Technician      *ShortUserDTO       `json:"technician,omitempty"`
	WorksheetCount  uint64              `json:"worksheet_count"`
	CreatedAt       string              `json:"created_at,omitempty"`
}

// KanbanColumnDTO - колонка доски заявок, порядок колонок фиксирован.
type KanbanColumnDTO struct {
	Status   string       `json:"status"`
	Requests []RequestDTO `json:"requests"`
}

// CalendarEventDTO - событие календаря планового обслуживания.
type CalendarEventDTO struct {
	ID            uint64             `json:"id"`
	Title         string             `json:"title"`
	Start         *string            `json:"start"`
	End           *string            `json:"end"`
	ExtendedProps CalendarEventProps `json:"extended_props"`
	Overdue       bool               `json:"overdue"`
	Assigned      bool               `json:"assigned"`
}

type CalendarEventProps struct {
	Equipment  *ShortEquipmentDTO `json:"equipment,omitempty"`
	Technician *ShortUserDTO      `json:"technician,omitempty"`
	Priority   int                `json:"priority"`
	Status     string             `json:"status"`
}
