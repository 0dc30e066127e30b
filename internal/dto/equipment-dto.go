package dto

import "github.com/aarondl/null/v8"

type CreateEquipmentDTO struct {
	Name         string      `json:"name" validate:"required,min=2,max=150"`
	CategoryID   null.Uint64 `json:"category_id"`
	TeamID       null.Uint64 `json:"team_id"`
	TechnicianID null.Uint64 `json:"technician_id"`
	WorkCenterID null.Uint64 `json:"work_center_id"`
	EmployeeName string      `json:"employee_name" validate:"omitempty,max=100"`
	Company      string      `json:"company" validate:"omitempty,max=200"`
	Location     string      `json:"location" validate:"omitempty,max=200"`
	Description  string      `json:"description" validate:"omitempty,max=2000"`
	AssignedDate null.Time   `json:"assigned_date"`
}

type UpdateEquipmentDTO struct {
	Name         string      `json:"name" validate:"omitempty,min=2,max=150"`
	Status       string      `json:"status" validate:"omitempty,oneof=ACTIVE SCRAPPED"`
	CategoryID   null.Uint64 `json:"category_id"`
	TeamID       null.Uint64 `json:"team_id"`
	TechnicianID null.Uint64 `json:"technician_id"`
	WorkCenterID null.Uint64 `json:"work_center_id"`
	EmployeeName null.String `json:"employee_name"`
	Company      null.String `json:"company"`
	Location     null.String `json:"location"`
	Description  null.String `json:"description"`
	AssignedDate null.Time   `json:"assigned_date"`
	ScrapDate    null.Time   `json:"scrap_date"`
}

type EquipmentDTO struct {
	ID           uint64              `json:"id"`
	Name         string              `json:"name"`
	Status       string              `json:"status"`
	EmployeeName string              `json:"employee_name"`
	Company      string              `json:"company"`
	Location     string              `json:"location"`
	Description  string              `json:"description"`
	AssignedDate *string             `json:"assigned_date"`
	ScrapDate    *string             `json:"scrap_date"`
	Category     *ShortCategoryDTO   `json:"category,omitempty"`
	Team         *ShortTeamDTO       `json:"team,omitempty"`
	Technician   *ShortUserDTO       `json:"technician,omitempty"`
	WorkCenter   *ShortWorkCenterDTO `json:"work_center,omitempty"`
	RequestCount uint64              `json:"request_count"`
	CreatedAt    string              `json:"created_at,omitempty"`
}
