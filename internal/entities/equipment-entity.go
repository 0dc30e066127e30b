package entities

import (
	"time"

	"maintenance-system/pkg/types"
)

type EquipmentStatus string

const (
	EquipmentActive   EquipmentStatus = "ACTIVE"
	EquipmentScrapped EquipmentStatus = "SCRAPPED"
)

type Equipment struct {
	ID     uint64          `json:"id" db:"id"`
	Name   string          `json:"name" db:"name"`
	Status EquipmentStatus `json:"status" db:"status"`

	CategoryID   *uint64 `json:"category_id" db:"category_id"`
	TeamID       *uint64 `json:"team_id" db:"team_id"`
	TechnicianID *uint64 `json:"technician_id" db:"technician_id"`
	WorkCenterID *uint64 `json:"work_center_id" db:"work_center_id"`

	// EmployeeName - неформальная привязка к сотруднику по имени, не FK.
	EmployeeName string `json:"employee_name" db:"employee_name"`

	Company      string     `json:"company" db:"company"`
	Location     string     `json:"location" db:"location"`
	Description  string     `json:"description" db:"description"`
	AssignedDate *time.Time `json:"assigned_date" db:"assigned_date"`
	ScrapDate    *time.Time `json:"scrap_date" db:"scrap_date"`

	types.BaseEntity
}
