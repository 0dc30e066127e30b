package dto

import "github.com/aarondl/null/v8"

type CreateWorkCenterDTO struct {
	Name                string      `json:"name" validate:"required,min=2,max=100"`
	Code                string      `json:"code" validate:"required,min=1,max=50"`
	Tag                 null.String `json:"tag"`
	AlternativeCenterID null.Uint64 `json:"alternative_center_id"`
	CostPerHour         float64     `json:"cost_per_hour" validate:"omitempty,gte=0"`
	Capacity            float64     `json:"capacity" validate:"omitempty,gte=0"`
	TimeEfficiency      float64     `json:"time_efficiency" validate:"omitempty,gte=0,lte=100"`
	OEETarget           float64     `json:"oee_target" validate:"omitempty,gte=0,lte=100"`
}

type UpdateWorkCenterDTO struct {
	Name                string      `json:"name" validate:"omitempty,min=2,max=100"`
	Code                string      `json:"code" validate:"omitempty,min=1,max=50"`
	Tag                 null.String `json:"tag"`
	AlternativeCenterID null.Uint64 `json:"alternative_center_id"`
	CostPerHour         null.Float64 `json:"cost_per_hour"`
	Capacity            null.Float64 `json:"capacity"`
	TimeEfficiency      null.Float64 `json:"time_efficiency"`
	OEETarget           null.Float64 `json:"oee_target"`
}

type WorkCenterDTO struct {
	ID                  uint64  `json:"id"`
	Name                string  `json:"name"`
	Code                string  `json:"code"`
	Tag                 *string `json:"tag"`
	AlternativeCenterID *uint64 `json:"alternative_center_id"`
	CostPerHour         float64 `json:"cost_per_hour"`
	Capacity            float64 `json:"capacity"`
	TimeEfficiency      float64 `json:"time_efficiency"`
	OEETarget           float64 `json:"oee_target"`
	EquipmentCount      uint64  `json:"equipment_count"`
	RequestCount        uint64  `json:"request_count"`
	CreatedAt           string  `json:"created_at,omitempty"`
}
