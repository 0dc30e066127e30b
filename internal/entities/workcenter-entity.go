package entities

import "maintenance-system/pkg/types"

type WorkCenter struct {
	ID                  uint64  `json:"id" db:"id"`
	Name                string  `json:"name" db:"name"`
	Code                string  `json:"code" db:"code"`
	Tag                 *string `json:"tag" db:"tag"`
	AlternativeCenterID *uint64 `json:"alternative_center_id" db:"alternative_center_id"`
	CostPerHour         float64 `json:"cost_per_hour" db:"cost_per_hour"`
	Capacity            float64 `json:"capacity" db:"capacity"`
	TimeEfficiency      float64 `json:"time_efficiency" db:"time_efficiency"`
	OEETarget           float64 `json:"oee_target" db:"oee_target"`

	types.BaseEntity
}
