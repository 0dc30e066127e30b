package dto

// Сводки дашборда. Состав зависит от роли, см. DashboardService.

type StatusCountDTO struct {
	Status string `json:"status"`
	Count  uint64 `json:"count"`
}

type TypeCountDTO struct {
	MaintenanceType string `json:"maintenance_type"`
	Count           uint64 `json:"count"`
}

type TechnicianUtilizationDTO struct {
	Busy       uint64 `json:"busy"`
	Total      uint64 `json:"total"`
	Percentage int    `json:"percentage"`
}

type RecentRequestDTO struct {
	ID            uint64  `json:"id"`
	Subject       string  `json:"subject"`
	Status        string  `json:"status"`
	Priority      int     `json:"priority"`
	EquipmentName *string `json:"equipment_name"`
	CreatedByName string  `json:"created_by_name"`
	CreatedAt     string  `json:"created_at"`
}

type AdminDashboardDTO struct {
	CriticalEquipment     uint64                   `json:"critical_equipment"`
	OpenRequests          uint64                   `json:"open_requests"`
	TechnicianUtilization TechnicianUtilizationDTO `json:"technician_utilization"`
	EquipmentByStatus     []StatusCountDTO         `json:"equipment_by_status"`
	RequestsByStatus      []StatusCountDTO         `json:"requests_by_status"`
	RequestsByType        []TypeCountDTO           `json:"requests_by_type"`
	RecentRequests        []RecentRequestDTO       `json:"recent_requests"`
	OverduePreventive     uint64                   `json:"overdue_preventive"`
	TotalEquipment        uint64                   `json:"total_equipment"`
	TotalTeams            uint64                   `json:"total_teams"`
	TotalUsers            uint64                   `json:"total_users"`
	TotalWorkCenters      uint64                   `json:"total_work_centers"`
}

type TechnicianDashboardDTO struct {
	MyRequests   []StatusCountDTO `json:"my_requests"`
	AssignedToMe uint64           `json:"assigned_to_me"`
	TeamRequests uint64           `json:"team_requests"`
}

type UserDashboardDTO struct {
	MyRequests  []StatusCountDTO `json:"my_requests"`
	MyEquipment uint64           `json:"my_equipment"`
}
