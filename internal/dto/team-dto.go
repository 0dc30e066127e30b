package dto

type CreateTeamDTO struct {
	Name    string `json:"name" validate:"required,min=2,max=100"`
	Company string `json:"company" validate:"omitempty,max=200"`
}

type UpdateTeamDTO struct {
	Name    string `json:"name" validate:"omitempty,min=2,max=100"`
	Company string `json:"company" validate:"omitempty,max=200"`
}

type AllocateMemberDTO struct {
	UserID uint64 `json:"user_id" validate:"required"`
}

type TeamMemberDTO struct {
	ID    uint64 `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type TeamDTO struct {
	ID             uint64          `json:"id"`
	Name           string          `json:"name"`
	Company        string          `json:"company"`
	Members        []TeamMemberDTO `json:"members"`
	EquipmentCount uint64          `json:"equipment_count"`
	RequestCount   uint64          `json:"request_count"`
	CreatedAt      string          `json:"created_at,omitempty"`
}
