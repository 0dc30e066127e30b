package dto

type CreateCategoryDTO struct {
	Name        string `json:"name" validate:"required,min=2,max=100"`
	Responsible string `json:"responsible" validate:"omitempty,max=100"`
	Company     string `json:"company" validate:"omitempty,max=200"`
}

type UpdateCategoryDTO struct {
	Name        string `json:"name" validate:"omitempty,min=2,max=100"`
	Responsible string `json:"responsible" validate:"omitempty,max=100"`
	Company     string `json:"company" validate:"omitempty,max=200"`
}

type CategoryDTO struct {
	ID          uint64 `json:"id"`
	Name        string `json:"name"`
	Responsible string `json:"responsible"`
	Company     string `json:"company"`
	CreatedAt   string `json:"created_at,omitempty"`
}
