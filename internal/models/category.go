package models

import "time"

type Category struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	IsActive  bool      `json:"is_active"`
	ImageKey  string    `json:"image,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CreateCategoryRequest struct {
	Name     string       `json:"name" validate:"required,max=100"`
	IsActive bool         `json:"is_active"`
	Image    *ImageUpload `json:"-"`
}

type UpdateCategoryRequest struct {
	Name     *string      `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	IsActive *bool        `json:"is_active,omitempty"`
	Image    *ImageUpload `json:"-"`
}
