package dto

import "time"

// CreateBusinessTypeRequest entrada para crear un tipo de negocio.
type CreateBusinessTypeRequest struct {
	Code string `json:"code" validate:"required,min=1,max=50"`
	Name string `json:"name" validate:"required,min=1,max=200"`
}

// BusinessTypeResponse salida de un tipo de negocio.
type BusinessTypeResponse struct {
	ID              string    `json:"id"`
	Code            string    `json:"code"`
	Name            string    `json:"name"`
	ActiveVersionID *string   `json:"active_version_id,omitempty"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// BusinessTypeListResponse lista paginada de tipos de negocio.
type BusinessTypeListResponse struct {
	Items []BusinessTypeResponse `json:"items"`
	Page  PageResponse           `json:"page"`
}
