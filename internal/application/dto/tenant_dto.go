package dto

import "time"

// CreateTenantRequest entrada para crear un tenant.
type CreateTenantRequest struct {
	BusinessTypeID string `json:"business_type_id" validate:"required"`
	Name           string `json:"name" validate:"required,min=1,max=200"`
}

// TenantResponse salida de un tenant.
type TenantResponse struct {
	ID              string    `json:"id"`
	BusinessTypeID  string    `json:"business_type_id"`
	Name            string    `json:"name"`
	Status          string    `json:"status"`
	PinnedVersionID *string   `json:"pinned_version_id,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// TenantListResponse lista paginada de tenants.
type TenantListResponse struct {
	Items []TenantResponse `json:"items"`
	Page  PageResponse     `json:"page"`
}
