package dto

import "time"

// ModuleMappingInput módulo del snapshot al crear una versión draft.
type ModuleMappingInput struct {
	ModuleID       string `json:"module_id" validate:"required"`
	Code           string `json:"code" validate:"required,min=1,max=100"`
	Name           string `json:"name" validate:"required,min=1,max=200"`
	IsRequired     bool   `json:"is_required"`
	DefaultEnabled bool   `json:"default_enabled"`
	DisplayOrder   int    `json:"display_order"`
}

// FeatureMappingInput feature del snapshot al crear una versión draft.
type FeatureMappingInput struct {
	FeatureID      string `json:"feature_id" validate:"required"`
	Code           string `json:"code" validate:"required,min=1,max=100"`
	Name           string `json:"name" validate:"required,min=1,max=200"`
	ModuleCode     string `json:"module_code"`
	IsRequired     bool   `json:"is_required"`
	DefaultEnabled bool   `json:"default_enabled"`
	DisplayOrder   int    `json:"display_order"`
}

// CreateVersionRequest entrada para crear una versión draft.
type CreateVersionRequest struct {
	BusinessTypeID string                `json:"business_type_id" validate:"required"`
	Name           string                `json:"name" validate:"required,min=1,max=200"`
	Modules        []ModuleMappingInput  `json:"modules"`
	Features       []FeatureMappingInput `json:"features"`
	CreatedBy      string                `json:"created_by"`
}

// PublishVersionRequest entrada para publicar una versión draft.
type PublishVersionRequest struct {
	PublishedBy string `json:"published_by"`
}

// RollbackRequest entrada para re-publicar una versión anterior de un tipo de negocio.
type RollbackRequest struct {
	BusinessTypeID      string `json:"business_type_id" validate:"required"`
	TargetVersionNumber int    `json:"target_version_number" validate:"required,min=1"`
	PerformedBy         string `json:"performed_by"`
	Reason              string `json:"reason"`
}

// MigrateTenantRequest entrada para fijar (pin) un tenant a una versión publicada.
type MigrateTenantRequest struct {
	TargetVersionID string `json:"target_version_id" validate:"required"`
	PerformedBy     string `json:"performed_by"`
	Reason          string `json:"reason"`
}

// UnpinTenantRequest entrada para soltar el pin de versión de un tenant.
type UnpinTenantRequest struct {
	PerformedBy string `json:"performed_by"`
	Reason      string `json:"reason"`
}

// VersionResponse salida de una versión.
type VersionResponse struct {
	ID             string     `json:"id"`
	BusinessTypeID string     `json:"business_type_id"`
	VersionNumber  int        `json:"version_number"`
	Name           string     `json:"name"`
	Status         string     `json:"status"`
	CreatedBy      string     `json:"created_by,omitempty"`
	PublishedBy    string     `json:"published_by,omitempty"`
	PublishedAt    *time.Time `json:"published_at,omitempty"`
	EffectiveAt    *time.Time `json:"effective_at,omitempty"`
	RetiredAt      *time.Time `json:"retired_at,omitempty"`
	ModuleCount    int        `json:"module_count,omitempty"`
	FeatureCount   int        `json:"feature_count,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// VersionListResponse lista de versiones, la más reciente primero.
type VersionListResponse struct {
	Items []VersionResponse `json:"items"`
}

// HistoryResponse registro del historial de versiones de un tenant.
type HistoryResponse struct {
	ID                string    `json:"id"`
	TenantID          string    `json:"tenant_id"`
	BusinessTypeID    string    `json:"business_type_id"`
	Action            string    `json:"action"`
	FromVersionNumber *int      `json:"from_version_number,omitempty"`
	ToVersionNumber   *int      `json:"to_version_number,omitempty"`
	PerformedBy       string    `json:"performed_by,omitempty"`
	Reason            string    `json:"reason,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
}

// HistoryListResponse historial paginado de un tenant.
type HistoryListResponse struct {
	Items []HistoryResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
