package dto

import "time"

// ResolvedModuleDTO módulo de la matriz resuelta.
type ResolvedModuleDTO struct {
	ModuleID     string `json:"module_id"`
	Code         string `json:"code"`
	Name         string `json:"name"`
	IsRequired   bool   `json:"is_required"`
	Enabled      bool   `json:"enabled"`
	DisplayOrder int    `json:"display_order"`
}

// ResolvedFeatureDTO feature de la matriz resuelta con su origen.
type ResolvedFeatureDTO struct {
	FeatureID    string `json:"feature_id"`
	Code         string `json:"code"`
	Name         string `json:"name"`
	ModuleCode   string `json:"module_code,omitempty"`
	IsRequired   bool   `json:"is_required"`
	Enabled      bool   `json:"enabled"`
	Source       string `json:"source"` // business_default | tenant_override
	DisplayOrder int    `json:"display_order"`
}

// MatrixResponse matriz de módulos/features efectiva de un tenant.
type MatrixResponse struct {
	TenantID       string               `json:"tenant_id"`
	BusinessTypeID string               `json:"business_type_id,omitempty"`
	Source         string               `json:"source"` // versioned | legacy | none
	VersionID      string               `json:"version_id,omitempty"`
	VersionNumber  int                  `json:"version_number,omitempty"`
	Modules        []ResolvedModuleDTO  `json:"modules"`
	Features       []ResolvedFeatureDTO `json:"features"`
	ResolvedAt     time.Time            `json:"resolved_at"`
	CacheHit       bool                 `json:"cache_hit"`
}

// CheckResponse respuesta booleana de chequeo de feature o módulo.
type CheckResponse struct {
	Code    string `json:"code"`
	Enabled bool   `json:"enabled"`
}

// OverrideRequest entrada para fijar un override de feature a un tenant.
type OverrideRequest struct {
	FeatureID string `json:"feature_id" validate:"required"`
	Enabled   bool   `json:"enabled"`
	UpdatedBy string `json:"updated_by"`
}
