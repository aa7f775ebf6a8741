package entity

import "time"

// Origen de la resolución de la matriz (variante explícita, no un branch implícito).
const (
	ResolutionVersioned = "versioned" // versión publicada (pin del tenant o activa del tipo)
	ResolutionLegacy    = "legacy"    // tablas business_module_map / business_feature_map
	ResolutionNone      = "none"      // tenant desconocido o sin tipo de negocio
)

// Origen del estado enabled de cada feature resuelta.
const (
	SourceBusinessDefault = "business_default"
	SourceTenantOverride  = "tenant_override"
)

// ResolvedModule módulo dentro de la matriz resuelta de un tenant.
type ResolvedModule struct {
	ModuleID     string
	Code         string
	Name         string
	IsRequired   bool
	Enabled      bool
	DisplayOrder int
}

// ResolvedFeature feature dentro de la matriz resuelta de un tenant.
type ResolvedFeature struct {
	FeatureID    string
	Code         string
	Name         string
	ModuleCode   string
	IsRequired   bool
	Enabled      bool
	Source       string // SourceBusinessDefault | SourceTenantOverride
	DisplayOrder int
}

// FeatureMatrix resultado cacheado de resolver módulos/features efectivos de un tenant.
type FeatureMatrix struct {
	TenantID       string
	BusinessTypeID string
	Source         string // ResolutionVersioned | ResolutionLegacy | ResolutionNone
	VersionID      string // vacío en legacy/none
	VersionNumber  int    // 0 en legacy/none
	Modules        []ResolvedModule
	Features       []ResolvedFeature
	ResolvedAt     time.Time
	CacheHit       bool
}

// FeatureEnabled informa si la feature con ese código está habilitada en la matriz.
func (m *FeatureMatrix) FeatureEnabled(code string) bool {
	for i := range m.Features {
		if m.Features[i].Code == code {
			return m.Features[i].Enabled
		}
	}
	return false
}

// ModuleEnabled informa si el módulo con ese código está habilitado en la matriz.
func (m *FeatureMatrix) ModuleEnabled(code string) bool {
	for i := range m.Modules {
		if m.Modules[i].Code == code {
			return m.Modules[i].Enabled
		}
	}
	return false
}
