package entity

import "time"

// BusinessModuleMap mapeo pre-versionado de módulos por tipo de negocio.
// Se conserva para tenants creados antes del sistema de versiones: el resolver cae
// a estas tablas cuando no hay versión publicada resolvible.
type BusinessModuleMap struct {
	ID             string
	BusinessTypeID string
	ModuleID       string
	ModuleCode     string
	ModuleName     string
	IsRequired     bool
	DefaultEnabled bool
	DisplayOrder   int
	CreatedAt      time.Time
}

// BusinessFeatureMap mapeo pre-versionado de features por tipo de negocio.
type BusinessFeatureMap struct {
	ID             string
	BusinessTypeID string
	FeatureID      string
	FeatureCode    string
	FeatureName    string
	ModuleCode     string
	IsRequired     bool
	DefaultEnabled bool
	DisplayOrder   int
	CreatedAt      time.Time
}
