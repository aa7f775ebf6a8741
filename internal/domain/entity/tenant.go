package entity

import "time"

// Tenant organización cliente de la plataforma (una clínica, un salón, etc.).
// PinnedVersionID fija el tenant a una versión concreta; nil = sigue la versión
// activa de su tipo de negocio.
type Tenant struct {
	ID              string
	BusinessTypeID  string
	Name            string
	Status          string // active, suspended, inactive
	PinnedVersionID *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TenantFeatureOverride activación/desactivación explícita de una feature para un
// tenant. Solo se honra si la feature pertenece al set de la versión resuelta y no
// es required (invariante de jerarquía de gating).
type TenantFeatureOverride struct {
	ID        string
	TenantID  string
	FeatureID string
	Enabled   bool
	UpdatedBy string
	CreatedAt time.Time
	UpdatedAt time.Time
}
