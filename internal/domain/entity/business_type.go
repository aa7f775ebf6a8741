package entity

import "time"

// BusinessType categoría de tenant (clínica, salón, instituto, logística, legal...).
// Define los módulos/features por defecto vía su versión activa.
type BusinessType struct {
	ID              string
	Code            string // ej. "clinic", "salon", "institute"
	Name            string
	ActiveVersionID *string // nil = sin versión publicada (tenants resuelven por mapeo legacy)
	Status          string  // active, inactive
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Códigos de tipo de negocio soportados de fábrica (el catálogo es extensible por DB).
const (
	BusinessTypeClinic    = "clinic"
	BusinessTypeSalon     = "salon"
	BusinessTypeInstitute = "institute"
	BusinessTypeLogistics = "logistics"
	BusinessTypeLegal     = "legal"
)
