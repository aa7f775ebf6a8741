package entity

import "time"

// Estados del ciclo de vida de una versión.
// draft --publish--> published --(otro publish del mismo tipo)--> retired
// retired --rollback--> published (retired no es terminal).
const (
	VersionStatusDraft     = "draft"
	VersionStatusPublished = "published"
	VersionStatusRetired   = "retired"
)

// BusinessVersion snapshot inmutable de la configuración de módulos/features de un
// tipo de negocio. VersionNumber es monotónico por tipo y nunca se reutiliza.
// El snapshot son sus filas de mapeo (VersionModuleMapping / VersionFeatureMapping).
type BusinessVersion struct {
	ID             string
	BusinessTypeID string
	VersionNumber  int
	Name           string
	Status         string // ver constantes VersionStatus*
	CreatedBy      string
	PublishedBy    string
	PublishedAt    *time.Time
	EffectiveAt    *time.Time
	RetiredAt      *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// CanPublish informa si la versión admite la transición draft -> published.
func (v *BusinessVersion) CanPublish() bool {
	return v.Status == VersionStatusDraft
}

// CanRollbackTo informa si la versión puede re-publicarse vía rollback.
// Se admite retired (re-activación); la versión ya publicada no (sería un no-op).
func (v *BusinessVersion) CanRollbackTo() bool {
	return v.Status == VersionStatusRetired || v.Status == VersionStatusDraft
}

// IsPublished informa si la versión es la activa de su tipo de negocio.
func (v *BusinessVersion) IsPublished() bool {
	return v.Status == VersionStatusPublished
}

// VersionModuleMapping fila del snapshot de módulos de una versión.
// Code y Name se desnormalizan al crear la versión: el snapshot no depende del catálogo.
type VersionModuleMapping struct {
	ID             string
	VersionID      string
	ModuleID       string
	ModuleCode     string // ej. "bookings", "attendance"
	ModuleName     string
	IsRequired     bool
	DefaultEnabled bool
	DisplayOrder   int
}

// VersionFeatureMapping fila del snapshot de features de una versión.
// ModuleCode referencia el módulo padre dentro del mismo snapshot.
type VersionFeatureMapping struct {
	ID             string
	VersionID      string
	FeatureID      string
	FeatureCode    string // ej. "bookings.online", "exams.grading"
	FeatureName    string
	ModuleCode     string
	IsRequired     bool
	DefaultEnabled bool
	DisplayOrder   int
}
