package entity

import "time"

// Acciones registradas en el historial de versiones por tenant.
const (
	HistoryActionRollback = "rollback"
	HistoryActionMigrate  = "migrate"
	HistoryActionUnpin    = "unpin"
)

// TenantVersionHistory registro de trazabilidad de cambios de versión efectiva de un
// tenant: rollbacks del tipo de negocio, pins explícitos (migrate) y unpins.
type TenantVersionHistory struct {
	ID                string
	TenantID          string
	BusinessTypeID    string
	Action            string // ver constantes HistoryAction*
	FromVersionNumber *int   // nil si el tenant venía de resolución legacy
	ToVersionNumber   *int   // nil en unpin hacia un tipo sin versión activa
	PerformedBy       string
	Reason            string
	CreatedAt         time.Time
}
