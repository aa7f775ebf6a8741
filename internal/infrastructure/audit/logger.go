package audit

import (
	"context"

	"github.com/jhoicas/gestion-pro/internal/application/versioning"
	"github.com/jhoicas/gestion-pro/pkg/logger"
)

// Asegura que Writer implementa versioning.AuditLogger.
var _ versioning.AuditLogger = (*Writer)(nil)

// Writer emite eventos de auditoría como registros estructurados. Fire-and-forget:
// un fallo al escribir nunca afecta la operación auditada.
type Writer struct {
	log *logger.Logger
}

// NewWriter construye el escritor de auditoría sobre el logger de la aplicación.
func NewWriter(log *logger.Logger) *Writer {
	return &Writer{log: log}
}

// Record registra el evento con sus campos.
func (w *Writer) Record(_ context.Context, event string, fields map[string]any) {
	w.log.Info().
		Str("audit_event", event).
		Fields(fields).
		Msg("audit")
}
