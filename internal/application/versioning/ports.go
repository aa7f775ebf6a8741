package versioning

import (
	"context"

	"github.com/jhoicas/gestion-pro/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción con los repos del registro
// de versiones atados a la tx. Publish/rollback retiran la versión anterior y activan
// la nueva dentro de la MISMA transacción: un crash no deja al tipo de negocio sin
// versión publicada.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		versionRepo repository.VersionRepository,
		btRepo repository.BusinessTypeRepository,
		tenantRepo repository.TenantRepository,
		historyRepo repository.HistoryRepository,
	) error) error
}

// CacheInvalidator es el contrato mínimo que el registro necesita de la caché de
// matrices: invalidar tenants afectados tras publish/rollback/migrate/unpin.
// Lo implementa la caché de infrastructure; la interfaz evita acoplar paquetes.
type CacheInvalidator interface {
	Invalidate(tenantID string)
}

// AuditLogger puerto de auditoría fire-and-forget. Las escrituras no deben bloquear
// ni hacer fallar la operación que auditan.
type AuditLogger interface {
	Record(ctx context.Context, event string, fields map[string]any)
}
