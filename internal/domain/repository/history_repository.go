package repository

import (
	"context"

	"github.com/jhoicas/gestion-pro/internal/domain/entity"
)

// HistoryRepository define el puerto de persistencia para el historial de versiones por tenant.
type HistoryRepository interface {
	Create(ctx context.Context, h *entity.TenantVersionHistory) error
	// ListByTenant devuelve el historial del tenant, el registro más reciente primero.
	ListByTenant(ctx context.Context, tenantID string, limit, offset int) ([]*entity.TenantVersionHistory, error)
}
