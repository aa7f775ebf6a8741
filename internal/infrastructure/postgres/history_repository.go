package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/gestion-pro/internal/domain/entity"
	"github.com/jhoicas/gestion-pro/internal/domain/repository"
)

// Asegura que HistoryRepo implementa repository.HistoryRepository.
var _ repository.HistoryRepository = (*HistoryRepo)(nil)

// HistoryRepo implementación del puerto HistoryRepository sobre PostgreSQL.
type HistoryRepo struct {
	q Querier
}

// NewHistoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewHistoryRepository(q Querier) *HistoryRepo {
	return &HistoryRepo{q: q}
}

// Create inserta un registro de historial.
func (r *HistoryRepo) Create(ctx context.Context, h *entity.TenantVersionHistory) error {
	query := `
		INSERT INTO tenant_version_history (id, tenant_id, business_type_id, action, from_version_number, to_version_number, performed_by, reason, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		h.ID, h.TenantID, h.BusinessTypeID, h.Action, h.FromVersionNumber, h.ToVersionNumber, h.PerformedBy, h.Reason, h.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert version history: %w", err)
	}
	return nil
}

// ListByTenant devuelve el historial del tenant, el más reciente primero.
func (r *HistoryRepo) ListByTenant(ctx context.Context, tenantID string, limit, offset int) ([]*entity.TenantVersionHistory, error) {
	query := `
		SELECT id, tenant_id, business_type_id, action, from_version_number, to_version_number, performed_by, reason, created_at
		FROM tenant_version_history
		WHERE tenant_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, tenantID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list version history: %w", err)
	}
	defer rows.Close()

	var list []*entity.TenantVersionHistory
	for rows.Next() {
		var h entity.TenantVersionHistory
		if err := rows.Scan(&h.ID, &h.TenantID, &h.BusinessTypeID, &h.Action, &h.FromVersionNumber, &h.ToVersionNumber, &h.PerformedBy, &h.Reason, &h.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan version history: %w", err)
		}
		list = append(list, &h)
	}
	return list, rows.Err()
}
