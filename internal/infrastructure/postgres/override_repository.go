package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/gestion-pro/internal/domain/entity"
	"github.com/jhoicas/gestion-pro/internal/domain/repository"
)

// Asegura que OverrideRepo implementa repository.OverrideRepository.
var _ repository.OverrideRepository = (*OverrideRepo)(nil)

// OverrideRepo implementación del puerto OverrideRepository sobre PostgreSQL.
type OverrideRepo struct {
	q Querier
}

// NewOverrideRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOverrideRepository(q Querier) *OverrideRepo {
	return &OverrideRepo{q: q}
}

// Upsert inserta o actualiza el override. (tenant_id, feature_id) es único.
func (r *OverrideRepo) Upsert(ctx context.Context, o *entity.TenantFeatureOverride) error {
	query := `
		INSERT INTO tenant_feature_overrides (id, tenant_id, feature_id, enabled, updated_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (tenant_id, feature_id)
		DO UPDATE SET enabled = EXCLUDED.enabled, updated_by = EXCLUDED.updated_by, updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(ctx, query,
		o.ID, o.TenantID, o.FeatureID, o.Enabled, o.UpdatedBy, o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert override: %w", err)
	}
	return nil
}

// Delete elimina el override si existe. Borrar uno inexistente no es error.
func (r *OverrideRepo) Delete(ctx context.Context, tenantID, featureID string) error {
	query := `DELETE FROM tenant_feature_overrides WHERE tenant_id = $1 AND feature_id = $2`
	if _, err := r.q.Exec(ctx, query, tenantID, featureID); err != nil {
		return fmt.Errorf("delete override: %w", err)
	}
	return nil
}

// ListByTenantAndFeatureIDs devuelve los overrides del tenant restringidos al set de
// feature IDs dado.
func (r *OverrideRepo) ListByTenantAndFeatureIDs(ctx context.Context, tenantID string, featureIDs []string) ([]*entity.TenantFeatureOverride, error) {
	if len(featureIDs) == 0 {
		return nil, nil
	}
	query := `
		SELECT id, tenant_id, feature_id, enabled, updated_by, created_at, updated_at
		FROM tenant_feature_overrides
		WHERE tenant_id = $1 AND feature_id = ANY($2)`
	rows, err := r.q.Query(ctx, query, tenantID, featureIDs)
	if err != nil {
		return nil, fmt.Errorf("list overrides: %w", err)
	}
	defer rows.Close()

	var list []*entity.TenantFeatureOverride
	for rows.Next() {
		var o entity.TenantFeatureOverride
		if err := rows.Scan(&o.ID, &o.TenantID, &o.FeatureID, &o.Enabled, &o.UpdatedBy, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan override: %w", err)
		}
		list = append(list, &o)
	}
	return list, rows.Err()
}
