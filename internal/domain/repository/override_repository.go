package repository

import (
	"context"

	"github.com/jhoicas/gestion-pro/internal/domain/entity"
)

// OverrideRepository define el puerto de persistencia para overrides de features por tenant.
type OverrideRepository interface {
	// Upsert inserta o actualiza el override (tenant_id, feature_id) es único.
	Upsert(ctx context.Context, o *entity.TenantFeatureOverride) error
	Delete(ctx context.Context, tenantID, featureID string) error
	// ListByTenantAndFeatureIDs devuelve solo los overrides cuyo feature_id está en el
	// set dado: el resolver nunca ve overrides de features fuera de la versión resuelta.
	ListByTenantAndFeatureIDs(ctx context.Context, tenantID string, featureIDs []string) ([]*entity.TenantFeatureOverride, error)
}
