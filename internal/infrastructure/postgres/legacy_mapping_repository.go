package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/gestion-pro/internal/domain/entity"
	"github.com/jhoicas/gestion-pro/internal/domain/repository"
)

// Asegura que LegacyMappingRepo implementa repository.LegacyMappingRepository.
var _ repository.LegacyMappingRepository = (*LegacyMappingRepo)(nil)

// LegacyMappingRepo lectura de las tablas de mapeo pre-versionado. Estas tablas se
// congelaron al introducir el registro de versiones, por eso el adaptador no expone
// escrituras.
type LegacyMappingRepo struct {
	q Querier
}

// NewLegacyMappingRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLegacyMappingRepository(q Querier) *LegacyMappingRepo {
	return &LegacyMappingRepo{q: q}
}

// ListModules devuelve los módulos del mapeo legacy del tipo de negocio.
func (r *LegacyMappingRepo) ListModules(ctx context.Context, businessTypeID string) ([]entity.BusinessModuleMap, error) {
	query := `
		SELECT id, business_type_id, module_id, module_code, module_name, is_required, default_enabled, display_order, created_at
		FROM business_module_maps WHERE business_type_id = $1 ORDER BY display_order, module_code`
	rows, err := r.q.Query(ctx, query, businessTypeID)
	if err != nil {
		return nil, fmt.Errorf("list legacy modules: %w", err)
	}
	defer rows.Close()

	var list []entity.BusinessModuleMap
	for rows.Next() {
		var m entity.BusinessModuleMap
		if err := rows.Scan(&m.ID, &m.BusinessTypeID, &m.ModuleID, &m.ModuleCode, &m.ModuleName, &m.IsRequired, &m.DefaultEnabled, &m.DisplayOrder, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan legacy module: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

// ListFeatures devuelve las features del mapeo legacy del tipo de negocio.
func (r *LegacyMappingRepo) ListFeatures(ctx context.Context, businessTypeID string) ([]entity.BusinessFeatureMap, error) {
	query := `
		SELECT id, business_type_id, feature_id, feature_code, feature_name, module_code, is_required, default_enabled, display_order, created_at
		FROM business_feature_maps WHERE business_type_id = $1 ORDER BY display_order, feature_code`
	rows, err := r.q.Query(ctx, query, businessTypeID)
	if err != nil {
		return nil, fmt.Errorf("list legacy features: %w", err)
	}
	defer rows.Close()

	var list []entity.BusinessFeatureMap
	for rows.Next() {
		var f entity.BusinessFeatureMap
		if err := rows.Scan(&f.ID, &f.BusinessTypeID, &f.FeatureID, &f.FeatureCode, &f.FeatureName, &f.ModuleCode, &f.IsRequired, &f.DefaultEnabled, &f.DisplayOrder, &f.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan legacy feature: %w", err)
		}
		list = append(list, f)
	}
	return list, rows.Err()
}
