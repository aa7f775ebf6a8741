package repository

import (
	"context"

	"github.com/jhoicas/gestion-pro/internal/domain/entity"
)

// LegacyMappingRepository define el puerto de lectura de los mapeos pre-versionado.
// Solo lectura: estas tablas se congelaron al introducir versiones y se conservan por
// compatibilidad con tenants antiguos.
type LegacyMappingRepository interface {
	ListModules(ctx context.Context, businessTypeID string) ([]entity.BusinessModuleMap, error)
	ListFeatures(ctx context.Context, businessTypeID string) ([]entity.BusinessFeatureMap, error)
}
