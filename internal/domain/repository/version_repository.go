package repository

import (
	"context"

	"github.com/jhoicas/gestion-pro/internal/domain/entity"
)

// VersionRepository define el puerto de persistencia para versiones de tipos de negocio.
// Los métodos Get* devuelven (nil, nil) si no existe la fila.
type VersionRepository interface {
	// Create inserta la versión y sus filas de snapshot (módulos y features).
	Create(ctx context.Context, v *entity.BusinessVersion,
		modules []entity.VersionModuleMapping, features []entity.VersionFeatureMapping) error
	GetByID(ctx context.Context, id string) (*entity.BusinessVersion, error)
	GetByNumber(ctx context.Context, businessTypeID string, number int) (*entity.BusinessVersion, error)
	GetPublished(ctx context.Context, businessTypeID string) (*entity.BusinessVersion, error)
	// MaxVersionNumber devuelve el mayor número asignado para el tipo (0 si ninguno).
	MaxVersionNumber(ctx context.Context, businessTypeID string) (int, error)
	// ListByBusinessType devuelve versiones del tipo, la más reciente primero.
	ListByBusinessType(ctx context.Context, businessTypeID string) ([]*entity.BusinessVersion, error)
	// UpdateStatus persiste status, timestamps de ciclo de vida y publishedBy.
	UpdateStatus(ctx context.Context, v *entity.BusinessVersion) error
	// ListModuleMappings / ListFeatureMappings devuelven el snapshot ordenado por display_order.
	ListModuleMappings(ctx context.Context, versionID string) ([]entity.VersionModuleMapping, error)
	ListFeatureMappings(ctx context.Context, versionID string) ([]entity.VersionFeatureMapping, error)
}
