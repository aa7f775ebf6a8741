package repository

import (
	"context"

	"github.com/jhoicas/gestion-pro/internal/domain/entity"
)

// BusinessTypeRepository define el puerto de persistencia para BusinessType (DIP).
// La implementación vive en infrastructure.
type BusinessTypeRepository interface {
	Create(ctx context.Context, bt *entity.BusinessType) error
	GetByID(ctx context.Context, id string) (*entity.BusinessType, error)
	GetByCode(ctx context.Context, code string) (*entity.BusinessType, error)
	List(ctx context.Context, limit, offset int) ([]*entity.BusinessType, error)
	// SetActiveVersion actualiza el puntero a la versión activa (nil lo limpia).
	SetActiveVersion(ctx context.Context, businessTypeID string, versionID *string) error
}
