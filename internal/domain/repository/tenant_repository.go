package repository

import (
	"context"

	"github.com/jhoicas/gestion-pro/internal/domain/entity"
)

// TenantRepository define el puerto de persistencia para Tenant.
type TenantRepository interface {
	Create(ctx context.Context, t *entity.Tenant) error
	GetByID(ctx context.Context, id string) (*entity.Tenant, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Tenant, error)
	// ListByBusinessType devuelve todos los tenants del tipo (para invalidación y
	// registros de historial tras publish/rollback).
	ListByBusinessType(ctx context.Context, businessTypeID string) ([]*entity.Tenant, error)
	// SetPinnedVersion fija o limpia (nil) el pin de versión del tenant.
	SetPinnedVersion(ctx context.Context, tenantID string, versionID *string) error
}
