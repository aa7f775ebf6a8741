package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/gestion-pro/internal/domain"
	"github.com/jhoicas/gestion-pro/internal/domain/entity"
	"github.com/jhoicas/gestion-pro/internal/domain/repository"
)

// Asegura que TenantRepo implementa repository.TenantRepository.
var _ repository.TenantRepository = (*TenantRepo)(nil)

// TenantRepo implementación del puerto TenantRepository sobre PostgreSQL.
type TenantRepo struct {
	q Querier
}

// NewTenantRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTenantRepository(q Querier) *TenantRepo {
	return &TenantRepo{q: q}
}

// Create persiste un nuevo tenant.
func (r *TenantRepo) Create(ctx context.Context, t *entity.Tenant) error {
	query := `
		INSERT INTO tenants (id, business_type_id, name, status, pinned_version_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		t.ID, t.BusinessTypeID, t.Name, t.Status, t.PinnedVersionID, t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert tenant: %w", err)
	}
	return nil
}

// GetByID obtiene un tenant por ID.
func (r *TenantRepo) GetByID(ctx context.Context, id string) (*entity.Tenant, error) {
	query := `
		SELECT id, business_type_id, name, status, pinned_version_id, created_at, updated_at
		FROM tenants WHERE id = $1`
	var t entity.Tenant
	err := r.q.QueryRow(ctx, query, id).Scan(
		&t.ID, &t.BusinessTypeID, &t.Name, &t.Status, &t.PinnedVersionID, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get tenant: %w", err)
	}
	return &t, nil
}

// List devuelve tenants con paginación.
func (r *TenantRepo) List(ctx context.Context, limit, offset int) ([]*entity.Tenant, error) {
	query := `
		SELECT id, business_type_id, name, status, pinned_version_id, created_at, updated_at
		FROM tenants ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list tenants: %w", err)
	}
	defer rows.Close()
	return scanTenants(rows)
}

// ListByBusinessType devuelve todos los tenants del tipo de negocio.
func (r *TenantRepo) ListByBusinessType(ctx context.Context, businessTypeID string) ([]*entity.Tenant, error) {
	query := `
		SELECT id, business_type_id, name, status, pinned_version_id, created_at, updated_at
		FROM tenants WHERE business_type_id = $1`
	rows, err := r.q.Query(ctx, query, businessTypeID)
	if err != nil {
		return nil, fmt.Errorf("list tenants by business type: %w", err)
	}
	defer rows.Close()
	return scanTenants(rows)
}

// SetPinnedVersion fija o limpia (nil) el pin de versión del tenant.
func (r *TenantRepo) SetPinnedVersion(ctx context.Context, tenantID string, versionID *string) error {
	query := `UPDATE tenants SET pinned_version_id = $2, updated_at = now() WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query, tenantID, versionID)
	if err != nil {
		return fmt.Errorf("set pinned version: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanTenants(rows pgx.Rows) ([]*entity.Tenant, error) {
	var list []*entity.Tenant
	for rows.Next() {
		var t entity.Tenant
		if err := rows.Scan(&t.ID, &t.BusinessTypeID, &t.Name, &t.Status, &t.PinnedVersionID, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan tenant: %w", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}
