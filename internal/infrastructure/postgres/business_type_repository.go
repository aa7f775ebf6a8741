package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/gestion-pro/internal/domain"
	"github.com/jhoicas/gestion-pro/internal/domain/entity"
	"github.com/jhoicas/gestion-pro/internal/domain/repository"
)

// Asegura que BusinessTypeRepo implementa repository.BusinessTypeRepository.
var _ repository.BusinessTypeRepository = (*BusinessTypeRepo)(nil)

// BusinessTypeRepo implementación del puerto BusinessTypeRepository sobre PostgreSQL.
type BusinessTypeRepo struct {
	q Querier
}

// NewBusinessTypeRepository construye el adaptador. Pasar pool o tx (Querier).
func NewBusinessTypeRepository(q Querier) *BusinessTypeRepo {
	return &BusinessTypeRepo{q: q}
}

// Create persiste un nuevo tipo de negocio.
func (r *BusinessTypeRepo) Create(ctx context.Context, bt *entity.BusinessType) error {
	query := `
		INSERT INTO business_types (id, code, name, active_version_id, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		bt.ID, bt.Code, bt.Name, bt.ActiveVersionID, bt.Status, bt.CreatedAt, bt.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert business type: %w", err)
	}
	return nil
}

// GetByID obtiene un tipo de negocio por ID.
func (r *BusinessTypeRepo) GetByID(ctx context.Context, id string) (*entity.BusinessType, error) {
	query := `
		SELECT id, code, name, active_version_id, status, created_at, updated_at
		FROM business_types WHERE id = $1`
	var bt entity.BusinessType
	err := r.q.QueryRow(ctx, query, id).Scan(
		&bt.ID, &bt.Code, &bt.Name, &bt.ActiveVersionID, &bt.Status, &bt.CreatedAt, &bt.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get business type: %w", err)
	}
	return &bt, nil
}

// GetByCode obtiene un tipo de negocio por código.
func (r *BusinessTypeRepo) GetByCode(ctx context.Context, code string) (*entity.BusinessType, error) {
	query := `
		SELECT id, code, name, active_version_id, status, created_at, updated_at
		FROM business_types WHERE code = $1`
	var bt entity.BusinessType
	err := r.q.QueryRow(ctx, query, code).Scan(
		&bt.ID, &bt.Code, &bt.Name, &bt.ActiveVersionID, &bt.Status, &bt.CreatedAt, &bt.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get business type by code: %w", err)
	}
	return &bt, nil
}

// List devuelve tipos de negocio con paginación.
func (r *BusinessTypeRepo) List(ctx context.Context, limit, offset int) ([]*entity.BusinessType, error) {
	query := `
		SELECT id, code, name, active_version_id, status, created_at, updated_at
		FROM business_types ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list business types: %w", err)
	}
	defer rows.Close()

	var list []*entity.BusinessType
	for rows.Next() {
		var bt entity.BusinessType
		if err := rows.Scan(&bt.ID, &bt.Code, &bt.Name, &bt.ActiveVersionID, &bt.Status, &bt.CreatedAt, &bt.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan business type: %w", err)
		}
		list = append(list, &bt)
	}
	return list, rows.Err()
}

// SetActiveVersion actualiza el puntero a la versión activa (nil lo limpia).
func (r *BusinessTypeRepo) SetActiveVersion(ctx context.Context, businessTypeID string, versionID *string) error {
	query := `UPDATE business_types SET active_version_id = $2, updated_at = now() WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query, businessTypeID, versionID)
	if err != nil {
		return fmt.Errorf("set active version: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
