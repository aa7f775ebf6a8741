package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/gestion-pro/internal/domain"
	"github.com/jhoicas/gestion-pro/internal/domain/entity"
	"github.com/jhoicas/gestion-pro/internal/domain/repository"
)

// Asegura que VersionRepo implementa repository.VersionRepository.
var _ repository.VersionRepository = (*VersionRepo)(nil)

// VersionRepo implementación del puerto VersionRepository sobre PostgreSQL.
type VersionRepo struct {
	q Querier
}

// NewVersionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewVersionRepository(q Querier) *VersionRepo {
	return &VersionRepo{q: q}
}

const versionColumns = `id, business_type_id, version_number, name, status,
	created_by, published_by, published_at, effective_at, retired_at, created_at, updated_at`

// Create inserta la versión y sus filas de snapshot (módulos y features).
// Se asume que el caller envuelve esto en una transacción (TxRunner).
func (r *VersionRepo) Create(ctx context.Context, v *entity.BusinessVersion,
	modules []entity.VersionModuleMapping, features []entity.VersionFeatureMapping) error {
	query := `
		INSERT INTO business_versions (` + versionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		v.ID, v.BusinessTypeID, v.VersionNumber, v.Name, v.Status,
		v.CreatedBy, v.PublishedBy, v.PublishedAt, v.EffectiveAt, v.RetiredAt, v.CreatedAt, v.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate // (business_type_id, version_number) es único
		}
		return fmt.Errorf("insert version: %w", err)
	}

	for _, m := range modules {
		_, err := r.q.Exec(ctx, `
			INSERT INTO version_module_mappings (id, version_id, module_id, module_code, module_name, is_required, default_enabled, display_order)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			m.ID, m.VersionID, m.ModuleID, m.ModuleCode, m.ModuleName, m.IsRequired, m.DefaultEnabled, m.DisplayOrder,
		)
		if err != nil {
			return fmt.Errorf("insert module mapping %s: %w", m.ModuleCode, err)
		}
	}
	for _, f := range features {
		_, err := r.q.Exec(ctx, `
			INSERT INTO version_feature_mappings (id, version_id, feature_id, feature_code, feature_name, module_code, is_required, default_enabled, display_order)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			f.ID, f.VersionID, f.FeatureID, f.FeatureCode, f.FeatureName, f.ModuleCode, f.IsRequired, f.DefaultEnabled, f.DisplayOrder,
		)
		if err != nil {
			return fmt.Errorf("insert feature mapping %s: %w", f.FeatureCode, err)
		}
	}
	return nil
}

// GetByID obtiene una versión por ID.
func (r *VersionRepo) GetByID(ctx context.Context, id string) (*entity.BusinessVersion, error) {
	query := `SELECT ` + versionColumns + ` FROM business_versions WHERE id = $1`
	return r.scanOne(ctx, query, id)
}

// GetByNumber obtiene una versión por (tipo de negocio, número).
func (r *VersionRepo) GetByNumber(ctx context.Context, businessTypeID string, number int) (*entity.BusinessVersion, error) {
	query := `SELECT ` + versionColumns + ` FROM business_versions
		WHERE business_type_id = $1 AND version_number = $2`
	return r.scanOne(ctx, query, businessTypeID, number)
}

// GetPublished obtiene la versión publicada del tipo (a lo sumo una, por invariante).
func (r *VersionRepo) GetPublished(ctx context.Context, businessTypeID string) (*entity.BusinessVersion, error) {
	query := `SELECT ` + versionColumns + ` FROM business_versions
		WHERE business_type_id = $1 AND status = 'published'`
	return r.scanOne(ctx, query, businessTypeID)
}

// MaxVersionNumber devuelve el mayor número asignado al tipo (0 si ninguno).
// Los números nunca se reutilizan, aunque una versión se retire.
func (r *VersionRepo) MaxVersionNumber(ctx context.Context, businessTypeID string) (int, error) {
	var max int
	err := r.q.QueryRow(ctx,
		`SELECT COALESCE(MAX(version_number), 0) FROM business_versions WHERE business_type_id = $1`,
		businessTypeID,
	).Scan(&max)
	if err != nil {
		return 0, fmt.Errorf("max version number: %w", err)
	}
	return max, nil
}

// ListByBusinessType devuelve versiones del tipo, la más reciente primero.
func (r *VersionRepo) ListByBusinessType(ctx context.Context, businessTypeID string) ([]*entity.BusinessVersion, error) {
	query := `SELECT ` + versionColumns + ` FROM business_versions
		WHERE business_type_id = $1 ORDER BY version_number DESC`
	rows, err := r.q.Query(ctx, query, businessTypeID)
	if err != nil {
		return nil, fmt.Errorf("list versions: %w", err)
	}
	defer rows.Close()

	var list []*entity.BusinessVersion
	for rows.Next() {
		var v entity.BusinessVersion
		if err := rows.Scan(
			&v.ID, &v.BusinessTypeID, &v.VersionNumber, &v.Name, &v.Status,
			&v.CreatedBy, &v.PublishedBy, &v.PublishedAt, &v.EffectiveAt, &v.RetiredAt, &v.CreatedAt, &v.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan version: %w", err)
		}
		list = append(list, &v)
	}
	return list, rows.Err()
}

// UpdateStatus persiste status, timestamps de ciclo de vida y publishedBy.
func (r *VersionRepo) UpdateStatus(ctx context.Context, v *entity.BusinessVersion) error {
	query := `
		UPDATE business_versions
		SET status = $2, published_by = $3, published_at = $4, effective_at = $5, retired_at = $6, updated_at = $7
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		v.ID, v.Status, v.PublishedBy, v.PublishedAt, v.EffectiveAt, v.RetiredAt, v.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update version status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListModuleMappings devuelve el snapshot de módulos ordenado por display_order.
func (r *VersionRepo) ListModuleMappings(ctx context.Context, versionID string) ([]entity.VersionModuleMapping, error) {
	query := `
		SELECT id, version_id, module_id, module_code, module_name, is_required, default_enabled, display_order
		FROM version_module_mappings WHERE version_id = $1 ORDER BY display_order, module_code`
	rows, err := r.q.Query(ctx, query, versionID)
	if err != nil {
		return nil, fmt.Errorf("list module mappings: %w", err)
	}
	defer rows.Close()

	var list []entity.VersionModuleMapping
	for rows.Next() {
		var m entity.VersionModuleMapping
		if err := rows.Scan(&m.ID, &m.VersionID, &m.ModuleID, &m.ModuleCode, &m.ModuleName, &m.IsRequired, &m.DefaultEnabled, &m.DisplayOrder); err != nil {
			return nil, fmt.Errorf("scan module mapping: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

// ListFeatureMappings devuelve el snapshot de features ordenado por display_order.
func (r *VersionRepo) ListFeatureMappings(ctx context.Context, versionID string) ([]entity.VersionFeatureMapping, error) {
	query := `
		SELECT id, version_id, feature_id, feature_code, feature_name, module_code, is_required, default_enabled, display_order
		FROM version_feature_mappings WHERE version_id = $1 ORDER BY display_order, feature_code`
	rows, err := r.q.Query(ctx, query, versionID)
	if err != nil {
		return nil, fmt.Errorf("list feature mappings: %w", err)
	}
	defer rows.Close()

	var list []entity.VersionFeatureMapping
	for rows.Next() {
		var f entity.VersionFeatureMapping
		if err := rows.Scan(&f.ID, &f.VersionID, &f.FeatureID, &f.FeatureCode, &f.FeatureName, &f.ModuleCode, &f.IsRequired, &f.DefaultEnabled, &f.DisplayOrder); err != nil {
			return nil, fmt.Errorf("scan feature mapping: %w", err)
		}
		list = append(list, f)
	}
	return list, rows.Err()
}

func (r *VersionRepo) scanOne(ctx context.Context, query string, args ...any) (*entity.BusinessVersion, error) {
	var v entity.BusinessVersion
	err := r.q.QueryRow(ctx, query, args...).Scan(
		&v.ID, &v.BusinessTypeID, &v.VersionNumber, &v.Name, &v.Status,
		&v.CreatedBy, &v.PublishedBy, &v.PublishedAt, &v.EffectiveAt, &v.RetiredAt, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get version: %w", err)
	}
	return &v, nil
}
