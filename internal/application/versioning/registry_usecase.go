package versioning

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/gestion-pro/internal/application/dto"
	"github.com/jhoicas/gestion-pro/internal/domain"
	"github.com/jhoicas/gestion-pro/internal/domain/entity"
	"github.com/jhoicas/gestion-pro/internal/domain/repository"
)

// RegistryUseCase administra el ciclo de vida de versiones de tipos de negocio:
// draft -> published -> retired, rollback, pin/unpin de tenants e historial.
type RegistryUseCase struct {
	txRunner    TxRunner
	versionRepo repository.VersionRepository
	btRepo      repository.BusinessTypeRepository
	tenantRepo  repository.TenantRepository
	historyRepo repository.HistoryRepository
	cache       CacheInvalidator
	audit       AuditLogger
}

// NewRegistryUseCase construye el caso de uso del registro de versiones.
func NewRegistryUseCase(
	txRunner TxRunner,
	versionRepo repository.VersionRepository,
	btRepo repository.BusinessTypeRepository,
	tenantRepo repository.TenantRepository,
	historyRepo repository.HistoryRepository,
	cache CacheInvalidator,
	audit AuditLogger,
) *RegistryUseCase {
	return &RegistryUseCase{
		txRunner:    txRunner,
		versionRepo: versionRepo,
		btRepo:      btRepo,
		tenantRepo:  tenantRepo,
		historyRepo: historyRepo,
		cache:       cache,
		audit:       audit,
	}
}

// CreateDraft crea una versión draft con versionNumber = último + 1.
// La asignación del número y la inserción del snapshot van en una sola transacción
// para que dos drafts concurrentes no compartan número.
func (uc *RegistryUseCase) CreateDraft(ctx context.Context, in dto.CreateVersionRequest) (*dto.VersionResponse, error) {
	if in.BusinessTypeID == "" || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	bt, err := uc.btRepo.GetByID(ctx, in.BusinessTypeID)
	if err != nil {
		return nil, err
	}
	if bt == nil {
		return nil, domain.ErrNotFound
	}

	var created *entity.BusinessVersion
	err = uc.txRunner.Run(ctx, func(
		versionRepo repository.VersionRepository,
		_ repository.BusinessTypeRepository,
		_ repository.TenantRepository,
		_ repository.HistoryRepository,
	) error {
		last, err := versionRepo.MaxVersionNumber(ctx, in.BusinessTypeID)
		if err != nil {
			return err
		}
		now := time.Now()
		v := &entity.BusinessVersion{
			ID:             uuid.New().String(),
			BusinessTypeID: in.BusinessTypeID,
			VersionNumber:  last + 1,
			Name:           in.Name,
			Status:         entity.VersionStatusDraft,
			CreatedBy:      in.CreatedBy,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		modules := make([]entity.VersionModuleMapping, 0, len(in.Modules))
		for _, m := range in.Modules {
			modules = append(modules, entity.VersionModuleMapping{
				ID:             uuid.New().String(),
				VersionID:      v.ID,
				ModuleID:       m.ModuleID,
				ModuleCode:     m.Code,
				ModuleName:     m.Name,
				IsRequired:     m.IsRequired,
				DefaultEnabled: m.DefaultEnabled,
				DisplayOrder:   m.DisplayOrder,
			})
		}
		features := make([]entity.VersionFeatureMapping, 0, len(in.Features))
		for _, f := range in.Features {
			features = append(features, entity.VersionFeatureMapping{
				ID:             uuid.New().String(),
				VersionID:      v.ID,
				FeatureID:      f.FeatureID,
				FeatureCode:    f.Code,
				FeatureName:    f.Name,
				ModuleCode:     f.ModuleCode,
				IsRequired:     f.IsRequired,
				DefaultEnabled: f.DefaultEnabled,
				DisplayOrder:   f.DisplayOrder,
			})
		}
		if err := versionRepo.Create(ctx, v, modules, features); err != nil {
			return err
		}
		created = v
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Record(ctx, "version.draft_created", map[string]any{
		"version_id":       created.ID,
		"business_type_id": created.BusinessTypeID,
		"version_number":   created.VersionNumber,
		"created_by":       created.CreatedBy,
	})
	resp := toVersionResponse(created)
	resp.ModuleCount = len(in.Modules)
	resp.FeatureCount = len(in.Features)
	return resp, nil
}

// Publish publica una versión draft: retira la publicada anterior (si existe),
// activa la nueva y actualiza el puntero del tipo de negocio, todo en una
// transacción. Tras el commit invalida la caché de todos los tenants del tipo.
// Devuelve domain.ErrVersionNotDraft si la versión no está en draft (error de
// ordenamiento del caller: no reintentar).
func (uc *RegistryUseCase) Publish(ctx context.Context, versionID, publishedBy string) (*dto.VersionResponse, error) {
	var published *entity.BusinessVersion
	err := uc.txRunner.Run(ctx, func(
		versionRepo repository.VersionRepository,
		btRepo repository.BusinessTypeRepository,
		_ repository.TenantRepository,
		_ repository.HistoryRepository,
	) error {
		v, err := versionRepo.GetByID(ctx, versionID)
		if err != nil {
			return err
		}
		if v == nil {
			return domain.ErrNotFound
		}
		if !v.CanPublish() {
			return domain.ErrVersionNotDraft
		}

		now := time.Now()
		current, err := versionRepo.GetPublished(ctx, v.BusinessTypeID)
		if err != nil {
			return err
		}
		if current != nil {
			current.Status = entity.VersionStatusRetired
			current.RetiredAt = &now
			current.UpdatedAt = now
			if err := versionRepo.UpdateStatus(ctx, current); err != nil {
				return err
			}
		}

		v.Status = entity.VersionStatusPublished
		v.PublishedBy = publishedBy
		v.PublishedAt = &now
		v.EffectiveAt = &now
		v.RetiredAt = nil
		v.UpdatedAt = now
		if err := versionRepo.UpdateStatus(ctx, v); err != nil {
			return err
		}
		if err := btRepo.SetActiveVersion(ctx, v.BusinessTypeID, &v.ID); err != nil {
			return err
		}
		published = v
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.invalidateBusinessType(ctx, published.BusinessTypeID)
	uc.audit.Record(ctx, "version.published", map[string]any{
		"version_id":       published.ID,
		"business_type_id": published.BusinessTypeID,
		"version_number":   published.VersionNumber,
		"published_by":     publishedBy,
	})
	return toVersionResponse(published), nil
}

// Rollback re-publica una versión anterior (incluso retirada) del tipo de negocio.
// Retira la publicada actual, activa la target y escribe un registro de historial
// action=rollback por cada tenant no-pinned del tipo, todo en una transacción.
func (uc *RegistryUseCase) Rollback(ctx context.Context, in dto.RollbackRequest) (*dto.VersionResponse, error) {
	if in.BusinessTypeID == "" || in.TargetVersionNumber <= 0 {
		return nil, domain.ErrInvalidInput
	}

	var target *entity.BusinessVersion
	var affected []*entity.Tenant
	err := uc.txRunner.Run(ctx, func(
		versionRepo repository.VersionRepository,
		btRepo repository.BusinessTypeRepository,
		tenantRepo repository.TenantRepository,
		historyRepo repository.HistoryRepository,
	) error {
		t, err := versionRepo.GetByNumber(ctx, in.BusinessTypeID, in.TargetVersionNumber)
		if err != nil {
			return err
		}
		if t == nil {
			return domain.ErrNotFound
		}

		now := time.Now()
		current, err := versionRepo.GetPublished(ctx, in.BusinessTypeID)
		if err != nil {
			return err
		}
		if current != nil && current.ID == t.ID {
			return domain.ErrConflict // la target ya es la versión activa
		}
		var fromNumber *int
		if current != nil {
			n := current.VersionNumber
			fromNumber = &n
			current.Status = entity.VersionStatusRetired
			current.RetiredAt = &now
			current.UpdatedAt = now
			if err := versionRepo.UpdateStatus(ctx, current); err != nil {
				return err
			}
		}

		t.Status = entity.VersionStatusPublished
		t.PublishedBy = in.PerformedBy
		t.PublishedAt = &now
		t.EffectiveAt = &now
		t.RetiredAt = nil
		t.UpdatedAt = now
		if err := versionRepo.UpdateStatus(ctx, t); err != nil {
			return err
		}
		if err := btRepo.SetActiveVersion(ctx, in.BusinessTypeID, &t.ID); err != nil {
			return err
		}

		tenants, err := tenantRepo.ListByBusinessType(ctx, in.BusinessTypeID)
		if err != nil {
			return err
		}
		toNumber := t.VersionNumber
		for _, tn := range tenants {
			if tn.PinnedVersionID != nil {
				continue // los tenants pinned no cambian de versión efectiva
			}
			h := &entity.TenantVersionHistory{
				ID:                uuid.New().String(),
				TenantID:          tn.ID,
				BusinessTypeID:    in.BusinessTypeID,
				Action:            entity.HistoryActionRollback,
				FromVersionNumber: fromNumber,
				ToVersionNumber:   &toNumber,
				PerformedBy:       in.PerformedBy,
				Reason:            in.Reason,
				CreatedAt:         now,
			}
			if err := historyRepo.Create(ctx, h); err != nil {
				return err
			}
		}
		target = t
		affected = tenants
		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, tn := range affected {
		uc.cache.Invalidate(tn.ID)
	}
	uc.audit.Record(ctx, "version.rollback", map[string]any{
		"business_type_id": in.BusinessTypeID,
		"target_number":    in.TargetVersionNumber,
		"performed_by":     in.PerformedBy,
		"reason":           in.Reason,
		"tenants_affected": len(affected),
	})
	return toVersionResponse(target), nil
}

// MigrateTenant fija (pin) un tenant a una versión concreta. La target debe estar
// publicada y pertenecer al tipo de negocio del tenant. Solo invalida la caché de
// ese tenant.
func (uc *RegistryUseCase) MigrateTenant(ctx context.Context, tenantID string, in dto.MigrateTenantRequest) error {
	if tenantID == "" || in.TargetVersionID == "" {
		return domain.ErrInvalidInput
	}
	err := uc.txRunner.Run(ctx, func(
		versionRepo repository.VersionRepository,
		btRepo repository.BusinessTypeRepository,
		tenantRepo repository.TenantRepository,
		historyRepo repository.HistoryRepository,
	) error {
		tenant, err := tenantRepo.GetByID(ctx, tenantID)
		if err != nil {
			return err
		}
		if tenant == nil {
			return domain.ErrNotFound
		}
		target, err := versionRepo.GetByID(ctx, in.TargetVersionID)
		if err != nil {
			return err
		}
		if target == nil {
			return domain.ErrNotFound
		}
		if target.BusinessTypeID != tenant.BusinessTypeID {
			return domain.ErrVersionMismatch
		}
		if !target.IsPublished() {
			return domain.ErrVersionNotPublished
		}

		fromNumber, err := uc.effectiveVersionNumber(ctx, versionRepo, btRepo, tenant)
		if err != nil {
			return err
		}
		if err := tenantRepo.SetPinnedVersion(ctx, tenantID, &target.ID); err != nil {
			return err
		}
		toNumber := target.VersionNumber
		return historyRepo.Create(ctx, &entity.TenantVersionHistory{
			ID:                uuid.New().String(),
			TenantID:          tenantID,
			BusinessTypeID:    tenant.BusinessTypeID,
			Action:            entity.HistoryActionMigrate,
			FromVersionNumber: fromNumber,
			ToVersionNumber:   &toNumber,
			PerformedBy:       in.PerformedBy,
			Reason:            in.Reason,
			CreatedAt:         time.Now(),
		})
	})
	if err != nil {
		return err
	}

	uc.cache.Invalidate(tenantID)
	uc.audit.Record(ctx, "tenant.migrated", map[string]any{
		"tenant_id":    tenantID,
		"version_id":   in.TargetVersionID,
		"performed_by": in.PerformedBy,
	})
	return nil
}

// UnpinTenant limpia el pin del tenant: vuelve a seguir la versión activa de su tipo.
// Devuelve domain.ErrConflict si el tenant no estaba pinned.
func (uc *RegistryUseCase) UnpinTenant(ctx context.Context, tenantID string, in dto.UnpinTenantRequest) error {
	if tenantID == "" {
		return domain.ErrInvalidInput
	}
	err := uc.txRunner.Run(ctx, func(
		versionRepo repository.VersionRepository,
		btRepo repository.BusinessTypeRepository,
		tenantRepo repository.TenantRepository,
		historyRepo repository.HistoryRepository,
	) error {
		tenant, err := tenantRepo.GetByID(ctx, tenantID)
		if err != nil {
			return err
		}
		if tenant == nil {
			return domain.ErrNotFound
		}
		if tenant.PinnedVersionID == nil {
			return domain.ErrConflict // no hay pin que soltar
		}

		var fromNumber *int
		if pinned, err := versionRepo.GetByID(ctx, *tenant.PinnedVersionID); err != nil {
			return err
		} else if pinned != nil {
			n := pinned.VersionNumber
			fromNumber = &n
		}
		var toNumber *int
		bt, err := btRepo.GetByID(ctx, tenant.BusinessTypeID)
		if err != nil {
			return err
		}
		if bt != nil && bt.ActiveVersionID != nil {
			if active, err := versionRepo.GetByID(ctx, *bt.ActiveVersionID); err != nil {
				return err
			} else if active != nil {
				n := active.VersionNumber
				toNumber = &n
			}
		}

		if err := tenantRepo.SetPinnedVersion(ctx, tenantID, nil); err != nil {
			return err
		}
		return historyRepo.Create(ctx, &entity.TenantVersionHistory{
			ID:                uuid.New().String(),
			TenantID:          tenantID,
			BusinessTypeID:    tenant.BusinessTypeID,
			Action:            entity.HistoryActionUnpin,
			FromVersionNumber: fromNumber,
			ToVersionNumber:   toNumber,
			PerformedBy:       in.PerformedBy,
			Reason:            in.Reason,
			CreatedAt:         time.Now(),
		})
	})
	if err != nil {
		return err
	}

	uc.cache.Invalidate(tenantID)
	uc.audit.Record(ctx, "tenant.unpinned", map[string]any{
		"tenant_id":    tenantID,
		"performed_by": in.PerformedBy,
	})
	return nil
}

// ListByBusinessType lista las versiones de un tipo, la más reciente primero.
func (uc *RegistryUseCase) ListByBusinessType(ctx context.Context, businessTypeID string) (*dto.VersionListResponse, error) {
	bt, err := uc.btRepo.GetByID(ctx, businessTypeID)
	if err != nil {
		return nil, err
	}
	if bt == nil {
		return nil, domain.ErrNotFound
	}
	versions, err := uc.versionRepo.ListByBusinessType(ctx, businessTypeID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.VersionResponse, 0, len(versions))
	for _, v := range versions {
		items = append(items, *toVersionResponse(v))
	}
	return &dto.VersionListResponse{Items: items}, nil
}

// GetPublished devuelve la versión publicada del tipo, o domain.ErrNotFound si no hay.
func (uc *RegistryUseCase) GetPublished(ctx context.Context, businessTypeID string) (*dto.VersionResponse, error) {
	v, err := uc.versionRepo.GetPublished(ctx, businessTypeID)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, domain.ErrNotFound
	}
	return toVersionResponse(v), nil
}

// TenantHistory devuelve el historial de versiones del tenant, paginado.
func (uc *RegistryUseCase) TenantHistory(ctx context.Context, tenantID string, limit, offset int) (*dto.HistoryListResponse, error) {
	tenant, err := uc.tenantRepo.GetByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, domain.ErrNotFound
	}
	rows, err := uc.historyRepo.ListByTenant(ctx, tenantID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.HistoryResponse, 0, len(rows))
	for _, h := range rows {
		items = append(items, dto.HistoryResponse{
			ID:                h.ID,
			TenantID:          h.TenantID,
			BusinessTypeID:    h.BusinessTypeID,
			Action:            h.Action,
			FromVersionNumber: h.FromVersionNumber,
			ToVersionNumber:   h.ToVersionNumber,
			PerformedBy:       h.PerformedBy,
			Reason:            h.Reason,
			CreatedAt:         h.CreatedAt,
		})
	}
	return &dto.HistoryListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// effectiveVersionNumber calcula el número de versión efectivo actual del tenant
// (pin explícito o activa del tipo); nil si resuelve por la vía legacy.
func (uc *RegistryUseCase) effectiveVersionNumber(
	ctx context.Context,
	versionRepo repository.VersionRepository,
	btRepo repository.BusinessTypeRepository,
	tenant *entity.Tenant,
) (*int, error) {
	var effectiveID *string
	if tenant.PinnedVersionID != nil {
		effectiveID = tenant.PinnedVersionID
	} else {
		bt, err := btRepo.GetByID(ctx, tenant.BusinessTypeID)
		if err != nil {
			return nil, err
		}
		if bt != nil {
			effectiveID = bt.ActiveVersionID
		}
	}
	if effectiveID == nil {
		return nil, nil
	}
	v, err := versionRepo.GetByID(ctx, *effectiveID)
	if err != nil || v == nil {
		return nil, err
	}
	n := v.VersionNumber
	return &n, nil
}

// invalidateBusinessType invalida la caché de todos los tenants del tipo de negocio.
func (uc *RegistryUseCase) invalidateBusinessType(ctx context.Context, businessTypeID string) {
	tenants, err := uc.tenantRepo.ListByBusinessType(ctx, businessTypeID)
	if err != nil {
		// La entrada caducará por TTL; no se degrada la operación por esto.
		uc.audit.Record(ctx, "cache.invalidate_failed", map[string]any{
			"business_type_id": businessTypeID,
			"error":            err.Error(),
		})
		return
	}
	for _, t := range tenants {
		uc.cache.Invalidate(t.ID)
	}
}

func toVersionResponse(v *entity.BusinessVersion) *dto.VersionResponse {
	if v == nil {
		return nil
	}
	return &dto.VersionResponse{
		ID:             v.ID,
		BusinessTypeID: v.BusinessTypeID,
		VersionNumber:  v.VersionNumber,
		Name:           v.Name,
		Status:         v.Status,
		CreatedBy:      v.CreatedBy,
		PublishedBy:    v.PublishedBy,
		PublishedAt:    v.PublishedAt,
		EffectiveAt:    v.EffectiveAt,
		RetiredAt:      v.RetiredAt,
		CreatedAt:      v.CreatedAt,
		UpdatedAt:      v.UpdatedAt,
	}
}
