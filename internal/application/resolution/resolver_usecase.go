package resolution

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/gestion-pro/internal/application/dto"
	"github.com/jhoicas/gestion-pro/internal/domain"
	"github.com/jhoicas/gestion-pro/internal/domain/entity"
	"github.com/jhoicas/gestion-pro/internal/domain/repository"
	"github.com/jhoicas/gestion-pro/internal/domain/versioning"
)

// ResolverUseCase calcula la matriz de módulos/features efectiva de un tenant.
// Cadena de precedencia: pin del tenant -> versión activa del tipo -> mapeo legacy.
// Está en el hot path de requests: los fallos de resolución degradan a matriz vacía
// en lugar de responder 500.
type ResolverUseCase struct {
	tenantRepo   repository.TenantRepository
	btRepo       repository.BusinessTypeRepository
	versionRepo  repository.VersionRepository
	legacyRepo   repository.LegacyMappingRepository
	overrideRepo repository.OverrideRepository
	cache        MatrixCache
}

// NewResolverUseCase construye el resolver con sus puertos.
func NewResolverUseCase(
	tenantRepo repository.TenantRepository,
	btRepo repository.BusinessTypeRepository,
	versionRepo repository.VersionRepository,
	legacyRepo repository.LegacyMappingRepository,
	overrideRepo repository.OverrideRepository,
	cache MatrixCache,
) *ResolverUseCase {
	return &ResolverUseCase{
		tenantRepo:   tenantRepo,
		btRepo:       btRepo,
		versionRepo:  versionRepo,
		legacyRepo:   legacyRepo,
		overrideRepo: overrideRepo,
		cache:        cache,
	}
}

// Resolve devuelve la matriz efectiva del tenant.
//
// Algoritmo:
//  1. Versión efectiva: pin del tenant si existe, si no la activa del tipo.
//  2. Si la versión resuelta está publicada, se usa su snapshot (ordenado por
//     display_order). Si no hay versión o no está publicada, cae al mapeo legacy.
//  3. Overrides del tenant: solo se consultan para el set de feature IDs del
//     mapeo resuelto; required siempre gana.
//
// Un tenant desconocido o sin tipo de negocio devuelve matriz vacía (Source=none),
// nunca error: en el hot path "sin features" es más seguro que un 500.
func (uc *ResolverUseCase) Resolve(ctx context.Context, tenantID string) (*entity.FeatureMatrix, error) {
	if tenantID == "" {
		return emptyMatrix(tenantID), nil
	}
	tenant, err := uc.tenantRepo.GetByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if tenant == nil || tenant.BusinessTypeID == "" {
		return emptyMatrix(tenantID), nil
	}
	bt, err := uc.btRepo.GetByID(ctx, tenant.BusinessTypeID)
	if err != nil {
		return nil, err
	}
	if bt == nil {
		return emptyMatrix(tenantID), nil
	}

	// Versión efectiva por precedencia.
	var effectiveID *string
	if tenant.PinnedVersionID != nil {
		effectiveID = tenant.PinnedVersionID
	} else if bt.ActiveVersionID != nil {
		effectiveID = bt.ActiveVersionID
	}

	var version *entity.BusinessVersion
	if effectiveID != nil {
		version, err = uc.versionRepo.GetByID(ctx, *effectiveID)
		if err != nil {
			return nil, err
		}
	}

	versionKey := VersionKeyLegacy
	if version != nil && version.IsPublished() {
		versionKey = version.ID
	} else {
		// Versión inexistente o no publicada (ej. retirada a mitad de vuelo):
		// degradar a resolución legacy en lugar de fallar.
		version = nil
	}

	if cached, ok := uc.cache.Get(tenantID, versionKey); ok {
		hit := *cached
		hit.CacheHit = true
		return &hit, nil
	}

	var modInputs []versioning.ModuleInput
	var featInputs []versioning.FeatureInput
	source := entity.ResolutionLegacy
	versionID := ""
	versionNumber := 0
	if version != nil {
		modRows, err := uc.versionRepo.ListModuleMappings(ctx, version.ID)
		if err != nil {
			return nil, err
		}
		featRows, err := uc.versionRepo.ListFeatureMappings(ctx, version.ID)
		if err != nil {
			return nil, err
		}
		modInputs = versioning.ModulesFromVersion(modRows)
		featInputs = versioning.FeaturesFromVersion(featRows)
		source = entity.ResolutionVersioned
		versionID = version.ID
		versionNumber = version.VersionNumber
	} else {
		modRows, err := uc.legacyRepo.ListModules(ctx, tenant.BusinessTypeID)
		if err != nil {
			return nil, err
		}
		featRows, err := uc.legacyRepo.ListFeatures(ctx, tenant.BusinessTypeID)
		if err != nil {
			return nil, err
		}
		modInputs = versioning.ModulesFromLegacy(modRows)
		featInputs = versioning.FeaturesFromLegacy(featRows)
	}

	// Overrides SOLO para el set de features del mapeo resuelto: un override de una
	// feature que la versión no expone no puede re-activarla.
	overrides := map[string]bool{}
	if ids := versioning.FeatureIDs(featInputs); len(ids) > 0 {
		rows, err := uc.overrideRepo.ListByTenantAndFeatureIDs(ctx, tenantID, ids)
		if err != nil {
			return nil, err
		}
		for _, o := range rows {
			overrides[o.FeatureID] = o.Enabled
		}
	}

	matrix := &entity.FeatureMatrix{
		TenantID:       tenantID,
		BusinessTypeID: tenant.BusinessTypeID,
		Source:         source,
		VersionID:      versionID,
		VersionNumber:  versionNumber,
		Modules:        versioning.ResolveModules(modInputs),
		Features:       versioning.ResolveFeatures(featInputs, overrides),
		ResolvedAt:     time.Now(),
		CacheHit:       false,
	}
	uc.cache.Set(tenantID, versionKey, matrix)
	return matrix, nil
}

// CheckFeature informa si la feature con ese código está habilitada para el tenant.
func (uc *ResolverUseCase) CheckFeature(ctx context.Context, tenantID, featureCode string) (bool, error) {
	matrix, err := uc.Resolve(ctx, tenantID)
	if err != nil {
		return false, err
	}
	return matrix.FeatureEnabled(featureCode), nil
}

// CheckModule informa si el módulo con ese código está habilitado para el tenant.
func (uc *ResolverUseCase) CheckModule(ctx context.Context, tenantID, moduleCode string) (bool, error) {
	matrix, err := uc.Resolve(ctx, tenantID)
	if err != nil {
		return false, err
	}
	return matrix.ModuleEnabled(moduleCode), nil
}

// Invalidate descarta las entradas cacheadas del tenant (cache-bust administrativo).
func (uc *ResolverUseCase) Invalidate(tenantID string) {
	uc.cache.Invalidate(tenantID)
}

// SetOverride fija un override de feature para el tenant e invalida su caché.
// La feature debe pertenecer al set de la versión resuelta (domain.ErrNotFound si no)
// y no ser required (domain.ErrConflict: el override no tendría efecto).
func (uc *ResolverUseCase) SetOverride(ctx context.Context, tenantID string, in dto.OverrideRequest) error {
	if tenantID == "" || in.FeatureID == "" {
		return domain.ErrInvalidInput
	}
	tenant, err := uc.tenantRepo.GetByID(ctx, tenantID)
	if err != nil {
		return err
	}
	if tenant == nil {
		return domain.ErrNotFound
	}
	matrix, err := uc.Resolve(ctx, tenantID)
	if err != nil {
		return err
	}
	var found *entity.ResolvedFeature
	for i := range matrix.Features {
		if matrix.Features[i].FeatureID == in.FeatureID {
			found = &matrix.Features[i]
			break
		}
	}
	if found == nil {
		return domain.ErrNotFound
	}
	if found.IsRequired {
		return domain.ErrConflict
	}

	now := time.Now()
	if err := uc.overrideRepo.Upsert(ctx, &entity.TenantFeatureOverride{
		ID:        uuid.New().String(),
		TenantID:  tenantID,
		FeatureID: in.FeatureID,
		Enabled:   in.Enabled,
		UpdatedBy: in.UpdatedBy,
		CreatedAt: now,
		UpdatedAt: now,
	}); err != nil {
		return err
	}
	uc.cache.Invalidate(tenantID)
	return nil
}

// RemoveOverride elimina el override (si existe) e invalida la caché del tenant.
func (uc *ResolverUseCase) RemoveOverride(ctx context.Context, tenantID, featureID string) error {
	if tenantID == "" || featureID == "" {
		return domain.ErrInvalidInput
	}
	if err := uc.overrideRepo.Delete(ctx, tenantID, featureID); err != nil {
		return err
	}
	uc.cache.Invalidate(tenantID)
	return nil
}

func emptyMatrix(tenantID string) *entity.FeatureMatrix {
	return &entity.FeatureMatrix{
		TenantID:   tenantID,
		Source:     entity.ResolutionNone,
		Modules:    []entity.ResolvedModule{},
		Features:   []entity.ResolvedFeature{},
		ResolvedAt: time.Now(),
	}
}

// ToMatrixResponse convierte la matriz de dominio al DTO de salida HTTP.
func ToMatrixResponse(m *entity.FeatureMatrix) *dto.MatrixResponse {
	if m == nil {
		return nil
	}
	mods := make([]dto.ResolvedModuleDTO, 0, len(m.Modules))
	for _, md := range m.Modules {
		mods = append(mods, dto.ResolvedModuleDTO{
			ModuleID:     md.ModuleID,
			Code:         md.Code,
			Name:         md.Name,
			IsRequired:   md.IsRequired,
			Enabled:      md.Enabled,
			DisplayOrder: md.DisplayOrder,
		})
	}
	feats := make([]dto.ResolvedFeatureDTO, 0, len(m.Features))
	for _, f := range m.Features {
		feats = append(feats, dto.ResolvedFeatureDTO{
			FeatureID:    f.FeatureID,
			Code:         f.Code,
			Name:         f.Name,
			ModuleCode:   f.ModuleCode,
			IsRequired:   f.IsRequired,
			Enabled:      f.Enabled,
			Source:       f.Source,
			DisplayOrder: f.DisplayOrder,
		})
	}
	return &dto.MatrixResponse{
		TenantID:       m.TenantID,
		BusinessTypeID: m.BusinessTypeID,
		Source:         m.Source,
		VersionID:      m.VersionID,
		VersionNumber:  m.VersionNumber,
		Modules:        mods,
		Features:       feats,
		ResolvedAt:     m.ResolvedAt,
		CacheHit:       m.CacheHit,
	}
}
