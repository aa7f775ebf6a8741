package versioning_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/gestion-pro/internal/application/dto"
	"github.com/jhoicas/gestion-pro/internal/application/versioning"
	"github.com/jhoicas/gestion-pro/internal/domain"
	"github.com/jhoicas/gestion-pro/internal/domain/entity"
	"github.com/jhoicas/gestion-pro/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria (sin DB): todos los repos comparten el mismo store.
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	businessTypes map[string]entity.BusinessType
	versions      map[string]entity.BusinessVersion
	modules       map[string][]entity.VersionModuleMapping
	features      map[string][]entity.VersionFeatureMapping
	tenants       map[string]entity.Tenant
	history       []entity.TenantVersionHistory
}

func newMemStore() *memStore {
	return &memStore{
		businessTypes: map[string]entity.BusinessType{},
		versions:      map[string]entity.BusinessVersion{},
		modules:       map[string][]entity.VersionModuleMapping{},
		features:      map[string][]entity.VersionFeatureMapping{},
		tenants:       map[string]entity.Tenant{},
	}
}

type fakeVersionRepo struct{ s *memStore }

func (r fakeVersionRepo) Create(_ context.Context, v *entity.BusinessVersion, mods []entity.VersionModuleMapping, feats []entity.VersionFeatureMapping) error {
	r.s.versions[v.ID] = *v
	r.s.modules[v.ID] = mods
	r.s.features[v.ID] = feats
	return nil
}

func (r fakeVersionRepo) GetByID(_ context.Context, id string) (*entity.BusinessVersion, error) {
	if v, ok := r.s.versions[id]; ok {
		cp := v
		return &cp, nil
	}
	return nil, nil
}

func (r fakeVersionRepo) GetByNumber(_ context.Context, btID string, n int) (*entity.BusinessVersion, error) {
	for _, v := range r.s.versions {
		if v.BusinessTypeID == btID && v.VersionNumber == n {
			cp := v
			return &cp, nil
		}
	}
	return nil, nil
}

func (r fakeVersionRepo) GetPublished(_ context.Context, btID string) (*entity.BusinessVersion, error) {
	for _, v := range r.s.versions {
		if v.BusinessTypeID == btID && v.Status == entity.VersionStatusPublished {
			cp := v
			return &cp, nil
		}
	}
	return nil, nil
}

func (r fakeVersionRepo) MaxVersionNumber(_ context.Context, btID string) (int, error) {
	max := 0
	for _, v := range r.s.versions {
		if v.BusinessTypeID == btID && v.VersionNumber > max {
			max = v.VersionNumber
		}
	}
	return max, nil
}

func (r fakeVersionRepo) ListByBusinessType(_ context.Context, btID string) ([]*entity.BusinessVersion, error) {
	var out []*entity.BusinessVersion
	for _, v := range r.s.versions {
		if v.BusinessTypeID == btID {
			cp := v
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r fakeVersionRepo) UpdateStatus(_ context.Context, v *entity.BusinessVersion) error {
	if _, ok := r.s.versions[v.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.versions[v.ID] = *v
	return nil
}

func (r fakeVersionRepo) ListModuleMappings(_ context.Context, versionID string) ([]entity.VersionModuleMapping, error) {
	return r.s.modules[versionID], nil
}

func (r fakeVersionRepo) ListFeatureMappings(_ context.Context, versionID string) ([]entity.VersionFeatureMapping, error) {
	return r.s.features[versionID], nil
}

type fakeBTRepo struct{ s *memStore }

func (r fakeBTRepo) Create(_ context.Context, bt *entity.BusinessType) error {
	r.s.businessTypes[bt.ID] = *bt
	return nil
}

func (r fakeBTRepo) GetByID(_ context.Context, id string) (*entity.BusinessType, error) {
	if bt, ok := r.s.businessTypes[id]; ok {
		cp := bt
		return &cp, nil
	}
	return nil, nil
}

func (r fakeBTRepo) GetByCode(_ context.Context, code string) (*entity.BusinessType, error) {
	for _, bt := range r.s.businessTypes {
		if bt.Code == code {
			cp := bt
			return &cp, nil
		}
	}
	return nil, nil
}

func (r fakeBTRepo) List(_ context.Context, _, _ int) ([]*entity.BusinessType, error) { return nil, nil }

func (r fakeBTRepo) SetActiveVersion(_ context.Context, id string, versionID *string) error {
	bt, ok := r.s.businessTypes[id]
	if !ok {
		return domain.ErrNotFound
	}
	bt.ActiveVersionID = versionID
	r.s.businessTypes[id] = bt
	return nil
}

type fakeTenantRepo struct{ s *memStore }

func (r fakeTenantRepo) Create(_ context.Context, t *entity.Tenant) error {
	r.s.tenants[t.ID] = *t
	return nil
}

func (r fakeTenantRepo) GetByID(_ context.Context, id string) (*entity.Tenant, error) {
	if t, ok := r.s.tenants[id]; ok {
		cp := t
		return &cp, nil
	}
	return nil, nil
}

func (r fakeTenantRepo) List(_ context.Context, _, _ int) ([]*entity.Tenant, error) { return nil, nil }

func (r fakeTenantRepo) ListByBusinessType(_ context.Context, btID string) ([]*entity.Tenant, error) {
	var out []*entity.Tenant
	for _, t := range r.s.tenants {
		if t.BusinessTypeID == btID {
			cp := t
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r fakeTenantRepo) SetPinnedVersion(_ context.Context, id string, versionID *string) error {
	t, ok := r.s.tenants[id]
	if !ok {
		return domain.ErrNotFound
	}
	t.PinnedVersionID = versionID
	r.s.tenants[id] = t
	return nil
}

type fakeHistoryRepo struct{ s *memStore }

func (r fakeHistoryRepo) Create(_ context.Context, h *entity.TenantVersionHistory) error {
	r.s.history = append(r.s.history, *h)
	return nil
}

func (r fakeHistoryRepo) ListByTenant(_ context.Context, tenantID string, _, _ int) ([]*entity.TenantVersionHistory, error) {
	var out []*entity.TenantVersionHistory
	for i := range r.s.history {
		if r.s.history[i].TenantID == tenantID {
			cp := r.s.history[i]
			out = append(out, &cp)
		}
	}
	return out, nil
}

// fakeTxRunner ejecuta el callback directamente sobre el store compartido.
type fakeTxRunner struct{ s *memStore }

func (r fakeTxRunner) Run(_ context.Context, fn func(
	repository.VersionRepository,
	repository.BusinessTypeRepository,
	repository.TenantRepository,
	repository.HistoryRepository,
) error) error {
	return fn(fakeVersionRepo{r.s}, fakeBTRepo{r.s}, fakeTenantRepo{r.s}, fakeHistoryRepo{r.s})
}

// fakeInvalidator registra los tenants invalidados.
type fakeInvalidator struct{ invalidated []string }

func (f *fakeInvalidator) Invalidate(tenantID string) {
	f.invalidated = append(f.invalidated, tenantID)
}

// fakeAudit registra los eventos emitidos.
type fakeAudit struct{ events []string }

func (f *fakeAudit) Record(_ context.Context, event string, _ map[string]any) {
	f.events = append(f.events, event)
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de escenario
// ──────────────────────────────────────────────────────────────────────────────

func setup() (*memStore, *versioning.RegistryUseCase, *fakeInvalidator, *fakeAudit) {
	s := newMemStore()
	inv := &fakeInvalidator{}
	aud := &fakeAudit{}
	uc := versioning.NewRegistryUseCase(
		fakeTxRunner{s}, fakeVersionRepo{s}, fakeBTRepo{s}, fakeTenantRepo{s}, fakeHistoryRepo{s}, inv, aud,
	)
	return s, uc, inv, aud
}

func seedBusinessType(s *memStore, id, code string) {
	s.businessTypes[id] = entity.BusinessType{ID: id, Code: code, Name: code, Status: "active"}
}

func seedTenant(s *memStore, id, btID string, pinned *string) {
	s.tenants[id] = entity.Tenant{ID: id, BusinessTypeID: btID, Name: id, Status: "active", PinnedVersionID: pinned}
}

func createAndPublish(t *testing.T, uc *versioning.RegistryUseCase, btID, name string) *dto.VersionResponse {
	t.Helper()
	draft, err := uc.CreateDraft(context.Background(), dto.CreateVersionRequest{
		BusinessTypeID: btID,
		Name:           name,
		CreatedBy:      "test",
	})
	require.NoError(t, err)
	published, err := uc.Publish(context.Background(), draft.ID, "test")
	require.NoError(t, err)
	return published
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateDraft_AsignaNumeroMonotonico(t *testing.T) {
	s, uc, _, _ := setup()
	seedBusinessType(s, "bt1", "clinic")

	v1, err := uc.CreateDraft(context.Background(), dto.CreateVersionRequest{BusinessTypeID: "bt1", Name: "V1"})
	require.NoError(t, err)
	v2, err := uc.CreateDraft(context.Background(), dto.CreateVersionRequest{BusinessTypeID: "bt1", Name: "V2"})
	require.NoError(t, err)

	assert.Equal(t, 1, v1.VersionNumber)
	assert.Equal(t, 2, v2.VersionNumber)
	assert.Equal(t, entity.VersionStatusDraft, v1.Status)
}

func TestCreateDraft_TipoInexistente_Retorna404(t *testing.T) {
	_, uc, _, _ := setup()
	_, err := uc.CreateDraft(context.Background(), dto.CreateVersionRequest{BusinessTypeID: "nope", Name: "V1"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPublish_RetiraLaAnteriorYActivaLaNueva(t *testing.T) {
	s, uc, _, _ := setup()
	seedBusinessType(s, "bt1", "clinic")

	v1 := createAndPublish(t, uc, "bt1", "V1")
	v2 := createAndPublish(t, uc, "bt1", "V2")

	// Invariante: a lo sumo una publicada por tipo
	published := 0
	for _, v := range s.versions {
		if v.Status == entity.VersionStatusPublished {
			published++
		}
	}
	assert.Equal(t, 1, published, "debe haber exactamente una versión publicada")
	assert.Equal(t, entity.VersionStatusRetired, s.versions[v1.ID].Status, "la V1 debe quedar retirada")
	assert.Equal(t, entity.VersionStatusPublished, s.versions[v2.ID].Status)
	require.NotNil(t, s.businessTypes["bt1"].ActiveVersionID)
	assert.Equal(t, v2.ID, *s.businessTypes["bt1"].ActiveVersionID, "el puntero del tipo debe apuntar a la V2")
}

func TestPublish_NoDraft_RetornaConflicto(t *testing.T) {
	s, uc, _, _ := setup()
	seedBusinessType(s, "bt1", "clinic")
	v1 := createAndPublish(t, uc, "bt1", "V1")

	// Publicar de nuevo la ya publicada
	_, err := uc.Publish(context.Background(), v1.ID, "test")
	assert.ErrorIs(t, err, domain.ErrVersionNotDraft)
}

func TestPublish_InvalidaCacheDeTodosLosTenantsDelTipo(t *testing.T) {
	s, uc, inv, _ := setup()
	seedBusinessType(s, "bt1", "clinic")
	seedTenant(s, "t1", "bt1", nil)
	seedTenant(s, "t2", "bt1", nil)
	seedBusinessType(s, "bt2", "salon")
	seedTenant(s, "t3", "bt2", nil)

	createAndPublish(t, uc, "bt1", "V1")

	assert.ElementsMatch(t, []string{"t1", "t2"}, inv.invalidated,
		"solo los tenants del tipo publicado deben invalidarse")
}

func TestRollback_RepublicaLaTargetYEscribeHistorial(t *testing.T) {
	s, uc, inv, _ := setup()
	seedBusinessType(s, "bt1", "clinic")
	v1 := createAndPublish(t, uc, "bt1", "V1")
	v2 := createAndPublish(t, uc, "bt1", "V2")

	pinnedID := v2.ID
	seedTenant(s, "t1", "bt1", nil)
	seedTenant(s, "t2", "bt1", nil)
	seedTenant(s, "t-pinned", "bt1", &pinnedID)
	inv.invalidated = nil

	out, err := uc.Rollback(context.Background(), dto.RollbackRequest{
		BusinessTypeID:      "bt1",
		TargetVersionNumber: 1,
		PerformedBy:         "ops",
		Reason:              "bug en V2",
	})
	require.NoError(t, err)

	assert.Equal(t, v1.ID, out.ID)
	assert.Equal(t, entity.VersionStatusPublished, s.versions[v1.ID].Status, "la V1 retirada debe re-publicarse")
	assert.Equal(t, entity.VersionStatusRetired, s.versions[v2.ID].Status)

	// Historial: un registro por tenant NO pinned
	require.Len(t, s.history, 2, "solo los tenants no pinned generan historial")
	for _, h := range s.history {
		assert.Equal(t, entity.HistoryActionRollback, h.Action)
		require.NotNil(t, h.FromVersionNumber)
		require.NotNil(t, h.ToVersionNumber)
		assert.Equal(t, 2, *h.FromVersionNumber)
		assert.Equal(t, 1, *h.ToVersionNumber)
		assert.NotEqual(t, "t-pinned", h.TenantID)
	}
	assert.ElementsMatch(t, []string{"t1", "t2", "t-pinned"}, inv.invalidated,
		"la caché se invalida por tenant del tipo")
}

func TestRollback_ALaVersionActiva_RetornaConflicto(t *testing.T) {
	s, uc, _, _ := setup()
	seedBusinessType(s, "bt1", "clinic")
	createAndPublish(t, uc, "bt1", "V1")

	_, err := uc.Rollback(context.Background(), dto.RollbackRequest{
		BusinessTypeID:      "bt1",
		TargetVersionNumber: 1,
	})
	assert.ErrorIs(t, err, domain.ErrConflict, "rollback a la versión ya activa es un conflicto")
}

func TestRollback_NumeroInexistente_Retorna404(t *testing.T) {
	s, uc, _, _ := setup()
	seedBusinessType(s, "bt1", "clinic")
	createAndPublish(t, uc, "bt1", "V1")

	_, err := uc.Rollback(context.Background(), dto.RollbackRequest{
		BusinessTypeID:      "bt1",
		TargetVersionNumber: 99,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMigrateTenant_FijaPinYEscribeHistorial(t *testing.T) {
	s, uc, inv, _ := setup()
	seedBusinessType(s, "bt1", "clinic")
	v1 := createAndPublish(t, uc, "bt1", "V1")
	v2 := createAndPublish(t, uc, "bt1", "V2")
	seedTenant(s, "t1", "bt1", nil)
	inv.invalidated = nil

	err := uc.MigrateTenant(context.Background(), "t1", dto.MigrateTenantRequest{
		TargetVersionID: v2.ID,
		PerformedBy:     "ops",
	})
	require.NoError(t, err)

	require.NotNil(t, s.tenants["t1"].PinnedVersionID)
	assert.Equal(t, v2.ID, *s.tenants["t1"].PinnedVersionID)
	require.Len(t, s.history, 1)
	assert.Equal(t, entity.HistoryActionMigrate, s.history[0].Action)
	assert.Equal(t, []string{"t1"}, inv.invalidated, "solo se invalida el tenant migrado")

	// Pin a una versión retirada debe fallar
	err = uc.MigrateTenant(context.Background(), "t1", dto.MigrateTenantRequest{TargetVersionID: v1.ID})
	assert.ErrorIs(t, err, domain.ErrVersionNotPublished)
}

func TestMigrateTenant_VersionDeOtroTipo_RetornaMismatch(t *testing.T) {
	s, uc, _, _ := setup()
	seedBusinessType(s, "bt1", "clinic")
	seedBusinessType(s, "bt2", "salon")
	vOther := createAndPublish(t, uc, "bt2", "V1")
	seedTenant(s, "t1", "bt1", nil)

	err := uc.MigrateTenant(context.Background(), "t1", dto.MigrateTenantRequest{TargetVersionID: vOther.ID})
	assert.ErrorIs(t, err, domain.ErrVersionMismatch)
}

func TestUnpinTenant_LimpiaPinYEscribeHistorial(t *testing.T) {
	s, uc, inv, _ := setup()
	seedBusinessType(s, "bt1", "clinic")
	v1 := createAndPublish(t, uc, "bt1", "V1")
	pinned := v1.ID
	seedTenant(s, "t1", "bt1", &pinned)
	inv.invalidated = nil

	err := uc.UnpinTenant(context.Background(), "t1", dto.UnpinTenantRequest{PerformedBy: "ops"})
	require.NoError(t, err)

	assert.Nil(t, s.tenants["t1"].PinnedVersionID)
	require.Len(t, s.history, 1)
	assert.Equal(t, entity.HistoryActionUnpin, s.history[0].Action)
	assert.Equal(t, []string{"t1"}, inv.invalidated)

	// Segundo unpin: ya no hay pin que soltar
	err = uc.UnpinTenant(context.Background(), "t1", dto.UnpinTenantRequest{})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestGetPublished_SinPublicada_Retorna404(t *testing.T) {
	s, uc, _, _ := setup()
	seedBusinessType(s, "bt1", "clinic")

	_, err := uc.GetPublished(context.Background(), "bt1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAudit_EmiteEventosPorOperacion(t *testing.T) {
	s, uc, _, aud := setup()
	seedBusinessType(s, "bt1", "clinic")
	createAndPublish(t, uc, "bt1", "V1")

	assert.Contains(t, aud.events, "version.draft_created")
	assert.Contains(t, aud.events, "version.published")
}
