package versioning_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/gestion-pro/internal/domain/entity"
	"github.com/jhoicas/gestion-pro/internal/domain/versioning"
)

func TestResolveModules_RequiredFuerzaEnabled(t *testing.T) {
	mods := []versioning.ModuleInput{
		{ModuleID: "m1", Code: "bookings", IsRequired: true, DefaultEnabled: false, DisplayOrder: 0},
		{ModuleID: "m2", Code: "billing", IsRequired: false, DefaultEnabled: false, DisplayOrder: 1},
	}
	out := versioning.ResolveModules(mods)
	require.Len(t, out, 2)

	assert.True(t, out[0].Enabled, "módulo required debe quedar enabled aunque su default sea false")
	assert.False(t, out[1].Enabled, "módulo opcional conserva su default")
}

func TestResolveModules_OrdenaPorDisplayOrder(t *testing.T) {
	mods := []versioning.ModuleInput{
		{ModuleID: "m3", Code: "c", DisplayOrder: 2},
		{ModuleID: "m1", Code: "a", DisplayOrder: 0},
		{ModuleID: "m2", Code: "b", DisplayOrder: 1},
	}
	out := versioning.ResolveModules(mods)
	require.Len(t, out, 3)
	assert.Equal(t, "a", out[0].Code)
	assert.Equal(t, "b", out[1].Code)
	assert.Equal(t, "c", out[2].Code)
}

func TestResolveFeatures_RequiredIgnoraOverride(t *testing.T) {
	feats := []versioning.FeatureInput{
		{FeatureID: "f1", Code: "bookings.online", IsRequired: true, DefaultEnabled: true},
	}
	// Intento de apagar una feature required vía override
	out := versioning.ResolveFeatures(feats, map[string]bool{"f1": false})
	require.Len(t, out, 1)

	assert.True(t, out[0].Enabled, "feature required no puede apagarse por override")
	assert.Equal(t, entity.SourceBusinessDefault, out[0].Source,
		"el source de una required siempre es business_default")
}

func TestResolveFeatures_OverrideCambiaEnabledYSource(t *testing.T) {
	feats := []versioning.FeatureInput{
		{FeatureID: "f1", Code: "exams.grading", IsRequired: false, DefaultEnabled: true},
		{FeatureID: "f2", Code: "exams.reports", IsRequired: false, DefaultEnabled: false},
	}
	out := versioning.ResolveFeatures(feats, map[string]bool{
		"f1": false, // apagar una que venía encendida
		"f2": true,  // encender una que venía apagada
	})
	require.Len(t, out, 2)

	assert.False(t, out[0].Enabled)
	assert.Equal(t, entity.SourceTenantOverride, out[0].Source)
	assert.True(t, out[1].Enabled)
	assert.Equal(t, entity.SourceTenantOverride, out[1].Source)
}

func TestResolveFeatures_SinOverrideUsaDefault(t *testing.T) {
	feats := []versioning.FeatureInput{
		{FeatureID: "f1", Code: "a", DefaultEnabled: true},
		{FeatureID: "f2", Code: "b", DefaultEnabled: false},
	}
	out := versioning.ResolveFeatures(feats, nil)
	require.Len(t, out, 2)

	assert.True(t, out[0].Enabled)
	assert.Equal(t, entity.SourceBusinessDefault, out[0].Source)
	assert.False(t, out[1].Enabled)
	assert.Equal(t, entity.SourceBusinessDefault, out[1].Source)
}

func TestFeatureIDs_DevuelveSetCompleto(t *testing.T) {
	feats := []versioning.FeatureInput{
		{FeatureID: "f1"}, {FeatureID: "f2"}, {FeatureID: "f3"},
	}
	assert.Equal(t, []string{"f1", "f2", "f3"}, versioning.FeatureIDs(feats))
}

func TestAdaptadores_ConservanCampos(t *testing.T) {
	vf := []entity.VersionFeatureMapping{{
		FeatureID: "f1", FeatureCode: "bookings.online", FeatureName: "Reservas en línea",
		ModuleCode: "bookings", IsRequired: true, DefaultEnabled: true, DisplayOrder: 3,
	}}
	got := versioning.FeaturesFromVersion(vf)
	require.Len(t, got, 1)
	assert.Equal(t, "bookings.online", got[0].Code)
	assert.Equal(t, "bookings", got[0].ModuleCode)
	assert.True(t, got[0].IsRequired)
	assert.Equal(t, 3, got[0].DisplayOrder)

	lf := []entity.BusinessFeatureMap{{
		FeatureID: "f2", FeatureCode: "legacy.feature", FeatureName: "Legacy",
		IsRequired: false, DefaultEnabled: false, DisplayOrder: 1,
	}}
	got2 := versioning.FeaturesFromLegacy(lf)
	require.Len(t, got2, 1)
	assert.Equal(t, "legacy.feature", got2[0].Code)
	assert.False(t, got2[0].DefaultEnabled)
}
