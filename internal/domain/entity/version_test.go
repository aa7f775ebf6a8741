package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/gestion-pro/internal/domain/entity"
)

func TestBusinessVersion_CanPublish(t *testing.T) {
	cases := []struct {
		status string
		want   bool
	}{
		{entity.VersionStatusDraft, true},
		{entity.VersionStatusPublished, false},
		{entity.VersionStatusRetired, false},
	}
	for _, tc := range cases {
		v := &entity.BusinessVersion{Status: tc.status}
		assert.Equal(t, tc.want, v.CanPublish(), "status=%s", tc.status)
	}
}

func TestBusinessVersion_CanRollbackTo(t *testing.T) {
	// retired no es terminal: el rollback puede re-publicarla
	retired := &entity.BusinessVersion{Status: entity.VersionStatusRetired}
	assert.True(t, retired.CanRollbackTo())

	// la publicada ya es la activa: rollback a ella es un no-op inválido
	published := &entity.BusinessVersion{Status: entity.VersionStatusPublished}
	assert.False(t, published.CanRollbackTo())
}

func TestFeatureMatrix_Lookups(t *testing.T) {
	m := &entity.FeatureMatrix{
		Modules: []entity.ResolvedModule{
			{Code: "bookings", Enabled: true},
			{Code: "billing", Enabled: false},
		},
		Features: []entity.ResolvedFeature{
			{Code: "bookings.online", Enabled: true},
			{Code: "billing.invoices", Enabled: false},
		},
	}
	assert.True(t, m.ModuleEnabled("bookings"))
	assert.False(t, m.ModuleEnabled("billing"))
	assert.False(t, m.ModuleEnabled("desconocido"), "módulo fuera de la matriz cuenta como deshabilitado")
	assert.True(t, m.FeatureEnabled("bookings.online"))
	assert.False(t, m.FeatureEnabled("desconocida"), "feature fuera de la matriz cuenta como deshabilitada")
}
