package cache_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/gestion-pro/internal/domain/entity"
	"github.com/jhoicas/gestion-pro/internal/infrastructure/cache"
)

func matrix(tenantID, versionID string) *entity.FeatureMatrix {
	return &entity.FeatureMatrix{TenantID: tenantID, VersionID: versionID, ResolvedAt: time.Now()}
}

func TestMatrixCache_SetGet(t *testing.T) {
	c := cache.NewMatrixCache(time.Minute)
	defer c.Stop()

	_, ok := c.Get("t1", "v1")
	assert.False(t, ok, "caché vacía debe dar miss")

	c.Set("t1", "v1", matrix("t1", "v1"))
	got, ok := c.Get("t1", "v1")
	require.True(t, ok)
	assert.Equal(t, "t1", got.TenantID)
}

func TestMatrixCache_ClavePorVersion(t *testing.T) {
	c := cache.NewMatrixCache(time.Minute)
	defer c.Stop()

	c.Set("t1", "v1", matrix("t1", "v1"))

	// La misma entrada no responde bajo otra versionKey: tras un cambio de
	// versión efectiva la entrada vieja queda inalcanzable.
	_, ok := c.Get("t1", "v2")
	assert.False(t, ok)
	_, ok = c.Get("t1", "legacy")
	assert.False(t, ok)
}

func TestMatrixCache_InvalidateEliminaTodasLasEntradasDelTenant(t *testing.T) {
	c := cache.NewMatrixCache(time.Minute)
	defer c.Stop()

	c.Set("t1", "v1", matrix("t1", "v1"))
	c.Set("t1", "legacy", matrix("t1", ""))
	c.Set("t2", "v1", matrix("t2", "v1"))

	c.Invalidate("t1")

	_, ok := c.Get("t1", "v1")
	assert.False(t, ok)
	_, ok = c.Get("t1", "legacy")
	assert.False(t, ok)
	_, ok = c.Get("t2", "v1")
	assert.True(t, ok, "los demás tenants no se ven afectados")
}

func TestMatrixCache_InvalidateNoConfundePrefijos(t *testing.T) {
	c := cache.NewMatrixCache(time.Minute)
	defer c.Stop()

	// "t1" es prefijo textual de "t10": el separador evita el falso positivo.
	c.Set("t1", "v1", matrix("t1", "v1"))
	c.Set("t10", "v1", matrix("t10", "v1"))

	c.Invalidate("t1")

	_, ok := c.Get("t10", "v1")
	assert.True(t, ok, "invalidar t1 no debe tocar t10")
}

func TestMatrixCache_InvalidateAll(t *testing.T) {
	c := cache.NewMatrixCache(time.Minute)
	defer c.Stop()

	c.Set("t1", "v1", matrix("t1", "v1"))
	c.Set("t2", "v1", matrix("t2", "v1"))

	c.InvalidateAll()
	assert.Equal(t, 0, c.Len())
}

func TestMatrixCache_TTLExpiraEntradas(t *testing.T) {
	c := cache.NewMatrixCache(20 * time.Millisecond)
	defer c.Stop()

	c.Set("t1", "v1", matrix("t1", "v1"))
	time.Sleep(60 * time.Millisecond)

	_, ok := c.Get("t1", "v1")
	assert.False(t, ok, "la entrada debe expirar pasado el TTL")
}
