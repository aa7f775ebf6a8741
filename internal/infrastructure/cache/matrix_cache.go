package cache

import (
	"strings"
	"time"

	"github.com/jellydator/ttlcache/v3"
	"github.com/jhoicas/gestion-pro/internal/application/resolution"
	"github.com/jhoicas/gestion-pro/internal/application/versioning"
	"github.com/jhoicas/gestion-pro/internal/domain/entity"
)

// Asegura que MatrixCache implementa ambos puertos consumidores.
var (
	_ resolution.MatrixCache      = (*MatrixCache)(nil)
	_ versioning.CacheInvalidator = (*MatrixCache)(nil)
)

// keySep separa tenant de versionKey en la clave. El byte nulo no aparece en UUIDs
// ni en "legacy", así que el prefijo tenantID+keySep identifica sin ambigüedad todas
// las entradas de un tenant.
const keySep = "\x00"

// MatrixCache caché en memoria de matrices resueltas con TTL.
//
// La invalidación explícita (publish, rollback, migrate, unpin, override) es el
// mecanismo primario de frescura; el TTL solo acota la ventana de obsolescencia si
// una invalidación se pierde (p.ej. otra réplica del proceso).
type MatrixCache struct {
	c *ttlcache.Cache[string, *entity.FeatureMatrix]
}

// NewMatrixCache construye la caché y arranca la limpieza de entradas expiradas.
func NewMatrixCache(ttl time.Duration) *MatrixCache {
	c := ttlcache.New[string, *entity.FeatureMatrix](
		ttlcache.WithTTL[string, *entity.FeatureMatrix](ttl),
		ttlcache.WithDisableTouchOnHit[string, *entity.FeatureMatrix](),
	)
	go c.Start()
	return &MatrixCache{c: c}
}

// Get devuelve la matriz cacheada para (tenant, versionKey), o false en miss.
func (m *MatrixCache) Get(tenantID, versionKey string) (*entity.FeatureMatrix, bool) {
	item := m.c.Get(tenantID + keySep + versionKey)
	if item == nil {
		return nil, false
	}
	return item.Value(), true
}

// Set guarda la matriz con el TTL por defecto de la caché.
func (m *MatrixCache) Set(tenantID, versionKey string, matrix *entity.FeatureMatrix) {
	m.c.Set(tenantID+keySep+versionKey, matrix, ttlcache.DefaultTTL)
}

// Invalidate elimina todas las entradas del tenant (cualquier versionKey).
func (m *MatrixCache) Invalidate(tenantID string) {
	prefix := tenantID + keySep
	for _, key := range m.c.Keys() {
		if strings.HasPrefix(key, prefix) {
			m.c.Delete(key)
		}
	}
}

// InvalidateAll vacía la caché completa.
func (m *MatrixCache) InvalidateAll() {
	m.c.DeleteAll()
}

// Stop detiene la goroutine de limpieza. Llamar en el shutdown del proceso.
func (m *MatrixCache) Stop() {
	m.c.Stop()
}

// Len número de entradas vivas (para métricas y tests).
func (m *MatrixCache) Len() int {
	return m.c.Len()
}
