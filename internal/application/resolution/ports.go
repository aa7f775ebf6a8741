package resolution

import "github.com/jhoicas/gestion-pro/internal/domain/entity"

// MatrixCache puerto de la caché de matrices resueltas. Se inyecta (no es un
// singleton a nivel de módulo) para que los tests sustituyan un fake determinista.
//
// La clave combina tenant y versionKey (ID de la versión efectiva, o "legacy"):
// al cambiar la versión efectiva de un tenant la entrada vieja queda inalcanzable,
// no solo obsoleta. El TTL acota la obsolescencia de cualquier invalidación perdida.
//
// Contrato de fallo: las implementaciones tratan cualquier fallo interno como miss
// (Get devuelve false) — una caída de la caché nunca tumba la resolución.
type MatrixCache interface {
	Get(tenantID, versionKey string) (*entity.FeatureMatrix, bool)
	Set(tenantID, versionKey string, matrix *entity.FeatureMatrix)
	Invalidate(tenantID string)
	InvalidateAll()
}

// VersionKeyLegacy clave de versión usada cuando el tenant resuelve por el mapeo
// pre-versionado.
const VersionKeyLegacy = "legacy"
