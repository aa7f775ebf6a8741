package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/gestion-pro/internal/application/dto"
)

// featureChecker es el contrato mínimo que necesita el middleware para verificar
// features. Lo implementa *resolution.ResolverUseCase; la interfaz evita el import circular.
type featureChecker interface {
	CheckFeature(ctx context.Context, tenantID, featureCode string) (bool, error)
}

// RequireFeature devuelve un middleware Fiber que verifica si el tenant del token JWT
// tiene la feature habilitada en su matriz resuelta. Debe usarse DESPUÉS de
// AuthMiddleware (necesita LocalTenantID).
//
// Comportamiento:
//   - 403 Forbidden → feature deshabilitada para el tenant.
//   - 503 Service Unavailable → fallo de infraestructura al resolver la matriz.
//   - Si no hay tenant_id en el contexto, responde 401 (el AuthMiddleware debería haberlo puesto).
func RequireFeature(featureCode string, checker featureChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tenantID := GetTenantID(c)
		if tenantID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "UNAUTHORIZED",
				Message: "tenant_id no encontrado en el token",
			})
		}

		enabled, err := checker.CheckFeature(c.Context(), tenantID, featureCode)
		if err != nil {
			// Fallo de infraestructura: no bloquear al usuario por un error de DB.
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Code:    "FEATURE_CHECK_FAILED",
				Message: "no se pudo verificar la feature, intente más tarde",
			})
		}

		if !enabled {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "FEATURE_DISABLED",
				Message: "la feature '" + featureCode + "' no está habilitada para este tenant",
			})
		}

		return c.Next()
	}
}
