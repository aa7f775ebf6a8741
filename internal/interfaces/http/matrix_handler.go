package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/gestion-pro/internal/application/dto"
	"github.com/jhoicas/gestion-pro/internal/application/resolution"
)

// MatrixHandler maneja las peticiones HTTP de la matriz de features resuelta.
//
// El tenant se toma del token JWT; el header X-Tenant-ID lo puede sobrescribir
// (consultas administrativas sobre otro tenant).
type MatrixHandler struct {
	uc *resolution.ResolverUseCase
}

// NewMatrixHandler construye el handler.
func NewMatrixHandler(uc *resolution.ResolverUseCase) *MatrixHandler {
	return &MatrixHandler{uc: uc}
}

func (h *MatrixHandler) tenantID(c *fiber.Ctx) string {
	if v := c.Get("X-Tenant-ID"); v != "" {
		return v
	}
	return GetTenantID(c)
}

// Resolve godoc
// @Summary      Matriz de módulos/features efectiva del tenant
// @Tags         feature-matrix
// @Security     Bearer
// @Produce      json
// @Param        X-Tenant-ID  header  string  false  "Tenant a resolver (por defecto el del token)"
// @Success      200  {object}  dto.MatrixResponse
// @Router       /api/feature-matrix [get]
func (h *MatrixHandler) Resolve(c *fiber.Ctx) error {
	matrix, err := h.uc.Resolve(c.Context(), h.tenantID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resolution.ToMatrixResponse(matrix))
}

// CheckFeature godoc
// @Summary      Verificar si una feature está habilitada para el tenant
// @Tags         feature-matrix
// @Security     Bearer
// @Produce      json
// @Param        featureCode  path  string  true  "Código de la feature"
// @Success      200  {object}  dto.CheckResponse
// @Router       /api/feature-matrix/check/{featureCode} [get]
func (h *MatrixHandler) CheckFeature(c *fiber.Ctx) error {
	code := c.Params("featureCode")
	if code == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_CODE", Message: "featureCode es requerido"})
	}
	enabled, err := h.uc.CheckFeature(c.Context(), h.tenantID(c), code)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.CheckResponse{Code: code, Enabled: enabled})
}

// CheckModule godoc
// @Summary      Verificar si un módulo está habilitado para el tenant
// @Tags         feature-matrix
// @Security     Bearer
// @Produce      json
// @Param        moduleCode  path  string  true  "Código del módulo"
// @Success      200  {object}  dto.CheckResponse
// @Router       /api/feature-matrix/module/{moduleCode} [get]
func (h *MatrixHandler) CheckModule(c *fiber.Ctx) error {
	code := c.Params("moduleCode")
	if code == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_CODE", Message: "moduleCode es requerido"})
	}
	enabled, err := h.uc.CheckModule(c.Context(), h.tenantID(c), code)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.CheckResponse{Code: code, Enabled: enabled})
}

// Invalidate godoc
// @Summary      Invalidar la caché de matrices de un tenant
// @Tags         feature-matrix
// @Security     Bearer
// @Param        tenantId  path  string  true  "ID del tenant"
// @Success      204
// @Router       /api/feature-matrix/invalidate/{tenantId} [post]
func (h *MatrixHandler) Invalidate(c *fiber.Ctx) error {
	tenantID := c.Params("tenantId")
	if tenantID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "tenantId es requerido"})
	}
	h.uc.Invalidate(tenantID)
	return c.SendStatus(fiber.StatusNoContent)
}

// SetOverride godoc
// @Summary      Fijar un override de feature para un tenant
// @Description  La feature debe pertenecer al set de la versión resuelta y no ser required.
// @Tags         feature-matrix
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        tenantId  path  string  true  "ID del tenant"
// @Param        body  body  dto.OverrideRequest  true  "Feature y estado"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/feature-matrix/tenant/{tenantId}/override [put]
func (h *MatrixHandler) SetOverride(c *fiber.Ctx) error {
	tenantID := c.Params("tenantId")
	var in dto.OverrideRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.UpdatedBy == "" {
		in.UpdatedBy = GetUserID(c)
	}
	if err := h.uc.SetOverride(c.Context(), tenantID, in); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// RemoveOverride godoc
// @Summary      Eliminar un override de feature de un tenant
// @Tags         feature-matrix
// @Security     Bearer
// @Param        tenantId   path  string  true  "ID del tenant"
// @Param        featureId  path  string  true  "ID de la feature"
// @Success      204
// @Router       /api/feature-matrix/tenant/{tenantId}/override/{featureId} [delete]
func (h *MatrixHandler) RemoveOverride(c *fiber.Ctx) error {
	tenantID := c.Params("tenantId")
	featureID := c.Params("featureId")
	if err := h.uc.RemoveOverride(c.Context(), tenantID, featureID); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
