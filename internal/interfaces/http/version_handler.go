package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/gestion-pro/internal/application/dto"
	"github.com/jhoicas/gestion-pro/internal/application/versioning"
)

// VersionHandler maneja las peticiones HTTP del registro de versiones (admin).
type VersionHandler struct {
	uc *versioning.RegistryUseCase
}

// NewVersionHandler construye el handler.
func NewVersionHandler(uc *versioning.RegistryUseCase) *VersionHandler {
	return &VersionHandler{uc: uc}
}

// CreateDraft godoc
// @Summary      Crear versión draft de un tipo de negocio
// @Tags         business-version
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateVersionRequest  true  "Snapshot de módulos y features"
// @Success      201   {object}  dto.VersionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/business-version [post]
func (h *VersionHandler) CreateDraft(c *fiber.Ctx) error {
	var in dto.CreateVersionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.CreatedBy == "" {
		in.CreatedBy = GetUserID(c)
	}
	out, err := h.uc.CreateDraft(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Publish godoc
// @Summary      Publicar una versión draft
// @Description  Retira la versión publicada anterior, activa la nueva y actualiza el puntero del tipo de negocio en una sola transacción.
// @Tags         business-version
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        versionId  path  string  true  "ID de la versión"
// @Param        body  body  dto.PublishVersionRequest  false  "Quién publica"
// @Success      200   {object}  dto.VersionResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/business-version/{versionId}/publish [post]
func (h *VersionHandler) Publish(c *fiber.Ctx) error {
	versionID := c.Params("versionId")
	if versionID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "versionId es requerido"})
	}
	var in dto.PublishVersionRequest
	_ = c.BodyParser(&in) // el cuerpo es opcional
	if in.PublishedBy == "" {
		in.PublishedBy = GetUserID(c)
	}
	out, err := h.uc.Publish(c.Context(), versionID, in.PublishedBy)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Rollback godoc
// @Summary      Re-publicar una versión anterior
// @Description  Retira la versión activa y re-publica la versión target (retirada incluida). Genera historial por cada tenant no-pinned del tipo.
// @Tags         business-version
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RollbackRequest  true  "Tipo de negocio y número de versión target"
// @Success      200   {object}  dto.VersionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/business-version/rollback [post]
func (h *VersionHandler) Rollback(c *fiber.Ctx) error {
	var in dto.RollbackRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.PerformedBy == "" {
		in.PerformedBy = GetUserID(c)
	}
	out, err := h.uc.Rollback(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListByBusinessType godoc
// @Summary      Listar versiones de un tipo de negocio
// @Tags         business-version
// @Security     Bearer
// @Produce      json
// @Param        businessTypeId  path  string  true  "ID del tipo de negocio"
// @Success      200  {object}  dto.VersionListResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/business-version/business-type/{businessTypeId} [get]
func (h *VersionHandler) ListByBusinessType(c *fiber.Ctx) error {
	businessTypeID := c.Params("businessTypeId")
	if businessTypeID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "businessTypeId es requerido"})
	}
	out, err := h.uc.ListByBusinessType(c.Context(), businessTypeID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetPublished godoc
// @Summary      Obtener la versión publicada de un tipo de negocio
// @Tags         business-version
// @Security     Bearer
// @Produce      json
// @Param        businessTypeId  path  string  true  "ID del tipo de negocio"
// @Success      200  {object}  dto.VersionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/business-version/business-type/{businessTypeId}/published [get]
func (h *VersionHandler) GetPublished(c *fiber.Ctx) error {
	businessTypeID := c.Params("businessTypeId")
	if businessTypeID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "businessTypeId es requerido"})
	}
	out, err := h.uc.GetPublished(c.Context(), businessTypeID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// MigrateTenant godoc
// @Summary      Fijar (pin) un tenant a una versión publicada
// @Tags         business-version
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        tenantId  path  string  true  "ID del tenant"
// @Param        body  body  dto.MigrateTenantRequest  true  "Versión target"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/business-version/tenant/{tenantId}/migrate [post]
func (h *VersionHandler) MigrateTenant(c *fiber.Ctx) error {
	tenantID := c.Params("tenantId")
	var in dto.MigrateTenantRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.PerformedBy == "" {
		in.PerformedBy = GetUserID(c)
	}
	if err := h.uc.MigrateTenant(c.Context(), tenantID, in); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// UnpinTenant godoc
// @Summary      Soltar el pin de versión de un tenant
// @Tags         business-version
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        tenantId  path  string  true  "ID del tenant"
// @Param        body  body  dto.UnpinTenantRequest  false  "Quién ejecuta y por qué"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/business-version/tenant/{tenantId}/unpin [post]
func (h *VersionHandler) UnpinTenant(c *fiber.Ctx) error {
	tenantID := c.Params("tenantId")
	var in dto.UnpinTenantRequest
	_ = c.BodyParser(&in) // el cuerpo es opcional
	if in.PerformedBy == "" {
		in.PerformedBy = GetUserID(c)
	}
	if err := h.uc.UnpinTenant(c.Context(), tenantID, in); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// TenantHistory godoc
// @Summary      Historial de versiones de un tenant
// @Tags         business-version
// @Security     Bearer
// @Produce      json
// @Param        tenantId  path  string  true  "ID del tenant"
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200  {object}  dto.HistoryListResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/business-version/tenant/{tenantId}/history [get]
func (h *VersionHandler) TenantHistory(c *fiber.Ctx) error {
	tenantID := c.Params("tenantId")
	limit := c.QueryInt("limit", 20)
	offset := c.QueryInt("offset", 0)
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	out, err := h.uc.TenantHistory(c.Context(), tenantID, limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
