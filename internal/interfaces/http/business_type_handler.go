package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/gestion-pro/internal/application/dto"
	"github.com/jhoicas/gestion-pro/internal/application/usecase"
	"github.com/jhoicas/gestion-pro/internal/domain"
)

// BusinessTypeHandler maneja las peticiones HTTP para BusinessType.
type BusinessTypeHandler struct {
	uc *usecase.BusinessTypeUseCase
}

// NewBusinessTypeHandler construye el handler.
func NewBusinessTypeHandler(uc *usecase.BusinessTypeUseCase) *BusinessTypeHandler {
	return &BusinessTypeHandler{uc: uc}
}

// Create godoc
// @Summary      Crear tipo de negocio
// @Tags         business-types
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateBusinessTypeRequest  true  "Datos del tipo de negocio"
// @Success      201   {object}  dto.BusinessTypeResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/business-types [post]
func (h *BusinessTypeHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateBusinessTypeRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Code == "" || in.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "code y name son requeridos"})
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		if err == domain.ErrDuplicate {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "code ya existe"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener tipo de negocio por ID
// @Tags         business-types
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del tipo de negocio"
// @Success      200  {object}  dto.BusinessTypeResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/business-types/{id} [get]
func (h *BusinessTypeHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	out, err := h.uc.GetByID(c.Context(), id)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "tipo de negocio no encontrado"})
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar tipos de negocio
// @Tags         business-types
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"   default(20)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200     {object}  dto.BusinessTypeListResponse
// @Router       /api/business-types [get]
func (h *BusinessTypeHandler) List(c *fiber.Ctx) error {
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
	out, err := h.uc.List(c.Context(), limit, offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
