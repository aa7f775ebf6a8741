package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/gestion-pro/internal/application/dto"
	"github.com/jhoicas/gestion-pro/internal/domain"
)

// respondError mapea errores de dominio a respuestas HTTP de forma uniforme:
//
//	ErrNotFound                       -> 404 NOT_FOUND
//	ErrInvalidInput                   -> 400 VALIDATION
//	ErrConflict / ErrVersionNotDraft /
//	ErrVersionNotPublished /
//	ErrVersionMismatch                -> 409 CONFLICT
//	resto                             -> 500 INTERNAL
//
// Todos los handlers de versiones y matrices pasan por aquí: el mismo error de
// dominio nunca produce códigos distintos según la ruta.
func respondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "entrada inválida"})
	case errors.Is(err, domain.ErrVersionNotDraft):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: "la versión no está en estado draft"})
	case errors.Is(err, domain.ErrVersionNotPublished):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: "la versión no está publicada"})
	case errors.Is(err, domain.ErrVersionMismatch):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: "la versión no pertenece al tipo de negocio del tenant"})
	case errors.Is(err, domain.ErrConflict), errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: "la operación entra en conflicto con el estado actual"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
