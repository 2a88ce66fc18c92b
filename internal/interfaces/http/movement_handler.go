package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/gestioncom-api/internal/application/dto"
	"github.com/jhoicas/gestioncom-api/internal/application/movement"
	"github.com/jhoicas/gestioncom-api/internal/domain"
	"github.com/jhoicas/gestioncom-api/pkg/csvutil"
)

// MovementHandler maneja las peticiones HTTP del historial de movimientos.
// El ledger se escribe solo como efecto de mutaciones de producto; aquí solo
// se lee y exporta.
type MovementHandler struct {
	uc *movement.UseCase
}

// NewMovementHandler construye el handler.
func NewMovementHandler(uc *movement.UseCase) *MovementHandler {
	return &MovementHandler{uc: uc}
}

// List lista el historial con paginación, joins y ordenamiento.
func (h *MovementHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return respondCode(c, fiber.StatusBadRequest, domain.CodeInvalidPayload)
	}
	items, meta, err := h.uc.List(c.Context(), page)
	if err != nil {
		return respondErr(c, err)
	}
	return respondOK(c, fiber.StatusOK, fiber.Map{"movimientos": items, "meta": meta})
}

// ExportCSV descarga el historial completo como CSV (UTF-8 con BOM, delimitador ';').
func (h *MovementHandler) ExportCSV(c *fiber.Ctx) error {
	body, err := h.uc.ExportCSV(c.Context())
	if err != nil {
		return respondErr(c, err)
	}
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="movimientos.csv"`)
	return c.SendString(csvutil.BOM + body)
}
