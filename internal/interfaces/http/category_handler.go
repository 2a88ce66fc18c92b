package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/gestioncom-api/internal/application/category"
	"github.com/jhoicas/gestioncom-api/internal/application/dto"
	"github.com/jhoicas/gestioncom-api/internal/domain"
)

// CategoryHandler maneja las peticiones HTTP para Category (protegido).
type CategoryHandler struct {
	uc *category.UseCase
}

// NewCategoryHandler construye el handler.
func NewCategoryHandler(uc *category.UseCase) *CategoryHandler {
	return &CategoryHandler{uc: uc}
}

// Create crea una categoría.
func (h *CategoryHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCategoryRequest
	if err := c.BodyParser(&in); err != nil {
		return respondCode(c, fiber.StatusBadRequest, domain.CodeInvalidPayload)
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return respondErr(c, err)
	}
	return respondOK(c, fiber.StatusCreated, fiber.Map{"categoria": out})
}

// GetByID obtiene una categoría por ID.
func (h *CategoryHandler) GetByID(c *fiber.Ctx) error {
	id, valid := parseID(c, "id")
	if !valid {
		return respondCode(c, fiber.StatusBadRequest, domain.CodeInvalidID)
	}
	out, err := h.uc.GetByID(c.Context(), id)
	if err != nil {
		return respondErr(c, err)
	}
	if out == nil {
		return respondCode(c, fiber.StatusNotFound, "NOT_FOUND")
	}
	return respondOK(c, fiber.StatusOK, fiber.Map{"categoria": out})
}

// List lista categorías con paginación y ordenamiento.
func (h *CategoryHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return respondCode(c, fiber.StatusBadRequest, domain.CodeInvalidPayload)
	}
	items, meta, err := h.uc.List(c.Context(), page)
	if err != nil {
		return respondErr(c, err)
	}
	return respondOK(c, fiber.StatusOK, fiber.Map{"categorias": items, "meta": meta})
}

// Patch renombra una categoría.
func (h *CategoryHandler) Patch(c *fiber.Ctx) error {
	id, valid := parseID(c, "id")
	if !valid {
		return respondCode(c, fiber.StatusBadRequest, domain.CodeInvalidID)
	}
	var in dto.UpdateCategoryRequest
	if err := c.BodyParser(&in); err != nil {
		return respondCode(c, fiber.StatusBadRequest, domain.CodeInvalidPayload)
	}
	out, outcome, err := h.uc.Patch(c.Context(), id, in)
	if err != nil {
		return respondErr(c, err)
	}
	switch outcome {
	case category.PatchNotFound:
		return respondCode(c, fiber.StatusNotFound, "NOT_FOUND")
	case category.PatchNoChange:
		return respondOK(c, fiber.StatusOK, fiber.Map{"changed": false})
	}
	return respondOK(c, fiber.StatusOK, fiber.Map{"categoria": out})
}

// Remove elimina una categoría. 204 si existía, 404 si no.
func (h *CategoryHandler) Remove(c *fiber.Ctx) error {
	id, valid := parseID(c, "id")
	if !valid {
		return respondCode(c, fiber.StatusBadRequest, domain.CodeInvalidID)
	}
	found, err := h.uc.Remove(c.Context(), id)
	if err != nil {
		return respondErr(c, err)
	}
	if !found {
		return respondCode(c, fiber.StatusNotFound, "NOT_FOUND")
	}
	return c.SendStatus(fiber.StatusNoContent)
}
