package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/gestioncom-api/internal/application/dto"
	"github.com/jhoicas/gestioncom-api/internal/application/product"
	"github.com/jhoicas/gestioncom-api/internal/domain"
	"github.com/jhoicas/gestioncom-api/pkg/csvutil"
)

const maxTopLimit = 5

// ProductHandler maneja las peticiones HTTP para Product (protegido).
type ProductHandler struct {
	uc *product.UseCase
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *product.UseCase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

// Create crea un producto y, si nace con stock, su movimiento de entrada
// inicial en la misma transacción.
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return respondCode(c, fiber.StatusBadRequest, domain.CodeInvalidPayload)
	}
	out, err := h.uc.Create(c.Context(), GetUserID(c), in)
	if err != nil {
		return respondErr(c, err)
	}
	return respondOK(c, fiber.StatusCreated, fiber.Map{"producto": out})
}

// GetByID obtiene un producto por ID.
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
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
	return respondOK(c, fiber.StatusOK, fiber.Map{"producto": out})
}

// List lista productos con paginación y ordenamiento.
func (h *ProductHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return respondCode(c, fiber.StatusBadRequest, domain.CodeInvalidPayload)
	}
	items, meta, err := h.uc.List(c.Context(), page)
	if err != nil {
		return respondErr(c, err)
	}
	return respondOK(c, fiber.StatusOK, fiber.Map{"productos": items, "meta": meta})
}

// Patch actualiza parcialmente un producto. Si el stock cambia, el delta se
// registra como movimiento en la misma transacción.
func (h *ProductHandler) Patch(c *fiber.Ctx) error {
	id, valid := parseID(c, "id")
	if !valid {
		return respondCode(c, fiber.StatusBadRequest, domain.CodeInvalidID)
	}
	var in dto.UpdateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return respondCode(c, fiber.StatusBadRequest, domain.CodeInvalidPayload)
	}
	out, outcome, err := h.uc.Patch(c.Context(), id, in, GetUserID(c))
	if err != nil {
		return respondErr(c, err)
	}
	switch outcome {
	case product.PatchNotFound:
		return respondCode(c, fiber.StatusNotFound, "NOT_FOUND")
	case product.PatchNoChange:
		return respondOK(c, fiber.StatusOK, fiber.Map{"changed": false})
	}
	return respondOK(c, fiber.StatusOK, fiber.Map{"producto": out})
}

// Remove elimina un producto. 204 si existía, 404 si no.
func (h *ProductHandler) Remove(c *fiber.Ctx) error {
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

// TopByPrice devuelve los productos más caros (máximo 5).
func (h *ProductHandler) TopByPrice(c *fiber.Ctx) error {
	limit, valid := topLimit(c)
	if !valid {
		return respondCode(c, fiber.StatusBadRequest, domain.CodeInvalidPayload)
	}
	items, err := h.uc.TopByPrice(c.Context(), limit)
	if err != nil {
		return respondErr(c, err)
	}
	return respondOK(c, fiber.StatusOK, fiber.Map{"productos": items})
}

// TopByTotalValue devuelve los productos con mayor valor total (máximo 5).
func (h *ProductHandler) TopByTotalValue(c *fiber.Ctx) error {
	limit, valid := topLimit(c)
	if !valid {
		return respondCode(c, fiber.StatusBadRequest, domain.CodeInvalidPayload)
	}
	items, err := h.uc.TopByTotalValue(c.Context(), limit)
	if err != nil {
		return respondErr(c, err)
	}
	return respondOK(c, fiber.StatusOK, fiber.Map{"productos": items})
}

// ExportCSV descarga el catálogo como CSV (UTF-8 con BOM, delimitador ';').
func (h *ProductHandler) ExportCSV(c *fiber.Ctx) error {
	body, err := h.uc.ExportCSV(c.Context())
	if err != nil {
		return respondErr(c, err)
	}
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="productos.csv"`)
	return c.SendString(csvutil.BOM + body)
}

// ExportPDF descarga el catálogo como PDF.
func (h *ProductHandler) ExportPDF(c *fiber.Ctx) error {
	doc, err := h.uc.ExportPDF(c.Context())
	if err != nil {
		return respondErr(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="productos.pdf"`)
	return c.Send(doc)
}

// topLimit lee el query param limit de los tops: default 5, rango [1, 5].
func topLimit(c *fiber.Ctx) (int, bool) {
	limit := c.QueryInt("limit", maxTopLimit)
	if limit <= 0 || limit > maxTopLimit {
		return 0, false
	}
	return limit, true
}
