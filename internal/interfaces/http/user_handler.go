package http

import (
	"io"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/gestioncom-api/internal/application/dto"
	"github.com/jhoicas/gestioncom-api/internal/application/user"
	"github.com/jhoicas/gestioncom-api/internal/domain"
)

// UserHandler maneja las peticiones HTTP para User. El CRUD completo es solo
// admin; el listado público y el avatar están disponibles para cualquier
// usuario autenticado.
type UserHandler struct {
	uc *user.UseCase
}

// NewUserHandler construye el handler.
func NewUserHandler(uc *user.UseCase) *UserHandler {
	return &UserHandler{uc: uc}
}

// Create crea un usuario (solo admin).
func (h *UserHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateUserRequest
	if err := c.BodyParser(&in); err != nil {
		return respondCode(c, fiber.StatusBadRequest, domain.CodeInvalidPayload)
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return respondErr(c, err)
	}
	return respondOK(c, fiber.StatusCreated, fiber.Map{"usuario": out})
}

// ListAdmin lista usuarios con email y rol (solo admin).
func (h *UserHandler) ListAdmin(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return respondCode(c, fiber.StatusBadRequest, domain.CodeInvalidPayload)
	}
	items, meta, err := h.uc.ListAdmin(c.Context(), page)
	if err != nil {
		return respondErr(c, err)
	}
	return respondOK(c, fiber.StatusOK, fiber.Map{"usuarios": items, "meta": meta})
}

// ListPublic lista usuarios en su vista reducida (sin email).
func (h *UserHandler) ListPublic(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return respondCode(c, fiber.StatusBadRequest, domain.CodeInvalidPayload)
	}
	items, meta, err := h.uc.ListPublic(c.Context(), page)
	if err != nil {
		return respondErr(c, err)
	}
	return respondOK(c, fiber.StatusOK, fiber.Map{"usuarios": items, "meta": meta})
}

// Patch actualiza parcialmente un usuario (solo admin).
func (h *UserHandler) Patch(c *fiber.Ctx) error {
	id, valid := parseID(c, "id")
	if !valid {
		return respondCode(c, fiber.StatusBadRequest, domain.CodeInvalidID)
	}
	var in dto.UpdateUserRequest
	if err := c.BodyParser(&in); err != nil {
		return respondCode(c, fiber.StatusBadRequest, domain.CodeInvalidPayload)
	}
	out, outcome, err := h.uc.Patch(c.Context(), id, in)
	if err != nil {
		return respondErr(c, err)
	}
	switch outcome {
	case user.PatchNotFound:
		return respondCode(c, fiber.StatusNotFound, "NOT_FOUND")
	case user.PatchNoChange:
		return respondOK(c, fiber.StatusOK, fiber.Map{"changed": false})
	}
	return respondOK(c, fiber.StatusOK, fiber.Map{"usuario": out})
}

// Remove elimina un usuario (solo admin). 204 si existía, 404 si no.
func (h *UserHandler) Remove(c *fiber.Ctx) error {
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

// UploadAvatar sube el avatar del usuario autenticado (multipart, campo "imagen").
func (h *UserHandler) UploadAvatar(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("imagen")
	if err != nil {
		return respondCode(c, fiber.StatusBadRequest, domain.CodeImageFileRequired)
	}
	file, err := fileHeader.Open()
	if err != nil {
		return respondCode(c, fiber.StatusBadRequest, domain.CodeImageFileRequired)
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		return respondErr(c, domain.ErrInternal)
	}
	key, err := h.uc.UploadAvatar(c.Context(), GetUserID(c), data, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		return respondErr(c, err)
	}
	return respondOK(c, fiber.StatusOK, fiber.Map{"avatarKey": key})
}

// GetAvatar descarga el avatar de un usuario.
func (h *UserHandler) GetAvatar(c *fiber.Ctx) error {
	id, valid := parseID(c, "id")
	if !valid {
		return respondCode(c, fiber.StatusBadRequest, domain.CodeInvalidID)
	}
	data, contentType, found, err := h.uc.GetAvatar(c.Context(), id)
	if err != nil {
		return respondErr(c, err)
	}
	if !found {
		return respondCode(c, fiber.StatusNotFound, "NOT_FOUND")
	}
	c.Set(fiber.HeaderContentType, contentType)
	return c.Send(data)
}
