package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/gestioncom-api/internal/application/auth"
	"github.com/jhoicas/gestioncom-api/internal/application/dto"
	"github.com/jhoicas/gestioncom-api/internal/domain"
)

// AuthHandler maneja registro, login y ciclo de vida del refresh token.
type AuthHandler struct {
	uc *auth.UseCase
}

// NewAuthHandler construye el handler.
func NewAuthHandler(uc *auth.UseCase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Register crea una cuenta con rol usuario y devuelve el par de tokens.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if err := c.BodyParser(&in); err != nil {
		return respondCode(c, fiber.StatusBadRequest, domain.CodeInvalidPayload)
	}
	out, err := h.uc.Register(c.Context(), in)
	if err != nil {
		return respondErr(c, err)
	}
	return respondOK(c, fiber.StatusCreated, fiber.Map{"auth": out})
}

// Login autentica por email y password.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return respondCode(c, fiber.StatusBadRequest, domain.CodeInvalidPayload)
	}
	out, err := h.uc.Login(c.Context(), in)
	if err != nil {
		return respondErr(c, err)
	}
	return respondOK(c, fiber.StatusOK, fiber.Map{"auth": out})
}

// Refresh rota el refresh token y devuelve un par nuevo.
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var in dto.RefreshRequest
	if err := c.BodyParser(&in); err != nil {
		return respondCode(c, fiber.StatusBadRequest, domain.CodeInvalidPayload)
	}
	out, err := h.uc.Refresh(c.Context(), in.RefreshToken)
	if err != nil {
		return respondErr(c, err)
	}
	return respondOK(c, fiber.StatusOK, fiber.Map{"auth": out})
}

// Logout revoca la sesión del refresh token. Idempotente.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	var in dto.RefreshRequest
	if err := c.BodyParser(&in); err != nil {
		return respondCode(c, fiber.StatusBadRequest, domain.CodeInvalidPayload)
	}
	if err := h.uc.Logout(c.Context(), in.RefreshToken); err != nil {
		return respondErr(c, err)
	}
	return respondOK(c, fiber.StatusOK, fiber.Map{})
}

// Profile devuelve el perfil del usuario autenticado.
func (h *AuthHandler) Profile(c *fiber.Ctx) error {
	out, err := h.uc.Profile(c.Context(), GetUserID(c))
	if err != nil {
		return respondErr(c, err)
	}
	if out == nil {
		return respondCode(c, fiber.StatusNotFound, "NOT_FOUND")
	}
	return respondOK(c, fiber.StatusOK, fiber.Map{"usuario": out})
}
