package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/gestioncom-api/internal/domain"
)

// respondOK escribe el sobre de éxito {ok:true, ...data}.
func respondOK(c *fiber.Ctx, status int, data fiber.Map) error {
	body := fiber.Map{"ok": true}
	for k, v := range data {
		body[k] = v
	}
	return c.Status(status).JSON(body)
}

// respondErr traduce un error de dominio al sobre {ok:false, error:CODE}
// con el status correspondiente. Nunca expone mensajes internos.
func respondErr(c *fiber.Ctx, err error) error {
	status, code := statusFor(err)
	return c.Status(status).JSON(fiber.Map{"ok": false, "error": code})
}

// respondCode escribe el sobre de error con un código y status explícitos.
func respondCode(c *fiber.Ctx, status int, code string) error {
	return c.Status(status).JSON(fiber.Map{"ok": false, "error": code})
}

// statusFor mapea errores de dominio a (status, código estable).
func statusFor(err error) (int, string) {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return fiber.StatusBadRequest, ve.Code
	}
	switch {
	case errors.Is(err, domain.ErrProductDuplicate),
		errors.Is(err, domain.ErrCategoryDuplicate),
		errors.Is(err, domain.ErrEmailTaken),
		errors.Is(err, domain.ErrProductInUse),
		errors.Is(err, domain.ErrCategoryInUse),
		errors.Is(err, domain.ErrUserInUse):
		return fiber.StatusConflict, err.Error()

	// Referencia a categoría inexistente: el payload es sintácticamente
	// válido pero no procesable.
	case errors.Is(err, domain.ErrCategoryNotFound):
		return fiber.StatusUnprocessableEntity, err.Error()

	case errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrInvalidToken),
		errors.Is(err, domain.ErrRefreshInvalid),
		errors.Is(err, domain.ErrRefreshExpired):
		return fiber.StatusUnauthorized, err.Error()

	case errors.Is(err, domain.ErrUserRepoUnavailable),
		errors.Is(err, domain.ErrAuthRepoUnavailable),
		errors.Is(err, domain.ErrMovListUnavailable),
		errors.Is(err, domain.ErrMovExportUnavailable),
		errors.Is(err, domain.ErrProductExportUnavailable):
		return fiber.StatusServiceUnavailable, err.Error()

	case errors.Is(err, domain.ErrReadBackFailed):
		return fiber.StatusInternalServerError, err.Error()
	}
	return fiber.StatusInternalServerError, domain.ErrInternal.Error()
}

// parseID lee un parámetro de ruta como id positivo.
func parseID(c *fiber.Ctx, name string) (int64, bool) {
	id, err := c.ParamsInt(name)
	if err != nil || id <= 0 {
		return 0, false
	}
	return int64(id), true
}
