package http

import (
	"errors"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/gestioncom-api/internal/domain"
)

// ─────────────────────────────────────────────
// Mapeo error de dominio → (status, código)
// ─────────────────────────────────────────────

func TestStatusFor_CodigosEstables(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"validación es 400 con su código", domain.NewValidation(domain.CodeProductPriceInvalid), fiber.StatusBadRequest, "PRODUCT_PRICE_INVALID"},
		{"producto duplicado es 409", domain.ErrProductDuplicate, fiber.StatusConflict, "PRODUCT_DUPLICATE"},
		{"categoría duplicada es 409", domain.ErrCategoryDuplicate, fiber.StatusConflict, "CATEGORY_DUPLICATE"},
		{"email ocupado es 409", domain.ErrEmailTaken, fiber.StatusConflict, "EMAIL_TAKEN"},
		{"producto referenciado es 409", domain.ErrProductInUse, fiber.StatusConflict, "PRODUCT_IN_USE"},
		{"categoría referenciada es 409", domain.ErrCategoryInUse, fiber.StatusConflict, "CATEGORY_IN_USE"},
		{"usuario referenciado es 409", domain.ErrUserInUse, fiber.StatusConflict, "USER_IN_USE"},
		{"categoría inexistente es 422", domain.ErrCategoryNotFound, fiber.StatusUnprocessableEntity, "CATEGORY_NOT_FOUND"},
		{"credenciales inválidas es 401", domain.ErrInvalidCredentials, fiber.StatusUnauthorized, "INVALID_CREDENTIALS"},
		{"refresh inválido es 401", domain.ErrRefreshInvalid, fiber.StatusUnauthorized, "REFRESH_INVALID"},
		{"refresh expirado es 401", domain.ErrRefreshExpired, fiber.StatusUnauthorized, "REFRESH_EXPIRED"},
		{"repo de usuarios caído es 503", domain.ErrUserRepoUnavailable, fiber.StatusServiceUnavailable, "USER_REPO_UNAVAILABLE"},
		{"listado de movimientos caído es 503", domain.ErrMovListUnavailable, fiber.StatusServiceUnavailable, "MOV_LIST_REPO_UNAVAILABLE"},
		{"relectura fallida es 500 con código propio", domain.ErrReadBackFailed, fiber.StatusInternalServerError, "REGISTER_READ_BACK_FAILED"},
		{"error desconocido es 500 genérico", errors.New("pánico interno con detalles"), fiber.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, code := statusFor(tc.err)
			assert.Equal(t, tc.status, status)
			assert.Equal(t, tc.code, code)
		})
	}
}

func TestStatusFor_NoFiltraMensajesInternos(t *testing.T) {
	// Un error arbitrario (p. ej. de pgx) jamás llega al cliente tal cual.
	_, code := statusFor(errors.New("conn refused 10.0.0.5:5432"))
	assert.Equal(t, "INTERNAL_ERROR", code)
}
