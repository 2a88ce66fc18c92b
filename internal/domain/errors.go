// Package domain define las entidades, puertos y errores de dominio.
//
// Los errores centinela usan como mensaje el código estable que consume el
// cliente (branching en el front); la capa HTTP los traduce a status sin
// exponer detalles internos.
package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	// Productos
	ErrProductDuplicate = errors.New("PRODUCT_DUPLICATE")
	ErrProductInUse     = errors.New("PRODUCT_IN_USE")
	ErrCategoryNotFound = errors.New("CATEGORY_NOT_FOUND")

	// Categorías
	ErrCategoryDuplicate = errors.New("CATEGORY_DUPLICATE")
	ErrCategoryInUse     = errors.New("CATEGORY_IN_USE")

	// Usuarios / auth
	ErrEmailTaken         = errors.New("EMAIL_TAKEN")
	ErrUserInUse          = errors.New("USER_IN_USE")
	ErrInvalidCredentials = errors.New("INVALID_CREDENTIALS")
	ErrInvalidToken       = errors.New("INVALID_TOKEN")
	ErrRefreshInvalid     = errors.New("REFRESH_INVALID")
	ErrRefreshExpired     = errors.New("REFRESH_EXPIRED")

	// Anomalía de consistencia: el write aparentó funcionar pero la relectura
	// dentro de la misma transacción no encontró la fila.
	ErrReadBackFailed = errors.New("REGISTER_READ_BACK_FAILED")

	// Dependencias no disponibles (la capa HTTP responde 503)
	ErrUserRepoUnavailable      = errors.New("USER_REPO_UNAVAILABLE")
	ErrAuthRepoUnavailable      = errors.New("AUTH_REPO_UNAVAILABLE")
	ErrMovListUnavailable       = errors.New("MOV_LIST_REPO_UNAVAILABLE")
	ErrMovExportUnavailable     = errors.New("MOV_EXPORT_REPO_UNAVAILABLE")
	ErrProductExportUnavailable = errors.New("PRODUCT_EXPORT_REPO_UNAVAILABLE")

	// Genérico
	ErrInternal = errors.New("INTERNAL_ERROR")
)

// ValidationError error de validación de campos (tipo/rango). Se rechaza
// antes de cualquier write y la capa HTTP lo mapea a 400.
type ValidationError struct {
	Code string
}

func (e *ValidationError) Error() string { return e.Code }

// NewValidation construye un error de validación con código estable.
func NewValidation(code string) error { return &ValidationError{Code: code} }

// IsValidation indica si err es (o envuelve) un error de validación.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// Códigos de validación compartidos.
const (
	CodeInvalidID           = "INVALID_ID"
	CodeInvalidPayload      = "INVALID_PAYLOAD"
	CodeEnumInvalid         = "ENUM_INVALID"
	CodeCheckInvalid        = "CHECK_INVALID"
	CodeProductIDInvalid    = "PRODUCT_ID_INVALID"
	CodeUserIDInvalid       = "USER_ID_INVALID"
	CodeNotaInvalid         = "NOTA_INVALID"
	CodeNotaTooLong         = "NOTA_TOO_LONG"
	CodeProductNameRequired = "PRODUCT_NAME_REQUIRED"
	CodeProductPriceInvalid = "PRODUCT_PRICE_INVALID"
	CodeProductStockInvalid = "PRODUCT_STOCK_INVALID"
	CodeProductCatInvalid   = "PRODUCT_CATEGORY_INVALID"
	CodeCategoryNameReq     = "CATEGORY_NAME_REQUIRED"
	CodeNameRequired        = "NAME_REQUIRED"
	CodeEmailInvalid        = "EMAIL_INVALID"
	CodePasswordTooShort    = "PASSWORD_TOO_SHORT"
	CodePasswordWeak        = "PASSWORD_WEAK"
	CodeRolInvalid          = "ROL_INVALID"
	CodeImageFileRequired   = "IMAGE_FILE_REQUIRED"
	CodeImageTooLarge       = "IMAGE_TOO_LARGE"
	CodeImageInvalidType    = "IMAGE_INVALID_TYPE"
)
