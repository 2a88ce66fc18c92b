package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/gestioncom-api/pkg/jwt"
)

// Locals keys para UserID y RoleID en Fiber.
const (
	LocalUserID = "user_id"
	LocalRoleID = "role_id"
)

// AuthMiddleware valida el Bearer Token JWT y extrae UserID y RoleID a c.Locals.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return respondCode(c, fiber.StatusUnauthorized, "MISSING_TOKEN")
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return respondCode(c, fiber.StatusUnauthorized, "INVALID_TOKEN")
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return respondCode(c, fiber.StatusUnauthorized, "MISSING_TOKEN")
		}
		userID, roleID, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return respondCode(c, fiber.StatusUnauthorized, "INVALID_TOKEN")
		}
		c.Locals(LocalUserID, userID)
		c.Locals(LocalRoleID, roleID)
		return c.Next()
	}
}

// RequireRole exige que el rol del token esté en la lista (después de AuthMiddleware).
func RequireRole(roles ...int) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := GetRoleID(c)
		for _, r := range roles {
			if role == r {
				return c.Next()
			}
		}
		return respondCode(c, fiber.StatusForbidden, "FORBIDDEN")
	}
}

// GetUserID devuelve el UserID del contexto (después del middleware de auth).
func GetUserID(c *fiber.Ctx) int64 {
	v := c.Locals(LocalUserID)
	if v == nil {
		return 0
	}
	id, _ := v.(int64)
	return id
}

// GetRoleID devuelve el RoleID del contexto (después del middleware de auth).
func GetRoleID(c *fiber.Ctx) int {
	v := c.Locals(LocalRoleID)
	if v == nil {
		return 0
	}
	r, _ := v.(int)
	return r
}
