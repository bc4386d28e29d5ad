package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/vacaciones-api/internal/application/authz"
	"github.com/jhoicas/vacaciones-api/internal/application/dto"
)

// RequireRole devuelve un middleware para rutas de API: 401 sin identidad,
// 403 con identidad pero rol insuficiente. Debe usarse DESPUÉS de
// SessionMiddleware.
func RequireRole(allowed ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		decision := authz.Authorize(GetIdentity(c), GetProfile(c), allowed...)
		if decision.Allowed {
			return c.Next()
		}
		if decision.Redirect == authz.LoginPath {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "sesión no resuelta"})
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "rol insuficiente para esta ruta"})
	}
}

// RequirePage devuelve un middleware para rutas servidas como página: en
// lugar de códigos de error, redirige según la tabla del gate (login si no
// hay identidad, raíz si el rol no alcanza).
func RequirePage(allowed ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		decision := authz.Authorize(GetIdentity(c), GetProfile(c), allowed...)
		if decision.Allowed {
			return c.Next()
		}
		return c.Redirect(decision.Redirect, fiber.StatusFound)
	}
}
