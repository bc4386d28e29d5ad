package http

import (
	"encoding/json"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/vacaciones-api/internal/application/directory"
	"github.com/jhoicas/vacaciones-api/internal/application/session"
	"github.com/jhoicas/vacaciones-api/internal/domain/entity"
	"github.com/jhoicas/vacaciones-api/pkg/config"
)

// Locals keys para la identidad y el perfil resueltos en Fiber.
const (
	LocalIdentity = "identity"
	LocalProfile  = "profile"
)

// SessionMiddleware resuelve la identidad desde la cookie de sesión y liga
// identidad + perfil al request. Nunca corta la cadena: las rutas deciden con
// RequireRole / RequirePage. Si la cadena rotó el par de tokens, la cookie se
// reescribe como best-effort.
func SessionMiddleware(resolver *session.Resolver, dir *directory.DirectoryUseCase, cfg config.SessionConfig) fiber.Handler {
	return func(c *fiber.Ctx) error {
		st := session.NewState(c.Cookies(cfg.CookieName))
		ident := resolver.Resolve(c.Context(), st)

		if st.Rotated != nil {
			writeSessionCookie(c, cfg, st.Rotated)
		}
		if ident != nil {
			c.Locals(LocalIdentity, ident)
			// El rol del token es solo una pista: el perfil releído aquí es
			// la señal de autorización.
			if profile, err := dir.EnsureProfile(c.Context(), ident); err == nil && profile != nil {
				c.Locals(LocalProfile, profile)
			}
		}
		return c.Next()
	}
}

// GetIdentity devuelve la identidad resuelta del contexto, o nil.
func GetIdentity(c *fiber.Ctx) *entity.Identity {
	v := c.Locals(LocalIdentity)
	if v == nil {
		return nil
	}
	ident, _ := v.(*entity.Identity)
	return ident
}

// GetProfile devuelve el perfil resuelto del contexto, o nil.
func GetProfile(c *fiber.Ctx) *entity.Profile {
	v := c.Locals(LocalProfile)
	if v == nil {
		return nil
	}
	p, _ := v.(*entity.Profile)
	return p
}

// GetRole devuelve el rol efectivo: el del perfil, o employee por defecto
// cuando hay identidad sin perfil todavía.
func GetRole(c *fiber.Ctx) string {
	if p := GetProfile(c); p != nil {
		return p.Role
	}
	if GetIdentity(c) != nil {
		return entity.RoleEmployee
	}
	return ""
}

// writeSessionCookie serializa el par como JSON en la cookie de sesión.
func writeSessionCookie(c *fiber.Ctx, cfg config.SessionConfig, pair *entity.TokenPair) {
	payload, err := json.Marshal(pair)
	if err != nil {
		return
	}
	c.Cookie(&fiber.Cookie{
		Name:     cfg.CookieName,
		Value:    string(payload),
		Domain:   cfg.CookieDomain,
		Path:     "/",
		Expires:  time.Now().Add(30 * 24 * time.Hour),
		Secure:   cfg.Secure,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// clearSessionCookie invalida la cookie de sesión.
func clearSessionCookie(c *fiber.Ctx, cfg config.SessionConfig) {
	c.Cookie(&fiber.Cookie{
		Name:     cfg.CookieName,
		Value:    "",
		Domain:   cfg.CookieDomain,
		Path:     "/",
		Expires:  time.Now().Add(-time.Hour),
		Secure:   cfg.Secure,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}
