package http

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/vacaciones-api/internal/application/directory"
	"github.com/jhoicas/vacaciones-api/internal/application/dto"
	"github.com/jhoicas/vacaciones-api/internal/application/session"
	"github.com/jhoicas/vacaciones-api/internal/domain"
	"github.com/jhoicas/vacaciones-api/internal/domain/entity"
	"github.com/jhoicas/vacaciones-api/pkg/config"
)

// credentialStore contrato mínimo del almacén de credenciales para el handler.
type credentialStore interface {
	Login(ctx context.Context, email, password string) (*entity.TokenPair, *entity.Identity, error)
	Refresh(ctx context.Context, refreshToken string) (*entity.TokenPair, *entity.Identity, error)
	Logout(ctx context.Context, refreshToken string) error
}

// AuthHandler maneja login, refresh, logout y la vista de identidad.
type AuthHandler struct {
	store      credentialStore
	dir        *directory.DirectoryUseCase
	sessionCfg config.SessionConfig
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(store credentialStore, dir *directory.DirectoryUseCase, sessionCfg config.SessionConfig) *AuthHandler {
	return &AuthHandler{store: store, dir: dir, sessionCfg: sessionCfg}
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email, password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Email == "" || in.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "email y password son requeridos"})
	}
	pair, ident, err := h.store.Login(c.Context(), in.Email, in.Password)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "credenciales inválidas"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	writeSessionCookie(c, h.sessionCfg, pair)

	profile, err := h.dir.EnsureProfile(c.Context(), ident)
	if err != nil || profile == nil {
		// El perfil puede tardar en materializarse (trigger); responder con
		// lo que la identidad trae.
		return c.JSON(dto.LoginResponse{User: dto.ProfileResponse{ID: ident.ID, Email: ident.Email, Role: ident.Role}})
	}
	return c.JSON(dto.LoginResponse{User: dto.ToProfileResponse(profile)})
}

// Refresh godoc
// @Summary      Rotar el par de tokens de la cookie
// @Tags         auth
// @Produce      json
// @Success      200  {object}  dto.SuccessResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/auth/refresh [post]
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	st := session.NewState(c.Cookies(h.sessionCfg.CookieName))
	pairIn := st.Pair()
	if pairIn == nil || pairIn.RefreshToken == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "sin sesión que refrescar"})
	}
	pair, _, err := h.store.Refresh(c.Context(), pairIn.RefreshToken)
	if err != nil {
		if errors.Is(err, domain.ErrSessionExpired) {
			clearSessionCookie(c, h.sessionCfg)
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "SESSION_EXPIRED", Message: "sesión expirada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	writeSessionCookie(c, h.sessionCfg, pair)
	return c.JSON(dto.SuccessResponse{Success: true})
}

// Logout godoc
// @Summary      Cerrar sesión
// @Tags         auth
// @Produce      json
// @Success      200  {object}  dto.SuccessResponse
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	st := session.NewState(c.Cookies(h.sessionCfg.CookieName))
	if pair := st.Pair(); pair != nil {
		_ = h.store.Logout(c.Context(), pair.RefreshToken)
	}
	clearSessionCookie(c, h.sessionCfg)
	return c.JSON(dto.SuccessResponse{Success: true})
}

// Me godoc
// @Summary      Identidad y perfil resueltos para el request actual
// @Tags         auth
// @Produce      json
// @Success      200  {object}  dto.MeResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	ident := GetIdentity(c)
	if ident == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "sesión no resuelta"})
	}
	return c.JSON(dto.MeResponse{
		ID:      ident.ID,
		Email:   ident.Email,
		Role:    GetRole(c),
		Profile: dto.ToProfileResponse(GetProfile(c)),
	})
}
