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

// userManager contrato mínimo de gestión de usuarios para el handler.
type userManager interface {
	CreateUser(ctx context.Context, in dto.CreateUserRequest) (*entity.Profile, error)
	DeleteUser(ctx context.Context, userID string) error
	ListUsers(ctx context.Context) ([]*entity.Profile, error)
}

// AdminUsersHandler endpoint privilegiado de gestión de usuarios.
//
// No confía en nada que venga del request ni en locals de middlewares
// anteriores: re-deriva identidad y rol desde la cookie por la misma cadena
// de resolución + directorio, y rechaza con 401/403 antes de tocar el caso
// de uso.
type AdminUsersHandler struct {
	uc         userManager
	resolver   *session.Resolver
	dir        *directory.DirectoryUseCase
	sessionCfg config.SessionConfig
}

// NewAdminUsersHandler construye el handler.
func NewAdminUsersHandler(uc userManager, resolver *session.Resolver, dir *directory.DirectoryUseCase, sessionCfg config.SessionConfig) *AdminUsersHandler {
	return &AdminUsersHandler{uc: uc, resolver: resolver, dir: dir, sessionCfg: sessionCfg}
}

// requireAdmin re-deriva identidad y rol. Devuelve nil si el caller puede
// continuar; si no, ya respondió 401 o 403.
func (h *AdminUsersHandler) requireAdmin(c *fiber.Ctx) error {
	st := session.NewState(c.Cookies(h.sessionCfg.CookieName))
	ident := h.resolver.Resolve(c.Context(), st)
	if ident == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "sesión no resuelta"})
	}
	profile, err := h.dir.GetProfile(c.Context(), ident)
	if err != nil || !profile.IsAdmin() {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "se requiere rol admin"})
	}
	return nil
}

// Create godoc
// @Summary      Alta administrativa de usuario (credencial + perfil)
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateUserRequest  true  "email, password?, full_name, role, position?, company?"
// @Success      201   {object}  dto.CreateUserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/admin/users [post]
func (h *AdminUsersHandler) Create(c *fiber.Ctx) error {
	if resp := h.requireAdmin(c); resp != nil {
		return resp
	}
	var in dto.CreateUserRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	profile, err := h.uc.CreateUser(c.Context(), in)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "email, full_name y role (admin|employee) son requeridos"})
		case errors.Is(err, domain.ErrEmailAlreadyExists):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "EMAIL_EXISTS", Message: "el email ya está registrado"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
		}
	}
	return c.Status(fiber.StatusCreated).JSON(dto.CreateUserResponse{Success: true, User: dto.ToProfileResponse(profile)})
}

// Delete godoc
// @Summary      Baja administrativa de usuario
// @Tags         admin
// @Produce      json
// @Param        userId  query  string  true  "id del usuario a eliminar"
// @Success      200     {object}  dto.SuccessResponse
// @Failure      400     {object}  dto.ErrorResponse
// @Failure      401     {object}  dto.ErrorResponse
// @Failure      403     {object}  dto.ErrorResponse
// @Router       /api/admin/users [delete]
func (h *AdminUsersHandler) Delete(c *fiber.Ctx) error {
	if resp := h.requireAdmin(c); resp != nil {
		return resp
	}
	userID := c.Query("userId")
	if userID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "userId es requerido"})
	}
	if err := h.uc.DeleteUser(c.Context(), userID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.SuccessResponse{Success: true})
}

// List godoc
// @Summary      Listar perfiles (tabla de usuarios del admin)
// @Tags         admin
// @Produce      json
// @Success      200  {array}  dto.ProfileResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/admin/users [get]
func (h *AdminUsersHandler) List(c *fiber.Ctx) error {
	if resp := h.requireAdmin(c); resp != nil {
		return resp
	}
	list, err := h.uc.ListUsers(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := make([]dto.ProfileResponse, 0, len(list))
	for _, p := range list {
		out = append(out, dto.ToProfileResponse(p))
	}
	return c.JSON(out)
}
