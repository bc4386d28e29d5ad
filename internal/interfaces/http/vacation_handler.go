package http

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/vacaciones-api/internal/application/dto"
	"github.com/jhoicas/vacaciones-api/internal/application/vacation"
	"github.com/jhoicas/vacaciones-api/internal/domain"
	"github.com/jhoicas/vacaciones-api/internal/domain/entity"
)

// vacationLifecycle contrato mínimo del ciclo de vida para el handler.
type vacationLifecycle interface {
	Create(ctx context.Context, actor vacation.Actor, in dto.VacationInput) (*entity.VacationRequest, error)
	Update(ctx context.Context, actor vacation.Actor, id string, in dto.VacationInput) (*entity.VacationRequest, error)
	Approve(ctx context.Context, actor vacation.Actor, id string) error
	Reject(ctx context.Context, actor vacation.Actor, id string) error
	Delete(ctx context.Context, actor vacation.Actor, id string) error
	ListOwn(ctx context.Context, actor vacation.Actor) ([]*entity.VacationRequest, error)
	ListPending(ctx context.Context, actor vacation.Actor) ([]*entity.VacationRequest, error)
	ListAll(ctx context.Context, actor vacation.Actor) ([]*entity.VacationRequest, error)
	Calendar(ctx context.Context, from, to time.Time) ([]*entity.VacationRequest, error)
}

// VacationHandler maneja las solicitudes de vacaciones.
type VacationHandler struct {
	uc vacationLifecycle
}

// NewVacationHandler construye el handler.
func NewVacationHandler(uc vacationLifecycle) *VacationHandler {
	return &VacationHandler{uc: uc}
}

// actorFrom arma el actor con identidad y rol resueltos en el servidor.
func actorFrom(c *fiber.Ctx) vacation.Actor {
	ident := GetIdentity(c)
	if ident == nil {
		return vacation.Actor{}
	}
	return vacation.Actor{UserID: ident.ID, Role: GetRole(c)}
}

// Create godoc
// @Summary      Crear solicitud de vacaciones
// @Tags         vacations
// @Accept       json
// @Produce      json
// @Param        body  body  dto.VacationInput  true  "type, date_from, date_to, comment"
// @Success      201   {object}  dto.VacationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/vacations [post]
func (h *VacationHandler) Create(c *fiber.Ctx) error {
	var in dto.VacationInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	v, err := h.uc.Create(c.Context(), actorFrom(c), in)
	if err != nil {
		return vacationError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToVacationResponse(v))
}

// Update godoc
// @Summary      Editar una solicitud propia aún pendiente
// @Tags         vacations
// @Accept       json
// @Produce      json
// @Param        id    path  string             true  "id de la solicitud"
// @Param        body  body  dto.VacationInput  true  "type, date_from, date_to, comment"
// @Success      200   {object}  dto.VacationResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/vacations/{id} [put]
func (h *VacationHandler) Update(c *fiber.Ctx) error {
	var in dto.VacationInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	v, err := h.uc.Update(c.Context(), actorFrom(c), c.Params("id"), in)
	if err != nil {
		return vacationError(c, err)
	}
	return c.JSON(dto.ToVacationResponse(v))
}

// Approve godoc
// @Summary      Aprobar una solicitud pendiente (solo admin)
// @Tags         vacations
// @Produce      json
// @Param        id  path  string  true  "id de la solicitud"
// @Success      200  {object}  dto.SuccessResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/vacations/{id}/approve [post]
func (h *VacationHandler) Approve(c *fiber.Ctx) error {
	if err := h.uc.Approve(c.Context(), actorFrom(c), c.Params("id")); err != nil {
		return vacationError(c, err)
	}
	return c.JSON(dto.SuccessResponse{Success: true})
}

// Reject godoc
// @Summary      Rechazar una solicitud pendiente (solo admin)
// @Tags         vacations
// @Produce      json
// @Param        id  path  string  true  "id de la solicitud"
// @Success      200  {object}  dto.SuccessResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/vacations/{id}/reject [post]
func (h *VacationHandler) Reject(c *fiber.Ctx) error {
	if err := h.uc.Reject(c.Context(), actorFrom(c), c.Params("id")); err != nil {
		return vacationError(c, err)
	}
	return c.JSON(dto.SuccessResponse{Success: true})
}

// Delete godoc
// @Summary      Eliminar una solicitud (dueño o admin, cualquier estado)
// @Tags         vacations
// @Produce      json
// @Param        id  path  string  true  "id de la solicitud"
// @Success      200  {object}  dto.SuccessResponse
// @Router       /api/vacations/{id} [delete]
func (h *VacationHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), actorFrom(c), c.Params("id")); err != nil {
		return vacationError(c, err)
	}
	return c.JSON(dto.SuccessResponse{Success: true})
}

// List godoc
// @Summary      Listar solicitudes: propias; con ?scope=pending|all para admin
// @Tags         vacations
// @Produce      json
// @Success      200  {array}  dto.VacationResponse
// @Router       /api/vacations [get]
func (h *VacationHandler) List(c *fiber.Ctx) error {
	actor := actorFrom(c)
	var (
		list []*entity.VacationRequest
		err  error
	)
	switch c.Query("scope") {
	case "pending":
		list, err = h.uc.ListPending(c.Context(), actor)
	case "all":
		list, err = h.uc.ListAll(c.Context(), actor)
	default:
		list, err = h.uc.ListOwn(c.Context(), actor)
	}
	if err != nil {
		return vacationError(c, err)
	}
	return c.JSON(dto.ToVacationResponses(list))
}

// Calendar godoc
// @Summary      Solicitudes aprobadas que tocan el rango [from, to]
// @Tags         vacations
// @Produce      json
// @Param        from  query  string  true  "YYYY-MM-DD"
// @Param        to    query  string  true  "YYYY-MM-DD"
// @Success      200   {array}  dto.VacationResponse
// @Router       /api/vacations/calendar [get]
func (h *VacationHandler) Calendar(c *fiber.Ctx) error {
	from, err := entity.ParseDate(c.Query("from"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from debe ser YYYY-MM-DD"})
	}
	to, err := entity.ParseDate(c.Query("to"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to debe ser YYYY-MM-DD"})
	}
	list, err := h.uc.Calendar(c.Context(), from, to)
	if err != nil {
		return vacationError(c, err)
	}
	return c.JSON(dto.ToVacationResponses(list))
}

// vacationError mapea los errores del ciclo de vida a HTTP.
func vacationError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidDateRange):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_DATE_RANGE", Message: "la fecha final es anterior a la inicial"})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "entrada inválida"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "solicitud no encontrada"})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "operación no permitida para este actor"})
	case errors.Is(err, domain.ErrNotPending):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "NOT_PENDING", Message: "la solicitud ya no está pendiente"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
