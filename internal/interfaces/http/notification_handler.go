package http

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/vacaciones-api/internal/application/dto"
	"github.com/jhoicas/vacaciones-api/internal/domain"
	"github.com/jhoicas/vacaciones-api/internal/domain/entity"
)

// notificationReader contrato mínimo de notificaciones para el handler.
type notificationReader interface {
	List(ctx context.Context, userID string) ([]*entity.Notification, error)
	MarkRead(ctx context.Context, userID, id string) error
}

// NotificationHandler maneja las notificaciones del usuario autenticado.
type NotificationHandler struct {
	uc notificationReader
}

// NewNotificationHandler construye el handler.
func NewNotificationHandler(uc notificationReader) *NotificationHandler {
	return &NotificationHandler{uc: uc}
}

// List godoc
// @Summary      Notificaciones del usuario autenticado
// @Tags         notifications
// @Produce      json
// @Success      200  {array}  dto.NotificationResponse
// @Router       /api/notifications [get]
func (h *NotificationHandler) List(c *fiber.Ctx) error {
	ident := GetIdentity(c)
	list, err := h.uc.List(c.Context(), ident.ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.ToNotificationResponses(list))
}

// MarkRead godoc
// @Summary      Marcar una notificación propia como leída
// @Tags         notifications
// @Produce      json
// @Param        id  path  string  true  "id de la notificación"
// @Success      200  {object}  dto.SuccessResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/notifications/{id}/read [put]
func (h *NotificationHandler) MarkRead(c *fiber.Ctx) error {
	ident := GetIdentity(c)
	if err := h.uc.MarkRead(c.Context(), ident.ID, c.Params("id")); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "notificación no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.SuccessResponse{Success: true})
}
