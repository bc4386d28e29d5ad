package notification

import (
	"context"

	"github.com/jhoicas/vacaciones-api/internal/domain/entity"
	"github.com/jhoicas/vacaciones-api/internal/domain/repository"
)

// NotificationUseCase lectura y marcado de notificaciones, siempre acotado
// al destinatario.
type NotificationUseCase struct {
	notifications repository.NotificationRepository
}

// NewNotificationUseCase construye el caso de uso.
func NewNotificationUseCase(notifications repository.NotificationRepository) *NotificationUseCase {
	return &NotificationUseCase{notifications: notifications}
}

// List notificaciones del usuario, recientes primero.
func (uc *NotificationUseCase) List(ctx context.Context, userID string) ([]*entity.Notification, error) {
	return uc.notifications.ListByRecipient(ctx, userID)
}

// MarkRead marca una notificación como leída; solo su destinatario puede.
func (uc *NotificationUseCase) MarkRead(ctx context.Context, userID, id string) error {
	return uc.notifications.MarkRead(ctx, id, userID)
}
