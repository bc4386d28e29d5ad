package repository

import (
	"context"

	"github.com/jhoicas/vacaciones-api/internal/domain/entity"
)

// NotificationRepository puerto de persistencia para notificaciones.
type NotificationRepository interface {
	Create(ctx context.Context, n *entity.Notification) error
	ListByRecipient(ctx context.Context, userID string) ([]*entity.Notification, error)
	// MarkRead marca como leída solo si la notificación pertenece al
	// destinatario; devuelve domain.ErrNotFound en caso contrario.
	MarkRead(ctx context.Context, id, userID string) error
}
