package repository

import (
	"context"
	"time"

	"github.com/jhoicas/vacaciones-api/internal/domain/entity"
)

// VacationRepository puerto de persistencia para solicitudes de vacaciones.
type VacationRepository interface {
	Create(ctx context.Context, v *entity.VacationRequest) error
	GetByID(ctx context.Context, id string) (*entity.VacationRequest, error)

	// UpdateContent actualiza los campos de contenido (tipo, fechas, días,
	// comentario) solo si la fila sigue en pending. Devuelve
	// domain.ErrNotPending si la condición no se cumple.
	UpdateContent(ctx context.Context, v *entity.VacationRequest) error

	// UpdateStatusIfPending transiciona pending -> approved|rejected con un
	// guard condicional en la fila: dos transiciones concurrentes no pueden
	// pisarse, la segunda recibe domain.ErrNotPending.
	UpdateStatusIfPending(ctx context.Context, id, newStatus string) error

	Delete(ctx context.Context, id string) error

	// ListByUser lectura directa (sujeta a visibilidad por fila).
	ListByUser(ctx context.Context, userID string) ([]*entity.VacationRequest, error)
	// ListByUserPrivileged procedimiento con confianza elevada, misma forma.
	ListByUserPrivileged(ctx context.Context, userID string) ([]*entity.VacationRequest, error)

	ListByStatus(ctx context.Context, status string) ([]*entity.VacationRequest, error)
	ListAll(ctx context.Context) ([]*entity.VacationRequest, error)

	// ListApprovedBetween devuelve las solicitudes aprobadas que tocan el
	// rango [from, to] (para el calendario y el reporte PDF).
	ListApprovedBetween(ctx context.Context, from, to time.Time) ([]*entity.VacationRequest, error)
}
