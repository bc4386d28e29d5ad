// Package vacation implementa el ciclo de vida de las solicitudes:
// pending -> approved | rejected, con las restricciones de actor y estado.
package vacation

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/vacaciones-api/internal/application/dto"
	"github.com/jhoicas/vacaciones-api/internal/domain"
	"github.com/jhoicas/vacaciones-api/internal/domain/entity"
	"github.com/jhoicas/vacaciones-api/internal/domain/repository"
	"github.com/jhoicas/vacaciones-api/pkg/logger"
)

// Actor es quien ejecuta la operación, con identidad y rol resueltos en el
// servidor (nunca tomados del cuerpo del request).
type Actor struct {
	UserID string
	Role   string
}

// IsAdmin indica si el actor es administrador.
func (a Actor) IsAdmin() bool { return a.Role == entity.RoleAdmin }

// VacationUseCase casos de uso del ciclo de vida de solicitudes.
type VacationUseCase struct {
	vacations     repository.VacationRepository
	notifications repository.NotificationRepository
	log           *logger.Logger
}

// NewVacationUseCase construye el caso de uso.
func NewVacationUseCase(vacations repository.VacationRepository, notifications repository.NotificationRepository, log *logger.Logger) *VacationUseCase {
	return &VacationUseCase{vacations: vacations, notifications: notifications, log: log}
}

// Create crea una solicitud pendiente para el actor. Valida el rango de
// fechas antes de persistir y recalcula days_total en el servidor.
func (uc *VacationUseCase) Create(ctx context.Context, actor Actor, in dto.VacationInput) (*entity.VacationRequest, error) {
	from, to, err := validateInput(in)
	if err != nil {
		return nil, err
	}
	v := &entity.VacationRequest{
		ID:        uuid.NewString(),
		UserID:    actor.UserID,
		Type:      in.Type,
		DateFrom:  from,
		DateTo:    to,
		DaysTotal: entity.TotalDays(from, to),
		Comment:   in.Comment,
		Status:    entity.StatusPending,
		CreatedAt: time.Now(),
	}
	if err := uc.vacations.Create(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

// Update edita los campos de contenido. Solo el dueño, y solo mientras la
// solicitud siga pendiente.
func (uc *VacationUseCase) Update(ctx context.Context, actor Actor, id string, in dto.VacationInput) (*entity.VacationRequest, error) {
	v, err := uc.vacations.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, domain.ErrNotFound
	}
	if v.UserID != actor.UserID {
		return nil, domain.ErrForbidden
	}
	if !v.IsPending() {
		return nil, domain.ErrNotPending
	}
	from, to, err := validateInput(in)
	if err != nil {
		return nil, err
	}
	v.Type = in.Type
	v.DateFrom = from
	v.DateTo = to
	v.DaysTotal = entity.TotalDays(from, to)
	v.Comment = in.Comment
	// El repo re-verifica el estado en el WHERE: entre el fetch y el update
	// un admin pudo aprobar.
	if err := uc.vacations.UpdateContent(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

// Approve transiciona pending -> approved. Solo un admin.
func (uc *VacationUseCase) Approve(ctx context.Context, actor Actor, id string) error {
	return uc.transition(ctx, actor, id, entity.StatusApproved)
}

// Reject transiciona pending -> rejected. Solo un admin.
func (uc *VacationUseCase) Reject(ctx context.Context, actor Actor, id string) error {
	return uc.transition(ctx, actor, id, entity.StatusRejected)
}

func (uc *VacationUseCase) transition(ctx context.Context, actor Actor, id, newStatus string) error {
	if !actor.IsAdmin() {
		return domain.ErrForbidden
	}
	v, err := uc.vacations.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if v == nil {
		return domain.ErrNotFound
	}
	if err := uc.vacations.UpdateStatusIfPending(ctx, id, newStatus); err != nil {
		return err
	}
	uc.notifyOwner(ctx, v, newStatus)
	return nil
}

// notifyOwner emite la notificación del resultado. Fire-and-forget: un fallo
// aquí no revierte la transición ya confirmada.
func (uc *VacationUseCase) notifyOwner(ctx context.Context, v *entity.VacationRequest, newStatus string) {
	verb := "aprobada"
	if newStatus == entity.StatusRejected {
		verb = "rechazada"
	}
	n := &entity.Notification{
		ID:     uuid.NewString(),
		UserID: v.UserID,
		Message: fmt.Sprintf("Tu solicitud de vacaciones (%s – %s) fue %s.",
			v.DateFrom.Format("02/01/2006"), v.DateTo.Format("02/01/2006"), verb),
		CreatedAt: time.Now(),
	}
	if err := uc.notifications.Create(ctx, n); err != nil {
		uc.log.Warn().Err(err).Str("vacation_id", v.ID).Str("user_id", v.UserID).Msg("no se pudo emitir la notificación")
	}
}

// Delete elimina la solicitud en cualquier estado. Permitido para su dueño o
// cualquier admin; denegado para el resto.
func (uc *VacationUseCase) Delete(ctx context.Context, actor Actor, id string) error {
	v, err := uc.vacations.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if v == nil {
		return domain.ErrNotFound
	}
	if v.UserID != actor.UserID && !actor.IsAdmin() {
		return domain.ErrForbidden
	}
	return uc.vacations.Delete(ctx, id)
}

// ListOwn lista las solicitudes del actor. La lectura directa puede venir
// suprimida por las reglas de visibilidad (el contexto de sesión no siempre
// llega al almacén); si no devuelve nada, se reintenta por el procedimiento
// privilegiado.
func (uc *VacationUseCase) ListOwn(ctx context.Context, actor Actor) ([]*entity.VacationRequest, error) {
	list, err := uc.vacations.ListByUser(ctx, actor.UserID)
	if err == nil && len(list) > 0 {
		return list, nil
	}
	if err != nil {
		uc.log.Debug().Err(err).Str("user_id", actor.UserID).Msg("lectura directa de vacaciones falló, intentando procedimiento privilegiado")
	}
	priv, privErr := uc.vacations.ListByUserPrivileged(ctx, actor.UserID)
	if privErr != nil {
		if err != nil {
			return nil, err
		}
		return nil, privErr
	}
	return priv, nil
}

// ListPending bandeja de pendientes (vista de administración).
func (uc *VacationUseCase) ListPending(ctx context.Context, actor Actor) ([]*entity.VacationRequest, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	return uc.vacations.ListByStatus(ctx, entity.StatusPending)
}

// ListAll todas las solicitudes (vista de administración).
func (uc *VacationUseCase) ListAll(ctx context.Context, actor Actor) ([]*entity.VacationRequest, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	return uc.vacations.ListAll(ctx)
}

// Calendar solicitudes aprobadas que tocan el rango [from, to]; visible para
// cualquier rol autenticado.
func (uc *VacationUseCase) Calendar(ctx context.Context, from, to time.Time) ([]*entity.VacationRequest, error) {
	if to.Before(from) {
		return nil, domain.ErrInvalidDateRange
	}
	return uc.vacations.ListApprovedBetween(ctx, from, to)
}

// validateInput valida tipo y rango y devuelve las fechas interpretadas.
// Un rango con date_to < date_from se rechaza antes de tocar el almacén.
func validateInput(in dto.VacationInput) (from, to time.Time, err error) {
	if !entity.ValidVacationType(in.Type) {
		return from, to, domain.ErrInvalidInput
	}
	from, err = entity.ParseDate(in.DateFrom)
	if err != nil {
		return from, to, domain.ErrInvalidInput
	}
	to, err = entity.ParseDate(in.DateTo)
	if err != nil {
		return from, to, domain.ErrInvalidInput
	}
	if to.Before(from) {
		return from, to, domain.ErrInvalidDateRange
	}
	return from, to, nil
}
