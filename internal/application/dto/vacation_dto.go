package dto

import (
	"time"

	"github.com/jhoicas/vacaciones-api/internal/domain/entity"
)

// VacationInput entrada para crear o editar una solicitud. Las fechas van
// como "YYYY-MM-DD". DaysTotal nunca se acepta del cliente: se recalcula
// siempre en el servidor.
type VacationInput struct {
	Type     string `json:"type" validate:"required,oneof=annual sick day-off"`
	DateFrom string `json:"date_from" validate:"required"`
	DateTo   string `json:"date_to" validate:"required"`
	Comment  string `json:"comment" validate:"omitempty,max=500"`
}

// VacationResponse salida de una solicitud.
type VacationResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Type      string    `json:"type"`
	DateFrom  string    `json:"date_from"`
	DateTo    string    `json:"date_to"`
	DaysTotal int       `json:"days_total"`
	Comment   string    `json:"comment,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// ToVacationResponse convierte la entidad a su DTO de salida.
func ToVacationResponse(v *entity.VacationRequest) VacationResponse {
	return VacationResponse{
		ID:        v.ID,
		UserID:    v.UserID,
		Type:      v.Type,
		DateFrom:  v.DateFrom.Format("2006-01-02"),
		DateTo:    v.DateTo.Format("2006-01-02"),
		DaysTotal: v.DaysTotal,
		Comment:   v.Comment,
		Status:    v.Status,
		CreatedAt: v.CreatedAt,
	}
}

// ToVacationResponses convierte una lista de entidades.
func ToVacationResponses(list []*entity.VacationRequest) []VacationResponse {
	out := make([]VacationResponse, 0, len(list))
	for _, v := range list {
		out = append(out, ToVacationResponse(v))
	}
	return out
}

// NotificationResponse salida de una notificación.
type NotificationResponse struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

// ToNotificationResponses convierte una lista de notificaciones.
func ToNotificationResponses(list []*entity.Notification) []NotificationResponse {
	out := make([]NotificationResponse, 0, len(list))
	for _, n := range list {
		out = append(out, NotificationResponse{
			ID:        n.ID,
			Message:   n.Message,
			IsRead:    n.IsRead,
			CreatedAt: n.CreatedAt,
		})
	}
	return out
}
