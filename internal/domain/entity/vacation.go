package entity

import "time"

// Tipos de solicitud de vacaciones.
const (
	VacationAnnual = "annual"
	VacationSick   = "sick"
	VacationDayOff = "day-off"
)

// Estados del ciclo de vida. pending es el inicial; approved y rejected son
// terminales para el campo status (el registro sigue siendo borrable).
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// ValidVacationType indica si el tipo es uno de los conocidos.
func ValidVacationType(t string) bool {
	return t == VacationAnnual || t == VacationSick || t == VacationDayOff
}

// VacationRequest es una solicitud de vacaciones de un empleado.
// Invariantes: DateTo >= DateFrom; DaysTotal = días entre ambas fechas,
// ambos extremos incluidos, siempre recalculado en el servidor.
type VacationRequest struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Type      string    `json:"type"`
	DateFrom  time.Time `json:"date_from"`
	DateTo    time.Time `json:"date_to"`
	DaysTotal int       `json:"days_total"`
	Comment   string    `json:"comment,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// IsPending indica si la solicitud sigue pendiente (editable por su dueño,
// aprobable/rechazable por un admin).
func (v *VacationRequest) IsPending() bool {
	return v.Status == StatusPending
}

// TotalDays calcula el número de días del rango con ambos extremos incluidos:
// (2024-03-01, 2024-03-01) -> 1, (2024-03-01, 2024-03-05) -> 5.
// Asume fechas normalizadas a medianoche UTC (ver ParseDate).
func TotalDays(from, to time.Time) int {
	return int(to.Sub(from)/(24*time.Hour)) + 1
}

// ParseDate interpreta una fecha "YYYY-MM-DD" a medianoche UTC.
func ParseDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}
