// Package report arma el reporte PDF de vacaciones aprobadas en un rango.
package report

import (
	"context"
	"time"

	"github.com/jhoicas/vacaciones-api/internal/domain"
	"github.com/jhoicas/vacaciones-api/internal/domain/entity"
	"github.com/jhoicas/vacaciones-api/internal/domain/repository"
)

// Row es una fila del reporte: solicitud aprobada + datos de su dueño.
type Row struct {
	FullName  string
	Email     string
	Type      string
	DateFrom  time.Time
	DateTo    time.Time
	DaysTotal int
}

// VacationPDFGenerator puerto del generador del documento.
type VacationPDFGenerator interface {
	GenerateVacationReport(ctx context.Context, from, to time.Time, rows []Row) ([]byte, error)
}

// ReportUseCase caso de uso del reporte de vacaciones.
type ReportUseCase struct {
	vacations repository.VacationRepository
	profiles  repository.ProfileRepository
	generator VacationPDFGenerator
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(vacations repository.VacationRepository, profiles repository.ProfileRepository, generator VacationPDFGenerator) *ReportUseCase {
	return &ReportUseCase{vacations: vacations, profiles: profiles, generator: generator}
}

// ApprovedVacationsPDF genera el PDF de solicitudes aprobadas que tocan el
// rango [from, to]. Los nombres se resuelven por el procedimiento
// privilegiado: el reporte lo pide un admin y cruza filas de todos.
func (uc *ReportUseCase) ApprovedVacationsPDF(ctx context.Context, from, to time.Time) ([]byte, error) {
	if to.Before(from) {
		return nil, domain.ErrInvalidDateRange
	}
	list, err := uc.vacations.ListApprovedBetween(ctx, from, to)
	if err != nil {
		return nil, err
	}

	// Cache por usuario: varias solicitudes suelen compartir dueño.
	profileByID := make(map[string]*entity.Profile, len(list))
	rows := make([]Row, 0, len(list))
	for _, v := range list {
		p, ok := profileByID[v.UserID]
		if !ok {
			p, err = uc.profiles.GetPrivileged(ctx, v.UserID)
			if err != nil {
				return nil, err
			}
			profileByID[v.UserID] = p
		}
		row := Row{
			Type:      v.Type,
			DateFrom:  v.DateFrom,
			DateTo:    v.DateTo,
			DaysTotal: v.DaysTotal,
		}
		if p != nil {
			row.FullName = p.FullName
			row.Email = p.Email
		}
		rows = append(rows, row)
	}
	return uc.generator.GenerateVacationReport(ctx, from, to, rows)
}
