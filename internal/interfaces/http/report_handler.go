package http

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/vacaciones-api/internal/application/dto"
	"github.com/jhoicas/vacaciones-api/internal/domain"
	"github.com/jhoicas/vacaciones-api/internal/domain/entity"
)

// reportGenerator contrato mínimo del reporte para el handler.
type reportGenerator interface {
	ApprovedVacationsPDF(ctx context.Context, from, to time.Time) ([]byte, error)
}

// ReportHandler sirve el reporte PDF de vacaciones aprobadas.
type ReportHandler struct {
	uc reportGenerator
}

// NewReportHandler construye el handler.
func NewReportHandler(uc reportGenerator) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// VacationsPDF godoc
// @Summary      Reporte PDF de vacaciones aprobadas en un rango (solo admin)
// @Tags         admin
// @Produce      application/pdf
// @Param        from  query  string  true  "YYYY-MM-DD"
// @Param        to    query  string  true  "YYYY-MM-DD"
// @Success      200   {file}  binary
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/admin/reports/vacations.pdf [get]
func (h *ReportHandler) VacationsPDF(c *fiber.Ctx) error {
	from, err := entity.ParseDate(c.Query("from"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from debe ser YYYY-MM-DD"})
	}
	to, err := entity.ParseDate(c.Query("to"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to debe ser YYYY-MM-DD"})
	}
	pdfBytes, err := h.uc.ApprovedVacationsPDF(c.Context(), from, to)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidDateRange) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_DATE_RANGE", Message: "la fecha final es anterior a la inicial"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="vacaciones.pdf"`)
	return c.Send(pdfBytes)
}
