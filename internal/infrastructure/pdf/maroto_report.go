// Package pdf implementa el reporte de vacaciones aprobadas con Maroto v2.
//
// Layout A4:
//
//	┌──────────────────────────────────────────────────────┐
//	│  HEADER: título + rango del reporte                  │
//	│  ──────────────────────────────────────────────────  │
//	│  TABLA: Empleado | Email | Tipo | Desde | Hasta | Días│
//	│  ──────────────────────────────────────────────────  │
//	│  TOTAL: días aprobados en el rango                   │
//	└──────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	appreport "github.com/jhoicas/vacaciones-api/internal/application/report"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var titleCaser = cases.Title(language.Spanish)

// MarotoReportGenerator implementa report.VacationPDFGenerator usando Maroto v2.
type MarotoReportGenerator struct{}

// NewMarotoReportGenerator construye el generador.
func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

// GenerateVacationReport genera el PDF y devuelve sus bytes.
func (g *MarotoReportGenerator) GenerateVacationReport(
	_ context.Context,
	from, to time.Time,
	rows []appreport.Row,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de vacaciones aprobadas", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(from, to))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow())
	total := 0
	for _, r := range rows {
		m.AddRows(tableDetailRow(r))
		total += r.DaysTotal
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalRow(len(rows), total))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

func headerRow(from, to time.Time) core.Row {
	rango := fmt.Sprintf("Del %s al %s", from.Format("02/01/2006"), to.Format("02/01/2006"))
	return row.New(14).Add(
		col.New(8).Add(
			text.New("VACACIONES APROBADAS", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(rango, props.Text{Size: 9, Top: 9, Color: colorGray}),
		),
		col.New(4).Add(
			text.New("Generado: "+time.Now().Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 1, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	header := func(s string, size int) core.Col {
		return col.New(size).Add(text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
		}))
	}
	return row.New(7).Add(
		header("Empleado", 3),
		header("Email", 3),
		header("Tipo", 2),
		header("Desde", 1),
		header("Hasta", 1),
		header("Días", 2),
	)
}

func tableDetailRow(r appreport.Row) core.Row {
	cell := func(s string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(s, props.Text{Size: 8, Top: 1, Align: a}))
	}
	return row.New(6).Add(
		cell(nonEmpty(r.FullName, "—"), 3, align.Left),
		cell(r.Email, 3, align.Left),
		cell(typeLabel(r.Type), 2, align.Left),
		cell(r.DateFrom.Format("02/01/06"), 1, align.Left),
		cell(r.DateTo.Format("02/01/06"), 1, align.Left),
		cell(fmt.Sprintf("%d", r.DaysTotal), 2, align.Left),
	)
}

func totalRow(count, totalDays int) core.Row {
	return row.New(8).Add(
		col.New(12).Add(
			text.New(fmt.Sprintf("%d solicitudes — %d días aprobados", count, totalDays), props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 2,
			}),
		),
	)
}

// typeLabel traduce el tipo interno a su etiqueta de reporte.
func typeLabel(t string) string {
	switch t {
	case "annual":
		return titleCaser.String("vacaciones anuales")
	case "sick":
		return titleCaser.String("incapacidad")
	case "day-off":
		return titleCaser.String("día libre")
	default:
		return t
	}
}

func nonEmpty(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
