// Package pdf genera el informe imprimible de renovaciones con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + rango        │  Fecha de generación        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Renovación | Empresa | Villa | Teléfono | Meses      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: total de clientes                                   │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

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

	"github.com/jhoicas/notify-renewals/internal/application/subscription"
	"github.com/jhoicas/notify-renewals/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// MarotoReportGenerator implementa subscription.RenewalReportGenerator usando Maroto v2.
type MarotoReportGenerator struct{}

var _ subscription.RenewalReportGenerator = (*MarotoReportGenerator)(nil)

// NewMarotoReportGenerator construye el generador.
func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

// GenerateRenewalReport genera el PDF y devuelve sus bytes.
func (g *MarotoReportGenerator) GenerateRenewalReport(_ context.Context, report subscription.RenewalReport) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(report.Title, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(report))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	if len(report.Customers) == 0 {
		m.AddRows(row.New(8).Add(col.New(12).Add(
			text.New("Sin renovaciones en el rango.", props.Text{
				Size: 9, Align: align.Center, Color: colorGray, Top: 2,
			}),
		)))
	}
	m.AddRows(tableDetailRows(report.Customers)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(len(report.Customers)))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: título y rango (izq), fecha de generación (der).
func headerRow(report subscription.RenewalReport) core.Row {
	rango := report.From
	if report.To != report.From {
		rango = report.From + " a " + report.To
	}
	return row.New(16).Add(
		col.New(8).Add(
			text.New(report.Title, props.Text{
				Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 1,
			}),
			text.New(rango, props.Text{Size: 9, Top: 9, Color: colorGray}),
		),
		col.New(4).Add(
			text.New("Generado: "+report.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Renovación", 2, align.Left),
		h("Empresa", 4, align.Left),
		h("Villa", 2, align.Left),
		h("Teléfono", 2, align.Left),
		h("Meses", 1, align.Center),
		h("Desde", 1, align.Right),
	)
}

// tableDetailRows: una fila por cliente.
func tableDetailRows(customers []*entity.Customer) []core.Row {
	result := make([]core.Row, 0, len(customers))
	cell := func(s string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(s, props.Text{Size: 8, Align: a, Top: 1, Left: 1, Right: 1}))
	}
	for _, c := range customers {
		result = append(result, row.New(7).Add(
			cell(c.RenewalDate, 2, align.Left),
			cell(c.Company, 4, align.Left),
			cell(orDash(c.Villa), 2, align.Left),
			cell(orDash(c.Telephone), 2, align.Left),
			cell(fmt.Sprintf("%d", c.Subscription), 1, align.Center),
			cell(c.SubscriptionDate, 1, align.Right),
		))
	}
	return result
}

func footerRow(total int) core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(fmt.Sprintf("Total de clientes: %d", total), props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 2,
		}),
	))
}

func orDash(s *string) string {
	if s == nil || *s == "" {
		return "—"
	}
	return *s
}
