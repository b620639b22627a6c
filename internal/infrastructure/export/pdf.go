package export

import (
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

	"github.com/jiajian124-sketch/HAILANG/internal/application/dto"
	"github.com/jiajian124-sketch/HAILANG/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	pdfColorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	pdfColorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ReportPDF genera el PDF del reporte mensual de un cliente y devuelve sus
// bytes.
//
// Layout de la página A4:
//
//	┌──────────────────────────────────────────────────────┐
//	│  HEADER: Cliente + Mes                               │
//	│  RESUMEN: cantidad total / importe total             │
//	│  TABLA: desglose por producto                        │
//	│  TABLA: detalle por fecha (estado de pago incluido)  │
//	└──────────────────────────────────────────────────────┘
func ReportPDF(rep *dto.MonthlyReportDTO) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte mensual de salidas", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(pdfHeaderRow(rep))
	m.AddRows(line.NewRow(1, props.Line{Color: pdfColorPrimary, Thickness: 0.5}))
	m.AddRows(pdfSummaryRow(rep))
	m.AddRows(line.NewRow(1, props.Line{Color: pdfColorPrimary, Thickness: 0.3}))

	m.AddRows(pdfSectionTitle("Desglose por producto"))
	m.AddRows(pdfProductHeaderRow())
	for _, p := range rep.Products {
		m.AddRows(pdfProductRow(p))
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(pdfSectionTitle("Detalle"))
	m.AddRows(pdfDetailHeaderRow())
	for _, d := range rep.Details {
		m.AddRows(pdfDetailRow(d))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("export: generar PDF del reporte: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func pdfHeaderRow(rep *dto.MonthlyReportDTO) core.Row {
	name := rep.CustomerName
	if name == "" {
		name = rep.CustomerID
	}
	return row.New(14).Add(
		col.New(8).Add(
			text.New(name, props.Text{Style: fontstyle.Bold, Size: 13, Color: pdfColorPrimary, Top: 1}),
			text.New("Reporte mensual de salidas", props.Text{Size: 9, Top: 8, Color: pdfColorGray}),
		),
		col.New(4).Add(
			text.New(rep.Month, props.Text{Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 2}),
		),
	)
}

func pdfSummaryRow(rep *dto.MonthlyReportDTO) core.Row {
	return row.New(8).Add(
		col.New(6).Add(
			text.New("Cantidad total: "+rep.TotalQty.StringFixed(2), props.Text{Size: 10, Top: 1}),
		),
		col.New(6).Add(
			text.New("Importe total: "+rep.TotalAmount.StringFixed(2), props.Text{
				Size: 10, Style: fontstyle.Bold, Align: align.Right, Top: 1,
			}),
		),
	)
}

func pdfSectionTitle(title string) core.Row {
	return row.New(8).Add(
		col.New(12).Add(
			text.New(title, props.Text{Style: fontstyle.Bold, Size: 10, Color: pdfColorPrimary, Top: 2}),
		),
	)
}

func pdfProductHeaderRow() core.Row {
	return row.New(6).Add(
		pdfHeaderCell(6, "Producto", align.Left),
		pdfHeaderCell(3, "Cantidad", align.Right),
		pdfHeaderCell(3, "Importe", align.Right),
	)
}

func pdfProductRow(p dto.ProductBreakdownDTO) core.Row {
	name := p.ProductName
	if name == "" {
		name = p.ProductID
	}
	return row.New(5).Add(
		pdfCell(6, name, align.Left),
		pdfCell(3, p.Qty.StringFixed(2), align.Right),
		pdfCell(3, p.Amount.StringFixed(2), align.Right),
	)
}

func pdfDetailHeaderRow() core.Row {
	return row.New(6).Add(
		pdfHeaderCell(2, "Fecha", align.Left),
		pdfHeaderCell(3, "Producto", align.Left),
		pdfHeaderCell(1, "Cant.", align.Right),
		pdfHeaderCell(2, "Precio", align.Right),
		pdfHeaderCell(2, "Importe", align.Right),
		pdfHeaderCell(2, "Pago", align.Left),
	)
}

func pdfDetailRow(d dto.ReportDetailDTO) core.Row {
	name := d.ProductName
	if name == "" {
		name = d.ProductID
	}
	return row.New(5).Add(
		pdfCell(2, d.Date, align.Left),
		pdfCell(3, name, align.Left),
		pdfCell(1, d.Qty.StringFixed(2), align.Right),
		pdfCell(2, d.Price.StringFixed(2), align.Right),
		pdfCell(2, d.Amount.StringFixed(2), align.Right),
		pdfCell(2, entity.PaymentStatusLabel(d.PaymentStatus), align.Left),
	)
}

func pdfHeaderCell(size int, s string, a align.Type) core.Col {
	return col.New(size).Add(
		text.New(s, props.Text{Style: fontstyle.Bold, Size: 8, Align: a, Color: pdfColorGray}),
	)
}

func pdfCell(size int, s string, a align.Type) core.Col {
	return col.New(size).Add(
		text.New(s, props.Text{Size: 8, Align: a}),
	)
}
