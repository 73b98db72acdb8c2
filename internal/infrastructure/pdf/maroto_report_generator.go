// Package pdf implementa la generación del reporte de stock en PDF para
// revisión de reposición fuera de línea.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + rango de fechas + fecha de generación      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: movimientos por tipo (cantidad total, entradas)    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  SALUD: total productos / en stock / stock bajo / agotados   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: productos en stock bajo (más urgente primero)        │
//	└─────────────────────────────────────────────────────────────┘
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

	"github.com/EmreCanPalaz/Stok-kontrol-sub000/internal/application/dto"
	"github.com/EmreCanPalaz/Stok-kontrol-sub000/internal/application/stock"
)

var _ stock.ReportPDFGenerator = (*MarotoReportGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 170, Green: 30, Blue: 30}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoReportGenerator implementa stock.ReportPDFGenerator usando Maroto v2.
type MarotoReportGenerator struct{}

// NewMarotoReportGenerator construye el generador.
func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

// GenerateStockReportPDF genera el PDF del reporte y devuelve sus bytes.
func (g *MarotoReportGenerator) GenerateStockReportPDF(
	_ context.Context,
	report *dto.StockReportDTO,
	lowStock []dto.LowStockItemDTO,
	generatedAt time.Time,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de Stock", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(generatedAt))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	// Resumen de movimientos por tipo
	m.AddRows(sectionTitleRow("MOVIMIENTOS POR TIPO"))
	m.AddRows(summaryHeaderRow())
	for _, r := range summaryRows(report.ByType) {
		m.AddRows(r)
	}

	// Salud del catálogo
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(healthRow(report))

	// Productos en stock bajo
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(sectionTitleRow("PRODUCTOS EN STOCK BAJO"))
	if len(lowStock) == 0 {
		m.AddRows(row.New(7).Add(col.New(12).Add(
			text.New("Ningún producto bajo su umbral.", props.Text{Size: 8, Color: colorGray, Top: 1}),
		)))
	} else {
		m.AddRows(lowStockHeaderRow())
		for _, r := range lowStockRows(lowStock) {
			m.AddRows(r)
		}
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título (izq) y fecha de generación (der).
func headerRow(generatedAt time.Time) core.Row {
	return row.New(14).Add(
		col.New(7).Add(
			text.New("REPORTE DE STOCK", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(5).Add(
			text.New("Generado: "+generatedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 4, Color: colorGray,
			}),
		),
	)
}

func sectionTitleRow(title string) core.Row {
	return row.New(9).Add(col.New(12).Add(
		text.New(title, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2}),
	))
}

func summaryHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Top: 1,
		}))
	}
	return row.New(7).Add(
		h("Tipo", 4, align.Left),
		h("Cantidad total", 4, align.Right),
		h("Movimientos", 4, align.Right),
	)
}

func summaryRows(byType []dto.MovementTypeSummaryDTO) []core.Row {
	result := make([]core.Row, 0, len(byType))
	for _, s := range byType {
		result = append(result, row.New(6).Add(
			col.New(4).Add(text.New(s.Type, props.Text{Size: 8, Top: 1})),
			col.New(4).Add(text.New(fmt.Sprintf("%d", s.TotalQuantity), props.Text{Size: 8, Align: align.Right, Top: 1})),
			col.New(4).Add(text.New(fmt.Sprintf("%d", s.Count), props.Text{Size: 8, Align: align.Right, Top: 1})),
		))
	}
	return result
}

// healthRow: contadores de salud del catálogo en una sola franja.
func healthRow(report *dto.StockReportDTO) core.Row {
	cell := func(label string, value int64, c *props.Color) core.Col {
		return col.New(3).Add(
			text.New(label, props.Text{Size: 7, Color: colorGray, Top: 1}),
			text.New(fmt.Sprintf("%d", value), props.Text{Style: fontstyle.Bold, Size: 11, Color: c, Top: 5}),
		)
	}
	return row.New(13).Add(
		cell("Productos activos", report.TotalProducts, colorPrimary),
		cell("Disponibles", report.InStockCount, colorPrimary),
		cell("Stock bajo", report.LowStockCount, colorAlert),
		cell("Agotados", report.OutOfStockCount, colorAlert),
	)
}

func lowStockHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Top: 1,
		}))
	}
	return row.New(7).Add(
		h("Producto", 6, align.Left),
		h("Cantidad", 2, align.Right),
		h("Umbral", 2, align.Right),
		h("Estado", 2, align.Center),
	)
}

func lowStockRows(items []dto.LowStockItemDTO) []core.Row {
	result := make([]core.Row, 0, len(items))
	for _, it := range items {
		statusColor := colorGray
		if it.Status == "out_of_stock" {
			statusColor = colorAlert
		}
		result = append(result, row.New(6).Add(
			col.New(6).Add(text.New(it.Title, props.Text{Size: 8, Top: 1})),
			col.New(2).Add(text.New(fmt.Sprintf("%d", it.Quantity), props.Text{Size: 8, Align: align.Right, Top: 1})),
			col.New(2).Add(text.New(fmt.Sprintf("%d", it.LowStockThreshold), props.Text{Size: 8, Align: align.Right, Top: 1})),
			col.New(2).Add(text.New(it.Status, props.Text{Size: 7, Align: align.Center, Top: 1, Color: statusColor})),
		))
	}
	return result
}
