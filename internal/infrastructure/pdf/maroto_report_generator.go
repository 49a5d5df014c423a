// Package pdf implementa la generación del reporte de stock bajo en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: StockWatch + Cliente  │  Fecha de generación       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: SKU | Producto | Ubicación | Cantidad | Umbral       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: total de filas bajo umbral                         │
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
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jhoicas/StockWatch-api/internal/application/ports"
	"github.com/jhoicas/StockWatch-api/internal/domain/entity"
)

var _ ports.LowStockPDFGenerator = (*MarotoReportGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 180, Green: 40, Blue: 40}
)

// printer formatea cantidades con separador de miles en convención es.
var printer = message.NewPrinter(language.Spanish)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoReportGenerator implementa ports.LowStockPDFGenerator usando Maroto v2.
type MarotoReportGenerator struct{}

// NewMarotoReportGenerator construye el generador.
func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

// GenerateLowStockPDF genera el PDF del reporte y devuelve sus bytes.
// Los ítems llegan ya ordenados por el evaluador; el PDF respeta ese orden.
func (g *MarotoReportGenerator) GenerateLowStockPDF(
	_ context.Context,
	customer *entity.Customer,
	items []entity.LowStockItem,
	generatedAt time.Time,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de Stock Bajo", true).
		WithAuthor("StockWatch", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(customer, generatedAt))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	if len(items) == 0 {
		m.AddRows(row.New(12).Add(col.New(12).Add(
			text.New("Sin productos bajo umbral en este momento.", props.Text{
				Size: 10, Align: align.Center, Color: colorGray, Top: 4,
			}),
		)))
	} else {
		m.AddRows(tableHeaderRow())
		for _, r := range tableItemRows(items) {
			m.AddRows(r)
		}
		m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
		m.AddRows(summaryRow(len(items)))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título + cliente (izq) y fecha de generación (der).
func headerRow(customer *entity.Customer, generatedAt time.Time) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New("Reporte de Stock Bajo", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(customer.Name, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("STOCKWATCH", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New("Generado: "+generatedAt.Format("02/01/2006 15:04 MST"), props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de ítems.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("SKU", 2, align.Left),
		h("Producto", 4, align.Left),
		h("Ubicación", 3, align.Left),
		h("Cantidad", 1, align.Right),
		h("Umbral", 2, align.Right),
	)
}

// tableItemRows: una fila por par (producto, ubicación) bajo umbral.
func tableItemRows(items []entity.LowStockItem) []core.Row {
	result := make([]core.Row, 0, len(items))
	for _, it := range items {
		result = append(result, row.New(7).Add(
			col.New(2).Add(text.New(
				it.ProductSKU,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(4).Add(text.New(
				it.ProductName,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(3).Add(text.New(
				it.LocationName,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(1).Add(text.New(
				printer.Sprintf("%d", it.CurrentQuantity),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1, Color: colorAlert, Style: fontstyle.Bold},
			)),
			col.New(2).Add(text.New(
				printer.Sprintf("%d", it.ThresholdQuantity),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// summaryRow: total de filas bajo umbral.
func summaryRow(count int) core.Row {
	return row.New(10).Add(
		col.New(12).Add(text.New(
			printer.Sprintf("%d producto(s)/ubicación(es) en o por debajo de su umbral", count),
			props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Color: colorAlert, Top: 2, Right: 1},
		)),
	)
}
