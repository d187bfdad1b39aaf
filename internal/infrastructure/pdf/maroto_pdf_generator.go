// Package pdf implementa los reportes en PDF del inventario.
//
// Layout común (A4):
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: nombre de la tienda  │  título + fecha de emisión   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: una fila por transacción o producto                  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES                                                     │
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

	"github.com/vcmdu/Stock-master/internal/application/analytics"
	"github.com/vcmdu/Stock-master/internal/domain/entity"
	"github.com/vcmdu/Stock-master/pkg/money"
)

var _ analytics.PDFGenerator = (*MarotoPDFGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorRed     = &props.Color{Red: 180, Green: 30, Blue: 30}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa analytics.PDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	storeName string
}

// NewMarotoPDFGenerator construye el generador; storeName va en el encabezado.
func NewMarotoPDFGenerator(storeName string) *MarotoPDFGenerator {
	return &MarotoPDFGenerator{storeName: storeName}
}

// TransactionReportPDF tabla de transacciones del rango con ventas, compras y utilidad.
func (g *MarotoPDFGenerator) TransactionReportPDF(_ context.Context, r analytics.TransactionReport) ([]byte, error) {
	m := g.newDocument("Transaction Report")

	m.AddRows(g.headerRow("TRANSACTION REPORT", r.GeneratedOn))
	m.AddRows(text.NewRow(6, "Period: "+period(r.From, r.To), props.Text{Size: 8, Color: colorGray, Top: 1}))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow([]headerCol{
		{"Date", 2, align.Left},
		{"Type", 1, align.Center},
		{"Product", 4, align.Left},
		{"Qty", 1, align.Right},
		{"Price", 2, align.Right},
		{"Total", 2, align.Right},
	}))
	for _, t := range r.Transactions {
		m.AddRows(row.New(6).Add(
			cell(t.Date.String(), 2, align.Left, nil),
			cell(string(t.Type), 1, align.Center, typeColor(t.Type)),
			cell(productLabel(t.ProductName, t.ProductBrand), 4, align.Left, nil),
			cell(money.Quantity(t.Quantity)+" "+string(t.UnitType), 1, align.Right, nil),
			cell(money.Format(t.Price), 2, align.Right, nil),
			cell(money.Format(t.Total), 2, align.Right, nil),
		))
	}
	if len(r.Transactions) == 0 {
		m.AddRows(text.NewRow(8, "No transactions in this period.", props.Text{Size: 8, Color: colorGray, Align: align.Center, Top: 2}))
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow([][2]string{
		{"Sales:", money.Format(r.Totals.SalesRevenue)},
		{"Purchases:", money.Format(r.Totals.PurchasesCost)},
		{"Cost of goods sold:", money.Format(r.Totals.CostOfGoodsSold)},
		{"NET PROFIT:", money.Format(r.Totals.NetProfit)},
	}))

	return generate(m)
}

// InventoryReportPDF stock, estado y valor de cada producto con el valor total.
func (g *MarotoPDFGenerator) InventoryReportPDF(_ context.Context, r analytics.InventoryReport) ([]byte, error) {
	m := g.newDocument("Inventory Summary")

	m.AddRows(g.headerRow("INVENTORY SUMMARY", r.GeneratedOn))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow([]headerCol{
		{"Product", 4, align.Left},
		{"Stock", 2, align.Right},
		{"Min", 1, align.Right},
		{"Buy price", 2, align.Right},
		{"Value", 2, align.Right},
		{"Status", 1, align.Center},
	}))
	for _, p := range r.Products {
		status := p.Status()
		var c *props.Color
		if status != entity.StatusOK {
			c = colorRed
		}
		m.AddRows(row.New(6).Add(
			cell(productLabel(p.Name, p.Brand), 4, align.Left, nil),
			cell(money.Quantity(p.Stock)+" "+string(p.UnitType), 2, align.Right, nil),
			cell(money.Quantity(p.MinStock), 1, align.Right, nil),
			cell(money.Format(p.BuyPrice), 2, align.Right, nil),
			cell(money.Format(p.Value()), 2, align.Right, nil),
			cell(string(status), 1, align.Center, c),
		))
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow([][2]string{
		{"Products:", fmt.Sprintf("%d", len(r.Products))},
		{"TOTAL VALUE:", money.Format(r.TotalValue)},
	}))

	return generate(m)
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func (g *MarotoPDFGenerator) newDocument(title string) core.Maroto {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 8}).
		WithTitle(title, true).
		WithAuthor(g.storeName, true).
		Build()
	return maroto.New(cfg)
}

// headerRow: nombre de la tienda (izq) y título + fecha (der).
func (g *MarotoPDFGenerator) headerRow(title string, on entity.Date) core.Row {
	return row.New(16).Add(
		col.New(7).Add(
			text.New(g.storeName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(5).Add(
			text.New(title, props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New("Generated: "+on.String(), props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
		),
	)
}

type headerCol struct {
	label string
	size  int
	align align.Type
}

func tableHeaderRow(cols []headerCol) core.Row {
	r := row.New(7)
	for _, c := range cols {
		r.Add(col.New(c.size).Add(text.New(c.label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: c.align,
			Color: colorPrimary, Top: 1.5, Left: 1, Right: 1,
		})))
	}
	return r
}

func cell(value string, size int, a align.Type, color *props.Color) core.Col {
	return col.New(size).Add(text.New(value, props.Text{
		Size: 8, Align: a, Top: 1, Left: 1, Right: 1, Color: color,
	}))
}

// totalsRow: etiquetas y valores alineados a la derecha.
func totalsRow(lines [][2]string) core.Row {
	labels := col.New(4)
	values := col.New(3)
	for i, l := range lines {
		top := float64(i*6 + 1)
		labels.Add(text.New(l[0], props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: top}))
		values.Add(text.New(l[1], props.Text{Size: 9, Align: align.Right, Right: 1, Top: top}))
	}
	return row.New(float64(len(lines)*6 + 4)).Add(col.New(5), labels, values)
}

func generate(m core.Maroto) ([]byte, error) {
	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── helpers ───────────────────────────────────────────────────────────────────

func period(from, to entity.Date) string {
	switch {
	case from.IsZero() && to.IsZero():
		return "all dates"
	case from.IsZero():
		return "up to " + to.String()
	case to.IsZero():
		return "from " + from.String()
	}
	return from.String() + " to " + to.String()
}

func productLabel(name, brand string) string {
	if brand == "" {
		return name
	}
	return name + " (" + brand + ")"
}

func typeColor(t entity.TransactionType) *props.Color {
	if t == entity.TransactionOut {
		return colorRed
	}
	return colorPrimary
}
