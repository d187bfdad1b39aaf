package analytics

import (
	"context"
	"slices"

	"github.com/shopspring/decimal"
	"github.com/vcmdu/Stock-master/internal/application/dto"
	appinventory "github.com/vcmdu/Stock-master/internal/application/inventory"
	"github.com/vcmdu/Stock-master/internal/domain/entity"
	"github.com/vcmdu/Stock-master/internal/domain/inventory"
)

// ReportUseCase reportes por rango de fechas, curva de valor y exportación a PDF.
type ReportUseCase struct {
	inv   InventoryReader
	pdf   PDFGenerator
	clock appinventory.Clock
}

// NewReportUseCase construye el caso de uso. clock nil usa la fecha local.
func NewReportUseCase(inv InventoryReader, pdf PDFGenerator, clock appinventory.Clock) *ReportUseCase {
	if clock == nil {
		clock = entity.Today
	}
	return &ReportUseCase{inv: inv, pdf: pdf, clock: clock}
}

// Summary transacciones filtradas (más recientes primero) con ventas, compras, costo de lo vendido y utilidad.
func (uc *ReportUseCase) Summary(f appinventory.TransactionFilter) *dto.ReportSummaryDTO {
	txs := uc.inv.ListTransactions(f)
	out := &dto.ReportSummaryDTO{
		Count:        len(txs),
		Totals:       uc.inv.ReportTotals(txs),
		Transactions: txs,
	}
	if !f.From.IsZero() {
		out.From = f.From.String()
	}
	if !f.To.IsZero() {
		out.To = f.To.String()
	}
	return out
}

// ValueSeries curva del valor del inventario entre from y to.
// to vacío = hoy; from vacío = fecha de la primera transacción (o to si no hay ninguna).
func (uc *ReportUseCase) ValueSeries(from, to entity.Date, g inventory.Granularity) (*dto.ValueSeriesDTO, error) {
	if g == "" {
		g = inventory.GranularityMonth
	}
	if to.IsZero() {
		to = uc.clock()
	}
	h, err := uc.inv.ValueHistory(from, to, g)
	if err != nil {
		return nil, err
	}
	return &dto.ValueSeriesDTO{
		Granularity: string(g),
		Points:      h.Points,
		Current:     h.Current,
	}, nil
}

// TransactionReportPDF reporte de transacciones del rango en PDF.
func (uc *ReportUseCase) TransactionReportPDF(ctx context.Context, f appinventory.TransactionFilter) ([]byte, error) {
	txs := uc.inv.ListTransactions(f)
	return uc.pdf.TransactionReportPDF(ctx, TransactionReport{
		From:         f.From,
		To:           f.To,
		GeneratedOn:  uc.clock(),
		Transactions: txs,
		Totals:       uc.inv.ReportTotals(txs),
	})
}

// InventoryReportPDF resumen del inventario actual en PDF, ordenado por nombre.
func (uc *ReportUseCase) InventoryReportPDF(ctx context.Context) ([]byte, error) {
	products := uc.inv.ListProducts(appinventory.ProductFilter{})
	slices.SortStableFunc(products, func(a, b *entity.Product) int {
		return compareFold(a.Name, b.Name)
	})
	total := decimal.Zero
	for _, p := range products {
		total = total.Add(p.Value())
	}
	return uc.pdf.InventoryReportPDF(ctx, InventoryReport{
		GeneratedOn: uc.clock(),
		Products:    products,
		TotalValue:  total,
	})
}
