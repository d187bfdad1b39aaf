package analytics

import (
	"context"

	"github.com/shopspring/decimal"
	appinventory "github.com/vcmdu/Stock-master/internal/application/inventory"
	"github.com/vcmdu/Stock-master/internal/domain/entity"
	"github.com/vcmdu/Stock-master/internal/domain/inventory"
)

// InventoryReader consultas de solo lectura sobre el estado del inventario.
// *appinventory.Service lo implementa.
type InventoryReader interface {
	ListProducts(f appinventory.ProductFilter) []*entity.Product
	ListTransactions(f appinventory.TransactionFilter) []*entity.Transaction
	RecentTransactions(n int) []*entity.Transaction
	ReportTotals(txs []*entity.Transaction) inventory.ReportTotals
	ValueHistory(from, to entity.Date, g inventory.Granularity) (*appinventory.ValueHistory, error)
}

var _ InventoryReader = (*appinventory.Service)(nil)

// TransactionReport datos del reporte PDF de transacciones.
type TransactionReport struct {
	From         entity.Date // cero = sin límite
	To           entity.Date
	GeneratedOn  entity.Date
	Transactions []*entity.Transaction
	Totals       inventory.ReportTotals
}

// InventoryReport datos del resumen PDF del inventario.
type InventoryReport struct {
	GeneratedOn entity.Date
	Products    []*entity.Product
	TotalValue  decimal.Decimal
}

// PDFGenerator puerto de generación de los reportes en PDF.
type PDFGenerator interface {
	TransactionReportPDF(ctx context.Context, r TransactionReport) ([]byte, error)
	InventoryReportPDF(ctx context.Context, r InventoryReport) ([]byte, error)
}
