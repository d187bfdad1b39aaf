package inventory

import (
	"github.com/shopspring/decimal"
	"github.com/vcmdu/Stock-master/internal/domain/entity"
)

// ReportTotals totales de un conjunto de movimientos.
type ReportTotals struct {
	SalesRevenue    decimal.Decimal `json:"salesRevenue"`
	PurchasesCost   decimal.Decimal `json:"purchasesCost"`
	CostOfGoodsSold decimal.Decimal `json:"costOfGoodsSold"`
	NetProfit       decimal.Decimal `json:"netProfit"`
}

// PriceLookup devuelve el precio de compra actual de un producto; ok=false si ya no existe.
type PriceLookup func(id entity.ID) (decimal.Decimal, bool)

// Totals calcula ventas, compras y utilidad.
// El costo de lo vendido usa el precio de compra ACTUAL del producto (no el de la fecha de venta);
// una venta de un producto eliminado aporta costo cero.
// NetProfit = SalesRevenue - CostOfGoodsSold.
func Totals(txs []*entity.Transaction, priceOf PriceLookup) ReportTotals {
	var r ReportTotals
	for _, t := range txs {
		switch t.Type {
		case entity.TransactionIn:
			r.PurchasesCost = r.PurchasesCost.Add(t.Total)
		case entity.TransactionOut:
			r.SalesRevenue = r.SalesRevenue.Add(t.Total)
			if price, ok := priceOf(t.ProductID); ok {
				r.CostOfGoodsSold = r.CostOfGoodsSold.Add(t.Quantity.Mul(price))
			}
		}
	}
	r.NetProfit = r.SalesRevenue.Sub(r.CostOfGoodsSold)
	return r
}
