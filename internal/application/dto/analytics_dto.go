package dto

import (
	"github.com/shopspring/decimal"
	"github.com/vcmdu/Stock-master/internal/domain/entity"
	"github.com/vcmdu/Stock-master/internal/domain/inventory"
)

// SeriesQuery parámetros de GET /api/reports/value-series.
type SeriesQuery struct {
	From        string `query:"from" validate:"omitempty,datetime=2006-01-02"`
	To          string `query:"to" validate:"omitempty,datetime=2006-01-02"`
	Granularity string `query:"granularity" validate:"omitempty,oneof=day week month"`
}

// ReportSummaryDTO transacciones filtradas y sus totales.
type ReportSummaryDTO struct {
	From         string                 `json:"from,omitempty"`
	To           string                 `json:"to,omitempty"`
	Count        int                    `json:"count"`
	Totals       inventory.ReportTotals `json:"totals"`
	Transactions []*entity.Transaction  `json:"transactions"`
}

// ValueSeriesDTO curva de crecimiento del valor del inventario.
type ValueSeriesDTO struct {
	Granularity string                  `json:"granularity"`
	Points      []inventory.SeriesPoint `json:"points"`
	Current     decimal.Decimal         `json:"current"` // valor actual, para comparar con el último punto
}
