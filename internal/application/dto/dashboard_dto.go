package dto

import (
	"github.com/shopspring/decimal"
	"github.com/vcmdu/Stock-master/internal/domain/entity"
)

// DashboardSummaryDTO respuesta de GET /api/dashboard/summary.
type DashboardSummaryDTO struct {
	TotalAssetValue decimal.Decimal       `json:"totalAssetValue"` // Σ stock * buyPrice
	ProductCount    int                   `json:"productCount"`
	LowStockCount   int                   `json:"lowStockCount"` // stock <= minStock (incluye agotados)
	LowStock        []ProductResponse     `json:"lowStock"`
	Recent          []*entity.Transaction `json:"recent"` // últimas 5 registradas
	Distribution    []DistributionSlice   `json:"distribution"`
}

// DistributionSlice porción del valor del inventario. Top 5 por valor y el resto en "Others".
type DistributionSlice struct {
	Label string          `json:"label"`
	Value decimal.Decimal `json:"value"`
}
