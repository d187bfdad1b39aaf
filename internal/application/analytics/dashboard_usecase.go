// Package analytics contiene los casos de uso de lectura: dashboard, reportes y reposición.
package analytics

import (
	"slices"

	"github.com/shopspring/decimal"
	"github.com/vcmdu/Stock-master/internal/application/dto"
	appinventory "github.com/vcmdu/Stock-master/internal/application/inventory"
	"github.com/vcmdu/Stock-master/internal/domain/entity"
)

const (
	dashboardRecent       = 5 // últimas transacciones en el dashboard
	dashboardDistribution = 5 // porciones con nombre propio; el resto va a "Others"
)

// OthersLabel etiqueta de la porción que agrupa el resto del valor.
const OthersLabel = "Others"

// DashboardUseCase genera el resumen del inventario.
type DashboardUseCase struct {
	inv InventoryReader
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(inv InventoryReader) *DashboardUseCase {
	return &DashboardUseCase{inv: inv}
}

// GetSummary valor total, conteos, productos en o bajo el mínimo, actividad reciente y
// distribución del valor por producto.
func (uc *DashboardUseCase) GetSummary() *dto.DashboardSummaryDTO {
	products := uc.inv.ListProducts(appinventory.ProductFilter{})

	total := decimal.Zero
	low := make([]*entity.Product, 0)
	for _, p := range products {
		total = total.Add(p.Value())
		if p.Stock.LessThanOrEqual(p.MinStock) {
			low = append(low, p)
		}
	}

	return &dto.DashboardSummaryDTO{
		TotalAssetValue: total,
		ProductCount:    len(products),
		LowStockCount:   len(low),
		LowStock:        dto.NewProductList(low),
		Recent:          uc.inv.RecentTransactions(dashboardRecent),
		Distribution:    distribution(products),
	}
}

// distribution top N productos por valor y el resto sumado en "Others". Omite valores <= 0.
func distribution(products []*entity.Product) []dto.DistributionSlice {
	valued := make([]*entity.Product, 0, len(products))
	for _, p := range products {
		if p.Value().IsPositive() {
			valued = append(valued, p)
		}
	}
	slices.SortStableFunc(valued, func(a, b *entity.Product) int {
		return b.Value().Cmp(a.Value())
	})

	out := make([]dto.DistributionSlice, 0, dashboardDistribution+1)
	others := decimal.Zero
	for i, p := range valued {
		if i < dashboardDistribution {
			out = append(out, dto.DistributionSlice{Label: p.Name, Value: p.Value()})
			continue
		}
		others = others.Add(p.Value())
	}
	if others.IsPositive() {
		out = append(out, dto.DistributionSlice{Label: OthersLabel, Value: others})
	}
	return out
}
