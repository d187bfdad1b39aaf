package analytics

import (
	"cmp"
	"slices"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/vcmdu/Stock-master/internal/application/dto"
	appinventory "github.com/vcmdu/Stock-master/internal/application/inventory"
	"github.com/vcmdu/Stock-master/internal/domain/entity"
)

// DefaultSalesWindowDays ventana de ventas usada para priorizar la reposición.
const DefaultSalesWindowDays = 90

var idealFactor = decimal.NewFromFloat(1.5)

// ReplenishmentUseCase genera la lista de reposición: productos en o bajo su stock mínimo con la
// cantidad sugerida de compra, priorizados por volumen de ventas reciente.
type ReplenishmentUseCase struct {
	inv   InventoryReader
	clock appinventory.Clock
}

// NewReplenishmentUseCase construye el caso de uso de reposición.
func NewReplenishmentUseCase(inv InventoryReader, clock appinventory.Clock) *ReplenishmentUseCase {
	if clock == nil {
		clock = entity.Today
	}
	return &ReplenishmentUseCase{inv: inv, clock: clock}
}

// GenerateReplenishmentList devuelve las sugerencias ordenadas por prioridad (1 = más urgente).
// windowDays <= 0 usa DefaultSalesWindowDays.
func (uc *ReplenishmentUseCase) GenerateReplenishmentList(windowDays int) []dto.ReplenishmentSuggestionDTO {
	if windowDays <= 0 {
		windowDays = DefaultSalesWindowDays
	}
	today := uc.clock()

	// Unidades vendidas por producto en la ventana
	sold := make(map[entity.ID]decimal.Decimal)
	for _, t := range uc.inv.ListTransactions(appinventory.TransactionFilter{
		From: today.AddDays(-windowDays),
		To:   today,
		Type: entity.TransactionOut,
	}) {
		sold[t.ProductID] = sold[t.ProductID].Add(t.Quantity)
	}

	suggestions := make([]dto.ReplenishmentSuggestionDTO, 0)
	for _, p := range uc.inv.ListProducts(appinventory.ProductFilter{}) {
		if p.Stock.GreaterThan(p.MinStock) {
			continue
		}
		ideal := p.MinStock.Mul(idealFactor)
		qty := ideal.Sub(p.Stock)
		if qty.IsNegative() {
			qty = decimal.Zero
		}
		suggestions = append(suggestions, dto.ReplenishmentSuggestionDTO{
			ProductID:          p.ID,
			ProductName:        p.Name,
			Brand:              p.Brand,
			UnitType:           p.UnitType,
			CurrentStock:       p.Stock,
			MinStock:           p.MinStock,
			IdealStock:         ideal,
			SuggestedOrderQty:  qty,
			UnitCost:           p.BuyPrice,
			EstimatedOrderCost: qty.Mul(p.BuyPrice),
			UnitsSold:          sold[p.ID],
		})
	}

	// Primero mayor volumen de ventas, luego mayor déficit bajo el mínimo, luego nombre.
	slices.SortStableFunc(suggestions, func(a, b dto.ReplenishmentSuggestionDTO) int {
		if c := b.UnitsSold.Cmp(a.UnitsSold); c != 0 {
			return c
		}
		if c := b.MinStock.Sub(b.CurrentStock).Cmp(a.MinStock.Sub(a.CurrentStock)); c != 0 {
			return c
		}
		return compareFold(a.ProductName, b.ProductName)
	})
	for i := range suggestions {
		suggestions[i].Priority = i + 1
	}
	return suggestions
}

func compareFold(a, b string) int {
	return cmp.Compare(strings.ToLower(a), strings.ToLower(b))
}
