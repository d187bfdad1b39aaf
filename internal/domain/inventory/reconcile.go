package inventory

import (
	"github.com/shopspring/decimal"
	"github.com/vcmdu/Stock-master/internal/domain"
	"github.com/vcmdu/Stock-master/internal/domain/entity"
)

// CheckAvailable falla con InsufficientStockError si una salida de qty dejaría el stock negativo.
// Las entradas siempre son aplicables.
func CheckAvailable(p *entity.Product, typ entity.TransactionType, qty decimal.Decimal) error {
	if typ != entity.TransactionOut {
		return nil
	}
	if qty.GreaterThan(p.Stock) {
		return &domain.InsufficientStockError{
			ProductID: p.ID.String(),
			Available: p.Stock,
			Requested: qty,
		}
	}
	return nil
}

// Apply suma el efecto de t al stock de p. En entradas el precio de compra pasa a ser el de t.
// No valida: el llamador usa CheckAvailable antes.
func Apply(p *entity.Product, t *entity.Transaction) {
	ApplyStock(p, t)
	if t.Type == entity.TransactionIn {
		p.BuyPrice = t.Price
	}
}

// ApplyStock suma solo el efecto de stock de t (usado al editar, donde el precio de compra no cambia).
func ApplyStock(p *entity.Product, t *entity.Transaction) {
	p.Stock = p.Stock.Add(t.SignedQuantity())
}

// Revert deshace exactamente el efecto de stock de t. El precio de compra no se restaura.
func Revert(p *entity.Product, t *entity.Transaction) {
	p.Stock = p.Stock.Sub(t.SignedQuantity())
}

// CheckEdit valida el nuevo efecto de una transacción editada sobre p, con el efecto anterior ya
// revertido. A diferencia del alta, también rechaza entradas que dejarían el stock negativo
// (por ejemplo reducir una compra cuyo stock ya se vendió).
func CheckEdit(p *entity.Product, next *entity.Transaction) error {
	if err := CheckAvailable(p, next.Type, next.Quantity); err != nil {
		return err
	}
	if p.Stock.Add(next.SignedQuantity()).IsNegative() {
		return &domain.InsufficientStockError{
			ProductID: p.ID.String(),
			Available: p.Stock,
			Requested: next.Quantity,
		}
	}
	return nil
}
