package entity

import (
	"strings"

	"github.com/shopspring/decimal"
)

// TransactionType dirección del movimiento de stock.
type TransactionType string

const (
	TransactionIn  TransactionType = "IN"  // compra: suma stock
	TransactionOut TransactionType = "OUT" // venta: resta stock
)

// ParseTransactionType acepta IN/OUT sin distinguir mayúsculas.
func ParseTransactionType(s string) (TransactionType, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case string(TransactionIn):
		return TransactionIn, true
	case string(TransactionOut):
		return TransactionOut, true
	}
	return "", false
}

// UnitMode unidad en la que el usuario digitó la cantidad. Solo informativo.
type UnitMode string

const (
	ModeBase UnitMode = "base"
	ModeBulk UnitMode = "bulk"
)

// OpeningBalanceNotes nota del movimiento que siembra el stock inicial de un producto.
const OpeningBalanceNotes = "Initial Stock Opening Balance"

// Transaction movimiento del libro. Quantity, Price y Total siempre están en unidad base.
// Los campos Product* son una copia tomada al registrar y no se sincronizan con el producto.
type Transaction struct {
	ID              ID              `json:"id"`
	Date            Date            `json:"date"`
	Type            TransactionType `json:"type"`
	ProductID       ID              `json:"productId"`
	ProductName     string          `json:"productName"`
	ProductBrand    string          `json:"productBrand"`
	ProductCategory string          `json:"productCategory"`
	ProductSize     string          `json:"productSize"`
	ProductWeight   string          `json:"productKG"`
	UnitType        UnitType        `json:"unitType"`
	Quantity        decimal.Decimal `json:"quantity"`
	Price           decimal.Decimal `json:"price"`
	Total           decimal.Decimal `json:"total"`
	UnitMode        UnitMode        `json:"unitMode,omitempty"`
	Notes           string          `json:"notes"`
}

// SignedQuantity efecto sobre el stock: +cantidad en IN, -cantidad en OUT.
func (t *Transaction) SignedQuantity() decimal.Decimal {
	if t.Type == TransactionOut {
		return t.Quantity.Neg()
	}
	return t.Quantity
}

// Snapshot copia los datos descriptivos del producto en la transacción.
func (t *Transaction) Snapshot(p *Product) {
	t.ProductID = p.ID
	t.ProductName = p.Name
	t.ProductBrand = p.Brand
	t.ProductCategory = p.Category
	t.ProductSize = p.Size
	t.ProductWeight = p.Weight
	t.UnitType = p.UnitType
}
