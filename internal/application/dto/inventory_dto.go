package dto

import (
	"github.com/shopspring/decimal"
	"github.com/vcmdu/Stock-master/internal/domain/entity"
)

// TransactionRequest body para POST /api/transactions.
// Con ProductID se usa ese producto; si no, se resuelve por nombre/marca/categoría/talla/peso.
type TransactionRequest struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name" validate:"required_without=ProductID,max=200"`
	Brand     string          `json:"brand" validate:"max=200"`
	Category  string          `json:"category" validate:"max=200"`
	Size      string          `json:"size" validate:"max=100"`
	Weight    string          `json:"kg" validate:"max=100"`
	UnitType  string          `json:"unitType" validate:"max=20"`
	Type      string          `json:"type" validate:"required,oneof=IN OUT in out"`
	Date      string          `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Quantity  decimal.Decimal `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	UnitMode  string          `json:"unitMode" validate:"omitempty,oneof=base bulk"`
	Notes     string          `json:"notes" validate:"max=500"`
}

// EditTransactionRequest body para PUT /api/transactions/:id. El producto no se puede cambiar.
type EditTransactionRequest struct {
	Type     string          `json:"type" validate:"required,oneof=IN OUT in out"`
	Date     string          `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Quantity decimal.Decimal `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
	UnitMode string          `json:"unitMode" validate:"omitempty,oneof=base bulk"`
	Notes    string          `json:"notes" validate:"max=500"`
}

// TransactionQuery filtros de GET /api/transactions y de los reportes.
type TransactionQuery struct {
	From   string `query:"from" validate:"omitempty,datetime=2006-01-02"`
	To     string `query:"to" validate:"omitempty,datetime=2006-01-02"`
	Type   string `query:"type" validate:"omitempty,oneof=IN OUT in out"`
	Search string `query:"search" validate:"max=200"`
}

// SubmissionResponse salida de POST /api/transactions.
type SubmissionResponse struct {
	Transaction    *entity.Transaction `json:"transaction"`
	Product        ProductResponse     `json:"product"`
	ProductCreated bool                `json:"productCreated"`
}

// ReplenishmentSuggestionDTO sugerencia de reposición para un producto en o bajo su mínimo.
type ReplenishmentSuggestionDTO struct {
	ProductID          entity.ID       `json:"productId"`
	ProductName        string          `json:"productName"`
	Brand              string          `json:"brand"`
	UnitType           entity.UnitType `json:"unitType"`
	CurrentStock       decimal.Decimal `json:"currentStock"`
	MinStock           decimal.Decimal `json:"minStock"`
	IdealStock         decimal.Decimal `json:"idealStock"`         // MinStock * 1.5
	SuggestedOrderQty  decimal.Decimal `json:"suggestedOrderQty"`  // IdealStock - CurrentStock
	UnitCost           decimal.Decimal `json:"unitCost"`           // buyPrice actual
	EstimatedOrderCost decimal.Decimal `json:"estimatedOrderCost"` // SuggestedOrderQty * UnitCost
	UnitsSold          decimal.Decimal `json:"unitsSold"`          // ventas en la ventana
	Priority           int             `json:"priority"`           // 1 = más urgente
}
