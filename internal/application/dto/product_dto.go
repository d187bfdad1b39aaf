package dto

import (
	"github.com/shopspring/decimal"
	"github.com/vcmdu/Stock-master/internal/application/inventory"
	"github.com/vcmdu/Stock-master/internal/domain/entity"
)

// ProductRequest entrada para crear o editar un producto. BuyPrice y OpeningStock solo aplican al crear.
type ProductRequest struct {
	Name           string           `json:"name" validate:"required,max=200"`
	Brand          string           `json:"brand" validate:"max=200"`
	Category       string           `json:"category" validate:"max=200"`
	Size           string           `json:"size" validate:"max=100"`
	Weight         string           `json:"kg" validate:"max=100"`
	UnitType       string           `json:"unitType" validate:"max=20"`
	MinStock       decimal.Decimal  `json:"minStock"`
	SellPrice      decimal.Decimal  `json:"sellPrice"`
	BuyPrice       decimal.Decimal  `json:"buyPrice"`
	OpeningStock   decimal.Decimal  `json:"openingStock"`
	PurchaseUnit   string           `json:"purchaseUnit" validate:"max=50"`
	ConversionRate *decimal.Decimal `json:"conversionRate"`
}

// ProductQuery filtros de GET /api/products.
type ProductQuery struct {
	Search string `query:"search" validate:"max=200"`
	Stock  string `query:"stock" validate:"omitempty,oneof=all low out"`
}

// MatchQuery criterios de búsqueda en cascada (GET /api/products/match).
type MatchQuery struct {
	Name     string `query:"name"`
	Brand    string `query:"brand"`
	Category string `query:"category"`
	Size     string `query:"size"`
	Weight   string `query:"kg"`
	InStock  bool   `query:"inStock"`
}

// ProductResponse salida de un producto con su estado de stock y valor.
type ProductResponse struct {
	ID             entity.ID          `json:"id"`
	Name           string             `json:"name"`
	Brand          string             `json:"brand"`
	Category       string             `json:"category"`
	Size           string             `json:"size"`
	Weight         string             `json:"kg"`
	UnitType       entity.UnitType    `json:"unitType"`
	Stock          decimal.Decimal    `json:"stock"`
	MinStock       decimal.Decimal    `json:"minStock"`
	BuyPrice       decimal.Decimal    `json:"buyPrice"`
	SellPrice      decimal.Decimal    `json:"sellPrice"`
	PurchaseUnit   string             `json:"purchaseUnit,omitempty"`
	ConversionRate *decimal.Decimal   `json:"conversionRate,omitempty"`
	Status         entity.StockStatus `json:"status"`
	Value          decimal.Decimal    `json:"value"` // stock * buyPrice
}

// NewProductResponse mapea la entidad a su salida.
func NewProductResponse(p *entity.Product) ProductResponse {
	return ProductResponse{
		ID:             p.ID,
		Name:           p.Name,
		Brand:          p.Brand,
		Category:       p.Category,
		Size:           p.Size,
		Weight:         p.Weight,
		UnitType:       p.UnitType,
		Stock:          p.Stock,
		MinStock:       p.MinStock,
		BuyPrice:       p.BuyPrice,
		SellPrice:      p.SellPrice,
		PurchaseUnit:   p.PurchaseUnit,
		ConversionRate: p.ConversionRate,
		Status:         p.Status(),
		Value:          p.Value(),
	}
}

// NewProductList mapea una lista de productos.
func NewProductList(products []*entity.Product) []ProductResponse {
	out := make([]ProductResponse, len(products))
	for i, p := range products {
		out[i] = NewProductResponse(p)
	}
	return out
}

// ProductCreatedResponse salida de POST /api/products.
type ProductCreatedResponse struct {
	Product        ProductResponse     `json:"product"`
	OpeningBalance *entity.Transaction `json:"openingBalance,omitempty"`
}

// MatchResponse candidatos y opciones para los desplegables dependientes.
type MatchResponse struct {
	Candidates []ProductResponse  `json:"candidates"`
	Options    inventory.Options `json:"options"`
}
