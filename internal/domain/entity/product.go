package entity

import (
	"strings"

	"github.com/shopspring/decimal"
)

// UnitType unidad base en la que se lleva el stock de un producto.
type UnitType string

const (
	UnitPiece UnitType = "Piece"
	UnitPack  UnitType = "Pack"
	UnitBox   UnitType = "Box"
	UnitKG    UnitType = "KG"
	UnitMeter UnitType = "Meter"
	UnitLiter UnitType = "Liter"
)

// UnitTypes conjunto cerrado de unidades válidas.
var UnitTypes = []UnitType{UnitPiece, UnitPack, UnitBox, UnitKG, UnitMeter, UnitLiter}

// ParseUnitType normaliza s (sin distinguir mayúsculas). ok=false si no pertenece al conjunto.
func ParseUnitType(s string) (UnitType, bool) {
	s = strings.TrimSpace(s)
	for _, u := range UnitTypes {
		if strings.EqualFold(string(u), s) {
			return u, true
		}
	}
	return "", false
}

// StockStatus clasificación de reposición.
type StockStatus string

const (
	StatusOK  StockStatus = "ok"
	StatusLow StockStatus = "low"
	StatusOut StockStatus = "out"
)

// Product producto del catálogo. Stock y BuyPrice solo cambian a través del motor de conciliación.
type Product struct {
	ID        ID              `json:"id"`
	Name      string          `json:"name"`
	Brand     string          `json:"brand"`
	Category  string          `json:"category"`
	Size      string          `json:"size"`
	Weight    string          `json:"kg"`
	UnitType  UnitType        `json:"unitType"`
	Stock     decimal.Decimal `json:"stock"`
	MinStock  decimal.Decimal `json:"minStock"`
	BuyPrice  decimal.Decimal `json:"buyPrice"`
	SellPrice decimal.Decimal `json:"sellPrice"`

	// PurchaseUnit y ConversionRate solo existen si la conversión a granel está habilitada.
	PurchaseUnit   string           `json:"purchaseUnit,omitempty"`
	ConversionRate *decimal.Decimal `json:"conversionRate,omitempty"`

	// legacyBrand se leyó un registro sin clave "brand" (formato anterior a la marca).
	legacyBrand bool
}

// HasConversion indica si el producto tiene unidad de compra con tasa positiva.
func (p *Product) HasConversion() bool {
	return p.ConversionRate != nil && p.ConversionRate.IsPositive()
}

// Status clasifica el stock frente al mínimo. Sin stock tiene prioridad sobre bajo.
func (p *Product) Status() StockStatus {
	switch {
	case !p.Stock.IsPositive():
		return StatusOut
	case p.Stock.LessThanOrEqual(p.MinStock):
		return StatusLow
	default:
		return StatusOK
	}
}

// Value valor del stock actual a precio de compra.
func (p *Product) Value() decimal.Decimal {
	return p.Stock.Mul(p.BuyPrice)
}

// Clone copia profunda (ConversionRate es puntero).
func (p *Product) Clone() *Product {
	c := *p
	if p.ConversionRate != nil {
		r := *p.ConversionRate
		c.ConversionRate = &r
	}
	return &c
}
