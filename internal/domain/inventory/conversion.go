package inventory

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/vcmdu/Stock-master/internal/domain"
	"github.com/vcmdu/Stock-master/internal/domain/entity"
)

// Conversion cantidad y precio normalizados a la unidad base del producto.
type Conversion struct {
	BaseQuantity  decimal.Decimal
	BaseUnitPrice decimal.Decimal
	Total         decimal.Decimal
}

// ResolveUnits convierte la cantidad y el precio digitados a unidad base.
// En modo bulk el precio es por unidad de compra: Total se calcula con los valores digitados
// y el precio base se deriva como Total / BaseQuantity para no redondear dos veces.
func ResolveUnits(p *entity.Product, mode entity.UnitMode, quantity, price decimal.Decimal) (Conversion, error) {
	switch mode {
	case "", entity.ModeBase:
		return Conversion{
			BaseQuantity:  quantity,
			BaseUnitPrice: price,
			Total:         quantity.Mul(price),
		}, nil
	case entity.ModeBulk:
		if p == nil || !p.HasConversion() {
			return Conversion{}, fmt.Errorf("%w: el producto no tiene unidad de compra configurada", domain.ErrInvalidConversion)
		}
		rate := *p.ConversionRate
		baseQty := quantity.Mul(rate)
		total := quantity.Mul(price)
		unitPrice := decimal.Zero
		if !baseQty.IsZero() {
			unitPrice = total.Div(baseQty)
		}
		return Conversion{BaseQuantity: baseQty, BaseUnitPrice: unitPrice, Total: total}, nil
	default:
		return Conversion{}, fmt.Errorf("%w: modo de unidad desconocido %q", domain.ErrInvalidConversion, mode)
	}
}

// ValidateConversion verifica una configuración de unidad de compra antes de guardarla.
// Sin tasa la conversión queda deshabilitada; con tasa debe ser positiva.
func ValidateConversion(purchaseUnit string, rate *decimal.Decimal) error {
	if rate == nil {
		return nil
	}
	if !rate.IsPositive() {
		return fmt.Errorf("%w: la tasa de conversión debe ser mayor que cero", domain.ErrInvalidConversion)
	}
	if purchaseUnit == "" {
		return fmt.Errorf("%w: falta el nombre de la unidad de compra", domain.ErrInvalidConversion)
	}
	return nil
}
