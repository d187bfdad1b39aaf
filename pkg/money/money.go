// Package money formatea importes y cantidades para reportes.
package money

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Symbol prefijo de moneda. Las fuentes estándar de PDF no tienen el signo de la rupia.
const Symbol = "Rs."

var printer = message.NewPrinter(language.Make("en-IN"))

// Format devuelve el importe con dos decimales y separador de miles: "Rs. 1,500.00".
func Format(d decimal.Decimal) string {
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}
	return sign + Symbol + " " + printer.Sprint(number.Decimal(d.Round(2).InexactFloat64(), number.Scale(2)))
}

// Quantity devuelve una cantidad sin ceros sobrantes: 2.500 -> "2.5".
func Quantity(d decimal.Decimal) string {
	return printer.Sprint(number.Decimal(d.InexactFloat64(), number.MaxFractionDigits(3)))
}
