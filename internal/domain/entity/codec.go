package entity

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Cantidades y precios se guardan como números JSON, igual que en los datos existentes.
func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// Los datos guardados vienen de formularios: un campo puede llegar como número, texto, vacío o
// null. La lectura nunca falla por un campo; lo que no se entiende queda en su valor cero.

type looseString string

func (s *looseString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0, bytes.Equal(data, []byte("null")):
		*s = ""
	case data[0] == '"':
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			*s = ""
			return nil
		}
		*s = looseString(v)
	case data[0] == '{' || data[0] == '[':
		*s = ""
	default:
		// número o booleano
		*s = looseString(data)
	}
	return nil
}

type looseDecimal struct {
	d     decimal.Decimal
	valid bool
}

func (l *looseDecimal) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	raw := string(data)
	if len(data) > 0 && data[0] == '"' {
		unq, err := strconv.Unquote(raw)
		if err != nil {
			*l = looseDecimal{}
			return nil
		}
		raw = strings.TrimSpace(unq)
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		*l = looseDecimal{}
		return nil
	}
	*l = looseDecimal{d: d, valid: true}
	return nil
}

type storedProduct struct {
	ID             ID           `json:"id"`
	Name           looseString  `json:"name"`
	Brand          *looseString `json:"brand"` // nil: clave ausente o null
	Category       looseString  `json:"category"`
	Size           looseString  `json:"size"`
	Weight         looseString  `json:"kg"`
	UnitType       looseString  `json:"unitType"`
	Stock          looseDecimal `json:"stock"`
	MinStock       looseDecimal `json:"minStock"`
	BuyPrice       looseDecimal `json:"buyPrice"`
	SellPrice      looseDecimal `json:"sellPrice"`
	PurchaseUnit   looseString  `json:"purchaseUnit"`
	ConversionRate looseDecimal `json:"conversionRate"`
}

// UnmarshalJSON lectura tolerante; la unidad desconocida o ausente queda en Piece.
func (p *Product) UnmarshalJSON(data []byte) error {
	var s storedProduct
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	unit, ok := ParseUnitType(string(s.UnitType))
	if !ok {
		unit = UnitPiece
	}
	var brand string
	if s.Brand != nil {
		brand = string(*s.Brand)
	}
	*p = Product{
		ID:           s.ID,
		Name:         string(s.Name),
		Brand:        brand,
		Category:     string(s.Category),
		Size:         string(s.Size),
		Weight:       string(s.Weight),
		UnitType:     unit,
		Stock:        s.Stock.d,
		MinStock:     s.MinStock.d,
		BuyPrice:     s.BuyPrice.d,
		SellPrice:    s.SellPrice.d,
		PurchaseUnit: string(s.PurchaseUnit),
		legacyBrand:  s.Brand == nil,
	}
	if s.ConversionRate.valid {
		r := s.ConversionRate.d
		p.ConversionRate = &r
	}
	return nil
}

// MigrateLegacyBrand versiones anteriores no tenían marca y la guardaban en category. Solo aplica
// a productos leídos sin la clave "brand": el valor de category pasa a brand y category queda
// vacío. Un producto se migra a lo sumo una vez. Devuelve true si cambió algo.
func (p *Product) MigrateLegacyBrand() bool {
	legacy := p.legacyBrand
	p.legacyBrand = false
	if !legacy || strings.TrimSpace(p.Category) == "" {
		return false
	}
	p.Brand = p.Category
	p.Category = ""
	return true
}

type storedTransaction struct {
	ID              ID           `json:"id"`
	Date            Date         `json:"date"`
	Type            looseString  `json:"type"`
	ProductID       ID           `json:"productId"`
	ProductName     looseString  `json:"productName"`
	ProductBrand    looseString  `json:"productBrand"`
	ProductCategory looseString  `json:"productCategory"`
	ProductSize     looseString  `json:"productSize"`
	ProductWeight   looseString  `json:"productKG"`
	UnitType        looseString  `json:"unitType"`
	Quantity        looseDecimal `json:"quantity"`
	Price           looseDecimal `json:"price"`
	Total           looseDecimal `json:"total"`
	UnitMode        looseString  `json:"unitMode"`
	Notes           looseString  `json:"notes"`
}

// UnmarshalJSON lectura tolerante. El tipo se normaliza a IN/OUT; si no es ninguno queda vacío
// y DecodeTransactions descarta el registro.
func (t *Transaction) UnmarshalJSON(data []byte) error {
	var s storedTransaction
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	typ, _ := ParseTransactionType(string(s.Type))
	unit, _ := ParseUnitType(string(s.UnitType))
	mode := UnitMode(strings.ToLower(strings.TrimSpace(string(s.UnitMode))))
	if mode != ModeBulk {
		mode = ModeBase
	}
	total := s.Total.d
	if !s.Total.valid {
		total = s.Quantity.d.Mul(s.Price.d)
	}
	*t = Transaction{
		ID:              s.ID,
		Date:            s.Date,
		Type:            typ,
		ProductID:       s.ProductID,
		ProductName:     string(s.ProductName),
		ProductBrand:    string(s.ProductBrand),
		ProductCategory: string(s.ProductCategory),
		ProductSize:     string(s.ProductSize),
		ProductWeight:   string(s.ProductWeight),
		UnitType:        unit,
		Quantity:        s.Quantity.d,
		Price:           s.Price.d,
		Total:           total,
		UnitMode:        mode,
		Notes:           string(s.Notes),
	}
	return nil
}

// DecodeProducts lee un arreglo JSON de productos. ok=false si data no es un arreglo;
// los elementos ilegibles o sin id se omiten y se cuentan en skipped.
func DecodeProducts(data []byte) (products []*Product, skipped int, ok bool) {
	items, ok := decodeArray(data)
	if !ok {
		return nil, 0, false
	}
	products = make([]*Product, 0, len(items))
	for _, raw := range items {
		var p Product
		if err := json.Unmarshal(raw, &p); err != nil || p.ID == "" {
			skipped++
			continue
		}
		products = append(products, &p)
	}
	return products, skipped, true
}

// DecodeTransactions igual que DecodeProducts; también omite registros sin tipo IN/OUT.
func DecodeTransactions(data []byte) (txs []*Transaction, skipped int, ok bool) {
	items, ok := decodeArray(data)
	if !ok {
		return nil, 0, false
	}
	txs = make([]*Transaction, 0, len(items))
	for _, raw := range items {
		var t Transaction
		if err := json.Unmarshal(raw, &t); err != nil || t.ID == "" || t.Type == "" {
			skipped++
			continue
		}
		txs = append(txs, &t)
	}
	return txs, skipped, true
}

func decodeArray(data []byte) ([]json.RawMessage, bool) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '[' {
		return nil, false
	}
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, false
	}
	return items, true
}
