package inventory

import (
	"slices"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/vcmdu/Stock-master/internal/domain/entity"
)

// MasterData campos editables de un producto. Stock y precio de compra no forman parte:
// solo cambian a través de movimientos.
type MasterData struct {
	Name           string
	Brand          string
	Category       string
	Size           string
	Weight         string
	UnitType       entity.UnitType
	MinStock       decimal.Decimal
	SellPrice      decimal.Decimal
	PurchaseUnit   string
	ConversionRate *decimal.Decimal
}

// Criteria criterios del filtro en cascada. Los vacíos no filtran.
type Criteria struct {
	Name     string
	Brand    string
	Category string
	Size     string
	Weight   string
}

// StockFilter filtro de estado para el listado de productos.
type StockFilter string

const (
	StockAll StockFilter = "all"
	StockLow StockFilter = "low"
	StockOut StockFilter = "out"
)

// ProductFilter filtro del listado de productos.
type ProductFilter struct {
	Search string
	Stock  StockFilter
}

// Options valores distintos disponibles en cada nivel de la cascada.
type Options struct {
	Names      []string `json:"names"`
	Brands     []string `json:"brands"`
	Categories []string `json:"categories"`
	Sizes      []string `json:"sizes"`
	Weights    []string `json:"weights"`
}

// Catalog dueño de la colección de productos. No es seguro para uso concurrente: Service lo protege.
type Catalog struct {
	ids      IDGenerator
	products []*entity.Product
	byID     map[entity.ID]*entity.Product
}

// NewCatalog construye el catálogo con los productos dados en orden de creación.
func NewCatalog(ids IDGenerator, products []*entity.Product) *Catalog {
	c := &Catalog{ids: ids}
	c.Reset(products)
	return c
}

// Reset reemplaza la colección completa.
func (c *Catalog) Reset(products []*entity.Product) {
	c.products = make([]*entity.Product, 0, len(products))
	c.byID = make(map[entity.ID]*entity.Product, len(products))
	for _, p := range products {
		c.Insert(p)
	}
}

// Build arma un producto nuevo con id asignado y stock cero, sin insertarlo.
func (c *Catalog) Build(m MasterData, buyPrice decimal.Decimal) *entity.Product {
	p := &entity.Product{ID: c.ids.NewID(), Stock: decimal.Zero, BuyPrice: buyPrice}
	applyMasterData(p, m)
	return p
}

// Insert agrega p al final. Un id repetido reemplaza al anterior en el índice y en la lista.
func (c *Catalog) Insert(p *entity.Product) {
	if old, ok := c.byID[p.ID]; ok {
		i := slices.Index(c.products, old)
		c.products[i] = p
	} else {
		c.products = append(c.products, p)
	}
	c.byID[p.ID] = p
}

// Create asigna id y agrega el producto con stock cero.
func (c *Catalog) Create(m MasterData, buyPrice decimal.Decimal) *entity.Product {
	p := c.Build(m, buyPrice)
	c.Insert(p)
	return p
}

// Update modifica solo datos maestros. found=false si el id no existe (no-op).
func (c *Catalog) Update(id entity.ID, m MasterData) (*entity.Product, bool) {
	p, ok := c.byID[id]
	if !ok {
		return nil, false
	}
	applyMasterData(p, m)
	return p, true
}

// Delete elimina el producto; sus transacciones quedan en el libro.
func (c *Catalog) Delete(id entity.ID) bool {
	p, ok := c.byID[id]
	if !ok {
		return false
	}
	delete(c.byID, id)
	c.products = slices.DeleteFunc(c.products, func(x *entity.Product) bool { return x == p })
	return true
}

// Get devuelve el producto vivo (no una copia).
func (c *Catalog) Get(id entity.ID) (*entity.Product, bool) {
	p, ok := c.byID[id]
	return p, ok
}

// All productos en orden de creación.
func (c *Catalog) All() []*entity.Product {
	return slices.Clone(c.products)
}

// Len cantidad de productos.
func (c *Catalog) Len() int { return len(c.products) }

// FindCascading reduce el catálogo por nombre, marca, categoría, tamaño y peso, en ese orden,
// ignorando criterios vacíos. Comparación sin mayúsculas y sin espacios extremos.
func (c *Catalog) FindCascading(cr Criteria, inStockOnly bool) []*entity.Product {
	out := c.candidates(inStockOnly)
	for _, step := range cascade(cr) {
		if step.want == "" {
			continue
		}
		out = slices.DeleteFunc(out, func(p *entity.Product) bool {
			return !sameText(step.field(p), step.want)
		})
	}
	return out
}

// Options valores distintos para los selectores dependientes: cada nivel se calcula sobre los
// productos que coinciden con los criterios de los niveles anteriores.
func (c *Catalog) Options(cr Criteria, inStockOnly bool) Options {
	pool := c.candidates(inStockOnly)
	var levels [5][]string
	for i, step := range cascade(cr) {
		levels[i] = distinct(pool, step.field)
		if step.want == "" {
			continue
		}
		pool = slices.DeleteFunc(pool, func(p *entity.Product) bool {
			return !sameText(step.field(p), step.want)
		})
	}
	return Options{
		Names:      levels[0],
		Brands:     levels[1],
		Categories: levels[2],
		Sizes:      levels[3],
		Weights:    levels[4],
	}
}

// List productos más recientes primero, filtrados por texto (nombre, marca, categoría) y estado.
func (c *Catalog) List(f ProductFilter) []*entity.Product {
	search := normalize(f.Search)
	out := make([]*entity.Product, 0, len(c.products))
	for i := len(c.products) - 1; i >= 0; i-- {
		p := c.products[i]
		if search != "" &&
			!strings.Contains(normalize(p.Name), search) &&
			!strings.Contains(normalize(p.Brand), search) &&
			!strings.Contains(normalize(p.Category), search) {
			continue
		}
		switch f.Stock {
		case StockLow:
			if p.Status() != entity.StatusLow {
				continue
			}
		case StockOut:
			if p.Status() != entity.StatusOut {
				continue
			}
		}
		out = append(out, p)
	}
	return out
}

func (c *Catalog) candidates(inStockOnly bool) []*entity.Product {
	out := make([]*entity.Product, 0, len(c.products))
	for _, p := range c.products {
		if inStockOnly && !p.Stock.IsPositive() {
			continue
		}
		out = append(out, p)
	}
	return out
}

type cascadeStep struct {
	want  string
	field func(*entity.Product) string
}

func cascade(cr Criteria) [5]cascadeStep {
	return [5]cascadeStep{
		{normalize(cr.Name), func(p *entity.Product) string { return p.Name }},
		{normalize(cr.Brand), func(p *entity.Product) string { return p.Brand }},
		{normalize(cr.Category), func(p *entity.Product) string { return p.Category }},
		{normalize(cr.Size), func(p *entity.Product) string { return p.Size }},
		{normalize(cr.Weight), func(p *entity.Product) string { return p.Weight }},
	}
}

func distinct(products []*entity.Product, field func(*entity.Product) string) []string {
	seen := make(map[string]struct{})
	out := []string{}
	for _, p := range products {
		v := strings.TrimSpace(field(p))
		if v == "" {
			continue
		}
		key := strings.ToLower(v)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, v)
	}
	slices.SortFunc(out, func(a, b string) int {
		return strings.Compare(strings.ToLower(a), strings.ToLower(b))
	})
	return out
}

func applyMasterData(p *entity.Product, m MasterData) {
	p.Name = strings.TrimSpace(m.Name)
	p.Brand = strings.TrimSpace(m.Brand)
	p.Category = strings.TrimSpace(m.Category)
	p.Size = strings.TrimSpace(m.Size)
	p.Weight = strings.TrimSpace(m.Weight)
	p.UnitType = entity.UnitPiece
	if u, ok := entity.ParseUnitType(string(m.UnitType)); ok {
		p.UnitType = u
	}
	p.MinStock = m.MinStock
	p.SellPrice = m.SellPrice
	if m.ConversionRate != nil {
		r := *m.ConversionRate
		p.PurchaseUnit = strings.TrimSpace(m.PurchaseUnit)
		p.ConversionRate = &r
	} else {
		p.PurchaseUnit = ""
		p.ConversionRate = nil
	}
}

func normalize(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

// sameText compara un valor almacenado con un criterio ya normalizado.
func sameText(value, want string) bool { return normalize(value) == want }
