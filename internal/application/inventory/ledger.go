package inventory

import (
	"slices"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/vcmdu/Stock-master/internal/domain/entity"
)

// TransactionFilter filtro de consulta del libro. Campos vacíos no filtran; las fechas son inclusivas.
type TransactionFilter struct {
	From   entity.Date
	To     entity.Date
	Type   entity.TransactionType
	Search string
}

// Revision campos que una edición puede sobrescribir. id y productId nunca cambian.
type Revision struct {
	Date     entity.Date
	Type     entity.TransactionType
	Quantity decimal.Decimal
	Price    decimal.Decimal
	Total    decimal.Decimal
	UnitMode entity.UnitMode
	Notes    string
}

// Ledger dueño del libro de movimientos. El orden de almacenamiento es el de inserción.
// No es seguro para uso concurrente: Service lo protege.
type Ledger struct {
	ids  IDGenerator
	txs  []*entity.Transaction
	byID map[entity.ID]*entity.Transaction
}

// NewLedger construye el libro con las transacciones dadas en orden de registro.
func NewLedger(ids IDGenerator, txs []*entity.Transaction) *Ledger {
	l := &Ledger{ids: ids}
	l.Reset(txs)
	return l
}

// Reset reemplaza el libro completo.
func (l *Ledger) Reset(txs []*entity.Transaction) {
	l.txs = make([]*entity.Transaction, 0, len(txs))
	l.byID = make(map[entity.ID]*entity.Transaction, len(txs))
	for _, t := range txs {
		l.txs = append(l.txs, t)
		l.byID[t.ID] = t
	}
}

// Append asigna id (si no trae) y agrega t al final.
func (l *Ledger) Append(t *entity.Transaction) *entity.Transaction {
	if t.ID == "" {
		t.ID = l.ids.NewID()
	}
	l.txs = append(l.txs, t)
	l.byID[t.ID] = t
	return t
}

// FindByID devuelve la transacción viva (no una copia).
func (l *Ledger) FindByID(id entity.ID) (*entity.Transaction, bool) {
	t, ok := l.byID[id]
	return t, ok
}

// Replace sobrescribe los campos editables; no toca stock.
func (l *Ledger) Replace(id entity.ID, r Revision) (*entity.Transaction, bool) {
	t, ok := l.byID[id]
	if !ok {
		return nil, false
	}
	t.Date = r.Date
	t.Type = r.Type
	t.Quantity = r.Quantity
	t.Price = r.Price
	t.Total = r.Total
	t.UnitMode = r.UnitMode
	t.Notes = r.Notes
	return t, true
}

// All transacciones en orden de registro.
func (l *Ledger) All() []*entity.Transaction {
	return slices.Clone(l.txs)
}

// Len cantidad de transacciones.
func (l *Ledger) Len() int { return len(l.txs) }

// Recent las últimas n registradas, la más reciente primero.
func (l *Ledger) Recent(n int) []*entity.Transaction {
	out := make([]*entity.Transaction, 0, min(n, len(l.txs)))
	for i := len(l.txs) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, l.txs[i])
	}
	return out
}

// Filter aplica f y ordena por fecha descendente; en la misma fecha, la registrada después primero.
func (l *Ledger) Filter(f TransactionFilter) []*entity.Transaction {
	search := normalize(f.Search)
	out := make([]*entity.Transaction, 0, len(l.txs))
	for i := len(l.txs) - 1; i >= 0; i-- {
		t := l.txs[i]
		if !f.From.IsZero() && t.Date.Before(f.From) {
			continue
		}
		if !f.To.IsZero() && t.Date.After(f.To) {
			continue
		}
		if f.Type != "" && t.Type != f.Type {
			continue
		}
		if search != "" &&
			!strings.Contains(normalize(t.ProductName), search) &&
			!strings.Contains(normalize(t.Notes), search) {
			continue
		}
		out = append(out, t)
	}
	// recorrido inverso + orden estable: los empates quedan con el más reciente primero
	slices.SortStableFunc(out, func(a, b *entity.Transaction) int {
		return b.Date.Time().Compare(a.Date.Time())
	})
	return out
}
