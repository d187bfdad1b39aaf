// Package backup exporta y restaura el estado completo como un documento JSON.
package backup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/vcmdu/Stock-master/internal/domain"
	"github.com/vcmdu/Stock-master/internal/domain/entity"
	"github.com/vcmdu/Stock-master/internal/domain/repository"
)

// Document formato del respaldo: {exportedAt, products, transactions}.
type Document struct {
	ExportedAt   time.Time             `json:"exportedAt"`
	Products     []*entity.Product     `json:"products"`
	Transactions []*entity.Transaction `json:"transactions"`
}

// Result resumen de una restauración.
type Result struct {
	Products     int `json:"products"`
	Transactions int `json:"transactions"`
	Migrated     int `json:"migrated"` // productos con category movida a brand
}

// StateOwner lo que el respaldo necesita del motor de inventario.
type StateOwner interface {
	Snapshot() *repository.State
	Restore(ctx context.Context, state *repository.State) error
}

// UseCase exportación y restauración del respaldo.
type UseCase struct {
	owner StateOwner
	now   func() time.Time
}

// NewUseCase construye el caso de uso. now nil usa time.Now.
func NewUseCase(owner StateOwner, now func() time.Time) *UseCase {
	if now == nil {
		now = time.Now
	}
	return &UseCase{owner: owner, now: now}
}

// Export devuelve el documento con una copia del estado actual.
func (uc *UseCase) Export() *Document {
	state := uc.owner.Snapshot()
	doc := &Document{
		ExportedAt:   uc.now().UTC(),
		Products:     state.Products,
		Transactions: state.Transactions,
	}
	if doc.Products == nil {
		doc.Products = []*entity.Product{}
	}
	if doc.Transactions == nil {
		doc.Transactions = []*entity.Transaction{}
	}
	return doc
}

// ExportJSON Export serializado con sangría.
func (uc *UseCase) ExportJSON() ([]byte, error) {
	return json.MarshalIndent(uc.Export(), "", "  ")
}

// Restore reemplaza todo el estado con el respaldo. Sin arreglo "products" el respaldo se rechaza y el
// estado queda intacto; sin "transactions" se restaura con el libro vacío. Los registros ilegibles se
// omiten igual que al cargar el almacenamiento.
// Si la restauración se aplicó pero no se pudo guardar, devuelve el resumen junto con el error.
func (uc *UseCase) Restore(ctx context.Context, raw []byte) (*Result, error) {
	var doc struct {
		Products     json.RawMessage `json:"products"`
		Transactions json.RawMessage `json:"transactions"`
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: respaldo ilegible: %v", domain.ErrInvalidInput, err)
	}
	products, _, ok := entity.DecodeProducts(doc.Products)
	if !ok {
		return nil, fmt.Errorf("%w: el respaldo no contiene un arreglo products", domain.ErrInvalidInput)
	}
	txs, _, ok := entity.DecodeTransactions(doc.Transactions)
	if !ok {
		txs = []*entity.Transaction{}
	}

	res := &Result{Products: len(products), Transactions: len(txs)}
	for _, p := range products {
		if p.MigrateLegacyBrand() {
			res.Migrated++
		}
	}
	if err := uc.owner.Restore(ctx, &repository.State{Products: products, Transactions: txs}); err != nil {
		if errors.Is(err, domain.ErrPersistenceWrite) {
			return res, err
		}
		return nil, err
	}
	return res, nil
}
