package kvstate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/vcmdu/Stock-master/internal/domain/entity"
	"github.com/vcmdu/Stock-master/internal/domain/repository"
	"github.com/vcmdu/Stock-master/pkg/logger"
)

// Claves del almacén clave/valor. Cada una guarda un arreglo JSON completo.
const (
	ProductsKey     = "sm_products"
	TransactionsKey = "sm_transactions"
)

// Repository implementa repository.StateRepository sobre cualquier repository.KVStore.
type Repository struct {
	store repository.KVStore
	log   *logger.Logger
}

// NewRepository construye el repositorio de estado.
func NewRepository(store repository.KVStore, log *logger.Logger) *Repository {
	if log == nil {
		log = logger.Nop()
	}
	return &Repository{store: store, log: log.Component("kvstate")}
}

// Load lee ambas claves. Una clave ausente, ilegible o que no contiene un arreglo se trata como
// vacía; solo un error de lectura del almacén se propaga. Aplica la migración de marca legada.
func (r *Repository) Load(ctx context.Context) (*repository.State, error) {
	productsRaw, found, err := r.store.Get(ctx, ProductsKey)
	if err != nil {
		return nil, fmt.Errorf("leer %s: %w", ProductsKey, err)
	}
	products := []*entity.Product{}
	if found {
		decoded, skipped, ok := entity.DecodeProducts([]byte(productsRaw))
		switch {
		case !ok:
			r.log.Warn().Str("key", ProductsKey).Msg("contenido ilegible; se inicia sin productos")
		case skipped > 0:
			r.log.Warn().Str("key", ProductsKey).Int("skipped", skipped).Msg("registros ilegibles omitidos")
		}
		if ok {
			products = decoded
		}
	}

	migrated := 0
	for _, p := range products {
		if p.MigrateLegacyBrand() {
			migrated++
		}
	}
	if migrated > 0 {
		r.log.Info().Int("products", migrated).Msg("category migrada a brand")
	}

	txRaw, found, err := r.store.Get(ctx, TransactionsKey)
	if err != nil {
		return nil, fmt.Errorf("leer %s: %w", TransactionsKey, err)
	}
	txs := []*entity.Transaction{}
	if found {
		decoded, skipped, ok := entity.DecodeTransactions([]byte(txRaw))
		switch {
		case !ok:
			r.log.Warn().Str("key", TransactionsKey).Msg("contenido ilegible; se inicia sin transacciones")
		case skipped > 0:
			r.log.Warn().Str("key", TransactionsKey).Int("skipped", skipped).Msg("registros ilegibles omitidos")
		}
		if ok {
			txs = decoded
		}
	}

	return &repository.State{Products: products, Transactions: txs}, nil
}

// Save serializa y escribe las dos claves completas. Si el almacén admite escritura por lotes
// ambas van juntas; si no, intenta las dos aunque la primera falle.
func (r *Repository) Save(ctx context.Context, state *repository.State) error {
	products := state.Products
	if products == nil {
		products = []*entity.Product{}
	}
	txs := state.Transactions
	if txs == nil {
		txs = []*entity.Transaction{}
	}

	productsJSON, err := json.Marshal(products)
	if err != nil {
		return fmt.Errorf("serializar productos: %w", err)
	}
	txJSON, err := json.Marshal(txs)
	if err != nil {
		return fmt.Errorf("serializar transacciones: %w", err)
	}

	if batch, ok := r.store.(repository.BatchKVStore); ok {
		return batch.SetMany(ctx, map[string]string{
			ProductsKey:     string(productsJSON),
			TransactionsKey: string(txJSON),
		})
	}

	var errs []error
	if err := r.store.Set(ctx, ProductsKey, string(productsJSON)); err != nil {
		errs = append(errs, fmt.Errorf("escribir %s: %w", ProductsKey, err))
	}
	if err := r.store.Set(ctx, TransactionsKey, string(txJSON)); err != nil {
		errs = append(errs, fmt.Errorf("escribir %s: %w", TransactionsKey, err))
	}
	return errors.Join(errs...)
}
