package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/vcmdu/Stock-master/internal/domain/entity"
)

// State estado completo de la aplicación: catálogo y libro de movimientos en orden de inserción.
type State struct {
	Products     []*entity.Product
	Transactions []*entity.Transaction
}

// StateRepository define el puerto de persistencia del estado completo (DIP).
// Save reescribe todo en cada mutación; no hay escrituras parciales ni incrementales.
type StateRepository interface {
	Load(ctx context.Context) (*State, error)
	Save(ctx context.Context, state *State) error
}

// KVStore almacén clave/valor de texto sobre el que se guarda el estado.
// Get devuelve found=false si la clave no existe.
type KVStore interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
}

// BatchKVStore almacén que puede escribir varias claves de forma atómica.
type BatchKVStore interface {
	KVStore
	SetMany(ctx context.Context, values map[string]string) error
}

// SizedKVStore almacén que informa cuántos bytes de valores guarda. /health lo usa para
// comprobar que el almacén responde.
type SizedKVStore interface {
	Size(ctx context.Context) (decimal.Decimal, error)
}
