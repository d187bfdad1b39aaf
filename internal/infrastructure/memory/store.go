package memory

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"
)

// Store almacén clave/valor en memoria. Sin persistencia entre procesos; útil para pruebas y demos.
type Store struct {
	mu   sync.RWMutex
	data map[string]string
}

// NewStore construye un almacén vacío.
func NewStore() *Store {
	return &Store{data: make(map[string]string)}
}

func (s *Store) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	return v, ok, nil
}

func (s *Store) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	return nil
}

// Size suma la longitud de todos los valores.
func (s *Store) Size(_ context.Context) (decimal.Decimal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var n int64
	for _, v := range s.data {
		n += int64(len(v))
	}
	return decimal.NewFromInt(n), nil
}
