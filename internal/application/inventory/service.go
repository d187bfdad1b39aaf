package inventory

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/shopspring/decimal"
	"github.com/vcmdu/Stock-master/internal/domain"
	"github.com/vcmdu/Stock-master/internal/domain/entity"
	"github.com/vcmdu/Stock-master/internal/domain/inventory"
	"github.com/vcmdu/Stock-master/internal/domain/repository"
	"github.com/vcmdu/Stock-master/pkg/logger"
)

// Config parámetros del motor de conciliación.
type Config struct {
	// DefaultMinStock mínimo asignado a productos creados implícitamente por una compra.
	DefaultMinStock decimal.Decimal
}

// Service motor de conciliación de stock y único dueño del estado (catálogo + libro).
// Cada operación corre completa dentro de una sola sección crítica: ningún lector observa
// un stock modificado sin su transacción registrada, ni al revés.
type Service struct {
	mu      sync.RWMutex
	catalog *Catalog
	ledger  *Ledger
	repo    repository.StateRepository
	clock   Clock
	cfg     Config
	log     *logger.Logger
}

// NewService construye el servicio con estado vacío; llamar Load para leer el almacenamiento.
// clock nil usa la fecha local del sistema.
func NewService(repo repository.StateRepository, ids IDGenerator, clock Clock, cfg Config, log *logger.Logger) *Service {
	if ids == nil {
		ids = UUIDGenerator{}
	}
	if clock == nil {
		clock = entity.Today
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		catalog: NewCatalog(ids, nil),
		ledger:  NewLedger(ids, nil),
		repo:    repo,
		clock:   clock,
		cfg:     cfg,
		log:     log.Component("inventory"),
	}
}

// Load reemplaza el estado en memoria con el del almacenamiento.
func (s *Service) Load(ctx context.Context) error {
	state, err := s.repo.Load(ctx)
	if err != nil {
		return fmt.Errorf("cargar estado: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.catalog.Reset(state.Products)
	s.ledger.Reset(state.Transactions)
	s.log.Info().Int("products", s.catalog.Len()).Int("transactions", s.ledger.Len()).Msg("estado cargado")
	return nil
}

// Restore reemplaza catálogo y libro por completo y persiste.
func (s *Service) Restore(ctx context.Context, state *repository.State) error {
	if state == nil {
		return domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.catalog.Reset(cloneProducts(state.Products))
	s.ledger.Reset(cloneTransactions(state.Transactions))
	s.log.Info().Int("products", s.catalog.Len()).Int("transactions", s.ledger.Len()).Msg("respaldo restaurado")
	return s.persist(ctx)
}

// Reset borra todos los productos y transacciones y persiste.
func (s *Service) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.catalog.Reset(nil)
	s.ledger.Reset(nil)
	s.log.Warn().Msg("datos borrados")
	return s.persist(ctx)
}

// Snapshot copia profunda del estado actual.
func (s *Service) Snapshot() *repository.State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return &repository.State{
		Products:     cloneProducts(s.catalog.All()),
		Transactions: cloneTransactions(s.ledger.All()),
	}
}

// ValueHistory serie histórica del valor del inventario junto con el valor actual.
type ValueHistory struct {
	From    entity.Date
	To      entity.Date
	Points  []inventory.SeriesPoint
	Current decimal.Decimal // Σ stock * buyPrice del mismo estado que Points
}

// ValueHistory reproduce el libro entre from y to y suma el valor actual en una sola sección
// crítica: el último punto y Current nunca mezclan estados distintos.
// to vacío = hoy; from vacío = fecha de la primera transacción (o to si no hay ninguna).
func (s *Service) ValueHistory(from, to entity.Date, g inventory.Granularity) (*ValueHistory, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if to.IsZero() {
		to = s.clock()
	}
	txs := s.ledger.All()
	if from.IsZero() {
		from = to
		for _, t := range txs {
			if !t.Date.IsZero() && t.Date.Before(from) {
				from = t.Date
			}
		}
	}
	buckets, err := inventory.BuildBuckets(from, to, g)
	if err != nil {
		return nil, err
	}
	products := s.catalog.All()
	seq, err := inventory.ValueSeries(products, txs, buckets)
	if err != nil {
		return nil, err
	}

	current := decimal.Zero
	for _, p := range products {
		current = current.Add(p.Value())
	}
	return &ValueHistory{From: from, To: to, Points: slices.Collect(seq), Current: current}, nil
}

// ReportTotals totales de txs valorando el costo de lo vendido con el precio de compra actual.
func (s *Service) ReportTotals(txs []*entity.Transaction) inventory.ReportTotals {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return inventory.Totals(txs, func(id entity.ID) (decimal.Decimal, bool) {
		p, ok := s.catalog.Get(id)
		if !ok {
			return decimal.Zero, false
		}
		return p.BuyPrice, true
	})
}

// persist guarda el estado completo. Se llama con el lock de escritura tomado y después de mutar:
// un fallo no deshace la mutación y se informa como PersistenceError.
func (s *Service) persist(ctx context.Context) error {
	state := &repository.State{Products: s.catalog.All(), Transactions: s.ledger.All()}
	if err := s.repo.Save(ctx, state); err != nil {
		s.log.Error().Err(err).Msg("no se pudo persistir el estado; los cambios solo están en memoria")
		return &domain.PersistenceError{Err: err}
	}
	return nil
}

func cloneProducts(in []*entity.Product) []*entity.Product {
	out := make([]*entity.Product, len(in))
	for i, p := range in {
		out[i] = p.Clone()
	}
	return out
}

func cloneTransactions(in []*entity.Transaction) []*entity.Transaction {
	out := make([]*entity.Transaction, len(in))
	for i, t := range in {
		out[i] = cloneTx(t)
	}
	return out
}

func cloneTx(t *entity.Transaction) *entity.Transaction {
	c := *t
	return &c
}
