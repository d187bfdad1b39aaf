package inventory

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/vcmdu/Stock-master/internal/domain"
	"github.com/vcmdu/Stock-master/internal/domain/entity"
	"github.com/vcmdu/Stock-master/internal/domain/inventory"
)

// CreateProductInput alta manual de producto con saldo inicial opcional.
type CreateProductInput struct {
	MasterData
	BuyPrice     decimal.Decimal
	OpeningStock decimal.Decimal
}

// ProductCreation resultado de CreateProduct. OpeningBalance es nil si no hubo stock inicial.
type ProductCreation struct {
	Product        *entity.Product
	OpeningBalance *entity.Transaction
}

// Match candidatos del filtro en cascada y opciones para seguir refinando.
type Match struct {
	Candidates []*entity.Product
	Options    Options
}

// CreateProduct crea el producto y, si trae stock inicial, registra la entrada de saldo inicial
// en la misma operación para que el stock siempre cuadre con el libro.
func (s *Service) CreateProduct(ctx context.Context, in CreateProductInput) (*ProductCreation, error) {
	if err := validateMasterData(in.MasterData); err != nil {
		return nil, err
	}
	if in.OpeningStock.IsNegative() {
		return nil, domain.ErrInvalidQuantity
	}
	if in.BuyPrice.IsNegative() {
		return nil, domain.ErrInvalidPrice
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.catalog.Create(in.MasterData, in.BuyPrice)
	res := &ProductCreation{}
	if in.OpeningStock.IsPositive() {
		t := &entity.Transaction{
			Date:     s.clock(),
			Type:     entity.TransactionIn,
			Quantity: in.OpeningStock,
			Price:    in.BuyPrice,
			Total:    in.OpeningStock.Mul(in.BuyPrice),
			UnitMode: entity.ModeBase,
			Notes:    entity.OpeningBalanceNotes,
		}
		t.Snapshot(p)
		s.commit(p, t)
		res.OpeningBalance = cloneTx(t)
	}
	s.log.Info().Str("product_id", p.ID.String()).Str("name", p.Name).Str("stock", p.Stock.String()).Msg("producto creado")
	res.Product = p.Clone()
	return res, s.persist(ctx)
}

// UpdateProduct cambia datos maestros. Stock y precio de compra no se tocan por esta vía.
func (s *Service) UpdateProduct(ctx context.Context, id entity.ID, m MasterData) (*entity.Product, error) {
	if err := validateMasterData(m); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.catalog.Update(id, m)
	if !ok {
		return nil, domain.ErrNotFound
	}
	s.log.Info().Str("product_id", id.String()).Msg("producto actualizado")
	return p.Clone(), s.persist(ctx)
}

// DeleteProduct elimina el producto. Sus transacciones quedan en el libro con la copia de datos.
func (s *Service) DeleteProduct(ctx context.Context, id entity.ID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.catalog.Delete(id) {
		return domain.ErrNotFound
	}
	s.log.Info().Str("product_id", id.String()).Msg("producto eliminado")
	return s.persist(ctx)
}

// GetProduct devuelve una copia del producto.
func (s *Service) GetProduct(id entity.ID) (*entity.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.catalog.Get(id)
	if !ok {
		return nil, domain.ErrNotFound
	}
	return p.Clone(), nil
}

// ListProducts productos filtrados, los más recientes primero.
func (s *Service) ListProducts(f ProductFilter) []*entity.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneProducts(s.catalog.List(f))
}

// MatchProducts aplica el filtro en cascada y devuelve las opciones de cada nivel.
func (s *Service) MatchProducts(cr Criteria, inStockOnly bool) Match {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Match{
		Candidates: cloneProducts(s.catalog.FindCascading(cr, inStockOnly)),
		Options:    s.catalog.Options(cr, inStockOnly),
	}
}

func validateMasterData(m MasterData) error {
	if strings.TrimSpace(m.Name) == "" {
		return fmt.Errorf("%w: el nombre del producto es obligatorio", domain.ErrInvalidInput)
	}
	if m.UnitType != "" {
		if _, ok := entity.ParseUnitType(string(m.UnitType)); !ok {
			return fmt.Errorf("%w: unidad %q", domain.ErrInvalidInput, m.UnitType)
		}
	}
	if m.MinStock.IsNegative() {
		return fmt.Errorf("%w: el stock mínimo no puede ser negativo", domain.ErrInvalidInput)
	}
	if m.SellPrice.IsNegative() {
		return domain.ErrInvalidPrice
	}
	return inventory.ValidateConversion(strings.TrimSpace(m.PurchaseUnit), m.ConversionRate)
}
