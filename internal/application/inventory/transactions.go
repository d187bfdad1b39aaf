package inventory

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/shopspring/decimal"
	"github.com/vcmdu/Stock-master/internal/domain"
	"github.com/vcmdu/Stock-master/internal/domain/entity"
	"github.com/vcmdu/Stock-master/internal/domain/inventory"
)

// RecordInput movimiento tal como lo digita el usuario (cantidad y precio en la unidad de Mode).
type RecordInput struct {
	Type     entity.TransactionType
	Date     entity.Date // vacío = hoy
	Quantity decimal.Decimal
	Price    decimal.Decimal
	Mode     entity.UnitMode
	Notes    string
}

// SubmitInput movimiento que identifica el producto por id o por criterios en cascada.
// UnitType solo se usa si una compra crea un producto nuevo.
type SubmitInput struct {
	ProductID entity.ID
	Criteria  Criteria
	UnitType  entity.UnitType
	RecordInput
}

// Submission resultado de SubmitTransaction.
type Submission struct {
	Transaction    *entity.Transaction
	Product        *entity.Product
	ProductCreated bool
}

// EditInput nuevos valores para una transacción existente. Date vacío conserva la fecha.
type EditInput struct {
	Type     entity.TransactionType
	Date     entity.Date
	Quantity decimal.Decimal
	Price    decimal.Decimal
	Mode     entity.UnitMode
	Notes    string
}

const maxSuggestions = 3

// ResolveOrCreateProduct identifica el producto de un movimiento sin registrar el movimiento.
// Compras sin coincidencias crean el producto (created=true); ventas sin coincidencias fallan con
// UnknownProductError y más de un candidato falla con AmbiguousMatchError.
func (s *Service) ResolveOrCreateProduct(ctx context.Context, cr Criteria, unitType entity.UnitType, typ entity.TransactionType) (*entity.Product, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, created, err := s.resolve(cr, unitType, typ)
	if err != nil {
		return nil, false, err
	}
	if !created {
		return p.Clone(), false, nil
	}
	s.catalog.Insert(p)
	s.log.Info().Str("product_id", p.ID.String()).Str("name", p.Name).Msg("producto creado por compra")
	return p.Clone(), true, s.persist(ctx)
}

// RecordTransaction aplica un movimiento a un producto existente y lo agrega al libro.
// Ante un error de validación nada cambia; ante un PersistenceError la transacción ya quedó
// registrada en memoria y se devuelve junto al error.
func (s *Service) RecordTransaction(ctx context.Context, productID entity.ID, in RecordInput) (*entity.Transaction, error) {
	if err := validateRecord(in.Type, in.Quantity, in.Price); err != nil {
		s.log.Debug().Err(err).Msg("movimiento rechazado")
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.catalog.Get(productID)
	if !ok {
		return nil, domain.ErrNotFound
	}
	t, err := s.prepare(p, in)
	if err != nil {
		s.log.Debug().Err(err).Str("product_id", productID.String()).Msg("movimiento rechazado")
		return nil, err
	}
	s.commit(p, t)
	return cloneTx(t), s.persist(ctx)
}

// SubmitTransaction resuelve el producto y registra el movimiento como una sola unidad:
// un producto nuevo solo se agrega al catálogo si el movimiento es válido.
func (s *Service) SubmitTransaction(ctx context.Context, in SubmitInput) (*Submission, error) {
	if err := validateRecord(in.Type, in.Quantity, in.Price); err != nil {
		s.log.Debug().Err(err).Msg("movimiento rechazado")
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var (
		p       *entity.Product
		created bool
	)
	if in.ProductID != "" {
		found, ok := s.catalog.Get(in.ProductID)
		if !ok {
			return nil, domain.ErrNotFound
		}
		p = found
	} else {
		var err error
		if p, created, err = s.resolve(in.Criteria, in.UnitType, in.Type); err != nil {
			s.log.Debug().Err(err).Str("name", in.Criteria.Name).Msg("movimiento rechazado")
			return nil, err
		}
	}

	t, err := s.prepare(p, in.RecordInput)
	if err != nil {
		s.log.Debug().Err(err).Str("product_id", p.ID.String()).Msg("movimiento rechazado")
		return nil, err
	}
	if created {
		s.catalog.Insert(p)
		s.log.Info().Str("product_id", p.ID.String()).Str("name", p.Name).Msg("producto creado por compra")
	}
	s.commit(p, t)

	return &Submission{Transaction: cloneTx(t), Product: p.Clone(), ProductCreated: created}, s.persist(ctx)
}

// UpdateTransaction edita un movimiento: deshace su efecto, valida el nuevo y lo aplica.
// Si el nuevo efecto dejaría el stock negativo se restaura el efecto anterior y nada cambia.
// El producto asociado no puede cambiar; el precio de compra del producto no se recalcula.
func (s *Service) UpdateTransaction(ctx context.Context, id entity.ID, in EditInput) (*entity.Transaction, error) {
	if err := validateRecord(in.Type, in.Quantity, in.Price); err != nil {
		s.log.Debug().Err(err).Str("transaction_id", id.String()).Msg("edición rechazada")
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	old, ok := s.ledger.FindByID(id)
	if !ok {
		return nil, domain.ErrNotFound
	}
	p, ok := s.catalog.Get(old.ProductID)
	if !ok {
		return nil, fmt.Errorf("%w: transacción %s, producto %s", domain.ErrOrphanedTransaction, id, old.ProductID)
	}
	conv, err := inventory.ResolveUnits(p, in.Mode, in.Quantity, in.Price)
	if err != nil {
		return nil, err
	}

	next := cloneTx(old)
	next.Type = in.Type
	next.Quantity = conv.BaseQuantity

	inventory.Revert(p, old)
	if err := inventory.CheckEdit(p, next); err != nil {
		inventory.ApplyStock(p, old)
		s.log.Debug().Err(err).Str("transaction_id", id.String()).Msg("edición rechazada")
		return nil, err
	}
	inventory.ApplyStock(p, next)

	date := in.Date
	if date.IsZero() {
		date = old.Date
	}
	updated, _ := s.ledger.Replace(id, Revision{
		Date:     date,
		Type:     in.Type,
		Quantity: conv.BaseQuantity,
		Price:    conv.BaseUnitPrice,
		Total:    conv.Total,
		UnitMode: modeOrBase(in.Mode),
		Notes:    strings.TrimSpace(in.Notes),
	})
	s.log.Info().
		Str("transaction_id", id.String()).
		Str("product_id", p.ID.String()).
		Str("stock", p.Stock.String()).
		Msg("transacción editada")
	return cloneTx(updated), s.persist(ctx)
}

// GetTransaction devuelve una copia de la transacción.
func (s *Service) GetTransaction(id entity.ID) (*entity.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.ledger.FindByID(id)
	if !ok {
		return nil, domain.ErrNotFound
	}
	return cloneTx(t), nil
}

// ListTransactions transacciones filtradas, fecha descendente.
func (s *Service) ListTransactions(f TransactionFilter) []*entity.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneTransactions(s.ledger.Filter(f))
}

// RecentTransactions últimas n registradas.
func (s *Service) RecentTransactions(n int) []*entity.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneTransactions(s.ledger.Recent(n))
}

// resolve decide el producto sin mutar el catálogo. Si created=true el producto aún no está insertado.
func (s *Service) resolve(cr Criteria, unitType entity.UnitType, typ entity.TransactionType) (*entity.Product, bool, error) {
	if strings.TrimSpace(cr.Name) == "" {
		return nil, false, fmt.Errorf("%w: el nombre del producto es obligatorio", domain.ErrInvalidInput)
	}
	matches := s.catalog.FindCascading(cr, false)
	switch {
	case len(matches) == 1:
		return matches[0], false, nil
	case len(matches) > 1:
		ids := make([]string, len(matches))
		for i, m := range matches {
			ids[i] = m.ID.String()
		}
		return nil, false, &domain.AmbiguousMatchError{Candidates: ids}
	case typ == entity.TransactionOut:
		return nil, false, &domain.UnknownProductError{Name: strings.TrimSpace(cr.Name), Suggestions: s.suggest(cr.Name)}
	}
	p := s.catalog.Build(MasterData{
		Name:     cr.Name,
		Brand:    cr.Brand,
		Category: cr.Category,
		Size:     cr.Size,
		Weight:   cr.Weight,
		UnitType: unitType,
		MinStock: s.cfg.DefaultMinStock,
	}, decimal.Zero)
	return p, true, nil
}

// prepare valida el movimiento contra p y arma la transacción sin mutar nada.
func (s *Service) prepare(p *entity.Product, in RecordInput) (*entity.Transaction, error) {
	conv, err := inventory.ResolveUnits(p, in.Mode, in.Quantity, in.Price)
	if err != nil {
		return nil, err
	}
	if err := inventory.CheckAvailable(p, in.Type, conv.BaseQuantity); err != nil {
		return nil, err
	}
	date := in.Date
	if date.IsZero() {
		date = s.clock()
	}
	t := &entity.Transaction{
		Date:     date,
		Type:     in.Type,
		Quantity: conv.BaseQuantity,
		Price:    conv.BaseUnitPrice,
		Total:    conv.Total,
		UnitMode: modeOrBase(in.Mode),
		Notes:    strings.TrimSpace(in.Notes),
	}
	t.Snapshot(p)
	return t, nil
}

// commit aplica t sobre p y lo agrega al libro. Debe ir precedido de prepare.
func (s *Service) commit(p *entity.Product, t *entity.Transaction) {
	inventory.Apply(p, t)
	s.ledger.Append(t)
	s.log.Info().
		Str("transaction_id", t.ID.String()).
		Str("product_id", p.ID.String()).
		Str("type", string(t.Type)).
		Str("quantity", t.Quantity.String()).
		Str("stock", p.Stock.String()).
		Msg("movimiento registrado")
}

// suggest nombres del catálogo parecidos a name, el más cercano primero.
func (s *Service) suggest(name string) []string {
	want := normalize(name)
	type candidate struct {
		name string
		dist int
	}
	var found []candidate
	seen := make(map[string]struct{})
	for _, p := range s.catalog.All() {
		key := normalize(p.Name)
		if _, ok := seen[key]; ok || key == "" {
			continue
		}
		seen[key] = struct{}{}
		d := levenshtein.ComputeDistance(want, key)
		if d <= max(2, len(want)/3) || strings.Contains(key, want) {
			found = append(found, candidate{name: p.Name, dist: d})
		}
	}
	slices.SortStableFunc(found, func(a, b candidate) int { return a.dist - b.dist })
	out := make([]string, 0, maxSuggestions)
	for _, c := range found {
		if len(out) == maxSuggestions {
			break
		}
		out = append(out, c.name)
	}
	return out
}

func validateRecord(typ entity.TransactionType, qty, price decimal.Decimal) error {
	if typ != entity.TransactionIn && typ != entity.TransactionOut {
		return fmt.Errorf("%w: tipo de movimiento %q", domain.ErrInvalidInput, typ)
	}
	if !qty.IsPositive() {
		return domain.ErrInvalidQuantity
	}
	if price.IsNegative() {
		return domain.ErrInvalidPrice
	}
	return nil
}

func modeOrBase(m entity.UnitMode) entity.UnitMode {
	if m == "" {
		return entity.ModeBase
	}
	return m
}

// IsDurabilityFailure indica si err solo reporta que la mutación no quedó persistida.
func IsDurabilityFailure(err error) bool {
	return errors.Is(err, domain.ErrPersistenceWrite)
}
