package inventory_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vcmdu/Stock-master/internal/application/inventory"
	"github.com/vcmdu/Stock-master/internal/domain"
	"github.com/vcmdu/Stock-master/internal/domain/entity"
	domaininv "github.com/vcmdu/Stock-master/internal/domain/inventory"
	"github.com/vcmdu/Stock-master/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Dobles de prueba
// ──────────────────────────────────────────────────────────────────────────────

type memoryRepo struct {
	mu    sync.Mutex
	state *repository.State
	saves int
	fail  error
}

func (r *memoryRepo) Load(context.Context) (*repository.State, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state == nil {
		return &repository.State{}, nil
	}
	return r.state, nil
}

func (r *memoryRepo) Save(_ context.Context, s *repository.State) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail != nil {
		return r.fail
	}
	r.saves++
	r.state = &repository.State{Products: s.Products, Transactions: s.Transactions}
	return nil
}

type seqIDs struct{ n int }

func (g *seqIDs) NewID() entity.ID {
	g.n++
	return entity.ID(fmt.Sprintf("id-%03d", g.n))
}

var today = entity.NewDate(2024, time.March, 15)

func newService(t *testing.T) (*inventory.Service, *memoryRepo) {
	t.Helper()
	repo := &memoryRepo{}
	svc := inventory.NewService(repo, &seqIDs{}, func() entity.Date { return today }, inventory.Config{
		DefaultMinStock: decimal.NewFromInt(5),
	}, nil)
	require.NoError(t, svc.Load(context.Background()))
	return svc, repo
}

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func assertDec(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...any) {
	t.Helper()
	assert.True(t, d(want).Equal(got), append([]any{"esperado %s, obtenido %s", want, got}, msgAndArgs...)...)
}

func buy(name, brand string, qty, price string) inventory.SubmitInput {
	return inventory.SubmitInput{
		Criteria: inventory.Criteria{Name: name, Brand: brand},
		UnitType: entity.UnitKG,
		RecordInput: inventory.RecordInput{
			Type: entity.TransactionIn, Quantity: d(qty), Price: d(price),
		},
	}
}

func sell(name, brand string, qty, price string) inventory.SubmitInput {
	in := buy(name, brand, qty, price)
	in.Type = entity.TransactionOut
	return in
}

// stockMatchesLedger verifica que el stock de cada producto sea la suma de su libro.
func stockMatchesLedger(t *testing.T, svc *inventory.Service) {
	t.Helper()
	snap := svc.Snapshot()
	sums := map[entity.ID]decimal.Decimal{}
	for _, tx := range snap.Transactions {
		sums[tx.ProductID] = sums[tx.ProductID].Add(tx.SignedQuantity())
	}
	for _, p := range snap.Products {
		assert.True(t, p.Stock.Equal(sums[p.ID]), "producto %s: stock %s, libro %s", p.ID, p.Stock, sums[p.ID])
		assert.False(t, p.Stock.IsNegative(), "stock negativo en %s", p.ID)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Escenarios A–E
// ──────────────────────────────────────────────────────────────────────────────

func TestSubmit_CompraCreaProducto(t *testing.T) {
	svc, repo := newService(t)

	res, err := svc.SubmitTransaction(context.Background(), buy("Rice", "ABC", "100", "40"))
	require.NoError(t, err)

	assert.True(t, res.ProductCreated)
	assertDec(t, "100", res.Product.Stock)
	assertDec(t, "40", res.Product.BuyPrice)
	assertDec(t, "5", res.Product.MinStock)
	assert.Equal(t, entity.UnitKG, res.Product.UnitType)

	assertDec(t, "100", res.Transaction.Quantity)
	assertDec(t, "40", res.Transaction.Price)
	assertDec(t, "4000", res.Transaction.Total)
	assert.Equal(t, res.Product.ID, res.Transaction.ProductID)
	assert.Equal(t, "ABC", res.Transaction.ProductBrand)
	assert.Equal(t, today, res.Transaction.Date)
	assert.Equal(t, entity.ModeBase, res.Transaction.UnitMode)

	assert.Equal(t, 1, repo.saves)
	require.Len(t, repo.state.Products, 1)
	require.Len(t, repo.state.Transactions, 1)
}

func seedRice(t *testing.T, svc *inventory.Service) *entity.Product {
	t.Helper()
	res, err := svc.SubmitTransaction(context.Background(), buy("Rice", "ABC", "100", "40"))
	require.NoError(t, err)
	r := d("50")
	p, err := svc.UpdateProduct(context.Background(), res.Product.ID, inventory.MasterData{
		Name: "Rice", Brand: "ABC", UnitType: entity.UnitKG,
		MinStock: d("20"), PurchaseUnit: "Bag", ConversionRate: &r,
	})
	require.NoError(t, err)
	return p
}

func TestSubmit_VentaDescuentaSinCambiarPrecioDeCompra(t *testing.T) {
	svc, _ := newService(t)
	rice := seedRice(t, svc)

	res, err := svc.SubmitTransaction(context.Background(), sell("rice ", " abc", "30", "50"))
	require.NoError(t, err)

	assert.False(t, res.ProductCreated)
	assert.Equal(t, rice.ID, res.Product.ID)
	assertDec(t, "70", res.Product.Stock)
	assertDec(t, "1500", res.Transaction.Total)
	assertDec(t, "40", res.Product.BuyPrice)
	stockMatchesLedger(t, svc)
}

func TestSubmit_VentaMayorAlStockNoCambiaNada(t *testing.T) {
	svc, repo := newService(t)
	seedRice(t, svc)
	_, err := svc.SubmitTransaction(context.Background(), sell("Rice", "ABC", "30", "50"))
	require.NoError(t, err)
	savesBefore := repo.saves

	_, err = svc.SubmitTransaction(context.Background(), sell("Rice", "ABC", "1000", "50"))
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	var stockErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assertDec(t, "70", stockErr.Available)

	snap := svc.Snapshot()
	assertDec(t, "70", snap.Products[0].Stock)
	assert.Len(t, snap.Transactions, 2)
	assert.Equal(t, savesBefore, repo.saves)
}

func TestSubmit_CompraEnUnidadDeCompra(t *testing.T) {
	svc, _ := newService(t)
	rice := seedRice(t, svc)

	in := buy("Rice", "ABC", "2", "2000")
	in.Mode = entity.ModeBulk
	res, err := svc.SubmitTransaction(context.Background(), in)
	require.NoError(t, err)

	assertDec(t, "100", res.Transaction.Quantity)
	assertDec(t, "40", res.Transaction.Price)
	assertDec(t, "4000", res.Transaction.Total)
	assert.Equal(t, entity.ModeBulk, res.Transaction.UnitMode)
	assertDec(t, "200", res.Product.Stock)
	assert.Equal(t, rice.ID, res.Product.ID)
}

func TestUpdateTransaction_RevierteYAplica(t *testing.T) {
	svc, _ := newService(t)
	seedRice(t, svc)
	sale, err := svc.SubmitTransaction(context.Background(), sell("Rice", "ABC", "30", "50"))
	require.NoError(t, err)

	edited, err := svc.UpdateTransaction(context.Background(), sale.Transaction.ID, inventory.EditInput{
		Type: entity.TransactionOut, Quantity: d("40"), Price: d("50"), Notes: "corrección",
	})
	require.NoError(t, err)

	assert.Equal(t, sale.Transaction.ID, edited.ID)
	assert.Equal(t, sale.Transaction.ProductID, edited.ProductID)
	assert.Equal(t, sale.Transaction.Date, edited.Date)
	assertDec(t, "2000", edited.Total)
	assert.Equal(t, "corrección", edited.Notes)

	p, err := svc.GetProduct(sale.Product.ID)
	require.NoError(t, err)
	assertDec(t, "60", p.Stock)
	stockMatchesLedger(t, svc)
}

// ──────────────────────────────────────────────────────────────────────────────
// Propiedades
// ──────────────────────────────────────────────────────────────────────────────

func TestPropiedad_ConservacionDeStock(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	ops := []inventory.SubmitInput{
		buy("Rice", "ABC", "100", "40"),
		buy("Oil", "Sun", "12", "150"),
		sell("Rice", "ABC", "30", "50"),
		buy("Rice", "XYZ", "10", "38"),
		sell("Oil", "Sun", "12", "170"),
		sell("Rice", "ABC", "70", "55"),
		sell("Rice", "XYZ", "11", "55"),
		buy("Oil", "Sun", "3", "160"),
	}
	for _, op := range ops {
		_, err := svc.SubmitTransaction(ctx, op)
		if err != nil {
			require.ErrorIs(t, err, domain.ErrInsufficientStock)
		}
	}
	stockMatchesLedger(t, svc)

	snap := svc.Snapshot()
	assert.Len(t, snap.Products, 3)
	assert.Len(t, snap.Transactions, 7)
}

func TestPropiedad_EdicionSinCambiosEsNeutra(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	first, err := svc.SubmitTransaction(ctx, buy("Rice", "ABC", "5", "40"))
	require.NoError(t, err)
	_, err = svc.SubmitTransaction(ctx, sell("Rice", "ABC", "2", "50"))
	require.NoError(t, err)
	before := svc.Snapshot()

	_, err = svc.UpdateTransaction(ctx, first.Transaction.ID, inventory.EditInput{
		Type: entity.TransactionIn, Quantity: d("5"), Price: d("40"),
	})
	require.NoError(t, err)

	after := svc.Snapshot()
	assertDec(t, before.Products[0].Stock.String(), after.Products[0].Stock)
	assert.Equal(t, before.Transactions[1], after.Transactions[1])
}

func TestPropiedad_EdicionRechazadaRestauraStock(t *testing.T) {
	svc, repo := newService(t)
	ctx := context.Background()
	purchase, err := svc.SubmitTransaction(ctx, buy("Rice", "ABC", "100", "40"))
	require.NoError(t, err)
	_, err = svc.SubmitTransaction(ctx, sell("Rice", "ABC", "70", "50"))
	require.NoError(t, err)
	saves := repo.saves
	before, err := svc.GetTransaction(purchase.Transaction.ID)
	require.NoError(t, err)

	// bajar la compra a 10 dejaría -60
	_, err = svc.UpdateTransaction(ctx, purchase.Transaction.ID, inventory.EditInput{
		Type: entity.TransactionIn, Quantity: d("10"), Price: d("40"),
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	p, err := svc.GetProduct(purchase.Product.ID)
	require.NoError(t, err)
	assertDec(t, "30", p.Stock)

	after, err := svc.GetTransaction(purchase.Transaction.ID)
	require.NoError(t, err)
	assert.Equal(t, before, after)
	assert.Equal(t, saves, repo.saves)
}

func TestPropiedad_EdicionCambiaTipo(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	_, err := svc.SubmitTransaction(ctx, buy("Rice", "ABC", "100", "40"))
	require.NoError(t, err)
	second, err := svc.SubmitTransaction(ctx, buy("Rice", "ABC", "10", "42"))
	require.NoError(t, err)

	_, err = svc.UpdateTransaction(ctx, second.Transaction.ID, inventory.EditInput{
		Type: entity.TransactionOut, Quantity: d("10"), Price: d("60"),
	})
	require.NoError(t, err)

	p, err := svc.GetProduct(second.Product.ID)
	require.NoError(t, err)
	assertDec(t, "90", p.Stock)
	assertDec(t, "42", p.BuyPrice, "editar no recalcula el precio de compra")
	stockMatchesLedger(t, svc)
}

// ──────────────────────────────────────────────────────────────────────────────
// Errores de resolución y validación
// ──────────────────────────────────────────────────────────────────────────────

func TestSubmit_VentaDeProductoInexistente(t *testing.T) {
	svc, _ := newService(t)
	_, err := svc.SubmitTransaction(context.Background(), buy("Sugar", "", "10", "30"))
	require.NoError(t, err)

	_, err = svc.SubmitTransaction(context.Background(), sell("Sugr", "", "1", "35"))
	require.ErrorIs(t, err, domain.ErrUnknownProductOnSale)

	var unknown *domain.UnknownProductError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, []string{"Sugar"}, unknown.Suggestions)
	assert.Len(t, svc.Snapshot().Products, 1, "una venta nunca crea productos")
}

func TestSubmit_CoincidenciaAmbigua(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	_, err := svc.SubmitTransaction(ctx, buy("Rice", "ABC", "10", "40"))
	require.NoError(t, err)
	_, err = svc.SubmitTransaction(ctx, buy("Rice", "XYZ", "10", "40"))
	require.NoError(t, err)

	_, err = svc.SubmitTransaction(ctx, sell("Rice", "", "1", "50"))
	require.ErrorIs(t, err, domain.ErrAmbiguousProductMatch)

	var amb *domain.AmbiguousMatchError
	require.ErrorAs(t, err, &amb)
	assert.Len(t, amb.Candidates, 2)

	_, err = svc.SubmitTransaction(ctx, buy("Rice", "", "1", "50"))
	require.ErrorIs(t, err, domain.ErrAmbiguousProductMatch, "las compras también exigen una sola coincidencia")
}

func TestSubmit_CantidadYPrecioInvalidos(t *testing.T) {
	svc, repo := newService(t)

	_, err := svc.SubmitTransaction(context.Background(), buy("Rice", "", "0", "40"))
	require.ErrorIs(t, err, domain.ErrInvalidQuantity)

	_, err = svc.SubmitTransaction(context.Background(), buy("Rice", "", "-3", "40"))
	require.ErrorIs(t, err, domain.ErrInvalidQuantity)

	_, err = svc.SubmitTransaction(context.Background(), buy("Rice", "", "3", "-1"))
	require.ErrorIs(t, err, domain.ErrInvalidPrice)

	assert.Empty(t, svc.Snapshot().Products)
	assert.Zero(t, repo.saves)
	assert.True(t, domain.IsValidationError(err))
}

func TestSubmit_UnidadDeCompraEnProductoNuevoNoLoCrea(t *testing.T) {
	svc, _ := newService(t)
	in := buy("Flour", "", "2", "100")
	in.Mode = entity.ModeBulk

	_, err := svc.SubmitTransaction(context.Background(), in)
	require.ErrorIs(t, err, domain.ErrInvalidConversion)
	assert.Empty(t, svc.Snapshot().Products)
}

func TestSubmit_PorIDDeProducto(t *testing.T) {
	svc, _ := newService(t)
	rice := seedRice(t, svc)

	res, err := svc.SubmitTransaction(context.Background(), inventory.SubmitInput{
		ProductID:   rice.ID,
		RecordInput: inventory.RecordInput{Type: entity.TransactionOut, Quantity: d("1"), Price: d("50"), Date: entity.NewDate(2024, time.January, 2)},
	})
	require.NoError(t, err)
	assert.Equal(t, "2024-01-02", res.Transaction.Date.String())

	_, err = svc.SubmitTransaction(context.Background(), inventory.SubmitInput{
		ProductID:   "missing",
		RecordInput: inventory.RecordInput{Type: entity.TransactionIn, Quantity: d("1")},
	})
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdateTransaction_Huerfana(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	res, err := svc.SubmitTransaction(ctx, buy("Rice", "ABC", "10", "40"))
	require.NoError(t, err)
	require.NoError(t, svc.DeleteProduct(ctx, res.Product.ID))

	_, err = svc.UpdateTransaction(ctx, res.Transaction.ID, inventory.EditInput{
		Type: entity.TransactionIn, Quantity: d("20"), Price: d("40"),
	})
	require.ErrorIs(t, err, domain.ErrOrphanedTransaction)

	tx, err := svc.GetTransaction(res.Transaction.ID)
	require.NoError(t, err)
	assertDec(t, "10", tx.Quantity)
	assert.Equal(t, "Rice", tx.ProductName, "la copia de datos sobrevive al borrado")
}

func TestUpdateTransaction_NoExiste(t *testing.T) {
	svc, _ := newService(t)
	_, err := svc.UpdateTransaction(context.Background(), "nope", inventory.EditInput{
		Type: entity.TransactionIn, Quantity: d("1"), Price: d("1"),
	})
	require.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Persistencia
// ──────────────────────────────────────────────────────────────────────────────

func TestSubmit_FalloDePersistenciaNoRevierte(t *testing.T) {
	svc, repo := newService(t)
	repo.fail = errors.New("quota exceeded")

	res, err := svc.SubmitTransaction(context.Background(), buy("Rice", "ABC", "100", "40"))
	require.ErrorIs(t, err, domain.ErrPersistenceWrite)
	assert.True(t, inventory.IsDurabilityFailure(err))
	assert.False(t, domain.IsValidationError(err))
	assert.ErrorContains(t, err, "quota exceeded")

	require.NotNil(t, res, "el resultado se devuelve aunque no sea durable")
	assertDec(t, "100", res.Product.Stock)
	assert.Len(t, svc.Snapshot().Transactions, 1)
}

func TestLoad_LeeEstadoGuardado(t *testing.T) {
	repo := &memoryRepo{state: &repository.State{
		Products: []*entity.Product{{ID: "p1", Name: "Rice", Stock: d("5"), BuyPrice: d("40")}},
		Transactions: []*entity.Transaction{
			{ID: "t1", ProductID: "p1", Type: entity.TransactionIn, Quantity: d("5"), Price: d("40"), Total: d("200")},
		},
	}}
	svc := inventory.NewService(repo, nil, nil, inventory.Config{}, nil)
	require.NoError(t, svc.Load(context.Background()))

	p, err := svc.GetProduct("p1")
	require.NoError(t, err)
	assertDec(t, "5", p.Stock)
	stockMatchesLedger(t, svc)
}

// ──────────────────────────────────────────────────────────────────────────────
// Productos
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateProduct_ConSaldoInicial(t *testing.T) {
	svc, _ := newService(t)

	res, err := svc.CreateProduct(context.Background(), inventory.CreateProductInput{
		MasterData:   inventory.MasterData{Name: "Soap", Brand: "Clean", UnitType: entity.UnitPiece, MinStock: d("3"), SellPrice: d("25")},
		BuyPrice:     d("18"),
		OpeningStock: d("12"),
	})
	require.NoError(t, err)
	require.NotNil(t, res.OpeningBalance)

	assertDec(t, "12", res.Product.Stock)
	assertDec(t, "18", res.Product.BuyPrice)
	assert.Equal(t, entity.OpeningBalanceNotes, res.OpeningBalance.Notes)
	assert.Equal(t, today, res.OpeningBalance.Date)
	assertDec(t, "216", res.OpeningBalance.Total)
	stockMatchesLedger(t, svc)
}

func TestCreateProduct_SinSaldoInicial(t *testing.T) {
	svc, _ := newService(t)
	res, err := svc.CreateProduct(context.Background(), inventory.CreateProductInput{
		MasterData: inventory.MasterData{Name: "Soap"},
	})
	require.NoError(t, err)
	assert.Nil(t, res.OpeningBalance)
	assert.Equal(t, entity.UnitPiece, res.Product.UnitType)
	assert.Empty(t, svc.Snapshot().Transactions)
}

func TestCreateProduct_Validaciones(t *testing.T) {
	svc, _ := newService(t)
	zero := decimal.Zero
	cases := []struct {
		name string
		in   inventory.CreateProductInput
		want error
	}{
		{"sin nombre", inventory.CreateProductInput{}, domain.ErrInvalidInput},
		{"stock negativo", inventory.CreateProductInput{MasterData: inventory.MasterData{Name: "x"}, OpeningStock: d("-1")}, domain.ErrInvalidQuantity},
		{"precio negativo", inventory.CreateProductInput{MasterData: inventory.MasterData{Name: "x"}, BuyPrice: d("-1")}, domain.ErrInvalidPrice},
		{"tasa cero", inventory.CreateProductInput{MasterData: inventory.MasterData{Name: "x", PurchaseUnit: "Box", ConversionRate: &zero}}, domain.ErrInvalidConversion},
		{"unidad desconocida", inventory.CreateProductInput{MasterData: inventory.MasterData{Name: "x", UnitType: "Ton"}}, domain.ErrInvalidInput},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateProduct(context.Background(), tc.in)
			require.ErrorIs(t, err, tc.want)
		})
	}
	assert.Empty(t, svc.Snapshot().Products)
}

func TestUpdateProduct_NoTocaStockNiPrecioDeCompra(t *testing.T) {
	svc, _ := newService(t)
	rice := seedRice(t, svc)

	p, err := svc.UpdateProduct(context.Background(), rice.ID, inventory.MasterData{Name: "Basmati", Brand: "ABC", SellPrice: d("60")})
	require.NoError(t, err)
	assert.Equal(t, "Basmati", p.Name)
	assertDec(t, "100", p.Stock)
	assertDec(t, "40", p.BuyPrice)
	assert.Nil(t, p.ConversionRate, "sin tasa la conversión se deshabilita")

	_, err = svc.UpdateProduct(context.Background(), "missing", inventory.MasterData{Name: "x"})
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteProduct_ConservaTransacciones(t *testing.T) {
	svc, _ := newService(t)
	rice := seedRice(t, svc)

	require.NoError(t, svc.DeleteProduct(context.Background(), rice.ID))
	require.ErrorIs(t, svc.DeleteProduct(context.Background(), rice.ID), domain.ErrNotFound)
	assert.Len(t, svc.Snapshot().Transactions, 1)
}

func TestResolveOrCreateProduct(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	p, created, err := svc.ResolveOrCreateProduct(ctx, inventory.Criteria{Name: "Tea", Brand: "Leaf"}, entity.UnitPack, entity.TransactionIn)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, entity.UnitPack, p.UnitType)
	assertDec(t, "0", p.Stock)

	again, created, err := svc.ResolveOrCreateProduct(ctx, inventory.Criteria{Name: "TEA"}, "", entity.TransactionOut)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, p.ID, again.ID)

	_, _, err = svc.ResolveOrCreateProduct(ctx, inventory.Criteria{Name: "Coffee"}, "", entity.TransactionOut)
	require.ErrorIs(t, err, domain.ErrUnknownProductOnSale)

	tx, err := svc.RecordTransaction(ctx, p.ID, inventory.RecordInput{Type: entity.TransactionIn, Quantity: d("4"), Price: d("9")})
	require.NoError(t, err)
	assertDec(t, "36", tx.Total)
}

// ──────────────────────────────────────────────────────────────────────────────
// Consultas, restauración y borrado
// ──────────────────────────────────────────────────────────────────────────────

func TestListTransactions_FiltrosYOrden(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	rice := seedRice(t, svc)

	record := func(typ entity.TransactionType, date entity.Date, notes string) {
		_, err := svc.RecordTransaction(ctx, rice.ID, inventory.RecordInput{Type: typ, Date: date, Quantity: d("1"), Price: d("50"), Notes: notes})
		require.NoError(t, err)
	}
	record(entity.TransactionOut, entity.NewDate(2024, time.March, 1), "mayorista")
	record(entity.TransactionOut, entity.NewDate(2024, time.March, 10), "")
	record(entity.TransactionIn, entity.NewDate(2024, time.March, 10), "reposición")

	all := svc.ListTransactions(inventory.TransactionFilter{})
	require.Len(t, all, 4)
	assert.Equal(t, "2024-03-15", all[0].Date.String())
	assert.Equal(t, entity.TransactionIn, all[1].Type, "mismo día: el registrado después primero")
	assert.Equal(t, "2024-03-01", all[3].Date.String())

	outs := svc.ListTransactions(inventory.TransactionFilter{Type: entity.TransactionOut})
	assert.Len(t, outs, 2)

	ranged := svc.ListTransactions(inventory.TransactionFilter{From: entity.NewDate(2024, time.March, 2), To: entity.NewDate(2024, time.March, 10)})
	assert.Len(t, ranged, 2)

	byText := svc.ListTransactions(inventory.TransactionFilter{Search: "MAYOR"})
	require.Len(t, byText, 1)
	assert.Equal(t, "mayorista", byText[0].Notes)

	recent := svc.RecentTransactions(2)
	require.Len(t, recent, 2)
	assert.Equal(t, "reposición", recent[0].Notes)
}

func TestReportTotals_UsaPrecioDeCompraActual(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	_, err := svc.SubmitTransaction(ctx, buy("Rice", "ABC", "100", "40"))
	require.NoError(t, err)
	_, err = svc.SubmitTransaction(ctx, sell("Rice", "ABC", "30", "50"))
	require.NoError(t, err)
	_, err = svc.SubmitTransaction(ctx, buy("Rice", "ABC", "10", "45"))
	require.NoError(t, err)

	totals := svc.ReportTotals(svc.ListTransactions(inventory.TransactionFilter{}))
	assertDec(t, "1500", totals.SalesRevenue)
	assertDec(t, "4450", totals.PurchasesCost)
	assertDec(t, "1350", totals.CostOfGoodsSold)
	assertDec(t, "150", totals.NetProfit)
}

func TestRestoreYReset(t *testing.T) {
	svc, repo := newService(t)
	ctx := context.Background()
	seedRice(t, svc)

	backup := &repository.State{
		Products: []*entity.Product{{ID: "x1", Name: "Tea", Stock: d("3")}},
	}
	require.NoError(t, svc.Restore(ctx, backup))
	backup.Products[0].Name = "mutated"

	snap := svc.Snapshot()
	require.Len(t, snap.Products, 1)
	assert.Equal(t, "Tea", snap.Products[0].Name)
	assert.Empty(t, snap.Transactions)
	assert.Len(t, repo.state.Products, 1)

	require.NoError(t, svc.Reset(ctx))
	assert.Empty(t, svc.Snapshot().Products)
	assert.Empty(t, repo.state.Products)
}

func TestMatchProducts(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	_, err := svc.SubmitTransaction(ctx, buy("Rice", "ABC", "10", "40"))
	require.NoError(t, err)
	_, err = svc.SubmitTransaction(ctx, buy("Rice", "XYZ", "10", "40"))
	require.NoError(t, err)
	_, err = svc.SubmitTransaction(ctx, sell("Rice", "XYZ", "10", "40"))
	require.NoError(t, err)

	m := svc.MatchProducts(inventory.Criteria{Name: "rice"}, false)
	assert.Len(t, m.Candidates, 2)
	assert.Equal(t, []string{"ABC", "XYZ"}, m.Options.Brands)

	inStock := svc.MatchProducts(inventory.Criteria{Name: "rice"}, true)
	require.Len(t, inStock.Candidates, 1)
	assert.Equal(t, "ABC", inStock.Candidates[0].Brand)
}

func TestService_ConcurrenciaConservaStock(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	res, err := svc.SubmitTransaction(ctx, buy("Rice", "ABC", "50", "40"))
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, _ = svc.RecordTransaction(ctx, res.Product.ID, inventory.RecordInput{Type: entity.TransactionOut, Quantity: d("5"), Price: d("50")})
		}()
		go func() {
			defer wg.Done()
			_ = svc.ListProducts(inventory.ProductFilter{})
		}()
	}
	wg.Wait()

	p, err := svc.GetProduct(res.Product.ID)
	require.NoError(t, err)
	assertDec(t, "0", p.Stock)
	stockMatchesLedger(t, svc)
}

func TestValueHistory_UltimoPuntoCoincideConValorActual(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	_, err := svc.SubmitTransaction(ctx, buy("Rice", "ABC", "10", "40"))
	require.NoError(t, err)
	_, err = svc.SubmitTransaction(ctx, buy("Oil", "", "2", "100"))
	require.NoError(t, err)

	h, err := svc.ValueHistory(entity.Date{}, entity.Date{}, domaininv.GranularityDay)
	require.NoError(t, err)
	assert.Equal(t, today, h.From)
	assert.Equal(t, today, h.To)
	require.Len(t, h.Points, 1)
	assertDec(t, "600", h.Current)
	assertDec(t, h.Current.String(), h.Points[0].TotalValue)
}

func TestValueHistory_ConsistenteConEscriturasConcurrentes(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	_, err := svc.SubmitTransaction(ctx, buy("Rice", "ABC", "10", "40"))
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for range 50 {
			_, _ = svc.SubmitTransaction(ctx, buy("Rice", "ABC", "1", "40"))
		}
	}()

	for running := true; running; {
		select {
		case <-done:
			running = false
		default:
		}
		h, err := svc.ValueHistory(entity.Date{}, today, domaininv.GranularityDay)
		require.NoError(t, err)
		require.NotEmpty(t, h.Points)
		last := h.Points[len(h.Points)-1]
		require.True(t, last.TotalValue.Equal(h.Current), "serie %s, actual %s", last.TotalValue, h.Current)
	}
	assertDec(t, "2400", svc.ListProducts(inventory.ProductFilter{})[0].Value())
}

func TestValueHistory_RangoInvalido(t *testing.T) {
	svc, _ := newService(t)
	_, err := svc.ValueHistory(entity.NewDate(2024, time.April, 1), today, domaininv.GranularityDay)
	require.Error(t, err)
}
