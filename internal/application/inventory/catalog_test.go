package inventory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vcmdu/Stock-master/internal/application/inventory"
	"github.com/vcmdu/Stock-master/internal/domain/entity"
)

func catalogFixture() *inventory.Catalog {
	return inventory.NewCatalog(&seqIDs{}, []*entity.Product{
		{ID: "1", Name: "Rice", Brand: "ABC", Category: "Grain", Size: "Small", Weight: "5", Stock: d("10"), MinStock: d("5")},
		{ID: "2", Name: "Rice", Brand: "ABC", Category: "Grain", Size: "Large", Weight: "25", Stock: d("3"), MinStock: d("5")},
		{ID: "3", Name: "rice ", Brand: "XYZ", Stock: d("0"), MinStock: d("5")},
		{ID: "4", Name: "Oil", Brand: "Sun", Category: "Cooking", Stock: d("40"), MinStock: d("5")},
	})
}

func ids(products []*entity.Product) []entity.ID {
	out := make([]entity.ID, len(products))
	for i, p := range products {
		out[i] = p.ID
	}
	return out
}

func TestCatalog_FindCascading(t *testing.T) {
	c := catalogFixture()

	assert.Equal(t, []entity.ID{"1", "2", "3"}, ids(c.FindCascading(inventory.Criteria{Name: " RICE"}, false)))
	assert.Equal(t, []entity.ID{"1", "2"}, ids(c.FindCascading(inventory.Criteria{Name: "rice", Brand: "abc"}, false)))
	assert.Equal(t, []entity.ID{"2"}, ids(c.FindCascading(inventory.Criteria{Name: "rice", Brand: "abc", Size: "large"}, false)))
	assert.Equal(t, []entity.ID{"1"}, ids(c.FindCascading(inventory.Criteria{Name: "rice", Weight: "5"}, false)))
	assert.Empty(t, c.FindCascading(inventory.Criteria{Name: "rice", Brand: "QQQ"}, false))
	assert.Equal(t, []entity.ID{"1", "2"}, ids(c.FindCascading(inventory.Criteria{Name: "rice"}, true)))
}

func TestCatalog_Options(t *testing.T) {
	c := catalogFixture()

	opts := c.Options(inventory.Criteria{Name: "rice", Brand: "ABC"}, false)
	assert.Equal(t, []string{"Oil", "Rice"}, opts.Names)
	assert.Equal(t, []string{"ABC", "XYZ"}, opts.Brands)
	assert.Equal(t, []string{"Grain"}, opts.Categories)
	assert.Equal(t, []string{"Large", "Small"}, opts.Sizes)
	assert.Equal(t, []string{"25", "5"}, opts.Weights)

	inStock := c.Options(inventory.Criteria{Name: "rice"}, true)
	assert.Equal(t, []string{"ABC"}, inStock.Brands)
}

func TestCatalog_ListMasRecientePrimero(t *testing.T) {
	c := catalogFixture()

	assert.Equal(t, []entity.ID{"4", "3", "2", "1"}, ids(c.List(inventory.ProductFilter{})))
	assert.Equal(t, []entity.ID{"2"}, ids(c.List(inventory.ProductFilter{Stock: inventory.StockLow})))
	assert.Equal(t, []entity.ID{"3"}, ids(c.List(inventory.ProductFilter{Stock: inventory.StockOut})))
	assert.Equal(t, []entity.ID{"4"}, ids(c.List(inventory.ProductFilter{Search: "cook"})))
	assert.Equal(t, []entity.ID{"3"}, ids(c.List(inventory.ProductFilter{Search: "xy"})))
}

func TestCatalog_CreateUpdateDelete(t *testing.T) {
	c := inventory.NewCatalog(&seqIDs{}, nil)

	p := c.Create(inventory.MasterData{Name: " Tea ", UnitType: "liter"}, d("3"))
	assert.Equal(t, entity.ID("id-001"), p.ID)
	assert.Equal(t, "Tea", p.Name)
	assert.Equal(t, entity.UnitLiter, p.UnitType)
	assert.True(t, p.Stock.IsZero())

	updated, ok := c.Update(p.ID, inventory.MasterData{Name: "Green Tea"})
	require.True(t, ok)
	assert.Equal(t, "Green Tea", updated.Name)
	assert.Equal(t, entity.UnitPiece, updated.UnitType)

	_, ok = c.Update("missing", inventory.MasterData{Name: "x"})
	assert.False(t, ok)

	assert.True(t, c.Delete(p.ID))
	assert.False(t, c.Delete(p.ID))
	assert.Zero(t, c.Len())
}

func TestLedger_AppendReplaceRecent(t *testing.T) {
	l := inventory.NewLedger(&seqIDs{}, nil)
	first := l.Append(&entity.Transaction{Type: entity.TransactionIn, Quantity: d("1")})
	l.Append(&entity.Transaction{ID: "keep", Type: entity.TransactionOut, Quantity: d("1")})

	assert.Equal(t, entity.ID("id-001"), first.ID)
	_, ok := l.FindByID("keep")
	assert.True(t, ok)

	replaced, ok := l.Replace(first.ID, inventory.Revision{Type: entity.TransactionOut, Quantity: d("2"), Notes: "x"})
	require.True(t, ok)
	assert.Equal(t, first.ID, replaced.ID)
	assert.Equal(t, "x", replaced.Notes)

	_, ok = l.Replace("missing", inventory.Revision{})
	assert.False(t, ok)

	assert.Equal(t, []entity.ID{"keep", "id-001"}, ids2(l.Recent(10)))
	assert.Len(t, l.Recent(1), 1)
}

func ids2(txs []*entity.Transaction) []entity.ID {
	out := make([]entity.ID, len(txs))
	for i, t := range txs {
		out[i] = t.ID
	}
	return out
}
