package entity_test

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vcmdu/Stock-master/internal/domain/entity"
)

func TestID_AceptaNumerosYCadenas(t *testing.T) {
	var ids []entity.ID
	require.NoError(t, json.Unmarshal([]byte(`["abc", 1700000000123, null]`), &ids))
	assert.Equal(t, []entity.ID{"abc", "1700000000123", ""}, ids)

	out, err := json.Marshal(entity.ID("1700000000123"))
	require.NoError(t, err)
	assert.JSONEq(t, `"1700000000123"`, string(out))
}

func TestDate_JSON(t *testing.T) {
	var d entity.Date
	require.NoError(t, json.Unmarshal([]byte(`"2024-03-05"`), &d))
	assert.Equal(t, "2024-03-05", d.String())

	require.NoError(t, json.Unmarshal([]byte(`"2024-03-05T18:30:00Z"`), &d))
	assert.Equal(t, "2024-03-05", d.String())

	require.NoError(t, json.Unmarshal([]byte(`null`), &d))
	assert.True(t, d.IsZero())

	out, err := json.Marshal(entity.NewDate(2024, 1, 2))
	require.NoError(t, err)
	assert.Equal(t, `"2024-01-02"`, string(out))
}

func TestParseDate_Invalida(t *testing.T) {
	_, err := entity.ParseDate("05/03/2024")
	assert.Error(t, err)

	d, err := entity.ParseDate("")
	require.NoError(t, err)
	assert.True(t, d.IsZero())
}

func TestProduct_Status(t *testing.T) {
	p := &entity.Product{MinStock: decimal.NewFromInt(20)}

	p.Stock = decimal.Zero
	assert.Equal(t, entity.StatusOut, p.Status())

	p.Stock = decimal.NewFromInt(20)
	assert.Equal(t, entity.StatusLow, p.Status())

	p.Stock = decimal.NewFromInt(21)
	assert.Equal(t, entity.StatusOK, p.Status())
}

func TestProduct_CloneCopiaTasa(t *testing.T) {
	r := decimal.NewFromInt(24)
	p := &entity.Product{ID: "a", PurchaseUnit: "Box", ConversionRate: &r}

	c := p.Clone()
	*c.ConversionRate = decimal.NewFromInt(12)

	assert.True(t, p.ConversionRate.Equal(decimal.NewFromInt(24)))
	assert.True(t, p.HasConversion())
}

func TestTransaction_SignedQuantity(t *testing.T) {
	in := entity.Transaction{Type: entity.TransactionIn, Quantity: decimal.NewFromInt(5)}
	out := entity.Transaction{Type: entity.TransactionOut, Quantity: decimal.NewFromInt(5)}
	assert.True(t, in.SignedQuantity().Equal(decimal.NewFromInt(5)))
	assert.True(t, out.SignedQuantity().Equal(decimal.NewFromInt(-5)))
}

func TestParseUnitYTipo(t *testing.T) {
	u, ok := entity.ParseUnitType("kg")
	assert.True(t, ok)
	assert.Equal(t, entity.UnitKG, u)

	_, ok = entity.ParseUnitType("Ton")
	assert.False(t, ok)

	typ, ok := entity.ParseTransactionType(" out ")
	assert.True(t, ok)
	assert.Equal(t, entity.TransactionOut, typ)
}

// ──────────────────────────────────────────────────────────────────────────────
// Lectura tolerante de datos guardados
// ──────────────────────────────────────────────────────────────────────────────

func TestDecodeProducts_Tolerante(t *testing.T) {
	raw := `[
		{"id": 1700000000001, "name": "Rice", "category": "ABC", "size": "", "kg": 5, "stock": "12", "minStock": null, "buyPrice": 40, "sellPrice": "", "unitType": "kg"},
		{"id": "p2", "name": "Oil", "brand": "Sun", "stock": 3.5, "purchaseUnit": "Box", "conversionRate": 12},
		"basura",
		null,
		{"name": "sin id"}
	]`
	products, skipped, ok := entity.DecodeProducts([]byte(raw))
	require.True(t, ok)
	assert.Equal(t, 3, skipped)
	require.Len(t, products, 2)

	rice := products[0]
	assert.Equal(t, entity.ID("1700000000001"), rice.ID)
	assert.Equal(t, "5", rice.Weight)
	assert.Equal(t, entity.UnitKG, rice.UnitType)
	assert.True(t, rice.Stock.Equal(decimal.NewFromInt(12)))
	assert.True(t, rice.MinStock.IsZero())
	assert.True(t, rice.SellPrice.IsZero())
	assert.Nil(t, rice.ConversionRate)

	assert.True(t, rice.MigrateLegacyBrand())
	assert.Equal(t, "ABC", rice.Brand)
	assert.Empty(t, rice.Category)
	assert.False(t, rice.MigrateLegacyBrand())

	oil := products[1]
	assert.Equal(t, entity.UnitPiece, oil.UnitType)
	require.True(t, oil.HasConversion())
	assert.True(t, oil.ConversionRate.Equal(decimal.NewFromInt(12)))
	assert.False(t, oil.MigrateLegacyBrand())
}

func TestDecodeProducts_MarcaVaciaNoEsLegada(t *testing.T) {
	raw := `[
		{"id": "p1", "name": "Rice", "brand": "", "category": "Grains"},
		{"id": "p2", "name": "Oil", "brand": null, "category": "Sun"}
	]`
	products, _, ok := entity.DecodeProducts([]byte(raw))
	require.True(t, ok)
	require.Len(t, products, 2)

	rice := products[0]
	assert.False(t, rice.MigrateLegacyBrand(), "la clave brand existe aunque esté vacía")
	assert.Empty(t, rice.Brand)
	assert.Equal(t, "Grains", rice.Category)

	oil := products[1]
	assert.True(t, oil.MigrateLegacyBrand(), "brand null se trata como ausente")
	assert.Equal(t, "Sun", oil.Brand)
}

func TestMigrateLegacyBrand_ProductoNuevoNoCambia(t *testing.T) {
	p := &entity.Product{ID: "p1", Name: "Rice", Category: "Grains"}
	assert.False(t, p.MigrateLegacyBrand())
	assert.Equal(t, "Grains", p.Category)

	// ida y vuelta por JSON: el formato actual siempre escribe brand
	out, err := json.Marshal([]*entity.Product{p})
	require.NoError(t, err)
	back, _, ok := entity.DecodeProducts(out)
	require.True(t, ok)
	require.Len(t, back, 1)
	assert.False(t, back[0].MigrateLegacyBrand())
	assert.Empty(t, back[0].Brand)
	assert.Equal(t, "Grains", back[0].Category)
}

func TestDecodeProducts_NoArreglo(t *testing.T) {
	for _, raw := range []string{``, `{}`, `"x"`, `[1,`, `null`} {
		_, _, ok := entity.DecodeProducts([]byte(raw))
		assert.False(t, ok, raw)
	}
}

func TestDecodeTransactions_Tolerante(t *testing.T) {
	raw := `[
		{"id": 1, "date": "2024-03-01", "type": "in", "productId": 1700000000001, "productName": "Rice", "quantity": 10, "price": 4},
		{"id": 2, "date": "2024-03-02", "type": "OUT", "productId": "p2", "quantity": "2", "price": "5", "total": 10, "unitMode": "bulk", "notes": null},
		{"id": 3, "type": "MOVE", "quantity": 1},
		{"type": "IN", "productId": "p2", "quantity": 1},
		{"id": null, "type": "OUT", "productId": "p2", "quantity": 1},
		{"id": "", "type": "IN", "productId": "p2", "quantity": 1}
	]`
	txs, skipped, ok := entity.DecodeTransactions([]byte(raw))
	require.True(t, ok)
	assert.Equal(t, 4, skipped, "sin tipo válido o sin id")
	require.Len(t, txs, 2)

	assert.Equal(t, entity.TransactionIn, txs[0].Type)
	assert.Equal(t, entity.ID("1700000000001"), txs[0].ProductID)
	assert.True(t, txs[0].Total.Equal(decimal.NewFromInt(40)), "total ausente se deriva de cantidad por precio")
	assert.Equal(t, entity.ModeBase, txs[0].UnitMode)

	assert.Equal(t, entity.ModeBulk, txs[1].UnitMode)
	assert.Empty(t, txs[1].Notes)
	assert.Equal(t, "2024-03-02", txs[1].Date.String())
}

func TestProduct_JSONConNumeros(t *testing.T) {
	r := decimal.NewFromInt(24)
	p := entity.Product{ID: "p1", Name: "Soap", UnitType: entity.UnitBox, Stock: decimal.NewFromInt(3), PurchaseUnit: "Crate", ConversionRate: &r}

	out, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"id": "p1", "name": "Soap", "brand": "", "category": "", "size": "", "kg": "",
		"unitType": "Box", "stock": 3, "minStock": 0, "buyPrice": 0, "sellPrice": 0,
		"purchaseUnit": "Crate", "conversionRate": 24
	}`, string(out))

	var back entity.Product
	require.NoError(t, json.Unmarshal(out, &back))
	assert.Equal(t, p.Name, back.Name)
	assert.True(t, back.ConversionRate.Equal(r))
}
