package core

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matiiroda/mg/internal/model"
)

func producto(id, name string, price int64, stock, minStock int) model.Product {
	return model.Product{
		ID:       id,
		Name:     name,
		Price:    decimal.NewFromInt(price),
		Stock:    stock,
		MinStock: minStock,
		Category: "Insumos",
	}
}

func TestUpsertProductValidation(t *testing.T) {
	store := NewCatalogStore()

	p := producto("p1", "Crema Exfoliante", 1200, 15, 5)
	require.NoError(t, store.UpsertProduct(p))

	p.Price = decimal.NewFromInt(-1)
	err := store.UpsertProduct(p)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "price", verr.Field)

	p.Price = decimal.NewFromInt(100)
	p.Stock = -3
	require.ErrorAs(t, store.UpsertProduct(p), &verr)

	// The failed upserts must not have touched the stored copy.
	got, ok := store.Product("p1")
	require.True(t, ok)
	assert.Equal(t, 15, got.Stock)
	assert.True(t, got.Price.Equal(decimal.NewFromInt(1200)))
}

func TestUpsertServiceValidation(t *testing.T) {
	store := NewCatalogStore()

	require.NoError(t, store.UpsertService(model.Service{
		ID: "s1", Name: "Masaje Reductor", Price: decimal.NewFromInt(2500), Duration: 60,
	}))

	var verr *ValidationError
	err := store.UpsertService(model.Service{
		ID: "s2", Name: "X", Price: decimal.NewFromInt(100), Duration: -10,
	})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "duration", verr.Field)
}

func TestDeleteAbsentReturnsNotFound(t *testing.T) {
	store := NewCatalogStore()
	assert.ErrorIs(t, store.DeleteProduct("nope"), ErrNotFound)
	assert.ErrorIs(t, store.DeleteService("nope"), ErrNotFound)
}

func TestDecrementStock(t *testing.T) {
	store := NewCatalogStore()
	require.NoError(t, store.UpsertProduct(producto("p1", "Crema", 1200, 10, 5)))

	require.NoError(t, store.DecrementStock("p1", 3))
	p, _ := store.Product("p1")
	assert.Equal(t, 7, p.Stock)

	err := store.DecrementStock("p1", 8)
	var serr *InsufficientStockError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, 7, serr.Available)
	assert.Equal(t, 8, serr.Requested)

	// Failed decrement leaves stock untouched.
	p, _ = store.Product("p1")
	assert.Equal(t, 7, p.Stock)

	assert.ErrorIs(t, store.DecrementStock("ghost", 1), ErrNotFound)
}

func TestStockNeverNegative(t *testing.T) {
	store := NewCatalogStore()
	require.NoError(t, store.UpsertProduct(producto("p1", "Crema", 1200, 2, 0)))

	require.NoError(t, store.DecrementStock("p1", 2))
	require.Error(t, store.DecrementStock("p1", 1))

	require.NoError(t, store.AdjustStock("p1", -5))
	p, _ := store.Product("p1")
	assert.GreaterOrEqual(t, p.Stock, 0)
}

func TestReplaceAllIsAuthoritative(t *testing.T) {
	store := NewCatalogStore()
	require.NoError(t, store.UpsertProduct(producto("p1", "Crema", 1200, 3, 5)))
	require.NoError(t, store.UpsertProduct(producto("p2", "Aceite", 800, 9, 2)))

	// p1 reappears with the pulled stock value; p2 is gone entirely.
	store.ReplaceAll([]model.Product{producto("p1", "Crema", 1500, 20, 5)})

	p, ok := store.Product("p1")
	require.True(t, ok)
	assert.Equal(t, 20, p.Stock)
	assert.True(t, p.Price.Equal(decimal.NewFromInt(1500)))

	_, ok = store.Product("p2")
	assert.False(t, ok)
}

func TestLowStock(t *testing.T) {
	store := NewCatalogStore()
	require.NoError(t, store.UpsertProduct(producto("p1", "Crema", 1200, 3, 5)))
	require.NoError(t, store.UpsertProduct(producto("p2", "Aceite", 800, 9, 2)))
	require.NoError(t, store.UpsertProduct(producto("p3", "Ampolla", 500, 2, 2)))

	low := store.LowStock()
	require.Len(t, low, 2)
	assert.Equal(t, "Ampolla", low[0].Name)
	assert.Equal(t, "Crema", low[1].Name)
}

func TestReturnedCopiesAreDetached(t *testing.T) {
	store := NewCatalogStore()
	require.NoError(t, store.UpsertProduct(producto("p1", "Crema", 1200, 10, 5)))

	p, _ := store.Product("p1")
	p.Stock = 0
	got, _ := store.Product("p1")
	assert.Equal(t, 10, got.Stock)

	list := store.Products()
	list[0].Stock = 0
	got, _ = store.Product("p1")
	assert.Equal(t, 10, got.Stock)
}

func TestNotFoundIsComparable(t *testing.T) {
	store := NewCatalogStore()
	err := store.AdjustStock("ghost", 1)
	assert.True(t, errors.Is(err, ErrNotFound))
}
