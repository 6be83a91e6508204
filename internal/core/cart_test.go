package core

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matiiroda/mg/internal/model"
)

type fixture struct {
	catalog *CatalogStore
	caja    *CajaManager
	ledger  *SaleLedger
	cart    *CartBuilder
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		catalog: NewCatalogStore(),
		caja:    NewCajaManager(),
		ledger:  NewSaleLedger(),
	}
	f.cart = NewCartBuilder(f.catalog, f.caja, f.ledger)
	return f
}

func (f *fixture) open(t *testing.T, balance int64) {
	t.Helper()
	_, err := f.caja.Open(decimal.NewFromInt(balance), "admin")
	require.NoError(t, err)
}

func TestAddItemRequiresOpenCaja(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.catalog.UpsertProduct(producto("p1", "Crema", 1200, 10, 5)))

	assert.ErrorIs(t, f.cart.AddItem("p1", model.KindProduct), ErrCajaClosed)

	f.open(t, 0)
	assert.NoError(t, f.cart.AddItem("p1", model.KindProduct))
}

func TestAddItemUnknownRefAndKind(t *testing.T) {
	f := newFixture(t)
	f.open(t, 0)

	assert.ErrorIs(t, f.cart.AddItem("ghost", model.KindProduct), ErrNotFound)
	assert.ErrorIs(t, f.cart.AddItem("ghost", model.KindService), ErrNotFound)

	var verr *ValidationError
	assert.ErrorAs(t, f.cart.AddItem("p1", "COMBO"), &verr)
}

func TestAddItemMergesLines(t *testing.T) {
	f := newFixture(t)
	f.open(t, 0)
	require.NoError(t, f.catalog.UpsertProduct(producto("p1", "Crema", 1200, 10, 5)))
	require.NoError(t, f.catalog.UpsertService(model.Service{
		ID: "s1", Name: "Limpieza Facial", Price: decimal.NewFromInt(3000), Duration: 45,
	}))

	require.NoError(t, f.cart.AddItem("p1", model.KindProduct))
	require.NoError(t, f.cart.AddItem("s1", model.KindService))
	require.NoError(t, f.cart.AddItem("p1", model.KindProduct))
	require.NoError(t, f.cart.AddItem("s1", model.KindService))

	lines := f.cart.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, "Crema", lines[0].Name)
	assert.Equal(t, 2, lines[0].Quantity)
	assert.Equal(t, 2, lines[1].Quantity)
	assert.True(t, f.cart.Total().Equal(decimal.NewFromInt(2*1200+2*3000)))
}

func TestAddItemRespectsDerivedAvailability(t *testing.T) {
	f := newFixture(t)
	f.open(t, 0)
	require.NoError(t, f.catalog.UpsertProduct(producto("p1", "Crema", 1200, 2, 0)))

	require.NoError(t, f.cart.AddItem("p1", model.KindProduct))
	require.NoError(t, f.cart.AddItem("p1", model.KindProduct))

	// Stock 2, cart holds 2: a third unit is denied without touching stock.
	var serr *InsufficientStockError
	require.ErrorAs(t, f.cart.AddItem("p1", model.KindProduct), &serr)
	p, _ := f.catalog.Product("p1")
	assert.Equal(t, 2, p.Stock)

	// Removing the line makes the units available again.
	require.NoError(t, f.cart.RemoveLine(0))
	assert.NoError(t, f.cart.AddItem("p1", model.KindProduct))
}

func TestAddItemZeroStockFails(t *testing.T) {
	f := newFixture(t)
	f.open(t, 0)
	require.NoError(t, f.catalog.UpsertProduct(producto("p1", "Crema", 1200, 0, 0)))

	var serr *InsufficientStockError
	assert.ErrorAs(t, f.cart.AddItem("p1", model.KindProduct), &serr)
}

func TestRemoveLineBounds(t *testing.T) {
	f := newFixture(t)
	f.open(t, 0)
	require.NoError(t, f.catalog.UpsertProduct(producto("p1", "Crema", 1200, 5, 0)))
	require.NoError(t, f.cart.AddItem("p1", model.KindProduct))

	assert.ErrorIs(t, f.cart.RemoveLine(-1), ErrNotFound)
	assert.ErrorIs(t, f.cart.RemoveLine(1), ErrNotFound)
	assert.NoError(t, f.cart.RemoveLine(0))
	assert.Empty(t, f.cart.Lines())
}

func TestSnapshotPriceSurvivesCatalogUpdate(t *testing.T) {
	f := newFixture(t)
	f.open(t, 0)
	require.NoError(t, f.catalog.UpsertProduct(producto("p1", "Crema", 1200, 10, 0)))
	require.NoError(t, f.cart.AddItem("p1", model.KindProduct))

	// Price change after the line was added does not reprice the cart.
	require.NoError(t, f.catalog.UpsertProduct(producto("p1", "Crema", 9999, 10, 0)))
	assert.True(t, f.cart.Total().Equal(decimal.NewFromInt(1200)))

	sale, err := f.cart.Commit(model.PaymentCash, "", decimal.Zero, "admin")
	require.NoError(t, err)
	assert.True(t, sale.Total.Equal(decimal.NewFromInt(1200)))
}

func TestCommitEmptyCart(t *testing.T) {
	f := newFixture(t)
	f.open(t, 0)
	_, err := f.cart.Commit(model.PaymentCash, "", decimal.Zero, "admin")
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestCommitRequiresOpenCaja(t *testing.T) {
	f := newFixture(t)
	f.open(t, 0)
	require.NoError(t, f.catalog.UpsertProduct(producto("p1", "Crema", 1200, 10, 0)))
	require.NoError(t, f.cart.AddItem("p1", model.KindProduct))

	_, err := f.caja.Close()
	require.NoError(t, err)

	_, err = f.cart.Commit(model.PaymentCash, "", decimal.Zero, "admin")
	assert.ErrorIs(t, err, ErrCajaClosed)

	// The cart survives the failed commit; reopening lets it go through.
	f.open(t, 0)
	sale, err := f.cart.Commit(model.PaymentCash, "", decimal.Zero, "admin")
	require.NoError(t, err)
	assert.Len(t, sale.Items, 1)
}

func TestCommitFullScenario(t *testing.T) {
	f := newFixture(t)
	f.open(t, 1000)
	require.NoError(t, f.catalog.UpsertService(model.Service{
		ID: "s1", Name: "Masaje Reductor", Price: decimal.NewFromInt(2500), Duration: 60,
	}))
	require.NoError(t, f.catalog.UpsertProduct(producto("p1", "Crema", 1200, 10, 5)))

	require.NoError(t, f.cart.AddItem("s1", model.KindService))
	for i := 0; i < 3; i++ {
		require.NoError(t, f.cart.AddItem("p1", model.KindProduct))
	}

	sale, err := f.cart.Commit(model.PaymentCash, "", decimal.Zero, "admin")
	require.NoError(t, err)

	// 2500 + 3×1200
	assert.True(t, sale.Total.Equal(decimal.NewFromInt(6100)))
	assert.Equal(t, model.WalkInClient, sale.ClientLabel)
	assert.False(t, sale.Timestamp.IsZero())
	for _, item := range sale.Items {
		assert.Equal(t, sale.ID, item.SaleID)
	}

	p, _ := f.catalog.Product("p1")
	assert.Equal(t, 7, p.Stock)

	sesion, _ := f.caja.Current()
	assert.True(t, sesion.NetSales.Equal(sale.Total))
	assert.Equal(t, 1, sesion.SaleCount)
	assert.True(t, f.caja.EstimatedCashOnHand().Equal(decimal.NewFromInt(1000+6100)))

	assert.Len(t, f.ledger.All(), 1)
	assert.Empty(t, f.cart.Lines())
}

func TestCommitRollsBackPartialDecrements(t *testing.T) {
	f := newFixture(t)
	f.open(t, 0)
	require.NoError(t, f.catalog.UpsertProduct(producto("p1", "Crema", 1200, 5, 0)))
	require.NoError(t, f.catalog.UpsertProduct(producto("p2", "Aceite", 800, 1, 0)))

	// Two carts over the same store: the second consumes p2's last unit
	// between the first cart's add and commit.
	other := NewCartBuilder(f.catalog, f.caja, f.ledger)
	require.NoError(t, f.cart.AddItem("p1", model.KindProduct))
	require.NoError(t, f.cart.AddItem("p2", model.KindProduct))
	require.NoError(t, other.AddItem("p2", model.KindProduct))
	_, err := other.Commit(model.PaymentCash, "", decimal.Zero, "admin")
	require.NoError(t, err)

	_, err = f.cart.Commit(model.PaymentCash, "", decimal.Zero, "admin")
	var serr *InsufficientStockError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, "p2", serr.ProductID)

	// The p1 decrement applied before the failure must be unwound.
	p1, _ := f.catalog.Product("p1")
	assert.Equal(t, 5, p1.Stock)

	// Nothing else moved: one sale in the ledger, cart still holds its lines.
	assert.Len(t, f.ledger.All(), 1)
	assert.Len(t, f.cart.Lines(), 2)
}

func TestCommitDepositAndAmountDue(t *testing.T) {
	f := newFixture(t)
	f.open(t, 500)
	require.NoError(t, f.catalog.UpsertService(model.Service{
		ID: "s1", Name: "Sesión", Price: decimal.NewFromInt(4800), Duration: 30,
	}))
	require.NoError(t, f.cart.AddItem("s1", model.KindService))

	assert.True(t, f.cart.AmountDue(decimal.NewFromInt(800)).Equal(decimal.NewFromInt(4000)))
	// A deposit above the total floors at zero instead of going negative.
	assert.True(t, f.cart.AmountDue(decimal.NewFromInt(9000)).IsZero())

	sale, err := f.cart.Commit(model.PaymentCash, "Laura P", decimal.NewFromInt(800), "admin")
	require.NoError(t, err)
	assert.True(t, sale.Net().Equal(decimal.NewFromInt(4000)))
	assert.Equal(t, "Laura P", sale.ClientLabel)

	// Cash drawer grows by the net amount, not the gross total.
	assert.True(t, f.caja.EstimatedCashOnHand().Equal(decimal.NewFromInt(500+4000)))
}

func TestLedgerOutlivesCajaSessions(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.catalog.UpsertProduct(producto("p1", "Crema", 1200, 10, 0)))

	f.open(t, 0)
	require.NoError(t, f.cart.AddItem("p1", model.KindProduct))
	_, err := f.cart.Commit(model.PaymentCash, "", decimal.Zero, "admin")
	require.NoError(t, err)
	_, err = f.caja.Close()
	require.NoError(t, err)

	f.open(t, 0)
	require.NoError(t, f.cart.AddItem("p1", model.KindProduct))
	_, err = f.cart.Commit(model.PaymentCard, "", decimal.Zero, "admin")
	require.NoError(t, err)

	// Both sales in the ledger; only the second in the live session.
	assert.Len(t, f.ledger.All(), 2)
	sesion, _ := f.caja.Current()
	assert.Equal(t, 1, sesion.SaleCount)
}
