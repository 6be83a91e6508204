package core

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matiiroda/mg/internal/model"
)

func venta(total, deposit int64, method string) model.Sale {
	return model.Sale{
		ID:            uuid.New(),
		Timestamp:     time.Now().UTC(),
		Total:         decimal.NewFromInt(total),
		Deposit:       decimal.NewFromInt(deposit),
		PaymentMethod: method,
	}
}

func TestOpenCloseStateMachine(t *testing.T) {
	caja := NewCajaManager()

	// Nothing open yet: close is invalid.
	_, err := caja.Close()
	assert.ErrorIs(t, err, ErrCajaAlreadyClosed)

	sesion, err := caja.Open(decimal.NewFromInt(1000), "admin")
	require.NoError(t, err)
	assert.True(t, sesion.IsOpen)
	assert.False(t, sesion.OpenedAt.IsZero())

	_, err = caja.Open(decimal.NewFromInt(500), "admin")
	assert.ErrorIs(t, err, ErrCajaAlreadyOpen)

	closed, err := caja.Close()
	require.NoError(t, err)
	assert.False(t, closed.IsOpen)
	require.NotNil(t, closed.ClosedAt)

	_, err = caja.Close()
	assert.ErrorIs(t, err, ErrCajaAlreadyClosed)

	// Closed session stays readable until the next Open replaces it.
	current, ok := caja.Current()
	require.True(t, ok)
	assert.Equal(t, closed.ID, current.ID)

	fresh, err := caja.Open(decimal.NewFromInt(200), "laura")
	require.NoError(t, err)
	assert.NotEqual(t, closed.ID, fresh.ID)
	assert.Empty(t, fresh.Sales)
	assert.True(t, fresh.NetSales.IsZero())
}

func TestOpenRejectsNegativeBalance(t *testing.T) {
	caja := NewCajaManager()
	_, err := caja.Open(decimal.NewFromInt(-1), "admin")
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestRecordSaleMaintainsNetSales(t *testing.T) {
	caja := NewCajaManager()
	_, err := caja.Open(decimal.NewFromInt(1000), "admin")
	require.NoError(t, err)

	sales := []model.Sale{
		venta(2500, 0, model.PaymentCash),
		venta(4800, 800, model.PaymentCard),
		venta(1200, 200, model.PaymentTransfer),
	}
	for _, s := range sales {
		require.NoError(t, caja.RecordSale(s))

		// Invariant after every RecordSale: NetSales == Σ (total − deposit).
		current, _ := caja.Current()
		expected := decimal.Zero
		for _, rec := range current.Sales {
			expected = expected.Add(rec.Net())
		}
		assert.True(t, current.NetSales.Equal(expected),
			"NetSales=%s expected=%s", current.NetSales, expected)
	}

	current, _ := caja.Current()
	assert.Equal(t, 3, current.SaleCount)
	assert.True(t, current.NetSales.Equal(decimal.NewFromInt(2500+4000+1000)))
}

func TestRecordSaleWhileClosed(t *testing.T) {
	caja := NewCajaManager()
	assert.ErrorIs(t, caja.RecordSale(venta(100, 0, model.PaymentCash)), ErrCajaClosed)

	_, err := caja.Open(decimal.NewFromInt(0), "admin")
	require.NoError(t, err)
	_, err = caja.Close()
	require.NoError(t, err)
	assert.ErrorIs(t, caja.RecordSale(venta(100, 0, model.PaymentCash)), ErrCajaClosed)
}

func TestEstimatedCashOnHandCountsOnlyCash(t *testing.T) {
	caja := NewCajaManager()
	_, err := caja.Open(decimal.NewFromInt(1000), "admin")
	require.NoError(t, err)

	require.NoError(t, caja.RecordSale(venta(2500, 500, model.PaymentCash)))
	require.NoError(t, caja.RecordSale(venta(9999, 0, model.PaymentCard)))
	require.NoError(t, caja.RecordSale(venta(700, 0, model.PaymentTransfer)))

	// 1000 opening + (2500 − 500) cash. Card and transfer never hit the drawer.
	assert.True(t, caja.EstimatedCashOnHand().Equal(decimal.NewFromInt(3000)))
}
