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

func ventaEn(ts time.Time, total, deposit int64, method string, qty int) model.Sale {
	id := uuid.New()
	return model.Sale{
		ID:            id,
		Timestamp:     ts,
		Items:         []model.SaleItem{{ID: uuid.New(), SaleID: id, RefID: "p1", Name: "Crema", Kind: model.KindProduct, Price: decimal.NewFromInt(total), Quantity: qty}},
		Total:         decimal.NewFromInt(total),
		Deposit:       decimal.NewFromInt(deposit),
		PaymentMethod: method,
	}
}

func TestLedgerSeedAndAppendOrder(t *testing.T) {
	ledger := NewSaleLedger()
	base := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	seeded := []model.Sale{
		ventaEn(base, 100, 0, model.PaymentCash, 1),
		ventaEn(base.Add(time.Hour), 200, 0, model.PaymentCard, 1),
	}
	ledger.Seed(seeded)
	ledger.Append(ventaEn(base.Add(2*time.Hour), 300, 0, model.PaymentCash, 1))

	all := ledger.All()
	require.Len(t, all, 3)
	assert.Equal(t, seeded[0].ID, all[0].ID)
	assert.True(t, all[2].Total.Equal(decimal.NewFromInt(300)))

	// Mutating the seed slice after the fact must not reach the ledger.
	seeded[0].Total = decimal.NewFromInt(-1)
	assert.True(t, ledger.All()[0].Total.Equal(decimal.NewFromInt(100)))
}

func TestLedgerRangeIsInclusive(t *testing.T) {
	ledger := NewSaleLedger()
	base := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		ledger.Append(ventaEn(base.Add(time.Duration(i)*time.Hour), 100, 0, model.PaymentCash, 1))
	}

	got := ledger.Range(base.Add(time.Hour), base.Add(3*time.Hour))
	require.Len(t, got, 3)
	assert.Equal(t, base.Add(time.Hour), got[0].Timestamp)
	assert.Equal(t, base.Add(3*time.Hour), got[2].Timestamp)

	assert.Empty(t, ledger.Range(base.Add(10*time.Hour), base.Add(11*time.Hour)))
}

func TestSummarizeBreaksDownByMethod(t *testing.T) {
	ledger := NewSaleLedger()
	base := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	ledger.Append(ventaEn(base, 2500, 0, model.PaymentCash, 2))
	ledger.Append(ventaEn(base.Add(time.Minute), 4800, 800, model.PaymentCard, 1))
	ledger.Append(ventaEn(base.Add(2*time.Minute), 1200, 0, model.PaymentTransfer, 3))
	ledger.Append(ventaEn(base.Add(3*time.Minute), 700, 0, model.PaymentCash, 1))

	sum := ledger.Summarize(base, base.Add(time.Hour))
	assert.Equal(t, 4, sum.Count)
	assert.Equal(t, 7, sum.ItemCount)
	assert.True(t, sum.Total.Equal(decimal.NewFromInt(9200)))
	assert.True(t, sum.Cash.Equal(decimal.NewFromInt(3200)))
	assert.True(t, sum.Card.Equal(decimal.NewFromInt(4800)))
	assert.True(t, sum.Transfer.Equal(decimal.NewFromInt(1200)))
	assert.True(t, sum.Deposits.Equal(decimal.NewFromInt(800)))
}

func TestSummarizeEmptyRange(t *testing.T) {
	ledger := NewSaleLedger()
	sum := ledger.Summarize(time.Now().Add(-time.Hour), time.Now())
	assert.Zero(t, sum.Count)
	assert.True(t, sum.Total.IsZero())
	assert.True(t, sum.Cash.IsZero())
}
