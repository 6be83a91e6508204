package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/matiiroda/mg/internal/core"
	"github.com/matiiroda/mg/internal/dto"
	"github.com/matiiroda/mg/internal/model"
)

func reportSale(day string, method string, total, deposit int64, items ...model.SaleItem) model.Sale {
	ts, _ := time.Parse("2006-01-02", day)
	return model.Sale{
		ID:            uuid.New(),
		Timestamp:     ts.Add(14 * time.Hour),
		Items:         items,
		Total:         decimal.NewFromInt(total),
		PaymentMethod: method,
		OperatorID:    "op-1",
		ClientLabel:   model.WalkInClient,
		Deposit:       decimal.NewFromInt(deposit),
	}
}

func item(name string, price int64, qty int) model.SaleItem {
	return model.SaleItem{
		RefID:    "r-" + name,
		Name:     name,
		Kind:     model.KindProduct,
		Price:    decimal.NewFromInt(price),
		Quantity: qty,
	}
}

func newReportFixture() ReportService {
	ledger := core.NewSaleLedger()
	ledger.Seed([]model.Sale{
		reportSale("2026-03-10", model.PaymentCash, 2400, 0, item("Crema", 1200, 2)),
		reportSale("2026-03-10", model.PaymentCard, 3500, 500, item("Corte", 3500, 1)),
		reportSale("2026-03-12", model.PaymentTransfer, 950, 0, item("Esmalte", 950, 1)),
	})
	return NewReportService(ledger)
}

func TestSummaryAggregatesRange(t *testing.T) {
	svc := newReportFixture()

	resp, err := svc.Summary(context.Background(), dto.ReportFilter{From: "2026-03-10", To: "2026-03-10"})
	require.NoError(t, err)

	assert.Equal(t, 2, resp.SaleCount)
	assert.Equal(t, 3, resp.ItemCount)
	assert.True(t, resp.Total.Equal(decimal.NewFromInt(5900)))
	assert.True(t, resp.Cash.Equal(decimal.NewFromInt(2400)))
	assert.True(t, resp.Card.Equal(decimal.NewFromInt(3500)))
	assert.True(t, resp.Transfer.IsZero())
	assert.True(t, resp.Deposits.Equal(decimal.NewFromInt(500)))
}

func TestSummaryRejectsMalformedDate(t *testing.T) {
	svc := newReportFixture()

	_, err := svc.Summary(context.Background(), dto.ReportFilter{From: "10/03/2026"})
	assert.Error(t, err)
}

func TestExportCSV(t *testing.T) {
	svc := newReportFixture()

	name, contentType, data, err := svc.Export(context.Background(),
		dto.ReportFilter{From: "2026-03-10", To: "2026-03-12", Format: "csv"})
	require.NoError(t, err)
	assert.Equal(t, "ventas_20260310.csv", name)
	assert.Equal(t, "text/csv", contentType)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4) // header + one row per item
	assert.Equal(t, exportHeader, records[0])
	assert.Equal(t, "Crema", records[1][3])
	assert.Equal(t, "2", records[1][4])
	assert.Equal(t, "2400.00", records[1][8])
	assert.Equal(t, "500.00", records[2][9])
}

func TestExportXLSX(t *testing.T) {
	svc := newReportFixture()

	name, contentType, data, err := svc.Export(context.Background(),
		dto.ReportFilter{From: "2026-03-10", To: "2026-03-10", Format: "xlsx"})
	require.NoError(t, err)
	assert.Equal(t, "ventas_20260310.xlsx", name)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", contentType)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Ventas")
	require.NoError(t, err)
	require.Len(t, rows, 3) // header + two items
	assert.Equal(t, "fecha", rows[0][0])
	assert.Equal(t, "Corte", rows[2][3])
}

func TestExportEmptyRangeHasOnlyHeader(t *testing.T) {
	svc := newReportFixture()

	_, _, data, err := svc.Export(context.Background(),
		dto.ReportFilter{From: "2026-01-01", To: "2026-01-01", Format: "csv"})
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	assert.Len(t, records, 1)
}
