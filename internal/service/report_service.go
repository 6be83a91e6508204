package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/matiiroda/mg/internal/core"
	"github.com/matiiroda/mg/internal/dto"
	"github.com/matiiroda/mg/internal/model"
)

type ReportService interface {
	Summary(ctx context.Context, filter dto.ReportFilter) (*dto.SummaryResponse, error)
	// Export renders the sales in the range as a downloadable file.
	// Returns filename, content type and the file bytes.
	Export(ctx context.Context, filter dto.ReportFilter) (string, string, []byte, error)
}

type reportService struct {
	ledger *core.SaleLedger
}

func NewReportService(ledger *core.SaleLedger) ReportService {
	return &reportService{ledger: ledger}
}

func (s *reportService) Summary(ctx context.Context, filter dto.ReportFilter) (*dto.SummaryResponse, error) {
	from, to, err := parseDayRange(filter.From, filter.To)
	if err != nil {
		return nil, err
	}
	sum := s.ledger.Summarize(from, to)
	return &dto.SummaryResponse{
		From:      from.Format("2006-01-02"),
		To:        to.Format("2006-01-02"),
		SaleCount: sum.Count,
		ItemCount: sum.ItemCount,
		Total:     sum.Total,
		Cash:      sum.Cash,
		Card:      sum.Card,
		Transfer:  sum.Transfer,
		Deposits:  sum.Deposits,
	}, nil
}

func (s *reportService) Export(ctx context.Context, filter dto.ReportFilter) (string, string, []byte, error) {
	from, to, err := parseDayRange(filter.From, filter.To)
	if err != nil {
		return "", "", nil, err
	}
	sales := s.ledger.Range(from, to)
	stamp := from.Format("20060102")

	if filter.Format == "xlsx" {
		data, err := exportXLSX(sales)
		if err != nil {
			return "", "", nil, err
		}
		return fmt.Sprintf("ventas_%s.xlsx", stamp),
			"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data, nil
	}

	data, err := exportCSV(sales)
	if err != nil {
		return "", "", nil, err
	}
	return fmt.Sprintf("ventas_%s.csv", stamp), "text/csv", data, nil
}

var exportHeader = []string{"fecha", "venta_id", "cliente", "detalle", "cantidad", "precio", "subtotal", "metodo", "total", "sena"}

func exportCSV(sales []model.Sale) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(exportHeader); err != nil {
		return nil, err
	}
	for _, sale := range sales {
		for _, row := range exportRows(&sale) {
			if err := w.Write(row); err != nil {
				return nil, err
			}
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

func exportXLSX(sales []model.Sale) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()
	const sheet = "Ventas"
	f.SetSheetName("Sheet1", sheet)

	for col, h := range exportHeader {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, err
		}
	}
	rowNum := 2
	for _, sale := range sales {
		for _, row := range exportRows(&sale) {
			for col, v := range row {
				cell, _ := excelize.CoordinatesToCellName(col+1, rowNum)
				if err := f.SetCellValue(sheet, cell, v); err != nil {
					return nil, err
				}
			}
			rowNum++
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// exportRows emits one row per sale item, repeating the sale columns the way
// a flat spreadsheet expects.
func exportRows(sale *model.Sale) [][]string {
	rows := make([][]string, 0, len(sale.Items))
	for _, item := range sale.Items {
		rows = append(rows, []string{
			sale.Timestamp.Format(time.RFC3339),
			sale.ID.String(),
			sale.ClientLabel,
			item.Name,
			fmt.Sprintf("%d", item.Quantity),
			item.Price.StringFixed(2),
			item.Subtotal().StringFixed(2),
			sale.PaymentMethod,
			sale.Total.StringFixed(2),
			sale.Deposit.StringFixed(2),
		})
	}
	return rows
}
