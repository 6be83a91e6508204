package infra

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"time"
)

// SheetClient downloads the published spreadsheet as CSV. Google Sheets
// exposes any shared sheet at {base}/{sheetID}/export?format=csv without
// authentication, which keeps the catalog editable from a phone.
type SheetClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewSheetClient(baseURL string) *SheetClient {
	return &SheetClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// FetchRows downloads and parses the sheet identified by sheetID. Rows come
// back raw; interpreting columns is the sync service's job. FieldsPerRecord
// is relaxed because hand-edited sheets often have ragged rows.
func (c *SheetClient) FetchRows(ctx context.Context, sheetID string) ([][]string, error) {
	url := fmt.Sprintf("%s/%s/export?format=csv", c.baseURL, sheetID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("sheet: create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sheet: unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("sheet: returned %d", resp.StatusCode)
	}

	reader := csv.NewReader(resp.Body)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var rows [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("sheet: parse csv: %w", err)
		}
		rows = append(rows, record)
	}
	return rows, nil
}
