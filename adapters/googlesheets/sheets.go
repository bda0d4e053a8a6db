package googlesheets

import (
	"context"
	"fmt"
	"strings"

	register "github.com/ideamans/go-register"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// SheetsAdaptor implements the register.Adapter interface for Google Sheets
type SheetsAdaptor struct {
	service       *sheets.Service
	spreadsheetID string
	sheetName     string
}

// NewSheetsAdaptor creates a new Google Sheets adaptor with provided options
func NewSheetsAdaptor(ctx context.Context, config Config, opts ...option.ClientOption) (*SheetsAdaptor, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	service, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return &SheetsAdaptor{
		service:       service,
		spreadsheetID: config.SpreadsheetID,
		sheetName:     config.SheetName,
	}, nil
}

func (a *SheetsAdaptor) fullRange() string {
	return fmt.Sprintf("%s!A:ZZ", a.sheetName)
}

// Load retrieves the header row and all data rows from the sheet
func (a *SheetsAdaptor) Load(ctx context.Context) ([]string, [][]string, error) {
	resp, err := a.service.Spreadsheets.Values.Get(a.spreadsheetID, a.fullRange()).Context(ctx).Do()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get sheet data: %w", err)
	}

	if len(resp.Values) == 0 {
		return []string{}, [][]string{}, nil
	}

	headers := convertRow(resp.Values[0])

	rows := make([][]string, 0, len(resp.Values)-1)
	for _, row := range resp.Values[1:] {
		if len(row) == 0 {
			continue
		}
		rows = append(rows, convertRow(row))
	}

	return headers, rows, nil
}

// Save replaces all data in the sheet with headers and rows
func (a *SheetsAdaptor) Save(ctx context.Context, headers []string, rows [][]string) error {
	values := make([][]interface{}, 0, len(rows)+1)
	if len(headers) > 0 || len(rows) > 0 {
		values = append(values, toSheetRow(headers))
	}
	for _, row := range rows {
		values = append(values, toSheetRow(row))
	}

	// Clear the entire sheet first
	_, err := a.service.Spreadsheets.Values.Clear(a.spreadsheetID, a.fullRange(), &sheets.ClearValuesRequest{}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to clear sheet: %w", err)
	}

	if len(values) == 0 {
		return nil
	}

	writeRange := fmt.Sprintf("%s!A1", a.sheetName)
	vr := &sheets.ValueRange{
		Values: values,
	}
	_, err = a.service.Spreadsheets.Values.Update(a.spreadsheetID, writeRange, vr).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("failed to update sheet: %w", err)
	}

	return nil
}

// convertRow converts Google Sheets cell values to trimmed strings
func convertRow(row []interface{}) []string {
	out := make([]string, len(row))
	for i, v := range row {
		switch val := v.(type) {
		case nil:
			out[i] = ""
		case string:
			out[i] = strings.TrimSpace(val)
		default:
			out[i] = fmt.Sprintf("%v", val)
		}
	}
	return out
}

func toSheetRow(values []string) []interface{} {
	row := make([]interface{}, len(values))
	for i, v := range values {
		row[i] = v
	}
	return row
}

var _ register.Adapter = (*SheetsAdaptor)(nil)
