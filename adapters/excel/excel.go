package excel

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	register "github.com/ideamans/go-register"
	"github.com/xuri/excelize/v2"
)

const (
	maxSheetNameLen = 31
	scratchSheet    = "~register-rewrite"
)

// Adapter implements the register.Adapter interface for Excel files
type Adapter struct {
	config *Config
	mu     sync.RWMutex
}

// New creates a new Excel adapter with the given configuration
func New(config *Config) (*Adapter, error) {
	if config == nil {
		return nil, fmt.Errorf("config is required")
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	// Create a copy of config to avoid external modifications
	configCopy := *config

	return &Adapter{
		config: &configCopy,
	}, nil
}

// Load reads the header row and all data rows of the sheet. A missing file
// is an error; a workbook without the sheet is an empty table.
func (a *Adapter) Load(ctx context.Context) ([]string, [][]string, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	select {
	case <-ctx.Done():
		return nil, nil, ctx.Err()
	default:
	}

	f, err := excelize.OpenFile(a.config.FilePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheetIndex, err := f.GetSheetIndex(a.config.SheetName)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get sheet index: %w", err)
	}
	if sheetIndex == -1 {
		return []string{}, [][]string{}, nil
	}

	rows, err := f.GetRows(a.config.SheetName)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get rows: %w", err)
	}
	if len(rows) == 0 {
		return []string{}, [][]string{}, nil
	}

	headers := trimAll(rows[0])
	records := make([][]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if isBlank(row) {
			continue // Skip empty rows
		}
		records = append(records, trimAll(row))
	}

	return headers, records, nil
}

// Save replaces the sheet's contents with headers and rows. Other sheets in
// the workbook are left alone.
func (a *Adapter) Save(ctx context.Context, headers []string, rows [][]string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	dir := filepath.Dir(a.config.FilePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	var f *excelize.File
	if _, err := os.Stat(a.config.FilePath); err == nil {
		f, err = excelize.OpenFile(a.config.FilePath)
		if err != nil {
			return fmt.Errorf("failed to open Excel file: %w", err)
		}
	} else {
		f = excelize.NewFile()
	}
	defer f.Close()

	if err := a.resetSheet(f); err != nil {
		return err
	}

	if len(headers) > 0 || len(rows) > 0 {
		if err := writeRow(f, a.config.SheetName, 1, headers); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
	}
	for i, row := range rows {
		if err := writeRow(f, a.config.SheetName, i+2, row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	if err := f.SaveAs(a.config.FilePath); err != nil {
		return fmt.Errorf("failed to save Excel file: %w", err)
	}

	return nil
}

// resetSheet leaves f with an empty, active sheet named after the config
func (a *Adapter) resetSheet(f *excelize.File) error {
	name := a.config.SheetName

	sheetIndex, err := f.GetSheetIndex(name)
	if err != nil {
		return fmt.Errorf("failed to get sheet index: %w", err)
	}

	if sheetIndex == -1 {
		index, err := f.NewSheet(name)
		if err != nil {
			return fmt.Errorf("failed to create sheet: %w", err)
		}
		f.SetActiveSheet(index)

		// A fresh workbook comes with a default sheet we don't want
		if f.SheetCount == 2 {
			if defaultSheet := f.GetSheetName(0); defaultSheet != name && isEmptySheet(f, defaultSheet) {
				_ = f.DeleteSheet(defaultSheet)
			}
		}
		return nil
	}

	// Swap in a blank sheet so rows from the previous save don't linger
	if _, err := f.NewSheet(scratchSheet); err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}
	if err := f.DeleteSheet(name); err != nil {
		return fmt.Errorf("failed to clear sheet: %w", err)
	}
	if err := f.SetSheetName(scratchSheet, name); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}

	index, err := f.GetSheetIndex(name)
	if err != nil {
		return fmt.Errorf("failed to get sheet index: %w", err)
	}
	f.SetActiveSheet(index)
	return nil
}

func writeRow(f *excelize.File, sheet string, rowNum int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return err
	}

	row := make([]interface{}, len(values))
	for i, v := range values {
		row[i] = v
	}
	return f.SetSheetRow(sheet, cell, &row)
}

func isEmptySheet(f *excelize.File, sheet string) bool {
	rows, err := f.GetRows(sheet)
	return err == nil && len(rows) == 0
}

func isBlank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

func trimAll(row []string) []string {
	out := make([]string, len(row))
	for i, v := range row {
		out[i] = strings.TrimSpace(v)
	}
	return out
}

var _ register.Adapter = (*Adapter)(nil)
