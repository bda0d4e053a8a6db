package googlesheets

import "errors"

var (
	// ErrMissingSpreadsheetID is returned when spreadsheet ID is not specified
	ErrMissingSpreadsheetID = errors.New("spreadsheet ID is required")

	// ErrMissingSheetName is returned when sheet name is not specified
	ErrMissingSheetName = errors.New("sheet name is required")
)
