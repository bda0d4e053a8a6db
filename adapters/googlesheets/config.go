package googlesheets

import (
	"time"

	register "github.com/ideamans/go-register"
)

// Config represents configuration specific to Google Sheets adapter
type Config struct {
	SpreadsheetID string
	SheetName     string
}

// Validate checks if the configuration is valid
func (c Config) Validate() error {
	if c.SpreadsheetID == "" {
		return ErrMissingSpreadsheetID
	}
	if c.SheetName == "" {
		return ErrMissingSheetName
	}
	return nil
}

// DefaultStoreConfig returns the recommended store configuration for Google
// Sheets. Unlike local files, API calls are retried.
func DefaultStoreConfig() *register.Config {
	return &register.Config{
		MaxRetries:    3,
		RetryInterval: 1 * time.Second,
		MaxBackoff:    20 * time.Second,
	}
}
