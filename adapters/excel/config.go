package excel

import (
	register "github.com/ideamans/go-register"
)

// Config holds configuration for Excel adapter
type Config struct {
	FilePath  string // Path to the Excel file
	SheetName string // Name of the sheet to use
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.FilePath == "" {
		return ErrMissingFilePath
	}
	if c.SheetName == "" {
		return ErrMissingSheetName
	}
	if len([]rune(c.SheetName)) > maxSheetNameLen {
		return ErrSheetNameTooLong
	}
	return nil
}

// DefaultStoreConfig returns the recommended store configuration for Excel.
// Local files are not retried.
func DefaultStoreConfig() *register.Config {
	return register.DefaultConfig()
}
