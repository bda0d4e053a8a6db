package csvfile

import "os"

// Config holds configuration for the CSV adapter
type Config struct {
	FilePath string      // Path to the CSV file
	Comma    rune        // Field delimiter (default: ',')
	Perm     os.FileMode // Permissions used when the file is created (default: 0644)
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.FilePath == "" {
		return ErrMissingFilePath
	}
	if c.Comma == '"' || c.Comma == '\r' || c.Comma == '\n' {
		return ErrInvalidDelimiter
	}
	return nil
}
