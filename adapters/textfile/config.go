package textfile

import "os"

// Config holds configuration for the text file adapter
type Config struct {
	FilePath string      // Path to the backing file
	Perm     os.FileMode // Permissions used when the file is created (default: 0644)
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.FilePath == "" {
		return ErrMissingFilePath
	}
	return nil
}
