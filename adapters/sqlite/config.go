package sqlite

// Config holds configuration for the SQLite adapter
type Config struct {
	FilePath  string // Path to the database file
	TableName string // Table holding the records
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.FilePath == "" {
		return ErrMissingFilePath
	}
	if c.TableName == "" {
		return ErrMissingTableName
	}
	return nil
}
