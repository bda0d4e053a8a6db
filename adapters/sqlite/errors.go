package sqlite

import "errors"

var (
	// ErrMissingFilePath is returned when file path is not specified
	ErrMissingFilePath = errors.New("file path is required")

	// ErrMissingTableName is returned when table name is not specified
	ErrMissingTableName = errors.New("table name is required")

	// ErrUnsupportedHeaders is returned when the header list cannot become
	// SQLite column names (empty or duplicate names)
	ErrUnsupportedHeaders = errors.New("headers cannot be stored as columns")
)
