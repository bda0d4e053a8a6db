package csvfile

import "errors"

var (
	// ErrMissingFilePath is returned when file path is not specified
	ErrMissingFilePath = errors.New("file path is required")

	// ErrInvalidDelimiter is returned for a delimiter the CSV format cannot use
	ErrInvalidDelimiter = errors.New("invalid delimiter")
)
