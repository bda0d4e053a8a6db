package excel

import "errors"

var (
	// ErrMissingFilePath is returned when file path is not specified
	ErrMissingFilePath = errors.New("file path is required")

	// ErrMissingSheetName is returned when sheet name is not specified
	ErrMissingSheetName = errors.New("sheet name is required")

	// ErrSheetNameTooLong is returned for names Excel cannot store
	ErrSheetNameTooLong = errors.New("sheet name must be at most 31 characters")
)
