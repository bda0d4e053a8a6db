package register

import "errors"

var (
	// ErrIO wraps failures reading or writing the backing store
	ErrIO = errors.New("i/o error")

	// ErrInvalidIndex is returned for a row number outside [1, Len()]
	ErrInvalidIndex = errors.New("invalid index")

	// ErrInvalidQuery is returned when a query fails validation
	ErrInvalidQuery = errors.New("invalid query")
)
