package register

import "context"

// OperationType represents the type of a pending change
type OperationType int

const (
	OpAdd OperationType = iota
	OpUpdate
	OpDelete
)

// String returns a short label for the operation type
func (t OperationType) String() string {
	switch t {
	case OpAdd:
		return "add"
	case OpUpdate:
		return "update"
	case OpDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// Operation records a single change made since the last load or save
type Operation struct {
	Type   OperationType
	Row    int     // 1-based row the change applied to
	Record *Record // Values after the change (before, for deletes)
}

// Adapter reads and writes the whole table from a backing store.
// Implementations return rows exactly as stored; padding is the Store's job.
type Adapter interface {
	// Load retrieves the header list and all rows
	Load(ctx context.Context) ([]string, [][]string, error)

	// Save replaces everything in the backing store with headers and rows
	Save(ctx context.Context, headers []string, rows [][]string) error
}
