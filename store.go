package register

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"
)

// SaveResult describes what Save did
type SaveResult int

const (
	SaveNothing   SaveResult = iota // no pending changes, no I/O
	SaveCommitted                   // changes written to the adapter
	SaveCancelled                   // changes dropped, table reloaded
)

// ConfirmFunc is asked before a dirty table is written. Returning false
// cancels the save.
type ConfirmFunc func() (bool, error)

// Stats summarizes the table
type Stats struct {
	Rows    int
	Headers []string
}

// Match is a record found by Query together with its 1-based row number
type Match struct {
	Row    int
	Record *Record
}

// Store owns the in-memory table: the header list, the records and the
// dirty flag. All reads and writes of the backing store go through it.
type Store struct {
	config  Config
	adapter Adapter
	logger  *slog.Logger

	mu       sync.RWMutex
	headers  []string
	records  []*Record
	dirty    bool
	pending  []Operation
	baseline []string // table as last loaded or saved, one line per row
}

// New creates a Store reading and writing through adapter
func New(adapter Adapter, config *Config) *Store {
	defaults := DefaultConfig()
	if config == nil {
		config = defaults
	}

	cfg := *config
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	if cfg.RetryInterval <= 0 {
		cfg.RetryInterval = defaults.RetryInterval
	}
	if cfg.MaxBackoff <= 0 {
		cfg.MaxBackoff = defaults.MaxBackoff
	}

	return &Store{
		config:  cfg,
		adapter: adapter,
		logger:  slog.Default().With("component", "store"),
		headers: []string{},
		records: []*Record{},
	}
}

// Load replaces the table with the adapter's contents and clears the dirty
// flag. Short rows are padded with empty values to the header length.
func (s *Store) Load(ctx context.Context) error {
	var headers []string
	var rows [][]string

	err := s.withRetry(ctx, "load", func() error {
		var err error
		headers, rows, err = s.adapter.Load(ctx)
		return err
	})
	if err != nil {
		return fmt.Errorf("%w: loading table: %w", ErrIO, err)
	}

	records := make([]*Record, 0, len(rows))
	for _, row := range rows {
		records = append(records, padRecord(row, len(headers)))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.headers = make([]string, len(headers))
	copy(s.headers, headers)
	s.records = records
	s.markClean()

	s.logger.Debug("table loaded", "rows", len(records), "columns", len(headers))
	return nil
}

// Headers returns a copy of the header list
func (s *Store) Headers() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	headers := make([]string, len(s.headers))
	copy(headers, s.headers)
	return headers
}

// Len returns the number of records
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.records)
}

// Stats returns the row count and the headers in order
func (s *Store) Stats() Stats {
	return Stats{Rows: s.Len(), Headers: s.Headers()}
}

// Records returns copies of all records in table order
func (s *Store) Records() []*Record {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := make([]*Record, len(s.records))
	for i, r := range s.records {
		records[i] = r.Clone()
	}
	return records
}

// Record returns a copy of the record at the 1-based row
func (s *Store) Record(row int) (*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.checkRow(row); err != nil {
		return nil, err
	}
	return s.records[row-1].Clone(), nil
}

// Search returns every record with a value containing text, ignoring case.
// Table order is preserved.
func (s *Store) Search(text string) []*Record {
	matches, _ := s.Query(Query{Conditions: []Condition{{Operator: OpContains, Value: text}}})

	records := make([]*Record, len(matches))
	for i, m := range matches {
		records[i] = m.Record
	}
	return records
}

// Query returns the records matching every condition of q
func (s *Store) Query(q Query) ([]Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := ValidateQuery(q, s.headers); err != nil {
		return nil, err
	}
	return ApplyQuery(s.headers, s.records, q), nil
}

// Add appends a record holding values. The value count is not checked
// against the headers.
func (s *Store) Add(values []string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record := NewRecord(values)
	s.records = append(s.records, record)
	s.markDirty(OpAdd, len(s.records), record)
}

// SetValue replaces one value of the record at the 1-based row. It reports
// false when col is outside the record.
func (s *Store) SetValue(row, col int, value string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkRow(row); err != nil {
		return false, err
	}
	record := s.records[row-1]
	if !record.SetValue(col, value) {
		return false, nil
	}
	s.markDirty(OpUpdate, row, record)
	return true, nil
}

// Edit applies values positionally to the record at the 1-based row. A
// blank value keeps the current one. The table is marked dirty even when
// nothing changed.
func (s *Store) Edit(row int, values []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkRow(row); err != nil {
		return err
	}

	record := s.records[row-1]
	for i, v := range values {
		if strings.TrimSpace(v) == "" {
			continue
		}
		record.SetValue(i, v)
	}
	s.markDirty(OpUpdate, row, record)
	return nil
}

// Delete removes the record at the 1-based row; later rows move up by one.
func (s *Store) Delete(row int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkRow(row); err != nil {
		return err
	}

	removed := s.records[row-1]
	s.records = append(s.records[:row-1], s.records[row:]...)
	s.markDirty(OpDelete, row, removed)
	return nil
}

// Dirty reports whether the table changed since the last load or save
func (s *Store) Dirty() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.dirty
}

// Pending returns the changes made since the last load or save
func (s *Store) Pending() []Operation {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ops := make([]Operation, len(s.pending))
	for i, op := range s.pending {
		ops[i] = Operation{Type: op.Type, Row: op.Row, Record: op.Record.Clone()}
	}
	return ops
}

// Save writes a dirty table after confirm approves it. A declined save
// reloads the table, dropping every change since the last save. A failed
// write leaves the table dirty.
func (s *Store) Save(ctx context.Context, confirm ConfirmFunc) (SaveResult, error) {
	if !s.Dirty() {
		return SaveNothing, nil
	}

	ok, err := confirm()
	if err != nil {
		return SaveNothing, fmt.Errorf("confirming save: %w", err)
	}

	if !ok {
		if err := s.Revert(ctx); err != nil {
			return SaveCancelled, err
		}
		return SaveCancelled, nil
	}

	if err := s.Commit(ctx); err != nil {
		return SaveNothing, err
	}
	return SaveCommitted, nil
}

// Commit writes the table through the adapter and clears the dirty flag
func (s *Store) Commit(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	headers := make([]string, len(s.headers))
	copy(headers, s.headers)
	rows := make([][]string, len(s.records))
	for i, r := range s.records {
		rows[i] = r.Clone().Values
	}

	err := s.withRetry(ctx, "save", func() error {
		return s.adapter.Save(ctx, headers, rows)
	})
	if err != nil {
		return fmt.Errorf("%w: saving table: %w", ErrIO, err)
	}

	s.logger.Info("table saved", "rows", len(rows), "changes", len(s.pending))
	s.markClean()
	return nil
}

// Revert drops all pending changes by reloading from the adapter
func (s *Store) Revert(ctx context.Context) error {
	if err := s.Load(ctx); err != nil {
		return err
	}
	s.logger.Info("pending changes discarded")
	return nil
}

func (s *Store) checkRow(row int) error {
	if row < 1 || row > len(s.records) {
		return fmt.Errorf("%w: %d (table has %d rows)", ErrInvalidIndex, row, len(s.records))
	}
	return nil
}

// markDirty must be called with mu held
func (s *Store) markDirty(op OperationType, row int, record *Record) {
	s.dirty = true
	s.pending = append(s.pending, Operation{Type: op, Row: row, Record: record.Clone()})
}

// markClean must be called with mu held
func (s *Store) markClean() {
	s.dirty = false
	s.pending = nil
	s.baseline = s.lines()
}

// withRetry runs fn up to MaxRetries+1 times with capped exponential backoff
func (s *Store) withRetry(ctx context.Context, what string, fn func() error) error {
	var err error
	for i := 0; i <= s.config.MaxRetries; i++ {
		err = fn()
		if err == nil {
			return nil
		}

		if i < s.config.MaxRetries {
			backoff := time.Duration(1<<uint(i)) * s.config.RetryInterval
			if backoff > s.config.MaxBackoff {
				backoff = s.config.MaxBackoff
			}
			s.logger.Warn("adapter call failed, retrying", "op", what, "attempt", i+1, "backoff", backoff, "error", err)

			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
		}
	}

	if s.config.MaxRetries > 0 {
		return fmt.Errorf("failed after %d retries: %w", s.config.MaxRetries, err)
	}
	return err
}
