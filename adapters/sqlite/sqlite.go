// Package sqlite keeps the table in a SQLite database file. Each header
// becomes a TEXT column; rows are stored in table order.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	register "github.com/ideamans/go-register"
	_ "modernc.org/sqlite"
)

// Adapter implements the register.Adapter interface for SQLite
type Adapter struct {
	config Config
}

// New creates a new SQLite adapter with the given configuration
func New(config *Config) (*Adapter, error) {
	if config == nil {
		return nil, fmt.Errorf("config is required")
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &Adapter{config: *config}, nil
}

func (a *Adapter) open() (*sql.DB, error) {
	db, err := sql.Open("sqlite", a.config.FilePath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	db.SetMaxOpenConns(1)
	return db, nil
}

// Load reads every row of the table ordered by rowid. A missing database
// file is an error; a missing table is an empty table.
func (a *Adapter) Load(ctx context.Context) ([]string, [][]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	// sql.Open would silently create the file
	if _, err := os.Stat(a.config.FilePath); err != nil {
		return nil, nil, fmt.Errorf("failed to open %s: %w", a.config.FilePath, err)
	}

	db, err := a.open()
	if err != nil {
		return nil, nil, err
	}
	defer db.Close()

	var count int
	err = db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?`,
		a.config.TableName,
	).Scan(&count)
	if err != nil {
		return nil, nil, fmt.Errorf("checking table %s: %w", a.config.TableName, err)
	}
	if count == 0 {
		return []string{}, [][]string{}, nil
	}

	sqlRows, err := db.QueryContext(ctx, fmt.Sprintf(`SELECT * FROM %s ORDER BY rowid`, quoteIdent(a.config.TableName)))
	if err != nil {
		return nil, nil, fmt.Errorf("reading table %s: %w", a.config.TableName, err)
	}
	defer sqlRows.Close()

	headers, err := sqlRows.Columns()
	if err != nil {
		return nil, nil, err
	}

	rows := [][]string{}
	for sqlRows.Next() {
		cells := make([]sql.NullString, len(headers))
		ptrs := make([]any, len(headers))
		for i := range cells {
			ptrs[i] = &cells[i]
		}
		if err := sqlRows.Scan(ptrs...); err != nil {
			return nil, nil, fmt.Errorf("scanning row: %w", err)
		}

		row := make([]string, len(headers))
		for i, c := range cells {
			row[i] = strings.TrimSpace(c.String)
		}
		rows = append(rows, row)
	}
	if err := sqlRows.Err(); err != nil {
		return nil, nil, err
	}

	return headers, rows, nil
}

// Save replaces the table inside a single transaction. Rows are cut or
// padded to the header count.
func (a *Adapter) Save(ctx context.Context, headers []string, rows [][]string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := checkHeaders(headers); err != nil {
		return err
	}

	if dir := filepath.Dir(a.config.FilePath); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	db, err := a.open()
	if err != nil {
		return err
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	table := quoteIdent(a.config.TableName)
	if _, err := tx.ExecContext(ctx, fmt.Sprintf(`DROP TABLE IF EXISTS %s`, table)); err != nil {
		return fmt.Errorf("dropping table %s: %w", a.config.TableName, err)
	}

	if len(headers) > 0 {
		colDefs := make([]string, len(headers))
		placeholders := make([]string, len(headers))
		for i, h := range headers {
			colDefs[i] = quoteIdent(h) + " TEXT"
			placeholders[i] = "?"
		}

		if _, err := tx.ExecContext(ctx, fmt.Sprintf(`CREATE TABLE %s (%s)`, table, strings.Join(colDefs, ", "))); err != nil {
			return fmt.Errorf("creating table %s: %w", a.config.TableName, err)
		}

		stmt, err := tx.PrepareContext(ctx, fmt.Sprintf(`INSERT INTO %s VALUES (%s)`, table, strings.Join(placeholders, ", ")))
		if err != nil {
			return err
		}
		defer stmt.Close()

		for i, row := range rows {
			vals := make([]any, len(headers))
			for j := range vals {
				if j < len(row) {
					vals[j] = row[j]
				} else {
					vals[j] = ""
				}
			}
			if _, err := stmt.ExecContext(ctx, vals...); err != nil {
				return fmt.Errorf("inserting row %d: %w", i+1, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing: %w", err)
	}
	return nil
}

// checkHeaders rejects names SQLite cannot hold as distinct columns. Column
// names compare case-insensitively.
func checkHeaders(headers []string) error {
	seen := make(map[string]bool, len(headers))
	for i, h := range headers {
		if h == "" {
			return fmt.Errorf("%w: column %d has no name", ErrUnsupportedHeaders, i+1)
		}
		key := strings.ToLower(h)
		if seen[key] {
			return fmt.Errorf("%w: duplicate column %q", ErrUnsupportedHeaders, h)
		}
		seen[key] = true
	}
	return nil
}

func quoteIdent(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

var _ register.Adapter = (*Adapter)(nil)
