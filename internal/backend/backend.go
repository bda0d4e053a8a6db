// Package backend turns a resolved configuration into the adapter and store
// settings for the chosen backend.
package backend

import (
	"context"
	"fmt"

	register "github.com/ideamans/go-register"
	"github.com/ideamans/go-register/adapters/csvfile"
	"github.com/ideamans/go-register/adapters/excel"
	"github.com/ideamans/go-register/adapters/googlesheets"
	"github.com/ideamans/go-register/adapters/sqlite"
	"github.com/ideamans/go-register/adapters/textfile"
	"github.com/ideamans/go-register/internal/config"
	"google.golang.org/api/option"
)

// Backend is an adapter together with a human-readable name for it
type Backend struct {
	Adapter register.Adapter
	Name    string // file path or spreadsheet/sheet, used in diffs and logs
	Kind    string
	config  *config.Config
}

// Open builds the adapter described by cfg. Extra client options are passed
// to the Google Sheets client only.
func Open(ctx context.Context, cfg *config.Config, opts ...option.ClientOption) (*Backend, error) {
	b := &Backend{Name: cfg.File, Kind: cfg.Backend, config: cfg}

	var err error
	switch cfg.Backend {
	case config.BackendText:
		b.Adapter, err = textfile.New(&textfile.Config{FilePath: cfg.File})
	case config.BackendCSV:
		b.Adapter, err = csvfile.New(&csvfile.Config{FilePath: cfg.File})
	case config.BackendExcel:
		b.Adapter, err = excel.New(&excel.Config{FilePath: cfg.File, SheetName: cfg.Sheet})
		b.Name = fmt.Sprintf("%s[%s]", cfg.File, cfg.Sheet)
	case config.BackendSQLite:
		b.Adapter, err = sqlite.New(&sqlite.Config{FilePath: cfg.File, TableName: cfg.Table})
		b.Name = fmt.Sprintf("%s[%s]", cfg.File, cfg.Table)
	case config.BackendSheets:
		b.Adapter, err = openSheets(ctx, cfg, opts)
		b.Name = fmt.Sprintf("sheets:%s[%s]", cfg.SpreadsheetID, cfg.Sheet)
	default:
		return nil, fmt.Errorf("%w: unknown backend %q", config.ErrInvalidConfig, cfg.Backend)
	}
	if err != nil {
		return nil, fmt.Errorf("opening %s backend: %w", cfg.Backend, err)
	}

	return b, nil
}

func openSheets(ctx context.Context, cfg *config.Config, opts []option.ClientOption) (register.Adapter, error) {
	sc := googlesheets.Config{SpreadsheetID: cfg.SpreadsheetID, SheetName: cfg.Sheet}
	if len(opts) > 0 {
		return googlesheets.NewSheetsAdaptor(ctx, sc, opts...)
	}
	return googlesheets.NewFromCredentials(ctx, sc, cfg.Credentials)
}

// StoreConfig returns the retry settings for the backend. Network backends
// start from their adapter's recommended settings; a configured max_retries
// always wins when it is set.
func (b *Backend) StoreConfig() *register.Config {
	var sc *register.Config
	switch b.Kind {
	case config.BackendSheets:
		sc = googlesheets.DefaultStoreConfig()
	case config.BackendExcel:
		sc = excel.DefaultStoreConfig()
	default:
		sc = register.DefaultConfig()
	}

	if b.config.MaxRetries > 0 {
		sc.MaxRetries = b.config.MaxRetries
	}
	return sc
}

// NewStore builds a store over the backend. It is not loaded.
func (b *Backend) NewStore() *register.Store {
	return register.New(b.Adapter, b.StoreConfig())
}
