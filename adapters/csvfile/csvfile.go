// Package csvfile stores the table in an RFC 4180 CSV file. Unlike the
// textfile adapter, values holding commas, quotes or newlines are quoted on
// save and read back intact.
package csvfile

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	register "github.com/ideamans/go-register"
)

// Adapter implements the register.Adapter interface for CSV files
type Adapter struct {
	config Config
}

// New creates a new CSV adapter with the given configuration
func New(config *Config) (*Adapter, error) {
	if config == nil {
		return nil, fmt.Errorf("config is required")
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	c := *config
	if c.Comma == 0 {
		c.Comma = ','
	}
	if c.Perm == 0 {
		c.Perm = 0644
	}
	return &Adapter{config: c}, nil
}

// Load reads the whole file. The first record is the header list.
func (a *Adapter) Load(ctx context.Context) ([]string, [][]string, error) {
	select {
	case <-ctx.Done():
		return nil, nil, ctx.Err()
	default:
	}

	data, err := os.ReadFile(a.config.FilePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read %s: %w", a.config.FilePath, err)
	}

	r := csv.NewReader(bytes.NewReader(data))
	r.Comma = a.config.Comma
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	headers := []string{}
	rows := [][]string{}
	for line := 0; ; line++ {
		fields, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("failed to parse %s: %w", a.config.FilePath, err)
		}

		for i, f := range fields {
			fields[i] = strings.TrimSpace(f)
		}
		if line == 0 {
			headers = fields
			continue
		}
		rows = append(rows, fields)
	}

	return headers, rows, nil
}

// Save rewrites the whole file with headers and rows
func (a *Adapter) Save(ctx context.Context, headers []string, rows [][]string) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	var buf bytes.Buffer
	if len(headers) > 0 || len(rows) > 0 {
		w := csv.NewWriter(&buf)
		w.Comma = a.config.Comma
		if err := w.Write(headers); err != nil {
			return fmt.Errorf("failed to encode header: %w", err)
		}
		if err := w.WriteAll(rows); err != nil {
			return fmt.Errorf("failed to encode rows: %w", err)
		}
	}

	if err := os.WriteFile(a.config.FilePath, buf.Bytes(), a.config.Perm); err != nil {
		return fmt.Errorf("failed to write %s: %w", a.config.FilePath, err)
	}
	return nil
}

var _ register.Adapter = (*Adapter)(nil)
