// Package textfile stores the table in a plain text file: a header line
// followed by one comma-separated line per record. Values are split on
// every comma and trimmed; nothing is quoted.
package textfile

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"

	register "github.com/ideamans/go-register"
)

const maxLineSize = 1024 * 1024

// Adapter implements the register.Adapter interface for text files
type Adapter struct {
	config Config
}

// New creates a new text file adapter with the given configuration
func New(config *Config) (*Adapter, error) {
	if config == nil {
		return nil, fmt.Errorf("config is required")
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	c := *config
	if c.Perm == 0 {
		c.Perm = 0644
	}
	return &Adapter{config: c}, nil
}

// Path returns the backing file path
func (a *Adapter) Path() string {
	return a.config.FilePath
}

// Load reads the whole file. A missing or unreadable file is an error; an
// empty file is an empty table.
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

	lines, err := splitLines(data)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read %s: %w", a.config.FilePath, err)
	}

	headers, rows := register.ParseTable(lines)
	return headers, rows, nil
}

// Save rewrites the whole file with headers and rows
func (a *Adapter) Save(ctx context.Context, headers []string, rows [][]string) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	var buf strings.Builder
	for _, line := range register.FormatTable(headers, rows) {
		buf.WriteString(line)
		buf.WriteString("\n")
	}

	if err := os.WriteFile(a.config.FilePath, []byte(buf.String()), a.config.Perm); err != nil {
		return fmt.Errorf("failed to write %s: %w", a.config.FilePath, err)
	}
	return nil
}

// splitLines splits data into lines, accepting both \n and \r\n endings.
// A trailing newline does not produce an extra empty line.
func splitLines(data []byte) ([]string, error) {
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	return lines, scanner.Err()
}
