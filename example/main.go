package main

import (
	"context"
	"fmt"
	"log"

	register "github.com/ideamans/go-register"
	"github.com/ideamans/go-register/adapters/googlesheets"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	ctx := context.Background()

	// Create adapter configuration
	adapterConfig := googlesheets.Config{
		SpreadsheetID: "your-spreadsheet-id",
		SheetName:     "Register",
	}

	// Authenticate with a service account key file
	adapter, err := googlesheets.NewFromCredentials(ctx, adapterConfig, "./service-account.json")
	if err != nil {
		return fmt.Errorf("failed to create adapter: %w", err)
	}

	// API calls are retried, unlike local files
	store := register.New(adapter, googlesheets.DefaultStoreConfig())
	if err := store.Load(ctx); err != nil {
		return fmt.Errorf("failed to load register: %w", err)
	}

	stats := store.Stats()
	fmt.Printf("Loaded %d rows with columns %v\n", stats.Rows, stats.Headers)

	// Values line up with the sheet's header row by position
	store.Add([]string{"John Doe", "30", "Oslo"})

	matches, err := store.Query(register.Query{
		Conditions: []register.Condition{
			{Column: "age", Operator: register.OpGreaterEqual, Value: "25"},
			{Column: "age", Operator: register.OpLessEqual, Value: "35"},
		},
		Limit: 10,
	})
	if err != nil {
		return fmt.Errorf("failed to query: %w", err)
	}

	fmt.Printf("Found %d people aged 25-35:\n", len(matches))
	for _, m := range matches {
		fmt.Printf("  Row %d: %s (age: %d)\n", m.Row, m.Record.Value(0), m.Record.GetAsInt64(1, 0))
	}

	// Write without asking
	if err := store.Commit(ctx); err != nil {
		return fmt.Errorf("failed to save: %w", err)
	}
	return nil
}
