package main

import (
	"context"
	"fmt"
	"log"

	register "github.com/ideamans/go-register"
	"github.com/ideamans/go-register/adapters/excel"
)

func main() {
	ctx := context.Background()

	adapter, err := excel.New(&excel.Config{
		FilePath:  "./example_data.xlsx",
		SheetName: "Register",
	})
	if err != nil {
		log.Fatalf("Failed to create Excel adapter: %v", err)
	}

	// Seed the workbook on first run
	headers := []string{"name", "age", "department"}
	if err := adapter.Save(ctx, headers, [][]string{
		{"Alice Johnson", "30", "Engineering"},
		{"Bob Smith", "25", "Marketing"},
	}); err != nil {
		log.Fatalf("Failed to seed workbook: %v", err)
	}

	store := register.New(adapter, excel.DefaultStoreConfig())
	if err := store.Load(ctx); err != nil {
		log.Fatalf("Failed to load register: %v", err)
	}

	fmt.Println("Adding a record...")
	store.Add([]string{"Charlie Brown", "35", "Engineering"})

	fmt.Println("Raising Bob's age...")
	if err := store.Edit(2, []string{"", "26", ""}); err != nil {
		log.Fatalf("Failed to edit: %v", err)
	}

	fmt.Println("\nEngineering:")
	for _, r := range store.Search("engineering") {
		fmt.Printf("  %s\n", r)
	}

	fmt.Println("\nPending changes: " + register.Summary(store.Pending()))
	fmt.Print(store.Diff("example_data.xlsx"))

	result, err := store.Save(ctx, func() (bool, error) { return true, nil })
	if err != nil {
		log.Fatalf("Failed to save: %v", err)
	}
	if result == register.SaveCommitted {
		fmt.Println("\nSaved to example_data.xlsx")
	}

	fmt.Println("\nAll records:")
	for _, line := range register.FormatList(store.Records()) {
		fmt.Println("  " + line)
	}
}
