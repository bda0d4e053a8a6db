// Package adaptertest holds the behaviour every register.Adapter must share,
// run from each adapter's own tests.
package adaptertest

import (
	"context"
	"reflect"
	"testing"

	register "github.com/ideamans/go-register"
)

// Factory returns a fresh adapter. Adapters created by one factory share the
// same backing store, so a second call sees what the first one saved.
type Factory func(t *testing.T) register.Adapter

// NewStore creates a store over adapter and loads it
func NewStore(t *testing.T, adapter register.Adapter) *register.Store {
	t.Helper()

	store := register.New(adapter, nil)
	if err := store.Load(context.Background()); err != nil {
		t.Fatalf("Failed to load store: %v", err)
	}
	return store
}

// Run exercises adapters built by newAdapter. Each subtest receives its own
// factory from setup so backing stores do not leak between subtests.
func Run(t *testing.T, setup func(t *testing.T) Factory) {
	ctx := context.Background()

	t.Run("Save and Load", func(t *testing.T) {
		newAdapter := setup(t)
		headers := []string{"name", "age", "city"}
		rows := [][]string{
			{"Ann", "30", "Oslo"},
			{"Bo", "41", "Bergen"},
		}

		if err := newAdapter(t).Save(ctx, headers, rows); err != nil {
			t.Fatalf("Save() error = %v", err)
		}

		store := NewStore(t, newAdapter(t))
		if got := store.Headers(); !reflect.DeepEqual(got, headers) {
			t.Errorf("headers = %q, want %q", got, headers)
		}
		if got := rowsOf(store); !reflect.DeepEqual(got, rows) {
			t.Errorf("rows = %q, want %q", got, rows)
		}
	})

	t.Run("Blank values survive", func(t *testing.T) {
		newAdapter := setup(t)
		headers := []string{"name", "age", "city"}
		rows := [][]string{
			{"Ann", "", "Oslo"},
			{"Bo", "41", ""},
		}

		if err := newAdapter(t).Save(ctx, headers, rows); err != nil {
			t.Fatalf("Save() error = %v", err)
		}

		store := NewStore(t, newAdapter(t))
		if got := rowsOf(store); !reflect.DeepEqual(got, rows) {
			t.Errorf("rows = %q, want %q", got, rows)
		}
	})

	t.Run("Header only", func(t *testing.T) {
		newAdapter := setup(t)
		if err := newAdapter(t).Save(ctx, []string{"name", "age"}, [][]string{}); err != nil {
			t.Fatalf("Save() error = %v", err)
		}

		store := NewStore(t, newAdapter(t))
		if store.Len() != 0 {
			t.Errorf("Len() = %d, want 0", store.Len())
		}
		if got := store.Headers(); !reflect.DeepEqual(got, []string{"name", "age"}) {
			t.Errorf("headers = %q", got)
		}
	})

	t.Run("Store edits persist", func(t *testing.T) {
		newAdapter := setup(t)
		if err := newAdapter(t).Save(ctx, []string{"name", "age"}, [][]string{{"Ann", "30"}, {"Bo", "41"}}); err != nil {
			t.Fatalf("Save() error = %v", err)
		}

		store := NewStore(t, newAdapter(t))
		store.Add([]string{"Cy", "25"})
		if err := store.Edit(1, []string{"", "31"}); err != nil {
			t.Fatal(err)
		}
		if err := store.Delete(2); err != nil {
			t.Fatal(err)
		}
		if _, err := store.Save(ctx, func() (bool, error) { return true, nil }); err != nil {
			t.Fatalf("Save() error = %v", err)
		}

		reloaded := NewStore(t, newAdapter(t))
		want := [][]string{{"Ann", "31"}, {"Cy", "25"}}
		if got := rowsOf(reloaded); !reflect.DeepEqual(got, want) {
			t.Errorf("rows after reload = %q, want %q", got, want)
		}
	})

	t.Run("Cancelled save drops changes", func(t *testing.T) {
		newAdapter := setup(t)
		if err := newAdapter(t).Save(ctx, []string{"name"}, [][]string{{"Ann"}}); err != nil {
			t.Fatalf("Save() error = %v", err)
		}

		store := NewStore(t, newAdapter(t))
		store.Add([]string{"Bo"})
		result, err := store.Save(ctx, func() (bool, error) { return false, nil })
		if err != nil || result != register.SaveCancelled {
			t.Fatalf("Save() = %v, %v", result, err)
		}

		if got := rowsOf(store); !reflect.DeepEqual(got, [][]string{{"Ann"}}) {
			t.Errorf("rows after cancel = %q", got)
		}
	})

	t.Run("Context cancellation", func(t *testing.T) {
		newAdapter := setup(t)
		cancelCtx, cancel := context.WithCancel(context.Background())
		cancel()

		adapter := newAdapter(t)
		if _, _, err := adapter.Load(cancelCtx); err == nil {
			t.Error("Load() with cancelled context should return error")
		}
		if err := adapter.Save(cancelCtx, []string{"name"}, nil); err == nil {
			t.Error("Save() with cancelled context should return error")
		}
	})
}

func rowsOf(store *register.Store) [][]string {
	records := store.Records()
	rows := make([][]string, len(records))
	for i, r := range records {
		rows[i] = r.Values
	}
	return rows
}
