package textfile

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	register "github.com/ideamans/go-register"
	"github.com/ideamans/go-register/internal/adaptertest"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		config  *Config
		wantErr error
	}{
		{
			name:   "valid config",
			config: &Config{FilePath: "register.csv"},
		},
		{
			name:    "missing file path",
			config:  &Config{},
			wantErr: ErrMissingFilePath,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.config)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("New() error = %v, want %v", err, tt.wantErr)
			}
		})
	}

	if _, err := New(nil); err == nil {
		t.Error("New(nil) should return error")
	}
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "register.csv")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}
	return path
}

func TestAdapter_Load(t *testing.T) {
	tests := []struct {
		name        string
		content     string
		wantHeaders []string
		wantRows    [][]string
	}{
		{
			name:        "empty file",
			content:     "",
			wantHeaders: []string{},
			wantRows:    [][]string{},
		},
		{
			name:        "header and rows",
			content:     "name, age\nAnn, 30\nBo,41\n",
			wantHeaders: []string{"name", "age"},
			wantRows:    [][]string{{"Ann", "30"}, {"Bo", "41"}},
		},
		{
			name:        "crlf line endings",
			content:     "name,age\r\nAnn,30\r\n",
			wantHeaders: []string{"name", "age"},
			wantRows:    [][]string{{"Ann", "30"}},
		},
		{
			name:        "no trailing newline",
			content:     "name,age\nAnn,30",
			wantHeaders: []string{"name", "age"},
			wantRows:    [][]string{{"Ann", "30"}},
		},
		{
			name:        "short rows padded and blank lines skipped",
			content:     "name,age,city\nAnn\n\nBo,41\n",
			wantHeaders: []string{"name", "age", "city"},
			wantRows:    [][]string{{"Ann", "", ""}, {"Bo", "41", ""}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			adapter, err := New(&Config{FilePath: writeFile(t, tt.content)})
			if err != nil {
				t.Fatal(err)
			}

			headers, rows, err := adapter.Load(context.Background())
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if !reflect.DeepEqual(headers, tt.wantHeaders) {
				t.Errorf("Load() headers = %q, want %q", headers, tt.wantHeaders)
			}
			if !reflect.DeepEqual(rows, tt.wantRows) {
				t.Errorf("Load() rows = %q, want %q", rows, tt.wantRows)
			}
		})
	}
}

func TestAdapter_LoadMissingFile(t *testing.T) {
	adapter, _ := New(&Config{FilePath: filepath.Join(t.TempDir(), "missing.csv")})

	_, _, err := adapter.Load(context.Background())
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Load() error = %v, want os.ErrNotExist", err)
	}

	store := register.New(adapter, nil)
	if err := store.Load(context.Background()); !errors.Is(err, register.ErrIO) {
		t.Errorf("Store.Load() error = %v, want ErrIO", err)
	}
}

func TestAdapter_SaveFormat(t *testing.T) {
	path := writeFile(t, "")
	adapter, _ := New(&Config{FilePath: path})

	err := adapter.Save(context.Background(), []string{"name", "age"}, [][]string{{"Ann", "30"}, {"Bo"}})
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	data, _ := os.ReadFile(path)
	if want := "name,age\nAnn,30\nBo\n"; string(data) != want {
		t.Errorf("file = %q, want %q", data, want)
	}
}

func TestAdapter_SaveEmptyTable(t *testing.T) {
	path := writeFile(t, "name\nAnn\n")
	adapter, _ := New(&Config{FilePath: path})

	if err := adapter.Save(context.Background(), nil, nil); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	data, _ := os.ReadFile(path)
	if len(data) != 0 {
		t.Errorf("file = %q, want empty", data)
	}
}

func TestAdapter_RoundTripNormalizesWhitespace(t *testing.T) {
	path := writeFile(t, "name , age\n Ann ,30\n")
	adapter, _ := New(&Config{FilePath: path})

	store := adaptertest.NewStore(t, adapter)
	_ = store.Edit(1, []string{"", ""})
	if _, err := store.Save(context.Background(), func() (bool, error) { return true, nil }); err != nil {
		t.Fatal(err)
	}

	data, _ := os.ReadFile(path)
	if want := "name,age\nAnn,30\n"; string(data) != want {
		t.Errorf("file = %q, want %q", data, want)
	}
}

func TestAdapter_Conformance(t *testing.T) {
	adaptertest.Run(t, func(t *testing.T) adaptertest.Factory {
		path := filepath.Join(t.TempDir(), "register.csv")
		return func(t *testing.T) register.Adapter {
			adapter, err := New(&Config{FilePath: path})
			if err != nil {
				t.Fatal(err)
			}
			return adapter
		}
	})
}
