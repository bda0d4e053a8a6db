package excel

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	register "github.com/ideamans/go-register"
	"github.com/ideamans/go-register/internal/adaptertest"
	"github.com/xuri/excelize/v2"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		config  *Config
		wantErr error
	}{
		{
			name: "valid config",
			config: &Config{
				FilePath:  "test.xlsx",
				SheetName: "Sheet1",
			},
		},
		{
			name: "missing file path",
			config: &Config{
				SheetName: "Sheet1",
			},
			wantErr: ErrMissingFilePath,
		},
		{
			name: "missing sheet name",
			config: &Config{
				FilePath: "test.xlsx",
			},
			wantErr: ErrMissingSheetName,
		},
		{
			name: "sheet name too long",
			config: &Config{
				FilePath:  "test.xlsx",
				SheetName: "a sheet name that Excel will refuse",
			},
			wantErr: ErrSheetNameTooLong,
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

func TestAdapter_LoadMissingFile(t *testing.T) {
	adapter, _ := New(&Config{
		FilePath:  filepath.Join(t.TempDir(), "missing.xlsx"),
		SheetName: "Register",
	})

	if _, _, err := adapter.Load(context.Background()); err == nil {
		t.Error("Load() of a missing workbook should return error")
	}
}

func TestAdapter_LoadMissingSheet(t *testing.T) {
	testFile := filepath.Join(t.TempDir(), "other.xlsx")

	f := excelize.NewFile()
	if err := f.SetCellValue("Sheet1", "A1", "unrelated"); err != nil {
		t.Fatal(err)
	}
	if err := f.SaveAs(testFile); err != nil {
		t.Fatal(err)
	}
	f.Close()

	adapter, _ := New(&Config{FilePath: testFile, SheetName: "Register"})
	headers, rows, err := adapter.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(headers) != 0 || len(rows) != 0 {
		t.Errorf("Load() = %q, %q, want empty table", headers, rows)
	}
}

func TestAdapter_SaveShrinksSheet(t *testing.T) {
	testFile := filepath.Join(t.TempDir(), "shrink.xlsx")
	adapter, _ := New(&Config{FilePath: testFile, SheetName: "Register"})
	ctx := context.Background()

	headers := []string{"name", "age"}
	if err := adapter.Save(ctx, headers, [][]string{{"Ann", "30"}, {"Bo", "41"}, {"Cy", "25"}}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := adapter.Save(ctx, headers, [][]string{{"Bo", "41"}}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	_, rows, err := adapter.Load(ctx)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !reflect.DeepEqual(rows, [][]string{{"Bo", "41"}}) {
		t.Errorf("Load() rows = %q, want only Bo", rows)
	}
}

func TestAdapter_SaveKeepsOtherSheets(t *testing.T) {
	testFile := filepath.Join(t.TempDir(), "multi.xlsx")

	f := excelize.NewFile()
	if err := f.SetCellValue("Sheet1", "A1", "keep me"); err != nil {
		t.Fatal(err)
	}
	if err := f.SaveAs(testFile); err != nil {
		t.Fatal(err)
	}
	f.Close()

	adapter, _ := New(&Config{FilePath: testFile, SheetName: "Register"})
	if err := adapter.Save(context.Background(), []string{"name"}, [][]string{{"Ann"}}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	f, err := excelize.OpenFile(testFile)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	got, err := f.GetCellValue("Sheet1", "A1")
	if err != nil || got != "keep me" {
		t.Errorf("Sheet1!A1 = %q, %v, want %q", got, err, "keep me")
	}
}

func TestAdapter_SaveCreatesDirectory(t *testing.T) {
	testFile := filepath.Join(t.TempDir(), "nested", "dir", "register.xlsx")
	adapter, _ := New(&Config{FilePath: testFile, SheetName: "Register"})

	if err := adapter.Save(context.Background(), []string{"name"}, nil); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if _, err := os.Stat(testFile); err != nil {
		t.Errorf("Excel file was not created: %v", err)
	}
}

func TestAdapter_Conformance(t *testing.T) {
	adaptertest.Run(t, func(t *testing.T) adaptertest.Factory {
		testFile := filepath.Join(t.TempDir(), "register.xlsx")
		return func(t *testing.T) register.Adapter {
			adapter, err := New(&Config{FilePath: testFile, SheetName: "Register"})
			if err != nil {
				t.Fatal(err)
			}
			return adapter
		}
	})
}
