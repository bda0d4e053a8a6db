package console

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	register "github.com/ideamans/go-register"
	"github.com/ideamans/go-register/adapters/textfile"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type session struct {
	path  string
	store *register.Store
	out   bytes.Buffer
}

func newSession(t *testing.T, content string) *session {
	t.Helper()

	path := filepath.Join(t.TempDir(), "personalregister.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	adapter, err := textfile.New(&textfile.Config{FilePath: path})
	require.NoError(t, err)

	store := register.New(adapter, nil)
	require.NoError(t, store.Load(context.Background()))

	return &session{path: path, store: store}
}

func (s *session) run(t *testing.T, input string, opts ...Option) {
	t.Helper()
	c := New(s.store, strings.NewReader(input), &s.out, opts...)
	require.NoError(t, c.Run(context.Background()))
}

func (s *session) file(t *testing.T) string {
	t.Helper()
	data, err := os.ReadFile(s.path)
	require.NoError(t, err)
	return string(data)
}

func TestRunStatsAndList(t *testing.T) {
	s := newSession(t, "name,age\nAnn,30\n")
	s.run(t, "1\n0\n")

	out := s.out.String()
	assert.Contains(t, out, "Total rows: 1\n\nSchema:\n- name\n- age\n")
	assert.Contains(t, out, "Choose an option:\n1. Print out a Register\n2. Add a record\n3. Edit an existing record\n4. Delete a record\n5. Find a record\n0. Exit\nYour choice: ")
	assert.Contains(t, out, "1. Ann | 30\n")
	assert.True(t, strings.HasSuffix(out, "Thank you!\n"))
}

func TestRunEmptyFile(t *testing.T) {
	s := newSession(t, "")
	s.run(t, "1\n0\n")

	assert.Contains(t, s.out.String(), "Total rows: 0\n\nSchema:\n")
}

func TestRunAddAndConfirm(t *testing.T) {
	s := newSession(t, "name,age\nAnn,30\n")
	s.run(t, "2\nBo\n41\ny\n0\n")

	out := s.out.String()
	assert.Contains(t, out, "name: age: Record added.\n")
	assert.Contains(t, out, "Preview of what will be saved:\n1. Ann | 30\n2. Bo | 41\nChanges: 1 added\n")
	assert.Contains(t, out, "Do you want to overwrite the file with these changes? (y/n): Changes saved.\n")
	assert.Equal(t, "name,age\nAnn,30\nBo,41\n", s.file(t))
	assert.False(t, s.store.Dirty())
}

func TestRunConfirmIsCaseInsensitive(t *testing.T) {
	s := newSession(t, "name\nAnn\n")
	s.run(t, "2\nBo\n  Y \n0\n")

	assert.Contains(t, s.out.String(), "Changes saved.")
	assert.Equal(t, "name\nAnn\nBo\n", s.file(t))
}

func TestRunDeclinedSaveReloads(t *testing.T) {
	tests := []struct {
		name   string
		answer string
	}{
		{name: "no", answer: "n"},
		{name: "blank", answer: ""},
		{name: "yes spelled out", answer: "yes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newSession(t, "name,age\nAnn,30\n")
			s.run(t, "2\nBo\n41\n"+tt.answer+"\n1\n0\n")

			out := s.out.String()
			assert.Contains(t, out, "Cancelled. File not modified.\n")
			after := out[strings.LastIndex(out, "Cancelled."):]
			assert.NotContains(t, after, "Bo | 41")
			assert.Equal(t, "name,age\nAnn,30\n", s.file(t))
			assert.Equal(t, 1, s.store.Len())
		})
	}
}

func TestRunEdit(t *testing.T) {
	s := newSession(t, "name,age\nAnn,30\nBo,41\n")
	s.run(t, "3\n1\n\n31\ny\n0\n")

	out := s.out.String()
	assert.Contains(t, out, "Enter row number to edit: Current values:\nAnn | 30\n")
	assert.Contains(t, out, "name (current: Ann): age (current: 30): Record updated.\n")
	assert.Equal(t, "name,age\nAnn,31\nBo,41\n", s.file(t))
}

func TestRunEditWithoutChangesStillSaves(t *testing.T) {
	s := newSession(t, "name\nAnn\n")
	s.run(t, "3\n1\n   \nn\n0\n")

	out := s.out.String()
	assert.Contains(t, out, "Record updated.\n")
	assert.Contains(t, out, "Preview of what will be saved:\n1. Ann\nChanges: 1 updated\n")
}

func TestRunInvalidIndex(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "edit not a number", input: "3\nabc\n0\n"},
		{name: "edit zero", input: "3\n0\n0\n"},
		{name: "edit past end", input: "3\n2\n0\n"},
		{name: "delete negative", input: "4\n-1\n0\n"},
		{name: "delete past end", input: "4\n5\n0\n"},
		{name: "delete blank", input: "4\n\n0\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newSession(t, "name,age\nAnn,30\n")
			s.run(t, tt.input)

			out := s.out.String()
			assert.Contains(t, out, "Invalid index.\nNo changes to save.\n")
			assert.NotContains(t, out, "Current values:")
			assert.Equal(t, 1, s.store.Len())
			assert.Equal(t, "name,age\nAnn,30\n", s.file(t))
		})
	}
}

func TestRunDelete(t *testing.T) {
	s := newSession(t, "name,age\nAnn,30\nBo,41\n")
	s.run(t, "4\n1\ny\n1\n0\n")

	out := s.out.String()
	assert.Contains(t, out, "Record deleted.\n")
	assert.Contains(t, out, "Changes saved.\n")
	after := out[strings.Index(out, "Changes saved."):]
	assert.Contains(t, after, "1. Bo | 41\n")
	assert.NotContains(t, after, "2. ")
	assert.Equal(t, "name,age\nBo,41\n", s.file(t))
}

func TestRunSearch(t *testing.T) {
	s := newSession(t, "name,city\nAnn,Oslo\nBo,Bergen\nCy,Boston\n")
	s.run(t, "5\nbO\n5\nzzz\n0\n")

	out := s.out.String()
	assert.Contains(t, out, "Enter text to search: \n2 result(s) found:\nBo | Bergen\nCy | Boston\n")
	assert.Contains(t, out, "\n0 result(s) found:\n")
	assert.False(t, s.store.Dirty())
}

func TestRunInvalidOption(t *testing.T) {
	s := newSession(t, "name\nAnn\n")
	s.run(t, "9\n\n0\n")

	assert.Equal(t, 2, strings.Count(s.out.String(), "Invalid option.\n"))
	assert.Contains(t, s.out.String(), "Thank you!")
}

func TestRunEndOfInput(t *testing.T) {
	t.Run("at the menu", func(t *testing.T) {
		s := newSession(t, "name\nAnn\n")
		s.run(t, "1\n")

		assert.Contains(t, s.out.String(), "1. Ann\n")
		assert.NotContains(t, s.out.String(), "Thank you!")
	})

	t.Run("last line without newline", func(t *testing.T) {
		s := newSession(t, "name\nAnn\n")
		s.run(t, "1\n0")

		assert.Contains(t, s.out.String(), "Thank you!")
	})

	t.Run("at the confirmation", func(t *testing.T) {
		s := newSession(t, "name\nAnn\n")
		s.run(t, "2\nBo\n")

		assert.NotContains(t, s.out.String(), "Changes saved.")
		assert.Equal(t, "name\nAnn\n", s.file(t))
	})

	t.Run("while adding", func(t *testing.T) {
		s := newSession(t, "name,age\nAnn,30\n")
		s.run(t, "2\nBo\n")

		assert.NotContains(t, s.out.String(), "Record added.")
		assert.Equal(t, 1, s.store.Len())
	})
}

func TestRunWindowsLineEndings(t *testing.T) {
	s := newSession(t, "name\nAnn\n")
	s.run(t, "2\r\nBo\r\ny\r\n0\r\n")

	assert.Equal(t, "name\nAnn\nBo\n", s.file(t))
}

type failingSave struct {
	register.Adapter
}

func (failingSave) Save(context.Context, []string, [][]string) error {
	return errors.New("disk full")
}

func TestRunSaveFailureKeepsChanges(t *testing.T) {
	s := newSession(t, "name\nAnn\n")
	adapter, err := textfile.New(&textfile.Config{FilePath: s.path})
	require.NoError(t, err)

	store := register.New(failingSave{adapter}, nil)
	require.NoError(t, store.Load(context.Background()))

	var out bytes.Buffer
	c := New(store, strings.NewReader("2\nBo\ny\n1\n0\n"), &out)
	require.NoError(t, c.Run(context.Background()))

	assert.Contains(t, out.String(), "Save failed: ")
	assert.Contains(t, out.String(), "disk full")
	assert.Contains(t, out.String(), "2. Bo\n")
	assert.True(t, store.Dirty())
	assert.Equal(t, "name\nAnn\n", s.file(t))
}

func TestRunDiffPreview(t *testing.T) {
	s := newSession(t, "name,age\nAnn,30\n")
	s.run(t, "2\nBo\n41\nn\n0\n", WithDiff("personalregister.csv"))

	out := s.out.String()
	assert.Contains(t, out, "--- personalregister.csv\n")
	assert.Contains(t, out, "+++ personalregister.csv (pending)\n")
	assert.Contains(t, out, "+Bo,41\n")
}

func TestRunPlainOutputWithoutTerminal(t *testing.T) {
	s := newSession(t, "name\nAnn\n")
	s.run(t, "9\n0\n")

	assert.NotContains(t, s.out.String(), "\x1b[")
}

func TestRunStyledOutput(t *testing.T) {
	s := newSession(t, "name\nAnn\n")

	r := lipgloss.NewRenderer(&s.out)
	r.SetColorProfile(termenv.ANSI)
	s.run(t, "9\n0\n", WithRenderer(r))

	assert.Contains(t, s.out.String(), "\x1b[")
	assert.Contains(t, s.out.String(), "Invalid option.")
}

func TestRunCancelledContext(t *testing.T) {
	s := newSession(t, "name\nAnn\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := New(s.store, strings.NewReader("1\n0\n"), &s.out)
	assert.ErrorIs(t, c.Run(ctx), context.Canceled)
}
