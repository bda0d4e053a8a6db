package register

import (
	"fmt"
	"strings"

	"github.com/hexops/gotextdiff"
	"github.com/hexops/gotextdiff/myers"
	"github.com/hexops/gotextdiff/span"
)

// FormatList renders records as a 1-indexed listing, one "N. v1 | v2" line
// per record.
func FormatList(records []*Record) []string {
	lines := make([]string, len(records))
	for i, r := range records {
		lines[i] = fmt.Sprintf("%d. %s", i+1, r)
	}
	return lines
}

// Summary counts pending operations by type, e.g. "1 added, 2 updated".
// It returns "" when there is nothing pending.
func Summary(ops []Operation) string {
	var added, updated, deleted int
	for _, op := range ops {
		switch op.Type {
		case OpAdd:
			added++
		case OpUpdate:
			updated++
		case OpDelete:
			deleted++
		}
	}

	var parts []string
	if added > 0 {
		parts = append(parts, fmt.Sprintf("%d added", added))
	}
	if updated > 0 {
		parts = append(parts, fmt.Sprintf("%d updated", updated))
	}
	if deleted > 0 {
		parts = append(parts, fmt.Sprintf("%d deleted", deleted))
	}
	return strings.Join(parts, ", ")
}

// Diff returns a unified diff between the table as last loaded or saved and
// the table as it would be written now. name labels both sides. An
// unchanged table yields "".
func (s *Store) Diff(name string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	before := joinLines(s.baseline)
	after := joinLines(s.lines())
	if before == after {
		return ""
	}

	edits := myers.ComputeEdits(span.URIFromPath(name), before, after)
	return fmt.Sprint(gotextdiff.ToUnified(name, name+" (pending)", before, edits))
}

// lines renders the current table as backing-file lines; mu must be held
func (s *Store) lines() []string {
	rows := make([][]string, len(s.records))
	for i, r := range s.records {
		rows[i] = r.Values
	}
	return FormatTable(s.headers, rows)
}

func joinLines(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}
