package register

import "strings"

// FieldSeparator separates values on a line of the backing text file.
// There is no quoting: a value holding a separator shifts every later
// column when the file is read back.
const FieldSeparator = ","

// SplitFields splits a line on FieldSeparator and trims each field.
func SplitFields(line string) []string {
	parts := strings.Split(line, FieldSeparator)
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}

// JoinFields is the inverse of SplitFields, modulo the trimming.
func JoinFields(values []string) string {
	return strings.Join(values, FieldSeparator)
}

// ParseTable turns raw lines into a header list and padded rows. The first
// line is the header; blank lines after it are skipped. No lines yields an
// empty table.
func ParseTable(lines []string) ([]string, [][]string) {
	if len(lines) == 0 {
		return []string{}, [][]string{}
	}

	headers := SplitFields(lines[0])
	rows := make([][]string, 0, len(lines)-1)
	for _, line := range lines[1:] {
		if strings.TrimSpace(line) == "" {
			continue
		}
		rows = append(rows, ParseRecord(line, len(headers)).Values)
	}
	return headers, rows
}

// FormatTable renders headers and rows as lines of the backing text file.
// An empty table renders as no lines.
func FormatTable(headers []string, rows [][]string) []string {
	if len(headers) == 0 && len(rows) == 0 {
		return []string{}
	}

	lines := make([]string, 0, len(rows)+1)
	lines = append(lines, JoinFields(headers))
	for _, row := range rows {
		lines = append(lines, JoinFields(row))
	}
	return lines
}
