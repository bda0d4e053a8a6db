package register

import (
	"strconv"
	"strings"
)

// Record is one row of the table. Values are index-aligned to the header
// list by position, not by name.
type Record struct {
	Values []string
}

// NewRecord builds a record from the given values. The slice is copied and
// its length is kept as-is.
func NewRecord(values []string) *Record {
	v := make([]string, len(values))
	copy(v, values)
	return &Record{Values: v}
}

// ParseRecord builds a record from a raw text line, padding it with empty
// values up to width. Longer lines are kept long.
func ParseRecord(line string, width int) *Record {
	return padRecord(SplitFields(line), width)
}

func padRecord(values []string, width int) *Record {
	r := NewRecord(values)
	for len(r.Values) < width {
		r.Values = append(r.Values, "")
	}
	return r
}

// Len returns the number of values held by the record
func (r *Record) Len() int {
	return len(r.Values)
}

// Value returns the value at position i or "" when i is out of range
func (r *Record) Value(i int) string {
	if i < 0 || i >= len(r.Values) {
		return ""
	}
	return r.Values[i]
}

// SetValue replaces the value at position i. It reports false and leaves
// the record untouched when i is out of range.
func (r *Record) SetValue(i int, value string) bool {
	if i < 0 || i >= len(r.Values) {
		return false
	}
	r.Values[i] = value
	return true
}

// GetAsInt64 returns the value at position i as int64 or defaultValue if it
// is missing or not an integer
func (r *Record) GetAsInt64(i int, defaultValue int64) int64 {
	if n, err := strconv.ParseInt(strings.TrimSpace(r.Value(i)), 10, 64); err == nil {
		return n
	}
	return defaultValue
}

// GetAsFloat64 returns the value at position i as float64 or defaultValue
func (r *Record) GetAsFloat64(i int, defaultValue float64) float64 {
	if f, err := strconv.ParseFloat(strings.TrimSpace(r.Value(i)), 64); err == nil {
		return f
	}
	return defaultValue
}

// Contains reports whether any value contains text, ignoring case.
func (r *Record) Contains(text string) bool {
	needle := strings.ToLower(text)
	for _, v := range r.Values {
		if strings.Contains(strings.ToLower(v), needle) {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the record
func (r *Record) Clone() *Record {
	return NewRecord(r.Values)
}

// Line renders the record as a comma-joined line for the backing file.
func (r *Record) Line() string {
	return JoinFields(r.Values)
}

// String renders the record for display: values joined by " | ".
func (r *Record) String() string {
	return strings.Join(r.Values, " | ")
}
