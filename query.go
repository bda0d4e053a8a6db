package register

import (
	"fmt"
	"strconv"
	"strings"
)

// Condition operators
const (
	OpContains     = "contains" // case-insensitive substring
	OpEqual        = "=="
	OpNotEqual     = "!="
	OpGreater      = ">"
	OpGreaterEqual = ">="
	OpLess         = "<"
	OpLessEqual    = "<="
)

var validOperators = []string{OpContains, OpEqual, OpNotEqual, OpGreater, OpGreaterEqual, OpLess, OpLessEqual}

// Condition represents a single query condition
type Condition struct {
	Column   string // header name; "" matches against every column
	Operator string // contains, ==, !=, >, >=, <, <=
	Value    string
}

// Query represents a query with multiple conditions
type Query struct {
	Conditions []Condition // evaluated as AND
	Limit      int
	Offset     int
}

// evalCondition evaluates a single condition against a record
func evalCondition(headers []string, record *Record, condition Condition) bool {
	if condition.Column == "" {
		for _, v := range record.Values {
			if compare(v, condition.Operator, condition.Value) {
				return true
			}
		}
		return false
	}

	// Duplicate header names all take part
	for i, h := range headers {
		if h == condition.Column && compare(record.Value(i), condition.Operator, condition.Value) {
			return true
		}
	}
	return false
}

// MatchesQuery checks if a record matches all conditions in the query
func (r *Record) MatchesQuery(headers []string, query Query) bool {
	for _, condition := range query.Conditions {
		if !evalCondition(headers, r, condition) {
			return false
		}
	}
	return true
}

func compare(value, operator, want string) bool {
	switch operator {
	case OpContains:
		return strings.Contains(strings.ToLower(value), strings.ToLower(want))
	case OpEqual:
		return compareEqual(value, want)
	case OpNotEqual:
		return !compareEqual(value, want)
	case OpGreater, OpGreaterEqual, OpLess, OpLessEqual:
		a, okA := toFloat64(value)
		b, okB := toFloat64(want)
		if !okA || !okB {
			return false
		}
		switch operator {
		case OpGreater:
			return a > b
		case OpGreaterEqual:
			return a >= b
		case OpLess:
			return a < b
		default:
			return a <= b
		}
	default:
		return false
	}
}

// compareEqual compares numerically when both sides are numbers, otherwise
// as case-insensitive strings
func compareEqual(a, b string) bool {
	if x, ok := toFloat64(a); ok {
		if y, ok := toFloat64(b); ok {
			return x == y
		}
	}
	return strings.EqualFold(a, b)
}

func toFloat64(s string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return f, err == nil
}

// ApplyQuery filters records based on query conditions. Row numbers in the
// result are 1-based positions in records.
func ApplyQuery(headers []string, records []*Record, query Query) []Match {
	results := []Match{}

	for i, record := range records {
		if record.MatchesQuery(headers, query) {
			results = append(results, Match{Row: i + 1, Record: record.Clone()})
		}
	}

	if query.Offset > 0 && query.Offset < len(results) {
		results = results[query.Offset:]
	} else if query.Offset >= len(results) && query.Offset > 0 {
		return []Match{}
	}

	if query.Limit > 0 && query.Limit < len(results) {
		results = results[:query.Limit]
	}

	return results
}

// ValidateQuery validates query structure against the header list
func ValidateQuery(query Query, headers []string) error {
	for i, cond := range query.Conditions {
		valid := false
		for _, op := range validOperators {
			if cond.Operator == op {
				valid = true
				break
			}
		}
		if !valid {
			return fmt.Errorf("%w: unknown operator '%s' in condition %d", ErrInvalidQuery, cond.Operator, i)
		}

		if cond.Column != "" && !hasHeader(headers, cond.Column) {
			return fmt.Errorf("%w: unknown column '%s' in condition %d", ErrInvalidQuery, cond.Column, i)
		}
	}

	if query.Limit < 0 {
		return fmt.Errorf("%w: limit must be non-negative", ErrInvalidQuery)
	}
	if query.Offset < 0 {
		return fmt.Errorf("%w: offset must be non-negative", ErrInvalidQuery)
	}

	return nil
}

func hasHeader(headers []string, name string) bool {
	for _, h := range headers {
		if h == name {
			return true
		}
	}
	return false
}
