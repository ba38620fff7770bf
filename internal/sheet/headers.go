package sheet

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// NormalizeHeader is the comparison form of a column name on both sides.
func NormalizeHeader(header string) string {
	return strings.ToLower(strings.TrimSpace(header))
}

var timestampHeaders = map[string]bool{
	"timestamp":      true,
	"horodateur":     true,
	"horodatage":     true,
	"date et heure":  true,
	"marca temporal": true,
	"zeitstempel":    true,
}

// IsTimestampHeader reports whether the column receives the append time
// instead of a submitted value.
func IsTimestampHeader(header string) bool {
	return timestampHeaders[NormalizeHeader(header)]
}

// HeaderMismatchError means the client's expected columns differ from the
// table's header row. Expected and Actual hold the raw lists.
type HeaderMismatchError struct {
	Column   int // 1-based; 0 when the column counts differ
	Expected []string
	Actual   []string
}

func (e *HeaderMismatchError) Error() string {
	if e.Column == 0 {
		return "Header mismatch: different number of columns"
	}
	return fmt.Sprintf("Header mismatch at column %d: expected %q, got %q",
		e.Column, e.Expected[e.Column-1], e.Actual[e.Column-1])
}

// CompareHeaders checks expected against actual after normalization:
// same length, same order.
func CompareHeaders(expected, actual []string) error {
	if len(expected) != len(actual) {
		return &HeaderMismatchError{Expected: expected, Actual: actual}
	}
	for i := range expected {
		if NormalizeHeader(expected[i]) != NormalizeHeader(actual[i]) {
			return &HeaderMismatchError{Column: i + 1, Expected: expected, Actual: actual}
		}
	}
	return nil
}

// BuildRow lays out data in the table's column order. Timestamp columns get
// now, columns without a matching data key stay empty.
//
// Data keys are matched in sorted order, so when two keys normalize to the
// same header the lexically first one wins.
func BuildRow(actual []string, data map[string]any, now time.Time) []any {
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	row := make([]any, len(actual))
	for i, header := range actual {
		if IsTimestampHeader(header) {
			row[i] = now
			continue
		}
		row[i] = ""
		want := NormalizeHeader(header)
		for _, k := range keys {
			if NormalizeHeader(k) == want {
				if v := data[k]; v != nil {
					row[i] = v
				}
				break
			}
		}
	}
	return row
}
