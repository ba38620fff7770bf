// Package sheet holds the destination table: the header reconciliation rules
// and the backends rows are appended to.
package sheet

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// Table is a spreadsheet-like store that owns its column layout.
type Table interface {
	// Headers returns the header row, in column order.
	Headers(ctx context.Context) ([]string, error)
	// AppendRow adds row after the last used row. len(row) matches Headers.
	AppendRow(ctx context.Context, row []any) error
}

var ErrNoHeaderRow = errors.New("destination table has no header row")

// MemoryTable keeps rows in process. Useful for local runs and tests.
type MemoryTable struct {
	mu      sync.Mutex
	headers []string
	rows    [][]any
}

func NewMemoryTable(headers []string) *MemoryTable {
	return &MemoryTable{headers: append([]string(nil), headers...)}
}

func (t *MemoryTable) Headers(ctx context.Context) ([]string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.headers) == 0 {
		return nil, ErrNoHeaderRow
	}
	return append([]string(nil), t.headers...), nil
}

func (t *MemoryTable) AppendRow(ctx context.Context, row []any) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(row) != len(t.headers) {
		return fmt.Errorf("row has %d cells, table has %d columns", len(row), len(t.headers))
	}
	t.rows = append(t.rows, append([]any(nil), row...))
	return nil
}

// Rows returns a copy of the appended rows.
func (t *MemoryTable) Rows() [][]any {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([][]any, len(t.rows))
	for i, r := range t.rows {
		out[i] = append([]any(nil), r...)
	}
	return out
}
