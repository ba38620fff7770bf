package sheet

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"sync"

	"github.com/xuri/excelize/v2"
)

// WorkbookTable appends rows to one worksheet of an .xlsx file. Row 1 is the
// header row. The file is reopened on every call so edits made by hand
// between submissions are picked up.
type WorkbookTable struct {
	mu    sync.Mutex
	path  string
	sheet string
}

// OpenWorkbook returns a table backed by path. A missing file is created
// with seed as its header row.
func OpenWorkbook(path, sheetName string, seed []string) (*WorkbookTable, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := createWorkbook(path, sheetName, seed); err != nil {
			return nil, fmt.Errorf("create workbook %s: %w", path, err)
		}
		log.Printf("Created workbook %s with %d columns", path, len(seed))
	} else if err != nil {
		return nil, err
	}
	return &WorkbookTable{path: path, sheet: sheetName}, nil
}

func createWorkbook(path, sheetName string, headers []string) error {
	f := excelize.NewFile()
	defer f.Close()

	if defaultName := f.GetSheetName(0); defaultName != sheetName {
		if err := f.SetSheetName(defaultName, sheetName); err != nil {
			return err
		}
	}

	if len(headers) > 0 {
		row := make([]any, len(headers))
		for i, h := range headers {
			row[i] = h
		}
		if err := f.SetSheetRow(sheetName, "A1", &row); err != nil {
			return err
		}
	}

	return f.SaveAs(path)
}

func (t *WorkbookTable) Headers(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	f, err := excelize.OpenFile(t.path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rows, err := f.Rows(t.sheet)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, ErrNoHeaderRow
	}
	headers, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	if len(headers) == 0 {
		return nil, ErrNoHeaderRow
	}
	return headers, nil
}

func (t *WorkbookTable) AppendRow(ctx context.Context, row []any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	f, err := excelize.OpenFile(t.path)
	if err != nil {
		return err
	}
	defer f.Close()

	existing, err := f.GetRows(t.sheet)
	if err != nil {
		return err
	}

	cell, err := excelize.CoordinatesToCellName(1, len(existing)+1)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(t.sheet, cell, &row); err != nil {
		return fmt.Errorf("write row at %s: %w", cell, err)
	}
	return f.Save()
}
