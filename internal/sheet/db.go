package sheet

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/gdg-garage/equipment-purchase/internal/models"
	"gorm.io/gorm"
)

// DBTable stores a named sheet in the database: the header row in
// sheet_columns and each appended row as a JSON array in sheet_rows.
type DBTable struct {
	db    *gorm.DB
	sheet string
}

func NewDBTable(db *gorm.DB, sheet string) *DBTable {
	return &DBTable{db: db, sheet: sheet}
}

// Seed writes headers as the header row unless the sheet already has one.
func (t *DBTable) Seed(ctx context.Context, headers []string) error {
	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.SheetColumn{}).Where("sheet = ?", t.sheet).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}
		for i, name := range headers {
			col := models.SheetColumn{Sheet: t.sheet, Position: i, Name: name}
			if err := tx.Create(&col).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (t *DBTable) Headers(ctx context.Context) ([]string, error) {
	var cols []models.SheetColumn
	if err := t.db.WithContext(ctx).Where("sheet = ?", t.sheet).Order("position asc").Find(&cols).Error; err != nil {
		return nil, err
	}
	if len(cols) == 0 {
		return nil, ErrNoHeaderRow
	}
	headers := make([]string, len(cols))
	for i, c := range cols {
		headers[i] = c.Name
	}
	return headers, nil
}

func (t *DBTable) AppendRow(ctx context.Context, row []any) error {
	cells, err := json.Marshal(row)
	if err != nil {
		return fmt.Errorf("encode row: %w", err)
	}
	return t.db.WithContext(ctx).Create(&models.SheetRow{Sheet: t.sheet, Cells: string(cells)}).Error
}
