package models

import (
	"gorm.io/gorm"
)

// SheetColumn is one cell of a table's header row.
type SheetColumn struct {
	gorm.Model
	Sheet    string `json:"sheet" gorm:"uniqueIndex:idx_sheet_position"`
	Position int    `json:"position" gorm:"uniqueIndex:idx_sheet_position"`
	Name     string `json:"name"`
}

// SheetRow is an appended row; Cells is a JSON array in column order.
type SheetRow struct {
	gorm.Model
	Sheet string `json:"sheet" gorm:"index"`
	Cells string `json:"cells" gorm:"type:text"`
}
