package table

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// Export writes every record matching the current search to a one-sheet workbook.
func (t *Table[T]) Export(records []T) (*excelize.File, error) {
	f := excelize.NewFile()
	sheet := t.Name
	if sheet == "" {
		sheet = "Sheet1"
	}
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("name sheet: %w", err)
	}

	header := make([]any, 0, len(t.Columns))
	for _, c := range t.Columns {
		header = append(header, c.Label)
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}

	for i, rec := range t.Filter(records) {
		raw := encode(rec)
		row := make([]any, 0, len(t.Columns))
		for _, c := range t.Columns {
			v := c.resolve(rec, raw)
			if n, ok := v.(float64); ok {
				row = append(row, n)
				continue
			}
			row = append(row, Stringify(v))
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+1, err)
		}
	}
	return f, nil
}
