package workbook

import (
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/sheetdash/backend/internal/models"
)

// parseExcel decodes every sheet of a workbook. The first row of each
// sheet is the header list and every following non-empty row is data.
// Sheets without a single row are omitted entirely.
func parseExcel(r io.Reader) (*models.Workbook, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadable, err)
	}
	defer f.Close()

	wb := &models.Workbook{Sheets: make(map[string]*models.Sheet)}
	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name, excelize.Options{RawCellValue: true})
		if err != nil {
			return nil, fmt.Errorf("%w: reading sheet %q: %v", ErrUnreadable, name, err)
		}
		if len(rows) == 0 {
			continue
		}

		wb.Sheets[name] = sheetFromRows(rows)
		wb.SheetNames = append(wb.SheetNames, name)
	}

	return wb, nil
}

// sheetFromRows assembles a sheet from raw string rows: the first row is
// the header list, zero-cell rows are skipped, and cells are numeric-typed.
func sheetFromRows(rows [][]string) *models.Sheet {
	headers := rows[0]
	sheet := &models.Sheet{Headers: headers, Data: make([]models.Row, 0, len(rows)-1)}
	for _, raw := range rows[1:] {
		if len(raw) == 0 {
			continue
		}
		cells := make([]any, len(raw))
		for i, v := range raw {
			cells[i] = typeCell(v)
		}
		sheet.Data = append(sheet.Data, zipRow(headers, cells))
	}
	return sheet
}

// typeCell restores the numeric type of raw cell values. Excel stores
// dates and times as day serials; keeping them numeric lets the
// presentation layer decode them, while everything else stays a string.
func typeCell(raw string) any {
	if raw == "" {
		return ""
	}
	if n, err := strconv.ParseFloat(raw, 64); err == nil {
		return n
	}
	return raw
}
