package workbook

import (
	"bytes"
	"fmt"
	"io"

	"github.com/extrame/xls"

	"github.com/sheetdash/backend/internal/models"
)

// parseXLS decodes a legacy BIFF workbook. The OLE container needs random
// access, so the stream is buffered first. Sheet and row semantics match
// parseExcel: the first row of each sheet is the header list, rows with no
// cells are skipped, and sheets without a single row are omitted.
func parseXLS(r io.Reader) (*models.Workbook, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadable, err)
	}

	f, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
	if err != nil {
		// Browsers regularly tag OOXML files with the legacy MIME type, so
		// try the zip container before giving up.
		if wb, zipErr := parseExcel(bytes.NewReader(data)); zipErr == nil {
			return wb, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrUnreadable, err)
	}

	wb := &models.Workbook{Sheets: make(map[string]*models.Sheet)}
	for i := 0; i < f.NumSheets(); i++ {
		sh := f.GetSheet(i)
		if sh == nil {
			continue
		}

		rows := xlsRows(sh)
		if len(rows) == 0 {
			continue
		}

		wb.Sheets[sh.Name] = sheetFromRows(rows)
		wb.SheetNames = append(wb.SheetNames, sh.Name)
	}

	return wb, nil
}

// xlsRows flattens one BIFF sheet into string rows. Trailing empty cells
// are trimmed and rows left with no cells at all are dropped.
func xlsRows(sh *xls.WorkSheet) [][]string {
	var rows [][]string
	for r := 0; r <= int(sh.MaxRow); r++ {
		row := sh.Row(r)
		if row == nil {
			continue
		}

		cells := make([]string, 0, row.LastCol()+1)
		for c := 0; c <= row.LastCol(); c++ {
			cells = append(cells, row.Col(c))
		}
		for len(cells) > 0 && cells[len(cells)-1] == "" {
			cells = cells[:len(cells)-1]
		}
		if len(cells) == 0 {
			continue
		}
		rows = append(rows, cells)
	}
	return rows
}
