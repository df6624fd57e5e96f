package workbook

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/sheetdash/backend/internal/models"
)

// parseCSV reads a CSV stream in a single pass. The first record defines
// the headers, every following record becomes one row object, and the
// result is wrapped in a single synthetic sheet.
func parseCSV(r io.Reader) (*models.Workbook, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // ragged records are zipped positionally

	var headers []string
	first, err := reader.Read()
	switch {
	case err == io.EOF:
		// empty file: one sheet, no headers, no rows
	case err != nil:
		return nil, fmt.Errorf("%w: %v", ErrUnreadable, err)
	default:
		headers = first
	}

	sheet := &models.Sheet{Headers: headers, Data: make([]models.Row, 0)}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnreadable, err)
		}
		cells := make([]any, len(record))
		for i, v := range record {
			cells[i] = v
		}
		sheet.Data = append(sheet.Data, zipRow(headers, cells))
	}

	return &models.Workbook{
		Sheets:     map[string]*models.Sheet{CSVSheetName: sheet},
		SheetNames: []string{CSVSheetName},
	}, nil
}
