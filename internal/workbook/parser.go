package workbook

import (
	"errors"
	"io"

	"github.com/sheetdash/backend/internal/models"
)

// ErrUnreadable indicates the byte stream could not be decoded as the
// declared format.
var ErrUnreadable = errors.New("unreadable file")

// Parse decodes a spreadsheet stream into a Workbook according to its Kind.
// No value coercion beyond cell typing happens here; date/time decoding is
// a presentation concern because only the consumer knows which columns are
// semantically dates.
func Parse(r io.Reader, kind Kind) (*models.Workbook, error) {
	switch kind {
	case KindCSV:
		return parseCSV(r)
	case KindExcelLegacy:
		return parseXLS(r)
	case KindExcelOOXML:
		return parseExcel(r)
	default:
		return nil, ErrUnreadable
	}
}

// zipRow pairs cell values positionally against the header list. Cells
// beyond the header list are dropped; headers beyond the cell list get no
// key, so they serialize as absent.
func zipRow(headers []string, cells []any) models.Row {
	row := make(models.Row, len(headers))
	for i, h := range headers {
		if i < len(cells) {
			row[h] = cells[i]
		}
	}
	return row
}
