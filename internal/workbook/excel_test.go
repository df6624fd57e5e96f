package workbook

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type testSheet struct {
	name string
	rows [][]any
}

func buildWorkbook(t *testing.T, sheets []testSheet) []byte {
	t.Helper()

	f := excelize.NewFile()
	for i, sh := range sheets {
		if i == 0 {
			require.NoError(t, f.SetSheetName("Sheet1", sh.name))
		} else {
			_, err := f.NewSheet(sh.name)
			require.NoError(t, err)
		}
		for r := range sh.rows {
			cell, err := excelize.CoordinatesToCellName(1, r+1)
			require.NoError(t, err)
			require.NoError(t, f.SetSheetRow(sh.name, cell, &sh.rows[r]))
		}
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func TestParseExcel_MultiSheet(t *testing.T) {
	data := buildWorkbook(t, []testSheet{
		{name: "Orders", rows: [][]any{
			{"Vendor", "Qty"},
			{"Acme", 2},
			{"Globex", 5},
		}},
		{name: "Inventory", rows: [][]any{
			{"Item", "Count"},
			{"Widget", 10},
		}},
	})

	wb, err := Parse(bytes.NewReader(data), KindExcelOOXML)
	require.NoError(t, err)

	assert.Equal(t, []string{"Orders", "Inventory"}, wb.SheetNames)
	assert.Equal(t, []string{"Vendor", "Qty"}, wb.Sheets["Orders"].Headers)
	assert.Len(t, wb.Sheets["Orders"].Data, 2)
	assert.Len(t, wb.Sheets["Inventory"].Data, 1)
	assert.Equal(t, "Acme", wb.Sheets["Orders"].Data[0]["Vendor"])
}

func TestParseExcel_NumericCellsStayNumeric(t *testing.T) {
	data := buildWorkbook(t, []testSheet{
		{name: "Report", rows: [][]any{
			{"Date", "Amount", "Label"},
			{45000, 12.5, "march"},
		}},
	})

	wb, err := Parse(bytes.NewReader(data), KindExcelOOXML)
	require.NoError(t, err)

	row := wb.Sheets["Report"].Data[0]
	assert.Equal(t, float64(45000), row["Date"])
	assert.Equal(t, 12.5, row["Amount"])
	assert.Equal(t, "march", row["Label"])
}

func TestParseExcel_EmptySheetOmitted(t *testing.T) {
	data := buildWorkbook(t, []testSheet{
		{name: "Data", rows: [][]any{{"A"}, {"1"}}},
		{name: "Blank"},
	})

	wb, err := Parse(bytes.NewReader(data), KindExcelOOXML)
	require.NoError(t, err)

	assert.Equal(t, []string{"Data"}, wb.SheetNames)
	assert.NotContains(t, wb.Sheets, "Blank")
}

func TestParseExcel_Unreadable(t *testing.T) {
	_, err := Parse(strings.NewReader("this is not a zip archive"), KindExcelOOXML)
	assert.ErrorIs(t, err, ErrUnreadable)
}
