package tableview

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sheetdash/backend/internal/models"
)

func vendorWorkbook() *models.Workbook {
	orders := &models.Sheet{
		Headers: []string{"Vendor", "Status", "Date"},
		Data: []models.Row{
			{"Vendor": "Acme Corp", "Status": "Open", "Date": float64(45000)},
			{"Vendor": "  ACME  ", "Status": "Closed", "Date": float64(45001)},
			{"Vendor": "Globex", "Status": "Open", "Date": float64(45002)},
		},
	}
	notes := &models.Sheet{
		Headers: []string{"Note"},
		Data:    []models.Row{{"Note": "hello"}},
	}
	return &models.Workbook{
		Sheets:     map[string]*models.Sheet{"Orders": orders, "Notes": notes},
		SheetNames: []string{"Orders", "Notes"},
	}
}

func pagedWorkbook(rows int) *models.Workbook {
	sheet := &models.Sheet{Headers: []string{"ID"}}
	for i := 1; i <= rows; i++ {
		sheet.Data = append(sheet.Data, models.Row{"ID": fmt.Sprintf("r%d", i)})
	}
	return &models.Workbook{
		Sheets:     map[string]*models.Sheet{"Sheet1": sheet},
		SheetNames: []string{"Sheet1"},
	}
}

func TestView_ColumnSearch(t *testing.T) {
	v := NewView(vendorWorkbook())

	v.SetSearch("Vendor", "acme")
	rows := v.FilteredRows()
	require.Len(t, rows, 2, "search is case- and whitespace-insensitive")

	// searches on different columns AND together
	v.SetSearch("Status", "open")
	assert.Len(t, v.FilteredRows(), 1)

	// clearing one constraint widens again
	v.SetSearch("Status", "")
	assert.Len(t, v.FilteredRows(), 2)
}

func TestView_SearchMatchesFormattedValue(t *testing.T) {
	v := NewView(vendorWorkbook())

	// date serial 45000 renders as 15/03/2023, and search runs over the
	// rendered form
	v.SetSearch("Date", "15/03/2023")
	assert.Len(t, v.FilteredRows(), 1)
}

func TestView_CheckboxFilter(t *testing.T) {
	v := NewView(vendorWorkbook())

	v.ToggleFilter("Status", "Open")
	assert.Len(t, v.FilteredRows(), 2)

	// several accepted values OR within the column
	v.ToggleFilter("Status", "Closed")
	assert.Len(t, v.FilteredRows(), 3)

	// toggling off removes the value; empty set means no constraint
	v.ToggleFilter("Status", "Open")
	assert.Len(t, v.FilteredRows(), 1)
	v.ToggleFilter("Status", "Closed")
	assert.Len(t, v.FilteredRows(), 3)
}

func TestView_SearchAndFilterCombine(t *testing.T) {
	v := NewView(vendorWorkbook())

	v.SetSearch("Vendor", "acme")
	v.ToggleFilter("Status", "Closed")
	rows := v.FilteredRows()
	require.Len(t, rows, 1)
	assert.Equal(t, "Closed", rows[0]["Status"])
}

func TestView_Pagination(t *testing.T) {
	v := NewView(pagedWorkbook(61))

	assert.Equal(t, 3, v.TotalPages())
	assert.Equal(t, 1, v.Page())
	assert.Len(t, v.PageRows(), 30)

	v.SetPage(2)
	assert.Len(t, v.PageRows(), 30)
	assert.Equal(t, "r31", v.PageRows()[0]["ID"])

	v.SetPage(3)
	assert.Len(t, v.PageRows(), 1)

	// out-of-range pages clamp to the valid range
	v.SetPage(0)
	assert.Equal(t, 1, v.Page())
	v.SetPage(99)
	assert.Equal(t, 3, v.Page())

	v.NextPage()
	assert.Equal(t, 3, v.Page())
	v.SetPage(1)
	v.PrevPage()
	assert.Equal(t, 1, v.Page())
}

func TestView_SetPageWithNoMatches(t *testing.T) {
	v := NewView(pagedWorkbook(61))

	v.SetSearch("ID", "no such row")
	require.Empty(t, v.FilteredRows())
	require.Equal(t, 0, v.TotalPages())

	v.SetPage(99)
	assert.Equal(t, 1, v.Page())
	v.NextPage()
	assert.Equal(t, 1, v.Page())
	assert.Empty(t, v.PageRows())
}

func TestView_FilterChangesResetPage(t *testing.T) {
	v := NewView(pagedWorkbook(61))

	v.SetPage(3)
	v.SetSearch("ID", "r1")
	assert.Equal(t, 1, v.Page())

	v.SetPage(2)
	v.ToggleFilter("ID", "r1")
	assert.Equal(t, 1, v.Page())
}

func TestView_SheetSwitchResetsEverything(t *testing.T) {
	v := NewView(vendorWorkbook())
	require.Equal(t, "Orders", v.Sheet())

	v.SetSearch("Vendor", "acme")
	v.ToggleFilter("Status", "Open")
	v.SetPage(1)

	require.NoError(t, v.SelectSheet("Notes"))
	assert.Equal(t, "Notes", v.Sheet())
	assert.Equal(t, 1, v.Page())
	assert.Len(t, v.FilteredRows(), 1, "filters from the previous sheet must not apply")

	assert.Error(t, v.SelectSheet("Nope"))
}

func TestView_LoadWorkbookResets(t *testing.T) {
	v := NewView(vendorWorkbook())
	v.SetSearch("Vendor", "acme")

	v.LoadWorkbook(pagedWorkbook(5))
	assert.Equal(t, "Sheet1", v.Sheet())
	assert.Equal(t, 1, v.Page())
	assert.Len(t, v.FilteredRows(), 5)
}

func TestView_UniqueValues(t *testing.T) {
	sheet := &models.Sheet{
		Headers: []string{"Status"},
		Data: []models.Row{
			{"Status": "Open"},
			{"Status": "Closed"},
			{"Status": "Open"},
			{"Status": nil},
			{},
		},
	}
	v := NewView(&models.Workbook{
		Sheets:     map[string]*models.Sheet{"S": sheet},
		SheetNames: []string{"S"},
	})

	assert.Equal(t, []string{"Closed", "Open"}, v.UniqueValues("Status"))
}

func TestView_UniqueValuesIgnoreActiveFilters(t *testing.T) {
	v := NewView(vendorWorkbook())
	v.ToggleFilter("Status", "Open")

	// candidate list is built over the unfiltered sheet data
	assert.Equal(t, []string{"Closed", "Open"}, v.UniqueValues("Status"))
}

func TestView_FilterCandidates(t *testing.T) {
	v := NewView(vendorWorkbook())

	assert.Equal(t, []string{"ACME", "Acme Corp"}, v.FilterCandidates("Vendor", "acme"))
	assert.Len(t, v.FilteredRows(), 3, "candidate search must not filter rows")
}
