// Package tableview is the dashboard's table state machine: it filters,
// searches and paginates one already-fetched workbook without any further
// server round trips.
package tableview

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sheetdash/backend/internal/models"
)

// PageSize is the fixed number of rows per page.
const PageSize = 30

// View holds the interaction state over one workbook: a single active
// sheet, one free-text search per column, one accepted-value set per
// column, and the current page. Switching sheet or workbook resets all of
// it.
type View struct {
	wb       *models.Workbook
	sheet    string
	searches map[string]string
	filters  map[string][]string
	page     int
}

// NewView starts on the workbook's first sheet with everything reset.
func NewView(wb *models.Workbook) *View {
	v := &View{}
	v.LoadWorkbook(wb)
	return v
}

// LoadWorkbook switches to a different file's workbook. Sheet selection,
// filters, searches and pagination all reset.
func (v *View) LoadWorkbook(wb *models.Workbook) {
	v.wb = wb
	v.sheet = ""
	if wb != nil && len(wb.SheetNames) > 0 {
		v.sheet = wb.SheetNames[0]
	}
	v.ResetFilters()
}

// Sheet returns the active sheet name.
func (v *View) Sheet() string { return v.sheet }

// SelectSheet switches the active sheet and resets filters, searches and
// pagination.
func (v *View) SelectSheet(name string) error {
	if v.wb == nil || v.wb.Sheets[name] == nil {
		return fmt.Errorf("unknown sheet %q", name)
	}
	v.sheet = name
	v.ResetFilters()
	return nil
}

// Headers returns the active sheet's column names in order.
func (v *View) Headers() []string {
	if sheet := v.activeSheet(); sheet != nil {
		return sheet.Headers
	}
	return nil
}

// SetSearch sets the free-text query for one column; an empty query clears
// the constraint. Any change snaps back to page 1.
func (v *View) SetSearch(column, query string) {
	if query == "" {
		delete(v.searches, column)
	} else {
		v.searches[column] = query
	}
	v.page = 1
}

// ToggleFilter adds or removes one accepted value on a column's checkbox
// filter and snaps back to page 1.
func (v *View) ToggleFilter(column, value string) {
	defer func() { v.page = 1 }()

	current := v.filters[column]
	for i, existing := range current {
		if existing == value {
			v.filters[column] = append(current[:i:i], current[i+1:]...)
			if len(v.filters[column]) == 0 {
				delete(v.filters, column)
			}
			return
		}
	}
	v.filters[column] = append(current, value)
}

// ResetFilters clears every search and checkbox filter and returns to
// page 1.
func (v *View) ResetFilters() {
	v.searches = make(map[string]string)
	v.filters = make(map[string][]string)
	v.page = 1
}

// FilteredRows applies every column search and checkbox filter, ANDed
// across columns. Comparisons run over the formatted cell value, case- and
// whitespace-insensitive.
func (v *View) FilteredRows() []models.Row {
	sheet := v.activeSheet()
	if sheet == nil {
		return nil
	}

	rows := make([]models.Row, 0, len(sheet.Data))
	for _, row := range sheet.Data {
		if v.keep(row) {
			rows = append(rows, row)
		}
	}
	return rows
}

func (v *View) keep(row models.Row) bool {
	for column, query := range v.searches {
		cell := normalize(FormatCell(row[column], column))
		if !strings.Contains(cell, normalize(query)) {
			return false
		}
	}

	for column, accepted := range v.filters {
		if len(accepted) == 0 {
			continue
		}
		cell := normalize(FormatCell(row[column], column))
		matched := false
		for _, value := range accepted {
			if normalize(value) == cell {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}
	return true
}

// TotalPages is ceil(filtered/PageSize); zero when nothing matches.
func (v *View) TotalPages() int {
	return (len(v.FilteredRows()) + PageSize - 1) / PageSize
}

// Page returns the current page number (1-based).
func (v *View) Page() int { return v.page }

// SetPage clamps the requested page to the valid range. With no matching
// rows there is nothing to page through and the view stays on page 1.
func (v *View) SetPage(n int) {
	total := v.TotalPages()
	if total == 0 || n < 1 {
		n = 1
	} else if n > total {
		n = total
	}
	v.page = n
}

// NextPage and PrevPage move one page, clamped at the ends.
func (v *View) NextPage() { v.SetPage(v.page + 1) }
func (v *View) PrevPage() { v.SetPage(v.page - 1) }

// PageRows returns the current page of filtered rows.
func (v *View) PageRows() []models.Row {
	rows := v.FilteredRows()

	start := (v.page - 1) * PageSize
	if start >= len(rows) {
		return nil
	}
	end := start + PageSize
	if end > len(rows) {
		end = len(rows)
	}
	return rows[start:end]
}

// UniqueValues returns the distinct formatted values of one column across
// the unfiltered sheet data, sorted ascending. It feeds the checkbox
// filter's candidate list.
func (v *View) UniqueValues(column string) []string {
	sheet := v.activeSheet()
	if sheet == nil {
		return nil
	}

	seen := make(map[string]struct{})
	for _, row := range sheet.Data {
		value, ok := row[column]
		if !ok || value == nil {
			continue
		}
		seen[FormatCell(value, column)] = struct{}{}
	}

	values := make([]string, 0, len(seen))
	for value := range seen {
		values = append(values, value)
	}
	sort.Strings(values)
	return values
}

// FilterCandidates narrows a column's unique values by a local substring
// search. It only trims the candidate list; row filtering is untouched.
func (v *View) FilterCandidates(column, term string) []string {
	values := v.UniqueValues(column)
	if term == "" {
		return values
	}

	needle := normalize(term)
	matches := make([]string, 0, len(values))
	for _, value := range values {
		if strings.Contains(normalize(value), needle) {
			matches = append(matches, value)
		}
	}
	return matches
}

func (v *View) activeSheet() *models.Sheet {
	if v.wb == nil || v.sheet == "" {
		return nil
	}
	return v.wb.Sheets[v.sheet]
}
