package files

import "errors"

var (
	// ErrUnsupportedType rejects uploads that are not CSV or Excel.
	ErrUnsupportedType = errors.New("only CSV and Excel files are supported")
	// ErrNoDataSheets rejects Excel uploads with no sheet containing data.
	ErrNoDataSheets = errors.New("excel file contains no valid data sheets")
	// ErrNotFound means no record matches the stored name.
	ErrNotFound = errors.New("file not found")
)
