package workbook

// MIME types accepted for upload.
const (
	MIMECSV         = "text/csv"
	MIMEExcelLegacy = "application/vnd.ms-excel"
	MIMEExcelOOXML  = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// CSVSheetName is the synthetic sheet name used for CSV files, which have
// no sheets of their own.
const CSVSheetName = "Sheet1"

// Kind is the decoded-format variant of an uploaded file. It replaces
// MIME-string comparisons at the call sites: the declared type is resolved
// once at the boundary and everything downstream dispatches on the Kind.
type Kind int

const (
	KindCSV Kind = iota + 1
	KindExcelLegacy
	KindExcelOOXML
)

// KindFromMIME resolves a declared MIME type to a Kind. The second return
// is false for anything outside the supported set.
func KindFromMIME(mimeType string) (Kind, bool) {
	switch mimeType {
	case MIMECSV:
		return KindCSV, true
	case MIMEExcelLegacy:
		return KindExcelLegacy, true
	case MIMEExcelOOXML:
		return KindExcelOOXML, true
	default:
		return 0, false
	}
}

// IsExcel reports whether the kind is one of the Excel variants.
func (k Kind) IsExcel() bool {
	return k == KindExcelLegacy || k == KindExcelOOXML
}

func (k Kind) String() string {
	switch k {
	case KindCSV:
		return "csv"
	case KindExcelLegacy:
		return "excel-legacy"
	case KindExcelOOXML:
		return "excel-ooxml"
	default:
		return "unknown"
	}
}
