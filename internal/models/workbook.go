package models

// Row maps a header name to the raw cell value for that column. Missing
// cells have no key at all, matching what the serialized form looks like.
type Row map[string]any

// Sheet is one tabular region: an ordered header list plus data rows keyed
// by header.
type Sheet struct {
	Headers []string `json:"headers"`
	Data    []Row    `json:"data"`
}

// Workbook is the ephemeral parse result for one file. It is rebuilt on
// every view request and never persisted. SheetNames preserves the order
// sheets appeared in the source file; CSV files always hold a single
// synthetic "Sheet1".
type Workbook struct {
	Sheets     map[string]*Sheet `json:"sheets"`
	SheetNames []string          `json:"sheetNames"`
}
