package models

import "time"

// SheetVisibility is one per-sheet display preference. Entries are created
// the first time a sheet name is observed and are never pruned, even when a
// later re-upload no longer contains the sheet.
type SheetVisibility struct {
	SheetName string    `json:"sheetName"`
	IsVisible bool      `json:"isVisible"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// UploadedFile is the metadata document kept for one logical file.
// FileName is the user-facing identity; StoredName is the externally
// addressable id of the current on-disk bytes and changes on every
// re-upload.
type UploadedFile struct {
	FileName          string            `json:"fileName"`
	StoredName        string            `json:"file"`
	StoragePath       string            `json:"filePath"`
	MimeType          string            `json:"fileType"`
	SheetVisibility   []SheetVisibility `json:"sheetVisibility"`
	MarkedForDeletion bool              `json:"isMarkedForDeletion"`
	CreatedAt         time.Time         `json:"createdAt"`
	UpdatedAt         time.Time         `json:"updatedAt"`
}
