package files

import (
	"context"
	"errors"
	"fmt"

	"github.com/sheetdash/backend/internal/metadata"
	"github.com/sheetdash/backend/internal/models"
	"github.com/sheetdash/backend/internal/workbook"
)

// ViewResult is the parsed, visibility-filtered content of one file. The
// full visibility list rides along so the admin UI can manage hidden
// sheets without another round trip.
type ViewResult struct {
	FileName        string                   `json:"fileName" msgpack:"fileName"`
	MimeType        string                   `json:"fileType" msgpack:"fileType"`
	SheetNames      []string                 `json:"sheetNames" msgpack:"sheetNames"`
	Sheets          map[string]*models.Sheet `json:"sheets" msgpack:"sheets"`
	SheetVisibility []models.SheetVisibility `json:"sheetVisibility" msgpack:"sheetVisibility"`
}

// View re-parses the stored bytes and returns the sheets whose visibility
// entry is not explicitly false. A record whose backing bytes are gone is
// removed on the spot and reported as not found.
func (s *Service) View(ctx context.Context, storedName string) (*ViewResult, error) {
	record, err := s.meta.FindByStoredName(ctx, storedName)
	if errors.Is(err, metadata.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading record: %w", err)
	}

	exists, err := s.blobs.Exists(ctx, record.StoredName)
	if err != nil {
		return nil, fmt.Errorf("checking file bytes: %w", err)
	}
	if !exists {
		// Orphaned record: the metadata outlived the bytes. Remove it so
		// the dashboard stops offering a file nobody can open.
		if delErr := s.meta.Delete(ctx, record.StoredName); delErr != nil {
			s.log.Warn().Err(delErr).Str("storedName", storedName).
				Msg("failed to remove orphaned record")
		}
		s.log.Info().Str("fileName", record.FileName).Str("storedName", storedName).
			Msg("removed orphaned record with missing bytes")
		return nil, ErrNotFound
	}

	rc, err := s.blobs.Download(ctx, record.StoredName)
	if err != nil {
		return nil, fmt.Errorf("reading file bytes: %w", err)
	}
	defer rc.Close()

	kind, ok := workbook.KindFromMIME(record.MimeType)
	if !ok {
		return nil, workbook.ErrUnreadable
	}

	wb, err := workbook.Parse(rc, kind)
	if err != nil {
		return nil, err
	}

	result := &ViewResult{
		FileName:        record.FileName,
		MimeType:        record.MimeType,
		SheetVisibility: record.SheetVisibility,
	}

	if !kind.IsExcel() {
		result.SheetNames = wb.SheetNames
		result.Sheets = wb.Sheets
		return result, nil
	}

	// A sheet with no visibility entry is visible; only an explicit false
	// hides it.
	hidden := make(map[string]bool, len(record.SheetVisibility))
	for _, entry := range record.SheetVisibility {
		if !entry.IsVisible {
			hidden[entry.SheetName] = true
		}
	}

	result.Sheets = make(map[string]*models.Sheet, len(wb.Sheets))
	for _, name := range wb.SheetNames {
		if hidden[name] {
			continue
		}
		result.Sheets[name] = wb.Sheets[name]
		result.SheetNames = append(result.SheetNames, name)
	}
	return result, nil
}

// UpdateVisibility replaces the record's visibility list wholesale.
func (s *Service) UpdateVisibility(ctx context.Context, storedName string, visibility []models.SheetVisibility) ([]models.SheetVisibility, error) {
	record, err := s.meta.FindByStoredName(ctx, storedName)
	if errors.Is(err, metadata.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading record: %w", err)
	}

	record.SheetVisibility = visibility
	record.UpdatedAt = s.now()
	if err := s.meta.Update(ctx, record); err != nil {
		return nil, fmt.Errorf("updating record: %w", err)
	}

	s.log.Info().Str("fileName", record.FileName).Int("entries", len(visibility)).
		Msg("sheet visibility updated")
	return record.SheetVisibility, nil
}
