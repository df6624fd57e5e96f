package files

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/sheetdash/backend/internal/blob"
	"github.com/sheetdash/backend/internal/logger"
	"github.com/sheetdash/backend/internal/metadata"
	"github.com/sheetdash/backend/internal/models"
	"github.com/sheetdash/backend/internal/workbook"
)

// Service orchestrates uploads, views, visibility updates and deletion over
// the metadata store and blob storage. Handlers stay transport-only; every
// rule about records and bytes lives here.
type Service struct {
	meta  metadata.Store
	blobs blob.Store
	log   zerolog.Logger
	now   func() time.Time
}

func NewService(meta metadata.Store, blobs blob.Store) *Service {
	return &Service{
		meta:  meta,
		blobs: blobs,
		log:   logger.Get(),
		now:   time.Now,
	}
}

// Upload validates, stores and registers one uploaded file. A record with
// the same logical file name is replaced: its old bytes are removed and the
// record is updated in place, keeping every previously saved visibility
// entry and appending visible entries for newly discovered sheets.
func (s *Service) Upload(ctx context.Context, originalName, mimeType string, data []byte) (*models.UploadedFile, error) {
	kind, ok := workbook.KindFromMIME(mimeType)
	if !ok {
		return nil, ErrUnsupportedType
	}

	prior, err := s.meta.FindByFileName(ctx, originalName)
	if err != nil && !errors.Is(err, metadata.ErrNotFound) {
		return nil, fmt.Errorf("loading prior record: %w", err)
	}

	var priorVisibility []models.SheetVisibility
	if prior != nil {
		priorVisibility = prior.SheetVisibility
	}

	visibility, err := s.resolveVisibility(kind, data, priorVisibility)
	if err != nil {
		return nil, err
	}

	storedName := s.newStoredName()
	if err := s.blobs.Upload(ctx, storedName, bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("storing file bytes: %w", err)
	}

	// Everything past this point must clean up the written bytes on
	// failure so a rejected upload never orphans storage.
	record, err := s.persist(ctx, prior, originalName, storedName, mimeType, visibility)
	if err != nil {
		if cleanupErr := s.blobs.Delete(ctx, storedName); cleanupErr != nil {
			s.log.Warn().Err(cleanupErr).Str("storedName", storedName).
				Msg("failed to clean up bytes after upload failure")
		}
		return nil, err
	}

	s.log.Info().Str("fileName", originalName).Str("storedName", storedName).
		Str("mimeType", mimeType).Bool("replaced", prior != nil).Msg("file uploaded")
	return record, nil
}

// resolveVisibility computes the sheet visibility list for an upload. Excel
// files are parsed to discover sheet names; CSV files carry a single
// synthetic sheet.
func (s *Service) resolveVisibility(kind workbook.Kind, data []byte, prior []models.SheetVisibility) ([]models.SheetVisibility, error) {
	if !kind.IsExcel() {
		if prior != nil {
			return prior, nil
		}
		return []models.SheetVisibility{
			{SheetName: workbook.CSVSheetName, IsVisible: true, UpdatedAt: s.now()},
		}, nil
	}

	wb, err := workbook.Parse(bytes.NewReader(data), kind)
	if err != nil {
		return nil, err
	}
	if len(wb.SheetNames) == 0 {
		return nil, ErrNoDataSheets
	}
	return mergeVisibility(prior, wb.SheetNames, s.now()), nil
}

// mergeVisibility keeps every prior entry, including ones for sheets the
// new file no longer contains, and appends a visible entry for each newly
// discovered sheet.
func mergeVisibility(prior []models.SheetVisibility, sheetNames []string, now time.Time) []models.SheetVisibility {
	merged := append([]models.SheetVisibility(nil), prior...)

	known := make(map[string]struct{}, len(prior))
	for _, entry := range prior {
		known[entry.SheetName] = struct{}{}
	}

	for _, name := range sheetNames {
		if _, ok := known[name]; ok {
			continue
		}
		merged = append(merged, models.SheetVisibility{
			SheetName: name,
			IsVisible: true,
			UpdatedAt: now,
		})
	}
	return merged
}

func (s *Service) persist(ctx context.Context, prior *models.UploadedFile, originalName, storedName, mimeType string, visibility []models.SheetVisibility) (*models.UploadedFile, error) {
	now := s.now()

	if prior != nil {
		if err := s.blobs.Delete(ctx, prior.StoredName); err != nil {
			return nil, fmt.Errorf("removing replaced file bytes: %w", err)
		}
		prior.StoredName = storedName
		prior.StoragePath = s.blobs.Path(storedName)
		prior.MimeType = mimeType
		prior.SheetVisibility = visibility
		prior.UpdatedAt = now
		if err := s.meta.Update(ctx, prior); err != nil {
			return nil, fmt.Errorf("updating record: %w", err)
		}
		return prior, nil
	}

	record := &models.UploadedFile{
		FileName:        originalName,
		StoredName:      storedName,
		StoragePath:     s.blobs.Path(storedName),
		MimeType:        mimeType,
		SheetVisibility: visibility,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.meta.Insert(ctx, record); err != nil {
		return nil, fmt.Errorf("inserting record: %w", err)
	}
	return record, nil
}

// newStoredName builds the externally addressable id for uploaded bytes:
// upload timestamp plus a random suffix, so re-uploads never collide.
func (s *Service) newStoredName() string {
	return fmt.Sprintf("%d-%s", s.now().UnixMilli(), uuid.New().String())
}

// List returns every record, newest first. Records marked for deletion are
// included so the admin dashboard can render their pending state.
func (s *Service) List(ctx context.Context) ([]*models.UploadedFile, error) {
	return s.meta.List(ctx)
}
