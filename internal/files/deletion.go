package files

import (
	"context"
	"errors"
	"fmt"

	"github.com/sheetdash/backend/internal/metadata"
)

// BatchResult reports the outcome of applying pending deletions. Deleted
// holds the stored names that were fully removed; Errors holds one message
// per record that could not be.
type BatchResult struct {
	Deleted []string `json:"deletedFiles"`
	Errors  []string `json:"errors,omitempty"`
}

// AllSucceeded reports whether every attempted deletion went through.
func (r *BatchResult) AllSucceeded() bool { return len(r.Errors) == 0 }

// NoneSucceeded reports whether at least one deletion was attempted and
// all of them failed.
func (r *BatchResult) NoneSucceeded() bool { return len(r.Deleted) == 0 && len(r.Errors) > 0 }

// Delete removes one file immediately: bytes first, then the record.
func (s *Service) Delete(ctx context.Context, storedName string) error {
	record, err := s.meta.FindByStoredName(ctx, storedName)
	if errors.Is(err, metadata.ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("loading record: %w", err)
	}

	if err := s.blobs.Delete(ctx, record.StoredName); err != nil {
		return fmt.Errorf("removing file bytes: %w", err)
	}
	if err := s.meta.Delete(ctx, record.StoredName); err != nil {
		return fmt.Errorf("removing record: %w", err)
	}

	s.log.Info().Str("fileName", record.FileName).Str("storedName", storedName).Msg("file deleted")
	return nil
}

// MarkForDeletion sets the soft-delete flag. The record stays fully
// readable until ApplyPendingDeletions removes it. Marking an already
// marked record is a no-op.
func (s *Service) MarkForDeletion(ctx context.Context, storedName string) error {
	record, err := s.meta.FindByStoredName(ctx, storedName)
	if errors.Is(err, metadata.ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("loading record: %w", err)
	}

	record.MarkedForDeletion = true
	record.UpdatedAt = s.now()
	if err := s.meta.Update(ctx, record); err != nil {
		return fmt.Errorf("updating record: %w", err)
	}

	s.log.Info().Str("fileName", record.FileName).Str("storedName", storedName).
		Msg("file marked for deletion")
	return nil
}

// ApplyPendingDeletions removes every record flagged for deletion. Each
// record is processed independently: a failure is collected and the batch
// moves on, so one bad file never blocks the rest.
func (s *Service) ApplyPendingDeletions(ctx context.Context) (*BatchResult, error) {
	marked, err := s.meta.FindMarked(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading marked records: %w", err)
	}

	result := &BatchResult{Deleted: make([]string, 0, len(marked))}
	for _, record := range marked {
		if err := s.blobs.Delete(ctx, record.StoredName); err != nil {
			result.Errors = append(result.Errors,
				fmt.Sprintf("error deleting file %s: %v", record.FileName, err))
			continue
		}
		if err := s.meta.Delete(ctx, record.StoredName); err != nil {
			result.Errors = append(result.Errors,
				fmt.Sprintf("error deleting file %s: %v", record.FileName, err))
			continue
		}
		result.Deleted = append(result.Deleted, record.StoredName)
	}

	s.log.Info().Int("deleted", len(result.Deleted)).Int("errors", len(result.Errors)).
		Msg("pending deletions applied")
	return result, nil
}
