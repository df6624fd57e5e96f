package metadata

import (
	"context"
	"errors"

	"github.com/sheetdash/backend/internal/models"
)

// ErrNotFound is returned when no record matches the given key.
var ErrNotFound = errors.New("metadata record not found")

// Store persists one UploadedFile document per logical file name. The
// connection has an explicit lifecycle: opened at startup, closed on
// shutdown.
type Store interface {
	// Insert creates a new record.
	Insert(ctx context.Context, f *models.UploadedFile) error
	// Update rewrites the record matching f.FileName in place.
	Update(ctx context.Context, f *models.UploadedFile) error
	// FindByFileName looks a record up by its logical file name.
	FindByFileName(ctx context.Context, fileName string) (*models.UploadedFile, error)
	// FindByStoredName looks a record up by the stored-name id used in routes.
	FindByStoredName(ctx context.Context, storedName string) (*models.UploadedFile, error)
	// List returns every record, newest first.
	List(ctx context.Context) ([]*models.UploadedFile, error)
	// Delete removes the record matching storedName.
	Delete(ctx context.Context, storedName string) error
	// FindMarked returns every record flagged for deletion.
	FindMarked(ctx context.Context) ([]*models.UploadedFile, error)

	Close() error
}
