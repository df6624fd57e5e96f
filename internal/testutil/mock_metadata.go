// mock_metadata.go - In-memory metadata store for tests
package testutil

import (
	"context"
	"sort"
	"sync"

	"github.com/sheetdash/backend/internal/metadata"
	"github.com/sheetdash/backend/internal/models"
)

// MockMetadata implements metadata.Store in memory. Records are cloned on
// the way in and out so tests observe store semantics, not shared pointers.
type MockMetadata struct {
	mu      sync.RWMutex
	records map[string]*models.UploadedFile // keyed by file name
}

func NewMockMetadata() *MockMetadata {
	return &MockMetadata{records: make(map[string]*models.UploadedFile)}
}

func (m *MockMetadata) Insert(_ context.Context, f *models.UploadedFile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[f.FileName] = clone(f)
	return nil
}

func (m *MockMetadata) Update(_ context.Context, f *models.UploadedFile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.records[f.FileName]; !ok {
		return metadata.ErrNotFound
	}
	m.records[f.FileName] = clone(f)
	return nil
}

func (m *MockMetadata) FindByFileName(_ context.Context, fileName string) (*models.UploadedFile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if f, ok := m.records[fileName]; ok {
		return clone(f), nil
	}
	return nil, metadata.ErrNotFound
}

func (m *MockMetadata) FindByStoredName(_ context.Context, storedName string) (*models.UploadedFile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, f := range m.records {
		if f.StoredName == storedName {
			return clone(f), nil
		}
	}
	return nil, metadata.ErrNotFound
}

func (m *MockMetadata) List(_ context.Context) ([]*models.UploadedFile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var list []*models.UploadedFile
	for _, f := range m.records {
		list = append(list, clone(f))
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
	return list, nil
}

func (m *MockMetadata) Delete(_ context.Context, storedName string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for name, f := range m.records {
		if f.StoredName == storedName {
			delete(m.records, name)
			return nil
		}
	}
	return metadata.ErrNotFound
}

func (m *MockMetadata) FindMarked(_ context.Context) ([]*models.UploadedFile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var marked []*models.UploadedFile
	for _, f := range m.records {
		if f.MarkedForDeletion {
			marked = append(marked, clone(f))
		}
	}
	sort.Slice(marked, func(i, j int) bool {
		return marked[i].CreatedAt.Before(marked[j].CreatedAt)
	})
	return marked, nil
}

func (m *MockMetadata) Close() error { return nil }

func clone(f *models.UploadedFile) *models.UploadedFile {
	c := *f
	c.SheetVisibility = append([]models.SheetVisibility(nil), f.SheetVisibility...)
	return &c
}
