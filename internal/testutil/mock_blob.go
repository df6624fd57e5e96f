// mock_blob.go - In-memory blob store for tests
package testutil

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sync"
)

// ErrObjectMissing is returned by Download when no object has the key.
var ErrObjectMissing = errors.New("object not found")

// MockBlob implements blob.Store in memory. FailDelete injects per-key
// delete failures for partial-batch tests; FailUpload fails every upload.
type MockBlob struct {
	mu         sync.RWMutex
	objects    map[string][]byte
	FailDelete map[string]error
	FailUpload error
}

func NewMockBlob() *MockBlob {
	return &MockBlob{
		objects:    make(map[string][]byte),
		FailDelete: make(map[string]error),
	}
}

func (m *MockBlob) Upload(_ context.Context, key string, data io.Reader) error {
	if m.FailUpload != nil {
		return m.FailUpload
	}
	content, err := io.ReadAll(data)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = content
	return nil
}

func (m *MockBlob) Download(_ context.Context, key string) (io.ReadCloser, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	content, ok := m.objects[key]
	if !ok {
		return nil, ErrObjectMissing
	}
	return io.NopCloser(bytes.NewReader(content)), nil
}

func (m *MockBlob) Delete(_ context.Context, key string) error {
	if err := m.FailDelete[key]; err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, key)
	return nil
}

func (m *MockBlob) Exists(_ context.Context, key string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.objects[key]
	return ok, nil
}

func (m *MockBlob) Path(key string) string { return "mem://" + key }

// Remove drops an object directly, bypassing FailDelete. Tests use it to
// simulate bytes that vanished behind the metadata store's back.
func (m *MockBlob) Remove(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, key)
}

// Len reports how many objects are stored.
func (m *MockBlob) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.objects)
}
