package mocks

import (
	"context"
	"sync"

	"github.com/MiluneSadakaChrispinus/househunter/domain"
)

// BlobCall records one blob operation for assertion.
type BlobCall struct {
	Op          string
	Bucket      string
	Key         string
	Keys        []string
	ContentType string
	Size        int
}

// MockBlobAPI implements domain.BlobAPI for testing.
type MockBlobAPI struct {
	UploadFunc    func(ctx context.Context, bucket, key string, data []byte, contentType string) error
	PublicURLFunc func(bucket, key string) string
	RemoveFunc    func(ctx context.Context, bucket string, keys []string) error

	mu    sync.Mutex
	Calls []BlobCall
}

// NewMockBlobAPI creates a new MockBlobAPI with default behaviors.
func NewMockBlobAPI() *MockBlobAPI {
	return &MockBlobAPI{}
}

// Upload stores an object.
func (m *MockBlobAPI) Upload(ctx context.Context, bucket, key string, data []byte, contentType string) error {
	m.record(BlobCall{Op: "upload", Bucket: bucket, Key: key, ContentType: contentType, Size: len(data)})
	if m.UploadFunc != nil {
		return m.UploadFunc(ctx, bucket, key, data, contentType)
	}
	// Default behavior: success
	return nil
}

// PublicURL returns the object's public URL.
func (m *MockBlobAPI) PublicURL(bucket, key string) string {
	if m.PublicURLFunc != nil {
		return m.PublicURLFunc(bucket, key)
	}
	// Default behavior: deterministic URL
	return "https://blobs.test/" + bucket + "/" + key
}

// Remove deletes objects by key.
func (m *MockBlobAPI) Remove(ctx context.Context, bucket string, keys []string) error {
	m.record(BlobCall{Op: "remove", Bucket: bucket, Keys: keys})
	if m.RemoveFunc != nil {
		return m.RemoveFunc(ctx, bucket, keys)
	}
	// Default behavior: success
	return nil
}

// CallsFor returns the recorded calls for one operation.
func (m *MockBlobAPI) CallsFor(op string) []BlobCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []BlobCall
	for _, c := range m.Calls {
		if c.Op == op {
			out = append(out, c)
		}
	}
	return out
}

func (m *MockBlobAPI) record(c BlobCall) {
	m.mu.Lock()
	m.Calls = append(m.Calls, c)
	m.mu.Unlock()
}

// Compile-time interface compliance verification
var _ domain.BlobAPI = (*MockBlobAPI)(nil)
