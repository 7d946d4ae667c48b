package blob

import (
	"context"
	"sync"
	"time"

	"github.com/matzehuels/radialtext/pkg/observability"
)

// MemoryStore implements Store in process memory.
type MemoryStore struct {
	mu    sync.Mutex
	blobs map[string]*Blob
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{blobs: make(map[string]*Blob)}
}

// Create stores a copy of data under a new URL.
func (s *MemoryStore) Create(ctx context.Context, data []byte, mimeType string) (string, error) {
	url, _ := NewURL()
	b := &Blob{
		Data:     append([]byte(nil), data...),
		MIMEType: mimeType,
		Created:  time.Now(),
	}

	s.mu.Lock()
	s.blobs[url] = b
	s.mu.Unlock()

	observability.Blob().OnBlobCreate(ctx, "memory", len(data))
	return url, nil
}

// Open returns the blob stored under url.
func (s *MemoryStore) Open(ctx context.Context, url string) (*Blob, error) {
	s.mu.Lock()
	b, ok := s.blobs[url]
	s.mu.Unlock()

	observability.Blob().OnBlobOpen(ctx, "memory", ok)
	if !ok {
		return nil, notFound(url)
	}
	return b, nil
}

// Revoke removes url.
func (s *MemoryStore) Revoke(ctx context.Context, url string) error {
	s.mu.Lock()
	_, ok := s.blobs[url]
	delete(s.blobs, url)
	s.mu.Unlock()

	if ok {
		observability.Blob().OnBlobRevoke(ctx, "memory")
	}
	return nil
}

// Len returns the number of live URLs.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.blobs)
}

// Close drops every stored blob.
func (s *MemoryStore) Close() error {
	s.mu.Lock()
	clear(s.blobs)
	s.mu.Unlock()
	return nil
}

// Ensure MemoryStore implements Store.
var _ Store = (*MemoryStore)(nil)
