package blob

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/matzehuels/radialtext/pkg/errors"
	"github.com/matzehuels/radialtext/pkg/observability"
)

// FileStore implements Store on a directory. Each blob is a JSON file
// holding the data, MIME type and expiry, so URLs survive restarts until
// they are revoked or expire.
type FileStore struct {
	dir string
	ttl time.Duration
	now func() time.Time
}

// NewFileStore creates a store in dir, creating the directory if needed.
// A ttl of zero keeps blobs until they are revoked.
func NewFileStore(dir string, ttl time.Duration) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "create blob dir %s", dir)
	}
	return &FileStore{dir: dir, ttl: ttl, now: time.Now}, nil
}

// fileEntry is the on-disk form of a blob.
type fileEntry struct {
	Data      []byte    `json:"data"`
	MIMEType  string    `json:"mime_type"`
	Created   time.Time `json:"created"`
	ExpiresAt time.Time `json:"expires_at,omitzero"`
}

// Create writes data under a new URL.
func (s *FileStore) Create(ctx context.Context, data []byte, mimeType string) (string, error) {
	url, id := NewURL()
	entry := fileEntry{Data: data, MIMEType: mimeType, Created: s.now()}
	if s.ttl > 0 {
		entry.ExpiresAt = entry.Created.Add(s.ttl)
	}

	raw, err := json.Marshal(entry)
	if err != nil {
		return "", err
	}
	path := s.path(id)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return "", err
	}

	observability.Blob().OnBlobCreate(ctx, "file", len(data))
	return url, nil
}

// Open reads the blob stored under url. Unreadable and expired entries
// are removed and reported as not found.
func (s *FileStore) Open(ctx context.Context, url string) (*Blob, error) {
	id, ok := ParseURL(url)
	if !ok {
		observability.Blob().OnBlobOpen(ctx, "file", false)
		return nil, notFound(url)
	}

	path := s.path(id)
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		observability.Blob().OnBlobOpen(ctx, "file", false)
		return nil, notFound(url)
	}
	if err != nil {
		return nil, err
	}

	var entry fileEntry
	if err := json.Unmarshal(raw, &entry); err != nil || s.expired(entry) {
		_ = os.Remove(path)
		observability.Blob().OnBlobOpen(ctx, "file", false)
		return nil, notFound(url)
	}

	observability.Blob().OnBlobOpen(ctx, "file", true)
	return &Blob{Data: entry.Data, MIMEType: entry.MIMEType, Created: entry.Created}, nil
}

// Revoke deletes the file behind url.
func (s *FileStore) Revoke(ctx context.Context, url string) error {
	id, ok := ParseURL(url)
	if !ok {
		return nil
	}
	err := os.Remove(s.path(id))
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	observability.Blob().OnBlobRevoke(ctx, "file")
	return nil
}

// Close does nothing; files outlive the store.
func (s *FileStore) Close() error {
	return nil
}

func (s *FileStore) expired(e fileEntry) bool {
	return !e.ExpiresAt.IsZero() && s.now().After(e.ExpiresAt)
}

// path spreads blobs over subdirectories named after the first two
// characters of their id.
func (s *FileStore) path(id string) string {
	return filepath.Join(s.dir, id[:2], id[2:]+".json")
}

// Ensure FileStore implements Store.
var _ Store = (*FileStore)(nil)
