// Package blob provides transient URL storage for rendered images.
//
// A [Store] turns bytes into a short-lived URL, resolves URLs back to bytes
// and revokes them. URLs have the form "blob:radialtext/<uuid>" and stay
// valid until revoked or until the backend's TTL expires.
//
// # Backends
//
//   - [MemoryStore]: mutex-guarded map, used by the CLI and single-process servers
//   - [RedisStore]: hash per blob with a TTL, shared by several server instances
//   - [FileStore]: JSON file per blob, kept across restarts
//
// All backends report create/open/revoke events through
// observability.Blob().
package blob

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/radialtext/pkg/errors"
)

// Scheme is the URL prefix of every transient URL.
const Scheme = "blob:radialtext/"

// Blob is the data behind a transient URL.
type Blob struct {
	Data     []byte
	MIMEType string
	Created  time.Time
}

// Store creates, resolves and revokes transient URLs.
type Store interface {
	// Create stores data and returns a new URL for it.
	Create(ctx context.Context, data []byte, mimeType string) (string, error)

	// Open returns the blob behind url. Unknown and revoked URLs fail with
	// an ErrCodeNotFound error.
	Open(ctx context.Context, url string) (*Blob, error)

	// Revoke invalidates url. Revoking an unknown URL is not an error.
	Revoke(ctx context.Context, url string) error

	// Close releases backend resources.
	Close() error
}

// NewURL returns a fresh transient URL and its id.
func NewURL() (url, id string) {
	id = uuid.NewString()
	return Scheme + id, id
}

// ParseURL extracts the id from a transient URL.
func ParseURL(url string) (id string, ok bool) {
	id, ok = strings.CutPrefix(url, Scheme)
	if !ok || errors.ValidateBlobID(id) != nil {
		return "", false
	}
	return id, true
}

// URLFor returns the transient URL for an id.
func URLFor(id string) string {
	return Scheme + id
}

func notFound(url string) error {
	return errors.New(errors.ErrCodeNotFound, "blob %s not found", url)
}
