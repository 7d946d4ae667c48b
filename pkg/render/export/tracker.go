package export

import (
	"context"
	"sync"

	"github.com/matzehuels/radialtext/pkg/blob"
)

// Tracker holds the most recent transient output URL of an Exporter.
// Registering a URL revokes the one it replaces, so at most one URL per
// Tracker is live.
type Tracker struct {
	mu      sync.Mutex
	store   blob.Store
	current string
}

// NewTracker creates a Tracker revoking through store.
func NewTracker(store blob.Store) *Tracker {
	return &Tracker{store: store}
}

// Register makes url current and revokes the previous URL. The new URL is
// kept even when revoking the old one fails.
func (t *Tracker) Register(ctx context.Context, url string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	prev := t.current
	t.current = url
	if prev == "" || prev == url || t.store == nil {
		return nil
	}
	return t.store.Revoke(ctx, prev)
}

// Peek returns the current URL, or "" when none is registered.
func (t *Tracker) Peek() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.current
}

// Release revokes the current URL and clears the slot.
func (t *Tracker) Release(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	prev := t.current
	t.current = ""
	if prev == "" || t.store == nil {
		return nil
	}
	return t.store.Revoke(ctx, prev)
}
