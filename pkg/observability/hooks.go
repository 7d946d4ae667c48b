// Package observability provides hooks for metrics, tracing, and logging.
//
// Hooks let a host instrument radialtext without the library depending on a
// particular backend. The export pipeline, the blob stores and the HTTP
// service emit events through the registered hooks; by default every hook is
// a no-op.
//
// # Usage
//
// Register hooks once at application startup:
//
//	func main() {
//	    observability.SetExportHooks(&myExportHooks{})
//	    observability.SetBlobHooks(&myBlobHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Export().OnExportStart(ctx, "OBJECT_URL", "image/png")
//	// ... run stages ...
//	observability.Export().OnExportComplete(ctx, "OBJECT_URL", "image/png", size, elapsed, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Export Hooks
// =============================================================================

// ExportHooks receives events from the scene export pipeline.
type ExportHooks interface {
	OnExportStart(ctx context.Context, kind, mimeType string)
	OnStageComplete(ctx context.Context, stage string, duration time.Duration, err error)
	OnExportComplete(ctx context.Context, kind, mimeType string, size int, duration time.Duration, err error)
}

// =============================================================================
// Blob Hooks
// =============================================================================

// BlobHooks receives events from transient blob stores.
type BlobHooks interface {
	// OnBlobCreate records a new transient URL.
	OnBlobCreate(ctx context.Context, backend string, size int)

	// OnBlobOpen records a lookup; found is false for unknown or revoked URLs.
	OnBlobOpen(ctx context.Context, backend string, found bool)

	// OnBlobRevoke records a revocation.
	OnBlobRevoke(ctx context.Context, backend string)
}

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events from the HTTP service.
type HTTPHooks interface {
	// OnRequest records an incoming request.
	OnRequest(ctx context.Context, method, path string)

	// OnResponse records a completed response.
	OnResponse(ctx context.Context, method, path string, statusCode int, duration time.Duration)

	// OnError records a request that failed with an error.
	OnError(ctx context.Context, method, path string, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopExportHooks is a no-op implementation of ExportHooks.
type NoopExportHooks struct{}

func (NoopExportHooks) OnExportStart(context.Context, string, string)                 {}
func (NoopExportHooks) OnStageComplete(context.Context, string, time.Duration, error) {}
func (NoopExportHooks) OnExportComplete(context.Context, string, string, int, time.Duration, error) {
}

// NoopBlobHooks is a no-op implementation of BlobHooks.
type NoopBlobHooks struct{}

func (NoopBlobHooks) OnBlobCreate(context.Context, string, int) {}
func (NoopBlobHooks) OnBlobOpen(context.Context, string, bool)  {}
func (NoopBlobHooks) OnBlobRevoke(context.Context, string)      {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, int, time.Duration) {}
func (NoopHTTPHooks) OnError(context.Context, string, string, error)                 {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	exportHooks ExportHooks = NoopExportHooks{}
	blobHooks   BlobHooks   = NoopBlobHooks{}
	httpHooks   HTTPHooks   = NoopHTTPHooks{}
	hooksMu     sync.RWMutex
)

// SetExportHooks registers custom export hooks.
// This should be called once at application startup before any export.
func SetExportHooks(h ExportHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		exportHooks = h
	}
}

// SetBlobHooks registers custom blob store hooks.
func SetBlobHooks(h BlobHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		blobHooks = h
	}
}

// SetHTTPHooks registers custom HTTP hooks.
func SetHTTPHooks(h HTTPHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		httpHooks = h
	}
}

// Export returns the registered export hooks.
func Export() ExportHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return exportHooks
}

// Blob returns the registered blob hooks.
func Blob() BlobHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return blobHooks
}

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return httpHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	exportHooks = NoopExportHooks{}
	blobHooks = NoopBlobHooks{}
	httpHooks = NoopHTTPHooks{}
}
