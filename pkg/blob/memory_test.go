package blob

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/matzehuels/radialtext/pkg/errors"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	defer s.Close()

	data := []byte("\x89PNG")
	url, err := s.Create(ctx, data, "image/png")
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if !strings.HasPrefix(url, Scheme) {
		t.Errorf("url = %q, want prefix %q", url, Scheme)
	}
	if s.Len() != 1 {
		t.Errorf("Len() = %d, want 1", s.Len())
	}

	// Mutating the input must not affect the stored copy
	data[0] = 0

	b, err := s.Open(ctx, url)
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	if !bytes.Equal(b.Data, []byte("\x89PNG")) {
		t.Errorf("Data = %q", b.Data)
	}
	if b.MIMEType != "image/png" {
		t.Errorf("MIMEType = %q, want image/png", b.MIMEType)
	}
	if b.Created.IsZero() {
		t.Error("Created should be set")
	}

	if err := s.Revoke(ctx, url); err != nil {
		t.Fatalf("Revoke() error: %v", err)
	}
	if s.Len() != 0 {
		t.Errorf("Len() after Revoke = %d, want 0", s.Len())
	}
	if _, err := s.Open(ctx, url); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("Open() after Revoke error = %v, want NOT_FOUND", err)
	}

	// Revoking twice or revoking garbage is fine
	if err := s.Revoke(ctx, url); err != nil {
		t.Errorf("second Revoke() error: %v", err)
	}
	if err := s.Revoke(ctx, "not a url"); err != nil {
		t.Errorf("Revoke(garbage) error: %v", err)
	}
}

func TestMemoryStoreDistinctURLs(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	const n = 50
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		seen = map[string]bool{}
	)
	for range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			url, err := s.Create(ctx, []byte("x"), "text/plain")
			if err != nil {
				t.Error(err)
				return
			}
			mu.Lock()
			seen[url] = true
			mu.Unlock()
		}()
	}
	wg.Wait()

	if len(seen) != n || s.Len() != n {
		t.Errorf("distinct urls = %d, Len() = %d, want %d", len(seen), s.Len(), n)
	}

	s.Close()
	if s.Len() != 0 {
		t.Errorf("Len() after Close = %d, want 0", s.Len())
	}
}

func TestParseURL(t *testing.T) {
	url, id := NewURL()
	if got := URLFor(id); got != url {
		t.Errorf("URLFor(%q) = %q, want %q", id, got, url)
	}

	tests := []struct {
		name   string
		input  string
		want   string
		wantOK bool
	}{
		{"generated", url, id, true},
		{"canonical", "blob:radialtext/6ba7b810-9dad-11d1-80b4-00c04fd430c8", "6ba7b810-9dad-11d1-80b4-00c04fd430c8", true},
		{"wrong scheme", "blob:other/6ba7b810-9dad-11d1-80b4-00c04fd430c8", "", false},
		{"data url", "data:image/png;base64,AAAA", "", false},
		{"bad id", "blob:radialtext/../../etc/passwd", "", false},
		{"empty", "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseURL(tt.input)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("ParseURL(%q) = %q, %v, want %q, %v", tt.input, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}
