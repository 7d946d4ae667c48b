// Package server exposes radial text previews and exports over HTTP.
//
// # Routes
//
//	GET  /healthz       liveness probe, responds "ok"
//	POST /api/preview   fitted live scene as SVG
//	POST /api/export    exported image as JSON metadata or raw bytes
//	GET  /blobs/{id}    transient image behind an OBJECT_URL result
//
// All handlers share one [export.Exporter], so at most one transient image
// is live per server: an OBJECT_URL export revokes the previous one and its
// /blobs URL starts answering 404.
//
// # Errors
//
// Failures are JSON objects carrying the error code and the user-facing
// message:
//
//	{"code": "OVERSIZE", "error": "The image may be too large, please try reducing its dimentions."}
//
// Bad input maps to 400, unknown blobs to 404 and export pipeline failures
// to 422.
package server

import (
	"context"
	stderrors "errors"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/radialtext/pkg/blob"
	"github.com/matzehuels/radialtext/pkg/buildinfo"
	"github.com/matzehuels/radialtext/pkg/radial"
	"github.com/matzehuels/radialtext/pkg/render/export"
	"github.com/matzehuels/radialtext/pkg/render/raster"
)

// Defaults for server options.
const (
	DefaultTimeout      = 30 * time.Second
	DefaultMaxBodyBytes = 1 << 20
	DefaultQuality      = 100
)

// DefaultViewport is used by previews that do not send a viewport.
var DefaultViewport = radial.Viewport{Width: 800, Height: 600}

// Server handles HTTP requests for one blob store.
type Server struct {
	store    blob.Store
	exporter *export.Exporter
	measurer radial.Measurer
	logger   *log.Logger
	timeout  time.Duration
	maxBody  int64
	now      func() time.Time
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger for requests and exports.
func WithLogger(l *log.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithTimeout bounds the handling time of each request.
func WithTimeout(d time.Duration) Option {
	return func(s *Server) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithMaxBodyBytes limits request body sizes.
func WithMaxBodyBytes(n int64) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxBody = n
		}
	}
}

// New creates a Server whose transient images live in store.
func New(store blob.Store, opts ...Option) *Server {
	s := &Server{
		store:    store,
		measurer: raster.TextMeasurer,
		logger:   log.New(io.Discard),
		timeout:  DefaultTimeout,
		maxBody:  DefaultMaxBodyBytes,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.exporter = export.New(store, export.WithLogger(s.logger))
	return s
}

// Handler returns the router serving all routes.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(middleware.SetHeader("Server", buildinfo.ServerHeader()))
	r.Use(middleware.RealIP)
	r.Use(s.observe)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.timeout))

	r.Get("/healthz", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Post("/preview", s.handlePreview)
		r.Post("/export", s.handleExport)
	})
	r.Get("/blobs/{id}", s.handleBlob)
	return r
}

// ListenAndServe serves on addr until ctx is done, then shuts down and
// revokes the live transient image.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if stderrors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := s.exporter.Tracker().Release(shutdownCtx); err != nil {
		s.logger.Warn("failed to revoke transient image", "err", err)
	}
	s.logger.Info("server stopped")
	return nil
}
