// Package raster turns scene snapshots into decoded images.
//
// [Rasterizer.Rasterize] measures a snapshot, pins its viewBox to the
// measured box, serializes it into a transient SVG source in a blob store
// and decodes that source into pixels of the box's size. The source is
// released when decoding fails or when the caller releases the result.
//
//	r := raster.New(store, raster.WithLogger(logger))
//	decoded, err := r.Rasterize(ctx, snap, raster.Constraints{Opaque: true})
//	if err != nil {
//	    return err
//	}
//	defer decoded.Release(ctx)
package raster

import (
	"bytes"
	"context"
	"image"
	"io"
	"math"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/radialtext/pkg/blob"
	"github.com/matzehuels/radialtext/pkg/errors"
	"github.com/matzehuels/radialtext/pkg/scene"
)

// SourceMIMEType is the MIME type of the serialized snapshot.
const SourceMIMEType = "image/svg+xml;charset=utf-8"

// Surface limits. Larger boxes fail with ErrCodeOversize before anything
// is allocated. The values match common browser canvas limits.
const (
	MaxSurfaceDim    = 32767
	MaxSurfacePixels = 1 << 28
)

// OpaqueBackground is painted behind scenes headed for formats without an
// alpha channel.
const OpaqueBackground = "#FFFFFF"

// Constraints describe the target of a rasterization.
type Constraints struct {
	// Opaque is set when the output format cannot store transparency.
	Opaque bool
}

// Decoded is a rasterized snapshot.
type Decoded struct {
	Image  image.Image
	Box    scene.Rect
	Width  int
	Height int
	Source string

	once    sync.Once
	release func(context.Context) error
	err     error
}

// Release revokes the transient SVG source. It is safe to call more than
// once; later calls return the first call's result.
func (d *Decoded) Release(ctx context.Context) error {
	d.once.Do(func() {
		if d.release != nil {
			d.err = d.release(ctx)
		}
	})
	return d.err
}

// Rasterizer decodes snapshots through a blob store.
type Rasterizer struct {
	store   blob.Store
	decoder Decoder
	logger  *log.Logger
}

// Option configures a Rasterizer.
type Option func(*Rasterizer)

// WithDecoder replaces the default SVGDecoder.
func WithDecoder(d Decoder) Option {
	return func(r *Rasterizer) {
		if d != nil {
			r.decoder = d
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(r *Rasterizer) {
		if l != nil {
			r.logger = l
		}
	}
}

// New creates a Rasterizer that keeps its transient sources in store.
func New(store blob.Store, opts ...Option) *Rasterizer {
	r := &Rasterizer{
		store:   store,
		decoder: SVGDecoder{},
		logger:  log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Rasterize decodes snap into an image covering its bounding box.
//
// snap is modified: it receives the opaque background fallback when needed
// and a viewBox equal to its box. Pass a snapshot, never a live scene.
// Decode failures are reported as ErrCodeDecode after the transient source
// has been revoked.
func (r *Rasterizer) Rasterize(ctx context.Context, snap *scene.Element, c Constraints) (*Decoded, error) {
	if r.store == nil {
		return nil, errors.Unsupported("no blob store for transient sources")
	}
	if snap == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "nil snapshot")
	}

	if c.Opaque && background(snap) == "" {
		snap.Style.Set("background", OpaqueBackground)
	}

	box, err := Measure(snap)
	if err != nil {
		return nil, errors.Decode(err)
	}
	if !fits(box) {
		r.logger.Debug("surface too large", "box", box.ViewBox())
		return nil, errors.Oversize()
	}
	snap.SetAttr("viewBox", box.ViewBox())
	width, height := box.PixelSize()

	var buf bytes.Buffer
	if err := scene.Marshal(&buf, snap); err != nil {
		return nil, errors.Decode(err)
	}
	src, err := r.store.Create(ctx, buf.Bytes(), SourceMIMEType)
	if err != nil {
		return nil, err
	}
	release := func(ctx context.Context) error { return r.store.Revoke(ctx, src) }

	img, err := r.decode(ctx, src, width, height)
	if err != nil {
		if rerr := release(ctx); rerr != nil {
			r.logger.Warn("failed to release source", "url", src, "err", rerr)
		}
		r.logger.Debug("decode failed", "url", src, "err", err)
		return nil, errors.Decode(err)
	}

	r.logger.Debug("rasterized snapshot", "box", box.ViewBox(), "width", width, "height", height)
	return &Decoded{
		Image:   img,
		Box:     box,
		Width:   width,
		Height:  height,
		Source:  src,
		release: release,
	}, nil
}

// fits reports whether a surface covering box stays within the limits.
// NaN and infinite sizes never fit.
func fits(box scene.Rect) bool {
	w, h := math.Ceil(box.Width), math.Ceil(box.Height)
	if !(w <= MaxSurfaceDim && h <= MaxSurfaceDim) {
		return false
	}
	return math.Max(w, 0)*math.Max(h, 0) <= MaxSurfacePixels
}

func (r *Rasterizer) decode(ctx context.Context, src string, width, height int) (image.Image, error) {
	b, err := r.store.Open(ctx, src)
	if err != nil {
		return nil, err
	}
	return r.decoder.Decode(bytes.NewReader(b.Data), width, height)
}
