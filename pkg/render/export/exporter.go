// Package export encodes radial text scenes into PNG, JPEG or WEBP images.
//
// # Pipeline
//
// [Exporter.Export] runs a fixed sequence of stages. Each stage either
// succeeds and hands its output to the next, or fails and runs the cleanups
// registered by the stages before it:
//
//  1. snapshot: detached copy of the live scene ([snapshot.Build])
//  2. rasterize: measured and decoded pixels ([raster.Rasterizer])
//  3. draw: copy onto a surface of the box size, release the SVG source
//  4. encode: data URL or bytes in the requested format
//  5. publish: transient URL through the [Tracker], or raw bytes
//
// # Output Kinds
//
//   - [EmbeddedURL]: "data:image/png;base64,..."
//   - [TransientURL]: "blob:radialtext/<uuid>", valid until the next
//     TransientURL export of the same Exporter
//   - [RawBlob]: the encoded bytes
//
// # Usage
//
//	store := blob.NewMemoryStore()
//	exp := export.New(store, export.WithLogger(logger))
//	res, err := exp.Export(ctx, export.Request{
//	    Scene:  live,
//	    Kind:   export.EmbeddedURL,
//	    Format: export.ParseFormat("jpg"),
//	})
//	if err != nil {
//	    fmt.Println(errors.UserMessage(err))
//	}
//
// [snapshot.Build]: github.com/matzehuels/radialtext/pkg/render/snapshot.Build
package export

import (
	"bytes"
	"context"
	"encoding/base64"
	"image"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/image/draw"

	"github.com/matzehuels/radialtext/pkg/blob"
	"github.com/matzehuels/radialtext/pkg/errors"
	"github.com/matzehuels/radialtext/pkg/fonts"
	"github.com/matzehuels/radialtext/pkg/observability"
	"github.com/matzehuels/radialtext/pkg/render/raster"
	"github.com/matzehuels/radialtext/pkg/render/snapshot"
	"github.com/matzehuels/radialtext/pkg/scene"
)

// minEmbeddedLength is the shortest data URL accepted as a real image.
// Shorter output ("data:,") means the surface could not be encoded.
const minEmbeddedLength = 10

// =============================================================================
// Request and Result
// =============================================================================

// Request describes one export. The Scene is read, never modified.
type Request struct {
	Scene   *scene.Element
	Kind    Kind
	Format  Format
	Quality *float64 // (0, 100]; ignored for PNG
}

// Result is the output of a successful export. URL is set unless Kind is
// RawBlob, in which case Blob holds the encoded bytes.
type Result struct {
	URL      string
	Blob     []byte
	Width    int
	Height   int
	MIMEType string
	Format   Format
}

// =============================================================================
// Exporter
// =============================================================================

// Rasterizer turns a snapshot into pixels. *raster.Rasterizer implements it.
type Rasterizer interface {
	Rasterize(ctx context.Context, snap *scene.Element, c raster.Constraints) (*raster.Decoded, error)
}

// Exporter runs the export pipeline. It is safe for concurrent use; the
// only state shared between calls is its Tracker.
type Exporter struct {
	store      blob.Store
	rasterizer Rasterizer
	tracker    *Tracker
	encoders   map[Format]Encoder
	inherited  snapshot.Inherited
	logger     *log.Logger
}

// Option configures an Exporter.
type Option func(*Exporter)

// WithEncoder replaces the encoder for f.
func WithEncoder(f Format, e Encoder) Option {
	return func(x *Exporter) {
		if e != nil {
			x.encoders[f.normalize()] = e
		}
	}
}

// WithTracker sets the tracker for transient URLs. It must revoke through
// the same store the Exporter creates URLs in.
func WithTracker(t *Tracker) Option {
	return func(x *Exporter) {
		if t != nil {
			x.tracker = t
		}
	}
}

// WithRasterizer replaces the default rasterizer.
func WithRasterizer(r Rasterizer) Option {
	return func(x *Exporter) { x.rasterizer = r }
}

// WithInherited sets the presentation properties written onto snapshots.
// The default font family is the embedded Go font.
func WithInherited(in snapshot.Inherited) Option {
	return func(x *Exporter) { x.inherited = in }
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(x *Exporter) {
		if l != nil {
			x.logger = l
		}
	}
}

// New creates an Exporter publishing through store. A nil store yields an
// Exporter whose every call fails with ErrCodeUnsupported.
func New(store blob.Store, opts ...Option) *Exporter {
	x := &Exporter{
		store:     store,
		encoders:  DefaultEncoders(),
		inherited: snapshot.Inherited{FontFamily: fonts.FallbackFamily},
		logger:    log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(x)
	}
	if x.rasterizer == nil && store != nil {
		x.rasterizer = raster.New(store, raster.WithLogger(x.logger))
	}
	if x.tracker == nil {
		x.tracker = NewTracker(store)
	}
	return x
}

// Tracker returns the tracker holding the Exporter's transient URL.
func (x *Exporter) Tracker() *Tracker {
	return x.tracker
}

// =============================================================================
// Pipeline
// =============================================================================

// run is the state carried through the stages of one export.
type run struct {
	req     Request
	format  Format
	quality *float64

	snap     *scene.Element
	decoded  *raster.Decoded
	surface  *image.RGBA
	url      string
	data     []byte
	cleanups []func(context.Context)
}

type stage struct {
	name string
	fn   func(context.Context, *run) error
}

func (x *Exporter) stages() []stage {
	return []stage{
		{"snapshot", x.snapshot},
		{"rasterize", x.rasterize},
		{"draw", x.draw},
		{"encode", x.encode},
		{"publish", x.publish},
	}
}

// Export runs the pipeline for req.
//
// Failures carry one of the codes ErrCodeDecode, ErrCodeOversize,
// ErrCodeUnsupported or ErrCodeEncode; errors.UserMessage returns the text
// to show the user. Blob store failures keep their own codes.
func (x *Exporter) Export(ctx context.Context, req Request) (*Result, error) {
	format := req.Format.normalize()
	r := &run{req: req, format: format, quality: NormalizeQuality(format, req.Quality)}

	hooks := observability.Export()
	start := time.Now()
	hooks.OnExportStart(ctx, req.Kind.String(), format.MIMEType())

	res, err := x.execute(ctx, r)

	size := len(r.data)
	hooks.OnExportComplete(ctx, req.Kind.String(), format.MIMEType(), size, time.Since(start), err)
	if err != nil {
		x.logger.Debug("export failed", "kind", req.Kind, "format", format, "err", err)
		return nil, err
	}
	x.logger.Info("exported image",
		"kind", req.Kind,
		"format", format,
		"width", res.Width,
		"height", res.Height,
		"bytes", size,
		"duration", time.Since(start))
	return res, nil
}

func (x *Exporter) execute(ctx context.Context, r *run) (*Result, error) {
	if x.store == nil || x.rasterizer == nil {
		return nil, errors.Unsupported("no blob store or rasterizer configured")
	}
	if r.req.Scene == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "nil scene")
	}

	hooks := observability.Export()
	for _, s := range x.stages() {
		start := time.Now()
		err := s.fn(ctx, r)
		hooks.OnStageComplete(ctx, s.name, time.Since(start), err)
		if err != nil {
			r.cleanup(ctx)
			return nil, err
		}
	}

	res := &Result{
		Width:    r.decoded.Width,
		Height:   r.decoded.Height,
		MIMEType: r.format.MIMEType(),
		Format:   r.format,
	}
	if r.req.Kind == RawBlob {
		res.Blob = r.data
	} else {
		res.URL = r.url
	}
	return res, nil
}

// cleanup runs the registered cleanups in reverse order.
func (r *run) cleanup(ctx context.Context) {
	for i := len(r.cleanups) - 1; i >= 0; i-- {
		r.cleanups[i](ctx)
	}
	r.cleanups = nil
}

func (x *Exporter) snapshot(_ context.Context, r *run) error {
	r.snap = snapshot.Build(r.req.Scene, x.inherited)
	return nil
}

func (x *Exporter) rasterize(ctx context.Context, r *run) error {
	d, err := x.rasterizer.Rasterize(ctx, r.snap, raster.Constraints{Opaque: r.format.Opaque()})
	if err != nil {
		return err
	}
	r.decoded = d
	r.cleanups = append(r.cleanups, func(ctx context.Context) { x.release(ctx, d) })
	return nil
}

func (x *Exporter) draw(ctx context.Context, r *run) error {
	d := r.decoded
	r.surface = image.NewRGBA(image.Rect(0, 0, d.Width, d.Height))
	if d.Image != nil {
		draw.Copy(r.surface, image.Point{}, d.Image, d.Image.Bounds(), draw.Over, nil)
	}
	x.release(ctx, d)
	return nil
}

func (x *Exporter) encode(_ context.Context, r *run) error {
	data, err := x.encodeSurface(r)
	if err != nil {
		return err
	}

	if r.req.Kind != EmbeddedURL {
		if len(data) == 0 {
			return errors.Oversize()
		}
		r.data = data
		return nil
	}

	url := "data:,"
	if len(data) > 0 {
		url = "data:" + r.format.MIMEType() + ";base64," + base64.StdEncoding.EncodeToString(data)
	}
	if len(url) < minEmbeddedLength {
		return errors.Oversize()
	}
	r.data = data
	r.url = url
	return nil
}

// encodeSurface encodes the surface. A surface without area has no
// encoding and yields nil.
func (x *Exporter) encodeSurface(r *run) ([]byte, error) {
	if r.surface.Bounds().Empty() {
		return nil, nil
	}
	enc, ok := x.encoders[r.format]
	if !ok {
		return nil, errors.New(errors.ErrCodeEncode, "no encoder for %s", r.format)
	}
	var buf bytes.Buffer
	if err := enc.Encode(&buf, r.surface, r.quality); err != nil {
		return nil, errors.Wrap(errors.ErrCodeEncode, err, "encode %s", r.format)
	}
	return buf.Bytes(), nil
}

func (x *Exporter) publish(ctx context.Context, r *run) error {
	if r.req.Kind != TransientURL {
		return nil
	}
	url, err := x.store.Create(ctx, r.data, r.format.MIMEType())
	if err != nil {
		return err
	}
	if err := x.tracker.Register(ctx, url); err != nil {
		x.logger.Warn("failed to revoke previous output", "err", err)
	}
	r.url = url
	return nil
}

func (x *Exporter) release(ctx context.Context, d *raster.Decoded) {
	if err := d.Release(ctx); err != nil {
		x.logger.Warn("failed to release source", "url", d.Source, "err", err)
	}
}
