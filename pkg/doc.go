// Package pkg provides the core libraries for radialtext.
//
// # Overview
//
// radialtext arranges lines of text around a center point, each line
// rotated by an equal share of a full turn, and exports the result as a
// PNG, JPEG or WEBP image. The pkg directory is organized into four areas:
//
//  1. [radial] and [scene] - Domain logic (settings, layout, the SVG scene)
//  2. [render] - Export pipeline (snapshot, rasterize, encode, publish)
//  3. [blob] and [io] - Output (transient URLs, files, data URLs)
//  4. [server] - HTTP service for previews and exports
//
// # Architecture
//
// The typical data flow:
//
//	Settings (text lines, font, colors)
//	         ↓
//	    [radial] package (normalize, build the live scene, fit the viewport)
//	         ↓
//	    [render/snapshot] package (detached copy at natural size)
//	         ↓
//	    [render/raster] package (measure, serialize, decode into pixels)
//	         ↓
//	    [render/export] package (encode and publish)
//	         ↓
//	Data URL, transient URL or raw bytes
//
// # Quick Start
//
// Export three lines as a PNG data URL:
//
//	import (
//	    "context"
//	    "github.com/matzehuels/radialtext/pkg/blob"
//	    "github.com/matzehuels/radialtext/pkg/radial"
//	    "github.com/matzehuels/radialtext/pkg/render/export"
//	)
//
//	cfg := radial.Normalize(radial.Settings{TextLines: "one\ntwo\nthree"})
//	live := radial.Build(cfg)
//
//	exp := export.New(blob.NewMemoryStore())
//	res, err := exp.Export(context.Background(), export.Request{
//	    Scene: live,
//	    Kind:  export.EmbeddedURL,
//	})
//	// res.URL == "data:image/png;base64,..."
//
// # Main Packages
//
// [radial] - Settings normalization, line angles and colors, scene
// construction, viewport fitting and export size estimation.
//
// [scene] - Minimal SVG element tree with styles, transforms, colors and
// XML (de)serialization.
//
// [render/raster] - Text measurement with the bundled fonts and the SVG
// decoder that paints the subset of SVG the scenes use.
//
// [render/export] - Formats, quality normalization, encoders and the
// [export.Exporter] that ties the stages together.
//
// [blob] - Transient URL stores: memory, Redis and files.
//
// [errors] - Coded errors, including the three export failures whose
// messages are shown to users verbatim.
//
// [observability] - Hooks for export stages, blob events and HTTP requests.
//
// [radial]: github.com/matzehuels/radialtext/pkg/radial
// [scene]: github.com/matzehuels/radialtext/pkg/scene
// [render]: github.com/matzehuels/radialtext/pkg/render
// [render/snapshot]: github.com/matzehuels/radialtext/pkg/render/snapshot
// [render/raster]: github.com/matzehuels/radialtext/pkg/render/raster
// [render/export]: github.com/matzehuels/radialtext/pkg/render/export
// [export.Exporter]: github.com/matzehuels/radialtext/pkg/render/export.Exporter
// [blob]: github.com/matzehuels/radialtext/pkg/blob
// [io]: github.com/matzehuels/radialtext/pkg/io
// [server]: github.com/matzehuels/radialtext/pkg/server
// [errors]: github.com/matzehuels/radialtext/pkg/errors
// [observability]: github.com/matzehuels/radialtext/pkg/observability
package pkg
