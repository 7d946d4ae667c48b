// Package render groups the stages that turn a radial text scene into an
// image.
//
//   - [snapshot]: detached, self-contained copy of the live scene
//   - [raster]: bounding box measurement and SVG decoding into pixels
//   - [export]: PNG, JPEG and WEBP encoding into data URLs, transient
//     URLs or raw bytes
//
// Most callers only need [export.Exporter], which runs the other stages:
//
//	exp := export.New(blob.NewMemoryStore())
//	res, err := exp.Export(ctx, export.Request{Scene: live, Kind: export.EmbeddedURL})
//
// [snapshot]: github.com/matzehuels/radialtext/pkg/render/snapshot
// [raster]: github.com/matzehuels/radialtext/pkg/render/raster
// [export]: github.com/matzehuels/radialtext/pkg/render/export
// [export.Exporter]: github.com/matzehuels/radialtext/pkg/render/export.Exporter
package render
