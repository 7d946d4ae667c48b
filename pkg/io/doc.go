// Package io reads radial text input and writes exported images.
//
// # Import
//
// Text lines come from any io.Reader or a file path; "-" means stdin:
//
//	text, err := io.ImportText("lines.txt")
//
// Input is bounded by errors.MaxTextLength and must not contain control
// characters other than line breaks and tabs.
//
// # Export
//
// [WriteResult] writes the bytes of an export result, whatever its kind:
// raw blobs as is, data URLs decoded, and transient URLs resolved through
// the blob store that issued them.
//
//	name := io.DownloadName(res.Format, time.Now())  // RadialText_1700000000000.png
//	err := io.ExportResult(ctx, name, res, store)
package io
