package io

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/matzehuels/radialtext/pkg/blob"
	"github.com/matzehuels/radialtext/pkg/errors"
	"github.com/matzehuels/radialtext/pkg/render/export"
)

// Stdout is the output path that means standard output.
const Stdout = "-"

// DownloadPrefix starts every generated file name.
const DownloadPrefix = "RadialText_"

// DownloadName returns the file name for an image exported at t:
// RadialText_<unix millis>.<ext>.
func DownloadName(f export.Format, t time.Time) string {
	return DownloadPrefix + strconv.FormatInt(t.UnixMilli(), 10) + "." + f.Ext()
}

// ResultBytes returns the encoded image of res. Transient URLs are opened
// in store, which may be nil for other kinds.
func ResultBytes(ctx context.Context, res *export.Result, store blob.Store) ([]byte, error) {
	switch {
	case res == nil:
		return nil, errors.New(errors.ErrCodeInvalidInput, "nil result")
	case res.Blob != nil:
		return res.Blob, nil
	case strings.HasPrefix(res.URL, "data:"):
		return decodeDataURL(res.URL)
	case strings.HasPrefix(res.URL, blob.Scheme):
		if store == nil {
			return nil, errors.New(errors.ErrCodeInvalidInput, "no store to resolve %s", res.URL)
		}
		b, err := store.Open(ctx, res.URL)
		if err != nil {
			return nil, err
		}
		return b.Data, nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidInput, "result has no image data")
	}
}

// WriteResult writes the encoded image of res to w.
func WriteResult(ctx context.Context, w io.Writer, res *export.Result, store blob.Store) error {
	data, err := ResultBytes(ctx, res, store)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}

// ExportResult writes the encoded image of res to a file at path.
func ExportResult(ctx context.Context, path string, res *export.Result, store blob.Store) error {
	if err := errors.ValidatePath(path); err != nil {
		return err
	}
	data, err := ResultBytes(ctx, res, store)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func decodeDataURL(url string) ([]byte, error) {
	meta, payload, ok := strings.Cut(strings.TrimPrefix(url, "data:"), ",")
	if !ok || !strings.HasSuffix(meta, ";base64") {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "not a base64 data URL")
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode data URL")
	}
	return data, nil
}
