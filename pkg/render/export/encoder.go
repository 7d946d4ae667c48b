package export

import (
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"math"

	"github.com/gen2brain/webp"
)

// Default qualities used when a request leaves quality unset.
const (
	DefaultJPEGQuality = 0.92
	DefaultWEBPQuality = 0.80
)

// Encoder writes img to w. quality is nil or a value in [0.01, 1].
type Encoder interface {
	Encode(w io.Writer, img image.Image, quality *float64) error
}

// EncoderFunc adapts a function to the Encoder interface.
type EncoderFunc func(w io.Writer, img image.Image, quality *float64) error

// Encode calls f.
func (f EncoderFunc) Encode(w io.Writer, img image.Image, quality *float64) error {
	return f(w, img, quality)
}

// PNGEncoder encodes lossless PNG and ignores quality.
type PNGEncoder struct{}

func (PNGEncoder) Encode(w io.Writer, img image.Image, _ *float64) error {
	enc := png.Encoder{CompressionLevel: png.DefaultCompression}
	return enc.Encode(w, img)
}

// JPEGEncoder encodes baseline JPEG.
type JPEGEncoder struct{}

func (JPEGEncoder) Encode(w io.Writer, img image.Image, quality *float64) error {
	return jpeg.Encode(w, img, &jpeg.Options{Quality: percent(quality, DefaultJPEGQuality)})
}

// WEBPEncoder encodes lossy WEBP through libwebp compiled to WASM.
type WEBPEncoder struct{}

func (WEBPEncoder) Encode(w io.Writer, img image.Image, quality *float64) error {
	return webp.Encode(w, img, webp.Options{Quality: percent(quality, DefaultWEBPQuality)})
}

// DefaultEncoders returns the encoder for every supported format.
func DefaultEncoders() map[Format]Encoder {
	return map[Format]Encoder{
		PNG:  PNGEncoder{},
		JPEG: JPEGEncoder{},
		WEBP: WEBPEncoder{},
	}
}

func percent(quality *float64, def float64) int {
	q := def
	if quality != nil {
		q = *quality
	}
	return int(math.Round(q * 100))
}
