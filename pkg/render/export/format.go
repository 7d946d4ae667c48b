package export

import (
	"math"
	"regexp"
	"strings"
)

// Format is an output image format.
type Format string

// Supported formats. The zero Format encodes as PNG.
const (
	PNG  Format = "png"
	JPEG Format = "jpeg"
	WEBP Format = "webp"
)

var formatRe = regexp.MustCompile(`(?i)^(png|jpe?g|webp)$`)

// ParseFormat matches s case-insensitively against png, jpg, jpeg and
// webp. jpg maps to JPEG; anything else is PNG.
func ParseFormat(s string) Format {
	m := formatRe.FindStringSubmatch(s)
	if m == nil {
		return PNG
	}
	switch v := strings.ToLower(m[1]); v {
	case "jpg", "jpeg":
		return JPEG
	default:
		return Format(v)
	}
}

// UnmarshalText normalizes text with ParseFormat.
func (f *Format) UnmarshalText(text []byte) error {
	*f = ParseFormat(string(text))
	return nil
}

// MIMEType returns the image MIME type of f.
func (f Format) MIMEType() string {
	return "image/" + string(f.normalize())
}

// Ext returns the file extension for downloads of f.
func (f Format) Ext() string {
	if f.normalize() == JPEG {
		return "jpg"
	}
	return string(f.normalize())
}

// Opaque reports whether f has no alpha channel.
func (f Format) Opaque() bool {
	return f.normalize() == JPEG
}

func (f Format) normalize() Format {
	return ParseFormat(string(f))
}

// Kind selects the shape of an export result.
type Kind int

const (
	// TransientURL is a blob URL that stays valid until the next
	// TransientURL export of the same Exporter.
	TransientURL Kind = iota
	// EmbeddedURL is a self-contained base64 data URL.
	EmbeddedURL
	// RawBlob is the encoded bytes.
	RawBlob
)

var kindNames = map[Kind]string{
	TransientURL: "OBJECT_URL",
	EmbeddedURL:  "DATA_URL",
	RawBlob:      "BLOB",
}

var kindRe = regexp.MustCompile(`(?i)^(?:(?:DATA|OBJECT)_URL|BLOB)$`)

// ParseKind parses a wire name (DATA_URL, OBJECT_URL or BLOB, any case).
// Unrecognized names select TransientURL.
func ParseKind(s string) Kind {
	if !kindRe.MatchString(s) {
		return TransientURL
	}
	switch strings.ToUpper(s) {
	case "DATA_URL":
		return EmbeddedURL
	case "BLOB":
		return RawBlob
	default:
		return TransientURL
	}
}

// String returns the wire name of k.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return kindNames[TransientURL]
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	*k = ParseKind(string(text))
	return nil
}

// NormalizeQuality returns the encoder quality in [0.01, 1] for q, or nil
// when the encoder default applies. q is truncated to an integer and
// clamped to [1, 100]. PNG ignores quality, and NaN or infinite values
// count as unset.
func NormalizeQuality(f Format, q *float64) *float64 {
	if q == nil || f.normalize() == PNG {
		return nil
	}
	v := *q
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	v = math.Min(math.Max(math.Trunc(v), 1), 100) / 100
	return &v
}
