// Package fonts provides the embedded font family used to measure and
// rasterize scene text.
//
// The Go font family from golang.org/x/image is compiled into the binary,
// so rendering never depends on fonts installed on the host. Parsed fonts
// are cached; faces are created per call because an opentype face is not
// safe for concurrent use.
package fonts

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// Family is the CSS font-family name of the embedded font.
const Family = "Go"

// FallbackFamily is the font-family list written onto exported scenes.
const FallbackFamily = `Go, "Go Regular", sans-serif`

// DefaultSize is the font size, in pixels, used when none is given.
const DefaultSize = 16

// Variant selects one of the embedded font files.
type Variant int

const (
	Regular Variant = iota
	Bold
	Italic
	BoldItalic
)

func (v Variant) String() string {
	switch v {
	case Bold:
		return "bold"
	case Italic:
		return "italic"
	case BoldItalic:
		return "bold-italic"
	default:
		return "regular"
	}
}

// VariantFor maps CSS font-weight and font-style values to a variant.
// Numeric weights of 600 and above, "bold" and "bolder" select the bold
// files; "italic" and "oblique" select the italic ones.
func VariantFor(weight, style string) Variant {
	bold := false
	switch w := strings.ToLower(strings.TrimSpace(weight)); w {
	case "bold", "bolder":
		bold = true
	default:
		if n, err := strconv.Atoi(w); err == nil && n >= 600 {
			bold = true
		}
	}
	italic := false
	switch strings.ToLower(strings.TrimSpace(style)) {
	case "italic", "oblique":
		italic = true
	}

	switch {
	case bold && italic:
		return BoldItalic
	case bold:
		return Bold
	case italic:
		return Italic
	default:
		return Regular
	}
}

var ttf = map[Variant][]byte{
	Regular:    goregular.TTF,
	Bold:       gobold.TTF,
	Italic:     goitalic.TTF,
	BoldItalic: gobolditalic.TTF,
}

// Cache for parsed fonts (parsed once per variant on first access).
var (
	parsedMu sync.Mutex
	parsed   = map[Variant]*opentype.Font{}
)

// Font returns the parsed font for a variant.
func Font(v Variant) (*opentype.Font, error) {
	parsedMu.Lock()
	defer parsedMu.Unlock()

	if f, ok := parsed[v]; ok {
		return f, nil
	}
	data, ok := ttf[v]
	if !ok {
		return nil, fmt.Errorf("fonts: unknown variant %d", v)
	}
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("fonts: parse %s: %w", v, err)
	}
	parsed[v] = f
	return f, nil
}

// NewFace returns a face for the given variant and pixel size.
// The caller owns the face and should Close it when done.
func NewFace(v Variant, size float64) (font.Face, error) {
	if size <= 0 {
		size = DefaultSize
	}
	f, err := Font(v)
	if err != nil {
		return nil, err
	}
	return opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
}
