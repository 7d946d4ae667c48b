package scene

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Rect is an axis-aligned box in user units.
type Rect struct {
	X, Y, Width, Height float64
}

// Empty reports whether r has no area.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Union returns the smallest box containing r and o. A zero Rect acts as
// the identity so boxes can be accumulated from Rect{}.
func (r Rect) Union(o Rect) Rect {
	if r == (Rect{}) {
		return o
	}
	if o == (Rect{}) {
		return r
	}
	x0 := math.Min(r.X, o.X)
	y0 := math.Min(r.Y, o.Y)
	x1 := math.Max(r.X+r.Width, o.X+o.Width)
	y1 := math.Max(r.Y+r.Height, o.Y+o.Height)
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// PixelSize returns the output raster size covering r.
func (r Rect) PixelSize() (w, h int) {
	return int(math.Ceil(math.Max(r.Width, 0))), int(math.Ceil(math.Max(r.Height, 0)))
}

// ViewBox renders r as a viewBox attribute value.
func (r Rect) ViewBox() string {
	return FormatNumber(r.X) + " " + FormatNumber(r.Y) + " " +
		FormatNumber(r.Width) + " " + FormatNumber(r.Height)
}

// ParseViewBox parses a viewBox attribute value.
func ParseViewBox(s string) (Rect, error) {
	fields := argSplitRe.Split(strings.TrimSpace(s), -1)
	if len(fields) != 4 {
		return Rect{}, fmt.Errorf("viewBox: want 4 numbers, got %q", s)
	}
	var v [4]float64
	for i, f := range fields {
		n, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return Rect{}, fmt.Errorf("viewBox: %w", err)
		}
		v[i] = n
	}
	if v[2] < 0 || v[3] < 0 {
		return Rect{}, fmt.Errorf("viewBox: negative size in %q", s)
	}
	return Rect{X: v[0], Y: v[1], Width: v[2], Height: v[3]}, nil
}
