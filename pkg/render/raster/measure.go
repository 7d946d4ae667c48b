package raster

import (
	"math"
	"strings"

	"github.com/fogleman/gg"

	"github.com/matzehuels/radialtext/pkg/scene"
)

// MeasureFunc adapts a function to the radial.Measurer interface.
type MeasureFunc func(el *scene.Element) (scene.Rect, error)

// Measure calls f.
func (f MeasureFunc) Measure(el *scene.Element) (scene.Rect, error) { return f(el) }

// TextMeasurer measures scenes with the embedded fonts.
var TextMeasurer = MeasureFunc(Measure)

// Measure returns the bounding box of everything el renders, in el's own
// user space: children's transforms are applied, el's own is not. Text is
// measured with the same faces and anchoring the decoder draws with.
// Elements that render nothing yield a zero Rect.
func Measure(el *scene.Element) (scene.Rect, error) {
	if el == nil {
		return scene.Rect{}, nil
	}
	w := newWalker(gg.NewContext(1, 1))
	defer w.close()

	var b bounds
	p := defaultPresentation().inherit(el)
	leaf := func(child *scene.Element, p presentation) error {
		switch child.Name {
		case "text":
			if strings.TrimSpace(child.Text) == "" {
				return nil
			}
			face, err := w.face(p)
			if err != nil {
				return err
			}
			w.dc.SetFontFace(face)
			b.addBox(w.dc, w.layoutText(child, p, face).box)
		case "rect":
			if r := rectBox(child); !r.Empty() {
				b.addBox(w.dc, r)
			}
		}
		return nil
	}

	var err error
	switch el.Name {
	case "text", "rect":
		err = leaf(el, p)
	default:
		err = w.walk(el, p, leaf)
	}
	if err != nil {
		return scene.Rect{}, err
	}
	return b.rect(), nil
}

// bounds accumulates device-space points.
type bounds struct {
	have                   bool
	minX, minY, maxX, maxY float64
}

func (b *bounds) addBox(dc *gg.Context, r scene.Rect) {
	corners := [4][2]float64{
		{r.X, r.Y},
		{r.X + r.Width, r.Y},
		{r.X, r.Y + r.Height},
		{r.X + r.Width, r.Y + r.Height},
	}
	for _, c := range corners {
		x, y := dc.TransformPoint(c[0], c[1])
		b.add(x, y)
	}
}

func (b *bounds) add(x, y float64) {
	if !b.have {
		b.minX, b.maxX, b.minY, b.maxY = x, x, y, y
		b.have = true
		return
	}
	b.minX = math.Min(b.minX, x)
	b.maxX = math.Max(b.maxX, x)
	b.minY = math.Min(b.minY, y)
	b.maxY = math.Max(b.maxY, y)
}

func (b *bounds) rect() scene.Rect {
	if !b.have {
		return scene.Rect{}
	}
	return scene.Rect{X: b.minX, Y: b.minY, Width: b.maxX - b.minX, Height: b.maxY - b.minY}
}
