package raster

import (
	"fmt"
	"image"
	"io"
	"math"

	"github.com/fogleman/gg"

	"github.com/matzehuels/radialtext/pkg/scene"
)

// Decoder turns a serialized scene into pixels of the given size.
type Decoder interface {
	Decode(src io.Reader, width, height int) (image.Image, error)
}

// SVGDecoder renders the SVG subset produced by radialtext scenes with
// fogleman/gg: svg (viewBox, background), g, text and rect. Unknown
// elements are skipped.
type SVGDecoder struct{}

// Decode parses src and draws it onto a width×height surface. The viewBox
// is fitted into the surface with xMidYMid meet, like a browser does for
// an image of that size. A surface without area decodes to an empty image.
func (SVGDecoder) Decode(src io.Reader, width, height int) (image.Image, error) {
	root, err := scene.Parse(src)
	if err != nil {
		return nil, err
	}
	if root.Name != "svg" {
		return nil, fmt.Errorf("decode: root element is <%s>, want <svg>", root.Name)
	}
	if width < 0 || height < 0 {
		return nil, fmt.Errorf("decode: invalid size %dx%d", width, height)
	}
	if !fits(scene.Rect{Width: float64(width), Height: float64(height)}) {
		return nil, fmt.Errorf("decode: surface %dx%d exceeds limits", width, height)
	}
	if width == 0 || height == 0 {
		return image.NewRGBA(image.Rect(0, 0, width, height)), nil
	}

	dc := gg.NewContext(width, height)
	if bg := background(root); bg != "" {
		if c, ok := scene.ParseColor(bg); ok {
			dc.SetColor(c)
			dc.Clear()
		}
	}

	if vb, ok := root.LookupAttr("viewBox"); ok {
		box, err := scene.ParseViewBox(vb)
		if err != nil {
			return nil, err
		}
		if box.Empty() {
			return dc.Image(), nil
		}
		s := math.Min(float64(width)/box.Width, float64(height)/box.Height)
		dc.Translate((float64(width)-box.Width*s)/2-box.X*s, (float64(height)-box.Height*s)/2-box.Y*s)
		dc.Scale(s, s)
	}

	w := newWalker(dc)
	defer w.close()
	err = w.walk(root, defaultPresentation().inherit(root), func(el *scene.Element, p presentation) error {
		switch el.Name {
		case "text":
			return w.drawText(el, p)
		case "rect":
			return w.drawRect(el, p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dc.Image(), nil
}

func (w *walker) drawText(el *scene.Element, p presentation) error {
	if el.Text == "" {
		return nil
	}
	c, ok := fillColor(p.fill)
	if !ok {
		return nil
	}
	face, err := w.face(p)
	if err != nil {
		return err
	}
	w.dc.SetFontFace(face)
	w.dc.SetColor(c)
	l := w.layoutText(el, p, face)
	w.dc.DrawString(el.Text, l.x, l.baseline)
	return nil
}

func (w *walker) drawRect(el *scene.Element, p presentation) error {
	r := rectBox(el)
	if r.Empty() {
		return nil
	}
	c, ok := fillColor(p.fill)
	if !ok {
		return nil
	}
	w.dc.SetColor(c)
	w.dc.DrawRectangle(r.X, r.Y, r.Width, r.Height)
	w.dc.Fill()
	return nil
}

func background(root *scene.Element) string {
	if v := root.Style.Get("background-color"); v != "" {
		return v
	}
	return root.Style.Get("background")
}
