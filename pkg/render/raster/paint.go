package raster

import (
	"image/color"
	"regexp"
	"strconv"
	"strings"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"

	"github.com/matzehuels/radialtext/pkg/fonts"
	"github.com/matzehuels/radialtext/pkg/scene"
)

// presentation is the inherited text styling at one point of the tree.
type presentation struct {
	fill       string
	fontSize   float64
	fontWeight string
	fontStyle  string
	fontFamily string
	baseline   string
	anchor     string
}

func defaultPresentation() presentation {
	return presentation{
		fill:       "black",
		fontSize:   fonts.DefaultSize,
		fontWeight: "normal",
		fontStyle:  "normal",
		baseline:   "auto",
		anchor:     "start",
	}
}

// property reads a presentation property, preferring the inline style over
// the attribute of the same name.
func property(el *scene.Element, name string) string {
	if v := el.Style.Get(name); v != "" {
		return v
	}
	return strings.TrimSpace(el.Attr(name))
}

func (p presentation) inherit(el *scene.Element) presentation {
	if v := property(el, "fill"); v != "" && v != "inherit" {
		p.fill = v
	}
	if v := property(el, "font-size"); v != "" {
		if size, ok := parseLength(v, p.fontSize); ok {
			p.fontSize = size
		}
	}
	if v := property(el, "font-weight"); v != "" && v != "inherit" {
		p.fontWeight = v
	}
	if v := property(el, "font-style"); v != "" && v != "inherit" {
		p.fontStyle = v
	}
	if v := property(el, "font-family"); v != "" && v != "inherit" {
		p.fontFamily = v
	}
	if v := property(el, "dominant-baseline"); v != "" && v != "inherit" {
		p.baseline = v
	}
	if v := property(el, "text-anchor"); v != "" && v != "inherit" {
		p.anchor = v
	}
	return p
}

var lengthRe = regexp.MustCompile(`^([+-]?(?:\d+\.?\d*|\.\d+)(?:[eE][+-]?\d+)?)\s*(px|pt|em|%)?$`)

// parseLength converts a CSS length to pixels. Relative units resolve
// against parent.
func parseLength(s string, parent float64) (float64, bool) {
	m := lengthRe.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return 0, false
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	switch m[2] {
	case "pt":
		v = v * 96 / 72
	case "em":
		v *= parent
	case "%":
		v = v / 100 * parent
	}
	return v, true
}

func fillColor(s string) (color.Color, bool) {
	if s == "none" {
		return nil, false
	}
	if c, ok := scene.ParseColor(s); ok {
		return c, true
	}
	return color.Black, true
}

type faceKey struct {
	variant fonts.Variant
	size    float64
}

// walker replays a scene onto a gg context. Faces are shared by every text
// of one walk and closed by close.
type walker struct {
	dc    *gg.Context
	faces map[faceKey]font.Face
}

func newWalker(dc *gg.Context) *walker {
	return &walker{dc: dc, faces: make(map[faceKey]font.Face)}
}

func (w *walker) close() {
	for _, f := range w.faces {
		_ = f.Close()
	}
}

func (w *walker) face(p presentation) (font.Face, error) {
	key := faceKey{variant: fonts.VariantFor(p.fontWeight, p.fontStyle), size: p.fontSize}
	if f, ok := w.faces[key]; ok {
		return f, nil
	}
	f, err := fonts.NewFace(key.variant, key.size)
	if err != nil {
		return nil, err
	}
	w.faces[key] = f
	return f, nil
}

// leafFunc is called for every drawable element with the context matrix
// set to the element's user space.
type leafFunc func(el *scene.Element, p presentation) error

// walk visits the children of el. Containers are descended into; elements
// the renderer does not know are skipped with their subtree.
func (w *walker) walk(el *scene.Element, p presentation, leaf leafFunc) error {
	for _, child := range el.Children {
		if err := w.visit(child, p, leaf); err != nil {
			return err
		}
	}
	return nil
}

func (w *walker) visit(el *scene.Element, p presentation, leaf leafFunc) error {
	switch el.Name {
	case "g", "svg", "text", "rect":
	default:
		return nil
	}
	if property(el, "display") == "none" {
		return nil
	}

	t, err := el.Transform()
	if err != nil {
		return err
	}
	w.dc.Push()
	defer w.dc.Pop()
	t.Apply(w.dc)

	p = p.inherit(el)
	switch el.Name {
	case "g", "svg":
		return w.walk(el, p, leaf)
	default:
		return leaf(el, p)
	}
}

// textLayout is the placement of one text element in its user space.
type textLayout struct {
	x, baseline float64
	box         scene.Rect
}

// layoutText positions the text of el. The font face must already be set
// on the context.
func (w *walker) layoutText(el *scene.Element, p presentation, face font.Face) textLayout {
	x, _ := parseLength(firstField(el.Attr("x")), p.fontSize)
	y, _ := parseLength(firstField(el.Attr("y")), p.fontSize)

	width, _ := w.dc.MeasureString(el.Text)
	m := face.Metrics()
	ascent := float64(m.Ascent) / 64
	descent := float64(m.Descent) / 64

	switch p.anchor {
	case "middle":
		x -= width / 2
	case "end":
		x -= width
	}

	baseline := y
	switch p.baseline {
	case "middle", "central":
		baseline = y + (ascent-descent)/2
	case "hanging", "text-before-edge":
		baseline = y + ascent
	case "text-after-edge", "ideographic":
		baseline = y - descent
	}

	return textLayout{
		x:        x,
		baseline: baseline,
		box:      scene.Rect{X: x, Y: baseline - ascent, Width: width, Height: ascent + descent},
	}
}

func rectBox(el *scene.Element) scene.Rect {
	var r scene.Rect
	r.X, _ = parseLength(el.Attr("x"), 0)
	r.Y, _ = parseLength(el.Attr("y"), 0)
	r.Width, _ = parseLength(el.Attr("width"), 0)
	r.Height, _ = parseLength(el.Attr("height"), 0)
	return r
}

func firstField(s string) string {
	if f := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' }); len(f) > 0 {
		return f[0]
	}
	return ""
}
