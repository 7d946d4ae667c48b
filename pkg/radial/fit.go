package radial

import (
	"fmt"
	"math"
	"regexp"
	"strconv"

	"github.com/matzehuels/radialtext/pkg/errors"
	"github.com/matzehuels/radialtext/pkg/scene"
)

// Viewport is the preview area a scene is fitted into, in pixels.
type Viewport struct {
	Width  float64 `json:"width" toml:"width"`
	Height float64 `json:"height" toml:"height"`
}

// Measurer computes the geometric bounding box of an element's content in
// the element's own user space, like SVGGraphicsElement.getBBox.
type Measurer interface {
	Measure(el *scene.Element) (scene.Rect, error)
}

// Fit sizes the live scene for display in vp.
//
// Zoomed in, the scene is shown at natural size: the group transform is
// dropped, the viewBox covers the content and the root gets explicit
// width, height and centering margins. Otherwise the viewBox is the
// viewport and the group is centered and scaled down (never up) until it
// fits.
func Fit(root *scene.Element, cfg Config, vp Viewport, m Measurer) error {
	group := root.Find(GroupClass)
	if group == nil {
		return errors.New(errors.ErrCodeInvalidInput, "scene has no .%s group", GroupClass)
	}

	if cfg.ZoomedIn {
		group.RemoveAttr("transform")
		box, err := m.Measure(root)
		if err != nil {
			return err
		}
		root.SetAttr("viewBox", box.ViewBox())
		root.Style.Set("width", px(box.Width))
		root.Style.Set("height", px(box.Height))
		root.Style.Set("margin", fmt.Sprintf("%s 0 0 %s",
			px(-math.Min(box.Height, vp.Height)/2),
			px(-math.Min(box.Width, vp.Width)/2)))
		return nil
	}

	box, err := m.Measure(group)
	if err != nil {
		return err
	}
	root.Style.Remove("width")
	root.Style.Remove("height")
	root.Style.Remove("margin")
	root.SetAttr("viewBox", scene.Rect{Width: vp.Width, Height: vp.Height}.ViewBox())

	hw, hh := vp.Width/2, vp.Height/2
	scale := minFinite(1,
		hw/math.Abs(box.X),
		hh/math.Abs(box.Y),
		hw/(box.Width+box.X),
		hh/(box.Height+box.Y),
	)
	group.SetAttr("transform", fmt.Sprintf("translate(%s,%s) scale(%s)",
		scene.FormatNumber(hw), scene.FormatNumber(hh), scene.FormatNumber(scale)))
	return nil
}

var scaleRe = regexp.MustCompile(`scale\((.*?)\)`)

// PreviewScale returns the scale factor of the group's preview transform,
// or 1 when there is none.
func PreviewScale(root *scene.Element) float64 {
	group := root.Find(GroupClass)
	if group == nil {
		return 1
	}
	m := scaleRe.FindStringSubmatch(group.Attr("transform"))
	if m == nil {
		return 1
	}
	v, ok := Number(m[1]).Float()
	if !ok || v == 0 {
		return 1
	}
	return v
}

// Estimate returns the pixel size an export of root would have: the
// scene's box with the preview scale undone.
func Estimate(root *scene.Element, m Measurer) (width, height int, err error) {
	box, err := m.Measure(root)
	if err != nil {
		return 0, 0, err
	}
	inv := 1 / PreviewScale(root)
	return int(jsRound(box.Width * inv)), int(jsRound(box.Height * inv)), nil
}

// FormatDimensions renders a size the way the preview shows it.
func FormatDimensions(width, height int) string {
	return strconv.Itoa(width) + " × " + strconv.Itoa(height)
}

// minFinite returns the smallest of vs, ignoring NaN operands that arise
// from empty boxes (0/0).
func minFinite(vs ...float64) float64 {
	out := math.Inf(1)
	for _, v := range vs {
		if !math.IsNaN(v) && v < out {
			out = v
		}
	}
	return out
}

// jsRound rounds half up, as Math.round does.
func jsRound(v float64) float64 {
	return math.Floor(v + 0.5)
}

func px(v float64) string {
	return scene.FormatNumber(v) + "px"
}
