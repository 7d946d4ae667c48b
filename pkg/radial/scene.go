package radial

import (
	"fmt"

	"github.com/matzehuels/radialtext/pkg/scene"
)

// Class names of the scene elements. Export code locates the text group by
// GroupClass to strip its preview transform.
const (
	CanvasClass = "canvas"
	GroupClass  = "text-lines"
	TextClass   = "text"
)

// SVGNamespace is the xmlns of the root element.
const SVGNamespace = "http://www.w3.org/2000/svg"

// Build creates the live scene for cfg:
//
//	<svg class="canvas" style="background: ...">
//	  <g class="text-lines">
//	    <text class="text" dominant-baseline="middle" style="...">line</text>
//	  </g>
//	</svg>
func Build(cfg Config) *scene.Element {
	root := scene.New("svg").
		SetAttr("xmlns", SVGNamespace).
		SetAttr("class", CanvasClass)
	if cfg.BgColor != "" {
		root.Style.Set("background", cfg.BgColor)
	}

	group := scene.New("g").SetAttr("class", GroupClass)
	for i, line := range cfg.Lines {
		text := scene.New("text").
			SetAttr("class", TextClass).
			SetAttr("dominant-baseline", "middle")
		text.Text = line

		fill := cfg.Color
		if fill == "" {
			fill = SpectrumColor(i, cfg.CentralAngle)
		}
		text.Style.Set("fill", fill)
		text.Style.Set("font-size", scene.FormatNumber(cfg.FontSize)+"px")
		text.Style.Set("font-weight", cfg.FontWeight)
		text.Style.Set("font-style", cfg.FontStyle)
		text.Style.Set("line-height", scene.FormatNumber(cfg.LineHeight))
		text.Style.Set("transform", fmt.Sprintf("rotate(%sdeg) translate(%spx,0)",
			scene.FormatNumber(cfg.LineAngle(i)), scene.FormatNumber(cfg.Radius)))

		group.Append(text)
	}
	return root.Append(group)
}

// LineCount returns the number of text lines in a scene.
func LineCount(root *scene.Element) int {
	if root == nil {
		return 0
	}
	return len(root.FindAll(TextClass))
}
