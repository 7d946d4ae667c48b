package scene

import (
	"image/color"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

var (
	hslRe = regexp.MustCompile(`^hsla?\(\s*([+-]?[\d.]+)(deg|rad|turn)?\s*[,\s]\s*([\d.]+)%\s*[,\s]\s*([\d.]+)%\s*(?:[,/]\s*([\d.]+%?)\s*)?\)$`)
	rgbRe = regexp.MustCompile(`^rgba?\(\s*([\d.]+%?)\s*[,\s]\s*([\d.]+%?)\s*[,\s]\s*([\d.]+%?)\s*(?:[,/]\s*([\d.]+%?)\s*)?\)$`)
)

// ParseColor resolves a CSS color value. It accepts #rgb, #rrggbb,
// #rrggbbaa, rgb()/rgba(), hsl()/hsla(), "transparent" and the SVG named
// colors. The result is non-premultiplied.
func ParseColor(s string) (color.NRGBA, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch {
	case s == "":
		return color.NRGBA{}, false
	case s == "transparent":
		return color.NRGBA{}, true
	case strings.HasPrefix(s, "#"):
		return parseHex(s)
	case strings.HasPrefix(s, "hsl"):
		return parseHSL(s)
	case strings.HasPrefix(s, "rgb"):
		return parseRGB(s)
	}
	if c, ok := colornames.Map[s]; ok {
		return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}, true
	}
	return color.NRGBA{}, false
}

func parseHex(s string) (color.NRGBA, bool) {
	alpha := uint8(255)
	if len(s) == 9 {
		a, err := strconv.ParseUint(s[7:], 16, 8)
		if err != nil {
			return color.NRGBA{}, false
		}
		alpha = uint8(a)
		s = s[:7]
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return color.NRGBA{}, false
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: alpha}, true
}

func parseHSL(s string) (color.NRGBA, bool) {
	m := hslRe.FindStringSubmatch(s)
	if m == nil {
		return color.NRGBA{}, false
	}
	h, _ := strconv.ParseFloat(m[1], 64)
	switch m[2] {
	case "rad":
		h = h * 180 / math.Pi
	case "turn":
		h *= 360
	}
	sat, _ := strconv.ParseFloat(m[3], 64)
	light, _ := strconv.ParseFloat(m[4], 64)

	h = mod360(h)
	c := colorful.Hsl(h, clampUnit(sat/100), clampUnit(light/100)).Clamped()
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: parseAlpha(m[5])}, true
}

func parseRGB(s string) (color.NRGBA, bool) {
	m := rgbRe.FindStringSubmatch(s)
	if m == nil {
		return color.NRGBA{}, false
	}
	var ch [3]uint8
	for i := range ch {
		v := m[i+1]
		var f float64
		if strings.HasSuffix(v, "%") {
			p, _ := strconv.ParseFloat(strings.TrimSuffix(v, "%"), 64)
			f = p / 100 * 255
		} else {
			f, _ = strconv.ParseFloat(v, 64)
		}
		ch[i] = uint8(clamp(f, 0, 255) + 0.5)
	}
	return color.NRGBA{R: ch[0], G: ch[1], B: ch[2], A: parseAlpha(m[4])}, true
}

func parseAlpha(s string) uint8 {
	if s == "" {
		return 255
	}
	var f float64
	if strings.HasSuffix(s, "%") {
		p, _ := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64)
		f = p / 100
	} else {
		f, _ = strconv.ParseFloat(s, 64)
	}
	return uint8(clampUnit(f)*255 + 0.5)
}

func mod360(h float64) float64 {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	return h
}

func clampUnit(f float64) float64 { return clamp(f, 0, 1) }

func clamp(f, lo, hi float64) float64 {
	if f < lo {
		return lo
	}
	if f > hi {
		return hi
	}
	return f
}
