package radial

import (
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/matzehuels/radialtext/pkg/errors"
	"github.com/matzehuels/radialtext/pkg/scene"
)

// Defaults applied by Normalize.
const (
	DefaultFontSize   = 16
	DefaultLineHeight = 1
	DefaultWeight     = "normal"
	DefaultStyle      = "normal"
)

// Number is a numeric setting as typed by a user. It keeps the raw text so
// that "12px" or "" can be told apart; see [Number.Float].
type Number string

var leadingFloatRe = regexp.MustCompile(`^[\t\n\v\f\r ]*([+-]?(?:Infinity|(?:\d+\.?\d*|\.\d+)(?:[eE][+-]?\d+)?))`)

// Float parses the longest numeric prefix of n, ignoring leading
// whitespace and any trailing text. ok is false when no prefix is numeric.
func (n Number) Float() (v float64, ok bool) {
	m := leadingFloatRe.FindStringSubmatch(string(n))
	if m == nil {
		return 0, false
	}
	switch strings.TrimLeft(m[1], "+") {
	case "Infinity":
		return math.Inf(1), true
	case "-Infinity":
		return math.Inf(-1), true
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		// Out of range literals still carry a sign.
		if ne, isNum := err.(*strconv.NumError); isNum && ne.Err == strconv.ErrRange {
			return v, true
		}
		return 0, false
	}
	return v, true
}

// UnmarshalJSON accepts JSON numbers, strings and null.
func (n *Number) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*n = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*n = Number(s)
		return nil
	}
	var f json.Number
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*n = Number(f.String())
	return nil
}

// UnmarshalText lets TOML integers, floats and strings bind to a Number.
func (n *Number) UnmarshalText(text []byte) error {
	*n = Number(text)
	return nil
}

// Settings is the raw, form-like description of a radial text scene.
type Settings struct {
	TextLines           string `json:"textLines" toml:"text_lines"`
	IgnoreEmpty         *bool  `json:"ignoreEmpty,omitempty" toml:"ignore_empty"`
	FontSize            Number `json:"fontSize,omitempty" toml:"font_size"`
	FontWeight          string `json:"fontWeight,omitempty" toml:"font_weight"`
	FontStyle           string `json:"fontStyle,omitempty" toml:"font_style"`
	LineHeight          Number `json:"lineHeight,omitempty" toml:"line_height"`
	CentricCircleRadius Number `json:"centricCircleRadius,omitempty" toml:"centric_circle_radius"`
	Rotation            Number `json:"rotation,omitempty" toml:"rotation"`
	Color               string `json:"color,omitempty" toml:"color"`
	BgColor             string `json:"bgColor,omitempty" toml:"bg_color"`
	IsZoomedIn          bool   `json:"isZoomedIn,omitempty" toml:"is_zoomed_in"`
}

// Validate checks the parts of s that Normalize cannot repair: the text
// itself and explicit colors.
func (s Settings) Validate() error {
	if err := errors.ValidateText(s.TextLines); err != nil {
		return err
	}
	for name, c := range map[string]string{"color": s.Color, "bgColor": s.BgColor} {
		if c == "" {
			continue
		}
		if _, ok := scene.ParseColor(c); !ok {
			return errors.New(errors.ErrCodeInvalidInput, "invalid %s: %q", name, c)
		}
	}
	return nil
}

// Config is the normalized layout configuration.
type Config struct {
	Lines        []string
	FontSize     float64
	FontWeight   string
	FontStyle    string
	LineHeight   float64
	Radius       float64
	Rotation     float64
	CentralAngle float64
	Color        string
	BgColor      string
	ZoomedIn     bool
}

var lineBreakRe = regexp.MustCompile(`[\r\n]`)

// Normalize resolves defaults and derived values. Every input yields a
// usable Config.
func Normalize(s Settings) Config {
	cfg := Config{
		Lines:      SplitLines(s.TextLines, s.IgnoreEmpty == nil || *s.IgnoreEmpty),
		FontSize:   DefaultFontSize,
		LineHeight: DefaultLineHeight,
		FontWeight: normalizeWeight(s.FontWeight),
		FontStyle:  normalizeStyle(s.FontStyle),
		Color:      strings.TrimSpace(s.Color),
		BgColor:    strings.TrimSpace(s.BgColor),
		ZoomedIn:   s.IsZoomedIn,
	}
	if v, ok := s.FontSize.Float(); ok {
		cfg.FontSize = v
	}
	if v, ok := s.LineHeight.Float(); ok {
		cfg.LineHeight = v
	}
	if v, ok := s.Rotation.Float(); ok && !math.IsInf(v, 0) {
		cfg.Rotation = math.Mod(v, 360)
	}

	cfg.CentralAngle = CentralAngle(len(cfg.Lines))
	if v, ok := s.CentricCircleRadius.Float(); ok {
		cfg.Radius = v
	} else {
		cfg.Radius = AutoRadius(cfg.FontSize, cfg.LineHeight, cfg.CentralAngle)
	}
	return cfg
}

// SplitLines splits text on carriage returns and line feeds and trims each
// line. With ignoreEmpty, whitespace-only lines are dropped.
func SplitLines(text string, ignoreEmpty bool) []string {
	var lines []string
	for _, line := range lineBreakRe.Split(text, -1) {
		trimmed := strings.TrimSpace(line)
		if ignoreEmpty && trimmed == "" {
			continue
		}
		lines = append(lines, trimmed)
	}
	return lines
}

func normalizeWeight(w string) string {
	switch w = strings.ToLower(strings.TrimSpace(w)); w {
	case "lighter", "normal", "bold", "bolder":
		return w
	default:
		return DefaultWeight
	}
}

func normalizeStyle(s string) string {
	switch s = strings.ToLower(strings.TrimSpace(s)); s {
	case "normal", "italic":
		return s
	default:
		return DefaultStyle
	}
}
