package scene

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Op is a single transform function. Angles are stored in degrees and
// lengths in user units, whatever units the source text used.
type Op struct {
	Name string
	Args []float64
}

// Transform is an ordered transform list. The first op is the outermost,
// as in SVG and CSS.
type Transform []Op

// Transformer receives transform steps. *gg.Context satisfies it, so a
// Transform can be replayed onto a drawing context directly.
type Transformer interface {
	Translate(x, y float64)
	Rotate(angle float64)
	Scale(x, y float64)
	Shear(x, y float64)
}

var (
	transformFuncRe = regexp.MustCompile(`([A-Za-z]+)\s*\(([^)]*)\)`)
	transformArgRe  = regexp.MustCompile(`^([+-]?(?:\d+\.?\d*|\.\d+)(?:[eE][+-]?\d+)?)(deg|rad|grad|turn|px)?$`)
	argSplitRe      = regexp.MustCompile(`[\s,]+`)
)

// ParseTransform parses an SVG transform attribute or a CSS transform value.
func ParseTransform(s string) (Transform, error) {
	var t Transform
	rest := strings.TrimSpace(s)
	for _, m := range transformFuncRe.FindAllStringSubmatchIndex(s, -1) {
		name := s[m[2]:m[3]]
		args, err := parseTransformArgs(s[m[4]:m[5]])
		if err != nil {
			return nil, fmt.Errorf("transform %s: %w", name, err)
		}
		op, err := newOp(name, args)
		if err != nil {
			return nil, err
		}
		t = append(t, op)
		rest = strings.Replace(rest, s[m[0]:m[1]], "", 1)
	}
	if strings.Trim(rest, " \t\r\n,") != "" {
		return nil, fmt.Errorf("transform: unexpected %q", strings.TrimSpace(rest))
	}
	return t, nil
}

func parseTransformArgs(s string) ([]float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	var args []float64
	for _, field := range argSplitRe.Split(s, -1) {
		m := transformArgRe.FindStringSubmatch(field)
		if m == nil {
			return nil, fmt.Errorf("invalid argument %q", field)
		}
		v, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			return nil, err
		}
		switch m[2] {
		case "rad":
			v = v * 180 / math.Pi
		case "grad":
			v = v * 0.9
		case "turn":
			v = v * 360
		}
		args = append(args, v)
	}
	return args, nil
}

func newOp(name string, args []float64) (Op, error) {
	name = strings.ToLower(name)
	want := map[string][]int{
		"translate":  {1, 2},
		"translatex": {1},
		"translatey": {1},
		"rotate":     {1, 3},
		"scale":      {1, 2},
		"scalex":     {1},
		"scaley":     {1},
		"skewx":      {1},
		"skewy":      {1},
	}
	counts, ok := want[name]
	if !ok {
		return Op{}, fmt.Errorf("transform: unsupported function %q", name)
	}
	for _, n := range counts {
		if len(args) == n {
			return Op{Name: name, Args: args}, nil
		}
	}
	return Op{}, fmt.Errorf("transform %s: got %d arguments", name, len(args))
}

// Apply replays the transform list onto dst, outermost op first.
func (t Transform) Apply(dst Transformer) {
	for _, op := range t {
		a := op.Args
		switch op.Name {
		case "translate":
			if len(a) == 1 {
				dst.Translate(a[0], 0)
			} else {
				dst.Translate(a[0], a[1])
			}
		case "translatex":
			dst.Translate(a[0], 0)
		case "translatey":
			dst.Translate(0, a[0])
		case "rotate":
			if len(a) == 3 {
				dst.Translate(a[1], a[2])
				dst.Rotate(radians(a[0]))
				dst.Translate(-a[1], -a[2])
			} else {
				dst.Rotate(radians(a[0]))
			}
		case "scale":
			if len(a) == 1 {
				dst.Scale(a[0], a[0])
			} else {
				dst.Scale(a[0], a[1])
			}
		case "scalex":
			dst.Scale(a[0], 1)
		case "scaley":
			dst.Scale(1, a[0])
		case "skewx":
			dst.Shear(math.Tan(radians(a[0])), 0)
		case "skewy":
			dst.Shear(0, math.Tan(radians(a[0])))
		}
	}
}

// String renders the list in SVG attribute syntax.
func (t Transform) String() string {
	parts := make([]string, len(t))
	for i, op := range t {
		args := make([]string, len(op.Args))
		for j, v := range op.Args {
			args[j] = FormatNumber(v)
		}
		parts[i] = op.Name + "(" + strings.Join(args, ",") + ")"
	}
	return strings.Join(parts, " ")
}

// FormatNumber renders a float the shortest way that round-trips.
func FormatNumber(v float64) string {
	if v == 0 {
		return "0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
