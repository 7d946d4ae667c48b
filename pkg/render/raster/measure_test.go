package raster

import (
	"math"
	"testing"

	"github.com/matzehuels/radialtext/pkg/radial"
	"github.com/matzehuels/radialtext/pkg/scene"
)

const eps = 1e-6

func textElement(s, style string) *scene.Element {
	el := scene.New("text").SetAttr("dominant-baseline", "middle").SetAttr("style", style)
	el.Text = s
	return el
}

func TestMeasureText(t *testing.T) {
	box, err := Measure(textElement("Hello", "font-size: 16px"))
	if err != nil {
		t.Fatalf("Measure() error: %v", err)
	}
	if box.X != 0 || box.Width <= 0 || box.Height <= 0 {
		t.Fatalf("box = %+v", box)
	}
	// middle baseline centers the box on y=0
	if math.Abs(box.Y+box.Height/2) > eps {
		t.Errorf("box not centered: %+v", box)
	}

	big, err := Measure(textElement("Hello", "font-size: 32px"))
	if err != nil {
		t.Fatal(err)
	}
	if big.Width <= box.Width || big.Height <= box.Height {
		t.Errorf("32px box %+v should be larger than 16px box %+v", big, box)
	}

	bold, err := Measure(textElement("Hello", "font-size: 16px; font-weight: bold"))
	if err != nil {
		t.Fatal(err)
	}
	if bold.Width < box.Width {
		t.Errorf("bold width %v should not be smaller than regular %v", bold.Width, box.Width)
	}
}

func TestMeasureOwnTransformIgnored(t *testing.T) {
	plain := textElement("Hi", "font-size: 16px")
	moved := textElement("Hi", "font-size: 16px; transform: translate(100px,0)")

	a, _ := Measure(plain)
	b, _ := Measure(moved)
	if a != b {
		t.Errorf("Measure should ignore the element's own transform: %+v vs %+v", a, b)
	}
}

func TestMeasureRotated(t *testing.T) {
	text := textElement("Hi", "font-size: 16px")
	local, err := Measure(text)
	if err != nil {
		t.Fatal(err)
	}

	text.Style.Set("transform", "rotate(90deg) translate(10px,0)")
	group := scene.New("g").Append(text)
	box, err := Measure(group)
	if err != nil {
		t.Fatalf("Measure() error: %v", err)
	}

	want := scene.Rect{X: -local.Height / 2, Y: 10, Width: local.Height, Height: local.Width}
	if math.Abs(box.X-want.X) > eps || math.Abs(box.Y-want.Y) > eps ||
		math.Abs(box.Width-want.Width) > eps || math.Abs(box.Height-want.Height) > eps {
		t.Errorf("rotated box = %+v, want %+v", box, want)
	}
}

func TestMeasureRadialScene(t *testing.T) {
	cfg := radial.Normalize(radial.Settings{TextLines: "north\neast\nsouth\nwest", Rotation: "-90"})
	root := radial.Build(cfg)

	box, err := Measure(root)
	if err != nil {
		t.Fatalf("Measure() error: %v", err)
	}
	// Four lines pointing in every direction surround the origin.
	if box.X >= 0 || box.Y >= 0 || box.X+box.Width <= 0 || box.Y+box.Height <= 0 {
		t.Errorf("box %+v should contain the origin", box)
	}

	group := root.Find(radial.GroupClass)
	group.SetAttr("transform", "translate(1000,1000)")
	moved, err := Measure(root)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(moved.X-box.X-1000) > eps || math.Abs(moved.Width-box.Width) > eps {
		t.Errorf("root box should include the group transform: %+v vs %+v", moved, box)
	}
	inner, err := Measure(group)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(inner.X-box.X) > eps {
		t.Errorf("group box should exclude its own transform: %+v vs %+v", inner, box)
	}
}

func TestMeasureEmpty(t *testing.T) {
	tests := []struct {
		name string
		el   *scene.Element
	}{
		{"nil", nil},
		{"bare svg", scene.New("svg")},
		{"empty group", radial.Build(radial.Normalize(radial.Settings{}))},
		{"blank text", scene.New("svg").Append(textElement("   ", ""))},
		{"unknown element", scene.New("svg").Append(scene.New("circle").SetAttr("r", "10"))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			box, err := Measure(tt.el)
			if err != nil {
				t.Fatalf("Measure() error: %v", err)
			}
			if box != (scene.Rect{}) {
				t.Errorf("box = %+v, want zero", box)
			}
		})
	}
}

func TestMeasureRect(t *testing.T) {
	root := scene.New("svg").Append(
		scene.New("rect").SetAttr("x", "-5").SetAttr("y", "2").SetAttr("width", "10").SetAttr("height", "4"),
		scene.New("g").SetAttr("transform", "scale(2)").Append(
			scene.New("rect").SetAttr("width", "1").SetAttr("height", "1"),
		),
	)
	box, err := Measure(root)
	if err != nil {
		t.Fatal(err)
	}
	if box != (scene.Rect{X: -5, Y: 0, Width: 10, Height: 6}) {
		t.Errorf("box = %+v", box)
	}
}

func TestMeasureBadTransform(t *testing.T) {
	root := scene.New("svg").Append(textElement("x", "transform: matrix(1,0,0,1,0,0)"))
	if _, err := Measure(root); err == nil {
		t.Error("Measure() should fail on unsupported transforms")
	}
}

func TestParseLength(t *testing.T) {
	tests := []struct {
		input  string
		parent float64
		want   float64
		ok     bool
	}{
		{"16px", 10, 16, true},
		{"16", 10, 16, true},
		{"12pt", 10, 16, true},
		{"2em", 10, 20, true},
		{"150%", 10, 15, true},
		{"big", 10, 0, false},
		{"", 10, 0, false},
	}
	for _, tt := range tests {
		got, ok := parseLength(tt.input, tt.parent)
		if ok != tt.ok || math.Abs(got-tt.want) > eps {
			t.Errorf("parseLength(%q, %v) = %v, %v, want %v, %v", tt.input, tt.parent, got, ok, tt.want, tt.ok)
		}
	}
}
