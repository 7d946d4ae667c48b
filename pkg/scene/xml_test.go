package scene

import (
	"strings"
	"testing"
)

func TestMarshal(t *testing.T) {
	root := New("svg").SetAttr("xmlns", "http://www.w3.org/2000/svg").SetAttr("class", "canvas")
	root.Style.Set("background", "#fff")
	text := New("text").SetAttr("class", "text")
	text.Text = "a < b & c"
	root.Append(New("g").Append(text))

	got, err := MarshalString(root)
	if err != nil {
		t.Fatalf("MarshalString() error: %v", err)
	}
	want := `<svg xmlns="http://www.w3.org/2000/svg" class="canvas" style="background: #fff"><g><text class="text">a &lt; b &amp; c</text></g></svg>`
	if got != want {
		t.Errorf("MarshalString() =\n%s\nwant\n%s", got, want)
	}

	if _, err := MarshalString(nil); err == nil {
		t.Error("MarshalString(nil) should fail")
	}
}

func TestParseRoundTrip(t *testing.T) {
	src := `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" viewBox="0 0 10 10" style="font-family: Go">
  <g class="text-lines">
    <text class="text" style="fill: red">Hello</text>
  </g>
</svg>`
	root, err := Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if root.Name != "svg" || root.Attr("viewBox") != "0 0 10 10" {
		t.Errorf("root = %s viewBox=%q", root.Name, root.Attr("viewBox"))
	}
	if root.Attr("xmlns:xlink") != "http://www.w3.org/1999/xlink" {
		t.Errorf("xmlns:xlink = %q", root.Attr("xmlns:xlink"))
	}
	if root.Style.Get("font-family") != "Go" {
		t.Errorf("font-family = %q", root.Style.Get("font-family"))
	}
	if root.Text != "" {
		t.Errorf("whitespace between elements should be dropped, got %q", root.Text)
	}
	texts := root.FindAll("text")
	if len(texts) != 1 || texts[0].Text != "Hello" || texts[0].Style.Get("fill") != "red" {
		t.Fatalf("text = %+v", texts)
	}

	out, err := MarshalString(root)
	if err != nil {
		t.Fatal(err)
	}
	again, err := Parse(strings.NewReader(out))
	if err != nil {
		t.Fatalf("re-Parse() error: %v", err)
	}
	if again.FindAll("text")[0].Text != "Hello" {
		t.Error("text lost in round trip")
	}
}

func TestParseLatin1(t *testing.T) {
	src := "<?xml version=\"1.0\" encoding=\"ISO-8859-1\"?><svg><text>caf\xe9</text></svg>"
	root, err := Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if got := root.Children[0].Text; got != "café" {
		t.Errorf("text = %q, want café", got)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"unclosed", "<svg><g></svg>"},
		{"not xml", "definitely not svg"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse(strings.NewReader(tt.input)); err == nil {
				t.Errorf("Parse(%q) should fail", tt.input)
			}
		})
	}
}
