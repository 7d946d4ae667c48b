package scene

import "testing"

func sampleTree() *Element {
	root := New("svg").SetAttr("class", "canvas")
	root.Style.Set("background", "#000")
	group := New("g").SetAttr("class", "text-lines").SetAttr("transform", "translate(5,5)")
	group.Append(
		New("text").SetAttr("class", "text"),
		New("text").SetAttr("class", "text extra"),
	)
	return root.Append(group)
}

func TestSetAttr(t *testing.T) {
	e := New("text")
	e.SetAttr("a", "1").SetAttr("b", "2").SetAttr("a", "3")

	if len(e.Attrs) != 2 {
		t.Fatalf("len(Attrs) = %d, want 2", len(e.Attrs))
	}
	if e.Attrs[0].Name != "a" || e.Attrs[0].Value != "3" {
		t.Errorf("Attrs[0] = %+v, want a=3 kept in place", e.Attrs[0])
	}

	e.SetAttr("style", "fill: red; font-size: 16px")
	if got := e.Style.Get("font-size"); got != "16px" {
		t.Errorf("Style.Get(font-size) = %q, want 16px", got)
	}
	if v, ok := e.LookupAttr("style"); !ok || v != "fill: red; font-size: 16px" {
		t.Errorf("LookupAttr(style) = %q, %v", v, ok)
	}

	e.RemoveAttr("a")
	if _, ok := e.LookupAttr("a"); ok {
		t.Error("attribute a should be removed")
	}
}

func TestHasClass(t *testing.T) {
	e := New("text").SetAttr("class", "text  extra")
	tests := []struct {
		class string
		want  bool
	}{
		{"text", true},
		{"extra", true},
		{"tex", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := e.HasClass(tt.class); got != tt.want {
			t.Errorf("HasClass(%q) = %v, want %v", tt.class, got, tt.want)
		}
	}
}

func TestClone(t *testing.T) {
	orig := sampleTree()
	c := orig.Clone()

	c.Style.Set("background", "#fff")
	c.Find("text-lines").RemoveAttr("transform")
	c.Children[0].Children[0].Text = "changed"

	if got := orig.Style.Get("background"); got != "#000" {
		t.Errorf("original background = %q, want #000", got)
	}
	if got := orig.Find("text-lines").Attr("transform"); got != "translate(5,5)" {
		t.Errorf("original transform = %q, want translate(5,5)", got)
	}
	if orig.Children[0].Children[0].Text != "" {
		t.Error("original text changed through clone")
	}
	if (*Element)(nil).Clone() != nil {
		t.Error("Clone of nil should be nil")
	}
}

func TestFind(t *testing.T) {
	root := sampleTree()

	if root.Find("canvas") != nil {
		t.Error("Find should not match the receiver itself")
	}
	if g := root.Find("text-lines"); g == nil || g.Name != "g" {
		t.Errorf("Find(text-lines) = %v", g)
	}
	if got := len(root.FindAll("text")); got != 2 {
		t.Errorf("len(FindAll(text)) = %d, want 2", got)
	}
	if got := len(root.FindAll("missing")); got != 0 {
		t.Errorf("len(FindAll(missing)) = %d, want 0", got)
	}
}

func TestElementTransform(t *testing.T) {
	tests := []struct {
		name  string
		attr  string
		style string
		want  string
	}{
		{"none", "", "", ""},
		{"attribute only", "translate(1,2)", "", "translate(1,2)"},
		{"style only", "", "rotate(90deg) translate(10px,0)", "rotate(90) translate(10,0)"},
		{"style replaces attribute", "translate(1,2)", "rotate(90deg)", "rotate(90)"},
		{"style none clears attribute", "translate(1,2)", "none", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := New("text")
			if tt.attr != "" {
				e.SetAttr("transform", tt.attr)
			}
			if tt.style != "" {
				e.Style.Set("transform", tt.style)
			}

			tr, err := e.Transform()
			if err != nil {
				t.Fatalf("Transform() error: %v", err)
			}
			if got := tr.String(); got != tt.want {
				t.Errorf("Transform() = %q, want %q", got, tt.want)
			}
		})
	}

	e := New("text").SetAttr("transform", "translate(1,2)")
	e.Style.Set("transform", "matrix(1,0,0,1,0,0)")
	if _, err := e.Transform(); err == nil {
		t.Error("Transform() with matrix should fail")
	}
}
