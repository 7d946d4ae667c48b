package scene

import "testing"

func TestParseStyle(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"single", "fill:red", "fill: red"},
		{"spacing and case", " Font-Size : 16px ;fill: red;", "font-size: 16px; fill: red"},
		{"malformed dropped", "fill red; stroke: blue", "stroke: blue"},
		{"empty value dropped", "fill:; stroke: blue", "stroke: blue"},
		{"duplicate keeps last", "fill: red; fill: blue", "fill: blue"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := ParseStyle(tt.input)
			if got := st.String(); got != tt.want {
				t.Errorf("ParseStyle(%q).String() = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestStyleSetEmptyRemoves(t *testing.T) {
	var st Style
	st.Set("width", "10px")
	st.Set("height", "20px")
	st.Set("width", "")

	if st.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", st.Len())
	}
	if got := st.Get("width"); got != "" {
		t.Errorf("Get(width) = %q, want empty", got)
	}
	if got := st.Get("HEIGHT"); got != "20px" {
		t.Errorf("Get(HEIGHT) = %q, want 20px", got)
	}
}
