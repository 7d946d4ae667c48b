package radial

import (
	"encoding/json"
	"math"
	"reflect"
	"testing"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/radialtext/pkg/errors"
)

func TestNumberFloat(t *testing.T) {
	tests := []struct {
		input  Number
		want   float64
		wantOK bool
	}{
		{"16", 16, true},
		{"  -90", -90, true},
		{"12.5px", 12.5, true},
		{".5", 0.5, true},
		{"1e2", 100, true},
		{"3.", 3, true},
		{"+7abc", 7, true},
		{"Infinity", math.Inf(1), true},
		{"-Infinity", math.Inf(-1), true},

		{"", 0, false},
		{"auto", 0, false},
		{"px12", 0, false},
		{"-", 0, false},
		{".", 0, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.input), func(t *testing.T) {
			got, ok := tt.input.Float()
			if ok != tt.wantOK || (ok && got != tt.want) {
				t.Errorf("Number(%q).Float() = %v, %v, want %v, %v", tt.input, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestNumberUnmarshal(t *testing.T) {
	var s Settings
	body := `{"textLines":"a\nb","fontSize":24,"lineHeight":"1.5","rotation":null,"ignoreEmpty":false}`
	if err := json.Unmarshal([]byte(body), &s); err != nil {
		t.Fatalf("json.Unmarshal() error: %v", err)
	}
	if s.FontSize != "24" || s.LineHeight != "1.5" || s.Rotation != "" {
		t.Errorf("json settings = %+v", s)
	}
	if s.IgnoreEmpty == nil || *s.IgnoreEmpty {
		t.Error("ignoreEmpty should decode to false")
	}

	var cfg struct {
		Settings Settings `toml:"settings"`
	}
	doc := `
[settings]
text_lines = "x"
font_size = 20
line_height = 1.25
rotation = "-90"
`
	if _, err := toml.Decode(doc, &cfg); err != nil {
		t.Fatalf("toml.Decode() error: %v", err)
	}
	if v, _ := cfg.Settings.FontSize.Float(); v != 20 {
		t.Errorf("toml font_size = %q", cfg.Settings.FontSize)
	}
	if v, _ := cfg.Settings.LineHeight.Float(); v != 1.25 {
		t.Errorf("toml line_height = %q", cfg.Settings.LineHeight)
	}
	if v, _ := cfg.Settings.Rotation.Float(); v != -90 {
		t.Errorf("toml rotation = %q", cfg.Settings.Rotation)
	}
}

func TestSplitLines(t *testing.T) {
	tests := []struct {
		name        string
		text        string
		ignoreEmpty bool
		want        []string
	}{
		{"empty ignored", "", true, nil},
		{"empty kept", "", false, []string{""}},
		{"trim", "  a \n b\t", true, []string{"a", "b"}},
		{"crlf ignored", "a\r\nb", true, []string{"a", "b"}},
		{"crlf kept", "a\r\nb", false, []string{"a", "", "b"}},
		{"whitespace lines dropped", "a\n   \n\nb", true, []string{"a", "b"}},
		{"whitespace lines kept", "a\n  \nb", false, []string{"a", "", "b"}},
		{"only whitespace", " \n\t\n", true, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitLines(tt.text, tt.ignoreEmpty)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SplitLines(%q, %v) = %q, want %q", tt.text, tt.ignoreEmpty, got, tt.want)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	no := false

	t.Run("defaults", func(t *testing.T) {
		cfg := Normalize(Settings{TextLines: "one"})
		if cfg.FontSize != 16 || cfg.LineHeight != 1 || cfg.Rotation != 0 {
			t.Errorf("defaults = size %v, height %v, rotation %v", cfg.FontSize, cfg.LineHeight, cfg.Rotation)
		}
		if cfg.FontWeight != "normal" || cfg.FontStyle != "normal" {
			t.Errorf("weight/style = %q/%q", cfg.FontWeight, cfg.FontStyle)
		}
		if cfg.CentralAngle != 0 || cfg.Radius != 0 {
			t.Errorf("single line angle/radius = %v/%v, want 0/0", cfg.CentralAngle, cfg.Radius)
		}
	})

	t.Run("values", func(t *testing.T) {
		cfg := Normalize(Settings{
			TextLines:  "a\nb\nc\nd",
			FontSize:   "20",
			LineHeight: "2",
			Rotation:   "-450",
			FontWeight: "BOLD",
			FontStyle:  "italic",
			Color:      " #ff0000 ",
		})
		if len(cfg.Lines) != 4 || cfg.CentralAngle != 90 {
			t.Errorf("lines = %d, angle = %v", len(cfg.Lines), cfg.CentralAngle)
		}
		if cfg.Rotation != -90 {
			t.Errorf("Rotation = %v, want -90", cfg.Rotation)
		}
		if want := AutoRadius(20, 2, 90); math.Abs(cfg.Radius-want) > 1e-9 {
			t.Errorf("Radius = %v, want %v", cfg.Radius, want)
		}
		if cfg.FontWeight != "bold" || cfg.FontStyle != "italic" || cfg.Color != "#ff0000" {
			t.Errorf("weight/style/color = %q/%q/%q", cfg.FontWeight, cfg.FontStyle, cfg.Color)
		}
	})

	t.Run("explicit radius and unknown enums", func(t *testing.T) {
		cfg := Normalize(Settings{
			TextLines:           "a\nb",
			CentricCircleRadius: "0",
			FontWeight:          "heavy",
			FontStyle:           "slanted",
			FontSize:            "big",
		})
		if cfg.Radius != 0 {
			t.Errorf("Radius = %v, want explicit 0", cfg.Radius)
		}
		if cfg.FontWeight != "normal" || cfg.FontStyle != "normal" {
			t.Errorf("weight/style = %q/%q, want normal/normal", cfg.FontWeight, cfg.FontStyle)
		}
		if cfg.FontSize != 16 {
			t.Errorf("FontSize = %v, want default 16", cfg.FontSize)
		}
	})

	t.Run("keep empty lines", func(t *testing.T) {
		cfg := Normalize(Settings{TextLines: "a\n\nb", IgnoreEmpty: &no})
		if len(cfg.Lines) != 3 || cfg.CentralAngle != 120 {
			t.Errorf("lines = %q, angle = %v", cfg.Lines, cfg.CentralAngle)
		}
	})
}

func TestSettingsValidate(t *testing.T) {
	tests := []struct {
		name     string
		settings Settings
		wantErr  bool
	}{
		{"plain", Settings{TextLines: "hello"}, false},
		{"colors", Settings{TextLines: "x", Color: "hsl(10deg,100%,50%)", BgColor: "#FFFFFF"}, false},
		{"bad color", Settings{TextLines: "x", Color: "nope"}, true},
		{"bad background", Settings{TextLines: "x", BgColor: "#12"}, true},
		{"control chars", Settings{TextLines: "a\x00b"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.settings.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("Validate() code = %v, want INVALID_INPUT", errors.GetCode(err))
			}
		})
	}
}
