package parser

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/vezinbastien/devtools/internal/color"
	"github.com/vezinbastien/devtools/internal/token"
)

const sampleHCL = `
color {
  default = palette.brand
}

token {
  symbols = true
  length  = 64
}

palette {
  brand  = "#00c951"
  accent = hsl(240, 100, 50)
  ink    = cmyk(0, 0, 0, 100)
  warm   = hsv(0, 100, 100)
  sky    = "rgba(135, 206, 235, 0.5)"
  cloud  = "cornflowerblue"
  link   = palette.accent
  glass  = rgba(0, 0, 255, 0.25)
  muted  = hex("hsl(120, 50%, 60%)")
}
`

func writeTempHCL(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "devtools.hcl")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadPalette(t *testing.T) {
	path := writeTempHCL(t, sampleHCL)
	cfg, err := Parse(path)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	want := map[string]color.Color{
		"brand":  {R: 0x00, G: 0xc9, B: 0x51, A: 1},
		"accent": {B: 255, A: 1},
		"ink":    {A: 1},
		"warm":   {R: 255, A: 1},
		"sky":    {R: 135, G: 206, B: 235, A: 0.5},
		"cloud":  {R: 100, G: 149, B: 237, A: 1},
		"link":   {B: 255, A: 1},
		"glass":  {B: 255, A: 0.25},
		"muted":  {R: 102, G: 204, B: 102, A: 1},
	}
	if diff := cmp.Diff(want, cfg.Palette); diff != "" {
		t.Errorf("Palette mismatch (-want +got):\n%s", diff)
	}

	wantNames := []string{"brand", "accent", "ink", "warm", "sky", "cloud", "link", "glass", "muted"}
	if diff := cmp.Diff(wantNames, cfg.Names); diff != "" {
		t.Errorf("Names mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadColorDefault(t *testing.T) {
	path := writeTempHCL(t, sampleHCL)
	cfg, err := Parse(path)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if got := cfg.DefaultColor.Hex(); got != "#00C951" {
		t.Errorf("DefaultColor = %q, want #00C951", got)
	}
}

func TestLoadToken(t *testing.T) {
	path := writeTempHCL(t, sampleHCL)
	cfg, err := Parse(path)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	want := token.Options{Uppercase: true, Lowercase: true, Numbers: true, Symbols: true, Length: 64}
	if cfg.Token != want {
		t.Errorf("Token = %+v, want %+v", cfg.Token, want)
	}
}

func TestLoadEmpty(t *testing.T) {
	cfg, err := ParseBytes([]byte(""), "empty.hcl")
	if err != nil {
		t.Fatalf("ParseBytes() error: %v", err)
	}
	if cfg.Token != token.DefaultOptions() {
		t.Errorf("Token = %+v, want defaults", cfg.Token)
	}
	if got := cfg.DefaultColor.Hex(); got != "#00C951" {
		t.Errorf("DefaultColor = %q, want #00C951", got)
	}
	if len(cfg.Palette) != 0 {
		t.Errorf("Palette = %v, want empty", cfg.Palette)
	}
}

func TestLoadDefaultFromFunction(t *testing.T) {
	cfg, err := ParseBytes([]byte(`color { default = hsl(240, 100, 50) }`), "test.hcl")
	if err != nil {
		t.Fatalf("ParseBytes() error: %v", err)
	}
	if got := cfg.DefaultColor.Hex(); got != "#0000FF" {
		t.Errorf("DefaultColor = %q, want #0000FF", got)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Parse(filepath.Join(t.TempDir(), "missing.hcl"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !strings.Contains(err.Error(), "reading config file") {
		t.Errorf("error = %v, want reading config file", err)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		wantErr string
	}{
		{
			name:    "syntax error",
			src:     `palette {`,
			wantErr: "parsing HCL",
		},
		{
			name:    "invalid palette color",
			src:     `palette { bad = "hsl(1, 2, 3)" }`,
			wantErr: "palette.bad",
		},
		{
			name:    "unknown color name",
			src:     `palette { bad = "notacolor" }`,
			wantErr: "palette.bad",
		},
		{
			name:    "non-string palette value",
			src:     `palette { bad = 42 }`,
			wantErr: "expected a color string",
		},
		{
			name:    "nested palette block",
			src:     "palette {\n  group {\n    a = \"#fff\"\n  }\n}",
			wantErr: "nested blocks are not supported",
		},
		{
			name:    "forward reference",
			src:     "palette {\n  surface = palette.base\n  base = \"#191724\"\n}",
			wantErr: "palette.surface",
		},
		{
			name:    "invalid default",
			src:     `color { default = "#12" }`,
			wantErr: "color.default",
		},
		{
			name:    "token length out of range",
			src:     `token { length = 0 }`,
			wantErr: "token.length",
		},
		{
			name:    "unknown token attribute",
			src:     `token { digits = true }`,
			wantErr: "decoding",
		},
		{
			name:    "rgba channel out of range",
			src:     `palette { bad = rgba(300, 0, 0, 1) }`,
			wantErr: "palette.bad",
		},
		{
			name:    "hex of garbage",
			src:     `palette { bad = hex("nope") }`,
			wantErr: "palette.bad",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseBytes([]byte(tt.src), "test.hcl")
			if err == nil {
				t.Fatalf("expected error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestPaletteSelfReferenceKeepsAlpha(t *testing.T) {
	src := `
palette {
  glass = "rgba(1, 2, 3, 0.5)"
  copy  = palette.glass
}
`
	cfg, err := ParseBytes([]byte(src), "test.hcl")
	if err != nil {
		t.Fatalf("ParseBytes() error: %v", err)
	}
	if got, want := cfg.Palette["copy"], (color.Color{R: 1, G: 2, B: 3, A: 0.5}); got != want {
		t.Errorf("copy = %v, want %v", got, want)
	}
}

func TestColorText(t *testing.T) {
	if got := ColorText(color.Color{R: 255, A: 1}); got != "#FF0000" {
		t.Errorf("ColorText(opaque) = %q, want #FF0000", got)
	}
	if got := ColorText(color.Color{R: 255, A: 0.5}); got != "rgba(255, 0, 0, 0.5)" {
		t.Errorf("ColorText(translucent) = %q", got)
	}
}

func TestRGBAFuncRoundsChannels(t *testing.T) {
	src := `
palette {
  tint = rgba(135.9, 0.4, 254.5, 0.5)
}
`
	cfg, err := ParseBytes([]byte(src), "test.hcl")
	if err != nil {
		t.Fatalf("ParseBytes() error: %v", err)
	}
	if got, want := cfg.Palette["tint"], (color.Color{R: 136, G: 0, B: 255, A: 0.5}); got != want {
		t.Errorf("tint = %v, want %v", got, want)
	}
}
