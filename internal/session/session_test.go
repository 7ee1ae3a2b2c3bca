package session

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/vezinbastien/devtools/internal/color"
)

func newSession(t *testing.T, hex string) *Session {
	t.Helper()
	s, err := New(hex)
	if err != nil {
		t.Fatalf("New(%q): %v", hex, err)
	}
	return s
}

func TestNew(t *testing.T) {
	s := newSession(t, DefaultHex)
	if got := s.Hex(); got != DefaultHex {
		t.Errorf("Hex() = %q, want %q", got, DefaultHex)
	}
	if got := s.Color().A; got != 1 {
		t.Errorf("alpha = %v, want 1", got)
	}

	if _, err := New("green"); err == nil {
		t.Error("New(green) should reject a non-HEX default")
	}
}

func TestViews_Red(t *testing.T) {
	s := newSession(t, "#FF0000")
	want := color.Views{
		Hex:  "#FF0000",
		RGBA: "rgba(255, 0, 0, 1)",
		HSL:  "hsl(0, 100%, 50%)",
		CMYK: "cmyk(0%, 100%, 100%, 0%)",
		HSV:  "hsv(0, 100%, 100%)",
	}
	if diff := cmp.Diff(want, s.Views()); diff != "" {
		t.Errorf("Views() mismatch (-want +got):\n%s", diff)
	}
	if got, want := s.Color(), (color.Color{R: 255, A: 1}); got != want {
		t.Errorf("Color() = %v, want %v", got, want)
	}
}

func TestViews_BlackCMYK(t *testing.T) {
	s := newSession(t, "#000000")
	if got, want := s.Views().CMYK, "cmyk(0%, 0%, 0%, 100%)"; got != want {
		t.Errorf("CMYK view = %q, want %q", got, want)
	}
}

func TestSetHex_Shorthand(t *testing.T) {
	s := newSession(t, DefaultHex)
	if err := s.SetHex("#0f0"); err != nil {
		t.Fatalf("SetHex: %v", err)
	}
	if got := s.Hex(); got != "#00FF00" {
		t.Errorf("Hex() = %q, want #00FF00", got)
	}
}

func TestSetHSL_UpdatesCanonical(t *testing.T) {
	s := newSession(t, DefaultHex)
	if err := s.SetHSL("hsl(240, 100%, 50%)"); err != nil {
		t.Fatalf("SetHSL: %v", err)
	}
	if got := s.Hex(); got != "#0000FF" {
		t.Errorf("Hex() = %q, want #0000FF", got)
	}
}

func TestSetCMYK_MalformedKeepsColor(t *testing.T) {
	s := newSession(t, "#123456")
	before := s.Color()

	err := s.SetCMYK("cmyk(1,2,3)")
	if err == nil {
		t.Fatal("expected format error")
	}
	var fe *color.FormatError
	if !errors.As(err, &fe) || fe.Format != color.FormatCMYK {
		t.Errorf("error = %v, want CMYK *FormatError", err)
	}
	if got := s.Color(); got != before {
		t.Errorf("Color() = %v after rejected edit, want %v", got, before)
	}
}

func TestSet_RejectedEditsKeepColor(t *testing.T) {
	s := newSession(t, "#ABCDEF")
	edits := []struct {
		format color.Format
		text   string
	}{
		{color.FormatHex, "#ABCD"},
		{color.FormatHSL, "hsl(1, 2, 3)"},
		{color.FormatHSV, "not a color"},
	}
	for _, e := range edits {
		if err := s.Set(e.format, e.text); !errors.Is(err, color.ErrInvalidFormat) {
			t.Errorf("Set(%v, %q) error = %v, want ErrInvalidFormat", e.format, e.text, err)
		}
	}
	if got := s.Hex(); got != "#ABCDEF" {
		t.Errorf("Hex() = %q, want #ABCDEF", got)
	}
}

func TestSetRGBA(t *testing.T) {
	s := newSession(t, DefaultHex)

	s.SetRGBA("rgba(10, 20, 30, 0.5)")
	if got, want := s.Color(), (color.Color{R: 10, G: 20, B: 30, A: 0.5}); got != want {
		t.Errorf("Color() = %v, want %v", got, want)
	}

	// Labeled edits keep the alpha chosen through RGBA.
	if err := s.SetHSV("hsv(0, 100%, 100%)"); err != nil {
		t.Fatalf("SetHSV: %v", err)
	}
	if got, want := s.Color(), (color.Color{R: 255, A: 0.5}); got != want {
		t.Errorf("Color() = %v, want %v", got, want)
	}
	if got, want := s.Views().RGBA, "rgba(255, 0, 0, 0.5)"; got != want {
		t.Errorf("RGBA view = %q, want %q", got, want)
	}

	// Half-typed input falls back to black instead of failing.
	s.SetRGBA("rgba(12,")
	if got := s.Color(); got != color.Black {
		t.Errorf("Color() = %v, want fallback black", got)
	}
}

func TestSet_ViewsStayConsistent(t *testing.T) {
	s := newSession(t, DefaultHex)
	if err := s.SetCMYK("cmyk(0%, 50%, 100%, 0%)"); err != nil {
		t.Fatalf("SetCMYK: %v", err)
	}
	views := s.Views()
	for _, f := range color.Formats {
		c, err := color.Parse(f, views.Get(f))
		if err != nil {
			t.Fatalf("view %v = %q does not parse: %v", f, views.Get(f), err)
		}
		if f == color.FormatHex || f == color.FormatRGBA {
			if c.Hex() != s.Hex() {
				t.Errorf("view %v decodes to %s, want %s", f, c.Hex(), s.Hex())
			}
		}
	}
}

func TestNewColor_KeepsAlpha(t *testing.T) {
	s := NewColor(color.Color{R: 10, G: 20, B: 30, A: 0.5})
	if got, want := s.Views().RGBA, "rgba(10, 20, 30, 0.5)"; got != want {
		t.Errorf("RGBA view = %q, want %q", got, want)
	}
	if err := s.SetHex("#FFFFFF"); err != nil {
		t.Fatalf("SetHex: %v", err)
	}
	if got := s.Color().A; got != 0.5 {
		t.Errorf("alpha = %v after HEX edit, want 0.5", got)
	}
}
