package color

import (
	"strings"

	"golang.org/x/image/colornames"
)

// Views holds the display string of every format, all derived from one
// canonical Color.
type Views struct {
	Hex  string
	RGBA string
	HSL  string
	CMYK string
	HSV  string
}

// ViewsOf derives every textual representation of c.
func ViewsOf(c Color) Views {
	return Views{
		Hex:  c.Hex(),
		RGBA: c.RGBA(),
		HSL:  RGBToHSL(c).String(),
		CMYK: RGBToCMYK(c).String(),
		HSV:  RGBToHSV(c).String(),
	}
}

// Get returns the view for format f.
func (v Views) Get(f Format) string {
	switch f {
	case FormatRGBA:
		return v.RGBA
	case FormatHSL:
		return v.HSL
	case FormatCMYK:
		return v.CMYK
	case FormatHSV:
		return v.HSV
	default:
		return v.Hex
	}
}

// Lookup resolves an SVG 1.1 color keyword such as "cornflowerblue".
func Lookup(name string) (Color, bool) {
	c, ok := colornames.Map[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Color{}, false
	}
	return Color{R: c.R, G: c.G, B: c.B, A: 1}, true
}
