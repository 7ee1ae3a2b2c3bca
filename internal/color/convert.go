package color

import (
	"fmt"
	"math"
)

// HSL is hue in degrees [0, 360) with saturation and lightness in percent.
type HSL struct {
	H, S, L float64
}

// CMYK holds cyan, magenta, yellow and key (black) in percent.
type CMYK struct {
	C, M, Y, K float64
}

// HSV is hue in degrees [0, 360) with saturation and value in percent.
type HSV struct {
	H, S, V float64
}

// String returns the color as "hsl(H, S%, L%)".
func (h HSL) String() string {
	return fmt.Sprintf("hsl(%s, %s%%, %s%%)", formatNumber(h.H), formatNumber(h.S), formatNumber(h.L))
}

// String returns the color as "cmyk(C%, M%, Y%, K%)".
func (c CMYK) String() string {
	return fmt.Sprintf("cmyk(%s%%, %s%%, %s%%, %s%%)",
		formatNumber(c.C), formatNumber(c.M), formatNumber(c.Y), formatNumber(c.K))
}

// String returns the color as "hsv(H, S%, V%)".
func (h HSV) String() string {
	return fmt.Sprintf("hsv(%s, %s%%, %s%%)", formatNumber(h.H), formatNumber(h.S), formatNumber(h.V))
}

// RGBToHSL converts a Color to HSL, rounding every component to an integer.
func RGBToHSL(c Color) HSL {
	r, g, b := c.unit()
	max := math.Max(math.Max(r, g), b)
	min := math.Min(math.Min(r, g), b)
	l := (max + min) / 2.0

	var h, s float64
	if max != min {
		d := max - min
		if l > 0.5 {
			s = d / (2.0 - max - min)
		} else {
			s = d / (max + min)
		}
		h = hue(r, g, b, max, d)
	}

	return HSL{
		H: degrees(h),
		S: math.Round(s * 100),
		L: math.Round(l * 100),
	}
}

// HSLToRGB converts HSL back to an opaque Color.
func HSLToRGB(h HSL) Color {
	s := clampPercent(h.S) / 100
	l := clampPercent(h.L) / 100
	c := (1 - math.Abs(2*l-1)) * s
	return fromSector(normalizeHue(h.H), c, l-c/2)
}

// RGBToCMYK converts a Color to CMYK percentages. Pure black maps to
// {0, 0, 0, 100} since 1-k would otherwise be zero.
func RGBToCMYK(c Color) CMYK {
	if c.R == 0 && c.G == 0 && c.B == 0 {
		return CMYK{K: 100}
	}
	r, g, b := c.unit()
	c1, m1, y1 := 1-r, 1-g, 1-b
	k := math.Min(math.Min(c1, m1), y1)

	return CMYK{
		C: math.Round((c1 - k) / (1 - k) * 100),
		M: math.Round((m1 - k) / (1 - k) * 100),
		Y: math.Round((y1 - k) / (1 - k) * 100),
		K: math.Round(k * 100),
	}
}

// CMYKToRGB converts CMYK percentages back to an opaque Color.
func CMYKToRGB(c CMYK) Color {
	k := 1 - clampPercent(c.K)/100
	channel := func(v float64) uint8 {
		return clampChannel(math.Round(255 * (1 - clampPercent(v)/100) * k))
	}
	return Color{R: channel(c.C), G: channel(c.M), B: channel(c.Y), A: 1}
}

// RGBToHSV converts a Color to HSV, rounding every component to an integer.
func RGBToHSV(c Color) HSV {
	r, g, b := c.unit()
	max := math.Max(math.Max(r, g), b)
	min := math.Min(math.Min(r, g), b)
	d := max - min

	var h, s float64
	if max != 0 {
		s = d / max
	}
	if d != 0 {
		h = hue(r, g, b, max, d)
	}

	return HSV{
		H: degrees(h),
		S: math.Round(s * 100),
		V: math.Round(max * 100),
	}
}

// HSVToRGB converts HSV back to an opaque Color.
func HSVToRGB(h HSV) Color {
	s := clampPercent(h.S) / 100
	v := clampPercent(h.V) / 100
	c := v * s
	return fromSector(normalizeHue(h.H), c, v-c)
}

// unit returns the channels scaled to [0, 1].
func (c Color) unit() (r, g, b float64) {
	return float64(c.R) / 255.0, float64(c.G) / 255.0, float64(c.B) / 255.0
}

// hue returns the hue as a fraction of a full turn, in [0, 1).
// max must be one of r, g, b and d must be non-zero.
func hue(r, g, b, max, d float64) float64 {
	var h float64
	switch max {
	case r:
		h = (g - b) / d
		if g < b {
			h += 6.0
		}
	case g:
		h = (b-r)/d + 2.0
	case b:
		h = (r-g)/d + 4.0
	}
	return h / 6.0
}

// degrees scales a hue fraction to whole degrees, folding 360 back to 0.
func degrees(h float64) float64 {
	d := math.Round(h * 360)
	if d >= 360 {
		d -= 360
	}
	return d
}

// fromSector rebuilds RGB from hue h in degrees, chroma c and match m
// by assigning {c, x, 0} to the channels per 60° sector.
func fromSector(h, c, m float64) Color {
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))

	var r, g, b float64
	switch {
	case h < 60:
		r, g, b = c, x, 0
	case h < 120:
		r, g, b = x, c, 0
	case h < 180:
		r, g, b = 0, c, x
	case h < 240:
		r, g, b = 0, x, c
	case h < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}

	return Color{
		R: clampChannel(math.Round((r + m) * 255)),
		G: clampChannel(math.Round((g + m) * 255)),
		B: clampChannel(math.Round((b + m) * 255)),
		A: 1,
	}
}

// normalizeHue wraps degrees into [0, 360).
func normalizeHue(h float64) float64 {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	return h
}

func clampPercent(v float64) float64 {
	return math.Max(0, math.Min(100, v))
}
