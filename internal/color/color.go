package color

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Color is the canonical color: 8-bit RGB channels plus alpha in [0, 1].
// Every textual format is derived from it and never stored on its own.
type Color struct {
	R, G, B uint8
	A       float64
}

// Black is the fallback color returned by the lenient decoders.
var Black = Color{A: 1}

var (
	hexPattern  = regexp.MustCompile(`^#([0-9A-Fa-f]{3}){1,2}$`)
	rgbaPattern = regexp.MustCompile(`rgba?\((\d+),\s*(\d+),\s*(\d+),?\s*([\d.]+)?\)`)
)

// Hex returns the color as "#RRGGBB" in uppercase. Alpha is not encoded.
func (c Color) Hex() string {
	n := 1<<24 + int64(c.R)<<16 + int64(c.G)<<8 + int64(c.B)
	return "#" + strings.ToUpper(strconv.FormatInt(n, 16)[1:])
}

// RGBA returns the color as "rgba(R, G, B, A)" with alpha printed as-is.
func (c Color) RGBA() string {
	return fmt.Sprintf("rgba(%d, %d, %d, %s)", c.R, c.G, c.B, formatNumber(c.A))
}

// DecodeHex decodes "#RGB" or "#RRGGBB" into an opaque Color.
// Malformed input decodes to Black instead of failing, so half-typed
// values in a live color field never interrupt editing.
func DecodeHex(s string) Color {
	if !hexPattern.MatchString(s) {
		return Black
	}
	digits := s[1:]
	if len(digits) == 3 {
		digits = string([]byte{digits[0], digits[0], digits[1], digits[1], digits[2], digits[2]})
	}
	n, err := strconv.ParseUint(digits, 16, 32)
	if err != nil {
		return Black
	}
	return Color{R: uint8(n >> 16), G: uint8(n >> 8), B: uint8(n), A: 1}
}

// DecodeRGBA extracts "rgba(R, G, B, A)" or "rgb(R, G, B)" from s.
// A missing alpha defaults to 1. Like DecodeHex, unparseable input
// yields Black.
func DecodeRGBA(s string) Color {
	c, ok := matchRGBA(s)
	if !ok {
		return Black
	}
	return c
}

func matchRGBA(s string) (Color, bool) {
	m := rgbaPattern.FindStringSubmatch(s)
	if m == nil {
		return Color{}, false
	}
	var ch [3]uint8
	for i := range ch {
		v, err := strconv.Atoi(m[i+1])
		if err != nil {
			return Color{}, false
		}
		ch[i] = clampChannel(float64(v))
	}
	a := 1.0
	if m[4] != "" {
		v, err := strconv.ParseFloat(m[4], 64)
		if err != nil {
			return Color{}, false
		}
		a = min(v, 1)
	}
	return Color{R: ch[0], G: ch[1], B: ch[2], A: a}, true
}

// formatNumber renders v in its shortest decimal form: 1, 0.5, 120.
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func clampChannel(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
