package color

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Format identifies one of the textual color representations.
type Format int

const (
	FormatHex Format = iota
	FormatRGBA
	FormatHSL
	FormatCMYK
	FormatHSV
)

// Formats lists every format in display order.
var Formats = []Format{FormatHex, FormatRGBA, FormatHSL, FormatCMYK, FormatHSV}

func (f Format) String() string {
	switch f {
	case FormatHex:
		return "HEX"
	case FormatRGBA:
		return "RGBA"
	case FormatHSL:
		return "HSL"
	case FormatCMYK:
		return "CMYK"
	case FormatHSV:
		return "HSV"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// ParseFormat resolves a case-insensitive format name such as "hsl".
// "rgb" is accepted as an alias for RGBA.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "hex":
		return FormatHex, nil
	case "rgba", "rgb":
		return FormatRGBA, nil
	case "hsl":
		return FormatHSL, nil
	case "cmyk":
		return FormatCMYK, nil
	case "hsv":
		return FormatHSV, nil
	}
	return 0, fmt.Errorf("unknown color format %q (valid: hex, rgba, hsl, cmyk, hsv)", name)
}

// ErrInvalidFormat is matched by every *FormatError via errors.Is.
var ErrInvalidFormat = errors.New("invalid color format")

// FormatError reports text that does not match the grammar of Format.
type FormatError struct {
	Format Format
	Input  string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid %s format: %q", e.Format, e.Input)
}

func (e *FormatError) Is(target error) bool {
	return target == ErrInvalidFormat
}

const number = `(\d+\.?\d*)`

var (
	hslPattern  = regexp.MustCompile(`(?i)hsl\(\s*` + number + `\s*,\s*` + number + `%\s*,\s*` + number + `%\s*\)`)
	cmykPattern = regexp.MustCompile(`(?i)cmyk\(\s*` + number + `%\s*,\s*` + number + `%\s*,\s*` + number + `%\s*,\s*` + number + `%\s*\)`)
	hsvPattern  = regexp.MustCompile(`(?i)hsv\(\s*` + number + `\s*,\s*` + number + `%\s*,\s*` + number + `%\s*\)`)
)

// ParseHex validates "#RGB" or "#RRGGBB" and returns it uppercased.
func ParseHex(s string) (string, error) {
	if !hexPattern.MatchString(s) {
		return "", &FormatError{Format: FormatHex, Input: s}
	}
	return strings.ToUpper(s), nil
}

// ParseHSL parses "hsl(H, S%, L%)".
func ParseHSL(s string) (HSL, error) {
	v, err := parseNumbers(hslPattern, FormatHSL, s)
	if err != nil {
		return HSL{}, err
	}
	return HSL{H: v[0], S: v[1], L: v[2]}, nil
}

// ParseCMYK parses "cmyk(C%, M%, Y%, K%)".
func ParseCMYK(s string) (CMYK, error) {
	v, err := parseNumbers(cmykPattern, FormatCMYK, s)
	if err != nil {
		return CMYK{}, err
	}
	return CMYK{C: v[0], M: v[1], Y: v[2], K: v[3]}, nil
}

// ParseHSV parses "hsv(H, S%, V%)".
func ParseHSV(s string) (HSV, error) {
	v, err := parseNumbers(hsvPattern, FormatHSV, s)
	if err != nil {
		return HSV{}, err
	}
	return HSV{H: v[0], S: v[1], V: v[2]}, nil
}

func parseNumbers(re *regexp.Regexp, f Format, s string) ([]float64, error) {
	m := re.FindStringSubmatch(s)
	if m == nil {
		return nil, &FormatError{Format: f, Input: s}
	}
	out := make([]float64, 0, len(m)-1)
	for _, field := range m[1:] {
		v, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return nil, &FormatError{Format: f, Input: s}
		}
		out = append(out, v)
	}
	return out, nil
}

// Parse decodes s as format f. The four labeled formats fail with a
// *FormatError on malformed text; RGBA keeps its lenient fallback.
func Parse(f Format, s string) (Color, error) {
	switch f {
	case FormatHex:
		hex, err := ParseHex(s)
		if err != nil {
			return Color{}, err
		}
		return DecodeHex(hex), nil
	case FormatRGBA:
		return DecodeRGBA(s), nil
	case FormatHSL:
		h, err := ParseHSL(s)
		if err != nil {
			return Color{}, err
		}
		return HSLToRGB(h), nil
	case FormatCMYK:
		c, err := ParseCMYK(s)
		if err != nil {
			return Color{}, err
		}
		return CMYKToRGB(c), nil
	case FormatHSV:
		h, err := ParseHSV(s)
		if err != nil {
			return Color{}, err
		}
		return HSVToRGB(h), nil
	}
	return Color{}, fmt.Errorf("unknown color format %v", f)
}

// Detect guesses the format of s from its prefix and parses it strictly.
// Bare CSS color names resolve through Lookup and report FormatHex.
func Detect(s string) (Color, Format, error) {
	s = strings.TrimSpace(s)
	lower := strings.ToLower(s)

	switch {
	case strings.HasPrefix(s, "#"):
		c, err := Parse(FormatHex, s)
		return c, FormatHex, err
	case strings.HasPrefix(lower, "rgb"):
		c, ok := matchRGBA(s)
		if !ok {
			return Color{}, FormatRGBA, &FormatError{Format: FormatRGBA, Input: s}
		}
		return c, FormatRGBA, nil
	case strings.HasPrefix(lower, "hsl"):
		c, err := Parse(FormatHSL, s)
		return c, FormatHSL, err
	case strings.HasPrefix(lower, "cmyk"):
		c, err := Parse(FormatCMYK, s)
		return c, FormatCMYK, err
	case strings.HasPrefix(lower, "hsv"):
		c, err := Parse(FormatHSV, s)
		return c, FormatHSV, err
	}

	if c, ok := Lookup(s); ok {
		return c, FormatHex, nil
	}
	return Color{}, FormatHex, fmt.Errorf("unrecognized color %q", s)
}
