package parser

import (
	"fmt"
	"math"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/vezinbastien/devtools/internal/color"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
)

// ColorText returns the text a palette entry exposes to expressions:
// HEX for opaque colors, rgba() otherwise so alpha survives references.
func ColorText(c color.Color) string {
	if c.A == 1 {
		return c.Hex()
	}
	return c.RGBA()
}

// paletteToCty converts the palette to an object for HCL evaluation context.
func paletteToCty(palette map[string]color.Color) cty.Value {
	if len(palette) == 0 {
		return cty.EmptyObjectVal
	}

	// Sort keys for deterministic output
	keys := make([]string, 0, len(palette))
	for k := range palette {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	vals := make(map[string]cty.Value, len(keys))
	for _, k := range keys {
		vals[k] = cty.StringVal(ColorText(palette[k]))
	}
	return cty.ObjectVal(vals)
}

func numberParams(names ...string) []function.Parameter {
	params := make([]function.Parameter, len(names))
	for i, name := range names {
		params[i] = function.Parameter{Name: name, Type: cty.Number}
	}
	return params
}

func floats(args []cty.Value) []float64 {
	out := make([]float64, len(args))
	for i, arg := range args {
		out[i], _ = arg.AsBigFloat().Float64()
	}
	return out
}

// MakeHSLFunc creates an HCL function that converts HSL to HEX.
// Usage: hsl(240, 100, 50)
func MakeHSLFunc() function.Function {
	return function.New(&function.Spec{
		Description: "Converts hue (degrees), saturation and lightness (percent) to a HEX color",
		Params:      numberParams("hue", "saturation", "lightness"),
		Type:        function.StaticReturnType(cty.String),
		Impl: func(args []cty.Value, retType cty.Type) (cty.Value, error) {
			v := floats(args)
			return cty.StringVal(color.HSLToRGB(color.HSL{H: v[0], S: v[1], L: v[2]}).Hex()), nil
		},
	})
}

// MakeHSVFunc creates an HCL function that converts HSV to HEX.
// Usage: hsv(30, 80, 90)
func MakeHSVFunc() function.Function {
	return function.New(&function.Spec{
		Description: "Converts hue (degrees), saturation and value (percent) to a HEX color",
		Params:      numberParams("hue", "saturation", "value"),
		Type:        function.StaticReturnType(cty.String),
		Impl: func(args []cty.Value, retType cty.Type) (cty.Value, error) {
			v := floats(args)
			return cty.StringVal(color.HSVToRGB(color.HSV{H: v[0], S: v[1], V: v[2]}).Hex()), nil
		},
	})
}

// MakeCMYKFunc creates an HCL function that converts CMYK to HEX.
// Usage: cmyk(0, 0, 0, 100)
func MakeCMYKFunc() function.Function {
	return function.New(&function.Spec{
		Description: "Converts cyan, magenta, yellow and key (percent) to a HEX color",
		Params:      numberParams("cyan", "magenta", "yellow", "key"),
		Type:        function.StaticReturnType(cty.String),
		Impl: func(args []cty.Value, retType cty.Type) (cty.Value, error) {
			v := floats(args)
			return cty.StringVal(color.CMYKToRGB(color.CMYK{C: v[0], M: v[1], Y: v[2], K: v[3]}).Hex()), nil
		},
	})
}

// MakeRGBAFunc creates an HCL function that builds an rgba() color.
// Usage: rgba(135, 206, 235, 0.5)
func MakeRGBAFunc() function.Function {
	return function.New(&function.Spec{
		Description: "Builds an rgba() color from 0-255 channels and a 0-1 alpha",
		Params:      numberParams("red", "green", "blue", "alpha"),
		Type:        function.StaticReturnType(cty.String),
		Impl: func(args []cty.Value, retType cty.Type) (cty.Value, error) {
			v := floats(args)
			for i, ch := range v[:3] {
				if ch < 0 || ch > 255 {
					return cty.NilVal, function.NewArgErrorf(i, "channel %v out of range 0-255", ch)
				}
			}
			if v[3] < 0 || v[3] > 1 {
				return cty.NilVal, function.NewArgErrorf(3, "alpha %v out of range 0-1", v[3])
			}
			c := color.Color{
				R: uint8(math.Round(v[0])),
				G: uint8(math.Round(v[1])),
				B: uint8(math.Round(v[2])),
				A: v[3],
			}
			return cty.StringVal(c.RGBA()), nil
		},
	})
}

// MakeHexFunc creates an HCL function that normalizes any color text to HEX.
// Usage: hex("hsl(120, 50%, 60%)") or hex("cornflowerblue")
func MakeHexFunc() function.Function {
	return function.New(&function.Spec{
		Description: "Converts HEX, rgba(), hsl(), cmyk(), hsv() or a color name to HEX",
		Params: []function.Parameter{
			{
				Name: "color",
				Type: cty.String,
			},
		},
		Type: function.StaticReturnType(cty.String),
		Impl: func(args []cty.Value, retType cty.Type) (cty.Value, error) {
			c, _, err := color.Detect(args[0].AsString())
			if err != nil {
				return cty.NilVal, fmt.Errorf("hex: %w", err)
			}
			return cty.StringVal(c.Hex()), nil
		},
	})
}

// Functions returns the color functions available in config expressions.
func Functions() map[string]function.Function {
	return map[string]function.Function{
		"hsl":  MakeHSLFunc(),
		"hsv":  MakeHSVFunc(),
		"cmyk": MakeCMYKFunc(),
		"rgba": MakeRGBAFunc(),
		"hex":  MakeHexFunc(),
	}
}

// BuildEvalContext creates an HCL evaluation context with palette variables
// and the color functions.
func BuildEvalContext(palette map[string]color.Color) *hcl.EvalContext {
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"palette": paletteToCty(palette),
		},
		Functions: Functions(),
	}
}
