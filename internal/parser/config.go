package parser

import (
	"fmt"
	"os"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/vezinbastien/devtools/internal/color"
	"github.com/vezinbastien/devtools/internal/session"
	"github.com/vezinbastien/devtools/internal/token"
	"github.com/zclconf/go-cty/cty"
)

// ParseResult holds the resolved configuration.
type ParseResult struct {
	DefaultColor color.Color
	Token        token.Options
	Palette      map[string]color.Color
	Names        []string // palette names in source order
}

// PaletteBlock wraps the palette block for gohcl decoding.
type PaletteBlock struct {
	Entries hcl.Body `hcl:",remain"`
}

// RawConfig captures the palette block first (no EvalContext needed).
type RawConfig struct {
	Palette *PaletteBlock `hcl:"palette,block"`
	Remain  hcl.Body      `hcl:",remain"`
}

// ColorBlock configures the color converter.
type ColorBlock struct {
	Default *string `hcl:"default,optional"`
}

// TokenBlock configures the token generator. Unset fields keep their defaults.
type TokenBlock struct {
	Uppercase *bool `hcl:"uppercase,optional"`
	Lowercase *bool `hcl:"lowercase,optional"`
	Numbers   *bool `hcl:"numbers,optional"`
	Symbols   *bool `hcl:"symbols,optional"`
	Length    *int  `hcl:"length,optional"`
}

// ResolvedConfig decodes blocks that may reference palette.
type ResolvedConfig struct {
	Color  *ColorBlock `hcl:"color,block"`
	Token  *TokenBlock `hcl:"token,block"`
	Remain hcl.Body    `hcl:",remain"` // palette, already handled
}

// Loader handles two-pass HCL decoding with palette resolution.
type Loader struct {
	body    hcl.Body
	ctx     *hcl.EvalContext
	palette map[string]color.Color
	names   []string
}

// NewLoader parses HCL source and resolves the palette block.
func NewLoader(src []byte, filename string) (*Loader, error) {
	file, diags := hclsyntax.ParseConfig(src, filename, hcl.Pos{Line: 1, Column: 1})
	if diags.HasErrors() {
		return nil, fmt.Errorf("parsing HCL: %s", diags.Error())
	}

	// First pass: extract palette
	var raw RawConfig
	if diags := gohcl.DecodeBody(file.Body, nil, &raw); diags.HasErrors() {
		return nil, fmt.Errorf("decoding palette: %s", diags.Error())
	}

	palette := make(map[string]color.Color)
	var names []string
	if raw.Palette != nil {
		paletteBody, ok := raw.Palette.Entries.(*hclsyntax.Body)
		if !ok {
			return nil, fmt.Errorf("palette block is not an hclsyntax.Body")
		}
		var err error
		names, err = parsePaletteBody(paletteBody, palette)
		if err != nil {
			return nil, fmt.Errorf("parsing palette: %w", err)
		}
	}

	return &Loader{
		body:    file.Body,
		ctx:     BuildEvalContext(palette),
		palette: palette,
		names:   names,
	}, nil
}

// Decode decodes a value using the palette context.
func (l *Loader) Decode(target any) error {
	if diags := gohcl.DecodeBody(l.body, l.ctx, target); diags.HasErrors() {
		return fmt.Errorf("decoding: %s", diags.Error())
	}
	return nil
}

// Palette returns the parsed palette colors.
func (l *Loader) Palette() map[string]color.Color {
	return l.palette
}

// Parse reads an HCL config file and returns a fully-resolved ParseResult.
func Parse(path string) (*ParseResult, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	return ParseBytes(src, path)
}

// ParseBytes resolves config source held in memory.
func ParseBytes(src []byte, filename string) (*ParseResult, error) {
	loader, err := NewLoader(src, filename)
	if err != nil {
		return nil, err
	}

	// Second pass: decode blocks that reference palette
	var resolved ResolvedConfig
	if err := loader.Decode(&resolved); err != nil {
		return nil, err
	}

	result := &ParseResult{
		DefaultColor: color.DecodeHex(session.DefaultHex),
		Token:        token.DefaultOptions(),
		Palette:      loader.Palette(),
		Names:        loader.names,
	}

	if resolved.Color != nil && resolved.Color.Default != nil {
		c, _, err := color.Detect(*resolved.Color.Default)
		if err != nil {
			return nil, fmt.Errorf("color.default: %w", err)
		}
		result.DefaultColor = c
	}

	if resolved.Token != nil {
		if err := applyToken(resolved.Token, &result.Token); err != nil {
			return nil, err
		}
	}

	return result, nil
}

func applyToken(block *TokenBlock, opts *token.Options) error {
	setBool := func(dst *bool, src *bool) {
		if src != nil {
			*dst = *src
		}
	}
	setBool(&opts.Uppercase, block.Uppercase)
	setBool(&opts.Lowercase, block.Lowercase)
	setBool(&opts.Numbers, block.Numbers)
	setBool(&opts.Symbols, block.Symbols)

	if block.Length != nil {
		n := *block.Length
		if n < token.MinLength || n > token.MaxLength {
			return fmt.Errorf("token.length: %d out of range %d-%d", n, token.MinLength, token.MaxLength)
		}
		opts.Length = n
	}
	return nil
}

// parsePaletteBody evaluates palette attributes in source order so each
// entry can reference the ones declared above it. It returns the names
// in that order.
func parsePaletteBody(body *hclsyntax.Body, dest map[string]color.Color) ([]string, error) {
	if len(body.Blocks) > 0 {
		block := body.Blocks[0]
		return nil, fmt.Errorf("palette.%s: nested blocks are not supported", block.Type)
	}

	attrs := make([]*hclsyntax.Attribute, 0, len(body.Attributes))
	for _, attr := range body.Attributes {
		attrs = append(attrs, attr)
	}
	sort.Slice(attrs, func(i, j int) bool {
		return attrs[i].SrcRange.Start.Byte < attrs[j].SrcRange.Start.Byte
	})

	names := make([]string, 0, len(attrs))
	for _, attr := range attrs {
		val, diags := attr.Expr.Value(BuildEvalContext(dest))
		if diags.HasErrors() {
			return nil, fmt.Errorf("evaluating palette.%s: %s", attr.Name, diags.Error())
		}
		c, err := ResolveColor(val)
		if err != nil {
			return nil, fmt.Errorf("palette.%s: %w", attr.Name, err)
		}
		dest[attr.Name] = c
		names = append(names, attr.Name)
	}
	return names, nil
}

// ResolveColor decodes a cty string holding any color text color.Detect
// understands.
func ResolveColor(val cty.Value) (color.Color, error) {
	if val.IsNull() || !val.IsKnown() {
		return color.Color{}, fmt.Errorf("color value is null or unknown")
	}
	if val.Type() != cty.String {
		return color.Color{}, fmt.Errorf("expected a color string, got %s", val.Type().FriendlyName())
	}
	c, _, err := color.Detect(val.AsString())
	return c, err
}
