package lsp

import (
	"fmt"
	"math"
	"slices"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/vezinbastien/devtools/internal/color"
	"github.com/vezinbastien/devtools/internal/parser"
	"github.com/vezinbastien/devtools/internal/token"
	"github.com/zclconf/go-cty/cty"
)

// BlockTypes are the top-level blocks a config file may contain.
var BlockTypes = map[string]struct{}{
	"color":   {},
	"token":   {},
	"palette": {},
}

var tokenFlags = []string{"uppercase", "lowercase", "numbers", "symbols"}

// hclPosToLSP converts an HCL position to an LSP position.
// HCL positions are 1-based; LSP positions are 0-based.
func hclPosToLSP(pos hcl.Pos) protocol.Position {
	return protocol.Position{
		Line:      uint32(pos.Line - 1),
		Character: uint32(pos.Column - 1),
	}
}

// hclRangeToLSP converts an HCL range to an LSP range.
func hclRangeToLSP(r hcl.Range) protocol.Range {
	return protocol.Range{
		Start: hclPosToLSP(r.Start),
		End:   hclPosToLSP(r.End),
	}
}

// hclDiagToLSP converts an HCL diagnostic to an LSP diagnostic.
func hclDiagToLSP(d *hcl.Diagnostic) protocol.Diagnostic {
	sev := DiagError
	if d.Severity == hcl.DiagWarning {
		sev = DiagWarning
	}

	diag := protocol.Diagnostic{
		Severity: &sev,
		Message:  d.Summary,
		Source:   strPtr(diagnosticSource),
	}

	if d.Detail != "" {
		diag.Message = d.Summary + ": " + d.Detail
	}

	if d.Subject != nil {
		diag.Range = hclRangeToLSP(*d.Subject)
	}

	return diag
}

// addError adds an error-level diagnostic at the given range.
func (r *AnalysisResult) addError(rng hcl.Range, msg string) {
	r.Diagnostics = append(r.Diagnostics, protocol.Diagnostic{
		Range:    hclRangeToLSP(rng),
		Severity: &DiagError,
		Source:   strPtr(diagnosticSource),
		Message:  msg,
	})
}

// addWarning adds a warning-level diagnostic at the given range.
func (r *AnalysisResult) addWarning(rng hcl.Range, msg string) {
	r.Diagnostics = append(r.Diagnostics, protocol.Diagnostic{
		Range:    hclRangeToLSP(rng),
		Severity: &DiagWarning,
		Source:   strPtr(diagnosticSource),
		Message:  msg,
	})
}

// addColor records the resolved color of expr.
func (r *AnalysisResult) addColor(src []byte, expr hclsyntax.Expression, c color.Color) {
	rng := expr.Range()
	text := string(src[rng.Start.Byte:rng.End.Byte])
	r.Colors = append(r.Colors, ColorLocation{
		Range:  hclRangeToLSP(rng),
		Color:  c,
		Format: literalFormat(text),
		Text:   text,
		IsRef:  isReferenceExpr(expr),
	})
}

// analyzeConfig evaluates a config file the way the loader does and
// collects every problem instead of stopping at the first one.
func analyzeConfig(filename, content string) *AnalysisResult {
	result := newResult()
	src := []byte(content)

	file, diags := hclsyntax.ParseConfig(src, filename, hcl.Pos{Line: 1, Column: 1})
	if diags.HasErrors() {
		for _, d := range diags {
			result.Diagnostics = append(result.Diagnostics, hclDiagToLSP(d))
		}
		// Cannot proceed with semantic analysis if syntax is broken
		return result
	}

	body, ok := file.Body.(*hclsyntax.Body)
	if !ok {
		result.addError(hcl.Range{}, "internal error: parsed body is not *hclsyntax.Body")
		return result
	}

	blocks := make(map[string]*hclsyntax.Block)
	for _, block := range body.Blocks {
		if _, known := BlockTypes[block.Type]; !known {
			result.addWarning(block.DefRange(), fmt.Sprintf("unknown block %q is ignored", block.Type))
			continue
		}
		if _, dup := blocks[block.Type]; dup {
			result.addError(block.DefRange(), fmt.Sprintf("duplicate %s block", block.Type))
			continue
		}
		blocks[block.Type] = block
	}

	// Palette first: the other blocks may reference it.
	if block, ok := blocks["palette"]; ok {
		result.analyzePaletteBody(src, block.Body)
	}

	ctx := parser.BuildEvalContext(result.Palette)
	if block, ok := blocks["color"]; ok {
		result.analyzeColorBlock(src, block.Body, ctx)
	}
	if block, ok := blocks["token"]; ok {
		result.analyzeTokenBlock(block.Body, ctx)
	}

	return result
}

// analyzePaletteBody evaluates palette attributes in source order so
// each entry sees the ones declared above it.
func (r *AnalysisResult) analyzePaletteBody(src []byte, body *hclsyntax.Body) {
	for _, block := range body.Blocks {
		r.addError(block.DefRange(), fmt.Sprintf("palette.%s: nested blocks are not supported", block.Type))
	}

	attrs := make([]*hclsyntax.Attribute, 0, len(body.Attributes))
	for _, attr := range body.Attributes {
		attrs = append(attrs, attr)
	}
	sort.Slice(attrs, func(i, j int) bool {
		return attrs[i].SrcRange.Start.Byte < attrs[j].SrcRange.Start.Byte
	})

	for _, attr := range attrs {
		symbol := "palette." + attr.Name
		r.Symbols[symbol] = hclRangeToLSP(attr.SrcRange)

		val, diags := attr.Expr.Value(parser.BuildEvalContext(r.Palette))
		if diags.HasErrors() {
			r.addError(attr.SrcRange, fmt.Sprintf("evaluating %s: %s", symbol, diags.Error()))
			continue
		}
		c, err := parser.ResolveColor(val)
		if err != nil {
			r.addError(attr.SrcRange, fmt.Sprintf("%s: %s", symbol, err))
			continue
		}

		r.Palette[attr.Name] = c
		r.Names = append(r.Names, attr.Name)
		r.addColor(src, attr.Expr, c)
	}
}

// analyzeColorBlock checks the color block's default.
func (r *AnalysisResult) analyzeColorBlock(src []byte, body *hclsyntax.Body, ctx *hcl.EvalContext) {
	for _, block := range body.Blocks {
		r.addError(block.DefRange(), fmt.Sprintf("color: unexpected block %q", block.Type))
	}

	for _, attr := range body.Attributes {
		if attr.Name != "default" {
			r.addError(attr.SrcRange, fmt.Sprintf("color.%s: unsupported attribute", attr.Name))
			continue
		}
		val, diags := attr.Expr.Value(ctx)
		if diags.HasErrors() {
			r.addError(attr.SrcRange, fmt.Sprintf("color.default: %s", diags.Error()))
			continue
		}
		c, err := parser.ResolveColor(val)
		if err != nil {
			r.addError(attr.SrcRange, fmt.Sprintf("color.default: %s", err))
			continue
		}
		r.addColor(src, attr.Expr, c)
	}
}

// analyzeTokenBlock checks the token generator settings.
func (r *AnalysisResult) analyzeTokenBlock(body *hclsyntax.Body, ctx *hcl.EvalContext) {
	for _, block := range body.Blocks {
		r.addError(block.DefRange(), fmt.Sprintf("token: unexpected block %q", block.Type))
	}

	for _, attr := range body.Attributes {
		name := "token." + attr.Name
		val, diags := attr.Expr.Value(ctx)
		if diags.HasErrors() {
			r.addError(attr.SrcRange, fmt.Sprintf("%s: %s", name, diags.Error()))
			continue
		}
		if val.IsNull() || !val.IsKnown() {
			r.addError(attr.SrcRange, fmt.Sprintf("%s: value is null or unknown", name))
			continue
		}

		switch {
		case attr.Name == "length":
			if val.Type() != cty.Number {
				r.addError(attr.SrcRange, fmt.Sprintf("%s: expected a number, got %s", name, val.Type().FriendlyName()))
				continue
			}
			n, _ := val.AsBigFloat().Float64()
			if n != math.Trunc(n) {
				r.addError(attr.SrcRange, fmt.Sprintf("%s: must be a whole number", name))
				continue
			}
			if n < token.MinLength || n > token.MaxLength {
				r.addError(attr.SrcRange, fmt.Sprintf("%s: %v out of range %d-%d", name, n, token.MinLength, token.MaxLength))
			}
		case slices.Contains(tokenFlags, attr.Name):
			if val.Type() != cty.Bool {
				r.addError(attr.SrcRange, fmt.Sprintf("%s: expected a bool, got %s", name, val.Type().FriendlyName()))
			}
		default:
			r.addError(attr.SrcRange, fmt.Sprintf("%s: unsupported attribute", name))
		}
	}
}

// isReferenceExpr returns true if the expression is a scope traversal
// (e.g. palette.brand) rather than a literal value.
func isReferenceExpr(expr hclsyntax.Expression) bool {
	switch expr.(type) {
	case *hclsyntax.ScopeTraversalExpr:
		return true
	case *hclsyntax.RelativeTraversalExpr:
		return true
	default:
		return false
	}
}
