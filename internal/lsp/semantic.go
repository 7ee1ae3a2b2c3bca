package lsp

import (
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/vezinbastien/devtools/internal/color"
	"github.com/zclconf/go-cty/cty"
)

// Semantic token types, indexed by position.
var semanticTokenTypes = []string{
	"keyword",   // 0: block names (color, token, palette)
	"property",  // 1: attribute names
	"namespace", // 2: the "palette" namespace identifier
	"string",    // 3: color literals
	"function",  // 4: hsl(), hsv(), cmyk(), rgba(), hex()
	"number",    // 5: numeric literals
}

// Semantic token modifiers (bit flags)
var semanticTokenModifiers = []string{
	"declaration", // bit 0: defining a new symbol
}

var tokenTypeIndices map[string]uint32

func init() {
	tokenTypeIndices = make(map[string]uint32, len(semanticTokenTypes))
	for i, t := range semanticTokenTypes {
		tokenTypeIndices[t] = uint32(i)
	}
}

// SemanticToken represents a single token with its metadata
type SemanticToken struct {
	Line      uint32 // 0-based line number
	StartChar uint32 // 0-based character offset
	Length    uint32
	Type      uint32 // index into semanticTokenTypes
	Modifiers uint32 // bit flags
}

func tokenAt(r hcl.Range, length int, kind string, modifiers uint32) SemanticToken {
	return SemanticToken{
		Line:      uint32(r.Start.Line - 1),
		StartChar: uint32(r.Start.Column - 1),
		Length:    uint32(length),
		Type:      tokenTypeIndices[kind],
		Modifiers: modifiers,
	}
}

// encodeTokens converts tokens to LSP format (5 integers per token)
// using delta encoding for line numbers and character positions.
func encodeTokens(tokens []SemanticToken) []uint32 {
	if len(tokens) == 0 {
		return []uint32{}
	}

	sort.Slice(tokens, func(i, j int) bool {
		if tokens[i].Line != tokens[j].Line {
			return tokens[i].Line < tokens[j].Line
		}
		return tokens[i].StartChar < tokens[j].StartChar
	})

	data := make([]uint32, 0, len(tokens)*5)

	var prevLine, prevChar uint32
	for _, tok := range tokens {
		deltaLine := tok.Line - prevLine
		deltaStart := tok.StartChar
		if deltaLine == 0 {
			deltaStart = tok.StartChar - prevChar
		}

		data = append(data, deltaLine, deltaStart, tok.Length, tok.Type, tok.Modifiers)

		prevLine = tok.Line
		prevChar = tok.StartChar
	}

	return data
}

// semanticTokensFull generates semantic tokens for a whole config file.
// Content that does not parse yields no tokens.
func semanticTokensFull(content string) []uint32 {
	file, diags := hclsyntax.ParseConfig([]byte(content), "", hcl.Pos{Line: 1, Column: 1})
	if diags.HasErrors() {
		return []uint32{}
	}

	body, ok := file.Body.(*hclsyntax.Body)
	if !ok {
		return []uint32{}
	}

	return encodeTokens(extractTokensFromBody(body, nil))
}

func extractTokensFromBody(body *hclsyntax.Body, tokens []SemanticToken) []SemanticToken {
	for _, block := range body.Blocks {
		tokens = append(tokens, tokenAt(block.DefRange(), len(block.Type), "keyword", 0))
		tokens = extractTokensFromBody(block.Body, tokens)
	}

	for name, attr := range body.Attributes {
		tokens = append(tokens, tokenAt(attr.NameRange, len(name), "property", 1))
		tokens = extractTokensFromExpr(attr.Expr, tokens)
	}

	return tokens
}

func extractTokensFromExpr(expr hclsyntax.Expression, tokens []SemanticToken) []SemanticToken {
	switch e := expr.(type) {
	case *hclsyntax.TemplateExpr:
		tokens = extractTokensFromTemplate(e, tokens)
	case *hclsyntax.LiteralValueExpr:
		if e.Val.Type() == cty.Number {
			r := e.SrcRange
			tokens = append(tokens, tokenAt(r, r.End.Column-r.Start.Column, "number", 0))
		}
	case *hclsyntax.ScopeTraversalExpr:
		tokens = extractTokensFromTraversal(e, tokens)
	case *hclsyntax.FunctionCallExpr:
		tokens = append(tokens, tokenAt(e.NameRange, len(e.Name), "function", 0))
		for _, arg := range e.Args {
			tokens = extractTokensFromExpr(arg, tokens)
		}
	}
	return tokens
}

// extractTokensFromTemplate marks quoted strings that hold a color.
func extractTokensFromTemplate(expr *hclsyntax.TemplateExpr, tokens []SemanticToken) []SemanticToken {
	if !expr.IsStringLiteral() {
		return tokens
	}
	val, diags := expr.Value(nil)
	if diags.HasErrors() || val.Type() != cty.String {
		return tokens
	}
	if _, _, err := color.Detect(val.AsString()); err != nil {
		return tokens
	}
	r := expr.SrcRange
	if r.Start.Line != r.End.Line {
		return tokens
	}
	return append(tokens, tokenAt(r, r.End.Column-r.Start.Column, "string", 0))
}

// extractTokensFromTraversal handles block references like palette.brand.
func extractTokensFromTraversal(expr *hclsyntax.ScopeTraversalExpr, tokens []SemanticToken) []SemanticToken {
	if len(expr.Traversal) == 0 {
		return tokens
	}

	first, ok := expr.Traversal[0].(hcl.TraverseRoot)
	if !ok {
		return tokens
	}
	if _, exists := BlockTypes[first.Name]; !exists {
		return tokens
	}

	tokens = append(tokens, tokenAt(first.SrcRange, len(first.Name), "namespace", 0))

	for _, step := range expr.Traversal[1:] {
		if attr, ok := step.(hcl.TraverseAttr); ok {
			tokens = append(tokens, tokenAt(attr.SrcRange, len(attr.Name), "property", 0))
		}
	}

	return tokens
}

// textDocumentSemanticTokensFull handles textDocument/semanticTokens/full
// requests. Only config files are tokenized.
func (s *Server) textDocumentSemanticTokensFull(_ *glsp.Context, params *protocol.SemanticTokensParams) (*protocol.SemanticTokens, error) {
	uri := string(params.TextDocument.URI)
	content, ok := s.docs.Get(uri)
	if !ok || !isConfig(uri) {
		return &protocol.SemanticTokens{Data: []protocol.UInteger{}}, nil
	}
	return &protocol.SemanticTokens{Data: semanticTokensFull(content)}, nil
}
