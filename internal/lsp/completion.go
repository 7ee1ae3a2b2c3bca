package lsp

import (
	"fmt"
	"sort"
	"strings"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/vezinbastien/devtools/internal/parser"
)

// blockContext represents the kind of block the cursor is in.
type blockContext int

const (
	contextRoot    blockContext = iota
	contextColor                // inside color {}
	contextToken                // inside token {}
	contextPalette              // inside palette {}
)

// topLevelBlocks are the valid top-level block names, in the order they
// usually appear.
var topLevelBlocks = []string{"color", "token", "palette"}

var colorAttributes = []string{"default"}

var tokenAttributes = append(append([]string{}, tokenFlags...), "length")

// complete produces completion items for a config file given its analysis
// and the cursor position.
func complete(result *AnalysisResult, content string, pos protocol.Position) []protocol.CompletionItem {
	lines := strings.Split(content, "\n")
	if int(pos.Line) >= len(lines) {
		return nil
	}

	line := lines[pos.Line]
	charPos := min(int(pos.Character), len(line))
	textBeforeCursor := line[:charPos]

	if items := tryPaletteCompletion(result, textBeforeCursor); items != nil {
		return items
	}

	ctx := determineBlockContext(lines, int(pos.Line))

	if isValuePosition(textBeforeCursor) {
		switch ctx {
		case contextPalette, contextColor:
			return valueCompletions()
		case contextToken:
			return boolCompletions()
		}
		return nil
	}

	switch ctx {
	case contextColor:
		return attributeCompletions(colorAttributes, lines, int(pos.Line))
	case contextToken:
		return attributeCompletions(tokenAttributes, lines, int(pos.Line))
	case contextRoot:
		return topLevelCompletions()
	}

	return nil
}

// tryPaletteCompletion returns the palette names when the text before the
// cursor ends in "palette." or a partial name after it. The client filters
// the partial match.
func tryPaletteCompletion(result *AnalysisResult, textBeforeCursor string) []protocol.CompletionItem {
	if result == nil || len(result.Names) == 0 {
		return nil
	}

	idx := strings.LastIndex(textBeforeCursor, "palette.")
	if idx == -1 {
		return nil
	}

	partial := textBeforeCursor[idx+len("palette."):]
	if strings.ContainsAny(partial, ". ") {
		return nil
	}

	kind := protocol.CompletionItemKindColor
	items := make([]protocol.CompletionItem, 0, len(result.Names))
	for _, name := range result.Names {
		detail := result.Palette[name].Hex()
		items = append(items, protocol.CompletionItem{
			Label:  name,
			Kind:   &kind,
			Detail: &detail,
		})
	}
	return items
}

// isValuePosition returns true if the text before the cursor indicates we are
// at a value position (after an "=" sign with nothing meaningful following it).
func isValuePosition(textBeforeCursor string) bool {
	trimmed := strings.TrimSpace(textBeforeCursor)
	eqIdx := strings.LastIndex(trimmed, "=")
	if eqIdx == -1 {
		return false
	}
	afterEq := strings.TrimSpace(trimmed[eqIdx+1:])
	return afterEq == ""
}

// valueCompletions returns a snippet for every config color function plus
// a palette reference trigger.
func valueCompletions() []protocol.CompletionItem {
	snippetFormat := protocol.InsertTextFormatSnippet
	funcs := parser.Functions()

	names := make([]string, 0, len(funcs))
	for name := range funcs {
		names = append(names, name)
	}
	sort.Strings(names)

	items := make([]protocol.CompletionItem, 0, len(names)+1)
	for _, name := range names {
		fn := funcs[name]
		params := fn.Params()
		args := make([]string, len(params))
		placeholders := make([]string, len(params))
		for i, p := range params {
			args[i] = p.Name
			placeholders[i] = fmt.Sprintf("${%d:%s}", i+1, p.Name)
		}
		snippet := name + "(" + strings.Join(placeholders, ", ") + ")"
		items = append(items, protocol.CompletionItem{
			Label:            name,
			Kind:             completionKindPtr(protocol.CompletionItemKindFunction),
			Detail:           strPtr(name + "(" + strings.Join(args, ", ") + ")"),
			Documentation:    fn.Description(),
			InsertText:       &snippet,
			InsertTextFormat: &snippetFormat,
		})
	}

	paletteSnippet := "palette."
	items = append(items, protocol.CompletionItem{
		Label:      "palette",
		Kind:       completionKindPtr(protocol.CompletionItemKindVariable),
		Detail:     strPtr("palette reference"),
		InsertText: &paletteSnippet,
	})
	return items
}

func boolCompletions() []protocol.CompletionItem {
	kind := protocol.CompletionItemKindKeyword
	return []protocol.CompletionItem{
		{Label: "true", Kind: &kind},
		{Label: "false", Kind: &kind},
	}
}

// determineBlockContext scans from the top of the file down to the cursor line
// to determine which block the cursor is in, using brace nesting.
func determineBlockContext(lines []string, cursorLine int) blockContext {
	var stack []string

	for i := 0; i <= cursorLine; i++ {
		line := strings.TrimSpace(lines[i])

		opens := strings.Count(line, "{")
		closes := strings.Count(line, "}")

		// The block name is the first word on the line that opens it.
		if opens > 0 {
			parts := strings.Fields(line)
			if len(parts) >= 1 {
				for range opens {
					stack = append(stack, parts[0])
				}
			}
		}

		for range closes {
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		}
	}

	if len(stack) == 0 {
		return contextRoot
	}

	switch stack[len(stack)-1] {
	case "color":
		return contextColor
	case "token":
		return contextToken
	case "palette":
		return contextPalette
	default:
		return contextRoot
	}
}

// attributeCompletions offers names not yet defined in the block around
// the cursor.
func attributeCompletions(names []string, lines []string, cursorLine int) []protocol.CompletionItem {
	defined := findDefinedAttributes(lines, cursorLine)
	kind := protocol.CompletionItemKindProperty

	var items []protocol.CompletionItem
	for _, name := range names {
		if !defined[name] {
			items = append(items, protocol.CompletionItem{
				Label: name,
				Kind:  &kind,
			})
		}
	}

	return items
}

// findDefinedAttributes scans the current block (from the nearest opening brace
// before cursorLine to cursorLine) and returns attribute names already defined
// (lines containing "name = ...").
func findDefinedAttributes(lines []string, cursorLine int) map[string]bool {
	defined := make(map[string]bool)

	startLine := 0
	depth := 0
	for i := cursorLine; i >= 0; i-- {
		line := strings.TrimSpace(lines[i])
		depth += strings.Count(line, "}") - strings.Count(line, "{")
		if depth < 0 {
			startLine = i
			break
		}
	}

	for i := startLine; i <= cursorLine; i++ {
		line := strings.TrimSpace(lines[i])
		if eqIdx := strings.Index(line, "="); eqIdx > 0 {
			name := strings.TrimSpace(line[:eqIdx])
			if !strings.Contains(name, " ") && !strings.Contains(name, "{") {
				defined[name] = true
			}
		}
	}

	return defined
}

// topLevelCompletions returns completion items for top-level block names.
func topLevelCompletions() []protocol.CompletionItem {
	snippetFormat := protocol.InsertTextFormatSnippet
	kind := protocol.CompletionItemKindSnippet

	var items []protocol.CompletionItem
	for _, name := range topLevelBlocks {
		snippet := name + " {\n  $0\n}"
		items = append(items, protocol.CompletionItem{
			Label:            name,
			Kind:             &kind,
			InsertText:       &snippet,
			InsertTextFormat: &snippetFormat,
		})
	}

	return items
}

// completionKindPtr returns a pointer to a CompletionItemKind.
func completionKindPtr(k protocol.CompletionItemKind) *protocol.CompletionItemKind {
	return &k
}

// textDocumentCompletion is the LSP handler for textDocument/completion requests.
// Only config files get completions.
func (s *Server) textDocumentCompletion(_ *glsp.Context, params *protocol.CompletionParams) (any, error) {
	uri := string(params.TextDocument.URI)
	if !isConfig(uri) {
		return nil, nil
	}

	doc, ok := s.docs.Document(uri)
	if !ok {
		return nil, nil
	}

	return complete(doc.Result, doc.Content, params.Position), nil
}
