package lsp

import (
	"strings"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// blockRefAtCursor extracts the block reference path up to the cursor position.
// If the cursor is on "brand" in "palette.brand" it returns "palette.brand";
// on "palette" it returns "palette". Returns "" if the cursor is not on a
// block reference.
func blockRefAtCursor(line string, character uint32) string {
	col := int(character)
	if col >= len(line) {
		return ""
	}

	end := col
	for end < len(line) && isIdentChar(line[end]) {
		end++
	}

	start := col
	for start > 0 && isIdentChar(line[start-1]) {
		start--
	}

	word := line[start:end]
	parts := strings.Split(word, ".")

	if _, exists := BlockTypes[parts[0]]; !exists {
		return ""
	}

	// A bare block name only counts when a dot follows it.
	if len(parts) == 1 {
		if end < len(line) && line[end] == '.' {
			return parts[0]
		}
		return ""
	}

	cursorInWord := col - start
	var resultParts []string
	currentPos := 0

	for _, part := range parts {
		if currentPos <= cursorInWord {
			resultParts = append(resultParts, part)
		}
		currentPos += len(part) + 1 // +1 for dot
	}

	return strings.Join(resultParts, ".")
}

// isIdentChar returns true if the byte is a valid identifier character
// (letter, digit, underscore, or dot for dotted paths).
func isIdentChar(b byte) bool {
	return (b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z') ||
		(b >= '0' && b <= '9') ||
		b == '_' || b == '.'
}

// definition returns where the palette entry under the cursor is declared.
// Returns nil if the cursor is not on a known palette reference.
func definition(result *AnalysisResult, content string, uri string, pos protocol.Position) *protocol.Location {
	if result == nil {
		return nil
	}

	lines := strings.Split(content, "\n")
	lineIdx := int(pos.Line)
	if lineIdx >= len(lines) {
		return nil
	}

	ref := blockRefAtCursor(lines[lineIdx], pos.Character)
	if ref == "" {
		return nil
	}

	symRange, ok := result.Symbols[ref]
	if !ok {
		return nil
	}

	return &protocol.Location{
		URI:   protocol.DocumentUri(uri),
		Range: symRange,
	}
}

// textDocumentDefinition handles textDocument/definition requests.
func (s *Server) textDocumentDefinition(_ *glsp.Context, params *protocol.DefinitionParams) (any, error) {
	uri := string(params.TextDocument.URI)

	doc, ok := s.docs.Document(uri)
	if !ok {
		return nil, nil
	}

	loc := definition(doc.Result, doc.Content, uri, params.Position)
	if loc == nil {
		return nil, nil
	}
	return loc, nil
}
