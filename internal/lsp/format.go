package lsp

import (
	"strings"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/vezinbastien/devtools/internal/format"
)

// formatEdits returns a single whole-document edit that formats an .hcl
// config. Other documents and already-formatted content yield no edits.
func formatEdits(uri, content string) ([]protocol.TextEdit, error) {
	if !isConfig(uri) {
		return []protocol.TextEdit{}, nil
	}

	formatted, err := format.Format(content)
	if err != nil {
		return nil, err
	}
	if formatted == content {
		return []protocol.TextEdit{}, nil
	}

	lines := strings.Count(content, "\n")
	return []protocol.TextEdit{{
		Range: protocol.Range{
			Start: protocol.Position{Line: 0, Character: 0},
			End:   protocol.Position{Line: protocol.UInteger(lines + 1), Character: 0},
		},
		NewText: formatted,
	}}, nil
}

// textDocumentFormatting handles textDocument/formatting requests.
func (s *Server) textDocumentFormatting(_ *glsp.Context, params *protocol.DocumentFormattingParams) ([]protocol.TextEdit, error) {
	uri := string(params.TextDocument.URI)
	content, ok := s.docs.Get(uri)
	if !ok {
		return nil, nil
	}

	edits, err := formatEdits(uri, content)
	if err != nil {
		log.Warningf("formatting %s: %s", uri, err)
		return nil, nil
	}
	return edits, nil
}
