package lsp

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

func TestInitialize_Capabilities(t *testing.T) {
	s := NewServer("test")

	res, err := s.initialize(nil, &protocol.InitializeParams{})
	if err != nil {
		t.Fatalf("initialize: %v", err)
	}
	result, ok := res.(protocol.InitializeResult)
	if !ok {
		t.Fatalf("initialize returned %T", res)
	}
	caps := result.Capabilities

	providers := []struct {
		name string
		got  any
	}{
		{"hover", caps.HoverProvider},
		{"color", caps.ColorProvider},
		{"formatting", caps.DocumentFormattingProvider},
		{"definition", caps.DefinitionProvider},
	}
	for _, p := range providers {
		if p.got != true {
			t.Errorf("%s provider = %v, want true", p.name, p.got)
		}
	}

	if caps.CompletionProvider == nil {
		t.Fatal("completion provider not advertised")
	}
	if diff := cmp.Diff([]string{"."}, caps.CompletionProvider.TriggerCharacters); diff != "" {
		t.Errorf("trigger characters mismatch (-want +got):\n%s", diff)
	}

	opts, ok := caps.SemanticTokensProvider.(*protocol.SemanticTokensOptions)
	if !ok {
		t.Fatalf("semantic tokens provider = %T", caps.SemanticTokensProvider)
	}
	if diff := cmp.Diff(semanticTokenTypes, opts.Legend.TokenTypes); diff != "" {
		t.Errorf("token types mismatch (-want +got):\n%s", diff)
	}
	if opts.Full != true {
		t.Errorf("semantic tokens Full = %v, want true", opts.Full)
	}

	if result.ServerInfo == nil || result.ServerInfo.Name != serverName {
		t.Errorf("server info = %+v", result.ServerInfo)
	}
}

func TestDidOpen_PublishesDiagnostics(t *testing.T) {
	s := NewServer("test")

	var published []protocol.PublishDiagnosticsParams
	ctx := &glsp.Context{Notify: func(method string, params any) {
		if method == protocol.ServerTextDocumentPublishDiagnostics {
			published = append(published, params.(protocol.PublishDiagnosticsParams))
		}
	}}

	err := s.textDocumentDidOpen(ctx, &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{
			URI:  configURI,
			Text: "token {\n  length = 0\n}\n",
		},
	})
	if err != nil {
		t.Fatalf("didOpen: %v", err)
	}
	if len(published) != 1 || len(published[0].Diagnostics) != 1 {
		t.Fatalf("published = %+v, want one diagnostic", published)
	}

	if err := s.textDocumentDidClose(ctx, &protocol.DidCloseTextDocumentParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: configURI},
	}); err != nil {
		t.Fatalf("didClose: %v", err)
	}
	if len(published) != 2 || len(published[1].Diagnostics) != 0 {
		t.Errorf("close should clear diagnostics, got %+v", published)
	}
}
