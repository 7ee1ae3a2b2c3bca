package lsp

import (
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
)

const serverName = "devtools-lsp"

var log = commonlog.GetLogger("devtools.lsp")

type Server struct {
	handler protocol.Handler
	docs    *DocumentStore
	version string
}

func NewServer(version string) *Server {
	s := &Server{
		docs:    NewDocumentStore(),
		version: version,
	}

	s.handler = protocol.Handler{
		Initialize:                    s.initialize,
		Initialized:                   s.initialized,
		Shutdown:                      s.shutdown,
		SetTrace:                      s.setTrace,
		TextDocumentDidOpen:           s.textDocumentDidOpen,
		TextDocumentDidChange:         s.textDocumentDidChange,
		TextDocumentDidClose:          s.textDocumentDidClose,
		TextDocumentHover:             s.textDocumentHover,
		TextDocumentColor:             s.textDocumentColor,
		TextDocumentColorPresentation: s.textDocumentColorPresentation,
		TextDocumentFormatting:        s.textDocumentFormatting,
		TextDocumentDefinition:        s.textDocumentDefinition,
		TextDocumentCompletion:        s.textDocumentCompletion,

		TextDocumentSemanticTokensFull: s.textDocumentSemanticTokensFull,
	}

	return s
}

// Run serves the protocol over stdin/stdout until the client exits.
// verbosity follows commonlog: 0 is quiet, higher values log more.
func (s *Server) Run(verbosity int) error {
	commonlog.Configure(verbosity, nil)
	srv := server.NewServer(&s.handler, serverName, false)
	return srv.RunStdio()
}

func (s *Server) initialize(_ *glsp.Context, params *protocol.InitializeParams) (any, error) {
	capabilities := s.handler.CreateServerCapabilities()

	syncKind := protocol.TextDocumentSyncKindFull
	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: &protocol.True,
		Change:    &syncKind,
	}

	if capabilities.CompletionProvider != nil {
		capabilities.CompletionProvider.TriggerCharacters = []string{"."}
	}
	if opts, ok := capabilities.SemanticTokensProvider.(*protocol.SemanticTokensOptions); ok {
		opts.Legend = protocol.SemanticTokensLegend{
			TokenTypes:     semanticTokenTypes,
			TokenModifiers: semanticTokenModifiers,
		}
	}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    serverName,
			Version: &s.version,
		},
	}, nil
}

func (s *Server) initialized(_ *glsp.Context, _ *protocol.InitializedParams) error {
	return nil
}

func (s *Server) shutdown(_ *glsp.Context) error {
	protocol.SetTraceValue(protocol.TraceValueOff)
	return nil
}

func (s *Server) setTrace(_ *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (s *Server) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	result := s.docs.Open(string(params.TextDocument.URI), params.TextDocument.Text)
	publishDiagnostics(ctx, params.TextDocument.URI, result)
	return nil
}

func (s *Server) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	for _, change := range params.ContentChanges {
		if c, ok := change.(protocol.TextDocumentContentChangeEventWhole); ok {
			result := s.docs.Update(string(params.TextDocument.URI), c.Text)
			publishDiagnostics(ctx, params.TextDocument.URI, result)
		}
	}
	return nil
}

func (s *Server) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	s.docs.Close(string(params.TextDocument.URI))
	// Clear diagnostics for the closed document.
	publishDiagnostics(ctx, params.TextDocument.URI, nil)
	return nil
}

func publishDiagnostics(ctx *glsp.Context, uri protocol.DocumentUri, result *AnalysisResult) {
	diags := []protocol.Diagnostic{}
	if result != nil {
		diags = result.Diagnostics
	}
	log.Debugf("publishing %d diagnostics for %s", len(diags), uri)
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diags,
	})
}
