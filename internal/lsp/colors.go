package lsp

import (
	"math"
	"strings"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/vezinbastien/devtools/internal/color"
)

// colorToLSP converts a color.Color to a protocol.Color (float32 0.0-1.0).
func colorToLSP(c color.Color) protocol.Color {
	return protocol.Color{
		Red:   float32(c.R) / 255.0,
		Green: float32(c.G) / 255.0,
		Blue:  float32(c.B) / 255.0,
		Alpha: float32(c.A),
	}
}

// colorFromLSP converts a picker color back to channels, rounding to the
// nearest integer.
func colorFromLSP(c protocol.Color) color.Color {
	channel := func(v protocol.Decimal) uint8 {
		return uint8(math.Round(math.Max(0, math.Min(1, float64(v))) * 255))
	}
	alpha := math.Round(math.Max(0, math.Min(1, float64(c.Alpha)))*100) / 100
	return color.Color{
		R: channel(c.Red),
		G: channel(c.Green),
		B: channel(c.Blue),
		A: alpha,
	}
}

// documentColors converts the analysis result's color locations into LSP ColorInformation items.
func documentColors(result *AnalysisResult) []protocol.ColorInformation {
	if result == nil {
		return []protocol.ColorInformation{}
	}

	infos := make([]protocol.ColorInformation, 0, len(result.Colors))
	for _, cl := range result.Colors {
		infos = append(infos, protocol.ColorInformation{
			Range: cl.Range,
			Color: colorToLSP(cl.Color),
		})
	}
	return infos
}

// presentationOrder lists every format with first moved to the front.
func presentationOrder(first color.Format) []color.Format {
	order := []color.Format{first}
	for _, f := range color.Formats {
		if f != first {
			order = append(order, f)
		}
	}
	return order
}

// colorPresentation offers the picked color in all five formats. The
// literal's own format comes first so accepting the default keeps it.
// In config files the values are quoted strings the loader accepts, and
// palette references get no presentations so they are never replaced
// by literals.
func colorPresentation(content string, params *protocol.ColorPresentationParams) []protocol.ColorPresentation {
	text := extractText(content, params.Range)
	config := isConfig(string(params.TextDocument.URI))
	if config && strings.HasPrefix(text, "palette.") {
		return []protocol.ColorPresentation{}
	}

	views := color.ViewsOf(colorFromLSP(params.Color))
	presentations := make([]protocol.ColorPresentation, 0, len(color.Formats))
	for _, f := range presentationOrder(literalFormat(text)) {
		label := views.Get(f)
		newText := label
		if config {
			newText = `"` + label + `"`
		}
		presentations = append(presentations, protocol.ColorPresentation{
			Label: label,
			TextEdit: &protocol.TextEdit{
				Range:   params.Range,
				NewText: newText,
			},
		})
	}
	return presentations
}

// textDocumentColor handles textDocument/documentColor requests.
func (s *Server) textDocumentColor(_ *glsp.Context, params *protocol.DocumentColorParams) ([]protocol.ColorInformation, error) {
	doc, ok := s.docs.Document(string(params.TextDocument.URI))
	if !ok {
		return []protocol.ColorInformation{}, nil
	}
	return documentColors(doc.Result), nil
}

// textDocumentColorPresentation handles textDocument/colorPresentation requests.
func (s *Server) textDocumentColorPresentation(_ *glsp.Context, params *protocol.ColorPresentationParams) ([]protocol.ColorPresentation, error) {
	content, ok := s.docs.Get(string(params.TextDocument.URI))
	if !ok {
		return []protocol.ColorPresentation{}, nil
	}
	return colorPresentation(content, params), nil
}
