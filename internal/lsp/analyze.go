package lsp

import (
	"fmt"
	"regexp"
	"strings"

	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/vezinbastien/devtools/internal/color"
)

const diagnosticSource = "devtools"

var (
	DiagError   = protocol.DiagnosticSeverityError
	DiagWarning = protocol.DiagnosticSeverityWarning
)

// literalPattern finds candidate color literals. Matches are confirmed
// with color.Detect before they become ColorLocations.
var literalPattern = regexp.MustCompile(`(?i)#[0-9a-f]{3,8}\b|\b(?:rgba?|hsl|hsv|cmyk)\([^()\n]*\)`)

// ColorLocation is a color found in a document.
type ColorLocation struct {
	Range  protocol.Range
	Color  color.Color
	Format color.Format
	Text   string
	IsRef  bool // true for palette references in config files
}

// AnalysisResult holds everything the server derives from one document.
// Palette, Names and Symbols are only filled for config files.
type AnalysisResult struct {
	Colors      []ColorLocation
	Diagnostics []protocol.Diagnostic
	Palette     map[string]color.Color
	Names       []string                  // palette names in source order
	Symbols     map[string]protocol.Range // "palette.brand" -> definition range
}

func newResult() *AnalysisResult {
	return &AnalysisResult{
		Colors:      []ColorLocation{},
		Diagnostics: []protocol.Diagnostic{},
		Palette:     make(map[string]color.Color),
		Symbols:     make(map[string]protocol.Range),
	}
}

// isConfig reports whether uri names an HCL config file.
func isConfig(uri string) bool {
	return strings.HasSuffix(uri, ".hcl")
}

// Analyze produces colors and diagnostics for a document. Config files
// are evaluated through the HCL syntax tree; anything else is scanned
// for color literals.
func Analyze(filename, content string) *AnalysisResult {
	if isConfig(filename) {
		return analyzeConfig(filename, content)
	}
	return scanLiterals(content)
}

// scanLiterals finds color literals in free text. Columns are byte
// offsets within the line.
//
// Hash-prefixed words that are not 3 or 6 hex digits are ignored since
// they are usually anchors or ids. Malformed functional literals produce
// a diagnostic: an error for the labeled formats, a warning for rgba()
// which the converter decodes as black.
func scanLiterals(content string) *AnalysisResult {
	result := newResult()

	for i, line := range strings.Split(content, "\n") {
		for _, loc := range literalPattern.FindAllStringIndex(line, -1) {
			text := line[loc[0]:loc[1]]
			r := protocol.Range{
				Start: protocol.Position{Line: protocol.UInteger(i), Character: protocol.UInteger(loc[0])},
				End:   protocol.Position{Line: protocol.UInteger(i), Character: protocol.UInteger(loc[1])},
			}

			c, f, err := color.Detect(text)
			if err != nil {
				if strings.HasPrefix(text, "#") {
					continue
				}
				result.Diagnostics = append(result.Diagnostics, literalDiagnostic(r, f, err))
				continue
			}

			result.Colors = append(result.Colors, ColorLocation{
				Range:  r,
				Color:  c,
				Format: f,
				Text:   text,
			})
		}
	}

	return result
}

func literalDiagnostic(r protocol.Range, f color.Format, err error) protocol.Diagnostic {
	severity := DiagError
	msg := err.Error()
	if f == color.FormatRGBA {
		severity = DiagWarning
		msg = fmt.Sprintf("%s (decodes as black)", msg)
	}
	return protocol.Diagnostic{
		Range:    r,
		Severity: &severity,
		Source:   strPtr(diagnosticSource),
		Message:  msg,
	}
}

// literalFormat names the format a piece of source text is written in.
// Quoted strings are detected; function calls such as hsl(240, 100, 50)
// use their name. Anything else, references included, counts as HEX.
func literalFormat(text string) color.Format {
	text = strings.Trim(text, `"`)
	if _, f, err := color.Detect(text); err == nil {
		return f
	}
	if i := strings.IndexByte(text, '('); i > 0 {
		if f, err := color.ParseFormat(strings.TrimSpace(text[:i])); err == nil {
			return f
		}
	}
	return color.FormatHex
}

func strPtr(s string) *string {
	return &s
}
