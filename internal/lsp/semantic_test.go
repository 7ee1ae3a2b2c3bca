package lsp

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

// decodeTokens reverses the delta encoding so tests can compare absolute
// positions.
func decodeTokens(t *testing.T, data []uint32) []SemanticToken {
	t.Helper()
	if len(data)%5 != 0 {
		t.Fatalf("data length %d is not a multiple of 5", len(data))
	}

	var out []SemanticToken
	var line, char uint32
	for i := 0; i < len(data); i += 5 {
		if data[i] > 0 {
			line += data[i]
			char = data[i+1]
		} else {
			char += data[i+1]
		}
		out = append(out, SemanticToken{
			Line:      line,
			StartChar: char,
			Length:    data[i+2],
			Type:      data[i+3],
			Modifiers: data[i+4],
		})
	}
	return out
}

func TestEncodeTokens(t *testing.T) {
	tokens := []SemanticToken{
		{Line: 2, StartChar: 4, Length: 3, Type: 5},
		{Line: 0, StartChar: 0, Length: 7, Type: 0},
		{Line: 2, StartChar: 10, Length: 2, Type: 5},
	}
	want := []uint32{
		0, 0, 7, 0, 0,
		2, 4, 3, 5, 0,
		0, 6, 2, 5, 0,
	}
	if diff := cmp.Diff(want, encodeTokens(tokens)); diff != "" {
		t.Errorf("encoding mismatch (-want +got):\n%s", diff)
	}

	if got := encodeTokens(nil); len(got) != 0 {
		t.Errorf("empty input encoded to %v", got)
	}
}

func TestSemanticTokensFull(t *testing.T) {
	content := "palette {\n" +
		"  accent = hsl(240, 100, 50)\n" +
		"  link = palette.accent\n" +
		"  brand = \"#00C951\"\n" +
		"  label = \"not a color\"\n" +
		"}\n"

	const (
		keyword   = 0
		property  = 1
		namespace = 2
		str       = 3
		function  = 4
		number    = 5
	)
	want := []SemanticToken{
		{Line: 0, StartChar: 0, Length: 7, Type: keyword},
		{Line: 1, StartChar: 2, Length: 6, Type: property, Modifiers: 1},
		{Line: 1, StartChar: 11, Length: 3, Type: function},
		{Line: 1, StartChar: 15, Length: 3, Type: number},
		{Line: 1, StartChar: 20, Length: 3, Type: number},
		{Line: 1, StartChar: 25, Length: 2, Type: number},
		{Line: 2, StartChar: 2, Length: 4, Type: property, Modifiers: 1},
		{Line: 2, StartChar: 9, Length: 7, Type: namespace},
		{Line: 2, StartChar: 17, Length: 6, Type: property},
		{Line: 3, StartChar: 2, Length: 5, Type: property, Modifiers: 1},
		{Line: 3, StartChar: 10, Length: 9, Type: str},
		{Line: 4, StartChar: 2, Length: 5, Type: property, Modifiers: 1},
	}

	got := decodeTokens(t, semanticTokensFull(content))
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("tokens mismatch (-want +got):\n%s", diff)
	}
}

func TestSemanticTokensFull_InvalidConfig(t *testing.T) {
	if got := semanticTokensFull("palette {\n  a = \n"); len(got) != 0 {
		t.Errorf("expected no tokens for broken config, got %v", got)
	}
}
