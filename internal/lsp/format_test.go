package lsp

import (
	"testing"
)

func TestFormatEdits(t *testing.T) {
	tests := []struct {
		name    string
		uri     string
		content string
		want    string // empty means no edit
	}{
		{
			name:    "hcl config is formatted",
			uri:     "file:///work/devtools.hcl",
			content: "palette {\na=\"#abc\"\n}\n",
			want:    "palette {\n  a = \"#ABC\"\n}\n",
		},
		{
			name:    "formatted config has no edits",
			uri:     "file:///work/devtools.hcl",
			content: "palette {\n  a = \"#ABC\"\n}\n",
		},
		{
			name:    "other documents are left alone",
			uri:     "file:///work/style.css",
			content: "a{color:#abc}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			edits, err := formatEdits(tt.uri, tt.content)
			if err != nil {
				t.Fatalf("formatEdits: %v", err)
			}
			if tt.want == "" {
				if len(edits) != 0 {
					t.Errorf("got %d edits, want none: %+v", len(edits), edits)
				}
				return
			}
			if len(edits) != 1 {
				t.Fatalf("got %d edits, want 1", len(edits))
			}
			if edits[0].NewText != tt.want {
				t.Errorf("NewText = %q, want %q", edits[0].NewText, tt.want)
			}
			if start := edits[0].Range.Start; start.Line != 0 || start.Character != 0 {
				t.Errorf("edit starts at %+v, want document start", start)
			}
		})
	}
}
