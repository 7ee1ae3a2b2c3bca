package engine

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func setupTemplateDir(t *testing.T, templates map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range templates {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestRun(t *testing.T) {
	tmplDir := setupTemplateDir(t, map[string]string{
		"colors.css.tmpl": `:root {
{{- range .Entries }}
  --{{ .Name }}: {{ .Hex }};
{{- end }}
}
accent={{ hsl "love" }}
glass={{ rgba .Palette.glass }}`,
	})
	outDir := filepath.Join(t.TempDir(), "output")

	e := &Engine{
		TemplatesDir: tmplDir,
		OutputDir:    outDir,
	}

	if err := e.Run(testPalette()); err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	content, err := os.ReadFile(filepath.Join(outDir, "colors.css"))
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}

	got := string(content)
	wantLines := []string{
		"--base: #191724;",
		"--love: #EB6F92;",
		"--glass: #0000FF;",
		"accent=hsl(343, 76%, 68%)",
		"glass=rgba(0, 0, 255, 0.5)",
	}
	for _, want := range wantLines {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q, got:\n%s", want, got)
		}
	}
}

func TestRunAppFilter(t *testing.T) {
	tmplDir := setupTemplateDir(t, map[string]string{
		"app1.txt.tmpl": "app1={{ hex \"base\" }}",
		"app2.txt.tmpl": "app2={{ hex \"base\" }}",
	})
	outDir := filepath.Join(t.TempDir(), "output")

	e := &Engine{
		TemplatesDir: tmplDir,
		OutputDir:    outDir,
		Apps:         []string{"app1.txt"},
	}

	if err := e.Run(testPalette()); err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	// app1 should exist
	if _, err := os.Stat(filepath.Join(outDir, "app1.txt")); err != nil {
		t.Error("app1.txt should exist")
	}

	// app2 should NOT exist
	if _, err := os.Stat(filepath.Join(outDir, "app2.txt")); err == nil {
		t.Error("app2.txt should not exist when filtered")
	}
}

func TestRunNoTemplates(t *testing.T) {
	tmplDir := t.TempDir() // empty directory
	outDir := filepath.Join(t.TempDir(), "output")

	e := &Engine{
		TemplatesDir: tmplDir,
		OutputDir:    outDir,
	}

	if err := e.Run(testPalette()); err == nil {
		t.Fatal("expected error for empty templates directory")
	}
}

func TestRunTemplateError(t *testing.T) {
	tmplDir := setupTemplateDir(t, map[string]string{
		"bad.txt.tmpl": `{{ hex "missing" }}`,
	})
	outDir := filepath.Join(t.TempDir(), "output")

	e := &Engine{
		TemplatesDir: tmplDir,
		OutputDir:    outDir,
	}

	err := e.Run(testPalette())
	if err == nil {
		t.Fatal("expected error for unknown palette color")
	}
	if !strings.Contains(err.Error(), "executing template") {
		t.Errorf("error = %v, want executing template", err)
	}
}
