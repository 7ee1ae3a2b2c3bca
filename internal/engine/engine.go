package engine

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"text/template"

	"github.com/tliron/commonlog"
	"github.com/vezinbastien/devtools/internal/color"
)

var log = commonlog.GetLogger("devtools.engine")

// Engine loads and executes Go templates against a palette.
type Engine struct {
	TemplatesDir string
	OutputDir    string
	Apps         []string // if non-empty, only render these template basenames
}

// Palette is the template input: named colors plus their declaration order.
type Palette struct {
	Names  []string
	Colors map[string]color.Color
}

// Run loads all .tmpl files from the templates directory, executes them
// with the given palette, and writes output files.
func (e *Engine) Run(palette Palette) error {
	pattern := filepath.Join(e.TemplatesDir, "*.tmpl")
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return fmt.Errorf("globbing templates: %w", err)
	}
	if len(matches) == 0 {
		return fmt.Errorf("no .tmpl files found in %s", e.TemplatesDir)
	}

	if err := os.MkdirAll(e.OutputDir, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	data := buildTemplateData(palette)

	for _, tmplPath := range matches {
		baseName := strings.TrimSuffix(filepath.Base(tmplPath), ".tmpl")

		if !e.shouldRender(baseName) {
			log.Debugf("skipping template %s", baseName)
			continue
		}

		if err := e.renderTemplate(tmplPath, baseName, data); err != nil {
			return err
		}
		log.Infof("rendered %s", filepath.Join(e.OutputDir, baseName))
	}

	return nil
}

func (e *Engine) shouldRender(name string) bool {
	// If no apps are specified, render all.
	if len(e.Apps) == 0 {
		return true
	}

	return slices.Contains(e.Apps, name)
}

func (e *Engine) renderTemplate(tmplPath, outputName string, data templateData) error {
	tmpl, err := template.New(filepath.Base(tmplPath)).Funcs(data.FuncMap).Option("missingkey=error").ParseFiles(tmplPath)
	if err != nil {
		return fmt.Errorf("parsing template %s: %w", tmplPath, err)
	}

	outPath := filepath.Join(e.OutputDir, outputName)
	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("creating output file %s: %w", outPath, err)
	}
	defer f.Close()

	if err := tmpl.Execute(f, data); err != nil {
		return fmt.Errorf("executing template %s: %w", tmplPath, err)
	}

	return nil
}

// templateData is the data passed to templates.
type templateData struct {
	Names   []string
	Palette map[string]color.Color
	Entries []Entry
	FuncMap template.FuncMap
}

// Entry is a palette color with every textual view precomputed.
type Entry struct {
	Name  string
	Color color.Color
	color.Views
}

// resolveColor resolves a palette name, or a literal color text, to a Color.
// Names win over literals so a palette entry can shadow a CSS name.
func resolveColor(ref string, palette map[string]color.Color) (color.Color, error) {
	if c, ok := palette[ref]; ok {
		return c, nil
	}
	c, _, err := color.Detect(ref)
	if err != nil {
		return color.Color{}, fmt.Errorf("palette color not found: %s", ref)
	}
	return c, nil
}

func buildTemplateData(palette Palette) templateData {
	entries := make([]Entry, 0, len(palette.Names))
	for _, name := range palette.Names {
		c := palette.Colors[name]
		entries = append(entries, Entry{Name: name, Color: c, Views: color.ViewsOf(c)})
	}

	// Every formatter accepts a color.Color or a string naming a palette
	// entry or holding color text.
	toColor := func(v any) (color.Color, error) {
		switch v := v.(type) {
		case color.Color:
			return v, nil
		case string:
			return resolveColor(v, palette.Colors)
		default:
			return color.Color{}, fmt.Errorf("expected color or string, got %T", v)
		}
	}
	format := func(fn func(color.Color) string) func(any) (string, error) {
		return func(v any) (string, error) {
			c, err := toColor(v)
			if err != nil {
				return "", err
			}
			return fn(c), nil
		}
	}

	return templateData{
		Names:   palette.Names,
		Palette: palette.Colors,
		Entries: entries,
		FuncMap: template.FuncMap{
			"hex": format(color.Color.Hex),
			"hexBare": format(func(c color.Color) string {
				return strings.TrimPrefix(c.Hex(), "#")
			}),
			"rgba": format(color.Color.RGBA),
			"hsl": format(func(c color.Color) string {
				return color.RGBToHSL(c).String()
			}),
			"cmyk": format(func(c color.Color) string {
				return color.RGBToCMYK(c).String()
			}),
			"hsv": format(func(c color.Color) string {
				return color.RGBToHSV(c).String()
			}),
			"views": func(v any) (color.Views, error) {
				c, err := toColor(v)
				if err != nil {
					return color.Views{}, err
				}
				return color.ViewsOf(c), nil
			},
			"color": toColor,
		},
	}
}
