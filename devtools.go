package devtools

import (
	"fmt"

	"github.com/vezinbastien/devtools/internal/color"
	"github.com/vezinbastien/devtools/internal/parser"
	"github.com/vezinbastien/devtools/internal/session"
	"github.com/vezinbastien/devtools/internal/token"
)

// DefaultConfigPath is the config file read when none is given.
const DefaultConfigPath = "devtools.hcl"

// Config is the fully-resolved configuration.
type Config struct {
	DefaultColor color.Color
	Token        token.Options
	Palette      Palette
}

// Palette is an ordered set of named colors.
type Palette struct {
	Names  []string
	Colors map[string]color.Color
}

// Entry is a named palette color with all of its textual views.
type Entry struct {
	Name  string
	Color color.Color
	Views color.Views
}

// Entries returns the palette in declaration order.
func (p Palette) Entries() []Entry {
	entries := make([]Entry, 0, len(p.Names))
	for _, name := range p.Names {
		c := p.Colors[name]
		entries = append(entries, Entry{Name: name, Color: c, Views: color.ViewsOf(c)})
	}
	return entries
}

// Load parses an HCL config file and returns a fully-resolved Config.
func Load(path string) (*Config, error) {
	raw, err := parser.Parse(path)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	return &Config{
		DefaultColor: raw.DefaultColor,
		Token:        raw.Token,
		Palette: Palette{
			Names:  raw.Names,
			Colors: raw.Palette,
		},
	}, nil
}

// Defaults returns the configuration used when no config file exists.
func Defaults() *Config {
	return &Config{
		DefaultColor: color.DecodeHex(session.DefaultHex),
		Token:        token.DefaultOptions(),
		Palette:      Palette{Colors: map[string]color.Color{}},
	}
}
