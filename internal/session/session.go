package session

import (
	"fmt"
	"sync"

	"github.com/tliron/commonlog"
	"github.com/vezinbastien/devtools/internal/color"
)

// DefaultHex is the color a new editing session starts from.
const DefaultHex = "#00C951"

var log = commonlog.GetLogger("devtools.session")

// Session holds the single canonical color being edited. Every format
// field is a view derived from it; an edit in any field replaces it.
type Session struct {
	mu    sync.RWMutex
	color color.Color
}

// New starts a session from a HEX literal, which must be well-formed.
func New(defaultHex string) (*Session, error) {
	hex, err := color.ParseHex(defaultHex)
	if err != nil {
		return nil, fmt.Errorf("default color: %w", err)
	}
	return NewColor(color.DecodeHex(hex)), nil
}

// NewColor starts a session from an already decoded color, alpha included.
func NewColor(c color.Color) *Session {
	return &Session{color: c}
}

// Color returns the canonical color.
func (s *Session) Color() color.Color {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.color
}

// Hex returns the canonical color as "#RRGGBB".
func (s *Session) Hex() string {
	return s.Color().Hex()
}

// Views derives the display string of every format from the canonical color.
func (s *Session) Views() color.Views {
	return color.ViewsOf(s.Color())
}

// SetHex replaces the canonical color from a HEX field edit.
func (s *Session) SetHex(text string) error {
	return s.Set(color.FormatHex, text)
}

// SetRGBA replaces the canonical color, alpha included, from an RGBA
// field edit. Malformed text resets the color to black rather than
// failing, so it never returns an error.
func (s *Session) SetRGBA(text string) {
	_ = s.Set(color.FormatRGBA, text)
}

// SetHSL replaces the canonical color from an HSL field edit.
func (s *Session) SetHSL(text string) error {
	return s.Set(color.FormatHSL, text)
}

// SetCMYK replaces the canonical color from a CMYK field edit.
func (s *Session) SetCMYK(text string) error {
	return s.Set(color.FormatCMYK, text)
}

// SetHSV replaces the canonical color from an HSV field edit.
func (s *Session) SetHSV(text string) error {
	return s.Set(color.FormatHSV, text)
}

// Set applies an edit of the given format. If the text is rejected the
// canonical color is left untouched and the *color.FormatError is
// returned for the caller to report. Edits other than RGBA keep the
// current alpha.
func (s *Session) Set(f color.Format, text string) error {
	c, err := color.Parse(f, text)
	if err != nil {
		log.Debugf("rejected %s edit %q: %s", f, text, err)
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if f != color.FormatRGBA {
		c.A = s.color.A
	}
	s.color = c
	log.Debugf("accepted %s edit %q -> %s", f, text, c.Hex())
	return nil
}
