// Package style provides semantic terminal styling using lipgloss.
//
// This package is the only place where lipgloss is imported. Styling is
// semantic (Success, Error, ...) and a disabled Styler returns its input
// unchanged.
package style

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/footprint-tools/verb/internal/domain"
)

// Styler renders semantic roles with a palette. It implements domain.Styler.
type Styler struct {
	enabled bool
	palette Palette

	success  lipgloss.Style
	warning  lipgloss.Style
	errStyle lipgloss.Style
	info     lipgloss.Style
	muted    lipgloss.Style
	header   lipgloss.Style
}

// New builds a Styler writing to out. NO_COLOR or VERB_NO_COLOR in the
// environment force styling off regardless of enable.
func New(out io.Writer, enable bool, cfg map[string]string) *Styler {
	if os.Getenv("NO_COLOR") != "" || os.Getenv("VERB_NO_COLOR") != "" {
		enable = false
	}

	s := &Styler{enabled: enable}
	if !enable {
		return s
	}

	// ANSI256 regardless of TTY detection: the caller already decided.
	r := lipgloss.NewRenderer(out)
	r.SetColorProfile(termenv.ANSI256)
	s.palette = LoadPalette(cfg)
	s.success = makeStyle(r, s.palette.Success)
	s.warning = makeStyle(r, s.palette.Warning)
	s.errStyle = makeStyle(r, s.palette.Error)
	s.info = makeStyle(r, s.palette.Info)
	s.muted = makeStyle(r, s.palette.Muted)
	s.header = makeStyle(r, s.palette.Header)
	return s
}

func makeStyle(r *lipgloss.Renderer, value string) lipgloss.Style {
	if value == "bold" {
		return r.NewStyle().Bold(true)
	}
	return r.NewStyle().Foreground(lipgloss.Color(value))
}

// Palette returns the active palette; zero when disabled.
func (s *Styler) Palette() Palette {
	return s.palette
}

func (s *Styler) Enabled() bool { return s.enabled }

func (s *Styler) render(st lipgloss.Style, text string) string {
	if !s.enabled {
		return text
	}
	return st.Render(text)
}

func (s *Styler) Success(text string) string { return s.render(s.success, text) }
func (s *Styler) Warning(text string) string { return s.render(s.warning, text) }
func (s *Styler) Error(text string) string   { return s.render(s.errStyle, text) }
func (s *Styler) Info(text string) string    { return s.render(s.info, text) }
func (s *Styler) Muted(text string) string   { return s.render(s.muted, text) }
func (s *Styler) Header(text string) string  { return s.render(s.header, text) }

// NopStyler returns text unchanged.
type NopStyler struct{}

func (NopStyler) Enabled() bool              { return false }
func (NopStyler) Success(text string) string { return text }
func (NopStyler) Warning(text string) string { return text }
func (NopStyler) Error(text string) string   { return text }
func (NopStyler) Info(text string) string    { return text }
func (NopStyler) Muted(text string) string   { return text }
func (NopStyler) Header(text string) string  { return text }

var _ domain.Styler = (*Styler)(nil)
var _ domain.Styler = NopStyler{}
