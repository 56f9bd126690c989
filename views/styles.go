// Package views renders catalog pages for the terminal and loads the data
// each page needs.
package views

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

var (
	brand   = lipgloss.Color("#1E40AF")
	success = lipgloss.Color("#16A34A")
	danger  = lipgloss.Color("#DC2626")
	warning = lipgloss.Color("#CA8A04")
	muted   = lipgloss.Color("#6B7280")
)

// Styles is bound to one renderer so colour is only emitted when the output
// supports it.
type Styles struct {
	Title    lipgloss.Style
	Heading  lipgloss.Style
	Header   lipgloss.Style
	Cell     lipgloss.Style
	Muted    lipgloss.Style
	Label    lipgloss.Style
	Active   lipgloss.Style
	Inactive lipgloss.Style
	Featured lipgloss.Style
	Error    lipgloss.Style
}

// NewStyles builds styles for output written to w.
func NewStyles(w io.Writer) Styles {
	r := lipgloss.NewRenderer(w)
	return Styles{
		Title:    r.NewStyle().Bold(true).Foreground(brand),
		Heading:  r.NewStyle().Bold(true).Underline(true),
		Header:   r.NewStyle().Bold(true).Padding(0, 1),
		Cell:     r.NewStyle().Padding(0, 1),
		Muted:    r.NewStyle().Foreground(muted),
		Label:    r.NewStyle().Bold(true),
		Active:   r.NewStyle().Foreground(success),
		Inactive: r.NewStyle().Foreground(danger),
		Featured: r.NewStyle().Foreground(warning),
		Error:    r.NewStyle().Bold(true).Foreground(danger),
	}
}

func (s Styles) Status(active bool) string {
	if active {
		return s.Active.Render("Active")
	}
	return s.Inactive.Render("Inactive")
}

func (s Styles) FeaturedBadge(featured bool) string {
	if !featured {
		return ""
	}
	return s.Featured.Render("Featured")
}
