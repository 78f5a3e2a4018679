package common

import "github.com/charmbracelet/lipgloss"

// Styles contains the viewer styles.
type Styles struct {
	Status      lipgloss.Style // status line body
	StatusTitle lipgloss.Style
	StatusMuted lipgloss.Style
	Error       lipgloss.Style
}

// NewStyles builds styles for a palette.
func NewStyles(p Palette) Styles {
	return Styles{
		Status: lipgloss.NewStyle().
			Foreground(p.Foreground).
			Background(p.Surface),

		StatusTitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Primary).
			Background(p.Surface),

		StatusMuted: lipgloss.NewStyle().
			Foreground(p.Muted).
			Background(p.Surface),

		Error: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Error).
			Background(p.Surface),
	}
}

// DefaultStyles returns the dark styles.
func DefaultStyles() Styles {
	return NewStyles(DarkPalette)
}
