package common

import "github.com/charmbracelet/lipgloss"

// Palette is the set of colors the viewer draws with.
type Palette struct {
	Background lipgloss.Color
	Foreground lipgloss.Color
	Muted      lipgloss.Color
	Primary    lipgloss.Color
	Error      lipgloss.Color
	Surface    lipgloss.Color // status bar
	Track      lipgloss.Color // scrollbar gutter
	Thumb      lipgloss.Color
}

// Gruvbox-inspired palettes.
var (
	DarkPalette = Palette{
		Background: lipgloss.Color("#282828"),
		Foreground: lipgloss.Color("#ebdbb2"),
		Muted:      lipgloss.Color("#928374"),
		Primary:    lipgloss.Color("#83a598"),
		Error:      lipgloss.Color("#fb4934"),
		Surface:    lipgloss.Color("#3c3836"),
		Track:      lipgloss.Color("#32302f"),
		Thumb:      lipgloss.Color("#665c54"),
	}

	LightPalette = Palette{
		Background: lipgloss.Color("#fbf1c7"),
		Foreground: lipgloss.Color("#3c3836"),
		Muted:      lipgloss.Color("#928374"),
		Primary:    lipgloss.Color("#076678"),
		Error:      lipgloss.Color("#9d0006"),
		Surface:    lipgloss.Color("#ebdbb2"),
		Track:      lipgloss.Color("#f2e5bc"),
		Thumb:      lipgloss.Color("#bdae93"),
	}
)

// PaletteFor returns the palette for a theme name, defaulting to dark.
func PaletteFor(theme string) Palette {
	if theme == "light" {
		return LightPalette
	}
	return DarkPalette
}
