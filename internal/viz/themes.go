package viz

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/san-kum/threebody/internal/palette"
)

// Theme defines color scheme for the TUI
type Theme struct {
	Name       string
	Primary    lipgloss.Color // field lines
	Secondary  lipgloss.Color // equipotentials
	Accent     lipgloss.Color // trails
	Background lipgloss.Color
	Text       lipgloss.Color
	Muted      lipgloss.Color
	Warning    lipgloss.Color
}

func lip(c colorful.Color) lipgloss.Color {
	return lipgloss.Color(c.Clamped().Hex())
}

// ThemeFor derives the terminal theme of a palette scheme.
func ThemeFor(s palette.Scheme) Theme {
	accent := s.Foreground
	if len(s.Trail) > 0 {
		accent = s.Trail[0]
	}
	return Theme{
		Name:       s.Name,
		Primary:    lip(s.Foreground),
		Secondary:  lip(s.Contour),
		Accent:     lip(accent),
		Background: lip(s.Background),
		Text:       lip(s.Foreground),
		Muted:      lip(s.Background.BlendLab(s.Foreground, 0.45)),
		Warning:    lipgloss.Color("#ff4444"),
	}
}
