// Package theme owns the visual styling of the reader, including the
// persisted dark-mode toggle and per-element style overrides.
package theme

import "github.com/charmbracelet/lipgloss"

// Theme is the active style set. Toggling dark mode swaps every style in
// place; nothing else about the view changes.
type Theme struct {
	Dark bool

	Heading   lipgloss.Style
	Summary   lipgloss.Style
	Paragraph lipgloss.Style
	Dimmed    lipgloss.Style

	Entry       lipgloss.Style
	ActiveEntry lipgloss.Style

	Speaking lipgloss.Style // paragraph being read aloud
	Flash    lipgloss.Style // transient jump highlight

	Status   lipgloss.Style
	Controls lipgloss.Style
	Toast    lipgloss.Style
	Panel    lipgloss.Style
}

// New builds the light or dark style set.
func New(dark bool) *Theme {
	t := &Theme{Dark: dark}
	t.build()
	return t
}

// Toggle flips between the light and dark sets. Two toggles restore the
// original set exactly.
func (t *Theme) Toggle() {
	t.Dark = !t.Dark
	t.build()
}

// Label names the state the toggle would switch to, for the control surface.
func (t *Theme) Label() string {
	if t.Dark {
		return "light"
	}
	return "dark"
}

func (t *Theme) build() {
	fg, dim, accent, tint := "#1A1A1A", "#777777", "#005FAF", "#D7E8FF"
	if t.Dark {
		fg, dim, accent, tint = "#DDDDDD", "#888888", "#5FB3FF", "#223344"
	}

	t.Heading = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(fg))
	t.Summary = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(accent))
	t.Paragraph = lipgloss.NewStyle().Foreground(lipgloss.Color(fg))
	t.Dimmed = lipgloss.NewStyle().Foreground(lipgloss.Color(dim))

	t.Entry = lipgloss.NewStyle().Foreground(lipgloss.Color(fg))
	t.ActiveEntry = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(accent)).
		Background(lipgloss.Color(tint))

	t.Speaking = lipgloss.NewStyle().
		Foreground(lipgloss.Color(fg)).
		Background(lipgloss.Color(tint))
	t.Flash = lipgloss.NewStyle().
		Bold(true).
		Background(lipgloss.Color("#FFD75F")).
		Foreground(lipgloss.Color("#1A1A1A"))

	t.Status = lipgloss.NewStyle().Foreground(lipgloss.Color(dim)).Padding(0, 1)
	t.Controls = lipgloss.NewStyle().Foreground(lipgloss.Color(dim)).Italic(true)
	t.Toast = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(accent))
	t.Panel = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color(dim))
}
