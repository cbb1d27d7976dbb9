package loop

import "github.com/charmbracelet/lipgloss"

const (
	padding  = 2
	maxWidth = 80
)

// Style holds the lipgloss styles used by the loop view.
type Style struct {
	Base      lipgloss.Style
	Header    lipgloss.Style
	Main      lipgloss.Style
	Secondary lipgloss.Style
	Hint      lipgloss.Style
	Active    lipgloss.Style
	Logged    lipgloss.Style
	Invalid   lipgloss.Style
}

func newStyle(dark bool) Style {
	accent := lipgloss.Color("#5A56E0")
	muted := lipgloss.Color("#6C6C6C")
	green := lipgloss.Color("#2E7D32")
	red := lipgloss.Color("#C62828")

	if dark {
		accent = lipgloss.Color("#9D9AFF")
		muted = lipgloss.Color("#A0A0A0")
		green = lipgloss.Color("#81C784")
		red = lipgloss.Color("#EF9A9A")
	}

	return Style{
		Base: lipgloss.NewStyle().Padding(1, padding),
		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(accent).
			Padding(0, 1).
			MarginRight(1),
		Main:      lipgloss.NewStyle().Bold(true).Foreground(accent),
		Secondary: lipgloss.NewStyle().Foreground(muted),
		Hint:      lipgloss.NewStyle().Foreground(muted).Italic(true),
		Active:    lipgloss.NewStyle().Bold(true),
		Logged:    lipgloss.NewStyle().Foreground(green),
		Invalid:   lipgloss.NewStyle().Foreground(red),
	}
}
