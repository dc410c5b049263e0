package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00cccc"))

	Subtle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666688"))

	MetricValue = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00ccff")).
			Bold(true)

	MetricLabel = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888899"))

	KeyName = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#00aaaa")).
		Bold(true)

	KeyHint = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#555566"))

	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ff4444"))

	Panel = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#444466")).
		Padding(0, 1)
)

// Separator is a muted rule of the given width.
func Separator(width int) string {
	if width < 1 {
		return ""
	}
	return Subtle.Render(strings.Repeat("─", width))
}

// Hints renders key/action pairs as "key action  key action".
func Hints(pairs ...string) string {
	var b strings.Builder
	for i := 0; i+1 < len(pairs); i += 2 {
		if i > 0 {
			b.WriteString("  ")
		}
		b.WriteString(KeyName.Render(pairs[i]))
		b.WriteString(KeyHint.Render(" " + pairs[i+1]))
	}
	return b.String()
}
