package components

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/periodica/internal/ui/theme"
)

// ProgressBar displays a horizontal progress bar. Below Warn the filled
// part turns red.
type ProgressBar struct {
	Label   string
	Percent float64
	Warn    float64
	Width   int
}

// View renders the progress bar.
func (p ProgressBar) View() string {
	var result string

	if p.Label != "" {
		result += lipgloss.NewStyle().Foreground(theme.Text).Render(p.Label) + "  "
	}

	barWidth := max(p.Width-lipgloss.Width(result), 4)
	filled := min(max(int(float64(barWidth)*p.Percent), 0), barWidth)
	empty := barWidth - filled

	fill := theme.Secondary
	if p.Percent < p.Warn {
		fill = theme.Error
	}

	result += lipgloss.NewStyle().Background(fill).Render(strings.Repeat(" ", filled))
	result += lipgloss.NewStyle().Background(theme.Border).Render(strings.Repeat(" ", empty))
	return result
}
