package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/periodica/internal/ui/theme"
)

// ContentWidth returns the uniform inner width used for framed sections.
func ContentWidth(frameWidth int) int {
	// Leave room for the frame border (2) + inner padding (4)
	return min(max(frameWidth-6, 20), 64)
}

// Frame wraps content in a double border, centered in the given area.
func Frame(content string, width, height int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Primary).
		Width(width - 2).
		Height(height - 2).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

// Card wraps content in a rounded-border card at the given content width.
func Card(content string, cw int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Width(cw - 2).
		Align(lipgloss.Center).
		Padding(1, 2).
		Render(content)
}

// Tiles renders element symbols as a row of periodic table tiles.
func Tiles(symbols ...string) string {
	tiles := make([]string, len(symbols))
	for i, s := range symbols {
		tiles[i] = theme.Tile.Render(s)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tiles...)
}
