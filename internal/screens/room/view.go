package room

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/periodica/internal/game"
	"github.com/abhisek/periodica/internal/i18n"
	"github.com/abhisek/periodica/internal/scoring"
	"github.com/abhisek/periodica/internal/ui/components"
	"github.com/abhisek/periodica/internal/ui/theme"
)

func (r *RoomScreen) View(width, height int) string {
	var b strings.Builder

	b.WriteString(r.renderStatus(width))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))))
	b.WriteString("\n\n")

	if r.visit.Busy() {
		b.WriteString(theme.Hint.Render("  " + i18n.T("ROOM_GENERATING")))
		b.WriteString("\n\n")
	} else {
		b.WriteString(r.renderClues(width))
		b.WriteString("\n")
		b.WriteString(r.renderSpecials())
		b.WriteString("\n\n")
	}

	b.WriteString("  " + r.input.View())
	b.WriteString("\n\n")
	b.WriteString(r.renderFeedback())

	return b.String()
}

func (r *RoomScreen) renderStatus(width int) string {
	remaining := r.countdown.Remaining()
	clock := fmt.Sprintf("%d:%02d", remaining/60, remaining%60)

	left := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render("  " + string(r.room.Theme))

	right := lipgloss.NewStyle().Foreground(theme.TextDim).Render(i18n.T("ROOM_TIME", clock)) +
		"   " + lipgloss.NewStyle().Foreground(theme.Accent).Render(i18n.T("ROOM_SCORE", r.LiveScore()))

	line := left
	if pad := width - lipgloss.Width(left) - lipgloss.Width(right) - 4; pad > 0 {
		line += strings.Repeat(" ", pad) + right
	}

	total := r.deps.Session.Difficulty().Info().Seconds
	bar := components.ProgressBar{
		Percent: float64(remaining) / float64(max(total, 1)),
		Warn:    0.25,
		Width:   max(width-6, 10),
	}
	return line + "\n  " + bar.View()
}

// costs maps purchased narrative texts to their frozen cost.
func (r *RoomScreen) costs() map[string]int {
	out := make(map[string]int)
	for _, c := range r.visit.Unlocked() {
		if !c.Type.IsSpecial() {
			out[c.Text] = c.CostValue()
		}
	}
	return out
}

func (r *RoomScreen) renderClues(width int) string {
	paid := r.costs()
	next := r.visit.NextNarrativeCost()
	textWidth := max(width-12, 20)

	var b strings.Builder
	for i, c := range r.visit.Candidates() {
		marker := "  "
		if r.panel && i == r.cursor {
			marker = theme.Selected.Render("▸ ")
		}

		var line string
		switch {
		case !r.visit.Purchasable(i):
			line = theme.Hint.Render(c.Text)
		case r.visit.Bought(i):
			line = theme.Correct.Render(fmt.Sprintf("[%s · %d] ", c.Type, paid[c.Text])) +
				theme.Body.Width(textWidth).Render(c.Text)
		default:
			line = theme.Disabled.Render(i18n.T("ROOM_LOCKED_CLUE", i+1, c.Type, next))
		}
		b.WriteString("  " + marker + line + "\n")
	}
	return b.String()
}

func (r *RoomScreen) renderSpecials() string {
	n := len(r.visit.Candidates())
	d := r.visit.Difficulty()

	var symbol string
	switch {
	case r.visit.SymbolUnlocked():
		symbol = theme.Correct.Render(r.unlockedText(game.ClueSymbol))
	case !r.visit.SymbolAllowed():
		symbol = components.NewButton(i18n.T("ROOM_SYMBOL_DISABLED"), false, true).View()
	default:
		symbol = components.NewButton(i18n.T("ROOM_SYMBOL_BUTTON", scoring.SymbolCost), r.panel && r.cursor == n, false).View()
	}

	var atomic string
	if r.visit.AtomicNumberUnlocked() {
		atomic = theme.Correct.Render(r.unlockedText(game.ClueAtomicNumber))
	} else {
		atomic = components.NewButton(i18n.T("ROOM_ATOMIC_BUTTON", scoring.AtomicNumberCost(d)), r.panel && r.cursor == n+1, false).View()
	}

	return "    " + symbol + "   " + atomic
}

func (r *RoomScreen) unlockedText(t game.ClueType) string {
	for _, c := range r.visit.Unlocked() {
		if c.Type == t {
			return c.Text
		}
	}
	return ""
}

func (r *RoomScreen) renderFeedback() string {
	switch {
	case r.visit.Solved():
		return "  " + theme.Correct.Render(i18n.T("ROOM_CORRECT", r.room.Element.Name)) +
			"\n  " + theme.Hint.Render(i18n.T("ROOM_CONTINUE"))
	case r.wrong:
		return "  " + theme.Incorrect.Render(i18n.T("ROOM_WRONG"))
	}
	return ""
}
