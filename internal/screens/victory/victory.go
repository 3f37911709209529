// Package victory is the end screen shown once every room is solved.
package victory

import (
	"context"
	"fmt"
	"image/color"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/periodica/internal/badges"
	"github.com/abhisek/periodica/internal/debrief"
	"github.com/abhisek/periodica/internal/i18n"
	"github.com/abhisek/periodica/internal/screen"
	"github.com/abhisek/periodica/internal/session"
	"github.com/abhisek/periodica/internal/ui/layout"
	"github.com/abhisek/periodica/internal/ui/theme"
)

type debriefMsg struct {
	report *debrief.Report
}

// VictoryScreen shows the badge, the final stats and the debrief.
type VictoryScreen struct {
	deps     *screen.Deps
	snapshot session.Snapshot
	tier     badges.Tier
	report   *debrief.Report
}

var _ screen.Screen = (*VictoryScreen)(nil)
var _ screen.KeyHintProvider = (*VictoryScreen)(nil)

// New captures the finished game. It must be created before the session
// is reset.
func New(deps *screen.Deps) *VictoryScreen {
	snap := deps.Session.Snapshot()
	return &VictoryScreen{
		deps:     deps,
		snapshot: snap,
		tier:     badges.ForScore(snap.Score),
	}
}

// Report returns the debrief once it has arrived.
func (v *VictoryScreen) Report() *debrief.Report { return v.report }

func (v *VictoryScreen) Init() tea.Cmd {
	in := debrief.FromSnapshot(v.snapshot)
	svc, logger := v.deps.Debrief, v.deps.Log()
	return func() tea.Msg {
		report, err := svc.Write(context.Background(), in)
		if err != nil {
			logger.Warn("debrief generation failed", "error", err)
		}
		return debriefMsg{report: report}
	}
}

func (v *VictoryScreen) Title() string {
	return i18n.T("VICTORY_TITLE")
}

func (v *VictoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: i18n.T("HINT_CONTINUE")},
	}
}

func (v *VictoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case debriefMsg:
		v.report = msg.report
	case tea.KeyMsg:
		switch msg.String() {
		case "enter", "esc":
			v.deps.Session.Reset()
		}
	}
	return v, nil
}

func (v *VictoryScreen) View(width, height int) string {
	snap := v.snapshot
	center := func(s string) string {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, s)
	}

	var b strings.Builder

	b.WriteString(center(lipgloss.NewStyle().
		Foreground(tierColor(v.tier)).
		Bold(true).
		Render(v.tier.Icon() + "  " + v.tier.Title())))
	b.WriteString("\n\n")

	b.WriteString(center(lipgloss.NewStyle().
		Foreground(theme.Accent).
		Bold(true).
		Render(i18n.T("VICTORY_SCORE", snap.Score))))
	b.WriteString("\n")

	st := snap.Stats
	b.WriteString(center(lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(i18n.T("VICTORY_STATS", st.TotalTime, st.CluesUsed, st.CorrectAttempts, st.WrongAttempts))))
	b.WriteString("\n\n")

	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
		strings.Repeat("─", min(width-8, 60)))
	b.WriteString(center(divider))
	b.WriteString("\n\n")

	for _, room := range snap.Rooms {
		spent := 0
		for _, c := range snap.History[room.ID] {
			spent += c.CostValue()
		}
		line := fmt.Sprintf("%-10s %-14s  -%d", room.Name, room.Element.Name, spent)
		if layout.IsCompactWidth(width) {
			line = fmt.Sprintf("%-10s -%d", room.Name, spent)
		}
		b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Text).Render(line)))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	textWidth := min(width-8, 72)
	if v.report == nil {
		b.WriteString(center(theme.Hint.Render(i18n.T("VICTORY_DEBRIEF_LOADING"))))
	} else {
		b.WriteString(center(lipgloss.NewStyle().
			Foreground(theme.Secondary).
			Bold(true).
			Render(v.report.Title)))
		b.WriteString("\n\n")
		b.WriteString(center(theme.Body.Width(textWidth).Render(v.report.Body)))
	}

	return b.String()
}

func tierColor(t badges.Tier) color.Color {
	switch t {
	case badges.TierMendeleev:
		return theme.Accent
	case badges.TierGiants, badges.TierFewSecrets:
		return theme.Primary
	case badges.TierMoreEffort:
		return theme.Secondary
	default:
		return theme.Text
	}
}
