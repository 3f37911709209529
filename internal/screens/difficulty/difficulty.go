// Package difficulty is the tier picker shown before every game.
package difficulty

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/periodica/internal/audio"
	"github.com/abhisek/periodica/internal/game"
	"github.com/abhisek/periodica/internal/i18n"
	"github.com/abhisek/periodica/internal/screen"
	"github.com/abhisek/periodica/internal/ui/components"
	"github.com/abhisek/periodica/internal/ui/layout"
	"github.com/abhisek/periodica/internal/ui/theme"
)

// DifficultyScreen lists the tiers with their countdowns.
type DifficultyScreen struct {
	deps     *screen.Deps
	menu     components.Menu
	timedOut bool
}

var _ screen.Screen = (*DifficultyScreen)(nil)
var _ screen.KeyHintProvider = (*DifficultyScreen)(nil)

// New creates the tier picker. timedOut shows the time-up banner of the
// game that just ended.
func New(deps *screen.Deps, timedOut bool) *DifficultyScreen {
	d := &DifficultyScreen{deps: deps, timedOut: timedOut}

	var items []components.MenuItem
	for _, info := range game.Difficulties() {
		tier := info.Difficulty
		items = append(items, components.MenuItem{
			Label:  i18n.T("DIFFICULTY_ROW", info.Label, info.Seconds),
			Action: func() tea.Cmd { return d.choose(tier) },
		})
	}
	d.menu = components.NewMenu(items)
	d.menu.Select(int(deps.Difficulty))
	return d
}

func (d *DifficultyScreen) choose(tier game.Difficulty) tea.Cmd {
	if err := d.deps.Session.SelectDifficulty(tier); err != nil {
		d.deps.Log().Error("select difficulty", "error", err)
		return nil
	}
	d.deps.Play(audio.CueClick)
	return nil
}

func (d *DifficultyScreen) Init() tea.Cmd {
	return nil
}

func (d *DifficultyScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && k.String() == "esc" {
		d.deps.Session.Quit()
		return d, nil
	}
	var cmd tea.Cmd
	d.menu, cmd = d.menu.Update(msg)
	return d, cmd
}

func (d *DifficultyScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var sections []string
	if d.timedOut {
		sections = append(sections,
			theme.Incorrect.Render(i18n.T("TIME_UP")),
			theme.Hint.Render(i18n.T("TIME_UP_BODY")))
	}
	sections = append(sections, theme.Title.Width(cw).Render(i18n.T("DIFFICULTY_TITLE")))
	sections = append(sections, components.Card(d.menu.View(), cw))

	return components.Frame(strings.Join(sections, "\n\n"), width, height)
}

func (d *DifficultyScreen) Title() string {
	return i18n.T("DIFFICULTY_TITLE")
}

func (d *DifficultyScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: i18n.T("HINT_NAVIGATE")},
		{Key: "Enter", Description: i18n.T("HINT_SELECT")},
		{Key: "Esc", Description: i18n.T("HINT_BACK")},
	}
}
