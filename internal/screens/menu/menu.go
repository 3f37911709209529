// Package menu is the main menu: start a game, toggle audio, quit.
package menu

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/periodica/internal/audio"
	"github.com/abhisek/periodica/internal/i18n"
	"github.com/abhisek/periodica/internal/screen"
	"github.com/abhisek/periodica/internal/ui/components"
	"github.com/abhisek/periodica/internal/ui/layout"
	"github.com/abhisek/periodica/internal/ui/theme"
)

const muteItem = 1

// MenuScreen is the root screen of the application.
type MenuScreen struct {
	deps *screen.Deps
	menu components.Menu
}

var _ screen.Screen = (*MenuScreen)(nil)
var _ screen.KeyHintProvider = (*MenuScreen)(nil)

// New creates the main menu.
func New(deps *screen.Deps) *MenuScreen {
	m := &MenuScreen{deps: deps}
	m.menu = components.NewMenu([]components.MenuItem{
		{Label: i18n.T("MENU_NEW_GAME"), Action: m.newGame},
		{Label: muteLabel(deps.Session.Muted()), Action: m.toggleMute},
		{Label: i18n.T("MENU_QUIT"), Action: func() tea.Cmd { return tea.Quit }},
	})
	return m
}

func muteLabel(muted bool) string {
	state := i18n.T("AUDIO_ON")
	if muted {
		state = i18n.T("AUDIO_OFF")
	}
	return i18n.T("MENU_MUTE", state)
}

func (m *MenuScreen) newGame() tea.Cmd {
	if err := m.deps.Session.OpenDifficultySelection(); err != nil {
		m.deps.Log().Error("open difficulty selection", "error", err)
	}
	return nil
}

func (m *MenuScreen) toggleMute() tea.Cmd {
	muted := m.deps.Session.ToggleMute()
	if m.deps.Audio != nil {
		m.deps.Audio.SetMuted(muted)
	}
	return nil
}

func (m *MenuScreen) Init() tea.Cmd {
	return nil
}

func (m *MenuScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	m.menu, cmd = m.menu.Update(msg)
	if k, ok := msg.(tea.KeyMsg); ok && k.String() == "enter" {
		m.deps.Play(audio.CueClick)
	}
	m.menu.Items[muteItem].Label = muteLabel(m.deps.Session.Muted())
	return m, cmd
}

func (m *MenuScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var sections []string
	sections = append(sections, components.Tiles("H", "He", "Li", "Be", "B", "C"))
	sections = append(sections, theme.Title.Width(cw).Render(strings.ToUpper(i18n.T("APP_TITLE"))))
	if !layout.IsCompactHeight(height + layout.HeaderHeight + layout.FooterHeight) {
		sections = append(sections, theme.Subtitle.Width(cw).Render(i18n.T("APP_SUBTITLE")))
	}
	sections = append(sections, components.Card(m.menu.View(), cw))

	return components.Frame(strings.Join(sections, "\n\n"), width, height)
}

func (m *MenuScreen) Title() string {
	return i18n.T("APP_SUBTITLE")
}

func (m *MenuScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: i18n.T("HINT_NAVIGATE")},
		{Key: "Enter", Description: i18n.T("HINT_SELECT")},
		{Key: "F2", Description: i18n.T("HINT_MUTE")},
		{Key: "Ctrl+C", Description: i18n.T("HINT_QUIT")},
	}
}
