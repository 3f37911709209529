// Package app is the root Bubble Tea model. It follows the session phase
// and keeps the screen stack in step with it.
package app

import (
	"errors"
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"golang.org/x/term"

	"github.com/abhisek/periodica/internal/i18n"
	"github.com/abhisek/periodica/internal/metrics"
	"github.com/abhisek/periodica/internal/router"
	"github.com/abhisek/periodica/internal/screen"
	"github.com/abhisek/periodica/internal/screens/difficulty"
	"github.com/abhisek/periodica/internal/screens/labmap"
	"github.com/abhisek/periodica/internal/screens/menu"
	"github.com/abhisek/periodica/internal/screens/randomizer"
	"github.com/abhisek/periodica/internal/screens/room"
	"github.com/abhisek/periodica/internal/screens/victory"
	"github.com/abhisek/periodica/internal/session"
	"github.com/abhisek/periodica/internal/store"
	"github.com/abhisek/periodica/internal/ui/layout"
)

// ErrNotATerminal is returned by Run when stdin is not interactive.
var ErrNotATerminal = errors.New("periodica needs an interactive terminal")

// AppModel is the root Bubble Tea model.
type AppModel struct {
	deps   *screen.Deps
	router *router.Router
	phase  session.Phase
	width  int
	height int
}

// newAppModel creates a new AppModel on the main menu.
func newAppModel(deps *screen.Deps) AppModel {
	if deps.Audio != nil {
		deps.Audio.SetMuted(deps.Session.Muted())
	}
	return AppModel{
		deps:   deps,
		router: router.New(menu.New(deps)),
		phase:  deps.Session.Phase(),
	}
}

func (m AppModel) Init() tea.Cmd {
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if m.deps.Audio != nil {
			m.deps.Audio.Interact()
		}
		switch msg.String() {
		case "ctrl+c":
			m.abandon()
			return m, tea.Quit
		case "f2":
			muted := m.deps.Session.ToggleMute()
			if m.deps.Audio != nil {
				m.deps.Audio.SetMuted(muted)
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	nav := m.follow()
	return m, tea.Batch(cmd, nav)
}

// abandon journals a quit when the program exits mid-game.
func (m AppModel) abandon() {
	s := m.deps.Session
	switch s.Phase() {
	case session.PhaseMap, session.PhaseRoom:
		m.deps.RecordSession(store.SessionQuit)
		m.deps.Metrics.GameEnded(s.Difficulty(), metrics.OutcomeQuit, s.Score(nil))
	}
}

// follow moves the screen stack after the session changed phase.
func (m *AppModel) follow() tea.Cmd {
	from, to := m.phase, m.deps.Session.Phase()
	if from == to {
		return nil
	}
	m.phase = to
	m.deps.Log().Debug("phase change", "from", from.String(), "to", to.String())

	nav := m.navigation(from, to)
	if nav == nil {
		return nil
	}
	return m.router.Update(nav)
}

func (m *AppModel) navigation(from, to session.Phase) tea.Msg {
	d := m.deps
	switch to {
	case session.PhaseMainMenu:
		return router.ResetScreensMsg{Screens: []screen.Screen{menu.New(d)}}

	case session.PhaseDifficultySelection:
		switch from {
		case session.PhaseMainMenu:
			return router.PushScreenMsg{Screen: difficulty.New(d, false)}
		case session.PhaseRandomizing:
			return router.ReplaceScreenMsg{Screen: difficulty.New(d, false)}
		case session.PhaseRoom:
			return router.ResetScreensMsg{Screens: []screen.Screen{menu.New(d), difficulty.New(d, true)}}
		}

	case session.PhaseRandomizing:
		return router.ReplaceScreenMsg{Screen: randomizer.New(d)}

	case session.PhaseMap:
		if from == session.PhaseRoom {
			return router.PopScreenMsg{}
		}
		return router.ReplaceScreenMsg{Screen: labmap.New(d)}

	case session.PhaseRoom:
		return router.PushScreenMsg{Screen: room.New(d)}

	case session.PhaseVictory:
		return router.ResetScreensMsg{Screens: []screen.Screen{menu.New(d), victory.New(d)}}
	}
	return nil
}

// score returns the header score, or -1 outside a game.
func (m AppModel) score() int {
	switch m.deps.Session.Phase() {
	case session.PhaseMap, session.PhaseRoom:
	default:
		return -1
	}
	if sp, ok := m.router.Active().(screen.ScoreProvider); ok {
		return sp.LiveScore()
	}
	return m.deps.Session.Score(nil)
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, layout.HeaderStatus{
		Score: m.score(),
		Muted: m.deps.Session.Muted(),
	}, m.width)

	var footerHints []layout.KeyHint
	if p, ok := active.(screen.KeyHintProvider); ok {
		footerHints = p.KeyHints()
	} else {
		footerHints = []layout.KeyHint{
			{Key: "Ctrl+C", Description: i18n.T("HINT_QUIT")},
		}
	}
	footer := layout.RenderFooter(footerHints, m.width)

	content := m.router.View(m.width, layout.ContentHeight(m.height))
	v.SetContent(layout.RenderFrame(header, content, footer, m.width, m.height))
	return v
}

// Run starts the Bubble Tea program.
func Run(deps *screen.Deps) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return ErrNotATerminal
	}

	p := tea.NewProgram(newAppModel(deps))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
