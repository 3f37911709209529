// Package labmap shows the eight rooms of a game and opens them.
package labmap

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/periodica/internal/audio"
	"github.com/abhisek/periodica/internal/game"
	"github.com/abhisek/periodica/internal/i18n"
	"github.com/abhisek/periodica/internal/metrics"
	"github.com/abhisek/periodica/internal/screen"
	"github.com/abhisek/periodica/internal/store"
	"github.com/abhisek/periodica/internal/ui/components"
	"github.com/abhisek/periodica/internal/ui/layout"
	"github.com/abhisek/periodica/internal/ui/theme"
)

// columns is the number of room cards per row.
const columns = 4

// MapScreen is the laboratory map.
type MapScreen struct {
	deps   *screen.Deps
	cursor int
}

var _ screen.Screen = (*MapScreen)(nil)
var _ screen.KeyHintProvider = (*MapScreen)(nil)

// New creates the map with the cursor on the first open room.
func New(deps *screen.Deps) *MapScreen {
	m := &MapScreen{deps: deps}
	m.cursor = m.firstOpen()
	return m
}

func (m *MapScreen) firstOpen() int {
	for i, r := range m.deps.Session.Rooms() {
		if !m.deps.Session.IsCompleted(r.ID) {
			return i
		}
	}
	return 0
}

// Cursor returns the highlighted room index.
func (m *MapScreen) Cursor() int { return m.cursor }

func (m *MapScreen) Init() tea.Cmd {
	return nil
}

func (m *MapScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	n := len(m.deps.Session.Rooms())
	if n == 0 {
		return m, nil
	}

	switch kmsg.String() {
	case "left", "h":
		m.cursor = (m.cursor + n - 1) % n
	case "right", "l":
		m.cursor = (m.cursor + 1) % n
	case "up", "k":
		if m.cursor >= columns {
			m.cursor -= columns
		}
	case "down", "j":
		if m.cursor+columns < n {
			m.cursor += columns
		}
	case "enter":
		m.enter()
	case "esc":
		m.quit()
	}
	return m, nil
}

func (m *MapScreen) enter() {
	s := m.deps.Session
	if err := s.EnterRoom(m.cursor); err != nil {
		m.deps.Log().Debug("enter room refused", "index", m.cursor, "error", err)
		return
	}
	m.deps.Play(audio.CueClick)
	if room, ok := s.ActiveRoom(); ok {
		m.deps.RecordRoom(room, store.RoomEntered, 0)
	}
}

func (m *MapScreen) quit() {
	s := m.deps.Session
	m.deps.RecordSession(store.SessionQuit)
	m.deps.Metrics.GameEnded(s.Difficulty(), metrics.OutcomeQuit, s.Score(nil))
	s.Quit()
}

func (m *MapScreen) View(width, height int) string {
	s := m.deps.Session
	rooms := s.Rooms()
	cw := components.ContentWidth(width)
	cardWidth := max((width-4)/columns-2, 12)

	var rows []string
	for start := 0; start < len(rooms); start += columns {
		var cards []string
		for i := start; i < min(start+columns, len(rooms)); i++ {
			cards = append(cards, m.renderCard(rooms[i], i == m.cursor, cardWidth))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}

	status := theme.Body.Render(i18n.T("MAP_PROGRESS", len(s.CompletedRoomIDs()), len(rooms))) +
		"   " + lipgloss.NewStyle().Foreground(theme.Accent).Render(i18n.T("MAP_SCORE", s.Score(nil)))

	sections := []string{
		theme.Title.Width(cw).Render(i18n.T("MAP_TITLE")),
		status,
		strings.Join(rows, "\n"),
	}
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Render(strings.Join(sections, "\n\n"))
}

func (m *MapScreen) renderCard(room game.Room, selected bool, width int) string {
	done := m.deps.Session.IsCompleted(room.ID)

	border := theme.Border
	if selected {
		border = theme.Primary
	}

	name := theme.Body.Bold(true).Render(room.Name)
	group := theme.Hint.Render(room.Group)
	state := theme.Hint.Render("?")
	if done {
		border = theme.Success
		if selected {
			border = theme.Accent
		}
		state = theme.Correct.Render(fmt.Sprintf("✓ %s (%s)", room.Element.Name, i18n.T("ROOM_COMPLETED")))
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Width(width).
		Align(lipgloss.Center).
		Render(name + "\n" + group + "\n" + state)
}

func (m *MapScreen) Title() string {
	return i18n.T("MAP_TITLE")
}

func (m *MapScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "←→↑↓", Description: i18n.T("HINT_NAVIGATE")},
		{Key: "Enter", Description: i18n.T("HINT_SELECT")},
		{Key: "Esc", Description: i18n.T("HINT_QUIT")},
	}
}
