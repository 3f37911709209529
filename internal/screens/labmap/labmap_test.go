package labmap

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/periodica/internal/game"
	"github.com/abhisek/periodica/internal/screen/screentest"
	"github.com/abhisek/periodica/internal/session"
	"github.com/abhisek/periodica/internal/store"
)

func solve(t *testing.T, s *session.Session, index int) {
	t.Helper()
	require.NoError(t, s.EnterRoom(index))
	room, _ := s.ActiveRoom()
	v := session.NewVisit(room, s.Difficulty(), nil)
	v.Submit(room.Element.Name)
	require.NoError(t, s.CompleteActiveRoom(v, 5))
}

func TestMapScreen_Navigation(t *testing.T) {
	env := screentest.New(t)
	env.StartGame(t, game.Easy)
	m := New(env.Deps)

	tests := []struct {
		key  tea.KeyPressMsg
		want int
	}{
		{screentest.Special(tea.KeyRight), 1},
		{screentest.Special(tea.KeyDown), 5},
		{screentest.Special(tea.KeyDown), 5},
		{screentest.Key('h'), 4},
		{screentest.Special(tea.KeyUp), 0},
		{screentest.Special(tea.KeyLeft), 7},
		{screentest.Key('l'), 0},
	}
	for _, tt := range tests {
		m.Update(tt.key)
		assert.Equal(t, tt.want, m.Cursor(), "after %q", tt.key.String())
	}
}

func TestMapScreen_EnterRoom(t *testing.T) {
	env := screentest.New(t)
	env.StartGame(t, game.Easy)
	m := New(env.Deps)

	m.Update(screentest.Special(tea.KeyRight))
	m.Update(screentest.Special(tea.KeyEnter))

	s := env.Deps.Session
	assert.Equal(t, session.PhaseRoom, s.Phase())
	assert.Equal(t, 1, s.ActiveRoomIndex())
	require.Len(t, env.Journal.Rooms, 1)
	assert.Equal(t, store.RoomEntered, env.Journal.Rooms[0].Action)
	assert.Equal(t, 2, env.Journal.Rooms[0].RoomID)
}

func TestMapScreen_CompletedRoomIsLocked(t *testing.T) {
	env := screentest.New(t)
	env.StartGame(t, game.Easy)
	s := env.Deps.Session
	solve(t, s, 0)

	m := New(env.Deps)
	assert.Equal(t, 1, m.Cursor())

	m.Update(screentest.Special(tea.KeyLeft))
	m.Update(screentest.Special(tea.KeyEnter))
	assert.Equal(t, session.PhaseMap, s.Phase())
	assert.Empty(t, env.Journal.Rooms)

	view := m.View(120, 40)
	assert.Contains(t, view, s.Rooms()[0].Element.Name)
	assert.Contains(t, view, "completata")
	assert.Contains(t, view, "Stanze completate: 1 di 8")
}

func TestMapScreen_EscQuits(t *testing.T) {
	env := screentest.New(t)
	env.StartGame(t, game.Easy)
	m := New(env.Deps)

	m.Update(screentest.Special(tea.KeyEscape))

	s := env.Deps.Session
	assert.Equal(t, session.PhaseMainMenu, s.Phase())
	assert.Empty(t, s.Rooms())
	assert.Equal(t, []string{store.SessionQuit}, env.Journal.SessionActions())
}
