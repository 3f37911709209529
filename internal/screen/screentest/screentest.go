// Package screentest builds screen dependencies for tests.
package screentest

import (
	"context"
	"sync"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/periodica/internal/audio"
	"github.com/abhisek/periodica/internal/clues"
	"github.com/abhisek/periodica/internal/game"
	"github.com/abhisek/periodica/internal/kb"
	"github.com/abhisek/periodica/internal/metrics"
	"github.com/abhisek/periodica/internal/rng"
	"github.com/abhisek/periodica/internal/rooms"
	"github.com/abhisek/periodica/internal/screen"
	"github.com/abhisek/periodica/internal/session"
	"github.com/abhisek/periodica/internal/store"
	"github.com/abhisek/periodica/internal/timer"
)

// Journal implements store.EventRepo in memory.
type Journal struct {
	mu       sync.Mutex
	Sessions []store.SessionEventData
	Rooms    []store.RoomEventData
	Clues    []store.ClueEventData
	Answers  []store.AnswerEventData
	LLM      []store.LLMRequestEventData
}

var _ store.EventRepo = (*Journal)(nil)

func (j *Journal) AppendSessionEvent(_ context.Context, data store.SessionEventData) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Sessions = append(j.Sessions, data)
	return nil
}

func (j *Journal) AppendRoomEvent(_ context.Context, data store.RoomEventData) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Rooms = append(j.Rooms, data)
	return nil
}

func (j *Journal) AppendClueEvent(_ context.Context, data store.ClueEventData) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Clues = append(j.Clues, data)
	return nil
}

func (j *Journal) AppendAnswerEvent(_ context.Context, data store.AnswerEventData) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Answers = append(j.Answers, data)
	return nil
}

func (j *Journal) AppendLLMRequest(_ context.Context, data store.LLMRequestEventData) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.LLM = append(j.LLM, data)
	return nil
}

// SessionActions returns the recorded session actions in order.
func (j *Journal) SessionActions() []string {
	j.mu.Lock()
	defer j.mu.Unlock()
	out := make([]string, len(j.Sessions))
	for i, e := range j.Sessions {
		out[i] = e.Action
	}
	return out
}

// RoomActions returns the recorded room actions in order.
func (j *Journal) RoomActions() []string {
	j.mu.Lock()
	defer j.mu.Unlock()
	out := make([]string, len(j.Rooms))
	for i, e := range j.Rooms {
		out[i] = e.Action
	}
	return out
}

// Env is a test environment around a fresh session.
type Env struct {
	Deps    *screen.Deps
	Journal *Journal
	Sound   *audio.Recorder
}

// New returns deterministic dependencies: seeded randomness, no clue
// delay and a primed audio controller.
func New(t testing.TB) *Env {
	t.Helper()
	j := &Journal{}
	rec := &audio.Recorder{}
	ctl := audio.NewController(rec, nil)
	ctl.Interact()

	return &Env{
		Deps: &screen.Deps{
			Session:    session.New(),
			Rooms:      rooms.NewGenerator(rng.NewSeeded(7)),
			Clues:      clues.NewEngine(kb.Default(), rng.NewSeeded(7)),
			Shuffle:    rng.Identity{},
			Sleeper:    &timer.FakeSleeper{},
			Audio:      ctl,
			Journal:    j,
			Metrics:    metrics.New(),
			Difficulty: game.Easy,
		},
		Journal: j,
		Sound:   rec,
	}
}

// StartGame drives the session to the map with rooms bound for d.
func (e *Env) StartGame(t testing.TB, d game.Difficulty) {
	t.Helper()
	s := e.Deps.Session
	require.NoError(t, s.OpenDifficultySelection())
	require.NoError(t, s.SelectDifficulty(d))
	require.NoError(t, s.BindRooms(e.Deps.Rooms.Generate(d)))
}

// EnterRoom starts a game and opens the room at index.
func (e *Env) EnterRoom(t testing.TB, d game.Difficulty, index int) game.Room {
	t.Helper()
	e.StartGame(t, d)
	require.NoError(t, e.Deps.Session.EnterRoom(index))
	room, ok := e.Deps.Session.ActiveRoom()
	require.True(t, ok)
	return room
}

// Key builds a printable key press.
func Key(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

// Special builds a non-printable key press such as tea.KeyEnter.
func Special(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

// Type feeds s to update one rune at a time.
func Type(s string, update func(tea.Msg)) {
	for _, r := range s {
		update(Key(r))
	}
}
