// Package room is the screen of one room visit: the countdown, the clue
// panel and the answer field.
package room

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/periodica/internal/audio"
	"github.com/abhisek/periodica/internal/game"
	"github.com/abhisek/periodica/internal/i18n"
	"github.com/abhisek/periodica/internal/metrics"
	"github.com/abhisek/periodica/internal/screen"
	"github.com/abhisek/periodica/internal/session"
	"github.com/abhisek/periodica/internal/store"
	"github.com/abhisek/periodica/internal/timer"
	"github.com/abhisek/periodica/internal/ui/components"
	"github.com/abhisek/periodica/internal/ui/layout"
)

// answerLimit caps the answer field.
const answerLimit = 32

// RoomScreen implements screen.Screen for the open room.
type RoomScreen struct {
	deps      *screen.Deps
	room      game.Room
	visit     *session.Visit
	countdown *timer.Countdown
	input     components.TextInput

	// panel is true while the clue panel has the keyboard.
	panel  bool
	cursor int
	wrong  bool
}

var _ screen.Screen = (*RoomScreen)(nil)
var _ screen.KeyHintProvider = (*RoomScreen)(nil)
var _ screen.ScoreProvider = (*RoomScreen)(nil)

// New creates the screen for the session's active room.
func New(deps *screen.Deps) *RoomScreen {
	room, _ := deps.Session.ActiveRoom()
	d := deps.Session.Difficulty()
	return &RoomScreen{
		deps:      deps,
		room:      room,
		visit:     session.PendingVisit(room, d),
		countdown: timer.NewCountdown(d.Info().Seconds),
		input:     components.NewTextInput(i18n.T("ROOM_ANSWER"), i18n.T("ROOM_PLACEHOLDER"), answerLimit),
	}
}

// Visit returns the visit state.
func (r *RoomScreen) Visit() *session.Visit { return r.visit }

// Countdown returns the room clock.
func (r *RoomScreen) Countdown() *timer.Countdown { return r.countdown }

// Init starts clue generation. The countdown starts once the clues are in.
func (r *RoomScreen) Init() tea.Cmd {
	return tea.Batch(r.generate(), r.input.Init())
}

func tickCmd(tok timer.Token) tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return countdownTickMsg{tok: tok}
	})
}

// generate synthesizes the candidates off the update loop.
func (r *RoomScreen) generate() tea.Cmd {
	visit, room, src := r.visit, r.room, r.deps.ClueSource()
	return func() tea.Msg {
		return cluesReadyMsg{
			visit: visit,
			clues: src.Generate(context.Background(), room.Element.Name, room.Theme),
		}
	}
}

func (r *RoomScreen) Title() string {
	return i18n.T("ROOM_TITLE", r.room.Name, r.room.Group)
}

// LiveScore includes the purchases of this visit.
func (r *RoomScreen) LiveScore() int {
	return r.deps.Session.Score(r.visit.Unlocked())
}

func (r *RoomScreen) KeyHints() []layout.KeyHint {
	if r.visit.Solved() {
		return []layout.KeyHint{
			{Key: "Enter", Description: i18n.T("HINT_CONTINUE")},
		}
	}
	if r.panel {
		return []layout.KeyHint{
			{Key: "↑↓", Description: i18n.T("HINT_NAVIGATE")},
			{Key: "Enter/1-6", Description: i18n.T("HINT_CLUE")},
			{Key: "s/n", Description: i18n.T("HINT_SPECIAL")},
			{Key: "Tab", Description: i18n.T("HINT_SUBMIT")},
			{Key: "Esc", Description: i18n.T("HINT_MAP")},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: i18n.T("HINT_SUBMIT")},
		{Key: "Tab", Description: i18n.T("HINT_CLUE")},
		{Key: "Esc", Description: i18n.T("HINT_MAP")},
	}
}

func (r *RoomScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case countdownTickMsg:
		return r.handleTick(msg)

	case cluesReadyMsg:
		if msg.visit != r.visit {
			return r, nil
		}
		r.visit.Provide(msg.clues)
		if r.visit.Solved() {
			return r, nil
		}
		if tok, ok := r.countdown.Start(); ok {
			return r, tickCmd(tok)
		}
		return r, nil

	case tea.KeyMsg:
		return r.handleKey(msg)
	}

	var cmd tea.Cmd
	r.input, cmd = r.input.Update(msg)
	return r, cmd
}

func (r *RoomScreen) handleTick(msg countdownTickMsg) (screen.Screen, tea.Cmd) {
	res := r.countdown.Tick(msg.tok)
	switch {
	case res.Stale:
		return r, nil
	case res.Expired:
		if !r.visit.Solved() {
			r.timeUp()
		}
		return r, nil
	}
	return r, tickCmd(msg.tok)
}

func (r *RoomScreen) timeUp() {
	s := r.deps.Session
	r.deps.RecordRoom(r.room, store.RoomTimedOut, r.countdown.Elapsed())
	r.deps.RecordSession(store.SessionTimeUp)
	r.deps.Metrics.GameEnded(s.Difficulty(), metrics.OutcomeTimeUp, s.Score(r.visit.Unlocked()))
	r.deps.Play(audio.CueWrong)
	if err := s.TimeUp(); err != nil {
		r.deps.Log().Error("time up", "error", err)
	}
}

func (r *RoomScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if r.visit.Solved() {
		if key == "enter" {
			r.complete()
		}
		return r, nil
	}

	switch key {
	case "esc":
		r.leave()
		return r, nil
	case "tab":
		r.panel = !r.panel
		if r.panel {
			r.input.Blur()
			return r, nil
		}
		return r, r.input.Focus()
	}

	if r.panel {
		r.handlePanelKey(key)
		return r, nil
	}

	if key == "enter" {
		r.submit()
		return r, nil
	}

	r.wrong = false
	r.deps.Play(audio.CueType)
	var cmd tea.Cmd
	r.input, cmd = r.input.Update(msg)
	return r, cmd
}

func (r *RoomScreen) handlePanelKey(key string) {
	n := len(r.visit.Candidates())
	items := n + 2

	switch key {
	case "up", "k":
		r.cursor = (r.cursor + items - 1) % items
	case "down", "j":
		r.cursor = (r.cursor + 1) % items
	case "enter":
		r.buyAt(r.cursor)
	case "s":
		r.buyAt(n)
	case "n":
		r.buyAt(n + 1)
	default:
		if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			if i := int(key[0] - '1'); i < n {
				r.cursor = i
				r.buyAt(i)
			}
		}
	}
}

// buyAt purchases the panel item at i: a candidate, then the symbol, then
// the atomic number.
func (r *RoomScreen) buyAt(i int) {
	n := len(r.visit.Candidates())

	var eff session.Effect
	switch {
	case i < n:
		eff = r.visit.Unlock(i)
	case i == n:
		eff = r.visit.UnlockSymbol()
	case i == n+1:
		eff = r.visit.UnlockAtomicNumber()
	}
	if eff.None() {
		return
	}

	r.deps.Session.Apply(eff)
	r.deps.Play(eff.Cue)
	unlocked := r.visit.Unlocked()
	r.deps.RecordClue(r.room, unlocked[len(unlocked)-1])
}

func (r *RoomScreen) submit() {
	answer := r.input.Value()
	outcome, eff := r.visit.Submit(answer)
	if outcome == session.OutcomeIgnored {
		return
	}

	r.deps.Session.Apply(eff)
	r.deps.Play(eff.Cue)
	r.deps.RecordAnswer(r.room, answer, outcome == session.OutcomeCorrect)

	if outcome == session.OutcomeCorrect {
		r.countdown.Stop()
		r.input.Submit(true)
		r.input.Blur()
		return
	}
	r.wrong = true
	r.input.Clear()
	r.input.Submit(false)
}

func (r *RoomScreen) complete() {
	s := r.deps.Session
	elapsed := r.countdown.Elapsed()
	if err := s.CompleteActiveRoom(r.visit, elapsed); err != nil {
		r.deps.Log().Error("complete room", "room", r.room.ID, "error", err)
		return
	}
	r.deps.RecordRoom(r.room, store.RoomCompleted, elapsed)
	r.deps.Metrics.RoomCompleted(s.Difficulty(), time.Duration(elapsed)*time.Second)

	if s.Phase() == session.PhaseVictory {
		r.deps.RecordSession(store.SessionVictory)
		r.deps.Metrics.GameEnded(s.Difficulty(), metrics.OutcomeVictory, s.Score(nil))
	}
}

func (r *RoomScreen) leave() {
	r.countdown.Stop()
	if err := r.deps.Session.LeaveRoom(); err != nil {
		r.deps.Log().Error("leave room", "error", err)
		return
	}
	r.deps.RecordRoom(r.room, store.RoomLeft, r.countdown.Elapsed())
}
