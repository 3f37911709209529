package room

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/periodica/internal/audio"
	"github.com/abhisek/periodica/internal/game"
	"github.com/abhisek/periodica/internal/scoring"
	"github.com/abhisek/periodica/internal/screen/screentest"
	"github.com/abhisek/periodica/internal/session"
	"github.com/abhisek/periodica/internal/store"
	"github.com/abhisek/periodica/internal/timer"
)

// firstRun is the token of the countdown started when the clues arrive.
const firstRun timer.Token = 1

func openRoom(t *testing.T, d game.Difficulty) (*RoomScreen, *screentest.Env) {
	t.Helper()
	env := screentest.New(t)
	room := env.EnterRoom(t, d, 0)

	r := New(env.Deps)
	r.Init()
	require.True(t, r.Visit().Busy())
	require.False(t, r.Countdown().Running())

	r.Update(cluesReadyMsg{
		visit: r.Visit(),
		clues: env.Deps.Clues.Synthesize(room.Element.Name, room.Theme),
	})
	require.False(t, r.Visit().Busy())
	return r, env
}

func send(r *RoomScreen, msgs ...tea.Msg) {
	for _, m := range msgs {
		r.Update(m)
	}
}

func answer(r *RoomScreen, text string) {
	r.input.Model.SetValue(text)
	r.Update(screentest.Special(tea.KeyEnter))
}

func firstPurchasable(t *testing.T, v *session.Visit) int {
	t.Helper()
	for i := range v.Candidates() {
		if v.Purchasable(i) {
			return i
		}
	}
	t.Fatal("no purchasable clue")
	return -1
}

func TestRoomScreen_Title(t *testing.T) {
	r, _ := openRoom(t, game.Easy)
	assert.Equal(t, "Stanza 1 · Sala Laboratorio", r.Title())
}

func TestRoomScreen_StaleCluesIgnored(t *testing.T) {
	env := screentest.New(t)
	env.EnterRoom(t, game.Easy, 0)
	r := New(env.Deps)
	r.Init()

	other := session.PendingVisit(r.room, game.Easy)
	r.Update(cluesReadyMsg{visit: other, clues: []game.Clue{{Text: "x", Type: game.ClueTrivia}}})

	assert.True(t, r.Visit().Busy())
	assert.Contains(t, r.View(100, 30), "Generazione degli indizi")
}

func TestRoomScreen_PurchasesWhileBusyAreRejected(t *testing.T) {
	env := screentest.New(t)
	env.EnterRoom(t, game.Easy, 0)
	r := New(env.Deps)
	r.Init()

	send(r, screentest.Special(tea.KeyTab), screentest.Key('s'), screentest.Key('n'))

	assert.Empty(t, r.Visit().Unlocked())
	assert.Equal(t, 0, env.Deps.Session.Stats().CluesUsed)
	assert.Empty(t, env.Journal.Clues)
}

func TestRoomScreen_BuyNarrativeClue(t *testing.T) {
	r, env := openRoom(t, game.Easy)
	i := firstPurchasable(t, r.Visit())

	send(r, screentest.Special(tea.KeyTab), screentest.Key(rune('1'+i)))

	unlocked := r.Visit().Unlocked()
	require.Len(t, unlocked, 1)
	assert.Equal(t, scoring.NarrativeCost(0), unlocked[0].CostValue())
	assert.Equal(t, 1, env.Deps.Session.Stats().CluesUsed)
	assert.Equal(t, scoring.Start-scoring.NarrativeCost(0), r.LiveScore())

	require.Len(t, env.Journal.Clues, 1)
	assert.Equal(t, string(unlocked[0].Type), env.Journal.Clues[0].ClueType)
	assert.Contains(t, env.Sound.Cues(), audio.CueUnlock)

	// Buying the same clue again is a no-op.
	send(r, screentest.Key(rune('1'+i)))
	assert.Len(t, r.Visit().Unlocked(), 1)
	assert.Equal(t, 1, env.Deps.Session.Stats().CluesUsed)
}

func TestRoomScreen_SpecialClues(t *testing.T) {
	tests := []struct {
		name       string
		difficulty game.Difficulty
		wantSymbol bool
		wantCost   int
	}{
		{"easy", game.Easy, true, scoring.SymbolCost + scoring.AtomicNumberOther},
		{"medium", game.Medium, true, scoring.SymbolCost + scoring.AtomicNumberOther},
		{"hard", game.Hard, false, scoring.AtomicNumberHard},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, env := openRoom(t, tt.difficulty)
			send(r, screentest.Special(tea.KeyTab), screentest.Key('s'), screentest.Key('n'))

			assert.Equal(t, tt.wantSymbol, r.Visit().SymbolUnlocked())
			assert.True(t, r.Visit().AtomicNumberUnlocked())
			assert.Equal(t, scoring.Start-tt.wantCost, r.LiveScore())

			view := r.View(120, 40)
			if !tt.wantSymbol {
				assert.Contains(t, view, "Simbolo non disponibile")
			}
			if tt.wantSymbol {
				assert.Contains(t, view, r.room.Element.Symbol)
			}
			assert.Len(t, env.Journal.Clues, len(r.Visit().Unlocked()))
		})
	}
}

func TestRoomScreen_PanelCursorWraps(t *testing.T) {
	r, _ := openRoom(t, game.Easy)
	n := len(r.Visit().Candidates())

	send(r, screentest.Special(tea.KeyTab), screentest.Special(tea.KeyUp))
	assert.Equal(t, n+1, r.cursor)

	send(r, screentest.Special(tea.KeyDown))
	assert.Equal(t, 0, r.cursor)

	// Enter on the last item buys the atomic number.
	send(r, screentest.Special(tea.KeyUp), screentest.Special(tea.KeyEnter))
	assert.True(t, r.Visit().AtomicNumberUnlocked())
}

func TestRoomScreen_TabTogglesFocus(t *testing.T) {
	r, _ := openRoom(t, game.Easy)
	require.True(t, r.input.Focused())

	send(r, screentest.Special(tea.KeyTab))
	assert.False(t, r.input.Focused())
	assert.True(t, r.panel)

	send(r, screentest.Special(tea.KeyTab))
	assert.True(t, r.input.Focused())
	assert.False(t, r.panel)
}

func TestRoomScreen_WrongAnswer(t *testing.T) {
	r, env := openRoom(t, game.Easy)

	screentest.Type("Zzz", func(m tea.Msg) { r.Update(m) })
	assert.Equal(t, "Zzz", r.input.Value())
	send(r, screentest.Special(tea.KeyEnter))

	assert.True(t, r.wrong)
	assert.Empty(t, r.input.Value())
	assert.Equal(t, 1, env.Deps.Session.Stats().WrongAttempts)
	assert.Equal(t, scoring.Start-scoring.WrongAnswerCost, r.LiveScore())
	assert.Contains(t, r.View(100, 30), "Risposta errata")

	require.Len(t, env.Journal.Answers, 1)
	assert.False(t, env.Journal.Answers[0].Correct)
}

func TestRoomScreen_BlankAnswerIgnored(t *testing.T) {
	r, env := openRoom(t, game.Easy)
	answer(r, "   ")

	assert.False(t, r.wrong)
	assert.Equal(t, 0, env.Deps.Session.Stats().WrongAttempts)
	assert.Empty(t, env.Journal.Answers)
}

func TestRoomScreen_ClockWaitsForClues(t *testing.T) {
	env := screentest.New(t)
	room := env.EnterRoom(t, game.Hard, 0)

	r := New(env.Deps)
	r.Init()
	require.True(t, r.Visit().Busy())

	send(r, countdownTickMsg{tok: firstRun}, countdownTickMsg{tok: firstRun})
	assert.False(t, r.Countdown().Running())
	assert.Equal(t, game.Hard.Info().Seconds, r.Countdown().Remaining())

	r.Update(cluesReadyMsg{
		visit: r.Visit(),
		clues: env.Deps.Clues.Synthesize(room.Element.Name, room.Theme),
	})
	assert.True(t, r.Countdown().Running())

	send(r, countdownTickMsg{tok: firstRun})
	assert.Equal(t, game.Hard.Info().Seconds-1, r.Countdown().Remaining())
}

func TestRoomScreen_CorrectAnswerThenContinue(t *testing.T) {
	r, env := openRoom(t, game.Easy)
	s := env.Deps.Session

	send(r, countdownTickMsg{tok: firstRun}, countdownTickMsg{tok: firstRun})
	answer(r, strings.ToUpper(r.room.Element.Name))

	require.True(t, r.Visit().Solved())
	assert.False(t, r.Countdown().Running())
	assert.Contains(t, r.View(100, 30), r.room.Element.Name)
	assert.Equal(t, session.PhaseRoom, s.Phase())

	// Ticks after the stop are stale.
	send(r, countdownTickMsg{tok: firstRun})
	assert.Equal(t, 178, r.Countdown().Remaining())

	send(r, screentest.Special(tea.KeyEnter))
	assert.Equal(t, session.PhaseMap, s.Phase())
	assert.True(t, s.IsCompleted(r.room.ID))
	assert.Equal(t, 2, s.Stats().TotalTime)
	assert.Equal(t, []string{store.RoomCompleted}, env.Journal.RoomActions())
}

func TestRoomScreen_CountdownExpiry(t *testing.T) {
	r, env := openRoom(t, game.Hard)
	s := env.Deps.Session

	for range game.Hard.Info().Seconds - 1 {
		send(r, countdownTickMsg{tok: firstRun})
	}
	assert.Equal(t, 1, r.Countdown().Remaining())
	assert.Equal(t, session.PhaseRoom, s.Phase())

	send(r, countdownTickMsg{tok: firstRun})
	assert.Equal(t, session.PhaseDifficultySelection, s.Phase())
	assert.Empty(t, s.Rooms())
	assert.Equal(t, []string{store.RoomTimedOut}, env.Journal.RoomActions())
	assert.Equal(t, []string{store.SessionTimeUp}, env.Journal.SessionActions())
	assert.Contains(t, env.Sound.Cues(), audio.CueWrong)
}

func TestRoomScreen_LeaveStopsCountdown(t *testing.T) {
	r, env := openRoom(t, game.Easy)
	s := env.Deps.Session
	i := firstPurchasable(t, r.Visit())
	send(r, screentest.Special(tea.KeyTab), screentest.Key(rune('1'+i)))

	send(r, screentest.Special(tea.KeyEscape))

	assert.Equal(t, session.PhaseMap, s.Phase())
	assert.False(t, r.Countdown().Running())
	assert.False(t, s.IsCompleted(r.room.ID))
	assert.Equal(t, []string{store.RoomLeft}, env.Journal.RoomActions())

	// The clue counter keeps the purchase but the uncommitted cost is dropped.
	assert.Equal(t, 1, s.Stats().CluesUsed)
	assert.Equal(t, scoring.Start, s.Score(nil))

	// A late tick from the abandoned visit does nothing.
	send(r, countdownTickMsg{tok: firstRun})
	assert.Equal(t, session.PhaseMap, s.Phase())
}

func TestRoomScreen_Victory(t *testing.T) {
	env := screentest.New(t)
	env.StartGame(t, game.Medium)
	s := env.Deps.Session

	for i := range len(s.Rooms()) - 1 {
		require.NoError(t, s.EnterRoom(i))
		room, _ := s.ActiveRoom()
		v := session.NewVisit(room, game.Medium, nil)
		_, eff := v.Submit(room.Element.Name)
		s.Apply(eff)
		require.NoError(t, s.CompleteActiveRoom(v, 10))
	}

	last := len(s.Rooms()) - 1
	require.NoError(t, s.EnterRoom(last))
	r := New(env.Deps)
	r.Init()
	r.Update(cluesReadyMsg{visit: r.Visit(), clues: nil})

	answer(r, r.room.Element.Name)
	send(r, screentest.Special(tea.KeyEnter))

	assert.Equal(t, session.PhaseVictory, s.Phase())
	assert.Equal(t, []string{store.SessionVictory}, env.Journal.SessionActions())
}

func TestRoomScreen_KeyHints(t *testing.T) {
	r, _ := openRoom(t, game.Easy)
	assert.Len(t, r.KeyHints(), 3)

	send(r, screentest.Special(tea.KeyTab))
	assert.Len(t, r.KeyHints(), 5)

	send(r, screentest.Special(tea.KeyTab))
	answer(r, r.room.Element.Name)
	assert.Len(t, r.KeyHints(), 1)
}
