package session

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/abhisek/periodica/internal/audio"
	"github.com/abhisek/periodica/internal/game"
)

func testRoom() game.Room {
	return game.Room{
		RoomTemplate: game.RoomTemplate{ID: 1, Name: "Stanza 1", Theme: game.ThemePrimary},
		Element:      game.Element{Name: "Ossigeno", Symbol: "O", AtomicNumber: 8},
	}
}

func testCandidates(n int) []game.Clue {
	out := make([]game.Clue, n)
	for i := range out {
		out[i] = game.Clue{Text: "Indizio numero " + string(rune('A'+i)) + ".", Type: game.ClueHistory}
	}
	return out
}

func TestProgressiveNarrativeCost(t *testing.T) {
	v := NewVisit(testRoom(), game.Medium, testCandidates(6))

	var costs []int
	for i := range 6 {
		eff := v.Unlock(i)
		costs = append(costs, eff.Cost)
		assert.Equal(t, 1, eff.CluesUsed)
		assert.Equal(t, audio.CueUnlock, eff.Cue)
	}
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5}, costs)

	for i, c := range v.Unlocked() {
		assert.Equal(t, i, c.CostValue())
	}
}

func TestDoubleUnlockChargesOnce(t *testing.T) {
	v := NewVisit(testRoom(), game.Medium, testCandidates(3))

	assert.Equal(t, 0, v.Unlock(1).Cost)
	assert.True(t, v.Unlock(1).None())
	assert.Equal(t, 1, v.Unlock(0).Cost)
	assert.True(t, v.Unlock(0).None())
	assert.Len(t, v.Unlocked(), 2)
	assert.True(t, v.Bought(1))
	assert.False(t, v.Bought(2))
}

func TestDuplicateTextIsBoughtOnce(t *testing.T) {
	shared := "Fu isolato per la prima volta nel 1774."
	candidates := []game.Clue{
		{Text: shared, Type: game.ClueTrivia},
		{Text: "Alimenta la combustione.", Type: game.ClueUsage},
		{Text: shared, Type: game.ClueTrivia},
	}
	v := NewVisit(testRoom(), game.Medium, candidates)

	assert.Equal(t, 0, v.Unlock(0).Cost)
	assert.True(t, v.Bought(2))
	assert.True(t, v.Unlock(2).None())
	assert.Equal(t, 1, v.Unlock(1).Cost)
	assert.Len(t, v.Unlocked(), 2)
}

func TestSpecialCluesDoNotAdvanceNarrativeCost(t *testing.T) {
	v := NewVisit(testRoom(), game.Easy, testCandidates(2))

	assert.Equal(t, 5, v.UnlockSymbol().Cost)
	assert.Equal(t, 4, v.UnlockAtomicNumber().Cost)
	assert.True(t, v.UnlockSymbol().None())
	assert.True(t, v.UnlockAtomicNumber().None())
	assert.Equal(t, 0, v.Unlock(0).Cost)

	unlocked := v.Unlocked()
	assert.Equal(t, "Simbolo Chimico: O", unlocked[0].Text)
	assert.Equal(t, "Numero Atomico: 8", unlocked[1].Text)
}

func TestSpecialCostsByDifficulty(t *testing.T) {
	tests := []struct {
		difficulty    game.Difficulty
		symbolAllowed bool
		atomicCost    int
	}{
		{game.Easy, true, 4},
		{game.Medium, true, 4},
		{game.Hard, false, 5},
	}
	for _, tt := range tests {
		t.Run(tt.difficulty.String(), func(t *testing.T) {
			v := NewVisit(testRoom(), tt.difficulty, nil)
			assert.Equal(t, tt.symbolAllowed, v.SymbolAllowed())
			assert.Equal(t, tt.symbolAllowed, !v.UnlockSymbol().None())
			assert.Equal(t, tt.atomicCost, v.UnlockAtomicNumber().Cost)
		})
	}
}

func TestSentinelCluesAreNotPurchasable(t *testing.T) {
	v := NewVisit(testRoom(), game.Easy, []game.Clue{{Text: "Dati insufficienti per questa categoria.", Type: game.ClueInfo}})

	assert.False(t, v.Purchasable(0))
	assert.True(t, v.Unlock(0).None())
	assert.True(t, v.Unlock(-1).None())
	assert.True(t, v.Unlock(5).None())
}

func TestBusyVisitRejectsPurchases(t *testing.T) {
	v := PendingVisit(testRoom(), game.Easy)
	assert.True(t, v.Busy())
	assert.True(t, v.Unlock(0).None())
	assert.True(t, v.UnlockSymbol().None())
	assert.True(t, v.UnlockAtomicNumber().None())

	v.Provide(testCandidates(2))
	assert.False(t, v.Busy())
	assert.Equal(t, 0, v.Unlock(0).Cost)
	assert.Equal(t, 1, v.NextNarrativeCost())
}

func TestSubmit(t *testing.T) {
	tests := []struct {
		name    string
		answer  string
		outcome Outcome
		effect  Effect
	}{
		{"blank", "   ", OutcomeIgnored, Effect{}},
		{"wrong", "Azoto", OutcomeWrong, Effect{Wrong: 1, Cue: audio.CueWrong}},
		{"exact", "Ossigeno", OutcomeCorrect, Effect{Correct: 1, Cue: audio.CueCorrect}},
		{"case and spaces", "  oSSigeno ", OutcomeCorrect, Effect{Correct: 1, Cue: audio.CueCorrect}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewVisit(testRoom(), game.Easy, nil)
			out, eff := v.Submit(tt.answer)
			assert.Equal(t, tt.outcome, out)
			assert.Equal(t, tt.effect, eff)
		})
	}
}

func TestSolvedVisitIgnoresInput(t *testing.T) {
	v := NewVisit(testRoom(), game.Easy, testCandidates(2))
	out, _ := v.Submit("ossigeno")
	assert.Equal(t, OutcomeCorrect, out)

	out, eff := v.Submit("ossigeno")
	assert.Equal(t, OutcomeIgnored, out)
	assert.True(t, eff.None())
	assert.True(t, v.Unlock(0).None())
}

func TestEffectPatch(t *testing.T) {
	base := game.Stats{CluesUsed: 2, CorrectAttempts: 1, WrongAttempts: 3}

	p := Effect{CluesUsed: 1, Wrong: 1}.Patch(base)
	assert.Equal(t, 3, *p.CluesUsed)
	assert.Equal(t, 4, *p.WrongAttempts)
	assert.Nil(t, p.CorrectAttempts)
	assert.Nil(t, p.TotalTime)
}
