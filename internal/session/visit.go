package session

import (
	"slices"
	"strings"

	"github.com/zyedidia/generic/mapset"

	"github.com/abhisek/periodica/internal/audio"
	"github.com/abhisek/periodica/internal/clues"
	"github.com/abhisek/periodica/internal/game"
	"github.com/abhisek/periodica/internal/scoring"
)

// Outcome is the result of an answer submission.
type Outcome int

const (
	OutcomeIgnored Outcome = iota
	OutcomeCorrect
	OutcomeWrong
)

// Effect is the consequence of one visit mutation. The caller hands it to
// Session.Apply and plays its cue.
type Effect struct {
	Cost      int
	CluesUsed int
	Correct   int
	Wrong     int
	Cue       audio.Cue
}

// None reports whether the effect changes nothing.
func (e Effect) None() bool {
	return e == Effect{}
}

// Patch converts the deltas into an absolute stats update over base.
func (e Effect) Patch(base game.Stats) game.StatsPatch {
	var p game.StatsPatch
	if e.CluesUsed > 0 {
		p.CluesUsed = game.Int(base.CluesUsed + e.CluesUsed)
	}
	if e.Correct > 0 {
		p.CorrectAttempts = game.Int(base.CorrectAttempts + e.Correct)
	}
	if e.Wrong > 0 {
		p.WrongAttempts = game.Int(base.WrongAttempts + e.Wrong)
	}
	return p
}

// Visit is the state of one room visit: the candidate clues drawn on
// entry and the ones purchased so far, with their costs frozen.
type Visit struct {
	Room       game.Room
	difficulty game.Difficulty

	candidates []game.Clue
	// bought holds the texts purchased, so two candidates with the same
	// text are one clue.
	bought   mapset.Set[string]
	unlocked []game.Clue
	symbol     bool
	atomic     bool
	busy       bool
	solved     bool
}

// NewVisit creates a visit with its candidates already generated.
func NewVisit(room game.Room, d game.Difficulty, candidates []game.Clue) *Visit {
	v := &Visit{Room: room, difficulty: d}
	v.Provide(candidates)
	return v
}

// PendingVisit creates a visit whose clues are still being generated.
// Every purchase is rejected until Provide is called.
func PendingVisit(room game.Room, d game.Difficulty) *Visit {
	return &Visit{Room: room, difficulty: d, busy: true}
}

// Provide installs the candidates and clears the busy flag.
func (v *Visit) Provide(candidates []game.Clue) {
	v.candidates = slices.Clone(candidates)
	v.bought = mapset.New[string]()
	v.busy = false
}

func (v *Visit) Busy() bool                  { return v.busy }
func (v *Visit) Solved() bool                { return v.solved }
func (v *Visit) Difficulty() game.Difficulty { return v.difficulty }

// Candidates returns the clues on offer.
func (v *Visit) Candidates() []game.Clue {
	return slices.Clone(v.candidates)
}

// Bought reports whether candidate i, or another candidate with the same
// text, has been purchased.
func (v *Visit) Bought(i int) bool {
	return i >= 0 && i < len(v.candidates) && v.bought.Has(v.candidates[i].Text)
}

// Unlocked returns the purchased clues in purchase order.
func (v *Visit) Unlocked() []game.Clue {
	return slices.Clone(v.unlocked)
}

// Purchasable reports whether candidate i can be bought at all. Sentinel
// clues are shown as notices.
func (v *Visit) Purchasable(i int) bool {
	if i < 0 || i >= len(v.candidates) {
		return false
	}
	t := v.candidates[i].Type
	return t != game.ClueError && t != game.ClueInfo
}

// NextNarrativeCost is the price the next narrative clue would have.
func (v *Visit) NextNarrativeCost() int {
	return scoring.NarrativeCost(scoring.CountNarrative(v.unlocked))
}

// SymbolAllowed reports whether the symbol clue is on offer.
func (v *Visit) SymbolAllowed() bool {
	return scoring.SymbolAllowed(v.difficulty)
}

func (v *Visit) SymbolUnlocked() bool       { return v.symbol }
func (v *Visit) AtomicNumberUnlocked() bool { return v.atomic }

func (v *Visit) locked() bool {
	return v.busy || v.solved
}

// Unlock purchases candidate i. Repeats and invalid indexes are no-ops.
func (v *Visit) Unlock(i int) Effect {
	if v.locked() || !v.Purchasable(i) || v.Bought(i) {
		return Effect{}
	}
	cost := v.NextNarrativeCost()
	v.bought.Put(v.candidates[i].Text)
	v.unlocked = append(v.unlocked, v.candidates[i].Priced(cost))
	return Effect{Cost: cost, CluesUsed: 1, Cue: audio.CueUnlock}
}

// UnlockSymbol purchases the symbol clue once per visit.
func (v *Visit) UnlockSymbol() Effect {
	if v.locked() || v.symbol || !v.SymbolAllowed() {
		return Effect{}
	}
	v.symbol = true
	v.unlocked = append(v.unlocked, clues.SymbolClue(v.Room.Element).Priced(scoring.SymbolCost))
	return Effect{Cost: scoring.SymbolCost, CluesUsed: 1, Cue: audio.CueUnlock}
}

// UnlockAtomicNumber purchases the atomic number clue once per visit.
func (v *Visit) UnlockAtomicNumber() Effect {
	if v.locked() || v.atomic {
		return Effect{}
	}
	cost := scoring.AtomicNumberCost(v.difficulty)
	v.atomic = true
	v.unlocked = append(v.unlocked, clues.AtomicNumberClue(v.Room.Element).Priced(cost))
	return Effect{Cost: cost, CluesUsed: 1, Cue: audio.CueUnlock}
}

// Submit checks an answer against the element name. Blank answers and
// answers after the room is solved are ignored.
func (v *Visit) Submit(answer string) (Outcome, Effect) {
	if v.solved || strings.TrimSpace(answer) == "" {
		return OutcomeIgnored, Effect{}
	}
	if game.SameName(answer, v.Room.Element.Name) {
		v.solved = true
		return OutcomeCorrect, Effect{Correct: 1, Cue: audio.CueCorrect}
	}
	return OutcomeWrong, Effect{Wrong: 1, Cue: audio.CueWrong}
}
