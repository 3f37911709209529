// Package scoring computes the session score from wrong answers and the
// costs frozen into purchased clues.
package scoring

import "github.com/abhisek/periodica/internal/game"

const (
	Start             = 100
	WrongAnswerCost   = 5
	SymbolCost        = 5
	AtomicNumberHard  = 5
	AtomicNumberOther = 4
)

// Current recomputes the score: Start, minus WrongAnswerCost per wrong
// attempt, minus the cost of every purchased clue in the committed history
// and in the open room. Never negative.
func Current(stats game.Stats, history map[int][]game.Clue, open []game.Clue) int {
	score := Start - WrongAnswerCost*stats.WrongAttempts
	for _, clues := range history {
		score -= Spent(clues)
	}
	score -= Spent(open)
	return max(score, 0)
}

// Spent sums the costs of purchased clues.
func Spent(clues []game.Clue) int {
	total := 0
	for _, c := range clues {
		total += c.CostValue()
	}
	return total
}

// NarrativeCost is the price of the next narrative clue given how many
// narrative clues the room has already unlocked: 0, 1, 2, ...
func NarrativeCost(alreadyUnlocked int) int {
	return max(alreadyUnlocked, 0)
}

// CountNarrative counts purchased clues that are not special.
func CountNarrative(unlocked []game.Clue) int {
	n := 0
	for _, c := range unlocked {
		if !c.Type.IsSpecial() {
			n++
		}
	}
	return n
}

// SymbolAllowed reports whether the symbol clue can be bought.
func SymbolAllowed(d game.Difficulty) bool {
	return d != game.Hard
}

// AtomicNumberCost is the price of the atomic number clue.
func AtomicNumberCost(d game.Difficulty) int {
	if d == game.Hard {
		return AtomicNumberHard
	}
	return AtomicNumberOther
}
