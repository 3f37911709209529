package scoring

import (
	"math/rand/v2"
	"testing"

	"github.com/abhisek/periodica/internal/game"
)

func priced(cost int) game.Clue {
	return game.Clue{Text: "indizio di prova", Type: game.ClueTrivia}.Priced(cost)
}

func TestCurrent(t *testing.T) {
	tests := []struct {
		name    string
		stats   game.Stats
		history map[int][]game.Clue
		open    []game.Clue
		want    int
	}{
		{"fresh", game.Stats{}, nil, nil, 100},
		{"wrong answers", game.Stats{WrongAttempts: 3}, nil, nil, 85},
		{"history and open", game.Stats{WrongAttempts: 1},
			map[int][]game.Clue{1: {priced(0), priced(4)}},
			[]game.Clue{priced(1)}, 90},
		{"unpriced clues are free", game.Stats{}, nil,
			[]game.Clue{{Text: "non acquistato", Type: game.ClueUsage}}, 100},
		{"floor", game.Stats{WrongAttempts: 30}, nil, []game.Clue{priced(5)}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Current(tt.stats, tt.history, tt.open); got != tt.want {
				t.Errorf("Current() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCurrentNeverNegative(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	for range 1000 {
		stats := game.Stats{WrongAttempts: r.IntN(40)}
		history := make(map[int][]game.Clue)
		for room := 1; room <= 8; room++ {
			for range r.IntN(8) {
				history[room] = append(history[room], priced(r.IntN(6)))
			}
		}
		if got := Current(stats, history, []game.Clue{priced(r.IntN(6))}); got < 0 {
			t.Fatalf("Current() = %d", got)
		}
	}
}

func TestNarrativeCostProgression(t *testing.T) {
	for n := 0; n < 6; n++ {
		if got := NarrativeCost(n); got != n {
			t.Errorf("NarrativeCost(%d) = %d", n, got)
		}
	}
}

func TestCountNarrative(t *testing.T) {
	unlocked := []game.Clue{
		priced(0),
		{Text: "Simbolo Chimico: Fe", Type: game.ClueSymbol},
		{Text: "Numero Atomico: 26", Type: game.ClueAtomicNumber},
		priced(1),
	}
	if got := CountNarrative(unlocked); got != 2 {
		t.Errorf("CountNarrative() = %d, want 2", got)
	}
}

func TestSpecialCosts(t *testing.T) {
	tests := []struct {
		d           game.Difficulty
		symbol      bool
		atomicPrice int
	}{
		{game.Easy, true, 4},
		{game.Medium, true, 4},
		{game.Hard, false, 5},
	}
	for _, tt := range tests {
		t.Run(tt.d.String(), func(t *testing.T) {
			if got := SymbolAllowed(tt.d); got != tt.symbol {
				t.Errorf("SymbolAllowed() = %v, want %v", got, tt.symbol)
			}
			if got := AtomicNumberCost(tt.d); got != tt.atomicPrice {
				t.Errorf("AtomicNumberCost() = %d, want %d", got, tt.atomicPrice)
			}
		})
	}
}
