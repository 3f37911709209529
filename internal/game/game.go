// Package game holds the domain types shared by the room generator, the
// clue engine, the scoring rules and the session.
package game

import "time"

// Difficulty is one of the three play tiers.
type Difficulty int

const (
	Easy Difficulty = iota
	Medium
	Hard
)

// DifficultyInfo describes a tier as shown to the player.
type DifficultyInfo struct {
	Difficulty Difficulty
	Label      string
	Seconds    int
	// Attempts is nil for unlimited answer attempts.
	Attempts *int
}

var difficultyInfo = map[Difficulty]DifficultyInfo{
	Easy:   {Difficulty: Easy, Label: "FACILE", Seconds: 180},
	Medium: {Difficulty: Medium, Label: "INTERMEDIO", Seconds: 120},
	Hard:   {Difficulty: Hard, Label: "DIFFICILE", Seconds: 60},
}

// Difficulties returns the tiers in display order.
func Difficulties() []DifficultyInfo {
	return []DifficultyInfo{difficultyInfo[Easy], difficultyInfo[Medium], difficultyInfo[Hard]}
}

// Info returns the tier description. Unknown values fall back to Hard.
func (d Difficulty) Info() DifficultyInfo {
	if info, ok := difficultyInfo[d]; ok {
		return info
	}
	return difficultyInfo[Hard]
}

func (d Difficulty) String() string {
	if info, ok := difficultyInfo[d]; ok {
		return info.Label
	}
	return "SCONOSCIUTA"
}

// Duration returns the room countdown for the tier.
func (d Difficulty) Duration() time.Duration {
	return time.Duration(d.Info().Seconds) * time.Second
}

// ParseDifficulty accepts the Italian labels and the English aliases
// easy, medium and hard, case-insensitively.
func ParseDifficulty(s string) (Difficulty, bool) {
	switch lower(s) {
	case "facile", "easy":
		return Easy, true
	case "intermedio", "medium":
		return Medium, true
	case "difficile", "hard":
		return Hard, true
	}
	return 0, false
}

// Theme selects which knowledge fields a room draws its clues from.
type Theme string

const (
	ThemePrimary Theme = "Storia e Proprietà"
	ThemeLibrary Theme = "Biblioteca scientifica"
	ThemeMixed   Theme = "Mix"
	// ThemeFinale is handled like ThemeMixed. No compiled-in template uses it.
	ThemeFinale Theme = "L'Enigma Finale"
)

// RoomTemplate is a fixed room slot. Templates are compiled in.
type RoomTemplate struct {
	ID    int
	Name  string
	Group string
	Theme Theme
}

// Element identifies a chemical element.
type Element struct {
	Name         string
	Symbol       string
	AtomicNumber int
}

// Room binds one template to one element for a session.
type Room struct {
	RoomTemplate
	Element Element
}

// ClueType labels the category of a clue.
type ClueType string

const (
	ClueSymbol       ClueType = "Simbolo"
	ClueAtomicNumber ClueType = "Dati"
	ClueError        ClueType = "Errore"
	ClueInfo         ClueType = "Info"

	ClueHistory   ClueType = "Storia"
	ClueEtymology ClueType = "Etimologia"
	CluePhysics   ClueType = "Fisica"
	ClueChemistry ClueType = "Chimica"
	ClueDiffusion ClueType = "Diffusione"
	ClueUsage     ClueType = "Uso"
	ClueTrivia    ClueType = "Curiosità"
)

// IsSpecial reports whether the type is one of the two fixed-cost clues.
func (t ClueType) IsSpecial() bool {
	return t == ClueSymbol || t == ClueAtomicNumber
}

// Clue is a piece of text about the room's element. Cost is nil until the
// clue is purchased, then frozen.
type Clue struct {
	Text string
	Type ClueType
	Cost *int
}

// Unlocked reports whether the clue has been purchased.
func (c Clue) Unlocked() bool {
	return c.Cost != nil
}

// Priced returns a copy of c with its cost set.
func (c Clue) Priced(cost int) Clue {
	c.Cost = &cost
	return c
}

// CostValue returns the assigned cost, or 0 when not purchased.
func (c Clue) CostValue() int {
	if c.Cost == nil {
		return 0
	}
	return *c.Cost
}

// Stats are the aggregate counters of a session.
type Stats struct {
	TotalTime       int
	CluesUsed       int
	CorrectAttempts int
	WrongAttempts   int
}

// StatsPatch is a partial update for Stats. Nil fields are left alone.
type StatsPatch struct {
	TotalTime       *int
	CluesUsed       *int
	CorrectAttempts *int
	WrongAttempts   *int
}

// Apply returns s with the non-nil fields of p applied. Values lower than
// the current ones are ignored so counters never decrease.
func (s Stats) Apply(p StatsPatch) Stats {
	s.TotalTime = raise(s.TotalTime, p.TotalTime)
	s.CluesUsed = raise(s.CluesUsed, p.CluesUsed)
	s.CorrectAttempts = raise(s.CorrectAttempts, p.CorrectAttempts)
	s.WrongAttempts = raise(s.WrongAttempts, p.WrongAttempts)
	return s
}

func raise(cur int, v *int) int {
	if v == nil || *v < cur {
		return cur
	}
	return *v
}

// Int is a helper for building patches.
func Int(v int) *int {
	return &v
}
