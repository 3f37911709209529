package room

import (
	"github.com/abhisek/periodica/internal/game"
	"github.com/abhisek/periodica/internal/session"
	"github.com/abhisek/periodica/internal/timer"
)

// countdownTickMsg is sent every second while the room clock runs.
type countdownTickMsg struct {
	tok timer.Token
}

// cluesReadyMsg delivers the candidates generated for a visit.
type cluesReadyMsg struct {
	visit *session.Visit
	clues []game.Clue
}
