// Package debrief writes the end-of-game report shown on the victory
// screen, using an LLM when one is configured and a badge-based summary
// otherwise.
package debrief

import (
	"github.com/abhisek/periodica/internal/game"
	"github.com/abhisek/periodica/internal/session"
)

// RoomSummary is what the report knows about one solved room.
type RoomSummary struct {
	Name    string
	Element string
	Clues   []game.ClueType
	Spent   int
}

// Input is the finished game handed to the writer.
type Input struct {
	SessionID  string
	Difficulty game.Difficulty
	Score      int
	Stats      game.Stats
	Rooms      []RoomSummary
}

// Report is the text shown under the badge.
type Report struct {
	Title string
	Body  string

	// Generated is false for the offline fallback.
	Generated bool
}

// FromSnapshot builds the report input from a finished session.
func FromSnapshot(snap session.Snapshot) Input {
	in := Input{
		SessionID:  snap.ID,
		Difficulty: snap.Difficulty,
		Score:      snap.Score,
		Stats:      snap.Stats,
	}
	for _, r := range snap.Rooms {
		rs := RoomSummary{Name: r.Name, Element: r.Element.Name}
		for _, c := range snap.History[r.ID] {
			rs.Clues = append(rs.Clues, c.Type)
			rs.Spent += c.CostValue()
		}
		in.Rooms = append(in.Rooms, rs)
	}
	return in
}
