package screen

import (
	"context"
	"log/slog"
	"time"

	"github.com/abhisek/periodica/internal/audio"
	"github.com/abhisek/periodica/internal/clues"
	"github.com/abhisek/periodica/internal/debrief"
	"github.com/abhisek/periodica/internal/game"
	"github.com/abhisek/periodica/internal/metrics"
	"github.com/abhisek/periodica/internal/rng"
	"github.com/abhisek/periodica/internal/rooms"
	"github.com/abhisek/periodica/internal/session"
	"github.com/abhisek/periodica/internal/store"
	"github.com/abhisek/periodica/internal/timer"
)

// journalTimeout bounds a single journal write.
const journalTimeout = 2 * time.Second

// Deps carries the collaborators the game screens share. Journal, Metrics
// and Debrief may be nil.
type Deps struct {
	Session *session.Session
	Rooms   *rooms.Generator
	Clues   clues.Synthesizer
	Shuffle rng.Shuffler

	// ClueDelay is the pause before a room's clues appear.
	ClueDelay time.Duration
	Sleeper   timer.Sleeper

	Audio   *audio.Controller
	Journal store.EventRepo
	Metrics *metrics.Metrics
	Debrief *debrief.Service
	Logger  *slog.Logger

	// Difficulty is preselected on the tier picker.
	Difficulty game.Difficulty
}

// Log returns the logger, or a discarding one.
func (d *Deps) Log() *slog.Logger {
	if d.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return d.Logger
}

// Play forwards a cue to the audio controller.
func (d *Deps) Play(cue audio.Cue) {
	if d.Audio != nil && cue != "" {
		d.Audio.Play(cue)
	}
}

// ClueSource returns the synthesizer with the configured delay.
func (d *Deps) ClueSource() *clues.Delayed {
	return clues.NewDelayed(d.Clues, d.ClueDelay, d.Sleeper)
}

func (d *Deps) journal(what string, write func(ctx context.Context, j store.EventRepo) error) {
	if d.Journal == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), journalTimeout)
	defer cancel()
	if err := write(ctx, d.Journal); err != nil {
		d.Log().Warn("journal write failed", "event", what, "error", err)
	}
}

// RecordSession journals a lifecycle event with the current stats. Call it
// before any transition that clears the session.
func (d *Deps) RecordSession(action string) {
	s := d.Session
	stats := s.Stats()
	data := store.SessionEventData{
		SessionID:       s.ID(),
		Action:          action,
		Difficulty:      s.Difficulty().String(),
		Score:           s.Score(nil),
		RoomsCompleted:  len(s.CompletedRoomIDs()),
		CluesUsed:       stats.CluesUsed,
		CorrectAttempts: stats.CorrectAttempts,
		WrongAttempts:   stats.WrongAttempts,
		TotalTimeSecs:   stats.TotalTime,
	}
	d.journal("session", func(ctx context.Context, j store.EventRepo) error {
		return j.AppendSessionEvent(ctx, data)
	})
}

// RecordRoom journals a room event.
func (d *Deps) RecordRoom(room game.Room, action string, elapsed int) {
	data := store.RoomEventData{
		SessionID:   d.Session.ID(),
		RoomID:      room.ID,
		Element:     room.Element.Name,
		Theme:       string(room.Theme),
		Action:      action,
		ElapsedSecs: elapsed,
	}
	d.journal("room", func(ctx context.Context, j store.EventRepo) error {
		return j.AppendRoomEvent(ctx, data)
	})
}

// RecordClue journals a purchase and counts it.
func (d *Deps) RecordClue(room game.Room, clue game.Clue) {
	d.Metrics.ClueUnlocked(clue.Type)
	data := store.ClueEventData{
		SessionID: d.Session.ID(),
		RoomID:    room.ID,
		Element:   room.Element.Name,
		ClueType:  string(clue.Type),
		Cost:      clue.CostValue(),
		Text:      clue.Text,
	}
	d.journal("clue", func(ctx context.Context, j store.EventRepo) error {
		return j.AppendClueEvent(ctx, data)
	})
}

// RecordAnswer journals a submission and counts it.
func (d *Deps) RecordAnswer(room game.Room, answer string, correct bool) {
	d.Metrics.Answer(correct)
	data := store.AnswerEventData{
		SessionID: d.Session.ID(),
		RoomID:    room.ID,
		Element:   room.Element.Name,
		Answer:    answer,
		Correct:   correct,
	}
	d.journal("answer", func(ctx context.Context, j store.EventRepo) error {
		return j.AppendAnswerEvent(ctx, data)
	})
}
