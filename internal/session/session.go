// Package session owns the state of one game: the bound rooms, the
// completed set, the committed clue history and the aggregate stats.
// Every write goes through a transition method.
package session

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/zyedidia/generic/mapset"

	"github.com/abhisek/periodica/internal/game"
	"github.com/abhisek/periodica/internal/scoring"
)

// ErrInvalidTransition is returned when a mutator is called from a phase
// that does not allow it. The session is left untouched.
var ErrInvalidTransition = errors.New("invalid session transition")

// Phase is the screen-level state of the game.
type Phase int

const (
	PhaseMainMenu Phase = iota
	PhaseDifficultySelection
	PhaseRandomizing
	PhaseMap
	PhaseRoom
	PhaseVictory
)

var phaseNames = map[Phase]string{
	PhaseMainMenu:            "main-menu",
	PhaseDifficultySelection: "difficulty-selection",
	PhaseRandomizing:         "randomizing",
	PhaseMap:                 "map",
	PhaseRoom:                "room",
	PhaseVictory:             "victory",
}

func (p Phase) String() string {
	if name, ok := phaseNames[p]; ok {
		return name
	}
	return fmt.Sprintf("phase(%d)", int(p))
}

// NoRoom is the active index when no room is open.
const NoRoom = -1

// Session is the single owned game state.
type Session struct {
	id        string
	startedAt time.Time

	phase      Phase
	difficulty game.Difficulty
	rooms      []game.Room
	active     int
	completed  mapset.Set[int]
	history    map[int][]game.Clue
	stats      game.Stats
	muted      bool

	now func() time.Time
}

// Option configures a Session.
type Option func(*Session)

// WithClock overrides the clock used for StartedAt.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// New returns a session on the main menu.
func New(opts ...Option) *Session {
	s := &Session{now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	s.clear()
	return s
}

func (s *Session) clear() {
	s.id = uuid.New().String()
	s.startedAt = s.now()
	s.difficulty = game.Easy
	s.rooms = nil
	s.active = NoRoom
	s.completed = mapset.New[int]()
	s.history = make(map[int][]game.Clue)
	s.stats = game.Stats{}
}

func (s *Session) ID() string                  { return s.id }
func (s *Session) StartedAt() time.Time        { return s.startedAt }
func (s *Session) Phase() Phase                { return s.phase }
func (s *Session) Difficulty() game.Difficulty { return s.difficulty }
func (s *Session) ActiveRoomIndex() int        { return s.active }
func (s *Session) Stats() game.Stats           { return s.stats }
func (s *Session) Muted() bool                 { return s.muted }

// Rooms returns a copy of the bound rooms in template order.
func (s *Session) Rooms() []game.Room {
	return slices.Clone(s.rooms)
}

// ActiveRoom returns the open room.
func (s *Session) ActiveRoom() (game.Room, bool) {
	if s.active < 0 || s.active >= len(s.rooms) {
		return game.Room{}, false
	}
	return s.rooms[s.active], true
}

// CompletedRoomIDs returns the completed room IDs in ascending order.
func (s *Session) CompletedRoomIDs() []int {
	ids := make([]int, 0, s.completed.Size())
	s.completed.Each(func(id int) { ids = append(ids, id) })
	slices.Sort(ids)
	return ids
}

// IsCompleted reports whether the room with the given ID is done.
func (s *Session) IsCompleted(id int) bool {
	return s.completed.Has(id)
}

// ClueHistory returns a copy of the committed clues keyed by room ID.
func (s *Session) ClueHistory() map[int][]game.Clue {
	out := make(map[int][]game.Clue, len(s.history))
	for id, clues := range s.history {
		out[id] = slices.Clone(clues)
	}
	return out
}

// Score recomputes the score, counting the open room's purchases.
func (s *Session) Score(open []game.Clue) int {
	return scoring.Current(s.stats, s.history, open)
}

// OpenDifficultySelection moves from the main menu to the tier picker.
func (s *Session) OpenDifficultySelection() error {
	if s.phase != PhaseMainMenu && s.phase != PhaseDifficultySelection {
		return s.invalid("open difficulty selection")
	}
	s.phase = PhaseDifficultySelection
	return nil
}

// SelectDifficulty starts a fresh game at d and moves to the randomizer.
func (s *Session) SelectDifficulty(d game.Difficulty) error {
	if s.phase != PhaseMainMenu && s.phase != PhaseDifficultySelection {
		return s.invalid("select difficulty")
	}
	s.clear()
	s.difficulty = d
	s.phase = PhaseRandomizing
	return nil
}

// CancelRandomizing returns to the tier picker without binding rooms.
func (s *Session) CancelRandomizing() error {
	if s.phase != PhaseRandomizing {
		return s.invalid("cancel randomizing")
	}
	s.phase = PhaseDifficultySelection
	return nil
}

// BindRooms stores the generated rooms and opens the map.
func (s *Session) BindRooms(rooms []game.Room) error {
	if s.phase != PhaseRandomizing {
		return s.invalid("bind rooms")
	}
	if len(rooms) == 0 {
		return fmt.Errorf("%w: bind rooms: no rooms", ErrInvalidTransition)
	}
	seen := make(map[int]bool, len(rooms))
	for _, r := range rooms {
		if seen[r.ID] {
			return fmt.Errorf("%w: bind rooms: duplicate room id %d", ErrInvalidTransition, r.ID)
		}
		seen[r.ID] = true
	}
	s.rooms = slices.Clone(rooms)
	s.completed = mapset.New[int]()
	s.active = NoRoom
	s.phase = PhaseMap
	return nil
}

// EnterRoom opens the room at index. Completed rooms cannot be re-entered.
func (s *Session) EnterRoom(index int) error {
	if s.phase != PhaseMap {
		return s.invalid("enter room")
	}
	if index < 0 || index >= len(s.rooms) {
		return fmt.Errorf("%w: enter room: index %d out of range", ErrInvalidTransition, index)
	}
	if s.completed.Has(s.rooms[index].ID) {
		return fmt.Errorf("%w: enter room: room %d already completed", ErrInvalidTransition, s.rooms[index].ID)
	}
	s.active = index
	s.phase = PhaseRoom
	return nil
}

// LeaveRoom closes the open room without committing its clues.
func (s *Session) LeaveRoom() error {
	if s.phase != PhaseRoom {
		return s.invalid("leave room")
	}
	s.active = NoRoom
	s.phase = PhaseMap
	return nil
}

// MarkRoomComplete adds id to the completed set. Repeated calls are no-ops.
func (s *Session) MarkRoomComplete(id int) error {
	if !s.hasRoom(id) {
		return fmt.Errorf("%w: unknown room id %d", ErrInvalidTransition, id)
	}
	s.completed.Put(id)
	return nil
}

// RecordClueHistory replaces the committed clues of room id.
func (s *Session) RecordClueHistory(id int, clues []game.Clue) error {
	if !s.hasRoom(id) {
		return fmt.Errorf("%w: unknown room id %d", ErrInvalidTransition, id)
	}
	s.history[id] = slices.Clone(clues)
	return nil
}

// MergeStats applies a partial stats update. Counters never decrease.
func (s *Session) MergeStats(p game.StatsPatch) {
	s.stats = s.stats.Apply(p)
}

// Apply merges the stats delta of an effect.
func (s *Session) Apply(e Effect) {
	s.MergeStats(e.Patch(s.stats))
}

// CompleteActiveRoom commits the visit's purchases, adds elapsedSeconds to
// the total time and marks the room done. The session moves to the map,
// or to victory once every room is completed.
func (s *Session) CompleteActiveRoom(v *Visit, elapsedSeconds int) error {
	room, ok := s.ActiveRoom()
	if s.phase != PhaseRoom || !ok {
		return s.invalid("complete room")
	}
	if v == nil || v.Room.ID != room.ID {
		return fmt.Errorf("%w: complete room: visit does not match room %d", ErrInvalidTransition, room.ID)
	}
	if !v.Solved() {
		return fmt.Errorf("%w: complete room: room %d not solved", ErrInvalidTransition, room.ID)
	}

	s.history[room.ID] = v.Unlocked()
	s.completed.Put(room.ID)
	s.MergeStats(game.StatsPatch{TotalTime: game.Int(s.stats.TotalTime + max(elapsedSeconds, 0))})
	s.active = NoRoom
	if s.completed.Size() >= len(s.rooms) {
		s.phase = PhaseVictory
	} else {
		s.phase = PhaseMap
	}
	return nil
}

// TimeUp discards the game after a room countdown expires and returns to
// the tier picker.
func (s *Session) TimeUp() error {
	if s.phase != PhaseRoom {
		return s.invalid("time up")
	}
	s.clear()
	s.phase = PhaseDifficultySelection
	return nil
}

// Quit discards the game and returns to the main menu.
func (s *Session) Quit() {
	s.Reset()
}

// Reset discards everything but the mute preference.
func (s *Session) Reset() {
	s.clear()
	s.phase = PhaseMainMenu
}

// ToggleMute flips the mute flag and returns the new value.
func (s *Session) ToggleMute() bool {
	s.muted = !s.muted
	return s.muted
}

// Snapshot is a read-only copy of the session, used by the journal and
// the debrief.
type Snapshot struct {
	ID         string
	StartedAt  time.Time
	Phase      Phase
	Difficulty game.Difficulty
	Rooms      []game.Room
	Completed  []int
	History    map[int][]game.Clue
	Stats      game.Stats
	Score      int
}

// Snapshot captures the committed state.
func (s *Session) Snapshot() Snapshot {
	history := s.ClueHistory()
	return Snapshot{
		ID:         s.id,
		StartedAt:  s.startedAt,
		Phase:      s.phase,
		Difficulty: s.difficulty,
		Rooms:      s.Rooms(),
		Completed:  s.CompletedRoomIDs(),
		History:    history,
		Stats:      s.stats,
		Score:      scoring.Current(s.stats, history, nil),
	}
}

// HistoryRoomIDs returns the IDs with committed clues in ascending order.
func (sn Snapshot) HistoryRoomIDs() []int {
	return slices.Sorted(maps.Keys(sn.History))
}

func (s *Session) hasRoom(id int) bool {
	return slices.ContainsFunc(s.rooms, func(r game.Room) bool { return r.ID == id })
}

func (s *Session) invalid(op string) error {
	return fmt.Errorf("%w: %s from %s", ErrInvalidTransition, op, s.phase)
}
