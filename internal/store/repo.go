package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit     int       // max results (0 = unlimited)
	After     int64     // sequence > After
	Before    int64     // sequence < Before
	From      time.Time // timestamp >= From
	To        time.Time // timestamp <= To
	SessionID string    // only events of this session
	Purpose   string    // only LLM events with this purpose
}

// Session actions.
const (
	SessionStarted = "start"
	SessionVictory = "victory"
	SessionQuit    = "quit"
	SessionTimeUp  = "time_up"
)

// Room actions.
const (
	RoomEntered   = "enter"
	RoomLeft      = "leave"
	RoomCompleted = "complete"
	RoomTimedOut  = "time_up"
)

// SessionEventData captures a session lifecycle event with the stats at
// that point.
type SessionEventData struct {
	SessionID       string
	Action          string
	Difficulty      string
	Score           int
	RoomsCompleted  int
	CluesUsed       int
	CorrectAttempts int
	WrongAttempts   int
	TotalTimeSecs   int
}

// RoomEventData captures entering, leaving or finishing a room.
type RoomEventData struct {
	SessionID   string
	RoomID      int
	Element     string
	Theme       string
	Action      string
	ElapsedSecs int
}

// ClueEventData captures one clue purchase.
type ClueEventData struct {
	SessionID string
	RoomID    int
	Element   string
	ClueType  string
	Cost      int
	Text      string
}

// AnswerEventData captures one answer submission.
type AnswerEventData struct {
	SessionID string
	RoomID    int
	Element   string
	Answer    string
	Correct   bool
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	// SessionID is empty for requests made outside a game.
	SessionID    string
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// Event carries the fields shared by every journal row.
type Event struct {
	Sequence  int64
	Timestamp time.Time
}

// SessionEvent is a stored session event.
type SessionEvent struct {
	Event
	SessionEventData
}

// AnswerEvent is a stored answer event.
type AnswerEvent struct {
	Event
	AnswerEventData
}

// LLMRequestEvent is a stored LLM request event.
type LLMRequestEvent struct {
	Event
	LLMRequestEventData
}

// ID is the sequence used to address an event from the CLI.
func (e LLMRequestEvent) ID() int64 {
	return e.Sequence
}

// EventRepo provides append access to domain events.
type EventRepo interface {
	AppendSessionEvent(ctx context.Context, data SessionEventData) error
	AppendRoomEvent(ctx context.Context, data RoomEventData) error
	AppendClueEvent(ctx context.Context, data ClueEventData) error
	AppendAnswerEvent(ctx context.Context, data AnswerEventData) error

	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error
}

var _ EventRepo = (*Journal)(nil)
