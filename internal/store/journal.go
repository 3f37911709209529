package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

// Journal is the append-only event log of played games.
type Journal struct {
	db  *sql.DB
	seq *sequenceCounter
	now func() time.Time
}

func builder() *entsql.DialectBuilder {
	return entsql.Dialect(dialect.SQLite)
}

func (j *Journal) insert(ctx context.Context, table string, columns []string, values ...any) error {
	seq, err := j.seq.Next(ctx)
	if err != nil {
		return err
	}

	query, args := builder().Insert(table).
		Columns(append([]string{"sequence", "timestamp"}, columns...)...).
		Values(append([]any{seq, j.now().UnixMilli()}, values...)...).
		Query()
	if _, err := j.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert into %s: %w", table, err)
	}
	return nil
}

func (j *Journal) AppendSessionEvent(ctx context.Context, data SessionEventData) error {
	err := j.insert(ctx, TableSessionEvents,
		[]string{"session_id", "action", "difficulty", "score", "rooms_completed",
			"clues_used", "correct_attempts", "wrong_attempts", "total_time_secs"},
		data.SessionID, data.Action, data.Difficulty, data.Score, data.RoomsCompleted,
		data.CluesUsed, data.CorrectAttempts, data.WrongAttempts, data.TotalTimeSecs,
	)
	if err != nil {
		return fmt.Errorf("save session event: %w", err)
	}
	return nil
}

func (j *Journal) AppendRoomEvent(ctx context.Context, data RoomEventData) error {
	err := j.insert(ctx, TableRoomEvents,
		[]string{"session_id", "room_id", "element", "theme", "action", "elapsed_secs"},
		data.SessionID, data.RoomID, data.Element, data.Theme, data.Action, data.ElapsedSecs,
	)
	if err != nil {
		return fmt.Errorf("save room event: %w", err)
	}
	return nil
}

func (j *Journal) AppendClueEvent(ctx context.Context, data ClueEventData) error {
	err := j.insert(ctx, TableClueEvents,
		[]string{"session_id", "room_id", "element", "clue_type", "cost", "text"},
		data.SessionID, data.RoomID, data.Element, data.ClueType, data.Cost, data.Text,
	)
	if err != nil {
		return fmt.Errorf("save clue event: %w", err)
	}
	return nil
}

func (j *Journal) AppendAnswerEvent(ctx context.Context, data AnswerEventData) error {
	err := j.insert(ctx, TableAnswerEvents,
		[]string{"session_id", "room_id", "element", "answer", "correct"},
		data.SessionID, data.RoomID, data.Element, data.Answer, boolInt(data.Correct),
	)
	if err != nil {
		return fmt.Errorf("save answer event: %w", err)
	}
	return nil
}

func (j *Journal) AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error {
	err := j.insert(ctx, TableLLMEvents,
		llmColumns,
		data.SessionID, data.Provider, data.Model, data.Purpose, data.InputTokens, data.OutputTokens,
		data.LatencyMs, boolInt(data.Success), data.ErrorMessage, data.RequestBody, data.ResponseBody,
	)
	if err != nil {
		return fmt.Errorf("save LLM request event: %w", err)
	}
	return nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// selectEvents builds a selector over table honouring opts. Newest first.
func selectEvents(table string, opts QueryOpts, columns ...string) *entsql.Selector {
	b := builder()
	sel := b.Select(append([]string{"sequence", "timestamp"}, columns...)...).
		From(b.Table(table)).
		OrderBy(entsql.Desc("sequence"))

	if opts.After > 0 {
		sel.Where(entsql.GT("sequence", opts.After))
	}
	if opts.Before > 0 {
		sel.Where(entsql.LT("sequence", opts.Before))
	}
	if !opts.From.IsZero() {
		sel.Where(entsql.GTE("timestamp", opts.From.UnixMilli()))
	}
	if !opts.To.IsZero() {
		sel.Where(entsql.LTE("timestamp", opts.To.UnixMilli()))
	}
	if opts.SessionID != "" {
		sel.Where(entsql.EQ("session_id", opts.SessionID))
	}
	if opts.Purpose != "" && table == TableLLMEvents {
		sel.Where(entsql.EQ("purpose", opts.Purpose))
	}
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}
	return sel
}

// collect runs sel and scans every row with scan.
func collect[T any](ctx context.Context, db *sql.DB, sel *entsql.Selector, scan func(*sql.Rows) (T, error)) ([]T, error) {
	query, args := sel.Query()
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []T
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func eventAt(seq, millis int64) Event {
	return Event{Sequence: seq, Timestamp: time.UnixMilli(millis).UTC()}
}

// QuerySessionEvents returns session events, newest first.
func (j *Journal) QuerySessionEvents(ctx context.Context, opts QueryOpts) ([]SessionEvent, error) {
	sel := selectEvents(TableSessionEvents, opts,
		"session_id", "action", "difficulty", "score", "rooms_completed",
		"clues_used", "correct_attempts", "wrong_attempts", "total_time_secs")

	events, err := collect(ctx, j.db, sel, func(rows *sql.Rows) (SessionEvent, error) {
		var (
			e           SessionEvent
			seq, millis int64
		)
		err := rows.Scan(&seq, &millis,
			&e.SessionID, &e.Action, &e.Difficulty, &e.Score, &e.RoomsCompleted,
			&e.CluesUsed, &e.CorrectAttempts, &e.WrongAttempts, &e.TotalTimeSecs)
		e.Event = eventAt(seq, millis)
		return e, err
	})
	if err != nil {
		return nil, fmt.Errorf("query session events: %w", err)
	}
	return events, nil
}

// QueryAnswerEvents returns answer events, newest first.
func (j *Journal) QueryAnswerEvents(ctx context.Context, opts QueryOpts) ([]AnswerEvent, error) {
	sel := selectEvents(TableAnswerEvents, opts, "session_id", "room_id", "element", "answer", "correct")

	events, err := collect(ctx, j.db, sel, func(rows *sql.Rows) (AnswerEvent, error) {
		var (
			e           AnswerEvent
			seq, millis int64
			correct     int
		)
		err := rows.Scan(&seq, &millis, &e.SessionID, &e.RoomID, &e.Element, &e.Answer, &correct)
		e.Event = eventAt(seq, millis)
		e.Correct = correct != 0
		return e, err
	})
	if err != nil {
		return nil, fmt.Errorf("query answer events: %w", err)
	}
	return events, nil
}

var llmColumns = []string{"session_id", "provider", "model", "purpose", "input_tokens", "output_tokens",
	"latency_ms", "success", "error_message", "request_body", "response_body"}

func scanLLMEvent(rows *sql.Rows) (LLMRequestEvent, error) {
	var (
		e           LLMRequestEvent
		seq, millis int64
		success     int
	)
	err := rows.Scan(&seq, &millis, &e.SessionID, &e.Provider, &e.Model, &e.Purpose, &e.InputTokens, &e.OutputTokens,
		&e.LatencyMs, &success, &e.ErrorMessage, &e.RequestBody, &e.ResponseBody)
	e.Event = eventAt(seq, millis)
	e.Success = success != 0
	return e, err
}

// QueryLLMEvents returns LLM request events, newest first.
func (j *Journal) QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEvent, error) {
	events, err := collect(ctx, j.db, selectEvents(TableLLMEvents, opts, llmColumns...), scanLLMEvent)
	if err != nil {
		return nil, fmt.Errorf("query LLM events: %w", err)
	}
	return events, nil
}

// GetLLMEvent returns the LLM event with the given sequence, or nil.
func (j *Journal) GetLLMEvent(ctx context.Context, seq int64) (*LLMRequestEvent, error) {
	sel := selectEvents(TableLLMEvents, QueryOpts{}, llmColumns...).Where(entsql.EQ("sequence", seq))
	events, err := collect(ctx, j.db, sel, scanLLMEvent)
	if err != nil {
		return nil, fmt.Errorf("get LLM event: %w", err)
	}
	if len(events) == 0 {
		return nil, nil
	}
	return &events[0], nil
}
