package store

import (
	"context"
	"database/sql"
	"fmt"
)

// Table names of the journal.
const (
	TableSessionEvents = "session_events"
	TableRoomEvents    = "room_events"
	TableClueEvents    = "clue_events"
	TableAnswerEvents  = "answer_events"
	TableLLMEvents     = "llm_request_events"
)

// Every event table starts with the shared sequence and a unix-millis
// timestamp.
const eventColumns = `
	sequence INTEGER PRIMARY KEY,
	timestamp INTEGER NOT NULL,`

var tables = []struct {
	name    string
	columns string
}{
	{TableSessionEvents, `
		session_id TEXT NOT NULL,
		action TEXT NOT NULL,
		difficulty TEXT NOT NULL,
		score INTEGER NOT NULL DEFAULT 0,
		rooms_completed INTEGER NOT NULL DEFAULT 0,
		clues_used INTEGER NOT NULL DEFAULT 0,
		correct_attempts INTEGER NOT NULL DEFAULT 0,
		wrong_attempts INTEGER NOT NULL DEFAULT 0,
		total_time_secs INTEGER NOT NULL DEFAULT 0`},
	{TableRoomEvents, `
		session_id TEXT NOT NULL,
		room_id INTEGER NOT NULL,
		element TEXT NOT NULL,
		theme TEXT NOT NULL,
		action TEXT NOT NULL,
		elapsed_secs INTEGER NOT NULL DEFAULT 0`},
	{TableClueEvents, `
		session_id TEXT NOT NULL,
		room_id INTEGER NOT NULL,
		element TEXT NOT NULL,
		clue_type TEXT NOT NULL,
		cost INTEGER NOT NULL,
		text TEXT NOT NULL`},
	{TableAnswerEvents, `
		session_id TEXT NOT NULL,
		room_id INTEGER NOT NULL,
		element TEXT NOT NULL,
		answer TEXT NOT NULL,
		correct INTEGER NOT NULL`},
	{TableLLMEvents, `
		session_id TEXT NOT NULL DEFAULT '',
		provider TEXT NOT NULL,
		model TEXT NOT NULL,
		purpose TEXT NOT NULL,
		input_tokens INTEGER NOT NULL DEFAULT 0,
		output_tokens INTEGER NOT NULL DEFAULT 0,
		latency_ms INTEGER NOT NULL DEFAULT 0,
		success INTEGER NOT NULL,
		error_message TEXT NOT NULL DEFAULT '',
		request_body TEXT NOT NULL DEFAULT '',
		response_body TEXT NOT NULL DEFAULT ''`},
}

// addedColumns are columns introduced after a table first shipped. Journals
// created before them get the column on open.
var addedColumns = []struct {
	table, column, def string
}{
	{TableLLMEvents, "session_id", "TEXT NOT NULL DEFAULT ''"},
}

func migrate(ctx context.Context, db *sql.DB) error {
	for _, t := range tables {
		ddl := fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s%s\n)", t.name, eventColumns, t.columns)
		if _, err := db.ExecContext(ctx, ddl); err != nil {
			return fmt.Errorf("create %s: %w", t.name, err)
		}
	}
	for _, c := range addedColumns {
		ok, err := hasColumn(ctx, db, c.table, c.column)
		if err != nil {
			return fmt.Errorf("inspect %s: %w", c.table, err)
		}
		if ok {
			continue
		}
		ddl := fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", c.table, c.column, c.def)
		if _, err := db.ExecContext(ctx, ddl); err != nil {
			return fmt.Errorf("add %s.%s: %w", c.table, c.column, err)
		}
	}
	return nil
}

func hasColumn(ctx context.Context, db *sql.DB, table, column string) (bool, error) {
	rows, err := db.QueryContext(ctx, "SELECT name FROM pragma_table_info(?)", table)
	if err != nil {
		return false, err
	}
	defer rows.Close()
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return false, err
		}
		if name == column {
			return true, nil
		}
	}
	return false, rows.Err()
}
