package store

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	s, err := Open("file:" + name + "?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestAutoMigrationCreatesTables(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	for _, table := range []string{TableSessionEvents, TableRoomEvents, TableClueEvents, TableAnswerEvents, TableLLMEvents} {
		var name string
		err := db.QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		if err != nil {
			t.Errorf("table %s: %v", table, err)
		}
	}
}

func TestSequenceIsSharedAcrossTables(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	if err := repo.AppendSessionEvent(ctx, SessionEventData{SessionID: "s1", Action: SessionStarted, Difficulty: "FACILE"}); err != nil {
		t.Fatalf("append session: %v", err)
	}
	if err := repo.AppendAnswerEvent(ctx, AnswerEventData{SessionID: "s1", RoomID: 1, Element: "Ferro", Answer: "ferro", Correct: true}); err != nil {
		t.Fatalf("append answer: %v", err)
	}
	if err := repo.AppendLLMRequest(ctx, LLMRequestEventData{Provider: "mock", Model: "mock", Purpose: "debrief", Success: true}); err != nil {
		t.Fatalf("append llm: %v", err)
	}

	sessions, _ := repo.QuerySessionEvents(ctx, QueryOpts{})
	answers, _ := repo.QueryAnswerEvents(ctx, QueryOpts{})
	llms, _ := repo.QueryLLMEvents(ctx, QueryOpts{})
	if len(sessions) != 1 || len(answers) != 1 || len(llms) != 1 {
		t.Fatalf("got %d/%d/%d events, want 1/1/1", len(sessions), len(answers), len(llms))
	}

	seqs := []int64{sessions[0].Sequence, answers[0].Sequence, llms[0].Sequence}
	for i, seq := range seqs {
		if want := int64(i + 1); seq != want {
			t.Errorf("seq[%d] = %d, want %d", i, seq, want)
		}
	}
}

func TestSequenceResumesAfterReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.db")
	ctx := context.Background()

	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	for i := 0; i < 3; i++ {
		if err := s.EventRepo().AppendRoomEvent(ctx, RoomEventData{SessionID: "s", RoomID: i + 1, Element: "Elio", Action: RoomEntered}); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}
	s.Close()

	s, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()

	seq, err := s.seq.Next(ctx)
	if err != nil {
		t.Fatalf("next: %v", err)
	}
	if seq != 4 {
		t.Errorf("next sequence = %d, want 4", seq)
	}
}

func TestQueryOptsFilters(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	tick := 0
	repo.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	}

	for i, purpose := range []string{"debrief", "debrief", "other", "debrief"} {
		err := repo.AppendLLMRequest(ctx, LLMRequestEventData{Provider: "mock", Model: "m", Purpose: purpose, Success: i%2 == 0})
		if err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	tests := []struct {
		name string
		opts QueryOpts
		want []int64
	}{
		{"all newest first", QueryOpts{}, []int64{4, 3, 2, 1}},
		{"limit", QueryOpts{Limit: 2}, []int64{4, 3}},
		{"after", QueryOpts{After: 2}, []int64{4, 3}},
		{"before", QueryOpts{Before: 3}, []int64{2, 1}},
		{"purpose", QueryOpts{Purpose: "debrief"}, []int64{4, 2, 1}},
		{"time window", QueryOpts{From: base.Add(2 * time.Minute), To: base.Add(3 * time.Minute)}, []int64{3, 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events, err := repo.QueryLLMEvents(ctx, tt.opts)
			if err != nil {
				t.Fatalf("query: %v", err)
			}
			var got []int64
			for _, e := range events {
				got = append(got, e.ID())
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("got %v, want %v", got, tt.want)
					break
				}
			}
		})
	}
}

func TestGetLLMEvent(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	err := repo.AppendLLMRequest(ctx, LLMRequestEventData{
		Provider: "anthropic", Model: "claude", Purpose: "debrief",
		InputTokens: 120, OutputTokens: 80, LatencyMs: 900,
		Success: false, ErrorMessage: "rate limit", RequestBody: "[user]\nhi", ResponseBody: "",
	})
	if err != nil {
		t.Fatalf("append: %v", err)
	}

	e, err := repo.GetLLMEvent(ctx, 1)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if e == nil {
		t.Fatal("expected event")
	}
	if e.Success || e.ErrorMessage != "rate limit" || e.InputTokens != 120 || e.RequestBody != "[user]\nhi" {
		t.Errorf("unexpected event: %+v", e)
	}

	missing, err := repo.GetLLMEvent(ctx, 99)
	if err != nil {
		t.Fatalf("get missing: %v", err)
	}
	if missing != nil {
		t.Errorf("expected nil for missing event, got %+v", missing)
	}
}

func TestGameStats(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	events := []SessionEventData{
		{SessionID: "a", Action: SessionStarted, Difficulty: "FACILE"},
		{SessionID: "a", Action: SessionVictory, Difficulty: "FACILE", Score: 91, CluesUsed: 4, WrongAttempts: 1},
		{SessionID: "b", Action: SessionStarted, Difficulty: "DIFFICILE"},
		{SessionID: "b", Action: SessionTimeUp, Difficulty: "DIFFICILE", CluesUsed: 2},
		{SessionID: "c", Action: SessionVictory, Difficulty: "DIFFICILE", Score: 75, WrongAttempts: 3},
		{SessionID: "d", Action: SessionQuit, Difficulty: "INTERMEDIO"},
	}
	for _, e := range events {
		if err := repo.AppendSessionEvent(ctx, e); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	st, err := repo.GameStats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if st.Games != 4 || st.Victories != 2 || st.TimeUps != 1 || st.Quits != 1 {
		t.Errorf("counts = %+v", st)
	}
	if st.BestScore != 91 {
		t.Errorf("BestScore = %d, want 91", st.BestScore)
	}
	if st.AvgScore != 83 {
		t.Errorf("AvgScore = %v, want 83", st.AvgScore)
	}
	if st.CluesUsed != 6 || st.WrongAnswers != 4 {
		t.Errorf("CluesUsed = %d, WrongAnswers = %d", st.CluesUsed, st.WrongAnswers)
	}
	if st.ByDifficulty["DIFFICILE"] != 2 {
		t.Errorf("ByDifficulty = %v", st.ByDifficulty)
	}
}

func TestHardestElements(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	answers := []AnswerEventData{
		{Element: "Ferro", Answer: "rame", Correct: false},
		{Element: "Ferro", Answer: "ferro", Correct: true},
		{Element: "Boro", Answer: "bario", Correct: false},
		{Element: "Boro", Answer: "bromo", Correct: false},
		{Element: "Elio", Answer: "elio", Correct: true},
	}
	for _, a := range answers {
		if err := repo.AppendAnswerEvent(ctx, a); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	got, err := repo.HardestElements(ctx, 2)
	if err != nil {
		t.Fatalf("hardest: %v", err)
	}
	if len(got) != 2 || got[0].Element != "Boro" || got[1].Element != "Ferro" {
		t.Fatalf("got %+v", got)
	}
	if got[1].Accuracy() != 0.5 {
		t.Errorf("Ferro accuracy = %v, want 0.5", got[1].Accuracy())
	}
}

func TestLLMUsage(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for _, e := range []LLMRequestEventData{
		{Model: "a", Purpose: "debrief", InputTokens: 10, OutputTokens: 5, LatencyMs: 100},
		{Model: "a", Purpose: "debrief", InputTokens: 20, OutputTokens: 5, LatencyMs: 300},
		{Model: "b", Purpose: "debrief", InputTokens: 1, OutputTokens: 1, LatencyMs: 50},
	} {
		if err := repo.AppendLLMRequest(ctx, e); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	byPurpose, err := repo.LLMUsageByPurpose(ctx)
	if err != nil {
		t.Fatalf("by purpose: %v", err)
	}
	if len(byPurpose) != 1 || byPurpose[0].Calls != 3 || byPurpose[0].InputTokens != 31 || byPurpose[0].AvgLatencyMs != 150 {
		t.Errorf("by purpose = %+v", byPurpose)
	}

	byModel, err := repo.LLMUsageByModel(ctx)
	if err != nil {
		t.Fatalf("by model: %v", err)
	}
	if len(byModel) != 2 || byModel[0].Model != "a" || byModel[0].Calls != 2 || byModel[0].AvgLatencyMs != 200 {
		t.Errorf("by model = %+v", byModel)
	}
}

func TestGameDebriefs(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	appendAll := func(sessions []SessionEventData, calls []LLMRequestEventData) {
		for _, e := range sessions {
			if err := repo.AppendSessionEvent(ctx, e); err != nil {
				t.Fatalf("append session: %v", err)
			}
		}
		for _, e := range calls {
			if err := repo.AppendLLMRequest(ctx, e); err != nil {
				t.Fatalf("append llm: %v", err)
			}
		}
	}
	appendAll(
		[]SessionEventData{
			{SessionID: "g1", Action: SessionStarted, Difficulty: "FACILE"},
			{SessionID: "g1", Action: SessionVictory, Difficulty: "FACILE", Score: 96},
			{SessionID: "g2", Action: SessionStarted, Difficulty: "DIFFICILE"},
			{SessionID: "g2", Action: SessionTimeUp, Difficulty: "DIFFICILE"},
			{SessionID: "g3", Action: SessionVictory, Difficulty: "INTERMEDIO", Score: 80},
		},
		[]LLMRequestEventData{
			{SessionID: "g1", Model: "old", Purpose: "debrief", InputTokens: 10, OutputTokens: 2},
			{SessionID: "g1", Model: "new", Purpose: "debrief", InputTokens: 5, OutputTokens: 3, Success: true},
			{Model: "new", Purpose: "debrief", InputTokens: 100},
		},
	)

	games, err := repo.GameDebriefs(ctx, 0)
	if err != nil {
		t.Fatalf("game debriefs: %v", err)
	}
	if len(games) != 2 {
		t.Fatalf("got %d games, want 2: %+v", len(games), games)
	}

	g3, g1 := games[0], games[1]
	if g3.SessionID != "g3" || g3.Calls != 0 || g3.Score != 80 {
		t.Errorf("newest game = %+v", g3)
	}
	if g1.SessionID != "g1" || g1.Calls != 2 || g1.Failed != 1 || g1.InputTokens != 15 || g1.OutputTokens != 5 || g1.Model != "new" {
		t.Errorf("debriefed game = %+v", g1)
	}

	limited, err := repo.GameDebriefs(ctx, 1)
	if err != nil || len(limited) != 1 || limited[0].SessionID != "g3" {
		t.Errorf("limit 1 = %+v, %v", limited, err)
	}

	tagged, err := repo.QueryLLMEvents(ctx, QueryOpts{SessionID: "g1"})
	if err != nil || len(tagged) != 2 {
		t.Errorf("session filter = %d events, %v", len(tagged), err)
	}
}

func TestMigrateAddsSessionColumn(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()
	ctx := context.Background()

	if _, err := db.Exec("DROP TABLE " + TableLLMEvents); err != nil {
		t.Fatalf("drop: %v", err)
	}
	legacy := "CREATE TABLE " + TableLLMEvents + ` (` + eventColumns + `
		provider TEXT NOT NULL, model TEXT NOT NULL, purpose TEXT NOT NULL,
		input_tokens INTEGER NOT NULL DEFAULT 0, output_tokens INTEGER NOT NULL DEFAULT 0,
		latency_ms INTEGER NOT NULL DEFAULT 0, success INTEGER NOT NULL,
		error_message TEXT NOT NULL DEFAULT '', request_body TEXT NOT NULL DEFAULT '',
		response_body TEXT NOT NULL DEFAULT '')`
	if _, err := db.Exec(legacy); err != nil {
		t.Fatalf("create legacy table: %v", err)
	}

	if err := migrate(ctx, db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	ok, err := hasColumn(ctx, db, TableLLMEvents, "session_id")
	if err != nil || !ok {
		t.Fatalf("session_id present = %v, %v", ok, err)
	}
	if err := s.EventRepo().AppendLLMRequest(ctx, LLMRequestEventData{SessionID: "g1", Model: "m", Purpose: "debrief"}); err != nil {
		t.Errorf("append after migrate: %v", err)
	}
}

func TestDefaultDBPath(t *testing.T) {
	dir := t.TempDir()

	t.Setenv("PERIODICA_JOURNAL", filepath.Join(dir, "x", "j.db"))
	p, err := DefaultDBPath()
	if err != nil || p != filepath.Join(dir, "x", "j.db") {
		t.Errorf("env override: %q, %v", p, err)
	}

	t.Setenv("PERIODICA_JOURNAL", "")
	t.Setenv("XDG_DATA_HOME", dir)
	p, err = DefaultDBPath()
	if err != nil || p != filepath.Join(dir, "periodica", "journal.db") {
		t.Errorf("xdg: %q, %v", p, err)
	}
}
