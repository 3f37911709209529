package cmd

import (
	"bufio"
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/periodica/internal/clues"
	"github.com/abhisek/periodica/internal/config"
	"github.com/abhisek/periodica/internal/game"
	"github.com/abhisek/periodica/internal/kb"
	"github.com/abhisek/periodica/internal/llm"
	"github.com/abhisek/periodica/internal/rng"
	"github.com/abhisek/periodica/internal/rooms"
	"github.com/abhisek/periodica/internal/scoring"
	"github.com/abhisek/periodica/internal/store"
)

// isolate keeps config files, .env lookups and journals inside a temp dir.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("XDG_DATA_HOME", dir)
	t.Setenv("PERIODICA_JOURNAL", "")
	return dir
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})
	err := rootCmd.Execute()
	return out.String(), err
}

func TestParseTheme(t *testing.T) {
	tests := []struct {
		in      string
		want    game.Theme
		wantErr bool
	}{
		{"primary", game.ThemePrimary, false},
		{"LIBRARY", game.ThemeLibrary, false},
		{"mixed", game.ThemeMixed, false},
		{"Biblioteca scientifica", game.ThemeLibrary, false},
		{"finale", game.ThemeFinale, false},
		{"kitchen", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseTheme(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFindElement(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"26", "Ferro", false},
		{"Fe", "Ferro", false},
		{"fe", "Ferro", false},
		{"ferro", "Ferro", false},
		{"999", "", true},
		{"Unobtanium", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			el, err := findElement(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, el.Name)
		})
	}
}

func TestParseDifficulty(t *testing.T) {
	d, err := parseDifficulty("")
	require.NoError(t, err)
	assert.Equal(t, game.Easy, d)

	d, err = parseDifficulty("difficile")
	require.NoError(t, err)
	assert.Equal(t, game.Hard, d)

	_, err = parseDifficulty("extreme")
	assert.Error(t, err)
}

func TestLLMConfig(t *testing.T) {
	isolate(t)
	for _, k := range []string{"GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY", "PERIODICA_LLM_PROVIDER", "PERIODICA_GEMINI_API_KEY"} {
		t.Setenv(k, "")
	}
	saved := cfg
	t.Cleanup(func() { cfg = saved })

	t.Run("explicit mock", func(t *testing.T) {
		cfg = config.Default()
		cfg.LLM = config.LLM{Provider: llm.ProviderMock, Model: "test-model"}
		c, err := llmConfig()
		require.NoError(t, err)
		assert.Equal(t, llm.ProviderMock, c.Provider)
		assert.Equal(t, "test-model", c.Selected().Model)
	})

	t.Run("discovered key", func(t *testing.T) {
		cfg = config.Default()
		t.Setenv("OPENAI_API_KEY", "sk-test")
		c, err := llmConfig()
		require.NoError(t, err)
		assert.Equal(t, llm.ProviderOpenAI, c.Provider)
		assert.Equal(t, "sk-test", c.Selected().APIKey)
	})

	t.Run("nothing configured", func(t *testing.T) {
		cfg = config.Default()
		_, err := llmConfig()
		assert.Error(t, err)
	})
}

func TestPreviewPlaysRoom(t *testing.T) {
	const seed = 5
	room := rooms.NewGenerator(rng.NewSeeded(seed)).Generate(game.Medium)[0]
	script := strings.Join([]string{"s", "s", "nope", strings.ToLower(room.Element.Name)}, "\n") + "\n"

	var out bytes.Buffer
	p := previewer{
		in:     bufio.NewScanner(strings.NewReader(script)),
		out:    &out,
		engine: clues.NewEngine(kb.Default(), rng.NewSeeded(seed)),
		rooms:  rooms.NewGenerator(rng.NewSeeded(seed)),
	}
	require.NoError(t, p.run(context.Background(), game.Medium, 1))

	text := out.String()
	assert.Contains(t, text, "Difficulty: INTERMEDIO, 1 rooms")
	assert.Contains(t, text, "Simbolo Chimico: "+room.Element.Symbol)
	assert.Contains(t, text, "(not available)")
	assert.Contains(t, text, "✗ Wrong.")
	assert.Contains(t, text, "✓ Correct!")

	score := scoring.Start - scoring.SymbolCost - scoring.WrongAnswerCost
	assert.Contains(t, text, "── Score: "+strconv.Itoa(score)+" ──")
}

func TestPreviewStopsOnEOF(t *testing.T) {
	var out bytes.Buffer
	p := previewer{
		in:     bufio.NewScanner(strings.NewReader("q\n")),
		out:    &out,
		engine: clues.NewEngine(kb.Default(), rng.NewSeeded(1)),
		rooms:  rooms.NewGenerator(rng.NewSeeded(1)),
	}
	require.NoError(t, p.run(context.Background(), game.Hard, 3))
	assert.Contains(t, out.String(), "(stopped)")
	assert.Contains(t, out.String(), "── Score: 100 ──")
}

func TestElementsListCommand(t *testing.T) {
	isolate(t)
	out, err := execute(t, "elements", "list", "--difficulty", "facile")
	require.NoError(t, err)
	assert.Contains(t, out, "FACILE")
	assert.Contains(t, out, "Sym")
}

func TestCluesCommand(t *testing.T) {
	isolate(t)
	out, err := execute(t, "clues", "--element", "Ferro", "--theme", "library", "--seed", "3", "--specials")
	require.NoError(t, err)
	assert.Contains(t, out, "Ferro (Fe)")
	assert.Contains(t, out, "Simbolo Chimico: Fe")
}

func TestVersionCommand(t *testing.T) {
	isolate(t)
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "periodica (devel)\n", out)
}

func TestResetCommand(t *testing.T) {
	dir := isolate(t)
	journal := filepath.Join(dir, "j.db")
	require.NoError(t, os.WriteFile(journal, []byte("x"), 0o644))

	out, err := execute(t, "reset", "--journal", journal)
	require.NoError(t, err)
	assert.Contains(t, out, "--yes")
	assert.FileExists(t, journal)

	out, err = execute(t, "reset", "--journal", journal, "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted")
	assert.NoFileExists(t, journal)

	out, err = execute(t, "reset", "--journal", journal, "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "No journal found.")
}

func TestStatsCommandEmptyJournal(t *testing.T) {
	dir := isolate(t)
	out, err := execute(t, "stats", "--journal", filepath.Join(dir, "stats.db"))
	require.NoError(t, err)
	assert.Contains(t, out, "No finished games recorded yet.")
}

func seedJournal(t *testing.T, path string) {
	t.Helper()
	s, err := store.Open(path)
	require.NoError(t, err)
	defer s.Close()

	ctx := context.Background()
	repo := s.EventRepo()
	for _, e := range []store.SessionEventData{
		{SessionID: "aaaa1111-game", Action: store.SessionVictory, Difficulty: "FACILE", Score: 96},
		{SessionID: "bbbb2222-game", Action: store.SessionVictory, Difficulty: "DIFFICILE", Score: 70},
	} {
		require.NoError(t, repo.AppendSessionEvent(ctx, e))
	}
	for _, e := range []store.LLMRequestEventData{
		{SessionID: "aaaa1111-game", Provider: "mock", Model: "mock-model", Purpose: "debrief",
			InputTokens: 120, OutputTokens: 40, Success: true,
			RequestBody: "[user]\nPunteggio finale: 96", ResponseBody: `{"title":"Bravo"}`},
		{SessionID: "bbbb2222-game", Provider: "mock", Model: "mock-model", Purpose: "debrief",
			ErrorMessage: "provider unavailable"},
	} {
		require.NoError(t, repo.AppendLLMRequest(ctx, e))
	}
}

func TestLLMCommandsFollowGames(t *testing.T) {
	dir := isolate(t)
	journal := filepath.Join(dir, "llm.db")
	seedJournal(t, journal)

	out, err := execute(t, "llm", "games", "--journal", journal)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[2], "bbbb2222")
	assert.Contains(t, lines[2], "fallback")
	assert.Contains(t, lines[3], "aaaa1111")
	assert.Contains(t, lines[3], "mock-model")

	out, err = execute(t, "llm", "list", "--journal", journal, "--game", "aaaa", "-n", "20")
	require.NoError(t, err)
	assert.Contains(t, out, "aaaa1111")
	assert.NotContains(t, out, "bbbb2222")

	out, err = execute(t, "llm", "view", "3", "--journal", journal)
	require.NoError(t, err)
	assert.Contains(t, out, "aaaa1111-game")
	assert.Contains(t, out, "Punteggio finale: 96")
	assert.Contains(t, out, `{"title":"Bravo"}`)

	_, err = execute(t, "llm", "view", "99", "--journal", journal)
	assert.ErrorContains(t, err, "not found")
}

func TestLLMGamesEmptyJournal(t *testing.T) {
	dir := isolate(t)
	out, err := execute(t, "llm", "games", "--journal", filepath.Join(dir, "empty.db"))
	require.NoError(t, err)
	assert.Contains(t, out, "No won games recorded yet.")
}
