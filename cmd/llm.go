package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/periodica/internal/llm"
	"github.com/abhisek/periodica/internal/store"
)

const timeLayout = "2006-01-02 15:04"

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect the debrief requests sent to language models",
}

var llmGamesCmd = &cobra.Command{
	Use:   "games",
	Short: "List won games and the debrief calls made for each",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		games, err := s.EventRepo().GameDebriefs(cmd.Context(), limit)
		if err != nil {
			return fmt.Errorf("query games: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(games) == 0 {
			fmt.Fprintln(out, "No won games recorded yet.")
			return nil
		}

		fmt.Fprintf(out, "%-8s  %-16s  %-10s  %5s  %5s  %7s  %9s  %s\n",
			"Game", "Finished", "Difficulty", "Score", "Calls", "Tokens", "Cost", "Debrief")
		fmt.Fprintln(out, strings.Repeat("─", 84))
		for _, g := range games {
			fmt.Fprintf(out, "%-8s  %-16s  %-10s  %5d  %5d  %7d  %9s  %s\n",
				shortID(g.SessionID),
				g.Finished.Local().Format(timeLayout),
				g.Difficulty,
				g.Score,
				g.Calls,
				g.InputTokens+g.OutputTokens,
				estimate(g.Model, g.InputTokens, g.OutputTokens),
				debriefStatus(g),
			)
		}
		return nil
	},
}

// debriefStatus says where the victory screen text came from.
func debriefStatus(g store.GameDebrief) string {
	switch {
	case g.Calls == 0:
		return "offline"
	case g.Failed == g.Calls:
		return "fallback"
	default:
		return g.Model
	}
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent LLM requests",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		purpose, _ := cmd.Flags().GetString("purpose")
		game, _ := cmd.Flags().GetString("game")

		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		opts := store.QueryOpts{Limit: limit, Purpose: purpose}
		if game != "" {
			// Games are addressed by ID prefix, so filter after the query.
			opts.Limit = 0
		}
		events, err := s.EventRepo().QueryLLMEvents(cmd.Context(), opts)
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}
		if game != "" {
			events = forGame(events, game, limit)
		}

		out := cmd.OutOrStdout()
		if len(events) == 0 {
			fmt.Fprintln(out, "No LLM requests found.")
			return nil
		}

		fmt.Fprintf(out, "%-5s  %-16s  %-8s  %-28s  %11s  %6s  %s\n",
			"ID", "Time", "Game", "Model", "Tokens", "Ms", "OK")
		fmt.Fprintln(out, strings.Repeat("─", 88))
		for _, e := range events {
			ok := "✓"
			if !e.Success {
				ok = "✗"
			}
			fmt.Fprintf(out, "%-5d  %-16s  %-8s  %-28s  %5d/%-5d  %6d  %s\n",
				e.ID(),
				e.Timestamp.Local().Format(timeLayout),
				shortID(e.SessionID),
				truncate(e.Model, 28),
				e.InputTokens, e.OutputTokens,
				e.LatencyMs,
				ok,
			)
		}
		return nil
	},
}

func forGame(events []store.LLMRequestEvent, prefix string, limit int) []store.LLMRequestEvent {
	var kept []store.LLMRequestEvent
	for _, e := range events {
		if e.SessionID == "" || !strings.HasPrefix(e.SessionID, prefix) {
			continue
		}
		kept = append(kept, e)
		if limit > 0 && len(kept) == limit {
			break
		}
	}
	return kept
}

var llmViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "Show the prompt and reply of one LLM request",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid ID %q: %w", args[0], err)
		}

		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		e, err := s.EventRepo().GetLLMEvent(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("get event: %w", err)
		}
		if e == nil {
			return fmt.Errorf("event %d not found", id)
		}

		out := cmd.OutOrStdout()
		game := e.SessionID
		if game == "" {
			game = "-"
		}
		status := "ok"
		if !e.Success {
			status = "failed: " + e.ErrorMessage
		}
		for _, f := range [][2]string{
			{"Request", strconv.FormatInt(e.ID(), 10)},
			{"Time", e.Timestamp.Local().Format("2006-01-02 15:04:05")},
			{"Game", game},
			{"Model", e.Provider + " / " + e.Model},
			{"Purpose", e.Purpose},
			{"Tokens", fmt.Sprintf("%d in, %d out (%s)", e.InputTokens, e.OutputTokens, estimate(e.Model, e.InputTokens, e.OutputTokens))},
			{"Latency", fmt.Sprintf("%dms", e.LatencyMs)},
			{"Status", status},
		} {
			fmt.Fprintf(out, "%-9s %s\n", f[0]+":", f[1])
		}

		section(out, "Prompt", e.RequestBody)
		section(out, "Reply", e.ResponseBody)
		return nil
	},
}

func section(w io.Writer, title, body string) {
	fmt.Fprintf(w, "\n── %s %s\n", title, strings.Repeat("─", max(56-len(title), 4)))
	if body == "" {
		body = "(not captured)"
	}
	fmt.Fprintln(w, strings.TrimRight(body, "\n"))
}

var llmUsageCmd = &cobra.Command{
	Use:   "usage",
	Short: "Show token usage and estimated cost per model",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		usage, err := s.EventRepo().LLMUsageByModel(cmd.Context())
		if err != nil {
			return fmt.Errorf("query usage: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(usage) == 0 {
			fmt.Fprintln(out, "No LLM usage recorded yet.")
			return nil
		}

		fmt.Fprintf(out, "%-32s  %5s  %9s  %9s  %7s  %9s\n",
			"Model", "Calls", "Input", "Output", "Avg Ms", "Cost")
		fmt.Fprintln(out, strings.Repeat("─", 82))

		var calls, in, outTokens int
		var total float64
		var unpriced []string
		for _, u := range usage {
			calls += u.Calls
			in += u.InputTokens
			outTokens += u.OutputTokens
			if c := llm.LookupCost(u.Model); c != nil {
				total += c.Cost(u.InputTokens, u.OutputTokens)
			} else {
				unpriced = append(unpriced, u.Model)
			}
			fmt.Fprintf(out, "%-32s  %5d  %9d  %9d  %7d  %9s\n",
				truncate(u.Model, 32), u.Calls, u.InputTokens, u.OutputTokens, u.AvgLatencyMs,
				estimate(u.Model, u.InputTokens, u.OutputTokens))
		}

		fmt.Fprintln(out, strings.Repeat("─", 82))
		fmt.Fprintf(out, "%-32s  %5d  %9d  %9d  %7s  %9s\n", "Total", calls, in, outTokens, "", formatCost(total))
		if len(unpriced) > 0 {
			fmt.Fprintf(out, "\nNo pricing for %s; the total leaves them out.\n", strings.Join(unpriced, ", "))
		}
		return nil
	},
}

// estimate prices a token count at the model's rates, or "?" when the
// model is unknown.
func estimate(model string, in, out int) string {
	c := llm.LookupCost(model)
	if c == nil {
		if in+out == 0 {
			return "-"
		}
		return "?"
	}
	return formatCost(c.Cost(in, out))
}

func shortID(id string) string {
	if id == "" {
		return "-"
	}
	return truncate(id, 8)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

func formatCost(usd float64) string {
	if usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}

func init() {
	llmGamesCmd.Flags().IntP("limit", "n", 10, "Number of games to show")

	llmListCmd.Flags().IntP("limit", "n", 20, "Number of requests to show")
	llmListCmd.Flags().StringP("purpose", "p", "", "Only requests with this purpose (e.g. debrief)")
	llmListCmd.Flags().StringP("game", "g", "", "Only requests of the game whose ID starts with this")

	llmCmd.AddCommand(llmGamesCmd, llmListCmd, llmViewCmd, llmUsageCmd)
}
