package cmd

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show results of past games",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("hardest")

		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := cmd.Context()
		st, err := s.EventRepo().GameStats(ctx)
		if err != nil {
			return fmt.Errorf("query games: %w", err)
		}

		out := cmd.OutOrStdout()
		if st.Games == 0 {
			fmt.Fprintln(out, "No finished games recorded yet.")
			return nil
		}

		fmt.Fprintln(out, "Games")
		fmt.Fprintln(out, strings.Repeat("─", 40))
		fmt.Fprintf(out, "%-16s %d\n", "Played", st.Games)
		fmt.Fprintf(out, "%-16s %d\n", "Won", st.Victories)
		fmt.Fprintf(out, "%-16s %d\n", "Time up", st.TimeUps)
		fmt.Fprintf(out, "%-16s %d\n", "Abandoned", st.Quits)
		if st.Victories > 0 {
			fmt.Fprintf(out, "%-16s %d\n", "Best score", st.BestScore)
			fmt.Fprintf(out, "%-16s %.1f\n", "Average score", st.AvgScore)
		}
		fmt.Fprintf(out, "%-16s %d\n", "Clues bought", st.CluesUsed)
		fmt.Fprintf(out, "%-16s %d\n", "Wrong answers", st.WrongAnswers)

		fmt.Fprintln(out)
		fmt.Fprintln(out, "By difficulty")
		fmt.Fprintln(out, strings.Repeat("─", 40))
		for _, d := range slices.Sorted(maps.Keys(st.ByDifficulty)) {
			fmt.Fprintf(out, "%-16s %d\n", d, st.ByDifficulty[d])
		}

		hardest, err := s.EventRepo().HardestElements(ctx, limit)
		if err != nil {
			return fmt.Errorf("query answers: %w", err)
		}
		if len(hardest) == 0 {
			return nil
		}

		fmt.Fprintln(out)
		fmt.Fprintln(out, "Hardest elements")
		fmt.Fprintln(out, strings.Repeat("─", 40))
		fmt.Fprintf(out, "%-16s %6s %6s %9s\n", "Element", "Right", "Wrong", "Accuracy")
		for _, e := range hardest {
			fmt.Fprintf(out, "%-16s %6d %6d %8.0f%%\n", e.Element, e.Correct, e.Wrong, e.Accuracy()*100)
		}
		return nil
	},
}

func init() {
	statsCmd.Flags().IntP("hardest", "n", 5, "Number of hardest elements to list")
}
