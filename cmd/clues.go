package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/periodica/internal/clues"
	"github.com/abhisek/periodica/internal/game"
	"github.com/abhisek/periodica/internal/kb"
	"github.com/abhisek/periodica/internal/rng"
)

var themes = map[string]game.Theme{
	"primary": game.ThemePrimary,
	"library": game.ThemeLibrary,
	"mixed":   game.ThemeMixed,
	"finale":  game.ThemeFinale,
}

// parseTheme accepts the short theme names or the displayed ones.
func parseTheme(s string) (game.Theme, error) {
	if t, ok := themes[strings.ToLower(s)]; ok {
		return t, nil
	}
	for _, t := range themes {
		if strings.EqualFold(string(t), s) {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown theme %q (use primary, library, mixed or finale)", s)
}

var cluesCmd = &cobra.Command{
	Use:   "clues",
	Short: "Print the clues a room would offer for an element",
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("element")
		themeVal, _ := cmd.Flags().GetString("theme")
		seed, _ := cmd.Flags().GetUint64("seed")
		withSpecials, _ := cmd.Flags().GetBool("specials")

		theme, err := parseTheme(themeVal)
		if err != nil {
			return err
		}

		k := kb.Default()
		rec, ok := k.Lookup(name)
		if !ok {
			return fmt.Errorf("element %q not in the knowledge base", name)
		}

		var shuffler rng.Shuffler = rng.New()
		if cmd.Flags().Changed("seed") {
			shuffler = rng.NewSeeded(seed)
		}
		engine := clues.NewEngine(k, shuffler, clues.WithLogger(logger))

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s (%s) · %s\n", rec.Name, rec.Symbol, theme)
		fmt.Fprintln(out, strings.Repeat("─", 60))
		for i, c := range engine.Synthesize(rec.Name, theme) {
			fmt.Fprintf(out, "%2d. %s\n", i+1, clues.Describe(c))
		}
		if withSpecials {
			el := rec.Element()
			fmt.Fprintln(out, strings.Repeat("─", 60))
			fmt.Fprintln(out, "    "+clues.Describe(clues.SymbolClue(el)))
			fmt.Fprintln(out, "    "+clues.Describe(clues.AtomicNumberClue(el)))
		}
		return nil
	},
}

func init() {
	cluesCmd.Flags().StringP("element", "e", "", "Element name, e.g. Ferro (required)")
	cluesCmd.Flags().StringP("theme", "t", "primary", "Room theme: primary, library, mixed or finale")
	cluesCmd.Flags().Uint64("seed", 0, "Seed the shuffle for a repeatable order")
	cluesCmd.Flags().Bool("specials", false, "Also print the symbol and atomic number clues")
	_ = cluesCmd.MarkFlagRequired("element")
}
