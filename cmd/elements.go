package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/periodica/internal/elements"
	"github.com/abhisek/periodica/internal/game"
	"github.com/abhisek/periodica/internal/kb"
)

var elementsCmd = &cobra.Command{
	Use:   "elements",
	Short: "Browse the element catalog",
}

var elementsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the elements a tier draws from",
	RunE: func(cmd *cobra.Command, args []string) error {
		val, _ := cmd.Flags().GetString("difficulty")
		d, err := parseDifficulty(val)
		if err != nil {
			return err
		}

		pool := elements.Pool(d)
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s: %d elements\n", d, len(pool))
		fmt.Fprintln(out, strings.Repeat("─", 40))
		fmt.Fprintf(out, "%4s  %-4s  %s\n", "Z", "Sym", "Name")
		fmt.Fprintln(out, strings.Repeat("─", 40))
		for _, el := range pool {
			fmt.Fprintf(out, "%4d  %-4s  %s\n", el.AtomicNumber, el.Symbol, el.Name)
		}
		return nil
	},
}

var elementsShowCmd = &cobra.Command{
	Use:   "show <name|symbol|Z>",
	Short: "Show the knowledge base record of an element",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		el, err := findElement(args[0])
		if err != nil {
			return err
		}

		rec, ok := kb.Default().Lookup(el.Name)
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s (%s), Z = %d\n", el.Name, el.Symbol, el.AtomicNumber)
		if !ok {
			fmt.Fprintln(out, "No knowledge base record.")
			return nil
		}
		for f := kb.Field(0); f < kb.FieldCount; f++ {
			text := rec.Text(f)
			if text == "" {
				continue
			}
			fmt.Fprintln(out)
			fmt.Fprintln(out, f.String())
			fmt.Fprintln(out, strings.Repeat("─", 40))
			fmt.Fprintln(out, text)
		}
		return nil
	},
}

// findElement resolves a name, a symbol or an atomic number.
func findElement(arg string) (game.Element, error) {
	if z, err := strconv.Atoi(arg); err == nil {
		if el, ok := elements.ByAtomicNumber(z); ok {
			return el, nil
		}
		return game.Element{}, fmt.Errorf("no element with atomic number %d", z)
	}
	if el, ok := elements.ByName(arg); ok {
		return el, nil
	}
	for _, el := range elements.Full() {
		if strings.EqualFold(el.Symbol, arg) {
			return el, nil
		}
	}
	return game.Element{}, fmt.Errorf("unknown element %q", arg)
}

func init() {
	elementsListCmd.Flags().StringP("difficulty", "d", "", "Tier: facile, intermedio or difficile")

	elementsCmd.AddCommand(elementsListCmd)
	elementsCmd.AddCommand(elementsShowCmd)
}
