package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/periodica/internal/clues"
	"github.com/abhisek/periodica/internal/debrief"
	"github.com/abhisek/periodica/internal/game"
	"github.com/abhisek/periodica/internal/kb"
	"github.com/abhisek/periodica/internal/rng"
	"github.com/abhisek/periodica/internal/rooms"
	"github.com/abhisek/periodica/internal/session"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Play rooms line by line and print the debrief (no journal)",
	Long: `Play the escape room on plain stdin/stdout.

This is a stateless developer tool: no journal, no countdown, no TUI.
Useful for checking clue quality and the victory report.

Commands at the answer prompt:
  ?   buy the next clue      s   buy the symbol
  n   buy the atomic number  q   give up`,
	RunE: func(cmd *cobra.Command, args []string) error {
		val, _ := cmd.Flags().GetString("difficulty")
		count, _ := cmd.Flags().GetInt("rooms")
		seed, _ := cmd.Flags().GetUint64("seed")
		useLLM, _ := cmd.Flags().GetBool("debrief")

		d, err := parseDifficulty(val)
		if err != nil {
			return err
		}

		var svc *debrief.Service
		if useLLM {
			svc, err = newDebrief(cmd.Context(), nil)
			if err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), "LLM provider not configured:", err)
			}
		}

		p := previewer{
			in:      bufio.NewScanner(cmd.InOrStdin()),
			out:     cmd.OutOrStdout(),
			engine:  clues.NewEngine(kb.Default(), rng.NewSeeded(seed), clues.WithLogger(logger)),
			rooms:   rooms.NewGenerator(rng.NewSeeded(seed)),
			debrief: svc,
		}
		return p.run(cmd.Context(), d, count)
	},
}

func init() {
	previewCmd.Flags().StringP("difficulty", "d", "", "Tier: facile, intermedio or difficile")
	previewCmd.Flags().Int("rooms", 8, "Number of rooms to play (1-8)")
	previewCmd.Flags().Uint64("seed", 1, "Seed for the element draw and clue order")
	previewCmd.Flags().Bool("debrief", false, "Ask an LLM for the report instead of the built-in summary")
}

type previewer struct {
	in      *bufio.Scanner
	out     io.Writer
	engine  *clues.Engine
	rooms   *rooms.Generator
	debrief *debrief.Service
}

func (p *previewer) run(ctx context.Context, d game.Difficulty, count int) error {
	s := session.New()
	if err := s.OpenDifficultySelection(); err != nil {
		return err
	}
	if err := s.SelectDifficulty(d); err != nil {
		return err
	}
	if err := s.BindRooms(p.rooms.Generate(d)); err != nil {
		return err
	}

	count = min(max(count, 1), len(s.Rooms()))
	fmt.Fprintf(p.out, "Difficulty: %s, %d rooms\n\n", d, count)

	for i := range count {
		solved, err := p.playRoom(s, i)
		if err != nil {
			return err
		}
		if !solved {
			fmt.Fprintln(p.out, "\n(stopped)")
			break
		}
	}

	fmt.Fprintf(p.out, "── Score: %d ──\n\n", s.Score(nil))
	report, err := p.debrief.Write(ctx, debrief.FromSnapshot(s.Snapshot()))
	if err != nil {
		fmt.Fprintln(p.out, "(debrief failed, built-in summary follows)")
	}
	fmt.Fprintln(p.out, report.Title)
	fmt.Fprintln(p.out, report.Body)
	return nil
}

// playRoom runs one room until it is solved. It returns false when the
// input ends or the player gives up.
func (p *previewer) playRoom(s *session.Session, index int) (bool, error) {
	if err := s.EnterRoom(index); err != nil {
		return false, err
	}
	room, _ := s.ActiveRoom()
	v := session.NewVisit(room, s.Difficulty(), p.engine.Synthesize(room.Element.Name, room.Theme))

	fmt.Fprintf(p.out, "── %s · %s (%s) ──\n", room.Name, room.Group, room.Theme)
	next := 0

	for {
		fmt.Fprintf(p.out, "[score %d] Your answer: ", s.Score(v.Unlocked()))
		if !p.in.Scan() {
			return false, nil
		}
		input := strings.TrimSpace(p.in.Text())

		var eff session.Effect
		switch input {
		case "":
			continue
		case "q":
			return false, nil
		case "?":
			for next < len(v.Candidates()) && !v.Purchasable(next) {
				fmt.Fprintln(p.out, "  "+v.Candidates()[next].Text)
				next++
			}
			if next >= len(v.Candidates()) {
				fmt.Fprintln(p.out, "  (no clues left)")
				continue
			}
			eff = v.Unlock(next)
			next++
		case "s":
			eff = v.UnlockSymbol()
		case "n":
			eff = v.UnlockAtomicNumber()
		default:
			outcome, e := v.Submit(input)
			s.Apply(e)
			if outcome == session.OutcomeCorrect {
				fmt.Fprintf(p.out, "\033[32m✓ Correct!\033[0m %s\n\n", room.Element.Name)
				return true, s.CompleteActiveRoom(v, 0)
			}
			fmt.Fprintln(p.out, "\033[31m✗ Wrong.\033[0m")
			continue
		}

		if eff.None() {
			fmt.Fprintln(p.out, "  (not available)")
			continue
		}
		s.Apply(eff)
		unlocked := v.Unlocked()
		fmt.Fprintln(p.out, "  "+clues.Describe(unlocked[len(unlocked)-1]))
	}
}
