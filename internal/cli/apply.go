package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/twisty"
)

var (
	applyOrder    int
	applyFacelets bool
	applyPlain    bool

	scrambleOrder  int
	scrambleLength int
	scrambleSeed   uint64
	scrambleShow   bool
)

var applyCmd = &cobra.Command{
	Use:   "apply <moves>",
	Short: "Apply a move sequence to a solved puzzle",
	Long: `Apply a space-separated move sequence to a solved puzzle and print the
result as a net.

Examples:
  twisty apply "R U R' U'"
  twisty apply -n 5 "2-3L 2R' l"
  twisty apply --facelets "M2 E2 S2"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runApply,
}

var scrambleCmd = &cobra.Command{
	Use:   "scramble",
	Short: "Generate a scramble",
	Long:  `Generate a random scramble for a puzzle order.`,
	RunE:  runScramble,
}

func init() {
	rootCmd.AddCommand(applyCmd)
	applyCmd.Flags().IntVarP(&applyOrder, "order", "n", 0, "Puzzle order (default from config)")
	applyCmd.Flags().BoolVar(&applyFacelets, "facelets", false, "Print the facelet string instead of a net")
	applyCmd.Flags().BoolVar(&applyPlain, "plain", false, "Print the net as letters")

	rootCmd.AddCommand(scrambleCmd)
	scrambleCmd.Flags().IntVarP(&scrambleOrder, "order", "n", 0, "Puzzle order (default from config)")
	scrambleCmd.Flags().IntVarP(&scrambleLength, "length", "l", 0, "Number of moves (default depends on order)")
	scrambleCmd.Flags().Uint64Var(&scrambleSeed, "seed", 0, "Random seed (default from config, 0 for random)")
	scrambleCmd.Flags().BoolVar(&scrambleShow, "show", false, "Also print the scrambled puzzle")
}

// instantScheduler returns a scheduler of the given order (0 for the
// configured one) that applies moves without animation.
func instantScheduler(order int, extra ...twisty.Option) (*twisty.Scheduler, error) {
	opts := []twisty.Option{twisty.WithInstant(true)}
	if order != 0 {
		layout := cfg.Layout()
		layout.Order = order
		opts = append(opts, twisty.WithLayout(layout))
	}
	return newScheduler(append(opts, extra...)...)
}

func printPuzzle(s *twisty.Scheduler, plain bool) {
	p := s.Puzzle()
	if plain {
		fmt.Print(p.String())
	} else {
		fmt.Print(renderNet(p.Order(), p.Facelets(), s.Colors()))
	}
}

func runApply(cmd *cobra.Command, args []string) error {
	s, err := instantScheduler(applyOrder)
	if err != nil {
		return err
	}
	if err := s.PushSequence(strings.Join(args, " ")); err != nil {
		fmt.Println(errorStyle.Render(fmt.Sprintf("skipped: %v", err)))
	}
	settle(s)

	if applyFacelets {
		fmt.Println(s.Puzzle().Facelets())
	} else {
		printPuzzle(s, applyPlain)
	}
	if s.Puzzle().IsSolved() {
		fmt.Println(statusStyle.Render("solved"))
	}
	return nil
}

func runScramble(cmd *cobra.Command, args []string) error {
	s, err := instantScheduler(scrambleOrder)
	if err != nil {
		return err
	}
	order := s.Puzzle().Order()

	length := scrambleLength
	if length <= 0 {
		length = twisty.DefaultScrambleLength(order)
	}
	seed := scrambleSeed
	if seed == 0 {
		seed = cfg.Scramble.Seed
	}
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	logger.Debug("scramble", "order", order, "length", length, "seed", seed)

	moves := twisty.NewScrambler(order, seed).Scramble(length)
	fmt.Println(twisty.FormatMoves(moves))

	if scrambleShow {
		if err := s.PushMoves(moves); err != nil {
			return err
		}
		settle(s)
		fmt.Println()
		printPuzzle(s, false)
	}
	return nil
}
