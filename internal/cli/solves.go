package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/twisty"
	"github.com/SeamusWaldron/twisty/internal/storage"
)

var (
	listLimit int
	listOrder int
	showLast  bool
)

var solvesCmd = &cobra.Command{
	Use:   "solves",
	Short: "Manage recorded solves",
	Long:  `Commands for listing, inspecting and deleting recorded solves.`,
}

var solvesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent solves",
	Long:  `Display a list of recent solves with basic statistics.`,
	RunE:  runSolvesList,
}

var solvesShowCmd = &cobra.Command{
	Use:   "show [solve-id]",
	Short: "Show details of a solve",
	Long: `Display detailed information about a specific solve including:
- Solve metadata (order, duration, moves, TPS)
- Scramble and move sequence
- Turns per axis

Use --last to show the most recent solve.`,
	RunE: runSolvesShow,
}

var solvesDeleteCmd = &cobra.Command{
	Use:   "delete <solve-id>",
	Short: "Delete a solve",
	Args:  cobra.ExactArgs(1),
	RunE:  runSolvesDelete,
}

func init() {
	rootCmd.AddCommand(solvesCmd)

	solvesCmd.AddCommand(solvesListCmd)
	solvesListCmd.Flags().IntVar(&listLimit, "limit", 20, "Maximum number of solves to display")
	solvesListCmd.Flags().IntVarP(&listOrder, "order", "n", 0, "Only show solves of this order")

	solvesCmd.AddCommand(solvesShowCmd)
	solvesShowCmd.Flags().BoolVar(&showLast, "last", false, "Show the most recent solve")

	solvesCmd.AddCommand(solvesDeleteCmd)
}

// resolveSolve finds the solve named by args, or the latest one.
func resolveSolve(repo *storage.SolveRepository, args []string, last bool) (*storage.Solve, error) {
	if last {
		solves, err := repo.List(0, 1)
		if err != nil {
			return nil, err
		}
		if len(solves) == 0 {
			return nil, fmt.Errorf("no solves recorded yet")
		}
		return &solves[0], nil
	}
	if len(args) == 0 {
		return nil, fmt.Errorf("specify a solve ID or --last")
	}
	solve, err := repo.Get(args[0])
	if err != nil {
		return nil, err
	}
	if solve == nil {
		return nil, fmt.Errorf("solve not found: %s", args[0])
	}
	return solve, nil
}

func tps(moves int, s storage.Solve) string {
	if s.DurationMs <= 0 {
		return "-"
	}
	return fmt.Sprintf("%.2f", float64(moves)/(float64(s.DurationMs)/1000.0))
}

func runSolvesList(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	solveRepo := storage.NewSolveRepository(db)
	solves, err := solveRepo.List(listOrder, listLimit)
	if err != nil {
		return fmt.Errorf("failed to list solves: %w", err)
	}

	if len(solves) == 0 {
		fmt.Println("No solves recorded yet")
		fmt.Println("Play and solve a scramble with: twisty play")
		return nil
	}

	fmt.Printf("Recent solves (showing %d):\n", len(solves))
	fmt.Println()
	fmt.Printf("%-36s  %-5s  %-20s  %-10s  %-6s  %-6s  %s\n", "ID", "Size", "Recorded", "Duration", "Moves", "TPS", "Notes")
	fmt.Println("------------------------------------  -----  --------------------  ----------  ------  ------  -----")

	for _, s := range solves {
		notes := ""
		if s.Notes != nil {
			notes = *s.Notes
			if len(notes) > 30 {
				notes = notes[:27] + "..."
			}
		}
		fmt.Printf("%-36s  %-5s  %-20s  %-10s  %-6d  %-6s  %s\n",
			s.SolveID,
			fmt.Sprintf("%dx%d", s.Order, s.Order),
			s.RecordedAt.Local().Format("2006-01-02 15:04:05"),
			formatDuration(s.Duration()),
			s.MoveCount,
			tps(s.MoveCount, s),
			notes,
		)
	}

	return nil
}

func runSolvesShow(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	solveRepo := storage.NewSolveRepository(db)
	solve, err := resolveSolve(solveRepo, args, showLast)
	if err != nil {
		return err
	}
	history, err := solveRepo.History(solve.SolveID)
	if err != nil {
		return err
	}
	scramble, moves := splitAtSavepoint(history)

	fmt.Println(titleStyle.Render("Solve " + solve.SolveID))
	fmt.Println()
	fmt.Printf("Puzzle:   %dx%dx%d\n", solve.Order, solve.Order, solve.Order)
	fmt.Printf("Recorded: %s\n", solve.RecordedAt.Local().Format("2006-01-02 15:04:05"))
	fmt.Printf("Duration: %s\n", formatDuration(solve.Duration()))
	fmt.Printf("Moves:    %d (TPS %s)\n", len(moves), tps(len(moves), *solve))
	if solve.Notes != nil {
		fmt.Printf("Notes:    %s\n", *solve.Notes)
	}

	if best, err := solveRepo.Best(solve.Order); err == nil && best != nil {
		if best.SolveID == solve.SolveID {
			fmt.Println(timerStyle.Render("Personal best"))
		} else {
			fmt.Printf("Best:     %s\n", formatDuration(best.Duration()))
		}
	}
	if n, err := solveRepo.CountByState(solve.Facelets); err == nil && n > 1 {
		fmt.Printf("Same end state as %d other solves\n", n-1)
	}

	fmt.Println()
	fmt.Printf("Scramble: %s\n", moveStyle.Render(twisty.FormatMoves(scramble)))
	fmt.Printf("Solution: %s\n", moveStyle.Render(twisty.FormatMoves(moves)))

	counts, err := storage.NewMoveRepository(db).AxisCounts(solve.SolveID)
	if err != nil {
		return err
	}
	axes := make([]string, 0, len(counts))
	for axis := range counts {
		axes = append(axes, axis)
	}
	sort.Strings(axes)
	fmt.Println()
	fmt.Println("Turns per axis (scramble included):")
	for _, axis := range axes {
		fmt.Printf("  %s: %d\n", axis, counts[axis])
	}

	return nil
}

func runSolvesDelete(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	solveRepo := storage.NewSolveRepository(db)
	solve, err := solveRepo.Get(args[0])
	if err != nil {
		return err
	}
	if solve == nil {
		return fmt.Errorf("solve not found: %s", args[0])
	}
	if err := solveRepo.Delete(solve.SolveID); err != nil {
		return err
	}
	fmt.Printf("Deleted solve %s\n", solve.SolveID)
	return nil
}
