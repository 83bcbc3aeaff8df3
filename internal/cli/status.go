package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/twisty"
	"github.com/SeamusWaldron/twisty/internal/recorder"
	"github.com/SeamusWaldron/twisty/internal/storage"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the saved puzzle and solve statistics",
	Long:  `Display the database location, personal bests per puzzle size and the puzzle saved by the last play session.`,
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	stateFile, err := recorder.NewDefaultStateFile()
	if err != nil {
		return fmt.Errorf("failed to load state: %w", err)
	}
	state := stateFile.State()

	fmt.Println("twisty status")
	fmt.Println("=============")
	fmt.Println()

	db, err := openDB()
	if err != nil {
		fmt.Printf("Database unavailable: %v\n", err)
	} else {
		defer db.Close()
		fmt.Printf("Database: %s\n", db.Path())

		solveRepo := storage.NewSolveRepository(db)
		solves, _ := solveRepo.List(0, 1)
		if len(solves) > 0 {
			fmt.Printf("Last solve: %s\n", solves[0].RecordedAt.Local().Format(time.RFC3339))
		}

		fmt.Println()
		fmt.Println("Personal bests:")
		found := false
		for order := twisty.MinOrder; order <= twisty.MaxOrder; order++ {
			best, err := solveRepo.Best(order)
			if err != nil || best == nil {
				continue
			}
			found = true
			fmt.Printf("  %dx%dx%d  %s  (%d moves)\n", order, order, order, formatDuration(best.Duration()), best.MoveCount)
		}
		if !found {
			fmt.Println("  none yet")
		}
	}

	fmt.Println()

	if stateFile.HasProgress() {
		order, moves, err := stateFile.Progress()
		if err != nil {
			fmt.Printf("Saved puzzle is unreadable: %v\n", err)
			return nil
		}
		fmt.Printf("Saved puzzle: %dx%dx%d, %d moves (%s)\n", order, order, order, len(moves), state.SavedAt.Local().Format(time.RFC3339))
		fmt.Println("  (Use 'twisty play' to continue or 'twisty play --fresh' to start over)")

		s, err := instantScheduler(order)
		if err == nil && s.PushMoves(moves) == nil {
			settle(s)
			fmt.Println()
			printPuzzle(s, false)
		}
	} else {
		fmt.Println("No saved puzzle")
	}

	return nil
}
