package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/twisty"
	"github.com/SeamusWaldron/twisty/internal/export"
	"github.com/SeamusWaldron/twisty/internal/storage"
)

var (
	exportSolveID string
	exportFormat  string
	exportOutput  string
	exportLast    bool
	exportMoves   string
	exportOrder   int
	glbOutput     string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export solve data",
	Long:  `Export solve data in various formats.`,
}

var exportMovesCmd = &cobra.Command{
	Use:   "moves",
	Short: "Export moves from a solve",
	Long: `Export the move sequence from a solve in text or JSON format.

Examples:
  twisty export moves --last
  twisty export moves --id <solve_id> --format json
  twisty export moves --id <solve_id> --format txt -o moves.txt`,
	RunE: runExportMoves,
}

var exportGLBCmd = &cobra.Command{
	Use:   "glb",
	Short: "Export the puzzle as a 3D scene",
	Long: `Export a puzzle as binary glTF with one node per cubie.

The puzzle is either a recorded solve's scramble or a move sequence applied
to a solved puzzle.

Examples:
  twisty export glb --moves "R U R' U'" -o cube.glb
  twisty export glb -n 4 --moves "r2 U2" -o cube.glb
  twisty export glb --last -o scramble.glb`,
	RunE: runExportGLB,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.AddCommand(exportMovesCmd)
	exportMovesCmd.Flags().StringVar(&exportSolveID, "id", "", "Solve ID to export")
	exportMovesCmd.Flags().BoolVar(&exportLast, "last", false, "Export the last solve")
	exportMovesCmd.Flags().StringVar(&exportFormat, "format", "txt", "Export format (txt, json)")
	exportMovesCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file (default: stdout)")

	exportCmd.AddCommand(exportGLBCmd)
	exportGLBCmd.Flags().StringVar(&exportSolveID, "id", "", "Export the scramble of this solve")
	exportGLBCmd.Flags().BoolVar(&exportLast, "last", false, "Export the scramble of the last solve")
	exportGLBCmd.Flags().StringVar(&exportMoves, "moves", "", "Move sequence to apply")
	exportGLBCmd.Flags().IntVarP(&exportOrder, "order", "n", 0, "Puzzle order (default from config)")
	exportGLBCmd.Flags().StringVarP(&glbOutput, "output", "o", "twisty.glb", "Output file")
}

// movesExport is the JSON form of an exported solve.
type movesExport struct {
	SolveID    string   `json:"solve_id"`
	Order      int      `json:"order"`
	DurationMs int64    `json:"duration_ms"`
	Scramble   []string `json:"scramble"`
	Moves      []string `json:"moves"`
}

func toStrings(moves []twisty.Move) []string {
	out := make([]string, len(moves))
	for i, m := range moves {
		out[i] = m.String()
	}
	return out
}

func exportTarget() ([]string, bool) {
	if exportSolveID != "" {
		return []string{exportSolveID}, false
	}
	return nil, exportLast
}

func runExportMoves(cmd *cobra.Command, args []string) error {
	if exportSolveID == "" && !exportLast {
		return fmt.Errorf("specify --id or --last")
	}

	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	solveRepo := storage.NewSolveRepository(db)
	targetArgs, last := exportTarget()
	solve, err := resolveSolve(solveRepo, targetArgs, last)
	if err != nil {
		return err
	}
	history, err := solveRepo.History(solve.SolveID)
	if err != nil {
		return err
	}
	scramble, moves := splitAtSavepoint(history)

	var output string
	switch exportFormat {
	case "txt":
		output = twisty.FormatMoves(moves) + "\n"
	case "json":
		data, err := json.MarshalIndent(movesExport{
			SolveID:    solve.SolveID,
			Order:      solve.Order,
			DurationMs: solve.DurationMs,
			Scramble:   toStrings(scramble),
			Moves:      toStrings(moves),
		}, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal moves: %w", err)
		}
		output = string(data) + "\n"
	default:
		return fmt.Errorf("unknown format: %s (use txt or json)", exportFormat)
	}

	if exportOutput == "" {
		fmt.Print(output)
		return nil
	}
	if err := os.WriteFile(exportOutput, []byte(output), 0644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	fmt.Printf("Exported %d moves to %s\n", len(moves), exportOutput)
	return nil
}

func runExportGLB(cmd *cobra.Command, args []string) error {
	order := exportOrder
	var moves []twisty.Move

	if exportSolveID != "" || exportLast {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		solveRepo := storage.NewSolveRepository(db)
		targetArgs, last := exportTarget()
		solve, err := resolveSolve(solveRepo, targetArgs, last)
		if err != nil {
			return err
		}
		history, err := solveRepo.History(solve.SolveID)
		if err != nil {
			return err
		}
		moves, _ = splitAtSavepoint(history)
		order = solve.Order
	} else if exportMoves != "" {
		var err error
		moves, err = twisty.ParseMoves(exportMoves)
		if err != nil {
			logger.Warn("skipping malformed moves", "err", err)
		}
	}

	s, err := instantScheduler(order)
	if err != nil {
		return err
	}
	if err := s.PushMoves(moves); err != nil {
		logger.Warn("skipping invalid moves", "err", err)
	}
	settle(s)

	if err := export.SaveGLB(glbOutput, s.Puzzle(), s.Colors()); err != nil {
		return err
	}
	n := s.Puzzle().Order()
	fmt.Printf("Exported %dx%dx%d puzzle (%d cubies) after %q to %s\n",
		n, n, n, len(s.Puzzle().Cubies()), twisty.FormatMoves(moves), glbOutput)
	return nil
}
