package cli

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/twisty"
	"github.com/SeamusWaldron/twisty/internal/storage"
)

var replayCmd = &cobra.Command{
	Use:   "replay [solve-id]",
	Short: "Replay a recorded solve",
	Long: `Replay a recorded solve in the TUI. The scramble is applied at once and
the solving moves are animated.

Usage:
  twisty replay <solve-id>
  twisty replay --last
  twisty replay --last --speed 0.5`,
	RunE: runReplay,
}

var (
	replaySpeed float64
	replayLast  bool
)

func init() {
	rootCmd.AddCommand(replayCmd)
	replayCmd.Flags().Float64VarP(&replaySpeed, "speed", "s", 1.0, "Playback speed multiplier")
	replayCmd.Flags().BoolVar(&replayLast, "last", false, "Replay the most recent solve")
}

// splitAtSavepoint separates the scramble from the solve: everything up to
// the first savepoint, and everything after it.
func splitAtSavepoint(history []twisty.Move) ([]twisty.Move, []twisty.Move) {
	for i, m := range history {
		if m.IsSavepoint() {
			return history[:i], history[i+1:]
		}
	}
	return nil, history
}

func runReplay(cmd *cobra.Command, args []string) error {
	if replaySpeed <= 0 {
		return fmt.Errorf("speed must be positive")
	}

	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	solve, err := resolveSolve(storage.NewSolveRepository(db), args, replayLast)
	if err != nil {
		return err
	}
	history, err := storage.NewSolveRepository(db).History(solve.SolveID)
	if err != nil {
		return err
	}
	scramble, moves := splitAtSavepoint(history)

	layout := cfg.Layout()
	layout.Order = solve.Order
	model, err := newPlayModel(nil, "replay",
		twisty.WithLayout(layout),
		twisty.WithAngularVelocity(cfg.Animation.AngularVelocity*replaySpeed),
		twisty.WithAnimationThreshold(len(history)),
		twisty.WithInstant(false),
	)
	if err != nil {
		return err
	}

	s := model.sched
	if err := s.PushMoves(scramble); err != nil {
		logger.Warn("scramble holds invalid moves", "err", err)
	}
	settle(s)
	s.Mark()
	if err := s.PushMoves(moves); err != nil {
		logger.Warn("solve holds invalid moves", "err", err)
	}
	s.SetStatus(fmt.Sprintf("replaying %s (recorded %s)", solve.SolveID[:8], formatDuration(solve.Duration())), time.Now())

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("replay error: %w", err)
	}

	return nil
}
