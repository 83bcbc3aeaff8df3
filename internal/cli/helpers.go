package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/SeamusWaldron/twisty"
	"github.com/SeamusWaldron/twisty/internal/storage"
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	timerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	moveStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("82"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

func openDB() (*storage.DB, error) {
	path := getDBPath()
	var db *storage.DB
	var err error

	if path == "" {
		db, err = storage.OpenDefault()
	} else {
		db, err = storage.Open(path)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	return db, nil
}

// newScheduler builds a scheduler from the loaded config. Extra options
// override it.
func newScheduler(extra ...twisty.Option) (*twisty.Scheduler, error) {
	opts := append(cfg.Options(logger), extra...)
	return twisty.NewScheduler(opts...)
}

// settle plays out every queued move, stepping the clock a second per
// tick so animated moves finish too.
func settle(s *twisty.Scheduler) {
	now := time.Now()
	for s.Busy() {
		now = now.Add(time.Second)
		s.Tick(now)
	}
}

func formatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%.2fs", d.Seconds())
	}
	mins := int(d.Minutes())
	secs := d.Seconds() - float64(mins*60)
	return fmt.Sprintf("%dm%.1fs", mins, secs)
}

// renderNet draws facelets as an unfolded net of coloured cells:
//
//	  U
//	L F R B
//	  D
func renderNet(order int, facelets string, colors twisty.ColorScheme) string {
	styles := make(map[byte]lipgloss.Style, len(twisty.FaceOrder))
	for i := 0; i < len(twisty.FaceOrder); i++ {
		styles[twisty.FaceOrder[i]] = lipgloss.NewStyle().Background(lipgloss.Color(colors[i]))
	}
	face := func(f, row int) string {
		var b strings.Builder
		start := f*order*order + row*order
		for _, c := range []byte(facelets[start : start+order]) {
			b.WriteString(styles[c].Render("  "))
		}
		return b.String()
	}
	pad := strings.Repeat(" ", 2*order+1)

	var b strings.Builder
	for row := 0; row < order; row++ {
		b.WriteString(pad + face(0, row) + "\n")
	}
	for row := 0; row < order; row++ {
		b.WriteString(face(4, row) + " " + face(2, row) + " " + face(1, row) + " " + face(5, row) + "\n")
	}
	for row := 0; row < order; row++ {
		b.WriteString(pad + face(3, row) + "\n")
	}
	return b.String()
}

// tail returns the last n moves, with an ellipsis when some were cut.
func tail(moves []twisty.Move, n int) string {
	if len(moves) <= n {
		return twisty.FormatMoves(moves)
	}
	return "... " + twisty.FormatMoves(moves[len(moves)-n:])
}
