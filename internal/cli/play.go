package cli

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/twisty"
	"github.com/SeamusWaldron/twisty/internal/recorder"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Interactive puzzle",
	Long: `Start an interactive TUI with a puzzle you turn from the keyboard.

Keyboard shortcuts:
  u d l r f b     - Turn a face clockwise (shift for counter-clockwise)
  alt+u ...       - Wide turn
  m e s           - Inner slices
  x y z           - Whole-cube rotations
  space           - Scramble and start the timer
  backspace       - Undo             ctrl+y  - Redo
  [ ]             - Undo / redo to the previous / next savepoint
  |               - Savepoint
  + -             - Bigger / smaller puzzle
  ctrl+r          - Reset
  q/Esc           - Quit

Finished timed solves are recorded. The puzzle is saved on quit and
restored next time unless --fresh is given.`,
	RunE: runPlay,
}

var (
	playOrder int
	playFresh bool
)

func init() {
	rootCmd.AddCommand(playCmd)
	playCmd.Flags().IntVarP(&playOrder, "order", "n", 0, "Puzzle order (default from config)")
	playCmd.Flags().BoolVar(&playFresh, "fresh", false, "Start from a solved puzzle")
}

// Messages
type frameMsg time.Time

type playModel struct {
	sched     *twisty.Scheduler
	session   *recorder.Session
	interval  time.Duration
	ticking   bool
	frame     twisty.Frame
	title     string
	lastSolve string
	saveOnEnd bool
	quitting  bool
}

func newPlayModel(session *recorder.Session, title string, opts ...twisty.Option) (*playModel, error) {
	m := &playModel{
		session:  session,
		interval: cfg.FrameInterval(),
		title:    title,
	}
	opts = append(opts, twisty.WithRenderer(twisty.RendererFunc(func(f twisty.Frame) {
		m.frame = f
	})))
	sched, err := newScheduler(opts...)
	if err != nil {
		return nil, err
	}
	m.sched = sched

	if session != nil {
		session.Attach(sched)
		session.SetRecordedCallback(func(id string, solve twisty.Solve) {
			m.lastSolve = fmt.Sprintf("%s in %s (%d moves)", id[:8], formatDuration(solve.Elapsed), len(solve.Moves))
		})
	}
	return m, nil
}

func (m *playModel) Init() tea.Cmd {
	return m.kick()
}

// kick starts the frame loop unless it is already running. An idle puzzle
// gets no frames.
func (m *playModel) kick() tea.Cmd {
	if m.ticking {
		return nil
	}
	m.ticking = m.sched.Tick(time.Now())
	if !m.ticking {
		return nil
	}
	return m.tickCmd()
}

func (m *playModel) tickCmd() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

func (m *playModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		key := msg.String()
		switch key {
		case "q", "esc", "ctrl+c":
			m.quitting = true
			if m.saveOnEnd && m.session != nil {
				if err := m.session.SaveProgress(m.sched); err != nil {
					logger.Warn("failed to save progress", "err", err)
				}
			}
			return m, tea.Quit
		}
		m.handleKey(key, time.Now())
		return m, m.kick()

	case frameMsg:
		m.ticking = m.sched.Tick(time.Time(msg))
		if m.ticking {
			return m, m.tickCmd()
		}
	}
	return m, nil
}

func (m *playModel) handleKey(key string, now time.Time) {
	s := m.sched
	order := s.Puzzle().Order()

	if mv, ok := keyMove(key); ok {
		if err := s.Push(mv); err != nil {
			s.SetStatus(fmt.Sprintf("%s: not on a %dx%d", mv, order, order), now)
		}
		return
	}

	switch key {
	case " ":
		s.Scramble(now)
		s.SetStatus("scrambling", now)
	case "backspace", "ctrl+z":
		if !s.Undo() {
			s.SetStatus("nothing to undo", now)
		}
	case "ctrl+y":
		if !s.Redo() {
			s.SetStatus("nothing to redo", now)
		}
	case "[":
		s.SetStatus(fmt.Sprintf("undid %d moves", s.UndoAll()), now)
	case "]":
		s.SetStatus(fmt.Sprintf("redid %d moves", s.RedoAll()), now)
	case "|":
		s.Mark()
		s.SetStatus("savepoint", now)
	case "+", "=":
		m.resize(order+1, now)
	case "-":
		m.resize(order-1, now)
	case "ctrl+r":
		m.resize(order, now)
	}
}

func (m *playModel) resize(order int, now time.Time) {
	if order < twisty.MinOrder || order > twisty.MaxOrder {
		m.sched.SetStatus(fmt.Sprintf("order %d not supported", order), now)
		return
	}
	if !m.sched.Reset(order, true) {
		m.sched.SetStatus("busy", now)
		return
	}
	m.sched.SetStatus(fmt.Sprintf("%dx%dx%d", order, order, order), now)
}

// keyMove maps a key to a move: lower case turns clockwise, upper case
// counter-clockwise, alt widens a face turn.
func keyMove(key string) (twisty.Move, bool) {
	wide := false
	if rest, ok := strings.CutPrefix(key, "alt+"); ok {
		wide = true
		key = rest
	}
	if len(key) != 1 {
		return "", false
	}
	c := key[0]
	prime := c >= 'A' && c <= 'Z'
	if prime {
		c += 'a' - 'A'
	}
	if !strings.ContainsRune("udlrfbmesxyz", rune(c)) {
		return "", false
	}
	letter := c - ('a' - 'A')
	if wide {
		if !strings.ContainsRune("udlrfb", rune(c)) {
			return "", false
		}
		letter = c
	}
	mv := twisty.Move(string(letter))
	if prime {
		mv = mv.Inverse()
	}
	return mv, true
}

func (m *playModel) View() string {
	if m.quitting {
		return "Goodbye!\n"
	}

	var b strings.Builder
	f := m.frame
	p := m.sched.Puzzle()

	n := p.Order()
	b.WriteString(titleStyle.Render(fmt.Sprintf("%s %dx%dx%d", m.title, n, n, n)))
	b.WriteString("\n\n")
	b.WriteString(renderNet(n, p.Facelets(), m.sched.Colors()))
	b.WriteString("\n")

	switch f.Timer {
	case twisty.TimerScramble:
		b.WriteString(timerStyle.Render("SCRAMBLING"))
	case twisty.TimerInspect:
		left := m.sched.Timer().InspectionLeft(time.Now())
		b.WriteString(timerStyle.Render(fmt.Sprintf("INSPECT %.0f", left.Seconds())))
	case twisty.TimerSolve:
		b.WriteString(timerStyle.Render(formatDuration(f.Elapsed)))
	case twisty.TimerSolved:
		if f.Elapsed > 0 {
			b.WriteString(timerStyle.Render("SOLVED " + formatDuration(f.Elapsed)))
		} else if p.IsSolved() {
			b.WriteString(statusStyle.Render("solved"))
		}
	}
	b.WriteString("\n")

	if f.Inflight != nil {
		pct := 100 * f.Inflight.Angle / f.Inflight.MaxAngle()
		b.WriteString(fmt.Sprintf("Turning: %s %3.0f%%\n", moveStyle.Render(f.Inflight.Move.String()), pct))
	}
	if len(f.Queue) > 0 {
		b.WriteString(fmt.Sprintf("Queued: %s\n", moveStyle.Render(tail(f.Queue, 12))))
	}
	if h := m.sched.History(); h.Next() > 0 {
		b.WriteString(fmt.Sprintf("History: %s\n", moveStyle.Render(tail(h.Applied(), 16))))
	}
	if m.lastSolve != "" {
		b.WriteString(fmt.Sprintf("Last solve: %s\n", m.lastSolve))
	}

	if f.Status != "" {
		style := statusStyle
		if f.StatusFade < 0.5 {
			style = style.Faint(true)
		}
		b.WriteString(style.Render(f.Status))
	}
	b.WriteString("\n")

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("Keys: udlrfb mes xyz | space=scramble bksp=undo ctrl+y=redo [ ]=savepoints +/-=size q=quit"))
	b.WriteString("\n")

	return b.String()
}

func runPlay(cmd *cobra.Command, args []string) error {
	var session *recorder.Session
	db, err := openDB()
	if err != nil {
		logger.Warn("solves will not be recorded", "err", err)
	} else {
		defer db.Close()
		stateFile, err := recorder.NewDefaultStateFile()
		if err != nil {
			return fmt.Errorf("failed to load state: %w", err)
		}
		session = recorder.NewSession(db, stateFile, logger)
	}

	var opts []twisty.Option
	if playOrder != 0 {
		layout := cfg.Layout()
		layout.Order = playOrder
		opts = append(opts, twisty.WithLayout(layout))
	}
	model, err := newPlayModel(session, "twisty", opts...)
	if err != nil {
		return err
	}
	model.saveOnEnd = true

	if session != nil && !playFresh && playOrder == 0 {
		if ok, err := session.Resume(model.sched); err != nil {
			logger.Warn("could not restore the saved puzzle", "err", err)
		} else if ok {
			model.sched.SetStatus("restored", time.Now())
		}
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}
