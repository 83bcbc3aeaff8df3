package twisty

import (
	"time"

	"github.com/charmbracelet/log"
)

// TimerState is the phase of a timed solve.
type TimerState int

const (
	TimerScramble TimerState = iota // scramble moves are playing
	TimerInspect                    // inspection countdown
	TimerSolve                      // solve in progress
	TimerSolved                     // solved, time frozen
)

func (s TimerState) String() string {
	switch s {
	case TimerScramble:
		return "scramble"
	case TimerInspect:
		return "inspect"
	case TimerSolve:
		return "solve"
	case TimerSolved:
		return "solved"
	default:
		return "unknown"
	}
}

// Timer times a solve from the end of a scramble.
//
// A finished scramble starts inspection. Inspection ends when it expires or
// when the first move that is not a whole-cube rotation starts, and the
// solve clock starts from there. The clock stops when a move that is not a
// whole-cube rotation leaves the puzzle solved.
type Timer struct {
	state      TimerState
	start      time.Time
	elapsed    time.Duration
	inspection time.Duration
	onSolved   func(time.Duration)
	logger     *log.Logger
}

// NewTimer returns a stopped timer.
func NewTimer(inspection time.Duration, logger *log.Logger) *Timer {
	if logger == nil {
		logger = defaultLogger()
	}
	return &Timer{state: TimerSolved, inspection: inspection, logger: logger}
}

// SetSolvedCallback sets a callback that fires when a solve completes.
func (t *Timer) SetSolvedCallback(cb func(elapsed time.Duration)) {
	t.onSolved = cb
}

// State returns the current state.
func (t *Timer) State() TimerState {
	return t.state
}

// Running reports whether the timer needs regular updates.
func (t *Timer) Running() bool {
	return t.state == TimerInspect || t.state == TimerSolve
}

// BeginScramble marks the start of a scramble.
func (t *Timer) BeginScramble(now time.Time) {
	t.state = TimerScramble
	t.start = now
	t.elapsed = 0
}

// ScrambleDone starts inspection once the scramble has played out.
func (t *Timer) ScrambleDone(now time.Time) {
	if t.state != TimerScramble {
		return
	}
	t.state = TimerInspect
	t.start = now
}

// Update ends inspection when it has expired.
func (t *Timer) Update(now time.Time) {
	if t.state == TimerInspect && now.Sub(t.start) >= t.inspection {
		t.state = TimerSolve
		t.start = t.start.Add(t.inspection)
	}
}

// MoveStarted ends inspection on the first real move.
func (t *Timer) MoveStarted(now time.Time, wholeCube bool) {
	if t.state == TimerInspect && !wholeCube {
		t.state = TimerSolve
		t.start = now
	}
}

// MoveCompleted stops the clock if the move solved the puzzle.
func (t *Timer) MoveCompleted(now time.Time, wholeCube, solved bool) {
	switch t.state {
	case TimerScramble, TimerInspect, TimerSolved:
	case TimerSolve:
		if wholeCube || !solved {
			return
		}
		t.state = TimerSolved
		t.elapsed = now.Sub(t.start)
		if t.onSolved != nil {
			t.onSolved(t.elapsed)
		}
	default:
		t.logger.Warn("unknown timer state", "state", int(t.state))
	}
}

// Elapsed returns the time shown by the timer: inspection time used while
// inspecting, the running solve time, or the final time once solved.
func (t *Timer) Elapsed(now time.Time) time.Duration {
	switch t.state {
	case TimerInspect, TimerSolve:
		return now.Sub(t.start)
	case TimerSolved:
		return t.elapsed
	default:
		return 0
	}
}

// InspectionLeft returns the remaining inspection time.
func (t *Timer) InspectionLeft(now time.Time) time.Duration {
	if t.state != TimerInspect {
		return 0
	}
	return max(0, t.inspection-now.Sub(t.start))
}

// Stop returns the timer to its idle state.
func (t *Timer) Stop() {
	t.state = TimerSolved
	t.elapsed = 0
}
