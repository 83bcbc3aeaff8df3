package twisty

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"
)

// Frame is what a renderer receives after each processed tick.
type Frame struct {
	Order      int
	Colors     ColorScheme
	Transforms []Transform
	Inflight   *Rotation // nil when no layer is turning
	Queue      []Move
	Timer      TimerState
	Elapsed    time.Duration
	Status     string
	StatusFade float64 // 1 when the status is fresh, falling to 0
}

// Renderer draws frames.
type Renderer interface {
	Render(f Frame)
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(f Frame)

func (fn RendererFunc) Render(f Frame) {
	fn(f)
}

// Solve is a completed timed solve.
type Solve struct {
	Order    int
	Scramble []Move
	Moves    []Move // every applied move, scramble included
	Elapsed  time.Duration
	Facelets string
}

// PuzzleState is everything the scheduler owns between ticks.
type PuzzleState struct {
	Puzzle   *Puzzle
	Vocab    *Vocabulary
	Queue    MoveQueue
	History  History
	Inflight *Rotation
	Timer    *Timer

	// windowLen is the queue length when the in-flight move was last
	// consolidated.
	windowLen int

	status   string
	statusAt time.Time

	scramble []Move
}

// Scheduler drives the puzzle one frame at a time: it drains the move
// queue, animates the move in flight and runs the solve timer.
type Scheduler struct {
	cfg       *config
	state     PuzzleState
	scrambler *Scrambler
	gestures  *Gestures
	logger    *log.Logger
	onSolved  func(Solve)
}

// NewScheduler creates a scheduler with a solved puzzle.
func NewScheduler(opts ...Option) (*Scheduler, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.logger == nil {
		cfg.logger = defaultLogger()
	}
	cfg.maxMovesPerTick = max(1, cfg.maxMovesPerTick)
	if !cfg.colors.Valid() {
		return nil, fmt.Errorf("invalid color scheme: %v", cfg.colors)
	}

	s := &Scheduler{cfg: cfg, logger: cfg.logger}
	if err := s.build(cfg.layout); err != nil {
		return nil, err
	}
	s.state.Timer = NewTimer(cfg.inspection, cfg.logger)
	s.state.Timer.SetSolvedCallback(s.solved)
	return s, nil
}

// build replaces the puzzle with a solved one of the given layout.
func (s *Scheduler) build(layout Layout) error {
	v, err := VocabularyFor(layout.Order, s.logger)
	if err != nil {
		return err
	}
	p, err := NewPuzzle(layout, s.cfg.seed)
	if err != nil {
		return err
	}
	s.cfg.layout = layout
	s.state.Vocab = v
	s.state.Puzzle = p
	if s.scrambler == nil {
		s.scrambler = NewScrambler(layout.Order, s.cfg.seed)
	} else {
		s.scrambler.SetOrder(layout.Order)
	}
	if s.gestures == nil {
		s.gestures = NewGestures(v, layout, nil, s.cfg.rotationLock, s.cfg.fallbackLimit)
	} else {
		s.gestures = NewGestures(v, layout, s.gestures.camera, s.gestures.rotationLock, s.gestures.lockLimit)
	}
	return nil
}

// OnSolved sets a callback that fires when a timed solve completes.
func (s *Scheduler) OnSolved(cb func(Solve)) {
	s.onSolved = cb
}

func (s *Scheduler) solved(elapsed time.Duration) {
	s.logger.Info("solved", "elapsed", elapsed, "moves", s.state.History.Next())
	if s.onSolved == nil {
		return
	}
	s.onSolved(Solve{
		Order:    s.cfg.layout.Order,
		Scramble: append([]Move(nil), s.state.scramble...),
		Moves:    s.state.History.Applied(),
		Elapsed:  elapsed,
		Facelets: s.state.Puzzle.Facelets(),
	})
}

// Puzzle returns the cubie lattice.
func (s *Scheduler) Puzzle() *Puzzle {
	return s.state.Puzzle
}

// Vocabulary returns the move tables for the current order.
func (s *Scheduler) Vocabulary() *Vocabulary {
	return s.state.Vocab
}

// History returns the move history.
func (s *Scheduler) History() *History {
	return &s.state.History
}

// Queue returns the pending moves.
func (s *Scheduler) Queue() []Move {
	return s.state.Queue.Moves()
}

// Timer returns the solve timer.
func (s *Scheduler) Timer() *Timer {
	return s.state.Timer
}

// Gestures returns the gesture resolver for the current puzzle.
func (s *Scheduler) Gestures() *Gestures {
	return s.gestures
}

// Colors returns the colour scheme.
func (s *Scheduler) Colors() ColorScheme {
	return s.cfg.colors
}

// Inflight returns a copy of the rotation being animated.
func (s *Scheduler) Inflight() (Rotation, bool) {
	if s.state.Inflight == nil {
		return Rotation{}, false
	}
	return *s.state.Inflight, true
}

// Push resolves m and queues it. Invalid moves are logged and ignored.
func (s *Scheduler) Push(m Move) error {
	if m.IsSavepoint() {
		s.Mark()
		return nil
	}
	d, err := s.state.Vocab.Resolve(m)
	if err != nil {
		s.logger.Warn("ignoring move", "move", m, "err", err)
		return err
	}
	s.state.Queue.Push(m, &d)
	s.state.History.Record(m)
	return nil
}

// PushMoves pushes each move in turn and returns the first error.
func (s *Scheduler) PushMoves(moves []Move) error {
	var firstErr error
	for _, m := range moves {
		if err := s.Push(m); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// PushSequence parses a space-separated sequence and pushes it.
func (s *Scheduler) PushSequence(seq string) error {
	moves, err := ParseMoves(seq)
	if err != nil {
		s.logger.Warn("skipping malformed moves", "sequence", seq, "err", err)
	}
	if pushErr := s.PushMoves(moves); err == nil {
		err = pushErr
	}
	return err
}

// PushGesture resolves a drag and pushes the resulting move.
func (s *Scheduler) PushGesture(begin, end Pick, mods Modifiers) (Move, bool) {
	m, _, ok := s.gestures.Resolve(begin, end, mods)
	if !ok {
		return "", false
	}
	if err := s.Push(m); err != nil {
		return "", false
	}
	return m, true
}

// Mark queues and records a savepoint.
func (s *Scheduler) Mark() {
	s.state.Queue.Push(Savepoint, nil)
	s.state.History.Record(Savepoint)
}

// Scramble queues a random scramble followed by a savepoint and starts the
// timer. It returns the scramble.
func (s *Scheduler) Scramble(now time.Time) []Move {
	moves := s.scrambler.Scramble(DefaultScrambleLength(s.cfg.layout.Order))
	for _, m := range moves {
		if err := s.Push(m); err != nil {
			s.logger.Warn("scramble produced an unknown move", "move", m, "err", err)
		}
	}
	s.Mark()
	s.state.scramble = moves
	s.state.Timer.BeginScramble(now)
	return moves
}

// pushUndo queues a move generated from history.
func (s *Scheduler) pushUndo(m Move) {
	d, err := s.state.Vocab.Resolve(m)
	if err != nil {
		s.logger.Warn("history holds an unknown move", "move", m, "err", err)
		return
	}
	s.state.Queue.Push(m.AsUndo(), &d)
}

// Undo queues the inverse of the last move.
func (s *Scheduler) Undo() bool {
	m, ok := s.state.History.Undo()
	if ok {
		s.pushUndo(m)
	}
	return ok
}

// Redo queues the last undone move.
func (s *Scheduler) Redo() bool {
	m, ok := s.state.History.Redo()
	if ok {
		s.pushUndo(m)
	}
	return ok
}

// UndoAll undoes back to the previous savepoint.
func (s *Scheduler) UndoAll() int {
	moves := s.state.History.UndoAll()
	for _, m := range moves {
		s.pushUndo(m)
	}
	return len(moves)
}

// RedoAll redoes up to the next savepoint.
func (s *Scheduler) RedoAll() int {
	moves := s.state.History.RedoAll()
	for _, m := range moves {
		s.pushUndo(m)
	}
	return len(moves)
}

// Busy reports whether a move is in flight or queued.
func (s *Scheduler) Busy() bool {
	return s.state.Inflight != nil || s.state.Queue.Len() > 0
}

// CanReset reports whether the puzzle may be rebuilt now.
func (s *Scheduler) CanReset() bool {
	return !s.Busy()
}

// Reset replaces the puzzle with a solved one of the given order. It is
// rejected while moves are pending or the order is unsupported.
func (s *Scheduler) Reset(order int, clearHistory bool) bool {
	if !s.CanReset() {
		s.logger.Debug("reset rejected while busy")
		return false
	}
	layout := s.cfg.layout
	layout.Order = order
	if err := s.build(layout); err != nil {
		s.logger.Warn("reset failed", "order", order, "err", err)
		return false
	}
	if clearHistory {
		s.state.History.Reset()
	}
	s.state.scramble = nil
	s.state.Timer.Stop()
	return true
}

// ResetKeepState rebuilds the puzzle keeping every cubie where it is.
func (s *Scheduler) ResetKeepState() bool {
	if !s.CanReset() {
		return false
	}
	old := s.state.Puzzle
	if err := s.build(s.cfg.layout); err != nil {
		s.logger.Warn("rebuild failed", "err", err)
		return false
	}
	s.state.Puzzle.CopyState(old)
	return true
}

// SetColorScheme changes the face colours. Like Reset, it is rejected while
// busy.
func (s *Scheduler) SetColorScheme(cs ColorScheme) bool {
	if !cs.Valid() {
		s.logger.Warn("ignoring invalid color scheme", "colors", cs)
		return false
	}
	if !s.CanReset() {
		return false
	}
	prev := s.cfg.colors
	s.cfg.colors = cs
	if !s.ResetKeepState() {
		s.cfg.colors = prev
		return false
	}
	return true
}

// SetStatus shows a message that fades out.
func (s *Scheduler) SetStatus(msg string, now time.Time) {
	s.state.status = msg
	s.state.statusAt = now
}

// Status returns the visible status message and its remaining opacity.
func (s *Scheduler) Status(now time.Time) (string, float64) {
	if s.state.status == "" || s.cfg.statusFade <= 0 {
		return "", 0
	}
	age := now.Sub(s.state.statusAt)
	if age >= s.cfg.statusFade {
		return "", 0
	}
	return s.state.status, 1 - float64(age)/float64(s.cfg.statusFade)
}

// Pending reports whether another tick is needed.
func (s *Scheduler) Pending(now time.Time) bool {
	if s.Busy() || s.state.Timer.Running() {
		return true
	}
	msg, _ := s.Status(now)
	return msg != ""
}

// Tick advances the puzzle to time now and returns whether another tick
// should be scheduled.
//
// Each tick completes moves until one is still animating, the queue is
// empty, or the per-tick cap is reached.
func (s *Scheduler) Tick(now time.Time) bool {
	s.state.Timer.Update(now)

	for done := 0; done < s.cfg.maxMovesPerTick; done++ {
		if s.state.Inflight == nil {
			if !s.startNext(now) {
				break
			}
		} else if s.state.Queue.Len() != s.state.windowLen {
			s.reconsolidate(now)
		}
		if !s.advance(now) {
			break
		}
	}

	if msg, _ := s.Status(now); msg == "" {
		s.state.status = ""
	}
	s.render(now)
	return s.Pending(now)
}

// startNext pops queue entries until one is a rotation and puts it in
// flight. Savepoints mark the end of a scramble.
func (s *Scheduler) startNext(now time.Time) bool {
	for {
		e, ok := s.state.Queue.Pop()
		if !ok {
			return false
		}
		if e.Descriptor == nil {
			if e.Move.IsSavepoint() {
				s.state.Timer.ScrambleDone(now)
			}
			continue
		}

		r := &Rotation{Move: e.Move, Descriptor: *e.Descriptor, Start: now}
		Consolidate(s.state.Vocab, r, &s.state.Queue)
		s.state.Inflight = r
		s.state.windowLen = s.state.Queue.Len()
		s.state.Timer.MoveStarted(now, r.Descriptor.IsWholeCube(s.cfg.layout.Order))
		return true
	}
}

// reconsolidate restarts the in-flight move from zero if newly queued moves
// merge into it.
func (s *Scheduler) reconsolidate(now time.Time) {
	r := s.state.Inflight
	if Consolidate(s.state.Vocab, r, &s.state.Queue) > 0 {
		r.Angle = 0
		r.Start = now
	}
	s.state.windowLen = s.state.Queue.Len()
}

// advance turns the in-flight move and applies it once complete. It returns
// true when the move finished.
func (s *Scheduler) advance(now time.Time) bool {
	r := s.state.Inflight
	limit := r.MaxAngle()
	if s.cfg.instant || s.state.Queue.Len() > s.cfg.animationThreshold {
		r.Angle = limit
	} else {
		r.Angle = min(limit, now.Sub(r.Start).Seconds()*s.cfg.angularVelocity)
	}
	if r.Angle < limit {
		return false
	}

	s.state.Puzzle.Apply(r.Descriptor)
	s.state.Inflight = nil

	t := s.state.Timer
	whole := r.Descriptor.IsWholeCube(s.cfg.layout.Order)
	solved := t.State() == TimerSolve && !whole && s.state.Puzzle.IsSolved()
	t.MoveCompleted(now, whole, solved)
	return true
}

func (s *Scheduler) render(now time.Time) {
	if s.cfg.renderer == nil {
		return
	}
	var inflight *Rotation
	if s.state.Inflight != nil {
		r := *s.state.Inflight
		inflight = &r
	}
	msg, fade := s.Status(now)
	s.cfg.renderer.Render(Frame{
		Order:      s.cfg.layout.Order,
		Colors:     s.cfg.colors,
		Transforms: s.state.Puzzle.Transforms(inflight),
		Inflight:   inflight,
		Queue:      s.state.Queue.Moves(),
		Timer:      s.state.Timer.State(),
		Elapsed:    s.state.Timer.Elapsed(now),
		Status:     msg,
		StatusFade: fade,
	})
}
