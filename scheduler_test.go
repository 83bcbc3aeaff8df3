package twisty

import (
	"errors"
	"math"
	"testing"
	"time"
)

var epoch = time.Unix(1_700_000_000, 0)

func newTestScheduler(t *testing.T, opts ...Option) *Scheduler {
	t.Helper()
	s, err := NewScheduler(opts...)
	if err != nil {
		t.Fatalf("NewScheduler failed: %v", err)
	}
	return s
}

// drain ticks until nothing is pending, advancing the clock a second per
// tick.
func drain(t *testing.T, s *Scheduler, now time.Time) time.Time {
	t.Helper()
	for i := 0; i < 10000; i++ {
		now = now.Add(time.Second)
		if !s.Tick(now) && !s.Busy() {
			return now
		}
	}
	t.Fatal("scheduler never went idle")
	return now
}

func TestSchedulerAppliesMoves(t *testing.T) {
	s := newTestScheduler(t, WithInstant(true))
	for i := 0; i < 6; i++ {
		if err := s.PushMoves(SexyMove); err != nil {
			t.Fatal(err)
		}
	}
	drain(t, s, epoch)
	if !s.Puzzle().IsSolved() {
		t.Error("sexy move x 6 should leave the puzzle solved")
		t.Log(s.Puzzle().String())
	}
	if s.History().Len() != 24 {
		t.Errorf("history has %d moves, want 24", s.History().Len())
	}
}

func TestSchedulerUndoRedoReproducesFacelets(t *testing.T) {
	s := newTestScheduler(t, WithInstant(true))
	if err := s.PushSequence("R U F' L2 D B' u M'"); err != nil {
		t.Fatal(err)
	}
	now := drain(t, s, epoch)
	before := s.Puzzle().Facelets()

	for k := 1; k <= 8; k++ {
		for i := 0; i < k; i++ {
			if !s.Undo() {
				t.Fatalf("undo %d of %d failed", i+1, k)
			}
		}
		now = drain(t, s, now)
		for i := 0; i < k; i++ {
			if !s.Redo() {
				t.Fatalf("redo %d of %d failed", i+1, k)
			}
		}
		now = drain(t, s, now)
		if got := s.Puzzle().Facelets(); got != before {
			t.Errorf("undo/redo %d moves: facelets changed\ngot  %s\nwant %s", k, got, before)
		}
	}
	if s.History().Len() != 8 {
		t.Errorf("undo and redo should not grow history, len = %d", s.History().Len())
	}
}

func TestSchedulerUndoAllToSavepoint(t *testing.T) {
	s := newTestScheduler(t, WithInstant(true))
	s.PushSequence("R U")
	s.Mark()
	now := drain(t, s, epoch)
	marked := s.Puzzle().Facelets()

	s.PushSequence("F D B")
	now = drain(t, s, now)
	if n := s.UndoAll(); n != 3 {
		t.Errorf("UndoAll undid %d moves, want 3", n)
	}
	now = drain(t, s, now)
	if s.Puzzle().Facelets() != marked {
		t.Error("UndoAll should return to the savepoint")
	}

	s.UndoAll()
	drain(t, s, now)
	if !s.Puzzle().IsSolved() {
		t.Error("second UndoAll should return to the start")
	}
}

func TestSchedulerPushDiscardsRedo(t *testing.T) {
	s := newTestScheduler(t, WithInstant(true))
	s.PushSequence("R U F")
	now := drain(t, s, epoch)
	s.Undo()
	s.Undo()
	drain(t, s, now)
	s.Push("L")
	if got := FormatMoves(s.History().Moves()); got != "R L" {
		t.Errorf("history = %q, want \"R L\"", got)
	}
}

func TestSchedulerRejectsInvalidMoves(t *testing.T) {
	s := newTestScheduler(t)
	if err := s.Push("Q"); !errors.Is(err, ErrInvalidNotation) {
		t.Errorf("Push(Q) error = %v", err)
	}
	if err := s.Push("5R"); !errors.Is(err, ErrUnknownMove) {
		t.Errorf("Push(5R) error = %v", err)
	}
	if s.Busy() || s.History().Len() != 0 {
		t.Error("invalid moves should not change any state")
	}
}

func TestSchedulerResetRejectedWhileBusy(t *testing.T) {
	s := newTestScheduler(t, WithInstant(true))
	s.Push("R")
	if s.CanReset() {
		t.Error("CanReset should be false with a queued move")
	}
	if s.Reset(4, true) {
		t.Error("Reset should be rejected while busy")
	}
	if s.SetColorScheme(DefaultColorScheme) {
		t.Error("SetColorScheme should be rejected while busy")
	}
	if s.Puzzle().Order() != 3 {
		t.Error("rejected reset changed the order")
	}

	drain(t, s, epoch)
	if !s.Reset(4, true) {
		t.Fatal("Reset should succeed once idle")
	}
	if s.Puzzle().Order() != 4 || !s.Puzzle().IsSolved() || s.History().Len() != 0 {
		t.Error("Reset should give a fresh 4x4 with no history")
	}
	if s.Reset(1, true) {
		t.Error("Reset to order 1 should fail")
	}
}

func TestSchedulerResetKeepState(t *testing.T) {
	s := newTestScheduler(t, WithInstant(true))
	s.PushSequence("R U")
	drain(t, s, epoch)
	before := s.Puzzle().Facelets()

	cs := DefaultColorScheme
	cs[0] = "#eeeeee"
	if !s.SetColorScheme(cs) {
		t.Fatal("SetColorScheme failed")
	}
	if s.Colors() != cs {
		t.Error("colour scheme not applied")
	}
	if s.Puzzle().Facelets() != before {
		t.Error("changing colours should keep the puzzle state")
	}
	if s.SetColorScheme(ColorScheme{"white"}) {
		t.Error("invalid colour scheme should be rejected")
	}
}

func TestSchedulerAnimates(t *testing.T) {
	s := newTestScheduler(t, WithAngularVelocity(10))
	s.Push("R")

	if !s.Tick(epoch) {
		t.Fatal("Tick should report pending work")
	}
	r, ok := s.Inflight()
	if !ok || r.Angle != 0 {
		t.Fatalf("in flight = %+v, %v, want R at angle 0", r, ok)
	}

	s.Tick(epoch.Add(100 * time.Millisecond))
	r, _ = s.Inflight()
	if math.Abs(r.Angle-1) > 1e-9 {
		t.Errorf("angle after 100ms = %v, want 1", r.Angle)
	}

	if s.Tick(epoch.Add(200 * time.Millisecond)) {
		t.Error("nothing should be pending once R completes")
	}
	if _, ok := s.Inflight(); ok {
		t.Error("R should have completed")
	}
	if s.Puzzle().IsSolved() {
		t.Error("R should have been applied")
	}
}

func TestSchedulerRewindsOnConsolidation(t *testing.T) {
	s := newTestScheduler(t, WithAngularVelocity(10))
	s.Push("R")
	s.Tick(epoch)
	s.Tick(epoch.Add(50 * time.Millisecond))

	s.Push("R")
	s.Tick(epoch.Add(60 * time.Millisecond))
	r, ok := s.Inflight()
	if !ok || r.Move != "R2" {
		t.Fatalf("in flight = %q, want R2", r.Move)
	}
	if r.Angle != 0 {
		t.Errorf("consolidated move should restart from 0, angle = %v", r.Angle)
	}
	if len(s.Queue()) != 0 {
		t.Errorf("queue = %v, want empty", s.Queue())
	}

	drain(t, s, epoch)
	p, _ := NewPuzzle(DefaultLayout(3), 1)
	v, _ := VocabularyFor(3, nil)
	d, _ := v.Resolve("R2")
	p.Apply(d)
	if s.Puzzle().Facelets() != p.Facelets() {
		t.Error("R R should end in the R2 state")
	}
}

func TestSchedulerSnapsBacklog(t *testing.T) {
	s := newTestScheduler(t, WithAnimationThreshold(4))
	s.PushSequence("R U R U R U")
	s.Tick(epoch)
	if got := len(s.Queue()); got != 4 {
		t.Errorf("queue = %d after one tick, want 4", got)
	}
	if _, ok := s.Inflight(); !ok {
		t.Error("the first move under the threshold should animate")
	}
}

func TestSchedulerMovesPerTickCap(t *testing.T) {
	s := newTestScheduler(t, WithInstant(true), WithMaxMovesPerTick(10))
	for i := 0; i < 15; i++ {
		s.PushSequence("R U")
	}
	if !s.Tick(epoch) {
		t.Error("Tick should report pending moves")
	}
	if got := len(s.Queue()); got != 20 {
		t.Errorf("queue = %d after one tick, want 20", got)
	}
}

func TestSchedulerTimer(t *testing.T) {
	s := newTestScheduler(t, WithInstant(true), WithInspection(15*time.Second))
	var solves []Solve
	s.OnSolved(func(sv Solve) { solves = append(solves, sv) })

	s.Timer().BeginScramble(epoch)
	s.PushSequence("R U")
	s.Mark()
	s.Tick(epoch)
	if s.Timer().State() != TimerInspect {
		t.Fatalf("timer = %v after scramble, want inspect", s.Timer().State())
	}

	s.Push("Y")
	s.Tick(epoch.Add(time.Second))
	if s.Timer().State() != TimerInspect {
		t.Errorf("timer = %v after a rotation, want inspect", s.Timer().State())
	}
	s.Push("Y'")

	s.Push("U'")
	s.Tick(epoch.Add(2 * time.Second))
	if s.Timer().State() != TimerSolve {
		t.Fatalf("timer = %v after first move, want solve", s.Timer().State())
	}

	s.Push("R'")
	s.Tick(epoch.Add(5 * time.Second))
	if s.Timer().State() != TimerSolved {
		t.Fatalf("timer = %v, want solved", s.Timer().State())
	}
	if len(solves) != 1 {
		t.Fatalf("OnSolved fired %d times", len(solves))
	}
	if solves[0].Elapsed != 3*time.Second {
		t.Errorf("solve time = %v, want 3s", solves[0].Elapsed)
	}
	if solves[0].Order != 3 || len(solves[0].Moves) == 0 {
		t.Errorf("unexpected solve %+v", solves[0])
	}
}

func TestSchedulerScramble(t *testing.T) {
	s := newTestScheduler(t, WithInstant(true), WithMaxMovesPerTick(1000))
	moves := s.Scramble(epoch)
	if len(moves) != DefaultScrambleLength(3) {
		t.Errorf("scramble has %d moves", len(moves))
	}
	if q := s.Queue(); q[len(q)-1] != Savepoint {
		t.Error("a scramble should end with a savepoint")
	}
	s.Tick(epoch)
	if s.Timer().State() != TimerInspect {
		t.Errorf("timer = %v after scramble, want inspect", s.Timer().State())
	}
	if !s.Tick(epoch.Add(time.Second)) {
		t.Error("a running timer should keep ticking")
	}
}

func TestSchedulerStatusFade(t *testing.T) {
	s := newTestScheduler(t, WithStatusFade(2*time.Second))
	s.SetStatus("hello", epoch)

	msg, fade := s.Status(epoch.Add(time.Second))
	if msg != "hello" || math.Abs(fade-0.5) > 1e-9 {
		t.Errorf("Status = %q, %v, want hello at 0.5", msg, fade)
	}
	if !s.Tick(epoch.Add(time.Second)) {
		t.Error("a visible status should keep ticking")
	}
	if s.Tick(epoch.Add(3 * time.Second)) {
		t.Error("a faded status should stop ticking")
	}
}

func TestSchedulerRenders(t *testing.T) {
	var frames []Frame
	s := newTestScheduler(t, WithRenderer(RendererFunc(func(f Frame) {
		frames = append(frames, f)
	})))
	s.Push("R")
	s.Tick(epoch)
	s.Tick(epoch.Add(50 * time.Millisecond))

	if len(frames) != 2 {
		t.Fatalf("rendered %d frames, want 2", len(frames))
	}
	f := frames[1]
	if f.Inflight == nil || f.Inflight.Move != "R" {
		t.Errorf("frame in flight = %+v", f.Inflight)
	}
	if _, _, n := s.Puzzle().Ranges(); len(f.Transforms) != n {
		t.Errorf("frame has %d transforms, want %d", len(f.Transforms), n)
	}
}

func TestSchedulerIdle(t *testing.T) {
	s := newTestScheduler(t)
	if s.Tick(epoch) {
		t.Error("an idle puzzle should not request frames")
	}
}

func TestSchedulerScrambleAfterReset(t *testing.T) {
	s := newTestScheduler(t, WithInstant(true), WithSeed(7))
	first := s.Scramble(epoch)
	now := epoch
	for s.Busy() {
		now = now.Add(time.Second)
		s.Tick(now)
	}

	if !s.Reset(3, true) {
		t.Fatal("Reset failed")
	}
	second := s.Scramble(now)
	if FormatMoves(first) == FormatMoves(second) {
		t.Errorf("scramble repeated after reset: %s", FormatMoves(first))
	}

	again := newTestScheduler(t, WithInstant(true), WithSeed(7))
	if got := again.Scramble(epoch); FormatMoves(got) != FormatMoves(first) {
		t.Errorf("same seed gave %s, want %s", FormatMoves(got), FormatMoves(first))
	}
}

func TestSchedulerFallbackLimit(t *testing.T) {
	s := newTestScheduler(t, WithRotationLock(true), WithFallbackLimit(10))
	s.Gestures().SetCamera(frontCamera())
	if _, ok := s.Gestures().ResolveBegin(0.9, 0); !ok {
		t.Error("drag inside the fallback limit should snap to a face")
	}

	if !s.Reset(4, true) {
		t.Fatal("Reset failed")
	}
	if _, ok := s.Gestures().ResolveBegin(0.9, 0); !ok {
		t.Error("fallback limit lost on reset")
	}
}
