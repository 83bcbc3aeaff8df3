package twisty

import (
	"testing"
	"time"
)

func TestTimerStartsSolved(t *testing.T) {
	tm := NewTimer(15*time.Second, nil)
	if tm.State() != TimerSolved || tm.Running() {
		t.Errorf("new timer is %v, want solved and stopped", tm.State())
	}
	if tm.Elapsed(time.Now()) != 0 {
		t.Error("new timer should show zero")
	}
}

func TestTimerFullSolve(t *testing.T) {
	t0 := time.Unix(1000, 0)
	tm := NewTimer(15*time.Second, nil)

	var got time.Duration
	calls := 0
	tm.SetSolvedCallback(func(elapsed time.Duration) {
		got = elapsed
		calls++
	})

	tm.BeginScramble(t0)
	tm.MoveStarted(t0, false)
	tm.MoveCompleted(t0, false, false)
	if tm.State() != TimerScramble {
		t.Fatalf("state = %v during scramble", tm.State())
	}

	tm.ScrambleDone(t0.Add(time.Second))
	if tm.State() != TimerInspect {
		t.Fatalf("state = %v after scramble, want inspect", tm.State())
	}
	if left := tm.InspectionLeft(t0.Add(6 * time.Second)); left != 10*time.Second {
		t.Errorf("inspection left = %v, want 10s", left)
	}

	// Whole-cube rotations do not end inspection
	tm.MoveStarted(t0.Add(2*time.Second), true)
	if tm.State() != TimerInspect {
		t.Errorf("state = %v after a rotation, want inspect", tm.State())
	}

	tm.MoveStarted(t0.Add(3*time.Second), false)
	if tm.State() != TimerSolve {
		t.Fatalf("state = %v after first move, want solve", tm.State())
	}

	tm.MoveCompleted(t0.Add(10*time.Second), false, false)
	tm.MoveCompleted(t0.Add(11*time.Second), true, true)
	if tm.State() != TimerSolve {
		t.Errorf("state = %v, only a face move may finish a solve", tm.State())
	}

	tm.MoveCompleted(t0.Add(23*time.Second), false, true)
	if tm.State() != TimerSolved {
		t.Fatalf("state = %v, want solved", tm.State())
	}
	if calls != 1 || got != 20*time.Second {
		t.Errorf("callback fired %d times with %v, want once with 20s", calls, got)
	}
	if e := tm.Elapsed(t0.Add(time.Hour)); e != 20*time.Second {
		t.Errorf("frozen elapsed = %v, want 20s", e)
	}
}

func TestTimerInspectionExpires(t *testing.T) {
	t0 := time.Unix(1000, 0)
	tm := NewTimer(15*time.Second, nil)
	tm.BeginScramble(t0)
	tm.ScrambleDone(t0)

	tm.Update(t0.Add(14 * time.Second))
	if tm.State() != TimerInspect {
		t.Fatalf("state = %v before expiry", tm.State())
	}
	tm.Update(t0.Add(16 * time.Second))
	if tm.State() != TimerSolve {
		t.Fatalf("state = %v after expiry, want solve", tm.State())
	}
	if e := tm.Elapsed(t0.Add(16 * time.Second)); e != time.Second {
		t.Errorf("solve time = %v, want 1s from the end of inspection", e)
	}
}

func TestTimerIgnoresUnscrambledSolves(t *testing.T) {
	tm := NewTimer(time.Second, nil)
	called := false
	tm.SetSolvedCallback(func(time.Duration) { called = true })
	tm.MoveStarted(time.Now(), false)
	tm.MoveCompleted(time.Now(), false, true)
	if called {
		t.Error("solved callback fired without a scramble")
	}
}

func TestTimerStateString(t *testing.T) {
	if TimerInspect.String() != "inspect" || TimerState(42).String() != "unknown" {
		t.Error("unexpected timer state names")
	}
}
