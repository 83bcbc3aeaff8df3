package twisty

import (
	"math"
	"time"
)

// consolidationWindow is the most rotations merged into one, counting the
// one in flight.
const consolidationWindow = 3

// Rotation is the move currently being animated.
type Rotation struct {
	Move       Move
	Descriptor Descriptor
	Angle      float64   // radians turned so far, always non-negative
	Start      time.Time // when the current animation began

	merged int // queue entries already folded into Move
}

// MaxAngle returns the angle at which the rotation is complete.
func (r *Rotation) MaxAngle() float64 {
	return float64(r.Descriptor.Turns) * math.Pi / 2
}

// Consolidate merges queued rotations about the same axis into the one in
// flight when together they turn one contiguous block of layers by the same
// amount, e.g. L then M becomes l on a 3x3. Merged entries are dropped from
// the queue and r is replaced by the combined move. It returns the number of
// entries merged.
//
// Savepoints, undo-generated moves and a change of axis end the window.
func Consolidate(v *Vocabulary, r *Rotation, q *MoveQueue) int {
	if r == nil || r.Move.IsUndo() {
		return 0
	}

	axis := r.Descriptor.Axis
	acc := make([]int, v.Order())
	accumulate(acc, r.Descriptor)

	best := 0
	var bestMove Move
	var bestDesc Descriptor
	for k := 0; k < consolidationWindow-1-r.merged; k++ {
		e, ok := q.Peek(k)
		if !ok || e.Descriptor == nil || e.Move.IsUndo() || e.Descriptor.Axis != axis {
			break
		}
		accumulate(acc, *e.Descriptor)

		d, ok := descriptorFor(acc, axis)
		if !ok {
			continue
		}
		m, ok := v.MoveFor(d)
		if !ok {
			v.logger.Warn("no move for consolidated rotation", "axis", axis, "low", d.Low, "high", d.High, "amount", d.Amount())
			continue
		}
		resolved, err := v.Resolve(m)
		if err != nil || !sameTurn(resolved, d) {
			v.logger.Warn("consolidated move does not round-trip", "move", m, "err", err)
			continue
		}
		best, bestMove, bestDesc = k+1, m, resolved
	}

	if best == 0 {
		return 0
	}
	q.Drop(best)
	r.merged += best
	r.Move = bestMove
	r.Descriptor = bestDesc
	return best
}

func accumulate(acc []int, d Descriptor) {
	for i := d.Low; i <= d.High && i < len(acc); i++ {
		acc[i] += d.Amount()
	}
}

// normalizeTurns reduces a signed quarter-turn count to -1, 0, 1 or 2.
func normalizeTurns(n int) int {
	n = ((n % 4) + 4) % 4
	if n == 3 {
		return -1
	}
	return n
}

// descriptorFor returns the single rotation matching a per-layer turn
// accumulator, if its non-zero entries form one run of equal turns.
func descriptorFor(acc []int, axis Axis) (Descriptor, bool) {
	lo, hi, turn := -1, -1, 0
	for i, a := range acc {
		t := normalizeTurns(a)
		if t == 0 {
			continue
		}
		if lo < 0 {
			lo, turn = i, t
		} else if hi != i-1 || t != turn {
			return Descriptor{}, false
		}
		hi = i
	}
	if lo < 0 {
		return Descriptor{}, false
	}

	d := Descriptor{AxisSign: 1, Axis: axis, Low: lo, High: hi, Turns: 1}
	switch turn {
	case -1:
		d.AxisSign = -1
	case 2:
		d.Turns = 2
	}
	return d, true
}

// sameTurn reports whether a and b rotate the same layers to the same end
// state.
func sameTurn(a, b Descriptor) bool {
	return a.Axis == b.Axis && a.Low == b.Low && a.High == b.High &&
		normalizeTurns(a.Amount()) == normalizeTurns(b.Amount())
}
