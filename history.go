package twisty

// History is the list of applied moves with an undo/redo cursor. Moves
// before Next are done; moves from Next on have been undone and are kept for
// redo until a new move is recorded.
type History struct {
	moves []Move
	next  int
}

// Record appends m at the cursor, discarding any undone moves first.
// Undo-generated moves are ignored, as is a savepoint directly after
// another savepoint or at the start of history.
func (h *History) Record(m Move) {
	if m == "" || m.IsUndo() {
		return
	}
	if m.IsSavepoint() && (h.next == 0 || h.moves[h.next-1].IsSavepoint()) {
		return
	}
	h.moves = append(h.moves[:h.next], m)
	h.next++
}

// Undo steps the cursor back over one move, skipping savepoints, and
// returns its inverse.
func (h *History) Undo() (Move, bool) {
	i := h.next
	for i > 0 && h.moves[i-1].IsSavepoint() {
		i--
	}
	if i == 0 {
		return "", false
	}
	h.next = i - 1
	return h.moves[h.next].Inverse(), true
}

// Redo steps the cursor forward over one move, skipping savepoints, and
// returns it.
func (h *History) Redo() (Move, bool) {
	i := h.next
	for i < len(h.moves) && h.moves[i].IsSavepoint() {
		i++
	}
	if i == len(h.moves) {
		return "", false
	}
	h.next = i + 1
	return h.moves[i], true
}

// UndoAll undoes back to the previous savepoint and returns the inverses in
// the order they must be applied.
func (h *History) UndoAll() []Move {
	i := h.next
	for i > 0 && h.moves[i-1].IsSavepoint() {
		i--
	}
	var out []Move
	for i > 0 && !h.moves[i-1].IsSavepoint() {
		i--
		out = append(out, h.moves[i].Inverse())
	}
	if len(out) > 0 {
		h.next = i
	}
	return out
}

// RedoAll redoes up to and including the next savepoint and returns the
// moves in order.
func (h *History) RedoAll() []Move {
	i := h.next
	for i < len(h.moves) && h.moves[i].IsSavepoint() {
		i++
	}
	var out []Move
	for i < len(h.moves) && !h.moves[i].IsSavepoint() {
		out = append(out, h.moves[i])
		i++
	}
	if len(out) == 0 {
		return nil
	}
	if i < len(h.moves) {
		i++
	}
	h.next = i
	return out
}

// Next returns the cursor.
func (h *History) Next() int {
	return h.next
}

// Len returns the number of entries, including undone moves and savepoints.
func (h *History) Len() int {
	return len(h.moves)
}

// Moves returns every entry, including undone moves and savepoints.
func (h *History) Moves() []Move {
	out := make([]Move, len(h.moves))
	copy(out, h.moves)
	return out
}

// Applied returns the done moves without savepoints.
func (h *History) Applied() []Move {
	var out []Move
	for _, m := range h.moves[:h.next] {
		if !m.IsSavepoint() {
			out = append(out, m)
		}
	}
	return out
}

// Done returns the done moves with their savepoints, the history a resumed
// session must replay.
func (h *History) Done() []Move {
	out := make([]Move, h.next)
	copy(out, h.moves[:h.next])
	return out
}

// Reset clears the history.
func (h *History) Reset() {
	h.moves = nil
	h.next = 0
}
