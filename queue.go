package twisty

// QueueEntry is a move awaiting animation. Descriptor is nil for savepoints.
type QueueEntry struct {
	Move       Move
	Descriptor *Descriptor
}

// MoveQueue is the FIFO of pending moves between input producers and the
// scheduler.
type MoveQueue struct {
	entries []QueueEntry
}

// Push appends a move.
func (q *MoveQueue) Push(m Move, d *Descriptor) {
	q.entries = append(q.entries, QueueEntry{Move: m, Descriptor: d})
}

// Pop removes and returns the oldest entry.
func (q *MoveQueue) Pop() (QueueEntry, bool) {
	if len(q.entries) == 0 {
		return QueueEntry{}, false
	}
	e := q.entries[0]
	q.entries[0] = QueueEntry{}
	q.entries = q.entries[1:]
	return e, true
}

// Peek returns the entry i places from the front without removing it.
func (q *MoveQueue) Peek(i int) (QueueEntry, bool) {
	if i < 0 || i >= len(q.entries) {
		return QueueEntry{}, false
	}
	return q.entries[i], true
}

// Drop discards the n oldest entries.
func (q *MoveQueue) Drop(n int) {
	n = min(n, len(q.entries))
	for i := 0; i < n; i++ {
		q.entries[i] = QueueEntry{}
	}
	q.entries = q.entries[n:]
}

// Len returns the number of pending entries.
func (q *MoveQueue) Len() int {
	return len(q.entries)
}

// Clear discards every pending entry.
func (q *MoveQueue) Clear() {
	q.entries = nil
}

// Moves returns the pending moves in order.
func (q *MoveQueue) Moves() []Move {
	out := make([]Move, len(q.entries))
	for i, e := range q.entries {
		out[i] = e.Move
	}
	return out
}
