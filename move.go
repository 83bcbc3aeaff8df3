package twisty

import (
	"fmt"
	"strconv"
	"strings"
)

// Move is a move in standard notation, e.g. "R", "u'", "M2", "2-3L", or the
// savepoint marker "|". A trailing "G" marks a move generated by undo/redo;
// such moves are never recorded in history and never consolidated.
type Move string

// Savepoint is the history marker that bounds chained undo and redo.
const Savepoint Move = "|"

const undoMarker = "G"

// IsSavepoint reports whether m is the savepoint marker.
func (m Move) IsSavepoint() bool {
	return m == Savepoint
}

// IsUndo reports whether m was generated by undo or redo.
func (m Move) IsUndo() bool {
	return len(m) > 1 && strings.HasSuffix(string(m), undoMarker)
}

// AsUndo returns m tagged as an undo-generated move.
func (m Move) AsUndo() Move {
	if m == "" || m.IsSavepoint() || m.IsUndo() {
		return m
	}
	return m + undoMarker
}

// Base returns m without its undo marker.
func (m Move) Base() Move {
	if m.IsUndo() {
		return m[:len(m)-1]
	}
	return m
}

// Inverse returns the move that undoes m.
// R becomes R', R' becomes R, R2 stays R2. Layer prefixes and the undo
// marker are preserved, so Inverse is an involution.
func (m Move) Inverse() Move {
	if m == "" || m.IsSavepoint() {
		return m
	}
	base := string(m.Base())
	var tag string
	if m.IsUndo() {
		tag = undoMarker
	}
	switch base[len(base)-1] {
	case '2':
		// Half turns are their own inverse
	case '\'':
		base = base[:len(base)-1]
	default:
		base += "'"
	}
	return Move(base + tag)
}

// String returns the notation string.
func (m Move) String() string {
	return string(m)
}

// notation is a syntactically valid move token, split into its parts.
type notation struct {
	low, high int // 1-based layer prefix, zero when absent
	letter    byte
	suffix    string
}

const faceLetters = "UDLRFBMESXYZudlrfb"

// parseNotation checks a token against the move grammar
// ["<n>-<n>" | "<n>"] <letter> ["'" | "2"].
// It does not check whether the move exists for a given order.
func parseNotation(s string) (notation, error) {
	var n notation
	invalid := fmt.Errorf("%w: %q", ErrInvalidNotation, s)

	i := 0
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	if i > 0 {
		a, err := strconv.Atoi(s[:i])
		if err != nil {
			return n, invalid
		}
		n.low, n.high = a, a
		if i < len(s) && s[i] == '-' {
			j := i + 1
			for j < len(s) && isDigit(s[j]) {
				j++
			}
			b, err := strconv.Atoi(s[i+1 : j])
			if err != nil {
				return n, invalid
			}
			n.high = b
			i = j
		}
		if n.low < 1 || n.low > n.high {
			return n, invalid
		}
	}

	if i >= len(s) || strings.IndexByte(faceLetters, s[i]) < 0 {
		return n, invalid
	}
	n.letter = s[i]
	n.suffix = s[i+1:]
	switch n.suffix {
	case "", "'", "2":
	default:
		return n, invalid
	}
	if n.low > 0 && !strings.ContainsRune("UDLRFB", rune(n.letter)) {
		return n, invalid
	}
	return n, nil
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// ParseMoves parses a space-separated sequence of moves.
// Example: "R U R' U' | 2-3L2"
// Tokens that do not match the grammar are skipped; the returned error
// names the first of them.
func ParseMoves(s string) ([]Move, error) {
	parts := strings.Fields(s)
	moves := make([]Move, 0, len(parts))

	var firstErr error
	for _, part := range parts {
		m := Move(part)
		if !m.IsSavepoint() {
			if _, err := parseNotation(string(m.Base())); err != nil {
				if firstErr == nil {
					firstErr = err
				}
				continue
			}
		}
		moves = append(moves, m)
	}

	return moves, firstErr
}

// FormatMoves formats a slice of moves as a space-separated notation string.
func FormatMoves(moves []Move) string {
	if len(moves) == 0 {
		return ""
	}

	parts := make([]string, len(moves))
	for i, m := range moves {
		parts[i] = string(m)
	}

	return strings.Join(parts, " ")
}
